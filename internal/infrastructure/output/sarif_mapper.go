package output

import (
	"fmt"

	"github.com/owenrumney/go-sarif/v3/pkg/report/v210/sarif"

	"github.com/barkit-dev/barkit/internal/domain/entities"
)

type sarifMapper struct {
	report *Report
}

func newSARIFMapper(report *Report) *sarifMapper {
	return &sarifMapper{report: report}
}

// mapToRun populates the SARIF run with rules, results, and the config
// artifact.
func (m *sarifMapper) mapToRun(run *sarif.Run) {
	m.addRules(run)
	m.addResults(run)
	m.addArtifact(run)
	m.addProperties(run)
}

// ruleDescriptions maps finding codes to human-readable rule text.
var ruleDescriptions = map[entities.FindingCode]string{
	entities.CodeUnknownWidgetType: "Widget type is not in the schema table",
	entities.CodeUnknownOption:     "Option is not recognized for this widget type",
	entities.CodeMissingRequired:   "Required option is missing",
	entities.CodeTypeMismatch:      "Option value has the wrong type",
	entities.CodeSchemaViolation:   "Option value violates the widget's JSON schema",
}

// addRules adds one SARIF rule per finding code present in the report.
func (m *sarifMapper) addRules(run *sarif.Run) {
	seen := map[entities.FindingCode]bool{}
	for _, finding := range m.report.Findings {
		if seen[finding.Code] {
			continue
		}
		seen[finding.Code] = true

		desc := ruleDescriptions[finding.Code]
		if desc == "" {
			desc = string(finding.Code)
		}

		rule := sarif.NewReportingDescriptor().WithID(string(finding.Code))
		rule.WithName(string(finding.Code))
		rule.WithShortDescription(&sarif.MultiformatMessageString{Text: &desc})
		rule.WithDefaultConfiguration(&sarif.ReportingConfiguration{
			Level: m.mapCodeToLevel(finding.Code),
		})

		run.Tool.Driver.AddRule(rule)
	}
}

// addResults converts findings to SARIF results.
func (m *sarifMapper) addResults(run *sarif.Run) {
	for _, finding := range m.report.Findings {
		result := sarif.NewRuleResult(string(finding.Code))
		result.Level = m.mapCodeToLevel(finding.Code)
		result.Kind = "fail"
		result.Message = sarif.NewTextMessage(fmt.Sprintf("%s: %s", finding.Path, finding.Message))

		pLoc := sarif.NewPhysicalLocation().
			WithArtifactLocation(sarif.NewArtifactLocation().WithURI(m.report.ConfigPath))
		result.Locations = []*sarif.Location{
			sarif.NewLocation().WithPhysicalLocation(pLoc),
		}

		props := sarif.NewPropertyBag()
		props.Add("configPath", finding.Path)
		result.WithProperties(props)

		run.AddResult(result)
	}
}

// mapCodeToLevel converts a finding code to a SARIF level. Unknown options
// are warnings so a config that merely carries extra keys is distinguishable
// from one the bar cannot load.
func (m *sarifMapper) mapCodeToLevel(code entities.FindingCode) string {
	switch code {
	case entities.CodeUnknownOption:
		return "warning"
	default:
		return "error"
	}
}

// addArtifact registers the config file as the single run artifact.
func (m *sarifMapper) addArtifact(run *sarif.Run) {
	artifact := sarif.NewArtifact().
		WithLocation(sarif.NewArtifactLocation().WithURI(m.report.ConfigPath))
	run.AddArtifact(artifact)
}

// addProperties adds report statistics to run properties.
func (m *sarifMapper) addProperties(run *sarif.Run) {
	props := sarif.NewPropertyBag()
	props.Add("bars", m.report.Bars)
	props.Add("widgets", m.report.Widgets)
	props.Add("findings", len(m.report.Findings))
	run.WithProperties(props)
}
