package output

import (
	"fmt"
	"io"

	"github.com/owenrumney/go-sarif/v3/pkg/report/v210/sarif"
)

// SARIFFormatter formats a validation report as SARIF 2.1.0 JSON.
// Finding codes map to SARIF rules and findings to results located in the
// config file.
type SARIFFormatter struct {
	writer io.Writer
}

// NewSARIFFormatter creates a new SARIF formatter.
func NewSARIFFormatter(writer io.Writer) *SARIFFormatter {
	return &SARIFFormatter{writer: writer}
}

// Format writes the report as SARIF 2.1.0 JSON.
func (f *SARIFFormatter) Format(report *Report) error {
	sr := sarif.NewReport()

	run := sarif.NewRunWithInformationURI("barkit", "https://github.com/barkit-dev/barkit")
	run.Tool.Driver.Version = &report.ToolVersion

	mapper := newSARIFMapper(report)
	mapper.mapToRun(run)

	sr.AddRun(run)

	if err := sr.Write(f.writer); err != nil {
		return fmt.Errorf("failed to write SARIF output: %w", err)
	}

	_, err := f.writer.Write([]byte("\n"))
	return err
}
