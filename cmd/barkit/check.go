package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/barkit-dev/barkit/internal/domain/entities"
	domainservices "github.com/barkit-dev/barkit/internal/domain/services"
	"github.com/barkit-dev/barkit/internal/infrastructure/output"
	"github.com/barkit-dev/barkit/internal/version"
)

var (
	checkFormat string
	checkOut    string
	checkStrict bool
	checkFilter string
)

// checkCmd validates the bar configuration against the widget schemas.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the bar configuration",
	Long: `Load config.yaml and validate every widget against the schema of
known widget types and options.

Filtering:
  --filter "type == 'weather'"          Only report findings for matching widgets
  --filter "bar == 'primary' && index < 3"`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runCheck(cmd)
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVar(&checkFormat, "format", "table", "Output format: table, json, yaml, sarif")
	checkCmd.Flags().StringVarP(&checkOut, "output", "o", "", "Output file path (default: stdout)")
	checkCmd.Flags().BoolVar(&checkStrict, "strict", false, "Also enforce cached JSON schemas in full")
	checkCmd.Flags().StringVar(&checkFilter, "filter", "", "Widget filter expression (e.g. \"type == 'weather'\")")
}

func runCheck(cmd *cobra.Command) error {
	format := checkFormat
	if !cmd.Flags().Changed("format") {
		if preferred := viper.GetString("format"); preferred != "" {
			format = preferred
		}
	}

	// Compile the filter first so a bad expression fails fast.
	var filter *domainservices.WidgetFilter
	if checkFilter != "" {
		var err error
		filter, err = domainservices.CompileFilter(checkFilter)
		if err != nil {
			return err
		}
	}

	store, err := openStore()
	if err != nil {
		return err
	}

	slog.Debug("loading config", "path", store.ConfigPath())
	doc, err := store.Load()
	if err != nil {
		return err
	}

	validator, err := buildValidator(checkStrict)
	if err != nil {
		return err
	}

	result := validator.Validate(doc)
	findings := result.Findings

	if filter != nil {
		refs, err := domainservices.SelectWidgets(doc, filter)
		if err != nil {
			return err
		}
		findings = filterFindings(findings, refs)
	}

	report := output.NewReport(store.ConfigPath(), version.Get().String(), doc, findings)

	writer, closeWriter, err := outputWriter(checkOut)
	if err != nil {
		return err
	}
	defer closeWriter()

	formatter, err := output.NewFormatterFactory().Create(format, writer, output.FormatterOptions{Indent: true})
	if err != nil {
		return err
	}
	if err := formatter.Format(report); err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}

	if len(findings) > 0 {
		return fmt.Errorf("check failed: %d finding(s)", len(findings))
	}
	return nil
}

// filterFindings keeps findings located under one of the selected widgets.
func filterFindings(findings []entities.Finding, refs []domainservices.WidgetRef) []entities.Finding {
	prefixes := make([]string, 0, len(refs))
	for _, ref := range refs {
		prefixes = append(prefixes, fmt.Sprintf("bars[%d].widgets[%d]", ref.BarIndex, ref.Index))
	}

	var kept []entities.Finding
	for _, finding := range findings {
		for _, prefix := range prefixes {
			if finding.Path == prefix || strings.HasPrefix(finding.Path, prefix+".") {
				kept = append(kept, finding)
				break
			}
		}
	}
	return kept
}
