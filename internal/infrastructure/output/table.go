package output

import (
	"fmt"
	"io"
	"strings"
	"time"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorGray   = "\033[90m"
	colorCyan   = "\033[36m"
	colorBold   = "\033[1m"
)

// TableFormatter formats a validation report as a human-readable table.
type TableFormatter struct {
	writer      io.Writer
	EnableColor bool
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(w io.Writer) *TableFormatter {
	return &TableFormatter{
		writer:      w,
		EnableColor: true, // Default to true, caller can disable
	}
}

// colorize returns the string wrapped in ANSI color codes if enabled.
func (f *TableFormatter) colorize(text, code string) string {
	if !f.EnableColor {
		return text
	}
	return code + text + colorReset
}

// Format writes the report as a table.
//
//nolint:errcheck // Best-effort terminal output
func (f *TableFormatter) Format(report *Report) error {
	fmt.Fprintln(f.writer, f.colorize(strings.Repeat("─", 80), colorGray))
	fmt.Fprintf(f.writer, "Config:  %s\n", f.colorize(report.ConfigPath, colorBold))
	fmt.Fprintf(f.writer, "Checked: %s\n", report.GeneratedAt.Format(time.RFC3339))
	fmt.Fprintf(f.writer, "Bars:    %d (%d widgets)\n", report.Bars, report.Widgets)
	fmt.Fprintln(f.writer)

	if report.Valid() {
		fmt.Fprintf(f.writer, "%s Configuration is valid.\n", f.colorize("✓", colorGreen))
		fmt.Fprintln(f.writer, f.colorize(strings.Repeat("─", 80), colorGray))
		return nil
	}

	fmt.Fprintln(f.writer, f.colorize("Findings:", colorBold))
	fmt.Fprintln(f.writer, f.colorize(strings.Repeat("─", 80), colorGray))

	for _, finding := range report.Findings {
		fmt.Fprintf(f.writer, "%s %s\n", f.colorize("✗", colorRed), f.colorize(finding.Path, colorCyan))
		fmt.Fprintf(f.writer, "  Code:    %s\n", f.colorize(string(finding.Code), colorYellow))
		fmt.Fprintf(f.writer, "  Message: %s\n", finding.Message)
		fmt.Fprintln(f.writer)
	}

	fmt.Fprintln(f.writer, f.colorize(strings.Repeat("─", 80), colorGray))
	fmt.Fprintf(f.writer, "%s %d finding(s)\n", f.colorize("✗", colorRed), len(report.Findings))
	return nil
}
