// Package output provides formatters for validation reports.
package output

import (
	"time"

	"github.com/barkit-dev/barkit/internal/domain/entities"
)

// Report is the result of validating a configuration, shaped for rendering.
type Report struct {
	ConfigPath  string             `json:"config_path" yaml:"config_path"`
	ToolVersion string             `json:"tool_version" yaml:"tool_version"`
	GeneratedAt time.Time          `json:"generated_at" yaml:"generated_at"`
	Bars        int                `json:"bars" yaml:"bars"`
	Widgets     int                `json:"widgets" yaml:"widgets"`
	Findings    []entities.Finding `json:"findings" yaml:"findings"`
}

// NewReport builds a report for a validated document.
func NewReport(configPath, toolVersion string, doc *entities.Document, findings []entities.Finding) *Report {
	return &Report{
		ConfigPath:  configPath,
		ToolVersion: toolVersion,
		GeneratedAt: time.Now().UTC(),
		Bars:        len(doc.Bars),
		Widgets:     doc.WidgetCount(),
		Findings:    findings,
	}
}

// Valid reports whether the configuration passed validation.
func (r *Report) Valid() bool {
	return len(r.Findings) == 0
}

// Formatter renders a validation report to its output.
type Formatter interface {
	Format(report *Report) error
}
