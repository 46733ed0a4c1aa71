package entities

import "fmt"

// FindingCode identifies the kind of a validation finding.
type FindingCode string

const (
	CodeUnknownWidgetType FindingCode = "UnknownWidgetType"
	CodeUnknownOption     FindingCode = "UnknownOption"
	CodeMissingRequired   FindingCode = "MissingRequired"
	CodeTypeMismatch      FindingCode = "TypeMismatch"
	CodeSchemaViolation   FindingCode = "SchemaViolation"
)

// Finding is a single validation failure tied to a document location.
// Paths use the form "bars[0].widgets[2].api_key".
type Finding struct {
	Path    string      `json:"path" yaml:"path"`
	Code    FindingCode `json:"code" yaml:"code"`
	Message string      `json:"message" yaml:"message"`
}

func (f Finding) String() string {
	return fmt.Sprintf("%s: %s (%s)", f.Path, f.Message, f.Code)
}

// ValidationResult is the outcome of validating a document: either valid, or
// an ordered, non-empty list of findings.
type ValidationResult struct {
	Findings []Finding `json:"findings" yaml:"findings"`
}

// Valid reports whether validation produced no findings.
func (r ValidationResult) Valid() bool {
	return len(r.Findings) == 0
}

// Add appends a finding.
func (r *ValidationResult) Add(path string, code FindingCode, format string, args ...interface{}) {
	r.Findings = append(r.Findings, Finding{
		Path:    path,
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	})
}
