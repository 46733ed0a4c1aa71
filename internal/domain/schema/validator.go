package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/barkit-dev/barkit/internal/domain/entities"
)

// Validator checks a document against the schema table. Validation is purely
// structural: no cross-widget consistency checks. In strict mode widget
// options are additionally validated against the raw JSON Schemas fetched
// into the schema database.
type Validator struct {
	table    *Table
	compiled map[string]*jsonschema.Schema
}

// NewValidator creates a table-driven validator.
func NewValidator(table *Table) *Validator {
	return &Validator{table: table}
}

// NewStrictValidator creates a validator that also checks widget options
// against raw JSON Schemas keyed by widget type. Each schema is compiled up
// front so invalid schemas surface before any document is validated.
func NewStrictValidator(table *Table, rawSchemas map[string][]byte) (*Validator, error) {
	v := &Validator{
		table:    table,
		compiled: make(map[string]*jsonschema.Schema, len(rawSchemas)),
	}
	for widgetType, raw := range rawSchemas {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020

		name := widgetType + ".schema.json"
		if err := compiler.AddResource(name, bytes.NewReader(raw)); err != nil {
			return nil, fmt.Errorf("failed to add schema for widget %s: %w", widgetType, err)
		}
		sch, err := compiler.Compile(name)
		if err != nil {
			return nil, fmt.Errorf("failed to compile schema for widget %s: %w", widgetType, err)
		}
		v.compiled[widgetType] = sch
	}
	return v, nil
}

// Validate checks every widget in the document. It is idempotent: validating
// the same document twice yields the same result.
func (v *Validator) Validate(doc *entities.Document) entities.ValidationResult {
	var result entities.ValidationResult

	for bi := range doc.Bars {
		bar := &doc.Bars[bi]
		for wi := range bar.Widgets {
			v.validateWidget(&result, bi, wi, &bar.Widgets[wi])
		}
	}

	return result
}

func (v *Validator) validateWidget(result *entities.ValidationResult, barIdx, widgetIdx int, w *entities.Widget) {
	base := fmt.Sprintf("bars[%d].widgets[%d]", barIdx, widgetIdx)

	ws, known := v.table.Widget(w.Type)
	if !known {
		result.Add(base+".type", entities.CodeUnknownWidgetType,
			"unknown widget type %q", w.Type)
		return
	}

	// Unknown options, in deterministic order.
	keys := make([]string, 0, len(w.Options))
	for key := range w.Options {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		spec, allowed := ws[key]
		if !allowed {
			result.Add(base+"."+key, entities.CodeUnknownOption,
				"unknown option %q for widget type %q", key, w.Type)
			continue
		}
		if value := w.Options[key]; value != nil && !spec.Kind.Matches(value) {
			result.Add(base+"."+key, entities.CodeTypeMismatch,
				"option %q must be a %s, got %T", key, spec.Kind, value)
		}
	}

	// Missing required options, in deterministic order.
	required := make([]string, 0)
	for name, spec := range ws {
		if spec.Required {
			required = append(required, name)
		}
	}
	sort.Strings(required)

	for _, name := range required {
		if _, present := w.Options[name]; !present {
			result.Add(base+"."+name, entities.CodeMissingRequired,
				"required option %q is missing for widget type %q", name, w.Type)
		}
	}

	v.validateAgainstSchema(result, base, w)
}

// validateAgainstSchema runs the strict JSON Schema pass for one widget.
// No-op when the validator was built without raw schemas or the widget type
// has none.
func (v *Validator) validateAgainstSchema(result *entities.ValidationResult, base string, w *entities.Widget) {
	sch, ok := v.compiled[w.Type]
	if !ok {
		return
	}

	normalized, err := normalizeForJSON(w.Options)
	if err != nil {
		result.Add(base, entities.CodeSchemaViolation,
			"options are not JSON-representable: %v", err)
		return
	}

	err = sch.Validate(normalized)
	if err == nil {
		return
	}

	var verr *jsonschema.ValidationError
	if errors.As(err, &verr) {
		for _, leaf := range collectLeaves(verr) {
			result.Add(joinSchemaPath(base, leaf.InstanceLocation), entities.CodeSchemaViolation,
				"%s", leaf.Message)
		}
		return
	}
	result.Add(base, entities.CodeSchemaViolation, "%v", err)
}

// normalizeForJSON round-trips YAML-decoded values through JSON so the
// schema library sees canonical JSON types.
func normalizeForJSON(v interface{}) (interface{}, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out interface{}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// collectLeaves flattens a nested schema validation error into the causes
// that carry concrete messages.
func collectLeaves(err *jsonschema.ValidationError) []*jsonschema.ValidationError {
	if len(err.Causes) == 0 {
		return []*jsonschema.ValidationError{err}
	}
	var leaves []*jsonschema.ValidationError
	for _, cause := range err.Causes {
		leaves = append(leaves, collectLeaves(cause)...)
	}
	return leaves
}

// joinSchemaPath appends a JSON-pointer instance location ("/api_key",
// "/hosts/0") to a document path in bars[i].widgets[j].key form.
func joinSchemaPath(base, instanceLocation string) string {
	if instanceLocation == "" || instanceLocation == "/" {
		return base
	}
	parts := strings.Split(strings.TrimPrefix(instanceLocation, "/"), "/")
	path := base
	for _, part := range parts {
		if isDigits(part) {
			path += "[" + part + "]"
		} else {
			path += "." + part
		}
	}
	return path
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
