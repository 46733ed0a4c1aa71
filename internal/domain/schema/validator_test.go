package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barkit-dev/barkit/internal/domain/entities"
	"github.com/barkit-dev/barkit/internal/domain/values"
)

func validDocument() *entities.Document {
	return &entities.Document{
		Bars: []entities.Bar{
			{
				Name: "primary",
				Widgets: []entities.Widget{
					{Type: "clock", Options: map[string]interface{}{"format": "%H:%M"}},
					{Type: "cpu", Options: map[string]interface{}{"update_interval": 2000}},
					{Type: "weather", Options: map[string]interface{}{"api_key": "abc123"}},
				},
			},
		},
	}
}

func TestValidate_ValidDocument(t *testing.T) {
	v := NewValidator(Builtin())

	result := v.Validate(validDocument())

	assert.True(t, result.Valid())
	assert.Empty(t, result.Findings)
}

func TestValidate_MissingRequiredOption(t *testing.T) {
	doc := validDocument()
	delete(doc.Bars[0].Widgets[2].Options, "api_key")

	v := NewValidator(Builtin())
	result := v.Validate(doc)

	require.Len(t, result.Findings, 1)
	finding := result.Findings[0]
	assert.Equal(t, "bars[0].widgets[2].api_key", finding.Path)
	assert.Equal(t, entities.CodeMissingRequired, finding.Code)
	assert.Contains(t, finding.Message, "api_key")
}

func TestValidate_UnknownOption_NamesTheKey(t *testing.T) {
	doc := validDocument()
	doc.Bars[0].Widgets[0].Options["colour"] = "red"

	v := NewValidator(Builtin())
	result := v.Validate(doc)

	require.Len(t, result.Findings, 1)
	finding := result.Findings[0]
	assert.Equal(t, "bars[0].widgets[0].colour", finding.Path)
	assert.Equal(t, entities.CodeUnknownOption, finding.Code)
	assert.Contains(t, finding.Message, `"colour"`)
}

func TestValidate_TypeMismatch(t *testing.T) {
	doc := validDocument()
	doc.Bars[0].Widgets[1].Options["update_interval"] = "fast"

	v := NewValidator(Builtin())
	result := v.Validate(doc)

	require.Len(t, result.Findings, 1)
	finding := result.Findings[0]
	assert.Equal(t, "bars[0].widgets[1].update_interval", finding.Path)
	assert.Equal(t, entities.CodeTypeMismatch, finding.Code)
}

func TestValidate_UnknownWidgetType(t *testing.T) {
	doc := validDocument()
	doc.Bars[0].Widgets = append(doc.Bars[0].Widgets, entities.Widget{
		Type:    "teleporter",
		Options: map[string]interface{}{"anything": 1},
	})

	v := NewValidator(Builtin())
	result := v.Validate(doc)

	require.Len(t, result.Findings, 1)
	finding := result.Findings[0]
	assert.Equal(t, "bars[0].widgets[3].type", finding.Path)
	assert.Equal(t, entities.CodeUnknownWidgetType, finding.Code)
	// Options of an unknown type are not reported individually.
}

func TestValidate_NilOptionValueSkipsTypeCheck(t *testing.T) {
	doc := validDocument()
	doc.Bars[0].Widgets[0].Options["timezone"] = nil

	v := NewValidator(Builtin())
	result := v.Validate(doc)

	assert.True(t, result.Valid())
}

func TestValidate_FloatAcceptedForInt(t *testing.T) {
	// JSON round-trips turn ints into float64; an integral float is fine.
	doc := validDocument()
	doc.Bars[0].Widgets[1].Options["update_interval"] = float64(2000)

	v := NewValidator(Builtin())
	result := v.Validate(doc)

	assert.True(t, result.Valid())
}

func TestValidate_Idempotent(t *testing.T) {
	doc := validDocument()
	delete(doc.Bars[0].Widgets[2].Options, "api_key")
	doc.Bars[0].Widgets[0].Options["colour"] = "red"

	v := NewValidator(Builtin())
	first := v.Validate(doc)
	second := v.Validate(doc)

	assert.Equal(t, first.Findings, second.Findings)
}

func TestValidate_MultipleFindingsAreOrdered(t *testing.T) {
	doc := &entities.Document{
		Bars: []entities.Bar{
			{
				Name: "primary",
				Widgets: []entities.Widget{
					{Type: "weather", Options: map[string]interface{}{
						"zebra": 1,
						"alpha": 2,
					}},
				},
			},
		},
	}

	v := NewValidator(Builtin())
	result := v.Validate(doc)

	require.Len(t, result.Findings, 3)
	assert.Equal(t, "bars[0].widgets[0].alpha", result.Findings[0].Path)
	assert.Equal(t, "bars[0].widgets[0].zebra", result.Findings[1].Path)
	assert.Equal(t, "bars[0].widgets[0].api_key", result.Findings[2].Path)
}

func TestStrictValidator_SchemaViolation(t *testing.T) {
	raw := map[string][]byte{
		"weather": []byte(`{
			"type": "object",
			"properties": {
				"api_key": {"type": "string", "minLength": 8},
				"units": {"enum": ["metric", "imperial"]}
			}
		}`),
	}

	v, err := NewStrictValidator(Builtin(), raw)
	require.NoError(t, err)

	doc := validDocument()
	doc.Bars[0].Widgets[2].Options["api_key"] = "short"

	result := v.Validate(doc)

	require.NotEmpty(t, result.Findings)
	finding := result.Findings[0]
	assert.Equal(t, entities.CodeSchemaViolation, finding.Code)
	assert.Equal(t, "bars[0].widgets[2].api_key", finding.Path)
}

func TestStrictValidator_RejectsBadSchema(t *testing.T) {
	raw := map[string][]byte{
		"weather": []byte(`{"type": 42}`),
	}

	_, err := NewStrictValidator(Builtin(), raw)
	assert.Error(t, err)
}

func TestTable_Extend_BuiltinWins(t *testing.T) {
	table := Builtin()
	table.Extend("clock", WidgetSchema{
		"format": {Kind: values.KindString, Required: true},
		"blink":  {Kind: values.KindString},
	})

	ws, ok := table.Widget("clock")
	require.True(t, ok)
	assert.False(t, ws["format"].Required)
	_, hasBlink := ws["blink"]
	assert.True(t, hasBlink)
}
