package output

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barkit-dev/barkit/internal/domain/entities"
)

func sampleReport() *Report {
	return &Report{
		ConfigPath:  "/home/user/.config/barkit/config.yaml",
		ToolVersion: "0.1.0",
		GeneratedAt: time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC),
		Bars:        1,
		Widgets:     3,
		Findings: []entities.Finding{
			{
				Path:    "bars[0].widgets[2].api_key",
				Code:    entities.CodeMissingRequired,
				Message: `required option "api_key" is missing for widget type "weather"`,
			},
			{
				Path:    "bars[0].widgets[0].colour",
				Code:    entities.CodeUnknownOption,
				Message: `unknown option "colour" for widget type "clock"`,
			},
		},
	}
}

func cleanReport() *Report {
	r := sampleReport()
	r.Findings = nil
	return r
}

func TestReport_Valid(t *testing.T) {
	assert.False(t, sampleReport().Valid())
	assert.True(t, cleanReport().Valid())
}

func TestTableFormatter_Findings(t *testing.T) {
	var buf bytes.Buffer
	formatter := NewTableFormatter(&buf)
	formatter.EnableColor = false

	require.NoError(t, formatter.Format(sampleReport()))

	out := buf.String()
	assert.Contains(t, out, "bars[0].widgets[2].api_key")
	assert.Contains(t, out, string(entities.CodeMissingRequired))
	assert.Contains(t, out, "2 finding(s)")
}

func TestTableFormatter_Clean(t *testing.T) {
	var buf bytes.Buffer
	formatter := NewTableFormatter(&buf)
	formatter.EnableColor = false

	require.NoError(t, formatter.Format(cleanReport()))

	assert.Contains(t, buf.String(), "Configuration is valid")
}

func TestTableFormatter_ColorDisabled(t *testing.T) {
	var buf bytes.Buffer
	formatter := NewTableFormatter(&buf)
	formatter.EnableColor = false

	require.NoError(t, formatter.Format(sampleReport()))
	assert.NotContains(t, buf.String(), "\033[")
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONFormatter(&buf, true).Format(sampleReport()))

	var decoded Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	assert.Equal(t, "0.1.0", decoded.ToolVersion)
	require.Len(t, decoded.Findings, 2)
	assert.Equal(t, entities.CodeMissingRequired, decoded.Findings[0].Code)
}

func TestYAMLFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewYAMLFormatter(&buf).Format(sampleReport()))

	var decoded map[string]interface{}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))

	assert.Equal(t, "0.1.0", decoded["tool_version"])
}
