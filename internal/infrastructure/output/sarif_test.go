package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSARIFFormatter_Format(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, NewSARIFFormatter(&buf).Format(sampleReport()))

	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &raw))

	assert.Equal(t, "2.1.0", raw["version"])
	assert.Contains(t, raw, "$schema")

	runs := raw["runs"].([]interface{})
	require.Len(t, runs, 1)
	run := runs[0].(map[string]interface{})

	driver := run["tool"].(map[string]interface{})["driver"].(map[string]interface{})
	assert.Equal(t, "barkit", driver["name"])

	// One rule per distinct finding code.
	rules := driver["rules"].([]interface{})
	assert.Len(t, rules, 2)

	results := run["results"].([]interface{})
	require.Len(t, results, 2)

	first := results[0].(map[string]interface{})
	assert.Equal(t, "MissingRequired", first["ruleId"])
	assert.Equal(t, "error", first["level"])
	message := first["message"].(map[string]interface{})
	assert.Contains(t, message["text"], "bars[0].widgets[2].api_key")

	second := results[1].(map[string]interface{})
	assert.Equal(t, "warning", second["level"], "unknown options are warnings")
}

func TestSARIFFormatter_CleanReport(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, NewSARIFFormatter(&buf).Format(cleanReport()))

	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &raw))

	runs := raw["runs"].([]interface{})
	require.Len(t, runs, 1)
}
