package schema

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainschema "github.com/barkit-dev/barkit/internal/domain/schema"
	"github.com/barkit-dev/barkit/internal/domain/values"
)

func sampleDatabase() *Database {
	return &Database{
		Meta: Meta{Version: 1, Source: "https://example.com/schema.json", Updated: time.Now().UTC()},
		Widgets: map[string]WidgetEntry{
			"pomodoro": {
				Options: map[string]OptionEntry{
					"work_minutes": {Kind: "integer", Default: float64(25)},
					"label":        {Kind: "string", Required: true},
				},
				Raw: []byte(`{"type":"object"}`),
			},
			"clock": {
				Options: map[string]OptionEntry{
					// Built-in "format" is string; fetched spec must not win.
					"format": {Kind: "integer"},
					"blink":  {Kind: "boolean"},
				},
			},
		},
	}
}

func TestLoadDatabase_Missing(t *testing.T) {
	db, err := LoadDatabase(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)
	assert.True(t, db.Empty())
}

func TestLoadDatabase_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "widget_schemas.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := LoadDatabase(path)
	assert.Error(t, err)
}

func TestDatabase_SaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "widget_schemas.json")
	db := sampleDatabase()

	require.NoError(t, db.Save(path))

	loaded, err := LoadDatabase(path)
	require.NoError(t, err)
	assert.Equal(t, db.Meta.Source, loaded.Meta.Source)
	assert.Equal(t, []string{"clock", "pomodoro"}, loaded.Types())
	assert.Equal(t, "integer", loaded.Widgets["pomodoro"].Options["work_minutes"].Kind)
}

func TestDatabase_ExtendTable(t *testing.T) {
	table := domainschema.Builtin()
	sampleDatabase().ExtendTable(table)

	// New widget type is added with its specs.
	ws, ok := table.Widget("pomodoro")
	require.True(t, ok)
	assert.Equal(t, values.KindInt, ws["work_minutes"].Kind)
	assert.True(t, ws["label"].Required)

	// Built-in option specs win over fetched ones; new options are merged.
	clock, ok := table.Widget("clock")
	require.True(t, ok)
	assert.Equal(t, values.KindString, clock["format"].Kind)
	assert.Equal(t, values.KindBool, clock["blink"].Kind)
}

func TestDatabase_RawSchemas(t *testing.T) {
	raw := sampleDatabase().RawSchemas()

	require.Contains(t, raw, "pomodoro")
	assert.NotContains(t, raw, "clock", "entries without raw schemas are skipped")
}
