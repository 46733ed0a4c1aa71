// Package schema provides infrastructure for the widget schema database:
// fetching the published JSON Schema and caching per-widget option schemas
// locally.
package schema

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	domainschema "github.com/barkit-dev/barkit/internal/domain/schema"
	"github.com/barkit-dev/barkit/internal/domain/values"
)

// DatabaseFileName is the schema cache file inside the tool directory.
const DatabaseFileName = "widget_schemas.json"

// Database is the locally cached widget schema set.
type Database struct {
	Meta    Meta                   `json:"_meta"`
	Widgets map[string]WidgetEntry `json:"widgets"`
}

// Meta records where the database came from and when.
type Meta struct {
	Version int       `json:"version"`
	Source  string    `json:"source"`
	Updated time.Time `json:"updated"`
}

// WidgetEntry holds the extracted option table for one widget type plus the
// raw options schema for strict validation.
type WidgetEntry struct {
	Options map[string]OptionEntry `json:"options"`
	Raw     json.RawMessage        `json:"raw,omitempty"`
}

// OptionEntry is the serialized form of a schema table option spec.
type OptionEntry struct {
	Kind     string      `json:"kind"`
	Default  interface{} `json:"default,omitempty"`
	Required bool        `json:"required,omitempty"`
}

// LoadDatabase reads the cache file. A missing file yields an empty database
// without error, so the tool works before the first `schema update`.
func LoadDatabase(path string) (*Database, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Database{Widgets: map[string]WidgetEntry{}}, nil
		}
		return nil, fmt.Errorf("failed to read schema database: %w", err)
	}

	var db Database
	if err := json.Unmarshal(data, &db); err != nil {
		return nil, fmt.Errorf("failed to parse schema database: %w", err)
	}
	if db.Widgets == nil {
		db.Widgets = map[string]WidgetEntry{}
	}
	return &db, nil
}

// Save writes the database, creating parent directories as needed.
func (db *Database) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create schema database directory: %w", err)
	}

	data, err := json.MarshalIndent(db, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode schema database: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".schemas.tmp-*")
	if err != nil {
		return fmt.Errorf("failed to write schema database: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to write schema database: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to write schema database: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to write schema database: %w", err)
	}
	return nil
}

// Empty reports whether the database holds no widget schemas.
func (db *Database) Empty() bool {
	return len(db.Widgets) == 0
}

// Types returns the widget types in the database, sorted.
func (db *Database) Types() []string {
	types := make([]string, 0, len(db.Widgets))
	for name := range db.Widgets {
		types = append(types, name)
	}
	sort.Strings(types)
	return types
}

// ExtendTable merges the database entries into a schema table. Built-in
// specs win; fetched options fill the gaps.
func (db *Database) ExtendTable(t *domainschema.Table) {
	for widgetType, entry := range db.Widgets {
		ws := make(domainschema.WidgetSchema, len(entry.Options))
		for name, opt := range entry.Options {
			kind, err := values.ParseOptionKind(opt.Kind)
			if err != nil {
				continue
			}
			ws[name] = domainschema.OptionSpec{
				Kind:     kind,
				Default:  opt.Default,
				Required: opt.Required,
			}
		}
		t.Extend(widgetType, ws)
	}
}

// RawSchemas returns the raw per-widget option schemas for strict
// validation.
func (db *Database) RawSchemas() map[string][]byte {
	out := make(map[string][]byte)
	for widgetType, entry := range db.Widgets {
		if len(entry.Raw) > 0 {
			out[widgetType] = entry.Raw
		}
	}
	return out
}

// DatabasePath returns the schema cache path inside the tool directory.
func DatabasePath(toolDir string) string {
	return filepath.Join(toolDir, DatabaseFileName)
}
