// Package schema defines the widget option schema table and the validator
// that checks documents against it.
package schema

import (
	"sort"

	"github.com/barkit-dev/barkit/internal/domain/values"
)

// OptionSpec describes a single widget option: its expected kind, whether it
// must be present, and the value used when it is absent.
type OptionSpec struct {
	Kind     values.OptionKind
	Default  interface{}
	Required bool
}

// WidgetSchema maps option names to their specs for one widget type.
type WidgetSchema map[string]OptionSpec

// Table is the static schema table keyed by widget type. The built-in table
// covers the widgets the bar ships with; entries fetched into the schema
// database extend it.
type Table struct {
	widgets map[string]WidgetSchema
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{widgets: make(map[string]WidgetSchema)}
}

// Builtin returns the schema table for the widget types the status bar ships
// with.
func Builtin() *Table {
	t := NewTable()
	t.widgets = map[string]WidgetSchema{
		"clock": {
			"format":          {Kind: values.KindString, Default: "%H:%M"},
			"timezone":        {Kind: values.KindString, Default: ""},
			"locale":          {Kind: values.KindString, Default: ""},
			"update_interval": {Kind: values.KindInt, Default: 1000},
		},
		"weather": {
			"api_key":         {Kind: values.KindString, Required: true},
			"location":        {Kind: values.KindString, Default: "auto"},
			"units":           {Kind: values.KindString, Default: "metric"},
			"update_interval": {Kind: values.KindInt, Default: 600000},
			"show_alerts":     {Kind: values.KindBool, Default: false},
		},
		"cpu": {
			"update_interval": {Kind: values.KindInt, Default: 2000},
			"show_graph":      {Kind: values.KindBool, Default: false},
			"histogram_icons": {Kind: values.KindList, Default: []interface{}{}},
		},
		"memory": {
			"update_interval": {Kind: values.KindInt, Default: 5000},
			"show_swap":       {Kind: values.KindBool, Default: false},
		},
		"battery": {
			"show_percentage": {Kind: values.KindBool, Default: true},
			"low_threshold":   {Kind: values.KindInt, Default: 20},
			"update_interval": {Kind: values.KindInt, Default: 10000},
		},
		"volume": {
			"step":      {Kind: values.KindInt, Default: 5},
			"mute_icon": {Kind: values.KindString, Default: ""},
		},
		"media": {
			"max_title_length": {Kind: values.KindInt, Default: 40},
			"show_artwork":     {Kind: values.KindBool, Default: true},
		},
		"workspaces": {
			"hide_empty": {Kind: values.KindBool, Default: false},
			"label":      {Kind: values.KindString, Default: "{index}"},
		},
		"active_window": {
			"max_length":        {Kind: values.KindInt, Default: 60},
			"monitor_exclusive": {Kind: values.KindBool, Default: false},
		},
		"custom": {
			"command":         {Kind: values.KindString, Required: true},
			"update_interval": {Kind: values.KindInt, Default: 5000},
			"return_format":   {Kind: values.KindString, Default: "plain"},
			"env":             {Kind: values.KindMap, Default: map[string]interface{}{}},
		},
	}
	return t
}

// Widget returns the schema for a widget type.
func (t *Table) Widget(widgetType string) (WidgetSchema, bool) {
	ws, ok := t.widgets[widgetType]
	return ws, ok
}

// Types returns all known widget types, sorted.
func (t *Table) Types() []string {
	types := make([]string, 0, len(t.widgets))
	for name := range t.widgets {
		types = append(types, name)
	}
	sort.Strings(types)
	return types
}

// Extend merges a widget schema into the table. Options already present keep
// their built-in spec; new widget types and new options are added.
func (t *Table) Extend(widgetType string, ws WidgetSchema) {
	existing, ok := t.widgets[widgetType]
	if !ok {
		existing = make(WidgetSchema, len(ws))
		t.widgets[widgetType] = existing
	}
	for name, spec := range ws {
		if _, present := existing[name]; !present {
			existing[name] = spec
		}
	}
}
