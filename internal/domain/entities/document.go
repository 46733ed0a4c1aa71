// Package entities contains the domain model for status-bar configuration
// documents. These are pure domain types with no infrastructure dependencies.
package entities

import "fmt"

// Document is the parsed form of config.yaml. It is the aggregate root for
// all configuration edits: bars own widgets, and the settings map holds
// global flags such as watch_config and update_check.
//
// Ownership is single-threaded: only the edit pipeline mutates a Document.
// Anything that needs a stable view (background save, diffing) takes a
// Clone first.
type Document struct {
	Settings map[string]interface{} `yaml:"settings,omitempty" json:"settings,omitempty"`
	Bars     []Bar                  `yaml:"bars" json:"bars"`
}

// Bar is a single status bar: where it sits on screen and which widgets it
// renders, in order.
type Bar struct {
	Name     string   `yaml:"name" json:"name"`
	Position string   `yaml:"position,omitempty" json:"position,omitempty"`
	Screen   string   `yaml:"screen,omitempty" json:"screen,omitempty"`
	Widgets  []Widget `yaml:"widgets" json:"widgets"`
}

// Widget is one status-bar element: a type tag plus a loosely-typed option
// mapping. The schema table constrains which keys are allowed per type.
type Widget struct {
	Type    string                 `yaml:"type" json:"type"`
	Options map[string]interface{} `yaml:"options,omitempty" json:"options,omitempty"`
}

// DefaultDocument returns the document written when no config exists yet.
func DefaultDocument() *Document {
	return &Document{
		Settings: map[string]interface{}{
			"watch_config":     true,
			"watch_stylesheet": true,
			"debug":            false,
			"update_check":     true,
		},
		Bars: []Bar{
			{
				Name:     "primary",
				Position: "top",
				Widgets: []Widget{
					{Type: "clock", Options: map[string]interface{}{"format": "%H:%M"}},
				},
			},
		},
	}
}

// Bar returns the bar with the given name, or nil.
func (d *Document) Bar(name string) *Bar {
	for i := range d.Bars {
		if d.Bars[i].Name == name {
			return &d.Bars[i]
		}
	}
	return nil
}

// WidgetCount returns the total number of widgets across all bars.
func (d *Document) WidgetCount() int {
	n := 0
	for i := range d.Bars {
		n += len(d.Bars[i].Widgets)
	}
	return n
}

// Setting returns a global setting, falling back to def when unset.
func (d *Document) Setting(key string, def interface{}) interface{} {
	if d.Settings == nil {
		return def
	}
	if v, ok := d.Settings[key]; ok {
		return v
	}
	return def
}

// SetSetting stores a global setting.
func (d *Document) SetSetting(key string, value interface{}) {
	if d.Settings == nil {
		d.Settings = make(map[string]interface{})
	}
	d.Settings[key] = value
}

// RemoveSetting drops a global setting if present.
func (d *Document) RemoveSetting(key string) {
	delete(d.Settings, key)
}

// DeleteWidget removes the widget at index idx from the named bar.
func (d *Document) DeleteWidget(barName string, idx int) error {
	bar := d.Bar(barName)
	if bar == nil {
		return fmt.Errorf("bar %q not found", barName)
	}
	if idx < 0 || idx >= len(bar.Widgets) {
		return fmt.Errorf("widget index %d out of range for bar %q", idx, barName)
	}
	bar.Widgets = append(bar.Widgets[:idx], bar.Widgets[idx+1:]...)
	return nil
}

// MoveWidget reorders a widget within the named bar.
func (d *Document) MoveWidget(barName string, from, to int) error {
	bar := d.Bar(barName)
	if bar == nil {
		return fmt.Errorf("bar %q not found", barName)
	}
	if from < 0 || from >= len(bar.Widgets) {
		return fmt.Errorf("widget index %d out of range for bar %q", from, barName)
	}
	if to < 0 || to >= len(bar.Widgets) {
		return fmt.Errorf("target index %d out of range for bar %q", to, barName)
	}
	w := bar.Widgets[from]
	bar.Widgets = append(bar.Widgets[:from], bar.Widgets[from+1:]...)
	bar.Widgets = append(bar.Widgets[:to], append([]Widget{w}, bar.Widgets[to:]...)...)
	return nil
}

// MoveWidgetToBar moves a widget from one bar to the end of another.
func (d *Document) MoveWidgetToBar(srcBar string, idx int, dstBar string) error {
	src := d.Bar(srcBar)
	if src == nil {
		return fmt.Errorf("bar %q not found", srcBar)
	}
	dst := d.Bar(dstBar)
	if dst == nil {
		return fmt.Errorf("bar %q not found", dstBar)
	}
	if idx < 0 || idx >= len(src.Widgets) {
		return fmt.Errorf("widget index %d out of range for bar %q", idx, srcBar)
	}
	w := src.Widgets[idx]
	src.Widgets = append(src.Widgets[:idx], src.Widgets[idx+1:]...)
	dst.Widgets = append(dst.Widgets, w)
	return nil
}

// DuplicateWidget inserts a deep copy of the widget at idx directly after the
// original and returns the new index.
func (d *Document) DuplicateWidget(barName string, idx int) (int, error) {
	bar := d.Bar(barName)
	if bar == nil {
		return 0, fmt.Errorf("bar %q not found", barName)
	}
	if idx < 0 || idx >= len(bar.Widgets) {
		return 0, fmt.Errorf("widget index %d out of range for bar %q", idx, barName)
	}
	dup := bar.Widgets[idx].Clone()
	newIdx := idx + 1
	bar.Widgets = append(bar.Widgets[:newIdx], append([]Widget{dup}, bar.Widgets[newIdx:]...)...)
	return newIdx, nil
}

// Clone returns a deep copy of the document. Background operations work on
// clones so the edit loop can keep mutating the original.
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	out := &Document{
		Settings: cloneMap(d.Settings),
		Bars:     make([]Bar, len(d.Bars)),
	}
	for i, b := range d.Bars {
		out.Bars[i] = b.Clone()
	}
	return out
}

// Clone returns a deep copy of the bar.
func (b Bar) Clone() Bar {
	out := b
	out.Widgets = make([]Widget, len(b.Widgets))
	for i, w := range b.Widgets {
		out.Widgets[i] = w.Clone()
	}
	return out
}

// Clone returns a deep copy of the widget.
func (w Widget) Clone() Widget {
	return Widget{Type: w.Type, Options: cloneMap(w.Options)}
}

func cloneMap(m map[string]interface{}) map[string]interface{} {
	if m == nil {
		return nil
	}
	out := make(map[string]interface{}, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v interface{}) interface{} {
	switch val := v.(type) {
	case map[string]interface{}:
		return cloneMap(val)
	case []interface{}:
		out := make([]interface{}, len(val))
		for i, elem := range val {
			out[i] = cloneValue(elem)
		}
		return out
	default:
		// Scalars are immutable.
		return v
	}
}
