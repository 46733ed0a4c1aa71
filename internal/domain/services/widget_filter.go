package services

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/barkit-dev/barkit/internal/domain/entities"
)

// WidgetEnv is the expression environment for widget filters. Filter
// expressions evaluate against one widget at a time, e.g.
//
//	type == 'weather'
//	bar == 'primary' && index < 3
type WidgetEnv struct {
	Bar     string                 `expr:"bar"`
	Index   int                    `expr:"index"`
	Type    string                 `expr:"type"`
	Options map[string]interface{} `expr:"options"`
}

// WidgetFilter is a compiled widget selection expression.
type WidgetFilter struct {
	program *vm.Program
	source  string
}

// CompileFilter compiles a boolean filter expression. Compilation happens
// once so a bad expression fails before any document work starts.
func CompileFilter(source string) (*WidgetFilter, error) {
	program, err := expr.Compile(source,
		expr.Env(WidgetEnv{}),
		expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("invalid filter expression: %w", err)
	}
	return &WidgetFilter{program: program, source: source}, nil
}

// Match evaluates the filter against one widget.
func (f *WidgetFilter) Match(env WidgetEnv) (bool, error) {
	out, err := expr.Run(f.program, env)
	if err != nil {
		return false, fmt.Errorf("filter %q failed: %w", f.source, err)
	}
	matched, ok := out.(bool)
	if !ok {
		return false, fmt.Errorf("filter %q did not produce a boolean", f.source)
	}
	return matched, nil
}

// WidgetRef locates a widget within a document.
type WidgetRef struct {
	Bar      string
	BarIndex int
	Index    int
	Widget   entities.Widget
}

// SelectWidgets returns the widgets matching the filter in document order.
// A nil filter selects everything.
func SelectWidgets(doc *entities.Document, filter *WidgetFilter) ([]WidgetRef, error) {
	var refs []WidgetRef
	for bi := range doc.Bars {
		bar := &doc.Bars[bi]
		for wi := range bar.Widgets {
			if filter != nil {
				matched, err := filter.Match(WidgetEnv{
					Bar:     bar.Name,
					Index:   wi,
					Type:    bar.Widgets[wi].Type,
					Options: bar.Widgets[wi].Options,
				})
				if err != nil {
					return nil, err
				}
				if !matched {
					continue
				}
			}
			refs = append(refs, WidgetRef{
				Bar:      bar.Name,
				BarIndex: bi,
				Index:    wi,
				Widget:   bar.Widgets[wi],
			})
		}
	}
	return refs, nil
}
