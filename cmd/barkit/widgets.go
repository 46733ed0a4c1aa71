package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	domainservices "github.com/barkit-dev/barkit/internal/domain/services"
)

var widgetsFilter string

// widgetsCmd inspects and edits the widgets of the configuration.
var widgetsCmd = &cobra.Command{
	Use:   "widgets",
	Short: "Inspect and edit widgets",
}

var widgetsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List widgets across all bars",
	Long: `List every widget with its bar and index. --filter narrows the
list with an expression over bar, index, type, and options.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runWidgetsList(cmd)
	},
}

var widgetsRemoveCmd = &cobra.Command{
	Use:   "remove <bar> <index>",
	Short: "Remove a widget from a bar",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return mutateWidgets(cmd, func(e editorDoc) error {
			idx, err := parseIndex(args[1])
			if err != nil {
				return err
			}
			return e.DeleteWidget(args[0], idx)
		})
	},
}

var widgetsDuplicateCmd = &cobra.Command{
	Use:   "duplicate <bar> <index>",
	Short: "Duplicate a widget in place",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return mutateWidgets(cmd, func(e editorDoc) error {
			idx, err := parseIndex(args[1])
			if err != nil {
				return err
			}
			newIdx, err := e.DuplicateWidget(args[0], idx)
			if err != nil {
				return err
			}
			fmt.Printf("Duplicated %s[%d] to %s[%d]\n", args[0], idx, args[0], newIdx)
			return nil
		})
	},
}

var widgetsMoveCmd = &cobra.Command{
	Use:   "move <bar> <from> <to>",
	Short: "Move a widget within its bar",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return mutateWidgets(cmd, func(e editorDoc) error {
			from, err := parseIndex(args[1])
			if err != nil {
				return err
			}
			to, err := parseIndex(args[2])
			if err != nil {
				return err
			}
			return e.MoveWidget(args[0], from, to)
		})
	},
}

func init() {
	rootCmd.AddCommand(widgetsCmd)
	widgetsCmd.AddCommand(widgetsListCmd, widgetsRemoveCmd, widgetsDuplicateCmd, widgetsMoveCmd)

	widgetsListCmd.Flags().StringVar(&widgetsFilter, "filter", "", "Widget filter expression (e.g. \"type == 'clock'\")")
}

// editorDoc is the slice of document behavior the widget subcommands need.
type editorDoc interface {
	DeleteWidget(barName string, index int) error
	DuplicateWidget(barName string, index int) (int, error)
	MoveWidget(barName string, from, to int) error
}

func runWidgetsList(_ *cobra.Command) error {
	var filter *domainservices.WidgetFilter
	if widgetsFilter != "" {
		var err error
		filter, err = domainservices.CompileFilter(widgetsFilter)
		if err != nil {
			return err
		}
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	doc, err := store.Load()
	if err != nil {
		return err
	}

	refs, err := domainservices.SelectWidgets(doc, filter)
	if err != nil {
		return err
	}
	if len(refs) == 0 {
		fmt.Println("No widgets matched.")
		return nil
	}
	for _, ref := range refs {
		fmt.Printf("%-12s [%d] %s\n", ref.Bar, ref.Index, ref.Widget.Type)
	}
	return nil
}

// mutateWidgets loads the document, applies the edit, and saves through the
// editor so validation and the reload signal run.
func mutateWidgets(cmd *cobra.Command, edit func(editorDoc) error) error {
	editor, _, err := newEditor(false)
	if err != nil {
		return err
	}
	if err := editor.Load(cmd.Context()); err != nil {
		return err
	}
	if err := edit(editor.Document()); err != nil {
		return err
	}
	return editor.Save(cmd.Context())
}

func parseIndex(s string) (int, error) {
	idx, err := strconv.Atoi(s)
	if err != nil || idx < 0 {
		return 0, fmt.Errorf("invalid widget index: %s", s)
	}
	return idx, nil
}
