package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/barkit-dev/barkit/internal/domain/entities"
	domainschema "github.com/barkit-dev/barkit/internal/domain/schema"
	"github.com/barkit-dev/barkit/internal/domain/values"
)

type initOptions struct {
	BarName       string
	Position      string
	Widgets       []string
	Force         bool
	NoInteractive bool
}

// initCmd creates a fresh bar configuration.
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a new bar configuration",
	Long: `Create config.yaml and styles.css in the config directory. Without
--no-interactive a short wizard asks for the bar layout.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runInit(cmd)
	},
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().String("bar-name", "primary", "Name of the first bar")
	initCmd.Flags().String("position", "top", "Bar position: top or bottom")
	initCmd.Flags().StringSlice("widgets", nil, "Widget types for the first bar (comma-separated)")
	initCmd.Flags().Bool("force", false, "Overwrite an existing configuration")
	initCmd.Flags().Bool("no-interactive", false, "Skip the wizard and use flags/defaults")
}

func runInit(cmd *cobra.Command) error {
	opts := initOptions{}
	opts.BarName, _ = cmd.Flags().GetString("bar-name")
	opts.Position, _ = cmd.Flags().GetString("position")
	opts.Widgets, _ = cmd.Flags().GetStringSlice("widgets")
	opts.Force, _ = cmd.Flags().GetBool("force")
	opts.NoInteractive, _ = cmd.Flags().GetBool("no-interactive")

	store, err := openStore()
	if err != nil {
		return err
	}

	if _, err := os.Stat(store.ConfigPath()); err == nil && !opts.Force {
		if opts.NoInteractive {
			return fmt.Errorf("%s already exists (use --force to overwrite)", store.ConfigPath())
		}
		overwrite := false
		err = huh.NewConfirm().
			Title(fmt.Sprintf("%s already exists. Overwrite?", store.ConfigPath())).
			Value(&overwrite).
			Run()
		if err != nil {
			return err
		}
		if !overwrite {
			return fmt.Errorf("aborted")
		}
	}

	if !opts.NoInteractive {
		err = huh.NewInput().
			Title("Bar name").
			Value(&opts.BarName).
			Run()
		if err != nil {
			return err
		}

		err = huh.NewSelect[string]().
			Title("Bar position").
			Options(
				huh.NewOption("Top of screen", "top"),
				huh.NewOption("Bottom of screen", "bottom"),
			).
			Value(&opts.Position).
			Run()
		if err != nil {
			return err
		}

		if len(opts.Widgets) == 0 {
			err = huh.NewMultiSelect[string]().
				Title("Select widgets").
				Options(widgetOptions()...).
				Value(&opts.Widgets).
				Run()
			if err != nil {
				return err
			}
		}
	}

	doc, err := buildInitialDocument(opts)
	if err != nil {
		return err
	}

	// Options without defaults (weather's api_key) cannot be filled in here;
	// point at them instead of writing silently.
	if result := domainschema.NewValidator(domainschema.Builtin()).Validate(doc); !result.Valid() {
		for _, finding := range result.Findings {
			fmt.Printf("⚠ %s\n", finding.String())
		}
	}

	if err := store.Save(doc); err != nil {
		return err
	}
	if err := store.SaveStyles(defaultStyles); err != nil {
		return err
	}

	fmt.Printf("✓ Configuration written to %s\n", store.ConfigPath())
	return nil
}

// widgetOptions lists the built-in widget types for the wizard, with a
// sensible starter set preselected.
func widgetOptions() []huh.Option[string] {
	preselected := map[string]bool{"clock": true, "cpu": true, "memory": true}

	var opts []huh.Option[string]
	for _, t := range domainschema.Builtin().Types() {
		opt := huh.NewOption(t, t)
		if preselected[t] {
			opt = opt.Selected(true)
		}
		opts = append(opts, opt)
	}
	return opts
}

// buildInitialDocument assembles the document described by the wizard or
// flags. Only options with defaults are filled in; required options without
// one stay absent so a later check points the user at what to fill in.
func buildInitialDocument(opts initOptions) (*entities.Document, error) {
	if _, err := values.ParsePosition(opts.Position); err != nil {
		return nil, err
	}

	doc := entities.DefaultDocument()
	if opts.NoInteractive && len(opts.Widgets) == 0 {
		return doc, nil
	}

	bar := entities.Bar{
		Name:     opts.BarName,
		Position: opts.Position,
		Screen:   "primary",
	}
	table := domainschema.Builtin()
	for _, t := range opts.Widgets {
		ws, ok := table.Widget(t)
		if !ok {
			return nil, fmt.Errorf("unknown widget type %q (run `barkit schema list` for known types)", t)
		}
		w := entities.Widget{Type: t, Options: map[string]interface{}{}}
		for name, spec := range ws {
			if spec.Default != nil {
				w.Options[name] = spec.Default
			}
		}
		bar.Widgets = append(bar.Widgets, w)
	}
	doc.Bars = []entities.Bar{bar}
	return doc, nil
}

const defaultStyles = `/* Bar stylesheet. Selectors follow widget type names. */
.bar {
  font-family: monospace;
  font-size: 13px;
}

.clock {
  padding: 0 8px;
}
`
