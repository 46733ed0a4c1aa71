package main

import (
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/barkit-dev/barkit/internal/infrastructure/reload"
	"github.com/barkit-dev/barkit/internal/infrastructure/watcher"
)

var (
	watchDebounce time.Duration
	watchReload   bool
)

// watchCmd revalidates the configuration whenever it changes on disk.
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the configuration and revalidate on change",
	Long: `Watch config.yaml and styles.css. On every change the config is
revalidated and findings are printed. With --reload a valid config also
triggers the bar reload command.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runWatch(cmd)
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", watcher.DefaultDebounce, "Delay before reacting to a burst of changes")
	watchCmd.Flags().BoolVar(&watchReload, "reload", false, "Signal the bar after each valid change")
}

func runWatch(cmd *cobra.Command) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	validator, err := buildValidator(false)
	if err != nil {
		return err
	}
	notifier := reload.NewNotifier(viper.GetString("reload_command"))

	w, err := watcher.New([]string{store.ConfigPath(), store.StylesPath()}, watchDebounce)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Watching %s (Ctrl+C to stop)\n", store.Root())

	err = w.Run(ctx, func(paths []string) {
		slog.Info("config changed", "paths", paths)

		doc, err := store.Load()
		if err != nil {
			slog.Error("failed to reload config", "error", err)
			return
		}

		result := validator.Validate(doc)
		if !result.Valid() {
			for _, finding := range result.Findings {
				fmt.Printf("✗ %s\n", finding.String())
			}
			return
		}

		fmt.Println("✓ Configuration is valid.")
		if watchReload {
			if err := notifier.Notify(ctx); err != nil {
				slog.Warn("failed to signal bar reload", "error", err)
			}
		}
	})
	if ctx.Err() != nil {
		return nil
	}
	return err
}
