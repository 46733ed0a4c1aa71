package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile    string
	configRoot string
	verbose    bool
)

// rootCmd is the application entry point.
var rootCmd = &cobra.Command{
	Use:   "barkit",
	Short: "Status bar configuration editor and validator",
	Long: `Barkit edits, validates, and backs up the YAML configuration of a
status bar. It keeps config.yaml and styles.css consistent, checks every
widget against a schema of known options, and signals the running bar to
reload after a save.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		setupLogging()
	},
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "settings", "", "tool settings file (default is $HOME/.barkit/settings.yaml)")
	rootCmd.PersistentFlags().StringVar(&configRoot, "config-root", "", "bar config directory (default $BARKIT_CONFIG_HOME or ~/.config/barkit)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
}

// initConfig loads tool settings from the settings file and environment.
// These are barkit's own preferences (reload command, schema source), not
// the bar configuration being edited.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			slog.Error("failed to find home directory", "error", err)
			os.Exit(1)
		}

		viper.AddConfigPath(home + "/.barkit")
		viper.SetConfigType("yaml")
		viper.SetConfigName("settings")
	}

	viper.SetEnvPrefix("BARKIT")
	viper.AutomaticEnv()

	viper.SetDefault("reload_command", "")
	viper.SetDefault("schema_source", "")
	viper.SetDefault("format", "table")
	viper.SetDefault("update_check", true)

	if err := viper.ReadInConfig(); err == nil {
		slog.Debug("using settings file", "file", viper.ConfigFileUsed())
	}
}

func setupLogging() {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	// Using TextHandler for CLI friendliness
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
}
