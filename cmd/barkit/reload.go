package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/barkit-dev/barkit/internal/infrastructure/reload"
)

// reloadCmd signals the running bar to pick up the current configuration.
var reloadCmd = &cobra.Command{
	Use:   "reload",
	Short: "Signal the bar to reload its configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		command := viper.GetString("reload_command")
		if command == "" {
			return fmt.Errorf("no reload_command configured (set it in the settings file or BARKIT_RELOAD_COMMAND)")
		}

		notifier := reload.NewNotifier(command)
		if err := notifier.Notify(cmd.Context()); err != nil {
			return err
		}

		fmt.Println("✓ Reload signaled.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reloadCmd)
}
