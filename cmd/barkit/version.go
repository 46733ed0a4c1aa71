package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/barkit-dev/barkit/internal/infrastructure/update"
	"github.com/barkit-dev/barkit/internal/version"
)

var versionCheck bool

// versionCmd implements the version command.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of barkit",
	RunE: func(cmd *cobra.Command, _ []string) error {
		info := version.Get()
		fmt.Printf("barkit version %s\n", info.Full())

		if !versionCheck {
			return nil
		}

		checker := update.NewChecker("")
		release, newer, err := checker.Check(cmd.Context(), info.Version)
		if err != nil {
			return err
		}
		if newer {
			fmt.Printf("Update available: %s (%s)\n", release.Version, release.URL)
		} else {
			fmt.Println("You are up to date.")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)

	versionCmd.Flags().BoolVar(&versionCheck, "check", false, "Check GitHub for a newer release")
}
