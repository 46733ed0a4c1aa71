package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/barkit-dev/barkit/internal/infrastructure/backup"
)

var exportForce bool

// exportCmd bundles the configuration into a ZIP backup.
var exportCmd = &cobra.Command{
	Use:   "export <backup.zip>",
	Short: "Export the configuration as a ZIP backup",
	Long: `Bundle config.yaml, styles.css, and .env (when present) into a ZIP
archive. The archive is written atomically so an interrupted export never
leaves a truncated backup.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExport(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().BoolVar(&exportForce, "force", false, "Overwrite an existing archive without asking")
}

func runExport(cmd *cobra.Command, dest string) error {
	root, err := resolveConfigRoot()
	if err != nil {
		return err
	}

	if _, err := os.Stat(dest); err == nil && !exportForce {
		overwrite := false
		err = huh.NewConfirm().
			Title(fmt.Sprintf("%s already exists. Overwrite?", dest)).
			Value(&overwrite).
			Run()
		if err != nil {
			return err
		}
		if !overwrite {
			return fmt.Errorf("aborted")
		}
	}

	exporter := backup.NewExporter()
	if err := exporter.Export(cmd.Context(), root, dest); err != nil {
		return err
	}

	fmt.Printf("✓ Backup written to %s\n", dest)
	return nil
}
