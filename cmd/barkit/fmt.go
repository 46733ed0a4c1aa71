package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// fmtCmd rewrites config.yaml in canonical form.
var fmtCmd = &cobra.Command{
	Use:   "fmt",
	Short: "Rewrite the configuration in canonical form",
	Long: `Load config.yaml and write it back normalized: empty options
dropped, numeric strings converted, keys in canonical order, two-space
indentation.`,
	Args: cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		return runFmt()
	},
}

func init() {
	rootCmd.AddCommand(fmtCmd)
}

func runFmt() error {
	store, err := openStore()
	if err != nil {
		return err
	}

	doc, err := store.Load()
	if err != nil {
		return err
	}
	if err := store.Save(doc); err != nil {
		return err
	}

	fmt.Printf("✓ Formatted %s\n", store.ConfigPath())
	return nil
}
