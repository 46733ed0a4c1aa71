package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/barkit-dev/barkit/internal/infrastructure/schema"
)

var schemaSource string

// schemaCmd manages the cached widget schema database.
var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Manage the widget schema database",
	Long: `The bar publishes a JSON schema describing every widget and its
options. barkit caches it locally and merges it into the built-in table so
check recognizes widgets added after this release.`,
}

var schemaUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Fetch the latest widget schemas",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		source := schemaSource
		if source == "" {
			source = viper.GetString("schema_source")
		}

		_, dbPath, err := loadSchemaDatabase()
		if err != nil {
			return err
		}

		fetcher := schema.NewFetcher(source)
		count, err := fetcher.Update(cmd.Context(), dbPath)
		if err != nil {
			return err
		}

		fmt.Printf("✓ Cached %d widget schemas in %s\n", count, dbPath)
		return nil
	},
}

var schemaListCmd = &cobra.Command{
	Use:   "list",
	Short: "List known widget types",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		table, db, err := buildTable()
		if err != nil {
			return err
		}

		cached := map[string]bool{}
		for _, t := range db.Types() {
			cached[t] = true
		}

		for _, t := range table.Types() {
			origin := "built-in"
			if cached[t] {
				origin = "cached"
			}
			fmt.Printf("%-16s %s\n", t, origin)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(schemaCmd)
	schemaCmd.AddCommand(schemaUpdateCmd, schemaListCmd)

	schemaUpdateCmd.Flags().StringVar(&schemaSource, "source", "", "Schema URL (default from settings or the bar's repository)")
}
