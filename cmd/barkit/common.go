package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/viper"

	appservices "github.com/barkit-dev/barkit/internal/application/services"
	domainschema "github.com/barkit-dev/barkit/internal/domain/schema"
	"github.com/barkit-dev/barkit/internal/infrastructure/config"
	"github.com/barkit-dev/barkit/internal/infrastructure/reload"
	"github.com/barkit-dev/barkit/internal/infrastructure/schema"
)

// resolveConfigRoot returns the bar config directory, preferring the
// --config-root flag over $BARKIT_CONFIG_HOME over the default.
func resolveConfigRoot() (string, error) {
	if configRoot != "" {
		return configRoot, nil
	}
	return config.ConfigRoot()
}

// openStore creates a store over the resolved config root.
func openStore() (*config.Store, error) {
	root, err := resolveConfigRoot()
	if err != nil {
		return nil, err
	}
	return config.NewStore(root), nil
}

// loadSchemaDatabase reads the cached widget schema database from the tool
// directory. A missing database is empty, not an error.
func loadSchemaDatabase() (*schema.Database, string, error) {
	toolDir, err := config.ToolDir()
	if err != nil {
		return nil, "", err
	}
	dbPath := schema.DatabasePath(toolDir)
	db, err := schema.LoadDatabase(dbPath)
	if err != nil {
		return nil, dbPath, err
	}
	return db, dbPath, nil
}

// buildTable returns the built-in schema table extended with any cached
// widget schemas.
func buildTable() (*domainschema.Table, *schema.Database, error) {
	table := domainschema.Builtin()
	db, _, err := loadSchemaDatabase()
	if err != nil {
		return nil, nil, err
	}
	db.ExtendTable(table)
	return table, db, nil
}

// buildValidator assembles a validator, optionally in strict mode where
// cached JSON schemas are enforced in full.
func buildValidator(strict bool) (*domainschema.Validator, error) {
	table, db, err := buildTable()
	if err != nil {
		return nil, err
	}
	if strict {
		return domainschema.NewStrictValidator(table, db.RawSchemas())
	}
	return domainschema.NewValidator(table), nil
}

// newEditor wires an editor over the resolved config root.
func newEditor(strict bool) (*appservices.Editor, *config.Store, error) {
	store, err := openStore()
	if err != nil {
		return nil, nil, err
	}
	validator, err := buildValidator(strict)
	if err != nil {
		return nil, nil, err
	}
	notifier := reload.NewNotifier(viper.GetString("reload_command"))
	return appservices.NewEditor(store, validator, notifier), store, nil
}

// outputWriter opens the output destination, stdout when path is empty. The
// returned closer is a no-op for stdout.
func outputWriter(path string) (io.Writer, func(), error) {
	if path == "" {
		return os.Stdout, func() {}, nil
	}
	//nolint:gosec // G304: User-controlled output file path is intentional
	file, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return file, func() { _ = file.Close() }, nil
}
