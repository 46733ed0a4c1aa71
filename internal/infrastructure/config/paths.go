// Package config provides infrastructure for loading and saving the
// status-bar configuration files: YAML parsing, atomic file writes, and the
// .env store.
package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// ConfigFileName is the bar configuration inside the config root.
	ConfigFileName = "config.yaml"
	// StylesFileName is the stylesheet inside the config root.
	StylesFileName = "styles.css"
	// EnvFileName is the environment-variable file inside the config root.
	EnvFileName = ".env"

	// EnvConfigHome overrides the config root directory.
	EnvConfigHome = "BARKIT_CONFIG_HOME"
)

// ConfigRoot resolves the directory holding config.yaml and styles.css.
// BARKIT_CONFIG_HOME wins when set (relative values are resolved against the
// home directory, matching the bar's own lookup); the default is
// ~/.config/barkit.
func ConfigRoot() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to find home directory: %w", err)
	}

	if override := os.Getenv(EnvConfigHome); override != "" {
		if filepath.IsAbs(override) {
			return override, nil
		}
		return filepath.Join(home, override), nil
	}

	return filepath.Join(home, ".config", "barkit"), nil
}

// ToolDir resolves the directory for tool-level state (settings, schema
// database), ~/.barkit. It is created on demand.
func ToolDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to find home directory: %w", err)
	}
	dir := filepath.Join(home, ".barkit")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create tool directory: %w", err)
	}
	return dir, nil
}
