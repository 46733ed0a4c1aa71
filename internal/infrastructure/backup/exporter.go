// Package backup bundles the configuration files into a ZIP archive for
// backup and restore.
package backup

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mholt/archives"

	"github.com/barkit-dev/barkit/internal/domain/entities"
	"github.com/barkit-dev/barkit/internal/infrastructure/config"
)

// Exporter writes config backups.
type Exporter struct{}

// NewExporter creates an exporter.
func NewExporter() *Exporter {
	return &Exporter{}
}

// Export collects config.yaml, styles.css, and .env (when present) from the
// config root into a ZIP archive at dest. The archive is written to a temp
// file in the destination directory and renamed into place.
func (e *Exporter) Export(ctx context.Context, configRoot, dest string) error {
	sources := map[string]string{}

	for _, name := range []string{config.ConfigFileName, config.StylesFileName} {
		path := filepath.Join(configRoot, name)
		if _, err := os.Stat(path); err != nil {
			return &entities.ArchiveError{Dest: dest, Cause: fmt.Errorf("source %s: %w", name, err)}
		}
		sources[path] = name
	}

	// The .env file is optional.
	envPath := filepath.Join(configRoot, config.EnvFileName)
	if _, err := os.Stat(envPath); err == nil {
		sources[envPath] = config.EnvFileName
	}

	files, err := archives.FilesFromDisk(ctx, nil, sources)
	if err != nil {
		return &entities.ArchiveError{Dest: dest, Cause: err}
	}

	tmp, err := os.CreateTemp(filepath.Dir(dest), ".barkit-export-*.zip")
	if err != nil {
		return &entities.ArchiveError{Dest: dest, Cause: err}
	}
	tmpName := tmp.Name()

	format := archives.Zip{}
	if err := format.Archive(ctx, tmp, files); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return &entities.ArchiveError{Dest: dest, Cause: err}
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return &entities.ArchiveError{Dest: dest, Cause: err}
	}
	if err := os.Rename(tmpName, dest); err != nil {
		_ = os.Remove(tmpName)
		return &entities.ArchiveError{Dest: dest, Cause: err}
	}
	return nil
}
