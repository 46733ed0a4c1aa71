package backup

import (
	"archive/zip"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barkit-dev/barkit/internal/domain/entities"
)

func writeConfigRoot(t *testing.T, withEnv bool) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "config.yaml"), []byte("bars: []\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "styles.css"), []byte(".bar {}\n"), 0o644))
	if withEnv {
		require.NoError(t, os.WriteFile(filepath.Join(root, ".env"), []byte("KEY=value\n"), 0o644))
	}
	return root
}

func readArchive(t *testing.T, path string) map[string]string {
	t.Helper()
	r, err := zip.OpenReader(path)
	require.NoError(t, err)
	defer func() {
		_ = r.Close()
	}()

	contents := map[string]string{}
	for _, f := range r.File {
		rc, err := f.Open()
		require.NoError(t, err)
		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		_ = rc.Close()
		contents[f.Name] = string(data)
	}
	return contents
}

func TestExport(t *testing.T) {
	root := writeConfigRoot(t, true)
	dest := filepath.Join(t.TempDir(), "backup.zip")

	err := NewExporter().Export(context.Background(), root, dest)
	require.NoError(t, err)

	contents := readArchive(t, dest)
	assert.Equal(t, "bars: []\n", contents["config.yaml"])
	assert.Equal(t, ".bar {}\n", contents["styles.css"])
	assert.Equal(t, "KEY=value\n", contents[".env"])
}

func TestExport_EnvIsOptional(t *testing.T) {
	root := writeConfigRoot(t, false)
	dest := filepath.Join(t.TempDir(), "backup.zip")

	err := NewExporter().Export(context.Background(), root, dest)
	require.NoError(t, err)

	contents := readArchive(t, dest)
	assert.Len(t, contents, 2)
	assert.NotContains(t, contents, ".env")
}

func TestExport_MissingConfigFails(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "styles.css"), []byte(""), 0o644))
	dest := filepath.Join(t.TempDir(), "backup.zip")

	err := NewExporter().Export(context.Background(), root, dest)

	var archiveErr *entities.ArchiveError
	require.ErrorAs(t, err, &archiveErr)
	assert.Equal(t, dest, archiveErr.Dest)

	_, statErr := os.Stat(dest)
	assert.True(t, os.IsNotExist(statErr), "no partial archive left behind")
}

func TestExport_LeavesNoTempFiles(t *testing.T) {
	root := writeConfigRoot(t, false)
	destDir := t.TempDir()
	dest := filepath.Join(destDir, "backup.zip")

	require.NoError(t, NewExporter().Export(context.Background(), root, dest))

	entries, err := os.ReadDir(destDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "backup.zip", entries[0].Name())
}

func TestExport_OverwritesExisting(t *testing.T) {
	root := writeConfigRoot(t, false)
	dest := filepath.Join(t.TempDir(), "backup.zip")
	require.NoError(t, os.WriteFile(dest, []byte("old junk"), 0o644))

	require.NoError(t, NewExporter().Export(context.Background(), root, dest))

	contents := readArchive(t, dest)
	assert.Contains(t, contents, "config.yaml")
}
