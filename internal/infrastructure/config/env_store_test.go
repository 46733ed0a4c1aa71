package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvStore_LoadMissingFile(t *testing.T) {
	store := NewEnvStore(filepath.Join(t.TempDir(), ".env"))

	vars, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, vars)
}

func TestEnvStore_Load(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := `
WEATHER_API_KEY=abc123
# GITHUB_TOKEN=ghp_secret
QUOTED="hello world"
SINGLE='single quoted'
not a variable line
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	store := NewEnvStore(path)
	vars, err := store.Load()
	require.NoError(t, err)

	require.Len(t, vars, 4)
	assert.Equal(t, EnvVar{Name: "WEATHER_API_KEY", Value: "abc123", Enabled: true}, vars[0])
	assert.Equal(t, EnvVar{Name: "GITHUB_TOKEN", Value: "ghp_secret", Enabled: false}, vars[1])
	assert.Equal(t, EnvVar{Name: "QUOTED", Value: "hello world", Enabled: true}, vars[2])
	assert.Equal(t, EnvVar{Name: "SINGLE", Value: "single quoted", Enabled: true}, vars[3])
}

func TestEnvStore_SaveRoundTrip(t *testing.T) {
	store := NewEnvStore(filepath.Join(t.TempDir(), ".env"))
	vars := []EnvVar{
		{Name: "API_KEY", Value: "abc", Enabled: true},
		{Name: "DISABLED", Value: "kept around", Enabled: false},
		{Name: "", Value: "skipped", Enabled: true},
	}

	require.NoError(t, store.Save(vars))

	loaded, err := store.Load()
	require.NoError(t, err)

	require.Len(t, loaded, 2)
	assert.Equal(t, EnvVar{Name: "API_KEY", Value: "abc", Enabled: true}, loaded[0])
	assert.Equal(t, EnvVar{Name: "DISABLED", Value: "kept around", Enabled: false}, loaded[1])
}

func TestEnvStore_DisabledEntriesAreComments(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	store := NewEnvStore(path)

	require.NoError(t, store.Save([]EnvVar{{Name: "TOKEN", Value: "x", Enabled: false}}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "# TOKEN=x\n", string(data))
}

func TestUpsertVar(t *testing.T) {
	vars := []EnvVar{{Name: "A", Value: "1", Enabled: false}}

	vars = UpsertVar(vars, "A", "2")
	vars = UpsertVar(vars, "B", "3")

	require.Len(t, vars, 2)
	assert.Equal(t, EnvVar{Name: "A", Value: "2", Enabled: true}, vars[0], "upsert re-enables")
	assert.Equal(t, EnvVar{Name: "B", Value: "3", Enabled: true}, vars[1])
}

func TestRemoveVar(t *testing.T) {
	vars := []EnvVar{{Name: "A"}, {Name: "B"}, {Name: "C"}}

	vars = RemoveVar(vars, "B")

	require.Len(t, vars, 2)
	assert.Equal(t, "A", vars[0].Name)
	assert.Equal(t, "C", vars[1].Name)
}

func TestSetVarEnabled(t *testing.T) {
	vars := []EnvVar{{Name: "A", Value: "1", Enabled: true}}

	assert.True(t, SetVarEnabled(vars, "A", false))
	assert.False(t, vars[0].Enabled)
	assert.Equal(t, "1", vars[0].Value)

	assert.False(t, SetVarEnabled(vars, "MISSING", true))
}
