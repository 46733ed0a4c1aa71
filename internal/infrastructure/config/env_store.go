package config

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/barkit-dev/barkit/internal/domain/entities"
)

// EnvVar is one entry in the .env file. Disabled entries are kept in the
// file as "# NAME=value" lines so they can be re-enabled without retyping.
type EnvVar struct {
	Name    string
	Value   string
	Enabled bool
}

// EnvStore reads and writes the .env file next to the configuration.
type EnvStore struct {
	path string
}

// NewEnvStore creates a store for the given .env path.
func NewEnvStore(path string) *EnvStore {
	return &EnvStore{path: path}
}

// Path returns the .env file path.
func (s *EnvStore) Path() string {
	return s.path
}

// Load parses the .env file. A missing file yields no variables and no
// error.
func (s *EnvStore) Load() ([]EnvVar, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open env file: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	var vars []EnvVar
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		enabled := true
		if strings.HasPrefix(line, "#") {
			line = strings.TrimSpace(strings.TrimPrefix(line, "#"))
			enabled = false
		}
		if v, ok := parseEnvLine(line); ok {
			v.Enabled = enabled
			vars = append(vars, v)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read env file: %w", err)
	}
	return vars, nil
}

// Save writes the variables back, atomically. Entries with empty names are
// skipped; values containing spaces are quoted.
func (s *EnvStore) Save(vars []EnvVar) error {
	var buf strings.Builder
	for _, v := range vars {
		name := strings.TrimSpace(v.Name)
		if name == "" {
			continue
		}
		value := v.Value
		if strings.Contains(value, " ") {
			value = `"` + value + `"`
		}
		line := name + "=" + value
		if !v.Enabled {
			line = "# " + line
		}
		buf.WriteString(line)
		buf.WriteString("\n")
	}

	return writeEnvAtomic(s.path, []byte(buf.String()))
}

func writeEnvAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".env.tmp-*")
	if err != nil {
		return &entities.WriteError{Path: path, Cause: err}
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return &entities.WriteError{Path: path, Cause: err}
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return &entities.WriteError{Path: path, Cause: err}
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return &entities.WriteError{Path: path, Cause: err}
	}
	return nil
}

func parseEnvLine(line string) (EnvVar, bool) {
	idx := strings.Index(line, "=")
	if idx <= 0 {
		return EnvVar{}, false
	}
	name := strings.TrimSpace(line[:idx])
	value := strings.TrimSpace(line[idx+1:])
	if (strings.HasPrefix(value, `"`) && strings.HasSuffix(value, `"`) && len(value) >= 2) ||
		(strings.HasPrefix(value, `'`) && strings.HasSuffix(value, `'`) && len(value) >= 2) {
		value = value[1 : len(value)-1]
	}
	return EnvVar{Name: name, Value: value}, true
}

// UpsertVar sets a variable, replacing an existing entry with the same name.
func UpsertVar(vars []EnvVar, name, value string) []EnvVar {
	for i := range vars {
		if vars[i].Name == name {
			vars[i].Value = value
			vars[i].Enabled = true
			return vars
		}
	}
	return append(vars, EnvVar{Name: name, Value: value, Enabled: true})
}

// RemoveVar deletes a variable by name.
func RemoveVar(vars []EnvVar, name string) []EnvVar {
	out := vars[:0]
	for _, v := range vars {
		if v.Name != name {
			out = append(out, v)
		}
	}
	return out
}

// SetVarEnabled toggles a variable without losing its value. Returns false
// when the name is unknown.
func SetVarEnabled(vars []EnvVar, name string, enabled bool) bool {
	for i := range vars {
		if vars[i].Name == name {
			vars[i].Enabled = enabled
			return true
		}
	}
	return false
}
