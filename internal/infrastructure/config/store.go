package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-yaml"

	"github.com/barkit-dev/barkit/internal/domain/entities"
	"github.com/barkit-dev/barkit/internal/version"
)

// goccy/go-yaml error messages carry the position as a "[line:column]"
// prefix.
var yamlPosPattern = regexp.MustCompile(`\[(\d+):(\d+)\]`)

// Store reads and writes the configuration files under one config root.
// Saves are atomic: content is written to a temp file in the same directory
// and renamed over the target, so a crash mid-write never corrupts the
// previous file.
type Store struct {
	root string
}

// NewStore creates a store rooted at dir.
func NewStore(dir string) *Store {
	return &Store{root: dir}
}

// Root returns the config root directory.
func (s *Store) Root() string {
	return s.root
}

// ConfigPath returns the path of config.yaml.
func (s *Store) ConfigPath() string {
	return filepath.Join(s.root, ConfigFileName)
}

// StylesPath returns the path of styles.css.
func (s *Store) StylesPath() string {
	return filepath.Join(s.root, StylesFileName)
}

// EnvPath returns the path of the .env file.
func (s *Store) EnvPath() string {
	return filepath.Join(s.root, EnvFileName)
}

// Load parses config.yaml into a document. Returns *entities.NotFoundError
// when the file does not exist and *entities.ParseError with line/column for
// malformed YAML.
func (s *Store) Load() (*entities.Document, error) {
	path := s.ConfigPath()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &entities.NotFoundError{Path: path}
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var doc entities.Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, newParseError(path, err)
	}

	return &doc, nil
}

// LoadOrInit loads config.yaml, writing and returning the default document
// when none exists yet.
func (s *Store) LoadOrInit() (*entities.Document, error) {
	doc, err := s.Load()
	if err == nil {
		return doc, nil
	}
	var notFound *entities.NotFoundError
	if !errors.As(err, &notFound) {
		return nil, err
	}

	slog.Info("no config found, writing default", "path", s.ConfigPath())
	doc = entities.DefaultDocument()
	if err := s.Save(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// Save normalizes and writes the document atomically, with a generated
// header comment.
func (s *Store) Save(doc *entities.Document) error {
	clean := doc.Clone()
	Normalize(clean)

	body, err := yaml.MarshalWithOptions(clean,
		yaml.Indent(2),
		yaml.IndentSequence(true))
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	var buf strings.Builder
	fmt.Fprintf(&buf, "# Generated by barkit v%s\n", version.Version)
	fmt.Fprintf(&buf, "# Last edited: %s\n\n", time.Now().Format("Jan 02, 2006 15:04"))
	buf.Write(body)

	return s.writeAtomic(s.ConfigPath(), []byte(buf.String()))
}

// LoadStyles reads styles.css. A missing stylesheet is an empty string, not
// an error: the bar treats it the same way.
func (s *Store) LoadStyles() (string, error) {
	data, err := os.ReadFile(s.StylesPath())
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read styles: %w", err)
	}
	return string(data), nil
}

// SaveStyles writes the stylesheet atomically.
func (s *Store) SaveStyles(content string) error {
	return s.writeAtomic(s.StylesPath(), []byte(content))
}

// writeAtomic writes data to a temp file in the target directory, syncs it,
// and renames it over path.
func (s *Store) writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &entities.WriteError{Path: path, Cause: err}
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return &entities.WriteError{Path: path, Cause: err}
	}
	tmpName := tmp.Name()

	cleanup := func(cause error) error {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return &entities.WriteError{Path: path, Cause: cause}
	}

	if _, err := tmp.Write(data); err != nil {
		return cleanup(err)
	}
	if err := tmp.Sync(); err != nil {
		return cleanup(err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		return cleanup(err)
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

// Normalize cleans a document in place before it is written: empty strings
// and empty maps are dropped from option/setting maps, and pure-numeric
// strings become ints.
func Normalize(doc *entities.Document) {
	cleanValueMap(doc.Settings)
	for bi := range doc.Bars {
		bar := &doc.Bars[bi]
		for wi := range bar.Widgets {
			cleanValueMap(bar.Widgets[wi].Options)
		}
	}
}

func cleanValueMap(m map[string]interface{}) {
	for key, value := range m {
		switch v := value.(type) {
		case string:
			if v == "" {
				delete(m, key)
			} else if isNumericString(v) {
				if n, err := strconv.Atoi(v); err == nil {
					m[key] = n
				}
			}
		case map[string]interface{}:
			cleanValueMap(v)
			if len(v) == 0 {
				delete(m, key)
			}
		case nil:
			delete(m, key)
		}
	}
}

func isNumericString(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// newParseError converts a goccy/go-yaml decode error into a ParseError,
// extracting the line/column from the message when present.
func newParseError(path string, err error) *entities.ParseError {
	pe := &entities.ParseError{
		Cause:   err,
		Path:    path,
		Message: err.Error(),
	}
	if m := yamlPosPattern.FindStringSubmatch(err.Error()); m != nil {
		pe.Line, _ = strconv.Atoi(m[1])
		pe.Column, _ = strconv.Atoi(m[2])
	}
	return pe
}
