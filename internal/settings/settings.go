// Package settings provides a persisted key/value store for user settings.
package settings

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Store is a key/value settings store
type Store interface {
	Value(key string) (any, bool)
	SetValue(key string, value any)
	Sync() error
}

// FileStore caches the settings of a YAML or TOML file in memory. The file
// format is chosen by extension: .toml for TOML, anything else for YAML.
type FileStore struct {
	path   string
	values map[string]any
	dirty  bool
}

// Open reads the settings file at path. A missing file gives an empty store.
func Open(path string) (*FileStore, error) {
	s := &FileStore{path: path, values: make(map[string]any)}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error reading settings: %w", err)
	}

	if s.isTOML() {
		if _, err := toml.Decode(string(data), &s.values); err != nil {
			return nil, fmt.Errorf("error parsing settings %s: %w", path, err)
		}
	} else if err := yaml.Unmarshal(data, &s.values); err != nil {
		return nil, fmt.Errorf("error parsing settings %s: %w", path, err)
	}
	if s.values == nil {
		s.values = make(map[string]any)
	}

	return s, nil
}

// Path returns the file backing the store
func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) isTOML() bool {
	return strings.EqualFold(filepath.Ext(s.path), ".toml")
}

func (s *FileStore) Value(key string) (any, bool) {
	v, ok := s.values[key]
	return v, ok
}

func (s *FileStore) SetValue(key string, value any) {
	if old, ok := s.values[key]; ok && old == value {
		return
	}
	s.values[key] = value
	s.dirty = true
}

// Keys returns all keys in sorted order
func (s *FileStore) Keys() []string {
	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Sync writes the settings back if anything changed
func (s *FileStore) Sync() error {
	if !s.dirty {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("error creating settings directory: %w", err)
	}

	var buf bytes.Buffer
	if s.isTOML() {
		if err := toml.NewEncoder(&buf).Encode(s.values); err != nil {
			return fmt.Errorf("error encoding settings: %w", err)
		}
	} else {
		data, err := yaml.Marshal(s.values)
		if err != nil {
			return fmt.Errorf("error encoding settings: %w", err)
		}
		buf.Write(data)
	}

	if err := os.WriteFile(s.path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("error writing settings: %w", err)
	}
	s.dirty = false
	return nil
}

// Dir returns the OS-appropriate settings directory
func Dir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "go3mfexport")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "go3mfexport")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "go3mfexport")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "go3mfexport")
	}
}

// DefaultPath returns the default settings file
func DefaultPath() string {
	return filepath.Join(Dir(), "settings.yaml")
}

// String returns the string value of key or fallback
func String(s Store, key, fallback string) string {
	v, ok := s.Value(key)
	if !ok {
		return fallback
	}
	if str, ok := v.(string); ok {
		return str
	}
	return fallback
}

// Bool returns the boolean value of key or fallback
func Bool(s Store, key string, fallback bool) bool {
	v, ok := s.Value(key)
	if !ok {
		return fallback
	}
	switch b := v.(type) {
	case bool:
		return b
	case string:
		if parsed, err := strconv.ParseBool(b); err == nil {
			return parsed
		}
	}
	return fallback
}

// Float returns the numeric value of key or fallback
func Float(s Store, key string, fallback float64) float64 {
	v, ok := s.Value(key)
	if !ok {
		return fallback
	}
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case string:
		if parsed, err := strconv.ParseFloat(n, 64); err == nil {
			return parsed
		}
	}
	return fallback
}
