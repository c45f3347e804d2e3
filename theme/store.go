// Package theme persists the user's light/dark preference between runs.
package theme

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/aura/config"
)

// Names of the stored preference values.
const (
	Dark  = "dark"
	Light = "light"
)

// Preference is the on-disk form of the stored theme.
type Preference struct {
	Theme string `yaml:"theme"`
}

// Store reads and writes the preference file.
type Store struct {
	path        string
	defaultDark bool
}

// DefaultPath returns the preference file under the user config dir.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating user config dir: %w", err)
	}
	return filepath.Join(dir, "aura", "theme.yaml"), nil
}

// NewStore creates a store from config. An empty theme.file uses DefaultPath.
func NewStore(cfg *config.ThemeFileConfig) (*Store, error) {
	path := cfg.File
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	return &Store{path: path, defaultDark: cfg.DefaultDark}, nil
}

// Path returns the preference file path.
func (s *Store) Path() string {
	return s.path
}

// Load returns the stored preference. A missing file or an unknown value
// yields the configured default.
func (s *Store) Load() (bool, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return s.defaultDark, nil
	}
	if err != nil {
		return s.defaultDark, fmt.Errorf("reading theme preference: %w", err)
	}

	var pref Preference
	if err := yaml.Unmarshal(data, &pref); err != nil {
		return s.defaultDark, fmt.Errorf("parsing theme preference: %w", err)
	}
	return Parse(pref.Theme, s.defaultDark), nil
}

// Save stores the preference, creating parent directories as needed.
func (s *Store) Save(isDark bool) error {
	data, err := yaml.Marshal(Preference{Theme: Name(isDark)})
	if err != nil {
		return fmt.Errorf("marshaling theme preference: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("creating theme preference dir: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("writing theme preference: %w", err)
	}
	return nil
}

// Name returns the stored name for a theme.
func Name(isDark bool) string {
	if isDark {
		return Dark
	}
	return Light
}

// Parse maps a stored or user supplied name to isDark, falling back to def.
func Parse(name string, def bool) bool {
	switch name {
	case Dark:
		return true
	case Light:
		return false
	}
	return def
}
