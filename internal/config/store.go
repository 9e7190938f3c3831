package config

import (
	"errors"
	"io/fs"
	"path/filepath"
)

// Store reads and updates the settings file. Every call goes back to disk,
// so a grant revoked by another process is seen on the next query.
type Store struct {
	path string
}

// NewStore returns a Store backed by the settings file at path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the settings file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the settings, returning Defaults when the file does not exist.
func (s *Store) Load() (*Config, error) {
	defaults := Defaults()
	cfg, err := LoadConfig(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &defaults, nil
		}
		return nil, err
	}
	merged := cfg.MergeWithDefaults(defaults)
	return &merged, nil
}

// Update applies fn to the current settings, validates and saves them.
// Nothing is written when fn fails.
func (s *Store) Update(fn func(*Config) error) (*Config, error) {
	cfg, err := s.Load()
	if err != nil {
		return nil, err
	}
	if err := fn(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Save(s.path); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Granted reports whether the user consented to writes under root.
func (s *Store) Granted(root string) (bool, error) {
	cfg, err := s.Load()
	if err != nil {
		return false, err
	}
	return cfg.BaseDirGranted && samePath(cfg.BaseDir, root), nil
}

// SetGranted records or withdraws consent for root, making it the base folder.
func (s *Store) SetGranted(root string, granted bool) error {
	_, err := s.Update(func(c *Config) error {
		if granted {
			c.BaseDir = root
		}
		c.BaseDirGranted = granted
		return nil
	})
	return err
}

func samePath(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return filepath.Clean(a) == filepath.Clean(b)
}
