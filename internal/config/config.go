// Package config provides settings loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultResumeMaxMB is the résumé size ceiling enforced before a save.
	DefaultResumeMaxMB = 20
	// EnvConfigPath names the environment variable overriding the settings path.
	EnvConfigPath = "JOBVAULT_CONFIG"
)

// Config represents the user settings. All fields are optional; missing
// values fall back to Defaults.
type Config struct {
	// Storage root
	BaseDir        string `json:"base_dir,omitempty" yaml:"base_dir,omitempty"` // Folder records are written under
	BaseDirGranted bool   `json:"base_dir_granted" yaml:"base_dir_granted"`     // User consented to writes under BaseDir

	// Capture toggles
	CaptureEA           bool  `json:"capture_ea" yaml:"capture_ea"`                                             // Capture Easy Apply events
	CaptureExt          bool  `json:"capture_ext" yaml:"capture_ext"`                                           // Capture external applications
	DisableEAAlways     bool  `json:"disable_ea_always" yaml:"disable_ea_always"`                               // Easy Apply capture switched off
	DisableEATodayUntil int64 `json:"disable_ea_today_until,omitempty" yaml:"disable_ea_today_until,omitempty"` // Unix ms; Easy Apply off until then

	// Limits
	ResumeMaxMB int `json:"resume_max_mb,omitempty" yaml:"resume_max_mb,omitempty"` // Résumé size ceiling in MB
}

// Defaults returns the settings used when no file exists.
func Defaults() Config {
	return Config{ResumeMaxMB: DefaultResumeMaxMB}
}

// DefaultPath returns the settings path: $JOBVAULT_CONFIG when set, else
// <user config dir>/jobvault/settings.json.
func DefaultPath() (string, error) {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate user config directory: %w", err)
	}
	return filepath.Join(dir, "jobvault", "settings.json"), nil
}

// LoadConfig loads settings from a JSON file, or a YAML file when the
// extension is .yaml or .yml.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if isYAML(path) {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	} else if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Save writes the settings to path in the format its extension selects,
// creating the parent directory if needed.
func (c *Config) Save(path string) error {
	if path == "" {
		return fmt.Errorf("config path is empty")
	}

	var data []byte
	var err error
	if isYAML(path) {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", path, err)
	}
	return nil
}

// Validate checks that the settings have valid values.
func (c *Config) Validate() error {
	if c.ResumeMaxMB < 0 {
		return fmt.Errorf("config error: 'resume_max_mb' must be non-negative")
	}
	if c.DisableEATodayUntil < 0 {
		return fmt.Errorf("config error: 'disable_ea_today_until' must be non-negative")
	}
	if c.BaseDirGranted && c.BaseDir == "" {
		return fmt.Errorf("config error: 'base_dir_granted' is set but 'base_dir' is empty")
	}
	if c.BaseDir != "" && !filepath.IsAbs(c.BaseDir) {
		return fmt.Errorf("config error: 'base_dir' must be an absolute path: %s", c.BaseDir)
	}
	return nil
}

// MergeWithDefaults returns a new Config with zero-valued fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.BaseDir == "" {
		result.BaseDir = defaults.BaseDir
	}
	if result.ResumeMaxMB == 0 {
		if defaults.ResumeMaxMB > 0 {
			result.ResumeMaxMB = defaults.ResumeMaxMB
		} else {
			result.ResumeMaxMB = DefaultResumeMaxMB
		}
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge

	return result
}

// ResumeMaxBytes returns the résumé ceiling in bytes.
func (c *Config) ResumeMaxBytes() int64 {
	mb := c.ResumeMaxMB
	if mb <= 0 {
		mb = DefaultResumeMaxMB
	}
	return int64(mb) * 1024 * 1024
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}
