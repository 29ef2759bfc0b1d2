package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".spiderbot"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// File mirrors the structure of the .spiderbot YAML file. All fields
// are optional; unset fields keep their current value when applied.
type File struct {
	// Seed is the default start URL.
	Seed string `yaml:"seed,omitempty"`

	// Workers is the worker pool size.
	Workers int `yaml:"workers,omitempty"`

	// Delay is the politeness pause, in Go duration syntax ("1s",
	// "500ms").
	Delay string `yaml:"delay,omitempty"`

	// Storage is the persistence sink path.
	Storage string `yaml:"storage,omitempty"`

	// StayOnDomain limits the crawl to the seed's host. Pointer so
	// that an absent key is distinguishable from an explicit false.
	StayOnDomain *bool `yaml:"stayOnDomain,omitempty"`

	// MaxPages caps the number of processed URLs per session.
	MaxPages int `yaml:"maxPages,omitempty"`

	// MetricsAddr is the Prometheus endpoint listen address.
	MetricsAddr string `yaml:"metricsAddr,omitempty"`
}

// LoadConfigFile loads a config file from path. If the file does not
// exist it returns ErrConfigNotFound; callers decide whether that is
// fatal based on whether the path was explicitly given by the user.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &cf, nil
}

// FindConfigFile searches for the configuration file in the following order:
// 1. If configPath is specified, use it directly
// 2. Look for .spiderbot in the current directory
// 3. Look for .spiderbot in the user's home directory
//
// Returns the path of the file if found, or empty string if not found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	cwd, err := os.Getwd()
	if err == nil {
		cwdConfig := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(cwdConfig); err == nil {
			return cwdConfig
		}
	}

	home, err := os.UserHomeDir()
	if err == nil {
		homeConfig := filepath.Join(home, DefaultConfigFile)
		if _, err := os.Stat(homeConfig); err == nil {
			return homeConfig
		}
	}

	return ""
}

// Apply overlays the file's values onto cfg. Only set fields override;
// CLI flags are applied after this, so the precedence is
// defaults < file < flags.
func (f *File) Apply(cfg *Config) error {
	if f.Seed != "" {
		cfg.Seed = f.Seed
	}
	if f.Workers != 0 {
		cfg.Workers = f.Workers
	}
	if f.Delay != "" {
		d, err := time.ParseDuration(f.Delay)
		if err != nil {
			return fmt.Errorf("invalid delay in config file: %w", err)
		}
		cfg.Delay = d
	}
	if f.Storage != "" {
		cfg.StorageTarget = f.Storage
	}
	if f.StayOnDomain != nil {
		cfg.RestrictDomain = *f.StayOnDomain
	}
	if f.MaxPages != 0 {
		cfg.MaxPages = f.MaxPages
	}
	if f.MetricsAddr != "" {
		cfg.MetricsAddr = f.MetricsAddr
	}
	return nil
}
