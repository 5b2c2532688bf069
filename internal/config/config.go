package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/gravitrone/wheelpick/internal/selector"
)

// Config holds picker settings stored at ~/.wheelpick/config.yaml.
type Config struct {
	ItemHeight        float64 `yaml:"item_height"`
	ViewportRows      int     `yaml:"viewport_rows"`
	Loop              bool    `yaml:"loop"`
	ReplicationFactor int     `yaml:"replication_factor"`
	CommitDelayMS     int     `yaml:"commit_delay_ms"`
	VimKeys           bool    `yaml:"vim_keys"`
	YearSpan          int     `yaml:"year_span,omitempty"`
}

// Default returns the settings used when no file exists.
func Default() *Config {
	return &Config{
		ItemHeight:        40,
		ViewportRows:      selector.DefaultViewportRows,
		Loop:              true,
		ReplicationFactor: selector.DefaultReplicationFactor,
		CommitDelayMS:     int(selector.DefaultCommitDelay / time.Millisecond),
		VimKeys:           true,
		YearSpan:          50,
	}
}

// Path returns the config file path.
func Path() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".wheelpick", "config.yaml")
}

// Load reads and parses the config file. Fields missing from the file keep
// their default values.
func Load() (*Config, error) {
	data, err := os.ReadFile(Path())
	if err != nil {
		return nil, fmt.Errorf("config not found: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault is Load with a missing file treated as Default.
func LoadOrDefault() (*Config, error) {
	cfg, err := Load()
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Save writes the config to disk.
func (c *Config) Save() error {
	path := Path()
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0o600)
}

// Validate checks the values that the selector cannot default.
func (c *Config) Validate() error {
	if c.ViewportRows < 1 {
		return fmt.Errorf("config: viewport_rows must be at least 1, got %d", c.ViewportRows)
	}
	if c.YearSpan < 0 {
		return fmt.Errorf("config: year_span must not be negative, got %d", c.YearSpan)
	}
	if err := c.Selector().Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Selector converts the file settings into a selector geometry.
func (c *Config) Selector() selector.Config {
	return selector.Config{
		ItemHeight:        c.ItemHeight,
		ViewportHeight:    float64(c.ViewportRows) * c.ItemHeight,
		Loop:              c.Loop,
		ReplicationFactor: c.ReplicationFactor,
		CommitDelay:       time.Duration(c.CommitDelayMS) * time.Millisecond,
	}
}
