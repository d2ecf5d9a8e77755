// Package config holds the crewsearch driver configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/hupe1980/crewpram"
	"github.com/hupe1980/crewpram/internal/sequence"
)

// Config is the crewsearch configuration.
type Config struct {
	// Size is the sequence length. 0 means ask on stdin.
	Size       int `yaml:"size"`
	Target     int `yaml:"target"`
	Processors int `yaml:"processors"`

	Bounds    SizeBounds      `yaml:"bounds"`
	Search    SearchConfig    `yaml:"search"`
	Resources ResourcesConfig `yaml:"resources"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// SizeBounds is the accepted range for Size.
type SizeBounds struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

// SearchConfig tunes the search itself.
type SearchConfig struct {
	Legacy  bool `yaml:"legacy"`
	Workers int  `yaml:"workers"` // 0 = sequential reads
	Quiet   bool `yaml:"quiet"`
	// ShowValues caps the window elements printed per stage (0 = none).
	ShowValues int `yaml:"show_values"`
}

// ResourcesConfig limits the driver's resources.
type ResourcesConfig struct {
	MemoryLimitBytes int64   `yaml:"memory_limit_bytes"`
	StagesPerSecond  float64 `yaml:"stages_per_second"`
}

// LoggingConfig configures the driver logger.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns the default driver settings.
func DefaultConfig() *Config {
	b := sequence.DefaultBounds()
	return &Config{
		Target:     23,
		Processors: 10,
		Bounds: SizeBounds{
			Min: b.Min,
			Max: b.Max,
		},
		Search: SearchConfig{
			ShowValues: 16,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from a YAML file.
// A missing file yields the defaults. Environment overrides are applied last.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		case errors.Is(err, os.ErrNotExist):
			// Defaults
		default:
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// Validate checks the settings that do not depend on user input.
func (c *Config) Validate() error {
	if c.Processors < 1 || c.Processors > crewpram.MaxProcessors {
		return fmt.Errorf("processors must be between 1 and %d, got %d", crewpram.MaxProcessors, c.Processors)
	}
	if c.Bounds.Min < 1 || c.Bounds.Min > c.Bounds.Max {
		return fmt.Errorf("invalid size bounds [%d, %d]", c.Bounds.Min, c.Bounds.Max)
	}
	if c.Resources.MemoryLimitBytes < 0 {
		return fmt.Errorf("memory limit must not be negative, got %d", c.Resources.MemoryLimitBytes)
	}
	if c.Resources.StagesPerSecond < 0 {
		return fmt.Errorf("stages per second must not be negative, got %g", c.Resources.StagesPerSecond)
	}
	return nil
}

func (c *Config) applyEnvOverrides() error {
	ints := []struct {
		key string
		dst *int
	}{
		{"CREWSEARCH_SIZE", &c.Size},
		{"CREWSEARCH_TARGET", &c.Target},
		{"CREWSEARCH_PROCESSORS", &c.Processors},
		{"CREWSEARCH_WORKERS", &c.Search.Workers},
	}
	for _, e := range ints {
		v, ok := os.LookupEnv(e.key)
		if !ok || v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", e.key, err)
		}
		*e.dst = n
	}

	if v := os.Getenv("CREWSEARCH_LEGACY"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid CREWSEARCH_LEGACY: %w", err)
		}
		c.Search.Legacy = b
	}
	if v := os.Getenv("CREWSEARCH_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	return nil
}
