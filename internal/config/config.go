// Package config provides configuration management for otf.
//
// Config file locations (priority order):
//  1. the --config flag
//  2. $OTF_CONFIG
//  3. ./otf.yaml
//  4. ~/.config/otf/config.yaml
//
// Values missing from the file keep their defaults.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/OpenTraceLab/OpenTraceField/pkg/field"
)

// MaxScale is the largest accepted render.scale.
const MaxScale = 64

// Config is the full otf configuration.
type Config struct {
	Grid   GridConfig   `yaml:"grid"`
	Solver SolverConfig `yaml:"solver"`
	Render RenderConfig `yaml:"render"`
	Log    LogConfig    `yaml:"log"`
}

// GridConfig holds grid settings.
type GridConfig struct {
	Size int `yaml:"size"` // side length in cells
}

// SolverConfig holds potential solver settings.
type SolverConfig struct {
	Precision string `yaml:"precision"` // truncate | float
	Workers   int    `yaml:"workers"`   // 0 = GOMAXPROCS
}

// RenderConfig holds output settings.
type RenderConfig struct {
	Color bool `yaml:"color"`
	Scale int  `yaml:"scale"` // PNG pixels per cell
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug | info | warn | error
	Format string `yaml:"format"` // text | json
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Grid:   GridConfig{Size: 100},
		Solver: SolverConfig{Precision: "truncate"},
		Render: RenderConfig{Color: true, Scale: 4},
		Log:    LogConfig{Level: "info", Format: "text"},
	}
}

// FindConfigPath returns the first existing config file, or "" if none.
func FindConfigPath() string {
	if p := os.Getenv("OTF_CONFIG"); p != "" {
		return p
	}

	candidates := []string{"otf.yaml"}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".config", "otf", "config.yaml"))
	}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// Load reads the config at path, or the discovered one when path is empty.
// It returns the defaults when no file exists. The path actually read is
// returned alongside.
func Load(path string) (*Config, string, error) {
	if path == "" {
		path = FindConfigPath()
	}
	if path == "" {
		return DefaultConfig(), "", nil
	}

	cfg, err := LoadFromPath(path)
	return cfg, path, err
}

// LoadFromPath loads config from a specific path on top of the defaults.
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML config data on top of the defaults and validates it.
func Parse(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the config to path.
func (c *Config) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create config dir: %w", err)
		}
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Grid.Size < 1 || c.Grid.Size > field.MaxSize {
		return fmt.Errorf("grid.size must be between 1 and %d, got %d", field.MaxSize, c.Grid.Size)
	}

	switch strings.ToLower(c.Solver.Precision) {
	case "truncate", "float":
	default:
		return fmt.Errorf("solver.precision must be truncate or float, got %q", c.Solver.Precision)
	}
	if c.Solver.Workers < 0 {
		return fmt.Errorf("solver.workers must not be negative, got %d", c.Solver.Workers)
	}

	if c.Render.Scale < 1 || c.Render.Scale > MaxScale {
		return fmt.Errorf("render.scale must be between 1 and %d, got %d", MaxScale, c.Render.Scale)
	}

	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}
	return nil
}

// SlogLevel converts the configured level name.
func (l LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, fmt.Errorf("log.level: %w", err)
	}
	return level, nil
}
