// Package config loads tilenav settings from YAML and the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/samdwyer/tilenav/internal/nav"
)

// Environment variables that override the config file.
const (
	EnvLevel     = "TILENAV_LEVEL"
	EnvLevelFile = "TILENAV_LEVEL_FILE"
	EnvMode      = "TILENAV_MODE"
	EnvLogLevel  = "TILENAV_LOG_LEVEL"
	EnvWatch     = "TILENAV_WATCH"
)

// Config holds all tilenav configuration.
type Config struct {
	Level        string         `yaml:"level"`      // ID of an embedded level
	LevelFile    string         `yaml:"level_file"` // Level JSON on disk, overrides Level
	Mode         string         `yaml:"mode"`       // orthogonal or diagonal
	LogLevel     string         `yaml:"log_level"`
	LogFile      string         `yaml:"log_file"` // The viewer owns the terminal, so logs go here
	Watch        bool           `yaml:"watch"`    // Rebuild the grid when LevelFile changes
	BatchWorkers int            `yaml:"batch_workers"`
	ShowWalls    bool           `yaml:"show_walls"` // Mark wall tiles in the viewer
	ShowPath     bool           `yaml:"show_path"`  // Draw the planned route in the viewer
	Generate     GenerateConfig `yaml:"generate"`
	Theme        Theme          `yaml:"theme"`
}

// GenerateConfig holds settings for procedurally generated levels.
type GenerateConfig struct {
	Enabled bool  `yaml:"enabled"`
	Seed    int64 `yaml:"seed"` // 0 picks a seed from the clock
	Width   int   `yaml:"width"`
	Height  int   `yaml:"height"`
}

// Theme holds hex colors for the terminal viewer.
type Theme struct {
	Wall   string `yaml:"wall"`
	Floor  string `yaml:"floor"`
	Path   string `yaml:"path"`
	Agent  string `yaml:"agent"`
	Target string `yaml:"target"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Level:        "courtyard",
		Mode:         nav.Orthogonal.String(),
		LogLevel:     "info",
		LogFile:      "tilenav.log",
		BatchWorkers: 4,
		ShowWalls:    true,
		ShowPath:     true,
		Generate: GenerateConfig{
			Width:  60,
			Height: 22,
		},
		Theme: Theme{
			Wall:   "#5A5A6E",
			Floor:  "#3A3A3A",
			Path:   "#4FC1FF",
			Agent:  "#FFD700",
			Target: "#FF5F5F",
		},
	}
}

// Load reads configuration from a YAML file on top of Default.
// An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}

// ApplyEnv overrides fields from environment variables read through getenv.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if v := getenv(EnvLevel); v != "" {
		c.Level = v
	}
	if v := getenv(EnvLevelFile); v != "" {
		c.LevelFile = v
	}
	if v := getenv(EnvMode); v != "" {
		c.Mode = v
	}
	if v := getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	if v := getenv(EnvWatch); v != "" {
		watch, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvWatch, err)
		}
		c.Watch = watch
	}
	return nil
}

// Validate checks option values and returns every problem found.
func (c *Config) Validate() error {
	var errs []error
	if _, err := nav.ParseMode(c.Mode); err != nil {
		errs = append(errs, err)
	}
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if c.Level == "" && c.LevelFile == "" && !c.Generate.Enabled {
		errs = append(errs, errors.New("no level configured"))
	}
	if c.Watch && c.LevelFile == "" {
		errs = append(errs, errors.New("watch requires level_file"))
	}
	if c.BatchWorkers < 0 {
		errs = append(errs, fmt.Errorf("batch_workers must not be negative, got %d", c.BatchWorkers))
	}
	if c.Generate.Enabled && (c.Generate.Width < 16 || c.Generate.Height < 16) {
		errs = append(errs, fmt.Errorf("generated level must be at least 16x16, got %dx%d",
			c.Generate.Width, c.Generate.Height))
	}
	return errors.Join(errs...)
}

// NavMode returns the configured adjacency mode.
func (c *Config) NavMode() nav.Mode {
	m, err := nav.ParseMode(c.Mode)
	if err != nil {
		return nav.Orthogonal
	}
	return m
}

// ParseLogLevel converts a level name into a slog.Level.
func ParseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}
