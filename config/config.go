// Package config loads forcegraph settings from a TOML file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/TFMV/forcegraph/models"
	"github.com/TFMV/forcegraph/render"
)

// Config holds forcegraph configuration.
type Config struct {
	Viewport   ViewportConfig   `toml:"viewport"`
	Simulation SimulationConfig `toml:"simulation"`
	Seed       SeedConfig       `toml:"seed"`
	Log        LogConfig        `toml:"log"`
	Metrics    MetricsConfig    `toml:"metrics"`
	Render     RenderConfig     `toml:"render"`
}

// ViewportConfig is the drawing surface size in screen units.
type ViewportConfig struct {
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
}

// SimulationConfig controls the tick loop.
type SimulationConfig struct {
	TicksPerSecond int     `toml:"ticks_per_second"`
	ForceEnabled   bool    `toml:"force_enabled"`
	Layout         string  `toml:"layout"` // "force-directed", "surreal"
	Noise          float64 `toml:"noise"`
	NoiseSeed      int64   `toml:"noise_seed"`
}

// SeedConfig describes the graph a session starts with.
type SeedConfig struct {
	Kind     string  `toml:"kind"` // "empty", "complete", "ring", "star", "noise"
	Vertices int     `toml:"vertices"`
	Seed     int64   `toml:"seed"`
	Radius   float64 `toml:"radius"`
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string `toml:"level"`  // "debug", "info", "warn", "error"
	Format string `toml:"format"` // "text", "json"
	File   string `toml:"file"`   // empty discards logs in the terminal UI
}

// MetricsConfig controls the HTTP endpoint.
type MetricsConfig struct {
	Addr string `toml:"addr"` // empty disables the server
}

// RenderConfig holds headless output defaults.
type RenderConfig struct {
	Format      string  `toml:"format"`
	Width       float64 `toml:"width"`
	Height      float64 `toml:"height"`
	ColorScheme string  `toml:"color_scheme"`
	ShowLabels  bool    `toml:"show_labels"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Viewport:   ViewportConfig{Width: 1000, Height: 1000},
		Simulation: SimulationConfig{TicksPerSecond: 30, ForceEnabled: true, Layout: "force-directed", NoiseSeed: 1},
		Seed:       SeedConfig{Kind: "empty", Seed: 1, Radius: 300},
		Log:        LogConfig{Level: "info", Format: "text"},
		Render:     RenderConfig{Format: "svg", Width: 800, Height: 600, ColorScheme: "default", ShowLabels: true},
	}
}

// ConfigDir returns the forcegraph config directory path.
func ConfigDir() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "forcegraph")
}

// Path returns the default config file path.
func Path() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// Load reads the config file at path, or the default path when empty.
// A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		path = Path()
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config to path, or the default path when empty.
func Save(cfg *Config, path string) error {
	if path == "" {
		path = Path()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

// Validate checks value ranges and names.
func (c *Config) Validate() error {
	if c.Viewport.Width <= 0 || c.Viewport.Height <= 0 {
		return fmt.Errorf("viewport must be positive, got %gx%g", c.Viewport.Width, c.Viewport.Height)
	}
	if c.Simulation.TicksPerSecond <= 0 {
		return fmt.Errorf("ticks_per_second must be positive, got %d", c.Simulation.TicksPerSecond)
	}
	switch c.Simulation.Layout {
	case "force-directed", "surreal":
	default:
		return fmt.Errorf("unknown layout %q", c.Simulation.Layout)
	}
	if c.Simulation.Noise < 0 {
		return fmt.Errorf("noise must not be negative, got %g", c.Simulation.Noise)
	}
	if c.Seed.Vertices < 0 {
		return fmt.Errorf("seed vertices must not be negative, got %d", c.Seed.Vertices)
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	if f := strings.ToLower(c.Log.Format); f != "text" && f != "json" {
		return fmt.Errorf("unknown log format %q", c.Log.Format)
	}
	if _, err := render.GetRenderer(c.Render.Format); err != nil {
		return err
	}
	return nil
}

// ViewportSize returns the viewport as a vector.
func (c *Config) ViewportSize() models.Vec2 {
	return models.V(c.Viewport.Width, c.Viewport.Height)
}

// SlogLevel parses the configured log level.
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", c.Log.Level)
	}
	return level, nil
}

// RenderOptions converts the render section into renderer options.
func (c *Config) RenderOptions() *render.OutputOptions {
	opts := render.NewDefaultOptions(c.Render.Format)
	opts.Width = c.Render.Width
	opts.Height = c.Render.Height
	opts.ColorScheme = c.Render.ColorScheme
	opts.ShowLabels = c.Render.ShowLabels
	return opts
}
