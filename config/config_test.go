package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Viewport.Width != 1000 || cfg.Viewport.Height != 1000 {
		t.Errorf("expected 1000x1000 viewport, got %gx%g", cfg.Viewport.Width, cfg.Viewport.Height)
	}
	if !cfg.Simulation.ForceEnabled {
		t.Error("default force should be enabled")
	}
	if cfg.Simulation.TicksPerSecond != 30 {
		t.Errorf("expected 30 ticks per second, got %d", cfg.Simulation.TicksPerSecond)
	}
	if cfg.Metrics.Addr != "" {
		t.Error("default metrics server should be disabled")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestConfigDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/test-xdg")
	if dir := ConfigDir(); dir != "/tmp/test-xdg/forcegraph" {
		t.Errorf("expected /tmp/test-xdg/forcegraph, got %q", dir)
	}

	t.Setenv("XDG_CONFIG_HOME", "")
	home, _ := os.UserHomeDir()
	expected := filepath.Join(home, ".config", "forcegraph")
	if dir := ConfigDir(); dir != expected {
		t.Errorf("expected %q, got %q", expected, dir)
	}
}

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Simulation.Layout != "force-directed" {
		t.Errorf("expected default layout, got %q", cfg.Simulation.Layout)
	}
}

func TestFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
[viewport]
width = 800
height = 600

[simulation]
force_enabled = false
layout = "surreal"
noise = 0.5

[log]
level = "debug"
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.ViewportSize().X != 800 || cfg.ViewportSize().Y != 600 {
		t.Errorf("expected 800x600, got %v", cfg.ViewportSize())
	}
	if cfg.Simulation.ForceEnabled {
		t.Error("expected force disabled from file")
	}
	if cfg.Simulation.Layout != "surreal" || cfg.Simulation.Noise != 0.5 {
		t.Errorf("unexpected simulation section: %+v", cfg.Simulation)
	}
	// untouched keys keep their defaults
	if cfg.Simulation.TicksPerSecond != 30 {
		t.Errorf("expected default tps, got %d", cfg.Simulation.TicksPerSecond)
	}
	if level, _ := cfg.SlogLevel(); level != slog.LevelDebug {
		t.Errorf("expected debug level, got %v", level)
	}
}

func TestLoadRejectsBadFiles(t *testing.T) {
	cases := map[string]string{
		"syntax":   "[viewport\nwidth = 1",
		"viewport": "[viewport]\nwidth = 0",
		"level":    "[log]\nlevel = \"loud\"",
		"format":   "[render]\nformat = \"webgl\"",
		"tps":      "[simulation]\nticks_per_second = -1",
		"layout":   "[simulation]\nlayout = \"voronoi\"",
	}
	for name, data := range cases {
		path := filepath.Join(t.TempDir(), name+".toml")
		if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := Load(path); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	cfg := Default()
	cfg.Seed.Kind = "ring"
	cfg.Seed.Vertices = 6
	cfg.Metrics.Addr = ":9090"

	if err := Save(cfg, ""); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(tmpDir, "forcegraph", "config.toml")); err != nil {
		t.Fatalf("config file not created: %v", err)
	}

	loaded, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Seed.Kind != "ring" || loaded.Seed.Vertices != 6 {
		t.Errorf("unexpected seed section: %+v", loaded.Seed)
	}
	if loaded.Metrics.Addr != ":9090" {
		t.Errorf("expected :9090, got %q", loaded.Metrics.Addr)
	}
}

func TestRenderOptions(t *testing.T) {
	cfg := Default()
	cfg.Render.Format = "dot"
	cfg.Render.ColorScheme = "dark"

	opts := cfg.RenderOptions()
	if opts.Format != "dot" || opts.ColorScheme != "dark" {
		t.Errorf("unexpected options: %+v", opts)
	}
	if opts.Width != 800 || opts.Height != 600 {
		t.Errorf("expected width 800, got %g", opts.Width)
	}
}
