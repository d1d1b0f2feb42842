package config

import (
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultParses(t *testing.T) {
	var cfg SimConfig
	if err := yaml.Unmarshal(defaultSimYAML, &cfg); err != nil {
		t.Fatalf("embedded default should parse: %v", err)
	}

	if cfg.Rules != "moore" {
		t.Errorf("default rules = %q, expected moore", cfg.Rules)
	}
	if cfg.Run.Generations != 100 {
		t.Errorf("default generations = %d, expected 100", cfg.Run.Generations)
	}
	if cfg.Run.RefreshPerSecond != 10 {
		t.Errorf("default refresh rate = %d, expected 10", cfg.Run.RefreshPerSecond)
	}
	if cfg.Grid.Infinite {
		t.Error("default should be finite mode")
	}
}

func TestLoadCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sim.yaml")

	doc := `
grid:
  width: 30
  height: 15
  infinite: true
rules: vonneumann
offset:
  x: -4
  y: 7
run:
  generations: 250
  refresh_per_second: 20
`
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Grid.Width != 30 || cfg.Grid.Height != 15 {
		t.Errorf("grid = %dx%d, expected 30x15", cfg.Grid.Width, cfg.Grid.Height)
	}
	if !cfg.Grid.Infinite {
		t.Error("infinite should be true")
	}
	if cfg.Rules != "vonneumann" {
		t.Errorf("rules = %q, expected vonneumann", cfg.Rules)
	}
	if cfg.Offset.X != -4 || cfg.Offset.Y != 7 {
		t.Errorf("offset = (%d,%d), expected (-4,7)", cfg.Offset.X, cfg.Offset.Y)
	}
	if cfg.Run.Generations != 250 {
		t.Errorf("generations = %d, expected 250", cfg.Run.Generations)
	}
}

func TestLoadMissingCustomPathFails(t *testing.T) {
	if _, err := Load("/nonexistent/sim.yaml"); err == nil {
		t.Error("Load with a missing explicit path should fail")
	}
}
