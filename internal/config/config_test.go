package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":8080" {
		t.Errorf("expected default addr :8080, got %q", cfg.Addr)
	}
	if cfg.Solver.MaxIterations != 1000 || cfg.Solver.MaxMoves != 100 {
		t.Errorf("unexpected solver defaults: %+v", cfg.Solver)
	}
	if cfg.OptimizerURL != "" {
		t.Errorf("optimizer should be disabled by default, got %q", cfg.OptimizerURL)
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dssa.toml")
	body := `
addr = ":9000"
optimizer_url = "http://optimizer:5000"

[solver]
max_iterations = 50000
cooling_rate = 0.95
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":9000" {
		t.Errorf("addr not overridden: %q", cfg.Addr)
	}
	if cfg.OptimizerURL != "http://optimizer:5000" {
		t.Errorf("optimizer_url not overridden: %q", cfg.OptimizerURL)
	}
	if cfg.Solver.MaxIterations != 50000 {
		t.Errorf("max_iterations not overridden: %d", cfg.Solver.MaxIterations)
	}
	if cfg.Solver.CoolingRate != 0.95 {
		t.Errorf("cooling_rate not overridden: %v", cfg.Solver.CoolingRate)
	}
	// Untouched field keeps its default.
	if cfg.Solver.MaxMoves != 100 {
		t.Errorf("max_moves default lost: %d", cfg.Solver.MaxMoves)
	}
}

func TestLoadRejectsBadCoolingRate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dssa.toml")
	if err := os.WriteFile(path, []byte("[solver]\ncooling_rate = 1.5\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for cooling_rate outside (0, 1)")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
