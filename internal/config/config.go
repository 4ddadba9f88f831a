// Package config loads the server configuration from a TOML file.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/Xhst/dssa-multiagent-scheduling/internal/solver"
)

// Config holds everything the server binary needs at startup.
type Config struct {
	Addr             string `toml:"addr"`
	RequestTimeoutMS int    `toml:"request_timeout_ms"`
	OptimizerURL     string `toml:"optimizer_url"` // external ILP optimizer; empty disables the ILP endpoint
	SolveWorkers     int    `toml:"solve_workers"` // workers draining the asynchronous run queue
	RunQueueSize     int    `toml:"run_queue_size"`
	Solver           Solver `toml:"solver"`
}

// Solver carries the default heuristic parameters applied when a request
// does not override them.
type Solver struct {
	MaxIterations int     `toml:"max_iterations"`
	MaxMoves      int     `toml:"max_moves"`
	Temperature   float64 `toml:"temperature"`
	CoolingRate   float64 `toml:"cooling_rate"`
}

// Params converts the configured defaults into solver parameters.
func (s Solver) Params() solver.Params {
	return solver.Params{
		MaxIterations: s.MaxIterations,
		MaxMoves:      s.MaxMoves,
		Temperature:   s.Temperature,
		CoolingRate:   s.CoolingRate,
	}
}

// Default returns the built-in configuration.
func Default() Config {
	d := solver.DefaultParams()
	return Config{
		Addr:             ":8080",
		RequestTimeoutMS: 60_000,
		SolveWorkers:     2,
		RunQueueSize:     64,
		Solver: Solver{
			MaxIterations: d.MaxIterations,
			MaxMoves:      d.MaxMoves,
			Temperature:   d.Temperature,
			CoolingRate:   d.CoolingRate,
		},
	}
}

// Load reads a TOML configuration file. An empty path returns the defaults;
// fields missing from the file keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if cfg.Solver.CoolingRate <= 0 || cfg.Solver.CoolingRate >= 1 {
		return Config{}, fmt.Errorf("config: cooling_rate must be in (0, 1), got %v", cfg.Solver.CoolingRate)
	}
	return cfg, nil
}
