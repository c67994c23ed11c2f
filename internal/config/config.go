// Package config provides tuning parameters for the navigation engines,
// with embedded defaults and optional YAML overrides.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all engine tuning parameters.
type Config struct {
	FOV   FOVConfig   `yaml:"fov"`
	Path  PathConfig  `yaml:"path"`
	Bench BenchConfig `yaml:"bench"`
}

// FOVConfig tunes visibility refreshes.
type FOVConfig struct {
	DefaultRadius int `yaml:"default_radius"` // Sight radius used when a scenario does not set one
}

// PathConfig tunes path search costs.
type PathConfig struct {
	OccupiedCostFactor float64 `yaml:"occupied_cost_factor"` // Step-cost multiplier for occupied cells
	TieBreakWeight     float64 `yaml:"tie_break_weight"`     // X-axis inflation of the Manhattan heuristic
}

// BenchConfig holds the searchbench harness defaults.
type BenchConfig struct {
	GridWidth  int     `yaml:"grid_width"`
	GridHeight int     `yaml:"grid_height"`
	WallChance float64 `yaml:"wall_chance"` // Probability that a cell is generated as wall
	Searches   int     `yaml:"searches"`    // Number of random searches per run
	Seed       int64   `yaml:"seed"`        // Grid and query generation seed
}

// Load returns the embedded defaults, overlaid with the YAML file at path
// when path is non-empty. Fields absent from the file keep their defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the embedded default configuration.
func Default() (*Config, error) {
	return Load("")
}

// Validate checks that every parameter is in its workable range.
func (c *Config) Validate() error {
	if c.FOV.DefaultRadius < 0 {
		return fmt.Errorf("fov.default_radius is %d, must not be negative", c.FOV.DefaultRadius)
	}
	if c.Path.OccupiedCostFactor < 1 {
		return fmt.Errorf("path.occupied_cost_factor is %g, must be at least 1", c.Path.OccupiedCostFactor)
	}
	if c.Path.TieBreakWeight < 1 {
		return fmt.Errorf("path.tie_break_weight is %g, must be at least 1", c.Path.TieBreakWeight)
	}
	if c.Bench.GridWidth < 2 || c.Bench.GridHeight < 2 {
		return fmt.Errorf("bench grid is %dx%d, must be at least 2x2", c.Bench.GridWidth, c.Bench.GridHeight)
	}
	if c.Bench.WallChance < 0 || c.Bench.WallChance >= 1 {
		return fmt.Errorf("bench.wall_chance is %g, must be in [0, 1)", c.Bench.WallChance)
	}
	if c.Bench.Searches < 1 {
		return fmt.Errorf("bench.searches is %d, must be positive", c.Bench.Searches)
	}
	return nil
}
