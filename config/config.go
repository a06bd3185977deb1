// Package config loads the data-generation parameters that fix the
// extracted tensor shapes.
package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// LaneParams bounds the raw map content considered per scene.
type LaneParams struct {
	MaxNumLanes           int `toml:"max_num_lanes"`
	MaxNumCrosswalks      int `toml:"max_num_crosswalks"`
	MaxPointsPerLane      int `toml:"max_points_per_lane"`
	MaxPointsPerCrosswalk int `toml:"max_points_per_crosswalk"`
}

// DataGeneration mirrors the data_generation_params section of the
// source dataset configuration.
type DataGeneration struct {
	OtherAgentsNum int        `toml:"other_agents_num"`
	LaneParams     LaneParams `toml:"lane_params"`
}

type Config struct {
	DataGeneration DataGeneration `toml:"data_generation"`
}

// Default returns the parameters used throughout the experiments.
func Default() *Config {
	return &Config{
		DataGeneration: DataGeneration{
			OtherAgentsNum: 30,
			LaneParams: LaneParams{
				MaxNumLanes:           30,
				MaxNumCrosswalks:      20,
				MaxPointsPerLane:      20,
				MaxPointsPerCrosswalk: 20,
			},
		},
	}
}

// Load reads and validates a TOML configuration file.
func Load(path string) (*Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: decoding %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	lp := c.DataGeneration.LaneParams
	if lp.MaxNumLanes <= 0 || lp.MaxNumCrosswalks <= 0 {
		return fmt.Errorf("config: lane/crosswalk element limits must be positive (got %d, %d)", lp.MaxNumLanes, lp.MaxNumCrosswalks)
	}
	if lp.MaxPointsPerLane <= 0 || lp.MaxPointsPerCrosswalk <= 0 {
		return fmt.Errorf("config: per-element point limits must be positive (got %d, %d)", lp.MaxPointsPerLane, lp.MaxPointsPerCrosswalk)
	}
	if c.DataGeneration.OtherAgentsNum < 0 {
		return fmt.Errorf("config: other_agents_num must be non-negative, got %d", c.DataGeneration.OtherAgentsNum)
	}
	return nil
}
