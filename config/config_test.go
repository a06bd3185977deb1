package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	content := `
[data_generation]
other_agents_num = 12

[data_generation.lane_params]
max_num_lanes = 8
max_num_crosswalks = 4
max_points_per_lane = 10
max_points_per_crosswalk = 6
`
	path := filepath.Join(t.TempDir(), "extract.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.DataGeneration.OtherAgentsNum)
	assert.Equal(t, 8, cfg.DataGeneration.LaneParams.MaxNumLanes)
	assert.Equal(t, 6, cfg.DataGeneration.LaneParams.MaxPointsPerCrosswalk)
}

func TestLoadInvalid(t *testing.T) {
	content := `
[data_generation.lane_params]
max_num_lanes = 0
`
	path := filepath.Join(t.TempDir(), "extract.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestDefaultValid(t *testing.T) {
	assert.NoError(t, Default().Validate())
}
