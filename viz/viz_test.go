package viz

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avsim/scenario-extract/callbacks"
	"github.com/avsim/scenario-extract/config"
	"github.com/avsim/scenario-extract/extract"
	"github.com/avsim/scenario-extract/sim"
)

func testBatch(t *testing.T) *extract.SceneBatch {
	t.Helper()
	cfg := config.Default()
	cfg.DataGeneration.LaneParams = config.LaneParams{
		MaxNumLanes:           6,
		MaxNumCrosswalks:      3,
		MaxPointsPerLane:      12,
		MaxPointsPerCrosswalk: 5,
	}
	ex := extract.NewExtractor(sim.NewRasterizer(sim.DefaultConfig()), extract.NewProps(cfg))
	batch, _, err := ex.ExtractScenes(context.Background(), []int{0, 1})
	require.NoError(t, err)
	return batch
}

func TestGobSinkRoundTrip(t *testing.T) {
	batch := testBatch(t)
	path := filepath.Join(t.TempDir(), "batch.gob")

	require.NoError(t, GobSink{}.Accept(batch, path))
	loaded, err := LoadBatch(path)
	require.NoError(t, err)
	assert.Equal(t, batch.Len(), loaded.Len())
	assert.Equal(t, batch.Scenes[0].MapValid, loaded.Scenes[0].MapValid)
}

func TestHTMLSinkWritesScenePages(t *testing.T) {
	batch := testBatch(t)
	dir := filepath.Join(t.TempDir(), "plots")

	require.NoError(t, HTMLSink{}.Accept(batch, dir))
	for _, name := range []string{"scene_0.html", "scene_1.html"} {
		bs, err := os.ReadFile(filepath.Join(dir, name))
		require.NoError(t, err)
		assert.Contains(t, string(bs), "lanes_mid")
		assert.Contains(t, string(bs), "agents")
	}
}

func TestSaveTrajectoryPlot(t *testing.T) {
	traj := &callbacks.Trajectory{}
	traj.Append([2]float64{1, 0.1}, [2]float64{1, 0})
	traj.Append([2]float64{1, -0.1}, [2]float64{1, 0})

	path := filepath.Join(t.TempDir(), "traj", "comparison.png")
	require.NoError(t, SaveTrajectoryPlot(path, traj))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}
