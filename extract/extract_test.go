package extract

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avsim/scenario-extract/cache"
	"github.com/avsim/scenario-extract/config"
	"github.com/avsim/scenario-extract/polygons"
	"github.com/avsim/scenario-extract/types"
)

// stubRasterizer returns a fixed frame and counts invocations.
type stubRasterizer struct {
	frame *types.SceneFrameData
	calls int
}

func (s *stubRasterizer) RasterizeFrame(_ context.Context, q types.SceneQuery) (*types.SceneFrameData, error) {
	s.calls++
	return s.frame, nil
}

func testFrame() *types.SceneFrameData {
	return &types.SceneFrameData{
		Ego: types.EgoSnapshot{
			Centroid: [2]float64{10, 5},
			Yaw:      math.Pi / 2,
			Extent:   [2]float64{4.5, 2},
			Speed:    3,
		},
		Agents: []types.AgentSnapshot{
			{Centroid: [2]float64{10, 8}, Yaw: math.Pi / 2, Extent: [2]float64{4, 1.8}, Speed: 2, TypeCode: 3},
			{Centroid: [2]float64{12, 5}, Yaw: 0, Extent: [2]float64{2, 0.8}, Speed: 5, TypeCode: 12},
			{Centroid: [2]float64{9, 5}, Yaw: 0, Extent: [2]float64{1, 1}, Speed: 0, TypeCode: 7}, // not allow-listed
		},
		Lanes: polygons.Raw{
			// interleaved boundaries: elements 0, 2 left; 1, 3 right
			Points: [][][]float64{
				{{0, 0, 1}, {1, 0, 1}},
				{{0, 1, 1}, {1, 1, 1}},
				{{5, 0, 1}},
				{{5, 1, 1}},
			},
			Valid: [][]bool{{true, true}, {true, true}, {true}, {true}},
		},
		LanesMid: polygons.Raw{
			Points: [][][]float64{{{0, 0.5}, {1, 0.5}}},
			Valid:  [][]bool{{true, true}},
		},
		Crosswalks: polygons.Raw{
			Points: [][][]float64{{{2, 2}, {3, 2}, {3, 3}}},
			Valid:  [][]bool{{true, true, true}},
		},
	}
}

func testProps() Props {
	cfg := config.Default()
	cfg.DataGeneration.LaneParams = config.LaneParams{
		MaxNumLanes:           4,
		MaxNumCrosswalks:      2,
		MaxPointsPerLane:      5,
		MaxPointsPerCrosswalk: 4,
	}
	return NewProps(cfg)
}

func TestNewProps(t *testing.T) {
	p := testProps()
	assert.Equal(t, 4, p.MaxNumElems)
	assert.Equal(t, 10, p.MaxPointsPerElem)
	assert.Equal(t, types.PolygonTypes, p.PolygonTypes)
}

func TestExtractScenes(t *testing.T) {
	ras := &stubRasterizer{frame: testFrame()}
	ex := NewExtractor(ras, testProps())

	batch, report, err := ex.ExtractScenes(context.Background(), []int{0, 1})
	require.NoError(t, err)

	require.Equal(t, 2, batch.Len())
	assert.Equal(t, 2, report.Scenes)

	scene := batch.Scenes[0]
	require.Len(t, scene.MapPoints, len(types.PolygonTypes))
	require.Len(t, scene.MapValid, len(types.PolygonTypes))
	for i := range scene.MapPoints {
		assert.Len(t, scene.MapPoints[i], 4)
		assert.Len(t, scene.MapValid[i], 4)
		for _, elem := range scene.MapPoints[i] {
			assert.Len(t, elem, 10)
		}
	}

	// lanes deinterleave: two left and two right boundary elements
	leftIdx := 1  // types.PolygonTypes order: mid, left, right, crosswalks
	rightIdx := 2
	assert.Equal(t, []bool{true, true, false, false}, scene.MapValid[leftIdx])
	assert.Equal(t, []bool{true, true, false, false}, scene.MapValid[rightIdx])
	// left boundary keeps x, y and drops the third column
	assert.Equal(t, []float64{0, 0}, scene.MapPoints[leftIdx][0][0])
	assert.Equal(t, []float64{0, 1}, scene.MapPoints[rightIdx][0][0])
}

func TestExtractAgentFeatures(t *testing.T) {
	ras := &stubRasterizer{frame: testFrame()}
	ex := NewExtractor(ras, testProps())

	batch, report, err := ex.ExtractScenes(context.Background(), []int{0})
	require.NoError(t, err)

	scene := batch.Scenes[0]
	// ego + 2 allow-listed agents; the unknown type code is dropped
	require.Len(t, scene.Agents, 3)
	assert.Equal(t, 1, report.DroppedAgents)
	assert.Equal(t, 1, report.RawTypeCounts[7])
	assert.Equal(t, 1, report.LabelCounts[types.LabelCar])
	assert.Equal(t, 1, report.LabelCounts[types.LabelCyclist])

	ego := scene.Agents[0]
	assert.Equal(t, types.LabelCar, ego.Label)
	assert.Equal(t, [2]float64{0, 0}, ego.Centroid)
	assert.Equal(t, 0.0, ego.Yaw)
	assert.Equal(t, 3.0, ego.Speed)

	// the car 3m ahead of the ego (heading +y in world) lands on the
	// ego frame x axis
	car := scene.Agents[1]
	assert.InDelta(t, 3, car.Centroid[0], 1e-9)
	assert.InDelta(t, 0, car.Centroid[1], 1e-9)
	assert.InDelta(t, 0, car.Yaw, 1e-9)

	vec := car.Vector()
	require.Len(t, vec, len(AgentFeatureLabels))
	assert.InDelta(t, 1, vec[2], 1e-9) // yaw_cos
	assert.InDelta(t, 0, vec[3], 1e-9) // yaw_sin
	assert.Equal(t, 1.0, vec[7])       // is_CAR
	assert.Equal(t, 0.0, vec[8])
}

func TestExtractUsesCache(t *testing.T) {
	ras := &stubRasterizer{frame: testFrame()}
	mem := cache.NewMemoryCache()
	ex := NewExtractor(ras, testProps(), WithCache(mem))

	_, report1, err := ex.ExtractScenes(context.Background(), []int{0})
	require.NoError(t, err)
	require.Equal(t, 1, ras.calls)

	batch, report2, err := ex.ExtractScenes(context.Background(), []int{0})
	require.NoError(t, err)
	assert.Equal(t, 1, ras.calls, "second run must be served from the cache")
	assert.Equal(t, 1, batch.Len())
	assert.Equal(t, report1.DroppedAgents, report2.DroppedAgents)
	assert.Equal(t, report1.RawTypeCounts, report2.RawTypeCounts)
}

func TestExtractCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ex := NewExtractor(&stubRasterizer{frame: testFrame()}, testProps())
	_, _, err := ex.ExtractScenes(ctx, []int{0})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestReportMerge(t *testing.T) {
	a := NewReport()
	a.CountAgent(3)
	a.CountAgent(7)
	b := NewReport()
	b.CountAgent(3)
	b.CountAgent(14)

	a.Merge(b)
	assert.Equal(t, 2, a.RawTypeCounts[3])
	assert.Equal(t, 1, a.DroppedAgents)
	assert.Equal(t, 2, a.LabelCounts[types.LabelCar])
	assert.Equal(t, 1, a.LabelCounts[types.LabelPedestrian])
	assert.Contains(t, a.String(), "dropped agents: 1")
}

func TestEgoTransformRoundTrip(t *testing.T) {
	tr := NewEgoTransform(types.EgoSnapshot{Centroid: [2]float64{3, -2}, Yaw: 0.7})

	// the ego's own centroid maps to the origin
	p := tr.Point([2]float64{3, -2})
	assert.InDelta(t, 0, p[0], 1e-12)
	assert.InDelta(t, 0, p[1], 1e-12)

	// distances are preserved
	q := tr.Point([2]float64{4, -2})
	assert.InDelta(t, 1, math.Hypot(q[0], q[1]), 1e-12)

	assert.InDelta(t, 0.1, tr.Yaw(0.8), 1e-12)
}
