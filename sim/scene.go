// Package sim is a deterministic synthetic stand-in for the real
// driving dataset: it generates scene frames behind the rasterizer
// interface and exposes a small closed-loop ego environment, so the
// extraction and rollout pipelines run end to end without the
// proprietary simulator.
package sim

import (
	"context"
	"fmt"
	"math"

	"golang.org/x/exp/rand"

	"github.com/avsim/scenario-extract/types"
)

type Config struct {
	NumLanes           int
	NumCrosswalks      int
	NumAgents          int
	PointsPerLane      int
	PointsPerCrosswalk int
	LaneWidth          float64
	Horizon            int // episode length of the eval environment
	Seed               uint64
}

func DefaultConfig() Config {
	return Config{
		NumLanes:           4,
		NumCrosswalks:      2,
		NumAgents:          8,
		PointsPerLane:      12,
		PointsPerCrosswalk: 5,
		LaneWidth:          3.5,
		Horizon:            60,
		Seed:               7,
	}
}

// Rasterizer generates scene frames keyed by scene id. The same query
// always yields the same frame.
type Rasterizer struct {
	cfg Config
}

func NewRasterizer(cfg Config) *Rasterizer {
	return &Rasterizer{cfg: cfg}
}

var _ types.SceneRasterizer = &Rasterizer{}

// rawTypeCodes sampled for generated agents. Codes 2 and 11 are outside
// the allow-list, so extraction reports dropped agents on most scenes.
var rawTypeCodes = []int{3, 3, 3, 3, 12, 14, 14, 2, 11}

func (r *Rasterizer) RasterizeFrame(ctx context.Context, q types.SceneQuery) (*types.SceneFrameData, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}
	if q.SceneID < 0 {
		return nil, fmt.Errorf("sim: negative scene id %d", q.SceneID)
	}
	if q.FrameIndex < 0 {
		return nil, fmt.Errorf("sim: negative frame index %d", q.FrameIndex)
	}

	rng := rand.New(rand.NewSource(r.cfg.Seed + uint64(q.SceneID)*1000003 + uint64(q.FrameIndex)))

	ego := types.EgoSnapshot{
		Centroid: [2]float64{rng.Float64()*100 - 50, rng.Float64()*100 - 50},
		Yaw:      rng.Float64() * 2 * math.Pi,
		Extent:   [2]float64{4.5, 2.0},
		Speed:    rng.Float64() * 15,
	}

	frame := &types.SceneFrameData{Ego: ego}
	r.generateLanes(rng, ego, frame)
	r.generateCrosswalks(rng, ego, frame)
	r.generateAgents(rng, ego, frame)
	return frame, nil
}

// generateLanes emits one centerline per lane plus the interleaved
// left/right boundary channel. Points carry a third (z) column that
// packing drops. Some lanes get a fully invalid mask to exercise
// compaction downstream.
func (r *Rasterizer) generateLanes(rng *rand.Rand, ego types.EgoSnapshot, frame *types.SceneFrameData) {
	for lane := 0; lane < r.cfg.NumLanes; lane++ {
		heading := ego.Yaw + (rng.Float64()-0.5)*0.4
		curvature := (rng.Float64() - 0.5) * 0.02
		offset := float64(lane-r.cfg.NumLanes/2) * r.cfg.LaneWidth

		start := [2]float64{
			ego.Centroid[0] - math.Sin(heading)*offset,
			ego.Centroid[1] + math.Cos(heading)*offset,
		}

		mid := make([][]float64, r.cfg.PointsPerLane)
		left := make([][]float64, r.cfg.PointsPerLane)
		right := make([][]float64, r.cfg.PointsPerLane)
		for i := 0; i < r.cfg.PointsPerLane; i++ {
			h := heading + curvature*float64(i)
			start[0] += math.Cos(h) * 2
			start[1] += math.Sin(h) * 2
			nx, ny := -math.Sin(h), math.Cos(h)
			half := r.cfg.LaneWidth / 2
			mid[i] = []float64{start[0], start[1], 0}
			left[i] = []float64{start[0] + nx*half, start[1] + ny*half, 0}
			right[i] = []float64{start[0] - nx*half, start[1] - ny*half, 0}
		}

		validCount := r.cfg.PointsPerLane
		if rng.Float64() < 0.2 {
			validCount = rng.Intn(r.cfg.PointsPerLane)
		}
		valid := make([]bool, r.cfg.PointsPerLane)
		for i := 0; i < validCount; i++ {
			valid[i] = true
		}

		frame.LanesMid.Points = append(frame.LanesMid.Points, mid)
		frame.LanesMid.Valid = append(frame.LanesMid.Valid, valid)
		// boundaries interleave: even elements left, odd right
		frame.Lanes.Points = append(frame.Lanes.Points, left, right)
		frame.Lanes.Valid = append(frame.Lanes.Valid, valid, valid)
	}
}

func (r *Rasterizer) generateCrosswalks(rng *rand.Rand, ego types.EgoSnapshot, frame *types.SceneFrameData) {
	for cw := 0; cw < r.cfg.NumCrosswalks; cw++ {
		cx := ego.Centroid[0] + rng.Float64()*40 - 20
		cy := ego.Centroid[1] + rng.Float64()*40 - 20
		w := 2 + rng.Float64()*2
		d := 4 + rng.Float64()*3

		corners := [][2]float64{
			{cx - d/2, cy - w/2},
			{cx + d/2, cy - w/2},
			{cx + d/2, cy + w/2},
			{cx - d/2, cy + w/2},
		}
		points := make([][]float64, 0, r.cfg.PointsPerCrosswalk)
		valid := make([]bool, 0, r.cfg.PointsPerCrosswalk)
		for i := 0; i < r.cfg.PointsPerCrosswalk; i++ {
			c := corners[i%len(corners)]
			points = append(points, []float64{c[0], c[1]})
			valid = append(valid, true)
		}
		frame.Crosswalks.Points = append(frame.Crosswalks.Points, points)
		frame.Crosswalks.Valid = append(frame.Crosswalks.Valid, valid)
	}
}

func (r *Rasterizer) generateAgents(rng *rand.Rand, ego types.EgoSnapshot, frame *types.SceneFrameData) {
	for i := 0; i < r.cfg.NumAgents; i++ {
		code := rawTypeCodes[rng.Intn(len(rawTypeCodes))]
		extent := [2]float64{4.0, 1.8}
		speed := rng.Float64() * 14
		switch code {
		case 12:
			extent = [2]float64{1.8, 0.6}
			speed = rng.Float64() * 8
		case 14:
			extent = [2]float64{0.6, 0.6}
			speed = rng.Float64() * 2
		}
		frame.Agents = append(frame.Agents, types.AgentSnapshot{
			Centroid: [2]float64{
				ego.Centroid[0] + rng.Float64()*60 - 30,
				ego.Centroid[1] + rng.Float64()*60 - 30,
			},
			Yaw:      rng.Float64() * 2 * math.Pi,
			Extent:   extent,
			Speed:    speed,
			TypeCode: code,
		})
	}
}
