// Package extract converts raw rasterized scene frames into the padded
// fixed-size feature tensors consumed by downstream models.
package extract

import (
	"github.com/avsim/scenario-extract/config"
	"github.com/avsim/scenario-extract/polygons"
	"github.com/avsim/scenario-extract/types"
)

// CoordDim is the number of coordinate columns kept per packed point.
// Only x and y are used; any further columns are dropped.
const CoordDim = 2

// SpeedFrameIndex is the frame extracted per scene. The first frames
// carry no finite-difference speed estimate, so extraction starts at
// index 2.
const SpeedFrameIndex = 2

// Props fixes the shapes and labels of the extracted dataset.
type Props struct {
	PolygonTypes       []types.PolygonType
	ClosedPolygonTypes []types.PolygonType
	MaxNumElems        int
	MaxPointsPerElem   int
	OtherAgentsNum     int
}

// NewProps derives the tensor shape from the lane parameters.
// MaxPointsPerElem doubles the raw per-element maximum so a point
// sequence and its reflection fit in one slot.
func NewProps(cfg *config.Config) Props {
	lp := cfg.DataGeneration.LaneParams
	return Props{
		PolygonTypes:       types.PolygonTypes,
		ClosedPolygonTypes: types.ClosedPolygonTypes,
		MaxNumElems:        maxInt(lp.MaxNumLanes, lp.MaxNumCrosswalks),
		MaxPointsPerElem:   2 * maxInt(lp.MaxPointsPerLane, lp.MaxPointsPerCrosswalk),
		OtherAgentsNum:     cfg.DataGeneration.OtherAgentsNum,
	}
}

// Limits returns the packing limits shared by all polygon channels.
func (p Props) Limits() polygons.Limits {
	return polygons.Limits{
		MaxElems:  p.MaxNumElems,
		MaxPoints: p.MaxPointsPerElem,
		CoordDim:  CoordDim,
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
