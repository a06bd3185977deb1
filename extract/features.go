package extract

import (
	"math"

	"github.com/avsim/scenario-extract/types"
)

// AgentFeatureLabels names the columns of AgentFeature.Vector, in order.
var AgentFeatureLabels = []string{
	"centroid_x",
	"centroid_y",
	"yaw_cos",
	"yaw_sin",
	"extent_length",
	"extent_width",
	"speed",
	"is_CAR",
	"is_CYCLIST",
	"is_PEDESTRIAN",
}

// AgentFeature is one agent expressed in the ego frame.
type AgentFeature struct {
	Label    types.AgentLabel
	Centroid [2]float64
	Yaw      float64
	Extent   [2]float64
	Speed    float64
}

// Vector flattens the feature into the AgentFeatureLabels layout:
// position, yaw as (cos, sin), extent, speed, one-hot label.
func (a AgentFeature) Vector() []float64 {
	v := make([]float64, 0, len(AgentFeatureLabels))
	v = append(v,
		a.Centroid[0], a.Centroid[1],
		math.Cos(a.Yaw), math.Sin(a.Yaw),
		a.Extent[0], a.Extent[1],
		a.Speed,
	)
	onehot := make([]float64, types.NumAgentLabels)
	if a.Label >= 0 && int(a.Label) < types.NumAgentLabels {
		onehot[a.Label] = 1
	}
	return append(v, onehot...)
}
