package extract

import (
	"math"

	"github.com/avsim/scenario-extract/types"
)

// EgoTransform maps world-frame coordinates into the ego frame of one
// scene: translate by the ego centroid, rotate by the negative ego yaw.
type EgoTransform struct {
	cos, sin float64
	origin   [2]float64
	yaw      float64
}

func NewEgoTransform(ego types.EgoSnapshot) EgoTransform {
	return EgoTransform{
		cos:    math.Cos(-ego.Yaw),
		sin:    math.Sin(-ego.Yaw),
		origin: ego.Centroid,
		yaw:    ego.Yaw,
	}
}

// Point transforms a world point into the ego frame.
func (t EgoTransform) Point(p [2]float64) [2]float64 {
	dx := p[0] - t.origin[0]
	dy := p[1] - t.origin[1]
	return [2]float64{
		t.cos*dx - t.sin*dy,
		t.sin*dx + t.cos*dy,
	}
}

// Yaw expresses a world-frame heading relative to the ego heading.
func (t EgoTransform) Yaw(yaw float64) float64 {
	return yaw - t.yaw
}
