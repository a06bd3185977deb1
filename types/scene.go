package types

import (
	"context"

	"github.com/avsim/scenario-extract/polygons"
)

// PolygonType identifies one map polygon feature channel.
type PolygonType string

const (
	LanesMid   PolygonType = "lanes_mid"
	LanesLeft  PolygonType = "lanes_left"
	LanesRight PolygonType = "lanes_right"
	Crosswalks PolygonType = "crosswalks"
)

// PolygonTypes lists the channels in their batch order.
var PolygonTypes = []PolygonType{LanesMid, LanesLeft, LanesRight, Crosswalks}

// ClosedPolygonTypes are the channels whose polylines form closed loops.
var ClosedPolygonTypes = []PolygonType{Crosswalks}

// AgentLabel indexes the one-hot block of the agent feature vector.
type AgentLabel int

const (
	LabelCar AgentLabel = iota
	LabelCyclist
	LabelPedestrian

	NumAgentLabels = 3
)

// AgentLabelNames in AgentLabel order.
var AgentLabelNames = []string{"CAR", "CYCLIST", "PEDESTRIAN"}

func (l AgentLabel) String() string {
	if l < 0 || int(l) >= len(AgentLabelNames) {
		return "UNKNOWN"
	}
	return AgentLabelNames[l]
}

// TypeCodeToLabel maps the dataset's raw agent type codes to labels.
// Codes outside this map are dropped during extraction (and counted).
var TypeCodeToLabel = map[int]AgentLabel{
	3:  LabelCar,
	12: LabelCyclist,
	14: LabelPedestrian,
}

// SceneQuery addresses one frame of one scene in the dataset.
type SceneQuery struct {
	SceneID    int
	FrameIndex int
}

// AgentSnapshot is one non-ego agent in the world frame.
type AgentSnapshot struct {
	Centroid [2]float64
	Yaw      float64    // radians, world frame
	Extent   [2]float64 // length, width in meters
	Speed    float64
	TypeCode int
}

// EgoSnapshot is the ego vehicle state. Its pose defines the reference
// frame all extracted features are expressed in.
type EgoSnapshot struct {
	Centroid [2]float64
	Yaw      float64
	Extent   [2]float64
	Speed    float64
}

// SceneFrameData is the raw rasterized content of one frame.
//
// Lanes interleaves the two lane boundaries: even elements belong to
// the left boundary, odd elements to the right. LanesMid and Crosswalks
// carry one element per centerline / crosswalk.
type SceneFrameData struct {
	Ego        EgoSnapshot
	Agents     []AgentSnapshot
	Lanes      polygons.Raw
	LanesMid   polygons.Raw
	Crosswalks polygons.Raw
}

// SceneRasterizer is the upstream dataset boundary: given a scene and
// frame index it returns the raw per-agent and per-polygon arrays.
type SceneRasterizer interface {
	RasterizeFrame(ctx context.Context, q SceneQuery) (*SceneFrameData, error)
}
