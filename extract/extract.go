package extract

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/avsim/scenario-extract/cache"
	"github.com/avsim/scenario-extract/polygons"
	"github.com/avsim/scenario-extract/types"
	"github.com/avsim/scenario-extract/util"
)

// Extractor drives per-scene feature extraction against a rasterizer.
type Extractor struct {
	ras    types.SceneRasterizer
	props  Props
	cache  cache.ByteCache
	logger *log.Logger
}

type ExtractorOption func(*Extractor)

// WithCache caches serialized per-scene features so repeated runs skip
// rasterization.
func WithCache(c cache.ByteCache) ExtractorOption {
	return func(e *Extractor) { e.cache = c }
}

func WithLogger(l *log.Logger) ExtractorOption {
	return func(e *Extractor) { e.logger = l }
}

func NewExtractor(ras types.SceneRasterizer, props Props, opts ...ExtractorOption) *Extractor {
	e := &Extractor{
		ras:    ras,
		props:  props,
		logger: log.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// cacheEntry is the gob payload stored per scene.
type cacheEntry struct {
	Features *SceneFeatures
	Report   *Report
}

// ExtractScenes rasterizes each scene once and packs its agent and map
// features, returning the batch and the merged diagnostics report.
// Scenes are independent; a failing scene aborts the run with its
// scene id wrapped in the error.
func (e *Extractor) ExtractScenes(ctx context.Context, sceneIDs []int) (*SceneBatch, *Report, error) {
	batch := &SceneBatch{
		Props:  e.props,
		Scenes: make([]*SceneFeatures, 0, len(sceneIDs)),
	}
	report := NewReport()

	for i, id := range sceneIDs {
		select {
		case <-ctx.Done():
			return nil, nil, ctx.Err()
		default:
		}
		e.logger.Info("extracting scene", "scene", id, "progress", fmt.Sprintf("%d/%d", i+1, len(sceneIDs)))

		features, sceneReport, err := e.extractScene(ctx, id)
		if err != nil {
			return nil, nil, fmt.Errorf("scene %d: %w", id, err)
		}
		batch.Scenes = append(batch.Scenes, features)
		report.Merge(sceneReport)
	}
	report.Scenes = batch.Len()
	return batch, report, nil
}

func cacheKey(sceneID int) string {
	return fmt.Sprintf("scene:%d:frame:%d", sceneID, SpeedFrameIndex)
}

func (e *Extractor) extractScene(ctx context.Context, sceneID int) (*SceneFeatures, *Report, error) {
	key := cacheKey(sceneID)
	if e.cache != nil {
		bs, ok, err := e.cache.Get(ctx, key)
		if err != nil {
			e.logger.Warn("cache lookup failed", "scene", sceneID, "err", err)
		} else if ok {
			var entry cacheEntry
			if err := util.DecodeGob(bs, &entry); err == nil {
				e.logger.Debug("cache hit", "scene", sceneID)
				return entry.Features, entry.Report, nil
			}
			e.logger.Warn("discarding undecodable cache entry", "scene", sceneID)
		}
	}

	frame, err := e.ras.RasterizeFrame(ctx, types.SceneQuery{SceneID: sceneID, FrameIndex: SpeedFrameIndex})
	if err != nil {
		return nil, nil, fmt.Errorf("rasterize: %w", err)
	}

	report := NewReport()
	mapPoints, mapValid, err := e.mapFeatures(frame)
	if err != nil {
		return nil, nil, err
	}
	features := &SceneFeatures{
		SceneID:   sceneID,
		MapPoints: mapPoints,
		MapValid:  mapValid,
		Agents:    e.agentFeatures(frame, report),
	}

	if e.cache != nil {
		if bs, err := util.EncodeGob(cacheEntry{Features: features, Report: report}); err != nil {
			e.logger.Warn("encoding cache entry failed", "scene", sceneID, "err", err)
		} else if err := e.cache.Put(ctx, key, bs); err != nil {
			e.logger.Warn("cache store failed", "scene", sceneID, "err", err)
		}
	}
	return features, report, nil
}

// agentFeatures builds the per-agent feature list: the ego first,
// expressed in its own frame, then every allow-listed agent transformed
// into the ego frame. Unknown type codes are dropped and counted.
func (e *Extractor) agentFeatures(frame *types.SceneFrameData, report *Report) []AgentFeature {
	tr := NewEgoTransform(frame.Ego)
	features := make([]AgentFeature, 0, len(frame.Agents)+1)

	features = append(features, AgentFeature{
		Label:  types.LabelCar,
		Yaw:    0,
		Speed:  frame.Ego.Speed,
		Extent: frame.Ego.Extent,
	})

	for _, agent := range frame.Agents {
		label, ok := report.CountAgent(agent.TypeCode)
		if !ok {
			continue
		}
		features = append(features, AgentFeature{
			Label:    label,
			Centroid: tr.Point(agent.Centroid),
			Yaw:      tr.Yaw(agent.Yaw),
			Extent:   agent.Extent,
			Speed:    agent.Speed,
		})
	}
	return features
}

// mapFeatures packs every polygon channel of the frame. The interleaved
// lane boundary channel is split into its left and right halves before
// packing.
func (e *Extractor) mapFeatures(frame *types.SceneFrameData) ([][][][]float64, [][]bool, error) {
	lim := e.props.Limits()
	left, right := polygons.Deinterleave(frame.Lanes)
	channels := map[types.PolygonType]polygons.Raw{
		types.LanesMid:   frame.LanesMid,
		types.LanesLeft:  left,
		types.LanesRight: right,
		types.Crosswalks: frame.Crosswalks,
	}

	mapPoints := make([][][][]float64, len(e.props.PolygonTypes))
	mapValid := make([][]bool, len(e.props.PolygonTypes))
	for i, polyType := range e.props.PolygonTypes {
		packed, err := polygons.PackRaw(channels[polyType], lim)
		if err != nil {
			return nil, nil, fmt.Errorf("channel %s: %w", polyType, err)
		}
		mapPoints[i] = packed.Points
		mapValid[i] = packed.Valid
	}
	return mapPoints, mapValid, nil
}
