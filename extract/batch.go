package extract

// SceneFeatures holds the packed features of one scene. MapPoints and
// MapValid are ordered as Props.PolygonTypes, giving the per-scene
// slices of the batched (scene, type, elem, point, coord) tensor.
type SceneFeatures struct {
	SceneID   int
	MapPoints [][][][]float64 // [polyType][elem][point][coord]
	MapValid  [][]bool        // [polyType][elem]
	Agents    []AgentFeature  // ego first
}

// AgentMatrix flattens the agent features into a (numAgents, 10) matrix
// in the AgentFeatureLabels column layout.
func (s *SceneFeatures) AgentMatrix() [][]float64 {
	m := make([][]float64, len(s.Agents))
	for i, a := range s.Agents {
		m[i] = a.Vector()
	}
	return m
}

// SceneBatch stacks per-scene features; the slice index is the batch
// (scene) axis of the output tensor.
type SceneBatch struct {
	Props  Props
	Scenes []*SceneFeatures
}

func (b *SceneBatch) Len() int {
	return len(b.Scenes)
}
