package physics

import (
	"github.com/TFMV/forcegraph/graph"
	"github.com/TFMV/forcegraph/models"
	opensimplex "github.com/ojrac/opensimplex-go"
)

// SurrealLayout decorates a base layout with a slow opensimplex drift.
// Drift is only applied while the force simulation runs and never to the
// pinned vertex, so disabling force still freezes the graph.
type SurrealLayout struct {
	baseLayout     LayoutAlgorithm
	noiseGenerator opensimplex.Noise
	noiseScale     float64
	timeStep       float64
	intensity      float64 // maximum drift per step, in world units
}

// NewSurrealLayout creates a new surreal layout using the specified base layout
func NewSurrealLayout(base LayoutAlgorithm, intensity float64, seed int64) *SurrealLayout {
	return &SurrealLayout{
		baseLayout:     base,
		noiseGenerator: opensimplex.New(seed),
		noiseScale:     0.003,
		intensity:      intensity,
	}
}

// GetName returns the name of the layout algorithm
func (sl *SurrealLayout) GetName() string {
	return "Surreal Layout"
}

// Step runs the base layout and then nudges every free vertex along the noise field
func (sl *SurrealLayout) Step(g *graph.Graph, f Frame) {
	sl.baseLayout.Step(g, f)
	if !f.ForceEnabled || sl.intensity <= 0 {
		return
	}

	for i := 0; i < g.VertexCount(); i++ {
		id := models.VertexID(i)
		if f.Pinned.Is(id) {
			continue
		}
		v := g.At(id)
		phase := float64(id) * 0.1
		dx := sl.noiseGenerator.Eval3(v.Position.X*sl.noiseScale, v.Position.Y*sl.noiseScale, sl.timeStep+phase)
		dy := sl.noiseGenerator.Eval3(v.Position.X*sl.noiseScale+100, v.Position.Y*sl.noiseScale+100, sl.timeStep+phase)
		v.Position = v.Position.Add(models.V(dx, dy).Scale(sl.intensity))
	}

	sl.timeStep += 0.01
}
