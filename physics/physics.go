package physics

import (
	"github.com/TFMV/forcegraph/graph"
	"github.com/TFMV/forcegraph/models"
)

// Force law constants. Changing any of them changes how every layout settles.
const (
	NearThreshold = 400.0    // below this distance every pair repels
	MinDistance   = 50.0     // repulsion distance clamp
	Repulsion     = 500000.0 // inverse-square repulsion strength
	SpringCoef    = 0.01     // spring stiffness for connected, far pairs
	AimDistance   = 375.0    // equilibrium separation of a connected pair
	Bias          = 1.0      // constant push added to the spring term
	FluctBand     = 100.0    // half-width of the band around AimDistance that is damped
	FluctDamping  = 0.1      // spring damping inside FluctBand
	MinForce      = 1.0      // forces weaker than this are dropped
	Smoothing     = 0.2      // positional lerp factor applied on integration
)

// Frame carries the per-tick interaction state the simulator needs
type Frame struct {
	Pinned       models.OptionalID // vertex following the pointer, if any
	ForceEnabled bool
	Pointer      models.Vec2 // world position the pinned vertex is moved to
}

// LayoutAlgorithm defines an interface for layout algorithms
type LayoutAlgorithm interface {
	Step(g *graph.Graph, f Frame)
	GetName() string
}

// ForceDirectedLayout advances positions with the pairwise force law in Relate.
// It holds no state between steps; velocities live on the vertices.
type ForceDirectedLayout struct{}

// NewForceDirectedLayout creates a new force-directed layout
func NewForceDirectedLayout() *ForceDirectedLayout {
	return &ForceDirectedLayout{}
}

// GetName returns the name of the layout algorithm
func (fd *ForceDirectedLayout) GetName() string {
	return "Force-Directed Layout"
}

// Step performs one iteration of the layout algorithm
func (fd *ForceDirectedLayout) Step(g *graph.Graph, f Frame) {
	Step(g, f)
}

// Step advances g by one tick.
//
// The pinned vertex is moved to the pointer first, so the rest of the graph
// reacts to where it is held now. It never accumulates force and is never
// integrated. With force disabled nothing else moves.
func Step(g *graph.Graph, f Frame) {
	pinned, hasPin := f.Pinned.Get()
	if hasPin && g.Has(pinned) {
		g.At(pinned).Position = f.Pointer
	} else {
		hasPin = false
	}
	if !f.ForceEnabled {
		return
	}

	n := g.VertexCount()
	// accumulate against the positions as they were at the start of the step
	for i := 0; i < n; i++ {
		id := models.VertexID(i)
		if hasPin && id == pinned {
			continue
		}
		var acc models.Vec2
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			acc = acc.Add(Relate(g, id, models.VertexID(j)))
		}
		v := g.At(id)
		v.Acceleration = v.Acceleration.Add(acc)
	}

	for i := 0; i < n; i++ {
		id := models.VertexID(i)
		if hasPin && id == pinned {
			continue
		}
		integrate(g.At(id))
	}
}

// Relate returns the force other exerts on self.
//
// Unconnected pairs repel at any distance, as do connected pairs closer than
// NearThreshold. Connected pairs at or beyond NearThreshold are pulled towards
// AimDistance. Coincident vertices have no preferred direction and exert nothing.
func Relate(g *graph.Graph, self, other models.VertexID) models.Vec2 {
	p1, _ := g.Position(self)
	p2, _ := g.Position(other)
	return relate(p1, p2, g.AreConnected(self, other))
}

func relate(self, other models.Vec2, connected bool) models.Vec2 {
	nv := self.Sub(other)
	dir, ok := nv.Normalize()
	if !ok {
		return models.Vec2{}
	}
	d := nv.Length()

	var scalar float64
	if d < NearThreshold || !connected {
		// squared distance from the components, not Length() squared
		d2 := nv.X*nv.X + nv.Y*nv.Y
		if d2 < MinDistance*MinDistance {
			d2 = MinDistance * MinDistance
		}
		scalar = Repulsion / d2
	} else {
		scalar = SpringCoef*(AimDistance-d) + Bias
		if abs(AimDistance-d) < FluctBand {
			scalar *= FluctDamping
		}
	}

	if abs(scalar) < MinForce {
		return models.Vec2{}
	}
	return dir.Scale(scalar)
}

func integrate(v *graph.Vertex) {
	v.Velocity = v.Velocity.Add(v.Acceleration)
	v.Position = v.Position.Lerp(v.Position.Add(v.Velocity), Smoothing)
	v.Acceleration = models.Vec2{}
}

// Energy returns the summed speed of all vertices, a rough measure of how far
// the layout is from settling.
func Energy(g *graph.Graph) float64 {
	total := 0.0
	for i := 0; i < g.VertexCount(); i++ {
		total += g.At(models.VertexID(i)).Velocity.Length()
	}
	return total
}

// GetLayoutAlgorithm returns a layout algorithm by name
func GetLayoutAlgorithm(name string, noise float64, seed int64) LayoutAlgorithm {
	switch name {
	case "surreal":
		return NewSurrealLayout(NewForceDirectedLayout(), noise, seed)
	default:
		if noise > 0 {
			return NewSurrealLayout(NewForceDirectedLayout(), noise, seed)
		}
		return NewForceDirectedLayout()
	}
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
