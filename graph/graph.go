// Package graph holds the vertices and arcs being laid out.
//
// Arcs are stored directed, in the order they were created, but every
// connectivity query treats an arc in either direction as adjacency. Duplicate
// arcs and self-loops are kept as recorded. Vertices are never removed.
//
// A Graph is not safe for concurrent use; the owning session serializes ticks.
package graph

import (
	"errors"
	"fmt"

	"github.com/TFMV/forcegraph/models"
)

// ErrVertexOutOfRange indicates an operation referenced an id that was never assigned.
var ErrVertexOutOfRange = errors.New("graph: vertex id out of range")

// Vertex is a point mass in the layout. Equality is by ID only.
type Vertex struct {
	ID           models.VertexID
	Position     models.Vec2
	Velocity     models.Vec2
	Acceleration models.Vec2
}

// Graph stores vertices in insertion order and arcs as directed adjacency lists.
type Graph struct {
	vertices []Vertex
	arcs     map[models.VertexID][]models.VertexID
}

// NewGraph creates an empty Graph.
func NewGraph() *Graph {
	return &Graph{
		vertices: make([]Vertex, 0),
		arcs:     make(map[models.VertexID][]models.VertexID),
	}
}

// AddVertex appends a vertex at pos and returns its id.
func (g *Graph) AddVertex(pos models.Vec2) models.VertexID {
	id := models.VertexID(len(g.vertices))
	g.vertices = append(g.vertices, Vertex{ID: id, Position: pos})
	g.arcs[id] = []models.VertexID{}
	return id
}

// AddArc records the arc from → to.
func (g *Graph) AddArc(from, to models.VertexID) error {
	if !g.Has(from) || !g.Has(to) {
		return fmt.Errorf("%w: arc %d -> %d with %d vertices", ErrVertexOutOfRange, from, to, len(g.vertices))
	}
	g.arcs[from] = append(g.arcs[from], to)
	return nil
}

// Has reports whether id names an existing vertex.
func (g *Graph) Has(id models.VertexID) bool {
	return id >= 0 && int(id) < len(g.vertices)
}

// AreConnected reports whether an arc exists between a and b in either direction.
func (g *Graph) AreConnected(a, b models.VertexID) bool {
	return contains(g.arcs[a], b) || contains(g.arcs[b], a)
}

// AllArcs flattens the adjacency lists. The order of the result is unspecified.
func (g *Graph) AllArcs() []models.Arc {
	arcs := make([]models.Arc, 0, g.ArcCount())
	for from, targets := range g.arcs {
		for _, to := range targets {
			arcs = append(arcs, models.Arc{From: from, To: to})
		}
	}
	return arcs
}

// VertexCount returns the number of vertices.
func (g *Graph) VertexCount() int {
	return len(g.vertices)
}

// ArcCount returns the number of recorded arcs, duplicates included.
func (g *Graph) ArcCount() int {
	n := 0
	for _, targets := range g.arcs {
		n += len(targets)
	}
	return n
}

// Vertex returns a copy of the vertex with the given id.
func (g *Graph) Vertex(id models.VertexID) (Vertex, bool) {
	if !g.Has(id) {
		return Vertex{}, false
	}
	return g.vertices[id], true
}

// Position returns the current position of id.
func (g *Graph) Position(id models.VertexID) (models.Vec2, bool) {
	if !g.Has(id) {
		return models.Vec2{}, false
	}
	return g.vertices[id].Position, true
}

// Vertices returns a copy of all vertices in id order.
func (g *Graph) Vertices() []Vertex {
	out := make([]Vertex, len(g.vertices))
	copy(out, g.vertices)
	return out
}

// Targets returns a copy of the arcs recorded from id, in insertion order.
func (g *Graph) Targets(id models.VertexID) []models.VertexID {
	t := g.arcs[id]
	out := make([]models.VertexID, len(t))
	copy(out, t)
	return out
}

// Neighbors returns the ids adjacent to id in either direction, ascending,
// without duplicates. A self-loop makes id its own neighbor.
func (g *Graph) Neighbors(id models.VertexID) []models.VertexID {
	var out []models.VertexID
	for i := range g.vertices {
		other := models.VertexID(i)
		if g.AreConnected(id, other) {
			out = append(out, other)
		}
	}
	return out
}

// At returns a pointer to the stored vertex for in-place integration.
// The pointer is invalidated by the next AddVertex.
func (g *Graph) At(id models.VertexID) *Vertex {
	return &g.vertices[id]
}

func contains(ids []models.VertexID, id models.VertexID) bool {
	for _, x := range ids {
		if x == id {
			return true
		}
	}
	return false
}
