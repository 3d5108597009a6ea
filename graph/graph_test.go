package graph_test

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TFMV/forcegraph/graph"
	"github.com/TFMV/forcegraph/models"
)

func sortArcs(arcs []models.Arc) []models.Arc {
	sort.Slice(arcs, func(i, j int) bool {
		if arcs[i].From != arcs[j].From {
			return arcs[i].From < arcs[j].From
		}
		return arcs[i].To < arcs[j].To
	})
	return arcs
}

func TestAddVertexAssignsSequentialIDs(t *testing.T) {
	g := graph.NewGraph()
	for i := 0; i < 5; i++ {
		id := g.AddVertex(models.V(float64(i), 0))
		require.Equal(t, models.VertexID(i), id)
	}
	require.Equal(t, 5, g.VertexCount())

	v, ok := g.Vertex(3)
	require.True(t, ok)
	assert.Equal(t, models.V(3, 0), v.Position)
	assert.True(t, v.Velocity.IsZero())
	assert.True(t, v.Acceleration.IsZero())
	assert.Empty(t, g.Targets(3), "every vertex starts with an empty adjacency entry")
}

func TestAddArcRejectsUnknownIDs(t *testing.T) {
	g := graph.NewGraph()
	g.AddVertex(models.Vec2{})

	err := g.AddArc(0, 1)
	require.ErrorIs(t, err, graph.ErrVertexOutOfRange)
	err = g.AddArc(-1, 0)
	require.ErrorIs(t, err, graph.ErrVertexOutOfRange)
	assert.Equal(t, 0, g.ArcCount())
}

func TestConnectivityIsSymmetric(t *testing.T) {
	g := graph.NewGraph()
	a := g.AddVertex(models.Vec2{})
	b := g.AddVertex(models.Vec2{})
	c := g.AddVertex(models.Vec2{})
	require.NoError(t, g.AddArc(a, b))

	assert.True(t, g.AreConnected(a, b))
	assert.True(t, g.AreConnected(b, a))
	assert.False(t, g.AreConnected(a, c))
	assert.Equal(t, []models.VertexID{b}, g.Targets(a))
	assert.Empty(t, g.Targets(b), "arcs are stored directed")
}

func TestDuplicatesAndSelfLoopsAreKept(t *testing.T) {
	g := graph.NewGraph()
	a := g.AddVertex(models.Vec2{})
	b := g.AddVertex(models.Vec2{})
	require.NoError(t, g.AddArc(a, b))
	require.NoError(t, g.AddArc(a, b))
	require.NoError(t, g.AddArc(b, b))

	assert.Equal(t, 3, g.ArcCount())
	assert.Equal(t, []models.Arc{{From: 0, To: 1}, {From: 0, To: 1}, {From: 1, To: 1}}, sortArcs(g.AllArcs()))
	assert.Equal(t, []models.VertexID{0, 1}, g.Neighbors(b))
	assert.Equal(t, []models.VertexID{1}, g.Neighbors(a))
}

func TestVerticesReturnsCopy(t *testing.T) {
	g := graph.NewGraph()
	g.AddVertex(models.V(1, 1))
	vs := g.Vertices()
	vs[0].Position = models.V(9, 9)

	p, ok := g.Position(0)
	require.True(t, ok)
	assert.Equal(t, models.V(1, 1), p)
	_, ok = g.Position(1)
	assert.False(t, ok)
}
