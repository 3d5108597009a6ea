package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TFMV/forcegraph/clique"
	"github.com/TFMV/forcegraph/graph"
	"github.com/TFMV/forcegraph/models"
)

func TestScriptProcessor(t *testing.T) {
	script := []byte(`
# build two vertices and link them
move 500 500
vertex
move 800 500
down secondary
up secondary
tick

mode link
move 505 500
down
move 795 500
up primary
tick 3
force off
clique
`)
	batches, err := NewScriptProcessor().ProcessData(script)
	require.NoError(t, err)
	require.Len(t, batches, 5)

	assert.Equal(t, Batch{
		models.PointerMove(models.V(500, 500)),
		models.CreateVertex(),
		models.PointerMove(models.V(800, 500)),
		models.PointerDown(models.ButtonSecondary),
		models.PointerUp(models.ButtonSecondary),
	}, batches[0])
	assert.Equal(t, Batch{
		models.SetMode(models.ModeLink),
		models.PointerMove(models.V(505, 500)),
		models.PointerDown(models.ButtonPrimary),
		models.PointerMove(models.V(795, 500)),
		models.PointerUp(models.ButtonPrimary),
	}, batches[1])
	assert.Empty(t, batches[2])
	assert.Empty(t, batches[3])
	assert.Equal(t, Batch{models.SetForce(false), models.ComputeClique()}, batches[4])
}

func TestScriptErrorsNameTheLine(t *testing.T) {
	cases := map[string]string{
		"move 1":             "line 1: move expects 2 arguments",
		"vertex\nmove a 2":   "line 2: invalid x",
		"mode drag":          "line 1: unknown mode",
		"\n\nforce maybe":    "line 3: invalid force value",
		"tick 0":             "line 1: invalid tick count",
		"down middle":        "line 1: unknown button",
		"# comment\njump 1 2": "line 2: unknown command",
	}
	for script, want := range cases {
		_, err := NewScriptProcessor().ProcessData([]byte(script))
		require.Error(t, err, script)
		assert.Contains(t, err.Error(), want)
	}
}

func TestGetProcessor(t *testing.T) {
	p, err := GetProcessor("script")
	require.NoError(t, err)
	assert.Equal(t, "Script Processor", p.GetName())

	_, err = GetProcessor("csv")
	assert.Error(t, err)
}

// graphBuilder adapts a bare graph to Builder.
type graphBuilder struct{ *graph.Graph }

func (b graphBuilder) CreateVertex(p models.Vec2) models.VertexID { return b.AddVertex(p) }
func (b graphBuilder) CreateArc(from, to models.VertexID) error  { return b.AddArc(from, to) }

func TestScatterIsDeterministic(t *testing.T) {
	a := Scatter(20, 7, 300)
	b := Scatter(20, 7, 300)
	assert.Equal(t, a, b)
	for _, p := range a {
		assert.LessOrEqual(t, p.Length(), 300*1.5)
	}
	assert.NotEqual(t, a, Scatter(20, 8, 300))
}

func TestGenerateShapes(t *testing.T) {
	cases := []struct {
		kind   string
		n      int
		arcs   int
		clique int
	}{
		{"empty", 5, 0, 1},
		{"complete", 5, 10, 5},
		{"ring", 5, 5, 2},
		{"ring", 3, 3, 3},
		{"ring", 2, 1, 2},
		{"star", 5, 4, 2},
	}
	for _, tc := range cases {
		t.Run(tc.kind, func(t *testing.T) {
			g := graph.NewGraph()
			require.NoError(t, Generate(graphBuilder{g}, tc.kind, tc.n, 1, 400))
			assert.Equal(t, tc.n, g.VertexCount())
			assert.Equal(t, tc.arcs, g.ArcCount())
			assert.Len(t, clique.GreedyMaxClique(g), tc.clique)
		})
	}
}

func TestGenerateNoiseHasNoSelfLoops(t *testing.T) {
	g := graph.NewGraph()
	require.NoError(t, Generate(graphBuilder{g}, "noise", 12, 3, 400))
	for _, a := range g.AllArcs() {
		assert.Less(t, a.From, a.To)
	}
}

func TestGenerateRejectsUnknownKind(t *testing.T) {
	err := Generate(graphBuilder{graph.NewGraph()}, "torus", 3, 1, 100)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown seed graph")

	assert.Error(t, Generate(graphBuilder{graph.NewGraph()}, "ring", -1, 1, 100))
}
