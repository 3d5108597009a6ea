package session_test

import (
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TFMV/forcegraph/graph"
	"github.com/TFMV/forcegraph/models"
	"github.com/TFMV/forcegraph/physics"
	"github.com/TFMV/forcegraph/session"
)

func newSession(t *testing.T, opts ...session.Option) *session.Session {
	t.Helper()
	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))
	return session.New(append([]session.Option{session.WithLogger(quiet)}, opts...)...)
}

// world converts a world position into the screen position of a 1000x1000 viewport.
func world(x, y float64) models.Vec2 {
	return models.V(x+500, y+500)
}

func TestCreateVertexAssignsInsertionOrder(t *testing.T) {
	s := newSession(t)
	assert.Equal(t, models.VertexID(0), s.CreateVertex(models.V(0, 0)))
	assert.Equal(t, models.VertexID(1), s.CreateVertex(models.V(500, 500)))
	assert.Equal(t, 2, s.VertexCount())
}

func TestCreateArcRejectsInvalidIDs(t *testing.T) {
	s := newSession(t)
	s.CreateVertex(models.V(0, 0))
	err := s.CreateArc(0, 7)
	require.ErrorIs(t, err, graph.ErrVertexOutOfRange)
	assert.Empty(t, s.AllArcs())
}

func TestUnconnectedPairRepelsBeyondNearThreshold(t *testing.T) {
	s := newSession(t)
	s.CreateVertex(models.V(0, 0))
	s.CreateVertex(models.V(500, 500))
	before := models.V(0, 0).Distance(models.V(500, 500))

	require.NoError(t, s.Tick())

	p0, _ := s.VertexPosition(0)
	p1, _ := s.VertexPosition(1)
	assert.Less(t, p0.X, 0.0)
	assert.Less(t, p0.Y, 0.0)
	assert.Greater(t, p0.Distance(p1), before, "pushed apart, not pulled together")
}

func TestCloseVerticesUseClampedDistance(t *testing.T) {
	s := newSession(t)
	s.CreateVertex(models.V(0, 0))
	s.CreateVertex(models.V(10, 0))

	require.NoError(t, s.Tick())

	v, ok := s.Graph().Vertex(0)
	require.True(t, ok)
	assert.Equal(t, models.V(-200, 0), v.Velocity, "500000 / 50^2 = 200")
}

func TestLinkScenario(t *testing.T) {
	s := newSession(t, session.WithForceEnabled(false))
	s.CreateVertex(models.V(0, 0))
	s.CreateVertex(models.V(300, 0))

	require.NoError(t, s.Tick(
		models.SetMode(models.ModeLink),
		models.PointerMove(world(10, -10)),
		models.PointerDown(models.ButtonPrimary),
		models.PointerMove(world(290, 20)),
		models.PointerUp(models.ButtonPrimary),
	))

	assert.Equal(t, []models.Arc{{From: 0, To: 1}}, s.AllArcs())
}

func TestPinnedVertexFollowsPointerExactly(t *testing.T) {
	s := newSession(t)
	s.CreateVertex(models.V(0, 0))
	s.CreateVertex(models.V(20, 0))
	s.CreateVertex(models.V(0, 30))

	require.NoError(t, s.Tick(models.PointerMove(world(5, 5)), models.PointerDown(models.ButtonPrimary)))
	for _, target := range []models.Vec2{models.V(-120.25, 77.5), models.V(333, -1)} {
		require.NoError(t, s.Tick(models.PointerMove(world(target.X, target.Y))))
		p, _ := s.VertexPosition(0)
		assert.Equal(t, target, p)
	}

	require.NoError(t, s.Tick(models.PointerUp(models.ButtonPrimary)))
	assert.False(t, s.State().Grabbed.IsSome())
}

func TestDisabledForceFreezesFreeVertices(t *testing.T) {
	s := newSession(t)
	s.CreateVertex(models.V(0, 0))
	s.CreateVertex(models.V(20, 0))
	s.CreateVertex(models.V(-35, 12))
	require.NoError(t, s.Tick())

	require.NoError(t, s.Tick(models.SetForce(false)))
	before := s.Graph().Vertices()
	for i := 0; i < 5; i++ {
		require.NoError(t, s.Tick())
	}
	assert.Equal(t, before, s.Graph().Vertices())
}

func TestCliqueScenarios(t *testing.T) {
	s := newSession(t)
	for i := 0; i < 4; i++ {
		s.CreateVertex(models.V(float64(i)*200, 0))
	}
	require.NoError(t, s.CreateArc(0, 1))
	require.NoError(t, s.CreateArc(1, 2))
	require.NoError(t, s.CreateArc(2, 0))

	got := s.ComputeMaxClique()
	assert.ElementsMatch(t, []models.VertexID{0, 1, 2}, got)
	assert.Equal(t, got, s.Clique(), "result persists until the next search")

	require.NoError(t, s.Tick())
	assert.ElementsMatch(t, []models.VertexID{0, 1, 2}, s.Snapshot().Clique)
}

func TestCliqueViaEvent(t *testing.T) {
	s := newSession(t)
	s.CreateVertex(models.V(0, 0))
	s.CreateVertex(models.V(300, 0))
	require.NoError(t, s.Tick(models.ComputeClique()))
	assert.Equal(t, []models.VertexID{0}, s.Clique())
}

func TestSecondaryClickCreatesVertexAtCenteredPointer(t *testing.T) {
	s := newSession(t, session.WithViewport(models.V(800, 600)))
	require.NoError(t, s.Tick(
		models.PointerMove(models.V(450, 250)),
		models.PointerDown(models.ButtonSecondary),
		models.PointerUp(models.ButtonSecondary),
	))
	require.Equal(t, 1, s.VertexCount())
	p, _ := s.VertexPosition(0)
	assert.Equal(t, models.V(50, -50), p)

	require.NoError(t, s.Tick(models.CreateVertex()))
	assert.Equal(t, 2, s.VertexCount())
}

func TestSnapshotPublishedEachTick(t *testing.T) {
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	s := newSession(t, session.WithClock(func() time.Time { return at }))

	first := s.Snapshot()
	require.NotNil(t, first)
	assert.Equal(t, uint64(0), first.Tick)
	assert.Equal(t, s.ID.String(), first.SessionID)

	s.CreateVertex(models.V(0, 0))
	s.CreateVertex(models.V(300, 0))
	require.NoError(t, s.CreateArc(1, 0))
	require.NoError(t, s.Tick(models.PointerMove(world(0, 0)), models.PointerDown(models.ButtonPrimary)))

	snap := s.Snapshot()
	assert.Equal(t, uint64(1), snap.Tick)
	assert.Len(t, snap.Vertices, 2)
	assert.Equal(t, []models.Arc{{From: 1, To: 0}}, snap.Arcs)
	assert.True(t, snap.IsGrabbed(0))
	assert.Equal(t, at, snap.CreatedAt)
	assert.Empty(t, first.Vertices, "published snapshots are never mutated")
}

func TestPublishDoesNotStep(t *testing.T) {
	s := newSession(t)
	s.CreateVertex(models.V(0, 0))
	s.CreateVertex(models.V(10, 0))
	require.NoError(t, s.Tick())
	before := s.Snapshot()

	s.ComputeMaxClique()
	s.Publish()

	after := s.Snapshot()
	assert.Equal(t, before.Tick, after.Tick)
	assert.Equal(t, before.Vertices, after.Vertices)
	assert.Empty(t, before.Clique)
	assert.Equal(t, []models.VertexID{0}, after.Clique)
}

func TestSnapshotReadableWhileTicking(t *testing.T) {
	s := newSession(t)
	for i := 0; i < 10; i++ {
		s.CreateVertex(models.V(float64(i*37%200), float64(i*53%200)))
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			snap := s.Snapshot()
			assert.Len(t, snap.Vertices, 10)
		}
	}()
	for i := 0; i < 50; i++ {
		require.NoError(t, s.Tick())
	}
	wg.Wait()
}

func TestMetricsRecorded(t *testing.T) {
	reg := prometheus.NewRegistry()
	s := newSession(t, session.WithMetrics(session.NewMetrics(reg)))
	s.CreateVertex(models.V(0, 0))
	s.CreateVertex(models.V(300, 0))
	require.NoError(t, s.Tick(
		models.SetMode(models.ModeLink),
		models.PointerMove(world(0, 0)),
		models.PointerDown(models.ButtonPrimary),
		models.PointerMove(world(300, 0)),
		models.PointerUp(models.ButtonPrimary),
	))
	s.ComputeMaxClique()

	count, err := testutil.GatherAndCount(reg,
		"forcegraph_tick_duration_seconds",
		"forcegraph_clique_duration_seconds",
		"forcegraph_vertices",
		"forcegraph_arcs_created_total",
	)
	require.NoError(t, err)
	assert.Equal(t, 4, count)
}

func TestCustomLayout(t *testing.T) {
	s := newSession(t, session.WithLayout(physics.NewSurrealLayout(physics.NewForceDirectedLayout(), 0, 1)))
	s.CreateVertex(models.V(0, 0))
	require.NoError(t, s.Tick())
	p, _ := s.VertexPosition(0)
	assert.Equal(t, models.V(0, 0), p)
}
