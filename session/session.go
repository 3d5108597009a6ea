// Package session owns one running simulation: the graph, the interaction
// state, the layout algorithm and the last clique result.
//
// A Session is driven by a host loop calling Tick once per frame. Within a
// tick the order is fixed: the input batch is applied (which may add vertices
// and arcs and change the pin), the layout advances one step, and a snapshot
// is published. Ticks must not overlap; only Snapshot may be called from other
// goroutines.
package session

import (
	"log/slog"
	"sort"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/TFMV/forcegraph/clique"
	"github.com/TFMV/forcegraph/graph"
	"github.com/TFMV/forcegraph/interaction"
	"github.com/TFMV/forcegraph/models"
	"github.com/TFMV/forcegraph/physics"
)

// DefaultViewport matches the window the layout constants were tuned for.
var DefaultViewport = models.V(1000, 1000)

// Session is the explicit simulation context passed to every operation
type Session struct {
	ID uuid.UUID

	graph   *graph.Graph
	ctrl    *interaction.Controller
	layout  physics.LayoutAlgorithm
	clique  []models.VertexID
	ticks   uint64
	energy  float64
	latest  atomic.Pointer[models.Snapshot]
	logger  *slog.Logger
	metrics *Metrics
	now     func() time.Time
}

// Option configures a Session
type Option func(*config)

type config struct {
	logger   *slog.Logger
	metrics  *Metrics
	viewport models.Vec2
	layout   physics.LayoutAlgorithm
	force    bool
	now      func() time.Time
}

// WithLogger sets the session logger
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

// WithMetrics records tick and clique metrics
func WithMetrics(m *Metrics) Option {
	return func(c *config) {
		c.metrics = m
	}
}

// WithViewport sets the screen size used to center the pointer
func WithViewport(size models.Vec2) Option {
	return func(c *config) {
		c.viewport = size
	}
}

// WithLayout replaces the default force-directed layout
func WithLayout(l physics.LayoutAlgorithm) Option {
	return func(c *config) {
		c.layout = l
	}
}

// WithForceEnabled sets the initial state of the force simulation
func WithForceEnabled(enabled bool) Option {
	return func(c *config) {
		c.force = enabled
	}
}

// WithClock overrides the clock used to stamp snapshots
func WithClock(now func() time.Time) Option {
	return func(c *config) {
		c.now = now
	}
}

// New creates an empty session in Move mode
func New(opts ...Option) *Session {
	cfg := &config{
		logger:   slog.Default(),
		viewport: DefaultViewport,
		layout:   physics.NewForceDirectedLayout(),
		force:    true,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	id := uuid.New()
	logger := cfg.logger.With("session", id.String())
	g := graph.NewGraph()
	s := &Session{
		ID:      id,
		graph:   g,
		ctrl:    interaction.NewController(g, interaction.WithViewport(cfg.viewport), interaction.WithLogger(logger)),
		layout:  cfg.layout,
		clique:  []models.VertexID{},
		logger:  logger,
		metrics: cfg.metrics,
		now:     cfg.now,
	}
	s.ctrl.SetForceEnabled(cfg.force)
	s.publish()
	logger.Info("session started", "layout", s.layout.GetName(), "viewport_w", cfg.viewport.X, "viewport_h", cfg.viewport.Y)
	return s
}

// CreateVertex adds a vertex at a world position
func (s *Session) CreateVertex(pos models.Vec2) models.VertexID {
	id := s.graph.AddVertex(pos)
	s.logger.Debug("vertex created", "vertex", int(id))
	return id
}

// CreateVertexAtPointer adds a vertex under the pointer
func (s *Session) CreateVertexAtPointer() models.VertexID {
	return s.ctrl.CreateVertexAtPointer()
}

// CreateArc records the arc from → to. Unknown ids are rejected with an error
// wrapping graph.ErrVertexOutOfRange.
func (s *Session) CreateArc(from, to models.VertexID) error {
	if err := s.graph.AddArc(from, to); err != nil {
		return err
	}
	s.metrics.arcCreated()
	return nil
}

// SetMode switches the pointer between moving and linking
func (s *Session) SetMode(m models.Mode) {
	s.ctrl.SetMode(m)
}

// SetForceEnabled turns the force simulation on or off
func (s *Session) SetForceEnabled(enabled bool) {
	s.ctrl.SetForceEnabled(enabled)
}

// SetViewport updates the screen size after a resize
func (s *Session) SetViewport(size models.Vec2) {
	s.ctrl.SetViewport(size)
}

// PointerMove records the pointer position in screen space
func (s *Session) PointerMove(p models.Vec2) {
	s.ctrl.PointerMove(p)
}

// PointerDown handles a button press
func (s *Session) PointerDown(b models.Button) {
	s.ctrl.PointerDown(b)
}

// PointerUp handles a button release
func (s *Session) PointerUp(b models.Button) error {
	_, linked, err := s.ctrl.PointerUp(b)
	if linked {
		s.metrics.arcCreated()
	}
	return err
}

// Apply feeds a single event to the session without stepping
func (s *Session) Apply(e models.Event) error {
	switch e.Kind {
	case models.EventPointerMove:
		s.PointerMove(e.Position)
	case models.EventPointerDown:
		s.PointerDown(e.Button)
	case models.EventPointerUp:
		return s.PointerUp(e.Button)
	case models.EventSetMode:
		s.SetMode(e.Mode)
	case models.EventSetForce:
		s.SetForceEnabled(e.Enabled)
	case models.EventCreateVertex:
		s.CreateVertexAtPointer()
	case models.EventComputeClique:
		s.ComputeMaxClique()
	}
	return nil
}

// Tick applies the input batch in order, advances the layout one step and
// publishes a snapshot. The step runs even if an event failed; the first
// error is returned.
func (s *Session) Tick(events ...models.Event) error {
	start := time.Now()

	var firstErr error
	for _, e := range events {
		if err := s.Apply(e); err != nil && firstErr == nil {
			firstErr = err
			s.logger.Warn("event rejected", "event", e.String(), "error", err)
		}
	}

	s.layout.Step(s.graph, s.ctrl.Frame())
	s.energy = physics.Energy(s.graph)
	s.ticks++
	s.publish()

	s.metrics.observeTick(time.Since(start).Seconds(), s.graph.VertexCount(), s.graph.ArcCount(), s.energy)
	return firstErr
}

// ComputeMaxClique runs the greedy clique heuristic and stores its result.
// It blocks until done and is at least quadratic in the vertex count.
func (s *Session) ComputeMaxClique() []models.VertexID {
	start := time.Now()
	s.clique = clique.GreedyMaxClique(s.graph)
	elapsed := time.Since(start)

	s.metrics.observeClique(elapsed.Seconds(), len(s.clique))
	s.logger.Info("clique computed", "size", len(s.clique), "vertices", s.graph.VertexCount(), "duration", elapsed)
	return s.Clique()
}

// Clique returns the result of the last clique search
func (s *Session) Clique() []models.VertexID {
	out := make([]models.VertexID, len(s.clique))
	copy(out, s.clique)
	return out
}

// VertexPosition returns the world position of id
func (s *Session) VertexPosition(id models.VertexID) (models.Vec2, bool) {
	return s.graph.Position(id)
}

// AllArcs returns every recorded arc in unspecified order
func (s *Session) AllArcs() []models.Arc {
	return s.graph.AllArcs()
}

// VertexCount returns the number of vertices
func (s *Session) VertexCount() int {
	return s.graph.VertexCount()
}

// ArcCount returns the number of recorded arcs
func (s *Session) ArcCount() int {
	return s.graph.ArcCount()
}

// State returns the current interaction state
func (s *Session) State() interaction.State {
	return s.ctrl.State()
}

// Ticks returns the number of completed ticks
func (s *Session) Ticks() uint64 {
	return s.ticks
}

// Energy returns the summed vertex speed after the last tick
func (s *Session) Energy() float64 {
	return s.energy
}

// Graph exposes the underlying graph for read-only inspection
func (s *Session) Graph() *graph.Graph {
	return s.graph
}

// Snapshot returns the last published frame. It is safe to call from any goroutine.
func (s *Session) Snapshot() *models.Snapshot {
	return s.latest.Load()
}

// Publish stores a snapshot of the current state without stepping the layout.
func (s *Session) Publish() {
	s.publish()
}

func (s *Session) publish() {
	st := s.ctrl.State()

	vertices := make([]models.VertexView, 0, s.graph.VertexCount())
	for _, v := range s.graph.Vertices() {
		vertices = append(vertices, models.VertexView{ID: v.ID, Position: v.Position, Velocity: v.Velocity})
	}

	arcs := s.graph.AllArcs()
	sort.SliceStable(arcs, func(i, j int) bool {
		if arcs[i].From != arcs[j].From {
			return arcs[i].From < arcs[j].From
		}
		return false
	})

	snap := &models.Snapshot{
		SessionID:    s.ID.String(),
		Tick:         s.ticks,
		Vertices:     vertices,
		Arcs:         arcs,
		Clique:       s.Clique(),
		Mode:         st.Mode,
		ForceEnabled: st.ForceEnabled,
		Pointer:      st.PointerCentered,
		Energy:       s.energy,
		CreatedAt:    s.now(),
	}
	if id, ok := st.Grabbed.Get(); ok {
		snap.Grabbed = &id
	}
	s.latest.Store(snap)
}
