// Package interaction turns pointer and key input into graph mutations and
// into the pin the simulator honours on the next step.
//
// The controller has two modes. In Move mode a primary press inside a vertex
// grabs it until release. In Link mode a primary press inside a vertex marks
// it as the pending source and the release, if it lands inside a vertex,
// records an arc. The mode only matters at press time; switching modes or
// toggling force never disturbs a grab or a pending link.
//
// World coordinates are the pointer position relative to the viewport center.
// Hit tests, pinning and vertex creation all happen in world coordinates.
package interaction

import (
	"log/slog"

	"github.com/TFMV/forcegraph/graph"
	"github.com/TFMV/forcegraph/models"
	"github.com/TFMV/forcegraph/physics"
)

// VertexRadius is the half-width of the square hit box around each vertex.
const VertexRadius = 50.0

// State is the interaction state read by the simulator every tick
type State struct {
	Mode            models.Mode
	Grabbed         models.OptionalID
	PendingSource   models.OptionalID
	ForceEnabled    bool
	Pointer         models.Vec2 // screen space
	PointerCentered models.Vec2 // world space
}

// Controller is the interaction state machine
type Controller struct {
	graph    *graph.Graph
	state    State
	viewport models.Vec2
	logger   *slog.Logger
}

// Option configures a Controller
type Option func(*Controller)

// WithLogger sets the logger used for transition messages
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		c.logger = l
	}
}

// WithViewport sets the screen size used to derive world coordinates
func WithViewport(size models.Vec2) Option {
	return func(c *Controller) {
		c.viewport = size
	}
}

// NewController creates a controller in Move mode with force enabled
func NewController(g *graph.Graph, opts ...Option) *Controller {
	c := &Controller{
		graph:  g,
		state:  State{Mode: models.ModeMove, ForceEnabled: true},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.recenter()
	return c
}

// State returns a copy of the current interaction state
func (c *Controller) State() State {
	return c.state
}

// Viewport returns the screen size
func (c *Controller) Viewport() models.Vec2 {
	return c.viewport
}

// SetViewport changes the screen size and recomputes the world pointer
func (c *Controller) SetViewport(size models.Vec2) {
	c.viewport = size
	c.recenter()
}

// SetMode switches between Move and Link
func (c *Controller) SetMode(m models.Mode) {
	if c.state.Mode != m {
		c.logger.Debug("mode changed", "from", c.state.Mode.String(), "to", m.String())
	}
	c.state.Mode = m
}

// SetForceEnabled turns the force simulation on or off
func (c *Controller) SetForceEnabled(enabled bool) {
	c.state.ForceEnabled = enabled
}

// PointerMove records a new screen-space pointer position
func (c *Controller) PointerMove(p models.Vec2) {
	c.state.Pointer = p
	c.recenter()
}

// PointerDown handles a button press. A secondary press creates a vertex
// under the pointer; its id is returned as created.
func (c *Controller) PointerDown(b models.Button) (created models.OptionalID) {
	if b == models.ButtonSecondary {
		return models.Some(c.CreateVertexAtPointer())
	}

	hit := c.HitTest(c.state.PointerCentered)
	id, ok := hit.Get()
	if !ok {
		return models.None()
	}

	switch c.state.Mode {
	case models.ModeMove:
		c.state.Grabbed = hit
		c.logger.Debug("vertex grabbed", "vertex", int(id))
	case models.ModeLink:
		c.state.PendingSource = hit
		c.logger.Debug("link started", "from", int(id))
	}
	return models.None()
}

// PointerUp handles a button release. A primary release ends any grab and
// completes a pending link when it lands inside a vertex. The pending source is
// cleared either way.
func (c *Controller) PointerUp(b models.Button) (arc models.Arc, linked bool, err error) {
	if b != models.ButtonPrimary {
		return models.Arc{}, false, nil
	}

	if c.state.Grabbed.IsSome() {
		c.logger.Debug("vertex released", "vertex", c.state.Grabbed.String())
		c.state.Grabbed = models.None()
	}

	src, ok := c.state.PendingSource.Get()
	c.state.PendingSource = models.None()
	if !ok {
		return models.Arc{}, false, nil
	}

	dst, ok := c.HitTest(c.state.PointerCentered).Get()
	if !ok {
		c.logger.Debug("link dropped", "from", int(src))
		return models.Arc{}, false, nil
	}
	if err := c.graph.AddArc(src, dst); err != nil {
		return models.Arc{}, false, err
	}
	c.logger.Debug("arc created", "from", int(src), "to", int(dst))
	return models.Arc{From: src, To: dst}, true, nil
}

// CreateVertexAtPointer adds a vertex at the world-space pointer position
func (c *Controller) CreateVertexAtPointer() models.VertexID {
	id := c.graph.AddVertex(c.state.PointerCentered)
	c.logger.Debug("vertex created", "vertex", int(id), "x", c.state.PointerCentered.X, "y", c.state.PointerCentered.Y)
	return id
}

// HitTest returns the lowest id whose hit box strictly contains p
func (c *Controller) HitTest(p models.Vec2) models.OptionalID {
	for i := 0; i < c.graph.VertexCount(); i++ {
		id := models.VertexID(i)
		pos, _ := c.graph.Position(id)
		if p.InBox(pos, VertexRadius) {
			return models.Some(id)
		}
	}
	return models.None()
}

// Frame returns what the simulator needs for the next step
func (c *Controller) Frame() physics.Frame {
	return physics.Frame{
		Pinned:       c.state.Grabbed,
		ForceEnabled: c.state.ForceEnabled,
		Pointer:      c.state.PointerCentered,
	}
}

func (c *Controller) recenter() {
	c.state.PointerCentered = c.state.Pointer.Sub(c.viewport.Scale(0.5))
}
