package models

import "fmt"

// EventKind enumerates the discrete inputs the host feeds into a tick
type EventKind int

const (
	EventPointerMove EventKind = iota
	EventPointerDown
	EventPointerUp
	EventSetMode
	EventSetForce
	EventCreateVertex
	EventComputeClique
)

// Event is a single discrete input. Only the fields relevant to Kind are read.
type Event struct {
	Kind     EventKind
	Position Vec2
	Button   Button
	Mode     Mode
	Enabled  bool
}

// PointerMove returns an event moving the pointer to a screen position
func PointerMove(p Vec2) Event {
	return Event{Kind: EventPointerMove, Position: p}
}

// PointerDown returns a button press event
func PointerDown(b Button) Event {
	return Event{Kind: EventPointerDown, Button: b}
}

// PointerUp returns a button release event
func PointerUp(b Button) Event {
	return Event{Kind: EventPointerUp, Button: b}
}

// SetMode returns a mode switch event
func SetMode(m Mode) Event {
	return Event{Kind: EventSetMode, Mode: m}
}

// SetForce returns an event toggling the force simulation
func SetForce(enabled bool) Event {
	return Event{Kind: EventSetForce, Enabled: enabled}
}

// CreateVertex returns an event creating a vertex under the pointer
func CreateVertex() Event {
	return Event{Kind: EventCreateVertex}
}

// ComputeClique returns an event running the clique search
func ComputeClique() Event {
	return Event{Kind: EventComputeClique}
}

// String implements fmt.Stringer
func (e Event) String() string {
	switch e.Kind {
	case EventPointerMove:
		return fmt.Sprintf("move(%g,%g)", e.Position.X, e.Position.Y)
	case EventPointerDown:
		return "down(" + e.Button.String() + ")"
	case EventPointerUp:
		return "up(" + e.Button.String() + ")"
	case EventSetMode:
		return "mode(" + e.Mode.String() + ")"
	case EventSetForce:
		return fmt.Sprintf("force(%t)", e.Enabled)
	case EventCreateVertex:
		return "vertex"
	case EventComputeClique:
		return "clique"
	default:
		return fmt.Sprintf("event(%d)", int(e.Kind))
	}
}
