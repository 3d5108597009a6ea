// Package models provides the value types shared by the forcegraph packages.
// It defines the vectors, identifiers and published frames used throughout the application.
package models

import (
	"fmt"
	"time"
)

// VertexID identifies a vertex. IDs are dense, assigned in insertion order
// starting at zero, and never reused.
type VertexID int

// OptionalID is a vertex id that may be absent.
type OptionalID struct {
	id    VertexID
	valid bool
}

// None returns an empty OptionalID
func None() OptionalID {
	return OptionalID{}
}

// Some wraps id in an OptionalID
func Some(id VertexID) OptionalID {
	return OptionalID{id: id, valid: true}
}

// Get returns the wrapped id and whether it is present
func (o OptionalID) Get() (VertexID, bool) {
	return o.id, o.valid
}

// IsSome reports whether an id is present
func (o OptionalID) IsSome() bool {
	return o.valid
}

// Is reports whether o holds exactly id
func (o OptionalID) Is(id VertexID) bool {
	return o.valid && o.id == id
}

// String implements fmt.Stringer
func (o OptionalID) String() string {
	if !o.valid {
		return "none"
	}
	return fmt.Sprintf("%d", o.id)
}

// Arc represents a directed link recorded from one vertex to another
type Arc struct {
	From VertexID `json:"from"`
	To   VertexID `json:"to"`
}

// Mode selects how the primary button acts on vertices
type Mode int

const (
	// ModeMove grabs and drags vertices.
	ModeMove Mode = iota
	// ModeLink draws arcs from the pressed vertex to the released one.
	ModeLink
)

// String implements fmt.Stringer
func (m Mode) String() string {
	switch m {
	case ModeMove:
		return "move"
	case ModeLink:
		return "link"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// ParseMode converts a mode name into a Mode
func ParseMode(s string) (Mode, error) {
	switch s {
	case "move":
		return ModeMove, nil
	case "link":
		return ModeLink, nil
	default:
		return ModeMove, fmt.Errorf("unknown mode: %s", s)
	}
}

// MarshalText encodes the mode by name
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText decodes a mode name
func (m *Mode) UnmarshalText(b []byte) error {
	parsed, err := ParseMode(string(b))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Button identifies a pointer button
type Button int

const (
	// ButtonPrimary is usually the left mouse button.
	ButtonPrimary Button = iota
	// ButtonSecondary is usually the right mouse button.
	ButtonSecondary
)

// String implements fmt.Stringer
func (b Button) String() string {
	switch b {
	case ButtonPrimary:
		return "primary"
	case ButtonSecondary:
		return "secondary"
	default:
		return fmt.Sprintf("button(%d)", int(b))
	}
}

// ParseButton converts a button name into a Button
func ParseButton(s string) (Button, error) {
	switch s {
	case "primary", "left":
		return ButtonPrimary, nil
	case "secondary", "right":
		return ButtonSecondary, nil
	default:
		return ButtonPrimary, fmt.Errorf("unknown button: %s", s)
	}
}

// VertexView is the published, read-only view of a vertex
type VertexView struct {
	ID       VertexID `json:"id"`
	Position Vec2     `json:"position"`
	Velocity Vec2     `json:"velocity"`
}

// Snapshot is a frame published at the end of a tick. Snapshots are never
// mutated after publication and may be shared across goroutines.
type Snapshot struct {
	SessionID    string       `json:"session_id"`
	Tick         uint64       `json:"tick"`
	Vertices     []VertexView `json:"vertices"`
	Arcs         []Arc        `json:"arcs"`
	Clique       []VertexID   `json:"clique,omitempty"`
	Mode         Mode         `json:"mode"`
	ForceEnabled bool         `json:"force_enabled"`
	Grabbed      *VertexID    `json:"grabbed,omitempty"`
	Pointer      Vec2         `json:"pointer"`
	Energy       float64      `json:"energy"`
	CreatedAt    time.Time    `json:"created_at"`
}
