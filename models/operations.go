package models

import (
	"math"
)

// Vec2 is a 2D vector used for positions, velocities and forces
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// V is shorthand for Vec2{X: x, Y: y}
func V(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns v + o
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale returns v multiplied by s
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// Neg returns -v
func (v Vec2) Neg() Vec2 {
	return Vec2{X: -v.X, Y: -v.Y}
}

// Length returns the euclidean length of v
func (v Vec2) Length() float64 {
	return math.Hypot(v.X, v.Y)
}

// Distance returns the euclidean distance between v and o
func (v Vec2) Distance(o Vec2) float64 {
	return v.Sub(o).Length()
}

// Lerp interpolates linearly from v towards o by t
func (v Vec2) Lerp(o Vec2, t float64) Vec2 {
	return Vec2{
		X: v.X + (o.X-v.X)*t,
		Y: v.Y + (o.Y-v.Y)*t,
	}
}

// IsZero reports whether both components are zero
func (v Vec2) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// Normalize returns the unit vector pointing along v.
// The second result is false when v has zero or non-finite length; the
// returned vector is then zero, meaning "no preferred direction".
func (v Vec2) Normalize() (Vec2, bool) {
	l := v.Length()
	if l == 0 || math.IsInf(l, 0) || math.IsNaN(l) {
		return Vec2{}, false
	}
	n := Vec2{X: v.X / l, Y: v.Y / l}
	if math.IsNaN(n.X) || math.IsNaN(n.Y) {
		return Vec2{}, false
	}
	return n, true
}

// InBox reports whether v lies strictly inside the axis-aligned square of
// half-width r centered on c.
func (v Vec2) InBox(c Vec2, r float64) bool {
	return c.X-r < v.X && v.X < c.X+r && c.Y-r < v.Y && v.Y < c.Y+r
}
