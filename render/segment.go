package render

import (
	"math"

	"github.com/TFMV/forcegraph/models"
)

// Segment is the straight line drawn for an arc
type Segment struct {
	From models.Vec2
	To   models.Vec2
}

// Length returns the length of the segment
func (s Segment) Length() float64 {
	return s.From.Distance(s.To)
}

// Midpoint returns the point halfway along the segment
func (s Segment) Midpoint() models.Vec2 {
	return s.From.Lerp(s.To, 0.5)
}

// Angle returns the direction of the segment in radians
func (s Segment) Angle() float64 {
	d := s.To.Sub(s.From)
	return math.Atan2(d.Y, d.X)
}

// Trim shortens both ends by r so the line stops at the vertex outlines.
// ok is false when the segment is too short to show anything.
func (s Segment) Trim(r float64) (Segment, bool) {
	dir, ok := s.To.Sub(s.From).Normalize()
	if !ok || s.Length() <= 2*r {
		return s, false
	}
	return Segment{
		From: s.From.Add(dir.Scale(r)),
		To:   s.To.Sub(dir.Scale(r)),
	}, true
}

// segmentFor resolves the endpoints of an arc in a snapshot
func segmentFor(snap *models.Snapshot, a models.Arc) (Segment, bool) {
	from, ok := snap.FindVertex(a.From)
	if !ok {
		return Segment{}, false
	}
	to, ok := snap.FindVertex(a.To)
	if !ok {
		return Segment{}, false
	}
	return Segment{From: from.Position, To: to.Position}, true
}
