package models

// ArcFilter is a function type used to filter arcs in snapshot queries
type ArcFilter func(arc Arc) bool

// FindVertex returns the published vertex with the given id
func (s *Snapshot) FindVertex(id VertexID) (VertexView, bool) {
	i := int(id)
	if i < 0 || i >= len(s.Vertices) {
		return VertexView{}, false
	}
	return s.Vertices[i], true
}

// InClique reports whether id belongs to the published clique result
func (s *Snapshot) InClique(id VertexID) bool {
	for _, c := range s.Clique {
		if c == id {
			return true
		}
	}
	return false
}

// IsGrabbed reports whether id is the vertex currently held by the pointer
func (s *Snapshot) IsGrabbed(id VertexID) bool {
	return s.Grabbed != nil && *s.Grabbed == id
}

// CliqueArc reports whether both ends of the arc are in the clique result
func (s *Snapshot) CliqueArc(a Arc) bool {
	return a.From != a.To && s.InClique(a.From) && s.InClique(a.To)
}

// FilterArcs returns arcs that match the provided filter function
func (s *Snapshot) FilterArcs(filter ArcFilter) []Arc {
	var result []Arc
	for _, a := range s.Arcs {
		if filter(a) {
			result = append(result, a)
		}
	}
	return result
}

// Bounds returns the bounding box of all vertex positions. ok is false when
// the snapshot has no vertices.
func (s *Snapshot) Bounds() (min, max Vec2, ok bool) {
	if len(s.Vertices) == 0 {
		return Vec2{}, Vec2{}, false
	}
	min = s.Vertices[0].Position
	max = min
	for _, v := range s.Vertices[1:] {
		p := v.Position
		if p.X < min.X {
			min.X = p.X
		}
		if p.Y < min.Y {
			min.Y = p.Y
		}
		if p.X > max.X {
			max.X = p.X
		}
		if p.Y > max.Y {
			max.Y = p.Y
		}
	}
	return min, max, true
}
