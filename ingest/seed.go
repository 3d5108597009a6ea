package ingest

import (
	"fmt"
	"strings"

	"github.com/TFMV/forcegraph/models"
	opensimplex "github.com/ojrac/opensimplex-go"
)

// Builder is the part of a session a seed graph is written into
type Builder interface {
	CreateVertex(pos models.Vec2) models.VertexID
	CreateArc(from, to models.VertexID) error
}

// Kinds lists the seed graph shapes understood by Generate
var Kinds = []string{"empty", "complete", "ring", "star", "noise"}

// noiseLinkThreshold keeps roughly a quarter of all pairs in a noise graph.
const noiseLinkThreshold = 0.25

// Scatter returns n positions spread by opensimplex noise within radius of the origin.
// The same seed always yields the same positions.
func Scatter(n int, seed int64, radius float64) []models.Vec2 {
	noise := opensimplex.New(seed)
	out := make([]models.Vec2, n)
	for i := range out {
		t := float64(i) * 0.61
		out[i] = models.V(
			noise.Eval2(t, 3.7)*radius,
			noise.Eval2(11.3, t)*radius,
		)
	}
	return out
}

// Generate writes a seed graph of the given kind into b
func Generate(b Builder, kind string, n int, seed int64, radius float64) error {
	if n < 0 {
		return fmt.Errorf("vertex count must not be negative: %d", n)
	}

	var link func(i, j int) bool
	switch strings.ToLower(kind) {
	case "empty":
		link = func(i, j int) bool { return false }
	case "complete":
		link = func(i, j int) bool { return i < j }
	case "ring":
		link = func(i, j int) bool { return n > 1 && j == (i+1)%n && (n > 2 || i < j) }
	case "star":
		link = func(i, j int) bool { return i == 0 && j > 0 }
	case "noise":
		noise := opensimplex.New(seed + 1)
		link = func(i, j int) bool {
			return i < j && noise.Eval2(float64(i)*0.5, float64(j)*0.5) > noiseLinkThreshold
		}
	default:
		return fmt.Errorf("unknown seed graph %q (want one of %s)", kind, strings.Join(Kinds, ", "))
	}

	ids := make([]models.VertexID, n)
	for i, p := range Scatter(n, seed, radius) {
		ids[i] = b.CreateVertex(p)
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j || !link(i, j) {
				continue
			}
			if err := b.CreateArc(ids[i], ids[j]); err != nil {
				return fmt.Errorf("failed to link %d -> %d: %w", i, j, err)
			}
		}
	}
	return nil
}
