// Package clique searches the graph for a large clique.
//
// The search is a greedy heuristic, not an exact maximum-clique algorithm.
// For every seed vertex it accepts, in increasing id order, each vertex
// adjacent to all vertices accepted so far, and keeps the largest result. An
// early acceptance can shut out a larger clique, so the answer depends on id
// order and may be smaller than the true maximum.
//
// Adjacency follows graph.AreConnected: an arc in either direction counts.
package clique

import (
	"github.com/TFMV/forcegraph/graph"
	"github.com/TFMV/forcegraph/models"
)

// GreedyMaxClique returns the largest clique found by the greedy heuristic.
// The result is ordered by acceptance: the seed first, then ascending ids.
// An empty graph yields an empty result.
//
// Complexity: O(V^2 * k) adjacency checks, where k is the size of the
// largest candidate.
func GreedyMaxClique(g *graph.Graph) []models.VertexID {
	best := []models.VertexID{}
	n := g.VertexCount()

	for i := 0; i < n; i++ {
		seed := models.VertexID(i)
		// a seed already inside the best set cannot beat it
		if contains(best, seed) {
			continue
		}

		candidate := []models.VertexID{seed}
		// anything not adjacent to the seed cannot join
		for _, other := range g.Neighbors(seed) {
			if other == seed {
				continue
			}
			if extends(g, candidate, other) {
				candidate = append(candidate, other)
			}
		}

		if len(candidate) > len(best) {
			best = candidate
		}
	}

	return best
}

// IsClique reports whether every pair of distinct ids in ids is connected.
func IsClique(g *graph.Graph, ids []models.VertexID) bool {
	for i := range ids {
		for j := i + 1; j < len(ids); j++ {
			if ids[i] == ids[j] {
				continue
			}
			if !g.AreConnected(ids[i], ids[j]) {
				return false
			}
		}
	}
	return true
}

func extends(g *graph.Graph, candidate []models.VertexID, v models.VertexID) bool {
	for _, member := range candidate {
		if !g.AreConnected(member, v) {
			return false
		}
	}
	return true
}

func contains(ids []models.VertexID, id models.VertexID) bool {
	for _, x := range ids {
		if x == id {
			return true
		}
	}
	return false
}
