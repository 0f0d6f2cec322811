package graph

import (
	"slices"

	"github.com/samber/lo"
)

// Handle is a stable identifier for a gear in an assembly. Handles are
// never reused within one assembly's lifetime.
type Handle uint32

// Adjacency is an undirected graph over handles stored as adjacency lists.
// Gears refer to each other only through it, never by pointer.
type Adjacency struct {
	edges map[Handle][]Handle
}

// NewAdjacency returns an empty graph.
func NewAdjacency() *Adjacency {
	return &Adjacency{edges: make(map[Handle][]Handle)}
}

// Connect adds the undirected edge a–b. Self-loops and duplicate edges
// are ignored. It reports whether an edge was added.
func (g *Adjacency) Connect(a, b Handle) bool {
	if a == b || g.Connected(a, b) {
		return false
	}
	g.edges[a] = append(g.edges[a], b)
	g.edges[b] = append(g.edges[b], a)
	return true
}

// Connected reports whether a and b share an edge.
func (g *Adjacency) Connected(a, b Handle) bool {
	return lo.Contains(g.edges[a], b)
}

// Neighbors returns the handles adjacent to h in ascending order.
func (g *Adjacency) Neighbors(h Handle) []Handle {
	out := slices.Clone(g.edges[h])
	slices.Sort(out)
	return out
}

// Degree returns the number of edges at h.
func (g *Adjacency) Degree(h Handle) int {
	return len(g.edges[h])
}

// Remove deletes h and every edge touching it.
func (g *Adjacency) Remove(h Handle) {
	for _, n := range g.edges[h] {
		g.edges[n] = lo.Without(g.edges[n], h)
		if len(g.edges[n]) == 0 {
			delete(g.edges, n)
		}
	}
	delete(g.edges, h)
}

// EdgeCount returns the number of undirected edges.
func (g *Adjacency) EdgeCount() int {
	n := 0
	for _, ns := range g.edges {
		n += len(ns)
	}
	return n / 2
}

// Clear removes every edge.
func (g *Adjacency) Clear() {
	clear(g.edges)
}
