package graph

import (
	"slices"
	"testing"
)

func TestConnectIsSymmetric(t *testing.T) {
	g := NewAdjacency()
	if !g.Connect(1, 2) {
		t.Fatal("Connect(1, 2) = false, want true")
	}
	if !g.Connected(1, 2) || !g.Connected(2, 1) {
		t.Error("edge should be visible from both ends")
	}
	if g.Degree(1) != 1 || g.Degree(2) != 1 {
		t.Errorf("degrees = %d, %d, want 1, 1", g.Degree(1), g.Degree(2))
	}
	if g.EdgeCount() != 1 {
		t.Errorf("EdgeCount() = %d, want 1", g.EdgeCount())
	}
}

func TestConnectIgnoresDuplicatesAndSelfLoops(t *testing.T) {
	g := NewAdjacency()
	g.Connect(1, 2)
	if g.Connect(2, 1) {
		t.Error("reverse duplicate edge should be ignored")
	}
	if g.Connect(3, 3) {
		t.Error("self-loop should be ignored")
	}
	if g.EdgeCount() != 1 {
		t.Errorf("EdgeCount() = %d, want 1", g.EdgeCount())
	}
	if g.Degree(3) != 0 {
		t.Errorf("Degree(3) = %d, want 0", g.Degree(3))
	}
}

func TestNeighborsSortedCopy(t *testing.T) {
	g := NewAdjacency()
	g.Connect(5, 9)
	g.Connect(5, 2)
	g.Connect(5, 7)

	got := g.Neighbors(5)
	if want := []Handle{2, 7, 9}; !slices.Equal(got, want) {
		t.Fatalf("Neighbors(5) = %v, want %v", got, want)
	}
	got[0] = 100
	if g.Connected(5, 100) {
		t.Error("Neighbors should return a copy")
	}
	if n := g.Neighbors(42); len(n) != 0 {
		t.Errorf("Neighbors of unknown handle = %v, want empty", n)
	}
}

func TestRemove(t *testing.T) {
	g := NewAdjacency()
	g.Connect(1, 2)
	g.Connect(2, 3)
	g.Remove(2)

	if g.Degree(1) != 0 || g.Degree(3) != 0 {
		t.Errorf("neighbors of removed node keep edges: %d, %d", g.Degree(1), g.Degree(3))
	}
	if g.EdgeCount() != 0 {
		t.Errorf("EdgeCount() = %d, want 0", g.EdgeCount())
	}
}

func TestClear(t *testing.T) {
	g := NewAdjacency()
	g.Connect(1, 2)
	g.Connect(1, 3)
	g.Clear()
	if g.EdgeCount() != 0 || g.Degree(1) != 0 {
		t.Error("Clear should drop every edge")
	}
	g.Connect(1, 2)
	if g.EdgeCount() != 1 {
		t.Error("graph should be usable after Clear")
	}
}
