package dijkstra

import (
	"math"
	"testing"

	"Nav/collision"
	"Nav/pathfinding"
	"Nav/pathfinding/pathfindingtest"

	"go.uber.org/zap/zaptest"
)

func TestFinderContract(t *testing.T) {
	logger := zaptest.NewLogger(t)
	pathfindingtest.Run(t, func() pathfinding.Finder { return New(logger) })
}

func TestGenerateGraph_OneVertexPerPassableCell(t *testing.T) {
	g := pathfindingtest.MustParse(t,
		".#.",
		"##.",
	)
	graph := generateGraph(g)
	if graph.arena.Len() != 3 {
		t.Fatalf("expected 3 vertices, got %d", graph.arena.Len())
	}
	if graph.vertex(Point{X: 1, Y: 0}) != -1 {
		t.Error("blocked cell must have no vertex")
	}
	id := graph.vertex(Point{X: 2, Y: 1})
	if id < 0 {
		t.Fatal("open cell has no vertex")
	}
	v := graph.arena.At(id)
	if !v.Pos.Equal(Point{X: 2, Y: 1}) || !math.IsInf(v.G, 1) || v.Parent != pathfinding.NoParent {
		t.Errorf("vertex not initialised: %+v", *v)
	}
}

func TestFindPath_Statistics(t *testing.T) {
	g := collision.New(6, 4)
	g.SetCollision(3, 0, true)
	g.SetCollision(3, 1, true)

	p := New(zaptest.NewLogger(t))
	start, goal := Point{X: 0, Y: 0}, Point{X: 5, Y: 0}
	path := p.FindPath(start, goal, g)
	pathfindingtest.CheckPath(t, g, start, goal, path)
	if p.Vertices != 22 {
		t.Errorf("vertices = %d, want 22", p.Vertices)
	}
	if p.ExpandedNodes() < 1 || p.ExpandedNodes() > p.Vertices {
		t.Errorf("expanded = %d out of %d vertices", p.ExpandedNodes(), p.Vertices)
	}
}

func TestFindPath_UnreachableSettlesComponent(t *testing.T) {
	g := pathfindingtest.MustParse(t,
		"..#.",
		"..#.",
	)
	p := New(nil)
	if path := p.FindPath(Point{X: 0, Y: 0}, Point{X: 3, Y: 1}, g); len(path) != 0 {
		t.Fatalf("expected empty path, got %v", path)
	}
	if p.Expanded != 4 {
		t.Errorf("expected the 4-cell component settled, got %d", p.Expanded)
	}
}
