// Package pathfindingtest checks that a pathfinding.Finder honours the
// contract every strategy shares.
package pathfindingtest

import (
	"math"
	"testing"

	"Nav/collision"
	"Nav/pathfinding"
)

type Point = pathfinding.Point

// MustParse builds a grid from text rows or fails the test.
func MustParse(t testing.TB, rows ...string) *collision.Data {
	t.Helper()
	d, err := collision.Parse(rows)
	if err != nil {
		t.Fatalf("parse grid: %v", err)
	}
	return d
}

// CheckPath fails the test unless path runs from start to goal using only
// legal steps.
func CheckPath(t testing.TB, g pathfinding.Grid, start, goal Point, path []Point) {
	t.Helper()
	if len(path) < 2 {
		t.Fatalf("expected a path from %v to %v, got %v", start, goal, path)
	}
	if !path[0].Equal(start) {
		t.Errorf("path starts at %v, want %v", path[0], start)
	}
	if !path[len(path)-1].Equal(goal) {
		t.Errorf("path ends at %v, want %v", path[len(path)-1], goal)
	}
	for i := 1; i < len(path); i++ {
		if !pathfinding.IsStep(path[i-1], path[i], g) {
			t.Errorf("illegal step %v -> %v", path[i-1], path[i])
		}
	}
}

// Cost is the Euclidean length of path.
func Cost(path []Point) float64 {
	total := 0.0
	for i := 1; i < len(path); i++ {
		total += pathfinding.DistBetween(path[i-1], path[i])
	}
	return total
}

func contains(path []Point, pt Point) bool {
	for _, p := range path {
		if p.Equal(pt) {
			return true
		}
	}
	return false
}

// Run exercises a Finder built by newFinder. Each subtest gets a fresh
// instance except where reuse is the point.
func Run(t *testing.T, newFinder func() pathfinding.Finder) {
	t.Run("OpenGridChebyshev", func(t *testing.T) {
		g := collision.New(7, 6)
		f := newFinder()
		for sy := 0; sy < 6; sy += 2 {
			for sx := 0; sx < 7; sx += 3 {
				for gy := 0; gy < 6; gy++ {
					for gx := 0; gx < 7; gx++ {
						start, goal := Point{X: sx, Y: sy}, Point{X: gx, Y: gy}
						if start.Equal(goal) {
							continue
						}
						path := f.FindPath(start, goal, g)
						CheckPath(t, g, start, goal, path)
						if steps, want := len(path)-1, pathfinding.Chebyshev(start, goal); steps != want {
							t.Errorf("%v -> %v: %d steps, want %d", start, goal, steps, want)
						}
					}
				}
			}
		}
	})

	t.Run("MainDiagonal", func(t *testing.T) {
		g := collision.New(5, 5)
		path := newFinder().FindPath(Point{X: 0, Y: 0}, Point{X: 4, Y: 4}, g)
		want := []Point{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 2}, {X: 3, Y: 3}, {X: 4, Y: 4}}
		if len(path) != len(want) {
			t.Fatalf("got %v, want %v", path, want)
		}
		for i := range want {
			if !path[i].Equal(want[i]) {
				t.Errorf("step %d: got %v, want %v", i, path[i], want[i])
			}
		}
	})

	t.Run("DetourThroughGap", func(t *testing.T) {
		g := MustParse(t,
			"..#..",
			"..#..",
			"..#..",
			"..#..",
			".....",
		)
		start, goal := Point{X: 0, Y: 0}, Point{X: 4, Y: 4}
		path := newFinder().FindPath(start, goal, g)
		CheckPath(t, g, start, goal, path)
		if !contains(path, Point{X: 2, Y: 4}) {
			t.Errorf("path %v does not pass the gap at (2,4)", path)
		}
		if len(path) <= 5 {
			t.Errorf("detour should be longer than the open diagonal, got %v", path)
		}
		if got, want := Cost(path), 6+math.Sqrt2; math.Abs(got-want) > 1e-9 {
			t.Errorf("cost = %v, want %v", got, want)
		}
	})

	t.Run("SameEndpoints", func(t *testing.T) {
		g := collision.New(3, 3)
		if path := newFinder().FindPath(Point{X: 1, Y: 1}, Point{X: 1, Y: 1}, g); len(path) != 0 {
			t.Errorf("expected empty path, got %v", path)
		}
	})

	t.Run("InvalidEndpoints", func(t *testing.T) {
		g := MustParse(t,
			"...",
			".#.",
			"...",
		)
		f := newFinder()
		cases := []struct {
			name        string
			start, goal Point
		}{
			{"start left of grid", Point{X: -1, Y: 0}, Point{X: 2, Y: 2}},
			{"start below grid", Point{X: 0, Y: 3}, Point{X: 2, Y: 2}},
			{"goal right of grid", Point{X: 0, Y: 0}, Point{X: 3, Y: 0}},
			{"goal above grid", Point{X: 0, Y: 0}, Point{X: 0, Y: -1}},
			{"start blocked", Point{X: 1, Y: 1}, Point{X: 2, Y: 2}},
			{"goal blocked", Point{X: 0, Y: 0}, Point{X: 1, Y: 1}},
		}
		for _, tc := range cases {
			if path := f.FindPath(tc.start, tc.goal, g); len(path) != 0 {
				t.Errorf("%s: expected empty path, got %v", tc.name, path)
			}
		}
	})

	t.Run("SolidWall", func(t *testing.T) {
		g := MustParse(t,
			"..#..",
			"..#..",
			"..#..",
		)
		if path := newFinder().FindPath(Point{X: 0, Y: 1}, Point{X: 4, Y: 1}, g); len(path) != 0 {
			t.Errorf("expected empty path through a wall, got %v", path)
		}
	})

	t.Run("NoCornerCutting", func(t *testing.T) {
		g := MustParse(t,
			".#",
			"#.",
		)
		if path := newFinder().FindPath(Point{X: 0, Y: 0}, Point{X: 1, Y: 1}, g); len(path) != 0 {
			t.Errorf("expected no path between diagonal cells, got %v", path)
		}

		// The pinch at (2,1)/(3,2) forces the long way round.
		g = MustParse(t,
			"......",
			"...#..",
			"..#...",
			"......",
		)
		start, goal := Point{X: 2, Y: 1}, Point{X: 3, Y: 2}
		path := newFinder().FindPath(start, goal, g)
		CheckPath(t, g, start, goal, path)
		if len(path) == 2 {
			t.Errorf("path cut the corner: %v", path)
		}
	})

	t.Run("BoundaryEndpoints", func(t *testing.T) {
		g := collision.New(4, 1)
		start, goal := Point{X: 0, Y: 0}, Point{X: 3, Y: 0}
		path := newFinder().FindPath(start, goal, g)
		CheckPath(t, g, start, goal, path)
		if len(path) != 4 {
			t.Errorf("expected a straight 4-cell path, got %v", path)
		}
	})

	t.Run("ReuseAcrossQueries", func(t *testing.T) {
		f := newFinder()
		blocked := MustParse(t,
			".#.",
			".#.",
			".#.",
		)
		if path := f.FindPath(Point{X: 0, Y: 0}, Point{X: 2, Y: 2}, blocked); len(path) != 0 {
			t.Fatalf("expected no path, got %v", path)
		}
		open := collision.New(3, 3)
		start, goal := Point{X: 0, Y: 0}, Point{X: 2, Y: 2}
		path := f.FindPath(start, goal, open)
		CheckPath(t, open, start, goal, path)
		if len(path) != 3 {
			t.Errorf("stale state leaked into the second query: %v", path)
		}
	})
}
