package finder

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"Nav/astar"
	"Nav/collision"
	"Nav/dijkstra"
	"Nav/pathfinding"
	"Nav/pathfinding/pathfindingtest"

	"go.uber.org/zap/zaptest"
)

func TestParseStrategy(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in      string
		want    Strategy
		wantErr bool
	}{
		{"astar", AStar, false},
		{"A*", AStar, false},
		{" a-star ", AStar, false},
		{"Dijkstra", Dijkstra, false},
		{"ucs", Dijkstra, false},
		{"bfs", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseStrategy(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrUnknownStrategy) {
				t.Errorf("ParseStrategy(%q) error = %v, want ErrUnknownStrategy", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseStrategy(%q) = %q, %v; want %q", tt.in, got, err, tt.want)
		}
	}
}

func TestNew(t *testing.T) {
	t.Parallel()
	logger := zaptest.NewLogger(t)

	f, err := New(AStar, logger)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := f.(*astar.PathFinder); !ok {
		t.Errorf("astar strategy built %T", f)
	}
	f, err = New(Dijkstra, logger)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := f.(*dijkstra.PathFinder); !ok {
		t.Errorf("dijkstra strategy built %T", f)
	}
	if _, err := New("greedy", logger); !errors.Is(err, ErrUnknownStrategy) {
		t.Errorf("expected ErrUnknownStrategy, got %v", err)
	}
}

type plainFinder struct{}

func (plainFinder) FindPath(start, goal pathfinding.Point, g pathfinding.Grid) []pathfinding.Point {
	return nil
}

func TestExpanded(t *testing.T) {
	t.Parallel()
	f := astar.New(nil)
	f.FindPath(pathfinding.Point{X: 0, Y: 0}, pathfinding.Point{X: 2, Y: 0}, collision.New(3, 1))
	if got := Expanded(f); got != 2 {
		t.Errorf("Expanded = %d, want 2", got)
	}
	if got := Expanded(plainFinder{}); got != -1 {
		t.Errorf("Expanded of an uninstrumented finder = %d, want -1", got)
	}
}

func TestCost(t *testing.T) {
	t.Parallel()
	if c := Cost(nil); c != 0 {
		t.Errorf("Cost(nil) = %v", c)
	}
	path := []pathfinding.Point{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 1, Y: 2}}
	if c, want := Cost(path), 1+math.Sqrt2; math.Abs(c-want) > 1e-12 {
		t.Errorf("Cost = %v, want %v", c, want)
	}
}

func randomGrid(r *rand.Rand, w, h int, density float64) *collision.Data {
	d := collision.New(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if r.Float64() < density {
				d.SetCollision(x, y, true)
			}
		}
	}
	return d
}

func TestStrategiesAgreeOnCost(t *testing.T) {
	t.Parallel()
	r := rand.New(rand.NewSource(20181002))
	a, _ := New(AStar, nil)
	d, _ := New(Dijkstra, nil)

	reachable := 0
	for i := 0; i < 200; i++ {
		w, h := 4+r.Intn(20), 4+r.Intn(20)
		g := randomGrid(r, w, h, 0.3)
		start := pathfinding.Point{X: r.Intn(w), Y: r.Intn(h)}
		goal := pathfinding.Point{X: r.Intn(w), Y: r.Intn(h)}

		pa := a.FindPath(start, goal, g)
		pd := d.FindPath(start, goal, g)
		if (len(pa) == 0) != (len(pd) == 0) {
			t.Fatalf("grid %d: astar found %d cells, dijkstra %d", i, len(pa), len(pd))
		}
		if len(pa) == 0 {
			continue
		}
		reachable++
		pathfindingtest.CheckPath(t, g, start, goal, pa)
		pathfindingtest.CheckPath(t, g, start, goal, pd)
		if ca, cd := Cost(pa), Cost(pd); math.Abs(ca-cd) > 1e-9 {
			t.Errorf("grid %d %v -> %v: astar cost %v, dijkstra cost %v", i, start, goal, ca, cd)
		}
	}
	if reachable == 0 {
		t.Fatal("no reachable pair generated")
	}
}
