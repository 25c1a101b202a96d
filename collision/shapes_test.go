package collision

import "testing"

// wallColumn covers x in [20,30] and y in [0,50], listed counter-clockwise.
var wallColumn = []Vec2{{20, 0}, {30, 0}, {30, 50}, {20, 50}}

func blockedColumns(d *Data) map[int]int {
	cols := map[int]int{}
	for y := 0; y < d.Height(); y++ {
		for x := 0; x < d.Width(); x++ {
			if d.HasCollisionAt(x, y) {
				cols[x]++
			}
		}
	}
	return cols
}

func TestFromPolygons_BlocksCoveredCells(t *testing.T) {
	t.Parallel()

	d := FromPolygons(5, 5, 10, 1, [][]Vec2{wallColumn})
	cols := blockedColumns(d)
	if cols[2] != 5 {
		t.Errorf("expected column 2 fully blocked, got %d cells", cols[2])
	}
	if len(cols) != 1 {
		t.Errorf("expected only column 2 blocked, got %v", cols)
	}
}

func TestFromPolygons_RadiusGrowsObstacles(t *testing.T) {
	t.Parallel()

	// Centers at x=15 and x=35 are 5 units from the wall.
	d := FromPolygons(5, 5, 10, 6, [][]Vec2{wallColumn})
	cols := blockedColumns(d)
	if cols[1] != 5 || cols[3] != 5 {
		t.Errorf("expected columns 1 and 3 blocked by the agent radius, got %v", cols)
	}
	if cols[0] != 0 || cols[4] != 0 {
		t.Errorf("outer columns should stay open, got %v", cols)
	}
}

func TestFromWorld(t *testing.T) {
	t.Parallel()

	world := NewWorld([]Barrier{
		{X: 25, Y: 25, Points: []Vec2{{-5, -25}, {5, -25}, {5, 25}, {-5, 25}}},
		{X: 5, Y: 45, Radius: 2},
	})
	d := FromWorld(world, 5, 5, 10)

	cols := blockedColumns(d)
	if cols[2] != 5 {
		t.Errorf("expected column 2 fully blocked, got %v", cols)
	}
	if !d.HasCollisionAt(0, 4) {
		t.Error("circle barrier should block cell (0,4)")
	}
	if got := d.Passable(); got != 25-6 {
		t.Errorf("expected 19 passable cells, got %d", got)
	}
}
