package pathfinding

// rowsGrid is a grid written as text: '#' is blocked, anything else is open.
type rowsGrid []string

func (g rowsGrid) Width() int {
	if len(g) == 0 {
		return 0
	}
	return len(g[0])
}

func (g rowsGrid) Height() int { return len(g) }

func (g rowsGrid) IsPassable(x, y int) bool {
	return g[y][x] != '#'
}

func containsPoint(pts []Point, pt Point) bool {
	for _, p := range pts {
		if p.Equal(pt) {
			return true
		}
	}
	return false
}
