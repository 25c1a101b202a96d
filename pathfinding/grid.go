package pathfinding

// Grid is what the engines need from an occupancy map. Implementations must
// not be mutated while a query is running on them.
type Grid interface {
	Width() int
	Height() int
	IsPassable(x, y int) bool
}

func InBounds(g Grid, pt Point) bool {
	return pt.X >= 0 && pt.Y >= 0 && pt.X < g.Width() && pt.Y < g.Height()
}

// Walkable bounds-checks before asking the grid, so grids never see
// out-of-range coordinates from the engines.
func Walkable(g Grid, pt Point) bool {
	return InBounds(g, pt) && g.IsPassable(pt.X, pt.Y)
}

// ValidEndpoints reports whether a search between start and goal is worth
// running at all.
func ValidEndpoints(g Grid, start, goal Point) bool {
	if start.Equal(goal) {
		return false
	}
	return Walkable(g, start) && Walkable(g, goal)
}

// Finder is implemented by every search strategy.
type Finder interface {
	FindPath(start, goal Point, g Grid) []Point
}
