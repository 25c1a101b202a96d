package pathfinding

// Neighbors returns the cells reachable from pt in one step. A diagonal step
// is only allowed when both cardinal cells it passes are walkable, so paths
// never clip through a wall corner.
func Neighbors(pt Point, g Grid) []Point {
	result := make([]Point, 0, 8)

	top := Point{pt.X, pt.Y - 1}
	bottom := Point{pt.X, pt.Y + 1}
	left := Point{pt.X - 1, pt.Y}
	right := Point{pt.X + 1, pt.Y}

	canTop := Walkable(g, top)
	canBottom := Walkable(g, bottom)
	canLeft := Walkable(g, left)
	canRight := Walkable(g, right)

	if canTop {
		result = append(result, top)
	}
	if canBottom {
		result = append(result, bottom)
	}
	if canLeft {
		result = append(result, left)
	}
	if canRight {
		result = append(result, right)
	}

	if topR := (Point{pt.X + 1, pt.Y - 1}); canTop && canRight && Walkable(g, topR) {
		result = append(result, topR)
	}
	if bottomR := (Point{pt.X + 1, pt.Y + 1}); canBottom && canRight && Walkable(g, bottomR) {
		result = append(result, bottomR)
	}
	if topL := (Point{pt.X - 1, pt.Y - 1}); canTop && canLeft && Walkable(g, topL) {
		result = append(result, topL)
	}
	if bottomL := (Point{pt.X - 1, pt.Y + 1}); canBottom && canLeft && Walkable(g, bottomL) {
		result = append(result, bottomL)
	}
	return result
}

// IsStep reports whether to is one of from's neighbors.
func IsStep(from, to Point, g Grid) bool {
	for _, nabor := range Neighbors(from, g) {
		if nabor.Equal(to) {
			return true
		}
	}
	return false
}
