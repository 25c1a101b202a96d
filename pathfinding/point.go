package pathfinding

import (
	"fmt"
	"math"
)

// Diagonal is the length of a diagonal step between adjacent cell centers.
const Diagonal = math.Sqrt2

type Point struct {
	X int
	Y int
}

func (pt Point) String() string {
	return fmt.Sprintf("(%d,%d)", pt.X, pt.Y)
}

func (pt1 Point) Equal(pt2 Point) bool {
	return pt1.X == pt2.X && pt1.Y == pt2.Y
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Chebyshev is the number of 8-directional moves between two cells on an
// open grid.
func Chebyshev(pt1, pt2 Point) int {
	dx, dy := abs(pt1.X-pt2.X), abs(pt1.Y-pt2.Y)
	if dx > dy {
		return dx
	}
	return dy
}

// Octile is the exact cost between two cells on an open grid when cardinal
// steps cost 1 and diagonal steps cost Diagonal.
func Octile(pt1, pt2 Point) float64 {
	dx, dy := abs(pt1.X-pt2.X), abs(pt1.Y-pt2.Y)
	lo, hi := dx, dy
	if lo > hi {
		lo, hi = hi, lo
	}
	return float64(hi-lo) + Diagonal*float64(lo)
}

// DistBetween is the straight-line distance between two cell centers.
func DistBetween(pt1, pt2 Point) float64 {
	return math.Hypot(float64(pt1.X-pt2.X), float64(pt1.Y-pt2.Y))
}

// StepCost is the cost of moving between two adjacent cells.
func StepCost(from, to Point) float64 {
	if from.X != to.X && from.Y != to.Y {
		return Diagonal
	}
	return 1
}
