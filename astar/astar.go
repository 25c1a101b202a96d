package astar

import (
	"Nav/pathfinding"

	mapset "github.com/deckarep/golang-set"
	"go.uber.org/zap"
)

type Point = pathfinding.Point

// PathFinder runs best-first searches guided by the octile distance. The
// counters describe the last query, so one PathFinder must not serve two
// queries at the same time.
type PathFinder struct {
	log      *zap.Logger
	Expanded int
}

func New(logger *zap.Logger) *PathFinder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PathFinder{log: logger.Named("astar")}
}

func heuristicCostEstimate(pt1 Point, pt2 Point) float64 {
	return pathfinding.Octile(pt1, pt2)
}

// FindPath returns the cells from start to goal inclusive, or an empty
// slice when the endpoints are equal, invalid or not connected.
func (p *PathFinder) FindPath(start, goal Point, grid pathfinding.Grid) []Point {
	p.Expanded = 0
	if !pathfinding.ValidEndpoints(grid, start, goal) {
		p.log.Debug("skip search", zap.Stringer("start", start), zap.Stringer("goal", goal))
		return []Point{}
	}

	p.log.Debug("path search begin", zap.Stringer("start", start), zap.Stringer("goal", goal))

	arena := pathfinding.NewArena(64)
	discovered := map[Point]int{}
	openSet := pathfinding.NewFrontier(arena)
	closeSet := mapset.NewThreadUnsafeSet()

	startID := arena.Add(start, 0, heuristicCostEstimate(start, goal))
	discovered[start] = startID
	openSet.Push(startID)

	for openSet.Len() > 0 {
		currentID := openSet.Pop()
		current := arena.At(currentID)
		if current.Pos.Equal(goal) {
			path := arena.Path(currentID)
			p.log.Debug("reach goal",
				zap.Int("expanded", p.Expanded),
				zap.Int("steps", len(path)-1),
				zap.Float64("cost", current.G))
			return path
		}

		closeSet.Add(current.Pos)
		p.Expanded++

		// current may move when the arena grows below.
		pos, gScore := current.Pos, current.G
		for _, nabor := range pathfinding.Neighbors(pos, grid) {
			if closeSet.Contains(nabor) {
				continue
			}
			tentativeGScore := gScore + pathfinding.StepCost(pos, nabor)

			naborID, ok := discovered[nabor]
			if !ok {
				naborID = arena.Add(nabor, tentativeGScore, heuristicCostEstimate(nabor, goal))
				arena.At(naborID).Parent = currentID
				discovered[nabor] = naborID
				openSet.Push(naborID)
				continue
			}

			node := arena.At(naborID)
			if tentativeGScore < node.G {
				node.G = tentativeGScore
				node.Parent = currentID
				openSet.Fix(naborID)
			}
		}
	}

	p.log.Debug("goal unreachable", zap.Int("expanded", p.Expanded))
	return []Point{}
}

func (p *PathFinder) ExpandedNodes() int { return p.Expanded }
