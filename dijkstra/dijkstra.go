// Package dijkstra finds shortest walkable paths with a uniform-cost search
// over every passable cell of a grid.
package dijkstra

import (
	"Nav/pathfinding"

	"go.uber.org/zap"
)

type Point = pathfinding.Point

// PathFinder keeps the statistics of its last query and must not be shared
// between concurrent queries.
type PathFinder struct {
	log      *zap.Logger
	Vertices int
	Expanded int
}

func New(logger *zap.Logger) *PathFinder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PathFinder{log: logger.Named("dijkstra")}
}

// graph is one vertex per passable cell. lookup maps a row-major cell index
// to its vertex id, or -1 for blocked cells.
type graph struct {
	arena  *pathfinding.Arena
	lookup []int
	width  int
}

func generateGraph(grid pathfinding.Grid) *graph {
	w, h := grid.Width(), grid.Height()
	g := &graph{
		arena:  pathfinding.NewArena(w * h),
		lookup: make([]int, w*h),
		width:  w,
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if !grid.IsPassable(x, y) {
				g.lookup[y*w+x] = -1
				continue
			}
			g.lookup[y*w+x] = g.arena.Add(Point{X: x, Y: y}, pathfinding.Unvisited(), 0)
		}
	}
	return g
}

func (g *graph) vertex(pt Point) int {
	return g.lookup[pt.Y*g.width+pt.X]
}

// FindPath returns the cells from start to goal inclusive, or an empty
// slice when the endpoints are equal, invalid or not connected.
func (p *PathFinder) FindPath(start, goal Point, grid pathfinding.Grid) []Point {
	p.Vertices, p.Expanded = 0, 0
	if !pathfinding.ValidEndpoints(grid, start, goal) {
		p.log.Debug("skip search", zap.Stringer("start", start), zap.Stringer("goal", goal))
		return []Point{}
	}

	g := generateGraph(grid)
	p.Vertices = g.arena.Len()
	p.log.Debug("path search begin",
		zap.Stringer("start", start),
		zap.Stringer("goal", goal),
		zap.Int("vertices", p.Vertices))

	startID := g.vertex(start)
	g.arena.At(startID).G = 0

	openList := pathfinding.NewFrontier(g.arena)
	openList.Push(startID)

	for openList.Len() > 0 {
		currentID := openList.Pop()
		current := g.arena.At(currentID)
		current.Closed = true
		p.Expanded++

		if current.Pos.Equal(goal) {
			path := g.arena.Path(currentID)
			p.log.Debug("path search end",
				zap.Int("expanded", p.Expanded),
				zap.Int("steps", len(path)-1),
				zap.Float64("cost", current.G))
			return path
		}

		for _, nabor := range pathfinding.Neighbors(current.Pos, grid) {
			naborID := g.vertex(nabor)
			if naborID < 0 {
				continue
			}
			vertex := g.arena.At(naborID)
			if vertex.Closed {
				continue
			}
			weight := current.G + pathfinding.DistBetween(current.Pos, nabor)
			if weight < vertex.G {
				vertex.G = weight
				vertex.Parent = currentID
				openList.Push(naborID)
			}
		}
	}

	p.log.Debug("goal unreachable", zap.Int("expanded", p.Expanded))
	return []Point{}
}

func (p *PathFinder) ExpandedNodes() int { return p.Expanded }
