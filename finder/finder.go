// Package finder picks a search strategy by name and leases engine
// instances to concurrent callers.
package finder

import (
	"errors"
	"fmt"
	"strings"

	"Nav/astar"
	"Nav/dijkstra"
	"Nav/pathfinding"

	"go.uber.org/zap"
)

type Strategy string

const (
	AStar    Strategy = "astar"
	Dijkstra Strategy = "dijkstra"
)

// Strategies lists every known strategy.
var Strategies = []Strategy{AStar, Dijkstra}

var ErrUnknownStrategy = errors.New("unknown strategy")

// ParseStrategy accepts the strategy names case-insensitively, plus "a*".
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "astar", "a*", "a-star":
		return AStar, nil
	case "dijkstra", "ucs":
		return Dijkstra, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
}

// Instrumented engines expose how many nodes their last query expanded.
type Instrumented interface {
	ExpandedNodes() int
}

func New(s Strategy, logger *zap.Logger) (pathfinding.Finder, error) {
	switch s {
	case AStar:
		return astar.New(logger), nil
	case Dijkstra:
		return dijkstra.New(logger), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, s)
}

// Expanded returns the node count of f's last query, or -1 when f does not
// track it.
func Expanded(f pathfinding.Finder) int {
	if i, ok := f.(Instrumented); ok {
		return i.ExpandedNodes()
	}
	return -1
}

// Cost is the walked length of a path.
func Cost(path []pathfinding.Point) float64 {
	total := 0.0
	for i := 1; i < len(path); i++ {
		total += pathfinding.DistBetween(path[i-1], path[i])
	}
	return total
}
