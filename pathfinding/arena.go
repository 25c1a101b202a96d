package pathfinding

import "math"

// NoParent marks the start node of a query.
const NoParent = -1

// Unvisited is the cost of a node no route has reached yet.
func Unvisited() float64 { return math.Inf(1) }

// Node is one cell's search state during a single query.
type Node struct {
	Pos    Point
	G      float64
	H      float64
	Parent int
	Closed bool
	index  int
}

// F is the frontier priority of the node.
func (n *Node) F() float64 {
	return n.G + n.H
}

// Arena owns every node of one query. Parents are arena ids, so nothing
// outlives the arena once the query returns.
type Arena struct {
	nodes []Node
}

func NewArena(capacity int) *Arena {
	return &Arena{nodes: make([]Node, 0, capacity)}
}

// Add appends a node and returns its id. Pointers returned by At are only
// valid until the next Add.
func (a *Arena) Add(pos Point, g, h float64) int {
	a.nodes = append(a.nodes, Node{
		Pos:    pos,
		G:      g,
		H:      h,
		Parent: NoParent,
		index:  -1,
	})
	return len(a.nodes) - 1
}

func (a *Arena) At(id int) *Node {
	return &a.nodes[id]
}

func (a *Arena) Len() int {
	return len(a.nodes)
}

// Path walks parent links from id back to the start and returns the cells
// in start to id order.
func (a *Arena) Path(id int) []Point {
	path := []Point{}
	for id != NoParent {
		node := &a.nodes[id]
		path = append(path, node.Pos)
		id = node.Parent
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
