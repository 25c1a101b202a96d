package pathfinding

import "container/heap"

// Frontier is the open list: arena ids ordered by ascending F, ties going
// to the node with the smaller heuristic.
type Frontier struct {
	q queue
}

func NewFrontier(a *Arena) *Frontier {
	return &Frontier{q: queue{arena: a}}
}

func (f *Frontier) Len() int {
	return len(f.q.ids)
}

// Push inserts id. Pushing an id already on the frontier re-sorts it
// instead, so a position is never queued twice.
func (f *Frontier) Push(id int) {
	if f.Contains(id) {
		f.Fix(id)
		return
	}
	heap.Push(&f.q, id)
}

// Pop removes and returns the id with the least F.
func (f *Frontier) Pop() int {
	return heap.Pop(&f.q).(int)
}

func (f *Frontier) Contains(id int) bool {
	return f.q.arena.At(id).index >= 0
}

// Fix restores ordering after the node's cost dropped.
func (f *Frontier) Fix(id int) {
	heap.Fix(&f.q, f.q.arena.At(id).index)
}

type queue struct {
	arena *Arena
	ids   []int
}

func (q queue) Len() int { return len(q.ids) }

func (q queue) Less(i, j int) bool {
	a, b := q.arena.At(q.ids[i]), q.arena.At(q.ids[j])
	if fa, fb := a.F(), b.F(); fa != fb {
		return fa < fb
	}
	return a.H < b.H
}

func (q queue) Swap(i, j int) {
	q.ids[i], q.ids[j] = q.ids[j], q.ids[i]
	q.arena.At(q.ids[i]).index = i
	q.arena.At(q.ids[j]).index = j
}

func (q *queue) Push(x interface{}) {
	id := x.(int)
	q.arena.At(id).index = len(q.ids)
	q.ids = append(q.ids, id)
}

func (q *queue) Pop() interface{} {
	old := q.ids
	n := len(old)
	id := old[n-1]
	q.arena.At(id).index = -1
	q.ids = old[:n-1]
	return id
}
