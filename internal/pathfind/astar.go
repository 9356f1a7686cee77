// Package pathfind implements A* over the hex occupancy grid. The engine
// calls NextStep once per moving unit per tick rather than computing a full
// path up front, so re-routing reacts to occupancy changes between ticks.
package pathfind

import (
	"container/heap"

	"github.com/rentierek/data-driven-autochess/internal/hexgrid"
)

type openEntry struct {
	coord    hexgrid.Coord
	priority int
	seq      int // tie-break by insertion order for determinism
}

type openQueue []openEntry

func (q openQueue) Len() int { return len(q) }
func (q openQueue) Less(i, j int) bool {
	if q[i].priority != q[j].priority {
		return q[i].priority < q[j].priority
	}
	return q[i].seq < q[j].seq
}
func (q openQueue) Swap(i, j int)      { q[i], q[j] = q[j], q[i] }
func (q *openQueue) Push(x any)        { *q = append(*q, x.(openEntry)) }
func (q *openQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}

// Finder holds reusable scratch storage for repeated A* queries over the
// same grid, avoiding per-tick map allocation.
type Finder struct {
	cameFrom map[hexgrid.Coord]hexgrid.Coord
	gScore   map[hexgrid.Coord]int
	closed   map[hexgrid.Coord]bool
}

// NewFinder creates a pathfinder with preallocated scratch maps.
func NewFinder() *Finder {
	return &Finder{
		cameFrom: make(map[hexgrid.Coord]hexgrid.Coord, 64),
		gScore:   make(map[hexgrid.Coord]int, 64),
		closed:   make(map[hexgrid.Coord]bool, 64),
	}
}

// Occupancy is the minimal grid view the pathfinder needs: walkability and
// in-bounds tests. hexgrid.Grid satisfies this.
type Occupancy interface {
	IsWalkable(c hexgrid.Coord) bool
}

// NextStep runs A* from start toward goal and returns the first hex to move
// into. Start and goal are always treated as passable (the grid is
// otherwise occupancy-checked) so a unit is never blocked from leaving its
// own hex or from stepping onto the goal-adjacent destination it was
// routed to. Returns (start, false) if no path exists (goal unreachable or
// start == goal).
func (f *Finder) NextStep(grid Occupancy, start, goal hexgrid.Coord) (hexgrid.Coord, bool) {
	if start == goal {
		return start, false
	}

	for k := range f.cameFrom {
		delete(f.cameFrom, k)
	}
	for k := range f.gScore {
		delete(f.gScore, k)
	}
	for k := range f.closed {
		delete(f.closed, k)
	}

	open := &openQueue{}
	heap.Init(open)
	seq := 0
	heap.Push(open, openEntry{coord: start, priority: hexgrid.Distance(start, goal), seq: seq})
	f.gScore[start] = 0

	passable := func(c hexgrid.Coord) bool {
		if c == start || c == goal {
			return hexgrid.InBounds(c)
		}
		return grid.IsWalkable(c)
	}

	for open.Len() > 0 {
		current := heap.Pop(open).(openEntry).coord
		if f.closed[current] {
			continue
		}
		f.closed[current] = true

		if current == goal {
			return f.reconstructFirstStep(start, goal), true
		}

		for _, n := range current.Neighbors() {
			if !passable(n) {
				continue
			}
			tentative := f.gScore[current] + 1
			if existing, ok := f.gScore[n]; ok && existing <= tentative {
				continue
			}
			f.gScore[n] = tentative
			f.cameFrom[n] = current
			seq++
			heap.Push(open, openEntry{
				coord:    n,
				priority: tentative + hexgrid.Distance(n, goal),
				seq:      seq,
			})
		}
	}

	return start, false
}

// reconstructFirstStep walks the cameFrom chain from goal back to start and
// returns the hex adjacent to start on that path.
func (f *Finder) reconstructFirstStep(start, goal hexgrid.Coord) hexgrid.Coord {
	step := goal
	for {
		prev, ok := f.cameFrom[step]
		if !ok || prev == start {
			return step
		}
		step = prev
	}
}

// NearestWalkableAdjacent returns the walkable hex adjacent to target that
// is nearest to from, or false if target has no free neighbor.
func NearestWalkableAdjacent(grid Occupancy, target, from hexgrid.Coord) (hexgrid.Coord, bool) {
	best := target
	bestDist := -1
	found := false
	for _, n := range target.Neighbors() {
		if !hexgrid.InBounds(n) || !grid.IsWalkable(n) {
			continue
		}
		d := hexgrid.Distance(n, from)
		if !found || d < bestDist {
			best, bestDist, found = n, d, true
		}
	}
	return best, found
}
