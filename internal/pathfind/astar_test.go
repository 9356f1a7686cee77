package pathfind

import (
	"testing"

	"github.com/rentierek/data-driven-autochess/internal/hexgrid"
)

func TestNextStepMovesTowardGoal(t *testing.T) {
	grid := hexgrid.NewGrid()
	f := NewFinder()

	start := hexgrid.Coord{Q: 0, R: 0}
	goal := hexgrid.Coord{Q: 3, R: 0}

	step, ok := f.NextStep(grid, start, goal)
	if !ok {
		t.Fatal("expected a path")
	}
	if hexgrid.Distance(step, goal) >= hexgrid.Distance(start, goal) {
		t.Fatalf("step %v did not make progress toward goal %v from %v", step, goal, start)
	}
}

func TestNextStepSameHexReturnsNoMove(t *testing.T) {
	grid := hexgrid.NewGrid()
	f := NewFinder()
	c := hexgrid.Coord{Q: 2, R: 2}
	step, ok := f.NextStep(grid, c, c)
	if ok {
		t.Fatal("expected no move when start == goal")
	}
	if step != c {
		t.Fatalf("expected step to equal start, got %v", step)
	}
}

func TestNextStepRoutesAroundOccupant(t *testing.T) {
	grid := hexgrid.NewGrid()
	f := NewFinder()

	start := hexgrid.Coord{Q: 0, R: 2}
	goal := hexgrid.Coord{Q: 2, R: 2}
	// Block the direct hex between start and goal.
	grid.Place(hexgrid.Coord{Q: 1, R: 2}, 99)

	step, ok := f.NextStep(grid, start, goal)
	if !ok {
		t.Fatal("expected an alternate path around the blocker")
	}
	if step == (hexgrid.Coord{Q: 1, R: 2}) {
		t.Fatal("step should not land on the blocked hex")
	}
}

func TestNextStepUnreachableGoal(t *testing.T) {
	grid := hexgrid.NewGrid()
	f := NewFinder()

	// Occupy every in-bounds neighbour so the start is boxed in and no path
	// to a distant goal exists.
	boxedStart := hexgrid.Coord{Q: 3, R: 4}
	for _, n := range boxedStart.Neighbors() {
		if hexgrid.InBounds(n) {
			grid.Place(n, 1)
		}
	}
	farGoal := hexgrid.Coord{Q: 0, R: 0}
	step, ok := f.NextStep(grid, boxedStart, farGoal)
	if ok {
		t.Fatalf("expected no path from a boxed-in start, got step %v", step)
	}
	if step != boxedStart {
		t.Fatalf("expected step to equal start, got %v", step)
	}
}

func TestNearestWalkableAdjacent(t *testing.T) {
	grid := hexgrid.NewGrid()
	target := hexgrid.Coord{Q: 3, R: 3}
	from := hexgrid.Coord{Q: 0, R: 3}

	best, ok := NearestWalkableAdjacent(grid, target, from)
	if !ok {
		t.Fatal("expected a free adjacent hex")
	}
	if hexgrid.Distance(target, best) != 1 {
		t.Fatalf("result %v is not adjacent to target %v", best, target)
	}
}
