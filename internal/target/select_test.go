package target

import (
	"testing"

	"github.com/rentierek/data-driven-autochess/internal/hexgrid"
	"github.com/rentierek/data-driven-autochess/internal/rngx"
	"github.com/rentierek/data-driven-autochess/internal/unit"
)

func makeUnit(id uint64, pos hexgrid.Coord, hp, maxHP float64) *unit.Unit {
	u := unit.NewUnit(id, 1, 1, pos, unit.BaseStats{MaxHP: maxHP})
	u.HP = hp
	return u
}

func TestNearestPicksClosest(t *testing.T) {
	self := makeUnit(1, hexgrid.Coord{Q: 0, R: 0}, 100, 100)
	near := makeUnit(2, hexgrid.Coord{Q: 1, R: 0}, 100, 100)
	far := makeUnit(3, hexgrid.Coord{Q: 5, R: 0}, 100, 100)
	rng := rngx.New(1)

	got := Select(Nearest, self, []*unit.Unit{far, near}, hexgrid.NewGrid(), rng, Params{}, 0, false)
	if got.ID != near.ID {
		t.Fatalf("expected nearest unit %d, got %d", near.ID, got.ID)
	}
}

func TestLowestHPPercentPicksWeakest(t *testing.T) {
	self := makeUnit(1, hexgrid.Coord{Q: 0, R: 0}, 100, 100)
	healthy := makeUnit(2, hexgrid.Coord{Q: 1, R: 0}, 90, 100)
	wounded := makeUnit(3, hexgrid.Coord{Q: 2, R: 0}, 10, 100)
	rng := rngx.New(1)

	got := Select(LowestHPPercent, self, []*unit.Unit{healthy, wounded}, hexgrid.NewGrid(), rng, Params{}, 0, false)
	if got.ID != wounded.ID {
		t.Fatalf("expected wounded unit %d, got %d", wounded.ID, got.ID)
	}
}

func TestTieBrokenByStableID(t *testing.T) {
	self := makeUnit(1, hexgrid.Coord{Q: 0, R: 0}, 100, 100)
	a := makeUnit(5, hexgrid.Coord{Q: 2, R: 0}, 100, 100)
	b := makeUnit(2, hexgrid.Coord{Q: 2, R: 0}, 100, 100)
	rng := rngx.New(1)

	got := Select(Nearest, self, []*unit.Unit{a, b}, hexgrid.NewGrid(), rng, Params{}, 0, false)
	if got.ID != 2 {
		t.Fatalf("expected tie broken toward lowest id 2, got %d", got.ID)
	}
}

func TestMaxRangeFiltersCandidates(t *testing.T) {
	self := makeUnit(1, hexgrid.Coord{Q: 0, R: 0}, 100, 100)
	inRange := makeUnit(2, hexgrid.Coord{Q: 1, R: 0}, 100, 100)
	outOfRange := makeUnit(3, hexgrid.Coord{Q: 6, R: 0}, 100, 100)
	rng := rngx.New(1)

	got := Select(Farthest, self, []*unit.Unit{inRange, outOfRange}, hexgrid.NewGrid(), rng, Params{MaxRange: 2}, 0, false)
	if got.ID != inRange.ID {
		t.Fatalf("expected only the in-range candidate %d to be selectable, got %d", inRange.ID, got.ID)
	}
}

func TestCurrentTargetFallsBackToNearest(t *testing.T) {
	self := makeUnit(1, hexgrid.Coord{Q: 0, R: 0}, 100, 100)
	near := makeUnit(2, hexgrid.Coord{Q: 1, R: 0}, 100, 100)
	rng := rngx.New(1)

	got := Select(CurrentTarget, self, []*unit.Unit{near}, hexgrid.NewGrid(), rng, Params{}, 99, false)
	if got.ID != near.ID {
		t.Fatalf("expected fallback to nearest unit %d, got %d", near.ID, got.ID)
	}
}
