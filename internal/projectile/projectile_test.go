package projectile

import (
	"testing"

	"github.com/rentierek/data-driven-autochess/internal/effect"
	"github.com/rentierek/data-driven-autochess/internal/hexgrid"
	"github.com/rentierek/data-driven-autochess/internal/unit"
)

type fakeCtx struct {
	grid  *hexgrid.Grid
	units map[uint64]*unit.Unit
	hits  int
	miss  int
	applied []applyCall
}

type applyCall struct {
	target *unit.Unit
}

func newFakeCtx() *fakeCtx {
	return &fakeCtx{grid: hexgrid.NewGrid(), units: make(map[uint64]*unit.Unit)}
}

func (f *fakeCtx) add(u *unit.Unit) { f.units[u.ID] = u; f.grid.Place(u.Pos, u.ID) }

func (f *fakeCtx) UnitByID(id uint64) (*unit.Unit, bool) { u, ok := f.units[id]; return u, ok }
func (f *fakeCtx) Grid() *hexgrid.Grid                   { return f.grid }
func (f *fakeCtx) LiveUnitsExcept(exclude uint64) []*unit.Unit {
	out := []*unit.Unit{}
	for id, u := range f.units {
		if id != exclude {
			out = append(out, u)
		}
	}
	return out
}
func (f *fakeCtx) ApplyEffects(descs []effect.Descriptor, source, target *unit.Unit, star int) {
	f.applied = append(f.applied, applyCall{target: target})
}
func (f *fakeCtx) RecordHit(p *Projectile, target *unit.Unit) { f.hits++ }
func (f *fakeCtx) RecordMiss(p *Projectile)                   { f.miss++ }

func mkUnit(id uint64, pos hexgrid.Coord) *unit.Unit {
	return unit.NewUnit(id, 0, 1, pos, unit.BaseStats{MaxHP: 100})
}

func TestHomingProjectileResolvesOnArrival(t *testing.T) {
	ctx := newFakeCtx()
	source := mkUnit(1, hexgrid.Coord{0, 0})
	target := mkUnit(2, hexgrid.Coord{2, 0})
	ctx.add(source)
	ctx.add(target)

	m := NewManager()
	p := &Projectile{ID: 1, SourceID: 1, TargetID: 2, Homing: true, Speed: 1, LaunchTargetHex: target.Pos}
	m.Spawn(p, source)

	for i := 0; i < 5 && len(m.Live()) > 0; i++ {
		m.Update(ctx)
	}

	if len(m.Live()) != 0 {
		t.Fatalf("expected projectile resolved, %d still live", len(m.Live()))
	}
	if ctx.hits != 1 {
		t.Fatalf("expected 1 hit, got %d", ctx.hits)
	}
}

func TestProjectileMissOnDeathWhenCanMiss(t *testing.T) {
	ctx := newFakeCtx()
	source := mkUnit(1, hexgrid.Coord{0, 0})
	target := mkUnit(2, hexgrid.Coord{3, 0})
	ctx.add(source)
	ctx.add(target)

	m := NewManager()
	p := &Projectile{ID: 1, SourceID: 1, TargetID: 2, Homing: true, Speed: 1, CanMiss: true, LaunchTargetHex: target.Pos}
	m.Spawn(p, source)

	target.Kill()

	m.Update(ctx)

	if len(m.Live()) != 0 {
		t.Fatal("expected projectile discarded after target death")
	}
	if ctx.miss != 1 {
		t.Fatalf("expected 1 miss recorded, got %d", ctx.miss)
	}
	if ctx.hits != 0 {
		t.Fatal("expected no hit recorded")
	}
}

func TestNonHomingProjectileContinuesToLaunchHex(t *testing.T) {
	ctx := newFakeCtx()
	source := mkUnit(1, hexgrid.Coord{0, 0})
	target := mkUnit(2, hexgrid.Coord{2, 0})
	ctx.add(source)
	ctx.add(target)

	m := NewManager()
	p := &Projectile{ID: 1, SourceID: 1, TargetID: 2, Homing: false, Speed: 5, CanMiss: false, LaunchTargetHex: target.Pos}
	m.Spawn(p, source)

	m.Update(ctx)

	if len(m.Live()) != 0 {
		t.Fatal("expected projectile to resolve in one tick at speed 5 over distance 2")
	}
	if ctx.hits != 1 {
		t.Fatalf("expected hit against occupant of launch hex, got %d hits", ctx.hits)
	}
}
