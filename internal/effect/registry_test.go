package effect

import (
	"testing"

	"github.com/rentierek/data-driven-autochess/internal/damage"
	"github.com/rentierek/data-driven-autochess/internal/hexgrid"
	"github.com/rentierek/data-driven-autochess/internal/rngx"
	"github.com/rentierek/data-driven-autochess/internal/unit"
)

// fakeCtx is a minimal Context implementation for exercising effect
// application in isolation, without a full engine.
type fakeCtx struct {
	grid    *hexgrid.Grid
	rng     *rngx.Stream
	units   map[uint64]*unit.Unit
	tick    uint32
	delayed []delayedCall
}

type delayedCall struct {
	at int
	fn func(Context)
}

func newFakeCtx() *fakeCtx {
	return &fakeCtx{grid: hexgrid.NewGrid(), rng: rngx.New(1), units: make(map[uint64]*unit.Unit)}
}

func (f *fakeCtx) add(u *unit.Unit) { f.units[u.ID] = u; f.grid.Place(u.Pos, u.ID) }

func (f *fakeCtx) RNG() *rngx.Stream       { return f.rng }
func (f *fakeCtx) Grid() *hexgrid.Grid     { return f.grid }
func (f *fakeCtx) CurrentTick() uint32     { return f.tick }

func (f *fakeCtx) LiveUnitsExcept(exclude uint64) []*unit.Unit {
	out := make([]*unit.Unit, 0, len(f.units))
	for id, u := range f.units {
		if id != exclude && u.IsAlive() {
			out = append(out, u)
		}
	}
	return out
}

func (f *fakeCtx) UnitByID(id uint64) (*unit.Unit, bool) { u, ok := f.units[id]; return u, ok }

func (f *fakeCtx) Damage(attacker, defender *unit.Unit, base float64, kind damage.Type, isAuto bool, amps []float64) damage.Result {
	return damage.Resolve(damage.Input{Attacker: attacker, Defender: defender, BaseDamage: base, Kind: kind, IsAutoAttack: isAuto, Amplifiers: amps}, f.rng)
}

func (f *fakeCtx) SpawnProjectile(source, target *unit.Unit, homing bool, speed float64, canMiss bool, payload []Descriptor, star int) {
}

func (f *fakeCtx) ScheduleDelayed(delayTicks int, fn func(Context)) {
	f.delayed = append(f.delayed, delayedCall{at: int(f.tick) + delayTicks, fn: fn})
}

func (f *fakeCtx) EmitEffect(kind Kind, casterID, targetID uint64, value float64) {}

func (f *fakeCtx) KillUnit(u *unit.Unit) {
	f.grid.Vacate(u.Pos, u.ID)
	u.Kill()
}

func (f *fakeCtx) MoveUnit(u *unit.Unit, dest hexgrid.Coord) bool {
	if !f.grid.IsWalkable(dest) {
		return false
	}
	f.grid.Move(u.Pos, dest, u.ID)
	u.Pos = dest
	return true
}

// advance runs every delayed call scheduled for exactly tick t.
func (f *fakeCtx) advance(t int) {
	f.tick = uint32(t)
	for _, d := range f.delayed {
		if d.at == t {
			d.fn(f)
		}
	}
}

func mkUnit(id uint64, pos hexgrid.Coord, team int) *unit.Unit {
	return unit.NewUnit(id, team, 1, pos, unit.BaseStats{MaxHP: 1000, MaxMana: 100})
}

func TestApplyStunEntersStunnedState(t *testing.T) {
	ctx := newFakeCtx()
	caster := mkUnit(1, hexgrid.Coord{0, 0}, 0)
	target := mkUnit(2, hexgrid.Coord{1, 0}, 1)
	ctx.add(caster)
	ctx.add(target)

	Apply(Descriptor{Kind: KindStun, DurationTicks: 30}, caster, target, 1, ctx)

	if target.Machine.Current != unit.Stunned {
		t.Fatalf("expected Stunned, got %v", target.Machine.Current)
	}
	if target.Debuffs.StunTicksLeft != 30 {
		t.Fatalf("expected 30 ticks left, got %d", target.Debuffs.StunTicksLeft)
	}
}

func TestSunderRefreshTakesMaxNotSum(t *testing.T) {
	ctx := newFakeCtx()
	caster := mkUnit(1, hexgrid.Coord{0, 0}, 0)
	target := mkUnit(2, hexgrid.Coord{1, 0}, 1)
	ctx.add(caster)
	ctx.add(target)

	Apply(Descriptor{Kind: KindSunder, Pct: 0.20, DurationTicks: 60}, caster, target, 1, ctx)
	Apply(Descriptor{Kind: KindSunder, Pct: 0.15, DurationTicks: 90}, caster, target, 1, ctx)

	if target.Debuffs.ArmorShredPct != 0.20 {
		t.Fatalf("expected max pct 0.20, got %v", target.Debuffs.ArmorShredPct)
	}
	if target.Debuffs.ArmorShredTicks != 90 {
		t.Fatalf("expected max duration 90, got %d", target.Debuffs.ArmorShredTicks)
	}
}

func TestHealRespectsWoundViaEffect(t *testing.T) {
	ctx := newFakeCtx()
	caster := mkUnit(1, hexgrid.Coord{0, 0}, 0)
	target := mkUnit(2, hexgrid.Coord{1, 0}, 1)
	target.HP = 500
	target.Debuffs.ApplyWound(0.33, 100)
	ctx.add(caster)
	ctx.add(target)

	res := Apply(Descriptor{Kind: KindHeal, Values: [3]float64{100, 200, 300}}, caster, target, 1, ctx)

	if res.Value < 66.9 || res.Value > 67.1 {
		t.Fatalf("healed %v, want ~67", res.Value)
	}
}

func TestStarScalingSymmetry(t *testing.T) {
	ctx := newFakeCtx()
	caster := mkUnit(1, hexgrid.Coord{0, 0}, 0)
	target := mkUnit(2, hexgrid.Coord{1, 0}, 1)
	ctx.add(caster)
	ctx.add(target)

	d := Descriptor{Kind: KindDamage, Values: [3]float64{10, 20, 30}, DamageType: damage.True}
	for star := 1; star <= 3; star++ {
		freshTarget := mkUnit(uint64(10+star), hexgrid.Coord{2, 0}, 1)
		ctx.add(freshTarget)
		res := Apply(d, caster, freshTarget, star, ctx)
		want := float64(star) * 10
		if res.Value != want {
			t.Fatalf("star %d: damage = %v, want %v", star, res.Value, want)
		}
	}
}

func TestCleanseRemovesCC(t *testing.T) {
	ctx := newFakeCtx()
	caster := mkUnit(1, hexgrid.Coord{0, 0}, 0)
	target := mkUnit(2, hexgrid.Coord{1, 0}, 1)
	ctx.add(caster)
	ctx.add(target)

	Apply(Descriptor{Kind: KindStun, DurationTicks: 20}, caster, target, 1, ctx)
	Apply(Descriptor{Kind: KindCleanse}, caster, target, 1, ctx)

	if target.Debuffs.Stunned() {
		t.Fatal("expected stun cleared")
	}
	if target.Machine.Current == unit.Stunned {
		t.Fatal("expected state machine to exit stun")
	}
}

func TestBurnDoTAccumulatesOverScheduledTicks(t *testing.T) {
	ctx := newFakeCtx()
	caster := mkUnit(1, hexgrid.Coord{0, 0}, 0)
	target := mkUnit(2, hexgrid.Coord{1, 0}, 1)
	ctx.add(caster)
	ctx.add(target)

	Apply(Descriptor{Kind: KindDoT, Values: [3]float64{10, 10, 10}, DamageType: damage.True, DurationTicks: 3, IntervalTicks: 1}, caster, target, 1, ctx)

	startHP := target.HP
	for t2 := 1; t2 <= 3; t2++ {
		ctx.advance(t2)
	}
	if target.HP >= startHP {
		t.Fatal("expected DoT to have reduced target HP")
	}
}
