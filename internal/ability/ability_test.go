package ability

import (
	"testing"

	"github.com/rentierek/data-driven-autochess/internal/damage"
	"github.com/rentierek/data-driven-autochess/internal/effect"
	"github.com/rentierek/data-driven-autochess/internal/hexgrid"
	"github.com/rentierek/data-driven-autochess/internal/rngx"
	"github.com/rentierek/data-driven-autochess/internal/unit"
)

type fakeCtx struct {
	grid    *hexgrid.Grid
	rng     *rngx.Stream
	units   map[uint64]*unit.Unit
	spawned int
}

func newFakeCtx() *fakeCtx {
	return &fakeCtx{grid: hexgrid.NewGrid(), rng: rngx.New(1), units: make(map[uint64]*unit.Unit)}
}

func (f *fakeCtx) add(u *unit.Unit) { f.units[u.ID] = u; f.grid.Place(u.Pos, u.ID) }

func (f *fakeCtx) RNG() *rngx.Stream   { return f.rng }
func (f *fakeCtx) Grid() *hexgrid.Grid { return f.grid }
func (f *fakeCtx) CurrentTick() uint32 { return 0 }

func (f *fakeCtx) LiveUnitsExcept(exclude uint64) []*unit.Unit {
	out := []*unit.Unit{}
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
func (f *fakeCtx) SpawnProjectile(source, target *unit.Unit, homing bool, speed float64, canMiss bool, payload []effect.Descriptor, star int) {
	f.spawned++
}
func (f *fakeCtx) ScheduleDelayed(delayTicks int, fn func(effect.Context)) {}
func (f *fakeCtx) EmitEffect(kind effect.Kind, casterID, targetID uint64, value float64) {}
func (f *fakeCtx) KillUnit(u *unit.Unit)                                                 { u.Kill() }
func (f *fakeCtx) MoveUnit(u *unit.Unit, dest hexgrid.Coord) bool {
	if !f.grid.IsWalkable(dest) {
		return false
	}
	f.grid.Move(u.Pos, dest, u.ID)
	u.Pos = dest
	return true
}
func (f *fakeCtx) SpawnAbilityProjectile(def Definition, source, initialTarget *unit.Unit, star int) {
	f.spawned++
}

func mkUnit(id uint64, pos hexgrid.Coord, team int) *unit.Unit {
	return unit.NewUnit(id, team, 1, pos, unit.BaseStats{MaxHP: 500})
}

func TestResolveInstantAppliesDamageToNearestEnemy(t *testing.T) {
	ctx := newFakeCtx()
	caster := mkUnit(1, hexgrid.Coord{0, 0}, 0)
	enemy := mkUnit(2, hexgrid.Coord{1, 0}, 1)
	ctx.add(caster)
	ctx.add(enemy)

	def := Definition{
		Delivery: DeliveryInstant,
		Selector: "nearest",
		Effects:  []effect.Descriptor{{Kind: effect.KindDamage, Values: [3]float64{50, 100, 150}, DamageType: damage.True}},
	}
	ResolveEffectPoint(def, caster, 1, ctx)

	if enemy.HP != 450 {
		t.Fatalf("enemy hp = %v, want 450", enemy.HP)
	}
}

func TestResolveAreaHitsAllInRadius(t *testing.T) {
	ctx := newFakeCtx()
	caster := mkUnit(1, hexgrid.Coord{0, 0}, 0)
	e1 := mkUnit(2, hexgrid.Coord{2, 0}, 1)
	e2 := mkUnit(3, hexgrid.Coord{2, 1}, 1)
	ctx.add(caster)
	ctx.add(e1)
	ctx.add(e2)

	def := Definition{
		Delivery: DeliveryArea,
		Selector: "nearest",
		Shape:    ShapeCircle,
		Radius:   1,
		Effects:  []effect.Descriptor{{Kind: effect.KindDamage, Values: [3]float64{50, 100, 150}, DamageType: damage.True}},
	}
	ResolveEffectPoint(def, caster, 1, ctx)

	if e1.HP != 450 || e2.HP != 450 {
		t.Fatalf("expected both area targets damaged, e1=%v e2=%v", e1.HP, e2.HP)
	}
}

func TestResolveProjectileSpawnsOne(t *testing.T) {
	ctx := newFakeCtx()
	caster := mkUnit(1, hexgrid.Coord{0, 0}, 0)
	enemy := mkUnit(2, hexgrid.Coord{1, 0}, 1)
	ctx.add(caster)
	ctx.add(enemy)

	def := Definition{Delivery: DeliveryProjectile, Selector: "nearest", ProjectileCount: 1}
	ResolveEffectPoint(def, caster, 1, ctx)

	if ctx.spawned != 1 {
		t.Fatalf("expected 1 projectile spawned, got %d", ctx.spawned)
	}
}
