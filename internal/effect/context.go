package effect

import (
	"github.com/rentierek/data-driven-autochess/internal/damage"
	"github.com/rentierek/data-driven-autochess/internal/hexgrid"
	"github.com/rentierek/data-driven-autochess/internal/rngx"
	"github.com/rentierek/data-driven-autochess/internal/unit"
)

// Context is the slice of engine state effect application needs. The
// engine implements it; effect functions never hold engine state directly,
// matching the "relational, not ownership" back-reference discipline the
// rest of this codebase follows for units and projectiles.
type Context interface {
	RNG() *rngx.Stream
	Grid() *hexgrid.Grid
	CurrentTick() uint32

	// LiveUnitsExcept returns every living unit other than exclude, for
	// splash/ricochet/zone candidate pools.
	LiveUnitsExcept(exclude uint64) []*unit.Unit
	UnitByID(id uint64) (*unit.Unit, bool)

	// Damage runs the shared pipeline and records the resulting event.
	Damage(attacker, defender *unit.Unit, base float64, kind damage.Type, isAuto bool, amplifiers []float64) damage.Result

	// SpawnProjectile enqueues a projectile carrying payload, to be
	// resolved by the projectile manager on a later tick.
	SpawnProjectile(source, target *unit.Unit, homing bool, speed float64, canMiss bool, payload []Descriptor, star int)

	// ScheduleDelayed registers fn to run after delayTicks ticks, for
	// DoT/burn repetition, create_zone per-tick application, and
	// interval_trigger. fn receives the Context at the time it fires.
	ScheduleDelayed(delayTicks int, fn func(Context))

	// EmitEffect records an ABILITY_EFFECT event.
	EmitEffect(kind Kind, casterID uint64, targetID uint64, value float64)

	// KillUnit transitions u to Dead and frees its grid hex.
	KillUnit(u *unit.Unit)

	// MoveUnit relocates u to dest if walkable, updating grid occupancy.
	MoveUnit(u *unit.Unit, dest hexgrid.Coord) bool
}
