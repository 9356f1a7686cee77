package effect

import (
	"github.com/rentierek/data-driven-autochess/internal/hexgrid"
	"github.com/rentierek/data-driven-autochess/internal/unit"
)

func applyStun(d Descriptor, caster, target *unit.Unit, star int, ctx Context) Result {
	target.Debuffs.ApplyStun(d.DurationTicks)
	target.Machine.EnterStun()
	return Result{Applied: true, Value: float64(d.DurationTicks)}
}

func applySlow(d Descriptor, caster, target *unit.Unit, star int, ctx Context) Result {
	pct := d.Pct
	if pct == 0 {
		pct = d.ValueAt(star)
	}
	target.Debuffs.ApplySlow(pct, d.DurationTicks)
	return Result{Applied: true, Value: pct}
}

// chill is applied exactly as slow: it writes the shared Debuffs.SlowPct
// record, so chills from any source and ordinary slows share one pool that
// refreshes to the max value and max duration rather than summing; chill
// has no stacking group of its own.
func applyChill(d Descriptor, caster, target *unit.Unit, star int, ctx Context) Result {
	return applySlow(d, caster, target, star, ctx)
}

func applySilence(d Descriptor, caster, target *unit.Unit, star int, ctx Context) Result {
	target.Debuffs.ApplySilence(d.DurationTicks)
	return Result{Applied: true, Value: float64(d.DurationTicks)}
}

func applyDisarm(d Descriptor, caster, target *unit.Unit, star int, ctx Context) Result {
	target.Debuffs.ApplyDisarm(d.DurationTicks)
	return Result{Applied: true, Value: float64(d.DurationTicks)}
}

func applyKnockback(d Descriptor, caster, target *unit.Unit, star int, ctx Context) Result {
	return pushAlongAxis(d, caster, target, ctx, true)
}

func applyPull(d Descriptor, caster, target *unit.Unit, star int, ctx Context) Result {
	return pushAlongAxis(d, caster, target, ctx, false)
}

// pushAlongAxis moves target D hexes along the caster->target axis, away
// from the caster for knockback or toward the caster for pull. If the
// destination is occupied, the push stops at the last free hex along the
// path. The push itself deals no damage and does not stun; any impact
// damage or stun must be declared as its own effect in the same
// ability (decision recorded in DESIGN.md for the open question on
// knockback-into-wall behaviour).
func pushAlongAxis(d Descriptor, caster, target *unit.Unit, ctx Context, away bool) Result {
	grid := ctx.Grid()
	dq := target.Pos.Q - caster.Pos.Q
	dr := target.Pos.R - caster.Pos.R
	if !away {
		dq, dr = -dq, -dr
	}
	dist := d.KnockbackHexes
	if dist <= 0 {
		dist = int(d.ValueAt(1))
	}

	current := target.Pos
	moved := 0
	for i := 0; i < dist; i++ {
		next := stepToward(current, dq, dr)
		if !ctx.MoveUnit(target, next) {
			break
		}
		current = next
		moved++
	}
	_ = grid
	return Result{Applied: moved > 0, Value: float64(moved)}
}

// stepToward returns the neighbor of current one step further along the
// (dq, dr) direction vector, by picking the neighbor with the best dot
// product against the direction.
func stepToward(current hexgrid.Coord, dq, dr int) hexgrid.Coord {
	best := current
	bestScore := -1 << 30
	for _, n := range current.Neighbors() {
		score := (n.Q-current.Q)*sign(dq) + (n.R-current.R)*sign(dr)
		if score > bestScore {
			best, bestScore = n, score
		}
	}
	return best
}

func sign(v int) int {
	if v > 0 {
		return 1
	}
	if v < 0 {
		return -1
	}
	return 0
}

func applyTaunt(d Descriptor, caster, target *unit.Unit, star int, ctx Context) Result {
	target.TauntSourceID = caster.ID
	target.TauntTicksLeft = d.DurationTicks
	return Result{Applied: true, Value: float64(d.DurationTicks)}
}
