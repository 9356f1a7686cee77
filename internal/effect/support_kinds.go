package effect

import (
	"github.com/rentierek/data-driven-autochess/internal/damage"
	"github.com/rentierek/data-driven-autochess/internal/unit"
)

func applyHeal(d Descriptor, caster, target *unit.Unit, star int, ctx Context) Result {
	amount := Scaled(d, caster, target, star)
	healed := damage.ApplyHeal(target, amount)
	return Result{Applied: healed > 0, Value: healed}
}

func applyHealOverTime(d Descriptor, caster, target *unit.Unit, star int, ctx Context) Result {
	perTick := Scaled(d, caster, target, star)
	ticks := d.DurationTicks / maxInt(d.IntervalTicks, 1)
	scheduleRepeats(ctx, d.IntervalTicks, ticks, func(c Context) {
		if t, ok := c.UnitByID(target.ID); ok && t.IsAlive() {
			damage.ApplyHeal(t, perTick)
		}
	})
	return Result{Applied: true, Value: perTick}
}

func applyShield(d Descriptor, caster, target *unit.Unit, star int, ctx Context) Result {
	amount := Scaled(d, caster, target, star)
	target.AddShield(amount, d.DurationTicks)
	return Result{Applied: true, Value: amount}
}

func applyShieldSelf(d Descriptor, caster, target *unit.Unit, star int, ctx Context) Result {
	amount := Scaled(d, caster, caster, star)
	caster.AddShield(amount, d.DurationTicks)
	return Result{Applied: true, Value: amount}
}

func buffFromTemplate(t BuffTemplate, durationOverride int) unit.Buff {
	dur := t.DurationTicks
	if durationOverride > 0 {
		dur = durationOverride
	}
	flat := make(map[unit.StatKey]float64, len(t.FlatDeltas))
	for k, v := range t.FlatDeltas {
		flat[k] = v
	}
	pct := make(map[unit.StatKey]float64, len(t.PercentDeltas))
	for k, v := range t.PercentDeltas {
		pct[k] = v
	}
	return unit.Buff{ID: t.ID, FlatDeltas: flat, PercentDeltas: pct, TicksLeft: dur, Stack: t.Stack}
}

func applyBuff(d Descriptor, caster, target *unit.Unit, star int, ctx Context) Result {
	target.ApplyBuff(buffFromTemplate(d.Buff, d.DurationTicks))
	return Result{Applied: true}
}

func applyBuffTeam(d Descriptor, caster, target *unit.Unit, star int, ctx Context) Result {
	count := 0
	for _, u := range ctx.LiveUnitsExcept(0) {
		if u.Team == caster.Team {
			u.ApplyBuff(buffFromTemplate(d.Buff, d.DurationTicks))
			count++
		}
	}
	return Result{Applied: count > 0, Value: float64(count)}
}

func applyDecayingBuff(d Descriptor, caster, target *unit.Unit, star int, ctx Context) Result {
	// A decaying buff is modelled as its full-strength template reapplied
	// every tick at a linearly shrinking fraction, via scheduled single-
	// tick re-applications rather than a persistent modifier, so the
	// existing flat/percent modifier bookkeeping stays the single source
	// of truth for "what's currently applied".
	total := d.DurationTicks
	if total <= 0 {
		total = 1
	}
	for i := 0; i < total; i++ {
		frac := float64(total-i) / float64(total)
		step := i
		ctx.ScheduleDelayed(step, func(c Context) {
			t, ok := c.UnitByID(target.ID)
			if !ok || !t.IsAlive() {
				return
			}
			scaled := BuffTemplate{
				ID:            d.Buff.ID,
				FlatDeltas:    scaleDeltas(d.Buff.FlatDeltas, frac),
				PercentDeltas: scaleDeltas(d.Buff.PercentDeltas, frac),
				DurationTicks: 1,
				Stack:         unit.StackRefresh,
			}
			t.ApplyBuff(buffFromTemplate(scaled, 1))
		})
	}
	return Result{Applied: true}
}

func scaleDeltas(in map[unit.StatKey]float64, frac float64) map[unit.StatKey]float64 {
	out := make(map[unit.StatKey]float64, len(in))
	for k, v := range in {
		out[k] = v * frac
	}
	return out
}

func applyStackingBuff(d Descriptor, caster, target *unit.Unit, star int, ctx Context) Result {
	n := target.StackAdd(d.StackGroup, 1, d.StackCap)
	target.ApplyBuff(buffFromTemplate(d.Buff, d.Buff.DurationTicks))
	return Result{Applied: true, Value: float64(n)}
}

func applyManaGrant(d Descriptor, caster, target *unit.Unit, star int, ctx Context) Result {
	amount := d.ManaAmount
	if amount == 0 {
		amount = d.ValueAt(star)
	}
	target.Mana += amount
	if target.Mana > target.MaxMana {
		target.Mana = target.MaxMana
	}
	return Result{Applied: true, Value: amount}
}

func applyCleanse(d Descriptor, caster, target *unit.Unit, star int, ctx Context) Result {
	wasStunned := target.Debuffs.Stunned()
	target.Debuffs.Cleanse()
	if wasStunned {
		target.Machine.ExitStun()
	}
	return Result{Applied: true}
}
