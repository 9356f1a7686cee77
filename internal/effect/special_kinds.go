package effect

import (
	"github.com/rentierek/data-driven-autochess/internal/hexgrid"
	"github.com/rentierek/data-driven-autochess/internal/pathfind"
	"github.com/rentierek/data-driven-autochess/internal/unit"
)

func applyDash(d Descriptor, caster, target *unit.Unit, star int, ctx Context) Result {
	dest, ok := pathfind.NearestWalkableAdjacent(ctx.Grid(), target.Pos, caster.Pos)
	if !ok {
		return Result{Applied: false}
	}
	moved := ctx.MoveUnit(caster, dest)
	return Result{Applied: moved, Value: float64(hexgrid.Distance(caster.Pos, dest))}
}

func applyEffectGroup(d Descriptor, caster, target *unit.Unit, star int, ctx Context) Result {
	result := Result{Applied: true}
	for _, nested := range d.Nested {
		r := Apply(nested, caster, target, star, ctx)
		result.DamageDone = append(result.DamageDone, r.DamageDone...)
		result.Value += r.Value
	}
	return result
}

func applyCreateZone(d Descriptor, caster, target *unit.Unit, star int, ctx Context) Result {
	if d.ZoneEffect == nil {
		return Result{Applied: false}
	}
	hexes := hexgrid.Circle(target.Pos, d.Radius)
	ticks := d.DurationTicks / maxInt(d.IntervalTicks, 1)
	inner := *d.ZoneEffect
	scheduleRepeats(ctx, d.IntervalTicks, ticks, func(c Context) {
		for _, h := range hexes {
			id, ok := c.Grid().Occupant(h)
			if !ok {
				continue
			}
			occupant, ok := c.UnitByID(id)
			if !ok || !occupant.IsAlive() {
				continue
			}
			Apply(inner, caster, occupant, star, c)
		}
	})
	return Result{Applied: true}
}

func applyIntervalTrigger(d Descriptor, caster, target *unit.Unit, star int, ctx Context) Result {
	if len(d.Nested) == 0 {
		return Result{Applied: false}
	}
	ticks := d.DurationTicks / maxInt(d.IntervalTicks, 1)
	nested := d.Nested
	scheduleRepeats(ctx, d.IntervalTicks, ticks, func(c Context) {
		for _, n := range nested {
			if t, ok := c.UnitByID(target.ID); ok && t.IsAlive() {
				Apply(n, caster, t, star, c)
			}
		}
	})
	return Result{Applied: true}
}

func applyPermanentStack(d Descriptor, caster, target *unit.Unit, star int, ctx Context) Result {
	n := target.StackAdd(d.StackGroup, 1, d.StackCap)
	if d.Buff.ID != "" {
		for k, v := range d.Buff.FlatDeltas {
			target.Modifiers.AddFlat(k, v)
		}
		for k, v := range d.Buff.PercentDeltas {
			target.Modifiers.AddPercent(k, v)
		}
	}
	return Result{Applied: true, Value: float64(n)}
}

func applyManaReave(d Descriptor, caster, target *unit.Unit, star int, ctx Context) Result {
	pct := d.Pct
	if pct == 0 {
		pct = d.ValueAt(star)
	}
	target.ManaReaveMult += pct
	return Result{Applied: true, Value: pct}
}

func applyReplaceAttacks(d Descriptor, caster, target *unit.Unit, star int, ctx Context) Result {
	caster.ReplaceAttacksLeft = maxInt(d.ReplaceCount, 1)
	caster.ReplaceAttacksPayload = d.ReplaceEffects
	return Result{Applied: true, Value: float64(d.ReplaceCount)}
}

func applyTransform(d Descriptor, caster, target *unit.Unit, star int, ctx Context) Result {
	if d.NextAbilityID == "" {
		return Result{Applied: false}
	}
	caster.AbilityID = d.NextAbilityID
	return Result{Applied: true}
}

func applyTransformAfterCasts(d Descriptor, caster, target *unit.Unit, star int, ctx Context) Result {
	n := caster.StackAdd("casts:"+d.NextAbilityID, 1, d.CastThreshold)
	if n >= d.CastThreshold && d.NextAbilityID != "" {
		caster.AbilityID = d.NextAbilityID
		return Result{Applied: true}
	}
	return Result{Applied: false, Value: float64(n)}
}

func applyEscalatingAbility(d Descriptor, caster, target *unit.Unit, star int, ctx Context) Result {
	n := caster.StackAdd("escalate:"+d.StackGroup, 1, d.StackCap)
	if d.Buff.ID != "" {
		caster.ApplyBuff(buffFromTemplate(d.Buff, d.Buff.DurationTicks))
	}
	return Result{Applied: true, Value: float64(n)}
}
