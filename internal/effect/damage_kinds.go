package effect

import (
	"sort"

	"github.com/rentierek/data-driven-autochess/internal/damage"
	"github.com/rentierek/data-driven-autochess/internal/hexgrid"
	"github.com/rentierek/data-driven-autochess/internal/unit"
)

func applyDamage(d Descriptor, caster, target *unit.Unit, star int, ctx Context) Result {
	base := Scaled(d, caster, target, star)
	out := ctx.Damage(caster, target, base, d.DamageType, false, nil)
	return Result{Applied: !out.Dodged, Value: out.FinalDamage, DamageDone: []damage.Result{out}}
}

func applyHybridDamage(d Descriptor, caster, target *unit.Unit, star int, ctx Context) Result {
	// Hybrid damage applies the descriptor's scaled value once, as the
	// declared DamageType, exactly like plain damage. No AD/AP split is
	// made here, and the loader does not split it into stacked descriptors.
	return applyDamage(d, caster, target, star, ctx)
}

func applyDoT(d Descriptor, caster, target *unit.Unit, star int, ctx Context) Result {
	perTick := Scaled(d, caster, target, star)
	ticks := d.DurationTicks / maxInt(d.IntervalTicks, 1)
	scheduleRepeats(ctx, d.IntervalTicks, ticks, func(c Context) {
		if t, ok := c.UnitByID(target.ID); ok && t.IsAlive() {
			c.Damage(caster, t, perTick, d.DamageType, false, nil)
		}
	})
	return Result{Applied: true, Value: perTick}
}

func applyBurn(d Descriptor, caster, target *unit.Unit, star int, ctx Context) Result {
	dps := Scaled(d, caster, target, star)
	target.Debuffs.ApplyBurn(dps, d.DurationTicks)
	return Result{Applied: true, Value: dps}
}

func applyExecute(d Descriptor, caster, target *unit.Unit, star int, ctx Context) Result {
	threshold := d.ValueAt(star)
	if target.HPPercent() <= threshold {
		target.HP = 0
		return Result{Applied: true, Value: target.EffectiveMaxHP()}
	}
	return Result{Applied: false}
}

func applyPercentHPDamage(d Descriptor, caster, target *unit.Unit, star int, ctx Context) Result {
	p := d.ValueAt(star)
	base := target.EffectiveMaxHP() * p
	out := ctx.Damage(caster, target, base, d.DamageType, false, nil)
	return Result{Applied: !out.Dodged, Value: out.FinalDamage, DamageDone: []damage.Result{out}}
}

func applySplashDamage(d Descriptor, caster, target *unit.Unit, star int, ctx Context) Result {
	main := applyDamage(d, caster, target, star, ctx)
	splashValue := main.Value * 0.5 // secondary targets take half the main hit, per common splash conventions
	for _, other := range ctx.LiveUnitsExcept(target.ID) {
		if other.Team == target.Team && hexgrid.Distance(target.Pos, other.Pos) <= d.Radius {
			out := ctx.Damage(caster, other, splashValue, d.DamageType, false, nil)
			main.DamageDone = append(main.DamageDone, out)
		}
	}
	return main
}

func applyRicochet(d Descriptor, caster, target *unit.Unit, star int, ctx Context) Result {
	hit := map[uint64]bool{target.ID: true}
	current := target
	result := applyDamage(d, caster, current, star, ctx)
	for i := 0; i < d.ChainCount; i++ {
		next := nearestUnhit(ctx, current, caster.Team, hit, d.ChainRadius)
		if next == nil {
			break
		}
		hit[next.ID] = true
		out := ctx.Damage(caster, next, Scaled(d, caster, next, star), d.DamageType, false, nil)
		result.DamageDone = append(result.DamageDone, out)
		current = next
	}
	return result
}

func nearestUnhit(ctx Context, from *unit.Unit, casterTeam int, hit map[uint64]bool, radius int) *unit.Unit {
	candidates := make([]*unit.Unit, 0)
	for _, u := range ctx.LiveUnitsExcept(from.ID) {
		if hit[u.ID] || u.Team == casterTeam {
			continue
		}
		if radius > 0 && hexgrid.Distance(from.Pos, u.Pos) > radius {
			continue
		}
		candidates = append(candidates, u)
	}
	if len(candidates) == 0 {
		return nil
	}
	sort.Slice(candidates, func(i, j int) bool {
		di, dj := hexgrid.Distance(from.Pos, candidates[i].Pos), hexgrid.Distance(from.Pos, candidates[j].Pos)
		if di != dj {
			return di < dj
		}
		return candidates[i].ID < candidates[j].ID
	})
	return candidates[0]
}

func applyMultiHit(d Descriptor, caster, target *unit.Unit, star int, ctx Context) Result {
	result := Result{Applied: true}
	for i := 0; i < maxInt(d.HitCount, 1); i++ {
		if !target.IsAlive() {
			break
		}
		out := ctx.Damage(caster, target, Scaled(d, caster, target, star), d.DamageType, false, nil)
		result.DamageDone = append(result.DamageDone, out)
		result.Value += out.FinalDamage
	}
	return result
}

func applyDashThrough(d Descriptor, caster, target *unit.Unit, star int, ctx Context) Result {
	path := hexgrid.Line(caster.Pos, target.Pos, d.LineWidth)
	result := Result{Applied: true}
	for _, hex := range path {
		id, ok := ctx.Grid().Occupant(hex)
		if !ok || id == caster.ID {
			continue
		}
		u, ok := ctx.UnitByID(id)
		if !ok || !u.IsAlive() || u.Team == caster.Team {
			continue
		}
		out := ctx.Damage(caster, u, Scaled(d, caster, u, star), d.DamageType, false, nil)
		result.DamageDone = append(result.DamageDone, out)
		result.Value += out.FinalDamage
	}
	return result
}

func applyProjectileSwarm(d Descriptor, caster, target *unit.Unit, star int, ctx Context) Result {
	n := maxInt(d.HitCount, 1)
	for i := 0; i < n; i++ {
		ctx.SpawnProjectile(caster, target, d.ProjectileHoming, d.ProjectileSpeed, d.ProjectileCanMiss, d.ProjectilePayload, star)
	}
	return Result{Applied: true, Value: float64(n)}
}

// applyProjectileSpread spawns the same swarm of projectiles as
// applyProjectileSwarm: every projectile is launched at the same target,
// and no angular spread is applied.
func applyProjectileSpread(d Descriptor, caster, target *unit.Unit, star int, ctx Context) Result {
	return applyProjectileSwarm(d, caster, target, star, ctx)
}

func scheduleRepeats(ctx Context, interval, count int, fn func(Context)) {
	if interval <= 0 {
		interval = 1
	}
	for i := 1; i <= count; i++ {
		ctx.ScheduleDelayed(interval*i, fn)
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
