package engine

import (
	"github.com/rentierek/data-driven-autochess/internal/ability"
	"github.com/rentierek/data-driven-autochess/internal/damage"
	"github.com/rentierek/data-driven-autochess/internal/effect"
	"github.com/rentierek/data-driven-autochess/internal/eventlog"
	"github.com/rentierek/data-driven-autochess/internal/hexgrid"
	"github.com/rentierek/data-driven-autochess/internal/projectile"
	"github.com/rentierek/data-driven-autochess/internal/rngx"
	"github.com/rentierek/data-driven-autochess/internal/unit"
)

// This file implements effect.Context, ability.SpawnContext, and
// projectile.Context on *Engine, so the leaf packages reach engine state
// only through these narrow interfaces.

// RNG returns the simulation's single randomness source.
func (e *Engine) RNG() *rngx.Stream { return e.rng }

// Grid returns the occupancy grid.
func (e *Engine) Grid() *hexgrid.Grid { return e.grid }

// CurrentTick returns the tick currently executing.
func (e *Engine) CurrentTick() uint32 { return e.tick }

// LiveUnitsExcept returns every living unit other than exclude.
func (e *Engine) LiveUnitsExcept(exclude uint64) []*unit.Unit {
	out := make([]*unit.Unit, 0, len(e.units))
	for _, u := range e.units {
		if u.ID == exclude || !u.IsAlive() {
			continue
		}
		out = append(out, u)
	}
	return out
}

// UnitByID resolves a weak unit reference through the arena.
func (e *Engine) UnitByID(id uint64) (*unit.Unit, bool) {
	u, ok := e.byID[id]
	return u, ok
}

// Damage runs the shared pipeline and records the resulting event, killing
// the defender if it drops to zero HP.
func (e *Engine) Damage(attacker, defender *unit.Unit, base float64, kind damage.Type, isAuto bool, amplifiers []float64) damage.Result {
	res := damage.Resolve(damage.Input{
		Attacker:     attacker,
		Defender:     defender,
		BaseDamage:   base,
		Kind:         kind,
		IsAutoAttack: isAuto,
		Amplifiers:   amplifiers,
	}, e.rng)

	e.log.EmitSimple(e.tick, eventlog.KindUnitDamage, attacker.ID, true, defender.ID, map[string]any{
		"crit": res.Crit, "dodged": res.Dodged, "final_damage": res.FinalDamage, "hp_lost": res.HPLost,
	})

	if !res.Dodged && res.FinalDamage > 0 {
		e.fireOnTakeDamage(defender, attacker)
	}
	if defender.HP <= 0 && defender.IsAlive() {
		e.KillUnit(defender)
	}
	return res
}

// SpawnProjectile enqueues a single-target projectile carrying payload.
// Ability-level AoE-on-impact projectiles go through SpawnAbilityProjectile
// instead, since they carry extra radius/affiliation parameters this
// narrower signature has no room for.
func (e *Engine) SpawnProjectile(source, target *unit.Unit, homing bool, speed float64, canMiss bool, payload []effect.Descriptor, star int) {
	p := &projectile.Projectile{
		ID:              e.nextProjID,
		SourceID:        source.ID,
		TargetID:        target.ID,
		LaunchTargetHex: target.Pos,
		Homing:          homing,
		Speed:           speed,
		CanMiss:         canMiss,
		Payload:         payload,
		Star:            star,
		Affiliation:     projectile.AffiliationEnemies,
	}
	e.nextProjID++
	e.proj.Spawn(p, source)
	e.log.EmitSimple(e.tick, eventlog.KindProjectileSpawn, source.ID, true, target.ID, nil)
}

// SpawnAbilityProjectile spawns a projectile carrying an ability's full
// delivery parameters, including AoE-on-impact radius and affiliation.
func (e *Engine) SpawnAbilityProjectile(def ability.Definition, source, initialTarget *unit.Unit, star int) {
	speed := def.ProjectileSpeed
	if speed <= 0 {
		speed = 1
	}
	p := &projectile.Projectile{
		ID:              e.nextProjID,
		SourceID:        source.ID,
		TargetID:        initialTarget.ID,
		LaunchTargetHex: initialTarget.Pos,
		Homing:          def.ProjectileHoming,
		Speed:           speed,
		CanMiss:         def.ProjectileCanMiss,
		Payload:         def.Effects,
		Star:            star,
		AreaRadius:      def.Radius,
		Affiliation:     projectileAffiliation(def.Affiliation),
	}
	e.nextProjID++
	e.proj.Spawn(p, source)
	e.log.EmitSimple(e.tick, eventlog.KindProjectileSpawn, source.ID, true, initialTarget.ID, nil)
}

func projectileAffiliation(a ability.Affiliation) projectile.Affiliation {
	switch a {
	case ability.AffiliationAllies:
		return projectile.AffiliationAllies
	case ability.AffiliationAll:
		return projectile.AffiliationAll
	default:
		return projectile.AffiliationEnemies
	}
}

// ScheduleDelayed registers fn to run delayTicks ticks from now.
func (e *Engine) ScheduleDelayed(delayTicks int, fn func(effect.Context)) {
	if delayTicks < 0 {
		delayTicks = 0
	}
	key := e.tick + uint32(delayTicks)
	e.delayed[key] = append(e.delayed[key], fn)
}

// EmitEffect records an ABILITY_EFFECT event.
func (e *Engine) EmitEffect(kind effect.Kind, casterID, targetID uint64, value float64) {
	e.log.EmitSimple(e.tick, eventlog.KindAbilityEffect, casterID, targetID != 0, targetID, map[string]any{
		"kind": int(kind), "value": value,
	})
}

// KillUnit transitions u to Dead and frees its grid hex. A no-op if u is
// already dead, so repeated kill attempts (e.g. overlapping AoE ticks) are
// harmless.
func (e *Engine) KillUnit(u *unit.Unit) {
	if !u.IsAlive() {
		return
	}
	u.Kill()
	e.grid.Vacate(u.Pos, u.ID)
	e.log.EmitSimple(e.tick, eventlog.KindUnitDeath, u.ID, false, 0, nil)
}

// MoveUnit relocates u to dest if walkable, updating grid occupancy.
func (e *Engine) MoveUnit(u *unit.Unit, dest hexgrid.Coord) bool {
	if !hexgrid.InBounds(dest) || !e.grid.IsWalkable(dest) {
		return false
	}
	prev := u.Pos
	e.grid.Move(prev, dest, u.ID)
	u.Pos = dest
	e.log.EmitSimple(e.tick, eventlog.KindUnitMove, u.ID, false, 0, nil)
	return true
}

// ApplyEffects applies a projectile's payload to its resolved target —
// projectile.Context's hook into the effect registry.
func (e *Engine) ApplyEffects(descs []effect.Descriptor, source, target *unit.Unit, star int) {
	for _, d := range descs {
		effect.Apply(d, source, target, star, e)
	}
}

// RecordHit logs a projectile impact.
func (e *Engine) RecordHit(p *projectile.Projectile, target *unit.Unit) {
	e.log.EmitSimple(e.tick, eventlog.KindProjectileHit, p.SourceID, true, target.ID, nil)
}

// RecordMiss logs a projectile that resolved without striking anything.
func (e *Engine) RecordMiss(p *projectile.Projectile) {
	e.log.EmitSimple(e.tick, eventlog.KindProjectileMiss, p.SourceID, true, p.TargetID, nil)
}
