// Package ability defines ability descriptors and resolves their
// effect-point delivery: instant, projectile, or area.
package ability

import (
	"github.com/rentierek/data-driven-autochess/internal/effect"
	"github.com/rentierek/data-driven-autochess/internal/hexgrid"
	"github.com/rentierek/data-driven-autochess/internal/target"
	"github.com/rentierek/data-driven-autochess/internal/unit"
)

// Delivery names how an ability's effects reach their targets.
type Delivery int

const (
	DeliveryInstant Delivery = iota
	DeliveryProjectile
	DeliveryArea
)

// AreaShape names the hex-set shape an area ability covers.
type AreaShape int

const (
	ShapeCircle AreaShape = iota
	ShapeCone
	ShapeLine
)

// Affiliation filters who an area/projectile-AoE payload can strike.
type Affiliation int

const (
	AffiliationEnemies Affiliation = iota
	AffiliationAllies
	AffiliationAll
)

// Definition is a reference ability: mana cost, cast timing per star,
// delivery kind, target selector, and its ordered effect list.
type Definition struct {
	ID string

	ManaCost float64

	// CastStartTicks/EffectPointTicks/CastEndTicks are per-star tick
	// counts for the three cast sub-phases.
	CastStartTicks   [3]int
	EffectPointTicks [3]int
	CastEndTicks     [3]int

	Delivery Delivery

	Selector      target.Policy
	SelectorStat  unit.StatKey
	SelectorRange int
	ClusterRange  int

	Affiliation Affiliation

	// Projectile-delivery parameters.
	ProjectileSpeed   float64
	ProjectileHoming  bool
	ProjectileCanMiss bool
	ProjectileCount   int // > 1 for swarm/spread

	// Area-delivery parameters.
	Shape            AreaShape
	Radius           int
	ConeHalfAngleDeg float64
	LineWidth        int
	SelfCentred      bool

	Effects []effect.Descriptor
}

// SpawnContext is the slice of engine state ability resolution needs
// beyond what effect.Context already provides: spawning projectiles with
// ability-level AoE/affiliation parameters attached.
type SpawnContext interface {
	effect.Context
	SpawnAbilityProjectile(def Definition, source, initialTarget *unit.Unit, star int)
}

// ResolveEffectPoint runs at a cast's effect_point tick: it computes the
// primary target set per the ability's selector/shape and delivery mode,
// then applies (or spawns projectiles for) the effect list.
func ResolveEffectPoint(def Definition, caster *unit.Unit, star int, ctx SpawnContext) {
	switch def.Delivery {
	case DeliveryInstant:
		resolveInstant(def, caster, star, ctx)
	case DeliveryProjectile:
		resolveProjectile(def, caster, star, ctx)
	case DeliveryArea:
		resolveArea(def, caster, star, ctx)
	}
}

func resolveInstant(def Definition, caster *unit.Unit, star int, ctx SpawnContext) {
	primary := pickPrimaryTarget(def, caster, ctx)
	if primary == nil {
		return
	}
	for _, e := range def.Effects {
		effect.Apply(e, caster, primary, star, ctx)
	}
}

func resolveProjectile(def Definition, caster *unit.Unit, star int, ctx SpawnContext) {
	primary := pickPrimaryTarget(def, caster, ctx)
	if primary == nil {
		return
	}
	count := def.ProjectileCount
	if count < 1 {
		count = 1
	}
	for i := 0; i < count; i++ {
		ctx.SpawnAbilityProjectile(def, caster, primary, star)
	}
}

func resolveArea(def Definition, caster *unit.Unit, star int, ctx SpawnContext) {
	var anchor hexgrid.Coord
	if def.SelfCentred {
		anchor = caster.Pos
	} else {
		primary := pickPrimaryTarget(def, caster, ctx)
		if primary == nil {
			return
		}
		anchor = primary.Pos
	}

	hexes := shapeHexes(def, caster.Pos, anchor)
	for _, h := range hexes {
		id, ok := ctx.Grid().Occupant(h)
		if !ok {
			continue
		}
		occ, ok := ctx.UnitByID(id)
		if !ok || !occ.IsAlive() {
			continue
		}
		if !affiliationMatches(def.Affiliation, caster, occ) {
			continue
		}
		for _, e := range def.Effects {
			effect.Apply(e, caster, occ, star, ctx)
		}
	}
}

func shapeHexes(def Definition, casterPos, anchor hexgrid.Coord) []hexgrid.Coord {
	switch def.Shape {
	case ShapeCone:
		return hexgrid.Cone(casterPos, anchor, def.Radius, def.ConeHalfAngleDeg)
	case ShapeLine:
		return hexgrid.Line(casterPos, anchor, def.LineWidth)
	default:
		return hexgrid.Circle(anchor, def.Radius)
	}
}

func pickPrimaryTarget(def Definition, caster *unit.Unit, ctx SpawnContext) *unit.Unit {
	pool := candidatePool(def.Affiliation, caster, ctx)
	if len(pool) == 0 {
		return nil
	}
	p := target.Params{MaxRange: def.SelectorRange, Stat: def.SelectorStat, ClusterRange: def.ClusterRange}
	return target.Select(def.Selector, caster, pool, ctx.Grid(), ctx.RNG(), p, caster.TargetUnitID, caster.HasTarget)
}

func candidatePool(aff Affiliation, caster *unit.Unit, ctx SpawnContext) []*unit.Unit {
	all := ctx.LiveUnitsExcept(caster.ID)
	out := make([]*unit.Unit, 0, len(all))
	for _, u := range all {
		if affiliationMatches(aff, caster, u) {
			out = append(out, u)
		}
	}
	return out
}

func affiliationMatches(aff Affiliation, caster, candidate *unit.Unit) bool {
	switch aff {
	case AffiliationAllies:
		return candidate.Team == caster.Team
	case AffiliationAll:
		return true
	default:
		return candidate.Team != caster.Team
	}
}
