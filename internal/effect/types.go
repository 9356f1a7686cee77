// Package effect is the data-driven effect registry: effect descriptors are
// a sealed tagged union (Kind + kind-specific fields), and application is
// an exhaustive switch over Kind rather than a string-keyed lookup table —
// the registry is closed and known at compile time, per the tagged-union
// approach a statically typed port of a dynamic dispatch table calls for.
package effect

import (
	"github.com/rentierek/data-driven-autochess/internal/damage"
	"github.com/rentierek/data-driven-autochess/internal/unit"
)

// Kind names one of the recognised effect kinds.
type Kind int

const (
	KindDamage Kind = iota
	KindHybridDamage
	KindDoT
	KindBurn
	KindExecute
	KindPercentHPDamage
	KindSplashDamage
	KindRicochet
	KindMultiHit
	KindDashThrough
	KindProjectileSwarm
	KindProjectileSpread

	KindSunder
	KindShred

	KindStun
	KindSlow
	KindChill
	KindSilence
	KindDisarm
	KindKnockback
	KindPull
	KindTaunt

	KindHeal
	KindHealOverTime
	KindShield
	KindShieldSelf
	KindBuff
	KindBuffTeam
	KindDecayingBuff
	KindStackingBuff
	KindManaGrant
	KindCleanse

	KindDash

	KindEffectGroup
	KindCreateZone
	KindIntervalTrigger
	KindPermanentStack
	KindManaReave
	KindReplaceAttacks
	KindTransform
	KindTransformAfterCasts
	KindEscalatingAbility
)

// ScalingKey names what a per-star value scales against, per spec 4.8.
type ScalingKey string

const (
	ScaleNone       ScalingKey = ""
	ScaleAD         ScalingKey = "ad"
	ScaleAP         ScalingKey = "ap"
	ScaleArmor      ScalingKey = "armor"
	ScaleMR         ScalingKey = "mr"
	ScaleMaxHP      ScalingKey = "max_hp"
	ScaleMissingHP  ScalingKey = "missing_hp"
	ScaleCasterHP   ScalingKey = "caster_hp"
)

// Descriptor is the tagged-union effect record loaded from configuration.
// Not every field applies to every Kind; the loader (internal/config)
// rejects unknown kind names at load time but does not check which fields
// a given Kind uses.
type Descriptor struct {
	Kind Kind

	// Values holds the per-star value array; ValueAt resolves value[star-1].
	Values [3]float64
	ScalesOn ScalingKey
	// TargetsDefenderStat is set when ScalesOn is max_hp/missing_hp and the
	// scaling should read the *target's* stat rather than the caster's.
	TargetsDefenderStat bool

	DamageType damage.Type

	DurationTicks int
	IntervalTicks int

	Radius int
	ConeHalfAngleDeg float64
	LineWidth int

	ChainCount int
	ChainRadius int

	HitCount int

	StatKey unit.StatKey
	Pct     float64
	Flat    float64

	Buff BuffTemplate

	StackGroup string
	StackCap   int

	KnockbackHexes int

	ManaAmount float64

	ReplaceCount int
	ReplaceEffects []Descriptor

	Nested []Descriptor

	NextAbilityID    string
	CastThreshold    int

	ZoneEffect *Descriptor

	ProjectileSpeed   float64
	ProjectileHoming  bool
	ProjectileCanMiss bool
	ProjectilePayload []Descriptor
}

// BuffTemplate is the payload of a buff/buff_team/decaying_buff/stacking_buff
// effect: flat/percent deltas and a duration.
type BuffTemplate struct {
	ID            string
	FlatDeltas    map[unit.StatKey]float64
	PercentDeltas map[unit.StatKey]float64
	DurationTicks int
	Stack         unit.StackPolicy
}

// ValueAt resolves the per-star value for star (1..3).
func (d Descriptor) ValueAt(star int) float64 {
	if star < 1 {
		star = 1
	}
	if star > 3 {
		star = 3
	}
	return d.Values[star-1]
}

// Scaled resolves d's per-star value scaled against caster/target per 4.8.
func Scaled(d Descriptor, caster, target *unit.Unit, star int) float64 {
	base := d.ValueAt(star)
	if d.ScalesOn == ScaleNone {
		return base
	}
	ratio := scalingStat(d, caster, target) / 100
	return base * ratio
}

func scalingStat(d Descriptor, caster, target *unit.Unit) float64 {
	switch d.ScalesOn {
	case ScaleAD:
		return caster.Effective(unit.StatAD)
	case ScaleAP:
		return caster.Effective(unit.StatAP)
	case ScaleArmor:
		return caster.Effective(unit.StatArmor)
	case ScaleMR:
		return caster.Effective(unit.StatMR)
	case ScaleCasterHP:
		return caster.HP
	case ScaleMissingHP:
		subject := caster
		if d.TargetsDefenderStat && target != nil {
			subject = target
		}
		return subject.EffectiveMaxHP() - subject.HP
	case ScaleMaxHP:
		subject := caster
		if d.TargetsDefenderStat && target != nil {
			subject = target
		}
		return subject.EffectiveMaxHP()
	default:
		return 0
	}
}

// Result is what every effect application returns: whether it took effect,
// the numeric value actually applied, and any side-effect damage results
// that should funnel back through the event logger.
type Result struct {
	Applied    bool
	Value      float64
	DamageDone []damage.Result
}
