// Package engine ties the leaf packages (hexgrid, pathfind, rngx, unit,
// target, damage, effect, ability, projectile, eventlog) together into the
// six-phase tick scheduler that drives one battle from placement to
// SIMULATION_END.
package engine

import (
	"github.com/rentierek/data-driven-autochess/internal/ability"
	"github.com/rentierek/data-driven-autochess/internal/target"
	"github.com/rentierek/data-driven-autochess/internal/unit"
)

// UnitTemplate is the engine-facing shape of a loaded unit definition: the
// loader (internal/config) is responsible for turning a YAML record into
// one of these before calling AddUnit.
type UnitTemplate struct {
	Base               unit.BaseStats
	AbilityID          string
	DefaultSelector    target.Policy
	SelectorRange      int
	ClassManaMultiplier float64
	AttackRange        int

	// Traits lists the composition tags this unit contributes toward trait
	// threshold counting (see AttachTraitManager).
	Traits []string
}

// Defaults bundles the tick rate, mana formula, and timing defaults a
// loaded configuration supplies (spec §6). Only TickRate and MaxTicks are
// read by the engine; the mana-formula, crit and cast-time fields are
// carried but not applied (internal/damage uses its own constants).
type Defaults struct {
	TickRate           int
	MaxTicks           uint32
	AttackManaBase     float64
	CritDamage         float64
	ManaGainPre        float64
	ManaGainPost       float64
	ManaGainCap        float64
	DefaultCastStart   int
	DefaultEffectPoint int
	DefaultCastEnd     int
}

// DefaultDefaults returns the battle's default tuning parameters.
func DefaultDefaults() Defaults {
	return Defaults{
		TickRate:           30,
		MaxTicks:           3000,
		AttackManaBase:     10,
		CritDamage:         0.5,
		ManaGainPre:        0.01,
		ManaGainPost:       0.03,
		ManaGainCap:        42.5,
		DefaultCastStart:   10,
		DefaultEffectPoint: 5,
		DefaultCastEnd:     5,
	}
}

// ItemApplication is the engine-facing shape of an equipped item: stat
// mods applied immediately, plus conditional damage amplifiers and
// triggered effects consulted by the damage pipeline and effect registry.
type ItemApplication struct {
	// ID is the item's catalog identifier, used by AttachItemManager.
	ID string

	FlatMods    map[unit.StatKey]float64
	PercentMods map[unit.StatKey]float64

	// ConditionalAmplifiers are extra multiplicative damage bonuses that
	// apply only when Predicate holds for the current hit.
	ConditionalAmplifiers []ConditionalAmplifier

	// AbilityCritFlag grants ability crits when true (spec 4.7 step 2).
	AbilityCritFlag bool

	// OnHit/OnTakeDamage triggers fire after the damage pipeline resolves,
	// applying the named ability's effect list to the given target kind.
	OnHitEffects       []AbilityEffectTrigger
	OnTakeDamageEffects []AbilityEffectTrigger
}

// AbilityEffectTrigger names an ability whose effect list fires as an
// item's on-hit or on-take-damage reaction.
type AbilityEffectTrigger struct {
	AbilityID string
}

// ConditionalAmplifier is a damage amplifier that only applies when
// Predicate(targetHP, targetMaxHP) holds — e.g. "+20% vs targets above
// 1600 HP" becomes Predicate: func(hp, max float64) bool { return hp > 1600 }.
type ConditionalAmplifier struct {
	Amount    float64
	Predicate func(targetHP, targetMaxHP float64) bool
}

// abilityTable is the set of loaded ability definitions keyed by id.
type abilityTable map[string]ability.Definition
