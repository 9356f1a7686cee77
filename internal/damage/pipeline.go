// Package damage implements the ordered damage-resolution pipeline shared
// by auto-attacks, ability damage, DoT/burn ticks, and projectile hits.
package damage

import (
	"github.com/rentierek/data-driven-autochess/internal/rngx"
	"github.com/rentierek/data-driven-autochess/internal/unit"
)

// Type distinguishes which resistance a hit is mitigated by.
type Type int

const (
	Physical Type = iota
	Magical
	True
)

// Input describes one damage event before the pipeline runs.
type Input struct {
	Attacker     *unit.Unit
	Defender     *unit.Unit
	BaseDamage   float64
	Kind         Type
	IsAutoAttack bool
	// Amplifiers are multiplicative bonuses (0.2 == +20%), applied in the
	// order supplied (see the ordering decision in DESIGN.md). The engine
	// supplies only conditional item amplifiers, and only for auto-attacks;
	// ability and damage-over-time damage gets none, and no buff- or
	// trait-sourced amplifiers are collected.
	Amplifiers []float64
	// DurabilitySum is the sum of active durability reductions, capped at
	// 0.9 total.
	DurabilitySum float64
}

const (
	defaultCritDamage     = 0.5
	defaultManaGainPre    = 0.01
	defaultManaGainPost   = 0.03
	defaultManaGainCap    = 42.5
	defaultAttackManaBase = 10.0
)

// Result is the outcome of running the pipeline once.
type Result struct {
	RawDamage   float64 // pre-mitigation, used for mana gain
	FinalDamage float64 // post shield/HP split total
	Crit        bool
	Dodged      bool
	ShieldUsed  float64
	HPLost      float64
	ManaGained  float64 // mana gained by the defender from this hit
	Lifesteal   float64 // HP restored to the attacker
	Omnivamp    float64 // HP restored to the attacker
}

// Resolve runs the full eight-step pipeline and mutates the defender's HP
// and shield pool (and the attacker's HP via lifesteal/omnivamp). It does
// not mutate mana directly — the caller applies ManaGained, since mana
// gain is suppressed while the defender is Casting.
func Resolve(in Input, rng *rngx.Stream) Result {
	res := Result{}

	dmg := in.BaseDamage

	if in.IsAutoAttack {
		critChance := in.Attacker.Effective(unit.StatCritChance)
		if rng.Roll(critChance) {
			res.Crit = true
			dmg *= 1 + defaultCritDamage
		}
	} else if in.Attacker.AbilityCritFlag {
		critChance := in.Attacker.Effective(unit.StatCritChance)
		if rng.Roll(critChance) {
			res.Crit = true
			dmg *= 1 + defaultCritDamage
		}
	}

	if in.IsAutoAttack {
		dodgeChance := in.Defender.Effective(unit.StatDodgeChance)
		if rng.Roll(dodgeChance) {
			res.Dodged = true
			return res
		}
	}

	res.RawDamage = dmg

	mitigated := dmg
	switch in.Kind {
	case Physical:
		r := in.Defender.EffectiveArmor()
		mitigated *= 1 - (r / (r + 100))
	case Magical:
		r := in.Defender.EffectiveMR()
		mitigated *= 1 - (r / (r + 100))
	case True:
		// bypasses both resistances
	}

	ampProduct := 1.0
	for _, a := range in.Amplifiers {
		ampProduct *= 1 + a
	}
	mitigated *= ampProduct

	durability := in.DurabilitySum
	if durability > 0.9 {
		durability = 0.9
	}
	mitigated *= 1 - durability

	if mitigated < 0 {
		mitigated = 0
	}

	shieldAvailable := in.Defender.TotalShield()
	shieldUsed := mitigated
	if shieldUsed > shieldAvailable {
		shieldUsed = shieldAvailable
	}
	hpLost := mitigated - shieldUsed

	applyShieldReduction(in.Defender, shieldUsed)
	in.Defender.HP -= hpLost
	if in.Defender.HP < 0 {
		in.Defender.HP = 0
	}

	res.FinalDamage = mitigated
	res.ShieldUsed = shieldUsed
	res.HPLost = hpLost

	res.ManaGained = res.RawDamage*defaultManaGainPre + res.FinalDamage*defaultManaGainPost
	if res.ManaGained > defaultManaGainCap {
		res.ManaGained = defaultManaGainCap
	}

	if in.Kind == Physical {
		ls := in.Attacker.Effective(unit.StatLifesteal)
		res.Lifesteal = res.FinalDamage * ls
	}
	ov := in.Attacker.Effective(unit.StatOmnivamp)
	res.Omnivamp = res.FinalDamage * ov

	healed := res.Lifesteal + res.Omnivamp
	if healed > 0 {
		in.Attacker.HP += healed
		max := in.Attacker.EffectiveMaxHP()
		if in.Attacker.HP > max {
			in.Attacker.HP = max
		}
	}

	return res
}

// applyShieldReduction spends amount against the defender's shield pool,
// oldest shield first, zeroing depleted shields in place.
func applyShieldReduction(u *unit.Unit, amount float64) {
	remaining := amount
	for i := range u.Shields {
		if remaining <= 0 {
			break
		}
		if u.Shields[i].Amount >= remaining {
			u.Shields[i].Amount -= remaining
			remaining = 0
		} else {
			remaining -= u.Shields[i].Amount
			u.Shields[i].Amount = 0
		}
	}
}

// AttackManaGain returns the mana a unit gains for landing an auto-attack.
func AttackManaGain(classMultiplier float64) float64 {
	if classMultiplier <= 0 {
		classMultiplier = 1
	}
	return defaultAttackManaBase * classMultiplier
}

// ApplyHeal applies a heal to target, respecting the wound debuff, and
// returns the amount actually restored.
func ApplyHeal(target *unit.Unit, amount float64) float64 {
	effective := amount * (1 - target.Debuffs.WoundPct)
	target.HP += effective
	max := target.EffectiveMaxHP()
	if target.HP > max {
		target.HP = max
	}
	return effective
}
