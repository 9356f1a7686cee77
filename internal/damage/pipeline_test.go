package damage

import (
	"math"
	"testing"

	"github.com/rentierek/data-driven-autochess/internal/hexgrid"
	"github.com/rentierek/data-driven-autochess/internal/rngx"
	"github.com/rentierek/data-driven-autochess/internal/unit"
)

func newCombatant(maxHP, armor, mr float64) *unit.Unit {
	return unit.NewUnit(1, 0, 1, hexgrid.Coord{}, unit.BaseStats{MaxHP: maxHP, Armor: armor, MR: mr})
}

func TestArmorReduction(t *testing.T) {
	cases := []struct {
		armor    float64
		wantPct  float64
	}{
		{0, 0},
		{50, 1.0 / 3},
		{100, 0.5},
		{200, 2.0 / 3},
	}
	for _, c := range cases {
		attacker := newCombatant(1000, 0, 0)
		attacker.Base.CritChance = 0
		defender := newCombatant(1000, c.armor, 0)
		rng := rngx.New(1)

		res := Resolve(Input{
			Attacker:   attacker,
			Defender:   defender,
			BaseDamage: 100,
			Kind:       Physical,
		}, rng)

		wantFinal := 100 * (1 - c.wantPct)
		if math.Abs(res.FinalDamage-wantFinal) > 0.01 {
			t.Fatalf("armor %v: final damage = %v, want %v", c.armor, res.FinalDamage, wantFinal)
		}
	}
}

func TestManaFormula(t *testing.T) {
	attacker := newCombatant(1000, 0, 0)
	defender := newCombatant(1000, 100.0/3, 0) // reduces raw 200 to mitigated 150
	rng := rngx.New(1)

	res := Resolve(Input{
		Attacker:   attacker,
		Defender:   defender,
		BaseDamage: 200,
		Kind:       Physical,
	}, rng)

	if math.Abs(res.RawDamage-200) > 0.01 {
		t.Fatalf("raw damage = %v, want 200", res.RawDamage)
	}
	if math.Abs(res.FinalDamage-150) > 0.5 {
		t.Fatalf("final damage = %v, want ~150", res.FinalDamage)
	}
	wantGain := math.Min(defaultManaGainCap, 200*defaultManaGainPre+res.FinalDamage*defaultManaGainPost)
	if math.Abs(res.ManaGained-wantGain) > 0.1 {
		t.Fatalf("mana gained = %v, want %v", res.ManaGained, wantGain)
	}
}

func TestShieldAbsorbsBeforeHP(t *testing.T) {
	attacker := newCombatant(1000, 0, 0)
	defender := newCombatant(1000, 0, 0)
	defender.AddShield(40, 100)

	res := Resolve(Input{
		Attacker:   attacker,
		Defender:   defender,
		BaseDamage: 100,
		Kind:       True,
	}, rngx.New(1))

	if res.ShieldUsed != 40 {
		t.Fatalf("shield used = %v, want 40", res.ShieldUsed)
	}
	if res.HPLost != 60 {
		t.Fatalf("hp lost = %v, want 60", res.HPLost)
	}
	if defender.HP != 940 {
		t.Fatalf("defender hp = %v, want 940", defender.HP)
	}
}

func TestHealRespectsWound(t *testing.T) {
	target := newCombatant(1000, 0, 0)
	target.HP = 500
	target.Debuffs.ApplyWound(0.33, 90)

	healed := ApplyHeal(target, 100)
	if math.Abs(healed-67) > 0.01 {
		t.Fatalf("healed = %v, want 67", healed)
	}
}

func TestDodgeShortCircuits(t *testing.T) {
	attacker := newCombatant(1000, 0, 0)
	attacker.Base.Lifesteal = 0.5
	defender := newCombatant(1000, 0, 0)
	defender.Base.DodgeChance = 1.0

	res := Resolve(Input{
		Attacker:     attacker,
		Defender:     defender,
		BaseDamage:   100,
		Kind:         Physical,
		IsAutoAttack: true,
	}, rngx.New(1))

	if !res.Dodged {
		t.Fatal("expected dodge")
	}
	if res.FinalDamage != 0 || res.ManaGained != 0 || res.Lifesteal != 0 {
		t.Fatalf("dodged hit should produce zero damage/mana/lifesteal, got %+v", res)
	}
	if defender.HP != defender.EffectiveMaxHP() {
		t.Fatal("dodged hit should not change defender HP")
	}
}

func TestAmplifiersAreMultiplicative(t *testing.T) {
	attacker := newCombatant(1000, 0, 0)
	defender := newCombatant(1000, 0, 0)

	res := Resolve(Input{
		Attacker:   attacker,
		Defender:   defender,
		BaseDamage: 100,
		Kind:       True,
		Amplifiers: []float64{0.2, 0.1},
	}, rngx.New(1))

	want := 100 * 1.2 * 1.1
	if math.Abs(res.FinalDamage-want) > 0.01 {
		t.Fatalf("final damage = %v, want %v", res.FinalDamage, want)
	}
}

func TestDurabilityCapsAtNinetyPercent(t *testing.T) {
	attacker := newCombatant(1000, 0, 0)
	defender := newCombatant(1000, 0, 0)

	res := Resolve(Input{
		Attacker:      attacker,
		Defender:      defender,
		BaseDamage:    100,
		Kind:          True,
		DurabilitySum: 2.0, // should clamp to 0.9
	}, rngx.New(1))

	if math.Abs(res.FinalDamage-10) > 0.01 {
		t.Fatalf("final damage = %v, want 10 (90%% reduction cap)", res.FinalDamage)
	}
}
