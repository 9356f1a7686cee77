package unit

// StatKey names a scalar stat that can carry flat and percent modifiers.
type StatKey string

const (
	StatMaxHP       StatKey = "max_hp"
	StatAD          StatKey = "ad"
	StatAP          StatKey = "ap"
	StatArmor       StatKey = "armor"
	StatMR          StatKey = "mr"
	StatAttackSpeed StatKey = "attack_speed"
	StatCritChance  StatKey = "crit_chance"
	StatCritDamage  StatKey = "crit_damage"
	StatDodgeChance StatKey = "dodge_chance"
	StatRange       StatKey = "range"
	StatMaxMana     StatKey = "max_mana"
	StatLifesteal   StatKey = "lifesteal"
	StatOmnivamp    StatKey = "omnivamp"
)

// clampRanges bounds effective stats that the spec calls out explicitly;
// stats not listed are unclamped.
var clampRanges = map[StatKey][2]float64{
	StatAttackSpeed: {0.2, 5.0},
	StatCritChance:  {0, 1},
	StatDodgeChance: {0, 1},
}

// BaseStats is the unmodified stat block a unit is configured with.
type BaseStats struct {
	MaxHP       float64
	AD          float64
	AP          float64
	Armor       float64
	MR          float64
	AttackSpeed float64
	CritChance  float64
	CritDamage  float64
	DodgeChance float64
	Range       int
	MaxMana     float64
	Lifesteal   float64
	Omnivamp    float64
}

func (b BaseStats) value(key StatKey) float64 {
	switch key {
	case StatMaxHP:
		return b.MaxHP
	case StatAD:
		return b.AD
	case StatAP:
		return b.AP
	case StatArmor:
		return b.Armor
	case StatMR:
		return b.MR
	case StatAttackSpeed:
		return b.AttackSpeed
	case StatCritChance:
		return b.CritChance
	case StatCritDamage:
		return b.CritDamage
	case StatDodgeChance:
		return b.DodgeChance
	case StatRange:
		return float64(b.Range)
	case StatMaxMana:
		return b.MaxMana
	case StatLifesteal:
		return b.Lifesteal
	case StatOmnivamp:
		return b.Omnivamp
	default:
		return 0
	}
}

// ModifierSet accumulates flat and percent modifiers per stat, contributed
// by items, traits, and buffs. Modifiers are additive within each kind and
// combined as effective = (base + Σflat) × (1 + Σpercent).
type ModifierSet struct {
	flat    map[StatKey]float64
	percent map[StatKey]float64
}

// NewModifierSet returns an empty modifier accumulator.
func NewModifierSet() *ModifierSet {
	return &ModifierSet{flat: make(map[StatKey]float64), percent: make(map[StatKey]float64)}
}

// AddFlat adds a flat delta to key.
func (m *ModifierSet) AddFlat(key StatKey, delta float64) { m.flat[key] += delta }

// AddPercent adds a percent delta (0.2 == +20%) to key.
func (m *ModifierSet) AddPercent(key StatKey, delta float64) { m.percent[key] += delta }

// RemoveFlat subtracts a previously-added flat delta (used when a buff
// expires or an item is unequipped).
func (m *ModifierSet) RemoveFlat(key StatKey, delta float64) { m.flat[key] -= delta }

// RemovePercent subtracts a previously-added percent delta.
func (m *ModifierSet) RemovePercent(key StatKey, delta float64) { m.percent[key] -= delta }

// Effective returns the effective value of key given base and this
// modifier set, clamped to the stat's declared range if one exists.
func (m *ModifierSet) Effective(base BaseStats, key StatKey) float64 {
	v := (base.value(key) + m.flat[key]) * (1 + m.percent[key])
	if r, ok := clampRanges[key]; ok {
		if v < r[0] {
			v = r[0]
		}
		if v > r[1] {
			v = r[1]
		}
	}
	return v
}
