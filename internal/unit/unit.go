package unit

import "github.com/rentierek/data-driven-autochess/internal/hexgrid"

// Shield is one instance of an absorption pool; multiple shields may be
// active on a unit simultaneously, each expiring independently.
type Shield struct {
	Amount    float64
	TicksLeft int
}

// StackCounter is an item/trait-provided stacking counter keyed by group
// name (e.g. a permanent-stack item's accumulated triggers).
type StackCounter struct {
	Count int
	Cap   int
}

// Unit is a single combatant: identity, position, stat block, resource
// pools, active modifiers, and state machine. Units are arena-indexed by
// stable Id; TargetUnitID is a weak reference resolved through the arena at use
// time, never a live pointer retained across phase boundaries.
type Unit struct {
	ID   uint64
	Team int // 0 or 1
	Star int // 1, 2, or 3

	Pos hexgrid.Coord

	Base      BaseStats
	Modifiers *ModifierSet

	HP     float64
	Shields []Shield

	Mana    float64
	MaxMana float64

	Debuffs *Debuffs
	Buffs   []Buff

	Stacks map[string]*StackCounter

	Machine *StateMachine

	AbilityID string

	TargetSelector  string
	TargetMaxRange  int
	TargetUnitID    uint64
	HasTarget       bool

	// AbilityCritFlag grants crits on ability damage too (item-provided).
	AbilityCritFlag bool

	// OverflowMana makes a cast spend only its cost, keeping mana above it,
	// instead of resetting mana to zero. Either way the mana is taken when
	// the cast starts, not at cast_end.
	OverflowMana bool

	// AttackCooldownTicks counts down between auto-attack windups.
	AttackCooldownTicks int

	// MoveAccum accumulates fractional movement progress each tick a unit
	// is Moving; a hex is consumed once it reaches 1. Slow reduces the
	// per-tick increment, modulating movement the same way it modulates
	// attack speed.
	MoveAccum float64

	// TauntSourceID/TauntTicksLeft override target selection to force this
	// unit's target onto the taunt source for the remaining duration.
	TauntSourceID  uint64
	TauntTicksLeft int

	// ManaReaveMult is added to the next cast's mana cost percent (e.g.
	// 0.5 makes the next cast cost 150% mana), then cleared on cast entry.
	ManaReaveMult float64

	// ReplaceAttacksLeft, when > 0, swaps the next N auto-attacks for the
	// effect payload stored by the effect package (held as an opaque
	// value here to avoid a package import cycle: unit is a leaf package).
	ReplaceAttacksLeft    int
	ReplaceAttacksPayload any
}

// NewUnit constructs a unit at full HP/zero mana in Idle state.
func NewUnit(id uint64, team, star int, pos hexgrid.Coord, base BaseStats) *Unit {
	return &Unit{
		ID:        id,
		Team:      team,
		Star:      star,
		Pos:       pos,
		Base:      base,
		Modifiers: NewModifierSet(),
		HP:        base.MaxHP,
		Debuffs:   NewDebuffs(),
		Stacks:    make(map[string]*StackCounter),
		Machine:   NewStateMachine(),
		MaxMana:   base.MaxMana,
	}
}

// Effective returns the unit's effective value of the given stat.
func (u *Unit) Effective(key StatKey) float64 {
	return u.Modifiers.Effective(u.Base, key)
}

// EffectiveMaxHP returns the unit's effective max HP (base + modifiers).
func (u *Unit) EffectiveMaxHP() float64 { return u.Effective(StatMaxHP) }

// EffectiveArmor and EffectiveMR fold in sunder/shred debuffs per the
// spec's formula: effective = max(0, resistance*(1-pct_shred) - flat_shred).
func (u *Unit) EffectiveArmor() float64 {
	base := u.Effective(StatArmor)
	v := base*(1-u.Debuffs.ArmorShredPct) - u.Debuffs.ArmorShredFlat
	if v < 0 {
		v = 0
	}
	return v
}

func (u *Unit) EffectiveMR() float64 {
	base := u.Effective(StatMR)
	v := base*(1-u.Debuffs.MRShredPct) - u.Debuffs.MRShredFlat
	if v < 0 {
		v = 0
	}
	return v
}

// EffectiveAttackSpeed folds in the slow debuff multiplicatively, then
// reapplies the global attack-speed clamp.
func (u *Unit) EffectiveAttackSpeed() float64 {
	v := u.Effective(StatAttackSpeed) * (1 - u.Debuffs.SlowPct)
	if v < 0.2 {
		v = 0.2
	}
	if v > 5.0 {
		v = 5.0
	}
	return v
}

// IsAlive reports whether the unit has not yet died.
func (u *Unit) IsAlive() bool { return u.Machine.Current != Dead }

// HPPercent returns current HP as a fraction of effective max HP.
func (u *Unit) HPPercent() float64 {
	max := u.EffectiveMaxHP()
	if max <= 0 {
		return 0
	}
	return u.HP / max
}

// TotalShield returns the sum of all active shield pools.
func (u *Unit) TotalShield() float64 {
	total := 0.0
	for _, s := range u.Shields {
		total += s.Amount
	}
	return total
}

// AddShield appends a new, independently-expiring shield instance.
func (u *Unit) AddShield(amount float64, ticks int) {
	u.Shields = append(u.Shields, Shield{Amount: amount, TicksLeft: ticks})
}

// TickShields decrements every shield's timer and drops expired or
// depleted ones in place, following the zero-allocation in-place filter
// idiom used throughout this codebase for expiring entities.
func (u *Unit) TickShields() {
	n := 0
	for _, s := range u.Shields {
		s.TicksLeft--
		if s.TicksLeft > 0 && s.Amount > 0 {
			u.Shields[n] = s
			n++
		}
	}
	u.Shields = u.Shields[:n]
}

// TickBuffs decrements every buff's timer, removing and un-applying
// modifiers for any that expire this tick.
func (u *Unit) TickBuffs() {
	n := 0
	for _, b := range u.Buffs {
		b.TicksLeft--
		if b.TicksLeft > 0 {
			u.Buffs[n] = b
			n++
			continue
		}
		for k, v := range b.FlatDeltas {
			u.Modifiers.RemoveFlat(k, v)
		}
		for k, v := range b.PercentDeltas {
			u.Modifiers.RemovePercent(k, v)
		}
	}
	u.Buffs = u.Buffs[:n]
}

// ApplyBuff applies modifiers immediately and records the buff per its
// stacking policy.
func (u *Unit) ApplyBuff(b Buff) {
	if b.Stack != StackMulti {
		for i := range u.Buffs {
			if u.Buffs[i].ID == b.ID {
				switch b.Stack {
				case StackNone:
					return
				case StackRefresh:
					u.Buffs[i].TicksLeft = b.TicksLeft
					return
				case StackIntensify:
					for k, v := range b.FlatDeltas {
						u.Modifiers.AddFlat(k, v)
						u.Buffs[i].FlatDeltas[k] += v
					}
					for k, v := range b.PercentDeltas {
						u.Modifiers.AddPercent(k, v)
						u.Buffs[i].PercentDeltas[k] += v
					}
					u.Buffs[i].TicksLeft = b.TicksLeft
					return
				}
			}
		}
	}
	for k, v := range b.FlatDeltas {
		u.Modifiers.AddFlat(k, v)
	}
	for k, v := range b.PercentDeltas {
		u.Modifiers.AddPercent(k, v)
	}
	u.Buffs = append(u.Buffs, b)
}

// StackAdd increments a named stack counter up to its cap and returns the
// new count.
func (u *Unit) StackAdd(group string, amount, cap int) int {
	c, ok := u.Stacks[group]
	if !ok {
		c = &StackCounter{Cap: cap}
		u.Stacks[group] = c
	}
	c.Count += amount
	if c.Cap > 0 && c.Count > c.Cap {
		c.Count = c.Cap
	}
	return c.Count
}

// Kill transitions the unit to Dead, clearing its target and leaving its
// hex reachable for the caller to vacate from the grid.
func (u *Unit) Kill() {
	u.Machine.EnterDead()
	u.HasTarget = false
}
