package unit

// StackPolicy controls what happens when a buff with the same Id is
// applied while one is already active.
type StackPolicy int

const (
	StackNone      StackPolicy = iota // ignore the new application
	StackRefresh                      // reset remaining ticks, keep one instance
	StackIntensify                    // sum deltas, reset remaining ticks
	StackMulti                        // keep as a separate, independently-expiring instance
)

// Buff is a timed stat modifier applied to a unit.
type Buff struct {
	ID            string
	FlatDeltas    map[StatKey]float64
	PercentDeltas map[StatKey]float64
	TicksLeft     int
	Stack         StackPolicy
	SourceUnitID  uint64
}

// Debuffs holds the fixed set of named debuff records a unit can carry.
// Sunder/shred refresh by taking the max value and max remaining ticks,
// never summing (spec-mandated refresh behaviour).
type Debuffs struct {
	BurnDPS       float64
	BurnTicksLeft int

	WoundPct       float64
	WoundTicksLeft int

	ArmorShredPct   float64
	ArmorShredFlat  float64
	ArmorShredTicks int

	MRShredPct   float64
	MRShredFlat  float64
	MRShredTicks int

	SlowPct       float64
	SlowTicksLeft int

	StunTicksLeft    int
	SilenceTicksLeft int
	DisarmTicksLeft  int
}

// NewDebuffs returns a zeroed debuff record set.
func NewDebuffs() *Debuffs { return &Debuffs{} }

// ApplyBurn refreshes (does not stack) the burn DoT: the higher DPS wins,
// and the longer remaining duration wins, independently.
func (d *Debuffs) ApplyBurn(dps float64, ticks int) {
	if dps > d.BurnDPS {
		d.BurnDPS = dps
	}
	if ticks > d.BurnTicksLeft {
		d.BurnTicksLeft = ticks
	}
}

// ApplyWound sets wound to the stronger of the current and new value and
// extends to the longer duration.
func (d *Debuffs) ApplyWound(pct float64, ticks int) {
	if pct > d.WoundPct {
		d.WoundPct = pct
	}
	if ticks > d.WoundTicksLeft {
		d.WoundTicksLeft = ticks
	}
}

// ApplySunder refreshes armor shred per the spec's max-value, max-duration
// rule: new value = max(old, new), new ticks = max(old, new).
func (d *Debuffs) ApplySunder(pct, flat float64, ticks int) {
	if pct > d.ArmorShredPct {
		d.ArmorShredPct = pct
	}
	if flat > d.ArmorShredFlat {
		d.ArmorShredFlat = flat
	}
	if ticks > d.ArmorShredTicks {
		d.ArmorShredTicks = ticks
	}
}

// ApplyShred is ApplySunder's magic-resist counterpart.
func (d *Debuffs) ApplyShred(pct, flat float64, ticks int) {
	if pct > d.MRShredPct {
		d.MRShredPct = pct
	}
	if flat > d.MRShredFlat {
		d.MRShredFlat = flat
	}
	if ticks > d.MRShredTicks {
		d.MRShredTicks = ticks
	}
}

// ApplySlow refreshes the attack-speed slow to the stronger value/longer duration.
func (d *Debuffs) ApplySlow(pct float64, ticks int) {
	if pct > d.SlowPct {
		d.SlowPct = pct
	}
	if ticks > d.SlowTicksLeft {
		d.SlowTicksLeft = ticks
	}
}

// ApplyStun, ApplySilence, ApplyDisarm refresh to the longer remaining duration.
func (d *Debuffs) ApplyStun(ticks int) {
	if ticks > d.StunTicksLeft {
		d.StunTicksLeft = ticks
	}
}
func (d *Debuffs) ApplySilence(ticks int) {
	if ticks > d.SilenceTicksLeft {
		d.SilenceTicksLeft = ticks
	}
}
func (d *Debuffs) ApplyDisarm(ticks int) {
	if ticks > d.DisarmTicksLeft {
		d.DisarmTicksLeft = ticks
	}
}

// Cleanse removes all crowd-control debuffs (stun/silence/disarm/slow) but
// leaves damage-over-time and resistance shreds untouched — those are
// damage/defense state, not crowd control.
func (d *Debuffs) Cleanse() {
	d.SlowPct, d.SlowTicksLeft = 0, 0
	d.StunTicksLeft = 0
	d.SilenceTicksLeft = 0
	d.DisarmTicksLeft = 0
}

// Silenced, Disarmed, Stunned report whether the corresponding debuff is
// currently active.
func (d *Debuffs) Silenced() bool { return d.SilenceTicksLeft > 0 }
func (d *Debuffs) Disarmed() bool { return d.DisarmTicksLeft > 0 }
func (d *Debuffs) Stunned() bool  { return d.StunTicksLeft > 0 }

// decrementIfPositive counts a timer down by one tick, floored at zero;
// Tick clears the paired value once it reaches zero. This mirrors the teacher's
// timer-decrement idiom used throughout its own combo/dodge timers.
func decrementIfPositive(ticks *int) {
	if *ticks > 0 {
		*ticks--
	}
}

// Tick decrements all debuff timers by one tick and clears expired values.
// Returns true if the burn DoT should deal damage this tick (i.e. it was
// active before decrementing).
func (d *Debuffs) Tick() (burnActive bool) {
	burnActive = d.BurnTicksLeft > 0
	decrementIfPositive(&d.BurnTicksLeft)
	if d.BurnTicksLeft == 0 {
		d.BurnDPS = 0
	}

	decrementIfPositive(&d.WoundTicksLeft)
	if d.WoundTicksLeft == 0 {
		d.WoundPct = 0
	}

	decrementIfPositive(&d.ArmorShredTicks)
	if d.ArmorShredTicks == 0 {
		d.ArmorShredPct, d.ArmorShredFlat = 0, 0
	}

	decrementIfPositive(&d.MRShredTicks)
	if d.MRShredTicks == 0 {
		d.MRShredPct, d.MRShredFlat = 0, 0
	}

	decrementIfPositive(&d.SlowTicksLeft)
	if d.SlowTicksLeft == 0 {
		d.SlowPct = 0
	}

	decrementIfPositive(&d.StunTicksLeft)
	decrementIfPositive(&d.SilenceTicksLeft)
	decrementIfPositive(&d.DisarmTicksLeft)

	return burnActive
}
