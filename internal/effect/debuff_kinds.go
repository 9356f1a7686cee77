package effect

import "github.com/rentierek/data-driven-autochess/internal/unit"

func applySunder(d Descriptor, caster, target *unit.Unit, star int, ctx Context) Result {
	pct := 0.0
	if d.Pct != 0 {
		pct = d.Pct
	} else {
		pct = d.ValueAt(star)
	}
	target.Debuffs.ApplySunder(pct, d.Flat, d.DurationTicks)
	return Result{Applied: true, Value: pct}
}

func applyShred(d Descriptor, caster, target *unit.Unit, star int, ctx Context) Result {
	pct := d.Pct
	if pct == 0 {
		pct = d.ValueAt(star)
	}
	target.Debuffs.ApplyShred(pct, d.Flat, d.DurationTicks)
	return Result{Applied: true, Value: pct}
}
