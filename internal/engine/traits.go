package engine

import "github.com/rentierek/data-driven-autochess/internal/effect"

// TraitThresholdDef is one breakpoint of a trait: at Count active members on
// a team, Effect applies (self-targeted) to every member carrying the tag.
type TraitThresholdDef struct {
	Count  int
	Effect effect.Descriptor
}

// TraitDef groups the thresholds one composition tag grants at increasing
// active-member counts.
type TraitDef struct {
	Tag        string
	Thresholds []TraitThresholdDef
}

// AttachTraitManager registers the loaded trait table and immediately
// resolves and applies every team's active thresholds against the units
// already placed. Composition does not change once a battle starts, so
// this runs once, before Run.
func (e *Engine) AttachTraitManager(defs []TraitDef) {
	e.traits = defs
	e.applyTraits()
}

func (e *Engine) applyTraits() {
	for team := 0; team < 2; team++ {
		counts := make(map[string]int)
		for _, u := range e.units {
			if u.Team != team {
				continue
			}
			for _, tag := range e.meta[u.ID].tpl.Traits {
				counts[tag]++
			}
		}

		for _, td := range e.traits {
			active := activeThreshold(td.Thresholds, counts[td.Tag])
			if active == nil {
				continue
			}
			for _, u := range e.units {
				if u.Team != team || !hasTag(e.meta[u.ID].tpl.Traits, td.Tag) {
					continue
				}
				effect.Apply(active.Effect, u, u, u.Star, e)
			}
		}
	}
}

// activeThreshold returns the highest threshold whose Count is met, or nil
// if the active count falls short of every threshold.
func activeThreshold(thresholds []TraitThresholdDef, count int) *TraitThresholdDef {
	var best *TraitThresholdDef
	for i := range thresholds {
		if thresholds[i].Count <= count && (best == nil || thresholds[i].Count > best.Count) {
			best = &thresholds[i]
		}
	}
	return best
}

func hasTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}
