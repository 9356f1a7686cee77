package engine

import "github.com/rentierek/data-driven-autochess/internal/unit"

// AttachItemManager registers the full item catalog a configuration
// defines, keyed by id. EquipItem still performs the per-unit application;
// this registration lets anything that only has an item id (rather than an
// already-resolved ItemApplication) look the definition up later.
func (e *Engine) AttachItemManager(items []ItemApplication) {
	e.itemCatalog = make(map[string]ItemApplication, len(items))
	for _, it := range items {
		e.itemCatalog[it.ID] = it
	}
}

// ItemByID looks up a registered item definition.
func (e *Engine) ItemByID(id string) (ItemApplication, bool) {
	it, ok := e.itemCatalog[id]
	return it, ok
}

// fireOnHit runs owner's equipped on-hit triggers against opponent after a
// landed basic attack.
func (e *Engine) fireOnHit(owner, opponent *unit.Unit) {
	m, ok := e.meta[owner.ID]
	if !ok {
		return
	}
	for _, item := range m.items {
		for _, trig := range item.OnHitEffects {
			e.fireTrigger(trig, owner, opponent)
		}
	}
}

// fireOnTakeDamage runs owner's equipped on-take-damage triggers against
// whichever unit dealt the damage.
func (e *Engine) fireOnTakeDamage(owner, source *unit.Unit) {
	m, ok := e.meta[owner.ID]
	if !ok {
		return
	}
	for _, item := range m.items {
		for _, trig := range item.OnTakeDamageEffects {
			e.fireTrigger(trig, owner, source)
		}
	}
}

func (e *Engine) fireTrigger(trig AbilityEffectTrigger, owner, opponent *unit.Unit) {
	def, ok := e.abilities[trig.AbilityID]
	if !ok {
		return
	}
	e.ApplyEffects(def.Effects, owner, opponent, owner.Star)
}
