package config

import (
	"fmt"

	"github.com/rentierek/data-driven-autochess/internal/ability"
	"github.com/rentierek/data-driven-autochess/internal/engine"
	"github.com/rentierek/data-driven-autochess/internal/hexgrid"
)

// BuildEngine turns a loaded configuration bundle into a ready-to-run
// engine: abilities registered, every deployment placed and equipped. Any
// unresolvable reference (an unknown unit/item id, an out-of-bounds hex) is
// a configuration error returned here, before Run is ever called. Shared by
// cmd/battlesim and internal/api so both entry points build battles the
// same way.
func BuildEngine(bundle *Bundle, seed uint64) (*engine.Engine, error) {
	eng := engine.NewSimulation(seed)
	eng.SetDefaults(ResolveDefaults(bundle.Defaults))

	abilities := make([]ability.Definition, 0, len(bundle.Abilities))
	for _, ad := range bundle.Abilities {
		def, err := ResolveAbility(ad)
		if err != nil {
			return nil, err
		}
		abilities = append(abilities, def)
	}
	eng.LoadAbilities(abilities)

	units := make(map[string]UnitDef, len(bundle.Units))
	for _, ud := range bundle.Units {
		units[ud.ID] = ud
	}
	items := make(map[string]ItemDef, len(bundle.Items))
	resolvedItems := make([]engine.ItemApplication, 0, len(bundle.Items))
	for _, id := range bundle.Items {
		items[id.ID] = id
		resolvedItems = append(resolvedItems, ResolveItem(id))
	}
	eng.AttachItemManager(resolvedItems)

	for _, dep := range bundle.Deployments {
		ud, ok := units[dep.UnitID]
		if !ok {
			return nil, fmt.Errorf("deployment references unknown unit %q", dep.UnitID)
		}
		tpl, err := ResolveUnitTemplate(ud)
		if err != nil {
			return nil, err
		}

		star := dep.Star
		if star < 1 {
			star = 1
		}
		unitID, err := eng.AddUnit(tpl, dep.Team, hexgrid.Coord{Q: dep.Q, R: dep.R}, star)
		if err != nil {
			return nil, fmt.Errorf("deploying %q: %w", dep.UnitID, err)
		}

		for _, itemID := range dep.Items {
			itemDef, ok := items[itemID]
			if !ok {
				return nil, fmt.Errorf("unit %q: unknown item %q", dep.UnitID, itemID)
			}
			if err := eng.EquipItem(unitID, ResolveItem(itemDef)); err != nil {
				return nil, err
			}
		}
	}

	traits := make([]engine.TraitDef, 0, len(bundle.Traits))
	for _, td := range bundle.Traits {
		resolved, err := ResolveTraitDef(td)
		if err != nil {
			return nil, err
		}
		traits = append(traits, resolved)
	}
	eng.AttachTraitManager(traits)

	return eng, nil
}
