package engine

import (
	"context"
	"math"

	"github.com/pkg/errors"

	"github.com/rentierek/data-driven-autochess/internal/ability"
	"github.com/rentierek/data-driven-autochess/internal/damage"
	"github.com/rentierek/data-driven-autochess/internal/effect"
	"github.com/rentierek/data-driven-autochess/internal/eventlog"
	"github.com/rentierek/data-driven-autochess/internal/hexgrid"
	"github.com/rentierek/data-driven-autochess/internal/pathfind"
	"github.com/rentierek/data-driven-autochess/internal/projectile"
	"github.com/rentierek/data-driven-autochess/internal/rngx"
	"github.com/rentierek/data-driven-autochess/internal/target"
	"github.com/rentierek/data-driven-autochess/internal/unit"
)

// unitMeta holds the per-unit configuration the tick loop needs but that
// does not belong on unit.Unit itself: its loaded template and whatever
// items have been equipped onto it.
type unitMeta struct {
	tpl   UnitTemplate
	items []ItemApplication
}

// Result is the outcome of running a simulation to completion.
type Result struct {
	Winner int // 0 or 1, or -1 for a draw (both wiped or max_ticks reached)
	Ticks  uint32
}

// Engine is one battle: the unit arena, grid, projectile manager, event
// log, and the tick counter driving them. It implements effect.Context,
// ability.SpawnContext, and projectile.Context so the leaf packages never
// hold engine state directly.
type Engine struct {
	rng  *rngx.Stream
	seed uint64

	grid   *hexgrid.Grid
	finder *pathfind.Finder
	proj   *projectile.Manager
	log    *eventlog.Logger

	defaults  Defaults
	abilities abilityTable
	traits      []TraitDef
	itemCatalog map[string]ItemApplication

	units []*unit.Unit
	byID  map[uint64]*unit.Unit
	meta  map[uint64]*unitMeta

	spawnEdgeRow map[int]int

	tick       uint32
	nextUnitID uint64
	nextProjID uint64
	delayed    map[uint32][]func(effect.Context)

	ended  bool
	winner int
}

// NewSimulation returns an empty engine seeded deterministically. Units are
// added via AddUnit before Run is called.
func NewSimulation(seed uint64) *Engine {
	d := DefaultDefaults()
	return &Engine{
		rng:          rngx.New(seed),
		seed:         seed,
		grid:         hexgrid.NewGrid(),
		finder:       pathfind.NewFinder(),
		proj:         projectile.NewManager(),
		log:          eventlog.New(),
		defaults:     d,
		abilities:    make(abilityTable),
		byID:         make(map[uint64]*unit.Unit),
		meta:         make(map[uint64]*unitMeta),
		spawnEdgeRow: map[int]int{0: 0, 1: hexgrid.Height - 1},
		delayed:      make(map[uint32][]func(effect.Context)),
		winner:       -1,
	}
}

// SetDefaults replaces the tuning defaults with those a loaded configuration
// supplies. The engine reads only TickRate and MaxTicks from them; the
// damage pipeline keeps its own fixed mana-formula and crit constants, and
// the cast-time defaults are not read.
func (e *Engine) SetDefaults(d Defaults) { e.defaults = d }

// SetSpawnEdgeRow records which grid row counts as team's backline-origin
// edge, used by the frontline/backline selectors.
func (e *Engine) SetSpawnEdgeRow(team, row int) { e.spawnEdgeRow[team] = row }

// LoadAbilities registers the ability set a configuration defines.
func (e *Engine) LoadAbilities(defs []ability.Definition) {
	for _, d := range defs {
		e.abilities[d.ID] = d
	}
}

// Log exposes the event log for a caller that wants to stream or persist it.
func (e *Engine) Log() *eventlog.Logger { return e.log }

// CurrentTickNumber reports the tick about to run (or just completed).
func (e *Engine) CurrentTickNumber() uint32 { return e.tick }

// TickRate reports the configured ticks-per-second for this battle, for a
// caller recording a replay header alongside the event log.
func (e *Engine) TickRate() int { return e.tickRate() }

// AddUnit places a new unit on the board and returns its assigned id.
func (e *Engine) AddUnit(tpl UnitTemplate, team int, pos hexgrid.Coord, star int) (uint64, error) {
	if !hexgrid.InBounds(pos) {
		return 0, errors.Errorf("position %+v is out of bounds", pos)
	}
	if !e.grid.IsWalkable(pos) {
		return 0, errors.Errorf("position %+v is already occupied", pos)
	}

	id := e.nextUnitID
	e.nextUnitID++

	u := unit.NewUnit(id, team, star, pos, tpl.Base)
	u.AbilityID = tpl.AbilityID
	u.TargetSelector = string(tpl.DefaultSelector)

	e.grid.Place(pos, id)
	e.units = append(e.units, u)
	e.byID[id] = u
	e.meta[id] = &unitMeta{tpl: tpl}

	e.log.EmitSimple(e.tick, eventlog.KindUnitSpawn, id, false, 0, map[string]any{
		"team": team, "star": star, "q": pos.Q, "r": pos.R,
	})
	return id, nil
}

// EquipItem applies an item's stat modifiers immediately and records its
// conditional amplifiers and on-hit/on-take-damage triggers for later use
// by the damage pipeline and ability triggers.
func (e *Engine) EquipItem(unitID uint64, item ItemApplication) error {
	u, ok := e.byID[unitID]
	if !ok {
		return errors.Errorf("unknown unit id %d", unitID)
	}
	for k, v := range item.FlatMods {
		u.Modifiers.AddFlat(k, v)
	}
	for k, v := range item.PercentMods {
		u.Modifiers.AddPercent(k, v)
	}
	if item.AbilityCritFlag {
		u.AbilityCritFlag = true
	}
	e.meta[unitID].items = append(e.meta[unitID].items, item)
	return nil
}

// Run drives Tick until the battle ends, ctx is cancelled, or max_ticks is
// reached, and returns the outcome.
func (e *Engine) Run(ctx context.Context) (Result, error) {
	e.log.EmitSimple(0, eventlog.KindSimulationStart, 0, false, 0, map[string]any{"seed": e.seed})

	for {
		select {
		case <-ctx.Done():
			return Result{}, ctx.Err()
		default:
		}
		if e.Tick() {
			break
		}
	}
	return Result{Winner: e.winner, Ticks: e.tick}, nil
}

// Tick runs the six ordered phases once and reports whether the battle has
// ended.
func (e *Engine) Tick() bool {
	e.runDue()
	e.decayPhase()
	e.abilityTriggerPhase()
	e.aiDecisionPhase()
	e.executePhase()
	e.proj.Update(e)
	done := e.endConditionPhase()
	e.tick++
	return done
}

func (e *Engine) runDue() {
	fns, ok := e.delayed[e.tick]
	if !ok {
		return
	}
	delete(e.delayed, e.tick)
	for _, fn := range fns {
		fn(e)
	}
}

func (e *Engine) decayPhase() {
	for _, u := range e.units {
		if !u.IsAlive() {
			continue
		}
		u.TickBuffs()
		u.TickShields()

		dps := u.Debuffs.BurnDPS
		burnActive := u.Debuffs.Tick()
		if u.Machine.Current == unit.Stunned && !u.Debuffs.Stunned() {
			u.Machine.ExitStun()
		}
		if burnActive && dps > 0 {
			perTick := dps / float64(e.tickRate())
			u.HP -= perTick
			if u.HP < 0 {
				u.HP = 0
			}
			e.log.EmitSimple(e.tick, eventlog.KindUnitDamage, u.ID, false, 0, map[string]any{"source": "burn", "amount": perTick})
			if u.HP <= 0 {
				e.KillUnit(u)
			}
		}

		if u.TauntTicksLeft > 0 {
			u.TauntTicksLeft--
			if u.TauntTicksLeft == 0 {
				u.TauntSourceID = 0
			}
		}
	}
}

func (e *Engine) abilityTriggerPhase() {
	for _, u := range e.units {
		if !u.IsAlive() || u.Machine.Current == unit.Casting || u.Machine.Current == unit.Stunned {
			continue
		}
		if u.Debuffs.Silenced() || u.AbilityID == "" {
			continue
		}
		def, ok := e.abilities[u.AbilityID]
		if !ok {
			continue
		}
		cost := def.ManaCost * (1 + u.ManaReaveMult)
		if u.Mana < cost {
			continue
		}
		u.ManaReaveMult = 0
		if u.OverflowMana {
			u.Mana -= cost
		} else {
			u.Mana = 0
		}
		starIdx := clampStarIndex(u.Star)
		u.Machine.EnterCasting(def.CastStartTicks[starIdx])
		e.log.EmitSimple(e.tick, eventlog.KindAbilityCast, u.ID, false, 0, map[string]any{"ability": def.ID})
	}
}

func (e *Engine) aiDecisionPhase() {
	for _, u := range e.units {
		if !u.IsAlive() || !u.Machine.CanAct() {
			continue
		}
		if u.TauntTicksLeft > 0 {
			if src, ok := e.byID[u.TauntSourceID]; ok && src.IsAlive() {
				if !u.HasTarget || u.TargetUnitID != src.ID {
					e.log.EmitSimple(e.tick, eventlog.KindTargetAcquired, u.ID, true, src.ID, nil)
				}
				u.TargetUnitID, u.HasTarget = src.ID, true
				continue
			}
		}

		pool := e.enemyPool(u)
		m := e.meta[u.ID]
		p := target.Params{MaxRange: m.tpl.SelectorRange, SpawnEdgeRow: e.spawnEdgeRow[u.Team]}
		choice := target.Select(target.Policy(u.TargetSelector), u, pool, e.grid, e.rng, p, u.TargetUnitID, u.HasTarget)
		if choice == nil {
			u.HasTarget = false
			continue
		}
		if !u.HasTarget || u.TargetUnitID != choice.ID {
			e.log.EmitSimple(e.tick, eventlog.KindTargetAcquired, u.ID, true, choice.ID, nil)
		}
		u.TargetUnitID, u.HasTarget = choice.ID, true
	}
}

func (e *Engine) executePhase() {
	for _, u := range e.units {
		if !u.IsAlive() {
			continue
		}
		switch u.Machine.Current {
		case unit.Casting:
			e.advanceCast(u)
		case unit.Stunned, unit.Dead:
			continue
		default:
			e.actOnTarget(u)
		}
	}
}

func (e *Engine) actOnTarget(u *unit.Unit) {
	if !u.HasTarget {
		u.Machine.Current = unit.Idle
		return
	}
	tgt, ok := e.byID[u.TargetUnitID]
	if !ok || !tgt.IsAlive() {
		u.HasTarget = false
		u.Machine.Current = unit.Idle
		return
	}

	attackRange := e.meta[u.ID].tpl.AttackRange
	if attackRange <= 0 {
		attackRange = 1
	}
	if hexgrid.Distance(u.Pos, tgt.Pos) <= attackRange {
		u.Machine.Current = unit.Attacking
		e.resolveAttack(u, tgt)
		return
	}
	u.Machine.Current = unit.Moving
	e.moveToward(u, tgt)
}

func (e *Engine) advanceCast(u *unit.Unit) {
	u.Machine.CastTicksLeft--
	if u.Machine.CastTicksLeft > 0 {
		return
	}
	def, ok := e.abilities[u.AbilityID]
	if !ok {
		u.Machine.Current = unit.Idle
		u.Machine.CastPhase = unit.CastNone
		return
	}
	starIdx := clampStarIndex(u.Star)

	switch u.Machine.CastPhase {
	case unit.CastStart:
		u.Machine.CastPhase = unit.CastEffectPoint
		u.Machine.CastTicksLeft = def.EffectPointTicks[starIdx]
		ability.ResolveEffectPoint(def, u, u.Star, e)
		if u.Machine.CastTicksLeft <= 0 {
			e.advanceCast(u)
		}
	case unit.CastEffectPoint:
		u.Machine.CastPhase = unit.CastEnd
		u.Machine.CastTicksLeft = def.CastEndTicks[starIdx]
		if u.Machine.CastTicksLeft <= 0 {
			e.advanceCast(u)
		}
	default:
		u.Machine.Current = unit.Idle
		u.Machine.CastPhase = unit.CastNone
	}
}

func (e *Engine) resolveAttack(u, tgt *unit.Unit) {
	if u.Debuffs.Disarmed() {
		return
	}
	if u.AttackCooldownTicks > 0 {
		u.AttackCooldownTicks--
		return
	}

	var res damage.Result
	if payload, ok := u.ReplaceAttacksPayload.([]effect.Descriptor); ok && u.ReplaceAttacksLeft > 0 {
		u.ReplaceAttacksLeft--
		e.ApplyEffects(payload, u, tgt, u.Star)
	} else {
		base := u.Effective(unit.StatAD)
		amps := e.collectAmplifiers(u, tgt)
		res = e.Damage(u, tgt, base, damage.Physical, true, amps)
		if !res.Dodged {
			e.fireOnHit(u, tgt)
		}
	}

	m := e.meta[u.ID]
	u.Mana += damage.AttackManaGain(m.tpl.ClassManaMultiplier)
	if !u.OverflowMana && u.Mana > u.MaxMana {
		u.Mana = u.MaxMana
	}
	if tgt.Machine.Current != unit.Casting {
		tgt.Mana += res.ManaGained
		if !tgt.OverflowMana && tgt.Mana > tgt.MaxMana {
			tgt.Mana = tgt.MaxMana
		}
	}

	interval := int(math.Round(float64(e.tickRate()) / u.EffectiveAttackSpeed()))
	if interval < 1 {
		interval = 1
	}
	u.AttackCooldownTicks = interval

	e.log.EmitSimple(e.tick, eventlog.KindUnitAttack, u.ID, true, tgt.ID, map[string]any{
		"crit": res.Crit, "dodged": res.Dodged, "damage": res.FinalDamage,
	})
}

// collectAmplifiers gathers the conditional item-sourced damage amplifiers
// that apply against defender, in equip order (see the item-then-trait-
// then-buff ordering decision recorded in DESIGN.md).
func (e *Engine) collectAmplifiers(attacker, defender *unit.Unit) []float64 {
	m := e.meta[attacker.ID]
	var out []float64
	for _, item := range m.items {
		for _, amp := range item.ConditionalAmplifiers {
			if amp.Predicate == nil || amp.Predicate(defender.HP, defender.EffectiveMaxHP()) {
				out = append(out, amp.Amount)
			}
		}
	}
	return out
}

func (e *Engine) moveToward(u, tgt *unit.Unit) {
	slow := u.Debuffs.SlowPct
	if slow > 0.95 {
		slow = 0.95
	}
	u.MoveAccum += 1 - slow
	if u.MoveAccum < 1 {
		return
	}
	u.MoveAccum -= 1

	next, moved := e.finder.NextStep(e.grid, u.Pos, tgt.Pos)
	if moved {
		e.MoveUnit(u, next)
	}
}

func (e *Engine) endConditionPhase() bool {
	aliveTeam := map[int]int{}
	for _, u := range e.units {
		if u.IsAlive() {
			aliveTeam[u.Team]++
		}
	}

	over := aliveTeam[0] == 0 || aliveTeam[1] == 0 || e.tick+1 >= e.defaults.MaxTicks
	if !over {
		return false
	}

	winner := -1
	switch {
	case aliveTeam[0] > 0 && aliveTeam[1] == 0:
		winner = 0
	case aliveTeam[1] > 0 && aliveTeam[0] == 0:
		winner = 1
	}
	e.winner = winner
	e.ended = true
	e.log.EmitSimple(e.tick, eventlog.KindSimulationEnd, 0, false, 0, map[string]any{"winner": winner})
	return true
}

func (e *Engine) enemyPool(self *unit.Unit) []*unit.Unit {
	out := make([]*unit.Unit, 0, len(e.units))
	for _, u := range e.units {
		if u.ID == self.ID || !u.IsAlive() || u.Team == self.Team {
			continue
		}
		out = append(out, u)
	}
	return out
}

func (e *Engine) tickRate() int {
	if e.defaults.TickRate <= 0 {
		return 30
	}
	return e.defaults.TickRate
}

func clampStarIndex(star int) int {
	idx := star - 1
	if idx < 0 {
		return 0
	}
	if idx > 2 {
		return 2
	}
	return idx
}
