// Package projectile manages in-flight homing and ballistic projectiles,
// advancing each by its speed every tick and resolving hits when a
// projectile reaches or overshoots its target hex.
package projectile

import (
	"math"

	"github.com/rentierek/data-driven-autochess/internal/effect"
	"github.com/rentierek/data-driven-autochess/internal/hexgrid"
	"github.com/rentierek/data-driven-autochess/internal/unit"
)

// Projectile is one in-flight payload. SourceID/TargetID are weak
// references resolved through the engine's unit arena at use time.
type Projectile struct {
	ID       uint64
	SourceID uint64
	TargetID uint64

	FracQ, FracR float64 // current fractional axial position

	// LaunchTargetHex is the target's hex at launch time, used by
	// non-homing projectiles as their fixed destination.
	LaunchTargetHex hexgrid.Coord

	Homing  bool
	Speed   float64
	CanMiss bool
	Payload []effect.Descriptor
	Star    int

	// AreaRadius > 0 applies the payload to every living occupant within
	// AreaRadius of the impact hex instead of only the direct occupant
	// (an ability's AoE payload on the impact hex, per spec 4.9).
	AreaRadius int
	Affiliation Affiliation
}

// Affiliation filters who an AoE payload on impact can strike.
type Affiliation int

const (
	AffiliationEnemies Affiliation = iota
	AffiliationAllies
	AffiliationAll
)

// Manager holds the live projectile set, keyed by insertion order for
// deterministic resolution.
type Manager struct {
	live []*Projectile
}

// NewManager returns an empty projectile manager.
func NewManager() *Manager { return &Manager{} }

// Spawn enqueues a new projectile at the source's current position.
func (m *Manager) Spawn(p *Projectile, source *unit.Unit) {
	p.FracQ, p.FracR = float64(source.Pos.Q), float64(source.Pos.R)
	m.live = append(m.live, p)
}

// Live returns the current live projectile slice, insertion-ordered.
func (m *Manager) Live() []*Projectile { return m.live }

// Context is the slice of engine state the projectile manager needs to
// resolve hits: unit lookups, grid occupancy, and effect application.
type Context interface {
	UnitByID(id uint64) (*unit.Unit, bool)
	Grid() *hexgrid.Grid
	LiveUnitsExcept(exclude uint64) []*unit.Unit
	ApplyEffects(descs []effect.Descriptor, source, target *unit.Unit, star int)
	RecordHit(p *Projectile, target *unit.Unit)
	RecordMiss(p *Projectile)
}

// Update advances every live projectile by one tick, resolving arrivals
// and misses, and compacts the live slice in place.
func (m *Manager) Update(ctx Context) {
	n := 0
	for _, p := range m.live {
		resolved := m.step(p, ctx)
		if !resolved {
			m.live[n] = p
			n++
		}
	}
	m.live = m.live[:n]
}

// step advances p by one tick and returns true if it was resolved
// (hit, missed, or discarded) and should be removed from the live set.
func (m *Manager) step(p *Projectile, ctx Context) bool {
	target, targetAlive := ctx.UnitByID(p.TargetID)
	targetAlive = targetAlive && target.IsAlive()

	if !targetAlive {
		if p.CanMiss {
			ctx.RecordMiss(p)
			return true
		}
		// can_miss=false: continue to the last known hex (AoE) or, for a
		// pure single-target payload with no AoE radius, drop silently —
		// there is no occupant left to apply a single-target effect to.
		if p.AreaRadius <= 0 {
			return true
		}
	}

	destQ, destR := float64(p.LaunchTargetHex.Q), float64(p.LaunchTargetHex.R)
	if p.Homing && target != nil {
		destQ, destR = float64(target.Pos.Q), float64(target.Pos.R)
	}

	dq, dr := destQ-p.FracQ, destR-p.FracR
	remaining := math.Hypot(dq, dr)

	if remaining <= p.Speed {
		p.FracQ, p.FracR = destQ, destR
		m.resolveHit(p, ctx)
		return true
	}

	p.FracQ += dq / remaining * p.Speed
	p.FracR += dr / remaining * p.Speed
	return false
}

func (m *Manager) resolveHit(p *Projectile, ctx Context) {
	impactHex := hexgrid.RoundToHex(p.FracQ, p.FracR)
	source, _ := ctx.UnitByID(p.SourceID)

	if p.AreaRadius > 0 {
		hexes := hexgrid.Circle(impactHex, p.AreaRadius)
		for _, h := range hexes {
			id, ok := ctx.Grid().Occupant(h)
			if !ok {
				continue
			}
			occ, ok := ctx.UnitByID(id)
			if !ok || !occ.IsAlive() {
				continue
			}
			if !affiliationMatches(p.Affiliation, source, occ) {
				continue
			}
			ctx.ApplyEffects(p.Payload, source, occ, p.Star)
			ctx.RecordHit(p, occ)
		}
		return
	}

	id, ok := ctx.Grid().Occupant(impactHex)
	if !ok {
		ctx.RecordMiss(p)
		return
	}
	occ, ok := ctx.UnitByID(id)
	if !ok || !occ.IsAlive() {
		ctx.RecordMiss(p)
		return
	}
	ctx.ApplyEffects(p.Payload, source, occ, p.Star)
	ctx.RecordHit(p, occ)
}

func affiliationMatches(aff Affiliation, source, candidate *unit.Unit) bool {
	switch aff {
	case AffiliationEnemies:
		return source == nil || candidate.Team != source.Team
	case AffiliationAllies:
		return source != nil && candidate.Team == source.Team
	default:
		return true
	}
}
