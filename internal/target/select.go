// Package target implements the library of target-selection policies.
// Every selector is a pure function over (self, candidate pool, grid, rng)
// that returns at most one candidate; none of them mutate state.
package target

import (
	"sort"

	"github.com/rentierek/data-driven-autochess/internal/hexgrid"
	"github.com/rentierek/data-driven-autochess/internal/rngx"
	"github.com/rentierek/data-driven-autochess/internal/unit"
)

// Policy names a built-in selector.
type Policy string

const (
	Nearest          Policy = "nearest"
	Farthest         Policy = "farthest"
	LowestHPPercent  Policy = "lowest_hp_percent"
	LowestHPFlat     Policy = "lowest_hp_flat"
	HighestStat      Policy = "highest_stat"
	Cluster          Policy = "cluster"
	Random           Policy = "random"
	Frontline        Policy = "frontline"
	Backline         Policy = "backline"
	CurrentTarget    Policy = "current_target"
)

// Params carries the optional tuning knobs a selector may use.
type Params struct {
	MaxRange     int // 0 means unlimited
	Stat         unit.StatKey
	ClusterRange int
	SpawnEdgeRow int // the row index of self's team spawn edge, for frontline/backline
}

// filterByRange drops candidates farther than MaxRange from self, when set.
func filterByRange(self *unit.Unit, pool []*unit.Unit, maxRange int) []*unit.Unit {
	if maxRange <= 0 {
		return pool
	}
	out := make([]*unit.Unit, 0, len(pool))
	for _, c := range pool {
		if hexgrid.Distance(self.Pos, c.Pos) <= maxRange {
			out = append(out, c)
		}
	}
	return out
}

// sortedByID returns pool sorted by ascending unit id, for deterministic
// tie-breaking.
func sortedByID(pool []*unit.Unit) []*unit.Unit {
	out := make([]*unit.Unit, len(pool))
	copy(out, pool)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Select runs the named policy over pool and returns the chosen candidate,
// or nil if pool is empty after range filtering.
func Select(policy Policy, self *unit.Unit, pool []*unit.Unit, grid *hexgrid.Grid, rng *rngx.Stream, p Params, currentTargetID uint64, currentValid bool) *unit.Unit {
	candidates := filterByRange(self, pool, p.MaxRange)
	if len(candidates) == 0 {
		return nil
	}
	candidates = sortedByID(candidates)

	switch policy {
	case Nearest:
		return bestBy(candidates, func(c *unit.Unit) float64 {
			return float64(hexgrid.Distance(self.Pos, c.Pos))
		}, false)
	case Farthest:
		return bestBy(candidates, func(c *unit.Unit) float64 {
			return float64(hexgrid.Distance(self.Pos, c.Pos))
		}, true)
	case LowestHPPercent:
		return bestBy(candidates, func(c *unit.Unit) float64 { return c.HPPercent() }, false)
	case LowestHPFlat:
		return bestBy(candidates, func(c *unit.Unit) float64 { return c.HP }, false)
	case HighestStat:
		return bestBy(candidates, func(c *unit.Unit) float64 { return c.Effective(p.Stat) }, true)
	case Cluster:
		return bestBy(candidates, func(c *unit.Unit) float64 {
			count := 0
			for _, other := range candidates {
				if other.ID != c.ID && hexgrid.Distance(c.Pos, other.Pos) <= p.ClusterRange {
					count++
				}
			}
			return float64(count)
		}, true)
	case Random:
		return candidates[rng.Choice(len(candidates))]
	case Frontline:
		return bestBy(candidates, func(c *unit.Unit) float64 {
			return absInt(c.Pos.R - p.SpawnEdgeRow)
		}, false)
	case Backline:
		return bestBy(candidates, func(c *unit.Unit) float64 {
			return absInt(c.Pos.R - p.SpawnEdgeRow)
		}, true)
	case CurrentTarget:
		if currentValid {
			for _, c := range candidates {
				if c.ID == currentTargetID {
					return c
				}
			}
		}
		return Select(Nearest, self, pool, grid, rng, p, 0, false)
	default:
		return Select(Nearest, self, pool, grid, rng, p, 0, false)
	}
}

func absInt(v int) float64 {
	if v < 0 {
		return float64(-v)
	}
	return float64(v)
}

// bestBy returns the candidate with the smallest (or, if maximize, largest)
// score, breaking ties by the stable id ordering already present in
// candidates (candidates must already be id-sorted).
func bestBy(candidates []*unit.Unit, score func(*unit.Unit) float64, maximize bool) *unit.Unit {
	best := candidates[0]
	bestScore := score(best)
	for _, c := range candidates[1:] {
		s := score(c)
		if (maximize && s > bestScore) || (!maximize && s < bestScore) {
			best, bestScore = c, s
		}
	}
	return best
}
