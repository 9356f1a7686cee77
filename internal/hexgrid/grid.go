package hexgrid

// Width and Height are the fixed battlefield dimensions.
const (
	Width  = 7
	Height = 8
)

// Grid is the occupancy map from hex coordinate to unit id. Internally it
// is a flat row-major array indexed by (col, row), following the same
// preallocated, index-based layout as the broad-phase spatial grids this
// engine's pathfinder and target queries are built on — no per-query
// allocation.
type Grid struct {
	occupants []uint64 // 0 means empty; occupant ids are stored as id+1
	scratch   []Coord  // reusable buffer for neighbor/walkable queries
}

// NewGrid creates an empty occupancy grid of the fixed battlefield size.
func NewGrid() *Grid {
	return &Grid{
		occupants: make([]uint64, Width*Height),
		scratch:   make([]Coord, 0, 8),
	}
}

// InBounds reports whether c lies within the battlefield.
func InBounds(c Coord) bool {
	return c.Q >= 0 && c.Q < Width && c.R >= 0 && c.R < Height
}

func index(c Coord) int { return c.R*Width + c.Q }

// Occupant returns the unit id occupying c and whether the hex is occupied.
func (g *Grid) Occupant(c Coord) (id uint64, ok bool) {
	if !InBounds(c) {
		return 0, false
	}
	v := g.occupants[index(c)]
	if v == 0 {
		return 0, false
	}
	return v - 1, true
}

// IsWalkable reports whether c is in bounds and unoccupied.
func (g *Grid) IsWalkable(c Coord) bool {
	if !InBounds(c) {
		return false
	}
	return g.occupants[index(c)] == 0
}

// Place marks unit id as occupying c. Invariant: at most one live unit per
// hex — callers must vacate the unit's prior hex first.
func (g *Grid) Place(c Coord, id uint64) {
	if !InBounds(c) {
		return
	}
	g.occupants[index(c)] = id + 1
}

// Vacate clears occupancy at c, if it matches id. A no-op if the hex is
// already occupied by someone else (defends against stale double-clears).
func (g *Grid) Vacate(c Coord, id uint64) {
	if !InBounds(c) {
		return
	}
	idx := index(c)
	if g.occupants[idx] == id+1 {
		g.occupants[idx] = 0
	}
}

// Move relocates id from prev to next, vacating prev and placing at next.
func (g *Grid) Move(prev, next Coord, id uint64) {
	g.Vacate(prev, id)
	g.Place(next, id)
}

// WalkableNeighbors returns the walkable in-bounds neighbors of c using the
// grid's reusable scratch buffer. The returned slice is invalidated by the
// next call.
func (g *Grid) WalkableNeighbors(c Coord) []Coord {
	g.scratch = g.scratch[:0]
	for _, n := range c.Neighbors() {
		if g.IsWalkable(n) {
			g.scratch = append(g.scratch, n)
		}
	}
	return g.scratch
}

// Dimensions returns the fixed battlefield dimensions.
func (g *Grid) Dimensions() (width, height int) { return Width, Height }
