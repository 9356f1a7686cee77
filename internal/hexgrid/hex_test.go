package hexgrid

import "testing"

func TestDistance(t *testing.T) {
	cases := []struct {
		name string
		a, b Coord
		want int
	}{
		{"same hex", Coord{0, 0}, Coord{0, 0}, 0},
		{"adjacent", Coord{0, 0}, Coord{1, 0}, 1},
		{"two steps", Coord{0, 0}, Coord{2, 0}, 2},
		{"diagonal-ish", Coord{0, 0}, Coord{2, -1}, 2},
		{"negative", Coord{3, -3}, Coord{0, 0}, 3},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := Distance(c.a, c.b); got != c.want {
				t.Fatalf("Distance(%v, %v) = %d, want %d", c.a, c.b, got, c.want)
			}
		})
	}
}

func TestNeighborsAreUnitDistance(t *testing.T) {
	origin := Coord{3, 4}
	for i, n := range origin.Neighbors() {
		if d := Distance(origin, n); d != 1 {
			t.Fatalf("neighbor %d at distance %d, want 1", i, d)
		}
	}
}

func TestCircleContainsOriginAndRespectsRadius(t *testing.T) {
	origin := Coord{2, 2}
	set := Circle(origin, 2)
	found := false
	for _, c := range set {
		if c == origin {
			found = true
		}
		if Distance(origin, c) > 2 {
			t.Fatalf("coord %v outside radius 2", c)
		}
	}
	if !found {
		t.Fatal("circle did not include origin")
	}
}

func TestLineIncludesEndpoints(t *testing.T) {
	origin := Coord{0, 0}
	end := Coord{4, 0}
	line := Line(origin, end, 1)
	hasOrigin, hasEnd := false, false
	for _, c := range line {
		if c == origin {
			hasOrigin = true
		}
		if c == end {
			hasEnd = true
		}
	}
	if !hasOrigin || !hasEnd {
		t.Fatalf("line missing endpoints: %v", line)
	}
}

func TestGridPlaceVacateMove(t *testing.T) {
	g := NewGrid()
	a := Coord{1, 1}
	b := Coord{2, 1}

	g.Place(a, 7)
	if !g.IsWalkable(b) {
		t.Fatal("b should start walkable")
	}
	if id, ok := g.Occupant(a); !ok || id != 7 {
		t.Fatalf("occupant(a) = %v, %v; want 7, true", id, ok)
	}

	g.Move(a, b, 7)
	if g.IsWalkable(b) {
		t.Fatal("b should be occupied after move")
	}
	if !g.IsWalkable(a) {
		t.Fatal("a should be vacated after move")
	}
}

func TestVacateIgnoresMismatchedOccupant(t *testing.T) {
	g := NewGrid()
	c := Coord{0, 0}
	g.Place(c, 1)
	g.Vacate(c, 2) // different id, should be a no-op
	if g.IsWalkable(c) {
		t.Fatal("vacate with wrong id should not clear occupancy")
	}
}

func TestInBounds(t *testing.T) {
	if !InBounds(Coord{0, 0}) {
		t.Fatal("origin should be in bounds")
	}
	if InBounds(Coord{Width, 0}) {
		t.Fatal("q == Width should be out of bounds")
	}
	if InBounds(Coord{-1, 0}) {
		t.Fatal("negative q should be out of bounds")
	}
}
