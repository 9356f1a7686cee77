// Package hexgrid implements axial hex-coordinate geometry and the fixed
// 7x8 occupancy grid the battle engine places units on.
package hexgrid

// Coord is an axial hex coordinate.
type Coord struct {
	Q, R int
}

// Six axial neighbour offsets, in a stable clockwise order starting east.
var neighborOffsets = [6]Coord{
	{Q: 1, R: 0},
	{Q: 1, R: -1},
	{Q: 0, R: -1},
	{Q: -1, R: 0},
	{Q: -1, R: 1},
	{Q: 0, R: 1},
}

// Neighbor returns the coordinate adjacent to c in the given direction
// (0-5, clockwise from east).
func (c Coord) Neighbor(dir int) Coord {
	o := neighborOffsets[dir%6]
	return Coord{Q: c.Q + o.Q, R: c.R + o.R}
}

// Neighbors returns all six adjacent coordinates, regardless of grid bounds.
func (c Coord) Neighbors() [6]Coord {
	var out [6]Coord
	for i, o := range neighborOffsets {
		out[i] = Coord{Q: c.Q + o.Q, R: c.R + o.R}
	}
	return out
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Distance returns the hex distance between a and b.
func Distance(a, b Coord) int {
	dq := a.Q - b.Q
	dr := a.R - b.R
	return (absInt(dq) + absInt(dr) + absInt(dq+dr)) / 2
}

// Circle returns every coordinate within radius hexes of center, inclusive
// of center.
func Circle(center Coord, radius int) []Coord {
	if radius < 0 {
		return nil
	}
	out := make([]Coord, 0, 3*radius*(radius+1)+1)
	for dq := -radius; dq <= radius; dq++ {
		rMin := -radius
		if -dq-radius > rMin {
			rMin = -dq - radius
		}
		rMax := radius
		if -dq+radius < rMax {
			rMax = -dq + radius
		}
		for dr := rMin; dr <= rMax; dr++ {
			out = append(out, Coord{Q: center.Q + dq, R: center.R + dr})
		}
	}
	return out
}

// axialToCartesian converts an axial coordinate to a 2D cartesian point
// usable for angle and line-rasterisation math. Uses a pointy-top layout.
func axialToCartesian(c Coord) (x, y float64) {
	x = float64(c.Q) + float64(c.R)*0.5
	y = float64(c.R) * 0.8660254037844386 // sqrt(3)/2
	return x, y
}

// Cone returns every coordinate within range of origin whose angle from the
// origin->direction axis is within halfAngleDeg degrees. direction need not
// be normalised; it only supplies an axis. origin is excluded.
func Cone(origin, direction Coord, rng int, halfAngleDeg float64) []Coord {
	ox, oy := axialToCartesian(origin)
	dx, dy := axialToCartesian(direction)
	ax, ay := dx-ox, dy-oy
	if ax == 0 && ay == 0 {
		return nil
	}
	axisLen := hypot(ax, ay)
	cosHalf := cosDeg(halfAngleDeg)

	candidates := Circle(origin, rng)
	out := make([]Coord, 0, len(candidates))
	for _, c := range candidates {
		if c == origin {
			continue
		}
		cx, cy := axialToCartesian(c)
		vx, vy := cx-ox, cy-oy
		vLen := hypot(vx, vy)
		if vLen == 0 {
			continue
		}
		cosAngle := (vx*ax + vy*ay) / (vLen * axisLen)
		if cosAngle >= cosHalf {
			out = append(out, c)
		}
	}
	return out
}

// Line returns a rasterised thick line of the given width (in hexes) from
// origin to end, inclusive of both endpoints.
func Line(origin, end Coord, width int) []Coord {
	n := Distance(origin, end)
	if n == 0 {
		return []Coord{origin}
	}
	seen := make(map[Coord]struct{}, n+1)
	out := make([]Coord, 0, n+1)
	add := func(c Coord) {
		if _, ok := seen[c]; !ok {
			seen[c] = struct{}{}
			out = append(out, c)
		}
	}
	for i := 0; i <= n; i++ {
		t := float64(i) / float64(n)
		fq := lerp(float64(origin.Q), float64(end.Q), t)
		fr := lerp(float64(origin.R), float64(end.R), t)
		center := roundCube(fq, fr)
		add(center)
		if width > 1 {
			for _, c := range Circle(center, width-1) {
				add(c)
			}
		}
	}
	return out
}

func lerp(a, b, t float64) float64 { return a + (b-a)*t }

// roundCube rounds fractional axial coordinates to the nearest hex using
// cube-coordinate rounding.
func roundCube(fq, fr float64) Coord {
	fx := fq
	fz := fr
	fy := -fx - fz

	rx := roundFloat(fx)
	ry := roundFloat(fy)
	rz := roundFloat(fz)

	dx := absFloat(rx - fx)
	dy := absFloat(ry - fy)
	dz := absFloat(rz - fz)

	if dx > dy && dx > dz {
		rx = -ry - rz
	} else if dy > dz {
		ry = -rx - rz
	} else {
		rz = -rx - ry
	}
	return Coord{Q: int(rx), R: int(rz)}
}

func roundFloat(v float64) float64 {
	if v >= 0 {
		return float64(int(v + 0.5))
	}
	return float64(int(v - 0.5))
}

func absFloat(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
