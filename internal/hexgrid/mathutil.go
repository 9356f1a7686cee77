package hexgrid

import "math"

func hypot(x, y float64) float64 { return math.Hypot(x, y) }

func cosDeg(deg float64) float64 { return math.Cos(deg * math.Pi / 180) }

// ToCartesian converts an axial hex coordinate to a 2D cartesian point
// under a pointy-top layout, for projectile travel and cone-angle math.
func ToCartesian(c Coord) (x, y float64) { return axialToCartesian(c) }

// RoundToHex rounds a fractional cartesian-axial point back to the
// nearest hex coordinate.
func RoundToHex(fq, fr float64) Coord { return roundCube(fq, fr) }

