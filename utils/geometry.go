package utils

import (
	"math"

	"github.com/golang/geo/r3"
)

// ClosestPointOnSegment returns the point on segment [a, b] nearest to p.
// Points are planar; the z component is ignored.
func ClosestPointOnSegment(p, a, b r3.Vector) r3.Vector {
	ab := b.Sub(a)
	lenSq := ab.X*ab.X + ab.Y*ab.Y
	if lenSq == 0 {
		return a
	}
	ap := p.Sub(a)
	t := (ap.X*ab.X + ap.Y*ab.Y) / lenSq
	if t < 0 {
		return a
	}
	if t > 1 {
		return b
	}
	return a.Add(ab.Mul(t))
}

// DistToSegment returns the planar distance from p to segment [a, b].
func DistToSegment(p, a, b r3.Vector) float64 {
	c := ClosestPointOnSegment(p, a, b)
	return math.Hypot(p.X-c.X, p.Y-c.Y)
}
