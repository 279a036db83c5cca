package gears

import (
	"math"
)

// LineCircleIntersection finds the intersection of the infinite line through
// p1 and p2 with a circle. It returns one point if the line is a tangent and
// two points otherwise. If line and circle do not have common points,
// ErrNoIntersection is returned.
//
// See http://mathworld.wolfram.com/Circle-LineIntersection.html
func LineCircleIntersection(p1, p2, center Pair, radius float64) ([]Pair, error) {
	dx, dy := p2.X()-p1.X(), p2.Y()-p1.Y()
	dr2 := dx*dx + dy*dy
	if dr2 == 0 {
		return nil, ErrParallel
	}
	a, b := p1-center, p2-center
	D := a.X()*b.Y() - b.X()*a.Y()
	discriminant := radius*radius*dr2 - D*D
	sgn := 1.0
	if dy < 0 {
		sgn = -1
	}
	switch {
	case discriminant > 0:
		sq := math.Sqrt(discriminant)
		i1 := P((D*dy+sgn*dx*sq)/dr2, (-D*dx+math.Abs(dy)*sq)/dr2)
		i2 := P((D*dy-sgn*dx*sq)/dr2, (-D*dx-math.Abs(dy)*sq)/dr2)
		return []Pair{i1 + center, i2 + center}, nil
	case discriminant == 0:
		return []Pair{P(D*dy/dr2, -D*dx/dr2) + center}, nil
	}
	tracer().Debugf("line %s--%s misses circle %s, r=%g", p1, p2, center, radius)
	return nil, ErrNoIntersection
}

// LineLineIntersection finds the intersection of two lines, each given by a
// segment of non-zero length. Parallel lines or degenerate segments result in
// ErrParallel.
func LineLineIntersection(a1, a2, b1, b2 Pair) (Pair, error) {
	x1, y1, x2, y2 := a1.X(), a1.Y(), a2.X(), a2.Y()
	x3, y3, x4, y4 := b1.X(), b1.Y(), b2.X(), b2.Y()
	a := x1*y2 - y1*x2
	b := x3 - x4
	c := x1 - x2
	d := x3*y4 - y3*x4
	e := y3 - y4
	f := y1 - y2
	g := c*e - f*b
	if g == 0 {
		tracer().Debugf("lines %s--%s and %s--%s do not intersect", a1, a2, b1, b2)
		return Origin, ErrParallel
	}
	return P((a*b-c*d)/g, (a*e-f*d)/g), nil
}

// Mirror reflects a point across the line through st and en.
func Mirror(p, st, en Pair) Pair {
	seg := en - st
	proj := st + seg.Scaled(seg.Dot(p-st)/seg.Dot(seg)) // point of projection
	return proj.Scaled(2) - p
}

// CartesianToPolar returns the polar angle of p, normalized to [0, 2π),
// and its radius.
func CartesianToPolar(p Pair) (float64, float64) {
	return NormAngle(math.Atan2(p.Y(), p.X())), p.Abs()
}

// PolarToCartesian creates a pair from polar coordinates.
func PolarToCartesian(angle, radius float64) Pair {
	sin, cos := math.Sincos(angle)
	return P(radius*cos, radius*sin)
}

// Angle returns the polar angle of p in (-π, π].
func (p Pair) Angle() float64 {
	return math.Atan2(p.Y(), p.X())
}

// NormAngle reduces an angle to fit into [0, 2π).
func NormAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	if a >= 2*math.Pi { // a tiny negative a rounds up to 2π
		a = 0
	}
	return a
}

// WrapAngle reduces an angle to fit into (-π, π].
func WrapAngle(a float64) float64 {
	a = NormAngle(a)
	if a > math.Pi {
		a -= 2 * math.Pi
	}
	return a
}

// IsWithinAngle is a predicate: does angle q lie within the angular interval
// going counter-clockwise from st to en? The interval includes st and excludes
// en. If st is not less than en, the interval crosses the 0/2π seam.
// All angles are expected to be normalized to [0, 2π).
func IsWithinAngle(q, st, en float64) bool {
	if st < en {
		return st <= q && q < en
	}
	return st <= q || q < en
}
