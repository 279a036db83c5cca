/*
Package gears computes the geometry of spur gear teeth generated by a rack,
hob or mating-gear cutter. The root package holds points, affine
transformations, point sequences, plane geometry primitives and the basic gear
dimensions. Curve families live in package curves, the tooth builder and the
sector extraction for animation in package tooth.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package gears

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'gears'
func tracer() tracing.Trace {
	return tracing.Select("gears")
}

// Deg2Rad converts degrees to radians.
var Deg2Rad float64 = math.Pi / 180

// Epsilon is the tolerance for comparing coordinates.
var Epsilon float64 = 0.0000001

// Is0 is a predicate: is n = 0 within Epsilon?
func Is0(n float64) bool {
	return math.Abs(n) <= Epsilon
}

// --- Points ----------------------------------------------------------------

// Pair is a 2D-point, stored as a complex number.
type Pair complex128

// Origin represents the frequently used constant (0,0).
var Origin = P(0, 0)

// Pretty Stringer for simple pairs.
func (p Pair) String() string {
	return fmt.Sprintf("(%g,%g)", real(p), imag(p))
}

// C returns a Pair as a complex number.
func (p Pair) C() complex128 {
	return complex128(p)
}

// P is a quick notation for contructing a pair from floats.
func P(x, y float64) Pair {
	return Pair(complex(x, y))
}

// X is the x-part of a pair.
func (p Pair) X() float64 {
	return real(p)
}

// Y is the y-part of a pair.
func (p Pair) Y() float64 {
	return imag(p)
}

// Abs is the distance of p from the origin, i.e. its radius.
func (p Pair) Abs() float64 {
	return cmplx.Abs(p.C())
}

// Dist returns the euclidean distance between two pairs.
func (p Pair) Dist(p2 Pair) float64 {
	return cmplx.Abs((p - p2).C())
}

// Dot is the scalar product of p and p2, interpreted as vectors.
func (p Pair) Dot(p2 Pair) float64 {
	return p.X()*p2.X() + p.Y()*p2.Y()
}

// IsOrigin is a predicate: is this pair origin?
func (p Pair) IsOrigin() bool {
	return p.Equal(Origin)
}

// Equal compares two pairs.
func (p Pair) Equal(p2 Pair) bool {
	return Is0(p.X()-p2.X()) && Is0(p.Y()-p2.Y())
}

// Scaled returns a new pair scaled by factor a.
func (p Pair) Scaled(a float64) Pair {
	return P(p.X()*a, p.Y()*a)
}

// Unit returns the unit vector in direction of p.
func (p Pair) Unit() Pair {
	return p.Scaled(1 / p.Abs())
}

// Shifted returns a new pair translated by v.
func (p Pair) Shifted(v Pair) Pair {
	return Translation(v).Transform(p)
}

// Rotated returns a new pair rotated around origin by theta (counterclockwise).
func (p Pair) Rotated(theta float64) Pair {
	return Rotation(theta).Transform(p)
}

// --- Affine transforms -----------------------------------------------------

// AT is an affine transform, a matrix type used for transforming vectors.
type AT []float64 // a 3x3 matrix, flattened by rows

func newAT() AT {
	return make([]float64, 9)
}

func (m AT) get(row, col int) float64 {
	return m[row*3+col]
}

func (m AT) set(row, col int, value float64) {
	m[row*3+col] = value
}

func (m AT) row(row int) []float64 {
	return m[row*3 : (row+1)*3]
}

func (m AT) col(col int) []float64 {
	return []float64{m[col], m[3+col], m[6+col]}
}

// Identity maps every point onto itself.
func Identity() AT {
	m := newAT()
	m.set(0, 0, 1.0)
	m.set(1, 1, 1.0)
	m.set(2, 2, 1.0)
	return m
}

// Translation transform. Translate a point by (dx,dy).
func Translation(p Pair) AT {
	m := Identity()
	m.set(0, 2, p.X())
	m.set(1, 2, p.Y())
	return m
}

// Rotation transform. Rotate a point counter-clockwise around the origin.
// Argument is in radians.
func Rotation(theta float64) AT {
	m := newAT()
	sin, cos := math.Sincos(theta)
	m.set(0, 0, cos)
	m.set(0, 1, -sin)
	m.set(1, 0, sin)
	m.set(1, 1, cos)
	m.set(2, 2, 1.0)
	return m
}

// Reflection transform. Reflects a point across the line through st and en.
// st and en must not coincide.
func Reflection(st, en Pair) AT {
	d := en - st
	l2 := d.Dot(d)
	dx, dy := d.X(), d.Y()
	r := newAT() // reflection across a line through the origin
	r.set(0, 0, (dx*dx-dy*dy)/l2)
	r.set(0, 1, 2*dx*dy/l2)
	r.set(1, 0, 2*dx*dy/l2)
	r.set(1, 1, (dy*dy-dx*dx)/l2)
	r.set(2, 2, 1.0)
	return Translation(-st).Combine(r).Combine(Translation(st))
}

// Debug Stringer for an affine transform.
func (m AT) String() string {
	return fmt.Sprintf("[%g,%g,%g|%g,%g,%g|%g,%g,%g]",
		m[0], m[1], m[2], m[3], m[4], m[5], m[6], m[7], m[8])
}

// v1 × v2, v.n = [a,b,c]
func dotProd(vec1, vec2 []float64) float64 {
	return vec1[0]*vec2[0] + vec1[1]*vec2[1] + vec1[2]*vec2[2]
}

// Combine 2 affine transformation to a new one: m is applied first, then n.
// Returns a new transformation without changing the argument(s).
func (m AT) Combine(n AT) AT {
	o := newAT()
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			o.set(row, col, dotProd(n.row(row), m.col(col)))
		}
	}
	return o
}

// Transform a 2D-point. The argument is unchanged and a new pair is returned.
func (m AT) Transform(p Pair) Pair {
	x, y := p.X(), p.Y()
	return P(
		m.get(0, 0)*x+m.get(0, 1)*y+m.get(0, 2),
		m.get(1, 0)*x+m.get(1, 1)*y+m.get(1, 2),
	)
}
