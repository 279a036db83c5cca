// Package curves provides the parametric curves a gear tooth is made of,
// a radius-to-parameter inversion for them and an equidistant sampler.
//
// All curves are given as parametric equations x(t), y(t) with an additional
// rotation angle A0. Curves are pure values; evaluating them has no side
// effects.
package curves

import (
	"fmt"
	"math"

	"github.com/npillmayer/gears"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'gears'
func tracer() tracing.Trace {
	return tracing.Select("gears")
}

// Curve is a parametric plane curve.
type Curve interface {
	At(t float64) gears.Pair // point at parameter t
	Name() string            // family name of the curve
	Equations() []string     // x(t), y(t) and auxiliary definitions, as text
	Params() []Param         // numeric parameters, for display
}

// Param is a named numeric parameter of a curve.
type Param struct {
	Name  string
	Value float64
}

// Sample evaluates a curve for a vector of parameter values.
func Sample(c Curve, ts []float64) gears.Polyline {
	pts := make(gears.Polyline, len(ts))
	for i, t := range ts {
		pts[i] = c.At(t)
	}
	return pts
}

// Circle of radius R around the origin.
type Circle struct {
	R  float64 // radius
	A0 float64 // rotation angle
}

// At returns the point at polar angle t (+ A0).
func (c Circle) At(t float64) gears.Pair {
	sin, cos := math.Sincos(t + c.A0)
	return gears.P(c.R*cos, c.R*sin)
}

func (c Circle) Name() string { return "circle" }

func (c Circle) Equations() []string {
	return []string{"x = r * cos(t)", "y = r * sin(t)"}
}

func (c Circle) Params() []Param {
	return []Param{{"r", c.R}}
}

// Involute of a circle of radius R. Parameter t is the polar angle of the
// tangent point. See https://en.wikipedia.org/wiki/Involute.
type Involute struct {
	R  float64 // base circle radius
	A0 float64 // rotation angle
}

func (c Involute) At(t float64) gears.Pair {
	sin, cos := math.Sincos(t + c.A0)
	return gears.P(c.R*(cos+t*sin), c.R*(sin-t*cos))
}

func (c Involute) Name() string { return "involute" }

func (c Involute) Equations() []string {
	return []string{"x = r * (cos(t_) + t * sin(t_))", "y = r * (sin(t_) - t * cos(t_))", "t_ = t + a0"}
}

func (c Involute) Params() []Param {
	return []Param{{"r", c.R}, {"a0", c.A0}}
}

// Epitrochoid is the curve traced by a point at distance D from the center of
// a circle of radius Rr, rolling without slipping around the outside of a fixed
// circle of radius R. Parameter t is the polar angle of the rolling circle's
// center. See https://en.wikipedia.org/wiki/Epitrochoid.
type Epitrochoid struct {
	R  float64 // fixed circle radius
	Rr float64 // rolling circle radius
	D  float64 // distance between the point and the rolling circle's center
	A0 float64 // rotation angle
}

func (c Epitrochoid) At(t float64) gears.Pair {
	t_ := t + c.A0
	s1, c1 := math.Sincos(t_)
	s2, c2 := math.Sincos(c.R*t/c.Rr + t_)
	return gears.P((c.R+c.Rr)*c1-c.D*c2, (c.R+c.Rr)*s1-c.D*s2)
}

func (c Epitrochoid) Name() string { return "epitrochoid" }

func (c Epitrochoid) Equations() []string {
	return []string{"x = (R + r) * cos(t_) - d * cos(R * t / r + t_)",
		"y = (R + r) * sin(t_) - d * sin(R * t / r + t_)", "t_ = t + a0"}
}

func (c Epitrochoid) Params() []Param {
	return []Param{{"R", c.R}, {"r", c.Rr}, {"d", c.D}, {"a0", c.A0}}
}

// FlatEpitrochoid is the limiting case of an epitrochoid for a rolling circle
// of infinite radius: a straight line rolls around the fixed circle of radius
// R, and the point is fixed at distance L from the line. Parameter t is the
// polar angle of the tangent point.
type FlatEpitrochoid struct {
	R  float64 // fixed circle radius
	L  float64 // distance between the point and the line
	A0 float64 // rotation angle
}

func (c FlatEpitrochoid) At(t float64) gears.Pair {
	sin, cos := math.Sincos(t + c.A0)
	return gears.P((c.R-c.L)*cos+t*c.R*sin, (c.R-c.L)*sin-t*c.R*cos)
}

func (c FlatEpitrochoid) Name() string { return "flat epitrochoid" }

func (c FlatEpitrochoid) Equations() []string {
	return []string{"x = (R - l) * cos(t_) + t * R * sin(t_)",
		"y = (R - l) * sin(t_) - t * R * cos(t_)", "t_ = t + a0"}
}

func (c FlatEpitrochoid) Params() []Param {
	return []Param{{"R", c.R}, {"l", c.L}, {"a0", c.A0}}
}

// Interval is a parameter interval. Min may be greater than Max, in which case
// curves are traversed in direction of decreasing t.
type Interval struct {
	Min, Max float64
}

// Width returns the signed width of the interval.
func (iv Interval) Width() float64 {
	return iv.Max - iv.Min
}

// Spec is a named curve together with the parameter interval it is evaluated on.
type Spec struct {
	Name     string
	Curve    Curve
	Interval Interval
}

// Start returns the point at the start of the interval.
func (s Spec) Start() gears.Pair {
	return s.Curve.At(s.Interval.Min)
}

// End returns the point at the end of the interval.
func (s Spec) End() gears.Pair {
	return s.Curve.At(s.Interval.Max)
}

// Sample distributes points evenly along the curve spec. See Equidistant.
func (s Spec) Sample(step, tolerance float64) (gears.Polyline, Convergence) {
	tracer().P("curve", s.Name).Debugf("sampling %s for t = %g … %g", s.Curve.Name(),
		s.Interval.Min, s.Interval.Max)
	return Equidistant(s.Curve, s.Interval, step, tolerance)
}

// String describes the curve spec: equations, parameter interval and
// parameters, one per line.
func (s Spec) String() string {
	out := s.Name + ":"
	for _, eq := range s.Curve.Equations() {
		out += "\n\t" + eq
	}
	out += fmt.Sprintf("\n\tt = %.6g … %.6g", s.Interval.Min, s.Interval.Max)
	for _, p := range s.Curve.Params() {
		out += fmt.Sprintf("\n\t%s = %.6g", p.Name, p.Value)
	}
	return out
}
