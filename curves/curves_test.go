package curves

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/npillmayer/gears"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

var pairComparer = cmp.Comparer(func(p1, p2 gears.Pair) bool {
	return p1.Dist(p2) <= 1e-9
})

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

func TestCircle(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	c := Circle{R: 2, A0: math.Pi / 2}
	got := Sample(c, []float64{0, math.Pi / 2, -math.Pi / 2})
	want := gears.Polyline{gears.P(0, 2), gears.P(-2, 0), gears.P(2, 0)}
	diff(t, want, got, pairComparer)
}

func TestInvoluteRadius(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	c := Involute{R: 50, A0: 0.3}
	for _, tt := range []float64{0, 0.2, 0.7, 1.5} {
		assert.InDelta(t, 50*math.Sqrt(1+tt*tt), c.At(tt).Abs(), 1e-9)
	}
	// the curve starts on the base circle, at angle a0
	assert.InDelta(t, 0.3, c.At(0).Angle(), 1e-12)
	// polar angle of an unrotated involute is inv(φ) = tan φ - φ
	phi := 20 * gears.Deg2Rad
	assert.InDelta(t, math.Tan(phi)-phi, Involute{R: 1}.At(math.Tan(phi)).Angle(), 1e-12)
}

func TestEpitrochoidStartRadius(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	e := Epitrochoid{R: 90, Rr: 45, D: 55, A0: -0.1}
	assert.InDelta(t, 80.0, e.At(0).Abs(), 1e-9)
	assert.InDelta(t, -0.1, e.At(0).Angle(), 1e-12)
	f := FlatEpitrochoid{R: 90, L: 10, A0: -0.1}
	assert.InDelta(t, 80.0, f.At(0).Abs(), 1e-9)
	assert.InDelta(t, math.Hypot(80, 0.3*90), f.At(-0.3).Abs(), 1e-9)
}

func TestFlatEpitrochoidIsLimitOfEpitrochoid(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	// a huge rolling circle approximates the rolling line
	R, l := 90.0, 10.0
	rr := 1e7
	e := Epitrochoid{R: R, Rr: rr, D: rr + l}
	f := FlatEpitrochoid{R: R, L: l}
	for _, tt := range []float64{-0.4, -0.1, 0.2} {
		assert.InDelta(t, 0.0, e.At(tt).Dist(f.At(tt)), 1e-3, "t = %g", tt)
	}
}

func TestAngleAtRadius(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	base := 90 * math.Cos(20*gears.Deg2Rad)
	inv := AngleAtRadius(Involute{R: base}, 90, 0, 2)
	assert.True(t, inv.Converged)
	assert.InDelta(t, math.Tan(20*gears.Deg2Rad), inv.T, 1e-9)
	assert.InDelta(t, 0.0149044, inv.Angle, 1e-7)
	assert.InDelta(t, 90.0, inv.Point.Abs(), 1e-9)
}

func TestAngleAtRadiusWidensBracket(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	c := Involute{R: 10}
	inv := AngleAtRadius(c, 100, 0, 0.01) // t ≈ 9.95, far beyond 0.01
	assert.True(t, inv.Converged)
	assert.InDelta(t, math.Sqrt(99), inv.T, 1e-9)
	assert.InDelta(t, 100.0, inv.Point.Abs(), 1e-9)
}

func TestAngleAtRadiusDecreasingT(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	f := FlatEpitrochoid{R: 90, L: 10, A0: -0.04}
	inv := AngleAtRadius(f, 85, 0, -0.1)
	assert.True(t, inv.Converged)
	assert.Less(t, inv.T, 0.0)
	assert.InDelta(t, -math.Sqrt(85*85-80*80)/90, inv.T, 1e-9)
	assert.InDelta(t, 85.0, inv.Point.Abs(), 1e-9)
}

func TestAngleAtRadiusUnreachable(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	inv := AngleAtRadius(Circle{R: 1}, 2, 0, 1)
	assert.False(t, inv.Converged)
}

func TestEquidistantCircle(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	c := Circle{R: 10}
	pts, conv := Equidistant(c, Interval{0, math.Pi / 2}, 0.1, 0.01)
	assert.True(t, conv.Converged)
	assert.Greater(t, conv.Iterations, 1)
	assert.InDelta(t, 157, pts.N()-1, 1) // about 5π / 0.1 segments
	diff(t, gears.P(10, 0), pts.First(), pairComparer)
	diff(t, c.At(math.Pi/2), pts.Last(), pairComparer)
	for _, d := range pts.Distances() {
		assert.InDelta(t, 0.1, d, 0.001)
	}
}

func TestEquidistantReversed(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	c := Involute{R: 20}
	pts, conv := Equidistant(c, Interval{1, 0}, 0.2, 0.05)
	assert.True(t, conv.Converged)
	diff(t, c.At(1), pts.First(), pairComparer)
	diff(t, c.At(0), pts.Last(), pairComparer)
	_, radii := pts.Polar()
	for i := 1; i < len(radii); i++ {
		assert.Less(t, radii[i], radii[i-1])
	}
}

func TestEquidistantWarnsWithoutFailing(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	// a curve shorter than one step can never match the step width
	pts, conv := Equidistant(Circle{R: 1}, Interval{0, 0.01}, 1, 0.1)
	assert.False(t, conv.Converged)
	assert.Equal(t, 10, conv.Iterations)
	assert.Equal(t, 2, pts.N())
}

func TestEquidistantZeroWidth(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	pts, conv := Equidistant(Circle{R: 1}, Interval{0.5, 0.5}, 1, 0.1)
	assert.True(t, conv.Converged)
	assert.Equal(t, 1, pts.N())
}

func TestInterpolate(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	xs := []float64{0, 1, 1, 3}
	ys := []float64{0, 10, 10, 30}
	got := []float64{
		interpolate(xs, ys, -1), interpolate(xs, ys, 0.5),
		interpolate(xs, ys, 2), interpolate(xs, ys, 5),
	}
	diff(t, []float64{0, 5, 20, 30}, got, cmpopts.EquateApprox(0, 1e-12))
	diff(t, []float64{0, 0.25, 0.5, 0.75, 1}, linspace(0, 1, 4), cmpopts.EquateApprox(0, 1e-12))
}

func TestSpecString(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	s := Spec{Name: "Involute", Curve: Involute{R: 84.5, A0: -0.015}, Interval: Interval{0.02, 0.63}}
	str := s.String()
	assert.Contains(t, str, "x = r * (cos(t_) + t * sin(t_))")
	assert.Contains(t, str, "a0 = -0.015")
	assert.Contains(t, str, "t = 0.02 … 0.63")
	diff(t, s.Curve.At(0.63), s.End(), pairComparer)
}
