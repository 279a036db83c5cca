package gears

import (
	"errors"
	"math"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func TestNumericBasic(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	a := 0.000000008
	if !Is0(a) {
		t.Errorf("Expected a to be zero, is not")
	}
}

func TestPairBasic(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	p := P(3, 2)
	q := P(-3, -2)
	r := p + q
	if !r.IsOrigin() {
		t.Errorf("Expected p + q to be (0,0), is %v", r)
	}
	assert.InDelta(t, 5.0, P(3, 4).Abs(), 1e-12)
	assert.InDelta(t, 5.0, P(1, 1).Dist(P(4, 5)), 1e-12)
}

func TestTranslation(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	if !P(1, 1).Shifted(P(-1, -1)).IsOrigin() {
		t.Errorf("Expected (1,1) shifted (-1,-1) to be origin, is not")
	}
	if !P(1, 0).Rotated(180 * Deg2Rad).Shifted(P(1, 0)).IsOrigin() {
		t.Errorf("Expected result to be origin, is not")
	}
}

func TestRotateInverse(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	for _, p := range []Pair{P(1, 0), P(-3.5, 2), P(80, -13.25)} {
		for _, a := range []float64{0.1, -2.7, math.Pi, 11.3} {
			q := p.Rotated(a).Rotated(-a)
			assert.InDelta(t, p.X(), q.X(), 1e-9)
			assert.InDelta(t, p.Y(), q.Y(), 1e-9)
		}
	}
}

func TestPolarRoundTrip(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	for _, ang := range []float64{0, 0.5, 3, 4.5, 6.2, -1, 7.5, -12} {
		ang2, rad := CartesianToPolar(PolarToCartesian(ang, 42))
		assert.InDelta(t, 42.0, rad, 1e-9)
		want := math.Mod(ang, 2*math.Pi)
		if want < 0 {
			want += 2 * math.Pi
		}
		assert.InDelta(t, want, ang2, 1e-9, "angle %g", ang)
		assert.True(t, ang2 >= 0 && ang2 < 2*math.Pi)
	}
}

func TestWrapAngle(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	assert.InDelta(t, -0.5, WrapAngle(2*math.Pi-0.5), 1e-12)
	assert.InDelta(t, 0.5, WrapAngle(0.5-4*math.Pi), 1e-12)
	assert.InDelta(t, math.Pi, WrapAngle(math.Pi), 1e-12)
	assert.Equal(t, 0.0, NormAngle(-1e-18))
}

func TestMirror(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	m := Mirror(P(1, 1), P(0, 0), P(1, 0))
	assert.True(t, m.Equal(P(1, -1)), "got %s", m)
	m = Mirror(P(2, 0), P(0, 0), P(1, 1))
	assert.True(t, m.Equal(P(0, 2)), "got %s", m)
	m = Mirror(P(3, 5), P(1, 0), P(1, 7)) // vertical line x=1
	assert.True(t, m.Equal(P(-1, 5)), "got %s", m)
	r := Reflection(P(1, 0), P(1, 7)).Transform(P(3, 5))
	assert.True(t, r.Equal(m), "reflection transform %s differs from mirror %s", r, m)
}

func TestLineCircleIntersection(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	pts, err := LineCircleIntersection(P(-5, 0), P(5, 0), P(0, 0), 2)
	assert.NoError(t, err)
	if assert.Len(t, pts, 2) {
		for _, p := range pts {
			assert.InDelta(t, 2.0, p.Abs(), 1e-9)
			assert.InDelta(t, 0.0, p.Y(), 1e-9)
		}
	}
	pts, err = LineCircleIntersection(P(0, 0), P(0, 1), P(1, 1), 1) // tangent x = 0
	assert.NoError(t, err)
	if assert.Len(t, pts, 1) {
		assert.True(t, pts[0].Equal(P(0, 1)), "got %s", pts[0])
	}
	pts, err = LineCircleIntersection(P(0, 0), P(1, 1), P(10, 0), 1)
	assert.Nil(t, pts)
	assert.True(t, errors.Is(err, ErrNoIntersection))
	assert.True(t, errors.Is(err, ErrDomain))
}

func TestLineCircleIntersectionOffCenter(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	c := P(-90, 0)
	pts, err := LineCircleIntersection(P(0, 0), P(-0.34, 0.94), c, 100)
	assert.NoError(t, err)
	assert.Len(t, pts, 2)
	for _, p := range pts {
		assert.InDelta(t, 100.0, p.Dist(c), 1e-9)
		// on the line: cross product with direction vanishes
		assert.InDelta(t, 0.0, p.X()*0.94+p.Y()*0.34, 1e-9)
	}
}

func TestLineLineIntersection(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	p, err := LineLineIntersection(P(0, 0), P(1, 1), P(0, 2), P(2, 0))
	assert.NoError(t, err)
	assert.True(t, p.Equal(P(1, 1)), "got %s", p)
	p, err = LineLineIntersection(P(-1, 3), P(2, 9), P(0, 5), P(1, 5)) // horizontal y=5
	assert.NoError(t, err)
	assert.True(t, p.Equal(P(0, 5)), "got %s", p)
	_, err = LineLineIntersection(P(0, 0), P(1, 1), P(0, 1), P(1, 2))
	assert.True(t, errors.Is(err, ErrParallel))
	assert.True(t, errors.Is(err, ErrDomain))
	_, err = LineLineIntersection(P(0, 0), P(0, 0), P(0, 1), P(1, 2))
	assert.True(t, errors.Is(err, ErrDomain))
}

func TestIsWithinAngle(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	assert.True(t, IsWithinAngle(1, 0.5, 2))
	assert.True(t, IsWithinAngle(0.5, 0.5, 2))
	assert.False(t, IsWithinAngle(2, 0.5, 2))
	assert.False(t, IsWithinAngle(3, 0.5, 2))
	// interval crossing the seam
	st, en := 1.5*math.Pi, 0.5*math.Pi
	assert.True(t, IsWithinAngle(0, st, en))
	assert.True(t, IsWithinAngle(6, st, en))
	assert.True(t, IsWithinAngle(0.3, st, en))
	assert.False(t, IsWithinAngle(math.Pi, st, en))
	// start == end covers the whole circle
	assert.True(t, IsWithinAngle(2.2, 1, 1))
}

func TestPolylineStitch(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	a := Polyline{P(0, 0), P(1, 0)}
	b := Polyline{P(1, 0), P(2, 0), P(3, 0)}
	c := Polyline{P(3, 0), P(3, 1)}
	s := Stitch(a, nil, b, c)
	assert.Equal(t, Polyline{P(0, 0), P(1, 0), P(2, 0), P(3, 0), P(3, 1)}, s)
	assert.Equal(t, Polyline{P(3, 1), P(3, 0), P(2, 0), P(1, 0), P(0, 0)}, s.Reversed())
	assert.Equal(t, []float64{1, 1, 1, 1}, s.Distances())
	assert.Equal(t, "(0,0) -- (1,0)", a.String())
}

func TestPopulate(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	arc := Polyline{PolarToCartesian(0, 1), PolarToCartesian(math.Pi/4, 1.5), PolarToCartesian(math.Pi/2, 1)}
	ring := Populate(arc, 4)
	assert.Equal(t, 9, ring.N())
	assert.True(t, ring.First().Equal(ring.Last()), "ring not closed: %s", ring)
}

func TestGearParams(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	gp, err := NewGearParams(18, 10, 20*Deg2Rad, 1, 1)
	assert.NoError(t, err)
	assert.InDelta(t, 90.0, gp.PitchRadius, 1e-9)
	assert.InDelta(t, 84.5723, gp.BaseRadius, 1e-4)
	assert.InDelta(t, 100.0, gp.OutsideRadius, 1e-9)
	assert.InDelta(t, 80.0, gp.RootRadius, 1e-9)
	assert.InDelta(t, math.Pi/9, gp.ToothAngle, 1e-12)
	assert.InDelta(t, 10*math.Pi, gp.CircularPitch, 1e-12)
	assert.Contains(t, gp.String(), "pitch diameter")
	std, err := StandardGearParams(18, 10)
	assert.NoError(t, err)
	assert.InDelta(t, 77.5, std.RootRadius, 1e-9)
}

func TestGearParamsInvalid(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	for _, tc := range []struct {
		n      int
		m, pa  float64
		ad, de float64
	}{
		{2, 10, 0.35, 1, 1},
		{18, 0, 0.35, 1, 1},
		{18, 10, math.Pi / 2, 1, 1},
		{18, 10, 0.35, 0, 1},
		{18, 10, 0.35, 1, math.NaN()},
		{4, 10, 0.35, 1, 2.5}, // root radius collapses
	} {
		_, err := NewGearParams(tc.n, tc.m, tc.pa, tc.ad, tc.de)
		assert.True(t, errors.Is(err, ErrInvalidParams), "expected ErrInvalidParams for %+v, got %v", tc, err)
	}
}
