package curves

import (
	"github.com/npillmayer/gears"
)

const (
	maxBisections = 100 // iteration cap for bisection searches
	maxExpansions = 64  // cap for widening the initial bracket
)

// Convergence reports how an iterative computation ended.
type Convergence struct {
	Iterations int  // iterations used
	Converged  bool // false if the iteration cap was hit
}

// Inversion is the result of AngleAtRadius.
type Inversion struct {
	Angle float64    // polar angle of Point, in (-π, π]
	Point gears.Pair // point on the curve with the requested radius
	T     float64    // curve parameter of Point
	Convergence
}

// AngleAtRadius converts a parametric curve c(t) into an explicit function
// radius → angle. The radial distance |c(t)| must not decrease while t moves
// from tmin towards tmax; tmax may be less than tmin to search in direction of
// decreasing t. tmax is an approximation only: if the curve does not reach
// radius at tmax, the bracket is moved and widened until it does.
//
// The search is a bisection, limited to 100 iterations. It stops early if the
// radius matches exactly or the bracket cannot be narrowed any further. If
// the cap is hit, a warning is traced and the best estimate is returned with
// Converged = false.
func AngleAtRadius(c Curve, radius, tmin, tmax float64) Inversion {
	inv := Inversion{}
	for i := 0; c.At(tmax).Abs() < radius; i++ {
		if i == maxExpansions || tmax == tmin {
			tracer().Errorf("warning: %s does not reach radius %g", c.Name(), radius)
			inv.T = tmax
			inv.Point = c.At(tmax)
			inv.Angle = inv.Point.Angle()
			return inv
		}
		tmin, tmax = tmax, tmax+(tmax-tmin)*2
	}
	isInv := tmax < tmin
	inside := func(t float64) bool {
		if isInv {
			return tmin > t && t > tmax
		}
		return tmin < t && t < tmax
	}
	var tcurr float64
	var pt gears.Pair
	for inv.Iterations = 1; inv.Iterations <= maxBisections; inv.Iterations++ {
		tcurr = (tmin + tmax) / 2
		pt = c.At(tcurr)
		r := pt.Abs()
		if r == radius || !inside(tcurr) {
			inv.Converged = true
			break
		}
		if r < radius {
			tmin = tcurr
		} else {
			tmax = tcurr
		}
	}
	if !inv.Converged {
		inv.Iterations = maxBisections
		tracer().P("curve", c.Name()).Errorf("warning: number of iterations exceeded the limit")
	}
	inv.T = tcurr
	inv.Point = pt
	inv.Angle = pt.Angle()
	return inv
}
