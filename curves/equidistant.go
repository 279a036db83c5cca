package curves

import (
	"math"
	"sort"

	"github.com/npillmayer/gears"
)

const (
	initialSegments = 8  // uniform subdivision to start from
	maxRefinements  = 10 // iteration cap for the refinement passes
)

// Equidistant distributes points along a curve for t within iv, adjusting the
// number of points and their parameters to get a distance of step between
// consecutive points. The distances are considered accurate enough if they
// deviate from step by at most tolerance (relative).
//
// The endpoints iv.Min and iv.Max are always part of the result. Refinement
// is limited to 10 passes; if the distances still are not within tolerance,
// a warning is traced and the last sample is returned with Converged = false.
func Equidistant(c Curve, iv Interval, step, tolerance float64) (gears.Polyline, Convergence) {
	conv := Convergence{}
	if iv.Width() == 0 {
		conv.Converged = true
		return gears.Polyline{c.At(iv.Min)}, conv
	}
	ts := linspace(iv.Min, iv.Max, initialSegments)
	var pts gears.Polyline
	for conv.Iterations = 1; conv.Iterations <= maxRefinements; conv.Iterations++ {
		pts = Sample(c, ts)
		dists := pts.Distances()
		if withinTolerance(dists, step, tolerance) {
			conv.Converged = true
			break
		}
		cum := make([]float64, len(pts))
		for i, d := range dists {
			cum[i+1] = cum[i] + d
		}
		total := cum[len(cum)-1]
		if total == 0 { // degenerate curve, all points coincide
			conv.Converged = true
			break
		}
		segnum := int(math.Ceil(total / step))
		dstep := total / float64(segnum)
		next := make([]float64, segnum+1)
		next[0], next[segnum] = iv.Min, iv.Max
		for i := 1; i < segnum; i++ {
			next[i] = interpolate(cum, ts, dstep*float64(i))
		}
		ts = next
	}
	if !conv.Converged {
		conv.Iterations = maxRefinements
		tracer().P("curve", c.Name()).Errorf("warning: equidistant sampling did not converge, %d points",
			len(pts))
	}
	return pts, conv
}

// linspace returns n+1 equally spaced values from a to b, both included.
func linspace(a, b float64, n int) []float64 {
	vals := make([]float64, n+1)
	step := (b - a) / float64(n)
	for i := 0; i < n; i++ {
		vals[i] = a + step*float64(i)
	}
	vals[n] = b
	return vals
}

func withinTolerance(dists []float64, step, tolerance float64) bool {
	for _, d := range dists {
		if math.Abs((d-step)/step) > tolerance {
			return false
		}
	}
	return true
}

// interpolate linearly interpolates y(x) from samples (xs[i], ys[i]).
// xs must be non-decreasing; x is clamped to the range of xs.
func interpolate(xs, ys []float64, x float64) float64 {
	i := sort.SearchFloat64s(xs, x) // first index with xs[i] >= x
	switch {
	case i == 0:
		return ys[0]
	case i == len(xs):
		return ys[len(ys)-1]
	}
	x0, x1 := xs[i-1], xs[i]
	if x1 == x0 {
		return ys[i]
	}
	return ys[i-1] + (ys[i]-ys[i-1])*(x-x0)/(x1-x0)
}
