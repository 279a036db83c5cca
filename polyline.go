package gears

import (
	"fmt"
	"math"
	"strings"
)

// Polyline is an ordered sequence of points, usually a sampled curve.
type Polyline []Pair

// N returns the number of points.
func (pl Polyline) N() int {
	return len(pl)
}

// First returns the first point. pl must not be empty.
func (pl Polyline) First() Pair {
	return pl[0]
}

// Last returns the last point. pl must not be empty.
func (pl Polyline) Last() Pair {
	return pl[len(pl)-1]
}

// Transformed returns a new polyline with every point transformed by m.
func (pl Polyline) Transformed(m AT) Polyline {
	out := make(Polyline, len(pl))
	for i, p := range pl {
		out[i] = m.Transform(p)
	}
	return out
}

// Rotated returns a new polyline rotated around origin by theta (counterclockwise).
func (pl Polyline) Rotated(theta float64) Polyline {
	return pl.Transformed(Rotation(theta))
}

// Mirrored returns a new polyline reflected across the line through st and en.
func (pl Polyline) Mirrored(st, en Pair) Polyline {
	return pl.Transformed(Reflection(st, en))
}

// Reversed returns a new polyline with the order of points reversed.
func (pl Polyline) Reversed() Polyline {
	out := make(Polyline, len(pl))
	for i, p := range pl {
		out[len(pl)-1-i] = p
	}
	return out
}

// Polar returns the polar angles (normalized to [0, 2π)) and radii of all points.
func (pl Polyline) Polar() (angles []float64, radii []float64) {
	angles = make([]float64, len(pl))
	radii = make([]float64, len(pl))
	for i, p := range pl {
		angles[i], radii[i] = CartesianToPolar(p)
	}
	return
}

// Distances returns the euclidean distances between consecutive points.
func (pl Polyline) Distances() []float64 {
	if len(pl) < 2 {
		return nil
	}
	d := make([]float64, len(pl)-1)
	for i := 1; i < len(pl); i++ {
		d[i-1] = pl[i].Dist(pl[i-1])
	}
	return d
}

// Stitch joins a sequence of curves. Terminal points of adjacent curves are
// supposed to be the same, so the first point of every curve but the first
// one is dropped. Empty curves are skipped.
func Stitch(curves ...Polyline) Polyline {
	n := 0
	for _, c := range curves {
		n += len(c)
	}
	out := make(Polyline, 0, n)
	for _, c := range curves {
		if len(c) == 0 {
			continue
		}
		if len(out) > 0 {
			c = c[1:]
		}
		out = append(out, c...)
	}
	return out
}

// Populate multiplies a polyline num times, placing the copies around the
// origin at equal angular steps, and stitches them together.
func Populate(pl Polyline, num int) Polyline {
	step := 2 * math.Pi / float64(num)
	copies := make([]Polyline, num)
	for i := range copies {
		copies[i] = pl.Rotated(step * float64(i))
	}
	return Stitch(copies...)
}

// Pretty Stringer for polylines: (x,y) -- (x,y) -- ...
func (pl Polyline) String() string {
	var sb strings.Builder
	for i, p := range pl {
		if i > 0 {
			sb.WriteString(" -- ")
		}
		fmt.Fprintf(&sb, "(%.4g,%.4g)", p.X(), p.Y())
	}
	return sb.String()
}
