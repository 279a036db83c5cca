/*
Package kinematics animates a pair of meshing gears: the line of action with
its contact points, and a rack meshing with both gears.

The coordinate system has the pitch point at the origin. Gear A is centered
at (−Ra, 0), gear B at (Rb, 0), with Ra and Rb their pitch radii. Animation
progress is counted in teeth, as for gear sectors.
*/
package kinematics

import (
	"fmt"
	"math"

	"github.com/npillmayer/gears"
	"github.com/npillmayer/gears/tooth"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'gears'
func tracer() tracing.Trace {
	return tracing.Select("gears")
}

// Transmission holds the lines of action of two meshing gears.
type Transmission struct {
	a, b     *tooth.HalfTooth
	lines    [2][2]gears.Pair
	baseStep float64 // base pitch, distance of contact points on a line of action
	avgCount float64 // average number of contact points
}

// NewTransmission computes the lines of action for the flanks of gear a
// meshing with gear b. It fails with gears.ErrDomain if the gears cannot mesh.
func NewTransmission(a, b *tooth.HalfTooth) (*Transmission, error) {
	if a == nil || b == nil {
		return nil, fmt.Errorf("%w: missing half tooth", gears.ErrInvalidParams)
	}
	tr := &Transmission{a: a, b: b}
	line, err := tr.actionLine()
	if err != nil {
		return nil, err
	}
	tr.lines[0] = line
	tr.lines[1] = [2]gears.Pair{
		gears.P(line[1].X(), -line[1].Y()),
		gears.P(line[0].X(), -line[0].Y()),
	}
	tr.baseStep = a.BaseRadius * 2 * math.Pi / float64(a.ToothNum)
	tr.avgCount = line[1].Dist(line[0]) / tr.baseStep
	tracer().Infof("transmission: base pitch %g, %.6g contact points on average", tr.baseStep, tr.avgCount)
	return tr, nil
}

// actionLine intersects the line of action with the outside and min-contact
// circles of both gears, and keeps the points closest to the pitch point on
// either side.
func (tr *Transmission) actionLine() ([2]gears.Pair, error) {
	dir := gears.P(0, 1).Rotated(tr.a.PressureAngle)
	var pts []gears.Pair
	for i, ht := range []*tooth.HalfTooth{tr.a, tr.b} {
		center := gears.P(ht.PitchRadius*float64(2*i-1), 0)
		for _, r := range []float64{ht.OutsideRadius, ht.MinContactRadius()} {
			ip, err := gears.LineCircleIntersection(gears.Origin, dir, center, r)
			if err != nil {
				return [2]gears.Pair{}, fmt.Errorf("line of action: %w", err)
			}
			pts = append(pts, ip...)
		}
	}
	minPos, maxNeg := gears.P(0, math.Inf(1)), gears.P(0, math.Inf(-1))
	for _, p := range pts {
		if p.Y() >= 0 && p.Y() < minPos.Y() {
			minPos = p
		}
		if p.Y() <= 0 && p.Y() > maxNeg.Y() {
			maxNeg = p
		}
	}
	if math.IsInf(minPos.Y(), 0) || math.IsInf(maxNeg.Y(), 0) {
		return [2]gears.Pair{}, fmt.Errorf("line of action: %w", gears.ErrNoIntersection)
	}
	return [2]gears.Pair{minPos, maxNeg}, nil
}

// ActionLine returns the endpoints of line of action i (0 for the flanks
// turning gear A, 1 for the opposite flanks).
func (tr *Transmission) ActionLine(i int) (gears.Pair, gears.Pair) {
	return tr.lines[i][0], tr.lines[i][1]
}

// BaseStep is the base pitch of gear A.
func (tr *Transmission) BaseStep() float64 {
	return tr.baseStep
}

// AvgContactPoints is the contact ratio: the average number of teeth in
// contact along a line of action.
func (tr *Transmission) AvgContactPoints() float64 {
	return tr.avgCount
}

// contactPoints returns the points on line of action i, spaced by the base
// pitch, at an animation state.
func (tr *Transmission) contactPoints(i int, progress float64) gears.Polyline {
	pt0, pt1 := tr.lines[i][0], tr.lines[i][1]
	uv := (pt1 - pt0).Unit()
	vals := SeedRange(-pt0.Abs(), pt1.Abs(), tr.baseStep*progress, tr.baseStep)
	pts := make(gears.Polyline, len(vals))
	for j, v := range vals {
		pts[j] = uv.Scaled(v)
	}
	return pts
}

// ContactPoints returns the contact points on both lines of action at an
// animation state.
func (tr *Transmission) ContactPoints(progress float64) (gears.Polyline, gears.Polyline) {
	return tr.contactPoints(0, progress-tr.a.ShiftFraction()),
		tr.contactPoints(1, progress-tr.b.ShiftFraction()+0.5)
}

func (tr *Transmission) String() string {
	return fmt.Sprintf("Average contact points number = %.6g", tr.avgCount)
}
