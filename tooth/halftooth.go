// Package tooth builds gear tooth profiles: the half tooth generated by a
// cutter, and sectors of the full gear assembled from it.
//
// A half tooth spans from the middle of a tooth gap (angle −τ/4, τ being the
// tooth angle) to the middle of the tooth tip (angle +τ/4). It consists of
// four curves, ordered from the root to the tip:
//
//	root circle → fillet (trochoid) → involute flank → outside circle
//
// The fillet is the path of the cutter's tip corner. If the cutter cuts away
// part of the involute flank, the tooth is undercut and the transition from
// fillet to flank is found where both curves intersect.
package tooth

import (
	"fmt"
	"math"
	"strings"

	"github.com/npillmayer/gears"
	"github.com/npillmayer/gears/curves"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'gears'
func tracer() tracing.Trace {
	return tracing.Select("gears")
}

// Defaults for Options.
const (
	DefaultResolution = 0.1 // target distance between profile points
	DefaultTolerance  = 0.1 // relative tolerance of the point distance
)

// Options control the generation of a half tooth. A nil *Options means
// rack cutter, no profile shift and the default resolution and tolerance.
type Options struct {
	ProfileShiftCoef float64 // profile shift in units of module
	Cutter           Cutter
	Resolution       float64 // 0 → DefaultResolution
	Tolerance        float64 // 0 → DefaultTolerance
}

// ConvergenceWarning records an iterative step of the build which did not
// converge. The profile is still usable, but may be less accurate.
type ConvergenceWarning struct {
	Stage       string
	Convergence curves.Convergence
}

func (w ConvergenceWarning) String() string {
	return fmt.Sprintf("%s did not converge after %d iterations", w.Stage, w.Convergence.Iterations)
}

// HalfTooth is one half of a gear tooth, generated by a cutter.
// It embeds the gear params it has been built from.
type HalfTooth struct {
	*gears.GearParams
	cutter     Cutter
	shiftCoef  float64
	resolution float64
	tolerance  float64

	shiftFraction float64 // profile shift as a fraction of the circular pitch
	undercut      bool
	minRCont      float64 // radius of the fillet/involute transition

	specs    [4]curves.Spec // root, fillet, involute, outside
	segments [4]gears.Polyline
	profile  gears.Polyline
	warnings []ConvergenceWarning
}

// BuildHalfTooth builds the profile of a half tooth for gear params.
// It returns ErrInvalidParams for missing params or invalid options.
// Iterations which do not converge are not errors; they are traced and
// reported by Warnings.
func BuildHalfTooth(params *gears.GearParams, opts *Options) (*HalfTooth, error) {
	if params == nil {
		return nil, fmt.Errorf("%w: no gear params given", gears.ErrInvalidParams)
	}
	if opts == nil {
		opts = &Options{}
	}
	ht := &HalfTooth{
		GearParams: params,
		cutter:     opts.Cutter,
		shiftCoef:  opts.ProfileShiftCoef,
		resolution: opts.Resolution,
		tolerance:  opts.Tolerance,
	}
	if ht.resolution == 0 {
		ht.resolution = DefaultResolution
	}
	if ht.tolerance == 0 {
		ht.tolerance = DefaultTolerance
	}
	switch {
	case !(ht.resolution > 0) || !(ht.tolerance > 0):
		return nil, fmt.Errorf("%w: resolution and tolerance must be positive", gears.ErrInvalidParams)
	case ht.cutter.Kind == GearCutter && ht.cutter.Teeth < 3:
		return nil, fmt.Errorf("%w: gear cutter with %d teeth", gears.ErrInvalidParams, ht.cutter.Teeth)
	case ht.cutter.Kind != GearCutter && ht.cutter.Kind != RackCutter:
		return nil, fmt.Errorf("%w: unknown cutter %s", gears.ErrInvalidParams, ht.cutter.Kind)
	}
	ht.calcCurves()
	ht.sample()
	tracer().P("teeth", ht.ToothNum).Infof("half tooth: %s, undercut=%v, %d points, %d warnings",
		ht.cutter, ht.undercut, len(ht.profile), len(ht.warnings))
	return ht, nil
}

// shiftAngle converts a distance along the pitch line into an angle at the
// gear center, projected by the pressure angle.
func (ht *HalfTooth) shiftAngle(dist float64) float64 {
	return ht.ToothAngle * dist * math.Tan(ht.PressureAngle) / ht.CircularPitch
}

// invert is AngleAtRadius with convergence bookkeeping.
func (ht *HalfTooth) invert(stage string, c curves.Curve, radius, tmin, tmax float64) curves.Inversion {
	inv := curves.AngleAtRadius(c, radius, tmin, tmax)
	if !inv.Converged {
		ht.warnings = append(ht.warnings, ConvergenceWarning{Stage: stage, Convergence: inv.Convergence})
	}
	return inv
}

// calcCurves sets up the four curve specs of the half tooth.
func (ht *HalfTooth) calcCurves() {
	q := ht.ToothAngle / 4
	var filletShift, cutterPitchR, cutterOutsideR float64
	switch ht.cutter.Kind {
	case GearCutter:
		filletShift, cutterPitchR, cutterOutsideR = ht.gearCutterShift()
	default:
		filletShift = ht.shiftAngle(ht.Dedendum)
	}
	base := curves.Involute{R: ht.BaseRadius}
	angPitch := ht.invert("involute at pitch radius", base, ht.PitchRadius, 0, 2).Angle
	outside := ht.invert("involute at outside radius", base, ht.OutsideRadius, 0, 2)

	profileShift := ht.shiftAngle(ht.shiftCoef * ht.Module)
	ht.shiftFraction = ht.shiftCoef * ht.Module * math.Tan(ht.PressureAngle) / ht.CircularPitch
	filletShift -= profileShift
	angPitch -= profileShift

	involute := curves.Involute{R: ht.BaseRadius, A0: -angPitch}
	fillet := ht.filletCurve(-filletShift, cutterPitchR, cutterOutsideR)

	var junctionR, junctionAng float64
	if ht.cutter.Kind == GearCutter {
		junctionR, junctionAng = ht.gearCutterJunction()
	} else {
		junctionR, junctionAng = ht.rackJunction()
	}
	ht.undercut = 2*junctionAng < math.Pi
	tracer().P("teeth", ht.ToothNum).Debugf("junction at r=%g, α=%g, undercut=%v",
		junctionR, junctionAng, ht.undercut)

	var tInv, tFil float64
	if ht.undercut {
		tInv, tFil, ht.minRCont = ht.intersection(involute, fillet)
	} else {
		tInv = ht.invert("involute at junction", involute, junctionR, 0, 1).T
		tFil = ht.invert("fillet at junction", fillet, junctionR, 0, -0.1).T
		ht.minRCont = junctionR
	}

	tipSt := outside.Angle - angPitch
	if tipSt > q {
		tracer().P("teeth", ht.ToothNum).Errorf("warning: pointed tooth, flanks meet below outside radius")
	}
	ht.specs = [4]curves.Spec{
		{
			Name:     "Root circle",
			Curve:    curves.Circle{R: ht.RootRadius},
			Interval: curves.Interval{Min: -q, Max: -filletShift},
		},
		{
			Name:     "Fillet",
			Curve:    fillet,
			Interval: curves.Interval{Min: 0, Max: tFil},
		},
		{
			Name:     "Involute",
			Curve:    involute,
			Interval: curves.Interval{Min: tInv, Max: outside.T},
		},
		{
			Name:     "Outside circle",
			Curve:    curves.Circle{R: ht.OutsideRadius},
			Interval: curves.Interval{Min: tipSt, Max: q},
		},
	}
}

// gearCutterShift returns the fillet shift angle for a gear cutter, as well as
// the cutter's pitch and outside radius.
func (ht *HalfTooth) gearCutterShift() (shift, pitchR, outsideR float64) {
	ratio := float64(ht.cutter.Teeth) / float64(ht.ToothNum)
	pitchR = ht.PitchRadius * ratio
	outsideR = pitchR + ht.Dedendum
	base := curves.Involute{R: ht.BaseRadius * ratio}
	angPitch := ht.invert("cutter involute at pitch radius", base, pitchR, 0, 2).Angle
	angOutside := ht.invert("cutter involute at outside radius", base, outsideR, 0, 2).Angle
	shift = (angOutside - angPitch) * ratio
	return
}

// rackJunction returns radius and angle of the point where the line of action
// of a rack cutter leaves the cutter's tip line. An angle below π/2 means
// undercut.
func (ht *HalfTooth) rackJunction() (float64, float64) {
	root := ht.RootRadius
	r := math.Hypot(ht.Dedendum/math.Tan(ht.PressureAngle), root)
	alpha := math.Pi/2 - math.Acos(root/r) + ht.PressureAngle
	return r, alpha
}

// gearCutterJunction is rackJunction for gear cutters. The tip corner of the
// cutter is located with the law of sines, the resulting distance to the gear
// center with the law of cosines.
func (ht *HalfTooth) gearCutterJunction() (float64, float64) {
	b := float64(ht.cutter.Teeth) * ht.Module / 2
	a := b + ht.Dedendum
	alpha := math.Pi/2 + ht.PressureAngle
	r2t := a / math.Sin(alpha)
	beta := math.Asin(b / r2t)
	gamma := math.Pi - alpha - beta
	c := r2t * math.Sin(gamma)

	b_ := ht.PitchRadius
	alpha_ := math.Pi/2 - ht.PressureAngle
	a_ := math.Sqrt(b_*b_ + c*c - 2*b_*c*math.Cos(alpha_))
	beta_ := math.Acos((a_*a_ + c*c - b_*b_) / (2 * a_ * c))
	return a_, beta_
}

// intersection finds the point where fillet and involute cross, by bisection
// over the radius between base circle and outside circle. It returns the
// involute's and the fillet's parameter and the radius.
func (ht *HalfTooth) intersection(involute, fillet curves.Curve) (tInv, tFil, radius float64) {
	rmin, rmax := ht.BaseRadius, ht.OutsideRadius
	var inv, fil curves.Inversion
	conv := curves.Convergence{}
	for conv.Iterations = 1; conv.Iterations <= 100; conv.Iterations++ {
		radius = (rmin + rmax) / 2
		inv = ht.invert("involute in undercut search", involute, radius, 0, 1)
		fil = ht.invert("fillet in undercut search", fillet, radius, 0, -0.1)
		if inv.Angle == fil.Angle || !(rmin < radius && radius < rmax) {
			conv.Converged = true
			break
		}
		if inv.Angle < fil.Angle {
			rmin = radius
		} else {
			rmax = radius
		}
	}
	if !conv.Converged {
		conv.Iterations = 100
		tracer().P("teeth", ht.ToothNum).Errorf("warning: number of iterations exceeded the limit")
		ht.warnings = append(ht.warnings, ConvergenceWarning{Stage: "undercut intersection", Convergence: conv})
	}
	return inv.T, fil.T, radius
}

// sample resamples the curve specs and stitches them.
func (ht *HalfTooth) sample() {
	for i, spec := range ht.specs {
		pts, conv := spec.Sample(ht.resolution, ht.tolerance)
		if !conv.Converged {
			ht.warnings = append(ht.warnings, ConvergenceWarning{
				Stage:       strings.ToLower(spec.Name) + " sampling",
				Convergence: conv,
			})
		}
		ht.segments[i] = pts
	}
	ht.profile = gears.Stitch(ht.segments[:]...)
}

// Cutter returns the cutter the half tooth has been generated with.
func (ht *HalfTooth) Cutter() Cutter {
	return ht.cutter
}

// ProfileShiftCoef returns the profile shift in units of module.
func (ht *HalfTooth) ProfileShiftCoef() float64 {
	return ht.shiftCoef
}

// Resolution returns the target distance between profile points.
func (ht *HalfTooth) Resolution() float64 {
	return ht.resolution
}

// MinContactRadius is the radius of the transition between fillet and
// involute. Mating teeth touch the flank only above this radius.
func (ht *HalfTooth) MinContactRadius() float64 {
	return ht.minRCont
}

// IsUndercut is true if the cutter has cut away part of the involute flank.
func (ht *HalfTooth) IsUndercut() bool {
	return ht.undercut
}

// ShiftFraction is the profile shift as a fraction of the circular pitch.
func (ht *HalfTooth) ShiftFraction() float64 {
	return ht.shiftFraction
}

// Profile returns the points of the half tooth from mid-root to mid-tip.
// Callers must not modify the result.
func (ht *HalfTooth) Profile() gears.Polyline {
	return ht.profile
}

// Segments returns the sampled curves of the half tooth, before stitching.
func (ht *HalfTooth) Segments() (root, fillet, involute, outside gears.Polyline) {
	return ht.segments[0], ht.segments[1], ht.segments[2], ht.segments[3]
}

// Curves returns the curve specs of the half tooth, from root to tip.
func (ht *HalfTooth) Curves() []curves.Spec {
	return ht.specs[:]
}

// Warnings lists the iterations which did not converge while building.
func (ht *HalfTooth) Warnings() []ConvergenceWarning {
	return ht.warnings
}

// String describes the half tooth: gear params, undercut status and the
// equations of all curves.
func (ht *HalfTooth) String() string {
	var sb strings.Builder
	sb.WriteString(ht.GearParams.String())
	fmt.Fprintf(&sb, "\n%-21s%10v\n", "profile shift coef", round(ht.shiftCoef))
	fmt.Fprintf(&sb, "%-21s%10s\n", "cutter", ht.cutter.Kind)
	if ht.undercut {
		sb.WriteString("tooth undercut\n")
	}
	for _, spec := range ht.specs {
		sb.WriteString("\n")
		sb.WriteString(spec.String())
		sb.WriteString("\n")
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

func round(x float64) float64 {
	return math.Round(x*1e6) / 1e6
}
