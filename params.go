package gears

import (
	"fmt"
	"math"
	"strings"
)

// Standard proportions of a gear tooth.
const (
	StandardPressureAngle = 20 * math.Pi / 180
	StandardAddendumCoef  = 1.0
	StandardDedendumCoef  = 1.25
)

// GearParams is the set of basic dimensions of a spur gear. All of them are
// derived from tooth count, module, pressure angle and the addendum and
// dedendum coefficients. GearParams are immutable.
type GearParams struct {
	ToothNum      int     // number of teeth
	Module        float64 // pitch diameter / tooth count
	PressureAngle float64 // radians
	AddendumCoef  float64 // addendum / module
	DedendumCoef  float64 // dedendum / module

	PitchRadius   float64
	Addendum      float64
	OutsideRadius float64
	Dedendum      float64
	RootRadius    float64
	BaseRadius    float64
	ToothAngle    float64 // angular pitch, 2π / ToothNum
	CircularPitch float64 // module · π
}

// NewGearParams computes the missing gear params from the given ones.
// It returns ErrInvalidParams for non-positive dimensions, pressure angles
// outside of (0, π/2) or less than 3 teeth.
func NewGearParams(toothNum int, module, pressureAngle, adCoef, deCoef float64) (*GearParams, error) {
	switch {
	case toothNum < 3:
		return nil, fmt.Errorf("%w: tooth count %d < 3", ErrInvalidParams, toothNum)
	case !(module > 0):
		return nil, fmt.Errorf("%w: module must be positive, is %g", ErrInvalidParams, module)
	case !(pressureAngle > 0 && pressureAngle < math.Pi/2):
		return nil, fmt.Errorf("%w: pressure angle %g out of range", ErrInvalidParams, pressureAngle)
	case !(adCoef > 0) || !(deCoef > 0):
		return nil, fmt.Errorf("%w: addendum/dedendum coefficients must be positive", ErrInvalidParams)
	}
	gp := &GearParams{
		ToothNum:      toothNum,
		Module:        module,
		PressureAngle: pressureAngle,
		AddendumCoef:  adCoef,
		DedendumCoef:  deCoef,
	}
	gp.PitchRadius = float64(toothNum) * module / 2
	gp.Addendum = module * adCoef
	gp.OutsideRadius = gp.PitchRadius + gp.Addendum
	gp.Dedendum = module * deCoef
	gp.RootRadius = gp.PitchRadius - gp.Dedendum
	gp.BaseRadius = gp.PitchRadius * math.Cos(pressureAngle)
	gp.ToothAngle = 2 * math.Pi / float64(toothNum)
	gp.CircularPitch = module * math.Pi
	if gp.RootRadius <= 0 {
		return nil, fmt.Errorf("%w: dedendum %g exceeds pitch radius %g", ErrInvalidParams,
			gp.Dedendum, gp.PitchRadius)
	}
	tracer().P("teeth", toothNum).Debugf("gear params: pitch r=%g, base r=%g, outside r=%g, root r=%g",
		gp.PitchRadius, gp.BaseRadius, gp.OutsideRadius, gp.RootRadius)
	return gp, nil
}

// StandardGearParams creates gear params with standard pressure angle (20°)
// and standard addendum and dedendum coefficients.
func StandardGearParams(toothNum int, module float64) (*GearParams, error) {
	return NewGearParams(toothNum, module, StandardPressureAngle,
		StandardAddendumCoef, StandardDedendumCoef)
}

// String lists the parameters, one per line, in a table-like format.
func (gp *GearParams) String() string {
	var sb strings.Builder
	row := func(name string, value any, unit string) {
		fmt.Fprintf(&sb, "%-21s%10v %s\n", name, value, unit)
	}
	row("tooth num", gp.ToothNum, "")
	row("module", round(gp.Module), "")
	row("pressure angle", round(gp.PressureAngle/Deg2Rad), "deg")
	row("addendum coefficient", round(gp.AddendumCoef), "")
	row("dedendum coefficient", round(gp.DedendumCoef), "")
	row("pitch diameter", round(gp.PitchRadius*2), "mm")
	row("outside diameter", round(gp.OutsideRadius*2), "mm")
	row("root diameter", round(gp.RootRadius*2), "mm")
	row("base diameter", round(gp.BaseRadius*2), "mm")
	row("addendum", round(gp.Addendum), "mm")
	row("dedendum", round(gp.Dedendum), "mm")
	return strings.TrimSuffix(sb.String(), "\n")
}

// round to 6 decimal places, for display only
func round(x float64) float64 {
	return math.Round(x*1e6) / 1e6
}
