package kinematics

import (
	"fmt"
	"math"
	"sort"

	"github.com/npillmayer/gears"
	"github.com/npillmayer/gears/tooth"
)

// Rack is a straight rack meshing at the pitch point. Its pitch line is the
// y-axis; addendum points to +x (into gear B), dedendum to −x.
type Rack struct {
	circularPitch float64
	addendum      float64
	dedendum      float64
	seeds         [4]float64 // y of the profile corners at progress 0
	xs            [4]float64 // x of the profile corners
	st, en        float64    // y boundaries
}

// NewRack creates a rack for a module and pressure angle. adCoef and deCoef
// are the addendum and dedendum in units of module, shiftCoef the profile
// shift.
func NewRack(module, pressureAngle, adCoef, deCoef, shiftCoef float64) (*Rack, error) {
	switch {
	case !(module > 0):
		return nil, fmt.Errorf("%w: module must be positive, is %g", gears.ErrInvalidParams, module)
	case !(pressureAngle > 0 && pressureAngle < math.Pi/2):
		return nil, fmt.Errorf("%w: pressure angle %g out of range", gears.ErrInvalidParams, pressureAngle)
	case !(adCoef > 0) || !(deCoef > 0):
		return nil, fmt.Errorf("%w: addendum/dedendum coefficients must be positive", gears.ErrInvalidParams)
	}
	r := &Rack{
		circularPitch: module * math.Pi,
		addendum:      adCoef * module,
		dedendum:      deCoef * module,
	}
	shift := shiftCoef * module
	tan := math.Tan(pressureAngle)
	yDe := (r.dedendum + shift) * tan
	yAd := (r.addendum - shift) * tan
	r.seeds = [4]float64{yDe - r.circularPitch/2, -yDe, yAd, -yAd + r.circularPitch/2}
	r.xs = [4]float64{-r.dedendum, -r.dedendum, r.addendum, r.addendum}
	r.st, r.en = -2*r.circularPitch, 2*r.circularPitch
	return r, nil
}

// SetSmartBoundaries adapts the length of the rack to the gears it meshes
// with: a is on the rack's dedendum side, b on its addendum side.
func (r *Rack) SetSmartBoundaries(a, b *tooth.HalfTooth) {
	ip0 := math.Sqrt(sq(a.OutsideRadius) - sq(a.PitchRadius-r.dedendum))
	ip1 := math.Sqrt(sq(b.OutsideRadius) - sq(b.PitchRadius-r.addendum))
	offset := float64(max(a.ToothNum, b.ToothNum)) / 32
	lim := math.Max(ip0, ip1) + offset*r.circularPitch
	r.st, r.en = -lim, lim
}

func sq(x float64) float64 {
	return x * x
}

// Limits returns the lower left and upper right corner of the rack profile.
func (r *Rack) Limits() (gears.Pair, gears.Pair) {
	return gears.P(-r.dedendum, r.st), gears.P(r.addendum, r.en)
}

// Points returns the rack profile at an animation state. With progress 1 the
// rack has moved by one circular pitch in direction −y.
func (r *Rack) Points(progress float64) (gears.Polyline, error) {
	cp := r.circularPitch
	var sets [4][]float64
	length, first := 0, 0
	for i, seed := range r.seeds {
		sets[i] = SeedRange(r.st-cp, r.en+cp, seed-progress*cp, cp)
		if len(sets[i]) == 0 {
			return nil, fmt.Errorf("%w: empty rack profile", gears.ErrDomain)
		}
		length = max(length, len(sets[i]))
		if sets[i][0] < sets[first][0] {
			first = i
		}
	}
	pts := make(gears.Polyline, 0, 4*length)
	for j := 0; j < length; j++ {
		for i := 0; i < 4; i++ {
			k := (first + i) % 4
			if j < len(sets[k]) {
				pts = append(pts, gears.P(r.xs[k], sets[k][j]))
			}
		}
	}
	iSt := sort.Search(len(pts), func(i int) bool { return pts[i].Y() > r.st })
	iEn := sort.Search(len(pts), func(i int) bool { return pts[i].Y() >= r.en })
	if iSt == 0 || iEn == len(pts) || iSt > iEn {
		return nil, fmt.Errorf("%w: rack profile does not cover its boundaries", gears.ErrDomain)
	}
	pSt, err := gears.LineLineIntersection(pts[iSt-1], pts[iSt], gears.P(0, r.st), gears.P(1, r.st))
	if err != nil {
		return nil, err
	}
	pEn, err := gears.LineLineIntersection(pts[iEn-1], pts[iEn], gears.P(0, r.en), gears.P(1, r.en))
	if err != nil {
		return nil, err
	}
	profile := make(gears.Polyline, iEn-iSt+2)
	copy(profile, pts[iSt-1:iEn+1])
	profile[0], profile[len(profile)-1] = pSt, pEn
	return profile, nil
}
