package tooth

import (
	"fmt"

	"github.com/npillmayer/gears/curves"
)

// CutterKind tells how a gear is generated.
type CutterKind int

const (
	// RackCutter is a rack or hob. Its tip corner traces a flat epitrochoid.
	RackCutter CutterKind = iota
	// GearCutter is a pinion-type cutter (gear shaper). Its tip corner traces
	// an epitrochoid.
	GearCutter
)

func (k CutterKind) String() string {
	switch k {
	case RackCutter:
		return "rack"
	case GearCutter:
		return "gear"
	}
	return fmt.Sprintf("cutter(%d)", int(k))
}

// Cutter describes the generating tool. The zero value is a rack cutter.
type Cutter struct {
	Kind  CutterKind
	Teeth int // tooth count of a gear cutter, unused for racks
}

// CutterFor returns a gear cutter with the given tooth count, or a rack
// cutter if teeth is zero or negative.
func CutterFor(teeth int) Cutter {
	if teeth <= 0 {
		return Cutter{Kind: RackCutter}
	}
	return Cutter{Kind: GearCutter, Teeth: teeth}
}

func (c Cutter) String() string {
	if c.Kind == GearCutter {
		return fmt.Sprintf("gear cutter with %d teeth", c.Teeth)
	}
	return "rack cutter"
}

// filletCurve creates the curve the cutter's tip corner traces relative to
// the gear blank. For a rack this is a flat epitrochoid with the dedendum as
// distance; a gear cutter is represented by its pitch and outside radius.
func (ht *HalfTooth) filletCurve(a0, cutterPitchRadius, cutterOutsideRadius float64) curves.Curve {
	switch ht.cutter.Kind {
	case GearCutter:
		return curves.Epitrochoid{
			R:  ht.PitchRadius,
			Rr: cutterPitchRadius,
			D:  cutterOutsideRadius,
			A0: a0,
		}
	}
	return curves.FlatEpitrochoid{
		R:  ht.PitchRadius,
		L:  ht.Dedendum,
		A0: a0,
	}
}
