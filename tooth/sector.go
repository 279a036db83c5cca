package tooth

import (
	"errors"
	"fmt"
	"math"

	"github.com/npillmayer/gears"
	"github.com/npillmayer/gears/polygon"
)

// ErrEmptySector is returned if a sector does not contain any profile point.
var ErrEmptySector = errors.New("no profile points within sector")

// Sector is an angular window, from Start counterclockwise to End (radians).
// The window may wrap around angle 0. A sector with Start == End (after
// normalization to [0, 2π)) covers the whole circle; this includes the zero
// value.
type Sector struct {
	Start, End float64
}

func (s Sector) normalized() Sector {
	return Sector{Start: gears.NormAngle(s.Start), End: gears.NormAngle(s.End)}
}

// IsFull is true for a sector covering the whole circle.
func (s Sector) IsFull() bool {
	n := s.normalized()
	return n.Start == n.End
}

// Contains checks if an angle lies within the sector.
func (s Sector) Contains(angle float64) bool {
	n := s.normalized()
	return n.Start == n.End || gears.IsWithinAngle(gears.NormAngle(angle), n.Start, n.End)
}

// SectorTeeth is the classification of teeth with respect to a sector:
// the tooth containing the sector's start, the teeth completely inside, in
// counterclockwise order, and the tooth containing the sector's end.
type SectorTeeth struct {
	Start int
	Full  []int
	End   int
}

// GearSector assembles full teeth from two half teeth and extracts the points
// of a gear within a sector, possibly rotated.
type GearSector struct {
	a, b       *HalfTooth
	sector     Sector
	rotation   float64
	dir        float64 // +1 counterclockwise, -1 clockwise
	toothNum   int
	toothAngle float64
	fullTooth  gears.Polyline
	ang0       float64   // polar angle of the full tooth's first point
	rel        []float64 // point angles relative to the tooth's angular middle
}

// NewGearSector creates a gear sector. Half tooth a forms the counterclockwise
// side of a tooth, half tooth b the clockwise side; both must belong to the
// same gear (equal tooth count). rotation is the gear's rotation offset in
// radians, ccw the direction of rotation while animating.
func NewGearSector(a, b *HalfTooth, sector Sector, rotation float64, ccw bool) (*GearSector, error) {
	if a == nil || b == nil {
		return nil, fmt.Errorf("%w: missing half tooth", gears.ErrInvalidParams)
	}
	if a.ToothNum != b.ToothNum {
		return nil, fmt.Errorf("%w: half teeth of gears with %d and %d teeth", gears.ErrInvalidParams,
			a.ToothNum, b.ToothNum)
	}
	gs := &GearSector{
		a:          a,
		b:          b,
		sector:     sector,
		rotation:   rotation,
		dir:        -1,
		toothNum:   a.ToothNum,
		toothAngle: a.ToothAngle,
	}
	if ccw {
		gs.dir = 1
	}
	gs.buildFullTooth()
	return gs, nil
}

// buildFullTooth mirrors half tooth b at the ray of angle −τ/4 and stitches it
// with half tooth a. The result spans −3τ/4 … τ/4.
func (gs *GearSector) buildFullTooth() {
	q := gs.toothAngle / 4
	reflected := gs.b.Profile().Mirrored(gears.Origin, gears.PolarToCartesian(-q, 1))
	gs.fullTooth = gears.Stitch(reflected.Reversed(), gs.a.Profile())
	gs.ang0, _ = gears.CartesianToPolar(gs.fullTooth.First())
	mid := gs.ang0 + gs.toothAngle/2
	gs.rel = make([]float64, len(gs.fullTooth))
	for i, p := range gs.fullTooth {
		gs.rel[i] = gears.WrapAngle(p.Angle() - mid)
	}
	tracer().P("teeth", gs.toothNum).Debugf("full tooth with %d points, starting at angle %g",
		len(gs.fullTooth), gs.ang0)
}

// FullTooth returns the points of one tooth, from mid-gap to mid-gap.
// Callers must not modify the result.
func (gs *GearSector) FullTooth() gears.Polyline {
	return gs.fullTooth
}

// GearProfile returns the closed profile of the whole gear.
func (gs *GearSector) GearProfile() gears.Polyline {
	return gears.Populate(gs.fullTooth, gs.toothNum)
}

// Sector returns the sector configured at creation time.
func (gs *GearSector) Sector() Sector {
	return gs.sector
}

// toothStart is the angle where tooth k starts, for a gear rotated by rot.
func (gs *GearSector) toothStart(k int, rot float64) float64 {
	return gears.NormAngle(gs.ang0 + rot + gs.toothAngle*float64(k))
}

// tooth returns tooth k of a gear rotated by rot.
func (gs *GearSector) tooth(k int, rot float64) gears.Polyline {
	return gs.fullTooth.Rotated(rot + gs.toothAngle*float64(k))
}

// SortOutTeeth classifies the teeth of the gear, rotated by rot, with respect
// to a sector.
func (gs *GearSector) SortOutTeeth(sector Sector, rot float64) SectorTeeth {
	sec := sector.normalized()
	n := gs.toothNum
	sts := make([]float64, n)
	for k := range sts {
		sts[k] = gs.toothStart(k, rot)
	}
	startIn := make([]bool, n)
	for k, st := range sts {
		startIn[k] = sec.Start == sec.End || gears.IsWithinAngle(st, sec.Start, sec.End) || st == sec.End
	}
	teeth := SectorTeeth{Start: -1, End: -1}
	full := make([]bool, n)
	for k := range sts {
		next := (k + 1) % n
		hasStart := gears.IsWithinAngle(sec.Start, sts[k], sts[next])
		hasEnd := gears.IsWithinAngle(sec.End, sts[k], sts[next])
		if hasStart && teeth.Start < 0 {
			teeth.Start = k
		}
		if hasEnd && teeth.End < 0 {
			teeth.End = k
		}
		full[k] = startIn[k] && startIn[next] && !hasStart && !hasEnd
	}
	for i := 1; i < n; i++ {
		k := (teeth.Start + i) % n
		if !full[k] {
			break
		}
		teeth.Full = append(teeth.Full, k)
	}
	tracer().Debugf("sector teeth: start %d, %d full, end %d", teeth.Start, len(teeth.Full), teeth.End)
	return teeth
}

// relBounds returns the sector boundaries relative to the angular middle of
// tooth k.
func (gs *GearSector) relBounds(k int, sec Sector, rot float64) (float64, float64) {
	mid := gs.toothStart(k, rot) + gs.toothAngle/2
	return gears.WrapAngle(sec.Start - mid), gears.WrapAngle(sec.End - mid)
}

// SectorProfile returns the points of the gear, rotated by rot, within a
// sector. If the sector does not contain any point, ErrEmptySector is
// returned.
func (gs *GearSector) SectorProfile(sector Sector, rot float64) (gears.Polyline, error) {
	sec := sector.normalized()
	teeth := gs.SortOutTeeth(sec, rot)
	if len(teeth.Full) == 0 && teeth.Start == teeth.End {
		b, e := gs.relBounds(teeth.Start, sec, rot)
		first, last := -1, -1
		for i, r := range gs.rel {
			if b <= r && r < e {
				if first < 0 {
					first = i
				}
				last = i
			}
		}
		if first < 0 {
			return nil, fmt.Errorf("%w: %.4g … %.4g", ErrEmptySector, sec.Start, sec.End)
		}
		return gs.tooth(teeth.Start, rot)[first : last+1], nil
	}
	b, _ := gs.relBounds(teeth.Start, sec, rot)
	tail := len(gs.rel) - 1
	for i, r := range gs.rel {
		if r >= b {
			tail = i
			break
		}
	}
	_, e := gs.relBounds(teeth.End, sec, rot)
	head := 0
	for i := len(gs.rel) - 1; i >= 0; i-- {
		if gs.rel[i] < e {
			head = i + 1
			break
		}
	}
	parts := make([]gears.Polyline, 0, len(teeth.Full)+2)
	parts = append(parts, gs.tooth(teeth.Start, rot)[tail:])
	for _, k := range teeth.Full {
		parts = append(parts, gs.tooth(k, rot))
	}
	parts = append(parts, gs.tooth(teeth.End, rot)[:head])
	return gears.Stitch(parts...), nil
}

// Points returns the points of the configured sector at an animation state.
// progress counts in teeth: after progress 1 the gear has turned by one tooth
// angle, in the direction given at creation time.
func (gs *GearSector) Points(progress float64) (gears.Polyline, error) {
	rot := (gs.toothAngle*progress + gs.rotation) * gs.dir
	return gs.SectorProfile(gs.sector, rot)
}

// Frame returns the points for frame i of an animation with steps frames per
// tooth.
func (gs *GearSector) Frame(i, steps int) (gears.Polyline, error) {
	if steps <= 0 {
		return nil, fmt.Errorf("%w: %d animation steps", gears.ErrInvalidParams, steps)
	}
	return gs.Points(float64(i) / float64(steps))
}

// BoundingBox returns the lower left and upper right corner of a box
// enclosing the gear's points within a sector, at any rotation.
func (gs *GearSector) BoundingBox(sector Sector) (gears.Pair, gears.Pair) {
	sec := sector.normalized()
	pg := polygon.NullPolygon()
	for _, ang := range []float64{sec.Start, sec.End} {
		pg.Knot(gears.PolarToCartesian(ang, gs.a.RootRadius))
		pg.Knot(gears.PolarToCartesian(ang, gs.a.OutsideRadius))
	}
	for i := 0; i < 4; i++ {
		axis := float64(i) * math.Pi / 2
		if sec.Contains(axis) {
			pg.Knot(gears.PolarToCartesian(axis, gs.a.OutsideRadius))
		}
	}
	return pg.Cycle().BoundingBox()
}

// Limits is the bounding box of the configured sector.
func (gs *GearSector) Limits() (gears.Pair, gears.Pair) {
	return gs.BoundingBox(gs.sector)
}

// Outline returns the gear profile as a closed polygon.
func (gs *GearSector) Outline() *polygon.Polygon {
	profile := gs.GearProfile()
	return polygon.NullPolygon().Knots(profile[:len(profile)-1]...).Cycle()
}
