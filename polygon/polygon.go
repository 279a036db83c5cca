/*
Package polygon implements closed polygons of points in the plane.

Polygons are built with a builder:

	pg := NullPolygon().Knot(gears.P(0, 0)).Knot(gears.P(1, 3)).Knot(gears.P(3, 0)).Cycle()

Geometric queries are delegated to a polygon clipping library.
*/
package polygon

import (
	"fmt"
	"strings"

	polyclip "github.com/akavel/polyclip-go"
	"github.com/npillmayer/gears"
	"github.com/npillmayer/schuko/tracing"
)

// L returns the tracer for polygons, with key 'gears'.
func L() tracing.Trace {
	return tracing.Select("gears")
}

// Polygon is a sequence of points. It is closed by Cycle.
type Polygon struct {
	points []gears.Pair
	cycle  bool
}

// NullPolygon creates an empty polygon.
func NullPolygon() *Polygon {
	return &Polygon{points: make([]gears.Pair, 0, 8)}
}

// Box creates a rectangle from two opposite corners.
func Box(p1, p2 gears.Pair) *Polygon {
	minx, maxx := p1.X(), p2.X()
	if minx > maxx {
		minx, maxx = maxx, minx
	}
	miny, maxy := p1.Y(), p2.Y()
	if miny > maxy {
		miny, maxy = maxy, miny
	}
	return NullPolygon().Knot(gears.P(minx, miny)).Knot(gears.P(maxx, miny)).
		Knot(gears.P(maxx, maxy)).Knot(gears.P(minx, maxy)).Cycle()
}

// Knot appends a point.
func (pg *Polygon) Knot(p gears.Pair) *Polygon {
	pg.points = append(pg.points, p)
	return pg
}

// Knots appends a sequence of points.
func (pg *Polygon) Knots(pts ...gears.Pair) *Polygon {
	pg.points = append(pg.points, pts...)
	return pg
}

// Cycle closes the polygon.
func (pg *Polygon) Cycle() *Polygon {
	pg.cycle = true
	return pg
}

// IsCycle is true for closed polygons.
func (pg *Polygon) IsCycle() bool {
	return pg.cycle
}

// N returns the number of points.
func (pg *Polygon) N() int {
	return len(pg.points)
}

// Pt returns point i, modulo N.
func (pg *Polygon) Pt(i int) gears.Pair {
	n := len(pg.points)
	return pg.points[((i%n)+n)%n]
}

func (pg *Polygon) contour() polyclip.Contour {
	c := make(polyclip.Contour, 0, len(pg.points))
	for _, p := range pg.points {
		c.Add(polyclip.Point{X: p.X(), Y: p.Y()})
	}
	return c
}

func fromContour(c polyclip.Contour) *Polygon {
	pg := NullPolygon()
	for _, p := range c {
		pg.Knot(gears.P(p.X, p.Y))
	}
	return pg.Cycle()
}

// BoundingBox returns the lower left and upper right corner of the smallest
// axis-parallel box containing the polygon. It panics for empty polygons.
func (pg *Polygon) BoundingBox() (gears.Pair, gears.Pair) {
	if len(pg.points) == 0 {
		panic("bounding box of empty polygon")
	}
	bb := pg.contour().BoundingBox()
	return gears.P(bb.Min.X, bb.Min.Y), gears.P(bb.Max.X, bb.Max.Y)
}

// Contains checks if a point lies inside the polygon. The polygon must be closed.
func (pg *Polygon) Contains(p gears.Pair) bool {
	if !pg.cycle || len(pg.points) < 3 {
		return false
	}
	return pg.contour().Contains(polyclip.Point{X: p.X(), Y: p.Y()})
}

// Intersection clips pg with another closed polygon. The result may consist
// of several polygons, or none at all.
func (pg *Polygon) Intersection(other *Polygon) []*Polygon {
	subject := polyclip.Polygon{pg.contour()}
	clipping := polyclip.Polygon{other.contour()}
	result := subject.Construct(polyclip.INTERSECTION, clipping)
	pgs := make([]*Polygon, len(result))
	for i, c := range result {
		pgs[i] = fromContour(c)
	}
	L().Debugf("intersection of polygons: %d contours", len(pgs))
	return pgs
}

// AsString returns a polygon in a MetaPost-like notation.
func AsString(pg *Polygon) string {
	var sb strings.Builder
	for i, p := range pg.points {
		if i > 0 {
			sb.WriteString(" -- ")
		}
		fmt.Fprintf(&sb, "(%.4g,%.4g)", p.X(), p.Y())
	}
	if pg.cycle {
		sb.WriteString(" -- cycle")
	}
	return sb.String()
}
