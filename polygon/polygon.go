// Package polygon deals with simple polygons on the field and regions made
// of them, for checking that paths stay where a robot is allowed to drive.
//
// Polygon clipping is done by github.com/akavel/polyclip-go.
package polygon

import (
	"fmt"
	"math"

	polyclip "github.com/akavel/polyclip-go"
	"github.com/kevinfrei/pathing"
	"github.com/npillmayer/schuko/tracing"
)

// L traces with key 'pathing.polygon'.
func L() tracing.Trace {
	return tracing.Select("pathing.polygon")
}

// Polygon is a simple polygon, built knot by knot and closed by Cycle.
type Polygon struct {
	contour polyclip.Contour
	closed  bool
}

// NullPolygon creates an empty polygon, to be extended by subsequent builder
// calls:
//
//	pg := NullPolygon().Knot(P(0,0)).Knot(P(1,3)).Knot(P(3,0)).Cycle()
func NullPolygon() *Polygon {
	return &Polygon{}
}

// Knot adds a corner. Part of builder functionality.
func (pg *Polygon) Knot(p pathing.Pair) *Polygon {
	pg.contour.Add(polyclip.Point{X: p.X(), Y: p.Y()})
	return pg
}

// Cycle closes the polygon. Part of builder functionality.
func (pg *Polygon) Cycle() *Polygon {
	pg.closed = true
	return pg
}

// Box creates a rectangle from two opposite corners, given in any order.
func Box(a, b pathing.Pair) *Polygon {
	lx, ly := math.Min(a.X(), b.X()), math.Min(a.Y(), b.Y())
	ux, uy := math.Max(a.X(), b.X()), math.Max(a.Y(), b.Y())
	return NullPolygon().
		Knot(pathing.P(lx, ly)).Knot(pathing.P(ux, ly)).
		Knot(pathing.P(ux, uy)).Knot(pathing.P(lx, uy)).Cycle()
}

// N is the number of corners.
func (pg *Polygon) N() int {
	return len(pg.contour)
}

// IsCycle is a predicate: has this polygon been closed?
func (pg *Polygon) IsCycle() bool {
	return pg.closed
}

// Pt returns corner i.
func (pg *Polygon) Pt(i int) pathing.Pair {
	p := pg.contour[i]
	return pathing.P(p.X, p.Y)
}

// Contains is a predicate: is p inside of the polygon? Open polygons
// contain nothing.
func (pg *Polygon) Contains(p pathing.Pair) bool {
	if !pg.closed || pg.N() < 3 {
		return false
	}
	return onEdge(pg.contour, p) || pg.contour.Contains(polyclip.Point{X: p.X(), Y: p.Y()})
}

// onEdge is a predicate: is p on the outline of contour c, up to
// pathing.Epsilon? The crossing test of polyclip counts only the lower and
// left edges of a contour as inside; the outline counts as inside on all
// sides.
func onEdge(c polyclip.Contour, p pathing.Pair) bool {
	for i := range c {
		a := pathing.P(c[i].X, c[i].Y)
		j := (i + 1) % len(c)
		b := pathing.P(c[j].X, c[j].Y)
		if distToSegment(p, a, b) <= pathing.Epsilon {
			return true
		}
	}
	return false
}

func distToSegment(p, a, b pathing.Pair) float64 {
	ab := b - a
	l2 := ab.X()*ab.X() + ab.Y()*ab.Y()
	if pathing.Is0(l2) {
		return p.Dist(a)
	}
	ap := p - a
	t := (ap.X()*ab.X() + ap.Y()*ab.Y()) / l2
	t = math.Max(0, math.Min(1, t))
	return p.Dist(a.Lerp(b, t))
}

// BoundingBox returns the lower left and upper right corner of the
// smallest axis-parallel rectangle around the polygon.
func (pg *Polygon) BoundingBox() (pathing.Pair, pathing.Pair) {
	return corners(pg.contour.BoundingBox())
}

func corners(r polyclip.Rectangle) (pathing.Pair, pathing.Pair) {
	return pathing.P(r.Min.X, r.Min.Y), pathing.P(r.Max.X, r.Max.Y)
}

// AsString returns a polygon as a (debugging) string.
func AsString(pg *Polygon) string {
	var s string
	for i := 0; i < pg.N(); i++ {
		if i > 0 {
			s += " -- "
		}
		s += pg.Pt(i).String()
	}
	if pg.closed {
		s += " -- cycle"
	}
	return s
}

// Region is an area made of a keep-in polygon with keep-out polygons
// removed. It may consist of several contours, some of them holes.
type Region struct {
	area polyclip.Polygon
}

// NewRegion creates a region from keepIn minus all of keepOut.
// Open polygons are ignored.
func NewRegion(keepIn *Polygon, keepOut ...*Polygon) *Region {
	var area polyclip.Polygon
	if keepIn.closed {
		area.Add(keepIn.contour.Clone())
	}
	for _, pg := range keepOut {
		if !pg.closed {
			L().Errorf("ignoring open keep-out polygon %s", AsString(pg))
			continue
		}
		area = area.Construct(polyclip.DIFFERENCE, polyclip.Polygon{pg.contour.Clone()})
	}
	L().Debugf("region has %d contours", len(area))
	return &Region{area: area}
}

// Contains is a predicate: is p inside of the region? Points within holes
// are outside. Points on the outline of any contour, holes included, are
// inside.
func (r *Region) Contains(p pathing.Pair) bool {
	pt := polyclip.Point{X: p.X(), Y: p.Y()}
	inside := false
	for _, c := range r.area {
		if onEdge(c, p) {
			return true
		}
		if c.Contains(pt) {
			inside = !inside
		}
	}
	return inside
}

// Contours is the number of contours the region consists of, holes included.
func (r *Region) Contours() int {
	return len(r.area)
}

// BoundingBox returns the lower left and upper right corner of the region.
func (r *Region) BoundingBox() (pathing.Pair, pathing.Pair) {
	return corners(r.area.BoundingBox())
}

func (r *Region) String() string {
	return fmt.Sprintf("region(%d contours)", len(r.area))
}
