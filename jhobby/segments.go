package jhobby

import (
	"fmt"
	"math/cmplx"

	"github.com/kevinfrei/pathing"
)

func (pp *pathPartial) N() int {
	return pp.end - pp.start + 1
}

func (pp *pathPartial) pmap(i int) int {
	return i + pp.start
}

func (pp *pathPartial) Z(i int) pathing.Pair {
	return pp.whole.Z(pp.pmap(i))
}

func (pp *pathPartial) Dir(i int) pathing.Pair {
	return pp.whole.Dir(pp.pmap(i))
}

func (pp *pathPartial) PreTension(i int) float64 {
	return pp.whole.PreTension(pp.pmap(i))
}

func (pp *pathPartial) PostTension(i int) float64 {
	return pp.whole.PostTension(pp.pmap(i))
}

func (pp *pathPartial) SetPreControl(i int, c pathing.Pair) {
	pp.controls.SetPreControl(pp.pmap(i), c)
}

func (pp *pathPartial) SetPostControl(i int, c pathing.Pair) {
	pp.controls.SetPostControl(pp.pmap(i), c)
}

func (pp *pathPartial) delta(i int) pathing.Pair {
	return delta(pp.whole, pp.pmap(i))
}

func (pp *pathPartial) d(i int) float64 {
	return d(pp.whole, pp.pmap(i))
}

// Turning angle at z.i. A segment does not turn at its end knots, even if
// the whole path does.
func (pp *pathPartial) psi(i int) float64 {
	if i <= 0 || i >= pp.N()-1 {
		return 0
	}
	return psi(pp.whole, pp.pmap(i))
}

func asStringPartial(path *pathPartial, contr *Controls) string {
	var s string
	for i := 0; i < path.N(); i++ {
		if i > 0 {
			if contr != nil {
				s += fmt.Sprintf(" and %s\n  .. ", ptstring(contr.PreControl(path.pmap(i)), true))
			} else {
				s += " .. "
			}
		}
		s += knotstring(path.whole, path.pmap(i))
		if contr != nil && i < path.N()-1 {
			s += fmt.Sprintf(" .. controls %s", ptstring(contr.PostControl(path.pmap(i)), true))
		}
	}
	return s
}

// Split a path into segments, breaking it up at inner knots with a fixed
// direction of travel.
func splitSegments(path *Path) []*pathPartial {
	var segments []*pathPartial
	at := 0
	for i := 1; i < last(path); i++ {
		if isrough(path, i) {
			segments = append(segments, makePathSegment(path, at, i))
			at = i
		}
	}
	return append(segments, makePathSegment(path, at, last(path)))
}

// Create a path segment as a projection onto a parent path subset.
func makePathSegment(path *Path, from, to int) *pathPartial {
	partial := &pathPartial{
		whole: path,
		start: from,
		end:   to,
	}
	tracer().Debugf("breaking segment %d - %d of length %d, at %s and %s", from, to, partial.N(),
		ptstring(path.Z(from), false), ptstring(path.Z(to), false))
	return partial
}

func last(path *Path) int {
	return path.N() - 1
}

func delta(path *Path, i int) pathing.Pair {
	return path.Z(i+1) - path.Z(i)
}

func d(path *Path, i int) float64 {
	r, _ := cmplx.Polar(delta(path, i).C())
	return r
}

// Turning angle at z.i.
func psi(path *Path, i int) float64 {
	psi := 0.0
	if i > 0 && i < path.N()-1 {
		psi = cmplx.Phase(delta(path, i).C()) - cmplx.Phase(delta(path, i-1).C())
	}
	return reduceAngle(psi)
}

// Is a knot a breakpoint for splitting a path into segments?
func isrough(path *Path, i int) bool {
	return !cmplx.IsNaN(path.Dir(i).C())
}
