package jhobby

import (
	"errors"

	"github.com/kevinfrei/pathing"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'graphics'
func tracer() tracing.Trace {
	return tracing.Select("graphics")
}

const pi float64 = 3.14159265
const pi2 float64 = 6.28318530
const _epsilon = 0.0000001

// curl at the open ends of a path. MetaFont's default of 1 gives
// approximately circular arcs at the terminal knots.
const endCurl = 1.0

var (
	// ErrNilPath indicates a nil path pointer.
	ErrNilPath = errors.New("path must not be nil")
	// ErrTooFewKnots indicates path knot count is insufficient for solving.
	ErrTooFewKnots = errors.New("path has too few knots")
	// ErrInvalidKnot indicates a knot coordinate or direction contains NaN/Inf.
	ErrInvalidKnot = errors.New("path has invalid knot")
	// ErrDegenerateSegment indicates two consecutive knots collapse to one point.
	ErrDegenerateSegment = errors.New("path has degenerate segment")
)

// Path is the concrete type for building and solving open Hobby splines
// through a sequence of field poses. To construct a path, start with
// Nullpath(), which creates an empty path, and then extend it.
//
// A knot whose pose carries a heading fixes the direction of travel at
// that knot; other knots are smooth.
type Path struct {
	knots    []pathing.Pose // knot i
	tensions []pathing.Pair // explicit pre- and post-tension at knot i
}

// A run of knots between two direction-constrained knots, solved on
// its own.
type pathPartial struct {
	whole    *Path     // parent path
	start    int       // first index within parent path
	end      int       // last index within parent path
	controls *Controls // control points, shared with parent path
}

// Controls collects calculated spline control points.
type Controls struct {
	prec  []pathing.Pair // control point i-, to be calculated
	postc []pathing.Pair // control point i+, to be calculated
}
