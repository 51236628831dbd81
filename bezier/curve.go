// Package bezier provides the geometric primitives paths are made of:
// straight lines and Bezier curves of arbitrary degree.
//
// Curves are immutable. They are evaluated at a parameter t ∈ [0,1] for
// position and direction of travel; headings of control points other than
// the end points carry no meaning for the geometry.
package bezier

import (
	"errors"
	"fmt"

	"github.com/kevinfrei/pathing"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'pathing.bezier'
func tracer() tracing.Trace {
	return tracing.Select("pathing.bezier")
}

var (
	// ErrTooFewPoints indicates a curve with less than two control points.
	ErrTooFewPoints = errors.New("curve needs at least 2 control points")
	// ErrInvalidPoint indicates a control point coordinate containing NaN/Inf.
	ErrInvalidPoint = errors.New("curve has invalid control point")
	// ErrDegenerateCurve indicates a curve collapsed to a single point, for
	// which no direction of travel is defined.
	ErrDegenerateCurve = errors.New("curve is degenerate")
)

// Curve is a parametric curve, evaluable for t ∈ [0,1].
// Parameters outside of [0,1] are clamped.
type Curve interface {
	// Eval returns the position at parameter t. Its heading is unset.
	Eval(t float64) pathing.Pose
	// Derivative is the first derivative vector at t.
	Derivative(t float64) pathing.Pair
	// TangentAngle is the direction of travel at t. Fails with
	// ErrDegenerateCurve if the curve does not move at all.
	TangentAngle(t float64) (float64, error)
	// ArcLength is the total length of the curve.
	ArcLength() float64
	// ArcLengthTo is the length from the start up to parameter t.
	ArcLengthTo(t float64) float64
	// Points returns a copy of the control points.
	Points() []pathing.Pose
	// Degree is the polynomial degree, i.e. len(Points())-1.
	Degree() int
	Start() pathing.Pose
	End() pathing.Pose
	// Degenerate is true if all control points coincide.
	Degenerate() bool
	// Transform returns a copy of the curve with every control point mapped by m.
	Transform(m pathing.AT) Curve
	// Reversed returns the curve traversed from end to start.
	Reversed() Curve
}

// New creates a curve from control points: a Line for two points, a
// Bezier curve of degree len(points)-1 otherwise.
func New(points ...pathing.Pose) (Curve, error) {
	if len(points) == 2 {
		return NewLine(points[0], points[1])
	}
	return NewBezier(points...)
}

// Must is a helper for literal curve definitions. It panics on error.
func Must(c Curve, err error) Curve {
	if err != nil {
		panic(err)
	}
	return c
}

func checkPoints(points []pathing.Pose) error {
	if len(points) < 2 {
		return fmt.Errorf("%w: got %d", ErrTooFewPoints, len(points))
	}
	for i, p := range points {
		if !p.IsFinite() {
			return fmt.Errorf("%w at index %d: %s", ErrInvalidPoint, i, p)
		}
	}
	return nil
}

func clamp01(t float64) float64 {
	if t < 0 || t != t {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

func pairs(points []pathing.Pose) []pathing.Pair {
	prs := make([]pathing.Pair, len(points))
	for i, p := range points {
		prs[i] = p.Pair()
	}
	return prs
}

func transformAll(points []pathing.Pose, m pathing.AT) []pathing.Pose {
	out := make([]pathing.Pose, len(points))
	for i, p := range points {
		out[i] = m.TransformPose(p)
	}
	return out
}

func reverseAll(points []pathing.Pose) []pathing.Pose {
	out := make([]pathing.Pose, len(points))
	for i, p := range points {
		out[len(points)-1-i] = p
	}
	return out
}

// AsString returns a curve as a (debugging) string, listing its control points.
func AsString(c Curve) string {
	var s string
	for i, p := range c.Points() {
		if i > 0 {
			s += " .. "
		}
		s += p.String()
	}
	return s
}
