package bezier

import (
	"fmt"
	"math"
	"sync"

	"github.com/kevinfrei/pathing"
)

// Bezier is a Bezier curve of degree len(points)-1, evaluated by
// De Casteljau's algorithm. Only the headings of the end points are
// meaningful.
type Bezier struct {
	points []pathing.Pose
	ctrl   []pathing.Pair // positions of points
	once   sync.Once      // guards length
	length float64
}

var _ Curve = (*Bezier)(nil)

// NewBezier creates a Bezier curve with the given control points. At least
// two control points are required; with exactly two the curve is a line,
// but without the Line's exact shortcuts.
func NewBezier(points ...pathing.Pose) (*Bezier, error) {
	if err := checkPoints(points); err != nil {
		return nil, err
	}
	pts := make([]pathing.Pose, len(points))
	copy(pts, points)
	b := &Bezier{points: pts, ctrl: pairs(pts)}
	tracer().Debugf("new bezier of degree %d: %s", b.Degree(), AsString(b))
	return b, nil
}

// NewQuadratic creates a quadratic Bezier curve from p0 to p2, pulled
// towards p1.
func NewQuadratic(p0, p1, p2 pathing.Pose) (*Bezier, error) {
	return NewBezier(p0, p1, p2)
}

// NewCubic creates a cubic Bezier curve from p0 to p3, with control points
// p1 and p2.
func NewCubic(p0, p1, p2, p3 pathing.Pose) (*Bezier, error) {
	return NewBezier(p0, p1, p2, p3)
}

// Eval implements [Curve].
func (b *Bezier) Eval(t float64) pathing.Pose {
	t = clamp01(t)
	switch t {
	case 0:
		return pathing.PoseAt(b.ctrl[0])
	case 1:
		return pathing.PoseAt(b.ctrl[len(b.ctrl)-1])
	}
	return pathing.PoseAt(casteljau(b.ctrl, t))
}

// De Casteljau's recurrence: repeated linear interpolation between
// neighbouring points until one point is left.
func casteljau(ctrl []pathing.Pair, t float64) pathing.Pair {
	work := make([]pathing.Pair, len(ctrl))
	copy(work, ctrl)
	for n := len(work) - 1; n > 0; n-- {
		for i := 0; i < n; i++ {
			work[i] = work[i].Lerp(work[i+1], t)
		}
	}
	return work[0]
}

// Derivative implements [Curve]. The derivative of a Bezier curve of degree n
// is a Bezier curve of degree n-1 over the scaled differences of
// neighbouring control points.
func (b *Bezier) Derivative(t float64) pathing.Pair {
	t = clamp01(t)
	n := len(b.ctrl) - 1
	diffs := make([]pathing.Pair, n)
	for i := 0; i < n; i++ {
		diffs[i] = (b.ctrl[i+1] - b.ctrl[i]).Scaled(float64(n))
	}
	return casteljau(diffs, t)
}

// Nudges for finding the limit direction where the derivative vanishes.
var tangentNudges = [...]float64{1e-6, 1e-4, 1e-3, 1e-2}

// TangentAngle implements [Curve].
//
// Where the derivative vanishes (a cusp, or coincident leading control
// points) the one-sided limit direction is used: outgoing for t < 1,
// incoming for t = 1.
func (b *Bezier) TangentAngle(t float64) (float64, error) {
	if b.Degenerate() {
		return 0, fmt.Errorf("%w: bezier %s", ErrDegenerateCurve, AsString(b))
	}
	t = clamp01(t)
	tiny := b.scale() * 1e-9
	if d := b.Derivative(t); d.Length() > tiny {
		return d.Angle(), nil
	}
	for _, h := range tangentNudges {
		u := t + h
		if t == 1 {
			u = t - h
		}
		if d := b.Derivative(u); d.Length() > tiny {
			tracer().Debugf("derivative vanishes at t=%g, using direction at t=%g", t, u)
			return d.Angle(), nil
		}
	}
	return 0, fmt.Errorf("%w: no direction of travel at t=%g", ErrDegenerateCurve, t)
}

// scale is the largest distance of a control point from the start point.
func (b *Bezier) scale() float64 {
	var s float64
	for _, c := range b.ctrl[1:] {
		s = math.Max(s, b.ctrl[0].Dist(c))
	}
	return s
}

// Points implements [Curve].
func (b *Bezier) Points() []pathing.Pose {
	pts := make([]pathing.Pose, len(b.points))
	copy(pts, b.points)
	return pts
}

// Degree implements [Curve].
func (b *Bezier) Degree() int { return len(b.points) - 1 }

// Start implements [Curve].
func (b *Bezier) Start() pathing.Pose { return b.points[0] }

// End implements [Curve].
func (b *Bezier) End() pathing.Pose { return b.points[len(b.points)-1] }

// Degenerate implements [Curve].
func (b *Bezier) Degenerate() bool {
	return pathing.Is0(b.scale())
}

// Transform implements [Curve].
func (b *Bezier) Transform(m pathing.AT) Curve {
	pts := transformAll(b.points, m)
	return &Bezier{points: pts, ctrl: pairs(pts)}
}

// Reversed implements [Curve].
func (b *Bezier) Reversed() Curve {
	pts := reverseAll(b.points)
	return &Bezier{points: pts, ctrl: pairs(pts)}
}
