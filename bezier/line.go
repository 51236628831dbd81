package bezier

import (
	"fmt"

	"github.com/kevinfrei/pathing"
)

// Line is a straight segment between two poses. It has a constant direction
// of travel and an exact arc length.
type Line struct {
	p0, p1 pathing.Pose
}

var _ Curve = (*Line)(nil)

// NewLine creates a line from p0 to p1.
func NewLine(p0, p1 pathing.Pose) (*Line, error) {
	if err := checkPoints([]pathing.Pose{p0, p1}); err != nil {
		return nil, err
	}
	return &Line{p0: p0, p1: p1}, nil
}

// Eval implements [Curve].
func (l *Line) Eval(t float64) pathing.Pose {
	t = clamp01(t)
	switch t {
	case 0:
		return pathing.PoseAt(l.p0.Pair())
	case 1:
		return pathing.PoseAt(l.p1.Pair())
	}
	return pathing.PoseAt(l.p0.Pair().Lerp(l.p1.Pair(), t))
}

// Derivative implements [Curve].
func (l *Line) Derivative(t float64) pathing.Pair {
	return l.p1.Pair() - l.p0.Pair()
}

// TangentAngle implements [Curve].
func (l *Line) TangentAngle(t float64) (float64, error) {
	if l.Degenerate() {
		return 0, fmt.Errorf("%w: line %s", ErrDegenerateCurve, AsString(l))
	}
	return l.Derivative(t).Angle(), nil
}

// ArcLength implements [Curve]. It is the euclidean distance between the end points.
func (l *Line) ArcLength() float64 {
	return l.p0.Pair().Dist(l.p1.Pair())
}

// Points implements [Curve].
func (l *Line) Points() []pathing.Pose {
	return []pathing.Pose{l.p0, l.p1}
}

// Degree implements [Curve].
func (l *Line) Degree() int { return 1 }

// Start implements [Curve].
func (l *Line) Start() pathing.Pose { return l.p0 }

// End implements [Curve].
func (l *Line) End() pathing.Pose { return l.p1 }

// Degenerate implements [Curve].
func (l *Line) Degenerate() bool {
	return l.p0.Pair().Equal(l.p1.Pair())
}

// Transform implements [Curve].
func (l *Line) Transform(m pathing.AT) Curve {
	return &Line{p0: m.TransformPose(l.p0), p1: m.TransformPose(l.p1)}
}

// Reversed implements [Curve].
func (l *Line) Reversed() Curve {
	return &Line{p0: l.p1, p1: l.p0}
}

// ArcLengthTo is the length of the line from its start up to parameter t.
func (l *Line) ArcLengthTo(t float64) float64 {
	return clamp01(t) * l.ArcLength()
}
