package paths

import (
	"fmt"

	"github.com/kevinfrei/pathing"
	"github.com/kevinfrei/pathing/bezier"
	"github.com/kevinfrei/pathing/heading"
)

// Segment pairs a curve with the heading interpolation along it.
type Segment struct {
	curve  bezier.Curve
	interp heading.Interpolator
}

// NewSegment creates a segment, checking that interp is usable with c.
func NewSegment(c bezier.Curve, interp heading.Interpolator) (Segment, error) {
	if c == nil || interp == nil {
		return Segment{}, ErrNilCurve
	}
	if err := interp.Validate(c); err != nil {
		return Segment{}, fmt.Errorf("%s heading on %s: %w", interp, bezier.AsString(c), err)
	}
	return Segment{curve: c, interp: interp}, nil
}

// Curve returns the segment's curve.
func (s Segment) Curve() bezier.Curve { return s.curve }

// Interpolator returns the segment's heading interpolator.
func (s Segment) Interpolator() heading.Interpolator { return s.interp }

// Sample returns the target pose at progress ∈ [0,1] along the segment.
func (s Segment) Sample(progress float64) pathing.Pose {
	pos := s.curve.Eval(progress)
	return pos.WithHeading(s.interp.HeadingAt(progress, s.curve))
}

// Length is the arc length of the segment's curve.
func (s Segment) Length() float64 {
	return s.curve.ArcLength()
}

func (s Segment) String() string {
	return fmt.Sprintf("%s [%s]", bezier.AsString(s.curve), s.interp)
}
