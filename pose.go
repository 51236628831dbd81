package pathing

import "fmt"

// Pose is a 2D position plus an optional heading. Headings are in radians
// and kept normalized to (-π, π]. A pose without heading is a positional
// control point only (typically an interior Bezier control point).
//
// Pose is a value type; there are no mutating methods.
type Pose struct {
	pos        Pair
	heading    float64
	headingSet bool
}

// At creates a pose at (x,y) without a heading.
func At(x, y float64) Pose {
	return Pose{pos: P(x, y)}
}

// NewPose creates a pose at (x,y) facing heading (radians).
func NewPose(x, y, heading float64) Pose {
	return Pose{pos: P(x, y), heading: NormalizeAngle(heading), headingSet: true}
}

// PoseDeg creates a pose at (x,y) facing heading, which is given in degrees.
func PoseDeg(x, y, deg float64) Pose {
	return NewPose(x, y, Rad(deg))
}

// PoseAt creates a pose without heading at point p.
func PoseAt(p Pair) Pose {
	return Pose{pos: p}
}

// X is the x-coordinate of a pose.
func (p Pose) X() float64 { return p.pos.X() }

// Y is the y-coordinate of a pose.
func (p Pose) Y() float64 { return p.pos.Y() }

// Pair returns the position of a pose.
func (p Pose) Pair() Pair { return p.pos }

// Heading returns the heading of a pose, or 0 if none is set.
func (p Pose) Heading() float64 { return p.heading }

// HasHeading is a predicate: has the heading of this pose been specified?
func (p Pose) HasHeading() bool { return p.headingSet }

// WithHeading returns a copy of p facing heading (radians).
func (p Pose) WithHeading(heading float64) Pose {
	return Pose{pos: p.pos, heading: NormalizeAngle(heading), headingSet: true}
}

// WithoutHeading returns a copy of p with the heading cleared.
func (p Pose) WithoutHeading() Pose {
	return Pose{pos: p.pos}
}

// IsFinite is a predicate: are all components finite?
func (p Pose) IsFinite() bool {
	return p.pos.IsFinite() && (!p.headingSet || IsFinite(p.heading))
}

// Equal compares positions up to Epsilon. Headings are compared only if
// both poses carry one; a pose with heading never equals one without.
func (p Pose) Equal(o Pose) bool {
	if !p.pos.Equal(o.pos) || p.headingSet != o.headingSet {
		return false
	}
	return !p.headingSet || AngleEqual(p.heading, o.heading)
}

func (p Pose) String() string {
	if p.headingSet {
		return fmt.Sprintf("(%g,%g @%.4g°)", p.X(), p.Y(), Deg(p.heading))
	}
	return fmt.Sprintf("(%g,%g)", p.X(), p.Y())
}
