// Package heading provides heading interpolation strategies.
//
// An interpolator decides which way a robot faces while it travels along a
// curve, as a function of progress ∈ [0,1] along that curve. Interpolators
// are immutable values and may be shared between segments and goroutines.
package heading

import (
	"fmt"
	"math"

	"github.com/kevinfrei/pathing"
	"github.com/kevinfrei/pathing/bezier"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'pathing.heading'
func tracer() tracing.Trace {
	return tracing.Select("pathing.heading")
}

// Kind enumerates the interpolation strategies.
type Kind int

const (
	KindConstant Kind = iota
	KindLinear
	KindTangent
)

func (k Kind) String() string {
	switch k {
	case KindConstant:
		return "constant"
	case KindLinear:
		return "linear"
	case KindTangent:
		return "tangent"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Interpolator maps progress along a curve to a target heading.
type Interpolator interface {
	// HeadingAt returns the heading in (-π, π] at progress ∈ [0,1].
	HeadingAt(progress float64, c bezier.Curve) float64
	// Validate reports whether the interpolator is usable with curve c.
	Validate(c bezier.Curve) error
	// Transform maps the interpolator's fixed headings through m.
	Transform(m pathing.AT) Interpolator
	Kind() Kind
	String() string
}

func clamp01(p float64) float64 {
	if p < 0 || math.IsNaN(p) {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

func checkAngle(name string, a float64) error {
	if !pathing.IsFinite(a) {
		return fmt.Errorf("%s heading is not a finite number: %g", name, a)
	}
	return nil
}

// --- Constant --------------------------------------------------------------

// Constant holds one heading for the whole curve.
type Constant struct {
	heading float64
}

// NewConstant creates a constant heading interpolator.
func NewConstant(heading float64) Constant {
	return Constant{heading: pathing.NormalizeAngle(heading)}
}

// HeadingAt implements [Interpolator]; progress and curve are ignored.
func (h Constant) HeadingAt(float64, bezier.Curve) float64 { return h.heading }

// Validate implements [Interpolator].
func (h Constant) Validate(bezier.Curve) error { return checkAngle("constant", h.heading) }

// Transform implements [Interpolator].
func (h Constant) Transform(m pathing.AT) Interpolator {
	return NewConstant(m.TransformAngle(h.heading))
}

// Kind implements [Interpolator].
func (h Constant) Kind() Kind { return KindConstant }

func (h Constant) String() string {
	return fmt.Sprintf("constant(%.4g°)", pathing.Deg(h.heading))
}

// --- Linear ----------------------------------------------------------------

// Linear turns from a start heading to an end heading at a constant rate,
// taking the shorter way around the circle. Headings exactly opposite to
// each other are connected by a counterclockwise turn.
type Linear struct {
	start, end float64
	sweep      float64 // signed, in [-π, π]
}

// NewLinear creates a linear heading interpolator.
func NewLinear(start, end float64) Linear {
	return Linear{
		start: pathing.NormalizeAngle(start),
		end:   pathing.NormalizeAngle(end),
		sweep: pathing.AngleDiff(start, end),
	}
}

// HeadingAt implements [Interpolator]; the curve is ignored.
func (h Linear) HeadingAt(progress float64, _ bezier.Curve) float64 {
	progress = clamp01(progress)
	if progress == 1 {
		return h.end
	}
	return pathing.NormalizeAngle(h.start + progress*h.sweep)
}

// Start is the heading at progress 0.
func (h Linear) Start() float64 { return h.start }

// End is the heading at progress 1.
func (h Linear) End() float64 { return h.end }

// Validate implements [Interpolator].
func (h Linear) Validate(bezier.Curve) error {
	if err := checkAngle("start", h.start); err != nil {
		return err
	}
	return checkAngle("end", h.end)
}

// Transform implements [Interpolator]. The transformed interpolator turns
// the same way as the original one, mirrored if m mirrors. This matters for
// half turns, where the shorter way is ambiguous.
func (h Linear) Transform(m pathing.AT) Interpolator {
	t := NewLinear(m.TransformAngle(h.start), m.TransformAngle(h.end))
	turn := h.sweep
	if m.Det() < 0 {
		turn = -turn
	}
	if t.sweep*turn < 0 {
		t.sweep = -t.sweep
	}
	return t
}

// Kind implements [Interpolator].
func (h Linear) Kind() Kind { return KindLinear }

func (h Linear) String() string {
	return fmt.Sprintf("linear(%.4g°→%.4g°)", pathing.Deg(h.start), pathing.Deg(h.end))
}

// --- Tangent ---------------------------------------------------------------

// Tangent faces the direction of travel, or the opposite direction if reversed.
type Tangent struct {
	reverse bool
}

// NewTangent creates a tangent heading interpolator.
func NewTangent(reverse bool) Tangent {
	return Tangent{reverse: reverse}
}

// HeadingAt implements [Interpolator].
//
// Curves without a direction of travel are rejected by Validate; if one
// slips through, heading 0 is returned.
func (h Tangent) HeadingAt(progress float64, c bezier.Curve) float64 {
	a, err := c.TangentAngle(clamp01(progress))
	if err != nil {
		tracer().Errorf("tangent heading: %v", err)
		return 0
	}
	if h.reverse {
		a += math.Pi
	}
	return pathing.NormalizeAngle(a)
}

// Reversed is true if the interpolator faces against the direction of travel.
func (h Tangent) Reversed() bool { return h.reverse }

// Validate implements [Interpolator]. A degenerate curve has no tangent.
func (h Tangent) Validate(c bezier.Curve) error {
	_, err := c.TangentAngle(0)
	return err
}

// Transform implements [Interpolator]. Tangents follow the curve.
func (h Tangent) Transform(pathing.AT) Interpolator { return h }

// Kind implements [Interpolator].
func (h Tangent) Kind() Kind { return KindTangent }

func (h Tangent) String() string {
	if h.reverse {
		return "tangent(reversed)"
	}
	return "tangent"
}
