package paths

import (
	"fmt"

	"github.com/kevinfrei/pathing/bezier"
	"github.com/kevinfrei/pathing/heading"
)

type builderState int

const (
	stateEmpty builderState = iota
	stateAccumulating
	stateBuilt
)

func (s builderState) String() string {
	return [...]string{"empty", "accumulating", "built"}[s]
}

type pending struct {
	curve  bezier.Curve
	interp heading.Interpolator // nil until set
}

// Builder accumulates curves and their heading interpolation into a Chain.
// A builder is meant for a single goroutine.
//
// The state machine is Empty → Accumulating → Built. Once built, a builder
// rejects further calls with ErrBuilderSealed until Reset is called.
type Builder struct {
	state   builderState
	pending []pending
	err     error
}

// NewBuilder creates an empty builder. This is the factory a path follower
// hands out for defining paths.
func NewBuilder() *Builder {
	return &Builder{}
}

// Reset clears the builder, including a sticky error, making it reusable.
func (b *Builder) Reset() *Builder {
	b.state = stateEmpty
	b.pending = nil
	b.err = nil
	return b
}

// Err returns the first error encountered, if any.
func (b *Builder) Err() error {
	return b.err
}

func (b *Builder) fail(err error) *Builder {
	if b.err == nil {
		tracer().Errorf("path builder: %v", err)
		b.err = err
	}
	return b
}

// AddPath appends a curve, which awaits a heading interpolator.
// Part of builder functionality.
func (b *Builder) AddPath(c bezier.Curve) *Builder {
	if b.err != nil {
		return b
	}
	if b.state == stateBuilt {
		return b.fail(ErrBuilderSealed)
	}
	if c == nil {
		return b.fail(fmt.Errorf("%w: path %d", ErrNilCurve, len(b.pending)))
	}
	b.pending = append(b.pending, pending{curve: c})
	b.state = stateAccumulating
	return b
}

// SetHeadingInterpolation binds interp to the most recently added curve.
// Part of builder functionality.
func (b *Builder) SetHeadingInterpolation(interp heading.Interpolator) *Builder {
	if b.err != nil {
		return b
	}
	switch {
	case b.state == stateBuilt:
		return b.fail(ErrBuilderSealed)
	case len(b.pending) == 0:
		return b.fail(ErrNoPendingPath)
	case interp == nil:
		return b.fail(fmt.Errorf("%w: heading for path %d", ErrNilCurve, len(b.pending)-1))
	}
	last := &b.pending[len(b.pending)-1]
	if last.interp != nil {
		return b.fail(fmt.Errorf("%w: path %d has %s, refusing %s",
			ErrInterpolatorAlreadySet, len(b.pending)-1, last.interp, interp))
	}
	last.interp = interp
	return b
}

// SetConstantHeadingInterpolation holds heading h along the most recently
// added curve. Part of builder functionality.
func (b *Builder) SetConstantHeadingInterpolation(h float64) *Builder {
	return b.SetHeadingInterpolation(heading.NewConstant(h))
}

// SetLinearHeadingInterpolation turns from h0 to h1 along the most recently
// added curve. Part of builder functionality.
func (b *Builder) SetLinearHeadingInterpolation(h0, h1 float64) *Builder {
	return b.SetHeadingInterpolation(heading.NewLinear(h0, h1))
}

// SetTangentHeadingInterpolation faces the direction of travel along the
// most recently added curve. Part of builder functionality.
func (b *Builder) SetTangentHeadingInterpolation() *Builder {
	return b.SetHeadingInterpolation(heading.NewTangent(false))
}

// SetReversedTangentHeadingInterpolation faces against the direction of
// travel, i.e. drives backwards. Part of builder functionality.
func (b *Builder) SetReversedTangentHeadingInterpolation() *Builder {
	return b.SetHeadingInterpolation(heading.NewTangent(true))
}

// Build fixes the accumulated segments into an immutable chain.
//
// Fails with the builder's sticky error, with ErrEmptyChain if no curve has
// been added, or with ErrIncompleteSegment if a curve lacks a heading
// interpolator.
func (b *Builder) Build() (*Chain, error) {
	if b.err != nil {
		return nil, b.err
	}
	switch b.state {
	case stateBuilt:
		return nil, b.fail(ErrBuilderSealed).err
	case stateEmpty:
		return nil, b.fail(ErrEmptyChain).err
	}
	segments := make([]Segment, 0, len(b.pending))
	for i, p := range b.pending {
		if p.interp == nil {
			return nil, b.fail(fmt.Errorf("%w: path %d (%s)",
				ErrIncompleteSegment, i, bezier.AsString(p.curve))).err
		}
		seg, err := NewSegment(p.curve, p.interp)
		if err != nil {
			return nil, b.fail(fmt.Errorf("path %d: %w", i, err)).err
		}
		segments = append(segments, seg)
	}
	chain := newChain(segments)
	b.pending = nil
	b.state = stateBuilt
	tracer().Infof("built path chain of %d segments, length %.4g", chain.Len(), chain.TotalLength())
	return chain, nil
}
