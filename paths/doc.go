/*
Package paths composes curves and heading interpolators into path chains,
which a path follower samples for a target pose at increasing progress.

Chains are assembled with a Builder, mirroring the fluent style of path
definitions for robot autonomous routines:

	chain, err := paths.NewBuilder().
		AddPath(bezier.Must(bezier.New(start, step1))).
		SetLinearHeadingInterpolation(0, math.Pi/2).
		AddPath(bezier.Must(bezier.New(step1, mid, step2))).
		SetTangentHeadingInterpolation().
		Build()

Every added curve needs its own heading interpolator. Binding a second
interpolator to the same curve is an error, and so is building with a
curve left without one. The first error is sticky: subsequent builder calls
are ignored and Build reports it.

A Chain is immutable and may be sampled concurrently. Sampling maps global
progress ∈ [0,1] onto arc length, finds the segment covering that length
and evaluates it at the corresponding local progress. Progress outside
[0,1] is clamped, as control loops tend to overshoot slightly.

Segments of a chain need not connect; CheckContinuity reports gaps for
callers which rely on a connected chain.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package paths

import (
	"errors"

	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'pathing.paths'
func tracer() tracing.Trace {
	return tracing.Select("pathing.paths")
}

var (
	// ErrEmptyChain indicates a build attempt without any curve.
	ErrEmptyChain = errors.New("path chain has no segments")
	// ErrIncompleteSegment indicates a curve without heading interpolator.
	ErrIncompleteSegment = errors.New("path segment has no heading interpolation")
	// ErrInterpolatorAlreadySet indicates a second heading interpolator for the same curve.
	ErrInterpolatorAlreadySet = errors.New("heading interpolation already set for path segment")
	// ErrNoPendingPath indicates a heading interpolator set before any curve was added.
	ErrNoPendingPath = errors.New("no path to set heading interpolation for")
	// ErrBuilderSealed indicates use of a builder after Build, without Reset.
	ErrBuilderSealed = errors.New("path builder already built")
	// ErrProgressOutOfRange indicates a progress value outside of [0,1].
	ErrProgressOutOfRange = errors.New("progress out of range [0,1]")
	// ErrDiscontinuous indicates a gap between consecutive segments.
	ErrDiscontinuous = errors.New("path chain is discontinuous")
	// ErrOutOfBounds indicates a chain leaving its permitted region.
	ErrOutOfBounds = errors.New("path chain leaves region")
	// ErrNilCurve indicates a nil curve or interpolator.
	ErrNilCurve = errors.New("curve or interpolator must not be nil")
)
