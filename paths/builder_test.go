package paths

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/kevinfrei/pathing"
	"github.com/kevinfrei/pathing/bezier"
	"github.com/kevinfrei/pathing/heading"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildWithoutInterpolatorFails(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	_, err := NewBuilder().AddPath(mustCurve(t, pathing.At(0, 0), pathing.At(10, 0))).Build()
	if !errors.Is(err, ErrIncompleteSegment) {
		t.Fatalf("expected ErrIncompleteSegment, got %v", err)
	}
}

func TestBuildLeavingEarlierPathsWithoutInterpolatorFails(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	start, step1, step4 := pathing.PoseDeg(15, 15, 0), pathing.PoseDeg(50, 15, 90), pathing.PoseDeg(15, 15, 180)
	b := NewBuilder().
		AddPath(mustCurve(t, start, step1)).
		AddPath(mustCurve(t, step1, pathing.At(50, 50), step4, step1)).
		SetLinearHeadingInterpolation(0, math.Pi/2)
	require.NoError(t, b.Err())
	_, err := b.Build()
	require.ErrorIs(t, err, ErrIncompleteSegment)
	assert.Contains(t, err.Error(), "path 0")
}

func TestBuildEmptyFails(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	_, err := NewBuilder().Build()
	if !errors.Is(err, ErrEmptyChain) {
		t.Fatalf("expected ErrEmptyChain, got %v", err)
	}
}

func TestRebindingInterpolatorFails(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	b := NewBuilder().
		AddPath(mustCurve(t, pathing.At(0, 0), pathing.At(10, 0))).
		SetLinearHeadingInterpolation(0, 1).
		SetLinearHeadingInterpolation(0, 2)
	assert.ErrorIs(t, b.Err(), ErrInterpolatorAlreadySet)
	// the error is sticky
	b.AddPath(mustCurve(t, pathing.At(10, 0), pathing.At(20, 0))).SetTangentHeadingInterpolation()
	_, err := b.Build()
	assert.ErrorIs(t, err, ErrInterpolatorAlreadySet)
}

func TestInterpolatorWithoutPathFails(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	b := NewBuilder().SetConstantHeadingInterpolation(0)
	assert.ErrorIs(t, b.Err(), ErrNoPendingPath)
	b = NewBuilder().AddPath(nil)
	assert.ErrorIs(t, b.Err(), ErrNilCurve)
	b = NewBuilder().AddPath(mustCurve(t, pathing.At(0, 0), pathing.At(1, 0))).SetHeadingInterpolation(nil)
	assert.ErrorIs(t, b.Err(), ErrNilCurve)
}

func TestTangentOnDegenerateCurveFailsAtBuild(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	_, err := NewBuilder().
		AddPath(mustCurve(t, pathing.At(5, 5), pathing.At(5, 5), pathing.At(5, 5))).
		SetTangentHeadingInterpolation().
		Build()
	assert.ErrorIs(t, err, bezier.ErrDegenerateCurve)
}

func TestBuilderIsSealedAfterBuild(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	b := NewBuilder().
		AddPath(mustCurve(t, pathing.At(0, 0), pathing.At(10, 0))).
		SetConstantHeadingInterpolation(0)
	chain, err := b.Build()
	require.NoError(t, err)
	require.NotNil(t, chain)
	b.AddPath(mustCurve(t, pathing.At(10, 0), pathing.At(20, 0)))
	assert.ErrorIs(t, b.Err(), ErrBuilderSealed)
	_, err = b.Build()
	assert.ErrorIs(t, err, ErrBuilderSealed)
	assert.Equal(t, 1, chain.Len(), "built chain must not change")

	again, err := b.Reset().
		AddPath(mustCurve(t, pathing.At(10, 0), pathing.At(20, 0))).
		SetReversedTangentHeadingInterpolation().
		Build()
	require.NoError(t, err)
	assert.InDelta(t, math.Pi, math.Abs(again.Sample(0.5).Heading()), 1e-12)
}

func TestDoubleBuildFails(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	b := NewBuilder().
		AddPath(mustCurve(t, pathing.At(0, 0), pathing.At(10, 0))).
		SetHeadingInterpolation(heading.NewConstant(1))
	_, err := b.Build()
	require.NoError(t, err)
	_, err = b.Build()
	assert.ErrorIs(t, err, ErrBuilderSealed)
}

func TestSegmentSample(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	seg, err := NewSegment(mustCurve(t, pathing.At(0, 0), pathing.At(0, 10)), heading.NewTangent(false))
	require.NoError(t, err)
	assert.Equal(t, 10.0, seg.Length())
	p := seg.Sample(0.3)
	assert.True(t, p.Equal(pathing.NewPose(0, 3, math.Pi/2)), "got %v", p)
	_, err = NewSegment(nil, heading.NewTangent(false))
	assert.ErrorIs(t, err, ErrNilCurve)
}

// Build the 'Path1' of a test routine: a straight line, then a curve, both
// turning from facing right to facing up.
func ExampleBuilder() {
	start := pathing.PoseDeg(15, 15, 0)
	step1 := pathing.PoseDeg(50, 15, 90)
	step2 := pathing.PoseDeg(50, 50, 90)
	chain, err := NewBuilder().
		AddPath(bezier.Must(bezier.New(start, step1))).
		SetLinearHeadingInterpolation(start.Heading(), step1.Heading()).
		AddPath(bezier.Must(bezier.New(step1, pathing.At(25, 25), step2))).
		SetConstantHeadingInterpolation(step2.Heading()).
		Build()
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("segments: %d\n", chain.Len())
	for _, p := range []float64{0, 1} {
		pose := chain.Sample(p)
		fmt.Printf("progress %.2f: (%.1f,%.1f) heading %.0f°\n",
			p, pose.X(), pose.Y(), pathing.Deg(pose.Heading()))
	}
	// Output:
	// segments: 2
	// progress 0.00: (15.0,15.0) heading 0°
	// progress 1.00: (50.0,50.0) heading 90°
}
