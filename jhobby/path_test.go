package jhobby

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/kevinfrei/pathing"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustPanic(t *testing.T, f func()) {
	t.Helper()
	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected panic, got none")
		}
	}()
	f()
}

func mustFindControls(t *testing.T, path *Path) *Controls {
	t.Helper()
	c, err := FindHobbyControls(path)
	if err != nil {
		t.Fatalf("FindHobbyControls failed: %v", err)
	}
	return c
}

func testpath() *Path {
	return Nullpath().Knot(pathing.At(1, 1)).Curve().Knot(pathing.At(2, 2)).
		Curve().Knot(pathing.At(3, 1)).End()
}

func near(t *testing.T, want, got pathing.Pair, msg string) {
	t.Helper()
	if math.Abs(want.X()-got.X()) > 0.0002 || math.Abs(want.Y()-got.Y()) > 0.0002 {
		t.Errorf("%s: expected %v, got %v", msg, want, got)
	}
}

func TestSliceEnlargement(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	arr := make([]pathing.Pair, 0)
	arr = extendC(arr, 3, 2+1i)
	c := arr[3]
	if c != 2+1i {
		t.Fail()
	}
}

func TestCreatePath(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	path := testpath()
	if path.N() != 3 {
		t.Fail()
	}
	knots := path.Knots()
	knots[0] = pathing.At(9, 9)
	assert.True(t, path.Z(0).Equal(pathing.P(1, 1)), "knots must be copied")
}

func TestAsStringSnapshots(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	if got, want := AsString(testpath(), nil), "(1,1) .. (2,2) .. (3,1)"; got != want {
		t.Fatalf("open AsString mismatch:\n got: %s\nwant: %s", got, want)
	}
	directed := Nullpath().
		Knot(pathing.At(0, 0)).Curve().
		Knot(pathing.PoseDeg(10, 10, 0)).Curve().
		Knot(pathing.At(20, 0)).End()
	if got, want := AsString(directed, nil), "(0,0) .. (10,10){dir 0} .. (20,0)"; got != want {
		t.Fatalf("directed AsString mismatch:\n got: %s\nwant: %s", got, want)
	}
}

func TestSetTension(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	path := Nullpath().Knot(pathing.At(1, 1)).TensionCurve(1.0, 2.0).Knot(pathing.At(2, 1)).End()
	if path.PostTension(0) < 0.99 {
		t.Fail()
	}
	if path.PreTension(1) < 1.99 {
		t.Fail()
	}
	path.SetPostTension(1, 0.1).SetPreTension(2, 12)
	assert.Equal(t, 0.75, path.PostTension(1))
	assert.Equal(t, 4.0, path.PreTension(2))
}

func TestDir(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	path := Nullpath().Knot(pathing.PoseDeg(1, 1, 0)).Curve().Knot(pathing.At(2, 2)).End()
	t.Logf("dir(0) = %g\n", path.Dir(0))
	if angle(path.Dir(0)) > 0.01 {
		t.Fail()
	}
	assert.False(t, isrough(path, 1))
	assert.True(t, isrough(path, 0))
}

func TestDelta(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	path := testpath()
	delta1 := delta(path, 1)
	t.Logf("delta [1->2] = %g\n", delta1)
	if delta1 != 1-1i {
		t.Fail()
	}
}

func TestD(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	path := testpath()
	d := d(path, 1)
	t.Logf("d [1->2] = %g\n", d)
	if math.Abs(d-math.Sqrt2) > 1e-9 {
		t.Fail()
	}
}

func TestPsi(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	path := testpath()
	psi1 := psi(path, 1)
	t.Logf("psi [1->2] = %g\n", rad2deg(psi1)) // -90.0000001
	if math.Abs(rad2deg(psi1)+90.0) > 0.01 {
		t.Fail()
	}
	if psi(path, 0) != 0 || psi(path, 2) != 0 {
		t.Errorf("expected no turning at the ends of an open path")
	}
}

func TestOpen(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	path := testpath()
	t.Log(AsString(path, nil))
	controls := mustFindControls(t, path)
	t.Log(AsString(path, controls))
}

func TestControlsDeterministicSnapshot(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	controls := mustFindControls(t, testpath())
	near(t, pathing.P(1, 1.5523), controls.PostControl(0), "post control[0]")
	near(t, pathing.P(1.4477, 2), controls.PreControl(1), "pre control[1]")
	near(t, pathing.P(2.5523, 2), controls.PostControl(1), "post control[1]")
	near(t, pathing.P(3, 1.5523), controls.PreControl(2), "pre control[2]")
	assert.True(t, math.IsNaN(real(controls.PreControl(0))), "no control before the first knot")
}

func TestTwoFreeKnotsMakeAStraightLine(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	path := Nullpath().Knot(pathing.At(0, 0)).Curve().Knot(pathing.At(10, 0)).End()
	controls := mustFindControls(t, path)
	near(t, pathing.P(10.0/3, 0), controls.PostControl(0), "post control[0]")
	near(t, pathing.P(20.0/3, 0), controls.PreControl(1), "pre control[1]")
}

func TestHeadingFixesDirection(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	// arrive at (10,0) driving up: a half circle below the chord
	path := Nullpath().Knot(pathing.At(0, 0)).Curve().Knot(pathing.PoseDeg(10, 0, 90)).End()
	controls := mustFindControls(t, path)
	near(t, pathing.P(0, -6.6667), controls.PostControl(0), "post control[0]")
	near(t, pathing.P(10, -6.6667), controls.PreControl(1), "pre control[1]")
	curves, err := Curves(path, controls)
	require.NoError(t, err)
	require.Len(t, curves, 1)
	end, err := curves[0].TangentAngle(1)
	require.NoError(t, err)
	assert.InDelta(t, math.Pi/2, end, 1e-9)
}

func TestInnerHeadingSplitsPath(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	tracer().SetTraceLevel(tracing.LevelDebug)
	path := Nullpath().
		Knot(pathing.At(0, 0)).Curve().
		Knot(pathing.PoseDeg(10, 10, 0)).Curve().
		Knot(pathing.At(20, 0)).End()
	segs := splitSegments(path)
	require.Len(t, segs, 2)
	if segs[0].start != 0 || segs[0].end != 1 || segs[1].start != 1 || segs[1].end != 2 {
		t.Fatalf("unexpected segment bounds: [%d,%d] [%d,%d]",
			segs[0].start, segs[0].end, segs[1].start, segs[1].end)
	}
	controls := mustFindControls(t, path)
	near(t, pathing.P(0, 5.5228), controls.PostControl(0), "post control[0]")
	near(t, pathing.P(4.4772, 10), controls.PreControl(1), "pre control[1]")
	near(t, pathing.P(15.5228, 10), controls.PostControl(1), "post control[1]")
	near(t, pathing.P(20, 5.5228), controls.PreControl(2), "pre control[2]")
	curves, err := Curves(path, controls)
	require.NoError(t, err)
	require.Len(t, curves, 2)
	for i, c := range curves {
		a, err := c.TangentAngle(float64(1 - i))
		require.NoError(t, err)
		assert.InDelta(t, 0, a, 1e-9, "curve %d at knot 1", i)
	}
}

func TestSmooth(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	knots := []pathing.Pose{pathing.At(1, 1), pathing.At(2, 2), pathing.At(3, 1), pathing.PoseDeg(4, 0, 0)}
	curves, err := Smooth(knots...)
	require.NoError(t, err)
	require.Len(t, curves, 3)
	for i, c := range curves {
		assert.True(t, c.Start().Equal(knots[i]), "curve %d starts at %v", i, c.Start())
		assert.True(t, c.End().Equal(knots[i+1]), "curve %d ends at %v", i, c.End())
		assert.Equal(t, 3, c.Degree())
		if i > 0 {
			in, _ := curves[i-1].TangentAngle(1)
			out, _ := c.TangentAngle(0)
			assert.InDelta(t, 0, pathing.AngleDiff(in, out), 1e-9, "smooth at knot %d", i)
		}
	}
	_, err = Smooth(pathing.At(0, 0))
	assert.ErrorIs(t, err, ErrTooFewKnots)
}

// Build a half circle of diameter 2 around (2,1). FindHobbyControls
// returns the spline controls for the skeleton path.
func ExampleFindHobbyControls() {
	path := Nullpath().Knot(pathing.At(1, 1)).Curve().Knot(pathing.At(2, 2)).Curve().
		Knot(pathing.At(3, 1)).End()
	fmt.Printf("skeleton path = %s\n\n", AsString(path, nil))
	fmt.Printf("unknown path =\n%s\n\n", AsString(path, &Controls{}))
	controls := MustFindHobbyControls(path)
	fmt.Printf("smooth path =\n%s\n", AsString(path, controls))
	// Output:
	// skeleton path = (1,1) .. (2,2) .. (3,1)
	//
	// unknown path =
	// (1,1) .. controls (<unknown>) and (<unknown>)
	//   .. (2,2) .. controls (<unknown>) and (<unknown>)
	//   .. (3,1)
	//
	// smooth path =
	// (1,1) .. controls (1.0000,1.5523) and (1.4477,2.0000)
	//   .. (2,2) .. controls (2.5523,2.0000) and (3.0000,1.5523)
	//   .. (3,1)
}

func TestSegmentProjection(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	seg := makePathSegment(testpath(), 1, 2)
	if seg.N() != 2 {
		t.Fail()
	}
	assert.True(t, seg.Z(0).Equal(pathing.P(2, 2)))
	assert.Equal(t, 0.0, seg.psi(0))
	assert.InDelta(t, math.Sqrt2, seg.d(0), 1e-9)
	// the whole path turns at (2,2), a segment ending there does not
	head := makePathSegment(testpath(), 0, 1)
	assert.Equal(t, 0.0, head.psi(1))
	span := makePathSegment(testpath(), 0, 2)
	assert.Equal(t, psi(testpath(), 1), span.psi(1))
}

func TestFindHobbyControlsRejectsNilPath(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	_, err := FindHobbyControls(nil)
	if !errors.Is(err, ErrNilPath) {
		t.Fatalf("expected ErrNilPath, got %v", err)
	}
	_, err = Curves(nil, nil)
	assert.ErrorIs(t, err, ErrNilPath)
}

func TestFindHobbyControlsRejectsTooFewKnots(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	path := Nullpath().Knot(pathing.At(0, 0)).End()
	_, err := FindHobbyControls(path)
	if !errors.Is(err, ErrTooFewKnots) {
		t.Fatalf("expected ErrTooFewKnots, got %v", err)
	}
}

func TestFindHobbyControlsRejectsDegenerateSegment(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	path := Nullpath().Knot(pathing.At(0, 0)).Curve().Knot(pathing.At(0, 0)).End()
	_, err := FindHobbyControls(path)
	if !errors.Is(err, ErrDegenerateSegment) {
		t.Fatalf("expected ErrDegenerateSegment, got %v", err)
	}
}

func TestFindHobbyControlsRejectsInvalidKnot(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	path := Nullpath().Knot(pathing.At(0, 0)).Curve().Knot(pathing.At(math.NaN(), 0)).End()
	_, err := FindHobbyControls(path)
	if !errors.Is(err, ErrInvalidKnot) {
		t.Fatalf("expected ErrInvalidKnot, got %v", err)
	}
	path = Nullpath().Knot(pathing.At(0, 0)).Curve().Knot(pathing.NewPose(1, 0, math.Inf(1))).End()
	_, err = FindHobbyControls(path)
	assert.ErrorIs(t, err, ErrInvalidKnot)
}

func TestMustFindHobbyControlsPanicsOnInvalidPath(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	path := Nullpath().Knot(pathing.At(0, 0)).End()
	mustPanic(t, func() { MustFindHobbyControls(path) })
}

func TestEmptyPathJoinPanics(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	mustPanic(t, func() { Nullpath().Curve() })
	mustPanic(t, func() { Nullpath().TensionCurve(1.2, 0.9) })
}
