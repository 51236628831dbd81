package heading

import (
	"errors"
	"math"
	"testing"

	"github.com/kevinfrei/pathing"
	"github.com/kevinfrei/pathing/bezier"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func line(t *testing.T, x0, y0, x1, y1 float64) bezier.Curve {
	t.Helper()
	l, err := bezier.NewLine(pathing.At(x0, y0), pathing.At(x1, y1))
	require.NoError(t, err)
	return l
}

func TestConstantIgnoresProgress(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	h := NewConstant(math.Pi / 2)
	c := line(t, 0, 0, 10, 0)
	for _, p := range []float64{0, 0.3, 1, 7} {
		assert.Equal(t, math.Pi/2, h.HeadingAt(p, c))
	}
	assert.Equal(t, math.Pi/2, h.HeadingAt(0.5, nil), "constant heading must not touch the curve")
	assert.Equal(t, KindConstant, h.Kind())
}

func TestLinearMidpoint(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	h := NewLinear(0, math.Pi/2)
	assert.InDelta(t, math.Pi/4, h.HeadingAt(0.5, nil), 1e-12)
	assert.Equal(t, 0.0, h.HeadingAt(0, nil))
	assert.Equal(t, math.Pi/2, h.HeadingAt(1, nil))
}

func TestLinearTakesShortestPathAcrossPi(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	h := NewLinear(3*math.Pi/4, -3*math.Pi/4)
	mid := h.HeadingAt(0.5, nil)
	assert.InDelta(t, math.Pi, math.Abs(mid), 1e-12, "midpoint must be ±π, got %g", mid)
	quarter := h.HeadingAt(0.25, nil)
	assert.InDelta(t, 7*math.Pi/8, quarter, 1e-12)
	threeQuarter := h.HeadingAt(0.75, nil)
	assert.InDelta(t, -7*math.Pi/8, threeQuarter, 1e-12)
}

func TestLinearOfDegrees(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	// turning from 145° to 180° is a small counterclockwise turn
	h := NewLinear(pathing.Rad(145), pathing.Rad(180))
	assert.InDelta(t, pathing.Rad(162.5), h.HeadingAt(0.5, nil), 1e-12)
	// turning from 37° to 0° is a small clockwise turn
	h = NewLinear(pathing.Rad(37), 0)
	assert.InDelta(t, pathing.Rad(18.5), h.HeadingAt(0.5, nil), 1e-12)
}

func TestLinearClampsProgress(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	h := NewLinear(0, 1)
	assert.Equal(t, h.HeadingAt(0, nil), h.HeadingAt(-0.5, nil))
	assert.Equal(t, h.HeadingAt(1, nil), h.HeadingAt(1.5, nil))
	assert.Equal(t, h.HeadingAt(0, nil), h.HeadingAt(math.NaN(), nil))
}

func TestTangentFollowsDirectionOfTravel(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	up := line(t, 0, 0, 0, 10)
	assert.InDelta(t, math.Pi/2, NewTangent(false).HeadingAt(0.5, up), 1e-12)
	assert.InDelta(t, -math.Pi/2, NewTangent(true).HeadingAt(0.5, up), 1e-12)
	left := line(t, 10, 0, 0, 0)
	assert.InDelta(t, math.Pi, NewTangent(false).HeadingAt(0.5, left), 1e-12)
	assert.InDelta(t, 0, NewTangent(true).HeadingAt(0.5, left), 1e-12)
}

func TestTangentOnCurve(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	// B(t) = (t, t²): direction (1, 2t)
	c, err := bezier.NewQuadratic(pathing.At(0, 0), pathing.At(0.5, 0), pathing.At(1, 1))
	require.NoError(t, err)
	h := NewTangent(false)
	for _, p := range []float64{0, 0.25, 0.5, 1} {
		assert.InDelta(t, math.Atan2(2*p, 1), h.HeadingAt(p, c), 1e-12)
	}
}

func TestTangentRejectsDegenerateCurve(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	point := line(t, 3, 3, 3, 3)
	err := NewTangent(false).Validate(point)
	if !errors.Is(err, bezier.ErrDegenerateCurve) {
		t.Fatalf("expected ErrDegenerateCurve, got %v", err)
	}
	assert.NoError(t, NewConstant(0).Validate(point))
	assert.NoError(t, NewLinear(0, 1).Validate(point))
	assert.Error(t, NewLinear(math.NaN(), 1).Validate(point))
}

func TestTransformMirrorsHeadings(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	mirror := pathing.MirrorX(72)
	c := NewConstant(pathing.Rad(143)).Transform(mirror)
	assert.InDelta(t, pathing.Rad(37), c.HeadingAt(0, nil), 1e-9)
	l := NewLinear(pathing.Rad(145), pathing.Rad(180)).Transform(mirror).(Linear)
	assert.InDelta(t, pathing.Rad(35), l.Start(), 1e-9)
	assert.InDelta(t, 0, l.End(), 1e-9)
	assert.InDelta(t, pathing.Rad(17.5), l.HeadingAt(0.5, nil), 1e-9)
	tg := NewTangent(true)
	assert.Equal(t, tg, tg.Transform(mirror))
}

func TestTransformKeepsSenseOfHalfTurn(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	mirror := pathing.MirrorX(72)
	h := NewLinear(0, math.Pi)
	assert.InDelta(t, math.Pi/2, h.HeadingAt(0.5, nil), 1e-12, "half turn goes counterclockwise")
	mirrored := h.Transform(mirror)
	want := mirror.TransformAngle(h.HeadingAt(0.5, nil))
	assert.InDelta(t, want, mirrored.HeadingAt(0.5, nil), 1e-9)
	assert.InDelta(t, math.Pi/2, mirrored.HeadingAt(0.5, nil), 1e-9)
	assert.InDelta(t, math.Pi, math.Abs(mirrored.HeadingAt(0, nil)), 1e-9)
	assert.InDelta(t, 0, mirrored.HeadingAt(1, nil), 1e-9)
	// mirroring twice restores the original turn
	back := mirrored.Transform(mirror)
	for _, p := range []float64{0.25, 0.5, 0.75} {
		assert.InDelta(t, h.HeadingAt(p, nil), back.HeadingAt(p, nil), 1e-9, "progress %g", p)
	}
	// rotations keep the sense of the turn
	rotated := h.Transform(pathing.Rotation(math.Pi / 2))
	assert.InDelta(t, math.Pi, math.Abs(rotated.HeadingAt(0.5, nil)), 1e-9)
}

func TestStrings(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	assert.Equal(t, "tangent(reversed)", NewTangent(true).String())
	assert.Equal(t, "linear(0°→90°)", NewLinear(0, math.Pi/2).String())
	assert.Equal(t, "tangent", KindTangent.String())
}
