package jhobby

import (
	"fmt"
	"math"
	"math/cmplx"
)

// ValidateForSolve checks if a path is solvable by Hobby interpolation.
func (path *Path) ValidateForSolve() error {
	if path == nil {
		return ErrNilPath
	}
	n := path.N()
	if n < 2 {
		return fmt.Errorf("%w: open path needs at least 2 knots, got %d", ErrTooFewKnots, n)
	}
	for i := 0; i < n; i++ {
		if !path.knots[i].IsFinite() {
			return fmt.Errorf("%w at knot %d", ErrInvalidKnot, i)
		}
	}
	for i := 0; i < n-1; i++ {
		if cmplx.Abs((path.Z(i+1) - path.Z(i)).C()) <= _epsilon {
			return fmt.Errorf("%w between knots %d and %d", ErrDegenerateSegment, i, i+1)
		}
	}
	return nil
}

// FindHobbyControls finds the Hobby-spline control points for a given
// skeleton path. This is the central API function of this package.
// It validates the path and returns an error for empty/invalid geometry.
//
// The path is split at knots with a fixed direction and every part is
// solved on its own. FindHobbyControls traces the resulting path using
// log-level INFO (as MetaFont does with tracingchoices).
//
// BUG(norbert@pillmayer.com): Currently there are slight deviations from
// MetaFont's calculation, probably due to different rounding.
func FindHobbyControls(path *Path) (*Controls, error) {
	if err := path.ValidateForSolve(); err != nil {
		return nil, err
	}
	controls := &Controls{}
	for _, segment := range splitSegments(path) {
		segment.controls = controls
		tracer().Debugf("find controls for segment %s", asStringPartial(segment, nil))
		findSegmentControls(segment)
	}
	tracer().Infof(AsString(path, controls))
	return controls, nil
}

// MustFindHobbyControls is a helper which panics on validation errors.
func MustFindHobbyControls(path *Path) *Controls {
	c, err := FindHobbyControls(path)
	if err != nil {
		panic(err)
	}
	return c
}

func findSegmentControls(path *pathPartial) {
	var u = make([]float64, path.N()+1)
	var v = make([]float64, path.N()+1)
	var theta = make([]float64, path.N()+1)
	startOpen(path, u, v)
	buildEqs(path, u, v)
	endOpen(path, theta, u, v)
	setControls(path, theta) // set control points from theta angles
}

func startOpen(path *pathPartial, u, v []float64) {
	if cmplx.IsNaN(path.Dir(0).C()) {
		a := recip(path.PostTension(0))
		b := recip(path.PreTension(1))
		c := square(a) * endCurl / square(b)
		tracer().Debugf("a = %.4g, b = %.4g, c = %.4g", a, b, c)
		u[0] = ((3-a)*c + b) / (a*c + 3 - b)
		v[0] = -u[0] * path.psi(1)
	} else {
		u[0] = 0
		v[0] = reduceAngle(angle(path.Dir(0)) - angle(path.delta(0)))
	}
	tracer().Debugf("u.0 = %.4g, v.0 = %.4g", u[0], v[0])
}

// Tridiagonal forward pass over the inner knots.
func buildEqs(path *pathPartial, u, v []float64) {
	last := path.N() - 1
	for i := 1; i < last; i++ {
		a0 := recip(path.PostTension(i - 1))
		a1 := recip(path.PostTension(i))
		b1 := recip(path.PreTension(i))
		b2 := recip(path.PreTension(i + 1))
		tracer().Debugf("1/tensions: %.4g, %.4g, %.4g, %.4g", a0, a1, b1, b2)
		A := a0 / (square(b1) * path.d(i-1))
		B := (3 - a0) / (square(b1) * path.d(i-1))
		C := (3 - b2) / (square(a1) * path.d(i))
		D := b2 / (square(a1) * path.d(i))
		tracer().Debugf("A, B, C, D: %.4g, %.4g, %.4g, %.4g", A, B, C, D)
		t := B - u[i-1]*A + C
		u[i] = D / t
		v[i] = (-B*path.psi(i) - D*path.psi(i+1) - A*v[i-1]) / t
		tracer().Debugf("u.%d = %.4g, v.%d = %.4g", i, u[i], i, v[i])
	}
}

func endOpen(path *pathPartial, theta, u, v []float64) {
	last := path.N() - 1
	if cmplx.IsNaN(path.Dir(last).C()) {
		a := recip(path.PostTension(last - 1))
		b := recip(path.PreTension(last))
		c := square(b) * endCurl / square(a)
		u[last] = (b*c + 3 - a) / ((3-b)*c + a)
		tracer().Debugf("u.%d = %g", last, u[last])
		if den := u[last-1] - u[last]; math.Abs(den) > _epsilon {
			theta[last] = v[last-1] / den
		} else { // two free ends: a straight line
			theta[last] = 0
		}
	} else {
		theta[last] = reduceAngle(angle(path.Dir(last)) - angle(path.delta(last-1)))
	}
	tracer().Debugf("theta.%d = %.4g", last, rad2deg(theta[last]))
	for i := last - 1; i >= 0; i-- {
		theta[i] = v[i] - u[i]*theta[i+1]
		tracer().Debugf("theta.%d = %.4g", i, rad2deg(theta[i]))
	}
}

func setControls(path *pathPartial, theta []float64) {
	for i := 0; i < path.N()-1; i++ {
		phi := -path.psi(i+1) - theta[i+1]
		a := recip(path.PostTension(i))
		b := recip(path.PreTension(i + 1))
		p2, p3 := controlPoints(phi, theta[i], a, b, path.delta(i))
		path.SetPostControl(i, path.Z(i)+p2)
		path.SetPreControl(i+1, path.Z(i+1)-p3)
	}
}
