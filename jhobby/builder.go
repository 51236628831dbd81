package jhobby

import (
	"math/cmplx"

	"github.com/kevinfrei/pathing"
)

// Nullpath creates an empty path, to be extended by subsequent builder
// calls. The following example builds a path of three knots, the last one
// with the robot arriving facing up:
//
//	path := Nullpath().Knot(At(0,0)).Curve().Knot(At(30,20)).Curve().Knot(PoseDeg(50,25,90)).End()
//
// The path is then handed to FindHobbyControls(...) to calculate the
// spline control points.
func Nullpath() *Path {
	return &Path{}
}

// End an open path. Part of builder functionality.
func (path *Path) End() *Path {
	return path
}

// Knot adds a knot to a path. If the pose has a heading, the spline will
// pass the knot in that direction. Part of builder functionality.
func (path *Path) Knot(p pathing.Pose) *Path {
	path.knots = append(path.knots, p)
	return path
}

// Curve connects two knots with a smooth curve.
// Part of builder functionality.
func (path *Path) Curve() *Path {
	if path.N() == 0 {
		panic("cannot add curve to empty path")
	}
	path.TensionCurve(1.0, 1.0)
	return path
}

// TensionCurve connects two knots with a tense curve.
// Part of builder functionality.
//
// Tensions are adapted to lie between 3/4 and 4. Higher tensions pull the
// curve closer to the straight line between the knots.
func (path *Path) TensionCurve(t1, t2 float64) *Path {
	if path.N() == 0 {
		panic("cannot add curve to empty path")
	}
	if t1 != 1.0 {
		path.SetPostTension(path.N()-1, t1)
	}
	if t2 != 1.0 {
		path.SetPreTension(path.N(), t2)
	}
	return path
}

// SetPreTension is a property setter.
func (path *Path) SetPreTension(i int, tension float64) *Path {
	path.tensions = extendC(path.tensions, i, 1+1i)
	post := imag(path.tensions[i])
	path.tensions[i] = pathing.P(clampTension(tension), post)
	return path
}

// SetPostTension is a property setter.
func (path *Path) SetPostTension(i int, tension float64) *Path {
	path.tensions = extendC(path.tensions, i, 1+1i)
	pre := real(path.tensions[i])
	path.tensions[i] = pathing.P(pre, clampTension(tension))
	return path
}

func clampTension(t float64) float64 {
	if t < 0.75 {
		return 0.75
	} else if t > 4.0 {
		return 4.0
	}
	return t
}

// N returns the length of this path (knot count).
func (path *Path) N() int {
	return len(path.knots)
}

// Knots returns a copy of the path's knots.
func (path *Path) Knots() []pathing.Pose {
	k := make([]pathing.Pose, len(path.knots))
	copy(k, path.knots)
	return k
}

// Z returns the position of knot i.
func (path *Path) Z(i int) pathing.Pair {
	return path.knots[i].Pair()
}

// Dir gets the direction of travel at knot i as a unit vector, or NaN if
// the knot is smooth.
func (path *Path) Dir(i int) pathing.Pair {
	if i < 0 || i >= path.N() || !path.knots[i].HasHeading() {
		return pathing.Pair(cmplx.NaN())
	}
	return pathing.UnitVector(path.knots[i].Heading())
}

// PreTension returns the tension before z.i.
func (path *Path) PreTension(i int) float64 {
	return real(getC(path.tensions, i, 1+1i))
}

// PostTension returns the tension after z.i.
func (path *Path) PostTension(i int) float64 {
	return imag(getC(path.tensions, i, 1+1i))
}
