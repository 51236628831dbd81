package pathing

import (
	"fmt"
	"math"
)

// === Affine Transformations ================================================

// AT is an affine transform, a matrix type used for transforming vectors.
type AT []float64 // a 3x3 matrix, flattened by rows

// Internal constructor. Clients implicitely use this as a starting point for
// transform combinations.
func newAT() AT {
	m := make([]float64, 9)
	return m
}

func (m AT) get(row, col int) float64 {
	return m[row*3+col]
}

func (m AT) set(row, col int, value float64) {
	m[row*3+col] = value
}

func (m AT) row(row int) []float64 {
	return m[row*3 : (row+1)*3]
}

func (m AT) col(col int) []float64 {
	c := make([]float64, 3)
	c[0] = m[col]
	c[1] = m[3+col]
	c[2] = m[6+col]
	return c
}

// Identity transform. Will transform a point onto itself.
func Identity() AT {
	m := newAT()
	m.set(0, 0, 1.0)
	m.set(1, 1, 1.0)
	m.set(2, 2, 1.0)
	return m
}

// Translation transform. Translate a point by (dx,dy).
func Translation(p Pair) AT {
	m := Identity()
	m.set(0, 2, p.X())
	m.set(1, 2, p.Y())
	return m
}

// Rotation transform. Rotate a point counter-clockwise around the origin.
// Argument is in radians.
func Rotation(theta float64) AT {
	m := newAT()
	sin := math.Sin(theta)
	cos := math.Cos(theta)
	m.set(0, 0, cos)
	m.set(0, 1, -sin)
	m.set(1, 0, sin)
	m.set(1, 1, cos)
	m.set(2, 2, 1.0)
	return m
}

// Scaling transform. Scale x and y independently, relative to the origin.
func Scaling(sx, sy float64) AT {
	m := Identity()
	m.set(0, 0, sx)
	m.set(1, 1, sy)
	return m
}

// MirrorX reflects points across the vertical line x = axis.
//
// On a field of width w, MirrorX(w/2) turns a blue alliance pose into the
// corresponding red alliance pose.
func MirrorX(axis float64) AT {
	return Translation(P(-axis, 0)).Combine(Scaling(-1, 1)).Combine(Translation(P(axis, 0)))
}

// MirrorY reflects points across the horizontal line y = axis.
func MirrorY(axis float64) AT {
	return Translation(P(0, -axis)).Combine(Scaling(1, -1)).Combine(Translation(P(0, axis)))
}

// Debug Stringer for an affine transform.
func (m AT) String() string {
	s := fmt.Sprintf("[%g,%g,%g|%g,%g,%g|%g,%g,%g]",
		m[0], m[1], m[2], m[3], m[4], m[5], m[6], m[7], m[8])
	return s
}

// v1 × v2, v.n = [a,b,c]
func dotProd(vec1, vec2 []float64) float64 {
	return vec1[0]*vec2[0] + vec1[1]*vec2[1] + vec1[2]*vec2[2]
}

// Det is the determinant of the linear part of m. It is negative for
// transforms that mirror, which reverses the sense of rotation.
func (m AT) Det() float64 {
	return m.get(0, 0)*m.get(1, 1) - m.get(0, 1)*m.get(1, 0)
}

// Combine 2 affine transformation to a new one. The result applies m first,
// then n. Returns a new transformation without changing the argument(s).
func (m AT) Combine(n AT) AT {
	o := newAT()
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			o.set(row, col, dotProd(n.row(row), m.col(col)))
		}
	}
	return o
}

func (m AT) multiplyVector(v []float64) []float64 {
	c := make([]float64, 3)
	c[0] = dotProd(m.row(0), v)
	c[1] = dotProd(m.row(1), v)
	c[2] = dotProd(m.row(2), v)
	return c
}

// Transform a 2D-point. The argument is unchanged and a new pair is returned.
func (m AT) Transform(p Pair) Pair {
	c := m.multiplyVector([]float64{p.X(), p.Y(), 1.0})
	return P(c[0], c[1])
}

// TransformVector transforms a direction vector, i.e. applies the linear
// part of m only.
func (m AT) TransformVector(v Pair) Pair {
	c := m.multiplyVector([]float64{v.X(), v.Y(), 0.0})
	return P(c[0], c[1])
}

// TransformAngle maps a heading through the linear part of m.
// If m collapses the heading's direction, the heading is returned unchanged.
func (m AT) TransformAngle(theta float64) float64 {
	v := m.TransformVector(UnitVector(theta))
	if Is0(v.Length()) {
		tracer().Errorf("transform %s collapses direction %.4g", m, theta)
		return theta
	}
	return v.Angle()
}

// TransformPose transforms the position of a pose and, if present, its heading.
func (m AT) TransformPose(p Pose) Pose {
	q := PoseAt(m.Transform(p.Pair()))
	if p.HasHeading() {
		q = q.WithHeading(m.TransformAngle(p.Heading()))
	}
	return q
}
