/*
Package pathing implements points, poses, angle arithmetic and affine
transformations for composing robot motion paths.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package pathing

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'pathing'
func tracer() tracing.Trace {
	return tracing.Select("pathing")
}

// === Numeric Data Type =====================================================

// Deg2Rad is a constant for converting from DEG to RAD or vice versa
const Deg2Rad float64 = math.Pi / 180

// Epsilon : numbers below ε are considered 0
var Epsilon float64 = 0.0000001

// Is0 is a predicate: is n = 0 ?
func Is0(n float64) bool {
	return math.Abs(n) <= Epsilon
}

// Zap makes n = 0 if n "means" to be zero
func Zap(n float64) float64 {
	if Is0(n) {
		n = 0
	}
	return n
}

// IsFinite is a predicate: is n neither NaN nor ±Inf ?
func IsFinite(n float64) bool {
	return !math.IsNaN(n) && !math.IsInf(n, 0)
}

// Rad converts degrees to radians.
func Rad(deg float64) float64 {
	return deg * Deg2Rad
}

// Deg converts radians to degrees.
func Deg(rad float64) float64 {
	return rad / Deg2Rad
}

// === Pair Data Type ========================================================

// Pair is a 2D-point or a 2D-vector, stored as a complex number.
type Pair complex128

// Origin represents the frequently used constant (0,0).
var Origin = P(0, 0)

// Pretty Stringer for simple pairs.
func (p Pair) String() string {
	return fmt.Sprintf("(%g,%g)", real(p), imag(p))
}

// C returns a Pair as a complex number.
func (p Pair) C() complex128 {
	return complex128(p)
}

// P is a quick notation for contructing a pair from floats.
func P(x, y float64) Pair {
	return Pair(complex(x, y))
}

// X is the x-part of a pair.
func (p Pair) X() float64 {
	return real(p)
}

// Y is the y-part of a pair.
func (p Pair) Y() float64 {
	return imag(p)
}

// IsFinite is a predicate: are both coordinates finite?
func (p Pair) IsFinite() bool {
	return IsFinite(p.X()) && IsFinite(p.Y())
}

// Equal compares two pairs, up to Epsilon.
func (p Pair) Equal(p2 Pair) bool {
	return Is0(p.X()-p2.X()) && Is0(p.Y()-p2.Y())
}

// Length is the euclidean length of a vector.
func (p Pair) Length() float64 {
	return cmplx.Abs(p.C())
}

// Dist is the euclidean distance between two points.
func (p Pair) Dist(p2 Pair) float64 {
	return (p2 - p).Length()
}

// Angle is the direction of a vector, in radians within (-π, π].
// The zero vector has angle 0.
func (p Pair) Angle() float64 {
	return NormalizeAngle(cmplx.Phase(p.C()))
}

// Scaled returns a new pair scaled by factor a.
func (p Pair) Scaled(a float64) Pair {
	return P(p.X()*a, p.Y()*a)
}

// Shifted returns a new pair translated by v.
func (p Pair) Shifted(v Pair) Pair {
	return p + v
}

// Rotated returns a new pair rotated around origin by theta (counterclockwise).
func (p Pair) Rotated(theta float64) Pair {
	return Rotation(theta).Transform(p)
}

// Lerp interpolates linearly between p and p2.
func (p Pair) Lerp(p2 Pair, t float64) Pair {
	return p + (p2 - p).Scaled(t)
}

// UnitVector is the vector of length 1 pointing in direction theta.
func UnitVector(theta float64) Pair {
	return P(math.Cos(theta), math.Sin(theta))
}

// === Angles ================================================================

// NormalizeAngle reduces an angle to fit into (-π, π].
func NormalizeAngle(a float64) float64 {
	if !IsFinite(a) {
		return a
	}
	a = math.Mod(a, 2*math.Pi)
	if a <= -math.Pi {
		a += 2 * math.Pi
	} else if a > math.Pi {
		a -= 2 * math.Pi
	}
	return a
}

// AngleDiff is the signed shortest rotation from angle `from` to angle `to`,
// within (-π, π]. Opposite angles yield +π, i.e. a counterclockwise turn.
func AngleDiff(from, to float64) float64 {
	return NormalizeAngle(to - from)
}

// AngleEqual compares two angles after normalization, up to Epsilon.
// π and -π are considered equal.
func AngleEqual(a, b float64) bool {
	return Is0(AngleDiff(a, b))
}
