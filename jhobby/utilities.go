package jhobby

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/kevinfrei/pathing"
)

func hobbyParamsAlphaBeta(theta, phi float64) (float64, float64) {
	constA := 1.41421356     // sqrt(2) -- empiric constants, as explained by J.Hobby
	constB := 0.0625         // 1/16
	constC := 0.38196601125  // (3 - sqrt(5)) / 2
	constCC := 0.61803398875 // 1 - c
	st := math.Sin(theta)    // in-angle
	ct := math.Cos(theta)
	sf := math.Sin(phi) // out-angle
	cf := math.Cos(phi)
	alpha := constA * (st - constB*sf) * (sf - constB*st) * (ct - cf)
	beta := 1 + constCC*ct + constC*cf
	return alpha, beta
}

func hobbyParamsRhoSigma(alpha, beta float64) (float64, float64) {
	rho := (2 + alpha) / beta
	sigma := (2 - alpha) / beta
	return rho, sigma
}

// Chord dvec rotated by theta and by -phi.
func cunitvecs(theta, phi float64, dvec pathing.Pair) (pathing.Pair, pathing.Pair) {
	return dvec.Rotated(theta), dvec.Rotated(-phi)
}

// Calculate control point offsets between z.i and z.[i+1].
func controlPoints(phi, theta, a, b float64, dvec pathing.Pair) (pathing.Pair, pathing.Pair) {
	alpha, beta := hobbyParamsAlphaBeta(theta, phi)
	rho, sigma := hobbyParamsRhoSigma(alpha, beta)
	uv1, uv2 := cunitvecs(theta, phi, dvec)
	return uv1.Scaled(a / 3 * rho), uv2.Scaled(b / 3 * sigma)
}

// Extend an array/slice of pairs to make room for index i.
// Will do nothing if the array is already large enough.
func extendC(arr []pathing.Pair, i int, deflt pathing.Pair) []pathing.Pair {
	l := len(arr)
	if i >= l {
		arr = append(arr, make([]pathing.Pair, i-l+1)...)
		for ; i >= l; i-- {
			arr[i] = deflt
		}
	}
	return arr
}

// Get a value from an array/slice if present, default value deflt otherwise.
func getC(arr []pathing.Pair, i int, deflt pathing.Pair) pathing.Pair {
	if i < 0 || i >= len(arr) {
		return deflt
	}
	return arr[i]
}

func angle(pr pathing.Pair) float64 {
	if cmplx.IsNaN(pr.C()) {
		return 0.0
	}
	return cmplx.Phase(pr.C())
}

// Reduce an angle to fit into -pi .. pi.
func reduceAngle(a float64) float64 {
	if math.Abs(a) > pi {
		if a > 0 {
			a -= pi2
		} else {
			a += pi2
		}
	}
	return a
}

// Return 1/a for a.
func recip(a float64) float64 {
	if math.IsNaN(a) {
		return 1.0
	}
	return 1.0 / a
}

// Return a^2 for a.
func square(a float64) float64 {
	return math.Pow(a, 2.0)
}

func rad2deg(a float64) float64 {
	return a * 180 / pi
}

func ptstring(p pathing.Pair, iscontrol bool) string {
	if cmplx.IsNaN(p.C()) {
		return "(<unknown>)"
	}
	if iscontrol {
		return fmt.Sprintf("(%.4f,%.4f)", round(p.X()), round(p.Y()))
	}
	return fmt.Sprintf("(%.4g,%.4g)", round(p.X()), round(p.Y()))
}

// Knot position, followed by its direction in MetaFont's {dir d} notation
// if it has one.
func knotstring(path *Path, i int) string {
	s := ptstring(path.Z(i), false)
	if k := path.knots[i]; k.HasHeading() {
		s += fmt.Sprintf("{dir %.4g}", round(pathing.Deg(k.Heading())))
	}
	return s
}

func round(x float64) float64 {
	if x >= 0 {
		return float64(int64(x*10000.0+0.5)) / 10000.0
	}
	return float64(int64(x*10000.0-0.5)) / 10000.0
}
