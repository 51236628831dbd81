package bezier

import "math"

const (
	arcAccuracy = 1e-9 // relative to the curve's size
	maxArcDepth = 12   // bounds the subdivision to 2^12 intervals
)

// Weights and abscissae of the 8-point Gauss-Legendre quadrature on [-1,1].
var gaussLegendreCoeffs8 = [...][2]float64{
	{0.3626837833783620, -0.1834346424956498},
	{0.3626837833783620, 0.1834346424956498},
	{0.3137066458778873, -0.5255324099163290},
	{0.3137066458778873, 0.5255324099163290},
	{0.2223810344533745, -0.7966664774136267},
	{0.2223810344533745, 0.7966664774136267},
	{0.1012285362903763, -0.9602898564975363},
	{0.1012285362903763, 0.9602898564975363},
}

// ArcLength implements [Curve].
//
// Bezier curves of degree ≥ 2 have no closed form arc length. The speed
// |B'(t)| is integrated by Gauss-Legendre quadrature, subdividing adaptively
// until both halves agree with the whole. The result is computed once.
func (b *Bezier) ArcLength() float64 {
	b.once.Do(func() {
		if b.Degree() == 1 {
			b.length = b.ctrl[0].Dist(b.ctrl[1])
			return
		}
		tol := arcAccuracy * math.Max(b.scale(), 1)
		b.length = b.arclen(0, 1, b.gauss(0, 1), tol, 0)
		tracer().Debugf("arc length of %s = %.6g", AsString(b), b.length)
	})
	return b.length
}

// ArcLengthTo is the length of the curve from its start up to parameter t.
func (b *Bezier) ArcLengthTo(t float64) float64 {
	t = clamp01(t)
	switch t {
	case 0:
		return 0
	case 1:
		return b.ArcLength()
	}
	tol := arcAccuracy * math.Max(b.scale(), 1)
	return b.arclen(0, t, b.gauss(0, t), tol, 0)
}

func (b *Bezier) arclen(t0, t1, whole, tol float64, depth int) float64 {
	tm := (t0 + t1) / 2
	left, right := b.gauss(t0, tm), b.gauss(tm, t1)
	if depth >= maxArcDepth || math.Abs(left+right-whole) <= tol {
		return left + right
	}
	return b.arclen(t0, tm, left, tol/2, depth+1) + b.arclen(tm, t1, right, tol/2, depth+1)
}

// gauss integrates the speed of the curve over [t0,t1].
func (b *Bezier) gauss(t0, t1 float64) float64 {
	half := (t1 - t0) / 2
	mid := (t0 + t1) / 2
	var est float64
	for _, coeff := range gaussLegendreCoeffs8 {
		wi, xi := coeff[0], coeff[1]
		est += wi * b.Derivative(mid+half*xi).Length()
	}
	return est * half
}
