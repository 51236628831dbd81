package paths

import (
	"math"

	"github.com/kevinfrei/pathing"
)

const (
	closestScanSteps  = 32 // coarse samples per segment
	closestRefineIter = 40 // golden-section iterations
)

var invPhi = (math.Sqrt(5) - 1) / 2

// Closest finds the point of the chain closest to p. It returns the global
// progress of that point and its distance to p.
//
// Each segment is scanned coarsely; the best bracket is then refined by
// golden-section search. Paths looping back close to themselves within
// one scan step may yield a local instead of the global minimum.
func (c *Chain) Closest(p pathing.Pair) (progress, dist float64) {
	bestSeg, bestT, bestD := 0, 0.0, math.Inf(1)
	for i, s := range c.segments {
		for k := 0; k <= closestScanSteps; k++ {
			t := float64(k) / closestScanSteps
			if d := s.curve.Eval(t).Pair().Dist(p); d < bestD {
				bestSeg, bestT, bestD = i, t, d
			}
		}
	}
	curve := c.segments[bestSeg].curve
	distAt := func(t float64) float64 {
		return curve.Eval(t).Pair().Dist(p)
	}
	lo := math.Max(0, bestT-1.0/closestScanSteps)
	hi := math.Min(1, bestT+1.0/closestScanSteps)
	a, b := hi-invPhi*(hi-lo), lo+invPhi*(hi-lo)
	da, db := distAt(a), distAt(b)
	for i := 0; i < closestRefineIter; i++ {
		if da < db {
			hi, b, db = b, a, da
			a = hi - invPhi*(hi-lo)
			da = distAt(a)
		} else {
			lo, a, da = a, b, db
			b = lo + invPhi*(hi-lo)
			db = distAt(b)
		}
	}
	t := (lo + hi) / 2
	if d := distAt(t); d < bestD {
		bestT, bestD = t, d
	}
	return c.progressOf(bestSeg, bestT), bestD
}

// progressOf converts local progress within segment i to global progress,
// inverting Locate.
func (c *Chain) progressOf(i int, t float64) float64 {
	if c.total <= 0 {
		return 0
	}
	along := c.starts[i] + t*(c.ends[i]-c.starts[i])
	return math.Min(math.Max(along/c.total, 0), 1)
}
