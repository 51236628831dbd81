package paths

import (
	"fmt"

	"github.com/kevinfrei/pathing"
	"go.uber.org/multierr"
)

// DefaultContinuityTolerance is the largest gap between consecutive
// segments still considered connected, in field units.
const DefaultContinuityTolerance = 1e-3

// CheckContinuity reports every gap larger than tol between the end of a
// segment and the start of the next one. Headings are not compared.
// Returns nil for a connected chain.
func (c *Chain) CheckContinuity(tol float64) error {
	var err error
	for i := 1; i < len(c.segments); i++ {
		end := c.segments[i-1].curve.End().Pair()
		start := c.segments[i].curve.Start().Pair()
		if gap := end.Dist(start); gap > tol {
			err = multierr.Append(err, fmt.Errorf("%w: segment %d ends at %s, segment %d starts at %s (gap %.4g)",
				ErrDiscontinuous, i-1, end, i, start, gap))
		}
	}
	return err
}

// Region is an area of the plane a chain may be confined to.
type Region interface {
	Contains(p pathing.Pair) bool
}

// CheckWithin samples the chain at samples+1 evenly spaced progress values
// and reports each run of consecutive samples outside of region.
func (c *Chain) CheckWithin(region Region, samples int) error {
	var err error
	outside := -1 // progress index where the current excursion began
	poses := c.Polyline(samples)
	n := len(poses) - 1
	for k, p := range poses {
		in := region.Contains(p.Pair())
		if !in && outside < 0 {
			outside = k
		}
		if outside >= 0 && (in || k == n) {
			to := k
			if in {
				to = k - 1
			}
			err = multierr.Append(err, fmt.Errorf("%w: progress %.4g to %.4g, e.g. at %s",
				ErrOutOfBounds, float64(outside)/float64(n), float64(to)/float64(n), poses[outside].Pair()))
			outside = -1
		}
	}
	return err
}
