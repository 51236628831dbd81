package paths

import (
	"fmt"
	"math"
	"sort"

	"github.com/kevinfrei/pathing"
)

// Chain is an ordered, non-empty sequence of segments, sampled as one unit
// by global progress. Chains are created by a Builder and immutable
// afterwards.
type Chain struct {
	segments []Segment
	starts   []float64 // arc length at the start of segment i
	ends     []float64 // arc length at the end of segment i
	total    float64
}

func newChain(segments []Segment) *Chain {
	c := &Chain{
		segments: segments,
		starts:   make([]float64, len(segments)),
		ends:     make([]float64, len(segments)),
	}
	var acc float64
	for i, s := range segments {
		c.starts[i] = acc
		acc += s.Length()
		c.ends[i] = acc
	}
	c.total = acc
	return c
}

// Len is the number of segments.
func (c *Chain) Len() int {
	return len(c.segments)
}

// Segment returns segment i.
func (c *Chain) Segment(i int) Segment {
	return c.segments[i]
}

// Segments returns a copy of the chain's segments.
func (c *Chain) Segments() []Segment {
	segs := make([]Segment, len(c.segments))
	copy(segs, c.segments)
	return segs
}

// TotalLength is the sum of the arc lengths of all segments.
func (c *Chain) TotalLength() float64 {
	return c.total
}

// Locate maps global progress to a segment index and the progress within
// that segment. Progress is clamped to [0,1]; progress 1 always resolves to
// the end of the last segment. Segments of zero length are instantaneous
// points and get local progress 0.
func (c *Chain) Locate(progress float64) (int, float64) {
	progress = clampProgress(progress)
	last := len(c.segments) - 1
	if progress == 1 {
		return last, 1
	}
	if c.total <= 0 {
		return 0, 0
	}
	target := progress * c.total
	i := sort.Search(len(c.segments), func(i int) bool {
		return c.ends[i] >= target
	})
	if i > last {
		i = last
	}
	length := c.ends[i] - c.starts[i]
	if length <= 0 {
		return i, 0
	}
	local := (target - c.starts[i]) / length
	return i, math.Min(math.Max(local, 0), 1)
}

// Sample returns the target pose at global progress along the chain.
// Progress outside of [0,1] is clamped, NaN is treated as 0.
func (c *Chain) Sample(progress float64) pathing.Pose {
	i, local := c.Locate(progress)
	return c.segments[i].Sample(local)
}

// SampleExact is like Sample, but fails with ErrProgressOutOfRange instead
// of clamping.
func (c *Chain) SampleExact(progress float64) (pathing.Pose, error) {
	if !(progress >= 0 && progress <= 1) {
		return pathing.Pose{}, fmt.Errorf("%w: %g", ErrProgressOutOfRange, progress)
	}
	return c.Sample(progress), nil
}

// PoseAtDistance returns the target pose after travelling distance d along
// the chain. d is clamped to [0, TotalLength()].
func (c *Chain) PoseAtDistance(d float64) pathing.Pose {
	if c.total <= 0 {
		return c.Sample(0)
	}
	return c.Sample(d / c.total)
}

// StartPose is the target pose at progress 0.
func (c *Chain) StartPose() pathing.Pose {
	return c.Sample(0)
}

// EndPose is the target pose at progress 1.
func (c *Chain) EndPose() pathing.Pose {
	return c.Sample(1)
}

// Polyline samples the chain at n+1 evenly spaced progress values,
// including both ends.
func (c *Chain) Polyline(n int) []pathing.Pose {
	if n < 1 {
		n = 1
	}
	poses := make([]pathing.Pose, n+1)
	for k := 0; k <= n; k++ {
		poses[k] = c.Sample(float64(k) / float64(n))
	}
	return poses
}

// Transform returns a copy of the chain with all curves and headings mapped
// by m, e.g. to mirror a path to the other side of the field.
func (c *Chain) Transform(m pathing.AT) *Chain {
	segs := make([]Segment, len(c.segments))
	for i, s := range c.segments {
		segs[i] = Segment{curve: s.curve.Transform(m), interp: s.interp.Transform(m)}
	}
	return newChain(segs)
}

// AsString returns a chain as a (debugging) string, one segment per line.
func AsString(c *Chain) string {
	var s string
	for i, seg := range c.segments {
		if i > 0 {
			s += "\n"
		}
		s += fmt.Sprintf("%d: %s", i, seg)
	}
	return s
}

func clampProgress(progress float64) float64 {
	switch {
	case math.IsNaN(progress):
		tracer().Debugf("NaN progress treated as 0")
		return 0
	case progress < 0:
		tracer().Debugf("progress %g clamped to 0", progress)
		return 0
	case progress > 1:
		tracer().Debugf("progress %g clamped to 1", progress)
		return 1
	}
	return progress
}
