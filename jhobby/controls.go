package jhobby

import (
	"fmt"
	"math/cmplx"

	"github.com/kevinfrei/pathing"
	"github.com/kevinfrei/pathing/bezier"
)

func (ctrls *Controls) SetPreControl(i int, c pathing.Pair) {
	ctrls.prec = extendC(ctrls.prec, i, pathing.Pair(cmplx.NaN()))
	ctrls.prec[i] = c
}

func (ctrls *Controls) SetPostControl(i int, c pathing.Pair) {
	ctrls.postc = extendC(ctrls.postc, i, pathing.Pair(cmplx.NaN()))
	ctrls.postc[i] = c
}

// PreControl is the control point before knot i, NaN if unknown.
func (ctrls *Controls) PreControl(i int) pathing.Pair {
	return getC(ctrls.prec, i, pathing.Pair(cmplx.NaN()))
}

// PostControl is the control point after knot i, NaN if unknown.
func (ctrls *Controls) PostControl(i int) pathing.Pair {
	return getC(ctrls.postc, i, pathing.Pair(cmplx.NaN()))
}

// Curves converts a solved path into cubic Bezier curves, one per join.
// Knot poses, including their headings, become the curves' end points.
func Curves(path *Path, controls *Controls) ([]bezier.Curve, error) {
	if path == nil || controls == nil {
		return nil, ErrNilPath
	}
	curves := make([]bezier.Curve, 0, path.N())
	for i := 0; i+1 < path.N(); i++ {
		c, err := bezier.NewCubic(path.knots[i],
			pathing.PoseAt(controls.PostControl(i)),
			pathing.PoseAt(controls.PreControl(i+1)),
			path.knots[i+1])
		if err != nil {
			return nil, fmt.Errorf("join %d: %w", i, err)
		}
		curves = append(curves, c)
	}
	return curves, nil
}

// Smooth is a shortcut for building a path of smooth curves through knots,
// solving it and converting it to Bezier curves.
func Smooth(knots ...pathing.Pose) ([]bezier.Curve, error) {
	path := Nullpath()
	for i, k := range knots {
		if i > 0 {
			path.Curve()
		}
		path.Knot(k)
	}
	controls, err := FindHobbyControls(path.End())
	if err != nil {
		return nil, err
	}
	return Curves(path, controls)
}
