// Package jhobby turns a handful of field poses into smooth Bezier curves.
// It provides an implementation of John Hobby's spline interpolation
// algorithm for open paths.
/*

Spline interpolation by Hobby's algorithm results in pleasing curves
without the wiggles of "normal" spline interpolation, which makes it a
good choice for paths a robot should drive through a list of waypoints.
The primary source of information for "Hobby-splines" is:

   Smooth, Easy to Compute Interpolating Splines -- John D. Hobby
   Computer Science Dept. Stanford University
   Report No. STAN-CS-85-1047, Jan 1985
   http://i.stanford.edu/pub/cstr/reports/cs/tr/85/1047/CS-TR-85-1047.pdf

The practical algorithm is explained in

   Computers & Typesetting, Vol. B & D.
   http://www-cs-faculty.stanford.edu/~knuth/abcde.html

The notation sticks closely to the original code in MetaFont.

Usage

Clients build a "skeleton" path of knots, without any spline control
point information. A knot is a pathing.Pose; if the pose carries a
heading, the curve passes the knot in that direction (MetaFont's {dir}).
Tensions may be given per join. In the MetaFont/MetaPost DSL one may
specify such a path as follows:

   (0,0)..(10,10){right}..tension 1.4..(20,0)

With package jhobby this is (package qualifiers omitted):

   Nullpath().Knot(At(0,0)).Curve().Knot(PoseDeg(10,10,0)).TensionCurve(1.4,1.4).Knot(At(20,0)).End()

A built path is then subjected to a call to FindHobbyControls(...)

   controls, err := FindHobbyControls(path)

which returns the necessary control point information to produce a smooth
curve. Curves(path, controls) then yields one cubic bezier.Curve per join,
ready to be added to a path chain.

Caveats

Currently there are slight deviations from MetaFont's calculation,
probably due to different rounding. Explicit control points and curl
are not supported; the ends of a path use MetaFont's default curl.


BSD License

Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package jhobby

import "fmt"

// AsString returns
// a path -- optionally including spline control points -- as a (debugging)
// string. The string contains newlines if control point information is present.
// Otherwise it will include the knot coordinates in one line.
//
// Example, a half circle of diameter 2 around (2,1):
//
//	(1,1) .. controls (1.0000,1.5523) and (1.4477,2.0000)
//	  .. (2,2) .. controls (2.5523,2.0000) and (3.0000,1.5523)
//	  .. (3,1)
//
// The format is not fully equivalent to MetaFont's, but close.
func AsString(path *Path, contr *Controls) string {
	var s string
	for i := 0; i < path.N(); i++ {
		if i > 0 {
			if contr != nil {
				s += fmt.Sprintf(" and %s\n  .. ", ptstring(contr.PreControl(i), true))
			} else {
				s += " .. "
			}
		}
		s += knotstring(path, i)
		if contr != nil && i < path.N()-1 {
			s += fmt.Sprintf(" .. controls %s", ptstring(contr.PostControl(i), true))
		}
	}
	return s
}
