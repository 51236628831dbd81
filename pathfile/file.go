/*
Package pathfile reads path chains from a descriptor file.

A descriptor names values, poses, Bezier curves and path chains, which
refer to each other by name. This keeps field coordinates out of code:
a pose defined once may be shared by many chains, and tuning a value
moves every pose using it.

	name: TestPaths
	values:
	  org: 72
	poses:
	  start: {x: org, y: org, heading: 0}
	  step1: {x: 80, y: org, heading: {degrees: 90}}
	beziers:
	  leg1: {type: line, points: [start, step1]}
	chains:
	  Path1:
	    paths: [leg1]
	    heading: {type: linear, headings: [start, step1]}

Wherever a number is expected, the name of a value may be given instead;
the name of a pose stands for that pose's heading. Angles are radians,
unless given as {degrees: ...}. Poses and curves may be referenced by
name or given inline.

Files are YAML (and therefore JSON as well). Unknown fields are
rejected.

BSD License

Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package pathfile

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/npillmayer/schuko/tracing"
	"gopkg.in/yaml.v3"
)

// tracer traces with key 'pathing.pathfile'.
func tracer() tracing.Trace {
	return tracing.Select("pathing.pathfile")
}

var (
	// ErrDanglingRef indicates a reference to an undefined name.
	ErrDanglingRef = errors.New("reference to undefined name")
	// ErrDuplicateName indicates a name defined as a value and as a pose.
	ErrDuplicateName = errors.New("name defined more than once")
	// ErrBadValue indicates a malformed or inconsistent entry.
	ErrBadValue = errors.New("bad value")
)

// File is a decoded descriptor file.
type File struct {
	Name    string               `yaml:"name"`
	Values  map[string]float64   `yaml:"values,omitempty"`
	Poses   map[string]Pose      `yaml:"poses,omitempty"`
	Beziers map[string]Bezier    `yaml:"beziers,omitempty"`
	Chains  map[string]ChainSpec `yaml:"chains,omitempty"`
	Field   *Field               `yaml:"field,omitempty"`
}

// Field describes the area paths have to stay within: a rectangle with
// its lower left corner at the origin, minus keep-out boxes.
type Field struct {
	Width   float64 `yaml:"width"`
	Height  float64 `yaml:"height"`
	KeepOut []Box   `yaml:"keepOut,omitempty"`
}

// Box is an axis-parallel rectangle given by two opposite corners.
type Box struct {
	Min [2]float64 `yaml:"min"`
	Max [2]float64 `yaml:"max"`
}

// ValueRef is a number, or the name of a value or pose.
type ValueRef struct {
	Literal float64
	Name    string // empty for literals
}

// Num creates a literal value reference.
func Num(x float64) ValueRef {
	return ValueRef{Literal: x}
}

// Ref creates a value reference by name.
func Ref(name string) ValueRef {
	return ValueRef{Name: name}
}

// IsRef is a predicate: does v refer to a name?
func (v ValueRef) IsRef() bool {
	return v.Name != ""
}

func (v ValueRef) String() string {
	if v.IsRef() {
		return v.Name
	}
	return strconv.FormatFloat(v.Literal, 'g', -1, 64)
}

// UnmarshalYAML accepts a number or a name.
func (v *ValueRef) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.ScalarNode {
		return fmt.Errorf("%w: line %d: expected number or name", ErrBadValue, n.Line)
	}
	switch n.ShortTag() {
	case "!!int", "!!float":
		x, err := strconv.ParseFloat(n.Value, 64)
		if err != nil {
			// yaml allows forms like 0x1F or .inf
			if err = n.Decode(&x); err != nil {
				return fmt.Errorf("%w: line %d: %v", ErrBadValue, n.Line, err)
			}
		}
		*v = Num(x)
	case "!!str":
		if n.Value == "" {
			return fmt.Errorf("%w: line %d: empty name", ErrBadValue, n.Line)
		}
		*v = Ref(n.Value)
	default:
		return fmt.Errorf("%w: line %d: expected number or name, got %s", ErrBadValue, n.Line, n.ShortTag())
	}
	return nil
}

// MarshalYAML writes literals as numbers and references as names.
func (v ValueRef) MarshalYAML() (interface{}, error) {
	if v.IsRef() {
		return v.Name, nil
	}
	return v.Literal, nil
}

// AngleRef is a value reference in radians or in degrees.
type AngleRef struct {
	Value   ValueRef
	Degrees bool
}

// UnmarshalYAML accepts a plain value reference (radians), {radians: ref}
// or {degrees: ref}.
func (a *AngleRef) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind == yaml.ScalarNode {
		a.Degrees = false
		return a.Value.UnmarshalYAML(n)
	}
	if err := checkKeys(n, "degrees", "radians"); err != nil {
		return err
	}
	if len(n.Content) != 2 {
		return fmt.Errorf("%w: line %d: angle needs exactly one of degrees, radians", ErrBadValue, n.Line)
	}
	a.Degrees = n.Content[0].Value == "degrees"
	return a.Value.UnmarshalYAML(n.Content[1])
}

// MarshalYAML writes the angle in the form it was given.
func (a AngleRef) MarshalYAML() (interface{}, error) {
	if a.Degrees {
		return map[string]ValueRef{"degrees": a.Value}, nil
	}
	return a.Value, nil
}

func (a AngleRef) String() string {
	if a.Degrees {
		return a.Value.String() + "°"
	}
	return a.Value.String()
}

// Pose is a position with an optional heading.
type Pose struct {
	X       ValueRef  `yaml:"x"`
	Y       ValueRef  `yaml:"y"`
	Heading *AngleRef `yaml:"heading,omitempty"`
}

type plainPose Pose

// UnmarshalYAML rejects unknown fields.
func (p *Pose) UnmarshalYAML(n *yaml.Node) error {
	if err := checkKeys(n, "x", "y", "heading"); err != nil {
		return err
	}
	return n.Decode((*plainPose)(p))
}

// PoseRef is the name of a pose or an inline pose.
type PoseRef struct {
	Name string
	Pose *Pose
}

// UnmarshalYAML accepts a name or an inline pose.
func (p *PoseRef) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind == yaml.ScalarNode {
		*p = PoseRef{Name: n.Value}
		return nil
	}
	p.Name, p.Pose = "", &Pose{}
	return p.Pose.UnmarshalYAML(n)
}

// MarshalYAML writes a name or an inline pose.
func (p PoseRef) MarshalYAML() (interface{}, error) {
	if p.Pose == nil {
		return p.Name, nil
	}
	return p.Pose, nil
}

// Bezier types.
const (
	TypeLine   = "line"   // straight line between two poses
	TypeCurve  = "curve"  // Bezier curve through its control points
	TypeSmooth = "smooth" // Hobby spline through the poses
)

// Bezier is a curve given by its type and poses. A smooth curve passes
// through all its poses and expands to one cubic curve per pair of
// consecutive poses.
type Bezier struct {
	Type   string    `yaml:"type"`
	Points []PoseRef `yaml:"points"`
}

type plainBezier Bezier

// UnmarshalYAML rejects unknown fields.
func (b *Bezier) UnmarshalYAML(n *yaml.Node) error {
	if err := checkKeys(n, "type", "points"); err != nil {
		return err
	}
	return n.Decode((*plainBezier)(b))
}

// BezierRef is the name of a Bezier curve or an inline one.
type BezierRef struct {
	Name   string
	Bezier *Bezier
}

// UnmarshalYAML accepts a name or an inline curve.
func (b *BezierRef) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind == yaml.ScalarNode {
		*b = BezierRef{Name: n.Value}
		return nil
	}
	b.Name, b.Bezier = "", &Bezier{}
	return b.Bezier.UnmarshalYAML(n)
}

// MarshalYAML writes a name or an inline curve.
func (b BezierRef) MarshalYAML() (interface{}, error) {
	if b.Bezier == nil {
		return b.Name, nil
	}
	return b.Bezier, nil
}

// Heading types. "interpolated" is accepted as an alias of "linear".
const (
	HeadingTangent      = "tangent"
	HeadingConstant     = "constant"
	HeadingLinear       = "linear"
	HeadingInterpolated = "interpolated"
)

// HeadingSpec selects the heading interpolation of a chain.
type HeadingSpec struct {
	Type     string     `yaml:"type"`
	Heading  *AngleRef  `yaml:"heading,omitempty"`  // constant
	Headings []AngleRef `yaml:"headings,omitempty"` // linear: start and end
	Reverse  bool       `yaml:"reverse,omitempty"`  // tangent: drive backwards
}

// ChainSpec is a sequence of curves sharing one heading specification.
// A linear heading turns along the whole chain, proportionally to arc
// length.
type ChainSpec struct {
	Paths      []BezierRef `yaml:"paths"`
	Heading    HeadingSpec `yaml:"heading"`
	Continuous bool        `yaml:"continuous,omitempty"` // require joined curves
}

func checkKeys(n *yaml.Node, allowed ...string) error {
	if n.Kind != yaml.MappingNode {
		return fmt.Errorf("%w: line %d: expected a mapping", ErrBadValue, n.Line)
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		key := n.Content[i]
		found := false
		for _, a := range allowed {
			if key.Value == a {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("%w: line %d: field %s not allowed", ErrBadValue, key.Line, key.Value)
		}
	}
	return nil
}

// Load decodes a descriptor. It does not check references; see Validate.
func Load(r io.Reader) (*File, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	f := &File{}
	if err := dec.Decode(f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty path file", ErrBadValue)
		}
		return nil, err
	}
	tracer().Debugf("loaded path file %q: %d values, %d poses, %d beziers, %d chains",
		f.Name, len(f.Values), len(f.Poses), len(f.Beziers), len(f.Chains))
	return f, nil
}

// ReadFile loads the descriptor stored at path.
func ReadFile(path string) (*File, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()
	f, err := Load(fh)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Write encodes a descriptor as YAML.
func (f *File) Write(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(f); err != nil {
		return err
	}
	return enc.Close()
}
