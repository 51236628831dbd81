package pathfile

import (
	"fmt"
	"sort"

	"github.com/kevinfrei/pathing"
	"github.com/kevinfrei/pathing/bezier"
	"github.com/kevinfrei/pathing/heading"
	"github.com/kevinfrei/pathing/jhobby"
	"github.com/kevinfrei/pathing/paths"
	"github.com/kevinfrei/pathing/polygon"
	"go.uber.org/multierr"
)

// FieldSamples is the number of samples per chain checked against the
// field, if the file has one.
const FieldSamples = 200

// Validate checks all references and entries of a file, without building
// anything. It reports every problem found, combined with multierr.
func (f *File) Validate() error {
	var err error
	for _, name := range sortedKeys(f.Values) {
		if _, ok := f.Poses[name]; ok {
			err = multierr.Append(err, fmt.Errorf("%w: %q is a value and a pose", ErrDuplicateName, name))
		}
	}
	for _, name := range sortedKeys(f.Poses) {
		err = multierr.Append(err, f.checkPose(f.Poses[name], "pose "+quote(name)))
	}
	for _, name := range sortedKeys(f.Beziers) {
		err = multierr.Append(err, f.checkBezier(f.Beziers[name], "bezier "+quote(name)))
	}
	for _, name := range sortedKeys(f.Chains) {
		err = multierr.Append(err, f.checkChain(f.Chains[name], "chain "+quote(name)))
	}
	if f.Field != nil && (f.Field.Width <= 0 || f.Field.Height <= 0) {
		err = multierr.Append(err, fmt.Errorf("%w: field of size %gx%g", ErrBadValue, f.Field.Width, f.Field.Height))
	}
	return err
}

func (f *File) checkValue(v ValueRef, id string) error {
	if !v.IsRef() {
		if !pathing.IsFinite(v.Literal) {
			return fmt.Errorf("%w: %s is %g", ErrBadValue, id, v.Literal)
		}
		return nil
	}
	if _, ok := f.Values[v.Name]; ok {
		return nil
	}
	if p, ok := f.Poses[v.Name]; ok {
		if p.Heading == nil {
			return fmt.Errorf("%w: %s refers to pose %q, which has no heading", ErrBadValue, id, v.Name)
		}
		return nil
	}
	return fmt.Errorf("%w: %s refers to %q", ErrDanglingRef, id, v.Name)
}

func (f *File) checkAngle(a *AngleRef, id string) error {
	if a == nil {
		return fmt.Errorf("%w: %s is missing", ErrBadValue, id)
	}
	if a.Degrees && f.isPoseRef(a.Value) {
		return fmt.Errorf("%w: %s refers to the heading of pose %q, which cannot be given in degrees",
			ErrBadValue, id, a.Value.Name)
	}
	return f.checkValue(a.Value, id)
}

// isPoseRef is a predicate: does v stand for the heading of a pose?
// Values shadow poses of the same name.
func (f *File) isPoseRef(v ValueRef) bool {
	if !v.IsRef() {
		return false
	}
	if _, ok := f.Values[v.Name]; ok {
		return false
	}
	_, ok := f.Poses[v.Name]
	return ok
}

func (f *File) checkPose(p Pose, id string) error {
	err := multierr.Combine(
		f.checkValue(p.X, id+" x"),
		f.checkValue(p.Y, id+" y"))
	if p.Heading != nil {
		err = multierr.Append(err, f.checkAngle(p.Heading, id+" heading"))
	}
	return err
}

func (f *File) checkPoseRef(p PoseRef, id string) error {
	if p.Pose != nil {
		return f.checkPose(*p.Pose, id)
	}
	if _, ok := f.Poses[p.Name]; !ok {
		return fmt.Errorf("%w: %s refers to pose %q", ErrDanglingRef, id, p.Name)
	}
	return nil
}

func (f *File) checkBezier(b Bezier, id string) error {
	var err error
	switch b.Type {
	case TypeLine:
		if len(b.Points) != 2 {
			err = fmt.Errorf("%w: %s is a line of %d points", ErrBadValue, id, len(b.Points))
		}
	case TypeCurve, TypeSmooth:
		if len(b.Points) < 2 {
			err = fmt.Errorf("%w: %s has %d points", ErrBadValue, id, len(b.Points))
		}
	default:
		err = fmt.Errorf("%w: %s has unknown type %q", ErrBadValue, id, b.Type)
	}
	for i, p := range b.Points {
		err = multierr.Append(err, f.checkPoseRef(p, fmt.Sprintf("%s point %d", id, i)))
	}
	return err
}

func (f *File) checkChain(c ChainSpec, id string) error {
	var err error
	if len(c.Paths) == 0 {
		err = fmt.Errorf("%w: %s has no paths", ErrBadValue, id)
	}
	for i, b := range c.Paths {
		pid := fmt.Sprintf("%s path %d", id, i)
		if b.Bezier != nil {
			err = multierr.Append(err, f.checkBezier(*b.Bezier, pid))
		} else if _, ok := f.Beziers[b.Name]; !ok {
			err = multierr.Append(err, fmt.Errorf("%w: %s refers to bezier %q", ErrDanglingRef, pid, b.Name))
		}
	}
	h := c.Heading
	switch h.Type {
	case HeadingTangent:
	case HeadingConstant:
		err = multierr.Append(err, f.checkAngle(h.Heading, id+" constant heading"))
	case HeadingLinear, HeadingInterpolated:
		if len(h.Headings) != 2 {
			err = multierr.Append(err, fmt.Errorf("%w: %s needs start and end heading, has %d",
				ErrBadValue, id, len(h.Headings)))
			break
		}
		err = multierr.Append(err, f.checkAngle(&h.Headings[0], id+" start heading"))
		err = multierr.Append(err, f.checkAngle(&h.Headings[1], id+" end heading"))
	default:
		err = multierr.Append(err, fmt.Errorf("%w: %s has unknown heading type %q", ErrBadValue, id, h.Type))
	}
	return err
}

// === Building ==============================================================

// Library is the set of named chains built from a file.
type Library struct {
	name   string
	chains map[string]*paths.Chain
}

// Build validates the file and builds all of its chains. Chains marked as
// continuous are checked for gaps; if the file describes a field, all
// chains have to stay within it.
func (f *File) Build() (*Library, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	r := &resolver{file: f, resolving: make(map[string]bool)}
	var region *polygon.Region
	if f.Field != nil {
		region = f.Field.Region()
	}
	lib := &Library{name: f.Name, chains: make(map[string]*paths.Chain, len(f.Chains))}
	var err error
	for _, name := range sortedKeys(f.Chains) {
		spec := f.Chains[name]
		chain, e := r.chain(spec)
		if e == nil && spec.Continuous {
			e = chain.CheckContinuity(paths.DefaultContinuityTolerance)
		}
		if e == nil && region != nil {
			e = chain.CheckWithin(region, FieldSamples)
		}
		if e != nil {
			err = multierr.Append(err, fmt.Errorf("chain %q: %w", name, e))
			continue
		}
		lib.chains[name] = chain
	}
	if err != nil {
		return nil, err
	}
	tracer().Infof("path file %q: built %d chains", f.Name, len(lib.chains))
	return lib, nil
}

// Region creates the drivable area of a field.
func (fld *Field) Region() *polygon.Region {
	keepIn := polygon.Box(pathing.Origin, pathing.P(fld.Width, fld.Height))
	keepOut := make([]*polygon.Polygon, len(fld.KeepOut))
	for i, b := range fld.KeepOut {
		keepOut[i] = polygon.Box(pathing.P(b.Min[0], b.Min[1]), pathing.P(b.Max[0], b.Max[1]))
	}
	return polygon.NewRegion(keepIn, keepOut...)
}

// Name is the name of the file the library was built from.
func (lib *Library) Name() string {
	return lib.name
}

// Chain returns the chain with the given name.
func (lib *Library) Chain(name string) (*paths.Chain, bool) {
	c, ok := lib.chains[name]
	return c, ok
}

// Names lists the names of all chains, sorted.
func (lib *Library) Names() []string {
	return sortedKeys(lib.chains)
}

// Transform creates a library of transformed chains, e.g. mirrored for
// the other alliance.
func (lib *Library) Transform(m pathing.AT) *Library {
	t := &Library{name: lib.name, chains: make(map[string]*paths.Chain, len(lib.chains))}
	for name, c := range lib.chains {
		t.chains[name] = c.Transform(m)
	}
	return t
}

type resolver struct {
	file      *File
	resolving map[string]bool // poses under resolution, for cycle detection
}

func (r *resolver) value(v ValueRef) (float64, error) {
	if !v.IsRef() {
		return v.Literal, nil
	}
	if x, ok := r.file.Values[v.Name]; ok {
		return x, nil
	}
	if _, ok := r.file.Poses[v.Name]; ok {
		p, err := r.namedPose(v.Name)
		if err != nil {
			return 0, err
		}
		return p.Heading(), nil
	}
	return 0, fmt.Errorf("%w: %q", ErrDanglingRef, v.Name)
}

func (r *resolver) angle(a AngleRef) (float64, error) {
	x, err := r.value(a.Value)
	if err != nil {
		return 0, err
	}
	if a.Degrees && !r.file.isPoseRef(a.Value) { // pose headings are radians already
		x = pathing.Rad(x)
	}
	return pathing.NormalizeAngle(x), nil
}

func (r *resolver) namedPose(name string) (pathing.Pose, error) {
	if r.resolving[name] {
		return pathing.Pose{}, fmt.Errorf("%w: pose %q refers to itself", ErrBadValue, name)
	}
	r.resolving[name] = true
	defer delete(r.resolving, name)
	p, err := r.pose(r.file.Poses[name])
	if err != nil {
		return p, fmt.Errorf("pose %q: %w", name, err)
	}
	return p, nil
}

func (r *resolver) pose(p Pose) (pathing.Pose, error) {
	x, err := r.value(p.X)
	if err != nil {
		return pathing.Pose{}, err
	}
	y, err := r.value(p.Y)
	if err != nil {
		return pathing.Pose{}, err
	}
	if p.Heading == nil {
		return pathing.At(x, y), nil
	}
	h, err := r.angle(*p.Heading)
	if err != nil {
		return pathing.Pose{}, err
	}
	return pathing.NewPose(x, y, h), nil
}

func (r *resolver) poseRef(p PoseRef) (pathing.Pose, error) {
	if p.Pose != nil {
		return r.pose(*p.Pose)
	}
	return r.namedPose(p.Name)
}

func (r *resolver) curves(b BezierRef) ([]bezier.Curve, error) {
	spec := b.Bezier
	if spec == nil {
		s := r.file.Beziers[b.Name]
		spec = &s
	}
	points := make([]pathing.Pose, len(spec.Points))
	for i, p := range spec.Points {
		var err error
		if points[i], err = r.poseRef(p); err != nil {
			return nil, err
		}
	}
	if spec.Type == TypeSmooth {
		return jhobby.Smooth(points...)
	}
	c, err := bezier.New(points...)
	if err != nil {
		return nil, err
	}
	return []bezier.Curve{c}, nil
}

func (r *resolver) chain(spec ChainSpec) (*paths.Chain, error) {
	var curves []bezier.Curve
	for i, b := range spec.Paths {
		cs, err := r.curves(b)
		if err != nil {
			return nil, fmt.Errorf("path %d: %w", i, err)
		}
		curves = append(curves, cs...)
	}
	interps, err := r.interpolators(spec.Heading, curves)
	if err != nil {
		return nil, err
	}
	b := paths.NewBuilder()
	for i, c := range curves {
		b.AddPath(c).SetHeadingInterpolation(interps[i])
	}
	return b.Build()
}

// interpolators creates one heading interpolator per curve.
func (r *resolver) interpolators(h HeadingSpec, curves []bezier.Curve) ([]heading.Interpolator, error) {
	interps := make([]heading.Interpolator, len(curves))
	switch h.Type {
	case HeadingTangent:
		for i := range curves {
			interps[i] = heading.NewTangent(h.Reverse)
		}
	case HeadingConstant:
		a, err := r.angle(*h.Heading)
		if err != nil {
			return nil, err
		}
		for i := range curves {
			interps[i] = heading.NewConstant(a)
		}
	default: // linear
		start, err := r.angle(h.Headings[0])
		if err != nil {
			return nil, err
		}
		end, err := r.angle(h.Headings[1])
		if err != nil {
			return nil, err
		}
		return spreadLinear(start, end, curves), nil
	}
	return interps, nil
}

// spreadLinear divides a turn from start to end among curves,
// proportionally to their arc length.
func spreadLinear(start, end float64, curves []bezier.Curve) []heading.Interpolator {
	interps := make([]heading.Interpolator, len(curves))
	total := 0.0
	for _, c := range curves {
		total += c.ArcLength()
	}
	if len(curves) == 1 || total <= 0 {
		for i := range curves {
			interps[i] = heading.NewLinear(start, end)
		}
		return interps
	}
	sweep := pathing.AngleDiff(start, end)
	from, along := start, 0.0
	for i, c := range curves {
		along += c.ArcLength()
		to := pathing.NormalizeAngle(start + sweep*along/total)
		if i == len(curves)-1 {
			to = end
		}
		interps[i] = heading.NewLinear(from, to)
		from = to
	}
	return interps
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func quote(s string) string {
	return fmt.Sprintf("%q", s)
}
