package mtree

import "math"

// defaultCapacity is capacity_max when no WithCapacity option is given
// (spec.md §3).
const defaultCapacity = 9

// Tree is a dynamic M-tree index over an arbitrary metric space (spec.md
// §2, §3). The zero value is not usable; construct one with New.
type Tree struct {
	root     *node
	capacity int
	distFn   DistanceFunc
	splitFn  SplitFunc

	// splitUsage counts invocations of splitFn by heuristic name, shared by
	// reference with every node's own splitUsage field (SPEC_FULL.md
	// SUPPLEMENTED FEATURES §2).
	splitUsage map[string]int

	height int
	count  int
}

// options collects the values WithXxx functions set, and is never exposed
// directly (spec.md §9's functional-options guidance, grounded on the
// teacher's own Option pattern).
type options struct {
	capacity int
	distFn   DistanceFunc
	splitFn  SplitFunc
}

// Option configures a Tree at construction time.
type Option func(*options)

// WithCapacity sets capacity_max, the maximum entries a node may hold
// before it splits (spec.md §3). Panics at option-application time if
// capacity < 3, since a split cannot produce two balanced partitions of at
// least 2 entries each from fewer than 4 overflowing entries.
func WithCapacity(capacity int) Option {
	return func(o *options) {
		if capacity < 3 {
			panic("mtree: capacity must be >= 3")
		}
		o.capacity = capacity
	}
}

// WithDistanceFunc overrides the default Euclidean metric.
func WithDistanceFunc(fn DistanceFunc) Option {
	return func(o *options) { o.distFn = fn }
}

// WithSplitHeuristic overrides the default split heuristic. The package
// provides splitRandom (H1, the default), and exports SplitHeuristicRandom,
// SplitHeuristicPerfect and SplitHeuristicSmart as named choices (spec.md
// §4.8).
func WithSplitHeuristic(fn SplitFunc) Option {
	return func(o *options) { o.splitFn = fn }
}

// Split heuristic presets, named for use with WithSplitHeuristic (spec.md
// §4.8: H1 random, H2 perfect, H3 smart).
var (
	SplitHeuristicRandom  SplitFunc = splitRandom
	SplitHeuristicPerfect SplitFunc = splitPerfect
	SplitHeuristicSmart   SplitFunc = splitSmart
)

// New builds an empty Tree. Defaults: capacity 9, Euclidean distance,
// splitRandom heuristic (spec.md §3, §4.8).
func New(opts ...Option) *Tree {
	o := &options{
		capacity: defaultCapacity,
		distFn:   Euclidean,
		splitFn:  splitRandom,
	}
	for _, opt := range opts {
		opt(o)
	}

	return &Tree{
		capacity:   o.capacity,
		distFn:     o.distFn,
		splitFn:    o.splitFn,
		splitUsage: make(map[string]int),
	}
}

// Insert adds p to the tree, returning false without error if an equal
// point (by Key) is already present (spec.md §4.3, §4.4).
func (t *Tree) Insert(p Point) (bool, error) {
	if p == nil {
		return false, ErrNilPoint
	}

	if t.root == nil {
		t.initRoot(p)
		t.count++

		return true, nil
	}

	// The descent below reaches a single leaf, while an equal point may sit
	// under another, overlapping routing ball; look for it first.
	dRoot, err := t.distFn(p, t.root.center)
	if err != nil {
		return false, err
	}
	hits, err := t.root.search(p, dRoot, 0, noLimit)
	if err != nil {
		return false, err
	}
	for _, h := range hits {
		if h.Point.Key() == p.Key() {
			return false, nil
		}
	}

	ok, err := t.root.insert(p)
	if err != nil || !ok {
		return ok, err
	}

	if t.root.overflowed() {
		if err := t.splitRoot(); err != nil {
			return false, err
		}
	}

	t.count++

	return true, nil
}

// initRoot bootstraps the tree from empty: a root internal node holding one
// routing entry whose child is a leaf holding p. The routing entry's radius
// starts at 0 rather than +Inf — the spec's own recommended fix for the
// stale-radius defect of initializing to infinity — and grows correctly as
// later inserts widen the leaf.
func (t *Tree) initRoot(p Point) {
	leaf := newLeaf(p, 0, t.capacity, t.distFn, t.splitFn, t.splitUsage)
	leaf.ground[p.Key()] = &GroundEntry{Point: p, ParentDist: 0}

	root := newInternal(p, 0, t.capacity, t.distFn, t.splitFn, t.splitUsage)
	root.root = true
	root.routing[p.Key()] = &RoutingEntry{
		Center:     p,
		Radius:     0,
		ParentDist: 0,
		Child:      leaf,
	}

	t.root = root
	t.height = 1
}

// splitRoot implements spec.md §4.7's root-growth case: when the root
// itself overflows, its entries are partitioned and wrapped in a brand new
// root one level taller.
func (t *Tree) splitRoot() error {
	entries := make(map[string]entry, len(t.root.routing))
	for k, e := range t.root.routing {
		entries[k] = e
	}

	part0, part1, err := t.splitFn(entries, t.distFn)
	if err != nil {
		return err
	}
	t.splitUsage[splitHeuristicName(t.splitFn)]++

	centerDist, err := t.distFn(part0.Center, part1.Center)
	if err != nil {
		return err
	}

	radius := part0.Radius
	if grown := centerDist + part1.Radius; grown > radius {
		radius = grown
	}

	newRoot := newInternal(part0.Center, radius, t.capacity, t.distFn, t.splitFn, t.splitUsage)
	newRoot.root = true
	newRoot.routing[part0.Center.Key()] = &RoutingEntry{
		Center:     part0.Center,
		Radius:     part0.Radius,
		ParentDist: 0,
		Child:      rebuildNode(t.root, part0),
	}
	newRoot.routing[part1.Center.Key()] = &RoutingEntry{
		Center:     part1.Center,
		Radius:     part1.Radius,
		ParentDist: centerDist,
		Child:      rebuildNode(t.root, part1),
	}

	t.root = newRoot
	t.height++

	return nil
}

// Delete removes p from the tree, returning false without error if no equal
// point (by Key) was present (spec.md §4.3, §4.4). Non-root underflow is
// not rebalanced, per spec.md §9's explicit non-goal; deleting the last
// point collapses the tree back to empty (height 0).
func (t *Tree) Delete(p Point) (bool, error) {
	if p == nil {
		return false, ErrNilPoint
	}
	if t.root == nil {
		return false, nil
	}

	dRoot, err := t.distFn(p, t.root.center)
	if err != nil {
		return false, err
	}

	ok, err := t.root.delete(p, dRoot)
	if err != nil || !ok {
		return ok, err
	}

	t.count--
	if t.count == 0 {
		t.root = nil
		t.height = 0
	}

	return true, nil
}

// RangeQuery returns every indexed point within distance r of q, in
// ascending order of distance (spec.md §4.6).
func (t *Tree) RangeQuery(q Point, r float64) ([]Result, error) {
	if q == nil {
		return nil, ErrNilPoint
	}
	if t.root == nil {
		return nil, nil
	}

	d, err := t.distFn(q, t.root.center)
	if err != nil {
		return nil, err
	}

	return t.root.search(q, d, r, noLimit)
}

// KNNQuery returns the k indexed points nearest to q, in ascending order of
// distance (spec.md §4.6). Implemented as a range query with radius +Inf,
// truncated to k results.
func (t *Tree) KNNQuery(q Point, k int) ([]Result, error) {
	if q == nil {
		return nil, ErrNilPoint
	}
	if k <= 0 || t.root == nil {
		return nil, nil
	}

	d, err := t.distFn(q, t.root.center)
	if err != nil {
		return nil, err
	}

	return t.root.search(q, d, math.Inf(1), k)
}
