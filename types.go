package mtree

import "math"

// Point is any value that can anchor an entry in the metric space. It is
// otherwise opaque to the tree: the tree never inspects a Point's internals
// directly, only ever calling a DistanceFunc on pairs of Points and using
// Key for map storage and equality (spec.md §3).
type Point interface {
	// Key returns a stable string uniquely identifying this point, used to
	// key the entry maps described in spec.md §3. Two points that compare
	// equal must return the same Key, and vice versa.
	Key() string
}

// DistanceFunc computes the distance between two points in a metric space.
// Implementations must assume the metric axioms hold (non-negativity,
// identity, symmetry, triangle inequality); behaviour is undefined
// otherwise (spec.md §4.1).
type DistanceFunc func(a, b Point) (float64, error)

// Result is one hit from RangeQuery or KNNQuery: a point and its distance
// to the query point.
type Result struct {
	Point Point
	Dist  float64
}

// noLimit stands in for k=∞ (spec.md §4.6: "range queries pass k = ∞").
const noLimit = math.MaxInt
