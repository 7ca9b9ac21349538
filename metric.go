package mtree

import (
	"fmt"
	"math"
	"strings"
)

// Vector is a point in ℝⁿ, the default Point implementation: an ordered
// tuple of numeric coordinates.
type Vector []float64

// Key renders the vector's coordinates into a stable, comma-separated
// string suitable for entry-map storage.
func (v Vector) Key() string {
	var b strings.Builder
	for i, c := range v {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, "%g", c)
	}
	return b.String()
}

// Euclidean is the default DistanceFunc: straight-line distance between two
// equal-length Vectors. Returns ErrDimensionMismatch when the vectors have
// different lengths, or when either point is not a Vector (spec.md §4.1).
func Euclidean(a, b Point) (float64, error) {
	av, aok := a.(Vector)
	bv, bok := b.(Vector)
	if !aok || !bok {
		return 0, fmt.Errorf("%w: Euclidean requires mtree.Vector points", ErrDimensionMismatch)
	}
	if len(av) != len(bv) {
		return 0, fmt.Errorf("%w: %d != %d", ErrDimensionMismatch, len(av), len(bv))
	}

	var sumSq float64
	for i := range av {
		d := av[i] - bv[i]
		sumSq += d * d
	}

	return math.Sqrt(sumSq), nil
}
