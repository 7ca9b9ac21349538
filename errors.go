package mtree

import "errors"

// Sentinel errors returned by mtree operations.
var (
	// ErrDimensionMismatch indicates a distance function was called on two
	// points whose coordinate vectors have incompatible lengths or types.
	ErrDimensionMismatch = errors.New("mtree: dimension mismatch")

	// ErrNilPoint indicates a nil Point was passed to Insert, Delete, or a
	// query method.
	ErrNilPoint = errors.New("mtree: point is nil")

	// ErrEmptySplit indicates a split heuristic was invoked on fewer than
	// four entries, violating the overflow-split precondition (spec.md
	// §4.7: capacity_max >= 3, so an overflowing node has >= 4 entries).
	ErrEmptySplit = errors.New("mtree: split requires at least 4 entries")
)
