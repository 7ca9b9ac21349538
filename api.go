package mtree

import "fmt"

// TreeStats is a snapshot of a Tree's size and shape, grounded on the
// teacher's own Graph.Stats() convention for cheap introspection without
// a full traversal.
type TreeStats struct {
	Count    int
	Height   int
	Capacity int

	// SplitUsage counts overflow splits performed so far, keyed by
	// heuristic name ("random", "perfect", "smart", or "custom" for a
	// caller-supplied SplitFunc). A Tree's heuristic is fixed at
	// construction, so at most one key is ever populated (none before the
	// first split).
	SplitUsage map[string]int
}

// Stats returns a snapshot of the tree's current size and shape.
func (t *Tree) Stats() TreeStats {
	usage := make(map[string]int, len(t.splitUsage))
	for k, v := range t.splitUsage {
		usage[k] = v
	}

	return TreeStats{
		Count:      t.count,
		Height:     t.height,
		Capacity:   t.capacity,
		SplitUsage: usage,
	}
}

// Len returns the number of points currently indexed.
func (t *Tree) Len() int { return t.count }

// Capacity returns capacity_max, the maximum entries a node may hold before
// splitting.
func (t *Tree) Capacity() int { return t.capacity }

// String renders a one-line summary of the tree.
func (t *Tree) String() string {
	return fmt.Sprintf("Tree(count=%d, height=%d, capacity=%d)", t.count, t.height, t.capacity)
}
