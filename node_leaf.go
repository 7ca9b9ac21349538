package mtree

import "math"

// insertLeaf implements spec.md §4.3 insert(p): no-op on duplicate, else
// store a ground entry and grow the leaf's radius to cover it.
func (n *node) insertLeaf(p Point) (bool, error) {
	key := p.Key()
	if _, exists := n.ground[key]; exists {
		return false, nil
	}

	dp, err := n.distFn(n.center, p)
	if err != nil {
		return false, err
	}

	n.ground[key] = &GroundEntry{Point: p, ParentDist: dp}
	if dp > n.radius {
		n.radius = dp
	}

	return true, nil
}

// deleteLeaf implements spec.md §4.3 delete(p): removes the ground entry if
// present.
func (n *node) deleteLeaf(p Point) (bool, error) {
	key := p.Key()
	if _, exists := n.ground[key]; !exists {
		return false, nil
	}

	delete(n.ground, key)

	return true, nil
}

// searchLeaf implements spec.md §4.3/§4.6 search: triangle-inequality
// pruning against the cached parent distance (a ground entry's own radius
// is always 0), then an exact distance check, collecting and sorting hits.
func (n *node) searchLeaf(q Point, dParent, r float64, k int) ([]Result, error) {
	var out []Result
	for _, e := range n.ground {
		if math.Abs(e.ParentDist-dParent) > r+distSlack(dParent+r) {
			continue // the point cannot be within r of q; skip without computing d(q, e.Point)
		}

		d, err := n.distFn(q, e.Point)
		if err != nil {
			return nil, err
		}
		if d <= r {
			out = append(out, Result{Point: e.Point, Dist: d})
		}
	}

	insertionSort(out)
	if k >= 0 && len(out) > k {
		out = out[:k]
	}

	return out, nil
}

// insertionSort sorts a small Result slice ascending by Dist in place.
// Leaves hold at most capacity_max entries (single digits in practice), so
// insertion sort's simplicity beats sort.Slice's overhead here.
func insertionSort(r []Result) {
	for i := 1; i < len(r); i++ {
		for j := i; j > 0 && r[j].Dist < r[j-1].Dist; j-- {
			r[j], r[j-1] = r[j-1], r[j]
		}
	}
}
