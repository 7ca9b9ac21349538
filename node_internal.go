package mtree

import "math"

// insertInternal implements spec.md §4.4 insert(p): descend into the best
// routing entry's child, then split that child here if it now overflows.
func (n *node) insertInternal(p Point) (bool, error) {
	best, err := n.chooseSubtree(p)
	if err != nil {
		return false, err
	}

	ok, err := best.Child.insert(p)
	if err != nil || !ok {
		return ok, err
	}

	if best.Child.overflowed() {
		if err := n.splitChild(best); err != nil {
			return false, err
		}
	}

	return true, nil
}

// chooseSubtree implements the descent rule of spec.md §4.5: among fitting
// routing entries, pick the one with smallest distance; if none fit, grow
// the non-fitting entry with smallest surplus so p now fits.
func (n *node) chooseSubtree(p Point) (*RoutingEntry, error) {
	var bestFit *RoutingEntry
	bestFitDist := math.Inf(1)

	var bestOverflow *RoutingEntry
	bestSurplus := math.Inf(1)
	var bestOverflowDist float64

	for _, e := range n.routing {
		dp, err := n.distFn(p, e.Center)
		if err != nil {
			return nil, err
		}

		if dp <= e.Radius {
			if bestFit == nil || dp < bestFitDist {
				bestFit, bestFitDist = e, dp
			}
			continue
		}

		surplus := dp - e.Radius
		if bestOverflow == nil || surplus < bestSurplus {
			bestOverflow, bestSurplus, bestOverflowDist = e, surplus, dp
		}
	}

	if bestFit != nil {
		return bestFit, nil
	}

	// No entry fits: grow the one with the smallest surplus so p now fits,
	// keeping the child node's own radius field in sync (spec.md §4.5).
	bestOverflow.Radius = bestOverflowDist
	bestOverflow.Child.radius = bestOverflowDist

	return bestOverflow, nil
}

// distSlack is the rounding allowance used when a computed distance is
// compared against a covering radius. Covering radii are sums of computed
// distances, so on collinear points a covered point can land a few ulps
// outside its ball; without the allowance such points would be pruned.
func distSlack(scale float64) float64 { return 1e-9 * (1 + scale) }

// deleteInternal implements spec.md §4.4 delete(p, d_parent): visits every
// routing entry whose ball could cover p, recursing into each.
func (n *node) deleteInternal(p Point, dParent float64) (bool, error) {
	deleted := false
	for _, e := range n.routing {
		limit := e.Radius + distSlack(dParent+e.Radius)
		if math.Abs(dParent-e.ParentDist) > limit {
			continue
		}

		d, err := n.distFn(e.Center, p)
		if err != nil {
			return false, err
		}
		if d > limit {
			continue
		}

		ok, err := e.Child.delete(p, d)
		if err != nil {
			return false, err
		}
		if ok {
			deleted = true
		}
	}

	return deleted, nil
}

// searchInternal implements spec.md §4.6: triangle-inequality pruning
// against the cached parent distance and the entry's radius, then an exact
// distance check before recursing, merging each child's sorted sublist into
// a running, k-truncated result.
func (n *node) searchInternal(q Point, dParent, r float64, k int) ([]Result, error) {
	var acc []Result
	for _, e := range n.routing {
		rSum := r + e.Radius + distSlack(dParent+r+e.Radius)
		if math.Abs(e.ParentDist-dParent) > rSum {
			continue // the subtree's ball cannot intersect the query ball; skip without computing d(q, e.Center)
		}

		d, err := n.distFn(q, e.Center)
		if err != nil {
			return nil, err
		}
		if d > rSum {
			continue
		}

		sub, err := e.Child.search(q, d, r, k)
		if err != nil {
			return nil, err
		}

		acc = mergeSorted(acc, sub)
		if len(acc) > k {
			acc = acc[:k]
		}
	}

	return acc, nil
}

// splitChild implements spec.md §4.7: partition old.Child's entries into
// two balanced covering balls, discard old, and install two fresh routing
// entries in its place.
func (n *node) splitChild(old *RoutingEntry) error {
	child := old.Child
	entries := make(map[string]entry, child.size())
	if child.isLeaf() {
		for k, e := range child.ground {
			entries[k] = e
		}
	} else {
		for k, e := range child.routing {
			entries[k] = e
		}
	}

	part0, part1, err := child.splitFn(entries, child.distFn)
	if err != nil {
		return err
	}
	child.splitUsage[splitHeuristicName(child.splitFn)]++

	delete(n.routing, old.Center.Key())

	for _, part := range [2]Partition{part0, part1} {
		d, err := n.distFn(n.center, part.Center)
		if err != nil {
			return err
		}

		n.routing[part.Center.Key()] = &RoutingEntry{
			Center:     part.Center,
			Radius:     part.Radius,
			ParentDist: d,
			Child:      rebuildNode(child, part),
		}
	}

	return nil
}
