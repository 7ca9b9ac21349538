// Package mtree implements an M-tree: a dynamic, balanced index over points
// in an arbitrary metric space.
//
// Given a distance function d(·,·) satisfying the metric axioms
// (non-negativity, identity, symmetry, triangle inequality), an M-tree
// supports insertion, deletion, range queries (all points within a given
// distance of a query point) and k-nearest-neighbour queries, while
// exploiting the triangle inequality to prune whole subtrees without
// recomputing distances.
//
// Overview:
//
//   - Every node holds a bounded set of entries (a Point → *entry map) and
//     a center/radius describing the covering ball it anchors.
//   - Leaves hold GroundEntry values (one per indexed point). Internal
//     nodes, including the root, hold RoutingEntry values, each pointing at
//     a child subtree guaranteed to lie entirely within the entry's ball.
//   - Insertion descends via the "smallest fitting distance, else smallest
//     surplus" rule, growing a ball's radius only when necessary.
//   - Search prunes an entry's subtree the moment the cached parent
//     distance proves its ball cannot intersect the query ball, without
//     ever computing the (expensive) true distance to that entry.
//   - Overflow triggers a split: the three pluggable heuristics
//     (splitRandom, splitPerfect, splitSmart) trade split quality against
//     construction cost.
//
// Distance kernels:
//
//   - Euclidean is the default, over Vector points ([]float64 tuples).
//   - Haversine indexes GeoPoint values (great-circle distance).
//   - DTW indexes Sequence values (numeric time series) by Dynamic Time
//     Warping distance; see its doc comment for the metric-axiom caveat.
//
// Non-goals: persistent on-disk paging, transactional guarantees,
// concurrent mutation, approximate-search variants, and rebalancing
// (donation/merge) on underflow. These match the Non-goals of the design
// this package implements; see DESIGN.md in the module root for the full
// rationale and the corpus this was grounded on.
//
// Concurrency: a Tree is not safe for concurrent use. All operations run to
// completion on the caller's goroutine; callers needing concurrent access
// must synchronize externally (a single sync.RWMutex around the Tree is
// sufficient, since no operation blocks).
package mtree
