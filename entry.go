package mtree

// entry is the sealed contract shared by GroundEntry and RoutingEntry, the
// two concrete entry kinds of spec.md §3. It is unexported so only this
// package can implement it: node and split code dispatch on the concrete
// type when they need kind-specific fields (Child, for routing entries) and
// otherwise treat both uniformly through this interface.
type entry interface {
	// anchor returns the point this entry is positioned at: the stored
	// point itself for a ground entry, the covering ball's center for a
	// routing entry.
	anchor() Point

	// coveredRadius returns the radius of the ball this entry's subtree is
	// guaranteed to fit within: 0 for ground entries, the routing radius
	// otherwise (spec.md §4.8's radius bookkeeping).
	coveredRadius() float64

	parentDist() float64
	setParentDist(float64)
}

// GroundEntry anchors a single indexed point at a leaf (spec.md §3).
type GroundEntry struct {
	Point Point

	// ParentDist caches d(Point, leaf.center) so search can prune this
	// entry without recomputing the distance (spec.md §4.2).
	ParentDist float64
}

func (e *GroundEntry) anchor() Point           { return e.Point }
func (e *GroundEntry) coveredRadius() float64  { return 0 }
func (e *GroundEntry) parentDist() float64     { return e.ParentDist }
func (e *GroundEntry) setParentDist(d float64) { e.ParentDist = d }

// RoutingEntry anchors a covering ball at an internal node, pointing at the
// child subtree it routes to (spec.md §3). Every descendant point q of
// Child satisfies d(Center, q) <= Radius.
type RoutingEntry struct {
	Center Point
	Radius float64

	// ParentDist caches d(Center, enclosingNode.center) (spec.md §4.2).
	ParentDist float64

	Child *node
}

func (e *RoutingEntry) anchor() Point           { return e.Center }
func (e *RoutingEntry) coveredRadius() float64  { return e.Radius }
func (e *RoutingEntry) parentDist() float64     { return e.ParentDist }
func (e *RoutingEntry) setParentDist(d float64) { e.ParentDist = d }
