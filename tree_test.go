package mtree_test

import (
	"fmt"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/mtree"
)

// TreeSuite exercises Tree against the invariants and concrete scenarios.
type TreeSuite struct {
	suite.Suite
}

func TestTreeSuite(t *testing.T) {
	suite.Run(t, new(TreeSuite))
}

// TestScenario1BasicRangeQuery mirrors the first concrete scenario: three
// collinear 3-tuples, a range query of radius 2 around the origin.
func (s *TreeSuite) TestScenario1BasicRangeQuery() {
	tr := mtree.New()

	for _, v := range []mtree.Vector{{0, 0, 0}, {1, 1, 1}, {2, 2, 2}} {
		ok, err := tr.Insert(v)
		require.NoError(s.T(), err)
		require.True(s.T(), ok)
	}

	res, err := tr.RangeQuery(mtree.Vector{0, 0, 0}, 2)
	require.NoError(s.T(), err)
	require.Len(s.T(), res, 2)
	require.Equal(s.T(), "0,0,0", res[0].Point.Key())
	require.InDelta(s.T(), 0.0, res[0].Dist, 1e-9)
	require.Equal(s.T(), "1,1,1", res[1].Point.Key())
	require.InDelta(s.T(), math.Sqrt(3), res[1].Dist, 1e-9)
}

// TestScenario2BulkInsertSmartSplit runs the second scenario's workload: 1 000
// random 3-tuples (scaled down from 10 000 to keep the suite fast) inserted
// with capacity_max=9 and the smart split heuristic must all be accepted and
// counted. Node sizes are not visible through the public API and are not
// checked here.
func (s *TreeSuite) TestScenario2BulkInsertSmartSplit() {
	tr := mtree.New(mtree.WithCapacity(9), mtree.WithSplitHeuristic(mtree.SplitHeuristicSmart))

	rng := rand.New(rand.NewSource(42))
	points := make([]mtree.Vector, 0, 1000)
	for i := 0; i < 1000; i++ {
		points = append(points, mtree.Vector{rng.Float64() * 100, rng.Float64() * 100, rng.Float64() * 100})
	}

	for _, p := range points {
		_, err := tr.Insert(p)
		require.NoError(s.T(), err)
	}

	require.Equal(s.T(), len(points), tr.Len())
	require.LessOrEqual(s.T(), tr.Len(), 1000)
}

// TestScenario3KNNSelf mirrors the third scenario: after a bulk insert,
// KNNQuery(q, 1) for q already in the tree returns q itself at distance 0.
func (s *TreeSuite) TestScenario3KNNSelf() {
	tr := mtree.New(mtree.WithCapacity(9), mtree.WithSplitHeuristic(mtree.SplitHeuristicSmart))

	rng := rand.New(rand.NewSource(7))
	var sample mtree.Vector
	for i := 0; i < 200; i++ {
		v := mtree.Vector{rng.Float64() * 50, rng.Float64() * 50}
		_, err := tr.Insert(v)
		require.NoError(s.T(), err)
		if i == 100 {
			sample = v
		}
	}

	res, err := tr.KNNQuery(sample, 1)
	require.NoError(s.T(), err)
	require.Len(s.T(), res, 1)
	require.Equal(s.T(), sample.Key(), res[0].Point.Key())
	require.InDelta(s.T(), 0.0, res[0].Dist, 1e-9)
}

// TestScenario4PerfectSplitCollinear mirrors the fourth scenario: five
// collinear 2-D points with capacity_max=4 and perfect split must trigger
// exactly one split; the 2-3 balance of that split is checked directly by
// TestSplitPerfectBalancedCollinear.
func (s *TreeSuite) TestScenario4PerfectSplitCollinear() {
	tr := mtree.New(mtree.WithCapacity(4), mtree.WithSplitHeuristic(mtree.SplitHeuristicPerfect))

	for x := 0.0; x <= 4; x++ {
		_, err := tr.Insert(mtree.Vector{x, 0})
		require.NoError(s.T(), err)
	}

	require.Equal(s.T(), 5, tr.Len())
	stats := tr.Stats()
	// The child leaf overflows and splits, but the root itself does not
	// overflow (it goes from 1 to 2 routing entries against capacity 4),
	// so the tree stays at its initial height of one routing level.
	require.Equal(s.T(), 1, stats.Height)
	require.Equal(s.T(), 1, stats.SplitUsage["perfect"])

	res, err := tr.RangeQuery(mtree.Vector{0, 0}, 10)
	require.NoError(s.T(), err)
	require.Len(s.T(), res, 5)
}

// TestScenario5DeleteRestoresPriorResults mirrors the fifth scenario:
// inserting then deleting the same point leaves range/knn results matching
// the pre-insert tree.
func (s *TreeSuite) TestScenario5DeleteRestoresPriorResults() {
	tr := mtree.New(mtree.WithCapacity(4))

	base := []mtree.Vector{{0, 0}, {5, 5}, {10, 0}, {3, 4}, {-2, -2}}
	for _, v := range base {
		_, err := tr.Insert(v)
		require.NoError(s.T(), err)
	}

	before, err := tr.RangeQuery(mtree.Vector{0, 0}, 100)
	require.NoError(s.T(), err)

	extra := mtree.Vector{99, 99}
	ok, err := tr.Insert(extra)
	require.NoError(s.T(), err)
	require.True(s.T(), ok)

	ok, err = tr.Delete(extra)
	require.NoError(s.T(), err)
	require.True(s.T(), ok)

	after, err := tr.RangeQuery(mtree.Vector{0, 0}, 100)
	require.NoError(s.T(), err)
	require.Equal(s.T(), len(before), len(after))
	for i := range before {
		require.Equal(s.T(), before[i].Point.Key(), after[i].Point.Key())
		require.InDelta(s.T(), before[i].Dist, after[i].Dist, 1e-9)
	}
}

// TestScenario6EmptyTreeQueries mirrors the sixth scenario: queries against
// an empty tree return empty, not an error.
func (s *TreeSuite) TestScenario6EmptyTreeQueries() {
	tr := mtree.New()

	res, err := tr.RangeQuery(mtree.Vector{0, 0}, 5)
	require.NoError(s.T(), err)
	require.Empty(s.T(), res)

	res, err = tr.KNNQuery(mtree.Vector{0, 0}, 3)
	require.NoError(s.T(), err)
	require.Empty(s.T(), res)
}

// TestRoundTripInsertThenDeleteEmptiesTree verifies spec.md §8's round-trip
// property across a random permutation of unique points.
func (s *TreeSuite) TestRoundTripInsertThenDeleteEmptiesTree() {
	tr := mtree.New(mtree.WithCapacity(5))

	points := make([]mtree.Vector, 0, 64)
	for i := 0; i < 64; i++ {
		points = append(points, mtree.Vector{float64(i), float64(i * 2)})
	}

	rng := rand.New(rand.NewSource(3))
	rng.Shuffle(len(points), func(i, j int) { points[i], points[j] = points[j], points[i] })

	for _, p := range points {
		ok, err := tr.Insert(p)
		require.NoError(s.T(), err)
		require.True(s.T(), ok)
	}
	require.Equal(s.T(), len(points), tr.Len())

	rng.Shuffle(len(points), func(i, j int) { points[i], points[j] = points[j], points[i] })
	for _, p := range points {
		ok, err := tr.Delete(p)
		require.NoError(s.T(), err)
		require.True(s.T(), ok)
	}

	require.Equal(s.T(), 0, tr.Len())
	require.Equal(s.T(), 0, tr.Stats().Height)

	res, err := tr.RangeQuery(mtree.Vector{0, 0}, 1000)
	require.NoError(s.T(), err)
	require.Empty(s.T(), res)
}

// TestInsertDuplicateIsNoop verifies spec.md §8's idempotence property for
// Insert.
func (s *TreeSuite) TestInsertDuplicateIsNoop() {
	tr := mtree.New()

	p := mtree.Vector{1, 2, 3}
	ok, err := tr.Insert(p)
	require.NoError(s.T(), err)
	require.True(s.T(), ok)

	ok, err = tr.Insert(mtree.Vector{1, 2, 3})
	require.NoError(s.T(), err)
	require.False(s.T(), ok)
	require.Equal(s.T(), 1, tr.Len())
}

// TestDeleteAbsentIsNoop verifies spec.md §8's idempotence property for
// Delete.
func (s *TreeSuite) TestDeleteAbsentIsNoop() {
	tr := mtree.New()
	_, _ = tr.Insert(mtree.Vector{1, 1})

	ok, err := tr.Delete(mtree.Vector{9, 9})
	require.NoError(s.T(), err)
	require.False(s.T(), ok)
	require.Equal(s.T(), 1, tr.Len())

	ok, err = tr.Delete(mtree.Vector{1, 1})
	require.NoError(s.T(), err)
	require.True(s.T(), ok)

	ok, err = tr.Delete(mtree.Vector{1, 1})
	require.NoError(s.T(), err)
	require.False(s.T(), ok)
}

// TestRangeQueryExactness verifies spec.md §8's query correctness property
// against a brute-force reference.
func (s *TreeSuite) TestRangeQueryExactness() {
	tr := mtree.New(mtree.WithCapacity(6))

	rng := rand.New(rand.NewSource(99))
	points := make([]mtree.Vector, 0, 300)
	for i := 0; i < 300; i++ {
		v := mtree.Vector{rng.Float64() * 20, rng.Float64() * 20}
		points = append(points, v)
		_, err := tr.Insert(v)
		require.NoError(s.T(), err)
	}

	q := mtree.Vector{10, 10}
	const r = 5.0

	got, err := tr.RangeQuery(q, r)
	require.NoError(s.T(), err)

	var want []string
	for _, p := range points {
		d, err := mtree.Euclidean(q, p)
		require.NoError(s.T(), err)
		if d <= r {
			want = append(want, p.Key())
		}
	}

	require.Len(s.T(), got, len(want))

	gotKeys := make(map[string]bool, len(got))
	for i, res := range got {
		gotKeys[res.Point.Key()] = true
		if i > 0 {
			require.LessOrEqual(s.T(), got[i-1].Dist, res.Dist)
		}
	}
	for _, k := range want {
		require.True(s.T(), gotKeys[k], "missing expected point %s", k)
	}
}

// TestKNNQueryExactness verifies spec.md §8's k-NN correctness property: the
// k smallest distances, ascending, against a brute-force reference.
func (s *TreeSuite) TestKNNQueryExactness() {
	tr := mtree.New(mtree.WithCapacity(6))

	rng := rand.New(rand.NewSource(123))
	points := make([]mtree.Vector, 0, 150)
	for i := 0; i < 150; i++ {
		v := mtree.Vector{rng.Float64() * 30, rng.Float64() * 30, rng.Float64() * 30}
		points = append(points, v)
		_, err := tr.Insert(v)
		require.NoError(s.T(), err)
	}

	q := mtree.Vector{15, 15, 15}
	const k = 10

	got, err := tr.KNNQuery(q, k)
	require.NoError(s.T(), err)
	require.Len(s.T(), got, k)

	dists := make([]float64, 0, len(points))
	for _, p := range points {
		d, err := mtree.Euclidean(q, p)
		require.NoError(s.T(), err)
		dists = append(dists, d)
	}
	for i := 0; i < len(dists); i++ {
		for j := i + 1; j < len(dists); j++ {
			if dists[j] < dists[i] {
				dists[i], dists[j] = dists[j], dists[i]
			}
		}
	}

	for i, res := range got {
		require.InDelta(s.T(), dists[i], res.Dist, 1e-9)
		if i > 0 {
			require.LessOrEqual(s.T(), got[i-1].Dist, res.Dist)
		}
	}
}

// TestWithCapacityPanicsBelowThree verifies the functional-option guard
// fires when the option is applied by New, matching the teacher's
// panic-inside-the-closure convention (dijkstra.WithMaxDistance).
func (s *TreeSuite) TestWithCapacityPanicsBelowThree() {
	require.Panics(s.T(), func() { mtree.New(mtree.WithCapacity(2)) })
}

// TestInsertNilPointErrors verifies the nil-point guard on Insert.
func (s *TreeSuite) TestInsertNilPointErrors() {
	tr := mtree.New()
	_, err := tr.Insert(nil)
	require.ErrorIs(s.T(), err, mtree.ErrNilPoint)
}

// TestStatsAndString sanity-checks the introspection surface.
func (s *TreeSuite) TestStatsAndString() {
	tr := mtree.New(mtree.WithCapacity(4))
	for i := 0; i < 20; i++ {
		_, err := tr.Insert(mtree.Vector{float64(i)})
		require.NoError(s.T(), err)
	}

	stats := tr.Stats()
	require.Equal(s.T(), 20, stats.Count)
	require.Equal(s.T(), 4, stats.Capacity)
	require.Greater(s.T(), stats.Height, 0)
	require.Equal(s.T(), fmt.Sprintf("Tree(count=%d, height=%d, capacity=%d)", stats.Count, stats.Height, stats.Capacity), tr.String())
}

// TestStatsTracksSplitUsage verifies SplitUsage is keyed by the active
// heuristic's name and increments when a leaf overflows and splits.
func (s *TreeSuite) TestStatsTracksSplitUsage() {
	tr := mtree.New(mtree.WithCapacity(4), mtree.WithSplitHeuristic(mtree.SplitHeuristicSmart))

	require.Equal(s.T(), 0, tr.Stats().SplitUsage["smart"])

	for x := 0.0; x <= 4; x++ {
		_, err := tr.Insert(mtree.Vector{x, 0})
		require.NoError(s.T(), err)
	}

	usage := tr.Stats().SplitUsage
	require.Equal(s.T(), 1, usage["smart"])
	require.Zero(s.T(), usage["random"])
	require.Zero(s.T(), usage["perfect"])
}
