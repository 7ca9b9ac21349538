package mtree

import (
	"fmt"
	"math"
)

// splitPerfect is H2 (spec.md §4.8): exhaustively enumerate every balanced
// 2-partition of the entry set, score each by the area of intersection of
// the two partitions' covering balls (a 2-D approximation used even when
// the points are higher-dimensional — the source comments this is "just as
// good" as a true N-sphere overlap), and keep the partition with the
// smallest intersection. O(2^n · n²); only practical for n close to
// capacity_max.
func splitPerfect(entries map[string]entry, distFn DistanceFunc) (Partition, Partition, error) {
	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	n := len(keys)
	if n < 4 {
		return Partition{}, Partition{}, ErrEmptySplit
	}

	dist, err := pairwiseDistances(keys, entries, distFn)
	if err != nil {
		return Partition{}, Partition{}, err
	}

	var bestA, bestB []string
	var bestCenterA, bestCenterB string
	bestScore := math.Inf(1)
	found := false

	// Every 2^n boolean assignment of keys to {A, B} describes a split, and
	// a pattern and its bitwise complement describe the same unordered
	// split — so only half the patterns are distinct (mirrors
	// _gen_comb_lex in the source this is grounded on).
	total := 1 << uint(n-1)
	for pattern := 0; pattern < total; pattern++ {
		var groupA, groupB []string
		for i, k := range keys {
			if pattern&(1<<uint(i)) != 0 {
				groupA = append(groupA, k)
			} else {
				groupB = append(groupB, k)
			}
		}
		if len(groupA) < 2 || len(groupB) < 2 || absInt(len(groupA)-len(groupB)) > 1 {
			continue
		}

		centerA, radiusA := bestCenter(groupA, dist)
		centerB, radiusB := bestCenter(groupB, dist)
		score := circleIntersectionArea(radiusA, radiusB, dist[centerA][centerB])

		if !found || score < bestScore {
			found, bestScore = true, score
			bestA = append(bestA[:0:0], groupA...)
			bestB = append(bestB[:0:0], groupB...)
			bestCenterA, bestCenterB = centerA, centerB
		}
	}
	if !found {
		return Partition{}, Partition{}, fmt.Errorf("mtree: perfect split found no balanced partition for %d entries", n)
	}

	partA, err := assemblePartition(bestA, bestCenterA, entries, distFn)
	if err != nil {
		return Partition{}, Partition{}, err
	}
	partB, err := assemblePartition(bestB, bestCenterB, entries, distFn)
	if err != nil {
		return Partition{}, Partition{}, err
	}

	return partA, partB, nil
}

// assemblePartition builds the Partition for one side of a chosen split.
func assemblePartition(keys []string, centerKey string, entries map[string]entry, distFn DistanceFunc) (Partition, error) {
	group := make(map[string]entry, len(keys))
	for _, k := range keys {
		group[k] = entries[k]
	}

	center := entries[centerKey].anchor()
	radius, err := finalizePartition(center, group, distFn)
	if err != nil {
		return Partition{}, err
	}

	return Partition{Center: center, Radius: radius, Entries: group}, nil
}

// pairwiseDistances memoises d(keys[i], keys[j]) for every pair, mirroring
// the memoisation table in _find_best_center in the source this is
// grounded on.
func pairwiseDistances(keys []string, entries map[string]entry, distFn DistanceFunc) (map[string]map[string]float64, error) {
	dist := make(map[string]map[string]float64, len(keys))
	for _, k := range keys {
		dist[k] = make(map[string]float64, len(keys))
	}

	for i, a := range keys {
		dist[a][a] = 0
		for _, b := range keys[i+1:] {
			d, err := distFn(entries[a].anchor(), entries[b].anchor())
			if err != nil {
				return nil, err
			}

			dist[a][b] = d
			dist[b][a] = d
		}
	}

	return dist, nil
}

// bestCenter finds the 1-center of a group: the key minimising the maximum
// distance to any other key in the group (spec.md §4.8, _find_best_center).
func bestCenter(keys []string, dist map[string]map[string]float64) (string, float64) {
	best := keys[0]
	bestRadius := math.Inf(1)

	for _, candidate := range keys {
		var radius float64
		for _, other := range keys {
			if other == candidate {
				continue
			}
			if d := dist[candidate][other]; d > radius {
				radius = d
			}
		}

		if radius < bestRadius {
			bestRadius = radius
			best = candidate
		}
	}

	return best, bestRadius
}

// circleIntersectionArea computes the area of intersection of two circles
// of radii a, b whose centers are d apart (spec.md §4.8's intersection-area
// formula).
func circleIntersectionArea(a, b, d float64) float64 {
	if a == 0 || b == 0 || d >= a+b {
		return 0
	}

	aSq, bSq := a*a, b*b
	if d <= math.Abs(a-b) {
		// One circle entirely contains the other.
		return math.Pi * math.Min(aSq, bSq)
	}

	x := (aSq - bSq + d*d) / (2 * d)
	z := x * x
	y := math.Sqrt(math.Max(aSq-z, 0))
	s := math.Sqrt(math.Max(z+bSq-aSq, 0))

	return aSq*safeAsin(y/a) + bSq*safeAsin(y/b) - y*(x+s)
}

// safeAsin clamps its argument to [-1, 1] before calling math.Asin, guarding
// against floating-point overshoot from values like 1.00000002 (spec.md
// §4.8, §7).
func safeAsin(x float64) float64 {
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}

	return math.Asin(x)
}
