package mtree

import (
	"fmt"
	"math"
	"sort"
)

// splitSmart is H3 (spec.md §4.8): pick two "opposite" anchors — the
// entries whose Vector coordinate sums are the global minimum and maximum —
// then assign every remaining entry to whichever anchor is closer. O(n);
// a compromise between splitRandom's speed and splitPerfect's quality.
// Resulting partitions may be unbalanced in cardinality.
func splitSmart(entries map[string]entry, distFn DistanceFunc) (Partition, Partition, error) {
	if len(entries) < 4 {
		return Partition{}, Partition{}, ErrEmptySplit
	}

	centerMin, centerMax, err := oppositeAnchors(entries)
	if err != nil {
		return Partition{}, Partition{}, err
	}

	groupMin := make(map[string]entry)
	groupMax := make(map[string]entry)
	for k, e := range entries {
		dMin, err := distFn(centerMin, e.anchor())
		if err != nil {
			return Partition{}, Partition{}, err
		}
		dMax, err := distFn(centerMax, e.anchor())
		if err != nil {
			return Partition{}, Partition{}, err
		}

		if dMin < dMax {
			groupMin[k] = e
		} else {
			groupMax[k] = e
		}
	}

	radiusMin, err := finalizePartition(centerMin, groupMin, distFn)
	if err != nil {
		return Partition{}, Partition{}, err
	}
	radiusMax, err := finalizePartition(centerMax, groupMax, distFn)
	if err != nil {
		return Partition{}, Partition{}, err
	}

	return Partition{Center: centerMin, Radius: radiusMin, Entries: groupMin},
		Partition{Center: centerMax, Radius: radiusMax, Entries: groupMax}, nil
}

// oppositeAnchors finds the entries whose anchor coordinate-sum is
// respectively the global minimum and maximum (spec.md §4.8,
// _find_centers_opposite in the source this is grounded on). Only
// meaningful for Vector-keyed points; non-Vector points have no intrinsic
// ordering, so two distinct anchors are instead picked deterministically
// by key.
func oppositeAnchors(entries map[string]entry) (Point, Point, error) {
	var anchorMin, anchorMax Point
	sumMin, sumMax := math.Inf(1), math.Inf(-1)
	haveVectors := false

	for _, e := range entries {
		v, ok := e.anchor().(Vector)
		if !ok {
			continue
		}

		haveVectors = true
		s := coordSum(v)
		if s < sumMin {
			sumMin, anchorMin = s, e.anchor()
		}
		if s > sumMax {
			sumMax, anchorMax = s, e.anchor()
		}
	}

	if haveVectors {
		return anchorMin, anchorMax, nil
	}

	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if len(keys) < 2 {
		return nil, nil, fmt.Errorf("mtree: smart split needs at least 2 entries")
	}

	return entries[keys[0]].anchor(), entries[keys[len(keys)-1]].anchor(), nil
}

func coordSum(v Vector) float64 {
	var s float64
	for _, c := range v {
		s += c
	}

	return s
}
