package mtree

import "math/rand"

// splitRandom is H1 (spec.md §4.8): shuffle entry keys, cut the list in
// half, and make the first key of each half its center. O(n) expected; the
// cheapest of the three heuristics, and the lowest quality.
func splitRandom(entries map[string]entry, distFn DistanceFunc) (Partition, Partition, error) {
	if len(entries) < 4 {
		return Partition{}, Partition{}, ErrEmptySplit
	}

	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	rand.Shuffle(len(keys), func(i, j int) { keys[i], keys[j] = keys[j], keys[i] })

	mid := len(keys) / 2
	halves := [2][]string{keys[:mid], keys[mid:]}

	var parts [2]Partition
	for i, half := range halves {
		group := make(map[string]entry, len(half))
		for _, k := range half {
			group[k] = entries[k]
		}

		center := entries[half[0]].anchor()
		radius, err := finalizePartition(center, group, distFn)
		if err != nil {
			return Partition{}, Partition{}, err
		}

		parts[i] = Partition{Center: center, Radius: radius, Entries: group}
	}

	return parts[0], parts[1], nil
}
