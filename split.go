package mtree

import "reflect"

// Partition is the result of dividing an overflowing node's entries into
// one of the two balanced covering balls a split heuristic produces
// (spec.md §4.7, §4.8).
type Partition struct {
	Center  Point
	Radius  float64
	Entries map[string]entry
}

// SplitFunc partitions an overflowing node's entries into exactly two
// Partitions. Every original entry appears in exactly one partition.
// splitRandom and splitPerfect give each partition at least two entries;
// splitSmart assigns entries by proximity and can leave a partition with
// fewer. Callers guarantee the precondition len(entries) >= 4 (spec.md
// §4.7).
type SplitFunc func(entries map[string]entry, distFn DistanceFunc) (Partition, Partition, error)

// finalizePartition computes a partition's covering radius around center
// and, as a side effect, recomputes and stores every entry's ParentDist
// against that center — required after every split heuristic runs
// (spec.md §4.8, last paragraph; mirrors _calc_radius in the source this
// is grounded on).
func finalizePartition(center Point, entries map[string]entry, distFn DistanceFunc) (float64, error) {
	var radius float64
	for _, e := range entries {
		d, err := distFn(center, e.anchor())
		if err != nil {
			return 0, err
		}

		e.setParentDist(d)
		if covered := d + e.coveredRadius(); covered > radius {
			radius = covered
		}
	}

	return radius, nil
}

// absInt returns the absolute value of x.
func absInt(x int) int {
	if x < 0 {
		return -x
	}

	return x
}

// splitHeuristicName labels a SplitFunc by which of the three named
// presets it is, for TreeStats.SplitUsage (SPEC_FULL.md SUPPLEMENTED
// FEATURES §2). A caller-supplied heuristic that isn't one of the three
// presets is labeled "custom".
func splitHeuristicName(fn SplitFunc) string {
	switch reflect.ValueOf(fn).Pointer() {
	case reflect.ValueOf(SplitFunc(splitRandom)).Pointer():
		return "random"
	case reflect.ValueOf(SplitFunc(splitPerfect)).Pointer():
		return "perfect"
	case reflect.ValueOf(SplitFunc(splitSmart)).Pointer():
		return "smart"
	default:
		return "custom"
	}
}
