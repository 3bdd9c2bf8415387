package engine

// MergedRange is a compacted run of contiguous slots sharing one value.
// EndIndex is exclusive.
type MergedRange[T comparable] struct {
	StartIndex int
	EndIndex   int
	Value      T
}

// Merge collapses a slot-indexed array into the minimal ordered list of
// contiguous equal-valued ranges. Nil entries mean "no data" and are
// excluded from the output entirely. Merge is idempotent: expanding the
// result back to slots and merging again yields the same ranges.
func Merge[T comparable](values []*T) []MergedRange[T] {
	var ranges []MergedRange[T]

	for i := 0; i < len(values); {
		if values[i] == nil {
			i++
			continue
		}

		start := i
		v := *values[i]
		for i < len(values) && values[i] != nil && *values[i] == v {
			i++
		}

		ranges = append(ranges, MergedRange[T]{StartIndex: start, EndIndex: i, Value: v})
	}

	return ranges
}

// Expand is the inverse of Merge for a grid of n slots: it re-materializes
// the per-slot array, leaving uncovered slots nil.
func Expand[T comparable](n int, ranges []MergedRange[T]) []*T {
	values := make([]*T, n)
	for _, r := range ranges {
		for i := r.StartIndex; i < r.EndIndex && i < n; i++ {
			v := r.Value
			values[i] = &v
		}
	}
	return values
}
