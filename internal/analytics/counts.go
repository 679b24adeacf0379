package analytics

import (
	"sort"
)

// Count is one distinct value and how many rows hold it.
type Count[T comparable] struct {
	Value T
	Count int
}

// ValueCounts tallies the n values produced by get, skipping those for which
// get reports false (missing values). The result is ordered by descending
// count; equal counts keep the order in which the values first appeared.
func ValueCounts[T comparable](n int, get func(i int) (T, bool)) []Count[T] {
	index := make(map[T]int)
	var counts []Count[T]

	for i := 0; i < n; i++ {
		v, ok := get(i)
		if !ok {
			continue
		}
		if pos, seen := index[v]; seen {
			counts[pos].Count++
			continue
		}
		index[v] = len(counts)
		counts = append(counts, Count[T]{Value: v, Count: 1})
	}

	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
	return counts
}

// Mode returns the most frequent value. Ties go to the value seen first.
// The second return value is false when there are no non-missing values.
func Mode[T comparable](n int, get func(i int) (T, bool)) (T, bool) {
	counts := ValueCounts(n, get)
	if len(counts) == 0 {
		var zero T
		return zero, false
	}
	return counts[0].Value, true
}
