// Package search finds the nearest entry in sorted sequences.
package search

import (
	"cmp"
	"errors"
)

// ErrEmptySequence is returned when searching a sequence with no elements.
var ErrEmptySequence = errors.New("search: empty sequence")

// FindNearest returns the index of key in the ascending slice s. If key is
// not present, the index of the nearest preceding element is returned. The
// result is clamped into [0, len(s)-1]. When s holds several elements equal
// to key, the lowest of their indices is returned.
func FindNearest[E cmp.Ordered](s []E, key E) (int, error) {
	return FindNearestFrom(s, key, (len(s)-1)>>1)
}

// FindNearestFrom is like FindNearest but starts the partition at pivot.
// Passing the index returned by a previous call speeds up repeated lookups
// of a slowly drifting key. The pivot never changes the result.
func FindNearestFrom[E cmp.Ordered](s []E, key E, pivot int) (int, error) {
	return FindNearestFunc(s, key, pivot, cmp.Compare[E])
}

// FindNearestFunc is like FindNearestFrom but uses a comparison function.
// compare(e, key) must return a negative number if e sorts before key, zero
// if they are equal and a positive number otherwise.
func FindNearestFunc[S ~[]E, E, K any](s S, key K, pivot int, compare func(E, K) int) (int, error) {
	n := len(s)
	if n == 0 {
		return 0, ErrEmptySequence
	}

	low, high := 0, n-1
	pivot = min(max(pivot, low), high)
	match := -1
	for low <= high {
		c := compare(s[pivot], key)
		switch {
		case c > 0:
			high = pivot - 1
		case c < 0:
			low = pivot + 1
		default:
			// Keep looking left so duplicates resolve to the first index.
			match = pivot
			high = pivot - 1
		}
		pivot = (low + high) >> 1
	}

	if match >= 0 {
		return match, nil
	}
	// high is now the last element below key.
	return min(max(high, 0), n-1), nil
}
