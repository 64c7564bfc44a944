package search

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindNearest(t *testing.T) {
	seq := []int{1, 3, 5, 7}
	tests := []struct {
		name string
		key  int
		want int
	}{
		{"exact first", 1, 0},
		{"exact middle", 5, 2},
		{"exact last", 7, 3},
		{"between picks preceding", 4, 1},
		{"between upper", 6, 2},
		{"below all", 0, 0},
		{"above all", 99, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FindNearest(seq, tt.key)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFindNearestSingle(t *testing.T) {
	for _, key := range []int{4, 5, 6} {
		got, err := FindNearest([]int{5}, key)
		require.NoError(t, err)
		assert.Equal(t, 0, got)
	}
}

func TestFindNearestEmpty(t *testing.T) {
	_, err := FindNearest([]float64{}, 1.0)
	assert.ErrorIs(t, err, ErrEmptySequence)

	_, err = FindNearestFrom[int](nil, 1, 3)
	assert.ErrorIs(t, err, ErrEmptySequence)
}

func TestFindNearestPivotDoesNotChangeResult(t *testing.T) {
	seq := make([]float64, 50)
	for i := range seq {
		seq[i] = float64(i) * 0.5
	}

	for key := -1.0; key < 27; key += 0.3 {
		want, err := FindNearest(seq, key)
		require.NoError(t, err)
		for _, pivot := range []int{-10, 0, 1, 17, 25, 48, 49, 200} {
			got, err := FindNearestFrom(seq, key, pivot)
			require.NoError(t, err)
			assert.Equal(t, want, got, "key=%v pivot=%d", key, pivot)
		}
	}
}

func TestFindNearestMatchesLinearScan(t *testing.T) {
	seq := []int{-4, -1, 0, 2, 3, 8, 13, 21}
	for key := -10; key <= 30; key++ {
		want := 0
		for i, v := range seq {
			if v <= key {
				want = i
			}
		}
		got, err := FindNearest(seq, key)
		require.NoError(t, err)
		assert.Equal(t, want, got, "key=%d", key)
	}
}

// Duplicates always resolve to the first index of the equal run.
func TestFindNearestDuplicates(t *testing.T) {
	seq := []int{1, 2, 2, 2, 2, 2, 3, 4}
	for pivot := 0; pivot < len(seq); pivot++ {
		got, err := FindNearestFrom(seq, 2, pivot)
		require.NoError(t, err)
		assert.Equal(t, 1, got, "pivot=%d", pivot)
	}

	all := []int{7, 7, 7, 7}
	got, err := FindNearest(all, 7)
	require.NoError(t, err)
	assert.Equal(t, 0, got)

	// Absent key after a run lands on the run's last element.
	got, err = FindNearest([]int{1, 2, 2, 2, 5}, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, got)
}

func TestFindNearestFunc(t *testing.T) {
	type sample struct {
		t    float64
		name string
	}
	samples := []sample{{0, "a"}, {0.5, "b"}, {1.25, "c"}, {2, "d"}}
	byTime := func(s sample, key float64) int {
		switch {
		case s.t < key:
			return -1
		case s.t > key:
			return 1
		}
		return 0
	}

	got, err := FindNearestFunc(samples, 1.0, 0, byTime)
	require.NoError(t, err)
	assert.Equal(t, "b", samples[got].name)

	words := []string{"apple", "fig", "kiwi", "pear"}
	got, err = FindNearestFunc(words, "grape", 3, strings.Compare)
	require.NoError(t, err)
	assert.Equal(t, 1, got)
}
