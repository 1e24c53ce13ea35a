package place

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMove(t *testing.T) {
	seq := []string{"a", "b", "c", "d"}

	tests := []struct {
		name     string
		from, to int
		want     []string
	}{
		{"forward", 0, 2, []string{"b", "c", "a", "d"}},
		{"backward", 3, 1, []string{"a", "d", "b", "c"}},
		{"to end", 0, 3, []string{"b", "c", "d", "a"}},
		{"to front", 2, 0, []string{"c", "a", "b", "d"}},
		{"no-op", 1, 1, []string{"a", "b", "c", "d"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Move(seq, tt.from, tt.to)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, []string{"a", "b", "c", "d"}, seq, "input must not be modified")
		})
	}
}

func TestMoveOutOfRange(t *testing.T) {
	seq := []int{1, 2, 3}
	for _, idx := range [][2]int{{-1, 0}, {0, 3}, {3, 0}, {0, -1}} {
		_, err := Move(seq, idx[0], idx[1])
		assert.ErrorIs(t, err, ErrIndexOutOfRange)
	}

	_, err := Move([]int{}, 0, 0)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestMoveIsPermutation(t *testing.T) {
	seq := []int{5, 1, 4, 2, 3, 9}
	for from := range seq {
		for to := range seq {
			got, err := Move(seq, from, to)
			require.NoError(t, err)
			require.Len(t, got, len(seq))

			a := append([]int(nil), seq...)
			b := append([]int(nil), got...)
			sort.Ints(a)
			sort.Ints(b)
			assert.Equal(t, a, b)
		}
	}
}

func TestMoveAdjacentSwapInverts(t *testing.T) {
	seq := []string{"a", "b", "c", "d", "e"}
	for i := 0; i < len(seq)-1; i++ {
		swapped, err := Move(seq, i, i+1)
		require.NoError(t, err)
		restored, err := Move(swapped, i+1, i)
		require.NoError(t, err)
		assert.Equal(t, seq, restored)
	}
}
