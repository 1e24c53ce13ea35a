package place

import (
	"errors"
	"fmt"
)

// ErrIndexOutOfRange is returned by Move when either index is outside the sequence.
var ErrIndexOutOfRange = errors.New("index out of range")

// Move returns a new slice with the element at from removed and reinserted at
// to. The input is never modified. Out-of-range indices are rejected.
func Move[T any](seq []T, from, to int) ([]T, error) {
	if from < 0 || from >= len(seq) || to < 0 || to >= len(seq) {
		return nil, fmt.Errorf("move %d -> %d in sequence of %d: %w", from, to, len(seq), ErrIndexOutOfRange)
	}

	out := make([]T, 0, len(seq))
	out = append(out, seq[:from]...)
	out = append(out, seq[from+1:]...)

	moved := seq[from]
	out = append(out, moved)
	copy(out[to+1:], out[to:len(out)-1])
	out[to] = moved
	return out, nil
}
