package container

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRingFIFO(t *testing.T) {
	r := NewRing[int](8)

	for i := 1; i <= 5; i++ {
		r.Push(i)
	}
	require.Equal(t, 5, r.Len())

	for i := 1; i <= 5; i++ {
		v, ok := r.Pop()
		require.True(t, ok)
		require.Equal(t, i, v)
	}
	require.Equal(t, 0, r.Len())
}

func TestRingEmptyPop(t *testing.T) {
	r := NewRing[int](4)

	for i := 0; i < 3; i++ {
		v, ok := r.Pop()
		require.False(t, ok)
		require.Zero(t, v)
	}
}

func TestRingOverflowDropsOldest(t *testing.T) {
	const capacity = 4
	r := NewRing[int](capacity)

	for i := 1; i <= capacity+1; i++ {
		r.Push(i)
	}

	require.Equal(t, capacity, r.Len())
	require.Equal(t, uint64(1), r.Dropped())

	// The oldest element was discarded; the next pop yields #2.
	v, ok := r.Pop()
	require.True(t, ok)
	require.Equal(t, 2, v)
}

func TestRingOverflowWrapsRepeatedly(t *testing.T) {
	const capacity = 4
	r := NewRing[int](capacity)

	for i := 1; i <= 3*capacity; i++ {
		r.Push(i)
	}

	require.Equal(t, capacity, r.Len())
	require.Equal(t, uint64(2*capacity), r.Dropped())

	for i := 2*capacity + 1; i <= 3*capacity; i++ {
		v, ok := r.Pop()
		require.True(t, ok)
		require.Equal(t, i, v)
	}
}

func TestRingCap(t *testing.T) {
	require.Equal(t, 16, NewRing[int](16).Cap())
}
