package dat

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFreeListOccupyAndFirstFree(t *testing.T) {
	f := newFreeList(16)
	require.True(t, f.isFree(5))
	f.occupy(5)
	require.False(t, f.isFree(5))
	require.Equal(t, 6, f.firstFree(5))
	require.Equal(t, 0, f.firstFree(0))
}

func TestFreeListOccupyRunThenFindPastIt(t *testing.T) {
	f := newFreeList(32)
	for i := 0; i < 10; i++ {
		f.occupy(i)
	}
	require.Equal(t, 10, f.firstFree(0))
	require.Equal(t, 10, f.firstFree(3))
	f.occupy(10)
	require.Equal(t, 11, f.firstFree(0))
}

func TestFreeListGrow(t *testing.T) {
	f := newFreeList(4)
	for i := 0; i < 4; i++ {
		f.occupy(i)
	}
	f.grow(8)
	require.True(t, f.isFree(4))
	require.Equal(t, 4, f.firstFree(0))
}
