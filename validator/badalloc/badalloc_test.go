package badalloc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arborist-go/heapalloc/validator/badalloc"
)

func TestFaultNoneRoundsUpAndAdvances(t *testing.T) {
	a := badalloc.New(badalloc.FaultNone, 4096)
	a.Init()

	p1, err := a.Allocate(3)
	require.NoError(t, err)
	assert.Zero(t, p1%8)

	p2, err := a.Allocate(3)
	require.NoError(t, err)
	assert.NotEqual(t, p1, p2)
	assert.Zero(t, p2%8)
}

func TestFaultOversizeIgnoresRequestedSize(t *testing.T) {
	a := badalloc.New(badalloc.FaultOversize, 4096)
	a.Init()

	p1, err := a.Allocate(1000)
	require.NoError(t, err)
	p2, err := a.Allocate(1000)
	require.NoError(t, err)

	assert.Equal(t, int32(16), p2-p1, "each allocation must only reserve the fixed constant, not the requested size")
}

func TestFaultOverlapReturnsSamePointer(t *testing.T) {
	a := badalloc.New(badalloc.FaultOverlap, 4096)
	a.Init()

	p1, err := a.Allocate(16)
	require.NoError(t, err)
	p2, err := a.Allocate(16)
	require.NoError(t, err)

	assert.Equal(t, p1, p2)
}

func TestFaultMisalignedSkipsRounding(t *testing.T) {
	a := badalloc.New(badalloc.FaultMisaligned, 4096)
	a.Init()

	_, err := a.Allocate(3)
	require.NoError(t, err)
	p2, err := a.Allocate(1)
	require.NoError(t, err)

	assert.Equal(t, int32(3), p2, "with no alignment rounding the second block starts immediately after the 3-byte first one")
}

func TestFreeIsNoopAndResizeNeverCopies(t *testing.T) {
	a := badalloc.New(badalloc.FaultNone, 4096)
	a.Init()

	p, err := a.Allocate(8)
	require.NoError(t, err)
	a.Bytes()[p] = 0xAB

	require.NoError(t, a.Free(p), "Free is always a no-op")

	q, err := a.Resize(p, 64)
	require.NoError(t, err)
	assert.NotEqual(t, byte(0xAB), a.Bytes()[q], "Resize never copies the old payload")
}
