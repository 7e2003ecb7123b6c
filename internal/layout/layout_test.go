package layout_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arborist-go/heapalloc/internal/layout"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	cases := []struct {
		size int32
		free bool
	}{
		{layout.MIN, false},
		{layout.MIN, true},
		{800, false},
		{4096, true},
		{layout.G * 2, false},
	}

	for _, c := range cases {
		w := layout.Encode(c.size, c.free)
		gotSize, gotFree := layout.Decode(w)
		assert.Equal(t, c.size, gotSize)
		assert.Equal(t, c.free, gotFree)
	}
}

func TestFreeBitIsSignBit(t *testing.T) {
	w := layout.Encode(layout.MIN, true)
	assert.NotZero(t, w&layout.FreeBit)

	w2 := layout.Encode(layout.MIN, false)
	assert.Zero(t, w2&layout.FreeBit)
}

func TestAlignUp(t *testing.T) {
	assert.Equal(t, int32(8), layout.AlignUp(1, layout.G))
	assert.Equal(t, int32(8), layout.AlignUp(8, layout.G))
	assert.Equal(t, int32(16), layout.AlignUp(9, layout.G))
	assert.Equal(t, int32(24), layout.AlignUp(24, layout.G))
}

func TestBinOf(t *testing.T) {
	// bin_of(S) = floor(log2(S/G)); G=8.
	cases := []struct {
		size int32
		bin  int
	}{
		{8, 0},
		{15, 0},
		{16, 1},
		{24, 1}, // MIN lands in bin 1, per the spec's open question on bin 0.
		{31, 1},
		{32, 2},
		{63, 2},
		{64, 3},
		{800, 6},
	}

	for _, c := range cases {
		got := layout.BinOf(c.size)
		require.Equalf(t, c.bin, got, "BinOf(%d)", c.size)
	}
}

func TestReadWriteWord(t *testing.T) {
	buf := make([]byte, 16)
	layout.WriteWord(buf, 4, 0xDEADBEEF)
	assert.Equal(t, uint32(0xDEADBEEF), layout.ReadWord(buf, 4))
}

func TestReadWriteRef(t *testing.T) {
	buf := make([]byte, 16)
	layout.WriteRef(buf, 0, -1)
	assert.Equal(t, int32(-1), layout.ReadRef(buf, 0))

	layout.WriteRef(buf, 8, 4096)
	assert.Equal(t, int32(4096), layout.ReadRef(buf, 8))
}

func TestMaxAllocatable(t *testing.T) {
	assert.Equal(t, int64(layout.G)<<layout.BINS, layout.MaxAllocatable())
}
