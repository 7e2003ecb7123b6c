// Package layout defines the on-heap block encoding shared by the allocator
// and its invariant checker: header/footer words, alignment, and the
// size-class (bin) arithmetic used to index the segregated free list.
//
// Blocks are addressed as absolute int32 offsets into a provider-owned
// []byte region rather than raw pointers; this mirrors how the reference
// corpus models an in-process binary region (offset + []byte, not
// unsafe.Pointer) and keeps every operation bounds-checkable.
package layout

import "math/bits"

const (
	// G is the allocator's granularity and payload alignment, in bytes.
	G int32 = 8

	// H is the size of a header or footer word, in bytes.
	H int32 = 4

	// MIN is the minimum total block size in bytes: header + two 8-byte
	// free-list link slots + footer, sized for a 64-bit link record even
	// though offsets themselves fit in 32 bits.
	MIN int32 = 24

	// BINS is the number of size-class bins in the segregated free list.
	BINS = 28

	// FreeBit is the most significant bit of a header/footer word, set
	// when the block it describes is free.
	FreeBit uint32 = 1 << 31

	// DefaultSplitThreshold is the default leftover size, in bytes, at or
	// below which Allocate will not split a free block.
	DefaultSplitThreshold int32 = 64
)

// Encode packs a block size and free flag into a header/footer word.
func Encode(sizeBytes int32, free bool) uint32 {
	w := uint32(sizeBytes) / uint32(G)
	if free {
		w |= FreeBit
	}
	return w
}

// Decode unpacks a header/footer word into a block size and free flag.
func Decode(word uint32) (sizeBytes int32, free bool) {
	free = word&FreeBit != 0
	sizeBytes = int32(word&^FreeBit) * G
	return sizeBytes, free
}

// AlignUp rounds n up to the nearest multiple of align, which must be a
// power of two.
func AlignUp(n, align int32) int32 {
	return (n + align - 1) &^ (align - 1)
}

// AlignUp64 is AlignUp over int64, used where a size computation could
// overflow int32 before the final range check.
func AlignUp64(n, align int64) int64 {
	return (n + align - 1) &^ (align - 1)
}

// BinOf returns the size-class index for a free block of sizeBytes, per
// bin_of(S) = floor(log2(S/G)) = floor(log2(S)) - 3. Defined only for
// sizeBytes >= G.
func BinOf(sizeBytes int32) int {
	return bits.Len32(uint32(sizeBytes)) - 1 - 3
}

// MaxAllocatable is the largest request Allocate will service: the top of
// the highest bin's range, G * 2^BINS.
func MaxAllocatable() int64 {
	return int64(G) << BINS
}
