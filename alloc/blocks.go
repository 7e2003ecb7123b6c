package alloc

import "github.com/arborist-go/heapalloc/internal/layout"

// A free block's payload holds its free-list link record in its first two
// 8-byte slots (INV-8): prevSlot at off+H, nextSlot at off+H+8.
const (
	prevSlotDelta = layout.H
	nextSlotDelta = layout.H + 8
)

// header reads the size/free-flag pair encoded in a block's header word.
func header(data []byte, off int32) (sizeBytes int32, free bool) {
	return layout.Decode(layout.ReadWord(data, off))
}

// footerOff returns the offset of a block's footer word given its base
// and total size.
func footerOff(off, sizeBytes int32) int32 {
	return off + sizeBytes - layout.H
}

// writeTags stamps both the header and footer of the block at off with
// the same encoded word, preserving the boundary-tag invariant.
func writeTags(data []byte, off, sizeBytes int32, free bool) {
	w := layout.Encode(sizeBytes, free)
	layout.WriteWord(data, off, w)
	layout.WriteWord(data, footerOff(off, sizeBytes), w)
}

// prevLink / nextLink read a free block's list links.
func prevLink(data []byte, off int32) int32 { return layout.ReadRef(data, off+prevSlotDelta) }
func nextLink(data []byte, off int32) int32 { return layout.ReadRef(data, off+nextSlotDelta) }

// setPrevLink / setNextLink write a free block's list links.
func setPrevLink(data []byte, off, ref int32) { layout.WriteRef(data, off+prevSlotDelta, ref) }
func setNextLink(data []byte, off, ref int32) { layout.WriteRef(data, off+nextSlotDelta, ref) }

// rightNeighbor returns the base of the block immediately to the right of
// the block at off, given its size.
func rightNeighbor(off, sizeBytes int32) int32 {
	return off + sizeBytes
}

// leftNeighbor inspects the footer immediately before off to find the
// base of the block to the left, if that block is free. ok is false when
// off is the heap's leftmost block (no footer exists before it) or when
// the left neighbor is in use.
//
// loLimit is provider.Lo()+H, the base of the heap's first block: reading
// a footer at off-H is only ever attempted when off is strictly past that
// point, so the never-written sentinel pad below the first block is never
// read as a prospective footer (INV-9).
func leftNeighbor(data []byte, off, loLimit int32) (base int32, ok bool) {
	if off <= loLimit {
		return 0, false
	}
	prevFooter := off - layout.H
	size, free := header(data, prevFooter)
	if !free {
		return 0, false
	}
	return off - size, true
}
