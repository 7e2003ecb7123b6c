package alloc

import (
	"math"

	"github.com/arborist-go/heapalloc/internal/layout"
)

// Resize changes the payload size backing ptr, returning the (possibly
// new) payload pointer, or an error without touching ptr's block.
// Resize-down and in-place-shrink are no-ops that return ptr unchanged;
// growth resizes in place at the tail when possible, else allocates
// fresh, copies, and frees the old block.
//
// new_size is computed with a single header's worth of overhead (+H),
// not the two headers' worth (+2H) Allocate reserves (INV-3); the
// shrink-or-no-op comparison and the copy length below both use this
// convention deliberately, not as a bug to be "fixed" to +2H —
// TestResizeAccountingAsymmetry pins the resulting no-op-on-resize
// behavior for a payload size whose original block reserved +2H.
func (a *Allocator) Resize(ptr int32, size int32) (int32, error) {
	a.stats.ResizeCalls++

	off := ptr - layout.H
	if off < a.p.Lo() || off > a.p.Hi() {
		return 0, a.violation(ErrBadPointer)
	}

	data := a.p.Bytes()
	oldTotal, free := header(data, off)
	if free {
		return 0, a.violation(ErrBadPointer)
	}

	if size < 0 {
		return 0, ErrCapacityExceeded
	}
	if int64(size) > layout.MaxAllocatable() {
		return 0, ErrCapacityExceeded
	}

	newSize64 := layout.AlignUp64(int64(size)+int64(layout.H), int64(layout.G))
	if newSize64 > int64(math.MaxInt32) {
		return 0, ErrCapacityExceeded
	}
	newSize := int32(newSize64)

	if newSize <= oldTotal {
		return ptr, nil
	}

	if off+oldTotal == a.tail {
		delta := newSize - oldTotal
		if _, err := a.tailGrow(delta); err != nil {
			return 0, err
		}
		data = a.p.Bytes()
		writeTags(data, off, newSize, false)
		return ptr, nil
	}

	newPtr, err := a.Allocate(size)
	if err != nil {
		return 0, err
	}

	data = a.p.Bytes()
	newOff := newPtr - layout.H
	preserved := oldTotal - layout.H
	copy(data[newOff+layout.H:newOff+layout.H+preserved], data[off+layout.H:off+layout.H+preserved])

	if err := a.Free(ptr); err != nil {
		return 0, err
	}
	return newPtr, nil
}
