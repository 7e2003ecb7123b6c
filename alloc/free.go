package alloc

import "github.com/arborist-go/heapalloc/internal/layout"

// Free releases the block backing the payload pointer ptr, coalescing
// with free physical neighbors and retreating the tail cursor when the
// freed span sits flush against it (INV-10). Freeing nil, an unowned
// pointer, or an already-free block is a contract violation. Free detects
// two cases: a block offset outside the provider's region (ErrBadPointer)
// and a block whose header already has the free flag set (ErrDoubleFree);
// by default it returns the sentinel error, and with PanicOnViolation set
// it panics instead. Other violations are not detected: a pointer into the
// middle of a live payload, or a second free of a block that was reclaimed
// by the tail cursor or merged into a free neighbor, since such a block's
// own header is never marked free.
func (a *Allocator) Free(ptr int32) error {
	a.stats.FreeCalls++

	off := ptr - layout.H
	if off < a.p.Lo() || off > a.p.Hi() {
		return a.violation(ErrBadPointer)
	}

	data := a.p.Bytes()
	size, free := header(data, off)
	if free {
		return a.violation(ErrDoubleFree)
	}

	loLimit := a.firstBlockBase()

	if base, ok := leftNeighbor(data, off, loLimit); ok {
		prevSize, _ := header(data, base)
		a.remove(data, layout.BinOf(prevSize), base)
		a.stats.CoalesceBackward++
		off = base
		size += prevSize
	}

	if off+size == a.tail {
		a.tail = off
		a.stats.TailReclaims++
		a.stats.BytesFreed += int64(size)
		return nil
	}

	next := rightNeighbor(off, size)
	if next < a.tail {
		nextSize, nextFree := header(data, next)
		if nextFree {
			a.remove(data, layout.BinOf(nextSize), next)
			a.stats.CoalesceForward++
			size += nextSize
		}
	}

	writeTags(data, off, size, true)
	a.insert(data, layout.BinOf(size), off)
	a.stats.BytesFreed += int64(size)
	return nil
}
