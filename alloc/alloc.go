package alloc

import (
	"math"

	"github.com/arborist-go/heapalloc/internal/layout"
)

// Init resets the provider and the allocator's own state, then grows the
// provider by H bytes so the first real block's base lands at
// provider.Lo()+H, every payload pointer G-aligned (INV-1).
func (a *Allocator) Init() error {
	a.p.Init()
	a.resetBinState()
	a.stats = Stats{}

	if _, err := a.p.Grow(layout.H); err != nil {
		return err
	}
	a.tail = a.p.Hi() + 1
	return nil
}

// firstBlockBase is the base address of the heap's leftmost block.
func (a *Allocator) firstBlockBase() int32 {
	return a.p.Lo() + layout.H
}

// HeapLo forwards to the provider.
func (a *Allocator) HeapLo() int32 { return a.p.Lo() }

// HeapHi forwards to the provider.
func (a *Allocator) HeapHi() int32 { return a.p.Hi() }

// ResetBrk forwards to the provider.
func (a *Allocator) ResetBrk() { a.p.Reset() }

// Stats returns a snapshot of the allocator's instrumentation counters.
func (a *Allocator) Stats() Stats { return a.stats }

// Bytes exposes the provider's backing storage, so external collaborators
// (the validator, the invariant checker's callers) can inspect or seed
// payload bytes directly. The returned slice is only valid until the
// next Allocate/Resize call triggers a provider Grow.
func (a *Allocator) Bytes() []byte { return a.p.Bytes() }

// Allocate services a payload request of size bytes, returning a
// G-aligned payload pointer, or an error without altering state.
func (a *Allocator) Allocate(size int32) (int32, error) {
	a.stats.AllocCalls++

	if size < 0 {
		return 0, ErrCapacityExceeded
	}
	if int64(size) > layout.MaxAllocatable() {
		return 0, ErrCapacityExceeded
	}

	need64 := layout.AlignUp64(int64(size)+2*int64(layout.H), int64(layout.G))
	if need64 < int64(layout.MIN) {
		need64 = int64(layout.MIN)
	}
	if need64 > int64(math.MaxInt32) {
		return 0, ErrCapacityExceeded
	}

	return a.allocateSized(int32(need64))
}

// allocateSized searches the segregated free list first-fit starting from
// max(floor_bin, lo_bin), falling back to growing at the tail.
func (a *Allocator) allocateSized(need int32) (int32, error) {
	data := a.p.Bytes()

	floorBin := layout.BinOf(need)
	start := floorBin
	if a.loBin > start {
		start = a.loBin
	}

	for b := start; b <= a.hiBin; b++ {
		if off := a.findFit(data, b, need); off != NullRef {
			return a.serveFromFree(data, off, b, need)
		}
	}

	return a.growAtTail(need)
}

// serveFromFree carves a served block of need bytes out of the free
// block at off in bin b, splitting the leftover into a new free block
// when it exceeds the split threshold (INV-2: leftover at or below the
// threshold is left as internal fragmentation rather than split).
func (a *Allocator) serveFromFree(data []byte, off int32, b int, need int32) (int32, error) {
	size, _ := header(data, off)
	leftover := size - need
	a.remove(data, b, off)

	if leftover <= a.cfg.SplitThreshold {
		writeTags(data, off, size, false)
		a.stats.BytesAllocated += int64(size)
		return off + layout.H, nil
	}

	a.stats.SplitCount++
	writeTags(data, off, need, false)

	tailOff := off + need
	writeTags(data, tailOff, leftover, true)
	a.insert(data, layout.BinOf(leftover), tailOff)

	a.stats.BytesAllocated += int64(need)
	return off + layout.H, nil
}

// growAtTail serves need bytes from a brand-new block at the heap's
// logical tail.
func (a *Allocator) growAtTail(need int32) (int32, error) {
	base, err := a.tailGrow(need)
	if err != nil {
		return 0, err
	}

	data := a.p.Bytes()
	writeTags(data, base, need, false)
	a.stats.BytesAllocated += int64(need)
	return base + layout.H, nil
}
