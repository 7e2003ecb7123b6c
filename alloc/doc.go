// Package alloc implements a single-threaded, boundary-tag allocator over
// a monotonically-growing heap.Provider region.
//
// # Overview
//
// Every block carries a header and footer word encoding its size and free
// flag (internal/layout); free blocks are threaded into a segregated free
// list of BINS doubly-linked lists indexed by floor(log2(size/G)), with
// lo_bin/hi_bin tracking the nonempty range for O(1)-amortized bin scans.
// A tail cursor tracks the allocator's logical end of heap, which may sit
// below the provider's physical end so that LIFO-freed memory at the edge
// of the heap never needs a free-list entry at all.
//
// # Allocator Interface
//
//   - Init(): bootstrap a fresh allocator over a fresh provider.
//   - Allocate(size): first-fit a free block, splitting or growing at the
//     tail as needed.
//   - Free(ptr): coalesce with free physical neighbors and retreat the
//     tail when possible.
//   - Resize(ptr, size): in-place shrink/no-op, in-place tail growth, or
//     allocate-copy-free.
//   - Check(): walk the heap and free list, verifying tag coherence,
//     block tiling, and free-list/bin agreement.
//
// # Usage Example
//
//	p := heap.NewMem(1 << 20)
//	a := alloc.New(p, nil)
//	if err := a.Init(); err != nil {
//	    return err
//	}
//
//	ptr, err := a.Allocate(64)
//	if err != nil {
//	    return err
//	}
//
//	if err := a.Free(ptr); err != nil {
//	    return err
//	}
//
// # Thread Safety
//
// An Allocator is not safe for concurrent use. Wrap it in an external
// mutex if multiple goroutines must share one instance.
package alloc
