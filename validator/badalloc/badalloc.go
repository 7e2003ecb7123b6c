// Package badalloc implements a deliberately non-conformant allocator: a
// reference for exercising the validator's fault detection, not a usable
// allocator. It is test-only.
package badalloc

import (
	"github.com/arborist-go/heapalloc/heap"
	"github.com/arborist-go/heapalloc/internal/layout"
)

// Fault selects which contract violation Allocate injects.
type Fault int

const (
	// FaultNone serves correctly: no injected fault. Useful as a control
	// case to confirm the validator passes a conformant sequence.
	FaultNone Fault = iota

	// FaultOversize overwrites the caller's requested size with a fixed
	// constant, regardless of what was asked for.
	FaultOversize

	// FaultOverlap returns the same pointer on every call after the
	// first, producing overlapping live payloads.
	FaultOverlap

	// FaultMisaligned skips the G alignment rounding.
	FaultMisaligned
)

// fixedSize is the constant FaultOversize substitutes for the caller's
// requested size.
const fixedSize int32 = 16

// Allocator is the reference faulty allocator. Free is a no-op and
// Resize always allocates fresh without copying, independent of which
// Fault is selected.
type Allocator struct {
	fault Fault
	mem   *heap.Mem

	hasLast bool
	lastPtr int32
}

// New returns a badalloc.Allocator backed by an in-memory region of the
// given byte ceiling, injecting fault.
func New(fault Fault, limit int32) *Allocator {
	return &Allocator{fault: fault, mem: heap.NewMem(limit)}
}

// Init resets the backing region and this allocator's bookkeeping.
func (a *Allocator) Init() {
	a.mem.Init()
	a.hasLast = false
}

// Allocate serves size bytes, injecting whichever fault this allocator
// was constructed with.
func (a *Allocator) Allocate(size int32) (int32, error) {
	reserve := size
	switch a.fault {
	case FaultOversize:
		reserve = fixedSize
	case FaultMisaligned:
		// No rounding: reserve exactly size bytes.
	default:
		reserve = layout.AlignUp(size, layout.G)
	}
	if reserve < 0 {
		reserve = 0
	}

	base, err := a.mem.Grow(reserve)
	if err != nil {
		return 0, err
	}

	ptr := base
	if a.fault == FaultOverlap && a.hasLast {
		ptr = a.lastPtr
	} else {
		a.hasLast = true
		a.lastPtr = base
	}
	return ptr, nil
}

// Free is a no-op: this allocator never reclaims memory.
func (a *Allocator) Free(ptr int32) error {
	return nil
}

// Resize always allocates fresh and never copies the old payload,
// regardless of the selected fault.
func (a *Allocator) Resize(ptr int32, size int32) (int32, error) {
	return a.Allocate(size)
}

// HeapLo forwards to the backing region.
func (a *Allocator) HeapLo() int32 { return a.mem.Lo() }

// HeapHi forwards to the backing region.
func (a *Allocator) HeapHi() int32 { return a.mem.Hi() }

// Bytes forwards to the backing region.
func (a *Allocator) Bytes() []byte { return a.mem.Bytes() }
