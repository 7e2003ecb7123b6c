package alloc

import "errors"

var (
	// ErrCapacityExceeded indicates a request larger than the allocator's
	// per-call size cap. Allocate/Resize return this without altering
	// state.
	ErrCapacityExceeded = errors.New("alloc: requested size exceeds allocator capacity")

	// ErrHeapExhausted indicates the heap provider refused to grow
	// further. Allocate/Resize return this without altering state.
	ErrHeapExhausted = errors.New("alloc: heap provider refused to grow")

	// ErrDoubleFree indicates Free was called on a block whose header
	// already has the free flag set.
	ErrDoubleFree = errors.New("alloc: double free")

	// ErrBadPointer indicates a pointer passed to Free or Resize whose
	// block offset lies outside the provider's region, or a Resize of a
	// block whose header is marked free. Pointer alignment is not checked.
	ErrBadPointer = errors.New("alloc: pointer not owned by this allocator")

	// ErrInvariant is wrapped by Check's returned error to report a
	// broken heap-wide invariant.
	ErrInvariant = errors.New("alloc: invariant violation")
)

// PanicOnViolation switches contract-violation handling (double free, bad
// pointer) from returning a sentinel error to panicking immediately, for
// debug builds that want to fail loudly at the call site instead of
// propagating a sentinel error. Off by default.
var PanicOnViolation = false

func (a *Allocator) violation(err error) error {
	if PanicOnViolation {
		panic(err)
	}
	return err
}
