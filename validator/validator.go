package validator

import (
	"fmt"

	"github.com/arborist-go/heapalloc/internal/layout"
)

// Allocator is the minimal surface the validator needs to replay a trace
// against either the real allocator or a reference faulty one.
type Allocator interface {
	Allocate(size int32) (int32, error)
	Free(ptr int32) error
	Resize(ptr int32, size int32) (int32, error)
	HeapLo() int32
	HeapHi() int32
	Bytes() []byte
}

// live tracks one in-flight ALLOC/REALLOC's payload so FREE and later
// REALLOCs can find it, and so non-overlap can be checked against every
// other currently-live payload.
type live struct {
	ptr  int32
	size int32
}

// Validator replays a Trace and reports the first property violation it
// finds.
type Validator struct {
	byIndex map[int]live
}

// New returns a Validator with no live allocations.
func New() *Validator {
	return &Validator{byIndex: make(map[int]live)}
}

// Run replays every operation in tr against a in order, stopping at the
// first violation. A clean run returns nil.
func (v *Validator) Run(a Allocator, tr Trace) error {
	for i, op := range tr.Ops {
		var err error
		switch op.Kind {
		case OpAlloc:
			err = v.doAlloc(a, op)
		case OpRealloc:
			err = v.doRealloc(a, op)
		case OpFree:
			err = v.doFree(a, op)
		case OpWrite:
			// Opaque to the validator: no property to check.
		default:
			err = fmt.Errorf("unknown op kind %v", op.Kind)
		}
		if err != nil {
			return fmt.Errorf("validator: op %d (%s idx=%d size=%d): %w", i, op.Kind, op.Index, op.Size, err)
		}
	}
	return nil
}

func (v *Validator) doAlloc(a Allocator, op Op) error {
	ptr, err := a.Allocate(op.Size)
	if err != nil {
		return err
	}
	if err := v.checkFresh(a, op.Index, ptr, op.Size); err != nil {
		return err
	}
	v.seed(a, ptr, op.Size)
	v.byIndex[op.Index] = live{ptr: ptr, size: op.Size}
	return nil
}

func (v *Validator) doRealloc(a Allocator, op Op) error {
	old, ok := v.byIndex[op.Index]
	if !ok {
		return fmt.Errorf("realloc of index %d with no live allocation", op.Index)
	}

	// Record the bytes currently at old.ptr before the resize call may
	// relocate or overwrite them, so we can check them against the
	// pattern we seeded when old.ptr was (re-)seeded.
	preserveLen := old.size
	if op.Size < preserveLen {
		preserveLen = op.Size
	}
	expected := make([]byte, preserveLen)
	copy(expected, a.Bytes()[old.ptr:old.ptr+preserveLen])

	newPtr, err := a.Resize(old.ptr, op.Size)
	if err != nil {
		return err
	}

	data := a.Bytes()
	for j := int32(0); j < preserveLen; j++ {
		if data[newPtr+j] != expected[j] {
			return fmt.Errorf("payload byte %d not preserved across resize: want 0x%02x, got 0x%02x", j, expected[j], data[newPtr+j])
		}
	}

	delete(v.byIndex, op.Index)
	if err := v.checkFresh(a, op.Index, newPtr, op.Size); err != nil {
		return err
	}
	v.seed(a, newPtr, op.Size)
	v.byIndex[op.Index] = live{ptr: newPtr, size: op.Size}
	return nil
}

func (v *Validator) doFree(a Allocator, op Op) error {
	block, ok := v.byIndex[op.Index]
	if !ok {
		return fmt.Errorf("free of index %d with no live allocation", op.Index)
	}
	delete(v.byIndex, op.Index)
	return a.Free(block.ptr)
}

// checkFresh verifies the three per-allocation properties a conformant
// allocator must satisfy for a just-(re)allocated payload: alignment,
// containment within [HeapLo, HeapHi], and non-overlap with every other
// currently-live payload (excludeIndex is omitted from the comparison,
// since a REALLOC has already removed its old entry by the time this
// runs).
func (v *Validator) checkFresh(a Allocator, excludeIndex int, ptr, size int32) error {
	if ptr%layout.G != 0 {
		return fmt.Errorf("payload pointer %d is not %d-aligned", ptr, layout.G)
	}

	lo, hi := a.HeapLo(), a.HeapHi()
	last := ptr + size - 1
	if size > 0 && (ptr < lo || last > hi) {
		return fmt.Errorf("payload [%d, %d] escapes heap bounds [%d, %d]", ptr, last, lo, hi)
	}

	for idx, other := range v.byIndex {
		if idx == excludeIndex {
			continue
		}
		if rangesOverlap(ptr, size, other.ptr, other.size) {
			return fmt.Errorf("payload [%d, %d) overlaps live index %d's payload [%d, %d)", ptr, ptr+size, idx, other.ptr, other.ptr+other.size)
		}
	}
	return nil
}

func rangesOverlap(aPtr, aSize, bPtr, bSize int32) bool {
	if aSize == 0 || bSize == 0 {
		return false
	}
	return aPtr < bPtr+bSize && bPtr < aPtr+aSize
}

// seed writes a deterministic, address-derived pattern into a payload so
// a later REALLOC can verify copy fidelity.
func (v *Validator) seed(a Allocator, ptr, size int32) {
	data := a.Bytes()
	for j := int32(0); j < size; j++ {
		data[ptr+j] = seedByte(ptr, j)
	}
}

func seedByte(ptr, offset int32) byte {
	return byte((ptr*31 + offset*7) ^ 0x5A)
}
