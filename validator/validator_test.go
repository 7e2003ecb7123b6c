package validator_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arborist-go/heapalloc/alloc"
	"github.com/arborist-go/heapalloc/heap"
	"github.com/arborist-go/heapalloc/validator"
	"github.com/arborist-go/heapalloc/validator/badalloc"
)

func newRealAllocator(t *testing.T) *alloc.Allocator {
	t.Helper()
	p := heap.NewMem(1 << 20)
	a := alloc.New(p, nil)
	require.NoError(t, a.Init())
	return a
}

func TestValidatorPassesConformantTrace(t *testing.T) {
	a := newRealAllocator(t)
	v := validator.New()

	tr := validator.Trace{Ops: []validator.Op{
		{Kind: validator.OpAlloc, Index: 0, Size: 32},
		{Kind: validator.OpAlloc, Index: 1, Size: 64},
		{Kind: validator.OpRealloc, Index: 0, Size: 256},
		{Kind: validator.OpWrite, Index: 1},
		{Kind: validator.OpFree, Index: 1},
		{Kind: validator.OpRealloc, Index: 0, Size: 8},
		{Kind: validator.OpFree, Index: 0},
	}}

	require.NoError(t, v.Run(a, tr))
}

func TestValidatorRandomTraceAgainstRealAllocator(t *testing.T) {
	// Grounded on the teacher's fixed-seed randomized replay pattern
	// (hive/alloc fuzz_property_test.go): deterministic rng, alloc/free
	// mix, invariant check after every step.
	a := newRealAllocator(t)
	v := validator.New()
	rng := rand.New(rand.NewSource(7))

	live := map[int]bool{}
	nextIndex := 0
	var ops []validator.Op

	for step := 0; step < 200; step++ {
		switch {
		case len(live) == 0 || rng.Intn(3) != 0:
			idx := nextIndex
			nextIndex++
			size := int32(1 + rng.Intn(512))
			ops = append(ops, validator.Op{Kind: validator.OpAlloc, Index: idx, Size: size})
			live[idx] = true
		case rng.Intn(2) == 0:
			idx := pickLive(live, rng)
			size := int32(1 + rng.Intn(512))
			ops = append(ops, validator.Op{Kind: validator.OpRealloc, Index: idx, Size: size})
		default:
			idx := pickLive(live, rng)
			ops = append(ops, validator.Op{Kind: validator.OpFree, Index: idx})
			delete(live, idx)
		}

		require.NoError(t, v.Run(a, validator.Trace{Ops: ops[len(ops)-1:]}), "step %d", step)
		require.NoError(t, a.Check(), "step %d", step)
	}
}

func pickLive(live map[int]bool, rng *rand.Rand) int {
	n := rng.Intn(len(live))
	i := 0
	for idx := range live {
		if i == n {
			return idx
		}
		i++
	}
	panic("unreachable")
}

func TestValidatorDetectsOversizeFault(t *testing.T) {
	a := badalloc.New(badalloc.FaultOversize, 1<<16)
	a.Init()
	v := validator.New()

	tr := validator.Trace{Ops: []validator.Op{
		{Kind: validator.OpAlloc, Index: 0, Size: 32},
		{Kind: validator.OpAlloc, Index: 1, Size: 32},
	}}

	err := v.Run(a, tr)
	assert.Error(t, err, "oversize fault reserves only 16 bytes, so the first 32-byte payload already escapes the heap bounds")
}

func TestValidatorDetectsOverlapFault(t *testing.T) {
	a := badalloc.New(badalloc.FaultOverlap, 1<<16)
	a.Init()
	v := validator.New()

	tr := validator.Trace{Ops: []validator.Op{
		{Kind: validator.OpAlloc, Index: 0, Size: 16},
		{Kind: validator.OpAlloc, Index: 1, Size: 16},
	}}

	err := v.Run(a, tr)
	assert.Error(t, err, "overlap fault returns the same pointer twice")
}

func TestValidatorDetectsMisalignedFault(t *testing.T) {
	a := badalloc.New(badalloc.FaultMisaligned, 1<<16)
	a.Init()
	v := validator.New()

	tr := validator.Trace{Ops: []validator.Op{
		{Kind: validator.OpAlloc, Index: 0, Size: 3},
		{Kind: validator.OpAlloc, Index: 1, Size: 5},
	}}

	err := v.Run(a, tr)
	assert.Error(t, err, "misaligned fault skips G rounding, so the second payload pointer lands off-alignment")
}

func TestValidatorAcceptsFaultFreeControl(t *testing.T) {
	a := badalloc.New(badalloc.FaultNone, 1<<16)
	a.Init()
	v := validator.New()

	tr := validator.Trace{Ops: []validator.Op{
		{Kind: validator.OpAlloc, Index: 0, Size: 32},
		{Kind: validator.OpAlloc, Index: 1, Size: 32},
		{Kind: validator.OpFree, Index: 0},
	}}

	require.NoError(t, v.Run(a, tr), "an unfaulted badalloc.Allocator must still pass the validator")
}
