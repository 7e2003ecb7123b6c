package alloc

import (
	"github.com/arborist-go/heapalloc/heap"
	"github.com/arborist-go/heapalloc/internal/layout"
)

// NullRef is the sentinel free-list link value meaning "no block."
const NullRef int32 = -1

// Config tunes an Allocator's behavior. The zero value is not usable;
// construct one with DefaultConfig or New's nil-config fallback.
type Config struct {
	// SplitThreshold is the leftover size, in bytes, at or below which
	// Allocate will not split a free block (INV-2).
	SplitThreshold int32
}

// DefaultConfig returns the allocator's default tunables.
func DefaultConfig() Config {
	return Config{SplitThreshold: layout.DefaultSplitThreshold}
}

// Stats holds allocator instrumentation, exposed for tests and callers
// that want visibility into allocator behavior. It is not part of the
// allocate/free/resize contract.
type Stats struct {
	GrowCalls        int
	GrowBytes        int64
	AllocCalls       int
	FreeCalls        int
	ResizeCalls      int
	BytesAllocated   int64
	BytesFreed       int64
	SplitCount       int
	CoalesceForward  int
	CoalesceBackward int
	TailReclaims     int
}

// Allocator is a single-threaded, boundary-tag, segregated free-list
// allocator over a heap.Provider-owned region. It is not safe for
// concurrent use; wrap it in an external mutex if multiple goroutines
// must share one instance.
type Allocator struct {
	p   heap.Provider
	cfg Config

	bins  [layout.BINS]int32 // head offset per bin, or NullRef
	loBin int
	hiBin int
	tail  int32

	stats Stats
}

// New creates an Allocator over p with the given config. A nil config
// falls back to DefaultConfig. Callers must still call Init before using
// the allocator.
func New(p heap.Provider, cfg *Config) *Allocator {
	c := DefaultConfig()
	if cfg != nil {
		c = *cfg
	}
	a := &Allocator{p: p, cfg: c}
	a.resetBinState()
	return a
}

func (a *Allocator) resetBinState() {
	for i := range a.bins {
		a.bins[i] = NullRef
	}
	a.loBin = layout.BINS
	a.hiBin = -1
}
