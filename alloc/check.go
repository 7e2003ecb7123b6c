package alloc

import (
	"fmt"

	"github.com/arborist-go/heapalloc/internal/layout"
)

// InvariantError names the heap-wide invariant that broke and the
// address at which it was detected.
type InvariantError struct {
	Kind string
	Addr int32
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("alloc: invariant violation: %s at offset %d", e.Kind, e.Addr)
}

func (e *InvariantError) Unwrap() error { return ErrInvariant }

func invariantf(addr int32, format string, args ...any) error {
	return &InvariantError{Kind: fmt.Sprintf(format, args...), Addr: addr}
}

// Check walks the heap and the free list, asserting tag coherence, block
// tiling, and free-list/bin agreement, and returns the first violation
// found (nil if none). Check is opt-in diagnostics: Allocate/Free/Resize
// never call it and assume invariants already hold.
func (a *Allocator) Check() error {
	data := a.p.Bytes()

	freeCount := make(map[int]int) // bin -> count of free blocks observed while walking blocks
	off := a.firstBlockBase()

	for off < a.tail {
		if off+layout.H > a.tail {
			return invariantf(off, "block header runs past tail")
		}

		size, free := header(data, off)
		if size < layout.MIN {
			return invariantf(off, "block size %d below MIN", size)
		}
		if size%layout.G != 0 {
			return invariantf(off, "block size %d not a multiple of G", size)
		}
		if off+size > a.tail {
			return invariantf(off, "block of size %d overruns tail", size)
		}

		footerWord := layout.ReadWord(data, footerOff(off, size))
		if layout.ReadWord(data, off) != footerWord {
			return invariantf(off, "header and footer disagree")
		}

		if free {
			freeCount[layout.BinOf(size)]++
		}

		off += size
	}
	if off != a.tail {
		return invariantf(off, "blocks do not tile exactly up to tail")
	}

	observedLo, observedHi := layout.BINS, -1
	for b := 0; b < layout.BINS; b++ {
		count := 0
		cur := a.bins[b]
		for cur != NullRef {
			size, free := header(data, cur)
			if !free {
				return invariantf(cur, "block linked in bin %d is not marked free", b)
			}
			if layout.BinOf(size) != b {
				return invariantf(cur, "block of size %d linked into wrong bin %d", size, b)
			}
			footerWord := layout.ReadWord(data, footerOff(cur, size))
			if layout.ReadWord(data, cur) != footerWord {
				return invariantf(cur, "free block header and footer disagree")
			}
			count++
			cur = nextLink(data, cur)
		}

		if count != freeCount[b] {
			return invariantf(int32(b), "bin %d free-list length %d disagrees with %d free blocks observed on the heap", b, count, freeCount[b])
		}
		if count > 0 {
			if b < observedLo {
				observedLo = b
			}
			if b > observedHi {
				observedHi = b
			}
		}
	}

	if observedLo != a.loBin {
		return invariantf(0, "loBin is %d, observed lowest nonempty bin is %d", a.loBin, observedLo)
	}
	if observedHi != a.hiBin {
		return invariantf(0, "hiBin is %d, observed highest nonempty bin is %d", a.hiBin, observedHi)
	}

	return nil
}
