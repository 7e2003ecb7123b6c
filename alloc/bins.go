package alloc

import "github.com/arborist-go/heapalloc/internal/layout"

// insert prepends the free block at off to bin b's doubly-linked list and
// widens [loBin, hiBin] to include b.
func (a *Allocator) insert(data []byte, b int, off int32) {
	head := a.bins[b]
	setPrevLink(data, off, NullRef)
	setNextLink(data, off, head)
	if head != NullRef {
		setPrevLink(data, head, off)
	}
	a.bins[b] = off

	if b > a.hiBin {
		a.hiBin = b
	}
	if b < a.loBin {
		a.loBin = b
	}
}

// remove splices the free block at off out of bin b's list, then
// re-tightens loBin/hiBin if b was an extremum and is now empty (INV-6).
func (a *Allocator) remove(data []byte, b int, off int32) {
	prev := prevLink(data, off)
	next := nextLink(data, off)

	if prev == NullRef {
		a.bins[b] = next
	} else {
		setNextLink(data, prev, next)
	}
	if next != NullRef {
		setPrevLink(data, next, prev)
	}

	if a.bins[b] == NullRef {
		if b == a.hiBin {
			a.shrinkHiBin()
		}
		if b == a.loBin {
			a.growLoBin()
		}
	}
}

// shrinkHiBin scans downward from the current hiBin to find the new
// highest nonempty bin, or -1 if none remain.
func (a *Allocator) shrinkHiBin() {
	for b := a.hiBin; b >= a.loBin; b-- {
		if a.bins[b] != NullRef {
			a.hiBin = b
			return
		}
	}
	a.hiBin = -1
}

// growLoBin scans upward from the current loBin to find the new lowest
// nonempty bin, or BINS if none remain.
func (a *Allocator) growLoBin() {
	hi := a.hiBin
	if hi < 0 {
		hi = layout.BINS - 1
	}
	for b := a.loBin; b <= hi; b++ {
		if a.bins[b] != NullRef {
			a.loBin = b
			return
		}
	}
	a.loBin = layout.BINS
}

// findFit walks bin b's free list first-fit, returning the first block
// whose size is >= need, or NullRef if none fits.
func (a *Allocator) findFit(data []byte, b int, need int32) int32 {
	cur := a.bins[b]
	for cur != NullRef {
		size, _ := header(data, cur)
		if size >= need {
			return cur
		}
		cur = nextLink(data, cur)
	}
	return NullRef
}
