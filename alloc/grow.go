package alloc

// tailGrow advances the tail cursor by n bytes, growing the underlying
// provider only when the cursor would otherwise pass the provider's
// physical end. Returns the old tail (the base of the n-byte span), or an
// error if the provider refuses to grow — in which case neither the
// cursor nor the provider are changed (INV-7: growth is idempotent
// across the allocator's repeated expansion and contraction at the
// tail).
func (a *Allocator) tailGrow(n int32) (int32, error) {
	old := a.tail
	newTail := old + n
	physicalEnd := a.p.Hi() + 1

	if newTail <= physicalEnd {
		a.tail = newTail
		return old, nil
	}

	needed := newTail - physicalEnd
	if _, err := a.p.Grow(needed); err != nil {
		return 0, ErrHeapExhausted
	}

	a.stats.GrowCalls++
	a.stats.GrowBytes += int64(needed)
	a.tail = newTail
	debugLogf("tailGrow(%d): provider grew by %d bytes, tail now %d", n, needed, a.tail)
	return old, nil
}
