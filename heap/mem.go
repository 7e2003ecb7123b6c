package heap

// DefaultLimit is the region size ceiling used when NewMem is given a
// non-positive limit.
const DefaultLimit int32 = 1 << 30 // 1 GiB

// Mem is a reference Provider backed by a growable in-memory []byte. It
// simulates an OS-level heap limit via a configurable ceiling, so callers
// can exercise the allocator's HeapExhausted path without allocating real
// memory up to that ceiling.
type Mem struct {
	buf   []byte
	limit int32

	// growHook, when non-nil, is called at the start of every Grow, before
	// the limit check, with the requested size; used by tests to count or
	// fault-inject growth.
	growHook func(n int32) error
}

// NewMem creates an empty in-memory heap region with the given byte
// ceiling. A non-positive limit falls back to DefaultLimit.
func NewMem(limit int32) *Mem {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Mem{limit: limit}
}

// SetGrowHook installs a hook invoked at the start of every Grow call. If
// the hook returns a non-nil error, Grow fails with that error and the
// region is left unchanged. Pass nil to remove the hook.
func (m *Mem) SetGrowHook(hook func(n int32) error) {
	m.growHook = hook
}

func (m *Mem) Init() {
	m.buf = m.buf[:0]
}

func (m *Mem) Grow(n int32) (int32, error) {
	if n < 0 {
		panic("heap: Grow called with negative size")
	}
	if m.growHook != nil {
		if err := m.growHook(n); err != nil {
			return 0, err
		}
	}

	addr := int32(len(m.buf))
	newSize := int64(addr) + int64(n)
	if newSize > int64(m.limit) {
		return 0, ErrLimitExceeded
	}

	m.buf = append(m.buf, make([]byte, n)...)
	return addr, nil
}

func (m *Mem) Reset() {
	m.buf = nil
}

func (m *Mem) Lo() int32 {
	return 0
}

func (m *Mem) Hi() int32 {
	return int32(len(m.buf)) - 1
}

func (m *Mem) Size() int32 {
	return int32(len(m.buf))
}

func (m *Mem) Bytes() []byte {
	return m.buf
}

var _ Provider = (*Mem)(nil)
