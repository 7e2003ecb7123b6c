// Package validator replays a trace of allocator operations against
// anything satisfying the Allocator interface and checks the properties
// a conformant allocator must hold: payload alignment, containment
// within the heap, pairwise non-overlap of live payloads, and that
// resize preserves payload bytes.
package validator

import (
	"encoding/json"
	"fmt"
)

// OpKind names one of the four trace operation kinds this package
// defines.
type OpKind int

const (
	OpAlloc OpKind = iota
	OpRealloc
	OpFree
	OpWrite
)

func (k OpKind) String() string {
	switch k {
	case OpAlloc:
		return "ALLOC"
	case OpRealloc:
		return "REALLOC"
	case OpFree:
		return "FREE"
	case OpWrite:
		return "WRITE"
	default:
		return fmt.Sprintf("OpKind(%d)", int(k))
	}
}

func parseOpKind(s string) (OpKind, error) {
	switch s {
	case "ALLOC":
		return OpAlloc, nil
	case "REALLOC":
		return OpRealloc, nil
	case "FREE":
		return OpFree, nil
	case "WRITE":
		return OpWrite, nil
	default:
		return 0, fmt.Errorf("validator: unknown op kind %q", s)
	}
}

// MarshalJSON encodes a kind as its name ("ALLOC", "REALLOC", ...) so
// trace files stay human-readable.
func (k OpKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

func (k *OpKind) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	kind, err := parseOpKind(s)
	if err != nil {
		return err
	}
	*k = kind
	return nil
}

// Op is one trace entry: ALLOC and REALLOC carry a payload Size, FREE
// and WRITE only identify the slot by Index. WRITE is opaque to the
// validator.
type Op struct {
	Kind  OpKind `json:"kind"`
	Index int    `json:"index"`
	Size  int32  `json:"size,omitempty"`
}

// Trace is an ordered sequence of operations to replay.
type Trace struct {
	Ops []Op `json:"ops"`
}
