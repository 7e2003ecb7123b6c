package layout

import "encoding/binary"

// ReadWord reads a little-endian 32-bit header/footer word at off.
func ReadWord(data []byte, off int32) uint32 {
	return binary.LittleEndian.Uint32(data[off : off+4])
}

// WriteWord writes a little-endian 32-bit header/footer word at off.
func WriteWord(data []byte, off int32, w uint32) {
	binary.LittleEndian.PutUint32(data[off:off+4], w)
}

// ReadRef reads a 4-byte free-list link (a block offset, or NullRef) from
// an 8-byte link slot. Only the low 4 bytes are meaningful; the slot is
// kept 8 bytes wide to match the two-machine-word link record the spec's
// minimum block size (MIN=24) accounts for.
func ReadRef(data []byte, slotOff int32) int32 {
	return int32(binary.LittleEndian.Uint32(data[slotOff : slotOff+4]))
}

// WriteRef writes a 4-byte free-list link into an 8-byte link slot,
// zeroing the unused high word.
func WriteRef(data []byte, slotOff int32, ref int32) {
	binary.LittleEndian.PutUint32(data[slotOff:slotOff+4], uint32(ref))
	binary.LittleEndian.PutUint32(data[slotOff+4:slotOff+8], 0)
}
