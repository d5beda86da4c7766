package format

import "encoding/binary"

// Binary encoding utilities for block metadata.
//
// Metadata words are always little-endian. They are only read back by this
// module, so the choice is about having one fixed layout rather than matching
// the host.

// PutU64 writes a uint64 value to the buffer at the specified offset in little-endian format.
func PutU64(b []byte, off int, v uint64) {
	binary.LittleEndian.PutUint64(b[off:off+WordSize], v)
}

// ReadU64 reads a uint64 value from the buffer at the specified offset in little-endian format.
func ReadU64(b []byte, off int) uint64 {
	return binary.LittleEndian.Uint64(b[off : off+WordSize])
}

// PutAddr stores an address word. Free lists use it for their next links.
func PutAddr(b []byte, off int, addr uintptr) {
	PutU64(b, off, uint64(addr))
}

// ReadAddr loads an address word.
func ReadAddr(b []byte, off int) uintptr {
	return uintptr(ReadU64(b, off))
}
