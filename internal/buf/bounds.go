// Package buf contains bounds-checked slicing helpers. Every read or write the
// allocator makes into mapped memory goes through one of these first.
package buf

import "math"

// AddOverflowSafe adds a and b, returning ok = false when the result would overflow int.
func AddOverflowSafe(a, b int) (int, bool) {
	switch {
	case b > 0 && a > math.MaxInt-b:
		return 0, false
	case b < 0 && a < math.MinInt-b:
		return 0, false
	default:
		return a + b, true
	}
}

// AddrEnd returns addr+n, with ok = false when the sum wraps the address space.
func AddrEnd(addr uintptr, n uint64) (uintptr, bool) {
	if n > uint64(^uintptr(0)-addr) {
		return 0, false
	}
	return addr + uintptr(n), true
}

// Slice returns the sub-slice [off:off+n] if it fits within len(b).
func Slice(b []byte, off, n int) ([]byte, bool) {
	if off < 0 || n < 0 || off > len(b) {
		return nil, false
	}
	end, ok := AddOverflowSafe(off, n)
	if !ok || end > len(b) {
		return nil, false
	}
	return b[off:end], true
}
