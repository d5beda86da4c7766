package format

import "math/bits"

// Alignment and power-of-two helpers.

// Align16 returns n aligned up to the next 16-byte boundary.
//
// Example:
//
//	Align16(1)  = 16
//	Align16(16) = 16
//	Align16(17) = 32
func Align16(n int) int {
	return (n + AlignmentMask) & ^AlignmentMask
}

// AlignUp rounds addr up to the next multiple of align, which must be a power of two.
func AlignUp(addr, align uintptr) uintptr {
	return (addr + align - 1) &^ (align - 1)
}

// IsPow2 reports whether n is a positive power of two.
func IsPow2(n uint64) bool {
	return n != 0 && n&(n-1) == 0
}

// CeilLog2 returns the smallest e such that 1<<e >= n. It is the position of
// the highest set bit of n-1, so powers of two map to their own exponent.
//
// Example:
//
//	CeilLog2(1)   = 0
//	CeilLog2(2)   = 1
//	CeilLog2(3)   = 2
//	CeilLog2(128) = 7
//	CeilLog2(129) = 8
func CeilLog2(n uint64) int {
	if n <= 1 {
		return 0
	}
	return bits.Len64(n - 1)
}
