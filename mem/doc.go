// Package mem implements a general-purpose allocator over raw memory obtained
// from the operating system.
//
// # Overview
//
// An Arena serves requests from three allocators chosen by size:
//
//   - Small (n <= SmallMax): fixed-size chunks from a free list threaded
//     through geometrically growing pools
//   - Medium (SmallMax < n < LargeMin): a binary buddy allocator with one
//     free list per power-of-two size class
//   - Large (n >= LargeMin): a dedicated mapping per block
//
// # Block Layout
//
// Every block carries a 16-byte header and a mirrored 16-byte footer:
//
//	+--------+--------+------------------------+--------+--------+
//	|  size  |  tag   |  user bytes ...        |  tag   |  size  |
//	+--------+--------+------------------------+--------+--------+
//	0        8        16                  size-16  size-8    size
//
// The tag is a hash of the block address with the allocator kind in its low
// two bits. Free recovers the block from the user pointer alone and halts if
// header and footer disagree, which catches most overflows into the footer,
// underflows into the header, double frees and foreign pointers.
//
// # Usage Example
//
//	a, err := mem.New(nil)
//	if err != nil {
//	    return err
//	}
//
//	b := a.Alloc(200) // medium: a 256-byte buddy block
//	copy(b, payload)
//	a.Free(b)
//
// # Buddy Growth
//
// The buddy arena starts empty. Each growth maps a block twice the size of the
// previous one (1<<FirstMediumExponent first), aligned to its own size so the
// buddy of a block of 1<<e bytes at addr is simply addr ^ 1<<e:
//
//	growth 0: 128 KiB block -> free[17]
//	growth 1: 256 KiB block -> free[18]
//
// Splitting on allocation pushes one buddy per level; release merges upward
// while the buddy is free, up to the size of the mapping the block came from.
// Small and medium mappings are never unmapped.
//
// # Failure
//
// Mapping failure and heap corruption are fatal. The arena logs the error,
// calls Config.OnFatal (which exits the process by default) and panics if the
// hook returns. Nothing is reported to callers as an error value.
//
// # Thread Safety
//
// Arena instances are not thread-safe. Use Safe, which serializes every
// operation behind one mutex, or give each goroutine its own Arena.
package mem
