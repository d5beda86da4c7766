package mem

import (
	"fmt"

	"github.com/joshuapare/memkit/internal/format"
)

// SizeClassFor returns the exponent of the smallest power of two that holds
// size bytes. Powers of two map to their own exponent.
func SizeClassFor(size uint64) int {
	return format.CeilLog2(size)
}

// firstFree returns the smallest non-empty size class at or above target, or
// -1 when every class up to TopExponent is empty.
func (a *Arena) firstFree(target int) int {
	for e := target; e < a.TopExponent(); e++ {
		if !a.free[e].empty() {
			return e
		}
	}
	return -1
}

// allocMedium takes the smallest free block that fits n bytes plus overhead,
// splitting larger blocks and growing the arena as needed.
func (a *Arena) allocMedium(n int) []byte {
	if n <= a.cfg.SmallMax || n >= a.cfg.LargeMin {
		a.halt("medium alloc", fmt.Errorf("%w: %d not in (%d, %d)", ErrBadSize, n, a.cfg.SmallMax, a.cfg.LargeMin))
	}
	target := SizeClassFor(uint64(n) + format.Overhead)

	found := a.firstFree(target)
	for found < 0 {
		a.growMedium()
		found = a.firstFree(target)
	}

	addr := a.free[found].pop(a)
	for found > target {
		found--
		a.free[found].push(a, addr^(1<<found))
		a.stats.Splits++
	}

	blk := a.stamp(addr, 1<<target, Medium)
	a.stats.MediumAllocs++
	a.stats.InUseBytes += int64(len(blk))
	return userSlice(blk, n)
}

// releaseMedium merges the block with its buddy for as long as the buddy is
// free, then files the result. Merging stops at the size of the mapping the
// block was carved from.
func (a *Arena) releaseMedium(h Handle) {
	e := SizeClassFor(h.Size)
	addr := h.Base
	r := a.sp.find(addr)
	if h.Kind != Medium || r == nil || r.kind != Medium || !format.IsPow2(h.Size) ||
		e > r.exp || addr&(1<<e-1) != 0 {
		a.halt("medium release", fmt.Errorf("%w: %v block %#x of %d bytes is not a buddy block", ErrCorrupt, h.Kind, addr, h.Size))
	}
	a.stats.InUseBytes -= int64(h.Size)

	for e < r.exp {
		buddy := addr ^ (1 << e)
		if !a.free[e].remove(a, buddy) {
			break
		}
		addr = min(addr, buddy)
		e++
		a.stats.Merges++
	}
	a.free[e].push(a, addr)
}
