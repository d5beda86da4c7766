package mem

import (
	"fmt"
	"math"

	"github.com/joshuapare/memkit/internal/format"
)

// allocLarge maps a dedicated region for the block.
func (a *Arena) allocLarge(n int) []byte {
	if n < a.cfg.LargeMin || n > math.MaxInt-format.Overhead {
		a.halt("large alloc", fmt.Errorf("%w: %d", ErrBadSize, n))
	}
	size := n + format.Overhead
	data := a.mapRegion(size, "large alloc")
	r := newRegion(data, 0, size, Large)
	a.sp.add(r)

	blk := a.stamp(r.base, uint64(size), Large)
	a.stats.LargeAllocs++
	a.stats.InUseBytes += int64(size)
	return userSlice(blk, n)
}

// releaseLarge unregisters and unmaps the block's region.
func (a *Arena) releaseLarge(h Handle) {
	r := a.sp.find(h.Base)
	if h.Kind != Large || r == nil || r.kind != Large || r.base != h.Base || uint64(len(r.data)) != h.Size {
		a.halt("large release", fmt.Errorf("%w: %v block %#x does not own a mapping", ErrCorrupt, h.Kind, h.Base))
	}
	a.sp.remove(r)
	if err := a.cfg.Mapper.Unmap(r.mapping); err != nil {
		a.halt("large release", fmt.Errorf("%w: %w", ErrUnmapFailed, err))
	}
	a.stats.Unmaps++
	a.stats.MappedBytes -= int64(len(r.mapping))
	a.stats.InUseBytes -= int64(h.Size)
}
