package mem

import "fmt"

// allocSmall pops a chunk from the pool, growing the pool when it is empty.
func (a *Arena) allocSmall(n int) []byte {
	if n <= 0 || n > a.cfg.SmallMax {
		a.halt("small alloc", fmt.Errorf("%w: %d not in (0, %d]", ErrBadSize, n, a.cfg.SmallMax))
	}
	if a.chunks.empty() {
		a.growSmall()
	}
	base := a.chunks.pop(a)
	blk := a.stamp(base, uint64(a.cfg.ChunkSize()), Small)

	a.stats.SmallAllocs++
	a.stats.InUseBytes += int64(len(blk))
	return userSlice(blk, n)
}

// releaseSmall pushes the chunk back onto the pool. Chunks never merge.
func (a *Arena) releaseSmall(h Handle) {
	if h.Kind != Small || h.Size != uint64(a.cfg.ChunkSize()) {
		a.halt("small release", fmt.Errorf("%w: %v block of %d bytes in small pool", ErrCorrupt, h.Kind, h.Size))
	}
	a.chunks.push(a, h.Base)
	a.stats.InUseBytes -= int64(h.Size)
}
