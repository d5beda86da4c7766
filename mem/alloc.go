package mem

// Alloc returns n bytes of memory owned by the arena. The slice has length n,
// its capacity runs to the end of the block's usable space, and its first
// element is 16-byte aligned. Alloc returns nil for n <= 0.
//
// Requests up to SmallMax come from the chunk pool, requests below LargeMin
// from the buddy allocator, and everything else is mapped directly.
func (a *Arena) Alloc(n int) []byte {
	if n <= 0 {
		return nil
	}
	a.stats.AllocCalls++
	switch {
	case n <= a.cfg.SmallMax:
		return a.allocSmall(n)
	case n < a.cfg.LargeMin:
		return a.allocMedium(n)
	default:
		return a.allocLarge(n)
	}
}

// Free returns memory obtained from Alloc. The block's size and allocator are
// recovered from the slice's first element alone, so b may be resliced to any
// length as long as it still starts where Alloc's slice started. Free of a
// nil or zero-capacity slice is a no-op.
//
// Freeing a slice the arena did not hand out, freeing twice, or damaging the
// block's header or footer halts the arena.
func (a *Arena) Free(b []byte) {
	if cap(b) == 0 {
		return
	}
	h := a.inspect(addrOf(b))
	a.retire(h)
	a.stats.FreeCalls++
	switch h.Kind {
	case Small:
		a.releaseSmall(h)
	case Medium:
		a.releaseMedium(h)
	case Large:
		a.releaseLarge(h)
	}
}

// Inspect validates the block behind b and describes it. It halts the arena on
// the same conditions as Free.
func (a *Arena) Inspect(b []byte) Handle {
	return a.inspect(addrOf(b))
}
