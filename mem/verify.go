package mem

import (
	"fmt"
	"sort"
)

// Verify walks the chunk pool and every buddy free list and checks the
// structural invariants the allocators rely on:
//
//   - every free block lies inside a mapping of the matching kind
//   - chunks sit on chunk boundaries of their pool
//   - a buddy block of 1<<e bytes is aligned to 1<<e and e < TopExponent
//   - no two free blocks overlap
//   - no free block has a free buddy of the same size (coalescing is eager)
//   - every list has exactly as many entries as its count
//
// Unlike Free and Alloc, Verify reports problems as an error wrapping
// ErrCorrupt instead of halting, so tools and tests can inspect a damaged heap.
func (a *Arena) Verify() error {
	type span struct{ lo, hi uintptr }
	var spans []span

	chunk := uintptr(a.cfg.ChunkSize())
	err := a.walk(&a.chunks, func(addr uintptr) error {
		r := a.sp.find(addr)
		if r == nil || r.kind != Small {
			return fmt.Errorf("chunk %#x outside the small pool", addr)
		}
		if (addr-r.base)%chunk != 0 || addr+chunk > r.end() {
			return fmt.Errorf("chunk %#x not on a chunk boundary", addr)
		}
		spans = append(spans, span{addr, addr + chunk})
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: chunk pool: %w", ErrCorrupt, err)
	}

	free := make(map[uintptr]int) // addr -> exponent
	for e := range a.free {
		if e >= a.TopExponent() && !a.free[e].empty() {
			return fmt.Errorf("%w: size class %d populated above top %d", ErrCorrupt, e, a.TopExponent())
		}
		size := uintptr(1) << e
		err := a.walk(&a.free[e], func(addr uintptr) error {
			r := a.sp.find(addr)
			if r == nil || r.kind != Medium {
				return fmt.Errorf("block %#x outside the buddy arena", addr)
			}
			if addr&(size-1) != 0 || e > r.exp || addr+size > r.end() {
				return fmt.Errorf("block %#x misplaced for %d bytes", addr, size)
			}
			if _, dup := free[addr]; dup {
				return fmt.Errorf("block %#x listed twice", addr)
			}
			free[addr] = e
			spans = append(spans, span{addr, addr + size})
			return nil
		})
		if err != nil {
			return fmt.Errorf("%w: size class %d: %w", ErrCorrupt, e, err)
		}
	}

	for addr, e := range free {
		r := a.sp.find(addr)
		if e < r.exp {
			if be, ok := free[addr^(uintptr(1)<<e)]; ok && be == e {
				return fmt.Errorf("%w: block %#x and its buddy are both free at size class %d", ErrCorrupt, addr, e)
			}
		}
	}

	sort.Slice(spans, func(i, j int) bool { return spans[i].lo < spans[j].lo })
	for i := 1; i < len(spans); i++ {
		if spans[i].lo < spans[i-1].hi {
			return fmt.Errorf("%w: free blocks %#x and %#x overlap", ErrCorrupt, spans[i-1].lo, spans[i].lo)
		}
	}
	return nil
}

// walk visits every entry of l without trusting it: out-of-bounds links and
// lists longer than their count are reported instead of followed.
func (a *Arena) walk(l *freeList, fn func(addr uintptr) error) error {
	cur := l.head
	seen := 0
	for cur != 0 {
		if seen >= l.n {
			return fmt.Errorf("more than %d entries", l.n)
		}
		if err := fn(cur); err != nil {
			return err
		}
		next, ok := a.sp.load(cur)
		if !ok {
			return fmt.Errorf("link at %#x unreadable", cur)
		}
		cur = next
		seen++
	}
	if seen != l.n {
		return fmt.Errorf("%d entries, count says %d", seen, l.n)
	}
	return nil
}
