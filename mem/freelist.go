package mem

import "fmt"

// wordStore reads and writes the link word at the front of a free block.
// Failures are fatal, so neither method reports an error.
type wordStore interface {
	loadAddr(addr uintptr) uintptr
	storeAddr(addr, v uintptr)
	fail(context string, err error)
}

// freeList is an intrusive singly-linked list of free blocks. The link to the
// next block is stored in the first word of each block, and 0 terminates it.
type freeList struct {
	head uintptr
	n    int
}

func (l *freeList) empty() bool { return l.head == 0 }

func (l *freeList) push(ws wordStore, addr uintptr) {
	ws.storeAddr(addr, l.head)
	l.head = addr
	l.n++
}

func (l *freeList) pop(ws wordStore) uintptr {
	addr := l.head
	if addr == 0 {
		return 0
	}
	l.head = ws.loadAddr(addr)
	l.n--
	return addr
}

// pushRun links count blocks of stride bytes starting at start, in address
// order, in front of the current head.
func (l *freeList) pushRun(ws wordStore, start, stride uintptr, count int) {
	if count <= 0 {
		return
	}
	last := start + uintptr(count-1)*stride
	ws.storeAddr(last, l.head)
	for addr := last; addr > start; addr -= stride {
		ws.storeAddr(addr-stride, addr)
	}
	l.head = start
	l.n += count
}

// remove unlinks addr and reports whether it was present.
func (l *freeList) remove(ws wordStore, addr uintptr) bool {
	var prev uintptr
	cur := l.head
	for steps := 0; cur != 0; steps++ {
		if steps >= l.n {
			ws.fail("free list walk", fmt.Errorf("%w: list longer than its count %d", ErrCorrupt, l.n))
			return false
		}
		next := ws.loadAddr(cur)
		if cur == addr {
			if prev == 0 {
				l.head = next
			} else {
				ws.storeAddr(prev, next)
			}
			l.n--
			return true
		}
		prev, cur = cur, next
	}
	return false
}

func (l *freeList) contains(ws wordStore, addr uintptr) bool {
	found := false
	l.each(ws, func(a uintptr) bool {
		found = a == addr
		return !found
	})
	return found
}

// each calls fn for every block until fn returns false.
func (l *freeList) each(ws wordStore, fn func(addr uintptr) bool) {
	cur := l.head
	for steps := 0; cur != 0; steps++ {
		if steps >= l.n {
			ws.fail("free list walk", fmt.Errorf("%w: list longer than its count %d", ErrCorrupt, l.n))
			return
		}
		if !fn(cur) {
			return
		}
		cur = ws.loadAddr(cur)
	}
}
