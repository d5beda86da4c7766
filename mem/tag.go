package mem

import (
	"fmt"

	"github.com/joshuapare/memkit/internal/format"
)

// Kind is the allocator family a block belongs to.
type Kind = format.Kind

const (
	Small  = format.KindSmall
	Medium = format.KindMedium
	Large  = format.KindLarge
)

// Handle describes a live block as recovered from its user pointer. It is
// derived on demand and never stored.
type Handle struct {
	Kind Kind
	Base uintptr // block start, 16 bytes before the user pointer
	Size uint64  // block size including header and footer
}

// User returns the user pointer of the block.
func (h Handle) User() uintptr {
	return h.Base + format.HeaderSize
}

// Capacity returns the usable bytes of the block.
func (h Handle) Capacity() int {
	return int(h.Size) - format.Overhead
}

// stamp writes header and footer for a block of size bytes at base and
// returns the block's bytes.
func (a *Arena) stamp(base uintptr, size uint64, k Kind) []byte {
	if base == 0 || size < format.MinBlockSize || !k.Valid() {
		a.halt("stamp", fmt.Errorf("%w: base %#x size %d kind %v", ErrCorrupt, base, size, k))
	}
	_, blk, ok := a.sp.span(base, size)
	if !ok {
		a.halt("stamp", fmt.Errorf("%w: block %#x+%d", ErrForeignPointer, base, size))
	}
	if err := format.PutBlock(blk, format.Tag(base, k)); err != nil {
		a.halt("stamp", fmt.Errorf("%w: %w", ErrCorrupt, err))
	}
	return blk
}

// inspect recovers and validates the block behind a user pointer. Any
// disagreement between header, footer, tag and owning region is fatal.
func (a *Arena) inspect(user uintptr) Handle {
	if user < format.HeaderSize {
		a.halt("inspect", fmt.Errorf("%w: %#x", ErrForeignPointer, user))
	}
	base := user - format.HeaderSize
	r, hdr, ok := a.sp.span(base, format.HeaderSize)
	if !ok {
		a.halt("inspect", fmt.Errorf("%w: %#x", ErrForeignPointer, user))
	}
	size, _, err := format.ReadHeader(hdr)
	if err != nil {
		a.halt("inspect", fmt.Errorf("%w: %w", ErrCorrupt, err))
	}
	_, blk, ok := a.sp.span(base, size)
	if !ok {
		a.halt("inspect", fmt.Errorf("%w: block %#x claims %d bytes past its mapping", ErrCorrupt, base, size))
	}
	b, err := format.CheckBlock(blk, base)
	if err != nil {
		a.halt("inspect", fmt.Errorf("%w: %w", ErrCorrupt, err))
	}
	if b.Kind != r.kind {
		a.halt("inspect", fmt.Errorf("%w: %v block %#x in %v region", ErrCorrupt, b.Kind, base, r.kind))
	}
	return Handle{Kind: b.Kind, Base: base, Size: b.Size}
}

// retire clears the header tag so a stale pointer to the block no longer
// passes inspect.
func (a *Arena) retire(h Handle) {
	_, hdr, ok := a.sp.span(h.Base, format.HeaderSize)
	if !ok {
		a.halt("retire", fmt.Errorf("%w: %#x", ErrForeignPointer, h.Base))
	}
	format.PutU64(hdr, format.TagOffset, 0)
}

// userSlice returns the caller-visible n bytes of a stamped block. Capacity
// stops at the footer.
func userSlice(blk []byte, n int) []byte {
	return blk[format.HeaderSize : format.HeaderSize+n : len(blk)-format.FooterSize]
}
