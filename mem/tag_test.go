package mem

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/memkit/internal/format"
)

// Test_Inspect_RecoversKindAndSize verifies the handle recovered from a user
// pointer for each allocator.
func Test_Inspect_RecoversKindAndSize(t *testing.T) {
	a, _ := newTestArena(t, ConfigStandard)

	tests := []struct {
		name     string
		n        int
		wantKind Kind
		wantSize uint64
	}{
		{"small 1", 1, Small, 96},
		{"small 64", 64, Small, 96},
		{"medium 65", 65, Medium, 128},
		{"medium 96", 96, Medium, 128},
		{"medium 97", 97, Medium, 256},
		{"medium 1000", 1000, Medium, 2048},
		{"medium max", 128<<10 - 1, Medium, 256 << 10},
		{"large", 128 << 10, Large, 128<<10 + 32},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := a.Alloc(tt.n)
			require.Len(t, b, tt.n)

			h := a.Inspect(b)
			require.Equal(t, tt.wantKind, h.Kind)
			require.Equal(t, tt.wantSize, h.Size)
			require.Equal(t, addrOf(b), h.User())
			require.Equal(t, h.Capacity(), cap(b))
			require.Zero(t, h.User()%format.Alignment, "user pointer not 16-byte aligned")

			a.Free(b)
		})
	}
	assertInvariants(t, a)
}

// Test_Stamp_HeaderMirrorsFooter verifies the raw layout of a stamped block.
func Test_Stamp_HeaderMirrorsFooter(t *testing.T) {
	a, _ := newTestArena(t, ConfigStandard)
	b := a.Alloc(500)
	blk := blockBytes(t, a, b)

	size := uint64(len(blk))
	require.Equal(t, uint64(1024), size)
	require.Equal(t, size, format.ReadU64(blk, 0))
	require.Equal(t, size, format.ReadU64(blk, len(blk)-8))
	require.Equal(t, format.ReadU64(blk, 8), format.ReadU64(blk, len(blk)-16))
	require.Equal(t, Medium, format.KindOf(format.ReadU64(blk, 8)))
}

// Test_Free_DetectsFooterOverflow verifies a write running past the usable
// bytes into the footer is caught on release.
func Test_Free_DetectsFooterOverflow(t *testing.T) {
	for _, n := range []int{10, 300, 200 << 10} {
		a, _ := newTestArena(t, ConfigStandard)
		b := a.Alloc(n)
		blk := blockBytes(t, a, b)
		blk[len(blk)-16] ^= 0x5a // first footer byte, one past cap(b)

		requireFatal(t, ErrCorrupt, func() { a.Free(b) })
	}
}

// Test_Free_DetectsHeaderUnderflow verifies a write just before the user
// pointer is caught on release.
func Test_Free_DetectsHeaderUnderflow(t *testing.T) {
	a, _ := newTestArena(t, ConfigStandard)
	b := a.Alloc(48)
	blk := blockBytes(t, a, b)
	blk[format.HeaderSize-1] ^= 0x01 // last byte of the header tag

	requireFatal(t, ErrCorrupt, func() { a.Free(b) })
}

// Test_Free_DetectsBadKind verifies a tag with kind bits 3 is rejected even
// when header and footer agree.
func Test_Free_DetectsBadKind(t *testing.T) {
	a, _ := newTestArena(t, ConfigStandard)
	b := a.Alloc(200)
	blk := blockBytes(t, a, b)
	tag := format.ReadU64(blk, format.TagOffset) | format.KindMask
	format.PutU64(blk, format.TagOffset, tag)
	format.PutU64(blk, len(blk)-16, tag)

	requireFatal(t, ErrCorrupt, func() { a.Free(b) })
}

// Test_Free_DetectsDoubleFree verifies the retired header rejects a second release.
func Test_Free_DetectsDoubleFree(t *testing.T) {
	for _, n := range []int{8, 700} {
		a, _ := newTestArena(t, ConfigStandard)
		b := a.Alloc(n)
		keep := a.Alloc(n) // keeps the buddy allocated so nothing merges
		a.Free(b)
		requireFatal(t, ErrCorrupt, func() { a.Free(b) })
		_ = keep
	}
}

// Test_Free_RejectsForeignPointer verifies Go-heap slices are never accepted.
func Test_Free_RejectsForeignPointer(t *testing.T) {
	a, _ := newTestArena(t, ConfigStandard)
	_ = a.Alloc(10) // map something so the registry is not empty

	requireFatal(t, ErrForeignPointer, func() { a.Free(make([]byte, 64)) })
}

// Test_Free_RejectsShiftedSlice verifies a slice that no longer starts at the
// user pointer is treated as corruption.
func Test_Free_RejectsShiftedSlice(t *testing.T) {
	a, _ := newTestArena(t, ConfigStandard)
	b := a.Alloc(300)
	requireFatal(t, ErrCorrupt, func() { a.Free(b[16:]) })
}

// Test_Free_AcceptsReslicedLength verifies only the first element matters.
func Test_Free_AcceptsReslicedLength(t *testing.T) {
	a, _ := newTestArena(t, ConfigStandard)
	b := a.Alloc(40)
	a.Free(b[:0])
	require.Equal(t, 0, int(a.Stats().InUseBytes))
	assertInvariants(t, a)
}

// Test_Free_NilIsNoop verifies nil and zero-capacity slices are ignored.
func Test_Free_NilIsNoop(t *testing.T) {
	a, m := newTestArena(t, ConfigStandard)
	a.Free(nil)
	a.Free([]byte{}[:0:0])
	require.Zero(t, a.Stats().FreeCalls)
	require.Zero(t, m.maps)
	require.Nil(t, a.Alloc(0))
	require.Nil(t, a.Alloc(-1))
}
