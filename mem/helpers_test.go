package mem

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/memkit/internal/mmap"
)

// ============================================================================
// Test Helpers
// ============================================================================

// countingMapper wraps anonymous mmap and counts calls. When failAt is
// positive, the failAt-th Map call and every later one fail.
type countingMapper struct {
	inner  mmap.Anonymous
	maps   int
	unmaps int
	sizes  []int
	failAt int
}

var errInjected = errors.New("injected mapping failure")

func (m *countingMapper) Map(n int) ([]byte, error) {
	if m.failAt > 0 && m.maps+1 >= m.failAt {
		return nil, errInjected
	}
	m.maps++
	m.sizes = append(m.sizes, n)
	return m.inner.Map(n)
}

func (m *countingMapper) Unmap(b []byte) error {
	m.unmaps++
	return m.inner.Unmap(b)
}

// newTestArena creates an arena whose fatal path panics instead of exiting.
func newTestArena(t testing.TB, cfg Config) (*Arena, *countingMapper) {
	t.Helper()
	m := &countingMapper{}
	cfg.Mapper = m
	cfg.OnFatal = func(error) {}
	a, err := New(&cfg)
	require.NoError(t, err)
	return a, m
}

// requireFatal runs fn and asserts that it halted the arena with an error
// matching target.
func requireFatal(t testing.TB, target error, fn func()) {
	t.Helper()
	var got error
	func() {
		defer func() {
			r := recover()
			require.NotNil(t, r, "expected the arena to halt")
			err, ok := r.(error)
			require.True(t, ok, "halt panicked with %T, want error", r)
			got = err
		}()
		fn()
	}()
	require.ErrorIs(t, got, target)
}

// fill writes a pattern derived from seed into b.
func fill(b []byte, seed int) {
	for i := range b {
		b[i] = byte(seed*31 + i)
	}
}

// requirePattern checks the pattern written by fill.
func requirePattern(t testing.TB, b []byte, seed int) {
	t.Helper()
	for i := range b {
		if b[i] != byte(seed*31+i) {
			require.Failf(t, "payload corrupted", "seed %d offset %d: got %#x want %#x",
				seed, i, b[i], byte(seed*31+i))
		}
	}
}

// assertInvariants validates the free lists after an operation.
func assertInvariants(t testing.TB, a *Arena) {
	t.Helper()
	require.NoError(t, a.Verify())
}

// blockBytes returns the raw bytes of the block behind a user slice.
func blockBytes(t testing.TB, a *Arena, b []byte) []byte {
	t.Helper()
	h := a.Inspect(b)
	_, blk, ok := a.sp.span(h.Base, h.Size)
	require.True(t, ok, fmt.Sprintf("block %#x not addressable", h.Base))
	return blk
}
