package malloc

import (
	"sync"

	"github.com/joshuapare/memkit/mem"
)

var (
	once   sync.Once
	global *mem.Safe
)

func arena() *mem.Safe {
	once.Do(func() {
		s, err := mem.NewSafe(nil)
		if err != nil {
			// DefaultConfig is static; it only fails validation if edited.
			panic(err)
		}
		global = s
	})
	return global
}

// Malloc returns n bytes from the process-wide arena, or nil for n <= 0.
func Malloc(n int) []byte {
	if n <= 0 {
		return nil
	}
	return arena().Alloc(n)
}

// Free releases a slice returned by Malloc.
func Free(b []byte) {
	if cap(b) == 0 {
		return
	}
	arena().Free(b)
}

// Stats returns the process-wide arena's counters.
func Stats() mem.Stats {
	return arena().Stats()
}

// FreeListEntryCount returns the number of non-empty buddy size classes.
func FreeListEntryCount() int {
	return arena().FreeListEntryCount()
}

// Verify checks the process-wide arena's free lists.
func Verify() error {
	return arena().Verify()
}
