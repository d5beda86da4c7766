package mem

import (
	"fmt"
	"log/slog"

	"github.com/joshuapare/memkit/internal/format"
)

// Arena owns every mapping it allocates from: the small chunk pool, the buddy
// free-list table and the large blocks currently handed out. Mappings backing
// the small and medium allocators are kept for the arena's lifetime.
//
// An Arena is not safe for concurrent use. Wrap it in a Safe to share it.
type Arena struct {
	cfg Config
	log *slog.Logger

	sp space

	// Small allocator state
	chunks      freeList
	smallGrowth int

	// Buddy allocator state: free[e] holds free blocks of exactly 1<<e bytes
	free         []freeList
	mediumGrowth int

	stats Stats
}

// New creates an empty arena. Nothing is mapped until the first allocation.
//
// Parameters:
//   - config: Size thresholds and collaborators (use nil for DefaultConfig)
func New(config *Config) (*Arena, error) {
	if config == nil {
		config = &DefaultConfig
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	cfg := config.withDefaults()

	a := &Arena{
		cfg:  cfg,
		log:  cfg.Logger.With("arena", cfg.Name),
		free: make([]freeList, cfg.MaxExponent),
	}
	return a, nil
}

// Config returns the arena's configuration.
func (a *Arena) Config() Config {
	return a.cfg
}

// TopExponent is one past the largest size class the buddy allocator has
// mapped so far. Every free list at or above it is empty.
func (a *Arena) TopExponent() int {
	return a.cfg.FirstMediumExponent + a.mediumGrowth
}

// FreeListEntryCount returns the number of non-empty size classes in the
// buddy free-list table.
func (a *Arena) FreeListEntryCount() int {
	n := 0
	for i := range a.free {
		if !a.free[i].empty() {
			n++
		}
	}
	return n
}

// FreeBlocks returns the number of free blocks of exactly 1<<exp bytes.
func (a *Arena) FreeBlocks(exp int) int {
	if exp < 0 || exp >= len(a.free) {
		return 0
	}
	return a.free[exp].n
}

// FreeChunks returns the number of chunks waiting in the small pool.
func (a *Arena) FreeChunks() int {
	return a.chunks.n
}

// mapRegion obtains n bytes from the Mapper. Failure is fatal.
func (a *Arena) mapRegion(n int, what string) []byte {
	data, err := a.cfg.Mapper.Map(n)
	if err != nil {
		a.halt(what, fmt.Errorf("%w: %d bytes: %w", ErrMapFailed, n, err))
	}
	if len(data) < n {
		a.halt(what, fmt.Errorf("%w: asked for %d bytes, got %d", ErrMapFailed, n, len(data)))
	}
	a.stats.Maps++
	a.stats.MappedBytes += int64(len(data))
	return data
}

// growSmall maps the next chunk pool, SmallBase << smallGrowth bytes, and
// threads it into the chunk free list.
func (a *Arena) growSmall() {
	size := a.cfg.SmallBase << a.smallGrowth
	if size>>a.smallGrowth != a.cfg.SmallBase {
		a.halt("small growth", fmt.Errorf("%w: pool size overflows after %d growths", ErrArenaExhausted, a.smallGrowth))
	}
	data := a.mapRegion(size, "small growth")
	r := newRegion(data, 0, size, Small)
	a.sp.add(r)

	chunk := a.cfg.ChunkSize()
	count := size / chunk
	a.chunks.pushRun(a, r.base, uintptr(chunk), count)

	a.smallGrowth++
	a.stats.SmallGrowths++
	a.log.Debug("small pool grown", "bytes", size, "chunks", count, "growth", a.smallGrowth)
}

// growMedium maps a block of 1<<TopExponent bytes, aligned to its own size so
// buddies can be found by flipping one address bit, and adds it to the top
// free list.
func (a *Arena) growMedium() {
	exp := a.TopExponent()
	if exp >= a.cfg.MaxExponent {
		a.halt("medium growth", fmt.Errorf("%w: size class %d reaches table size %d", ErrArenaExhausted, exp, a.cfg.MaxExponent))
	}
	size := 1 << exp

	// Twice the size guarantees an aligned block fits somewhere inside.
	data := a.mapRegion(2*size, "medium growth")
	start := addrOf(data)
	off := int(format.AlignUp(start, uintptr(size)) - start)
	r := newRegion(data, off, size, Medium)
	a.sp.add(r)
	a.free[exp].push(a, r.base)

	a.mediumGrowth++
	a.stats.MediumGrowths++
	a.log.Debug("buddy arena grown", "bytes", size, "exponent", exp, "growth", a.mediumGrowth)
}

// loadAddr, storeAddr and fail make the arena the wordStore of its free lists.

func (a *Arena) loadAddr(addr uintptr) uintptr {
	v, ok := a.sp.load(addr)
	if !ok {
		a.halt("free list", fmt.Errorf("%w: link read at %#x outside arena", ErrCorrupt, addr))
	}
	return v
}

func (a *Arena) storeAddr(addr, v uintptr) {
	if !a.sp.store(addr, v) {
		a.halt("free list", fmt.Errorf("%w: link write at %#x outside arena", ErrCorrupt, addr))
	}
}

func (a *Arena) fail(context string, err error) {
	a.halt(context, err)
}
