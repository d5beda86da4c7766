package mem

import (
	"fmt"
	"io"
	"log/slog"
	"math/bits"

	"github.com/joshuapare/memkit/internal/format"
	"github.com/joshuapare/memkit/internal/mmap"
)

// Mapper is the raw page-mapping primitive. Map returns n bytes of zeroed,
// writable memory that the garbage collector does not move; Unmap releases a
// slice previously returned by Map.
type Mapper interface {
	Map(n int) ([]byte, error)
	Unmap(b []byte) error
}

// Config defines the size thresholds and growth policy of an Arena.
type Config struct {
	// Name for this configuration (for logs and the CLI)
	Name string

	// SmallMax is the largest request served from the chunk pool. Every chunk
	// holds SmallMax user bytes plus the block overhead.
	SmallMax int

	// SmallBase is the size of the first chunk pool mapping. Each later pool
	// doubles it.
	SmallBase int

	// FirstMediumExponent is log2 of the first buddy block. Each buddy growth
	// maps a block twice the size of the previous one.
	FirstMediumExponent int

	// LargeMin is the smallest request that is mapped directly.
	LargeMin int

	// MaxExponent is the number of entries in the buddy free-list table.
	MaxExponent int

	// Logger receives growth events at debug level and fatal errors. Nil discards.
	Logger *slog.Logger

	// OnFatal is called with the error that halts the arena. It must not
	// return; if it does, the arena panics with the same error. Nil exits the
	// process with status 2.
	OnFatal func(error)

	// Mapper obtains memory from the operating system. Nil uses anonymous mmap.
	Mapper Mapper
}

// Predefined configurations.
var (
	// ConfigStandard: 64-byte small objects in 96-byte chunks, 128 KiB first
	// buddy block, direct mapping from 128 KiB up.
	ConfigStandard = Config{
		Name:                "Standard",
		SmallMax:            64,
		SmallBase:           96 << 10,
		FirstMediumExponent: 17,
		LargeMin:            128 << 10,
		MaxExponent:         48,
	}

	// ConfigCompact: small thresholds so every path is exercised with a few
	// kilobytes of memory.
	ConfigCompact = Config{
		Name:                "Compact",
		SmallMax:            32,
		SmallBase:           64 << 6,
		FirstMediumExponent: 12,
		LargeMin:            4 << 10,
		MaxExponent:         32,
	}

	// Default configuration (used if none specified).
	DefaultConfig = ConfigStandard
)

// ChunkSize is the size of one small block including header and footer.
func (c Config) ChunkSize() int {
	return c.SmallMax + format.Overhead
}

// Validate reports the first field that breaks the layout rules.
func (c Config) Validate() error {
	switch {
	case c.SmallMax <= 0 || c.SmallMax != format.Align16(c.SmallMax):
		return fmt.Errorf("%w: SmallMax %d must be a positive multiple of %d", ErrBadConfig, c.SmallMax, format.Alignment)
	case c.SmallBase < c.ChunkSize() || c.SmallBase%c.ChunkSize() != 0:
		return fmt.Errorf("%w: SmallBase %d must be a multiple of the %d-byte chunk", ErrBadConfig, c.SmallBase, c.ChunkSize())
	case c.LargeMin <= c.SmallMax:
		return fmt.Errorf("%w: LargeMin %d must exceed SmallMax %d", ErrBadConfig, c.LargeMin, c.SmallMax)
	case c.MaxExponent > bits.UintSize-2:
		return fmt.Errorf("%w: MaxExponent %d exceeds %d", ErrBadConfig, c.MaxExponent, bits.UintSize-2)
	case c.FirstMediumExponent < 0 || c.FirstMediumExponent >= c.MaxExponent:
		return fmt.Errorf("%w: FirstMediumExponent %d must be below MaxExponent %d", ErrBadConfig, c.FirstMediumExponent, c.MaxExponent)
	case format.CeilLog2(uint64(c.LargeMin-1)+format.Overhead) >= c.MaxExponent:
		return fmt.Errorf("%w: a %d-byte medium request needs size class %d, table holds %d",
			ErrBadConfig, c.LargeMin-1, format.CeilLog2(uint64(c.LargeMin-1)+format.Overhead), c.MaxExponent)
	case 1<<c.FirstMediumExponent <= c.ChunkSize():
		return fmt.Errorf("%w: first buddy block (%d bytes) must exceed the %d-byte chunk",
			ErrBadConfig, 1<<c.FirstMediumExponent, c.ChunkSize())
	}
	return nil
}

// withDefaults fills the pluggable collaborators.
func (c Config) withDefaults() Config {
	if c.Name == "" {
		c.Name = "Custom"
	}
	if c.Logger == nil {
		c.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if c.OnFatal == nil {
		c.OnFatal = exitOnFatal
	}
	if c.Mapper == nil {
		c.Mapper = mmap.Anonymous{}
	}
	return c
}

// Route describes where a request of a given size is served from.
type Route struct {
	Size      int
	Kind      Kind
	Exponent  int // size class for medium requests, -1 otherwise
	BlockSize int // bytes consumed including header and footer
}

// Route returns the allocator and block size a request of n bytes maps to.
// n must be positive.
func (c Config) Route(n int) Route {
	switch {
	case n <= c.SmallMax:
		return Route{Size: n, Kind: Small, Exponent: -1, BlockSize: c.ChunkSize()}
	case n < c.LargeMin:
		e := SizeClassFor(uint64(n) + format.Overhead)
		return Route{Size: n, Kind: Medium, Exponent: e, BlockSize: 1 << e}
	default:
		return Route{Size: n, Kind: Large, Exponent: -1, BlockSize: n + format.Overhead}
	}
}
