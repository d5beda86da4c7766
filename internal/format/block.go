package format

import "fmt"

// Kind is the size class family a block was carved from. It lives in the low
// two bits of every tag.
type Kind uint8

const (
	KindSmall  Kind = 0
	KindMedium Kind = 1
	KindLarge  Kind = 2
)

// Valid reports whether k is one of the three known kinds.
func (k Kind) Valid() bool {
	return k <= KindLarge
}

func (k Kind) String() string {
	switch k {
	case KindSmall:
		return "small"
	case KindMedium:
		return "medium"
	case KindLarge:
		return "large"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Mix is one round of Knuth's MMIX generator. Multiplication wraps at 64 bits.
func Mix(v uint64) uint64 {
	return v * mmixMultiplier % mmixModulus
}

// Tag builds the tag word for a block based at addr.
func Tag(addr uintptr, k Kind) uint64 {
	return Mix(uint64(addr))&^KindMask | uint64(k)
}

// KindOf extracts the kind bits of a tag.
func KindOf(tag uint64) Kind {
	return Kind(tag & KindMask)
}

// Block is the decoded metadata of a stamped block.
type Block struct {
	Size uint64
	Tag  uint64
	Kind Kind
}

// PutBlock stamps b, which must span exactly one block, with a header and a
// mirrored footer. The recorded size is len(b).
func PutBlock(b []byte, tag uint64) error {
	if len(b) < MinBlockSize {
		return fmt.Errorf("block: %w (size %d)", ErrTruncated, len(b))
	}
	size := uint64(len(b))
	PutU64(b, SizeOffset, size)
	PutU64(b, TagOffset, tag)
	PutU64(b, len(b)+FooterTagOffset, tag)
	PutU64(b, len(b)+FooterSizeOffset, size)
	return nil
}

// ReadHeader returns the size and tag words at the front of b.
func ReadHeader(b []byte) (size, tag uint64, err error) {
	if len(b) < HeaderSize {
		return 0, 0, fmt.Errorf("header: %w", ErrTruncated)
	}
	return ReadU64(b, SizeOffset), ReadU64(b, TagOffset), nil
}

// CheckBlock decodes and validates the block spanning b, which is based at
// addr. The header and footer must agree, the kind must be valid and the tag
// must hash from addr.
func CheckBlock(b []byte, addr uintptr) (Block, error) {
	if len(b) < MinBlockSize {
		return Block{}, fmt.Errorf("block: %w (size %d)", ErrTruncated, len(b))
	}
	size := ReadU64(b, SizeOffset)
	tag := ReadU64(b, TagOffset)
	footTag := ReadU64(b, len(b)+FooterTagOffset)
	footSize := ReadU64(b, len(b)+FooterSizeOffset)

	if size != uint64(len(b)) || footSize != size {
		return Block{}, fmt.Errorf("block %#x: %w (header %d, footer %d)", addr, ErrSizeMismatch, size, footSize)
	}
	if footTag != tag {
		return Block{}, fmt.Errorf("block %#x: %w (header %#x, footer %#x)", addr, ErrTagMismatch, tag, footTag)
	}
	k := KindOf(tag)
	if !k.Valid() {
		return Block{}, fmt.Errorf("block %#x: %w: %d", addr, ErrBadKind, uint8(k))
	}
	if Tag(addr, k) != tag {
		return Block{}, fmt.Errorf("block %#x: %w", addr, ErrForgedTag)
	}
	return Block{Size: size, Tag: tag, Kind: k}, nil
}
