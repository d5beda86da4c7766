// Package format houses the low-level layout of allocator blocks: the header and
// footer words stamped into every block, the tag encoding, and the integer
// helpers the rest of the module uses to read and write them. Nothing in here
// knows where the bytes come from; callers hand in slices.
package format

const (
	// WordSize is the width of every metadata word.
	WordSize = 8

	// HeaderSize is the number of bytes in front of the user pointer.
	//
	// Header layout (little-endian):
	//
	//	Offset  Size  Description
	//	0x00    8     Block size in bytes, including header and footer
	//	0x08    8     Tag (hashed base address, low 2 bits = kind)
	HeaderSize = 2 * WordSize

	// FooterSize is the number of bytes at the tail of every block.
	//
	// Footer layout (relative to block end):
	//
	//	-0x10   8     Tag (mirror of header tag)
	//	-0x08   8     Block size (mirror of header size)
	FooterSize = 2 * WordSize

	// Overhead is the per-block metadata cost.
	Overhead = HeaderSize + FooterSize

	// MinBlockSize is the smallest block that can carry a header and a footer.
	MinBlockSize = Overhead

	// SizeOffset and TagOffset locate the header words from the block base.
	SizeOffset = 0x00
	TagOffset  = 0x08

	// FooterTagOffset and FooterSizeOffset locate the footer words, relative
	// to the block base plus block size.
	FooterTagOffset  = -0x10
	FooterSizeOffset = -0x08

	// NextOffset is where a free block keeps the address of the next free block.
	NextOffset = 0x00

	// Alignment is the guaranteed alignment of every user pointer.
	Alignment = 16

	// AlignmentMask is Alignment - 1.
	AlignmentMask = Alignment - 1

	// KindMask selects the kind bits of a tag.
	KindMask = 0b11

	// mmixMultiplier and mmixModulus are Knuth's MMIX LCG constants. The tag
	// hash is a single round of the generator applied to the block address.
	mmixMultiplier = 6364136223846793005
	mmixModulus    = 1442695040888963407
)
