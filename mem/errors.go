package mem

import "errors"

var (
	// ErrMapFailed indicates the page-mapping primitive refused to hand out memory.
	ErrMapFailed = errors.New("mem: mapping failed")

	// ErrUnmapFailed indicates a large block could not be returned to the operating system.
	ErrUnmapFailed = errors.New("mem: unmap failed")

	// ErrArenaExhausted indicates growth would exceed the free-list table or the address space.
	ErrArenaExhausted = errors.New("mem: arena exhausted")

	// ErrCorrupt indicates a block or free list failed an integrity check.
	ErrCorrupt = errors.New("mem: heap corruption")

	// ErrForeignPointer indicates a pointer that does not lie in memory owned by the arena.
	ErrForeignPointer = errors.New("mem: pointer not owned by arena")

	// ErrBadSize indicates an allocator was handed a size outside its range.
	ErrBadSize = errors.New("mem: size outside allocator range")

	// ErrBadConfig indicates an invalid Config.
	ErrBadConfig = errors.New("mem: invalid config")
)
