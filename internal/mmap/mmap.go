// Package mmap provides the raw page-mapping primitive the allocator builds on:
// anonymous, private, read-write memory that the Go garbage collector does not
// manage. It is the only portability layer in the module.
package mmap

import "errors"

// ErrInvalidSize is returned for mappings of zero or negative length.
var ErrInvalidSize = errors.New("mmap: invalid mapping size")

// Anonymous maps private anonymous memory from the operating system. Its zero
// value is ready for use.
type Anonymous struct{}

// Map returns n bytes of zeroed, writable memory.
func (Anonymous) Map(n int) ([]byte, error) {
	if n <= 0 {
		return nil, ErrInvalidSize
	}
	return mapAnon(n)
}

// Unmap returns a mapping obtained from Map to the operating system. The slice
// must be the one Map returned, not a sub-slice of it.
func (Anonymous) Unmap(b []byte) error {
	if len(b) == 0 {
		return ErrInvalidSize
	}
	return unmapAnon(b)
}

// PageSize reports the operating system page size.
func PageSize() int {
	return pageSize()
}
