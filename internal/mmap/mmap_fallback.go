//go:build !linux && !darwin && !windows

package mmap

import "os"

// mapAnon hands out Go heap memory when no mapping primitive is wired up. The
// collector does not move heap objects, and callers keep the slice reachable
// for as long as they use it.
func mapAnon(n int) ([]byte, error) {
	return make([]byte, n), nil
}

func unmapAnon([]byte) error {
	return nil
}

func pageSize() int {
	return os.Getpagesize()
}
