//go:build linux || darwin

package mmap

import (
	"fmt"

	"golang.org/x/sys/unix"
)

func mapAnon(n int) ([]byte, error) {
	data, err := unix.Mmap(-1, 0, n, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		return nil, fmt.Errorf("mmap %d bytes: %w", n, err)
	}
	return data, nil
}

func unmapAnon(b []byte) error {
	if err := unix.Munmap(b); err != nil {
		return fmt.Errorf("munmap %d bytes: %w", len(b), err)
	}
	return nil
}

func pageSize() int {
	return unix.Getpagesize()
}
