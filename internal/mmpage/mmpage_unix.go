//go:build unix

// Package mmpage maps page-sized regions of anonymous memory for the allocator.
package mmpage

import (
	"errors"
	"fmt"

	"golang.org/x/sys/unix"
)

// Map reserves and commits size bytes of zeroed, private memory. The returned
// cleanup unmaps it; calling cleanup twice is a no-op.
func Map(size int) ([]byte, func() error, error) {
	if size <= 0 {
		return nil, nil, fmt.Errorf("mmpage: invalid size %d", size)
	}
	data, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, nil, fmt.Errorf("mmpage: map %d bytes: %w", size, err)
	}
	cleanup := func() error {
		if data == nil {
			return nil
		}
		err := unix.Munmap(data)
		if errors.Is(err, unix.EINVAL) {
			// Treat double-unmap as no-op for callers.
			return nil
		}
		data = nil
		return err
	}
	return data, cleanup, nil
}
