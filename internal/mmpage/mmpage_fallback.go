//go:build !unix

// Package mmpage maps page-sized regions of anonymous memory for the allocator.
package mmpage

import "fmt"

// Map allocates size zeroed bytes on the Go heap when mmap is not available.
func Map(size int) ([]byte, func() error, error) {
	if size <= 0 {
		return nil, nil, fmt.Errorf("mmpage: invalid size %d", size)
	}
	return make([]byte, size), func() error { return nil }, nil
}
