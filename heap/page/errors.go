package page

import "errors"

var (
	// ErrPageSize indicates the buffer does not match the page kind's size.
	ErrPageSize = errors.New("page: buffer size does not match page size")

	// ErrBlockTooLarge indicates a block longer than the page kind can serve.
	ErrBlockTooLarge = errors.New("page: block exceeds page maximum")

	// ErrInvalidBlockSize indicates a zero-length block request.
	ErrInvalidBlockSize = errors.New("page: invalid block size")

	// ErrPageFull indicates no free block large enough was found.
	ErrPageFull = errors.New("page: no free block large enough")

	// ErrBadRef indicates a reference that is out of range, misaligned or not allocated.
	ErrBadRef = errors.New("page: bad block reference")
)
