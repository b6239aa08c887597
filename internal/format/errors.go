package format

import (
	"errors"
	"fmt"
)

var (
	// ErrTruncated indicates the buffer lacked the bytes required for a structure.
	ErrTruncated = errors.New("format: truncated buffer")
	// ErrCorrupt indicates a header or link field points outside the page.
	ErrCorrupt = errors.New("format: corrupt page")
)

// CheckLen returns ErrTruncated when b is shorter than need bytes.
func CheckLen(b []byte, need int, what string) error {
	if len(b) < need {
		return fmt.Errorf("%s: need %d bytes, have %d: %w", what, need, len(b), ErrTruncated)
	}
	return nil
}
