package format

import "errors"

var (
	// ErrTruncated indicates the buffer lacked the bytes required for a structure.
	ErrTruncated = errors.New("format: truncated buffer")
	// ErrBadHeader indicates a block header that violates the layout invariants.
	ErrBadHeader = errors.New("format: bad block header")
)
