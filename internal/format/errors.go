package format

import "errors"

var (
	// ErrTruncated indicates the buffer lacked the bytes required for a block.
	ErrTruncated = errors.New("format: truncated buffer")
	// ErrSizeMismatch indicates header and footer disagree on the block size.
	ErrSizeMismatch = errors.New("format: header/footer size mismatch")
	// ErrTagMismatch indicates header and footer disagree on the tag.
	ErrTagMismatch = errors.New("format: header/footer tag mismatch")
	// ErrBadKind indicates the kind bits of a tag hold no known kind.
	ErrBadKind = errors.New("format: invalid block kind")
	// ErrForgedTag indicates the tag does not hash from the block address.
	ErrForgedTag = errors.New("format: tag does not match block address")
)
