// Package ports defines the interfaces and error kinds shared by the
// pipeline core and its adapters.
package ports

import "errors"

// Error kinds returned by pipeline operations. Callers match these with
// errors.Is; the message text around them is context, not contract.
var (
	// ErrInvalidParameter reports an out-of-range or malformed input value:
	// non-positive dimensions, an even or non-positive blur kernel, a zoom
	// rate outside its range, a non-positive frame rate or duration, an
	// empty stitch input list, or an empty output path.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrUnreadableInput reports a source image that cannot be decoded.
	ErrUnreadableInput = errors.New("unreadable input")

	// ErrInputNotFound reports a video source that cannot be opened as a
	// readable stream.
	ErrInputNotFound = errors.New("input not found")

	// ErrDimensionMismatch reports a stitch source whose actual geometry
	// differs from the declared output geometry.
	ErrDimensionMismatch = errors.New("dimension mismatch")

	// ErrEncoderUnavailable reports an output stream that cannot be opened
	// or cannot accept a test frame.
	ErrEncoderUnavailable = errors.New("encoder unavailable")
)
