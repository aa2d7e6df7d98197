package ffmpegcodec

import "errors"

var (
	// ErrFFmpegNotFound is returned when no ffmpeg binary can be located.
	ErrFFmpegNotFound = errors.New("ffmpegcodec: ffmpeg not found")

	// ErrNotOpen is returned when frames are written before Begin.
	ErrNotOpen = errors.New("ffmpegcodec: writer is not open")

	// ErrAlreadyOpen is returned when Begin is called on an open writer.
	ErrAlreadyOpen = errors.New("ffmpegcodec: writer is already open")

	// ErrClosed is returned when reading from a closed stream.
	ErrClosed = errors.New("ffmpegcodec: stream is closed")
)
