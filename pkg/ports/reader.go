package ports

import (
	"image"
)

// VideoMeta describes an opened video stream.
type VideoMeta struct {
	Width      int
	Height     int
	FPS        int
	FrameCount int
}

// VideoReader opens video files for sequential frame access.
type VideoReader interface {
	// OpenVideo opens the file at path and returns a stream positioned at
	// the first frame.
	OpenVideo(path string) (VideoStream, error)
}

// VideoStream is one opened video: metadata plus frames in temporal order.
// The stream is owned by a single caller and is not safe for concurrent use.
type VideoStream interface {
	// Meta returns the stream geometry, frame rate and frame count.
	Meta() VideoMeta

	// ReadFrame returns the next frame, or io.EOF after the last one.
	ReadFrame() (image.Image, error)

	// Close releases the stream resources. Close is idempotent.
	Close() error
}
