package ports

import (
	"image"
)

// ClipSpec identifies one video stream: where it lives, how it is encoded,
// and its declared frame geometry.
type ClipSpec struct {
	Path   string
	FourCC string
	FPS    int
	Width  int
	Height int
}

// VideoWriter abstracts a single output video stream. Begin opens the
// stream, WriteFrame appends frames in temporal order, End finalizes the
// container. A writer handles one stream at a time.
type VideoWriter interface {
	// Begin opens the output described by spec. It fails when the codec or
	// the path cannot be used.
	Begin(spec ClipSpec) error

	// WriteFrame appends one frame. The frame must match the Begin geometry.
	WriteFrame(img image.Image) error

	// End finalizes the container and releases the underlying resource.
	End() error
}
