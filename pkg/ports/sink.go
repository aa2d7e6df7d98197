package ports

import (
	"image"
)

// FrameSink receives intermediate pipeline artifacts for inspection.
// Adapters decide where (or whether) the artifacts are stored.
type FrameSink interface {
	// Enabled returns true if the sink stores anything. Producers should
	// skip expensive preparation when it returns false.
	Enabled() bool

	// SaveCanvas stores the composed canvas for one clip, keyed by a name
	// derived from the source image.
	SaveCanvas(name string, img image.Image) error

	// SaveFrame stores one generated frame by sequence index.
	SaveFrame(name string, index int, img image.Image) error
}
