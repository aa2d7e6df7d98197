package pipeline

import (
	"image"

	"github.com/user/stillmotion/pkg/ports"
)

// =============================================================================
// Common Types
// =============================================================================

// FrameWindow describes the zoom geometry of one frame: the canvas scale and
// the margins cropped away on each side. It is reproducible from the frame
// index and the target geometry alone.
type FrameWindow struct {
	Scale      float64
	MarginRows int
	MarginCols int
}

// WindowAt computes the frame window for a 0-based frame index. Margins are
// floored, each proportional to the opposite axis's target size so a uniform
// enlargement keeps the canvas aspect.
func WindowAt(index int, zoomRate float64, targetWidth, targetHeight int) FrameWindow {
	scale := 1 + float64(index)*zoomRate
	return FrameWindow{
		Scale:      scale,
		MarginRows: int((scale - 1) * float64(targetHeight)),
		MarginCols: int((scale - 1) * float64(targetWidth)),
	}
}

// FrameSequence is a finite, restartable sequence of rendered frames. Each
// frame is computed on demand from its index alone, so a sequence can be
// traversed any number of times, in any order, with identical results.
type FrameSequence interface {
	// Len returns the number of frames in the sequence.
	Len() int

	// Frame renders the frame at a 0-based index.
	Frame(index int) (*image.RGBA, error)
}

// =============================================================================
// Compose Stage Types
// =============================================================================

// ComposeInput contains parameters for canvas composition.
type ComposeInput struct {
	ImageData    []byte // Encoded source image (JPEG, PNG, GIF, WEBP, BMP, TIFF)
	TargetWidth  int    // Canvas width in pixels
	TargetHeight int    // Canvas height in pixels
	BlurKernel   int    // Gaussian kernel edge length; positive and odd
}

// DefaultComposeInput returns ComposeInput with default values.
func DefaultComposeInput() ComposeInput {
	return ComposeInput{
		TargetWidth:  1920,
		TargetHeight: 1080,
		BlurKernel:   195,
	}
}

// ComposeResult contains the composed canvas.
type ComposeResult struct {
	// Canvas is exactly TargetWidth×TargetHeight, fully opaque, anchored at
	// the origin.
	Canvas *image.RGBA

	// Wide reports the source classification: true when the source aspect
	// ratio exceeds the target aspect ratio.
	Wide bool
}

// =============================================================================
// Frames Stage Types
// =============================================================================

// FramesInput contains parameters for zoom sequence generation.
type FramesInput struct {
	Canvas       *image.RGBA // Composed canvas, read-only for the sequence
	FrameRate    int         // Frames per second; positive
	DurationSec  float64     // Clip length in seconds; positive
	ZoomRate     float64     // Scale increment per frame; within [0, 0.1]
	TargetWidth  int         // Frame width in pixels
	TargetHeight int         // Frame height in pixels
}

// DefaultFramesInput returns FramesInput with default values.
func DefaultFramesInput() FramesInput {
	return FramesInput{
		FrameRate:    25,
		DurationSec:  10,
		ZoomRate:     0.0004,
		TargetWidth:  1920,
		TargetHeight: 1080,
	}
}

// FramesResult contains the lazily rendered sequence.
type FramesResult struct {
	Sequence FrameSequence
}

// =============================================================================
// Encode Stage Types
// =============================================================================

// EncodeInput contains parameters for writing a sequence to one clip.
type EncodeInput struct {
	Sequence FrameSequence
	Clip     ports.ClipSpec
}

// EncodeResult describes the written clip.
type EncodeResult struct {
	FramesWritten int
}

// =============================================================================
// Stitch Stage Types
// =============================================================================

// StitchInput contains parameters for clip concatenation.
type StitchInput struct {
	InputPaths []string       // Source clips, concatenated in this order
	Output     ports.ClipSpec // Declared geometry all inputs must share
}

// StitchResult describes the stitched output.
type StitchResult struct {
	FramesWritten int
	InputFrames   []int // Frames contributed by each input, in input order
}
