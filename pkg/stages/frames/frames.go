// Package frames implements the zoom sequence stage: a finite, restartable
// sequence of frames rendered lazily from one composed canvas.
package frames

import (
	"context"
	"fmt"
	"image"
	"math"

	"github.com/user/stillmotion/pkg/pipeline"
	"github.com/user/stillmotion/pkg/ports"
)

// Stage turns a canvas into a zoom frame sequence.
type Stage struct {
	renderer ports.Renderer
}

// NewStage creates a new frames stage.
func NewStage(renderer ports.Renderer) *Stage {
	return &Stage{renderer: renderer}
}

var _ pipeline.Stage[pipeline.FramesInput, pipeline.FramesResult] = (*Stage)(nil)

// Execute validates the input and returns a lazy frame sequence. No frame is
// rendered until the sequence is consumed.
func (s *Stage) Execute(ctx context.Context, input pipeline.FramesInput) (pipeline.FramesResult, error) {
	if err := validateInput(input); err != nil {
		return pipeline.FramesResult{}, err
	}

	count := int(math.Round(float64(input.FrameRate) * input.DurationSec))
	return pipeline.FramesResult{
		Sequence: &zoomSequence{
			renderer:     s.renderer,
			canvas:       input.Canvas,
			count:        count,
			zoomRate:     input.ZoomRate,
			targetWidth:  input.TargetWidth,
			targetHeight: input.TargetHeight,
		},
	}, nil
}

// validateInput checks the sequence parameters before any frame is produced.
func validateInput(input pipeline.FramesInput) error {
	if input.Canvas == nil {
		return fmt.Errorf("frames: %w: canvas is required", ports.ErrInvalidParameter)
	}
	if input.FrameRate <= 0 {
		return fmt.Errorf("frames: %w: frame rate must be positive (%d)",
			ports.ErrInvalidParameter, input.FrameRate)
	}
	if input.DurationSec <= 0 {
		return fmt.Errorf("frames: %w: duration must be positive (%g)",
			ports.ErrInvalidParameter, input.DurationSec)
	}
	if input.ZoomRate < 0 || input.ZoomRate > 0.1 {
		return fmt.Errorf("frames: %w: zoom rate must be between 0 and 0.1 (%g)",
			ports.ErrInvalidParameter, input.ZoomRate)
	}
	if input.TargetWidth <= 0 || input.TargetHeight <= 0 {
		return fmt.Errorf("frames: %w: target dimensions must be positive (%dx%d)",
			ports.ErrInvalidParameter, input.TargetWidth, input.TargetHeight)
	}
	return nil
}

// zoomSequence renders each frame on demand from its index alone, so the
// sequence can be traversed repeatedly and out of order.
type zoomSequence struct {
	renderer     ports.Renderer
	canvas       *image.RGBA
	count        int
	zoomRate     float64
	targetWidth  int
	targetHeight int
}

var _ pipeline.FrameSequence = (*zoomSequence)(nil)

func (q *zoomSequence) Len() int {
	return q.count
}

func (q *zoomSequence) Frame(index int) (*image.RGBA, error) {
	if index < 0 || index >= q.count {
		return nil, fmt.Errorf("frames: %w: frame index %d out of range [0, %d)",
			ports.ErrInvalidParameter, index, q.count)
	}

	window := pipeline.WindowAt(index, q.zoomRate, q.targetWidth, q.targetHeight)
	enlarged := q.renderer.ResizeCubic(q.canvas,
		q.targetWidth+2*window.MarginCols,
		q.targetHeight+2*window.MarginRows)
	return q.renderer.Crop(enlarged,
		window.MarginCols, window.MarginRows,
		q.targetWidth, q.targetHeight), nil
}
