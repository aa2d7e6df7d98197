// Package compose implements the canvas composition stage: a blurred cover
// backdrop filling the whole target frame, with the sharp source image
// overlaid on top.
package compose

import (
	"context"
	"fmt"
	"image"

	"github.com/user/stillmotion/pkg/pipeline"
	"github.com/user/stillmotion/pkg/ports"
)

// Stage composes one source image into a target-sized canvas.
type Stage struct {
	renderer ports.Renderer
}

// NewStage creates a new compose stage.
func NewStage(renderer ports.Renderer) *Stage {
	return &Stage{renderer: renderer}
}

var _ pipeline.Stage[pipeline.ComposeInput, pipeline.ComposeResult] = (*Stage)(nil)

// Execute validates the input, decodes the source image and composes the
// canvas. The returned canvas is exactly TargetWidth×TargetHeight.
func (s *Stage) Execute(ctx context.Context, input pipeline.ComposeInput) (pipeline.ComposeResult, error) {
	if err := validateInput(input); err != nil {
		return pipeline.ComposeResult{}, err
	}

	src, err := s.renderer.DecodeImage(input.ImageData)
	if err != nil {
		return pipeline.ComposeResult{}, fmt.Errorf("compose: %w: %v", ports.ErrUnreadableInput, err)
	}

	bounds := src.Bounds()
	sourceWidth := bounds.Dx()
	sourceHeight := bounds.Dy()
	if sourceWidth <= 0 || sourceHeight <= 0 {
		return pipeline.ComposeResult{}, fmt.Errorf("compose: %w: source image is empty", ports.ErrUnreadableInput)
	}

	// A source is wide when its aspect ratio exceeds the target's. The
	// overlay factor fits the source inside the target; the cover factor
	// saturates the opposite axis so the backdrop overflows and is cropped.
	idealRatio := float64(input.TargetWidth) / float64(input.TargetHeight)
	sourceRatio := float64(sourceWidth) / float64(sourceHeight)
	wide := sourceRatio > idealRatio

	var overlayFactor, coverFactor float64
	if wide {
		overlayFactor = float64(input.TargetWidth) / float64(sourceWidth)
		coverFactor = float64(input.TargetHeight) / float64(sourceHeight)
	} else {
		overlayFactor = float64(input.TargetHeight) / float64(sourceHeight)
		coverFactor = float64(input.TargetWidth) / float64(sourceWidth)
	}

	overlayWidth := int(float64(sourceWidth) * overlayFactor)
	overlayHeight := int(float64(sourceHeight) * overlayFactor)
	coverWidth := int(float64(sourceWidth) * coverFactor)
	coverHeight := int(float64(sourceHeight) * coverFactor)

	// Cubic keeps edges crisp when enlarging; area averaging avoids
	// moiré when shrinking. The cover is blurred anyway, so it always
	// takes the cubic path.
	var overlay *image.RGBA
	if overlayFactor > 1 {
		overlay = s.renderer.ResizeCubic(src, overlayWidth, overlayHeight)
	} else {
		overlay = s.renderer.ResizeArea(src, overlayWidth, overlayHeight)
	}

	cover := s.renderer.ResizeCubic(src, coverWidth, coverHeight)
	blurred := s.renderer.GaussianBlur(cover, input.BlurKernel)
	backdrop := s.renderer.Crop(blurred, 0, 0, input.TargetWidth, input.TargetHeight)

	// Horizontal placement is always centered. Vertical placement is
	// centered only for wide sources; narrow sources pin to the top.
	xOffset := input.TargetWidth/2 - overlayWidth/2
	yOffset := 0
	if wide {
		yOffset = input.TargetHeight/2 - overlayHeight/2
	}

	canvas := s.renderer.Paste(backdrop, overlay, xOffset, yOffset)
	canvas = s.renderer.Crop(canvas, 0, 0, input.TargetWidth, input.TargetHeight)

	return pipeline.ComposeResult{Canvas: canvas, Wide: wide}, nil
}

// validateInput checks the compose parameters before any work happens.
func validateInput(input pipeline.ComposeInput) error {
	if input.TargetWidth <= 0 || input.TargetHeight <= 0 {
		return fmt.Errorf("compose: %w: target dimensions must be positive (%dx%d)",
			ports.ErrInvalidParameter, input.TargetWidth, input.TargetHeight)
	}
	if input.BlurKernel <= 0 {
		return fmt.Errorf("compose: %w: blur kernel must be positive (%d)",
			ports.ErrInvalidParameter, input.BlurKernel)
	}
	if input.BlurKernel%2 == 0 {
		return fmt.Errorf("compose: %w: blur kernel must be odd (%d)",
			ports.ErrInvalidParameter, input.BlurKernel)
	}
	return nil
}
