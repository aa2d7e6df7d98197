package ports

import (
	"image"
)

// Renderer abstracts the image processing operations the pipeline needs.
type Renderer interface {
	// DecodeImage decodes raster data (JPEG, PNG, GIF, WEBP, BMP, TIFF).
	DecodeImage(data []byte) (image.Image, error)

	// EncodeImage encodes an image to the specified format.
	EncodeImage(img image.Image, format ImageFormat, quality int) ([]byte, error)

	// ResizeCubic resizes an image with cubic interpolation.
	ResizeCubic(img image.Image, width, height int) *image.RGBA

	// ResizeArea resizes an image with area-averaging interpolation.
	ResizeArea(img image.Image, width, height int) *image.RGBA

	// GaussianBlur applies a symmetric Gaussian blur sized by a square
	// kernel; sigma is derived from the kernel edge length.
	GaussianBlur(img image.Image, kernel int) *image.RGBA

	// Paste draws src over dst with its top-left corner at (x, y) and
	// returns dst.
	Paste(dst *image.RGBA, src image.Image, x, y int) *image.RGBA

	// Crop returns a copy of the (x, y)-(x+width, y+height) window with
	// bounds anchored at the origin.
	Crop(img image.Image, x, y, width, height int) *image.RGBA
}

// ImageFormat specifies image encoding format.
type ImageFormat int

const (
	FormatJPEG ImageFormat = iota
	FormatPNG
)
