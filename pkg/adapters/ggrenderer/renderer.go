// Package ggrenderer provides a renderer implementation using the gg,
// x/image and imaging libraries.
package ggrenderer

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"golang.org/x/image/draw"

	"github.com/user/stillmotion/pkg/ports"

	// Decoders for the supported input formats.
	_ "image/gif"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Renderer implements ports.Renderer.
type Renderer struct{}

// New creates a new Renderer.
func New() *Renderer {
	return &Renderer{}
}

// DecodeImage decodes raster data, auto-detecting the format.
func (r *Renderer) DecodeImage(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}

// EncodeImage encodes an image to the specified format.
func (r *Renderer) EncodeImage(img image.Image, format ports.ImageFormat, quality int) ([]byte, error) {
	var buf bytes.Buffer

	switch format {
	case ports.FormatJPEG:
		opts := &jpeg.Options{Quality: quality}
		if err := jpeg.Encode(&buf, img, opts); err != nil {
			return nil, fmt.Errorf("encode JPEG: %w", err)
		}
	case ports.FormatPNG:
		if err := png.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("encode PNG: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported format: %d", format)
	}

	return buf.Bytes(), nil
}

// ResizeCubic resizes an image with Catmull-Rom cubic interpolation.
func (r *Renderer) ResizeCubic(img image.Image, width, height int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Over, nil)
	return dst
}

// ResizeArea resizes an image with area-averaging (box) interpolation,
// which avoids moiré when shrinking.
func (r *Renderer) ResizeArea(img image.Image, width, height int) *image.RGBA {
	return toRGBA(imaging.Resize(img, width, height, imaging.Box))
}

// GaussianBlur applies a symmetric Gaussian blur. The sigma is derived from
// the kernel edge length the way OpenCV derives it when given sigma 0:
// 0.3*((kernel-1)*0.5 - 1) + 0.8.
func (r *Renderer) GaussianBlur(img image.Image, kernel int) *image.RGBA {
	sigma := 0.3*((float64(kernel)-1)*0.5-1) + 0.8
	return toRGBA(imaging.Blur(img, sigma))
}

// Paste draws src over dst with its top-left corner at (x, y) and returns
// dst.
func (r *Renderer) Paste(dst *image.RGBA, src image.Image, x, y int) *image.RGBA {
	dc := gg.NewContextForRGBA(dst)
	dc.DrawImage(src, x, y)
	return dst
}

// Crop returns a copy of the requested window, clamped to the source bounds,
// with bounds anchored at the origin. Drawing libraries like gg expect a
// (0,0) origin, so the copy never aliases the source.
func (r *Renderer) Crop(img image.Image, x, y, width, height int) *image.RGBA {
	bounds := img.Bounds()

	srcX := bounds.Min.X + x
	srcY := bounds.Min.Y + y
	if srcX < bounds.Min.X {
		srcX = bounds.Min.X
	}
	if srcY < bounds.Min.Y {
		srcY = bounds.Min.Y
	}
	if srcX+width > bounds.Max.X {
		width = bounds.Max.X - srcX
	}
	if srcY+height > bounds.Max.Y {
		height = bounds.Max.Y - srcY
	}
	if width <= 0 || height <= 0 {
		return image.NewRGBA(image.Rect(0, 0, 0, 0))
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(dst, dst.Bounds(), img, image.Point{X: srcX, Y: srcY}, draw.Src)
	return dst
}

// toRGBA converts an image to *image.RGBA anchored at the origin.
func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Bounds().Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}

// Ensure Renderer implements ports.Renderer
var _ ports.Renderer = (*Renderer)(nil)
