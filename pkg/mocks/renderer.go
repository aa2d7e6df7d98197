package mocks

import (
	"image"

	"github.com/user/stillmotion/pkg/ports"
)

// ResizeCall records the target dimensions of a resize.
type ResizeCall struct {
	Width  int
	Height int
}

// BlurCall records the kernel of a blur.
type BlurCall struct {
	Kernel int
}

// PasteCall records the placement of a paste.
type PasteCall struct {
	X int
	Y int
}

// CropCall records a crop window.
type CropCall struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Renderer is a mock implementation of ports.Renderer. Defaults return
// blank images of the requested geometry so stages can run end to end.
type Renderer struct {
	DecodeImageFunc  func(data []byte) (image.Image, error)
	EncodeImageFunc  func(img image.Image, format ports.ImageFormat, quality int) ([]byte, error)
	ResizeCubicFunc  func(img image.Image, width, height int) *image.RGBA
	ResizeAreaFunc   func(img image.Image, width, height int) *image.RGBA
	GaussianBlurFunc func(img image.Image, kernel int) *image.RGBA
	PasteFunc        func(dst *image.RGBA, src image.Image, x, y int) *image.RGBA
	CropFunc         func(img image.Image, x, y, width, height int) *image.RGBA

	// Recorded calls for verification
	ResizeCubicCalls []ResizeCall
	ResizeAreaCalls  []ResizeCall
	BlurCalls        []BlurCall
	PasteCalls       []PasteCall
	CropCalls        []CropCall
}

func (m *Renderer) DecodeImage(data []byte) (image.Image, error) {
	if m.DecodeImageFunc != nil {
		return m.DecodeImageFunc(data)
	}
	return image.NewRGBA(image.Rect(0, 0, 100, 100)), nil
}

func (m *Renderer) EncodeImage(img image.Image, format ports.ImageFormat, quality int) ([]byte, error) {
	if m.EncodeImageFunc != nil {
		return m.EncodeImageFunc(img, format, quality)
	}
	return []byte{}, nil
}

func (m *Renderer) ResizeCubic(img image.Image, width, height int) *image.RGBA {
	m.ResizeCubicCalls = append(m.ResizeCubicCalls, ResizeCall{Width: width, Height: height})
	if m.ResizeCubicFunc != nil {
		return m.ResizeCubicFunc(img, width, height)
	}
	return image.NewRGBA(image.Rect(0, 0, width, height))
}

func (m *Renderer) ResizeArea(img image.Image, width, height int) *image.RGBA {
	m.ResizeAreaCalls = append(m.ResizeAreaCalls, ResizeCall{Width: width, Height: height})
	if m.ResizeAreaFunc != nil {
		return m.ResizeAreaFunc(img, width, height)
	}
	return image.NewRGBA(image.Rect(0, 0, width, height))
}

func (m *Renderer) GaussianBlur(img image.Image, kernel int) *image.RGBA {
	m.BlurCalls = append(m.BlurCalls, BlurCall{Kernel: kernel})
	if m.GaussianBlurFunc != nil {
		return m.GaussianBlurFunc(img, kernel)
	}
	b := img.Bounds()
	return image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
}

func (m *Renderer) Paste(dst *image.RGBA, src image.Image, x, y int) *image.RGBA {
	m.PasteCalls = append(m.PasteCalls, PasteCall{X: x, Y: y})
	if m.PasteFunc != nil {
		return m.PasteFunc(dst, src, x, y)
	}
	return dst
}

func (m *Renderer) Crop(img image.Image, x, y, width, height int) *image.RGBA {
	m.CropCalls = append(m.CropCalls, CropCall{X: x, Y: y, Width: width, Height: height})
	if m.CropFunc != nil {
		return m.CropFunc(img, x, y, width, height)
	}
	return image.NewRGBA(image.Rect(0, 0, width, height))
}

var _ ports.Renderer = (*Renderer)(nil)
