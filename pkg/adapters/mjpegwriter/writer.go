// Package mjpegwriter writes MJPEG-in-AVI clips with the pure Go icza/mjpeg
// muxer, so the default codec works without an external encoder binary.
package mjpegwriter

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"strings"

	"github.com/icza/mjpeg"

	"github.com/user/stillmotion/pkg/ports"
)

var (
	// ErrNotOpen is returned when writer methods are called before Begin.
	ErrNotOpen = errors.New("mjpegwriter: writer is not open")

	// ErrAlreadyOpen is returned when Begin is called on an open writer.
	ErrAlreadyOpen = errors.New("mjpegwriter: writer is already open")
)

// DefaultQuality is the JPEG quality used for encoded frames.
const DefaultQuality = 95

// Writer implements ports.VideoWriter for fourcc MJPG in AVI containers.
type Writer struct {
	avi     mjpeg.AviWriter
	quality int
}

// New creates a new Writer encoding frames at DefaultQuality.
func New() *Writer {
	return &Writer{quality: DefaultQuality}
}

// NewWithQuality creates a Writer with an explicit JPEG quality (1-100).
func NewWithQuality(quality int) *Writer {
	if quality < 1 || quality > 100 {
		quality = DefaultQuality
	}
	return &Writer{quality: quality}
}

var _ ports.VideoWriter = (*Writer)(nil)

// Begin opens the AVI container at spec.Path.
func (w *Writer) Begin(spec ports.ClipSpec) error {
	if w.avi != nil {
		return ErrAlreadyOpen
	}
	if spec.FourCC != "" && !strings.EqualFold(spec.FourCC, "MJPG") {
		return fmt.Errorf("mjpegwriter: %w: fourcc %s is not MJPG",
			ports.ErrEncoderUnavailable, spec.FourCC)
	}

	avi, err := mjpeg.New(spec.Path, int32(spec.Width), int32(spec.Height), int32(spec.FPS))
	if err != nil {
		return fmt.Errorf("mjpegwriter: %w: %v", ports.ErrEncoderUnavailable, err)
	}
	w.avi = avi
	return nil
}

// WriteFrame JPEG-encodes one frame and appends it to the container.
func (w *Writer) WriteFrame(img image.Image) error {
	if w.avi == nil {
		return ErrNotOpen
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: w.quality}); err != nil {
		return fmt.Errorf("mjpegwriter: encode frame: %w", err)
	}
	if err := w.avi.AddFrame(buf.Bytes()); err != nil {
		return fmt.Errorf("mjpegwriter: add frame: %w", err)
	}
	return nil
}

// End patches the AVI headers and closes the file. Calling End on a writer
// that is not open is a no-op.
func (w *Writer) End() error {
	if w.avi == nil {
		return nil
	}
	avi := w.avi
	w.avi = nil
	if err := avi.Close(); err != nil {
		return fmt.Errorf("mjpegwriter: close: %w", err)
	}
	return nil
}
