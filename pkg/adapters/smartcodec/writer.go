// Package smartcodec routes clips to a concrete codec backend based on the
// requested fourcc and the file extension. MJPEG stays pure Go; everything
// else goes through ffmpeg.
package smartcodec

import (
	"errors"
	"fmt"
	"image"
	"path/filepath"
	"strings"

	"github.com/user/stillmotion/pkg/adapters/ffmpegcodec"
	"github.com/user/stillmotion/pkg/adapters/mjpegwriter"
	"github.com/user/stillmotion/pkg/ports"
)

// ErrNotOpen is returned when frames are written before Begin.
var ErrNotOpen = errors.New("smartcodec: writer is not open")

// Writer selects a backend writer at Begin and delegates to it.
type Writer struct {
	inner ports.VideoWriter
}

// NewWriter creates a routing writer.
func NewWriter() *Writer {
	return &Writer{}
}

var _ ports.VideoWriter = (*Writer)(nil)

// Begin routes the clip spec to a backend and opens it. An unknown
// fourcc/extension pair fails with ports.ErrEncoderUnavailable.
func (w *Writer) Begin(spec ports.ClipSpec) error {
	inner, err := routeWriter(spec)
	if err != nil {
		return err
	}
	if err := inner.Begin(spec); err != nil {
		return err
	}
	w.inner = inner
	return nil
}

// WriteFrame delegates to the backend selected at Begin.
func (w *Writer) WriteFrame(img image.Image) error {
	if w.inner == nil {
		return ErrNotOpen
	}
	return w.inner.WriteFrame(img)
}

// End finalizes the backend writer and releases it.
func (w *Writer) End() error {
	if w.inner == nil {
		return nil
	}
	inner := w.inner
	w.inner = nil
	return inner.End()
}

// routeWriter picks the backend for a clip spec.
func routeWriter(spec ports.ClipSpec) (ports.VideoWriter, error) {
	ext := strings.ToLower(filepath.Ext(spec.Path))
	fourcc := strings.ToUpper(spec.FourCC)

	switch fourcc {
	case "MJPG":
		if ext == ".avi" {
			return mjpegwriter.New(), nil
		}
	case "AVC1", "H264", "AV01", "MP4V", "DIVX", "XVID":
		return ffmpegcodec.NewWriter(), nil
	}

	return nil, fmt.Errorf("smartcodec: %w: no route for fourcc %q with extension %q",
		ports.ErrEncoderUnavailable, spec.FourCC, ext)
}
