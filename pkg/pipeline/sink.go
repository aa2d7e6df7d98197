package pipeline

import (
	"errors"
	"fmt"
	"image"

	"github.com/user/stillmotion/pkg/ports"
)

var (
	// ErrSinkClosed is returned when writing to a sink after Close.
	ErrSinkClosed = errors.New("pipeline: sink is closed")

	// ErrSinkGeometry is returned when a frame does not match the geometry
	// the sink was opened with. This is a bug in the caller, not a
	// recoverable condition.
	ErrSinkGeometry = errors.New("pipeline: frame does not match sink geometry")
)

// VideoSink is a scoped hold on one open output stream. NewVideoSink opens
// the stream; Close releases it on every path and is idempotent, so callers
// can defer it and still Close explicitly to surface the finalize error.
type VideoSink struct {
	writer ports.VideoWriter
	spec   ports.ClipSpec
	open   bool
	frames int
}

// NewVideoSink opens the output described by spec. Failure to open is an
// encoder availability problem; the writer adapters tag it as such.
func NewVideoSink(writer ports.VideoWriter, spec ports.ClipSpec) (*VideoSink, error) {
	if err := writer.Begin(spec); err != nil {
		return nil, fmt.Errorf("pipeline: open sink %s: %w", spec.Path, err)
	}
	return &VideoSink{writer: writer, spec: spec, open: true}, nil
}

// Spec returns the geometry the sink was opened with.
func (s *VideoSink) Spec() ports.ClipSpec {
	return s.spec
}

// FramesWritten returns the number of frames accepted so far.
func (s *VideoSink) FramesWritten() int {
	return s.frames
}

// Write appends one frame to the stream.
func (s *VideoSink) Write(img image.Image) error {
	if !s.open {
		return ErrSinkClosed
	}
	b := img.Bounds()
	if b.Dx() != s.spec.Width || b.Dy() != s.spec.Height {
		return fmt.Errorf("%w: %dx%d frame into %dx%d sink",
			ErrSinkGeometry, b.Dx(), b.Dy(), s.spec.Width, s.spec.Height)
	}
	if err := s.writer.WriteFrame(img); err != nil {
		return fmt.Errorf("pipeline: write frame %d: %w", s.frames, err)
	}
	s.frames++
	return nil
}

// Close finalizes the stream and releases the encoder resource. The first
// call returns the finalize error; subsequent calls return nil.
func (s *VideoSink) Close() error {
	if !s.open {
		return nil
	}
	s.open = false
	return s.writer.End()
}
