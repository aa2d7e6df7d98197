package mocks

import (
	"image"

	"github.com/user/stillmotion/pkg/ports"
)

// VideoWriter is a mock implementation of ports.VideoWriter.
type VideoWriter struct {
	BeginFunc      func(spec ports.ClipSpec) error
	WriteFrameFunc func(img image.Image) error
	EndFunc        func() error

	// Recorded calls for verification
	BeginSpec *ports.ClipSpec
	Frames    []image.Image
	EndCalled bool
}

func (m *VideoWriter) Begin(spec ports.ClipSpec) error {
	m.BeginSpec = &spec
	if m.BeginFunc != nil {
		return m.BeginFunc(spec)
	}
	return nil
}

func (m *VideoWriter) WriteFrame(img image.Image) error {
	if m.WriteFrameFunc != nil {
		if err := m.WriteFrameFunc(img); err != nil {
			return err
		}
	}
	m.Frames = append(m.Frames, img)
	return nil
}

func (m *VideoWriter) End() error {
	m.EndCalled = true
	if m.EndFunc != nil {
		return m.EndFunc()
	}
	return nil
}

var _ ports.VideoWriter = (*VideoWriter)(nil)
