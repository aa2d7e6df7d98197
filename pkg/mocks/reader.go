package mocks

import (
	"fmt"
	"image"
	"io"

	"github.com/user/stillmotion/pkg/ports"
)

// VideoReader is a mock implementation of ports.VideoReader that serves
// prepared streams by path.
type VideoReader struct {
	OpenVideoFunc func(path string) (ports.VideoStream, error)

	// Streams maps paths to prepared streams, used when OpenVideoFunc is nil.
	Streams map[string]*VideoStream

	// Recorded calls for verification
	OpenedPaths []string
}

// NewVideoReader creates a mock VideoReader with no prepared streams.
func NewVideoReader() *VideoReader {
	return &VideoReader{Streams: make(map[string]*VideoStream)}
}

func (m *VideoReader) OpenVideo(path string) (ports.VideoStream, error) {
	m.OpenedPaths = append(m.OpenedPaths, path)
	if m.OpenVideoFunc != nil {
		return m.OpenVideoFunc(path)
	}
	if s, ok := m.Streams[path]; ok {
		s.pos = 0
		return s, nil
	}
	return nil, fmt.Errorf("%w: %s", ports.ErrInputNotFound, path)
}

var _ ports.VideoReader = (*VideoReader)(nil)

// VideoStream is a mock implementation of ports.VideoStream serving a fixed
// frame list.
type VideoStream struct {
	MetaValue     ports.VideoMeta
	FrameList     []image.Image
	ReadFrameFunc func() (image.Image, error)

	pos int

	// Recorded calls for verification
	CloseCalls int
}

func (m *VideoStream) Meta() ports.VideoMeta {
	return m.MetaValue
}

func (m *VideoStream) ReadFrame() (image.Image, error) {
	if m.ReadFrameFunc != nil {
		return m.ReadFrameFunc()
	}
	if m.pos >= len(m.FrameList) {
		return nil, io.EOF
	}
	img := m.FrameList[m.pos]
	m.pos++
	return img, nil
}

func (m *VideoStream) Close() error {
	m.CloseCalls++
	return nil
}

var _ ports.VideoStream = (*VideoStream)(nil)
