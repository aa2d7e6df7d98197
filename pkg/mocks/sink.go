package mocks

import (
	"image"
	"sync"

	"github.com/user/stillmotion/pkg/ports"
)

// FrameSave records one saved frame.
type FrameSave struct {
	Name  string
	Index int
}

// FrameSink is a mock implementation of ports.FrameSink.
type FrameSink struct {
	mu      sync.RWMutex
	enabled bool

	Canvases   map[string]image.Image
	FrameSaves []FrameSave
}

// NewFrameSink creates a new mock FrameSink.
func NewFrameSink(enabled bool) *FrameSink {
	return &FrameSink{
		enabled:  enabled,
		Canvases: make(map[string]image.Image),
	}
}

func (m *FrameSink) Enabled() bool {
	return m.enabled
}

func (m *FrameSink) SaveCanvas(name string, img image.Image) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Canvases[name] = img
	return nil
}

func (m *FrameSink) SaveFrame(name string, index int, img image.Image) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FrameSaves = append(m.FrameSaves, FrameSave{Name: name, Index: index})
	return nil
}

var _ ports.FrameSink = (*FrameSink)(nil)
