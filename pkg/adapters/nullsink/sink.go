// Package nullsink provides the discard sink used when debug output is off.
package nullsink

import (
	"image"

	"github.com/user/stillmotion/pkg/ports"
)

// Sink drops every artifact. It is the default frame sink.
type Sink struct{}

// New creates a discard sink.
func New() *Sink {
	return &Sink{}
}

var _ ports.FrameSink = (*Sink)(nil)

// Enabled reports false so producers skip their debug work entirely.
func (*Sink) Enabled() bool {
	return false
}

func (*Sink) SaveCanvas(string, image.Image) error { return nil }

func (*Sink) SaveFrame(string, int, image.Image) error { return nil }
