package logger

import "github.com/user/stillmotion/pkg/ports"

// Noop discards every message. The CLI uses it in quiet mode; tests use it
// to keep their output clean.
type Noop struct{}

// NewNoop creates a logger that discards everything.
func NewNoop() *Noop {
	return &Noop{}
}

var _ ports.Logger = (*Noop)(nil)

func (*Noop) Debug(string, ...interface{}) {}
func (*Noop) Info(string, ...interface{}) {}
func (*Noop) Warn(string, ...interface{}) {}
func (*Noop) Error(string, ...interface{}) {}

// WithComponent returns the logger unchanged.
func (n *Noop) WithComponent(string) ports.Logger { return n }
