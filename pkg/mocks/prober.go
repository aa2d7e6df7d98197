package mocks

import (
	"github.com/user/stillmotion/pkg/ports"
)

// ProbeCall records the parameters of one probe.
type ProbeCall struct {
	FourCC       string
	Width        int
	Height       int
	FPS          int
	ContainerExt string
}

// CodecProber is a mock implementation of ports.CodecProber. The default
// result reports a usable codec.
type CodecProber struct {
	ProbeFunc func(fourcc string, width, height, fps int, containerExt string) ports.ProbeResult

	// Recorded calls for verification
	ProbeCalls []ProbeCall
}

func (m *CodecProber) Probe(fourcc string, width, height, fps int, containerExt string) ports.ProbeResult {
	m.ProbeCalls = append(m.ProbeCalls, ProbeCall{
		FourCC:       fourcc,
		Width:        width,
		Height:       height,
		FPS:          fps,
		ContainerExt: containerExt,
	})
	if m.ProbeFunc != nil {
		return m.ProbeFunc(fourcc, width, height, fps, containerExt)
	}
	return ports.ProbeResult{Opened: true, WroteTestFrame: true}
}

var _ ports.CodecProber = (*CodecProber)(nil)
