// Package codecprobe checks whether a codec/container pair can produce
// output on this machine by opening a writer on a throwaway file and
// pushing one test frame through it.
package codecprobe

import (
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/user/stillmotion/pkg/adapters/smartcodec"
	"github.com/user/stillmotion/pkg/ports"
)

// Probe implements ports.CodecProber through a writer factory.
type Probe struct {
	newWriter func() ports.VideoWriter
}

// New creates a probe backed by the routing writer.
func New() *Probe {
	return &Probe{newWriter: func() ports.VideoWriter { return smartcodec.NewWriter() }}
}

// NewWithFactory creates a probe with a custom writer factory.
func NewWithFactory(factory func() ports.VideoWriter) *Probe {
	return &Probe{newWriter: factory}
}

var _ ports.CodecProber = (*Probe)(nil)

// Probe opens a writer for the codec and geometry under a temporary path,
// writes one blank frame and finalizes. The temporary file never survives
// the call. The outcome is reported structurally, never as an error.
func (p *Probe) Probe(fourcc string, width, height, fps int, containerExt string) ports.ProbeResult {
	var result ports.ProbeResult

	dir, err := os.MkdirTemp("", "codecprobe_*")
	if err != nil {
		return result
	}
	defer os.RemoveAll(dir)

	if !strings.HasPrefix(containerExt, ".") {
		containerExt = "." + containerExt
	}
	spec := ports.ClipSpec{
		Path:   filepath.Join(dir, "probe"+containerExt),
		FourCC: fourcc,
		FPS:    fps,
		Width:  width,
		Height: height,
	}

	writer := p.newWriter()
	if err := writer.Begin(spec); err != nil {
		return result
	}
	result.Opened = true

	frame := image.NewRGBA(image.Rect(0, 0, width, height))
	wrote := writer.WriteFrame(frame) == nil

	// A piped encoder only proves the write once the file finalizes.
	if err := writer.End(); err == nil && wrote {
		result.WroteTestFrame = true
	}
	return result
}
