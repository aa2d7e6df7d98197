// Package filesink provides a file-based debug frame sink implementation.
package filesink

import (
	"fmt"
	"image"
	"path/filepath"

	"github.com/user/stillmotion/pkg/ports"
)

// Sink saves intermediate pipeline artifacts as PNG files for inspection.
type Sink struct {
	baseDir  string
	fs       ports.FileSystem
	renderer ports.Renderer
}

// New creates a new file sink rooted at baseDir.
func New(baseDir string, fs ports.FileSystem, renderer ports.Renderer) *Sink {
	return &Sink{
		baseDir:  baseDir,
		fs:       fs,
		renderer: renderer,
	}
}

// Enabled returns true as this sink saves output.
func (s *Sink) Enabled() bool {
	return true
}

// SaveCanvas stores the composed canvas as <name>-canvas.png.
func (s *Sink) SaveCanvas(name string, img image.Image) error {
	data, err := s.renderer.EncodeImage(img, ports.FormatPNG, 0)
	if err != nil {
		return fmt.Errorf("encode canvas: %w", err)
	}

	fileName := "canvas.png"
	if name != "" {
		fileName = name + "-canvas.png"
	}
	return s.fs.WriteFile(filepath.Join(s.baseDir, fileName), data)
}

// SaveFrame stores one generated frame as frames/<name>/frame-%04d.png.
func (s *Sink) SaveFrame(name string, index int, img image.Image) error {
	dir := filepath.Join(s.baseDir, "frames", name)
	if err := s.fs.MkdirAll(dir); err != nil {
		return err
	}

	data, err := s.renderer.EncodeImage(img, ports.FormatPNG, 0)
	if err != nil {
		return fmt.Errorf("encode frame %d: %w", index, err)
	}
	return s.fs.WriteFile(filepath.Join(dir, fmt.Sprintf("frame-%04d.png", index)), data)
}

// Ensure Sink implements ports.FrameSink
var _ ports.FrameSink = (*Sink)(nil)
