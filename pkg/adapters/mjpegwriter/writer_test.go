package mjpegwriter

import (
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/user/stillmotion/pkg/ports"
)

func testFrame(width, height int, shade uint8) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, color.RGBA{R: shade, G: shade, B: shade, A: 255})
		}
	}
	return img
}

func TestWriter_WritesPlayableFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.avi")

	w := New()
	err := w.Begin(ports.ClipSpec{Path: path, FourCC: "MJPG", FPS: 10, Width: 64, Height: 48})
	if err != nil {
		t.Fatalf("Begin failed: %v", err)
	}

	for i := 0; i < 5; i++ {
		if err := w.WriteFrame(testFrame(64, 48, uint8(i*40))); err != nil {
			t.Fatalf("WriteFrame %d failed: %v", i, err)
		}
	}

	if err := w.End(); err != nil {
		t.Fatalf("End failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Output missing: %v", err)
	}
	if info.Size() < 100 {
		t.Errorf("Output suspiciously small: %d bytes", info.Size())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data[0:4]) != "RIFF" || string(data[8:12]) != "AVI " {
		t.Errorf("Expected RIFF/AVI signature, got %q %q", data[0:4], data[8:12])
	}
}

func TestWriter_RejectsForeignFourCC(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.avi")

	w := New()
	err := w.Begin(ports.ClipSpec{Path: path, FourCC: "avc1", FPS: 10, Width: 64, Height: 48})
	if !errors.Is(err, ports.ErrEncoderUnavailable) {
		t.Errorf("Expected ErrEncoderUnavailable, got %v", err)
	}
}

func TestWriter_UnwritablePath(t *testing.T) {
	w := New()
	err := w.Begin(ports.ClipSpec{
		Path:   filepath.Join(t.TempDir(), "missing", "dirs", "out.avi"),
		FourCC: "MJPG", FPS: 10, Width: 64, Height: 48,
	})
	if !errors.Is(err, ports.ErrEncoderUnavailable) {
		t.Errorf("Expected ErrEncoderUnavailable, got %v", err)
	}
}

func TestWriter_WriteBeforeBegin(t *testing.T) {
	w := New()
	if err := w.WriteFrame(testFrame(64, 48, 0)); !errors.Is(err, ErrNotOpen) {
		t.Errorf("Expected ErrNotOpen, got %v", err)
	}
}

func TestWriter_EndIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.avi")

	w := New()
	if err := w.Begin(ports.ClipSpec{Path: path, FourCC: "MJPG", FPS: 10, Width: 64, Height: 48}); err != nil {
		t.Fatalf("Begin failed: %v", err)
	}
	if err := w.WriteFrame(testFrame(64, 48, 128)); err != nil {
		t.Fatalf("WriteFrame failed: %v", err)
	}

	if err := w.End(); err != nil {
		t.Fatalf("First End failed: %v", err)
	}
	if err := w.End(); err != nil {
		t.Errorf("Second End should be a no-op, got %v", err)
	}
}

func TestWriter_ReusableAfterEnd(t *testing.T) {
	dir := t.TempDir()

	w := New()
	for _, name := range []string{"a.avi", "b.avi"} {
		path := filepath.Join(dir, name)
		if err := w.Begin(ports.ClipSpec{Path: path, FourCC: "MJPG", FPS: 10, Width: 32, Height: 32}); err != nil {
			t.Fatalf("Begin %s failed: %v", name, err)
		}
		if err := w.WriteFrame(testFrame(32, 32, 200)); err != nil {
			t.Fatalf("WriteFrame %s failed: %v", name, err)
		}
		if err := w.End(); err != nil {
			t.Fatalf("End %s failed: %v", name, err)
		}
		if _, err := os.Stat(path); err != nil {
			t.Errorf("Output %s missing: %v", name, err)
		}
	}
}

func TestWriter_DoubleBegin(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.avi")

	w := New()
	if err := w.Begin(ports.ClipSpec{Path: path, FourCC: "MJPG", FPS: 10, Width: 32, Height: 32}); err != nil {
		t.Fatalf("Begin failed: %v", err)
	}
	defer w.End()

	if err := w.Begin(ports.ClipSpec{Path: path, FourCC: "MJPG", FPS: 10, Width: 32, Height: 32}); !errors.Is(err, ErrAlreadyOpen) {
		t.Errorf("Expected ErrAlreadyOpen, got %v", err)
	}
}
