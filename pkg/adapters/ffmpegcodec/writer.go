package ffmpegcodec

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"io"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"

	"github.com/user/stillmotion/pkg/ports"
)

// Writer implements ports.VideoWriter by piping raw RGBA frames into an
// ffmpeg process that encodes straight to the clip path.
type Writer struct {
	mu     sync.Mutex
	spec   ports.ClipSpec
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	stderr bytes.Buffer
	open   bool
}

// NewWriter creates a new ffmpeg-backed writer.
func NewWriter() *Writer {
	return &Writer{}
}

var _ ports.VideoWriter = (*Writer)(nil)

// Begin starts the ffmpeg process for the clip. It fails with
// ports.ErrEncoderUnavailable when the fourcc has no encoder mapping or
// when ffmpeg cannot be located or started.
func (w *Writer) Begin(spec ports.ClipSpec) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.open {
		return ErrAlreadyOpen
	}

	codec, err := codecArgs(spec)
	if err != nil {
		return err
	}

	ffmpegPath, err := FindFFmpeg()
	if err != nil {
		return fmt.Errorf("ffmpegcodec: %w: %v", ports.ErrEncoderUnavailable, err)
	}

	args := []string{
		"-y",
		"-f", "rawvideo",
		"-pix_fmt", "rgba",
		"-s", fmt.Sprintf("%dx%d", spec.Width, spec.Height),
		"-r", fmt.Sprintf("%d", spec.FPS),
		"-i", "pipe:0",
	}
	args = append(args, codec...)
	args = append(args, spec.Path)

	cmd := exec.Command(ffmpegPath, args...)
	w.stderr.Reset()
	cmd.Stderr = &w.stderr

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("ffmpegcodec: stdin pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("ffmpegcodec: %w: start ffmpeg: %v", ports.ErrEncoderUnavailable, err)
	}

	w.spec = spec
	w.cmd = cmd
	w.stdin = stdin
	w.open = true
	return nil
}

// WriteFrame feeds one frame to the encoder as raw RGBA bytes.
func (w *Writer) WriteFrame(img image.Image) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.open {
		return ErrNotOpen
	}

	rgba, ok := img.(*image.RGBA)
	if !ok || rgba.Bounds() != image.Rect(0, 0, w.spec.Width, w.spec.Height) {
		converted := image.NewRGBA(image.Rect(0, 0, w.spec.Width, w.spec.Height))
		draw.Draw(converted, converted.Bounds(), img, img.Bounds().Min, draw.Src)
		rgba = converted
	}

	if _, err := w.stdin.Write(rgba.Pix); err != nil {
		return fmt.Errorf("ffmpegcodec: write frame: %w\nstderr: %s", err, stderrTail(w.stderr.String()))
	}
	return nil
}

// End closes the frame pipe and waits for ffmpeg to finish the file.
// Calling End on a writer that is not open is a no-op.
func (w *Writer) End() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.open {
		return nil
	}
	w.open = false

	w.stdin.Close()
	w.stdin = nil
	cmd := w.cmd
	w.cmd = nil

	if err := cmd.Wait(); err != nil {
		return fmt.Errorf("ffmpegcodec: encode %s: %w\nstderr: %s", w.spec.Path, err, stderrTail(w.stderr.String()))
	}
	return nil
}

// codecArgs maps a clip fourcc to ffmpeg encoder arguments. The fourcc is
// matched case-insensitively; the -vtag for MPEG-4 keeps the caller's case.
func codecArgs(spec ports.ClipSpec) ([]string, error) {
	ext := strings.ToLower(filepath.Ext(spec.Path))

	switch strings.ToUpper(spec.FourCC) {
	case "AVC1", "H264":
		args := []string{
			"-c:v", "libx264",
			"-preset", "fast",
			"-crf", "23",
			"-pix_fmt", "yuv420p",
			"-profile:v", "baseline",
			"-level", "3.1",
		}
		if ext == ".mp4" || ext == ".mov" {
			args = append(args, "-movflags", "+faststart")
		}
		return args, nil

	case "AV01":
		return []string{
			"-c:v", "libaom-av1",
			"-crf", "30",
			"-b:v", "0",
			"-cpu-used", "8",
			"-row-mt", "1",
			"-pix_fmt", "yuv420p",
		}, nil

	case "MP4V", "DIVX", "XVID":
		return []string{
			"-c:v", "mpeg4",
			"-qscale:v", "5",
			"-vtag", spec.FourCC,
		}, nil

	default:
		return nil, fmt.Errorf("ffmpegcodec: %w: no encoder for fourcc %q", ports.ErrEncoderUnavailable, spec.FourCC)
	}
}
