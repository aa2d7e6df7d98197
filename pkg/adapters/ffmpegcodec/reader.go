package ffmpegcodec

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"github.com/user/stillmotion/pkg/ports"
)

// Reader implements ports.VideoReader by extracting every frame to a PNG
// file in a temp directory, then streaming the decoded files in order.
type Reader struct{}

// NewReader creates a new ffmpeg-backed reader.
func NewReader() *Reader {
	return &Reader{}
}

var _ ports.VideoReader = (*Reader)(nil)

// OpenVideo extracts the clip's frames and returns a stream over them.
// Any failure to open, decode or extract wraps ports.ErrInputNotFound.
func (r *Reader) OpenVideo(path string) (ports.VideoStream, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("ffmpegcodec: %w: %v", ports.ErrInputNotFound, err)
	}

	ffmpegPath, err := FindFFmpeg()
	if err != nil {
		return nil, fmt.Errorf("ffmpegcodec: %w: %v", ports.ErrInputNotFound, err)
	}

	dir, err := os.MkdirTemp("", "ffmpegcodec_*")
	if err != nil {
		return nil, fmt.Errorf("ffmpegcodec: temp dir: %w", err)
	}

	var stderr bytes.Buffer
	cmd := exec.Command(ffmpegPath, "-y", "-i", path, filepath.Join(dir, "frame_%08d.png"))
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		os.RemoveAll(dir)
		return nil, fmt.Errorf("ffmpegcodec: %w: decode %s: %v\nstderr: %s",
			ports.ErrInputNotFound, path, err, stderrTail(stderr.String()))
	}

	files, err := frameFiles(dir)
	if err != nil {
		os.RemoveAll(dir)
		return nil, err
	}
	if len(files) == 0 {
		os.RemoveAll(dir)
		return nil, fmt.Errorf("ffmpegcodec: %w: no frames in %s", ports.ErrInputNotFound, path)
	}

	meta, err := probeMeta(path, files)
	if err != nil {
		os.RemoveAll(dir)
		return nil, fmt.Errorf("ffmpegcodec: %w: %v", ports.ErrInputNotFound, err)
	}

	return &Stream{dir: dir, files: files, meta: meta}, nil
}

// frameFiles lists the extracted PNGs in frame order. Zero-padded names
// make the lexical sort numeric.
func frameFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("ffmpegcodec: list frames: %w", err)
	}
	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".png") {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

// probeMeta fills the stream metadata. MP4-family containers are probed
// structurally; for anything else the geometry comes from the first
// extracted frame and the frame rate is unknown.
func probeMeta(path string, frames []string) (ports.VideoMeta, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".mp4" || ext == ".mov" {
		if meta, err := ProbeMP4(path); err == nil {
			meta.FrameCount = len(frames)
			return meta, nil
		}
	}

	f, err := os.Open(frames[0])
	if err != nil {
		return ports.VideoMeta{}, fmt.Errorf("open first frame: %w", err)
	}
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	if err != nil {
		return ports.VideoMeta{}, fmt.Errorf("decode first frame: %w", err)
	}
	return ports.VideoMeta{
		Width:      cfg.Width,
		Height:     cfg.Height,
		FrameCount: len(frames),
	}, nil
}

// Stream walks the extracted frame files of one opened clip.
type Stream struct {
	dir   string
	files []string
	meta  ports.VideoMeta
	pos   int
}

var _ ports.VideoStream = (*Stream)(nil)

// Meta returns the stream geometry, frame rate and frame count.
func (s *Stream) Meta() ports.VideoMeta {
	return s.meta
}

// ReadFrame decodes the next frame, or returns io.EOF after the last one.
func (s *Stream) ReadFrame() (image.Image, error) {
	if s.dir == "" {
		return nil, ErrClosed
	}
	if s.pos >= len(s.files) {
		return nil, io.EOF
	}

	f, err := os.Open(s.files[s.pos])
	if err != nil {
		return nil, fmt.Errorf("ffmpegcodec: read frame %d: %w", s.pos, err)
	}
	img, err := png.Decode(f)
	f.Close()
	if err != nil {
		return nil, fmt.Errorf("ffmpegcodec: decode frame %d: %w", s.pos, err)
	}
	s.pos++
	return img, nil
}

// Close removes the extracted frames. Idempotent.
func (s *Stream) Close() error {
	if s.dir == "" {
		return nil
	}
	dir := s.dir
	s.dir = ""
	return os.RemoveAll(dir)
}
