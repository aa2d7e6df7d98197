// Package avireader reads MJPEG-in-AVI clips by walking the RIFF chunk tree
// directly, so AVI input needs no external decoder binary.
package avireader

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"math"
	"os"
	"strings"

	"github.com/user/stillmotion/pkg/ports"
)

var (
	// ErrUnsupportedCodec is returned when the AVI stream handler is not
	// MJPG. Callers can fall back to an external decoder on this error.
	ErrUnsupportedCodec = errors.New("avireader: unsupported codec")

	// ErrClosed is returned when reading from a closed stream.
	ErrClosed = errors.New("avireader: stream is closed")

	errMalformed = errors.New("not a RIFF/AVI file")
)

// Reader implements ports.VideoReader for MJPEG AVI files.
type Reader struct{}

// New creates a new Reader.
func New() *Reader {
	return &Reader{}
}

var _ ports.VideoReader = (*Reader)(nil)

// OpenVideo opens an AVI file and indexes its frames. The whole chunk tree
// is walked up front; frame payloads stay on disk until ReadFrame.
func (r *Reader) OpenVideo(path string) (ports.VideoStream, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("avireader: %w: %v", ports.ErrInputNotFound, err)
	}

	hdr, frames, err := parseAVI(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("avireader: open %s: %w: %w", path, ports.ErrInputNotFound, err)
	}

	return &Stream{
		file: f,
		meta: ports.VideoMeta{
			Width:      hdr.width,
			Height:     hdr.height,
			FPS:        hdr.fps(),
			FrameCount: len(frames),
		},
		frames: frames,
	}, nil
}

// Stream is one opened AVI file.
type Stream struct {
	file   *os.File
	meta   ports.VideoMeta
	frames []frameRef
	pos    int
}

// frameRef locates one frame payload within the file.
type frameRef struct {
	offset int64
	size   uint32
}

var _ ports.VideoStream = (*Stream)(nil)

// Meta returns the stream geometry, frame rate and frame count.
func (s *Stream) Meta() ports.VideoMeta {
	return s.meta
}

// ReadFrame decodes the next frame, or returns io.EOF after the last one.
func (s *Stream) ReadFrame() (image.Image, error) {
	if s.file == nil {
		return nil, ErrClosed
	}
	if s.pos >= len(s.frames) {
		return nil, io.EOF
	}

	ref := s.frames[s.pos]
	buf := make([]byte, ref.size)
	if _, err := s.file.ReadAt(buf, ref.offset); err != nil {
		return nil, fmt.Errorf("avireader: read frame %d: %w", s.pos, err)
	}
	img, err := jpeg.Decode(bytes.NewReader(buf))
	if err != nil {
		return nil, fmt.Errorf("avireader: decode frame %d: %w", s.pos, err)
	}
	s.pos++
	return img, nil
}

// Close releases the file handle. Idempotent.
func (s *Stream) Close() error {
	if s.file == nil {
		return nil
	}
	f := s.file
	s.file = nil
	return f.Close()
}

// aviHeader carries what the hdrl list declares about the video stream.
type aviHeader struct {
	width       int
	height      int
	usPerFrame  uint32
	scale, rate uint32
	handler     string
}

// fps derives the frame rate, preferring the stream header's rate/scale over
// the coarser microseconds-per-frame field.
func (h aviHeader) fps() int {
	if h.scale > 0 && h.rate > 0 {
		return int(math.Round(float64(h.rate) / float64(h.scale)))
	}
	if h.usPerFrame > 0 {
		return int(math.Round(1e6 / float64(h.usPerFrame)))
	}
	return 0
}

// parseAVI walks the top-level RIFF chunks: hdrl for geometry, movi for the
// frame index. Anything else (JUNK, INFO, idx1) is skipped.
func parseAVI(f *os.File) (aviHeader, []frameRef, error) {
	var riff [12]byte
	if _, err := io.ReadFull(f, riff[:]); err != nil {
		return aviHeader{}, nil, errMalformed
	}
	if string(riff[0:4]) != "RIFF" || string(riff[8:12]) != "AVI " {
		return aviHeader{}, nil, errMalformed
	}

	var hdr aviHeader
	var frames []frameRef

	for {
		var ch [8]byte
		if _, err := io.ReadFull(f, ch[:]); err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				break
			}
			return hdr, nil, err
		}
		id := string(ch[0:4])
		size := binary.LittleEndian.Uint32(ch[4:8])

		if id != "LIST" {
			if err := skipChunk(f, size); err != nil {
				return hdr, nil, err
			}
			continue
		}

		var kind [4]byte
		if _, err := io.ReadFull(f, kind[:]); err != nil {
			return hdr, nil, err
		}
		payload := size - 4

		switch string(kind[:]) {
		case "hdrl":
			data := make([]byte, payload)
			if _, err := io.ReadFull(f, data); err != nil {
				return hdr, nil, err
			}
			parseHdrl(data, &hdr)
			if err := skipPad(f, size); err != nil {
				return hdr, nil, err
			}
		case "movi":
			start, err := f.Seek(0, io.SeekCurrent)
			if err != nil {
				return hdr, nil, err
			}
			refs, err := scanMovi(f, int64(payload))
			if err != nil {
				return hdr, nil, err
			}
			frames = append(frames, refs...)
			end := start + int64(payload) + int64(size%2)
			if _, err := f.Seek(end, io.SeekStart); err != nil {
				return hdr, nil, err
			}
		default:
			if err := skipChunk(f, payload); err != nil {
				return hdr, nil, err
			}
		}
	}

	if hdr.width <= 0 || hdr.height <= 0 {
		return hdr, nil, errors.New("missing stream geometry")
	}
	if hdr.handler != "" && !strings.EqualFold(hdr.handler, "MJPG") {
		return hdr, nil, fmt.Errorf("%w: %s", ErrUnsupportedCodec, hdr.handler)
	}
	if len(frames) == 0 {
		return hdr, nil, errors.New("no frames in movi list")
	}
	return hdr, frames, nil
}

// parseHdrl pulls geometry and timing out of an in-memory hdrl payload.
func parseHdrl(data []byte, hdr *aviHeader) {
	walkChunks(data, func(id string, body []byte) {
		switch id {
		case "avih":
			if len(body) >= 40 {
				hdr.usPerFrame = binary.LittleEndian.Uint32(body[0:4])
				hdr.width = int(binary.LittleEndian.Uint32(body[32:36]))
				hdr.height = int(binary.LittleEndian.Uint32(body[36:40]))
			}
		case "LIST":
			if len(body) >= 4 && string(body[0:4]) == "strl" {
				parseStrl(body[4:], hdr)
			}
		}
	})
}

// parseStrl reads the first video stream header in a strl list.
func parseStrl(data []byte, hdr *aviHeader) {
	walkChunks(data, func(id string, body []byte) {
		if id != "strh" || len(body) < 28 {
			return
		}
		if string(body[0:4]) != "vids" {
			return
		}
		hdr.handler = strings.TrimRight(string(body[4:8]), "\x00 ")
		hdr.scale = binary.LittleEndian.Uint32(body[20:24])
		hdr.rate = binary.LittleEndian.Uint32(body[24:28])
	})
}

// walkChunks iterates the chunks of an in-memory RIFF payload, honoring the
// even-byte chunk alignment.
func walkChunks(data []byte, visit func(id string, body []byte)) {
	pos := 0
	for pos+8 <= len(data) {
		id := string(data[pos : pos+4])
		size := int(binary.LittleEndian.Uint32(data[pos+4 : pos+8]))
		if size < 0 || pos+8+size > len(data) {
			return
		}
		visit(id, data[pos+8:pos+8+size])
		pos += 8 + size + size%2
	}
}

// scanMovi records the offset and size of every video data chunk in the
// movi list. Interleave ("rec ") lists are descended into.
func scanMovi(f *os.File, remaining int64) ([]frameRef, error) {
	var refs []frameRef
	for remaining >= 8 {
		var ch [8]byte
		if _, err := io.ReadFull(f, ch[:]); err != nil {
			return nil, err
		}
		remaining -= 8

		id := string(ch[0:4])
		size := binary.LittleEndian.Uint32(ch[4:8])

		if id == "LIST" {
			if _, err := f.Seek(4, io.SeekCurrent); err != nil {
				return nil, err
			}
			remaining -= 4
			continue
		}

		if id == "00dc" || id == "00db" {
			offset, err := f.Seek(0, io.SeekCurrent)
			if err != nil {
				return nil, err
			}
			refs = append(refs, frameRef{offset: offset, size: size})
		}

		skip := int64(size) + int64(size%2)
		if _, err := f.Seek(skip, io.SeekCurrent); err != nil {
			return nil, err
		}
		remaining -= skip
	}
	return refs, nil
}

// skipChunk advances past a chunk payload and its padding byte.
func skipChunk(f *os.File, size uint32) error {
	_, err := f.Seek(int64(size)+int64(size%2), io.SeekCurrent)
	return err
}

// skipPad consumes the padding byte of an odd-sized list that was otherwise
// fully read.
func skipPad(f *os.File, size uint32) error {
	if size%2 == 0 {
		return nil
	}
	_, err := f.Seek(1, io.SeekCurrent)
	return err
}
