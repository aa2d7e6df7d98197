package smartcodec

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/user/stillmotion/pkg/adapters/avireader"
	"github.com/user/stillmotion/pkg/adapters/ffmpegcodec"
	"github.com/user/stillmotion/pkg/ports"
)

// Reader routes inputs by extension: AVI to the pure-Go RIFF reader,
// MP4-family containers to ffmpeg extraction. An AVI whose stream is not
// MJPEG falls back to ffmpeg.
type Reader struct {
	avi    ports.VideoReader
	ffmpeg ports.VideoReader
}

// NewReader creates a routing reader.
func NewReader() *Reader {
	return &Reader{
		avi:    avireader.New(),
		ffmpeg: ffmpegcodec.NewReader(),
	}
}

var _ ports.VideoReader = (*Reader)(nil)

// OpenVideo opens the clip with the backend matching its extension.
// Unsupported containers fail with ports.ErrInputNotFound.
func (r *Reader) OpenVideo(path string) (ports.VideoStream, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".avi":
		stream, err := r.avi.OpenVideo(path)
		if err != nil && errors.Is(err, avireader.ErrUnsupportedCodec) {
			return r.ffmpeg.OpenVideo(path)
		}
		return stream, err
	case ".mp4", ".mov":
		return r.ffmpeg.OpenVideo(path)
	default:
		return nil, fmt.Errorf("smartcodec: %w: unsupported container %q", ports.ErrInputNotFound, path)
	}
}
