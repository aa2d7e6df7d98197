package ffmpegcodec

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/Eyevinn/mp4ff/mp4"

	"github.com/user/stillmotion/pkg/ports"
)

// ProbeMP4 reads geometry and timing for the first video track of an
// MP4/MOV container without decoding any frames.
func ProbeMP4(path string) (ports.VideoMeta, error) {
	f, err := os.Open(path)
	if err != nil {
		return ports.VideoMeta{}, fmt.Errorf("open: %w", err)
	}
	defer f.Close()

	mp4File, err := mp4.DecodeFile(f)
	if err != nil {
		return ports.VideoMeta{}, fmt.Errorf("decode mp4: %w", err)
	}

	moov := mp4File.Moov
	if moov == nil && mp4File.Init != nil {
		moov = mp4File.Init.Moov
	}
	if moov == nil {
		return ports.VideoMeta{}, errors.New("no moov box")
	}

	for _, trak := range moov.Traks {
		if trak.Mdia == nil || trak.Mdia.Hdlr == nil || trak.Mdia.Hdlr.HandlerType != "vide" {
			continue
		}

		var meta ports.VideoMeta
		if trak.Tkhd != nil {
			meta.Width = int(trak.Tkhd.Width >> 16)
			meta.Height = int(trak.Tkhd.Height >> 16)
		}
		if stbl := sampleTable(trak); stbl != nil && stbl.Stsz != nil {
			meta.FrameCount = int(stbl.Stsz.SampleNumber)
		}
		if mdhd := trak.Mdia.Mdhd; mdhd != nil && mdhd.Timescale > 0 && mdhd.Duration > 0 && meta.FrameCount > 0 {
			seconds := float64(mdhd.Duration) / float64(mdhd.Timescale)
			meta.FPS = int(math.Round(float64(meta.FrameCount) / seconds))
		}
		return meta, nil
	}

	return ports.VideoMeta{}, errors.New("no video track")
}

func sampleTable(trak *mp4.TrakBox) *mp4.StblBox {
	if trak.Mdia == nil || trak.Mdia.Minf == nil {
		return nil
	}
	return trak.Mdia.Minf.Stbl
}
