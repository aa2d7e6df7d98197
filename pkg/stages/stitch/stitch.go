// Package stitch implements the stitch stage: it concatenates the frame
// streams of pre-rendered clips into one output clip, in order, without
// re-timing or resampling.
package stitch

import (
	"context"
	"fmt"
	"io"

	"github.com/user/stillmotion/pkg/pipeline"
	"github.com/user/stillmotion/pkg/ports"
)

// Stage concatenates video clips into one output stream. A writer handles
// one stream at a time, so the stage opens a fresh writer per execution.
type Stage struct {
	reader    ports.VideoReader
	newWriter func() ports.VideoWriter
	fs        ports.FileSystem
}

// NewStage creates a new stitch stage. newWriter is called once per
// execution.
func NewStage(reader ports.VideoReader, newWriter func() ports.VideoWriter, fs ports.FileSystem) *Stage {
	return &Stage{reader: reader, newWriter: newWriter, fs: fs}
}

var _ pipeline.Stage[pipeline.StitchInput, pipeline.StitchResult] = (*Stage)(nil)

// Execute validates the job, opens the output once, then streams every input
// in list order. Any failure after the output was opened removes the partial
// file so no corrupt artifact is left behind, then surfaces the original
// error.
func (s *Stage) Execute(ctx context.Context, input pipeline.StitchInput) (pipeline.StitchResult, error) {
	if err := validateInput(input); err != nil {
		return pipeline.StitchResult{}, err
	}

	sink, err := pipeline.NewVideoSink(s.newWriter(), input.Output)
	if err != nil {
		return pipeline.StitchResult{}, fmt.Errorf("stitch: %w", err)
	}

	inputFrames := make([]int, 0, len(input.InputPaths))
	for _, path := range input.InputPaths {
		frames, err := s.appendClip(ctx, sink, path)
		if err != nil {
			s.discard(sink, input.Output.Path)
			return pipeline.StitchResult{}, err
		}
		inputFrames = append(inputFrames, frames)
	}

	if err := sink.Close(); err != nil {
		s.discard(sink, input.Output.Path)
		return pipeline.StitchResult{}, fmt.Errorf("stitch: finalize %s: %w", input.Output.Path, err)
	}

	return pipeline.StitchResult{
		FramesWritten: sink.FramesWritten(),
		InputFrames:   inputFrames,
	}, nil
}

// appendClip streams every frame of one source into the sink. The reader is
// held only for the duration of this one source.
func (s *Stage) appendClip(ctx context.Context, sink *pipeline.VideoSink, path string) (int, error) {
	stream, err := s.reader.OpenVideo(path)
	if err != nil {
		return 0, fmt.Errorf("stitch: open %s: %w", path, err)
	}
	defer stream.Close()

	meta := stream.Meta()
	spec := sink.Spec()
	if meta.Width != spec.Width || meta.Height != spec.Height {
		return 0, fmt.Errorf("stitch: %w: %s is %dx%d, expected %dx%d",
			ports.ErrDimensionMismatch, path, meta.Width, meta.Height, spec.Width, spec.Height)
	}

	frames := 0
	for {
		select {
		case <-ctx.Done():
			return frames, ctx.Err()
		default:
		}

		frame, err := stream.ReadFrame()
		if err == io.EOF {
			return frames, nil
		}
		if err != nil {
			return frames, fmt.Errorf("stitch: read %s frame %d: %w", path, frames, err)
		}
		if err := sink.Write(frame); err != nil {
			return frames, fmt.Errorf("stitch: %w", err)
		}
		frames++
	}
}

// discard closes the sink and removes the partial output. Best effort; the
// failure that triggered it is what surfaces to the caller.
func (s *Stage) discard(sink *pipeline.VideoSink, path string) {
	sink.Close()
	if exists, err := s.fs.Exists(path); err == nil && exists {
		s.fs.Remove(path)
	}
}

// validateInput checks the job parameters before any file is touched.
func validateInput(input pipeline.StitchInput) error {
	if len(input.InputPaths) == 0 {
		return fmt.Errorf("stitch: %w: no input videos provided", ports.ErrInvalidParameter)
	}
	if input.Output.Path == "" {
		return fmt.Errorf("stitch: %w: output path cannot be empty", ports.ErrInvalidParameter)
	}
	if input.Output.FPS <= 0 {
		return fmt.Errorf("stitch: %w: frame rate must be positive (%d)",
			ports.ErrInvalidParameter, input.Output.FPS)
	}
	if input.Output.Width <= 0 || input.Output.Height <= 0 {
		return fmt.Errorf("stitch: %w: target dimensions must be positive (%dx%d)",
			ports.ErrInvalidParameter, input.Output.Width, input.Output.Height)
	}
	return nil
}
