// Package encode implements the encode stage: it streams a frame sequence
// into one output clip through a scoped video sink.
package encode

import (
	"context"
	"fmt"

	"github.com/user/stillmotion/pkg/pipeline"
	"github.com/user/stillmotion/pkg/ports"
)

// Stage writes a frame sequence to a video writer. A writer handles one
// stream at a time, so the stage opens a fresh writer per execution; that
// keeps concurrent executions independent.
type Stage struct {
	newWriter func() ports.VideoWriter
}

// NewStage creates a new encode stage. newWriter is called once per
// execution.
func NewStage(newWriter func() ports.VideoWriter) *Stage {
	return &Stage{newWriter: newWriter}
}

var _ pipeline.Stage[pipeline.EncodeInput, pipeline.EncodeResult] = (*Stage)(nil)

// Execute opens the output clip and writes every frame of the sequence in
// order. The sink is released on every exit path; cancellation is honored
// between frames.
func (s *Stage) Execute(ctx context.Context, input pipeline.EncodeInput) (pipeline.EncodeResult, error) {
	if input.Sequence == nil {
		return pipeline.EncodeResult{}, fmt.Errorf("encode: %w: sequence is required", ports.ErrInvalidParameter)
	}

	sink, err := pipeline.NewVideoSink(s.newWriter(), input.Clip)
	if err != nil {
		return pipeline.EncodeResult{}, fmt.Errorf("encode: %w", err)
	}
	defer sink.Close()

	count := input.Sequence.Len()
	for i := 0; i < count; i++ {
		select {
		case <-ctx.Done():
			return pipeline.EncodeResult{}, ctx.Err()
		default:
		}

		frame, err := input.Sequence.Frame(i)
		if err != nil {
			return pipeline.EncodeResult{}, fmt.Errorf("encode: render frame %d: %w", i, err)
		}
		if err := sink.Write(frame); err != nil {
			return pipeline.EncodeResult{}, fmt.Errorf("encode: %w", err)
		}
	}

	if err := sink.Close(); err != nil {
		return pipeline.EncodeResult{}, fmt.Errorf("encode: finalize %s: %w", input.Clip.Path, err)
	}

	return pipeline.EncodeResult{FramesWritten: sink.FramesWritten()}, nil
}
