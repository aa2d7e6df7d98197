// Package pipeline provides the generic stage contract, the shared stage
// input and output types, and the scoped video sink the encoding stages
// write through.
package pipeline

import "context"

// Stage is one step of the conversion pipeline: it turns an input artifact
// into an output artifact. Implementations validate their own input and
// honor ctx between units of work.
type Stage[In, Out any] interface {
	Execute(ctx context.Context, input In) (Out, error)
}

// StageFunc adapts a function to the Stage interface.
type StageFunc[In, Out any] func(ctx context.Context, input In) (Out, error)

func (f StageFunc[In, Out]) Execute(ctx context.Context, input In) (Out, error) {
	return f(ctx, input)
}
