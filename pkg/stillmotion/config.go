package stillmotion

import "github.com/user/stillmotion/pkg/orchestrator"

// ConfigBuilder provides a fluent interface for building conversion
// settings on top of the defaults.
type ConfigBuilder struct {
	config orchestrator.Config
}

// NewConfigBuilder creates a builder seeded with the default settings:
// 1920x1080 at 25 fps, ten seconds per clip, MJPEG in an AVI container.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{config: orchestrator.DefaultConfig()}
}

// Build returns the final configuration, applying minimum constraints.
func (b *ConfigBuilder) Build() orchestrator.Config {
	config := b.config

	// Enforce at least one worker and one frame per second
	if config.Concurrency < 1 {
		config.Concurrency = 1
	}
	if config.FPS < 1 {
		config.FPS = 1
	}

	return config
}

// WithSize sets the output geometry in pixels.
func (b *ConfigBuilder) WithSize(width, height int) *ConfigBuilder {
	b.config.TargetWidth = width
	b.config.TargetHeight = height
	return b
}

// WithFPS sets the output frame rate.
func (b *ConfigBuilder) WithFPS(fps int) *ConfigBuilder {
	b.config.FPS = fps
	return b
}

// WithDuration sets the clip length in seconds.
func (b *ConfigBuilder) WithDuration(seconds float64) *ConfigBuilder {
	b.config.DurationSec = seconds
	return b
}

// WithZoomRate sets the per-frame zoom increment.
func (b *ConfigBuilder) WithZoomRate(rate float64) *ConfigBuilder {
	b.config.ZoomRate = rate
	return b
}

// WithBlurKernel sets the blur kernel size for the canvas background.
func (b *ConfigBuilder) WithBlurKernel(size int) *ConfigBuilder {
	b.config.BlurKernel = size
	return b
}

// WithCodec sets the output FourCC and container extension.
func (b *ConfigBuilder) WithCodec(fourcc, container string) *ConfigBuilder {
	b.config.FourCC = fourcc
	b.config.Container = container
	return b
}

// WithConcurrency sets the number of parallel workers for batch
// conversion.
func (b *ConfigBuilder) WithConcurrency(workers int) *ConfigBuilder {
	b.config.Concurrency = workers
	return b
}

// WithDebugFrameInterval sets how many frames apart debug samples are
// taken when a debug sink is active.
func (b *ConfigBuilder) WithDebugFrameInterval(frames int) *ConfigBuilder {
	b.config.DebugFrameInterval = frames
	return b
}

// WithProgress sets a callback invoked after each finished batch item.
func (b *ConfigBuilder) WithProgress(fn func(done, total int)) *ConfigBuilder {
	b.config.Progress = fn
	return b
}
