// Package stillmotion provides a high-level API for turning still images
// into zooming video clips.
package stillmotion

import (
	"context"

	"github.com/user/stillmotion/pkg/adapters/codecprobe"
	"github.com/user/stillmotion/pkg/adapters/filesink"
	"github.com/user/stillmotion/pkg/adapters/ggrenderer"
	"github.com/user/stillmotion/pkg/adapters/logger"
	"github.com/user/stillmotion/pkg/adapters/nullsink"
	"github.com/user/stillmotion/pkg/adapters/osfilesystem"
	"github.com/user/stillmotion/pkg/adapters/smartcodec"
	"github.com/user/stillmotion/pkg/orchestrator"
	"github.com/user/stillmotion/pkg/pipeline"
	"github.com/user/stillmotion/pkg/ports"
	"github.com/user/stillmotion/pkg/stages/compose"
	"github.com/user/stillmotion/pkg/stages/encode"
	"github.com/user/stillmotion/pkg/stages/frames"
	"github.com/user/stillmotion/pkg/stages/stitch"
)

// Options configures the default pipeline wiring.
type Options struct {
	// Logger receives pipeline progress. Defaults to a console logger at
	// info level.
	Logger ports.Logger

	// DebugDir, when set, receives composed canvases and sampled frames.
	DebugDir string
}

// Converter bundles the default adapters behind the pipeline operations.
// It is safe for concurrent use.
type Converter struct {
	orch *orchestrator.Orchestrator
}

// New creates a Converter with the default adapters: the gg renderer, the
// codec-routing writer and reader, and the local filesystem.
func New(opts Options) *Converter {
	log := opts.Logger
	if log == nil {
		log = logger.NewConsole(ports.LevelInfo)
	}

	fs := osfilesystem.New()
	renderer := ggrenderer.New()

	var sink ports.FrameSink = nullsink.New()
	if opts.DebugDir != "" {
		sink = filesink.New(opts.DebugDir, fs, renderer)
	}

	newWriter := func() ports.VideoWriter { return smartcodec.NewWriter() }

	return &Converter{
		orch: orchestrator.New(
			compose.NewStage(renderer),
			frames.NewStage(renderer),
			encode.NewStage(newWriter),
			stitch.NewStage(smartcodec.NewReader(), newWriter, fs),
			codecprobe.New(),
			fs,
			sink,
			log,
		),
	}
}

// Convert renders one still image into a clip at outputPath.
func (c *Converter) Convert(ctx context.Context, config orchestrator.Config, imagePath, outputPath string) (orchestrator.ClipResult, error) {
	return c.orch.ConvertImage(ctx, config, imagePath, outputPath)
}

// ConvertDir renders every supported image in inputDir into one clip per
// image under outputDir.
func (c *Converter) ConvertDir(ctx context.Context, config orchestrator.Config, inputDir, outputDir string) (orchestrator.BatchResult, error) {
	return c.orch.ConvertDir(ctx, config, inputDir, outputDir)
}

// Stitch concatenates previously rendered clips into one video.
func (c *Converter) Stitch(ctx context.Context, config orchestrator.Config, inputPaths []string, outputPath string) (pipeline.StitchResult, error) {
	return c.orch.Stitch(ctx, config, inputPaths, outputPath)
}

// Probe checks whether the configured codec and container can produce
// output on this machine.
func (c *Converter) Probe(config orchestrator.Config) ports.ProbeResult {
	return c.orch.Probe(config)
}
