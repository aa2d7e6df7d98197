// Package orchestrator coordinates the pipeline stages into the three
// user-facing operations: converting one image, converting a directory, and
// stitching finished clips.
package orchestrator

import (
	"context"
	"fmt"
	"image"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/ideamans/go-l10n"
	"github.com/user/stillmotion/pkg/pipeline"
	"github.com/user/stillmotion/pkg/ports"
)

// Config contains all configuration for the orchestrator.
type Config struct {
	// Canvas
	TargetWidth  int
	TargetHeight int
	BlurKernel   int

	// Zoom sequence
	FPS         int
	DurationSec float64
	ZoomRate    float64

	// Output clip
	FourCC    string
	Container string

	// Batch
	Concurrency int
	Progress    func(done, total int) // called after each finished item; may be nil

	// Debug output
	DebugFrameInterval int
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		TargetWidth:  1920,
		TargetHeight: 1080,
		BlurKernel:   195,

		FPS:         25,
		DurationSec: 10,
		ZoomRate:    0.0004,

		FourCC:    "MJPG",
		Container: ".avi",

		Concurrency: 1,

		DebugFrameInterval: 25,
	}
}

// Orchestrator coordinates the execution of all pipeline stages.
type Orchestrator struct {
	composeStage pipeline.Stage[pipeline.ComposeInput, pipeline.ComposeResult]
	framesStage  pipeline.Stage[pipeline.FramesInput, pipeline.FramesResult]
	encodeStage  pipeline.Stage[pipeline.EncodeInput, pipeline.EncodeResult]
	stitchStage  pipeline.Stage[pipeline.StitchInput, pipeline.StitchResult]
	prober       ports.CodecProber
	fs           ports.FileSystem
	sink         ports.FrameSink
	logger       ports.Logger
}

// New creates a new Orchestrator.
func New(
	composeStage pipeline.Stage[pipeline.ComposeInput, pipeline.ComposeResult],
	framesStage pipeline.Stage[pipeline.FramesInput, pipeline.FramesResult],
	encodeStage pipeline.Stage[pipeline.EncodeInput, pipeline.EncodeResult],
	stitchStage pipeline.Stage[pipeline.StitchInput, pipeline.StitchResult],
	prober ports.CodecProber,
	fs ports.FileSystem,
	sink ports.FrameSink,
	logger ports.Logger,
) *Orchestrator {
	return &Orchestrator{
		composeStage: composeStage,
		framesStage:  framesStage,
		encodeStage:  encodeStage,
		stitchStage:  stitchStage,
		prober:       prober,
		fs:           fs,
		sink:         sink,
		logger:       logger.WithComponent("pipeline"),
	}
}

// ConvertImage runs the full pipeline for one still image and writes the
// clip to outputPath.
func (o *Orchestrator) ConvertImage(ctx context.Context, config Config, imagePath, outputPath string) (ClipResult, error) {
	started := time.Now()
	o.logger.Info(l10n.F("Converting %s...", imagePath))

	// 1. Read the source image
	data, err := o.fs.ReadFile(imagePath)
	if err != nil {
		o.logger.Error(l10n.F("Failed to convert %s: %s", imagePath, err))
		return ClipResult{}, fmt.Errorf("read image %s: %w: %w", imagePath, ports.ErrUnreadableInput, err)
	}

	// 2. Compose the canvas
	compose, err := o.composeStage.Execute(ctx, o.buildComposeInput(config, data))
	if err != nil {
		o.logger.Error(l10n.F("Failed to convert %s: %s", imagePath, err))
		return ClipResult{}, fmt.Errorf("compose stage: %w", err)
	}
	o.logger.Debug(l10n.F("Canvas composed: %dx%d", config.TargetWidth, config.TargetHeight))

	name := imageStem(imagePath)
	if o.sink.Enabled() {
		if err := o.sink.SaveCanvas(name, compose.Canvas); err != nil {
			o.logger.Warn(l10n.F("Failed to save debug output: %s", err))
		}
	}

	// 3. Build the zoom sequence
	frames, err := o.framesStage.Execute(ctx, o.buildFramesInput(config, compose.Canvas))
	if err != nil {
		o.logger.Error(l10n.F("Failed to convert %s: %s", imagePath, err))
		return ClipResult{}, fmt.Errorf("frames stage: %w", err)
	}
	o.logger.Debug(l10n.F("Rendering %d frames at %d fps", frames.Sequence.Len(), config.FPS))

	// 4. Encode the clip
	o.logger.Info(l10n.F("Encoding %d frames to %s", frames.Sequence.Len(), outputPath))
	encoded, err := o.encodeStage.Execute(ctx, pipeline.EncodeInput{
		Sequence: frames.Sequence,
		Clip:     o.buildClipSpec(config, outputPath),
	})
	if err != nil {
		o.logger.Error(l10n.F("Failed to convert %s: %s", imagePath, err))
		return ClipResult{}, fmt.Errorf("encode stage: %w", err)
	}

	// 5. Sample frames for inspection. The sequence is restartable, so this
	// re-renders the sampled frames instead of reading the clip back.
	if o.sink.Enabled() && config.DebugFrameInterval > 0 {
		o.saveSampleFrames(name, frames.Sequence, config.DebugFrameInterval)
	}

	var outputBytes int64
	if size, err := o.fs.FileSize(outputPath); err == nil {
		outputBytes = size
	}

	elapsed := time.Since(started).Milliseconds()
	o.logger.Debug(l10n.F("Encoded %d frames (%d bytes)", encoded.FramesWritten, outputBytes))
	o.logger.Info(l10n.F("Converted %s in %d ms", imagePath, elapsed))

	return ClipResult{
		ImagePath:     imagePath,
		OutputPath:    outputPath,
		FramesWritten: encoded.FramesWritten,
		OutputBytes:   outputBytes,
		ElapsedMs:     elapsed,
	}, nil
}

// ConvertDir converts every supported image in inputDir, writing one clip
// per image into outputDir. Items that fail are skipped with a warning; the
// batch only fails as a whole on setup problems or cancellation.
func (o *Orchestrator) ConvertDir(ctx context.Context, config Config, inputDir, outputDir string) (BatchResult, error) {
	names, err := o.fs.ListDir(inputDir)
	if err != nil {
		return BatchResult{}, fmt.Errorf("list %s: %w", inputDir, err)
	}
	images := make([]string, 0, len(names))
	for _, name := range names {
		if IsSupportedImage(name) {
			images = append(images, name)
		}
	}
	if len(images) == 0 {
		o.logger.Warn(l10n.F("No supported images in %s", inputDir))
		return BatchResult{}, nil
	}
	o.logger.Info(l10n.F("Found %d images in %s", len(images), inputDir))

	// One probe gates the whole batch.
	o.logger.Debug(l10n.F("Probing codec %s", config.FourCC))
	if probe := o.prober.Probe(config.FourCC, config.TargetWidth, config.TargetHeight, config.FPS, config.Container); !probe.Usable() {
		o.logger.Error(l10n.F("Codec %s is not usable", config.FourCC))
		return BatchResult{}, fmt.Errorf("probe codec %s: %w", config.FourCC, ports.ErrEncoderUnavailable)
	}
	o.logger.Debug(l10n.F("Codec %s is usable", config.FourCC))

	if err := o.fs.MkdirAll(outputDir); err != nil {
		return BatchResult{}, fmt.Errorf("create output dir %s: %w", outputDir, err)
	}

	items := make([]BatchItem, len(images))
	for i, name := range images {
		items[i] = BatchItem{
			ImagePath:  filepath.Join(inputDir, name),
			OutputPath: filepath.Join(outputDir, ClipName(name, config.Container)),
		}
	}

	workers := config.Concurrency
	if workers < 1 {
		workers = 1
	}
	if workers > len(items) {
		workers = len(items)
	}
	if workers > 1 {
		o.logger.Info(l10n.F("Converting %d images with %d workers", len(items), workers))
		err = o.convertParallel(ctx, config, items, workers)
	} else {
		err = o.convertSequential(ctx, config, items)
	}
	if err != nil {
		return BatchResult{}, err
	}

	result := buildBatchResult(items)
	o.logger.Info(l10n.F("Batch completed: %d succeeded, %d failed", result.Succeeded, result.Failed))
	return result, nil
}

// Stitch concatenates previously rendered clips into one video at outputPath.
func (o *Orchestrator) Stitch(ctx context.Context, config Config, inputPaths []string, outputPath string) (pipeline.StitchResult, error) {
	o.logger.Info(l10n.F("Stitching %d clips into %s", len(inputPaths), outputPath))
	result, err := o.stitchStage.Execute(ctx, pipeline.StitchInput{
		InputPaths: inputPaths,
		Output:     o.buildClipSpec(config, outputPath),
	})
	if err != nil {
		o.logger.Error(l10n.F("Failed to stitch: %s", err))
		return pipeline.StitchResult{}, fmt.Errorf("stitch stage: %w", err)
	}
	o.logger.Info(l10n.F("Stitch completed: %d frames", result.FramesWritten))
	return result, nil
}

// Probe checks whether the configured codec and container can produce output
// on this machine.
func (o *Orchestrator) Probe(config Config) ports.ProbeResult {
	o.logger.Debug(l10n.F("Probing codec %s", config.FourCC))
	result := o.prober.Probe(config.FourCC, config.TargetWidth, config.TargetHeight, config.FPS, config.Container)
	if result.Usable() {
		o.logger.Info(l10n.F("Codec %s is usable", config.FourCC))
	} else {
		o.logger.Warn(l10n.F("Codec %s is not usable", config.FourCC))
	}
	return result
}

func (o *Orchestrator) convertSequential(ctx context.Context, config Config, items []BatchItem) error {
	for i := range items {
		if err := ctx.Err(); err != nil {
			return err
		}
		o.convertItem(ctx, config, &items[i])
		o.reportProgress(config, i+1, len(items))
	}
	return nil
}

// convertParallel fans the batch items out to a fixed pool of workers. Each
// worker owns the items it picks up, so results are written without locking.
func (o *Orchestrator) convertParallel(ctx context.Context, config Config, items []BatchItem, workers int) error {
	jobs := make(chan int, len(items))
	done := make(chan int, len(items))

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				select {
				case <-ctx.Done():
					return
				default:
				}
				o.convertItem(ctx, config, &items[i])
				done <- i
			}
		}()
	}

	for i := range items {
		jobs <- i
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(done)
	}()

	completed := 0
	for range done {
		completed++
		o.reportProgress(config, completed, len(items))
	}

	return ctx.Err()
}

func (o *Orchestrator) convertItem(ctx context.Context, config Config, item *BatchItem) {
	result, err := o.ConvertImage(ctx, config, item.ImagePath, item.OutputPath)
	if err != nil {
		o.logger.Warn(l10n.F("Skipping %s: %s", item.ImagePath, err))
		item.Err = err
		return
	}
	item.Result = result
}

func (o *Orchestrator) reportProgress(config Config, done, total int) {
	if config.Progress != nil {
		config.Progress(done, total)
	}
}

func (o *Orchestrator) saveSampleFrames(name string, seq pipeline.FrameSequence, interval int) {
	for i := 0; i < seq.Len(); i += interval {
		img, err := seq.Frame(i)
		if err != nil {
			o.logger.Warn(l10n.F("Failed to save debug output: %s", err))
			return
		}
		if err := o.sink.SaveFrame(name, i, img); err != nil {
			o.logger.Warn(l10n.F("Failed to save debug output: %s", err))
			return
		}
	}
}

func (o *Orchestrator) buildComposeInput(config Config, data []byte) pipeline.ComposeInput {
	return pipeline.ComposeInput{
		ImageData:    data,
		TargetWidth:  config.TargetWidth,
		TargetHeight: config.TargetHeight,
		BlurKernel:   config.BlurKernel,
	}
}

func (o *Orchestrator) buildFramesInput(config Config, canvas *image.RGBA) pipeline.FramesInput {
	return pipeline.FramesInput{
		Canvas:       canvas,
		FrameRate:    config.FPS,
		DurationSec:  config.DurationSec,
		ZoomRate:     config.ZoomRate,
		TargetWidth:  config.TargetWidth,
		TargetHeight: config.TargetHeight,
	}
}

func (o *Orchestrator) buildClipSpec(config Config, path string) ports.ClipSpec {
	return ports.ClipSpec{
		Path:   path,
		FourCC: config.FourCC,
		FPS:    config.FPS,
		Width:  config.TargetWidth,
		Height: config.TargetHeight,
	}
}

// IsSupportedImage reports whether the file name has an image extension the
// renderer can decode.
func IsSupportedImage(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp", ".bmp", ".tiff", ".tif":
		return true
	}
	return false
}

// ClipName returns the output file name for an image: the image stem plus
// the container extension.
func ClipName(imagePath, container string) string {
	return imageStem(imagePath) + containerExt(container)
}

// imageStem returns the file name without directory or extension. It names
// the output clip and the debug artifacts of one image.
func imageStem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// containerExt normalizes a container name to a dotted extension.
func containerExt(container string) string {
	if container == "" {
		return ".avi"
	}
	if !strings.HasPrefix(container, ".") {
		return "." + container
	}
	return container
}

// ClipResult summarizes one converted clip.
type ClipResult struct {
	ImagePath     string
	OutputPath    string
	FramesWritten int
	OutputBytes   int64
	ElapsedMs     int64
}

// BatchItem pairs one batch entry with its outcome. Err is nil on success.
type BatchItem struct {
	ImagePath  string
	OutputPath string
	Result     ClipResult
	Err        error
}

// BatchResult summarizes a directory conversion.
type BatchResult struct {
	Items     []BatchItem
	Succeeded int
	Failed    int
}

func buildBatchResult(items []BatchItem) BatchResult {
	result := BatchResult{Items: items}
	for i := range items {
		if items[i].Err != nil {
			result.Failed++
		} else {
			result.Succeeded++
		}
	}
	return result
}
