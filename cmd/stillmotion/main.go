// Package main provides the CLI entry point for stillmotion.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"

	"github.com/user/stillmotion/pkg/adapters/codecprobe"
	"github.com/user/stillmotion/pkg/adapters/filesink"
	"github.com/user/stillmotion/pkg/adapters/ggrenderer"
	"github.com/user/stillmotion/pkg/adapters/logger"
	"github.com/user/stillmotion/pkg/adapters/nullsink"
	"github.com/user/stillmotion/pkg/adapters/osfilesystem"
	"github.com/user/stillmotion/pkg/adapters/smartcodec"
	"github.com/user/stillmotion/pkg/config"
	"github.com/user/stillmotion/pkg/orchestrator"
	"github.com/user/stillmotion/pkg/ports"
	"github.com/user/stillmotion/pkg/report"
	"github.com/user/stillmotion/pkg/stages/compose"
	"github.com/user/stillmotion/pkg/stages/encode"
	"github.com/user/stillmotion/pkg/stages/frames"
	"github.com/user/stillmotion/pkg/stages/stitch"
	"github.com/user/stillmotion/pkg/watcher"
)

var version = "dev"

func main() {
	app := &cli.App{
		Name:    "stillmotion",
		Usage:   l10n.T("Create zooming videos from still images"),
		Version: version,
		Commands: []*cli.Command{
			convertCommand(),
			stitchCommand(),
			probeCommand(),
			watchCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// videoFlags are shared by every command that defines output video
// parameters.
func videoFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "config", Aliases: []string{"C"}, Usage: l10n.T("Configuration file path (YAML)")},
		&cli.IntFlag{Name: "width", Aliases: []string{"W"}, Usage: l10n.T("Output video width")},
		&cli.IntFlag{Name: "height", Aliases: []string{"H"}, Usage: l10n.T("Output video height")},
		&cli.IntFlag{Name: "fps", Usage: l10n.T("Frame rate of the output video")},
		&cli.StringFlag{Name: "codec", Usage: l10n.T("Output codec FourCC (MJPG, AVC1, AV01)")},
		&cli.StringFlag{Name: "container", Usage: l10n.T("Container extension (.avi, .mp4)")},
	}
}

func loggingFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "log-level", Aliases: []string{"l"}, Value: "info", Usage: l10n.T("Log level (debug, info, warn, error)")},
		&cli.BoolFlag{Name: "quiet", Aliases: []string{"Q"}, Usage: l10n.T("Suppress all log output")},
	}
}

func zoomFlags() []cli.Flag {
	return []cli.Flag{
		&cli.Float64Flag{Name: "duration", Usage: l10n.T("Clip duration in seconds")},
		&cli.Float64Flag{Name: "zoom-rate", Usage: l10n.T("Zoom-in rate per frame")},
		&cli.IntFlag{Name: "blur-kernel", Usage: l10n.T("Blur kernel size for the canvas background")},
	}
}

func debugFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: l10n.T("Enable debug output")},
		&cli.StringFlag{Name: "debug-dir", Value: "./debug", Usage: l10n.T("Directory for debug output")},
	}
}

func convertCommand() *cli.Command {
	flags := []cli.Flag{
		&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Required: true, Usage: l10n.T("Output clip path, or output directory for batch input")},
		&cli.IntFlag{Name: "concurrency", Aliases: []string{"j"}, Usage: l10n.T("Number of parallel workers for batch conversion")},
		&cli.StringFlag{Name: "report", Usage: l10n.T("Write a markdown conversion report to this path")},
	}
	flags = append(flags, zoomFlags()...)
	flags = append(flags, debugFlags()...)
	flags = append(flags, videoFlags()...)
	flags = append(flags, loggingFlags()...)

	return &cli.Command{
		Name:      "convert",
		Usage:     l10n.T("Convert a still image or a directory of images into video clips"),
		ArgsUsage: "<image-or-directory>",
		Flags:     flags,
		Action:    runConvert,
	}
}

func stitchCommand() *cli.Command {
	flags := []cli.Flag{
		&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Required: true, Usage: l10n.T("Output video file path")},
		&cli.StringFlag{Name: "report", Usage: l10n.T("Write a markdown conversion report to this path")},
	}
	flags = append(flags, videoFlags()...)
	flags = append(flags, loggingFlags()...)

	return &cli.Command{
		Name:      "stitch",
		Usage:     l10n.T("Concatenate rendered clips into one video"),
		ArgsUsage: "<clip>...",
		Flags:     flags,
		Action:    runStitch,
	}
}

func probeCommand() *cli.Command {
	flags := append(videoFlags(), loggingFlags()...)

	return &cli.Command{
		Name:   "probe",
		Usage:  l10n.T("Check whether the configured codec can produce output"),
		Flags:  flags,
		Action: runProbe,
	}
}

func watchCommand() *cli.Command {
	flags := []cli.Flag{
		&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Required: true, Usage: l10n.T("Output directory for converted clips")},
		&cli.IntFlag{Name: "settle-ms", Value: 1500, Usage: l10n.T("Settle delay for new files in milliseconds")},
	}
	flags = append(flags, zoomFlags()...)
	flags = append(flags, debugFlags()...)
	flags = append(flags, videoFlags()...)
	flags = append(flags, loggingFlags()...)

	return &cli.Command{
		Name:      "watch",
		Usage:     l10n.T("Watch a directory and convert images as they arrive"),
		ArgsUsage: "<directory>",
		Flags:     flags,
		Action:    runWatch,
	}
}

// runConvert executes the convert command for a single image or a whole
// directory.
func runConvert(c *cli.Context) error {
	input := c.Args().First()
	if input == "" {
		return errors.New(l10n.T("Image or directory argument is required"))
	}
	output := c.String("output")

	// Layer config file and flag overrides
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	log := buildLogger(c, cfg)

	ctx, cancel := signalContext(log)
	defer cancel()

	// Create adapters
	fs := osfilesystem.New()
	renderer := ggrenderer.New()

	sink, err := buildSink(c, cfg, fs, renderer)
	if err != nil {
		return err
	}

	orch := buildOrchestrator(fs, renderer, sink, log)
	orchConfig := cfg.ToOrchestratorConfig()

	info, err := os.Stat(input)
	if err != nil {
		return fmt.Errorf("stat %s: %w", input, err)
	}

	if !info.IsDir() {
		result, err := orch.ConvertImage(ctx, orchConfig, input, output)
		if err != nil {
			return err
		}
		item := orchestrator.BatchItem{ImagePath: input, OutputPath: output, Result: result}
		writeReport(c, cfg, log, fs, []orchestrator.BatchItem{item}, nil)
		log.Info(l10n.F("Output saved to %s", output))
		return nil
	}

	orchConfig.Progress = newProgress(c)
	batch, err := orch.ConvertDir(ctx, orchConfig, input, output)
	if err != nil {
		return err
	}

	writeReport(c, cfg, log, fs, batch.Items, nil)

	if batch.Succeeded > 0 {
		log.Info(l10n.F("Output saved to %s", output))
	}
	if batch.Failed > 0 {
		return errors.New(l10n.F("%d of %d conversions failed", batch.Failed, len(batch.Items)))
	}
	return nil
}

// runStitch executes the stitch command.
func runStitch(c *cli.Context) error {
	inputs := c.Args().Slice()
	if len(inputs) == 0 {
		return errors.New(l10n.T("At least one input clip is required"))
	}
	output := c.String("output")

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	log := buildLogger(c, cfg)

	ctx, cancel := signalContext(log)
	defer cancel()

	fs := osfilesystem.New()
	renderer := ggrenderer.New()
	orch := buildOrchestrator(fs, renderer, nullsink.New(), log)

	result, err := orch.Stitch(ctx, cfg.ToOrchestratorConfig(), inputs, output)
	if err != nil {
		return err
	}

	stitched := report.StitchInfo{
		OutputPath:    output,
		FramesWritten: result.FramesWritten,
		InputFrames:   result.InputFrames,
	}
	if size, err := fs.FileSize(output); err == nil {
		stitched.OutputBytes = size
	}
	writeReport(c, cfg, log, fs, nil, &stitched)

	log.Info(l10n.F("Output saved to %s", output))
	return nil
}

// runProbe executes the probe command. The exit code reports usability.
func runProbe(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	log := buildLogger(c, cfg)

	fs := osfilesystem.New()
	renderer := ggrenderer.New()
	orch := buildOrchestrator(fs, renderer, nullsink.New(), log)

	if result := orch.Probe(cfg.ToOrchestratorConfig()); !result.Usable() {
		return errors.New(l10n.F("Codec %s is not usable", cfg.Codec))
	}
	return nil
}

// runWatch executes the watch command. It converts settled files until
// interrupted.
func runWatch(c *cli.Context) error {
	dir := c.Args().First()
	if dir == "" {
		return errors.New(l10n.T("Directory argument is required"))
	}
	output := c.String("output")

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	log := buildLogger(c, cfg)

	ctx, cancel := signalContext(log)
	defer cancel()

	fs := osfilesystem.New()
	renderer := ggrenderer.New()

	sink, err := buildSink(c, cfg, fs, renderer)
	if err != nil {
		return err
	}

	orch := buildOrchestrator(fs, renderer, sink, log)
	orchConfig := cfg.ToOrchestratorConfig()

	// Surface codec problems before the first file arrives.
	if result := orch.Probe(orchConfig); !result.Usable() {
		return errors.New(l10n.F("Codec %s is not usable", cfg.Codec))
	}

	if err := fs.MkdirAll(output); err != nil {
		return fmt.Errorf("create output dir %s: %w", output, err)
	}

	// Conversion failures are logged by the orchestrator; the watch loop
	// keeps running.
	onFile := func(path string) {
		outputPath := filepath.Join(output, orchestrator.ClipName(path, cfg.Container))
		_, _ = orch.ConvertImage(ctx, orchConfig, path, outputPath)
	}

	w := watcher.New(dir, onFile, log,
		watcher.WithFilter(orchestrator.IsSupportedImage),
		watcher.WithSettleDelay(time.Duration(c.Int("settle-ms"))*time.Millisecond),
	)
	if err := w.Start(); err != nil {
		return err
	}

	log.Info(l10n.F("Watching %s for new images", dir))

	<-ctx.Done()
	return w.Stop()
}

// loadConfig layers the config file over the defaults, then explicit CLI
// flags over the file values.
func loadConfig(c *cli.Context) (config.Config, error) {
	cfg := config.Defaults()

	path := c.String("config")
	if path == "" {
		if found, ok := config.Discover(); ok {
			path = found
		}
	}
	if path != "" {
		loaded, err := config.LoadFromFile(path)
		if err != nil {
			return cfg, errors.New(l10n.F("Failed to load config %s: %s", path, err.Error()))
		}
		cfg = loaded
	}

	applyOverrides(c, &cfg)
	return cfg, nil
}

// applyOverrides copies explicitly set CLI flags into the configuration.
// Flags a command does not define are never set.
func applyOverrides(c *cli.Context, cfg *config.Config) {
	if c.IsSet("width") {
		cfg.Width = c.Int("width")
	}
	if c.IsSet("height") {
		cfg.Height = c.Int("height")
	}
	if c.IsSet("fps") {
		cfg.FPS = c.Int("fps")
	}
	if c.IsSet("duration") {
		cfg.DurationSec = c.Float64("duration")
	}
	if c.IsSet("zoom-rate") {
		cfg.ZoomRate = c.Float64("zoom-rate")
	}
	if c.IsSet("blur-kernel") {
		cfg.BlurKernel = c.Int("blur-kernel")
	}
	if c.IsSet("codec") {
		cfg.Codec = c.String("codec")
	}
	if c.IsSet("container") {
		cfg.Container = c.String("container")
	}
	if c.IsSet("concurrency") {
		cfg.Concurrency = c.Int("concurrency")
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
	if c.IsSet("debug-dir") {
		cfg.DebugDir = c.String("debug-dir")
	}
}

func buildLogger(c *cli.Context, cfg config.Config) ports.Logger {
	if c.Bool("quiet") {
		return logger.NewNoop()
	}
	return logger.NewConsole(ports.ParseLogLevel(cfg.LogLevel))
}

// signalContext returns a context cancelled on SIGINT or SIGTERM.
func signalContext(log ports.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Warn(l10n.T("Interrupted, shutting down..."))
		cancel()
	}()

	return ctx, cancel
}

// buildSink creates the debug sink. A debug directory in the config file
// enables debug output just like the --debug flag.
func buildSink(c *cli.Context, cfg config.Config, fs ports.FileSystem, renderer ports.Renderer) (ports.FrameSink, error) {
	if !c.Bool("debug") && cfg.DebugDir == "" {
		return nullsink.New(), nil
	}

	dir := cfg.DebugDir
	if dir == "" {
		dir = c.String("debug-dir")
	}
	if err := fs.MkdirAll(dir); err != nil {
		return nil, fmt.Errorf("create debug directory: %w", err)
	}
	return filesink.New(dir, fs, renderer), nil
}

// buildOrchestrator wires the default adapters and stages.
func buildOrchestrator(fs ports.FileSystem, renderer ports.Renderer, sink ports.FrameSink, log ports.Logger) *orchestrator.Orchestrator {
	newWriter := func() ports.VideoWriter { return smartcodec.NewWriter() }

	return orchestrator.New(
		compose.NewStage(renderer),
		frames.NewStage(renderer),
		encode.NewStage(newWriter),
		stitch.NewStage(smartcodec.NewReader(), newWriter, fs),
		codecprobe.New(),
		fs,
		sink,
		log,
	)
}

// writeReport renders a markdown summary when --report is set. Report
// failures never fail the command.
func writeReport(c *cli.Context, cfg config.Config, log ports.Logger, fs ports.FileSystem, items []orchestrator.BatchItem, stitched *report.StitchInfo) {
	path := c.String("report")
	if path == "" {
		return
	}

	builder := report.NewBuilder().WithSettings(report.Settings{
		Width:       cfg.Width,
		Height:      cfg.Height,
		FPS:         cfg.FPS,
		DurationSec: cfg.DurationSec,
		ZoomRate:    cfg.ZoomRate,
		BlurKernel:  cfg.BlurKernel,
		FourCC:      cfg.Codec,
		Container:   cfg.Container,
		Concurrency: cfg.Concurrency,
	})
	for _, item := range items {
		builder.WithClip(clipInfo(item))
	}
	if stitched != nil {
		builder.WithStitch(*stitched)
	}

	writer := report.NewWriter(report.NewMarkdownFormatter(), fs)
	if err := writer.Write(path, builder.Build()); err != nil {
		log.Warn(l10n.F("Failed to write report: %s", err.Error()))
		return
	}
	log.Info(l10n.F("Report saved to %s", path))
}

func clipInfo(item orchestrator.BatchItem) report.ClipInfo {
	info := report.ClipInfo{
		ImagePath:     item.ImagePath,
		OutputPath:    item.OutputPath,
		FramesWritten: item.Result.FramesWritten,
		OutputBytes:   item.Result.OutputBytes,
		ElapsedMs:     item.Result.ElapsedMs,
	}
	if item.Err != nil {
		info.Error = item.Err.Error()
	}
	return info
}
