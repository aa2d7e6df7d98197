// Package integration contains integration tests for the stillmotion pipeline.
package integration

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/user/stillmotion/pkg/adapters/avireader"
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

// newOrchestrator wires the orchestrator with real adapters and a silent
// logger.
func newOrchestrator(sink ports.FrameSink) *orchestrator.Orchestrator {
	fs := osfilesystem.New()
	renderer := ggrenderer.New()
	newWriter := func() ports.VideoWriter { return smartcodec.NewWriter() }

	return orchestrator.New(
		compose.NewStage(renderer),
		frames.NewStage(renderer),
		encode.NewStage(newWriter),
		stitch.NewStage(smartcodec.NewReader(), newWriter, fs),
		codecprobe.New(),
		fs,
		sink,
		logger.NewNoop(),
	)
}

// testConfig returns a small, fast geometry: ten MJPEG frames per clip.
func testConfig() orchestrator.Config {
	config := orchestrator.DefaultConfig()
	config.TargetWidth = 64
	config.TargetHeight = 48
	config.BlurKernel = 9
	config.FPS = 5
	config.DurationSec = 2
	config.ZoomRate = 0.01
	return config
}

// gradientPNG encodes a test image whose pixels vary in both axes so zoom
// motion shows up as pixel differences.
func gradientPNG(t *testing.T, width, height int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{
				R: uint8(255 * x / width),
				G: uint8(255 * y / height),
				B: uint8((x + y) % 256),
				A: 255,
			})
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode test image: %v", err)
	}
	return buf.Bytes()
}

func writeImage(t *testing.T, path string, width, height int) {
	t.Helper()
	if err := os.WriteFile(path, gradientPNG(t, width, height), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// readBack opens a finished clip and decodes every frame, returning the
// stream metadata and the decoded frame count.
func readBack(t *testing.T, path string) (ports.VideoMeta, int) {
	t.Helper()

	stream, err := avireader.New().OpenVideo(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer stream.Close()

	decoded := 0
	for {
		_, err := stream.ReadFrame()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("read %s frame %d: %v", path, decoded, err)
		}
		decoded++
	}
	return stream.Meta(), decoded
}

// TestComposeToFrames tests the compose → frames pipeline.
func TestComposeToFrames(t *testing.T) {
	renderer := ggrenderer.New()

	// Compose the canvas
	composeStage := compose.NewStage(renderer)
	composed, err := composeStage.Execute(context.Background(), pipeline.ComposeInput{
		ImageData:    gradientPNG(t, 120, 80),
		TargetWidth:  64,
		TargetHeight: 48,
		BlurKernel:   9,
	})
	if err != nil {
		t.Fatalf("Compose stage failed: %v", err)
	}

	bounds := composed.Canvas.Bounds()
	if bounds.Dx() != 64 || bounds.Dy() != 48 {
		t.Errorf("expected 64x48 canvas, got %dx%d", bounds.Dx(), bounds.Dy())
	}
	// 120/80 is wider than 64/48.
	if !composed.Wide {
		t.Error("expected the source to classify as wide")
	}

	// Build the zoom sequence
	framesStage := frames.NewStage(renderer)
	sequence, err := framesStage.Execute(context.Background(), pipeline.FramesInput{
		Canvas:       composed.Canvas,
		FrameRate:    5,
		DurationSec:  2,
		ZoomRate:     0.01,
		TargetWidth:  64,
		TargetHeight: 48,
	})
	if err != nil {
		t.Fatalf("Frames stage failed: %v", err)
	}
	if sequence.Sequence.Len() != 10 {
		t.Fatalf("expected 10 frames, got %d", sequence.Sequence.Len())
	}

	first, err := sequence.Sequence.Frame(0)
	if err != nil {
		t.Fatalf("render first frame: %v", err)
	}
	last, err := sequence.Sequence.Frame(9)
	if err != nil {
		t.Fatalf("render last frame: %v", err)
	}

	for name, frame := range map[string]*image.RGBA{"first": first, "last": last} {
		b := frame.Bounds()
		if b.Dx() != 64 || b.Dy() != 48 {
			t.Errorf("%s frame is %dx%d, expected 64x48", name, b.Dx(), b.Dy())
		}
	}
	if bytes.Equal(first.Pix, last.Pix) {
		t.Error("expected the zoom to move pixels between the first and last frame")
	}
}

// TestFramesToEncode tests the frames → encode pipeline with a read-back of
// the finished clip.
func TestFramesToEncode(t *testing.T) {
	renderer := ggrenderer.New()

	composed, err := compose.NewStage(renderer).Execute(context.Background(), pipeline.ComposeInput{
		ImageData:    gradientPNG(t, 120, 80),
		TargetWidth:  64,
		TargetHeight: 48,
		BlurKernel:   9,
	})
	if err != nil {
		t.Fatalf("Compose stage failed: %v", err)
	}

	sequence, err := frames.NewStage(renderer).Execute(context.Background(), pipeline.FramesInput{
		Canvas:       composed.Canvas,
		FrameRate:    5,
		DurationSec:  2,
		ZoomRate:     0.01,
		TargetWidth:  64,
		TargetHeight: 48,
	})
	if err != nil {
		t.Fatalf("Frames stage failed: %v", err)
	}

	// Encode the clip
	outputPath := filepath.Join(t.TempDir(), "clip.avi")
	encodeStage := encode.NewStage(func() ports.VideoWriter { return smartcodec.NewWriter() })
	encoded, err := encodeStage.Execute(context.Background(), pipeline.EncodeInput{
		Sequence: sequence.Sequence,
		Clip: ports.ClipSpec{
			Path:   outputPath,
			FourCC: "MJPG",
			FPS:    5,
			Width:  64,
			Height: 48,
		},
	})
	if err != nil {
		t.Fatalf("Encode stage failed: %v", err)
	}
	if encoded.FramesWritten != 10 {
		t.Errorf("expected 10 frames written, got %d", encoded.FramesWritten)
	}

	// Read the clip back
	meta, decoded := readBack(t, outputPath)
	if meta.Width != 64 || meta.Height != 48 {
		t.Errorf("clip geometry = %dx%d, expected 64x48", meta.Width, meta.Height)
	}
	if meta.FPS != 5 {
		t.Errorf("clip FPS = %d, expected 5", meta.FPS)
	}
	if meta.FrameCount != 10 {
		t.Errorf("clip frame count = %d, expected 10", meta.FrameCount)
	}
	if decoded != 10 {
		t.Errorf("decoded %d frames, expected 10", decoded)
	}
}

// TestConvertImage tests the full pipeline for one image through the
// orchestrator.
func TestConvertImage(t *testing.T) {
	dir := t.TempDir()
	imagePath := filepath.Join(dir, "photo.png")
	writeImage(t, imagePath, 120, 80)

	orch := newOrchestrator(nullsink.New())
	outputPath := filepath.Join(dir, "photo.avi")
	result, err := orch.ConvertImage(context.Background(), testConfig(), imagePath, outputPath)
	if err != nil {
		t.Fatalf("ConvertImage failed: %v", err)
	}

	if result.FramesWritten != 10 {
		t.Errorf("expected 10 frames written, got %d", result.FramesWritten)
	}
	if result.OutputBytes <= 0 {
		t.Errorf("expected a non-empty output clip, got %d bytes", result.OutputBytes)
	}
	if result.OutputPath != outputPath {
		t.Errorf("result output path = %s, expected %s", result.OutputPath, outputPath)
	}

	meta, decoded := readBack(t, outputPath)
	if meta.Width != 64 || meta.Height != 48 {
		t.Errorf("clip geometry = %dx%d, expected 64x48", meta.Width, meta.Height)
	}
	if decoded != 10 {
		t.Errorf("decoded %d frames, expected 10", decoded)
	}

	t.Logf("converted clip: %d frames, %d bytes in %d ms",
		result.FramesWritten, result.OutputBytes, result.ElapsedMs)
}

// TestConvertDir tests batch conversion of a directory with a non-image file
// mixed in.
func TestConvertDir(t *testing.T) {
	inputDir := t.TempDir()
	outputDir := filepath.Join(t.TempDir(), "clips")
	writeImage(t, filepath.Join(inputDir, "a.png"), 120, 80)
	writeImage(t, filepath.Join(inputDir, "b.png"), 80, 120)
	if err := os.WriteFile(filepath.Join(inputDir, "notes.txt"), []byte("not an image"), 0o644); err != nil {
		t.Fatalf("write notes.txt: %v", err)
	}

	config := testConfig()
	config.Concurrency = 2
	var lastDone, lastTotal int
	config.Progress = func(done, total int) {
		lastDone, lastTotal = done, total
	}

	batch, err := newOrchestrator(nullsink.New()).ConvertDir(context.Background(), config, inputDir, outputDir)
	if err != nil {
		t.Fatalf("ConvertDir failed: %v", err)
	}

	if batch.Succeeded != 2 || batch.Failed != 0 {
		t.Errorf("batch = %d succeeded, %d failed, expected 2 and 0", batch.Succeeded, batch.Failed)
	}
	if len(batch.Items) != 2 {
		t.Fatalf("expected 2 batch items, got %d", len(batch.Items))
	}
	if lastDone != 2 || lastTotal != 2 {
		t.Errorf("last progress report = %d/%d, expected 2/2", lastDone, lastTotal)
	}

	// Output clips are named after the image stems.
	for _, name := range []string{"a.avi", "b.avi"} {
		meta, decoded := readBack(t, filepath.Join(outputDir, name))
		if meta.Width != 64 || meta.Height != 48 {
			t.Errorf("%s geometry = %dx%d, expected 64x48", name, meta.Width, meta.Height)
		}
		if decoded != 10 {
			t.Errorf("%s decoded %d frames, expected 10", name, decoded)
		}
	}
}

// TestStitchClips renders three clips and concatenates them.
func TestStitchClips(t *testing.T) {
	dir := t.TempDir()
	orch := newOrchestrator(nullsink.New())
	config := testConfig()

	// Render the source clips
	sources := [][2]int{{120, 80}, {80, 120}, {64, 48}}
	inputs := make([]string, 0, len(sources))
	for i, size := range sources {
		imagePath := filepath.Join(dir, fmt.Sprintf("src%d.png", i))
		writeImage(t, imagePath, size[0], size[1])

		clipPath := filepath.Join(dir, fmt.Sprintf("clip%d.avi", i))
		if _, err := orch.ConvertImage(context.Background(), config, imagePath, clipPath); err != nil {
			t.Fatalf("ConvertImage %d failed: %v", i, err)
		}
		inputs = append(inputs, clipPath)
	}

	// Stitch them in order
	outputPath := filepath.Join(dir, "stitched.avi")
	result, err := orch.Stitch(context.Background(), config, inputs, outputPath)
	if err != nil {
		t.Fatalf("Stitch failed: %v", err)
	}

	if result.FramesWritten != 30 {
		t.Errorf("expected 30 frames written, got %d", result.FramesWritten)
	}
	if len(result.InputFrames) != 3 {
		t.Fatalf("expected 3 input frame counts, got %d", len(result.InputFrames))
	}
	for i, n := range result.InputFrames {
		if n != 10 {
			t.Errorf("input %d contributed %d frames, expected 10", i, n)
		}
	}

	meta, decoded := readBack(t, outputPath)
	if meta.FrameCount != 30 {
		t.Errorf("stitched frame count = %d, expected 30", meta.FrameCount)
	}
	if decoded != 30 {
		t.Errorf("decoded %d frames, expected 30", decoded)
	}
}

// TestStitchDimensionMismatch verifies a geometry conflict aborts the stitch
// and removes the partial output.
func TestStitchDimensionMismatch(t *testing.T) {
	dir := t.TempDir()
	orch := newOrchestrator(nullsink.New())

	imagePath := filepath.Join(dir, "src.png")
	writeImage(t, imagePath, 120, 80)
	clipPath := filepath.Join(dir, "clip.avi")
	if _, err := orch.ConvertImage(context.Background(), testConfig(), imagePath, clipPath); err != nil {
		t.Fatalf("ConvertImage failed: %v", err)
	}

	// Declare a different output geometry than the rendered clip.
	mismatched := testConfig()
	mismatched.TargetWidth = 80
	mismatched.TargetHeight = 60

	outputPath := filepath.Join(dir, "stitched.avi")
	_, err := orch.Stitch(context.Background(), mismatched, []string{clipPath}, outputPath)
	if !errors.Is(err, ports.ErrDimensionMismatch) {
		t.Fatalf("Stitch error = %v, expected ports.ErrDimensionMismatch", err)
	}
	if _, err := os.Stat(outputPath); !os.IsNotExist(err) {
		t.Errorf("partial output %s should have been removed", outputPath)
	}
}

// TestStitchMissingInput verifies a missing source aborts the stitch and
// removes the partial output.
func TestStitchMissingInput(t *testing.T) {
	dir := t.TempDir()
	orch := newOrchestrator(nullsink.New())

	outputPath := filepath.Join(dir, "stitched.avi")
	_, err := orch.Stitch(context.Background(), testConfig(),
		[]string{filepath.Join(dir, "missing.avi")}, outputPath)
	if !errors.Is(err, ports.ErrInputNotFound) {
		t.Fatalf("Stitch error = %v, expected ports.ErrInputNotFound", err)
	}
	if _, err := os.Stat(outputPath); !os.IsNotExist(err) {
		t.Errorf("partial output %s should have been removed", outputPath)
	}
}

// TestConvertImageDebugArtifacts verifies the debug sink receives the canvas
// and the sampled frames.
func TestConvertImageDebugArtifacts(t *testing.T) {
	dir := t.TempDir()
	debugDir := filepath.Join(dir, "debug")

	fs := osfilesystem.New()
	renderer := ggrenderer.New()
	orch := newOrchestrator(filesink.New(debugDir, fs, renderer))

	imagePath := filepath.Join(dir, "photo.png")
	writeImage(t, imagePath, 120, 80)

	config := testConfig()
	config.DebugFrameInterval = 5
	if _, err := orch.ConvertImage(context.Background(), config, imagePath, filepath.Join(dir, "photo.avi")); err != nil {
		t.Fatalf("ConvertImage failed: %v", err)
	}

	// Ten frames sampled every five gives indices 0 and 5.
	artifacts := []string{
		"photo-canvas.png",
		filepath.Join("frames", "photo", "frame-0000.png"),
		filepath.Join("frames", "photo", "frame-0005.png"),
	}
	for _, name := range artifacts {
		if _, err := os.Stat(filepath.Join(debugDir, name)); err != nil {
			t.Errorf("missing debug artifact %s: %v", name, err)
		}
	}
}
