// Package main is a test program for comparing zoom rates.
package main

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"

	"github.com/user/stillmotion/pkg/adapters/logger"
	"github.com/user/stillmotion/pkg/stillmotion"
)

const (
	workDir     = "tmp/zoomsweep"
	imageWidth  = 1600
	imageHeight = 1000
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Reset the work directory
	fmt.Printf("Cleaning up %s...\n", workDir)
	if err := os.RemoveAll(workDir); err != nil {
		return fmt.Errorf("failed to remove %s: %w", workDir, err)
	}
	if err := os.MkdirAll(workDir, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", workDir, err)
	}

	// 2. Generate the test image
	imagePath := filepath.Join(workDir, "source.png")
	fmt.Printf("Generating %dx%d test image...\n", imageWidth, imageHeight)
	data, err := testImage(imageWidth, imageHeight)
	if err != nil {
		return fmt.Errorf("failed to render test image: %w", err)
	}
	if err := os.WriteFile(imagePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write test image: %w", err)
	}

	// 3. Convert the image once per zoom rate
	converter := stillmotion.New(stillmotion.Options{Logger: logger.NewNoop()})

	zoomRates := []float64{0, 0.0002, 0.0004, 0.0008, 0.0016}
	for _, rate := range zoomRates {
		config := stillmotion.NewConfigBuilder().
			WithSize(640, 360).
			WithFPS(25).
			WithDuration(4).
			WithZoomRate(rate).
			Build()

		outputPath := filepath.Join(workDir, fmt.Sprintf("zoom_%.4f.avi", rate))
		result, err := converter.Convert(context.Background(), config, imagePath, outputPath)
		if err != nil {
			return fmt.Errorf("failed to convert at rate %.4f: %w", rate, err)
		}

		fmt.Printf("zoom %.4f: %d frames, %d bytes, %d ms\n",
			rate, result.FramesWritten, result.OutputBytes, result.ElapsedMs)
	}

	fmt.Printf("Clips written to %s\n", workDir)
	return nil
}

// testImage renders concentric rings so the zoom speed is easy to compare
// between clips.
func testImage(width, height int) ([]byte, error) {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	cx, cy := width/2, height/2
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			dx, dy := x-cx, y-cy
			d := math.Sqrt(float64(dx*dx + dy*dy))
			shade := uint8(255 * (0.5 + 0.5*math.Cos(d/24)))
			img.SetRGBA(x, y, color.RGBA{R: shade, G: shade, B: 255 - shade, A: 255})
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
