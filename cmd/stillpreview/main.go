package main

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"github.com/user/stillmotion/pkg/adapters/ggrenderer"
	"github.com/user/stillmotion/pkg/pipeline"
	"github.com/user/stillmotion/pkg/stages/compose"
	"github.com/user/stillmotion/pkg/stages/frames"
)

func main() {
	renderer := ggrenderer.New()
	composeStage := compose.NewStage(renderer)
	framesStage := frames.NewStage(renderer)

	data, err := sourceImage()
	if err != nil {
		fmt.Printf("Error loading source image: %v\n", err)
		os.Exit(1)
	}

	if err := os.MkdirAll("tmp", 0o755); err != nil {
		fmt.Printf("Error creating tmp directory: %v\n", err)
		os.Exit(1)
	}

	sizes := []struct {
		width  int
		height int
	}{
		{1920, 1080},
		{1280, 720},
		{720, 1280},
	}

	for _, size := range sizes {
		composed, err := composeStage.Execute(context.Background(), pipeline.ComposeInput{
			ImageData:    data,
			TargetWidth:  size.width,
			TargetHeight: size.height,
			BlurKernel:   195,
		})
		if err != nil {
			fmt.Printf("Error composing canvas: %v\n", err)
			continue
		}

		name := fmt.Sprintf("tmp/canvas_%dx%d.png", size.width, size.height)
		if err := writePNG(name, composed.Canvas); err != nil {
			fmt.Printf("Error writing canvas: %v\n", err)
			continue
		}
		fmt.Printf("Generated %s (wide=%v)\n", name, composed.Wide)

		rendered, err := framesStage.Execute(context.Background(), pipeline.FramesInput{
			Canvas:       composed.Canvas,
			FrameRate:    25,
			DurationSec:  10,
			ZoomRate:     0.0004,
			TargetWidth:  size.width,
			TargetHeight: size.height,
		})
		if err != nil {
			fmt.Printf("Error building frame sequence: %v\n", err)
			continue
		}

		// First and last frame bracket the zoom range.
		sequence := rendered.Sequence
		for _, index := range []int{0, sequence.Len() - 1} {
			frame, err := sequence.Frame(index)
			if err != nil {
				fmt.Printf("Error rendering frame %d: %v\n", index, err)
				continue
			}
			name := fmt.Sprintf("tmp/frame_%dx%d_%04d.png", size.width, size.height, index)
			if err := writePNG(name, frame); err != nil {
				fmt.Printf("Error writing frame: %v\n", err)
				continue
			}
			fmt.Printf("Generated %s\n", name)
		}
	}
}

// sourceImage reads the image given on the command line, or builds a
// gradient when no argument is given.
func sourceImage() ([]byte, error) {
	if len(os.Args) > 1 {
		return os.ReadFile(os.Args[1])
	}
	return gradientPNG(800, 600)
}

// gradientPNG renders a gradient with a dark center marker so the zoom
// motion is visible in the dumped frames.
func gradientPNG(width, height int) ([]byte, error) {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, color.RGBA{
				R: uint8(255 * x / width),
				G: uint8(255 * y / height),
				B: 128,
				A: 255,
			})
		}
	}
	for y := height/2 - 10; y < height/2+10; y++ {
		for x := width/2 - 10; x < width/2+10; x++ {
			img.SetRGBA(x, y, color.RGBA{A: 255})
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
