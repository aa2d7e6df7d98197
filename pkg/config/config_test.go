package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	if cfg.Width != 1920 || cfg.Height != 1080 {
		t.Errorf("default geometry = %dx%d, want 1920x1080", cfg.Width, cfg.Height)
	}
	if cfg.FPS != 25 {
		t.Errorf("default FPS = %d, want 25", cfg.FPS)
	}
	if cfg.DurationSec != 10 {
		t.Errorf("default DurationSec = %v, want 10", cfg.DurationSec)
	}
	if cfg.ZoomRate != 0.0004 {
		t.Errorf("default ZoomRate = %v, want 0.0004", cfg.ZoomRate)
	}
	if cfg.BlurKernel != 195 {
		t.Errorf("default BlurKernel = %d, want 195", cfg.BlurKernel)
	}
	if cfg.Codec != "MJPG" {
		t.Errorf("default Codec = %q, want MJPG", cfg.Codec)
	}
	if cfg.Container != ".avi" {
		t.Errorf("default Container = %q, want .avi", cfg.Container)
	}
	if cfg.Concurrency != 1 {
		t.Errorf("default Concurrency = %d, want 1", cfg.Concurrency)
	}
}

func TestLoadFromFile_LayersOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stillmotion.yml")
	content := `
width: 1280
height: 720
fps: 30
codec: avc1
container: .mp4
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}

	if cfg.Width != 1280 || cfg.Height != 720 {
		t.Errorf("geometry = %dx%d, want 1280x720", cfg.Width, cfg.Height)
	}
	if cfg.FPS != 30 {
		t.Errorf("FPS = %d, want 30", cfg.FPS)
	}
	if cfg.Codec != "avc1" || cfg.Container != ".mp4" {
		t.Errorf("output = %s %s, want avc1 .mp4", cfg.Codec, cfg.Container)
	}

	// Unset keys keep their defaults.
	if cfg.ZoomRate != 0.0004 {
		t.Errorf("ZoomRate = %v, want default 0.0004", cfg.ZoomRate)
	}
	if cfg.BlurKernel != 195 {
		t.Errorf("BlurKernel = %d, want default 195", cfg.BlurKernel)
	}
	if cfg.DurationSec != 10 {
		t.Errorf("DurationSec = %v, want default 10", cfg.DurationSec)
	}
}

func TestLoadFromFile_MissingFile(t *testing.T) {
	cfg, err := LoadFromFile(filepath.Join(t.TempDir(), "absent.yml"))
	if err == nil {
		t.Error("expected error for missing file")
	}
	// Defaults still come back usable.
	if cfg.Width != 1920 {
		t.Errorf("Width = %d, want default 1920", cfg.Width)
	}
}

func TestLoadFromFile_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yml")
	if err := os.WriteFile(path, []byte("width: [not a number"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadFromFile(path); err == nil {
		t.Error("expected error for invalid yaml")
	}
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(cwd)

	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}

	if path, ok := Discover(); ok {
		t.Errorf("Discover() = %q, want no file", path)
	}

	if err := os.WriteFile(DefaultFileName, []byte("fps: 30\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	path, ok := Discover()
	if !ok {
		t.Fatal("Discover() found nothing, want default file")
	}
	if path != DefaultFileName {
		t.Errorf("Discover() = %q, want %q", path, DefaultFileName)
	}
}

func TestToOrchestratorConfig(t *testing.T) {
	cfg := Defaults()
	cfg.Width = 640
	cfg.Height = 360
	cfg.Codec = "avc1"
	cfg.Container = ".mp4"
	cfg.Concurrency = 4

	oc := cfg.ToOrchestratorConfig()

	if oc.TargetWidth != 640 || oc.TargetHeight != 360 {
		t.Errorf("target = %dx%d, want 640x360", oc.TargetWidth, oc.TargetHeight)
	}
	if oc.FourCC != "avc1" || oc.Container != ".mp4" {
		t.Errorf("output = %s %s, want avc1 .mp4", oc.FourCC, oc.Container)
	}
	if oc.Concurrency != 4 {
		t.Errorf("Concurrency = %d, want 4", oc.Concurrency)
	}
	if oc.FPS != 25 || oc.DurationSec != 10 || oc.ZoomRate != 0.0004 || oc.BlurKernel != 195 {
		t.Errorf("sequence params = %d/%v/%v/%d, want defaults", oc.FPS, oc.DurationSec, oc.ZoomRate, oc.BlurKernel)
	}
}
