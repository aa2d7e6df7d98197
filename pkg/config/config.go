// Package config provides configuration loading and management.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/user/stillmotion/pkg/orchestrator"
)

// DefaultFileName is looked up in the working directory when no explicit
// config path is given.
const DefaultFileName = "stillmotion.yml"

// Config represents the full configuration for stillmotion.
type Config struct {
	// Canvas
	Width      int `yaml:"width"`
	Height     int `yaml:"height"`
	BlurKernel int `yaml:"blur_kernel"`

	// Zoom sequence
	FPS         int     `yaml:"fps"`
	DurationSec float64 `yaml:"duration_sec"`
	ZoomRate    float64 `yaml:"zoom_rate"`

	// Output
	Codec     string `yaml:"codec"`
	Container string `yaml:"container"`

	// Batch
	Concurrency int `yaml:"concurrency"`

	// Logging / debug
	LogLevel           string `yaml:"log_level"`
	DebugDir           string `yaml:"debug_dir"`
	DebugFrameInterval int    `yaml:"debug_frame_interval"`
}

// Defaults returns a Config with default values.
func Defaults() Config {
	return Config{
		Width:      1920,
		Height:     1080,
		BlurKernel: 195,

		FPS:         25,
		DurationSec: 10,
		ZoomRate:    0.0004,

		Codec:     "MJPG",
		Container: ".avi",

		Concurrency: 1,

		LogLevel:           "info",
		DebugFrameInterval: 25,
	}
}

// LoadFromFile loads configuration from a YAML file, layering file values
// over the defaults.
func LoadFromFile(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}

	return cfg, nil
}

// Discover returns the default config file path when it exists in the
// working directory.
func Discover() (string, bool) {
	if _, err := os.Stat(DefaultFileName); err == nil {
		return DefaultFileName, true
	}
	return "", false
}

// ToOrchestratorConfig converts Config to orchestrator.Config.
func (c Config) ToOrchestratorConfig() orchestrator.Config {
	return orchestrator.Config{
		TargetWidth:  c.Width,
		TargetHeight: c.Height,
		BlurKernel:   c.BlurKernel,

		FPS:         c.FPS,
		DurationSec: c.DurationSec,
		ZoomRate:    c.ZoomRate,

		FourCC:    c.Codec,
		Container: c.Container,

		Concurrency: c.Concurrency,

		DebugFrameInterval: c.DebugFrameInterval,
	}
}
