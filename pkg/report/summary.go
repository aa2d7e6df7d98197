// Package report renders conversion results as markdown summaries.
package report

import "time"

// Summary contains all data collected during one conversion run.
type Summary struct {
	// Metadata
	GeneratedAt time.Time

	// Conversion settings
	Settings Settings

	// Converted clips, in batch order
	Clips []ClipInfo

	// Stitch output, nil when no stitch ran
	Stitch *StitchInfo
}

// Settings contains the conversion configuration.
type Settings struct {
	Width       int
	Height      int
	FPS         int
	DurationSec float64
	ZoomRate    float64
	BlurKernel  int
	FourCC      string
	Container   string
	Concurrency int
}

// ClipInfo describes one converted image. Error is empty on success.
type ClipInfo struct {
	ImagePath     string
	OutputPath    string
	FramesWritten int
	OutputBytes   int64
	ElapsedMs     int64
	Error         string
}

// StitchInfo describes a stitched video.
type StitchInfo struct {
	OutputPath    string
	FramesWritten int
	InputFrames   []int
	OutputBytes   int64
}

// NewSummary creates a new Summary with the current timestamp.
func NewSummary() *Summary {
	return &Summary{
		GeneratedAt: time.Now(),
	}
}

// Builder provides a fluent interface for building a Summary.
type Builder struct {
	summary *Summary
}

// NewBuilder creates a new Builder.
func NewBuilder() *Builder {
	return &Builder{
		summary: NewSummary(),
	}
}

// WithSettings sets the conversion settings.
func (b *Builder) WithSettings(settings Settings) *Builder {
	b.summary.Settings = settings
	return b
}

// WithClip appends one converted clip.
func (b *Builder) WithClip(clip ClipInfo) *Builder {
	b.summary.Clips = append(b.summary.Clips, clip)
	return b
}

// WithStitch sets the stitch output.
func (b *Builder) WithStitch(stitch StitchInfo) *Builder {
	b.summary.Stitch = &stitch
	return b
}

// Build returns the constructed Summary.
func (b *Builder) Build() *Summary {
	return b.summary
}
