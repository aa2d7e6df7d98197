package report

import (
	"fmt"
	"strings"
	"time"
)

// MarkdownFormatter renders a Summary as a markdown document.
type MarkdownFormatter struct{}

// NewMarkdownFormatter creates a new MarkdownFormatter.
func NewMarkdownFormatter() *MarkdownFormatter {
	return &MarkdownFormatter{}
}

// Format implements the Formatter interface.
func (f *MarkdownFormatter) Format(summary *Summary) string {
	var b strings.Builder

	b.WriteString("# Conversion Summary\n\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", summary.GeneratedAt.Format(time.RFC3339))

	s := summary.Settings
	b.WriteString("## Settings\n\n")
	fmt.Fprintf(&b, "- Canvas: %dx%d\n", s.Width, s.Height)
	fmt.Fprintf(&b, "- Frame rate: %d fps\n", s.FPS)
	fmt.Fprintf(&b, "- Duration: %.1f s\n", s.DurationSec)
	fmt.Fprintf(&b, "- Zoom rate: %.4f\n", s.ZoomRate)
	fmt.Fprintf(&b, "- Blur kernel: %d\n", s.BlurKernel)
	fmt.Fprintf(&b, "- Codec: %s (%s)\n", s.FourCC, s.Container)
	if s.Concurrency > 1 {
		fmt.Fprintf(&b, "- Concurrency: %d\n", s.Concurrency)
	}

	if len(summary.Clips) > 0 {
		b.WriteString("\n## Clips\n\n")
		b.WriteString("| Image | Output | Frames | Size | Time | Status |\n")
		b.WriteString("|-------|--------|--------|------|------|--------|\n")

		succeeded := 0
		var totalBytes int64
		for _, clip := range summary.Clips {
			status := "OK"
			if clip.Error != "" {
				status = clip.Error
			} else {
				succeeded++
				totalBytes += clip.OutputBytes
			}
			fmt.Fprintf(&b, "| %s | %s | %d | %s | %d ms | %s |\n",
				clip.ImagePath, clip.OutputPath, clip.FramesWritten,
				formatBytes(clip.OutputBytes), clip.ElapsedMs, status)
		}

		fmt.Fprintf(&b, "\n%d clips, %d succeeded, %d failed, %s total\n",
			len(summary.Clips), succeeded, len(summary.Clips)-succeeded, formatBytes(totalBytes))
	}

	if summary.Stitch != nil {
		st := summary.Stitch
		b.WriteString("\n## Stitch\n\n")
		fmt.Fprintf(&b, "- Output: %s\n", st.OutputPath)
		fmt.Fprintf(&b, "- Frames: %d\n", st.FramesWritten)
		if len(st.InputFrames) > 0 {
			parts := make([]string, len(st.InputFrames))
			for i, n := range st.InputFrames {
				parts[i] = fmt.Sprintf("%d", n)
			}
			fmt.Fprintf(&b, "- Input frames: %s\n", strings.Join(parts, " + "))
		}
		if st.OutputBytes > 0 {
			fmt.Fprintf(&b, "- Size: %s\n", formatBytes(st.OutputBytes))
		}
	}

	return b.String()
}

// formatBytes renders a byte count with a binary unit.
func formatBytes(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.2f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.2f KB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}
