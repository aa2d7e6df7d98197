package ports

// ProbeResult is the structured outcome of a codec availability check.
// It replaces diagnostic-text scraping: callers look at the fields, never
// at error strings.
type ProbeResult struct {
	// Opened reports that an encoder for the codec/container pair could be
	// opened at all.
	Opened bool

	// WroteTestFrame reports that the opened encoder accepted one frame of
	// the declared geometry.
	WroteTestFrame bool
}

// Usable reports whether the codec opened and accepted a test frame.
func (r ProbeResult) Usable() bool {
	return r.Opened && r.WroteTestFrame
}

// CodecProber checks that a codec/container pair can produce output with
// the given geometry. Probing is consulted once per batch, not per clip.
type CodecProber interface {
	Probe(fourcc string, width, height, fps int, containerExt string) ProbeResult
}
