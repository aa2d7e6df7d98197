package main

import (
	"os"

	"github.com/ideamans/go-l10n"
	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v2"
)

// newProgress returns a batch progress callback that renders a terminal
// bar, or nil when the run is quiet or not attached to a terminal. The
// orchestrator reports progress from a single goroutine.
func newProgress(c *cli.Context) func(done, total int) {
	if c.Bool("quiet") || !isatty.IsTerminal(os.Stderr.Fd()) {
		return nil
	}

	var bar *progressbar.ProgressBar
	return func(done, total int) {
		if bar == nil {
			bar = progressbar.NewOptions(total,
				progressbar.OptionSetDescription(l10n.T("Converting")),
				progressbar.OptionSetWriter(os.Stderr),
				progressbar.OptionShowCount(),
				progressbar.OptionSetTheme(progressbar.Theme{
					Saucer:        "=",
					SaucerHead:    ">",
					SaucerPadding: " ",
					BarStart:      "[",
					BarEnd:        "]",
				}))
		}
		_ = bar.Set(done)
		if done >= total {
			_ = bar.Finish()
		}
	}
}
