// Package logger provides the console logger used by the CLI and a no-op
// logger for silent operation.
package logger

import (
	"fmt"
	"io"
	"os"

	"github.com/ideamans/go-l10n"
	"github.com/mattn/go-isatty"
	"github.com/user/stillmotion/pkg/ports"
)

// ANSI escape sequences for level coloring.
const (
	ansiReset  = "\033[0m"
	ansiGray   = "\033[90m"
	ansiYellow = "\033[33m"
	ansiRed    = "\033[31m"
	ansiCyan   = "\033[36m"
)

// Console writes translated log lines to the standard streams: progress to
// stdout, problems to stderr. Messages below the configured level are
// dropped.
type Console struct {
	level     ports.LogLevel
	component string
	outColor  bool
	errColor  bool
}

// NewConsole creates a console logger at the given level. Coloring is
// decided per stream, so a piped stdout stays plain while warnings on an
// interactive stderr keep their color.
func NewConsole(level ports.LogLevel) *Console {
	return &Console{
		level:    level,
		outColor: isTerminal(os.Stdout),
		errColor: isTerminal(os.Stderr),
	}
}

var _ ports.Logger = (*Console)(nil)

// Debug logs internal processing detail.
func (c *Console) Debug(msg string, args ...interface{}) {
	c.emit(ports.LevelDebug, msg, args...)
}

// Info logs operation progress.
func (c *Console) Info(msg string, args ...interface{}) {
	c.emit(ports.LevelInfo, msg, args...)
}

// Warn logs a recoverable problem.
func (c *Console) Warn(msg string, args ...interface{}) {
	c.emit(ports.LevelWarn, msg, args...)
}

// Error logs an operation failure.
func (c *Console) Error(msg string, args ...interface{}) {
	c.emit(ports.LevelError, msg, args...)
}

// WithComponent returns a logger whose lines carry a component tag.
func (c *Console) WithComponent(component string) ports.Logger {
	clone := *c
	clone.component = component
	return &clone
}

// emit translates, decorates and prints one line on the stream for its
// level.
func (c *Console) emit(level ports.LogLevel, msg string, args ...interface{}) {
	if level < c.level {
		return
	}

	line := l10n.F(msg, args...)
	stream, color := c.stream(level)

	if c.component != "" {
		if color {
			line = fmt.Sprintf("%s[%s]%s %s", ansiCyan, c.component, ansiReset, line)
		} else {
			line = fmt.Sprintf("[%s] %s", c.component, line)
		}
	}
	if color {
		switch level {
		case ports.LevelDebug:
			line = ansiGray + line + ansiReset
		case ports.LevelWarn:
			line = ansiYellow + line + ansiReset
		case ports.LevelError:
			line = ansiRed + line + ansiReset
		}
	}

	fmt.Fprintln(stream, line)
}

// stream picks the output for a level and whether it supports color:
// warnings and errors go to stderr, everything else to stdout.
func (c *Console) stream(level ports.LogLevel) (io.Writer, bool) {
	if level >= ports.LevelWarn {
		return os.Stderr, c.errColor
	}
	return os.Stdout, c.outColor
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
