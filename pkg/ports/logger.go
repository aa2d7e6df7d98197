package ports

// LogLevel orders log messages by severity. A logger configured at some
// level emits messages at that level and above.
type LogLevel int

const (
	// LevelDebug is per-stage internal detail.
	LevelDebug LogLevel = iota
	// LevelInfo is operation progress.
	LevelInfo
	// LevelWarn is a recoverable problem; processing continues.
	LevelWarn
	// LevelError is a failure that aborts the operation.
	LevelError
	// LevelQuiet emits nothing.
	LevelQuiet
)

var levelNames = [...]string{"debug", "info", "warn", "error", "quiet"}

// String returns the lowercase level name.
func (l LogLevel) String() string {
	if l < LevelDebug || l > LevelQuiet {
		return "unknown"
	}
	return levelNames[l]
}

// ParseLogLevel maps a level name to its LogLevel. Unknown names fall back
// to LevelInfo.
func ParseLogLevel(name string) LogLevel {
	for i, n := range levelNames {
		if n == name {
			return LogLevel(i)
		}
	}
	return LevelInfo
}

// Logger is the leveled logging port shared by the pipeline operations. msg
// is an English format string registered with the translation lexicon; args
// are its fmt arguments.
type Logger interface {
	// Debug logs internal processing detail.
	Debug(msg string, args ...interface{})

	// Info logs operation progress.
	Info(msg string, args ...interface{})

	// Warn logs a recoverable problem.
	Warn(msg string, args ...interface{})

	// Error logs an operation failure.
	Error(msg string, args ...interface{})

	// WithComponent returns a Logger that tags its lines with a component
	// name.
	WithComponent(component string) Logger
}
