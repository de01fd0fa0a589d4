package logging

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// New builds the process logger. The level comes from PROJTREE_LOG
// (trace, debug, info, warn, error); unset or unknown means warn, so the
// TUI stays quiet unless asked. Output goes to w in console form.
func New(w io.Writer) zerolog.Logger {
	level := zerolog.WarnLevel
	if env := strings.ToLower(strings.TrimSpace(os.Getenv("PROJTREE_LOG"))); env != "" {
		if parsed, err := zerolog.ParseLevel(env); err == nil {
			level = parsed
		}
	}
	out := zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

// NewStderr is New writing to standard error.
func NewStderr() zerolog.Logger {
	return New(os.Stderr)
}

// NewFile is New writing to a log file, for full-screen programs where
// stderr is not visible. The returned closer flushes the file; on any
// failure a no-op logger is returned instead.
func NewFile(path string) (zerolog.Logger, func() error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return zerolog.Nop(), func() error { return nil }
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Nop(), func() error { return nil }
	}
	return New(f), f.Close
}
