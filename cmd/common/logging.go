package common

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// ParseLevel maps debug/info/warn/error to a slog level. Unknown values
// fall back to warn.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// SetupLogging configures slog to write to console, the log file and any
// extra writers. A nil console skips terminal output, which the panel
// needs. Returns a func closing the log file.
func SetupLogging(level slog.Level, console io.Writer, extra ...io.Writer) func() {
	writers := append([]io.Writer{}, extra...)
	if console != nil {
		writers = append(writers, console)
	}

	closeFn := func() {}
	logPath := LogPath()
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err == nil {
		logFile, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err == nil {
			writers = append(writers, logFile)
			closeFn = func() { logFile.Close() }
		}
	}

	handler := slog.NewTextHandler(io.MultiWriter(writers...), &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
	return closeFn
}
