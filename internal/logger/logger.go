package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

var log = slog.New(slog.NewJSONHandler(os.Stdout, nil))

// Init replaces the package logger with a JSON logger at the given level.
// Unknown levels fall back to info.
func Init(level string) {
	SetOutput(os.Stdout, level)
	log.Info("logger initialized", slog.String("level", level))
}

// SetOutput sends JSON lines at the given level to w. Not safe to call while
// other goroutines are logging.
func SetOutput(w io.Writer, level string) {
	log = slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: parseLevel(level),
	}))
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func attrs(fields map[string]any) []any {
	out := make([]any, 0, len(fields))
	for k, v := range fields {
		out = append(out, slog.Any(k, v))
	}
	return out
}

func Debug(msg string, fields map[string]any) {
	log.Debug(msg, attrs(fields)...)
}

func Info(msg string, fields map[string]any) {
	log.Info(msg, attrs(fields)...)
}

func Warn(msg string, fields map[string]any) {
	log.Warn(msg, attrs(fields)...)
}

func Error(msg string, fields map[string]any) {
	log.Error(msg, attrs(fields)...)
}

func Fatal(msg string, fields map[string]any) {
	log.Error(msg, attrs(fields)...)
	os.Exit(1)
}
