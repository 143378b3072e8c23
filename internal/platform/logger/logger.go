package logger

import (
	"log/slog"
	"os"
)

// New returns a JSON slog logger writing to stdout. Development mode switches
// to debug level.
func New(development bool) *slog.Logger {
	level := slog.LevelInfo
	if development {
		level = slog.LevelDebug
	}
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(handler)
}
