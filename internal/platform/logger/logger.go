package logger

import (
	"log/slog"
	"os"
)

// New returns the process-wide structured logger. Text output keeps local
// development readable; the level comes from the environment name so
// production stays at info.
func New(environment string) *slog.Logger {
	level := slog.LevelDebug
	if environment == "production" {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}
