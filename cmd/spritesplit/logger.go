package main

import (
	"log/slog"
	"os"
)

// newLogger returns a text slog.Logger on stderr so stdout keeps the report.
func newLogger(level slog.Leveler) *slog.Logger {
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return slog.New(h)
}
