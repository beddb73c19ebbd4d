package main

import (
	"log/slog"
	"os"
	"strings"
)

var logLevelMap = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// newLogger builds the root slog.Logger from a level name, writing
// human-readable text to stderr so it never interleaves with a command's
// stdout output.
func newLogger(levelName string) *slog.Logger {
	level, ok := logLevelMap[strings.ToLower(levelName)]
	if !ok {
		level = slog.LevelWarn
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return slog.New(handler)
}
