// Package logger provides structured logging utilities for sitedeploy.
// Diagnostics go to stderr through a tint console handler; an optional transcript file
// receives every record as JSON.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/runvoy/sitedeploy/internal/constants"

	"github.com/fatih/color"
	"github.com/lmittmann/tint"
)

// Console is where the console handler writes. Tests can override it.
var Console io.Writer = os.Stderr

// Initialize sets up the global slog logger. Records at level and above go to the console;
// when logFile is set, every record from debug up is also written to it as JSON.
// The returned closer flushes and closes the transcript and is safe to call more than once.
func Initialize(level slog.Level, logFile string) (*slog.Logger, func() error, error) {
	console := tint.NewHandler(Console, &tint.Options{
		Level:      level,
		TimeFormat: time.TimeOnly,
		NoColor:    color.NoColor,
	})

	handler := slog.Handler(console)
	closer := func() error { return nil }

	if logFile != "" {
		f, err := os.OpenFile(filepath.Clean(logFile),
			os.O_CREATE|os.O_WRONLY|os.O_APPEND, constants.LogFilePermissions)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file %s: %w", logFile, err)
		}
		transcript := slog.NewJSONHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})
		handler = NewFanoutHandler(console, transcript)
		closer = sync.OnceValue(f.Close)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	slog.Debug("logger initialized", "level", level, "log_file", logFile)

	return logger, closer, nil
}
