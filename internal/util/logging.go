// Package util provides common utilities including logging setup,
// PIN hashing, and file system paths.
package util

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger builds a JSON file logger. The terminal belongs to the TUI, so
// an empty path yields a no-op logger rather than writing to stderr.
func NewLogger(level, path string) (*zap.Logger, error) {
	if path == "" {
		return zap.NewNop(), nil
	}
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	cfg.Sampling = nil
	return cfg.Build()
}

// LogError logs an error with context if it is non-nil.
func LogError(log *zap.Logger, context string, err error) {
	if err != nil {
		log.Error(context, zap.Error(err))
	}
}
