package util

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogOptions selects where and how verbosely pagectl logs.
type LogOptions struct {
	Level   string // debug, info, warn, error
	File    string // empty means Fallback
	Verbose bool   // forces debug

	// Fallback is the output path used when File is empty, e.g. "stderr".
	// An empty Fallback discards the log.
	Fallback string
}

// NewLogger builds a production zap logger for opts.
func NewLogger(opts LogOptions) (*zap.Logger, error) {
	out := opts.File
	if out == "" {
		out = opts.Fallback
	}
	if out == "" {
		return zap.NewNop(), nil
	}

	level := zapcore.InfoLevel
	if opts.Level != "" {
		if err := level.Set(opts.Level); err != nil {
			return nil, fmt.Errorf("log level %q: %w", opts.Level, err)
		}
	}
	if opts.Verbose {
		level = zapcore.DebugLevel
	}

	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(level)
	config.OutputPaths = []string{out}
	config.ErrorOutputPaths = []string{"stderr"}
	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}
