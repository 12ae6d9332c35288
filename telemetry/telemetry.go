// Package telemetry wraps zap's logger construction behind two
// constructors: the one place navigation code writes human-visible output.
// Nothing outside this package calls zap.NewProduction or zap.NewDevelopment
// directly; a SugaredLogger is always injected, never read from a global.
package telemetry

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewConsole returns a logger writing human-readable lines to stderr. debug
// selects Debug level; otherwise Info level.
func NewConsole(debug bool) *zap.SugaredLogger {
	level := zap.InfoLevel
	if debug {
		level = zap.DebugLevel
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := cfg.Build()
	if err != nil {
		// Construction only fails on a malformed config; cfg above is static
		// and known-good, so this should be unreachable in practice.
		logger = zap.NewNop()
	}
	return logger.Sugar()
}

// NewNop returns a logger that discards everything, for use in tests that
// don't want to assert on log output.
func NewNop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}
