// Package logging builds the zap logger used for diagnostics. Diagnostics go
// to stderr so they never mix with a deck written to stdout.
package logging

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level selects how chatty the logger is.
type Level int

const (
	// LevelQuiet only reports errors.
	LevelQuiet Level = iota
	// LevelNormal reports warnings and errors.
	LevelNormal
	// LevelVerbose adds debug detail (skipped sections, timings).
	LevelVerbose
)

// New returns a console logger writing to w.
// Timestamps are omitted: output is meant for a terminal, not a log shipper.
func New(w io.Writer, level Level) *zap.Logger {
	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.TimeKey = ""
	encCfg.CallerKey = ""
	encCfg.EncodeLevel = zapcore.LowercaseLevelEncoder

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.AddSync(w),
		zap.NewAtomicLevelAt(zapLevel(level)),
	)
	return zap.New(core)
}

func zapLevel(level Level) zapcore.Level {
	switch level {
	case LevelQuiet:
		return zapcore.ErrorLevel
	case LevelVerbose:
		return zapcore.DebugLevel
	default:
		return zapcore.WarnLevel
	}
}

// LevelFor maps the CLI's --quiet/--verbose pair to a Level; quiet wins.
func LevelFor(quiet, verbose bool) Level {
	switch {
	case quiet:
		return LevelQuiet
	case verbose:
		return LevelVerbose
	default:
		return LevelNormal
	}
}
