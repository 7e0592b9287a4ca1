// Package logging wraps go.uber.org/zap for BCE's structured logging,
// mapped from the log_level configuration knob (§6). The teacher project
// this module is otherwise grounded on logs via bare fmt.Printf; this
// package is the one ambient-stack gap this implementation fills with a
// library the wider reference corpus already depends on.
package logging

import (
	"github.com/kittclouds/bce/pkg/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a zap.Logger whose minimum enabled level matches level.
// BCE's TRACE has no zapcore equivalent and is mapped to zap's Debug
// level, one step coarser, since zap does not expose a finer level.
func New(level config.LogLevel) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(mapLevel(level))
	cfg.Encoding = "console"
	cfg.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	return cfg.Build()
}

func mapLevel(level config.LogLevel) zapcore.Level {
	switch level {
	case config.Trace, config.Debug:
		return zapcore.DebugLevel
	case config.Info:
		return zapcore.InfoLevel
	case config.Warn:
		return zapcore.WarnLevel
	case config.Error:
		return zapcore.ErrorLevel
	default:
		return zapcore.WarnLevel
	}
}
