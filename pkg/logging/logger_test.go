package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"

	"github.com/kittclouds/bce/pkg/config"
)

func TestMapLevel(t *testing.T) {
	cases := []struct {
		level config.LogLevel
		want  zapcore.Level
	}{
		{config.Trace, zapcore.DebugLevel},
		{config.Debug, zapcore.DebugLevel},
		{config.Info, zapcore.InfoLevel},
		{config.Warn, zapcore.WarnLevel},
		{config.Error, zapcore.ErrorLevel},
	}
	for _, c := range cases {
		if got := mapLevel(c.level); got != c.want {
			t.Errorf("mapLevel(%s) = %v, want %v", c.level, got, c.want)
		}
	}
}

func TestNewBuildsLoggerAtRequestedLevel(t *testing.T) {
	log, err := New(config.Info)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer log.Sync()
	if !log.Core().Enabled(zapcore.InfoLevel) {
		t.Fatalf("expected Info level to be enabled")
	}
	if log.Core().Enabled(zapcore.DebugLevel) {
		t.Fatalf("expected Debug level to be disabled at Info")
	}
}
