//
// Copyright (C) 2025 The agentkit authors. All rights reserved.
//
// agentkit is licensed under the Apache License Version 2.0.
//

package log

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

type recordingLogger struct {
	lines []string
}

func (r *recordingLogger) Debugf(format string, args ...any) { r.record("debug", format, args...) }
func (r *recordingLogger) Infof(format string, args ...any)  { r.record("info", format, args...) }
func (r *recordingLogger) Warnf(format string, args ...any)  { r.record("warn", format, args...) }
func (r *recordingLogger) Errorf(format string, args ...any) { r.record("error", format, args...) }
func (r *recordingLogger) Fatalf(format string, args ...any) { r.record("fatal", format, args...) }

func (r *recordingLogger) record(level, format string, args ...any) {
	r.lines = append(r.lines, level+": "+fmt.Sprintf(format, args...))
}

func TestDefaultIsSwappable(t *testing.T) {
	orig := Default
	defer func() { Default = orig }()

	rec := &recordingLogger{}
	Default = rec

	Infof("hello %s", "world")
	Warnf("watch out")
	Errorf("boom %d", 42)

	require.Len(t, rec.lines, 3)
	assert.Equal(t, "info: hello world", rec.lines[0])
	assert.Equal(t, "warn: watch out", rec.lines[1])
	assert.Equal(t, "error: boom 42", rec.lines[2])
}

func TestSetLevel(t *testing.T) {
	defer SetLevel(LevelInfo)

	tests := []struct {
		name string
		want zapcore.Level
	}{
		{LevelDebug, zapcore.DebugLevel},
		{LevelInfo, zapcore.InfoLevel},
		{LevelWarn, zapcore.WarnLevel},
		{LevelError, zapcore.ErrorLevel},
		{LevelFatal, zapcore.FatalLevel},
		{"unknown", zapcore.InfoLevel},
	}
	for _, tt := range tests {
		SetLevel(tt.name)
		assert.Equal(t, tt.want, level.Level(), "level name %q", tt.name)
	}
}
