//
// Copyright (C) 2025 The agentkit authors. All rights reserved.
//
// agentkit is licensed under the Apache License Version 2.0.
//

// Package log provides the logging facilities used across agentkit.
package log

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log level names accepted by SetLevel.
const (
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
	LevelFatal = "fatal"
)

// Logger is the minimal logging surface agentkit depends on. Swap Default
// with any implementation to redirect the framework's output.
type Logger interface {
	// Debugf logs at DEBUG level in the manner of fmt.Printf.
	Debugf(format string, args ...any)
	// Infof logs at INFO level in the manner of fmt.Printf.
	Infof(format string, args ...any)
	// Warnf logs at WARN level in the manner of fmt.Printf.
	Warnf(format string, args ...any)
	// Errorf logs at ERROR level in the manner of fmt.Printf.
	Errorf(format string, args ...any)
	// Fatalf logs at FATAL level in the manner of fmt.Printf, then exits.
	Fatalf(format string, args ...any)
}

var level = zap.NewAtomicLevelAt(zapcore.InfoLevel)

// Default is the logger used by all package-level functions. It defaults to
// a zap sugared logger writing to stdout at info level.
var Default Logger = zap.New(
	zapcore.NewCore(
		zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
			TimeKey:        "ts",
			LevelKey:       "lvl",
			NameKey:        "name",
			CallerKey:      "caller",
			MessageKey:     "message",
			StacktraceKey:  "stacktrace",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeLevel:    zapcore.CapitalLevelEncoder,
			EncodeTime:     zapcore.RFC3339TimeEncoder,
			EncodeDuration: zapcore.SecondsDurationEncoder,
			EncodeCaller:   zapcore.ShortCallerEncoder,
		}),
		zapcore.AddSync(os.Stdout),
		level,
	),
	zap.AddCaller(),
	zap.AddCallerSkip(1),
).Sugar()

// SetLevel adjusts the level of the default logger. Unrecognized names fall
// back to info.
func SetLevel(name string) {
	switch name {
	case LevelDebug:
		level.SetLevel(zapcore.DebugLevel)
	case LevelWarn:
		level.SetLevel(zapcore.WarnLevel)
	case LevelError:
		level.SetLevel(zapcore.ErrorLevel)
	case LevelFatal:
		level.SetLevel(zapcore.FatalLevel)
	default:
		level.SetLevel(zapcore.InfoLevel)
	}
}

// Debugf logs at DEBUG level via Default.
func Debugf(format string, args ...any) {
	Default.Debugf(format, args...)
}

// Infof logs at INFO level via Default.
func Infof(format string, args ...any) {
	Default.Infof(format, args...)
}

// Warnf logs at WARN level via Default.
func Warnf(format string, args ...any) {
	Default.Warnf(format, args...)
}

// Errorf logs at ERROR level via Default.
func Errorf(format string, args ...any) {
	Default.Errorf(format, args...)
}

// Fatalf logs at FATAL level via Default.
func Fatalf(format string, args ...any) {
	Default.Fatalf(format, args...)
}
