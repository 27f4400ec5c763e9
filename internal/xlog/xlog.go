// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

// Package xlog adapts go.uber.org/zap behind the small leveled-logger seam
// the rest of the module depends on, so Options.Logger can be swapped
// without the parser or writer importing zap directly.
package xlog

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level is a log severity, ordered least to most severe.
type Level int8

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// Logger is the minimal structured logging seam the parser and writer code
// against. keyvals is an alternating key/value list, mirroring the
// zap.SugaredLogger convention.
type Logger interface {
	Log(level Level, msg string, keyvals ...interface{})
}

// zapLogger adapts a *zap.SugaredLogger to Logger.
type zapLogger struct {
	s *zap.SugaredLogger
}

// NewZapLogger wraps z as a Logger.
func NewZapLogger(z *zap.Logger) Logger {
	return &zapLogger{s: z.Sugar()}
}

// NewStdLogger returns a Logger writing human-readable console output to
// stderr, at debug level and above.
func NewStdLogger() Logger {
	cfg := zap.NewDevelopmentEncoderConfig()
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(cfg), zapcore.AddSync(os.Stderr), zapcore.DebugLevel)
	return NewZapLogger(zap.New(core))
}

func (l *zapLogger) Log(level Level, msg string, keyvals ...interface{}) {
	switch level {
	case LevelDebug:
		l.s.Debugw(msg, keyvals...)
	case LevelInfo:
		l.s.Infow(msg, keyvals...)
	case LevelWarn:
		l.s.Warnw(msg, keyvals...)
	case LevelError:
		l.s.Errorw(msg, keyvals...)
	}
}

// FilterLevel wraps base so that only messages at or above min pass
// through, matching the teacher's log.NewFilter/log.FilterLevel seam.
func FilterLevel(base Logger, min Level) Logger {
	return &filteredLogger{base: base, min: min}
}

type filteredLogger struct {
	base Logger
	min  Level
}

func (f *filteredLogger) Log(level Level, msg string, keyvals ...interface{}) {
	if level < f.min {
		return
	}
	f.base.Log(level, msg, keyvals...)
}

// Helper provides key/value-style convenience methods over a Logger, mirroring
// the teacher's log.Helper.
type Helper struct {
	logger Logger
}

// NewHelper wraps l. A nil l produces a Helper whose calls are no-ops,
// so callers need not nil-check Options.Logger before use.
func NewHelper(l Logger) *Helper {
	return &Helper{logger: l}
}

func (h *Helper) log(level Level, msg string, keyvals ...interface{}) {
	if h == nil || h.logger == nil {
		return
	}
	h.logger.Log(level, msg, keyvals...)
}

func (h *Helper) Debugw(msg string, keyvals ...interface{}) { h.log(LevelDebug, msg, keyvals...) }
func (h *Helper) Infow(msg string, keyvals ...interface{})  { h.log(LevelInfo, msg, keyvals...) }
func (h *Helper) Warnw(msg string, keyvals ...interface{})  { h.log(LevelWarn, msg, keyvals...) }
func (h *Helper) Errorw(msg string, keyvals ...interface{}) { h.log(LevelError, msg, keyvals...) }
