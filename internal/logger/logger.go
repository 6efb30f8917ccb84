// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package logger wraps zerolog for the task service and the sync client.
// Components keep a *Logger, request and sync-pass scoped loggers travel in
// the context and are read back with FromContext or FromRequest.
package logger

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	clientLogName       = "notes-sync.log"
	clientLogMaxSizeMB  = 10
	clientLogMaxBackups = 3
	clientLogMaxAgeDays = 28
)

var configureOnce sync.Once

// configure sets the process-wide zerolog knobs once. The caller field holds
// the function name rather than file:line.
func configure() {
	configureOnce.Do(func() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		zerolog.CallerFieldName = "func"
		zerolog.CallerMarshalFunc = func(pc uintptr, _ string, _ int) string {
			return runtime.FuncForPC(pc).Name()
		}
	})
}

type Logger struct {
	zerolog.Logger
}

func newLogger(w io.Writer, role string) *Logger {
	configure()

	return &Logger{zerolog.New(w).With().
		Str("role", role).
		Timestamp().
		Caller().
		Logger()}
}

// NewLogger writes JSON entries to stdout. Used by the task service.
func NewLogger(role string) *Logger {
	return newLogger(os.Stdout, role)
}

// NewClientLogger writes to a size-rotated file because stdout of the sync
// client carries progress output. An empty logPath puts the file next to the
// executable.
func NewClientLogger(role, logPath string) *Logger {
	return newLogger(&lumberjack.Logger{
		Filename:   clientLogPath(logPath),
		MaxSize:    clientLogMaxSizeMB,
		MaxBackups: clientLogMaxBackups,
		MaxAge:     clientLogMaxAgeDays,
	}, role)
}

func clientLogPath(logPath string) string {
	if logPath != "" {
		return logPath
	}

	execPath, err := os.Executable()
	if err != nil {
		return clientLogName
	}
	return filepath.Join(filepath.Dir(execPath), clientLogName)
}

// Nop discards everything.
func Nop() *Logger {
	return &Logger{zerolog.Nop()}
}

// GetChildLogger copies l so that fields added to the child stay off l.
func (l *Logger) GetChildLogger() *Logger {
	return &Logger{l.With().Logger()}
}

func FromRequest(r *http.Request) *Logger {
	return FromContext(r.Context())
}

// FromContext returns the logger attached with WithContext, or the zerolog
// default logger when there is none.
func FromContext(ctx context.Context) *Logger {
	return &Logger{*log.Ctx(ctx)}
}
