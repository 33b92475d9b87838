// Package jsonlog writes one JSON object per log line.
package jsonlog

import (
	"io"
	"os"
	"runtime/debug"
	"strings"

	"github.com/rs/zerolog"
)

const (
	InfoLevel Level = iota
	ErrorLevel
	FatalLevel
	NilLevel
)

type Level int8

func (lv Level) zerolog() zerolog.Level {
	switch lv {
	case InfoLevel:
		return zerolog.InfoLevel
	case ErrorLevel:
		return zerolog.ErrorLevel
	case FatalLevel:
		return zerolog.FatalLevel
	default:
		return zerolog.Disabled
	}
}

type Logger struct {
	zl zerolog.Logger
}

func New(out io.Writer, level Level) *Logger {
	zl := zerolog.New(zerolog.SyncWriter(out)).
		Level(level.zerolog()).
		With().
		Timestamp().
		Logger()

	return &Logger{zl: zl}
}

func (l *Logger) Info(message string, properties map[string]string) {
	withProperties(l.zl.Info(), properties).Msg(message)
}

// Error logs err together with the stack of the calling goroutine.
func (l *Logger) Error(err error, properties map[string]string) {
	withProperties(l.zl.Error(), properties).
		Str("trace", string(debug.Stack())).
		Msg(err.Error())
}

// FatalErr logs err and exits the process with status 1.
func (l *Logger) FatalErr(err error, properties map[string]string) {
	withProperties(l.zl.WithLevel(zerolog.FatalLevel), properties).
		Str("trace", string(debug.Stack())).
		Msg(err.Error())
	os.Exit(1)
}

// Write lets the logger back a standard library *log.Logger, such as
// http.Server.ErrorLog. Every write becomes one error entry.
func (l *Logger) Write(b []byte) (int, error) {
	l.zl.Error().Msg(strings.TrimRight(string(b), "\n"))
	return len(b), nil
}

func withProperties(e *zerolog.Event, properties map[string]string) *zerolog.Event {
	if len(properties) == 0 {
		return e
	}

	dict := zerolog.Dict()
	for k, v := range properties {
		dict = dict.Str(k, v)
	}

	return e.Dict("properties", dict)
}
