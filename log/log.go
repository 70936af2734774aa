// Package log provides a tag-carrying logger interface, retrievable from a
// context.Context, backed by zerolog.
package log

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
)

var Root Logger = NewDefault()

// Logger is logger interface. The variadic arguments are key value pairs. The key must be a
// string and the value should have a meaningful string representations.
type Logger interface {
	Debug(string, ...interface{})
	Error(string, ...interface{})
	Crit(string, ...interface{})
	With(...interface{}) Logger
}

func New(tags ...interface{}) Logger      { return Root.With(tags...) }
func Debug(m string, tags ...interface{}) { Root.Debug(m, tags...) }
func Error(m string, tags ...interface{}) { Root.Error(m, tags...) }
func Crit(m string, tags ...interface{})  { Root.Crit(m, tags...) }

// Default is the production Logger, a thin wrapper around a zerolog.Logger.
type Default struct {
	zl zerolog.Logger
}

// NewDefault builds a Default writing console-formatted lines to stderr.
func NewDefault() *Default {
	w := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}
	return &Default{zl: zerolog.New(w).With().Timestamp().Logger()}
}

func (l *Default) Debug(m string, ts ...interface{}) { emit(l.zl.Debug(), m, ts) }
func (l *Default) Error(m string, ts ...interface{}) { emit(l.zl.Error(), m, ts) }

// Crit logs at error level tagged crit=true rather than calling zerolog's
// Fatal/Panic, which would terminate or panic the process; no caller here
// wants that side effect from a log call.
func (l *Default) Crit(m string, ts ...interface{}) {
	emit(l.zl.Error().Bool("crit", true), m, ts)
}

func (l *Default) With(tags ...interface{}) Logger {
	return &Default{zl: applyTags(l.zl.With(), tags).Logger()}
}

func emit(e *zerolog.Event, m string, tags []interface{}) {
	for i := 0; i+1 < len(tags); i += 2 {
		e = e.Interface(fmt.Sprint(tags[i]), tags[i+1])
	}
	e.Msg(m)
}

func applyTags(ctx zerolog.Context, tags []interface{}) zerolog.Context {
	for i := 0; i+1 < len(tags); i += 2 {
		ctx = ctx.Interface(fmt.Sprint(tags[i]), tags[i+1])
	}
	return ctx
}
