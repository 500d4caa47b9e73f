// Package log provides the logger used throughout gbcore.
package log

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"golang.org/x/term"
)

// Logger is the logging interface used by the emulator
// components.
type Logger interface {
	Infof(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Debugf(format string, args ...interface{})
	Fatal(str string)
}

type logger struct {
	l *logrus.Logger
}

// New returns a Logger writing to stderr. Colours are only
// used when stderr is a terminal.
func New(debug bool) Logger {
	return NewWithWriter(os.Stderr, debug)
}

// NewWithWriter returns a Logger writing to w.
func NewWithWriter(w io.Writer, debug bool) Logger {
	colours := false
	if f, ok := w.(*os.File); ok {
		colours = term.IsTerminal(int(f.Fd()))
	}

	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(logrus.InfoLevel)
	if debug {
		l.SetLevel(logrus.DebugLevel)
	}
	l.Formatter = &logrus.TextFormatter{
		DisableColors:    !colours,
		ForceColors:      colours,
		DisableTimestamp: true,
		DisableSorting:   true,
		DisableQuote:     true,
	}
	return &logger{l: l}
}

func (l *logger) Infof(format string, args ...interface{}) {
	l.l.Infof(format, args...)
}

func (l *logger) Errorf(format string, args ...interface{}) {
	l.l.Errorf(format, args...)
}

func (l *logger) Debugf(format string, args ...interface{}) {
	l.l.Debugf(format, args...)
}

// Fatal logs str at the error level. It does not exit, the
// caller decides how to terminate.
func (l *logger) Fatal(str string) {
	l.l.Error(str)
}
