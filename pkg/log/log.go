// Package log provides the logging facade used throughout the
// emulator.
package log

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Logger is the logging interface used by the emulator.
type Logger interface {
	Infof(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Debugf(format string, args ...interface{})
	Fatalf(format string, args ...interface{})
}

// New returns a Logger writing human-readable text to stderr.
func New() Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	return l
}

// NewWithLevel returns a Logger that discards entries below the
// given level ("debug", "info", "error").
func NewWithLevel(level string) (Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	l := New().(*logrus.Logger)
	l.SetLevel(lvl)
	return l, nil
}
