package log

import (
	"io"

	"github.com/sirupsen/logrus"
)

type Logger interface {
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Debugf(format string, args ...interface{})
}

var _ Logger = (*logrus.Logger)(nil)

// New returns a Logger writing plain text to w at the given level
// ("debug", "info", "warn", "error"...).
func New(w io.Writer, level string) (Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, err
	}

	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(lvl)
	l.Formatter = &logrus.TextFormatter{
		DisableColors:    true,
		DisableTimestamp: true,
		DisableSorting:   true,
		DisableQuote:     true,
	}
	return l, nil
}

// IsDebug reports whether l would emit debug messages. Callers use it
// to skip building expensive trace lines.
func IsDebug(l Logger) bool {
	if lr, ok := l.(*logrus.Logger); ok {
		return lr.IsLevelEnabled(logrus.DebugLevel)
	}
	return false
}
