package calculation

import (
	log "github.com/sirupsen/logrus"
)

// Logger is what the engine needs to report fallbacks and unreachable goals.
// *logrus.Logger and *logrus.Entry both satisfy it.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

var (
	_ Logger = (*log.Logger)(nil)
	_ Logger = (*log.Entry)(nil)
)

// NopLogger discards everything. It is the engine default.
type NopLogger struct{}

func (NopLogger) Debugf(string, ...any) {}
func (NopLogger) Infof(string, ...any)  {}
func (NopLogger) Warnf(string, ...any)  {}
func (NopLogger) Errorf(string, ...any) {}

// ComponentLogger tags every engine line with a component field.
func ComponentLogger(l log.FieldLogger, component string) Logger {
	return l.WithField("component", component)
}
