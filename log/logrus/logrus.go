// Package logrus adapts a *logrus.Entry to propschema.Logger.
package logrus

import (
	"github.com/sirupsen/logrus"

	"github.com/reoring/propschema"
)

// LogrusLogger forwards Helper diagnostics to E with the fields attached.
type LogrusLogger struct{ E *logrus.Entry }

var _ propschema.Logger = LogrusLogger{}

func (l LogrusLogger) Debug(msg string, f propschema.Fields) {
	l.E.WithFields(logrus.Fields(f)).Debug(msg)
}
func (l LogrusLogger) Info(msg string, f propschema.Fields) {
	l.E.WithFields(logrus.Fields(f)).Info(msg)
}
func (l LogrusLogger) Warn(msg string, f propschema.Fields) {
	l.E.WithFields(logrus.Fields(f)).Warn(msg)
}
func (l LogrusLogger) Error(msg string, f propschema.Fields) {
	l.E.WithFields(logrus.Fields(f)).Error(msg)
}
