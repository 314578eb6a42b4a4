// Package zap adapts a *zap.Logger to propschema.Logger.
package zap

import (
	"go.uber.org/zap"

	"github.com/reoring/propschema"
)

// ZapLogger forwards Helper diagnostics to L, one zap.Any field per entry.
type ZapLogger struct{ L *zap.Logger }

var _ propschema.Logger = ZapLogger{}

func (z ZapLogger) Debug(msg string, f propschema.Fields) { z.L.Debug(msg, zf(f)...) }
func (z ZapLogger) Info(msg string, f propschema.Fields)  { z.L.Info(msg, zf(f)...) }
func (z ZapLogger) Warn(msg string, f propschema.Fields)  { z.L.Warn(msg, zf(f)...) }
func (z ZapLogger) Error(msg string, f propschema.Fields) { z.L.Error(msg, zf(f)...) }

func zf(f propschema.Fields) []zap.Field {
	if len(f) == 0 {
		return nil
	}
	out := make([]zap.Field, 0, len(f))
	for k, v := range f {
		out = append(out, zap.Any(k, v))
	}
	return out
}
