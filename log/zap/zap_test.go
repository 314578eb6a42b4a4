package zap

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/reoring/propschema"
)

func TestZapLogger_ForwardsLevelAndFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := ZapLogger{L: zap.New(core)}

	h := propschema.New(propschema.WithLogger(l))
	schema := propschema.MustSchema(propschema.Descriptor{Name: "speed", Type: propschema.TypeNumber, Value: "fast"})
	h.InitializeContent(schema, propschema.NewNode())

	warns := logs.FilterLevelExact(zapcore.WarnLevel).All()
	if len(warns) != 1 {
		t.Fatalf("expected 1 warn entry, got %d", len(warns))
	}
	if got := warns[0].ContextMap()["path"]; got != "/speed" {
		t.Fatalf("path field = %v", got)
	}
}

func TestZapLogger_NoFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := ZapLogger{L: zap.New(core)}
	l.Info("hello", nil)
	if logs.Len() != 1 || len(logs.All()[0].Context) != 0 {
		t.Fatalf("unexpected entries: %+v", logs.All())
	}
}
