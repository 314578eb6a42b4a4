package logrus

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/reoring/propschema"
)

func TestLogrusLogger_ForwardsLevelAndFields(t *testing.T) {
	base := logrus.New()
	base.SetOutput(io.Discard)
	base.SetLevel(logrus.DebugLevel)
	hook := test.NewLocal(base)
	l := LogrusLogger{E: logrus.NewEntry(base)}

	h := propschema.New(propschema.WithLogger(l))
	schema := propschema.MustSchema(propschema.Descriptor{Name: "x", Type: "Vector2", Value: "1;2"})
	h.InitializeContent(schema, propschema.NewNode())

	e := hook.LastEntry()
	if e == nil {
		t.Fatalf("expected a log entry")
	}
	if e.Level != logrus.DebugLevel {
		t.Fatalf("level = %v, want debug", e.Level)
	}
	if e.Data["type"] != "Vector2" {
		t.Fatalf("type field = %v", e.Data["type"])
	}
}
