package i18n

import (
	"testing"

	"github.com/reoring/propschema"
)

func TestTranslator_DefaultAndJapanese(t *testing.T) {
	// default is en
	if msg := T(propschema.CodeInvalidType, nil); msg == propschema.CodeInvalidType || msg == "" {
		t.Fatalf("expected a human message, got %q", msg)
	}

	SetLanguage("ja")
	if msg := T(propschema.CodeInvalidType, nil); msg == "invalid type" {
		t.Fatalf("expected japanese message, got %q", msg)
	}

	// reset to en
	SetLanguage("en")
}

func TestTranslator_UnknownCodeEchoes(t *testing.T) {
	if msg := T("no_such_code", nil); msg != "no_such_code" {
		t.Fatalf("expected code echo, got %q", msg)
	}
}

func TestDescribe_UsesStringParams(t *testing.T) {
	it := propschema.Issue{Path: "/speed", Code: propschema.CodeRequired, Params: map[string]any{"default": "10", "index": 3}}
	got := Describe(it)
	if want := "/speed: no stored value (default 10 applies)"; got != want {
		t.Fatalf("Describe = %q, want %q", got, want)
	}
}

type upper struct{}

func (upper) Message(code string, _ map[string]string) string { return "X:" + code }

func TestSetTranslator_CustomAndReset(t *testing.T) {
	SetTranslator(upper{})
	if msg := T("required", nil); msg != "X:required" {
		t.Fatalf("custom translator not used: %q", msg)
	}
	SetTranslator(nil)
	if msg := T(propschema.CodeRequired, nil); msg != "no stored value" {
		t.Fatalf("expected reset to en, got %q", msg)
	}
}
