package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/reoring/propschema/codec"
)

const schemaYAML = `properties:
  - name: speed
    type: Number
    value: "10"
    group: Movement
  - name: flag
    type: Boolean
    value: "false"
`

func writeSchema(t *testing.T) (dir, path string) {
	t.Helper()
	dir = t.TempDir()
	path = filepath.Join(dir, "schema.yaml")
	if err := os.WriteFile(path, []byte(schemaYAML), 0o644); err != nil {
		t.Fatalf("write schema: %v", err)
	}
	return dir, path
}

func runCLI(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errb bytes.Buffer
	code = run(args, &out, &errb)
	return code, out.String(), errb.String()
}

func TestCLI_InitSetGet(t *testing.T) {
	dir, schema := writeSchema(t)
	doc := filepath.Join(dir, "doc.json")

	if code, _, stderr := runCLI(t, "init", "-schema", schema, "-o", doc); code != 0 {
		t.Fatalf("init exit %d: %s", code, stderr)
	}
	if code, _, stderr := runCLI(t, "set", "-schema", schema, "-doc", doc, "-name", "speed", "-value", "42"); code != 0 {
		t.Fatalf("set exit %d: %s", code, stderr)
	}
	if code, _, stderr := runCLI(t, "set", "-schema", schema, "-doc", doc, "-name", "flag", "-value", "1"); code != 0 {
		t.Fatalf("set exit %d: %s", code, stderr)
	}
	code, stdout, stderr := runCLI(t, "get", "-schema", schema, "-doc", doc, "-format", "json")
	if code != 0 {
		t.Fatalf("get exit %d: %s", code, stderr)
	}
	if !strings.Contains(stdout, `"speed": "42"`) || !strings.Contains(stdout, `"flag": "true"`) {
		t.Fatalf("unexpected output:\n%s", stdout)
	}
}

func TestCLI_SetUnknownPropertyFails(t *testing.T) {
	dir, schema := writeSchema(t)
	doc := filepath.Join(dir, "doc.json")
	code, _, stderr := runCLI(t, "set", "-schema", schema, "-doc", doc, "-name", "nope", "-value", "x")
	if code != 1 || !strings.Contains(stderr, "unknown property") {
		t.Fatalf("exit %d stderr %q", code, stderr)
	}
	if _, err := os.Stat(doc); !os.IsNotExist(err) {
		t.Fatalf("document should not be written on failure")
	}
}

func TestCLI_GetTableFromMissingDocUsesDefaults(t *testing.T) {
	dir, schema := writeSchema(t)
	code, stdout, stderr := runCLI(t, "get", "-schema", schema, "-doc", filepath.Join(dir, "missing.yaml"))
	if code != 0 {
		t.Fatalf("exit %d: %s", code, stderr)
	}
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	if len(lines) != 3 || !strings.HasPrefix(lines[1], "speed") || !strings.Contains(lines[1], "10") {
		t.Fatalf("unexpected table:\n%s", stdout)
	}
}

func TestCLI_CheckReportsIssues(t *testing.T) {
	dir, schema := writeSchema(t)
	doc := filepath.Join(dir, "doc.json")
	if err := os.WriteFile(doc, []byte(`{"speed":"fast","legacy":1}`), 0o644); err != nil {
		t.Fatalf("write doc: %v", err)
	}
	code, stdout, _ := runCLI(t, "check", "-schema", schema, "-doc", doc)
	if code != 1 {
		t.Fatalf("exit %d, want 1", code)
	}
	for _, want := range []string{"/speed: invalid type", "/flag: no stored value", "/legacy: key not declared"} {
		if !strings.Contains(stdout, want) {
			t.Fatalf("missing %q in:\n%s", want, stdout)
		}
	}
}

func TestCLI_ConvertJSONToCBOR(t *testing.T) {
	dir, schema := writeSchema(t)
	in := filepath.Join(dir, "doc.json")
	out := filepath.Join(dir, "doc.cbor")
	if code, _, stderr := runCLI(t, "init", "-schema", schema, "-o", in); code != 0 {
		t.Fatalf("init exit %d: %s", code, stderr)
	}
	if code, _, stderr := runCLI(t, "convert", "-in", in, "-out", out); code != 0 {
		t.Fatalf("convert exit %d: %s", code, stderr)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	doc, err := codec.MustCBOR(true).Decode(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if v, _ := doc.GetChild("speed").NumberValue(); v != 10 {
		t.Fatalf("speed = %v", v)
	}
}

func TestCLI_UsageErrors(t *testing.T) {
	if code, _, _ := runCLI(t); code != 2 {
		t.Fatalf("no args exit %d, want 2", code)
	}
	if code, _, _ := runCLI(t, "bogus"); code != 2 {
		t.Fatalf("unknown subcommand exit %d, want 2", code)
	}
	if code, _, stderr := runCLI(t, "init", "-o", "x.json"); code != 1 || !strings.Contains(stderr, "-schema is required") {
		t.Fatalf("missing flag exit %d stderr %q", code, stderr)
	}
}

func TestCLI_MalformedNumberWarns(t *testing.T) {
	dir, schema := writeSchema(t)
	doc := filepath.Join(dir, "doc.yaml")
	code, _, stderr := runCLI(t, "set", "-schema", schema, "-doc", doc, "-name", "speed", "-value", "fast", "-lang", "en")
	if code != 0 {
		t.Fatalf("exit %d: %s", code, stderr)
	}
	if !strings.Contains(stderr, "warning: /speed: not a number") {
		t.Fatalf("missing warning in %q", stderr)
	}
}

func TestCLI_SetNaNKeepsDocumentSaveable(t *testing.T) {
	dir, schema := writeSchema(t)
	doc := filepath.Join(dir, "doc.json")

	code, _, stderr := runCLI(t, "set", "-schema", schema, "-doc", doc, "-name", "speed", "-value", "NaN")
	if code != 0 {
		t.Fatalf("set exit %d: %s", code, stderr)
	}
	if !strings.Contains(stderr, "warning:") {
		t.Fatalf("expected a warning, got %q", stderr)
	}
	code, stdout, stderr := runCLI(t, "get", "-schema", schema, "-doc", doc, "-format", "json")
	if code != 0 {
		t.Fatalf("get exit %d: %s", code, stderr)
	}
	if !strings.Contains(stdout, `"speed": "0"`) {
		t.Fatalf("unexpected output:\n%s", stdout)
	}
}
