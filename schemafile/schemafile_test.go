package schemafile_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/reoring/propschema"
	"github.com/reoring/propschema/schemafile"
)

const platformerYAML = `
properties:
  - name: speed
    type: Number
    value: 10
    label: Speed
    group: Movement
  - name: mode
    type: Choice
    value: walk
    extraInfo: [walk, run]
  - name: debug
    type: Boolean
    value: "false"
    hidden: true
`

func TestParse_YAML(t *testing.T) {
	s, err := schemafile.Parse([]byte(platformerYAML), schemafile.FormatYAML)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := []propschema.Descriptor{
		{Name: "speed", Type: propschema.TypeNumber, Value: "10", Label: "Speed", Group: "Movement"},
		{Name: "mode", Type: propschema.TypeChoice, Value: "walk", ExtraInfo: []string{"walk", "run"}},
		{Name: "debug", Type: propschema.TypeBoolean, Value: "false", Hidden: true},
	}
	if diff := cmp.Diff(want, s.Descriptors()); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
}

func TestParse_JSON(t *testing.T) {
	in := `{"properties":[{"name":"title","type":"String","value":"hi","description":"Shown on top"}]}`
	s, err := schemafile.Parse([]byte(in), schemafile.FormatJSON)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	d, ok := s.Get("title")
	if !ok || d.Description != "Shown on top" || d.Value != "hi" {
		t.Fatalf("unexpected descriptor: %+v", d)
	}
}

func TestParse_DuplicateNamesPointIntoList(t *testing.T) {
	in := "properties:\n  - name: a\n    type: String\n  - name: a\n    type: Number\n"
	_, err := schemafile.Parse([]byte(in), schemafile.FormatYAML)
	iss, ok := propschema.AsIssues(err)
	if !ok || len(iss) != 1 {
		t.Fatalf("expected one issue, got %v", err)
	}
	if iss[0].Code != propschema.CodeDuplicateKey || iss[0].Path != "/properties/1/name" {
		t.Fatalf("unexpected issue: %+v", iss[0])
	}
}

func TestParse_UnknownFieldRejected(t *testing.T) {
	in := "properties:\n  - name: a\n    kind: String\n"
	if _, err := schemafile.Parse([]byte(in), schemafile.FormatYAML); err == nil {
		t.Fatalf("expected error for unknown field")
	}
}

func TestParse_EmptyYAMLIsEmptySchema(t *testing.T) {
	s, err := schemafile.Parse([]byte("  \n"), schemafile.FormatYAML)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if s.Len() != 0 {
		t.Fatalf("Len = %d", s.Len())
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	src, err := schemafile.Parse([]byte(platformerYAML), schemafile.FormatYAML)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	dir := t.TempDir()
	for _, name := range []string{"s.yaml", "s.json"} {
		path := filepath.Join(dir, name)
		if err := schemafile.Save(path, src); err != nil {
			t.Fatalf("Save %s: %v", name, err)
		}
		got, err := schemafile.Load(path)
		if err != nil {
			t.Fatalf("Load %s: %v", name, err)
		}
		if diff := cmp.Diff(src.Descriptors(), got.Descriptors()); diff != "" {
			t.Fatalf("%s (-want +got):\n%s", name, diff)
		}
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := schemafile.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}
