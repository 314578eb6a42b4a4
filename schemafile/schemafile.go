// Package schemafile reads and writes property schemas as YAML or JSON
// definition files:
//
//	properties:
//	  - name: speed
//	    type: Number
//	    value: "10"
//	    label: Speed
//	    group: Movement
//	  - name: mode
//	    type: Choice
//	    value: walk
//	    extraInfo: [walk, run]
package schemafile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	j "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/reoring/propschema"
)

// Format names a definition file syntax.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// File is the on-disk layout of a schema definition.
type File struct {
	Properties []propschema.Descriptor `json:"properties" yaml:"properties"`
}

// FormatForPath infers the format from the file extension. Unknown
// extensions default to YAML, which also accepts JSON input.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	default:
		return FormatYAML
	}
}

// Parse decodes a definition file and builds the schema. Duplicate or empty
// names are reported as propschema.Issues.
func Parse(data []byte, format Format) (*propschema.Schema, error) {
	var f File
	switch format {
	case FormatJSON:
		dec := j.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&f); err != nil {
			return nil, propschema.Issues{{Path: "/", Code: propschema.CodeParseError, Message: "invalid JSON schema file", Cause: err}}
		}
	case FormatYAML, "":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil && !isEmptyYAML(err, data) {
			return nil, propschema.Issues{{Path: "/", Code: propschema.CodeParseError, Message: "invalid YAML schema file", Cause: err}}
		}
	default:
		return nil, fmt.Errorf("schemafile: unknown format %q", format)
	}
	s, err := propschema.NewSchema(f.Properties...)
	if err != nil {
		return nil, prefixPaths(err)
	}
	return s, nil
}

// Load reads and parses the schema file at path.
func Load(path string) (*propschema.Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("schemafile: read %s: %w", path, err)
	}
	s, err := Parse(data, FormatForPath(path))
	if err != nil {
		return nil, fmt.Errorf("schemafile: %s: %w", path, err)
	}
	return s, nil
}

// Marshal renders s in the given format.
func Marshal(s *propschema.Schema, format Format) ([]byte, error) {
	f := File{Properties: s.Descriptors()}
	if f.Properties == nil {
		f.Properties = []propschema.Descriptor{}
	}
	switch format {
	case FormatJSON:
		return j.MarshalIndent(f, "", "  ")
	case FormatYAML, "":
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(f); err != nil {
			return nil, err
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
	return nil, fmt.Errorf("schemafile: unknown format %q", format)
}

// Save writes s to path in the format implied by its extension.
func Save(path string, s *propschema.Schema) error {
	data, err := Marshal(s, FormatForPath(path))
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func isEmptyYAML(err error, data []byte) bool {
	return errors.Is(err, io.EOF) && len(bytes.TrimSpace(data)) == 0
}

// prefixPaths rewrites issue paths to point into the properties list using
// the index recorded by NewSchema.
func prefixPaths(err error) error {
	iss, ok := propschema.AsIssues(err)
	if !ok {
		return err
	}
	out := make(propschema.Issues, len(iss))
	for k, it := range iss {
		if i, ok := it.Params["index"].(int); ok {
			it.Path = fmt.Sprintf("/properties/%d/name", i)
		}
		out[k] = it
	}
	return out
}
