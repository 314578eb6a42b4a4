package codec

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/reoring/propschema"
)

// Codec persists a document tree to bytes and back.
type Codec interface {
	Encode(doc *propschema.Node) ([]byte, error)
	Decode(b []byte) (*propschema.Node, error)
	Name() string
}

// ValueKey names the member holding a node's own leaf value when the node
// also has children (JSON and YAML only). A child whose name is ValueKey
// preceded by zero or more "$" is written with one extra leading "$", so
// "$value" is stored as "$$value" and read back unchanged.
const ValueKey = "$value"

func escapeKey(name string) string {
	if isValueKeyLike(name) {
		return "$" + name
	}
	return name
}

func unescapeKey(key string) string {
	if key != ValueKey && isValueKeyLike(key) {
		return key[1:]
	}
	return key
}

func isValueKeyLike(s string) bool {
	return strings.HasSuffix(s, ValueKey) && strings.Trim(s[:len(s)-len(ValueKey)], "$") == ""
}

func valueKeyError(path string) error {
	return propschema.Issues{{Path: pathOrRoot(path + propschema.Pointer(ValueKey)), Code: propschema.CodeInvalidType, Message: ValueKey + " must hold a scalar"}}
}

// ByName returns the codec registered under format ("json", "yaml"/"yml",
// "msgpack"/"mpk", "cbor").
func ByName(format string) (Codec, error) {
	switch strings.ToLower(strings.TrimPrefix(format, ".")) {
	case "json":
		return JSON{Indent: "  "}, nil
	case "yaml", "yml":
		return YAML{}, nil
	case "msgpack", "mpk":
		return Msgpack{}, nil
	case "cbor":
		return NewCBOR(true)
	}
	return nil, fmt.Errorf("codec: unknown format %q", format)
}

// ForPath picks a codec from the file extension of path.
func ForPath(path string) (Codec, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return nil, fmt.Errorf("codec: cannot infer format of %q", path)
	}
	return ByName(ext)
}

func parseError(format string, err error) error {
	return propschema.Issues{{Path: "/", Code: propschema.CodeParseError, Message: format + " decode failed", Cause: err}}
}
