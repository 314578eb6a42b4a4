package codec

import (
	"bytes"
	"errors"
	"io"

	j "github.com/goccy/go-json"

	"github.com/reoring/propschema"
)

// JSON encodes documents as JSON objects using goccy/go-json. Child order is
// preserved in both directions. A node with only a leaf value becomes a JSON
// scalar; a node with both a value and children carries the value under
// ValueKey. The zero value is ready to use.
type JSON struct {
	// Indent, when non-empty, pretty-prints the output.
	Indent string
}

var _ Codec = JSON{}

func (JSON) Name() string { return "json" }

func (c JSON) Encode(doc *propschema.Node) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeJSON(&buf, doc, ""); err != nil {
		return nil, err
	}
	if c.Indent == "" {
		return buf.Bytes(), nil
	}
	var out bytes.Buffer
	if err := j.Indent(&out, buf.Bytes(), "", c.Indent); err != nil {
		return nil, err
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}

func writeJSON(buf *bytes.Buffer, n *propschema.Node, path string) error {
	if n.Len() == 0 {
		if !n.HasValue() {
			buf.WriteString("{}")
			return nil
		}
		return writeJSONScalar(buf, n, path)
	}
	buf.WriteByte('{')
	first := true
	if n.HasValue() {
		if err := writeJSONKey(buf, ValueKey); err != nil {
			return err
		}
		if err := writeJSONScalar(buf, n, path); err != nil {
			return err
		}
		first = false
	}
	var err error
	n.Each(func(name string, c *propschema.Node) bool {
		if !first {
			buf.WriteByte(',')
		}
		first = false
		if err = writeJSONKey(buf, escapeKey(name)); err != nil {
			return false
		}
		err = writeJSON(buf, c, path+propschema.Pointer(name))
		return err == nil
	})
	if err != nil {
		return err
	}
	buf.WriteByte('}')
	return nil
}

func writeJSONKey(buf *bytes.Buffer, key string) error {
	b, err := j.Marshal(key)
	if err != nil {
		return err
	}
	buf.Write(b)
	buf.WriteByte(':')
	return nil
}

func writeJSONScalar(buf *bytes.Buffer, n *propschema.Node, path string) error {
	b, err := j.Marshal(n.Value())
	if err != nil {
		return propschema.Issues{{Path: pathOrRoot(path), Code: propschema.CodeInvalidType, Message: "value cannot be represented in JSON", Cause: err}}
	}
	buf.Write(b)
	return nil
}

func (JSON) Decode(b []byte) (*propschema.Node, error) {
	dec := j.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return propschema.NewNode(), nil
		}
		return nil, parseError("json", err)
	}
	root, err := readJSON(dec, tok, "")
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, propschema.Issues{{Path: "/", Code: propschema.CodeParseError, Message: "trailing data after document", Cause: err}}
	}
	return root, nil
}

func readJSON(dec *j.Decoder, tok j.Token, path string) (*propschema.Node, error) {
	n := propschema.NewNode()
	switch v := tok.(type) {
	case j.Delim:
		if v != '{' {
			return nil, propschema.Issues{{Path: pathOrRoot(path), Code: propschema.CodeInvalidType, Message: "arrays are not supported"}}
		}
		for dec.More() {
			kt, err := dec.Token()
			if err != nil {
				return nil, parseError("json", err)
			}
			key, _ := kt.(string)
			vt, err := dec.Token()
			if err != nil {
				return nil, parseError("json", err)
			}
			child, err := readJSON(dec, vt, path+propschema.Pointer(key))
			if err != nil {
				return nil, err
			}
			if key == ValueKey {
				if child.Len() > 0 {
					return nil, valueKeyError(path)
				}
				copyValue(n, child)
				continue
			}
			n.SetChild(unescapeKey(key), child)
		}
		if _, err := dec.Token(); err != nil { // closing '}'
			return nil, parseError("json", err)
		}
	case string:
		n.SetString(v)
	case j.Number:
		f, err := v.Float64()
		if err != nil {
			return nil, propschema.Issues{{Path: pathOrRoot(path), Code: propschema.CodeInvalidNumber, Message: "number out of range", Cause: err}}
		}
		n.SetNumber(f)
	case float64:
		n.SetNumber(v)
	case bool:
		n.SetBool(v)
	case nil:
	}
	return n, nil
}

func copyValue(dst, src *propschema.Node) {
	switch src.Kind() {
	case propschema.KindString:
		dst.SetString(src.StringValue())
	case propschema.KindNumber:
		v, _ := src.NumberValue()
		dst.SetNumber(v)
	case propschema.KindBool:
		dst.SetBool(src.BoolValue())
	default:
		dst.ClearValue()
	}
}

func pathOrRoot(p string) string {
	if p == "" {
		return "/"
	}
	return p
}
