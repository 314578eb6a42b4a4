package codec

import (
	"bytes"
	"math"

	"gopkg.in/yaml.v3"

	"github.com/reoring/propschema"
)

// YAML encodes documents as YAML mappings using gopkg.in/yaml.v3. The shape
// mirrors the JSON codec, including ValueKey for nodes holding both a value
// and children. The zero value is ready to use.
type YAML struct{}

var _ Codec = YAML{}

func (YAML) Name() string { return "yaml" }

func (YAML) Encode(doc *propschema.Node) ([]byte, error) {
	root, err := toYAML(doc)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func toYAML(n *propschema.Node) (*yaml.Node, error) {
	if n.Len() == 0 && n.HasValue() {
		return yamlScalar(n)
	}
	m := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	if n.HasValue() {
		v, err := yamlScalar(n)
		if err != nil {
			return nil, err
		}
		m.Content = append(m.Content, yamlKey(ValueKey), v)
	}
	var err error
	n.Each(func(name string, c *propschema.Node) bool {
		var v *yaml.Node
		if v, err = toYAML(c); err != nil {
			return false
		}
		m.Content = append(m.Content, yamlKey(escapeKey(name)), v)
		return true
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

func yamlKey(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

// yamlScalar lets yaml.v3 pick the tag so integral numbers render as "10"
// and strings that look like numbers or booleans are quoted.
func yamlScalar(n *propschema.Node) (*yaml.Node, error) {
	v := &yaml.Node{}
	if err := v.Encode(n.Value()); err != nil {
		return nil, err
	}
	return v, nil
}

func (YAML) Decode(b []byte) (*propschema.Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, parseError("yaml", err)
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return propschema.NewNode(), nil
	}
	return fromYAML(doc.Content[0], "")
}

func fromYAML(y *yaml.Node, path string) (*propschema.Node, error) {
	for y.Kind == yaml.AliasNode && y.Alias != nil {
		y = y.Alias
	}
	n := propschema.NewNode()
	switch y.Kind {
	case yaml.MappingNode:
		for i := 0; i+1 < len(y.Content); i += 2 {
			key := y.Content[i].Value
			child, err := fromYAML(y.Content[i+1], path+propschema.Pointer(key))
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
	case yaml.ScalarNode:
		switch y.ShortTag() {
		case "!!null":
		case "!!bool":
			var v bool
			if err := y.Decode(&v); err != nil {
				return nil, yamlTypeError(path, err)
			}
			n.SetBool(v)
		case "!!int", "!!float":
			var v float64
			if err := y.Decode(&v); err != nil {
				return nil, yamlTypeError(path, err)
			}
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, propschema.Issues{{Path: pathOrRoot(path), Code: propschema.CodeInvalidNumber, Message: "number is not finite", Params: map[string]any{"value": y.Value}}}
			}
			n.SetNumber(v)
		default:
			n.SetString(y.Value)
		}
	default:
		return nil, propschema.Issues{{Path: pathOrRoot(path), Code: propschema.CodeInvalidType, Message: "sequences are not supported"}}
	}
	return n, nil
}

func yamlTypeError(path string, err error) error {
	return propschema.Issues{{Path: pathOrRoot(path), Code: propschema.CodeInvalidType, Message: "malformed scalar", Cause: err}}
}
