package codec

import (
	"github.com/reoring/propschema"
)

// wireNode is the binary layout shared by the MessagePack and CBOR codecs.
// Children are a list so order and leaf kinds survive exactly.
type wireNode struct {
	Name     string     `msgpack:"k,omitempty" cbor:"k,omitempty"`
	Kind     uint8      `msgpack:"t" cbor:"t"`
	Str      string     `msgpack:"s,omitempty" cbor:"s,omitempty"`
	Num      float64    `msgpack:"n,omitempty" cbor:"n,omitempty"`
	Bool     bool       `msgpack:"b,omitempty" cbor:"b,omitempty"`
	Children []wireNode `msgpack:"c,omitempty" cbor:"c,omitempty"`
}

func toWire(name string, n *propschema.Node) wireNode {
	w := wireNode{Name: name, Kind: uint8(n.Kind())}
	switch n.Kind() {
	case propschema.KindString:
		w.Str = n.StringValue()
	case propschema.KindNumber:
		w.Num, _ = n.NumberValue()
	case propschema.KindBool:
		w.Bool = n.BoolValue()
	}
	if n.Len() > 0 {
		w.Children = make([]wireNode, 0, n.Len())
		n.Each(func(cn string, c *propschema.Node) bool {
			w.Children = append(w.Children, toWire(cn, c))
			return true
		})
	}
	return w
}

func fromWire(w wireNode, path string) (*propschema.Node, error) {
	n := propschema.NewNode()
	switch propschema.Kind(w.Kind) {
	case propschema.KindNone:
	case propschema.KindString:
		n.SetString(w.Str)
	case propschema.KindNumber:
		n.SetNumber(w.Num)
	case propschema.KindBool:
		n.SetBool(w.Bool)
	default:
		return nil, propschema.Issues{{
			Path:    pathOrRoot(path),
			Code:    propschema.CodeInvalidType,
			Message: "unknown leaf kind",
			Params:  map[string]any{"kind": w.Kind},
		}}
	}
	for _, cw := range w.Children {
		c, err := fromWire(cw, path+propschema.Pointer(cw.Name))
		if err != nil {
			return nil, err
		}
		n.SetChild(cw.Name, c)
	}
	return n, nil
}
