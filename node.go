package propschema

import (
	"math"
	"strconv"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Kind identifies the leaf value held by a Node.
type Kind uint8

const (
	KindNone Kind = iota // No leaf value; the node may still have children.
	KindString
	KindNumber
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	default:
		return "none"
	}
}

// Node is a generic mutable document tree: an optional typed leaf value plus
// named children kept in insertion order. One Node holds the stored content
// of one configured instance; the codec keeps each property as a top-level
// child keyed by name.
//
// A missing child is an expected state and never an error. Node is not safe
// for concurrent use.
type Node struct {
	kind     Kind
	str      string
	num      float64
	boolean  bool
	children *orderedmap.OrderedMap[string, *Node]
}

// NewNode returns an empty node.
func NewNode() *Node { return &Node{} }

// AddChild returns the child named name, creating an empty one at the end
// when it does not exist yet.
func (n *Node) AddChild(name string) *Node {
	if n.children == nil {
		n.children = orderedmap.New[string, *Node]()
	}
	if c, ok := n.children.Get(name); ok {
		return c
	}
	c := NewNode()
	n.children.Set(name, c)
	return c
}

// SetChild replaces (or appends) the child named name. A nil child is
// replaced by an empty node.
func (n *Node) SetChild(name string, c *Node) {
	if c == nil {
		c = NewNode()
	}
	if n.children == nil {
		n.children = orderedmap.New[string, *Node]()
	}
	n.children.Set(name, c)
}

// HasChild reports whether a child named name exists.
func (n *Node) HasChild(name string) bool {
	_, ok := n.Child(name)
	return ok
}

// Child returns the child named name and whether it exists.
func (n *Node) Child(name string) (*Node, bool) {
	if n == nil || n.children == nil {
		return nil, false
	}
	return n.children.Get(name)
}

// GetChild returns the child named name or nil.
func (n *Node) GetChild(name string) *Node {
	c, _ := n.Child(name)
	return c
}

// RemoveChild deletes the child named name and reports whether it existed.
func (n *Node) RemoveChild(name string) bool {
	if n == nil || n.children == nil {
		return false
	}
	_, ok := n.children.Delete(name)
	return ok
}

// Len returns the number of direct children.
func (n *Node) Len() int {
	if n == nil || n.children == nil {
		return 0
	}
	return n.children.Len()
}

// ChildNames returns the names of direct children in order.
func (n *Node) ChildNames() []string {
	out := make([]string, 0, n.Len())
	n.Each(func(name string, _ *Node) bool {
		out = append(out, name)
		return true
	})
	return out
}

// Each visits direct children in order until fn returns false.
func (n *Node) Each(fn func(name string, child *Node) bool) {
	if n == nil || n.children == nil {
		return
	}
	for p := n.children.Oldest(); p != nil; p = p.Next() {
		if !fn(p.Key, p.Value) {
			return
		}
	}
}

// Kind returns the kind of the leaf value.
func (n *Node) Kind() Kind {
	if n == nil {
		return KindNone
	}
	return n.kind
}

// HasValue reports whether the node holds a leaf value.
func (n *Node) HasValue() bool { return n.Kind() != KindNone }

// SetString stores a string leaf.
func (n *Node) SetString(v string) {
	n.clearValue()
	n.kind, n.str = KindString, v
}

// SetNumber stores a numeric leaf.
func (n *Node) SetNumber(v float64) {
	n.clearValue()
	n.kind, n.num = KindNumber, v
}

// SetBool stores a boolean leaf.
func (n *Node) SetBool(v bool) {
	n.clearValue()
	n.kind, n.boolean = KindBool, v
}

// ClearValue drops the leaf value, keeping children.
func (n *Node) ClearValue() { n.clearValue() }

func (n *Node) clearValue() {
	n.kind, n.str, n.num, n.boolean = KindNone, "", 0, false
}

// StringValue returns the leaf as a string. Numbers use FormatNumber and
// booleans render as "true"/"false"; an empty node yields "".
func (n *Node) StringValue() string {
	switch n.Kind() {
	case KindString:
		return n.str
	case KindNumber:
		return FormatNumber(n.num)
	case KindBool:
		if n.boolean {
			return "true"
		}
		return "false"
	default:
		return ""
	}
}

// NumberValue returns the leaf as a number. ok is false for an empty node or
// a string that does not parse.
func (n *Node) NumberValue() (v float64, ok bool) {
	switch n.Kind() {
	case KindNumber:
		return n.num, true
	case KindString:
		return ParseNumber(n.str)
	case KindBool:
		if n.boolean {
			return 1, true
		}
		return 0, true
	default:
		return 0, false
	}
}

// BoolValue returns the leaf as a boolean. Strings are true for "true" or
// "1", numbers for any non-zero value.
func (n *Node) BoolValue() bool {
	switch n.Kind() {
	case KindBool:
		return n.boolean
	case KindString:
		return n.str == "true" || n.str == "1"
	case KindNumber:
		return n.num != 0
	default:
		return false
	}
}

// Value returns the raw leaf as string, float64, bool or nil.
func (n *Node) Value() any {
	switch n.Kind() {
	case KindString:
		return n.str
	case KindNumber:
		return n.num
	case KindBool:
		return n.boolean
	default:
		return nil
	}
}

// Clone returns a deep copy of the subtree.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	out := &Node{kind: n.kind, str: n.str, num: n.num, boolean: n.boolean}
	n.Each(func(name string, c *Node) bool {
		out.SetChild(name, c.Clone())
		return true
	})
	return out
}

// Equal reports whether both trees hold the same leaves and the same children
// in the same order.
func (n *Node) Equal(o *Node) bool {
	if n == nil || o == nil {
		return n.Kind() == o.Kind() && n.Len() == o.Len() && n.Len() == 0
	}
	if n.kind != o.kind || n.Len() != o.Len() {
		return false
	}
	switch n.kind {
	case KindString:
		if n.str != o.str {
			return false
		}
	case KindNumber:
		if n.num != o.num && !(math.IsNaN(n.num) && math.IsNaN(o.num)) {
			return false
		}
	case KindBool:
		if n.boolean != o.boolean {
			return false
		}
	}
	if n.children == nil || o.children == nil {
		return n.Len() == 0
	}
	p, q := n.children.Oldest(), o.children.Oldest()
	for p != nil && q != nil {
		if p.Key != q.Key || !p.Value.Equal(q.Value) {
			return false
		}
		p, q = p.Next(), q.Next()
	}
	return p == nil && q == nil
}

// FormatNumber renders v in the shortest form that parses back to the same
// float64 ("10", "0.5", "1e+21").
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// ParseNumber parses a finite decimal number, ignoring surrounding
// whitespace. NaN, infinities and hex floats are rejected.
func ParseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if strings.ContainsAny(s, "xX") {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
