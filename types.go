package propschema

// PropertyType is the type tag of a property descriptor. Tags outside the
// known set are kept verbatim so descriptors survive a copy untouched, but
// they dispatch as EncodingUnknown.
type PropertyType string

const (
	TypeString   PropertyType = "String"
	TypeChoice   PropertyType = "Choice"
	TypeColor    PropertyType = "Color"
	TypeBehavior PropertyType = "Behavior"
	TypeNumber   PropertyType = "Number"
	TypeBoolean  PropertyType = "Boolean"
)

// Encoding is the closed set of leaf encodings a property type maps to.
type Encoding int

const (
	EncodingUnknown Encoding = iota // Skipped on write, defaulted on read.
	EncodingString
	EncodingNumber
	EncodingBool
)

func (e Encoding) String() string {
	switch e {
	case EncodingString:
		return "string"
	case EncodingNumber:
		return "number"
	case EncodingBool:
		return "bool"
	default:
		return "unknown"
	}
}

// Encoding returns the leaf encoding used for values of this type. Matching
// is exact: "number" is not "Number".
func (t PropertyType) Encoding() Encoding {
	switch t {
	case TypeString, TypeChoice, TypeColor, TypeBehavior:
		return EncodingString
	case TypeNumber:
		return EncodingNumber
	case TypeBoolean:
		return EncodingBool
	default:
		return EncodingUnknown
	}
}

// Known reports whether t is one of the recognized type tags.
func (t PropertyType) Known() bool { return t.Encoding() != EncodingUnknown }

// Descriptor describes one configurable property: its identity, type tag,
// string-encoded default value and display metadata. Description, Group and
// Label are opaque to the codec.
type Descriptor struct {
	Name        string       `json:"name" yaml:"name"`
	Type        PropertyType `json:"type" yaml:"type"`
	Value       string       `json:"value" yaml:"value"`
	Description string       `json:"description,omitempty" yaml:"description,omitempty"`
	Group       string       `json:"group,omitempty" yaml:"group,omitempty"`
	Label       string       `json:"label,omitempty" yaml:"label,omitempty"`
	ExtraInfo   []string     `json:"extraInfo,omitempty" yaml:"extraInfo,omitempty"`
	Hidden      bool         `json:"hidden,omitempty" yaml:"hidden,omitempty"`
}

// Clone returns a deep copy; ExtraInfo is never shared with the receiver.
func (d Descriptor) Clone() Descriptor {
	out := d
	if d.ExtraInfo != nil {
		out.ExtraInfo = make([]string, len(d.ExtraInfo))
		copy(out.ExtraInfo, d.ExtraInfo)
	}
	return out
}
