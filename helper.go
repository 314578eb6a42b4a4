package propschema

// Helper maps a Schema onto a Node and back. The zero value is not ready to
// use; construct with New. A Helper holds no per-call state and may be shared.
type Helper struct {
	log  Logger
	sink func(Issue)
}

// Option configures a Helper.
type Option func(*Helper)

// WithLogger routes diagnostics to l. nil restores the no-op logger.
func WithLogger(l Logger) Option {
	return func(h *Helper) {
		if l == nil {
			l = NopLogger{}
		}
		h.log = l
	}
}

// WithIssueSink receives non-fatal issues raised while writing values, such
// as a Number property given a non-numeric string.
func WithIssueSink(sink func(Issue)) Option {
	return func(h *Helper) { h.sink = sink }
}

// New constructs a Helper.
func New(opts ...Option) *Helper {
	h := &Helper{log: NopLogger{}}
	for _, o := range opts {
		if o != nil {
			o(h)
		}
	}
	return h
}

var defaultHelper = New()

// InitializeContent writes every schema default into doc using the default Helper.
func InitializeContent(schema *Schema, doc *Node) { defaultHelper.InitializeContent(schema, doc) }

// GetProperties resolves stored values against schema using the default Helper.
func GetProperties(schema *Schema, doc *Node) map[string]Descriptor {
	return defaultHelper.GetProperties(schema, doc)
}

// UpdateProperty writes one value into doc using the default Helper.
func UpdateProperty(schema *Schema, doc *Node, name, value string) bool {
	return defaultHelper.UpdateProperty(schema, doc, name, value)
}

// InitializeContent stores each property's default value as a top-level child
// of doc, in schema order. Number defaults that do not parse are stored as 0.
// Boolean defaults are true only for the exact string "true". Properties with
// an unknown type tag are skipped and no child is created for them.
func (h *Helper) InitializeContent(schema *Schema, doc *Node) {
	schema.each(func(d *Descriptor) {
		h.write(doc, d, d.Value, "true")
	})
}

// GetProperties returns one descriptor per schema property, keyed by name.
// Each entry is a full copy of the schema descriptor whose Value is replaced
// by the stored one when doc has a readable value for it. Children unknown to
// the schema are ignored.
//
// Number values are rendered by FormatNumber in shortest round-trip form, so
// 12.3456789 reads back in full rather than rounded to six significant digits
// as some older project files store it.
func (h *Helper) GetProperties(schema *Schema, doc *Node) map[string]Descriptor {
	out := make(map[string]Descriptor, schema.Len())
	schema.each(func(d *Descriptor) {
		out[d.Name] = h.resolve(doc, d)
	})
	return out
}

// GetPropertiesOrdered is GetProperties as a slice in schema order.
func (h *Helper) GetPropertiesOrdered(schema *Schema, doc *Node) []Descriptor {
	out := make([]Descriptor, 0, schema.Len())
	schema.each(func(d *Descriptor) {
		out = append(out, h.resolve(doc, d))
	})
	return out
}

// UpdateProperty stores value for the property name. It returns false and
// leaves doc untouched when the schema has no such property.
//
// Boolean properties are set to true only for the exact string "1", unlike
// InitializeContent which expects "true". Editors send "1"/"0" here.
// TODO(props): confirm with product whether UpdateProperty should also accept "true".
func (h *Helper) UpdateProperty(schema *Schema, doc *Node, name, value string) bool {
	d, ok := schema.lookup(name)
	if !ok {
		h.log.Debug("propschema: update of unknown property", Fields{"property": name})
		return false
	}
	h.write(doc, d, value, "1")
	return true
}

func (h *Helper) write(doc *Node, d *Descriptor, value, truthy string) {
	switch d.Type.Encoding() {
	case EncodingString:
		doc.AddChild(d.Name).SetString(value)
	case EncodingNumber:
		v, ok := ParseNumber(value)
		if !ok {
			h.report(Issue{
				Path:    Pointer(d.Name),
				Code:    CodeInvalidNumber,
				Message: "value is not a number; stored 0",
				Params:  map[string]any{"value": value},
			})
		}
		doc.AddChild(d.Name).SetNumber(v)
	case EncodingBool:
		doc.AddChild(d.Name).SetBool(value == truthy)
	default:
		h.log.Debug("propschema: skipping property with unknown type", Fields{"property": d.Name, "type": string(d.Type)})
	}
}

func (h *Helper) resolve(doc *Node, d *Descriptor) Descriptor {
	out := d.Clone()
	c, ok := doc.Child(d.Name)
	if !ok || !c.HasValue() {
		return out
	}
	switch d.Type.Encoding() {
	case EncodingString:
		out.Value = c.StringValue()
	case EncodingNumber:
		if v, ok := c.NumberValue(); ok {
			out.Value = FormatNumber(v)
		} else {
			h.log.Debug("propschema: stored value is not a number, using default", Fields{"property": d.Name})
		}
	case EncodingBool:
		if c.BoolValue() {
			out.Value = "true"
		} else {
			out.Value = "false"
		}
	}
	return out
}

func (h *Helper) report(it Issue) {
	h.log.Warn("propschema: "+it.Message, Fields{"path": it.Path, "code": it.Code, "value": it.Params["value"]})
	if h.sink != nil {
		h.sink(it)
	}
}
