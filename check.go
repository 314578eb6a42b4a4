package propschema

// Check reports how doc deviates from schema without modifying it:
//   - required: a known-type property has no stored value
//   - invalid_type: a Number property holds a value that does not read as a number
//   - unknown_key: doc has a child the schema does not declare
//
// None of these stop GetProperties from working; they are hints for editors
// and migration tooling.
func Check(schema *Schema, doc *Node) Issues {
	var iss Issues
	schema.each(func(d *Descriptor) {
		enc := d.Type.Encoding()
		if enc == EncodingUnknown {
			return
		}
		c, ok := doc.Child(d.Name)
		if !ok || !c.HasValue() {
			iss = AppendIssues(iss, Issue{
				Path:    Pointer(d.Name),
				Code:    CodeRequired,
				Message: "no stored value; default applies",
				Params:  map[string]any{"default": d.Value},
			})
			return
		}
		if enc == EncodingNumber {
			if _, ok := c.NumberValue(); !ok {
				iss = AppendIssues(iss, Issue{
					Path:    Pointer(d.Name),
					Code:    CodeInvalidType,
					Message: "stored value is not a number",
					Params:  map[string]any{"expected": enc.String(), "got": c.Kind().String()},
				})
			}
		}
	})
	doc.Each(func(name string, _ *Node) bool {
		if !schema.Has(name) {
			iss = AppendIssues(iss, Issue{Path: Pointer(name), Code: CodeUnknownKey, Message: "not declared by the schema"})
		}
		return true
	})
	return iss
}

// Prune removes children of doc that the schema does not declare and returns
// how many were removed.
func Prune(schema *Schema, doc *Node) int {
	var stale []string
	doc.Each(func(name string, _ *Node) bool {
		if !schema.Has(name) {
			stale = append(stale, name)
		}
		return true
	})
	for _, name := range stale {
		doc.RemoveChild(name)
	}
	return len(stale)
}
