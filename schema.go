package propschema

import "fmt"

// Schema is an ordered list of descriptors with unique names. Insertion order
// is the iteration order of every codec operation.
//
// A Schema is not safe for concurrent mutation.
type Schema struct {
	props []Descriptor
	index map[string]int
}

// NewSchema builds a schema from descriptors in order. Empty or duplicate
// names are reported together as Issues.
func NewSchema(ds ...Descriptor) (*Schema, error) {
	s := &Schema{index: make(map[string]int, len(ds))}
	var iss Issues
	for i, d := range ds {
		if err := s.Add(d); err != nil {
			if more, ok := AsIssues(err); ok {
				for _, it := range more {
					if it.Params == nil {
						it.Params = map[string]any{}
					}
					it.Params["index"] = i
					iss = AppendIssues(iss, it)
				}
				continue
			}
			return nil, err
		}
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return s, nil
}

// MustSchema is like NewSchema but panics on error. Handy for package-level
// schemas in tests and examples.
func MustSchema(ds ...Descriptor) *Schema {
	s, err := NewSchema(ds...)
	if err != nil {
		panic(err)
	}
	return s
}

// Len returns the number of descriptors.
func (s *Schema) Len() int {
	if s == nil {
		return 0
	}
	return len(s.props)
}

// Has reports whether a descriptor named name exists.
func (s *Schema) Has(name string) bool {
	if s == nil {
		return false
	}
	_, ok := s.index[name]
	return ok
}

// Get returns a copy of the descriptor named name.
func (s *Schema) Get(name string) (Descriptor, bool) {
	if s == nil {
		return Descriptor{}, false
	}
	i, ok := s.index[name]
	if !ok {
		return Descriptor{}, false
	}
	return s.props[i].Clone(), true
}

// Names returns property names in schema order.
func (s *Schema) Names() []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s.props))
	for i := range s.props {
		out[i] = s.props[i].Name
	}
	return out
}

// Descriptors returns deep copies of all descriptors in schema order.
func (s *Schema) Descriptors() []Descriptor {
	if s == nil {
		return nil
	}
	out := make([]Descriptor, len(s.props))
	for i := range s.props {
		out[i] = s.props[i].Clone()
	}
	return out
}

// each visits descriptors in order without copying.
func (s *Schema) each(fn func(d *Descriptor)) {
	if s == nil {
		return
	}
	for i := range s.props {
		fn(&s.props[i])
	}
}

func (s *Schema) lookup(name string) (*Descriptor, bool) {
	if s == nil {
		return nil, false
	}
	i, ok := s.index[name]
	if !ok {
		return nil, false
	}
	return &s.props[i], true
}

// Add appends d at the end of the schema.
func (s *Schema) Add(d Descriptor) error {
	return s.Insert(s.Len(), d)
}

// Insert places d at position at (clamped to [0, Len()]).
func (s *Schema) Insert(at int, d Descriptor) error {
	if s == nil {
		return ErrNilSchema
	}
	if err := s.checkName(d.Name); err != nil {
		return err
	}
	if s.index == nil {
		s.index = map[string]int{}
	}
	if at < 0 {
		at = 0
	}
	if at > len(s.props) {
		at = len(s.props)
	}
	s.props = append(s.props, Descriptor{})
	copy(s.props[at+1:], s.props[at:])
	s.props[at] = d.Clone()
	s.reindex(at)
	return nil
}

// Remove deletes the descriptor named name. It returns false when absent.
func (s *Schema) Remove(name string) bool {
	if s == nil {
		return false
	}
	i, ok := s.index[name]
	if !ok {
		return false
	}
	s.props = append(s.props[:i], s.props[i+1:]...)
	delete(s.index, name)
	s.reindex(i)
	return true
}

// Move relocates the descriptor at index from to index to. Out-of-range
// indexes leave the schema unchanged and return false.
func (s *Schema) Move(from, to int) bool {
	n := s.Len()
	if from < 0 || from >= n || to < 0 || to >= n {
		return false
	}
	if from == to {
		return true
	}
	d := s.props[from]
	if from < to {
		copy(s.props[from:to], s.props[from+1:to+1])
	} else {
		copy(s.props[to+1:from+1], s.props[to:from])
	}
	s.props[to] = d
	lo := from
	if to < lo {
		lo = to
	}
	s.reindex(lo)
	return true
}

// Rename changes a descriptor's name in place, keeping its position.
func (s *Schema) Rename(oldName, newName string) error {
	if s == nil {
		return ErrNilSchema
	}
	i, ok := s.index[oldName]
	if !ok {
		return fmt.Errorf("rename %q: %w", oldName, ErrUnknownProperty)
	}
	if oldName == newName {
		return nil
	}
	if err := s.checkName(newName); err != nil {
		return err
	}
	s.props[i].Name = newName
	delete(s.index, oldName)
	s.index[newName] = i
	return nil
}

func (s *Schema) checkName(name string) error {
	if name == "" {
		return Issues{{Path: "/", Code: CodeRequired, Message: "property name is empty"}}
	}
	if s.Has(name) {
		return Issues{{Path: Pointer(name), Code: CodeDuplicateKey, Message: "duplicate property name", Params: map[string]any{"name": name}}}
	}
	return nil
}

func (s *Schema) reindex(from int) {
	for i := from; i < len(s.props); i++ {
		s.index[s.props[i].Name] = i
	}
}
