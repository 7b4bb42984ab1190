// Package table implements the columnar Fabrix table, its Row/NamedRow
// record types, and the Schema/IndexTag metadata that describes it — the
// Go analogue of fabrix-core's schema.rs, row.rs and fabrix.rs, and of
// fabrix/src/core/fabrix.rs.
package table

import "github.com/jacobbishopxy/fabrix/value"

// FieldInfo pairs a column name with its ValueType. Equality is structural;
// names need not be unique at construction time but must be unique within
// a Fabrix (Fabrix invariant I2).
type FieldInfo struct {
	Name  string
	Dtype value.ValueType
}

// Equal reports structural equality.
func (f FieldInfo) Equal(other FieldInfo) bool {
	return f.Name == other.Name && f.Dtype == other.Dtype
}

// Schema is an ordered sequence of FieldInfo with O(1) name lookup.
// Insertion order is observable (Fields() preserves it).
type Schema struct {
	fields []FieldInfo
	byName map[string]int
}

// NewSchema builds a Schema from an ordered slice of FieldInfo.
func NewSchema(fields []FieldInfo) *Schema {
	s := &Schema{
		fields: append([]FieldInfo(nil), fields...),
		byName: make(map[string]int, len(fields)),
	}
	for i, f := range s.fields {
		s.byName[f.Name] = i
	}
	return s
}

// Fields returns the schema's fields in insertion order.
func (s *Schema) Fields() []FieldInfo { return append([]FieldInfo(nil), s.fields...) }

// Len returns the number of fields.
func (s *Schema) Len() int { return len(s.fields) }

// Get returns the FieldInfo at position i.
func (s *Schema) Get(i int) (FieldInfo, bool) {
	if i < 0 || i >= len(s.fields) {
		return FieldInfo{}, false
	}
	return s.fields[i], true
}

// IndexOf returns the position of the field named name, in O(1).
func (s *Schema) IndexOf(name string) (int, bool) {
	i, ok := s.byName[name]
	return i, ok
}

// Equal reports whether two schemas have the same ordered names and dtypes
// (used by Fabrix.VConcat, spec invariant I5).
func (s *Schema) Equal(other *Schema) bool {
	if len(s.fields) != len(other.fields) {
		return false
	}
	for i, f := range s.fields {
		if !f.Equal(other.fields[i]) {
			return false
		}
	}
	return true
}
