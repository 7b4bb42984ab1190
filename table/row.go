package table

import "github.com/jacobbishopxy/fabrix/value"

// Row is a positional row record. Index, when present, is a positional
// pointer into Data naming which cell serves as the row's primary key for
// equality comparisons; its type is derived from the referenced cell.
type Row struct {
	Index *int
	Data  []value.Value
}

// NewRow builds an index-less Row.
func NewRow(data []value.Value) Row { return Row{Data: data} }

// NewIndexedRow builds a Row whose Index points at data[idx].
func NewIndexedRow(idx int, data []value.Value) Row {
	i := idx
	return Row{Index: &i, Data: data}
}

// IndexValue returns the row's key cell, if it has one.
func (r Row) IndexValue() (value.Value, bool) {
	if r.Index == nil || *r.Index < 0 || *r.Index >= len(r.Data) {
		return value.Value{}, false
	}
	return r.Data[*r.Index], true
}

// Equal compares two rows by their index cell when both carry one,
// otherwise falls back to full positional equality.
func (r Row) Equal(other Row) bool {
	if iv, ok := r.IndexValue(); ok {
		if ov, ok2 := other.IndexValue(); ok2 {
			return iv.Equal(ov)
		}
	}
	if len(r.Data) != len(other.Data) {
		return false
	}
	for i := range r.Data {
		if !r.Data[i].Equal(other.Data[i]) {
			return false
		}
	}
	return true
}

// NamedRow carries column names alongside each cell; used at the
// JSON/document-store boundary.
type NamedRow struct {
	Index *int
	Data  []NamedCell
}

// NamedCell is one (column name, value) pair in a NamedRow.
type NamedCell struct {
	Name  string
	Value value.Value
}

// NewNamedRow builds an index-less NamedRow.
func NewNamedRow(data []NamedCell) NamedRow { return NamedRow{Data: data} }

// NewIndexedNamedRow builds a NamedRow whose Index points at data[idx].
func NewIndexedNamedRow(idx int, data []NamedCell) NamedRow {
	i := idx
	return NamedRow{Index: &i, Data: data}
}

// IndexValue returns the row's key cell, if it has one.
func (r NamedRow) IndexValue() (value.Value, bool) {
	if r.Index == nil || *r.Index < 0 || *r.Index >= len(r.Data) {
		return value.Value{}, false
	}
	return r.Data[*r.Index].Value, true
}

// ToRow drops the column names, keeping only positional data.
func (r NamedRow) ToRow() Row {
	data := make([]value.Value, len(r.Data))
	for i, c := range r.Data {
		data[i] = c.Value
	}
	return Row{Index: r.Index, Data: data}
}

// Get returns the cell named name, if present.
func (r NamedRow) Get(name string) (value.Value, bool) {
	for _, c := range r.Data {
		if c.Name == name {
			return c.Value, true
		}
	}
	return value.Value{}, false
}
