package table

import (
	"github.com/jacobbishopxy/fabrix/ferror"
	"github.com/jacobbishopxy/fabrix/value"
)

// IndexTag marks one column of a Fabrix as its logical primary key.
// Loc is positional, not a pointer, avoiding aliasing into the Fabrix's own
// column vector (SPEC_FULL.md §9).
type IndexTag struct {
	Loc      int
	Name     string
	DataType value.ValueType
}

// IndexSpec names a Fabrix column to promote to its IndexTag, by position
// or by name. Resolution against a concrete set of Series happens in
// fabrix.go via resolveIndexSpec.
type IndexSpec interface {
	isIndexSpec()
}

// IndexByPos resolves to the column at a fixed position.
type IndexByPos int

func (IndexByPos) isIndexSpec() {}

// IndexByName resolves to the column with the given name.
type IndexByName string

func (IndexByName) isIndexSpec() {}

func resolveIndexSpec(spec IndexSpec, names []string, dtypes []value.ValueType) (IndexTag, error) {
	switch s := spec.(type) {
	case IndexByPos:
		loc := int(s)
		if loc < 0 || loc >= len(names) {
			return IndexTag{}, ferror.NewLengthMismatch(loc, len(names))
		}
		return IndexTag{Loc: loc, Name: names[loc], DataType: dtypes[loc]}, nil
	case IndexByName:
		for i, n := range names {
			if n == string(s) {
				return IndexTag{Loc: i, Name: n, DataType: dtypes[i]}, nil
			}
		}
		return IndexTag{}, ferror.ErrNameNotFound
	default:
		return IndexTag{}, ferror.NewInvalidIndex("unsupported index spec type")
	}
}
