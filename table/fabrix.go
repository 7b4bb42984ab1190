package table

import (
	"strconv"

	"github.com/jacobbishopxy/fabrix/ferror"
	"github.com/jacobbishopxy/fabrix/series"
	"github.com/jacobbishopxy/fabrix/value"
)

// Fabrix is a named collection of equal-length typed columns with an
// optional index tag designating one column as a logical primary key.
//
// Invariants (spec §8):
//  1. all columns have equal height;
//  2. column names are pairwise distinct;
//  3. if IndexTag is present, data[tag.Loc].Name == tag.Name and its dtype
//     matches tag.DataType;
//  4. height == 0 is permitted.
type Fabrix struct {
	data     []*series.Series
	indexTag *IndexTag
}

// FromSeries builds a Fabrix from columns, optionally promoting one to the
// index tag. Fails if heights differ or names collide.
func FromSeries(cols []*series.Series, index IndexSpec) (*Fabrix, error) {
	if err := checkHeightsAndNames(cols); err != nil {
		return nil, err
	}
	f := &Fabrix{data: append([]*series.Series(nil), cols...)}
	if index != nil {
		names := make([]string, len(cols))
		dtypes := make([]value.ValueType, len(cols))
		for i, c := range cols {
			names[i], dtypes[i] = c.Name(), c.Dtype()
		}
		tag, err := resolveIndexSpec(index, names, dtypes)
		if err != nil {
			return nil, err
		}
		f.indexTag = &tag
	}
	return f, nil
}

// FromSeriesNoIndex builds a Fabrix with no index tag.
func FromSeriesNoIndex(cols []*series.Series) (*Fabrix, error) {
	return FromSeries(cols, nil)
}

func checkHeightsAndNames(cols []*series.Series) error {
	seen := make(map[string]struct{}, len(cols))
	height := -1
	for _, c := range cols {
		if height == -1 {
			height = c.Len()
		} else if c.Len() != height {
			return ferror.NewLengthMismatch(height, c.Len())
		}
		if _, ok := seen[c.Name()]; ok {
			return ferror.ErrNameConflict
		}
		seen[c.Name()] = struct{}{}
	}
	return nil
}

// NewEmpty builds a zero-height Fabrix whose columns follow fields, with an
// optional index tag.
func NewEmpty(fields []FieldInfo, index IndexSpec) (*Fabrix, error) {
	cols := make([]*series.Series, len(fields))
	for i, f := range fields {
		cols[i] = series.New(f.Name, f.Dtype, 0)
	}
	return FromSeries(cols, index)
}

// FromRows builds a Fabrix from positional Rows. The first row's arity
// fixes the column count; every row must carry the same index position (or
// none). Columns are named Column_0..Column_{n-1} and built nullable.
func FromRows(rows []Row) (*Fabrix, error) {
	if len(rows) == 0 {
		return nil, ferror.ErrContentEmpty
	}
	n := len(rows[0].Data)
	cols := make([][]value.Value, n)
	for _, r := range rows {
		if len(r.Data) != n {
			return nil, ferror.NewLengthMismatch(n, len(r.Data))
		}
		for j, v := range r.Data {
			cols[j] = append(cols[j], v)
		}
	}
	series_ := make([]*series.Series, n)
	for j := 0; j < n; j++ {
		s, err := series.FromValues(syntheticColumnName(j), cols[j], true)
		if err != nil {
			return nil, err
		}
		series_[j] = s
	}
	var spec IndexSpec
	if rows[0].Index != nil {
		spec = IndexByPos(*rows[0].Index)
	}
	return FromSeries(series_, spec)
}

// FromRowValues implements the row-wise construction algorithm of spec
// §4.3: peek the first row for arity; if hasHeader, consume it as column
// names; distribute remaining rows column-wise; build each column
// nullable; synthesize names when no header was given; attach indexCol as
// the index tag when provided.
func FromRowValues(d2 [][]value.Value, indexCol *int, hasHeader bool) (*Fabrix, error) {
	if len(d2) == 0 {
		return nil, ferror.ErrContentEmpty
	}
	n := len(d2[0])
	var names []string
	body := d2
	if hasHeader {
		names = make([]string, n)
		for i, v := range d2[0] {
			names[i] = v.String()
		}
		body = d2[1:]
	} else {
		names = make([]string, n)
		for i := range names {
			names[i] = syntheticColumnName(i)
		}
	}
	cols := make([][]value.Value, n)
	for _, row := range body {
		if len(row) != n {
			return nil, ferror.NewLengthMismatch(n, len(row))
		}
		for j, v := range row {
			cols[j] = append(cols[j], v)
		}
	}
	built := make([]*series.Series, n)
	for j := 0; j < n; j++ {
		s, err := series.FromValues(names[j], cols[j], true)
		if err != nil {
			return nil, err
		}
		built[j] = s
	}
	var spec IndexSpec
	if indexCol != nil {
		spec = IndexByPos(*indexCol)
	}
	return FromSeries(built, spec)
}

// FromNamedRows builds a Fabrix from NamedRows; every row must carry the
// same ordered set of column names.
func FromNamedRows(rows []NamedRow) (*Fabrix, error) {
	if len(rows) == 0 {
		return nil, ferror.ErrContentEmpty
	}
	n := len(rows[0].Data)
	names := make([]string, n)
	for i, c := range rows[0].Data {
		names[i] = c.Name
	}
	cols := make([][]value.Value, n)
	for _, r := range rows {
		if len(r.Data) != n {
			return nil, ferror.NewLengthMismatch(n, len(r.Data))
		}
		for j, c := range r.Data {
			cols[j] = append(cols[j], c.Value)
		}
	}
	built := make([]*series.Series, n)
	for j := 0; j < n; j++ {
		s, err := series.FromValues(names[j], cols[j], true)
		if err != nil {
			return nil, err
		}
		built[j] = s
	}
	var spec IndexSpec
	if rows[0].Index != nil {
		spec = IndexByPos(*rows[0].Index)
	}
	return FromSeries(built, spec)
}

func syntheticColumnName(i int) string {
	return "Column_" + strconv.Itoa(i)
}

// Height returns the number of rows.
func (f *Fabrix) Height() int {
	if len(f.data) == 0 {
		return 0
	}
	return f.data[0].Len()
}

// Width returns the number of columns.
func (f *Fabrix) Width() int { return len(f.data) }

// IndexTag returns the Fabrix's index tag, if any.
func (f *Fabrix) IndexTag() *IndexTag { return f.indexTag }

// Columns returns the underlying Series in order. Callers must not mutate
// the returned slice's elements' identity (they may still call mutating
// Series methods, which is how callers are expected to edit column data).
func (f *Fabrix) Columns() []*series.Series { return f.data }

// Schema returns a Schema snapshotting the Fabrix's current column names
// and dtypes.
func (f *Fabrix) Schema() *Schema {
	fields := make([]FieldInfo, len(f.data))
	for i, c := range f.data {
		fields[i] = FieldInfo{Name: c.Name(), Dtype: c.Dtype()}
	}
	return NewSchema(fields)
}

// Column returns the series named name.
func (f *Fabrix) Column(name string) (*series.Series, error) {
	for _, c := range f.data {
		if c.Name() == name {
			return c, nil
		}
	}
	return nil, ferror.ErrNameNotFound
}

// ColumnAt returns the series at position i.
func (f *Fabrix) ColumnAt(i int) (*series.Series, error) {
	if i < 0 || i >= len(f.data) {
		return nil, ferror.NewOutOfBounds(i, len(f.data))
	}
	return f.data[i], nil
}
