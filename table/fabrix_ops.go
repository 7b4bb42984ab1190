package table

import (
	"github.com/jacobbishopxy/fabrix/ferror"
	"github.com/jacobbishopxy/fabrix/series"
	"github.com/jacobbishopxy/fabrix/value"
)

// VConcat appends other's rows to f in place. Schemas (ordered names and
// dtypes) must match (invariant I5). f's index tag is kept as-is.
func (f *Fabrix) VConcat(other *Fabrix) error {
	if !f.Schema().Equal(other.Schema()) {
		return ferror.NewInvalidArgument("vconcat requires matching schemas")
	}
	for i, c := range f.data {
		if err := c.Concat(other.data[i]); err != nil {
			return err
		}
	}
	return nil
}

// HConcat appends other's columns to f. Duplicate names fail with
// ferror.ErrNameConflict. f's index tag is unchanged.
func (f *Fabrix) HConcat(other *Fabrix) error {
	if other.Height() != f.Height() && f.Height() != 0 && other.Height() != 0 {
		return ferror.NewLengthMismatch(f.Height(), other.Height())
	}
	seen := make(map[string]struct{}, len(f.data))
	for _, c := range f.data {
		seen[c.Name()] = struct{}{}
	}
	for _, c := range other.data {
		if _, ok := seen[c.Name()]; ok {
			return ferror.ErrNameConflict
		}
	}
	f.data = append(f.data, other.data...)
	return nil
}

// GetRow returns the row whose index-tag cell equals key. Fails with
// ferror.ErrIndexNotFound when f has no index tag, or
// ferror.ErrValueNotFound when no row matches.
func (f *Fabrix) GetRow(key value.Value) (Row, error) {
	if f.indexTag == nil {
		return Row{}, ferror.ErrIndexNotFound
	}
	col := f.data[f.indexTag.Loc]
	i, ok := col.FindIndex(key)
	if !ok {
		return Row{}, ferror.ErrValueNotFound
	}
	return f.rowAt(i), nil
}

func (f *Fabrix) rowAt(i int) Row {
	data := make([]value.Value, len(f.data))
	for j, c := range f.data {
		data[j], _ = c.Get(i)
	}
	var row Row
	if f.indexTag != nil {
		row = NewIndexedRow(f.indexTag.Loc, data)
	} else {
		row = NewRow(data)
	}
	return row
}

func (f *Fabrix) namedRowAt(i int) NamedRow {
	cells := make([]NamedCell, len(f.data))
	for j, c := range f.data {
		v, _ := c.Get(i)
		cells[j] = NamedCell{Name: c.Name(), Value: v}
	}
	var row NamedRow
	if f.indexTag != nil {
		row = NewIndexedNamedRow(f.indexTag.Loc, cells)
	} else {
		row = NewNamedRow(cells)
	}
	return row
}

// InsertRow inserts row at the position of the row whose index-tag cell
// equals key (inserted immediately before it); requires an index tag.
func (f *Fabrix) InsertRow(key value.Value, row Row) error {
	if f.indexTag == nil {
		return ferror.ErrIndexNotFound
	}
	col := f.data[f.indexTag.Loc]
	i, ok := col.FindIndex(key)
	if !ok {
		return ferror.ErrValueNotFound
	}
	return f.insertRowAt(i, row)
}

func (f *Fabrix) insertRowAt(i int, row Row) error {
	if len(row.Data) != len(f.data) {
		return ferror.NewLengthMismatch(len(f.data), len(row.Data))
	}
	for j, c := range f.data {
		if err := c.Insert(i, row.Data[j]); err != nil {
			return err
		}
	}
	return nil
}

// AppendRow appends row to the end of every column.
func (f *Fabrix) AppendRow(row Row) error {
	if len(row.Data) != len(f.data) {
		return ferror.NewLengthMismatch(len(f.data), len(row.Data))
	}
	for j, c := range f.data {
		c.Append(row.Data[j])
	}
	return nil
}

// RemoveRow deletes the row whose index-tag cell equals key.
func (f *Fabrix) RemoveRow(key value.Value) error {
	if f.indexTag == nil {
		return ferror.ErrIndexNotFound
	}
	col := f.data[f.indexTag.Loc]
	i, ok := col.FindIndex(key)
	if !ok {
		return ferror.ErrValueNotFound
	}
	return f.RemoveRowsByIdx([]int{i})
}

// RemoveRowsByIdx deletes the rows at the given positions, using a single
// boolean-mask pass over every column.
func (f *Fabrix) RemoveRowsByIdx(idx []int) error {
	height := f.Height()
	mask := make([]bool, height)
	for _, i := range idx {
		if i < 0 || i >= height {
			return ferror.NewOutOfBounds(i, height)
		}
		mask[i] = true
	}
	keep := make([]int, 0, height)
	for i := 0; i < height; i++ {
		if !mask[i] {
			keep = append(keep, i)
		}
	}
	for _, c := range f.data {
		taken, err := c.Take(keep)
		if err != nil {
			return err
		}
		*c = *taken
	}
	return nil
}

// PopupRowsByIdx removes the rows at the given positions, returning them as
// a new Fabrix (sharing f's schema and index tag) while f retains the
// residue. It is the basis of upsert (spec §4.3, §8 law:
// PopupRowsByIdx(ix) ∘ VConcat = identity under schema equality).
func (f *Fabrix) PopupRowsByIdx(idx []int) (*Fabrix, error) {
	height := f.Height()
	mask := make([]bool, height)
	order := make([]int, 0, len(idx))
	for _, i := range idx {
		if i < 0 || i >= height {
			return nil, ferror.NewOutOfBounds(i, height)
		}
		if !mask[i] {
			mask[i] = true
			order = append(order, i)
		}
	}
	popped := make([]*series.Series, len(f.data))
	for j, c := range f.data {
		taken, err := c.Take(order)
		if err != nil {
			return nil, err
		}
		popped[j] = taken
	}
	var spec IndexSpec
	if f.indexTag != nil {
		spec = IndexByPos(f.indexTag.Loc)
	}
	poppedFabrix, err := FromSeries(popped, spec)
	if err != nil {
		return nil, err
	}
	if err := f.RemoveRowsByIdx(idx); err != nil {
		return nil, err
	}
	return poppedFabrix, nil
}

// RowIter lazily yields the Fabrix's rows in order, one column-iterator
// step at a time; bounded by Height() at the moment IterRows is called.
type RowIter struct {
	f       *Fabrix
	stepper *series.Stepper
}

// IterRows returns a lazy row iterator.
func (f *Fabrix) IterRows() *RowIter {
	return &RowIter{f: f, stepper: series.NewStepper(f.Height())}
}

// Next returns the next Row, or false once exhausted.
func (it *RowIter) Next() (Row, bool) {
	i, ok := it.stepper.Next()
	if !ok {
		return Row{}, false
	}
	return it.f.rowAt(i), true
}

// NamedRowIter lazily yields the Fabrix's rows as NamedRows.
type NamedRowIter struct {
	f       *Fabrix
	stepper *series.Stepper
}

// IterNamedRows returns a lazy named-row iterator.
func (f *Fabrix) IterNamedRows() *NamedRowIter {
	return &NamedRowIter{f: f, stepper: series.NewStepper(f.Height())}
}

// Next returns the next NamedRow, or false once exhausted.
func (it *NamedRowIter) Next() (NamedRow, bool) {
	i, ok := it.stepper.Next()
	if !ok {
		return NamedRow{}, false
	}
	return it.f.namedRowAt(i), true
}
