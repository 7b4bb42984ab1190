// Package series implements Series, a named, typed, nullable column: the
// Go analogue of fabrix-core's series.rs, generalized from the Rust
// source's thin polars wrapper into a self-contained columnar store.
//
// Storage is a tagged union of per-type backing slices, plus a single
// "object" slice for the three 128-bit types (Decimal, Uuid, Bytes),
// matching the "polymorphic series" design note in SPEC_FULL.md §9:
// dispatch on dtype is a type switch, not a virtual call, on the hot
// iteration path.
package series

import (
	"github.com/jacobbishopxy/fabrix/ferror"
	"github.com/jacobbishopxy/fabrix/value"
)

// Series is a single named, typed, nullable column.
type Series struct {
	name  string
	dtype value.ValueType
	valid []bool // nil means "no nulls recorded" (all valid)

	bools   []bool
	uints   []uint64
	ints    []int64
	floats  []float64
	strings []string
	times   []int64 // unix nanoseconds, UTC; Date/Time/DateTime share this arm
	objects []value.Value // Decimal / Uuid / Bytes arm: the Value carries its own payload
}

// New builds a Series from name, dtype and an initial length of nulls.
func New(name string, dtype value.ValueType, length int) *Series {
	s := &Series{name: name, dtype: dtype}
	s.growTo(length)
	for i := 0; i < length; i++ {
		s.setNull(i)
	}
	return s
}

// FromValues builds a Series from a name and a slice of Values. If
// nullable is false, a mixed-dtype input (excluding Null cells, which are
// always permitted) fails with ferror.ErrDtypeMismatch; when nullable is
// true the mix is still rejected per the same rule — "nullable" governs
// whether Null cells are allowed, not whether dtypes may mix (the spec's
// Value model never allows heterogeneous columns). dtype==Null is legal
// only when every cell is Null (an all-null column).
func FromValues(name string, values []value.Value, nullable bool) (*Series, error) {
	dtype := value.Null
	for _, v := range values {
		if v.Type() == value.Null {
			continue
		}
		if dtype == value.Null {
			dtype = v.Type()
			continue
		}
		if dtype != v.Type() {
			return nil, ferror.ErrDtypeMismatch
		}
	}
	if !nullable {
		for _, v := range values {
			if v.Type() == value.Null {
				return nil, ferror.NewInvalidArgument("null cell in non-nullable series")
			}
		}
	}
	s := New(name, dtype, 0)
	for _, v := range values {
		s.pushValue(v)
	}
	return s, nil
}

// FromInteger builds a Series named "" holding 0..n (exclusive) as U64 values.
func FromInteger(n uint64) *Series {
	s := New("", value.U64, 0)
	for i := uint64(0); i < n; i++ {
		s.pushValue(value.NewU64(i))
	}
	return s
}

// FromRange builds a Series holding the half-open integer range [a, b) as
// I64 values; a and b must describe a valid (possibly empty) range.
func FromRange(a, b int64) *Series {
	s := New("", value.I64, 0)
	for i := a; i < b; i++ {
		s.pushValue(value.NewI64(i))
	}
	return s
}

func (s *Series) Name() string          { return s.name }
func (s *Series) Rename(name string)     { s.name = name }
func (s *Series) Dtype() value.ValueType { return s.dtype }

// Len returns the exact, eagerly-known length of the series.
func (s *Series) Len() int {
	switch {
	case s.valid != nil:
		return len(s.valid)
	case s.dtype.IsObject():
		return len(s.objects)
	default:
		return s.lenByDtype()
	}
}

func (s *Series) lenByDtype() int {
	switch s.dtype {
	case value.Bool:
		return len(s.bools)
	case value.U8, value.U16, value.U32, value.U64:
		return len(s.uints)
	case value.I8, value.I16, value.I32, value.I64:
		return len(s.ints)
	case value.F32, value.F64:
		return len(s.floats)
	case value.String:
		return len(s.strings)
	case value.Date, value.Time, value.DateTime:
		return len(s.times)
	default:
		return len(s.objects)
	}
}

// HasNull reports whether any cell is Null.
func (s *Series) HasNull() bool {
	for _, ok := range s.valid {
		if !ok {
			return true
		}
	}
	return false
}

func (s *Series) isValid(i int) bool {
	if s.valid == nil {
		return true
	}
	return s.valid[i]
}

func (s *Series) setValid(i int) {
	if s.valid != nil {
		s.valid[i] = true
	}
}

func (s *Series) setNull(i int) {
	s.ensureValidTracking()
	s.valid[i] = false
}

func (s *Series) ensureValidTracking() {
	if s.valid == nil {
		n := s.lenByDtype()
		s.valid = make([]bool, n)
		for i := range s.valid {
			s.valid[i] = true
		}
	}
}

func (s *Series) growTo(n int) {
	switch s.dtype {
	case value.Bool:
		s.bools = append(s.bools, make([]bool, n)...)
	case value.U8, value.U16, value.U32, value.U64:
		s.uints = append(s.uints, make([]uint64, n)...)
	case value.I8, value.I16, value.I32, value.I64:
		s.ints = append(s.ints, make([]int64, n)...)
	case value.F32, value.F64:
		s.floats = append(s.floats, make([]float64, n)...)
	case value.String:
		s.strings = append(s.strings, make([]string, n)...)
	case value.Date, value.Time, value.DateTime:
		s.times = append(s.times, make([]int64, n)...)
	default:
		s.objects = append(s.objects, make([]value.Value, n)...)
	}
}

// Get returns the value at position i.
func (s *Series) Get(i int) (value.Value, error) {
	if i < 0 || i >= s.Len() {
		return value.Value{}, ferror.NewOutOfBounds(i, s.Len())
	}
	return s.getUnchecked(i), nil
}

func (s *Series) getUnchecked(i int) value.Value {
	if !s.isValid(i) {
		return value.NewNull()
	}
	switch s.dtype {
	case value.Bool:
		return value.NewBool(s.bools[i])
	case value.U8:
		return value.NewU8(uint8(s.uints[i]))
	case value.U16:
		return value.NewU16(uint16(s.uints[i]))
	case value.U32:
		return value.NewU32(uint32(s.uints[i]))
	case value.U64:
		return value.NewU64(s.uints[i])
	case value.I8:
		return value.NewI8(int8(s.ints[i]))
	case value.I16:
		return value.NewI16(int16(s.ints[i]))
	case value.I32:
		return value.NewI32(int32(s.ints[i]))
	case value.I64:
		return value.NewI64(s.ints[i])
	case value.F32:
		return value.NewF32(float32(s.floats[i]))
	case value.F64:
		return value.NewF64(s.floats[i])
	case value.String:
		return value.NewString(s.strings[i])
	case value.Date:
		return value.NewDate(nsToTime(s.times[i]))
	case value.Time:
		return value.NewTime(nsToTime(s.times[i]))
	case value.DateTime:
		return value.NewDateTime(nsToTime(s.times[i]))
	default:
		return s.objects[i]
	}
}

// pushValue appends v, whose type must match s.dtype or be Null (or s.dtype
// must still be Null, in which case the series adopts v's type).
func (s *Series) pushValue(v value.Value) {
	n := s.Len()
	if s.dtype == value.Null && v.Type() != value.Null {
		s.dtype = v.Type()
		s.growTo(n)
	}
	s.growTo(1)
	if s.valid != nil {
		s.valid = append(s.valid, true)
	}
	i := n
	if v.Type() == value.Null {
		s.setNull(i)
		return
	}
	s.setValid(i)
	s.writeAt(i, v)
}

// lenPushed mirrors lenByDtype but is named separately for readability at
// call sites right after growTo.
func (s *Series) lenPushed() int { return s.lenByDtype() }

func (s *Series) writeAt(i int, v value.Value) {
	switch s.dtype {
	case value.Bool:
		s.bools[i] = v.AsBool()
	case value.U8:
		s.uints[i] = uint64(v.AsU8())
	case value.U16:
		s.uints[i] = uint64(v.AsU16())
	case value.U32:
		s.uints[i] = uint64(v.AsU32())
	case value.U64:
		s.uints[i] = v.AsU64()
	case value.I8:
		s.ints[i] = int64(v.AsI8())
	case value.I16:
		s.ints[i] = int64(v.AsI16())
	case value.I32:
		s.ints[i] = int64(v.AsI32())
	case value.I64:
		s.ints[i] = v.AsI64()
	case value.F32:
		s.floats[i] = float64(v.AsF32())
	case value.F64:
		s.floats[i] = v.AsF64()
	case value.String:
		s.strings[i] = v.AsString()
	case value.Date:
		s.times[i] = timeToNs(v.AsDate())
	case value.Time:
		s.times[i] = timeToNs(v.AsTime())
	case value.DateTime:
		s.times[i] = timeToNs(v.AsDateTime())
	default:
		s.objects[i] = v
	}
}

// Head returns the first n values (or fewer, if the series is shorter).
func (s *Series) Head(n int) []value.Value { return s.sliceValues(0, n) }

// Tail returns the last n values (or fewer, if the series is shorter).
func (s *Series) Tail(n int) []value.Value {
	l := s.Len()
	if n > l {
		n = l
	}
	return s.sliceValues(l-n, n)
}

func (s *Series) sliceValues(offset, length int) []value.Value {
	out := make([]value.Value, 0, length)
	for i := offset; i < offset+length && i < s.Len(); i++ {
		out = append(out, s.getUnchecked(i))
	}
	return out
}

// Take returns a new Series holding the values at the given indices.
func (s *Series) Take(indices []int) (*Series, error) {
	out := New(s.name, s.dtype, 0)
	for _, i := range indices {
		if i < 0 || i >= s.Len() {
			return nil, ferror.NewOutOfBounds(i, s.Len())
		}
		out.pushValue(s.getUnchecked(i))
	}
	return out, nil
}

// FindIndex returns the position of the first cell equal to v, if any.
func (s *Series) FindIndex(v value.Value) (int, bool) {
	for i := 0; i < s.Len(); i++ {
		if s.getUnchecked(i).Equal(v) {
			return i, true
		}
	}
	return 0, false
}

// FindIndices returns the positions of every cell equal to v.
func (s *Series) FindIndices(v value.Value) []int {
	var out []int
	for i := 0; i < s.Len(); i++ {
		if s.getUnchecked(i).Equal(v) {
			out = append(out, i)
		}
	}
	return out
}

// Append adds v to the end of the series.
func (s *Series) Append(v value.Value) { s.pushValue(v) }

// Insert places v at position i, shifting subsequent cells right.
func (s *Series) Insert(i int, v value.Value) error {
	l := s.Len()
	if i < 0 || i > l {
		return ferror.NewOutOfBounds(i, l)
	}
	rest, err := s.Take(indicesFrom(i, l))
	if err != nil {
		return err
	}
	s.truncate(i)
	s.pushValue(v)
	for j := 0; j < rest.Len(); j++ {
		s.pushValue(rest.getUnchecked(j))
	}
	return nil
}

// InsertMany places vs starting at position i.
func (s *Series) InsertMany(i int, vs []value.Value) error {
	l := s.Len()
	if i < 0 || i > l {
		return ferror.NewOutOfBounds(i, l)
	}
	rest, err := s.Take(indicesFrom(i, l))
	if err != nil {
		return err
	}
	s.truncate(i)
	for _, v := range vs {
		s.pushValue(v)
	}
	for j := 0; j < rest.Len(); j++ {
		s.pushValue(rest.getUnchecked(j))
	}
	return nil
}

// Pop removes and returns the last value.
func (s *Series) Pop() (value.Value, error) {
	l := s.Len()
	if l == 0 {
		return value.Value{}, ferror.NewOutOfBounds(0, 0)
	}
	v := s.getUnchecked(l - 1)
	s.truncate(l - 1)
	return v, nil
}

// Remove deletes the value at position i.
func (s *Series) Remove(i int) error {
	l := s.Len()
	if i < 0 || i >= l {
		return ferror.NewOutOfBounds(i, l)
	}
	keep := make([]int, 0, l-1)
	for j := 0; j < l; j++ {
		if j != i {
			keep = append(keep, j)
		}
	}
	kept, err := s.Take(keep)
	if err != nil {
		return err
	}
	*s = *kept
	return nil
}

// RemoveSlice deletes the half-open range [offset, offset+length).
func (s *Series) RemoveSlice(offset, length int) error {
	l := s.Len()
	if offset < 0 || offset > l {
		return ferror.NewOutOfBounds(offset, l)
	}
	end := offset + length
	if end > l {
		end = l
	}
	keep := make([]int, 0, l-(end-offset))
	for j := 0; j < l; j++ {
		if j < offset || j >= end {
			keep = append(keep, j)
		}
	}
	kept, err := s.Take(keep)
	if err != nil {
		return err
	}
	*s = *kept
	return nil
}

// Concat appends other's values to s in place. Fails if dtypes mismatch
// (an all-Null series concatenates with anything, adopting the other side's
// dtype).
func (s *Series) Concat(other *Series) error {
	if s.dtype != value.Null && other.dtype != value.Null && s.dtype != other.dtype {
		return ferror.ErrDtypeMismatch
	}
	for i := 0; i < other.Len(); i++ {
		s.pushValue(other.getUnchecked(i))
	}
	return nil
}

// Split divides s at position i into (s[:i], s[i:]).
func (s *Series) Split(i int) (*Series, *Series, error) {
	l := s.Len()
	if i < 0 || i > l {
		return nil, nil, ferror.NewOutOfBounds(i, l)
	}
	left, err := s.Take(indicesUpto(i))
	if err != nil {
		return nil, nil, err
	}
	right, err := s.Take(indicesFrom(i, l))
	if err != nil {
		return nil, nil, err
	}
	return left, right, nil
}

// Slice returns length values starting at offset; a negative offset counts
// from the end. Out-of-range requests saturate to the available span
// instead of failing.
func (s *Series) Slice(offset, length int) *Series {
	l := s.Len()
	if offset < 0 {
		offset += l
		if offset < 0 {
			offset = 0
		}
	}
	if offset > l {
		offset = l
	}
	if offset+length > l {
		length = l - offset
	}
	if length < 0 {
		length = 0
	}
	out, _ := s.Take(indicesRange(offset, offset+length))
	return out
}

func (s *Series) truncate(n int) {
	switch s.dtype {
	case value.Bool:
		s.bools = s.bools[:n]
	case value.U8, value.U16, value.U32, value.U64:
		s.uints = s.uints[:n]
	case value.I8, value.I16, value.I32, value.I64:
		s.ints = s.ints[:n]
	case value.F32, value.F64:
		s.floats = s.floats[:n]
	case value.String:
		s.strings = s.strings[:n]
	case value.Date, value.Time, value.DateTime:
		s.times = s.times[:n]
	default:
		s.objects = s.objects[:n]
	}
	if s.valid != nil {
		s.valid = s.valid[:n]
	}
}

// Rechunk is a no-op in this implementation: the backing slices are always
// contiguous (no chunked-array abstraction backs Series), so the invariant
// "all chunks are contiguous after rechunk" holds trivially. It exists so
// callers migrating from the chunked-array design don't need a special case.
func (s *Series) Rechunk() {}

// Clone returns a deep copy of s.
func (s *Series) Clone() *Series {
	out := &Series{name: s.name, dtype: s.dtype}
	out.bools = append([]bool(nil), s.bools...)
	out.uints = append([]uint64(nil), s.uints...)
	out.ints = append([]int64(nil), s.ints...)
	out.floats = append([]float64(nil), s.floats...)
	out.strings = append([]string(nil), s.strings...)
	out.times = append([]int64(nil), s.times...)
	out.objects = append([]value.Value(nil), s.objects...)
	if s.valid != nil {
		out.valid = append([]bool(nil), s.valid...)
	}
	return out
}

func indicesFrom(start, end int) []int { return indicesRange(start, end) }
func indicesUpto(end int) []int        { return indicesRange(0, end) }
func indicesRange(start, end int) []int {
	if end < start {
		end = start
	}
	out := make([]int, 0, end-start)
	for i := start; i < end; i++ {
		out = append(out, i)
	}
	return out
}
