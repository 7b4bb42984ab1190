// Package value implements the tagged scalar that is the atomic unit of data
// in a Fabrix table: a closed sum of Null, Bool, the unsigned/signed integer
// widths, the two floats, String, the three temporal variants, Decimal,
// Uuid and Bytes.
//
// It is the Go analogue of fabrix-core's value.rs: every variant there
// becomes a case of the ValueType tag here, and Value itself is a tagged
// union (kind + one payload field per "arm") rather than an interface, so
// that dispatch on the hot path (Series iteration) is a type switch instead
// of a virtual call (see SPEC_FULL.md §9).
package value

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ValueType tags a Value's variant. The zero value is Null, matching the
// Rust source's choice of Null doubling as "unknown type".
type ValueType uint8

const (
	Null ValueType = iota
	Bool
	U8
	U16
	U32
	U64
	I8
	I16
	I32
	I64
	F32
	F64
	String
	Date
	Time
	DateTime
	Decimal
	Uuid
	Bytes
)

func (t ValueType) String() string {
	switch t {
	case Null:
		return "null"
	case Bool:
		return "Bool"
	case U8:
		return "U8"
	case U16:
		return "U16"
	case U32:
		return "U32"
	case U64:
		return "U64"
	case I8:
		return "I8"
	case I16:
		return "I16"
	case I32:
		return "I32"
	case I64:
		return "I64"
	case F32:
		return "F32"
	case F64:
		return "F64"
	case String:
		return "String"
	case Date:
		return "Date"
	case Time:
		return "Time"
	case DateTime:
		return "DateTime"
	case Decimal:
		return "Decimal"
	case Uuid:
		return "Uuid"
	case Bytes:
		return "Bytes"
	default:
		return "Unknown"
	}
}

// IsNumeric reports whether t is one of the integer or float variants.
func (t ValueType) IsNumeric() bool {
	switch t {
	case U8, U16, U32, U64, I8, I16, I32, I64, F32, F64:
		return true
	default:
		return false
	}
}

// IsTemporal reports whether t is Date, Time or DateTime.
func (t ValueType) IsTemporal() bool {
	switch t {
	case Date, Time, DateTime:
		return true
	default:
		return false
	}
}

// IsObject reports whether t is one of the three 128-bit "object arm" types
// (Decimal, Uuid, Bytes) that Series stores out-of-line (see SPEC_FULL.md §9).
func (t ValueType) IsObject() bool {
	switch t {
	case Decimal, Uuid, Bytes:
		return true
	default:
		return false
	}
}

// Value is a tagged union: kind selects which payload field is live.
// Exactly one of the payload fields is meaningful for a given kind; the
// rest are left zero. This mirrors a Rust enum's memory layout more
// closely than a Go interface would, and keeps Series dispatch to a type
// switch on kind.
type Value struct {
	kind ValueType

	b bool
	u uint64
	i int64
	f float64
	s string
	t time.Time // Date / Time / DateTime payload, interpreted per kind
	d decimal.Decimal
	id uuid.UUID
	by []byte
}

// Type returns v's ValueType tag. Value-to-type projection is total.
func (v Value) Type() ValueType { return v.kind }

// IsNull reports whether v is the Null variant.
func (v Value) IsNull() bool { return v.kind == Null }

func NewNull() Value { return Value{kind: Null} }

func NewBool(b bool) Value { return Value{kind: Bool, b: b} }

func NewU8(u uint8) Value   { return Value{kind: U8, u: uint64(u)} }
func NewU16(u uint16) Value { return Value{kind: U16, u: uint64(u)} }
func NewU32(u uint32) Value { return Value{kind: U32, u: uint64(u)} }
func NewU64(u uint64) Value { return Value{kind: U64, u: u} }

func NewI8(i int8) Value   { return Value{kind: I8, i: int64(i)} }
func NewI16(i int16) Value { return Value{kind: I16, i: int64(i)} }
func NewI32(i int32) Value { return Value{kind: I32, i: int64(i)} }
func NewI64(i int64) Value { return Value{kind: I64, i: i} }

func NewF32(f float32) Value { return Value{kind: F32, f: float64(f)} }
func NewF64(f float64) Value { return Value{kind: F64, f: f} }

func NewString(s string) Value { return Value{kind: String, s: s} }

// NewDate takes the calendar-day components of t (time-of-day is discarded).
func NewDate(t time.Time) Value {
	return Value{kind: Date, t: time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

// NewTime takes the wall-clock components of t (calendar date is discarded).
func NewTime(t time.Time) Value {
	return Value{kind: Time, t: time.Date(1970, 1, 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)}
}

// NewDateTime stores t verbatim (naive, nanosecond resolution).
func NewDateTime(t time.Time) Value { return Value{kind: DateTime, t: t} }

func NewDecimal(d decimal.Decimal) Value { return Value{kind: Decimal, d: d} }

func NewUuid(id uuid.UUID) Value { return Value{kind: Uuid, id: id} }

func NewBytes(b []byte) Value { return Value{kind: Bytes, by: append([]byte(nil), b...)} }

// Accessors. Each panics if called against the wrong kind; callers that
// don't already know the kind should switch on Type() first, exactly the
// way Series iteration does.

func (v Value) AsBool() bool { v.mustBe(Bool); return v.b }

func (v Value) AsU8() uint8   { v.mustBe(U8); return uint8(v.u) }
func (v Value) AsU16() uint16 { v.mustBe(U16); return uint16(v.u) }
func (v Value) AsU32() uint32 { v.mustBe(U32); return uint32(v.u) }
func (v Value) AsU64() uint64 { v.mustBe(U64); return v.u }

func (v Value) AsI8() int8   { v.mustBe(I8); return int8(v.i) }
func (v Value) AsI16() int16 { v.mustBe(I16); return int16(v.i) }
func (v Value) AsI32() int32 { v.mustBe(I32); return int32(v.i) }
func (v Value) AsI64() int64 { v.mustBe(I64); return v.i }

func (v Value) AsF32() float32 { v.mustBe(F32); return float32(v.f) }
func (v Value) AsF64() float64 { v.mustBe(F64); return v.f }

func (v Value) AsString() string { v.mustBe(String); return v.s }

func (v Value) AsDate() time.Time     { v.mustBe(Date); return v.t }
func (v Value) AsTime() time.Time     { v.mustBe(Time); return v.t }
func (v Value) AsDateTime() time.Time { v.mustBe(DateTime); return v.t }

func (v Value) AsDecimal() decimal.Decimal { v.mustBe(Decimal); return v.d }
func (v Value) AsUuid() uuid.UUID          { v.mustBe(Uuid); return v.id }
func (v Value) AsBytes() []byte            { v.mustBe(Bytes); return v.by }

func (v Value) mustBe(t ValueType) {
	if v.kind != t {
		panic(fmt.Sprintf("value: called As%s on a %s", t, v.kind))
	}
}

// Equal reports structural equality: same kind and same payload.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case Null:
		return true
	case Bool:
		return v.b == other.b
	case U8, U16, U32, U64:
		return v.u == other.u
	case I8, I16, I32, I64:
		return v.i == other.i
	case F32, F64:
		return v.f == other.f
	case String:
		return v.s == other.s
	case Date, Time, DateTime:
		return v.t.Equal(other.t)
	case Decimal:
		return v.d.Equal(other.d)
	case Uuid:
		return v.id == other.id
	case Bytes:
		return string(v.by) == string(other.by)
	default:
		return false
	}
}

// String renders v's canonical textual form: hyphenated for Uuid, explicit
// scale for Decimal, hex for Bytes, ISO 8601 for temporals.
func (v Value) String() string {
	switch v.kind {
	case Null:
		return "null"
	case Bool:
		return strconv.FormatBool(v.b)
	case U8, U16, U32, U64:
		return strconv.FormatUint(v.u, 10)
	case I8, I16, I32, I64:
		return strconv.FormatInt(v.i, 10)
	case F32:
		return strconv.FormatFloat(v.f, 'g', -1, 32)
	case F64:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case String:
		return v.s
	case Date:
		return v.t.Format("2006-01-02")
	case Time:
		return v.t.Format("15:04:05.999999999")
	case DateTime:
		return v.t.Format("2006-01-02T15:04:05.999999999")
	case Decimal:
		if exp := v.d.Exponent(); exp < 0 {
			return v.d.StringFixed(-exp)
		}
		return v.d.String()
	case Uuid:
		return v.id.String()
	case Bytes:
		return fmt.Sprintf("%x", v.by)
	default:
		return ""
	}
}

// Cast performs a best-effort conversion to target, per spec §4.1:
// widening between numeric variants is total; narrowing truncates then
// checks range, failing to Null on overflow; Null<->anything is total;
// String<->numeric/temporal uses ISO 8601 / Go numeric-parse semantics;
// Date<->DateTime adds/drops midnight; Bytes<->String is UTF-8 validated.
// Every other pair, and any failure, yields Null. Cast never panics.
func (v Value) Cast(target ValueType) Value {
	if target == Null {
		return NewNull()
	}
	if v.kind == Null {
		return NewNull()
	}
	if v.kind == target {
		return v
	}

	switch target {
	case Bool:
		return v.castToBool()
	case U8, U16, U32, U64, I8, I16, I32, I64, F32, F64:
		return v.castToNumeric(target)
	case String:
		if v.kind == Bytes {
			if !utf8.Valid(v.by) {
				return NewNull()
			}
			return NewString(string(v.by))
		}
		return NewString(v.String())
	case Date:
		return v.castToDate()
	case Time:
		return v.castToTime()
	case DateTime:
		return v.castToDateTime()
	case Decimal:
		return v.castToDecimal()
	case Uuid:
		return v.castToUuid()
	case Bytes:
		return v.castToBytes()
	default:
		return NewNull()
	}
}

func (v Value) castToBool() Value {
	switch v.kind {
	case Bool:
		return v
	case U8, U16, U32, U64:
		return NewBool(v.u != 0)
	case I8, I16, I32, I64:
		return NewBool(v.i != 0)
	case F32, F64:
		return NewBool(v.f != 0)
	case String:
		b, err := strconv.ParseBool(strings.TrimSpace(v.s))
		if err != nil {
			return NewNull()
		}
		return NewBool(b)
	default:
		return NewNull()
	}
}

// numericFloat extracts v's numeric payload as a float64 (false when v has
// no numeric reading), used as the common pivot for widening/narrowing casts.
func (v Value) numericFloat() (float64, bool) {
	switch v.kind {
	case U8, U16, U32, U64:
		return float64(v.u), true
	case I8, I16, I32, I64:
		return float64(v.i), true
	case F32, F64:
		return v.f, true
	case Bool:
		if v.b {
			return 1, true
		}
		return 0, true
	case String:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.s), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	case Decimal:
		f, _ := v.d.Float64()
		return f, true
	default:
		return 0, false
	}
}

func (v Value) castToNumeric(target ValueType) Value {
	f, ok := v.numericFloat()
	if !ok {
		return NewNull()
	}
	if target != F32 && target != F64 {
		f = math.Trunc(f)
	}
	switch target {
	case U8:
		if f < 0 || f > 255 || f != float64(uint8(f)) {
			return NewNull()
		}
		return NewU8(uint8(f))
	case U16:
		if f < 0 || f > 65535 || f != float64(uint16(f)) {
			return NewNull()
		}
		return NewU16(uint16(f))
	case U32:
		if f < 0 || f > 4294967295 || f != float64(uint32(f)) {
			return NewNull()
		}
		return NewU32(uint32(f))
	case U64:
		if f < 0 || f >= 18446744073709551616 {
			return NewNull()
		}
		return NewU64(uint64(f))
	case I8:
		if f < -128 || f > 127 {
			return NewNull()
		}
		return NewI8(int8(f))
	case I16:
		if f < -32768 || f > 32767 {
			return NewNull()
		}
		return NewI16(int16(f))
	case I32:
		if f < -2147483648 || f > 2147483647 {
			return NewNull()
		}
		return NewI32(int32(f))
	case I64:
		if f < -9223372036854775808 || f >= 9223372036854775808 {
			return NewNull()
		}
		return NewI64(int64(f))
	case F32:
		return NewF32(float32(f))
	case F64:
		return NewF64(f)
	default:
		return NewNull()
	}
}

func (v Value) castToDate() Value {
	switch v.kind {
	case DateTime:
		return NewDate(v.t)
	case String:
		t, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(v.s), time.UTC)
		if err != nil {
			return NewNull()
		}
		return NewDate(t)
	default:
		return NewNull()
	}
}

func (v Value) castToTime() Value {
	switch v.kind {
	case DateTime:
		return NewTime(v.t)
	case String:
		t, err := time.ParseInLocation("15:04:05", strings.TrimSpace(v.s), time.UTC)
		if err != nil {
			return NewNull()
		}
		return NewTime(t)
	default:
		return NewNull()
	}
}

func (v Value) castToDateTime() Value {
	switch v.kind {
	case Date:
		return NewDateTime(v.t)
	case String:
		s := strings.TrimSpace(v.s)
		for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02 15:04:05"} {
			if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
				return NewDateTime(t)
			}
		}
		return NewNull()
	default:
		return NewNull()
	}
}

func (v Value) castToDecimal() Value {
	switch v.kind {
	case String:
		d, err := decimal.NewFromString(strings.TrimSpace(v.s))
		if err != nil {
			return NewNull()
		}
		return NewDecimal(d)
	case U8, U16, U32, U64:
		return NewDecimal(decimal.NewFromInt(int64(v.u)))
	case I8, I16, I32, I64:
		return NewDecimal(decimal.NewFromInt(v.i))
	case F32, F64:
		return NewDecimal(decimal.NewFromFloat(v.f))
	default:
		return NewNull()
	}
}

func (v Value) castToUuid() Value {
	switch v.kind {
	case String:
		id, err := uuid.Parse(strings.TrimSpace(v.s))
		if err != nil {
			return NewNull()
		}
		return NewUuid(id)
	case Bytes:
		id, err := uuid.FromBytes(v.by)
		if err != nil {
			return NewNull()
		}
		return NewUuid(id)
	default:
		return NewNull()
	}
}

func (v Value) castToBytes() Value {
	switch v.kind {
	case String:
		return NewBytes([]byte(v.s))
	case Uuid:
		b, _ := v.id.MarshalBinary()
		return NewBytes(b)
	default:
		return NewNull()
	}
}
