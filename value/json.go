package value

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// jsonEnvelope is the wire shape for a tagged Value: {"type": "<tag>", "value": ...}.
// This mirrors the original Rust source's serde(tag=..) convention for its
// Value enum (see original_source/fabrix/src/core/value.rs).
type jsonEnvelope struct {
	Type  string          `json:"type"`
	Value json.RawMessage `json:"value,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.kind == Null {
		return json.Marshal(jsonEnvelope{Type: Null.String()})
	}
	var raw any
	switch v.kind {
	case Bool:
		raw = v.b
	case U8, U16, U32, U64:
		raw = v.u
	case I8, I16, I32, I64:
		raw = v.i
	case F32, F64:
		raw = v.f
	case String:
		raw = v.s
	case Date:
		raw = v.t.Format("2006-01-02")
	case Time:
		raw = v.t.Format("15:04:05.999999999")
	case DateTime:
		raw = v.t.Format(time.RFC3339Nano)
	case Decimal:
		raw = v.d.String()
	case Uuid:
		raw = v.id.String()
	case Bytes:
		raw = v.by // encoding/json base64-encodes []byte automatically
	}
	payload, err := json.Marshal(raw)
	if err != nil {
		return nil, err
	}
	return json.Marshal(jsonEnvelope{Type: v.kind.String(), Value: payload})
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Value) UnmarshalJSON(data []byte) error {
	var env jsonEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}
	t, err := ParseValueType(env.Type)
	if err != nil {
		return err
	}
	if t == Null || len(env.Value) == 0 {
		*v = NewNull()
		return nil
	}
	switch t {
	case Bool:
		var b bool
		if err := json.Unmarshal(env.Value, &b); err != nil {
			return err
		}
		*v = NewBool(b)
	case U8:
		var u uint8
		if err := json.Unmarshal(env.Value, &u); err != nil {
			return err
		}
		*v = NewU8(u)
	case U16:
		var u uint16
		if err := json.Unmarshal(env.Value, &u); err != nil {
			return err
		}
		*v = NewU16(u)
	case U32:
		var u uint32
		if err := json.Unmarshal(env.Value, &u); err != nil {
			return err
		}
		*v = NewU32(u)
	case U64:
		var u uint64
		if err := json.Unmarshal(env.Value, &u); err != nil {
			return err
		}
		*v = NewU64(u)
	case I8:
		var i int8
		if err := json.Unmarshal(env.Value, &i); err != nil {
			return err
		}
		*v = NewI8(i)
	case I16:
		var i int16
		if err := json.Unmarshal(env.Value, &i); err != nil {
			return err
		}
		*v = NewI16(i)
	case I32:
		var i int32
		if err := json.Unmarshal(env.Value, &i); err != nil {
			return err
		}
		*v = NewI32(i)
	case I64:
		var i int64
		if err := json.Unmarshal(env.Value, &i); err != nil {
			return err
		}
		*v = NewI64(i)
	case F32:
		var f float32
		if err := json.Unmarshal(env.Value, &f); err != nil {
			return err
		}
		*v = NewF32(f)
	case F64:
		var f float64
		if err := json.Unmarshal(env.Value, &f); err != nil {
			return err
		}
		*v = NewF64(f)
	case String:
		var s string
		if err := json.Unmarshal(env.Value, &s); err != nil {
			return err
		}
		*v = NewString(s)
	case Date:
		var s string
		if err := json.Unmarshal(env.Value, &s); err != nil {
			return err
		}
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return err
		}
		*v = NewDate(t)
	case Time:
		var s string
		if err := json.Unmarshal(env.Value, &s); err != nil {
			return err
		}
		t, err := time.Parse("15:04:05.999999999", s)
		if err != nil {
			return err
		}
		*v = NewTime(t)
	case DateTime:
		var s string
		if err := json.Unmarshal(env.Value, &s); err != nil {
			return err
		}
		t, err := time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return err
		}
		*v = NewDateTime(t)
	case Decimal:
		var s string
		if err := json.Unmarshal(env.Value, &s); err != nil {
			return err
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return err
		}
		*v = NewDecimal(d)
	case Uuid:
		var s string
		if err := json.Unmarshal(env.Value, &s); err != nil {
			return err
		}
		id, err := uuid.Parse(s)
		if err != nil {
			return err
		}
		*v = NewUuid(id)
	case Bytes:
		var b []byte
		if err := json.Unmarshal(env.Value, &b); err != nil {
			return err
		}
		*v = NewBytes(b)
	default:
		return fmt.Errorf("value: unsupported json type tag %q", env.Type)
	}
	return nil
}

// MarshalJSON implements json.Marshaler: a ValueType serializes as its bare
// string tag ("Bool", "I64", "null", ...).
func (t ValueType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *ValueType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseValueType(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// ParseValueType resolves a ValueType's bare string tag back to its value.
func ParseValueType(s string) (ValueType, error) {
	switch s {
	case "null", "Null", "":
		return Null, nil
	case "Bool":
		return Bool, nil
	case "U8":
		return U8, nil
	case "U16":
		return U16, nil
	case "U32":
		return U32, nil
	case "U64":
		return U64, nil
	case "I8":
		return I8, nil
	case "I16":
		return I16, nil
	case "I32":
		return I32, nil
	case "I64":
		return I64, nil
	case "F32":
		return F32, nil
	case "F64":
		return F64, nil
	case "String":
		return String, nil
	case "Date":
		return Date, nil
	case "Time":
		return Time, nil
	case "DateTime":
		return DateTime, nil
	case "Decimal":
		return Decimal, nil
	case "Uuid":
		return Uuid, nil
	case "Bytes":
		return Bytes, nil
	default:
		return Null, fmt.Errorf("value: unknown type tag %q", s)
	}
}
