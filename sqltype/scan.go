package sqltype

import (
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jacobbishopxy/fabrix/ferror"
	"github.com/jacobbishopxy/fabrix/value"
)

// scanToValue converts a database/sql driver-native scan result (the
// concrete types vary per driver: []byte vs string, int64 vs uint64,
// time.Time vs string) into a value.Value of the resolved dtype.
func scanToValue(raw any, dtype value.ValueType) (value.Value, error) {
	if raw == nil {
		return value.NewNull(), nil
	}
	switch dtype {
	case value.Bool:
		switch r := raw.(type) {
		case bool:
			return value.NewBool(r), nil
		case int64:
			return value.NewBool(r != 0), nil
		case []byte:
			return value.NewBool(len(r) == 1 && r[0] != 0), nil
		}
	case value.U8, value.U16, value.U32, value.U64:
		if n, ok := toInt64(raw); ok {
			return numericFromInt(dtype, n), nil
		}
	case value.I8, value.I16, value.I32, value.I64:
		if n, ok := toInt64(raw); ok {
			return numericFromInt(dtype, n), nil
		}
	case value.F32, value.F64:
		switch r := raw.(type) {
		case float64:
			if dtype == value.F32 {
				return value.NewF32(float32(r)), nil
			}
			return value.NewF64(r), nil
		case []byte:
			d, err := decimal.NewFromString(string(r))
			if err != nil {
				return value.Value{}, ferror.Wrap("scan float", err)
			}
			f, _ := d.Float64()
			if dtype == value.F32 {
				return value.NewF32(float32(f)), nil
			}
			return value.NewF64(f), nil
		}
	case value.String:
		switch r := raw.(type) {
		case string:
			return value.NewString(r), nil
		case []byte:
			return value.NewString(string(r)), nil
		}
	case value.Date, value.Time, value.DateTime:
		switch r := raw.(type) {
		case time.Time:
			return wrapTime(dtype, r), nil
		case []byte:
			t, err := time.Parse(time.RFC3339, string(r))
			if err != nil {
				t, err = time.Parse("2006-01-02 15:04:05", string(r))
				if err != nil {
					return value.Value{}, ferror.Wrap("scan temporal", err)
				}
			}
			return wrapTime(dtype, t), nil
		case string:
			t, err := time.Parse(time.RFC3339, r)
			if err != nil {
				return value.Value{}, ferror.Wrap("scan temporal", err)
			}
			return wrapTime(dtype, t), nil
		}
	case value.Decimal:
		switch r := raw.(type) {
		case []byte:
			d, err := decimal.NewFromString(string(r))
			if err != nil {
				return value.Value{}, ferror.Wrap("scan decimal", err)
			}
			return value.NewDecimal(d), nil
		case string:
			d, err := decimal.NewFromString(r)
			if err != nil {
				return value.Value{}, ferror.Wrap("scan decimal", err)
			}
			return value.NewDecimal(d), nil
		}
	case value.Uuid:
		switch r := raw.(type) {
		case []byte:
			// MySQL's BINARY(16) reports the raw 16-byte UUID; other drivers
			// (e.g. some Postgres configurations) report the 36-char ASCII
			// form as a []byte instead of a string.
			if len(r) == 16 {
				id, err := uuid.FromBytes(r)
				if err != nil {
					return value.Value{}, ferror.Wrap("scan uuid", err)
				}
				return value.NewUuid(id), nil
			}
			id, err := uuid.ParseBytes(r)
			if err != nil {
				return value.Value{}, ferror.Wrap("scan uuid", err)
			}
			return value.NewUuid(id), nil
		case string:
			id, err := uuid.Parse(r)
			if err != nil {
				return value.Value{}, ferror.Wrap("scan uuid", err)
			}
			return value.NewUuid(id), nil
		}
	case value.Bytes:
		if b, ok := raw.([]byte); ok {
			cp := append([]byte(nil), b...)
			return value.NewBytes(cp), nil
		}
	}
	return value.Value{}, ferror.NewInvalidType("cannot scan value into resolved dtype " + dtype.String())
}

func toInt64(raw any) (int64, bool) {
	switch r := raw.(type) {
	case int64:
		return r, true
	case int:
		return int64(r), true
	case []byte:
		n, err := strconv.ParseInt(string(r), 10, 64)
		return n, err == nil
	}
	return 0, false
}

func numericFromInt(dtype value.ValueType, n int64) value.Value {
	switch dtype {
	case value.U8:
		return value.NewU8(uint8(n))
	case value.U16:
		return value.NewU16(uint16(n))
	case value.U32:
		return value.NewU32(uint32(n))
	case value.U64:
		return value.NewU64(uint64(n))
	case value.I8:
		return value.NewI8(int8(n))
	case value.I16:
		return value.NewI16(int16(n))
	case value.I32:
		return value.NewI32(int32(n))
	default:
		return value.NewI64(n)
	}
}

func wrapTime(dtype value.ValueType, t time.Time) value.Value {
	switch dtype {
	case value.Date:
		return value.NewDate(t)
	case value.Time:
		return value.NewTime(t)
	default:
		return value.NewDateTime(t)
	}
}
