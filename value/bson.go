package value

import (
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jacobbishopxy/fabrix/ferror"
)

// ToBSON maps v to its BSON equivalent, per spec §4.1: U64, Date, Time and
// Decimal are rejected at the boundary; everything else maps onto the
// matching BSON representation, with Bytes carrying no subtype of its own
// and so always encoded as generic (subtype 0x00) binary. DateTime
// serializes as BSON milliseconds (primitive.DateTime).
func (v Value) ToBSON() (any, error) {
	switch v.kind {
	case Null:
		return nil, nil
	case Bool:
		return v.b, nil
	case U8:
		return int32(v.u), nil
	case U16:
		return int32(v.u), nil
	case U32:
		return int64(v.u), nil
	case U64:
		return nil, ferror.NewInvalidArgument("U64 has no lossless BSON representation")
	case I8, I16, I32:
		return int32(v.i), nil
	case I64:
		return v.i, nil
	case F32:
		return float64(v.f), nil
	case F64:
		return v.f, nil
	case String:
		return v.s, nil
	case Date:
		return nil, ferror.NewInvalidArgument("Date has no native BSON representation")
	case Time:
		return nil, ferror.NewInvalidArgument("Time has no native BSON representation")
	case DateTime:
		return primitive.NewDateTimeFromTime(v.t), nil
	case Decimal:
		return nil, ferror.NewInvalidArgument("Decimal has no native BSON representation")
	case Uuid:
		b, err := v.id.MarshalBinary()
		if err != nil {
			return nil, err
		}
		return primitive.Binary{Subtype: 0x04, Data: b}, nil
	case Bytes:
		return primitive.Binary{Subtype: 0x00, Data: v.by}, nil
	default:
		return nil, ferror.NewInvalidType("unknown value kind")
	}
}

// FromBSONTimestamp decodes a raw BSON Timestamp into a DateTime Value using
// (time_high << 32) | increment_low, little-endian, as a signed 64-bit
// millisecond count (spec §4.1).
func FromBSONTimestamp(ts primitive.Timestamp) Value {
	millis := int64(uint64(ts.T)<<32 | uint64(ts.I))
	return NewDateTime(time.UnixMilli(millis).UTC())
}

// FromBSON maps a decoded BSON value back to a Value, given the target
// ValueType the caller expects (needed because BSON's own type system is
// coarser than fabrix's: BSON int32 could be U8/U16/I8/.../I32 on the Go
// side).
func FromBSON(raw any, target ValueType) (Value, error) {
	if raw == nil {
		return NewNull(), nil
	}
	switch r := raw.(type) {
	case bool:
		return NewBool(r), nil
	case int32:
		return Value{}.fromIntLike(int64(r), target), nil
	case int64:
		return Value{}.fromIntLike(r, target), nil
	case float64:
		return NewF64(r).Cast(target), nil
	case string:
		return NewString(r).Cast(target), nil
	case primitive.DateTime:
		return NewDateTime(r.Time().UTC()), nil
	case primitive.Binary:
		return NewBytes(r.Data), nil
	case primitive.Timestamp:
		return FromBSONTimestamp(r), nil
	case decimal.Decimal:
		return NewDecimal(r), nil
	default:
		return NewNull(), ferror.NewInvalidType("unsupported bson payload")
	}
}

// fromIntLike routes a decoded int through the correct constructor for target.
func (Value) fromIntLike(i int64, target ValueType) Value {
	switch target {
	case U8:
		return NewU8(uint8(i))
	case U16:
		return NewU16(uint16(i))
	case U32:
		return NewU32(uint32(i))
	case U64:
		return NewU64(uint64(i))
	case I8:
		return NewI8(int8(i))
	case I16:
		return NewI16(int16(i))
	case I32:
		return NewI32(int32(i))
	case I64:
		return NewI64(i)
	default:
		return NewI64(i)
	}
}
