package value_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jacobbishopxy/fabrix/value"
)

func TestTypeProjectionIsTotal(t *testing.T) {
	assert.Equal(t, value.I64, value.NewI64(5).Type())
	assert.Equal(t, value.Null, value.NewNull().Type())
}

func TestNullCastIsTotal(t *testing.T) {
	assert.True(t, value.NewNull().Cast(value.I64).IsNull())
	assert.True(t, value.NewI64(5).Cast(value.Null).IsNull())
}

func TestWideningIsTotal(t *testing.T) {
	v := value.NewU8(10).Cast(value.U64)
	require.Equal(t, value.U64, v.Type())
	assert.Equal(t, uint64(10), v.AsU64())
}

func TestNarrowingOverflowFailsToNull(t *testing.T) {
	v := value.NewI64(1000).Cast(value.U8)
	assert.True(t, v.IsNull())
}

func TestStringToNumeric(t *testing.T) {
	v := value.NewString("42").Cast(value.I64)
	require.Equal(t, value.I64, v.Type())
	assert.Equal(t, int64(42), v.AsI64())
}

func TestDateDateTimeRoundTrip(t *testing.T) {
	d := value.NewDate(time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC))
	dt := d.Cast(value.DateTime)
	require.Equal(t, value.DateTime, dt.Type())
	back := dt.Cast(value.Date)
	assert.True(t, back.Equal(d))
}

func TestBytesStringUTF8Validated(t *testing.T) {
	valid := value.NewBytes([]byte("hello"))
	s := valid.Cast(value.String)
	require.Equal(t, value.String, s.Type())
	assert.Equal(t, "hello", s.AsString())

	invalid := value.NewBytes([]byte{0xff, 0xfe, 0xfd})
	assert.True(t, invalid.Cast(value.String).IsNull())
}

func TestUnrelatedPairFailsToNull(t *testing.T) {
	v := value.NewBool(true).Cast(value.Uuid)
	assert.True(t, v.IsNull())
}

func TestJSONRoundTrip(t *testing.T) {
	for _, v := range []value.Value{
		value.NewNull(),
		value.NewBool(true),
		value.NewI64(-5),
		value.NewU64(5),
		value.NewF64(3.25),
		value.NewString("hi"),
		value.NewDate(time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC)),
	} {
		b, err := v.MarshalJSON()
		require.NoError(t, err)
		var out value.Value
		require.NoError(t, out.UnmarshalJSON(b))
		assert.True(t, v.Equal(out), "round trip of %v", v)
	}
}

func TestDecimalRoundTripsPrecision(t *testing.T) {
	v := value.NewString("123.456789012345678").Cast(value.Decimal)
	require.Equal(t, value.Decimal, v.Type())
	assert.Equal(t, "123.456789012345678", v.AsDecimal().String())
}
