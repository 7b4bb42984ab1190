package series_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jacobbishopxy/fabrix/series"
	"github.com/jacobbishopxy/fabrix/value"
)

func TestFromValuesHomogeneous(t *testing.T) {
	s, err := series.FromValues("a", []value.Value{value.NewI64(1), value.NewI64(2), value.NewI64(3)}, true)
	require.NoError(t, err)
	assert.Equal(t, value.I64, s.Dtype())
	assert.Equal(t, 3, s.Len())
	assert.False(t, s.HasNull())
}

func TestFromValuesMixedDtypeFails(t *testing.T) {
	_, err := series.FromValues("a", []value.Value{value.NewI64(1), value.NewString("x")}, true)
	assert.Error(t, err)
}

func TestFromValuesAllNull(t *testing.T) {
	s, err := series.FromValues("a", []value.Value{value.NewNull(), value.NewNull()}, true)
	require.NoError(t, err)
	assert.Equal(t, value.Null, s.Dtype())
	assert.True(t, s.HasNull())
}

func TestGetOutOfBounds(t *testing.T) {
	s, _ := series.FromValues("a", []value.Value{value.NewI64(1)}, true)
	_, err := s.Get(5)
	assert.Error(t, err)
}

func TestTakeAndFindIndex(t *testing.T) {
	s, _ := series.FromValues("a", []value.Value{value.NewI64(10), value.NewI64(20), value.NewI64(30)}, true)
	taken, err := s.Take([]int{2, 0})
	require.NoError(t, err)
	v0, _ := taken.Get(0)
	v1, _ := taken.Get(1)
	assert.True(t, v0.Equal(value.NewI64(30)))
	assert.True(t, v1.Equal(value.NewI64(10)))

	idx, ok := s.FindIndex(value.NewI64(20))
	require.True(t, ok)
	assert.Equal(t, 1, idx)
}

func TestInsertRemovePop(t *testing.T) {
	s, _ := series.FromValues("a", []value.Value{value.NewI64(1), value.NewI64(3)}, true)
	require.NoError(t, s.Insert(1, value.NewI64(2)))
	assert.Equal(t, 3, s.Len())
	v1, _ := s.Get(1)
	assert.True(t, v1.Equal(value.NewI64(2)))

	popped, err := s.Pop()
	require.NoError(t, err)
	assert.True(t, popped.Equal(value.NewI64(3)))
	assert.Equal(t, 2, s.Len())

	require.NoError(t, s.Remove(0))
	assert.Equal(t, 1, s.Len())
}

func TestConcatDtypeMismatch(t *testing.T) {
	a, _ := series.FromValues("a", []value.Value{value.NewI64(1)}, true)
	b, _ := series.FromValues("a", []value.Value{value.NewString("x")}, true)
	assert.Error(t, a.Concat(b))
}

func TestSplitConcatIsIdentity(t *testing.T) {
	orig, _ := series.FromValues("a", []value.Value{value.NewI64(1), value.NewI64(2), value.NewI64(3), value.NewI64(4)}, true)
	left, right, err := orig.Split(2)
	require.NoError(t, err)
	require.NoError(t, left.Concat(right))
	require.Equal(t, orig.Len(), left.Len())
	for i := 0; i < orig.Len(); i++ {
		a, _ := orig.Get(i)
		b, _ := left.Get(i)
		assert.True(t, a.Equal(b))
	}
}

func TestSliceSaturates(t *testing.T) {
	s, _ := series.FromValues("a", []value.Value{value.NewI64(1), value.NewI64(2), value.NewI64(3)}, true)
	out := s.Slice(1, 100)
	assert.Equal(t, 2, out.Len())

	out2 := s.Slice(-1, 1)
	v, _ := out2.Get(0)
	assert.True(t, v.Equal(value.NewI64(3)))
}

func TestIterIsBoundedSinglePass(t *testing.T) {
	s, _ := series.FromValues("a", []value.Value{value.NewI64(1), value.NewI64(2)}, true)
	it := s.Iter()
	var seen []value.Value
	for {
		v, ok := it.Next()
		if !ok {
			break
		}
		seen = append(seen, v)
	}
	assert.Len(t, seen, 2)
	_, ok := it.Next()
	assert.False(t, ok)
}

func TestFromIntegerAndRange(t *testing.T) {
	s := series.FromInteger(3)
	assert.Equal(t, 3, s.Len())
	v2, _ := s.Get(2)
	assert.True(t, v2.Equal(value.NewU64(2)))

	r := series.FromRange(5, 8)
	assert.Equal(t, 3, r.Len())
	v0, _ := r.Get(0)
	assert.True(t, v0.Equal(value.NewI64(5)))
}
