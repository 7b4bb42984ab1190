package table_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jacobbishopxy/fabrix/ferror"
	"github.com/jacobbishopxy/fabrix/series"
	"github.com/jacobbishopxy/fabrix/table"
	"github.com/jacobbishopxy/fabrix/value"
)

func mustSeries(t *testing.T, name string, vs ...value.Value) *series.Series {
	t.Helper()
	s, err := series.FromValues(name, vs, true)
	require.NoError(t, err)
	return s
}

func TestFromSeriesInvariants(t *testing.T) {
	a := mustSeries(t, "id", value.NewI64(1), value.NewI64(2), value.NewI64(3))
	b := mustSeries(t, "name", value.NewString("a"), value.NewString("b"), value.NewString("c"))
	f, err := table.FromSeries([]*series.Series{a, b}, table.IndexByName("id"))
	require.NoError(t, err)
	assert.Equal(t, 3, f.Height())
	assert.Equal(t, 2, f.Width())
	require.NotNil(t, f.IndexTag())
	assert.Equal(t, 0, f.IndexTag().Loc)
}

func TestFromSeriesHeightMismatch(t *testing.T) {
	a := mustSeries(t, "id", value.NewI64(1), value.NewI64(2))
	b := mustSeries(t, "name", value.NewString("a"))
	_, err := table.FromSeriesNoIndex([]*series.Series{a, b})
	assert.Error(t, err)
}

func TestFromSeriesNameConflict(t *testing.T) {
	a := mustSeries(t, "id", value.NewI64(1))
	b := mustSeries(t, "id", value.NewI64(2))
	_, err := table.FromSeriesNoIndex([]*series.Series{a, b})
	assert.Error(t, err)
}

func TestVConcat(t *testing.T) {
	a1 := mustSeries(t, "a", value.NewI64(1), value.NewI64(2))
	b1 := mustSeries(t, "b", value.NewString("x"), value.NewString("y"))
	f1, err := table.FromSeriesNoIndex([]*series.Series{a1, b1})
	require.NoError(t, err)

	a2 := mustSeries(t, "a", value.NewI64(3))
	b2 := mustSeries(t, "b", value.NewString("z"))
	f2, err := table.FromSeriesNoIndex([]*series.Series{a2, b2})
	require.NoError(t, err)

	require.NoError(t, f1.VConcat(f2))
	assert.Equal(t, 3, f1.Height())
	col, _ := f1.Column("a")
	v2, _ := col.Get(2)
	assert.True(t, v2.Equal(value.NewI64(3)))
}

func TestGetRowRemoveRowIndexNotFound(t *testing.T) {
	a := mustSeries(t, "id", value.NewI64(1))
	f, err := table.FromSeriesNoIndex([]*series.Series{a})
	require.NoError(t, err)
	_, err = f.GetRow(value.NewI64(1))
	assert.ErrorIs(t, err, ferror.ErrIndexNotFound)
}

func TestPopupRowsByIdxIsUpsertBasis(t *testing.T) {
	id := mustSeries(t, "id", value.NewI64(1), value.NewI64(2), value.NewI64(3))
	val := mustSeries(t, "val", value.NewString("a"), value.NewString("b"), value.NewString("c"))
	f, err := table.FromSeries([]*series.Series{id, val}, table.IndexByName("id"))
	require.NoError(t, err)

	popped, err := f.PopupRowsByIdx([]int{1})
	require.NoError(t, err)
	assert.Equal(t, 1, popped.Height())
	assert.Equal(t, 2, f.Height())

	require.NoError(t, f.VConcat(popped))
	assert.Equal(t, 3, f.Height())
}

func TestColumnJSONRoundTrip(t *testing.T) {
	id := mustSeries(t, "id", value.NewI64(1), value.NewI64(2))
	name := mustSeries(t, "name", value.NewString("a"), value.NewString("b"))
	f, err := table.FromSeries([]*series.Series{id, name}, table.IndexByName("id"))
	require.NoError(t, err)

	b, err := f.MarshalColumnJSON()
	require.NoError(t, err)

	back, err := table.UnmarshalColumnJSON(b)
	require.NoError(t, err)
	assert.Equal(t, f.Height(), back.Height())
	assert.Equal(t, f.Width(), back.Width())
	require.NotNil(t, back.IndexTag())
	assert.Equal(t, "id", back.IndexTag().Name)
}
