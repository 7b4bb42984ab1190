package sqlexec_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jacobbishopxy/fabrix/series"
	"github.com/jacobbishopxy/fabrix/sqlast"
	"github.com/jacobbishopxy/fabrix/sqlbuilder"
	"github.com/jacobbishopxy/fabrix/sqlexec"
	"github.com/jacobbishopxy/fabrix/table"
	"github.com/jacobbishopxy/fabrix/value"
)

func newSqliteExecutor(t *testing.T) *sqlexec.Executor {
	t.Helper()
	exec, err := sqlexec.NewExecutor(sqlbuilder.NewSqlite(), ":memory:")
	require.NoError(t, err)
	require.NoError(t, exec.Connect(context.Background()))
	t.Cleanup(func() { exec.Disconnect() })
	return exec
}

func sampleFabrix(t *testing.T) *table.Fabrix {
	t.Helper()
	id, err := series.FromValues("id", []value.Value{value.NewI64(1), value.NewI64(2)}, true)
	require.NoError(t, err)
	name, err := series.FromValues("name", []value.Value{value.NewString("a"), value.NewString("b")}, true)
	require.NoError(t, err)
	f, err := table.FromSeries([]*series.Series{id, name}, table.IndexByName("id"))
	require.NoError(t, err)
	return f
}

func TestSaveFailIfExistsThenAppend(t *testing.T) {
	ctx := context.Background()
	exec := newSqliteExecutor(t)
	f := sampleFabrix(t)

	n, err := exec.Save(ctx, "people", f, sqlast.FailIfExists)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	_, err = exec.Save(ctx, "people", f, sqlast.FailIfExists)
	assert.Error(t, err)

	n, err = exec.Save(ctx, "people", f, sqlast.Append)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	names, err := exec.ListTables(ctx)
	require.NoError(t, err)
	assert.Contains(t, names, "people")
}

func TestSaveReplaceAndSelectRoundTrip(t *testing.T) {
	ctx := context.Background()
	exec := newSqliteExecutor(t)
	f := sampleFabrix(t)

	_, err := exec.Save(ctx, "people", f, sqlast.FailIfExists)
	require.NoError(t, err)
	_, err = exec.Save(ctx, "people", f, sqlast.Replace)
	require.NoError(t, err)

	out, err := exec.Select(ctx, sqlast.Select{Table: "people"}, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, out.Height())
}

func TestUpsertUpdatesExistingInsertsNew(t *testing.T) {
	ctx := context.Background()
	exec := newSqliteExecutor(t)
	f := sampleFabrix(t)
	_, err := exec.Save(ctx, "people", f, sqlast.FailIfExists)
	require.NoError(t, err)

	id, err := series.FromValues("id", []value.Value{value.NewI64(2), value.NewI64(3)}, true)
	require.NoError(t, err)
	name, err := series.FromValues("name", []value.Value{value.NewString("bb"), value.NewString("c")}, true)
	require.NoError(t, err)
	upsertData, err := table.FromSeries([]*series.Series{id, name}, table.IndexByName("id"))
	require.NoError(t, err)

	affected, err := exec.Save(ctx, "people", upsertData, sqlast.Upsert)
	require.NoError(t, err)
	assert.Equal(t, int64(2), affected)

	out, err := exec.Select(ctx, sqlast.Select{Table: "people"}, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, out.Height())
}
