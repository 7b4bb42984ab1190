//go:build integration

// Integration tests against real MySQL/Postgres via testcontainers-go,
// grounded on Pieczasz-smf and zoravur-postgres-spreadsheet-view's use of
// the testcontainers mysql/postgres modules. Gated behind the "integration"
// build tag (spec §8 scenarios 1 and 4 exercise real drivers, not sqlite's
// in-process engine) since they require a working Docker daemon.
package sqlexec_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	tcmysql "github.com/testcontainers/testcontainers-go/modules/mysql"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/jacobbishopxy/fabrix/series"
	"github.com/jacobbishopxy/fabrix/sqlast"
	"github.com/jacobbishopxy/fabrix/sqlbuilder"
	"github.com/jacobbishopxy/fabrix/sqlexec"
	"github.com/jacobbishopxy/fabrix/table"
	"github.com/jacobbishopxy/fabrix/value"
)

func TestMysqlSaveAndSelectRoundTrip(t *testing.T) {
	ctx := context.Background()
	container, err := tcmysql.RunContainer(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { container.Terminate(ctx) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "3306/tcp")
	require.NoError(t, err)

	connString := fmt.Sprintf("mysql://root:test@%s:%s/test", host, port.Port())
	exec, err := sqlexec.NewExecutor(sqlbuilder.NewMysql(), connString)
	require.NoError(t, err)
	require.NoError(t, exec.Connect(ctx))
	t.Cleanup(func() { exec.Disconnect() })

	id, err := series.FromValues("id", []value.Value{value.NewI64(1), value.NewI64(2)}, true)
	require.NoError(t, err)
	name, err := series.FromValues("name", []value.Value{value.NewString("a"), value.NewString("b")}, true)
	require.NoError(t, err)
	f, err := table.FromSeries([]*series.Series{id, name}, table.IndexByName("id"))
	require.NoError(t, err)

	_, err = exec.Save(ctx, "widgets", f, sqlast.FailIfExists)
	require.NoError(t, err)

	out, err := exec.Select(ctx, sqlast.Select{Table: "widgets"}, nil)
	require.NoError(t, err)
	require.Equal(t, 2, out.Height())
}

func TestPostgresSaveAndSelectRoundTrip(t *testing.T) {
	ctx := context.Background()
	container, err := tcpostgres.RunContainer(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { container.Terminate(ctx) })

	connString, err := container.ConnectionString(ctx)
	require.NoError(t, err)

	exec, err := sqlexec.NewExecutor(sqlbuilder.NewPostgres(), connString)
	require.NoError(t, err)
	require.NoError(t, exec.Connect(ctx))
	t.Cleanup(func() { exec.Disconnect() })

	id, err := series.FromValues("id", []value.Value{value.NewI64(1), value.NewI64(2)}, true)
	require.NoError(t, err)
	name, err := series.FromValues("name", []value.Value{value.NewString("a"), value.NewString("b")}, true)
	require.NoError(t, err)
	f, err := table.FromSeries([]*series.Series{id, name}, table.IndexByName("id"))
	require.NoError(t, err)

	_, err = exec.Save(ctx, "widgets", f, sqlast.FailIfExists)
	require.NoError(t, err)

	out, err := exec.Select(ctx, sqlast.Select{Table: "widgets"}, nil)
	require.NoError(t, err)
	require.Equal(t, 2, out.Height())
}
