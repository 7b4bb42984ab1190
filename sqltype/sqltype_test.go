package sqltype_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jacobbishopxy/fabrix/sqltype"
	"github.com/jacobbishopxy/fabrix/value"
)

func TestResolveTypeStripsPrecision(t *testing.T) {
	assert.Equal(t, value.Decimal, sqltype.ResolveType(sqltype.Mysql, "decimal(38,18)"))
	assert.Equal(t, value.String, sqltype.ResolveType(sqltype.Postgres, "character varying"))
	assert.Equal(t, value.I64, sqltype.ResolveType(sqltype.Sqlite, "INTEGER"))
}

func TestRowProcessorScansMixedDriverTypes(t *testing.T) {
	p := sqltype.NewRowProcessor(sqltype.Mysql, []string{"id", "name", "active"}, []string{"bigint", "varchar(255)", "tinyint"})
	dest := p.ScanTargets()
	*(dest[0].(*any)) = int64(42)
	*(dest[1].(*any)) = []byte("alice")
	*(dest[2].(*any)) = int64(1)

	values, err := p.ProcessRow(dest)
	require.NoError(t, err)
	require.Len(t, values, 3)
	assert.True(t, values[0].Equal(value.NewI64(42)))
	assert.True(t, values[1].Equal(value.NewString("alice")))
	assert.True(t, values[2].Equal(value.NewBool(true)))
}

func TestRowProcessorScansNull(t *testing.T) {
	p := sqltype.NewRowProcessor(sqltype.Postgres, []string{"note"}, []string{"text"})
	dest := p.ScanTargets()
	values, err := p.ProcessRow(dest)
	require.NoError(t, err)
	assert.True(t, values[0].IsNull())
}
