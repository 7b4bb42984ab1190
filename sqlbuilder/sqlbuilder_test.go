package sqlbuilder_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jacobbishopxy/fabrix/sqlast"
	"github.com/jacobbishopxy/fabrix/sqlbuilder"
	"github.com/jacobbishopxy/fabrix/value"
)

func TestCreateTableThreeDialects(t *testing.T) {
	fields := []sqlbuilder.ColumnDef{
		{Name: "name", Dtype: value.String, Nullable: false},
		{Name: "age", Dtype: value.I32, Nullable: true},
	}
	idx := &sqlast.IndexOption{Name: "id", Type: sqlast.IndexBigInt}

	mysql := sqlbuilder.NewMysql().CreateTable("users", fields, idx)
	assert.Contains(t, mysql, "`users`")
	assert.Contains(t, mysql, "AUTO_INCREMENT")

	pg := sqlbuilder.NewPostgres().CreateTable("users", fields, idx)
	assert.Contains(t, pg, `"users"`)
	assert.Contains(t, pg, "SERIAL")

	lite := sqlbuilder.NewSqlite().CreateTable("users", fields, idx)
	assert.Contains(t, lite, `"users"`)
	assert.Contains(t, lite, "INTEGER")
}

func TestForeignKeyUnimplementedOnSqlite(t *testing.T) {
	_, err := sqlbuilder.NewSqlite().CreateForeignKey("orders", "fk_user", "user_id", "users", "id")
	assert.ErrorIs(t, err, sqlbuilder.ErrUnimplemented)

	stmt, err := sqlbuilder.NewMysql().CreateForeignKey("orders", "fk_user", "user_id", "users", "id")
	require.NoError(t, err)
	assert.Contains(t, stmt, "FOREIGN KEY")
}

func TestMysqlNativeTypesFollowWireEncoding(t *testing.T) {
	fields := []sqlbuilder.ColumnDef{
		{Name: "a", Dtype: value.String},
		{Name: "b", Dtype: value.U8},
		{Name: "c", Dtype: value.U16},
		{Name: "d", Dtype: value.U32},
		{Name: "e", Dtype: value.I8},
		{Name: "f", Dtype: value.I16},
		{Name: "g", Dtype: value.Uuid},
		{Name: "h", Dtype: value.Bytes},
	}
	stmt := sqlbuilder.NewMysql().CreateTable("t", fields, nil)
	assert.Contains(t, stmt, "`a` varchar(255)")
	assert.Contains(t, stmt, "`b` tinyint unsigned")
	assert.Contains(t, stmt, "`c` smallint unsigned")
	assert.Contains(t, stmt, "`d` int unsigned")
	assert.Contains(t, stmt, "`e` tinyint")
	assert.Contains(t, stmt, "`f` smallint")
	assert.Contains(t, stmt, "`g` binary(16)")
	assert.Contains(t, stmt, "`h` varbinary(255)")
}

func TestInsertRendersMultiRowLiteralValues(t *testing.T) {
	stmt, err := sqlbuilder.NewPostgres().Insert(
		"t",
		[]string{"a", "b"},
		[][]value.Value{
			{value.NewI32(1), value.NewString("x")},
			{value.NewI32(2), value.NewString("y")},
		},
	)
	require.NoError(t, err)
	assert.Equal(t, `INSERT INTO "t" ("a", "b") VALUES (1, 'x'), (2, 'y')`, stmt)
}

func TestInsertEscapesEmbeddedQuote(t *testing.T) {
	stmt, err := sqlbuilder.NewMysql().Insert(
		"t",
		[]string{"name"},
		[][]value.Value{{value.NewString("o'brien")}},
	)
	require.NoError(t, err)
	assert.Equal(t, "INSERT INTO `t` (`name`) VALUES ('o''brien')", stmt)
}

func TestUpdateWithoutIndexFallsBack(t *testing.T) {
	_, err := sqlbuilder.NewMysql().Update("t", []string{"a"}, [][]value.Value{{value.NewI32(1)}}, "")
	assert.ErrorIs(t, err, sqlbuilder.ErrNoIndexTag)
}

func TestUpdateRendersOneStatementPerRow(t *testing.T) {
	script, err := sqlbuilder.NewSqlite().Update(
		"t",
		[]string{"id", "name"},
		[][]value.Value{
			{value.NewI32(1), value.NewString("a")},
			{value.NewI32(2), value.NewString("b")},
		},
		"id",
	)
	require.NoError(t, err)
	assert.Equal(t, "UPDATE \"t\" SET \"name\" = 'a' WHERE \"id\" = 1;\nUPDATE \"t\" SET \"name\" = 'b' WHERE \"id\" = 2;\n", script)
}

func TestSelectWithFilterRendersLiteralWhere(t *testing.T) {
	expr, err := sqlast.NewFilterBuilder().
		Where(sqlast.Condition{Column: "age", Equation: sqlast.EqGreaterEqual(value.NewI32(21))}).
		And().
		Not().
		Where(sqlast.Condition{Column: "banned", Equation: sqlast.EqEqual(value.NewBool(true))}).
		Build()
	require.NoError(t, err)

	sel := sqlast.Select{Table: "users", Filter: &expr}
	stmt, err := sqlbuilder.NewMysql().Select(sel)
	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM `users` WHERE `age` >= 21 AND NOT (`banned` = 1)", stmt)
}

func TestSelectOrderLimitOffset(t *testing.T) {
	limit := uint64(10)
	offset := uint64(5)
	sel := sqlast.Select{
		Table: "users",
		Order: []sqlast.OrderBy{{Column: "name"}, {Column: "age", Descending: true}},
		Limit: &limit, Offset: &offset,
	}
	stmt, err := sqlbuilder.NewPostgres().Select(sel)
	require.NoError(t, err)
	assert.Equal(t, `SELECT * FROM "users" ORDER BY "name" ASC, "age" DESC LIMIT 10 OFFSET 5`, stmt)
}

func TestDeleteWithBetweenAndIn(t *testing.T) {
	expr, err := sqlast.NewFilterBuilder().
		Where(sqlast.Condition{Column: "id", Equation: sqlast.EqIn([]value.Value{value.NewI32(1), value.NewI32(2)})}).
		Or().
		Where(sqlast.Condition{Column: "score", Equation: sqlast.EqBetween(value.NewI32(0), value.NewI32(10))}).
		Build()
	require.NoError(t, err)

	del := sqlast.Delete{Table: "t", Filter: &expr}
	stmt, err := sqlbuilder.NewSqlite().Delete(del)
	require.NoError(t, err)
	assert.Equal(t, `DELETE FROM "t" WHERE "id" IN (1, 2) OR "score" BETWEEN 0 AND 10`, stmt)
}

// TestDeleteWithOrAndNestedAndMatchesSpecExample reproduces spec.md §8
// scenario 3's worked example verbatim: filtering on (ord = 15) OR
// (names = 'X' AND val >= 10.0) must render with every value baked into
// the statement text, not as placeholders plus bind args.
func TestDeleteWithOrAndNestedAndMatchesSpecExample(t *testing.T) {
	expr, err := sqlast.NewFilterBuilder().
		Where(sqlast.Condition{Column: "ord", Equation: sqlast.EqEqual(value.NewI32(15))}).
		Or().
		Group(func(g *sqlast.FilterBuilder) {
			g.Where(sqlast.Condition{Column: "names", Equation: sqlast.EqEqual(value.NewString("X"))}).
				And().
				Where(sqlast.Condition{Column: "val", Equation: sqlast.EqGreaterEqual(value.NewF64(10.0))})
		}).
		Build()
	require.NoError(t, err)

	del := sqlast.Delete{Table: "test", Filter: &expr}
	stmt, err := sqlbuilder.NewMysql().Delete(del)
	require.NoError(t, err)
	assert.Equal(t, "DELETE FROM `test` WHERE `ord` = 15 OR (`names` = 'X' AND `val` >= 10)", stmt)
}

func TestUuidLiteralUsesUnhexOnMysql(t *testing.T) {
	id := value.NewUuid(uuid.MustParse("123e4567-e89b-12d3-a456-426614174000"))
	stmt, err := sqlbuilder.NewMysql().Insert("t", []string{"id"}, [][]value.Value{{id}})
	require.NoError(t, err)
	assert.Equal(t, "INSERT INTO `t` (`id`) VALUES (UNHEX('123e4567e89b12d3a456426614174000'))", stmt)
}
