package sqlast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jacobbishopxy/fabrix/sqlast"
	"github.com/jacobbishopxy/fabrix/value"
)

func TestFilterBuilderSimple(t *testing.T) {
	expr, err := sqlast.NewFilterBuilder().
		Where(sqlast.Condition{Column: "age", Equation: sqlast.EqGreater(value.NewI32(18))}).
		And().
		Where(sqlast.Condition{Column: "name", Equation: sqlast.EqLike("A%")}).
		Build()
	require.NoError(t, err)
	nested := expr.Nested()
	require.Len(t, nested, 3)
	assert.Equal(t, sqlast.ExprSimple, nested[0].Kind())
	assert.Equal(t, sqlast.ExprConjunction, nested[1].Kind())
	assert.Equal(t, sqlast.And, nested[1].ConjunctionKind())
	assert.Equal(t, sqlast.ExprSimple, nested[2].Kind())
}

func TestFilterBuilderNot(t *testing.T) {
	expr, err := sqlast.NewFilterBuilder().
		Not().
		Where(sqlast.Condition{Column: "active", Equation: sqlast.EqEqual(value.NewBool(false))}).
		Build()
	require.NoError(t, err)
	nested := expr.Nested()
	require.Len(t, nested, 2)
	assert.Equal(t, sqlast.ExprOpposition, nested[0].Kind())
}

func TestFilterBuilderGroup(t *testing.T) {
	expr, err := sqlast.NewFilterBuilder().
		Where(sqlast.Condition{Column: "a", Equation: sqlast.EqEqual(value.NewI32(1))}).
		And().
		Group(func(g *sqlast.FilterBuilder) {
			g.Where(sqlast.Condition{Column: "b", Equation: sqlast.EqEqual(value.NewI32(2))}).
				Or().
				Where(sqlast.Condition{Column: "c", Equation: sqlast.EqEqual(value.NewI32(3))})
		}).
		Build()
	require.NoError(t, err)
	nested := expr.Nested()
	require.Len(t, nested, 3)
	assert.Equal(t, sqlast.ExprNest, nested[2].Kind())
	assert.Len(t, nested[2].Nested(), 3)
}

func TestFilterBuilderIllegalDoubleCondition(t *testing.T) {
	_, err := sqlast.NewFilterBuilder().
		Where(sqlast.Condition{Column: "a", Equation: sqlast.EqEqual(value.NewI32(1))}).
		Where(sqlast.Condition{Column: "b", Equation: sqlast.EqEqual(value.NewI32(2))}).
		Build()
	assert.Error(t, err)
}

func TestFilterBuilderIllegalDanglingConjunction(t *testing.T) {
	_, err := sqlast.NewFilterBuilder().
		Where(sqlast.Condition{Column: "a", Equation: sqlast.EqEqual(value.NewI32(1))}).
		And().
		Build()
	assert.Error(t, err)
}

func TestFilterBuilderIllegalNotAfterTerm(t *testing.T) {
	_, err := sqlast.NewFilterBuilder().
		Where(sqlast.Condition{Column: "a", Equation: sqlast.EqEqual(value.NewI32(1))}).
		Not().
		Build()
	assert.Error(t, err)
}
