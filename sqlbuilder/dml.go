package sqlbuilder

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jacobbishopxy/fabrix/ferror"
	"github.com/jacobbishopxy/fabrix/sqlast"
	"github.com/jacobbishopxy/fabrix/value"
)

// Insert renders a single multi-row INSERT statement, every value baked
// into the text as a literal (spec §4.4: builders return SQL text, never
// bind arguments). rows is row-major; each row must have len(columns)
// values, positionally aligned by caller convention.
func (d Dialect) Insert(table string, columns []string, rows [][]value.Value) (string, error) {
	if len(rows) == 0 {
		return "", ferror.NewInvalidArgument("insert requires at least one row")
	}
	quoted := make([]string, len(columns))
	for i, c := range columns {
		quoted[i] = d.quoteIdent(c)
	}
	groups := make([]string, len(rows))
	for ri, row := range rows {
		if len(columns) != len(row) {
			return "", ferror.NewLengthMismatch(len(columns), len(row))
		}
		lits := make([]string, len(row))
		for i, v := range row {
			lit, err := d.toSqlLiteral(v)
			if err != nil {
				return "", err
			}
			lits[i] = lit
		}
		groups[ri] = "(" + strings.Join(lits, ", ") + ")"
	}
	return fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES %s",
		d.quoteIdent(table), strings.Join(quoted, ", "), strings.Join(groups, ", "),
	), nil
}

// Update renders one `UPDATE ... SET ... WHERE idx = ival;` statement per
// row, all joined into a single script (spec §4.4), keyed by
// indexColumn/indexColumn's per-row value. If indexColumn is empty (the
// Fabrix carries no index tag), Update returns ErrNoIndexTag so the caller
// can fall back to Insert, per spec §4.6's Upsert-without-index-falls-
// back-to-insert rule.
var ErrNoIndexTag = ferror.NewInvalidArgument("update requires an index tag; fall back to insert")

func (d Dialect) Update(table string, columns []string, rows [][]value.Value, indexColumn string) (string, error) {
	if indexColumn == "" {
		return "", ErrNoIndexTag
	}
	if len(rows) == 0 {
		return "", ferror.NewInvalidArgument("update requires at least one row")
	}
	var sb strings.Builder
	for _, row := range rows {
		if len(columns) != len(row) {
			return "", ferror.NewLengthMismatch(len(columns), len(row))
		}
		var sets []string
		idxLit := ""
		for i, c := range columns {
			lit, err := d.toSqlLiteral(row[i])
			if err != nil {
				return "", err
			}
			if c == indexColumn {
				idxLit = lit
				continue
			}
			sets = append(sets, fmt.Sprintf("%s = %s", d.quoteIdent(c), lit))
		}
		fmt.Fprintf(
			&sb, "UPDATE %s SET %s WHERE %s = %s;\n",
			d.quoteIdent(table), strings.Join(sets, ", "), d.quoteIdent(indexColumn), idxLit,
		)
	}
	return sb.String(), nil
}

// Delete renders a DELETE statement from a sqlast.Delete shape, with any
// filter values baked into the WHERE clause as literals.
func (d Dialect) Delete(stmt sqlast.Delete) (string, error) {
	sql := fmt.Sprintf("DELETE FROM %s", d.quoteIdent(stmt.Table))
	if stmt.Filter == nil {
		return sql, nil
	}
	where, err := d.renderExpression(*stmt.Filter)
	if err != nil {
		return "", err
	}
	return sql + " WHERE " + where, nil
}

// Select renders a SELECT statement from a sqlast.Select shape, with any
// filter values baked into the WHERE clause as literals.
func (d Dialect) Select(stmt sqlast.Select) (string, error) {
	var cols []string
	if len(stmt.Columns) == 0 {
		cols = []string{"*"}
	} else {
		for _, c := range stmt.Columns {
			s := d.quoteIdent(c.Column)
			if c.Alias != "" {
				s += " AS " + d.quoteIdent(c.Alias)
			}
			cols = append(cols, s)
		}
	}
	sql := fmt.Sprintf("SELECT %s FROM %s", strings.Join(cols, ", "), d.quoteIdent(stmt.Table))
	if stmt.Filter != nil {
		where, err := d.renderExpression(*stmt.Filter)
		if err != nil {
			return "", err
		}
		sql += " WHERE " + where
	}
	if len(stmt.Order) > 0 {
		parts := make([]string, len(stmt.Order))
		for i, o := range stmt.Order {
			dir := "ASC"
			if o.Descending {
				dir = "DESC"
			}
			parts[i] = fmt.Sprintf("%s %s", d.quoteIdent(o.Column), dir)
		}
		sql += " ORDER BY " + strings.Join(parts, ", ")
	}
	if stmt.Limit != nil {
		sql += " LIMIT " + strconv.FormatUint(*stmt.Limit, 10)
	}
	if stmt.Offset != nil {
		sql += " OFFSET " + strconv.FormatUint(*stmt.Offset, 10)
	}
	return sql, nil
}

// renderExpression walks the Expression sequence produced by
// sqlast.FilterBuilder, emitting a WHERE fragment (only Nest groups are
// parenthesized, the top level is not) with every operand baked into
// the text as a literal. The walk tracks a
// pending negation and a pending conjunction keyword exactly as the
// grammar guarantees them to appear (Conjunction/Opposition always
// precede the term they modify).
func (d Dialect) renderExpression(expr sqlast.Expression) (string, error) {
	var sb strings.Builder
	nested := expr.Nested()
	pendingConj := ""
	negateNext := false

	for _, e := range nested {
		switch e.Kind() {
		case sqlast.ExprConjunction:
			if e.ConjunctionKind() == sqlast.And {
				pendingConj = " AND "
			} else {
				pendingConj = " OR "
			}
		case sqlast.ExprOpposition:
			negateNext = true
		case sqlast.ExprSimple, sqlast.ExprNest:
			frag, err := d.renderTerm(e)
			if err != nil {
				return "", err
			}
			if negateNext {
				frag = "NOT (" + frag + ")"
				negateNext = false
			}
			if sb.Len() > 0 {
				sb.WriteString(pendingConj)
			}
			sb.WriteString(frag)
		}
	}
	return sb.String(), nil
}

func (d Dialect) renderTerm(e sqlast.Expression) (string, error) {
	switch e.Kind() {
	case sqlast.ExprSimple:
		return d.renderCondition(e.Condition())
	case sqlast.ExprNest:
		inner, err := d.renderExpression(e)
		if err != nil {
			return "", err
		}
		return "(" + inner + ")", nil
	default:
		return "", ferror.NewInvalidArgument("unexpected expression kind in term position")
	}
}

func (d Dialect) renderCondition(c sqlast.Condition) (string, error) {
	col := d.quoteIdent(c.Column)
	eq := c.Equation
	switch eq.Kind() {
	case sqlast.Equal:
		v, err := d.toSqlLiteral(eq.Operand())
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s = %s", col, v), nil
	case sqlast.NotEqual:
		v, err := d.toSqlLiteral(eq.Operand())
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s != %s", col, v), nil
	case sqlast.Greater:
		v, err := d.toSqlLiteral(eq.Operand())
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s > %s", col, v), nil
	case sqlast.GreaterEqual:
		v, err := d.toSqlLiteral(eq.Operand())
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s >= %s", col, v), nil
	case sqlast.Less:
		v, err := d.toSqlLiteral(eq.Operand())
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s < %s", col, v), nil
	case sqlast.LessEqual:
		v, err := d.toSqlLiteral(eq.Operand())
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s <= %s", col, v), nil
	case sqlast.Like:
		return fmt.Sprintf("%s LIKE %s", col, quoteSqlString(eq.LikePattern())), nil
	case sqlast.In:
		vs := eq.Operands()
		lits := make([]string, len(vs))
		for i, v := range vs {
			lit, err := d.toSqlLiteral(v)
			if err != nil {
				return "", err
			}
			lits[i] = lit
		}
		return fmt.Sprintf("%s IN (%s)", col, strings.Join(lits, ", ")), nil
	case sqlast.Between:
		lo, hi := eq.BetweenBounds()
		loLit, err := d.toSqlLiteral(lo)
		if err != nil {
			return "", err
		}
		hiLit, err := d.toSqlLiteral(hi)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s BETWEEN %s AND %s", col, loLit, hiLit), nil
	case sqlast.NotEq:
		return fmt.Sprintf("%s IS NULL", col), nil
	default:
		return "", ferror.NewInvalidArgument("unsupported equation kind")
	}
}

// toSqlLiteral converts a value.Value into dialect-specific SQL text
// (try_from_value_to_svalue in the original implementation's naming, but
// rendering into the statement itself rather than a bind argument). Null
// maps to the SQL keyword NULL; every other variant is quoted/escaped as
// its dialect requires.
func (d Dialect) toSqlLiteral(v value.Value) (string, error) {
	switch v.Type() {
	case value.Null:
		return "NULL", nil
	case value.Bool:
		if v.AsBool() {
			return "1", nil
		}
		return "0", nil
	case value.U8:
		return strconv.FormatUint(uint64(v.AsU8()), 10), nil
	case value.U16:
		return strconv.FormatUint(uint64(v.AsU16()), 10), nil
	case value.U32:
		return strconv.FormatUint(uint64(v.AsU32()), 10), nil
	case value.U64:
		return strconv.FormatUint(v.AsU64(), 10), nil
	case value.I8:
		return strconv.FormatInt(int64(v.AsI8()), 10), nil
	case value.I16:
		return strconv.FormatInt(int64(v.AsI16()), 10), nil
	case value.I32:
		return strconv.FormatInt(int64(v.AsI32()), 10), nil
	case value.I64:
		return strconv.FormatInt(v.AsI64(), 10), nil
	case value.F32:
		return strconv.FormatFloat(float64(v.AsF32()), 'f', -1, 32), nil
	case value.F64:
		return strconv.FormatFloat(v.AsF64(), 'f', -1, 64), nil
	case value.String:
		return quoteSqlString(v.AsString()), nil
	case value.Date:
		return quoteSqlString(v.AsDate().Format("2006-01-02")), nil
	case value.Time:
		return quoteSqlString(v.AsTime().Format("15:04:05.999999999")), nil
	case value.DateTime:
		return quoteSqlString(v.AsDateTime().Format("2006-01-02 15:04:05.999999999")), nil
	case value.Decimal:
		return v.AsDecimal().String(), nil
	case value.Uuid:
		id := v.AsUuid()
		if d.Kind == Mysql {
			return "UNHEX('" + strings.ReplaceAll(id.String(), "-", "") + "')", nil
		}
		return quoteSqlString(id.String()), nil
	case value.Bytes:
		hex := fmt.Sprintf("%x", v.AsBytes())
		if d.Kind == Postgres {
			return quoteSqlString("\\x" + hex), nil
		}
		return "X'" + hex + "'", nil
	default:
		return "", ferror.NewInvalidType("unsupported value type for sql literal")
	}
}

// quoteSqlString wraps s in single quotes, doubling any embedded single
// quote per the ANSI SQL escaping rule all three dialects accept.
func quoteSqlString(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
