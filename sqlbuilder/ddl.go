package sqlbuilder

import (
	"fmt"
	"strings"

	"github.com/jacobbishopxy/fabrix/sqlast"
	"github.com/jacobbishopxy/fabrix/value"
)

// nativeType maps a value.ValueType to the dialect's native column type
// name. Grounded on the teacher's per-dialect generator.go type tables
// (e.g. Mysql "bigint", Postgres "bigint", Sqlite3 "INTEGER"), narrowed to
// the dtypes spec's Value enum carries.
func (d Dialect) nativeType(dtype value.ValueType) string {
	switch d.Kind {
	case Mysql:
		return mysqlNativeType(dtype)
	case Postgres:
		return postgresNativeType(dtype)
	default:
		return sqliteNativeType(dtype)
	}
}

func mysqlNativeType(dtype value.ValueType) string {
	switch dtype {
	case value.Bool:
		return "tinyint(1)"
	case value.U8:
		return "tinyint unsigned"
	case value.U16:
		return "smallint unsigned"
	case value.U32:
		return "int unsigned"
	case value.U64:
		return "bigint unsigned"
	case value.I8:
		return "tinyint"
	case value.I16:
		return "smallint"
	case value.I32:
		return "int"
	case value.I64:
		return "bigint"
	case value.F32:
		return "float"
	case value.F64:
		return "double"
	case value.String:
		return "varchar(255)"
	case value.Date:
		return "date"
	case value.Time:
		return "time"
	case value.DateTime:
		return "datetime"
	case value.Decimal:
		return "decimal(38,18)"
	case value.Uuid:
		return "binary(16)"
	case value.Bytes:
		return "varbinary(255)"
	default:
		return "varchar(255)"
	}
}

func postgresNativeType(dtype value.ValueType) string {
	switch dtype {
	case value.Bool:
		return "boolean"
	case value.U8, value.U16, value.I8, value.I16, value.I32:
		return "integer"
	case value.U32, value.U64, value.I64:
		return "bigint"
	case value.F32:
		return "real"
	case value.F64:
		return "double precision"
	case value.String:
		return "text"
	case value.Date:
		return "date"
	case value.Time:
		return "time"
	case value.DateTime:
		return "timestamp"
	case value.Decimal:
		return "numeric(38,18)"
	case value.Uuid:
		return "uuid"
	case value.Bytes:
		return "bytea"
	default:
		return "text"
	}
}

func sqliteNativeType(dtype value.ValueType) string {
	switch dtype {
	case value.Bool:
		return "BOOLEAN"
	case value.U8, value.U16, value.U32, value.U64, value.I8, value.I16, value.I32, value.I64:
		return "INTEGER"
	case value.F32, value.F64:
		return "REAL"
	case value.Date:
		return "DATE"
	case value.Time:
		return "TIME"
	case value.DateTime:
		return "DATETIME"
	case value.String, value.Uuid, value.Decimal:
		return "TEXT"
	case value.Bytes:
		return "BLOB"
	default:
		return "TEXT"
	}
}

func (d Dialect) indexTypeName(t sqlast.IndexType) string {
	switch d.Kind {
	case Sqlite:
		switch t {
		case sqlast.IndexUuid:
			return "TEXT"
		default:
			return "INTEGER"
		}
	default:
		switch t {
		case sqlast.IndexInt:
			return d.nativeType(value.I32)
		case sqlast.IndexBigInt:
			return d.nativeType(value.I64)
		case sqlast.IndexUuid:
			return d.nativeType(value.Uuid)
		}
		return d.nativeType(value.I64)
	}
}

// ColumnDef is a column name/dtype/nullability triple, as consumed by
// CreateTable.
type ColumnDef struct {
	Name     string
	Dtype    value.ValueType
	Nullable bool
}

// CreateTable renders CREATE TABLE for the given columns, placing the
// synthesized index column (if any) first, per spec §4.2.
func (d Dialect) CreateTable(table string, fields []ColumnDef, index *sqlast.IndexOption) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "CREATE TABLE %s (\n", d.quoteIdent(table))

	var cols []string
	if index != nil {
		pk := d.indexTypeName(index.Type)
		if d.Kind == Sqlite && index.Type != sqlast.IndexUuid {
			pk = "INTEGER"
		}
		autoInc := ""
		switch d.Kind {
		case Mysql:
			if index.Type != sqlast.IndexUuid {
				autoInc = " AUTO_INCREMENT"
			}
		case Sqlite:
			// INTEGER PRIMARY KEY is itself an alias for ROWID and auto-increments.
		}
		cols = append(cols, fmt.Sprintf("  %s %s%s PRIMARY KEY", d.quoteIdent(index.Name), pk, autoInc))
		if d.Kind == Postgres && index.Type != sqlast.IndexUuid {
			cols[0] = fmt.Sprintf("  %s SERIAL PRIMARY KEY", d.quoteIdent(index.Name))
		}
	}
	for _, f := range fields {
		col := fmt.Sprintf("  %s %s", d.quoteIdent(f.Name), d.nativeType(f.Dtype))
		if !f.Nullable {
			col += " NOT NULL"
		}
		cols = append(cols, col)
	}
	sb.WriteString(strings.Join(cols, ",\n"))
	sb.WriteString("\n)")
	return sb.String()
}

func (d Dialect) DropTable(table string) string {
	return fmt.Sprintf("DROP TABLE %s", d.quoteIdent(table))
}

func (d Dialect) RenameTable(from, to string) string {
	switch d.Kind {
	case Postgres:
		return fmt.Sprintf("ALTER TABLE %s RENAME TO %s", d.quoteIdent(from), d.quoteIdent(to))
	case Sqlite:
		return fmt.Sprintf("ALTER TABLE %s RENAME TO %s", d.quoteIdent(from), d.quoteIdent(to))
	default:
		return fmt.Sprintf("RENAME TABLE %s TO %s", d.quoteIdent(from), d.quoteIdent(to))
	}
}

func (d Dialect) TruncateTable(table string) string {
	switch d.Kind {
	case Sqlite:
		return fmt.Sprintf("DELETE FROM %s", d.quoteIdent(table))
	default:
		return fmt.Sprintf("TRUNCATE TABLE %s", d.quoteIdent(table))
	}
}

func (d Dialect) CreateIndex(indexName, table string, columns []string, unique bool) string {
	kw := "INDEX"
	if unique {
		kw = "UNIQUE INDEX"
	}
	quoted := make([]string, len(columns))
	for i, c := range columns {
		quoted[i] = d.quoteIdent(c)
	}
	return fmt.Sprintf("CREATE %s %s ON %s (%s)", kw, d.quoteIdent(indexName), d.quoteIdent(table), strings.Join(quoted, ", "))
}

func (d Dialect) DropIndex(indexName, table string) string {
	switch d.Kind {
	case Mysql:
		return fmt.Sprintf("DROP INDEX %s ON %s", d.quoteIdent(indexName), d.quoteIdent(table))
	default:
		return fmt.Sprintf("DROP INDEX %s", d.quoteIdent(indexName))
	}
}

// CreateForeignKey renders ADD CONSTRAINT ... FOREIGN KEY. SQLite support
// for adding foreign keys post-creation is not part of its ALTER TABLE
// grammar; per spec §4.5 that case returns ErrUnimplemented instead of
// emitting SQL that would fail at execution time.
func (d Dialect) CreateForeignKey(table, constraintName, column, refTable, refColumn string) (string, error) {
	if d.Kind == Sqlite {
		return "", ErrUnimplemented
	}
	return fmt.Sprintf(
		"ALTER TABLE %s ADD CONSTRAINT %s FOREIGN KEY (%s) REFERENCES %s (%s)",
		d.quoteIdent(table), d.quoteIdent(constraintName), d.quoteIdent(column), d.quoteIdent(refTable), d.quoteIdent(refColumn),
	), nil
}

func (d Dialect) DropForeignKey(table, constraintName string) (string, error) {
	if d.Kind == Sqlite {
		return "", ErrUnimplemented
	}
	kw := "CONSTRAINT"
	if d.Kind == Mysql {
		kw = "FOREIGN KEY"
	}
	return fmt.Sprintf("ALTER TABLE %s DROP %s %s", d.quoteIdent(table), kw, d.quoteIdent(constraintName)), nil
}

// AlterTable dispatches on the AlterTable algebra's kind (spec §3).
func (d Dialect) AlterTable(a sqlast.AlterTable) (string, error) {
	switch a.Kind() {
	case sqlast.AlterAdd:
		col := fmt.Sprintf("%s %s", d.quoteIdent(a.Column), d.nativeType(a.Dtype))
		if !a.IsNullable {
			col += " NOT NULL"
		}
		return fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s", d.quoteIdent(a.Table), col), nil
	case sqlast.AlterDelete:
		return fmt.Sprintf("ALTER TABLE %s DROP COLUMN %s", d.quoteIdent(a.Table), d.quoteIdent(a.Column)), nil
	case sqlast.AlterModify:
		return d.alterModify(a)
	default:
		return "", ErrUnimplemented
	}
}

func (d Dialect) alterModify(a sqlast.AlterTable) (string, error) {
	switch d.Kind {
	case Mysql:
		col := fmt.Sprintf("%s %s", d.quoteIdent(a.Column), d.nativeType(a.Dtype))
		if !a.IsNullable {
			col += " NOT NULL"
		}
		return fmt.Sprintf("ALTER TABLE %s MODIFY COLUMN %s", d.quoteIdent(a.Table), col), nil
	case Postgres:
		nullClause := "DROP NOT NULL"
		if !a.IsNullable {
			nullClause = "SET NOT NULL"
		}
		return fmt.Sprintf(
			"ALTER TABLE %s ALTER COLUMN %s TYPE %s, ALTER COLUMN %s %s",
			d.quoteIdent(a.Table), d.quoteIdent(a.Column), d.nativeType(a.Dtype), d.quoteIdent(a.Column), nullClause,
		), nil
	default:
		// SQLite's ALTER TABLE grammar has no MODIFY/ALTER COLUMN form; a
		// real modify requires the rebuild-and-copy dance, which is out of
		// scope for the builder layer (it would need table introspection,
		// sqlexec's job, not sqlbuilder's).
		return "", ErrUnimplemented
	}
}
