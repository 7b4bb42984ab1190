package sqlbuilder

import "fmt"

// CheckTableExists renders a query returning one row iff table exists.
// Grounded on the teacher's per-dialect information_schema/PRAGMA lookups
// (adapter/postgres.go, database/mysql, database/sqlite3 table-name
// queries).
func (d Dialect) CheckTableExists(table string) (string, []any) {
	switch d.Kind {
	case Mysql:
		return "SELECT 1 FROM information_schema.tables WHERE table_schema = DATABASE() AND table_name = ?", []any{table}
	case Postgres:
		return "SELECT 1 FROM information_schema.tables WHERE table_schema = current_schema() AND table_name = $1", []any{table}
	default:
		return "SELECT 1 FROM sqlite_master WHERE type = 'table' AND name = ?", []any{table}
	}
}

// ListTables renders a query returning every table name visible to the
// current connection/schema.
func (d Dialect) ListTables() string {
	switch d.Kind {
	case Mysql:
		return "SELECT table_name FROM information_schema.tables WHERE table_schema = DATABASE() AND table_type = 'BASE TABLE'"
	case Postgres:
		return "SELECT table_name FROM information_schema.tables WHERE table_schema = current_schema() AND table_type = 'BASE TABLE'"
	default:
		return "SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%'"
	}
}

// CheckTableSchema renders a query listing (column_name, data_type,
// is_nullable) triples for table, in column order.
func (d Dialect) CheckTableSchema(table string) (string, []any) {
	switch d.Kind {
	case Mysql:
		return "SELECT column_name, data_type, is_nullable FROM information_schema.columns " +
			"WHERE table_schema = DATABASE() AND table_name = ? ORDER BY ordinal_position", []any{table}
	case Postgres:
		return "SELECT column_name, data_type, is_nullable FROM information_schema.columns " +
			"WHERE table_schema = current_schema() AND table_name = $1 ORDER BY ordinal_position", []any{table}
	default:
		return fmt.Sprintf("PRAGMA table_info(%s)", d.quoteIdent(table)), nil
	}
}

// GetPrimaryKey renders a query returning the primary key column name(s)
// for table.
func (d Dialect) GetPrimaryKey(table string) (string, []any) {
	switch d.Kind {
	case Mysql:
		return "SELECT column_name FROM information_schema.key_column_usage " +
			"WHERE table_schema = DATABASE() AND table_name = ? AND constraint_name = 'PRIMARY' " +
			"ORDER BY ordinal_position", []any{table}
	case Postgres:
		return "SELECT a.attname FROM pg_index i " +
			"JOIN pg_attribute a ON a.attrelid = i.indrelid AND a.attnum = ANY(i.indkey) " +
			"WHERE i.indrelid = $1::regclass AND i.indisprimary", []any{table}
	default:
		return fmt.Sprintf("PRAGMA table_info(%s)", d.quoteIdent(table)), nil
	}
}

// CheckColumnIndex renders a query testing whether column is covered by an
// index on table.
func (d Dialect) CheckColumnIndex(table, column string) (string, []any) {
	switch d.Kind {
	case Mysql:
		return "SELECT 1 FROM information_schema.statistics " +
			"WHERE table_schema = DATABASE() AND table_name = ? AND column_name = ?", []any{table, column}
	case Postgres:
		return "SELECT 1 FROM pg_indexes WHERE tablename = $1 AND indexdef LIKE '%' || $2 || '%'", []any{table, column}
	default:
		return fmt.Sprintf("PRAGMA index_list(%s)", d.quoteIdent(table)), nil
	}
}
