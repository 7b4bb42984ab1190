// Package sqltype maps a dialect's native column type names back onto
// value.ValueType, and uses that mapping to decode database/sql scan
// results into value.Values (which sqlexec assembles into table.Rows).
// It is the read-path mirror of sqlbuilder's
// write-path nativeType tables.
//
// Grounded on the teacher's schema/generator.go per-dialect type-name
// switches (used there to decide whether two DDLs already agree) and on
// UNO-SOFT-dbcsv's column-type-driven scan dispatch.
package sqltype

import (
	"strings"

	"github.com/jacobbishopxy/fabrix/value"
)

// Dialect mirrors sqlbuilder.Kind without importing it, to keep sqltype
// usable from sqlexec without a sqlbuilder dependency edge.
type Dialect uint8

const (
	Mysql Dialect = iota
	Postgres
	Sqlite
)

// ResolveType maps a native column type name (as reported by
// information_schema.columns.data_type or PRAGMA table_info) to a
// value.ValueType. Unrecognized names fall back to value.String, since SQL
// drivers always expose a string representation as the fallback scan
// target.
func ResolveType(d Dialect, nativeName string) value.ValueType {
	name := strings.ToLower(strings.TrimSpace(nativeName))
	// MySQL has no native UUID type; fabrix's write path (sqlbuilder's
	// mysqlNativeType) stores a Uuid as BINARY(16), which would otherwise
	// collapse into the generic "binary" -> Bytes case once the length
	// suffix is stripped below, losing the Uuid round-trip.
	if d == Mysql && name == "binary(16)" {
		return value.Uuid
	}
	if i := strings.IndexByte(name, '('); i >= 0 {
		name = name[:i]
	}
	switch d {
	case Mysql:
		return mysqlType(name)
	case Postgres:
		return postgresType(name)
	default:
		return sqliteType(name)
	}
}

func mysqlType(name string) value.ValueType {
	switch name {
	case "tinyint":
		return value.Bool
	case "smallint":
		return value.I16
	case "int", "integer", "mediumint":
		return value.I32
	case "bigint":
		return value.I64
	case "tinyint unsigned":
		return value.U8
	case "smallint unsigned":
		return value.U16
	case "int unsigned", "mediumint unsigned":
		return value.U32
	case "bigint unsigned":
		return value.U64
	case "float":
		return value.F32
	case "double", "decimal", "numeric":
		if name == "decimal" || name == "numeric" {
			return value.Decimal
		}
		return value.F64
	case "date":
		return value.Date
	case "time":
		return value.Time
	case "datetime", "timestamp":
		return value.DateTime
	case "char", "varchar", "text", "tinytext", "mediumtext", "longtext":
		return value.String
	case "blob", "tinyblob", "mediumblob", "longblob", "binary", "varbinary":
		return value.Bytes
	default:
		return value.String
	}
}

func postgresType(name string) value.ValueType {
	switch name {
	case "boolean", "bool":
		return value.Bool
	case "smallint", "smallserial":
		return value.I16
	case "integer", "int", "int4", "serial":
		return value.I32
	case "bigint", "int8", "bigserial":
		return value.I64
	case "real", "float4":
		return value.F32
	case "double precision", "float8":
		return value.F64
	case "numeric", "decimal":
		return value.Decimal
	case "date":
		return value.Date
	case "time", "time without time zone", "time with time zone":
		return value.Time
	case "timestamp", "timestamp without time zone", "timestamp with time zone":
		return value.DateTime
	case "uuid":
		return value.Uuid
	case "bytea":
		return value.Bytes
	case "text", "varchar", "character varying", "char", "character":
		return value.String
	default:
		return value.String
	}
}

func sqliteType(name string) value.ValueType {
	switch {
	case name == "boolean" || name == "bool":
		return value.Bool
	case name == "integer" || name == "int":
		return value.I64
	case name == "real" || name == "double" || name == "float":
		return value.F64
	case name == "blob":
		return value.Bytes
	default:
		// Every other declared name resolves to String: TEXT (which is how
		// uuids and decimals are stored) and also the DATE/TIME/DATETIME
		// names sqlbuilder declares for temporal columns, which are not
		// mapped to Date/Time/DateTime here. The declared column name is
		// the only signal available without a value sniff, and callers
		// that need exact round-tripping should carry the Fabrix schema
		// alongside the table rather than re-deriving it from PRAGMA.
		return value.String
	}
}

// ColumnTag is one resolved column: its SQL name and the ValueType its
// native type name was mapped to.
type ColumnTag struct {
	Name  string
	Dtype value.ValueType
}

// RowProcessor caches a table's column tags (resolved once) and converts
// each database/sql scan destination row into typed value.Values,
// mirroring the teacher's column-name-keyed dispatch in
// schema/generator.go without its DDL-diff concerns.
type RowProcessor struct {
	dialect Dialect
	tags    []ColumnTag
}

// NewRowProcessor builds a RowProcessor from (name, nativeType) pairs, as
// returned by sqlbuilder.Dialect.CheckTableSchema.
func NewRowProcessor(d Dialect, names, nativeTypes []string) *RowProcessor {
	tags := make([]ColumnTag, len(names))
	for i, n := range names {
		tags[i] = ColumnTag{Name: n, Dtype: ResolveType(d, nativeTypes[i])}
	}
	return &RowProcessor{dialect: d, tags: tags}
}

// Tags returns the resolved column tags in order.
func (p *RowProcessor) Tags() []ColumnTag { return p.tags }

// ScanTargets allocates one `any` pointer per column, suitable for passing
// to sql.Rows.Scan.
func (p *RowProcessor) ScanTargets() []any {
	dest := make([]any, len(p.tags))
	for i := range dest {
		dest[i] = new(any)
	}
	return dest
}

// ProcessRow converts scanned destinations into value.Values in column
// order. When the query prepended the primary key column (spec §4.6),
// values[0] is that column; ProcessRow does not treat it specially, and
// the caller wraps the whole slice in an IndexedRow whose index points at
// position 0.
func (p *RowProcessor) ProcessRow(dest []any) ([]value.Value, error) {
	values := make([]value.Value, len(dest))
	for i, d := range dest {
		raw := *(d.(*any))
		v, err := scanToValue(raw, p.tags[i].Dtype)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}
	return values, nil
}
