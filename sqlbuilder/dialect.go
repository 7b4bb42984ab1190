// Package sqlbuilder renders sqlast statement shapes into dialect-specific
// SQL text. It never executes anything (see package sqlexec) and never
// parses SQL back out of a database (see package sqltype).
//
// Dialect is a three-arm sum type rather than an interface-per-dialect
// design: spec §9 calls out that table/series dispatch on a type tag to
// avoid virtual-call overhead on the hot path, and the same shape is used
// here so adding a fourth dialect is a single new case, not a new
// interface implementation scattered across files.
package sqlbuilder

import (
	"github.com/jacobbishopxy/fabrix/ferror"
)

// Kind identifies which of the three supported backends a Dialect speaks.
type Kind uint8

const (
	Mysql Kind = iota
	Postgres
	Sqlite
)

func (k Kind) String() string {
	switch k {
	case Mysql:
		return "mysql"
	case Postgres:
		return "postgres"
	case Sqlite:
		return "sqlite"
	default:
		return "unknown"
	}
}

// Dialect carries the Kind tag plus any per-dialect state (currently none,
// but kept as a struct rather than a bare Kind so future dialect-specific
// options, e.g. a Postgres search_path, have somewhere to live).
type Dialect struct {
	Kind Kind
}

func NewMysql() Dialect    { return Dialect{Kind: Mysql} }
func NewPostgres() Dialect { return Dialect{Kind: Postgres} }
func NewSqlite() Dialect   { return Dialect{Kind: Sqlite} }

// ErrUnimplemented is returned by operations a dialect does not support
// (e.g. foreign keys on SQLite, spec §4.5).
var ErrUnimplemented = ferror.NewInvalidArgument("operation not implemented for this dialect")

// quoteIdent wraps an identifier in the dialect's quoting character.
func (d Dialect) quoteIdent(name string) string {
	switch d.Kind {
	case Mysql:
		return "`" + name + "`"
	default:
		return `"` + name + `"`
	}
}
