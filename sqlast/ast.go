// Package sqlast defines the dialect-independent SQL AST described in spec
// §3: a disjoint algebra of filter Expressions plus the Select/Delete/
// AlterTable/SaveStrategy/IndexOption statement shapes. sqlast never
// produces SQL text itself (see package sqlbuilder) and never parses SQL
// (spec §1 Non-goals: "no SQL parser, only builder").
//
// Grounded on the teacher's schema/ast.go: DDL shapes as small structs with
// unexported fields and named constructors, rather than a parser AST.
package sqlast

import "github.com/jacobbishopxy/fabrix/value"

// Equation is one comparison operator plus its operand(s).
type Equation struct {
	kind equationKind
	val  value.Value
	vals []value.Value
	lo   value.Value
	hi   value.Value
	like string
}

type equationKind uint8

const (
	Equal equationKind = iota
	NotEqual
	Greater
	GreaterEqual
	Less
	LessEqual
	Like
	In
	Between
	NotEq // "Not", renamed to avoid colliding with the Go builtin-adjacent "Not" Opposition below
)

func (e Equation) Kind() equationKind { return e.kind }
func (e Equation) Operand() value.Value { return e.val }
func (e Equation) Operands() []value.Value { return e.vals }
func (e Equation) LikePattern() string { return e.like }
func (e Equation) BetweenBounds() (value.Value, value.Value) { return e.lo, e.hi }

func EqEqual(v value.Value) Equation        { return Equation{kind: Equal, val: v} }
func EqNotEqual(v value.Value) Equation      { return Equation{kind: NotEqual, val: v} }
func EqGreater(v value.Value) Equation       { return Equation{kind: Greater, val: v} }
func EqGreaterEqual(v value.Value) Equation  { return Equation{kind: GreaterEqual, val: v} }
func EqLess(v value.Value) Equation          { return Equation{kind: Less, val: v} }
func EqLessEqual(v value.Value) Equation     { return Equation{kind: LessEqual, val: v} }
func EqLike(pattern string) Equation         { return Equation{kind: Like, like: pattern} }
func EqIn(vs []value.Value) Equation         { return Equation{kind: In, vals: vs} }
func EqBetween(lo, hi value.Value) Equation  { return Equation{kind: Between, lo: lo, hi: hi} }
func EqNot() Equation                        { return Equation{kind: NotEq} }

// Condition pairs a column name with the Equation to apply to it.
type Condition struct {
	Column   string
	Equation Equation
}

// Conjunction joins sibling Expressions.
type Conjunction uint8

const (
	And Conjunction = iota
	Or
)

// Expression is the filter-tree algebra: a leaf Condition, a parenthesized
// group of sub-expressions (Nest), a Conjunction joining the *next*
// sibling, or an Opposition negating the *next* sibling. Flattening this
// sequence into a WHERE clause is sqlbuilder's job (spec §4.4).
type Expression struct {
	kind  expressionKind
	cond  Condition
	nest  []Expression
	conj  Conjunction
}

type expressionKind uint8

const (
	ExprSimple expressionKind = iota
	ExprNest
	ExprConjunction
	ExprOpposition
)

func (e Expression) Kind() expressionKind   { return e.kind }
func (e Expression) Condition() Condition   { return e.cond }
func (e Expression) Nested() []Expression   { return e.nest }
func (e Expression) ConjunctionKind() Conjunction { return e.conj }

func Simple(c Condition) Expression           { return Expression{kind: ExprSimple, cond: c} }
func Nest(exprs ...Expression) Expression     { return Expression{kind: ExprNest, nest: exprs} }
func ConjunctionExpr(c Conjunction) Expression { return Expression{kind: ExprConjunction, conj: c} }
func Opposition() Expression                  { return Expression{kind: ExprOpposition} }

// ColumnAlias names a selected column, with an optional output alias.
type ColumnAlias struct {
	Column string
	Alias  string
}

// OrderBy names a column and its sort direction.
type OrderBy struct {
	Column     string
	Descending bool
}

// Select is a fully-specified SELECT statement shape.
type Select struct {
	Table             string
	Columns           []ColumnAlias
	Filter            *Expression
	Order             []OrderBy
	Limit             *uint64
	Offset            *uint64
	IncludePrimaryKey bool
}

// Delete is a fully-specified DELETE statement shape.
type Delete struct {
	Table  string
	Filter *Expression
}

// SaveStrategy is the enumerated policy for writing a Fabrix into an
// existing (or not-yet-existing) table (spec §4.6).
type SaveStrategy uint8

const (
	FailIfExists SaveStrategy = iota
	Replace
	Append
	Upsert
)

// IndexType names the SQL type used for an auto-generated primary key.
type IndexType uint8

const (
	IndexInt IndexType = iota
	IndexBigInt
	IndexUuid
)

// IndexOption names the primary-key column to synthesize for CREATE TABLE,
// and its type.
type IndexOption struct {
	Name string
	Type IndexType
}

// AlterTable is the Add|Delete|Modify algebra from spec §3.
type AlterTable struct {
	kind       alterKind
	Table      string
	Column     string
	Dtype      value.ValueType
	IsNullable bool
}

type alterKind uint8

const (
	AlterAdd alterKind = iota
	AlterDelete
	AlterModify
)

func (a AlterTable) Kind() alterKind { return a.kind }

func AlterAddColumn(table, column string, dtype value.ValueType, nullable bool) AlterTable {
	return AlterTable{kind: AlterAdd, Table: table, Column: column, Dtype: dtype, IsNullable: nullable}
}

func AlterDeleteColumn(table, column string) AlterTable {
	return AlterTable{kind: AlterDelete, Table: table, Column: column}
}

// AlterModifyColumn accepts IsNullable per spec §9 Open Question (b): a
// faithful implementation should emit NULL/NOT NULL when the dialect
// supports it (sqlbuilder does, for Mysql and Postgres; Sqlite's ALTER
// COLUMN support is limited and is handled per-dialect).
func AlterModifyColumn(table, column string, dtype value.ValueType, nullable bool) AlterTable {
	return AlterTable{kind: AlterModify, Table: table, Column: column, Dtype: dtype, IsNullable: nullable}
}
