package sqlexec

import (
	"context"
	"database/sql"
	"log/slog"
	"strings"

	"github.com/jacobbishopxy/fabrix/ferror"
	"github.com/jacobbishopxy/fabrix/sqlast"
	"github.com/jacobbishopxy/fabrix/sqlbuilder"
	"github.com/jacobbishopxy/fabrix/sqltype"
	"github.com/jacobbishopxy/fabrix/table"
	"github.com/jacobbishopxy/fabrix/value"
)

// Save writes f into table under strategy, inside one transaction (rolled
// back on any error, per the teacher's adapter.RunDDLs /
// database.RunDDLs transactional-apply pattern), and returns the number
// of rows affected (spec §8 scenario 4).
func (e *Executor) Save(ctx context.Context, tableName string, f *table.Fabrix, strategy sqlast.SaveStrategy) (int64, error) {
	slog.Debug("sqlexec: save", "table", tableName, "strategy", strategy, "rows", f.Height())
	db, err := e.DB()
	if err != nil {
		return 0, err
	}

	exists, err := e.tableExists(ctx, tableName)
	if err != nil {
		return 0, err
	}

	switch strategy {
	case sqlast.FailIfExists:
		if exists {
			return 0, ferror.ErrTableAlreadyExists
		}
	case sqlast.Replace:
		if exists {
			if _, err := db.ExecContext(ctx, e.dialect.DropTable(tableName)); err != nil {
				return 0, ferror.Wrap("drop table for replace", err)
			}
			exists = false
		}
	case sqlast.Append, sqlast.Upsert:
		// fall through to create-if-missing below
	}

	if !exists {
		if err := e.createTableFor(ctx, tableName, f); err != nil {
			return 0, err
		}
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, ferror.Wrap("begin save transaction", err)
	}

	var affected int64
	if strategy == sqlast.Upsert {
		affected, err = e.upsertRows(ctx, tx, tableName, f)
	} else {
		affected, err = e.insertRows(ctx, tx, tableName, f)
	}
	if err != nil {
		tx.Rollback()
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, ferror.Wrap("commit save transaction", err)
	}
	return affected, nil
}

func (e *Executor) tableExists(ctx context.Context, tableName string) (bool, error) {
	db, err := e.DB()
	if err != nil {
		return false, err
	}
	q, args := e.dialect.CheckTableExists(tableName)
	row := db.QueryRowContext(ctx, q, args...)
	var one int
	switch err := row.Scan(&one); err {
	case nil:
		return true, nil
	case sql.ErrNoRows:
		return false, nil
	default:
		return false, ferror.Wrap("check table exists", err)
	}
}

func (e *Executor) createTableFor(ctx context.Context, tableName string, f *table.Fabrix) error {
	db, err := e.DB()
	if err != nil {
		return err
	}
	schema := f.Schema().Fields()
	fields := make([]sqlbuilder.ColumnDef, 0, len(schema))
	var indexOpt *sqlast.IndexOption
	for i, fi := range schema {
		if f.IndexTag() != nil && f.IndexTag().Loc == i {
			indexOpt = &sqlast.IndexOption{Name: fi.Name, Type: indexTypeFor(fi.Dtype)}
			continue
		}
		fields = append(fields, sqlbuilder.ColumnDef{Name: fi.Name, Dtype: fi.Dtype, Nullable: true})
	}
	stmt := e.dialect.CreateTable(tableName, fields, indexOpt)
	if _, err := db.ExecContext(ctx, stmt); err != nil {
		return ferror.Wrap("create table", err)
	}
	return nil
}

func indexTypeFor(dtype value.ValueType) sqlast.IndexType {
	switch dtype {
	case value.Uuid:
		return sqlast.IndexUuid
	case value.I64, value.U64:
		return sqlast.IndexBigInt
	default:
		return sqlast.IndexInt
	}
}

// nonIndexColumns returns the Fabrix's field names with the index column
// (if any) omitted, matching sqlbuilder's Insert/Update column-aligned row
// shape.
func nonIndexColumns(f *table.Fabrix) []string {
	schema := f.Schema().Fields()
	indexLoc := -1
	if tag := f.IndexTag(); tag != nil {
		indexLoc = tag.Loc
	}
	names := make([]string, 0, len(schema))
	for i, fi := range schema {
		if i == indexLoc {
			continue
		}
		names = append(names, fi.Name)
	}
	return names
}

func stripIndexCell(data []value.Value, indexLoc int) []value.Value {
	if indexLoc < 0 {
		return data
	}
	out := make([]value.Value, 0, len(data)-1)
	for i, v := range data {
		if i == indexLoc {
			continue
		}
		out = append(out, v)
	}
	return out
}

// insertRows issues a single multi-row INSERT statement covering every row
// in f (spec §4.4), rather than one statement per row.
func (e *Executor) insertRows(ctx context.Context, tx *sql.Tx, tableName string, f *table.Fabrix) (int64, error) {
	if f.Height() == 0 {
		return 0, nil
	}
	indexLoc := -1
	if tag := f.IndexTag(); tag != nil {
		indexLoc = tag.Loc
	}
	names := nonIndexColumns(f)
	rows := make([][]value.Value, 0, f.Height())
	it := f.IterRows()
	for {
		row, ok := it.Next()
		if !ok {
			break
		}
		rows = append(rows, stripIndexCell(row.Data, indexLoc))
	}
	stmt, err := e.dialect.Insert(tableName, names, rows)
	if err != nil {
		return 0, err
	}
	res, err := tx.ExecContext(ctx, stmt)
	if err != nil {
		return 0, ferror.Wrap("insert rows", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, ferror.Wrap("insert rows affected", err)
	}
	return n, nil
}

// upsertRows partitions f into rows whose index value already exists in
// tableName and rows that don't, via PopupRowsByIdx (spec §4.3: "the
// basis of upsert"): existing rows are bulk-updated, new rows are
// bulk-inserted, and the sum of both is returned. A Fabrix with no index
// tag cannot distinguish the two, so Upsert degrades to a plain insert
// pass for it (spec §4.6).
func (e *Executor) upsertRows(ctx context.Context, tx *sql.Tx, tableName string, f *table.Fabrix) (int64, error) {
	indexTag := f.IndexTag()
	if indexTag == nil {
		return e.insertRows(ctx, tx, tableName, f)
	}
	if f.Height() == 0 {
		return 0, nil
	}

	idxCol, err := f.ColumnAt(indexTag.Loc)
	if err != nil {
		return 0, err
	}
	idxValues := make([]value.Value, idxCol.Len())
	for i := 0; i < idxCol.Len(); i++ {
		v, err := idxCol.Get(i)
		if err != nil {
			return 0, err
		}
		idxValues[i] = v
	}

	existing, err := e.existingIndexValues(ctx, tx, tableName, indexTag.Name, idxValues)
	if err != nil {
		return 0, err
	}

	var existingPositions []int
	for i, v := range idxValues {
		if existing[v.String()] {
			existingPositions = append(existingPositions, i)
		}
	}

	toUpdate, err := f.PopupRowsByIdx(existingPositions)
	if err != nil {
		return 0, err
	}

	inserted, err := e.insertRows(ctx, tx, tableName, f)
	if err != nil {
		return 0, err
	}
	updated, err := e.updateRows(ctx, tx, tableName, toUpdate, indexTag)
	if err != nil {
		return 0, err
	}
	return inserted + updated, nil
}

// existingIndexValues queries tableName for which of idxValues are already
// present under indexColumn, returning the matches keyed by their
// value.Value.String() text form. The index column's native type is
// resolved the same way Select resolves column types, so the scanned
// values compare correctly regardless of dialect-specific driver
// representations (e.g. MySQL BINARY(16) uuids).
func (e *Executor) existingIndexValues(ctx context.Context, tx *sql.Tx, tableName, indexColumn string, idxValues []value.Value) (map[string]bool, error) {
	names, nativeTypes, _, err := e.resolveTableSchema(ctx, tableName)
	if err != nil {
		return nil, err
	}
	nativeType := ""
	for i, n := range names {
		if n == indexColumn {
			nativeType = nativeTypes[i]
			break
		}
	}

	filter := sqlast.Simple(sqlast.Condition{Column: indexColumn, Equation: sqlast.EqIn(idxValues)})
	sel := sqlast.Select{
		Table:   tableName,
		Columns: []sqlast.ColumnAlias{{Column: indexColumn}},
		Filter:  &filter,
	}
	stmt, err := e.dialect.Select(sel)
	if err != nil {
		return nil, err
	}
	rows, err := tx.QueryContext(ctx, stmt)
	if err != nil {
		return nil, ferror.Wrap("query existing index values", err)
	}
	defer rows.Close()

	processor := sqltype.NewRowProcessor(dialectFor(e.dialect.Kind), []string{indexColumn}, []string{nativeType})
	out := make(map[string]bool)
	for rows.Next() {
		dest := processor.ScanTargets()
		if err := rows.Scan(dest...); err != nil {
			return nil, ferror.Wrap("scan existing index value", err)
		}
		values, err := processor.ProcessRow(dest)
		if err != nil {
			return nil, err
		}
		out[values[0].String()] = true
	}
	return out, rows.Err()
}

// updateRows renders toUpdate's rows as an UPDATE script (one statement
// per row, spec §4.4) and executes it statement by statement, summing
// affected rows. SQL has no native multi-row UPDATE syntax, so unlike
// Insert this cannot collapse into one statement.
func (e *Executor) updateRows(ctx context.Context, tx *sql.Tx, tableName string, toUpdate *table.Fabrix, indexTag *table.IndexTag) (int64, error) {
	if toUpdate.Height() == 0 {
		return 0, nil
	}
	schema := toUpdate.Schema().Fields()
	names := make([]string, len(schema))
	for i, fi := range schema {
		names[i] = fi.Name
	}
	rows := make([][]value.Value, 0, toUpdate.Height())
	it := toUpdate.IterRows()
	for {
		row, ok := it.Next()
		if !ok {
			break
		}
		rows = append(rows, row.Data)
	}
	script, err := e.dialect.Update(tableName, names, rows, indexTag.Name)
	if err != nil {
		return 0, err
	}
	var affected int64
	for _, stmt := range splitStatements(script) {
		res, err := tx.ExecContext(ctx, stmt)
		if err != nil {
			return 0, ferror.Wrap("update row", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, ferror.Wrap("update rows affected", err)
		}
		affected += n
	}
	return affected, nil
}

// splitStatements splits an Update script into its individual
// "UPDATE ...;" statements, dropping the trailing empty segment left by
// the script's final newline.
func splitStatements(script string) []string {
	lines := strings.Split(strings.TrimRight(script, "\n"), "\n")
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		if l != "" {
			out = append(out, l)
		}
	}
	return out
}
