package sqlexec

import (
	"context"
	"log/slog"

	"github.com/jacobbishopxy/fabrix/ferror"
	"github.com/jacobbishopxy/fabrix/sqlast"
	"github.com/jacobbishopxy/fabrix/sqlbuilder"
	"github.com/jacobbishopxy/fabrix/sqltype"
	"github.com/jacobbishopxy/fabrix/table"
)

// resolveTableSchema describes a table's columns in declared order, plus
// its primary key column name (empty if none). Sqlite's PRAGMA table_info
// reports both in a single six-column result set (cid, name, type,
// notnull, dflt_value, pk), unlike the two-query information_schema path
// Mysql/Postgres take, so the two are resolved through dialect-specific
// branches here rather than forcing PRAGMA's shape into the two-query
// shape.
func (e *Executor) resolveTableSchema(ctx context.Context, tableName string) (names, nativeTypes []string, pkName string, err error) {
	db, err := e.DB()
	if err != nil {
		return nil, nil, "", err
	}
	if e.dialect.Kind == sqlbuilder.Sqlite {
		q, _ := e.dialect.CheckTableSchema(tableName)
		r, err := db.QueryContext(ctx, q)
		if err != nil {
			return nil, nil, "", ferror.Wrap("query table schema", err)
		}
		defer r.Close()
		for r.Next() {
			var cid, notnull, pk int
			var name, colType string
			var dflt any
			if err := r.Scan(&cid, &name, &colType, &notnull, &dflt, &pk); err != nil {
				return nil, nil, "", ferror.Wrap("scan pragma table_info", err)
			}
			names = append(names, name)
			nativeTypes = append(nativeTypes, colType)
			if pk > 0 {
				pkName = name
			}
		}
		return names, nativeTypes, pkName, r.Err()
	}

	schemaQuery, schemaArgs := e.dialect.CheckTableSchema(tableName)
	schemaRows, err := db.QueryContext(ctx, schemaQuery, schemaArgs...)
	if err != nil {
		return nil, nil, "", ferror.Wrap("query table schema", err)
	}
	defer schemaRows.Close()
	for schemaRows.Next() {
		var name, nativeType, nullable string
		if err := schemaRows.Scan(&name, &nativeType, &nullable); err != nil {
			return nil, nil, "", ferror.Wrap("scan table schema", err)
		}
		names = append(names, name)
		nativeTypes = append(nativeTypes, nativeType)
	}
	if err := schemaRows.Err(); err != nil {
		return nil, nil, "", err
	}

	pkQuery, pkArgs := e.dialect.GetPrimaryKey(tableName)
	pkRows, err := db.QueryContext(ctx, pkQuery, pkArgs...)
	if err != nil {
		return names, nativeTypes, "", nil
	}
	defer pkRows.Close()
	if pkRows.Next() {
		pkRows.Scan(&pkName)
	}
	return names, nativeTypes, pkName, nil
}

// Select runs stmt and decodes the result into a Fabrix. When the table
// has a primary key, it is prepended to the column list (spec §4.6) and
// used as the returned Fabrix's index tag; renameTo, when non-nil, renames
// the selected columns (not the index) to the caller-requested names in
// order.
func (e *Executor) Select(ctx context.Context, stmt sqlast.Select, renameTo []string) (*table.Fabrix, error) {
	slog.Debug("sqlexec: select", "table", stmt.Table)
	db, err := e.DB()
	if err != nil {
		return nil, err
	}

	names, nativeTypes, pkName, err := e.resolveTableSchema(ctx, stmt.Table)
	if err != nil {
		return nil, err
	}

	effective := stmt
	if pkName != "" && !stmt.IncludePrimaryKey {
		effective.IncludePrimaryKey = true
		if len(effective.Columns) > 0 {
			effective.Columns = append([]sqlast.ColumnAlias{{Column: pkName}}, effective.Columns...)
		}
	}

	sqlStmt, err := e.dialect.Select(effective)
	if err != nil {
		return nil, err
	}

	processor := sqltype.NewRowProcessor(dialectFor(e.dialect.Kind), names, nativeTypes)

	rows, err := db.QueryContext(ctx, sqlStmt)
	if err != nil {
		return nil, ferror.Wrap("select", err)
	}
	defer rows.Close()

	var outRows []table.Row
	for rows.Next() {
		dest := processor.ScanTargets()
		if err := rows.Scan(dest...); err != nil {
			return nil, ferror.Wrap("scan select row", err)
		}
		values, err := processor.ProcessRow(dest)
		if err != nil {
			return nil, err
		}
		if pkName != "" {
			outRows = append(outRows, table.NewIndexedRow(0, values))
		} else {
			outRows = append(outRows, table.NewRow(values))
		}
	}
	if err := rows.Err(); err != nil {
		return nil, ferror.Wrap("iterate select rows", err)
	}

	if len(outRows) == 0 {
		fields := make([]table.FieldInfo, len(names))
		for i, n := range names {
			fields[i] = table.FieldInfo{Name: n, Dtype: processor.Tags()[i].Dtype}
		}
		var spec table.IndexSpec
		if pkName != "" {
			spec = table.IndexByPos(0)
		}
		return table.NewEmpty(fields, spec)
	}

	built, err := table.FromRows(outRows)
	if err != nil {
		return nil, err
	}
	for i, n := range names {
		if i >= built.Width() {
			break
		}
		col, _ := built.ColumnAt(i)
		col.Rename(n)
	}
	if renameTo != nil {
		offset := 0
		if pkName != "" {
			offset = 1
		}
		for i, n := range renameTo {
			pos := i + offset
			if pos >= built.Width() {
				break
			}
			col, _ := built.ColumnAt(pos)
			col.Rename(n)
		}
	}
	return built, nil
}
