package sqlexec

import (
	"context"

	"github.com/jacobbishopxy/fabrix/sqlast"
	"github.com/jacobbishopxy/fabrix/table"
	"github.com/jacobbishopxy/fabrix/util"
)

// DumpTables selects every table in names concurrently (bounded by
// concurrency) and returns them keyed by table name, grounded on the
// teacher's MysqlDatabase.ExportDDLs bounded-concurrency table dump.
func (e *Executor) DumpTables(ctx context.Context, names []string, concurrency int) (map[string]*table.Fabrix, error) {
	type dumped struct {
		name string
		f    *table.Fabrix
	}
	results, err := concurrentMap(names, concurrency, func(name string) (dumped, error) {
		f, err := e.Select(ctx, sqlast.Select{Table: name}, nil)
		if err != nil {
			return dumped{}, err
		}
		return dumped{name: name, f: f}, nil
	})
	if err != nil {
		return nil, err
	}
	out := make(map[string]*table.Fabrix, len(results))
	for _, r := range results {
		out[r.name] = r.f
	}
	return out, nil
}

// LoadTables saves every Fabrix in fabrics (keyed by table name)
// concurrently under strategy, returning the total rows affected across
// every table. Tables are handed to concurrentMap in sorted-name order so
// that which table lands in which worker slot is deterministic across
// runs, even though map iteration in Go is not.
func (e *Executor) LoadTables(ctx context.Context, fabrics map[string]*table.Fabrix, strategy sqlast.SaveStrategy, concurrency int) (int64, error) {
	type namedFabrix struct {
		name string
		f    *table.Fabrix
	}
	inputs := make([]namedFabrix, 0, len(fabrics))
	for name, f := range util.CanonicalMapIter(fabrics) {
		inputs = append(inputs, namedFabrix{name: name, f: f})
	}
	counts, err := concurrentMap(inputs, concurrency, func(nf namedFabrix) (int64, error) {
		return e.Save(ctx, nf.name, nf.f, strategy)
	})
	if err != nil {
		return 0, err
	}
	var total int64
	for _, n := range counts {
		total += n
	}
	return total, nil
}

// ListTables returns every table name visible in the current
// database/schema.
func (e *Executor) ListTables(ctx context.Context) ([]string, error) {
	db, err := e.DB()
	if err != nil {
		return nil, err
	}
	rows, err := db.QueryContext(ctx, e.dialect.ListTables())
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var names []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		names = append(names, n)
	}
	return names, rows.Err()
}
