package sqlexec

import (
	"golang.org/x/sync/errgroup"

	"github.com/jacobbishopxy/fabrix/sqlbuilder"
	"github.com/jacobbishopxy/fabrix/sqltype"
)

func dialectFor(k sqlbuilder.Kind) sqltype.Dialect {
	switch k {
	case sqlbuilder.Mysql:
		return sqltype.Mysql
	case sqlbuilder.Postgres:
		return sqltype.Postgres
	default:
		return sqltype.Sqlite
	}
}

// concurrentMap runs f over inputs with at most concurrency goroutines in
// flight, preserving input order in the returned slice (each goroutine
// writes only its own pre-allocated slot, so no merge/sort pass is needed).
// concurrency <= 0 means unlimited. Grounded on the teacher's
// database.ConcurrentMapFuncWithError, generalized with Go generics so it
// is reusable for both table-name dumps and per-table row loads.
func concurrentMap[Tin, Tout any](inputs []Tin, concurrency int, f func(Tin) (Tout, error)) ([]Tout, error) {
	eg := errgroup.Group{}
	if concurrency > 0 {
		eg.SetLimit(concurrency)
	}

	outputs := make([]Tout, len(inputs))
	for i := range inputs {
		i, in := i, inputs[i]
		eg.Go(func() error {
			out, err := f(in)
			if err != nil {
				return err
			}
			outputs[i] = out
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return outputs, nil
}
