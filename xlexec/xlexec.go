// Package xlexec adapts xl's row-at-a-time streaming into batched,
// consumer-driven pipelines: a sheet's rows are transformed cell by cell
// into a caller-chosen unit type, accumulated into fixed-size (or
// whole-sheet) batches, converted into a caller-chosen "final" shape, and
// handed to a synchronous or asynchronous consume function.
//
// Grounded on original_source/fabrix-xl/src/ec.rs's XlConsumer/XlWorker/
// XlExecutor trio: Rust's PhantomData-carrying generic consumer trait
// becomes a plain Go generic struct parameterized over UnitOut and
// FinalOut, and the Rust async_trait consume_async/consume_async_mut
// variants become ConsumeAsync, whose consume function returns one
// completion channel per batch; ConsumeAsync itself starts no goroutines
// and waits on those channels in dispatch order.
package xlexec

import (
	"fmt"

	"github.com/jacobbishopxy/fabrix/ferror"
	"github.com/jacobbishopxy/fabrix/xl"
)

// TransformFunc converts one decoded cell into the caller's unit-of-work
// type.
type TransformFunc[UnitOut any] func(cell xl.Cell) UnitOut

// ConvertFunc folds one batch of transformed rows (a rectangular grid of
// UnitOut, outer slice is rows) into the caller's final output shape.
type ConvertFunc[UnitOut, FinalOut any] func(batch [][]UnitOut) (FinalOut, error)

// ConsumeFunc is a synchronous sink for a converted batch.
type ConsumeFunc[FinalOut any] func(FinalOut) error

// AsyncConsumeFunc is an asynchronous sink for a converted batch; it
// reports completion or failure on the returned channel exactly once.
type AsyncConsumeFunc[FinalOut any] func(FinalOut) <-chan error

// SheetIter batches a worksheet's rows, applying transform to every cell
// and grouping rows into chunks of batchSize. batchSize of nil means "one
// chunk holding the entire sheet"; batchSize of 0 is a distinct, invalid
// state (there is no such thing as a batch of zero rows) and is rejected
// by NewSheetIter rather than silently treated as "whole sheet".
type SheetIter[UnitOut any] struct {
	rows      *xl.RowIter
	transform TransformFunc[UnitOut]
	batchSize *int
	done      bool
}

// NewSheetIter constructs a SheetIter over an already-open xl.RowIter.
// batchSize of nil means "one batch for the whole sheet"; a non-nil
// batchSize pointing at 0 is rejected with ferror.InvalidArgument.
func NewSheetIter[UnitOut any](rows *xl.RowIter, transform TransformFunc[UnitOut], batchSize *int) (*SheetIter[UnitOut], error) {
	if batchSize != nil && *batchSize == 0 {
		return nil, ferror.NewInvalidArgument("batch size must be nil (whole sheet) or greater than zero")
	}
	return &SheetIter[UnitOut]{rows: rows, transform: transform, batchSize: batchSize}, nil
}

// Next returns the next batch of transformed rows, or false once the
// sheet (and any partial final batch) is exhausted.
func (it *SheetIter[UnitOut]) Next() ([][]UnitOut, bool) {
	if it.done {
		return nil, false
	}
	var chunk [][]UnitOut
	for {
		row, ok := it.rows.Next()
		if !ok {
			it.done = true
			if it.rows.Err != nil {
				return nil, false
			}
			if len(chunk) > 0 {
				return chunk, true
			}
			return nil, false
		}
		buf := make([]UnitOut, len(row.Data))
		for i, cell := range row.Data {
			buf[i] = it.transform(cell)
		}
		chunk = append(chunk, buf)
		if it.batchSize != nil && len(chunk) == *it.batchSize {
			return chunk, true
		}
	}
}

// Err reports the underlying row-reading error, if any, after Next has
// returned false.
func (it *SheetIter[UnitOut]) Err() error {
	return it.rows.Err
}

// Executor drives a full sheet through TransformFunc/ConvertFunc/
// ConsumeFunc, owning the workbook it was built over.
type Executor[UnitOut, FinalOut any] struct {
	workbook  *xl.Workbook
	transform TransformFunc[UnitOut]
}

// NewExecutor builds an Executor bound to an already-open workbook and a
// cell transform function.
func NewExecutor[UnitOut, FinalOut any](workbook *xl.Workbook, transform TransformFunc[UnitOut]) *Executor[UnitOut, FinalOut] {
	return &Executor[UnitOut, FinalOut]{workbook: workbook, transform: transform}
}

func (e *Executor[UnitOut, FinalOut]) iterSheet(sheetName string, batchSize *int) (*SheetIter[UnitOut], error) {
	sheet, ok := e.workbook.SheetByName(sheetName)
	if !ok {
		return nil, fmt.Errorf("xlexec: worksheet %q not found", sheetName)
	}
	rows, err := e.workbook.Rows(sheet)
	if err != nil {
		return nil, err
	}
	return NewSheetIter(rows, e.transform, batchSize)
}

// IterSheet returns a batched iterator over sheetName. batchSize of nil
// means "one batch for the whole sheet"; a non-nil batchSize pointing at
// 0 fails with ferror.InvalidArgument.
func (e *Executor[UnitOut, FinalOut]) IterSheet(sheetName string, batchSize *int) (*SheetIter[UnitOut], error) {
	return e.iterSheet(sheetName, batchSize)
}

// Consume drives sheetName to completion synchronously: each batch is
// converted then handed to consumeFn in order.
func (e *Executor[UnitOut, FinalOut]) Consume(sheetName string, batchSize *int, convert ConvertFunc[UnitOut, FinalOut], consume ConsumeFunc[FinalOut]) error {
	it, err := e.iterSheet(sheetName, batchSize)
	if err != nil {
		return err
	}
	defer it.rows.Close()

	for {
		batch, ok := it.Next()
		if !ok {
			return it.Err()
		}
		out, err := convert(batch)
		if err != nil {
			return err
		}
		if err := consume(out); err != nil {
			return err
		}
	}
}

// ConsumeMut is like Consume but takes a stateful consumer closure,
// mirroring the Rust source's consume_mut (FnMut) variant.
func (e *Executor[UnitOut, FinalOut]) ConsumeMut(sheetName string, batchSize *int, convert ConvertFunc[UnitOut, FinalOut], consume func(FinalOut) error) error {
	return e.Consume(sheetName, batchSize, convert, consume)
}

// ConsumeAsync drives sheetName to completion, dispatching each
// converted batch to consume without waiting for the previous batch's
// consumption to finish; it returns once every dispatched consume call
// has completed (or the first one fails). Batches remain converted in
// sheet order even though consumption runs concurrently.
func (e *Executor[UnitOut, FinalOut]) ConsumeAsync(sheetName string, batchSize *int, convert ConvertFunc[UnitOut, FinalOut], consume func(FinalOut) <-chan error) error {
	it, err := e.iterSheet(sheetName, batchSize)
	if err != nil {
		return err
	}
	defer it.rows.Close()

	var pending []<-chan error
	for {
		batch, ok := it.Next()
		if !ok {
			if it.Err() != nil {
				return it.Err()
			}
			break
		}
		out, err := convert(batch)
		if err != nil {
			return err
		}
		pending = append(pending, consume(out))
	}
	for _, ch := range pending {
		if err := <-ch; err != nil {
			return err
		}
	}
	return nil
}
