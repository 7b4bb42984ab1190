package xl

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
)

// Row is one worksheet row: its 1-based row number plus every cell from
// column 1 through the widest column seen in the sheet so far. Gaps
// between populated cells, and rows the source XML skips entirely
// (because OOXML omits empty rows), are filled in with blank Cells so
// callers always see a dense rectangular grid.
type Row struct {
	Num  int
	Data []Cell
}

// RowIter streams a worksheet's rows one at a time without loading the
// whole sheet into memory. Create one with Workbook.Rows.
type RowIter struct {
	dec        *xml.Decoder
	closer     io.Closer
	strings    []string
	styles     []string
	dateSystem DateSystem

	wantRow  int
	buffered *Row
	numCols  int
	numRows  int
	doneFile bool

	// Err is set when the underlying XML stream fails; once set,
	// Next returns false permanently.
	Err error
}

// Rows returns a streaming row iterator for the given sheet. Callers
// must call Close when finished (or exhaust the iterator with Next until
// it returns false, which closes automatically).
func (wb *Workbook) Rows(sheet SheetInfo) (*RowIter, error) {
	if sheet.target == "" {
		return nil, fmt.Errorf("xl: worksheet %q has no resolved target", sheet.Name)
	}
	f, err := wb.openZipMember(sheet.target)
	if err != nil {
		return nil, err
	}
	return &RowIter{
		dec:        xml.NewDecoder(f),
		closer:     f,
		strings:    wb.strings,
		styles:     wb.styles,
		dateSystem: wb.dateSystem,
		wantRow:    1,
	}, nil
}

// Close releases the underlying zip member reader.
func (it *RowIter) Close() error {
	return it.closer.Close()
}

// RowsByName is a convenience wrapper over Rows that looks the sheet up
// by name first.
func (wb *Workbook) RowsByName(name string) (*RowIter, error) {
	sheet, ok := wb.SheetByName(name)
	if !ok {
		return nil, fmt.Errorf("xl: worksheet %q not found", name)
	}
	return wb.Rows(sheet)
}

// Next advances to the next row and reports whether one is available.
// Use Row to retrieve it. Rows are synthesized (all-blank) for any row
// number the source XML omits, so every call between 1 and the sheet's
// row count succeeds.
func (it *RowIter) Next() (Row, bool) {
	if it.buffered != nil {
		current := it.wantRow
		it.wantRow++
		if it.buffered.Num == current {
			r := *it.buffered
			it.buffered = nil
			return r, true
		}
		return emptyRow(it.numCols, current), true
	}
	if it.doneFile && it.wantRow <= it.numRows {
		r := emptyRow(it.numCols, it.wantRow)
		it.wantRow++
		return r, true
	}

	row, err := it.readNextRow()
	if err != nil {
		it.Err = err
		return Row{}, false
	}

	it.wantRow++
	if row == nil {
		if it.wantRow-1 <= it.numRows {
			it.doneFile = true
			return emptyRow(it.numCols, it.wantRow-1), true
		}
		return Row{}, false
	}
	return *row, true
}

// readNextRow walks the underlying XML token stream until it has
// accumulated one complete <row>, buffering it (and returning a
// synthesized blank row instead) if the row it found is further ahead
// than the row the caller currently wants - this is how gaps for
// entirely-omitted rows get filled in.
func (it *RowIter) readNextRow() (*Row, error) {
	var cells []Cell
	inCell := false
	inValue := false
	cell := newCell()
	var thisRowNum int

	for {
		tok, err := it.dec.Token()
		if err == io.EOF {
			return nil, nil
		}
		if err != nil {
			return nil, fmt.Errorf("xl: reading worksheet xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "dimension":
				if ref := attrValue(t, "ref"); ref != "" && ref != "A1" {
					rows, cols := usedArea(ref)
					if cols > 0 {
						it.numCols = cols
					}
					if rows > 0 {
						it.numRows = rows
					}
				}
			case "row":
				if r := attrValue(t, "r"); r != "" {
					n, err := strconv.Atoi(r)
					if err != nil {
						return nil, fmt.Errorf("xl: invalid row number %q: %w", r, err)
					}
					thisRowNum = n
				}
			case "c":
				inCell = true
				cell.Reference = attrValue(t, "r")
				cell.CellType = attrValue(t, "t")
				if s := attrValue(t, "s"); s != "" {
					if idx, err := strconv.Atoi(s); err == nil && idx >= 0 && idx < len(it.styles) {
						cell.Style = it.styles[idx]
					}
				}
			case "v":
				inValue = true
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "v":
				inValue = false
			case "c":
				decoded, derr := decodeCellValue(cell.CellType, cell.Style, cell.RawValue, it.strings, it.dateSystem)
				if derr != nil {
					return nil, derr
				}
				cell.Value = decoded
				cells = fillGapAndAppend(cells, cell)
				cell = newCell()
				inCell = false
			case "row":
				if len(cells) > it.numCols {
					it.numCols = len(cells)
				}
				cells = padTo(cells, it.numCols, thisRowNum)
				row := &Row{Num: thisRowNum, Data: cells}
				if thisRowNum == it.wantRow {
					return row, nil
				}
				it.buffered = row
				empty := emptyRow(it.numCols, it.wantRow)
				return &empty, nil
			}
		case xml.CharData:
			switch {
			case inValue:
				cell.RawValue += string(t)
			case inCell:
				cell.Formula += string(t)
			}
		}
	}
}

func attrValue(t xml.StartElement, name string) string {
	for _, a := range t.Attr {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

// fillGapAndAppend inserts blank cells for any column positions skipped
// between the previous cell and c, then appends c.
func fillGapAndAppend(row []Cell, c Cell) []Cell {
	thisCol, thisRow, err := c.Coordinates()
	if err != nil {
		return append(row, c)
	}
	if len(row) == 0 {
		for n := 1; n < thisCol; n++ {
			row = append(row, blankCellAt(n, thisRow))
		}
		return append(row, c)
	}
	lastCol, _, err := row[len(row)-1].Coordinates()
	if err != nil {
		return append(row, c)
	}
	for lastCol+1 < thisCol {
		lastCol++
		row = append(row, blankCellAt(lastCol, thisRow))
	}
	return append(row, c)
}

func blankCellAt(col, row int) Cell {
	c := newCell()
	letters, _ := ColumnNumberToLetter(col)
	c.Reference = fmt.Sprintf("%s%d", letters, row)
	return c
}

func padTo(row []Cell, width, rowNum int) []Cell {
	for len(row) < width {
		row = append(row, blankCellAt(len(row)+1, rowNum))
	}
	return row
}

func emptyRow(numCols, rowNum int) Row {
	row := make([]Cell, 0, numCols)
	for n := 1; n <= numCols; n++ {
		row = append(row, blankCellAt(n, rowNum))
	}
	return Row{Num: rowNum, Data: row}
}

// usedArea parses a dimension ref like "A1:C10" into (rows, cols); a
// ref with no ':' (a single cell) yields (0, 0) since that gives no
// useful upper bound.
func usedArea(ref string) (rows, cols int) {
	colonAt := -1
	for i, c := range ref {
		if c == ':' {
			colonAt = i
			break
		}
	}
	if colonAt == -1 {
		return 0, 0
	}
	end := ref[colonAt+1:]
	colLetters, rowNum, err := splitCellRef(end)
	if err != nil {
		return 0, 0
	}
	colNum, err := ColumnLetterToNumber(colLetters)
	if err != nil {
		return 0, 0
	}
	return rowNum, colNum
}
