package xl

import (
	"strconv"

	"github.com/jacobbishopxy/fabrix/value"
)

// Cell is one decoded spreadsheet cell.
type Cell struct {
	// Value holds the decoded value; its ValueType is Null for a blank
	// cell, String/Bool/F64/Date/Time/DateTime depending on the cell's
	// declared type and (for numbers) its resolved number format.
	Value value.Value
	// Formula is the cell's formula text, empty when the cell has none.
	Formula string
	// Reference is the cell's address, e.g. "B3".
	Reference string
	// Style is the resolved number format code applied to the cell.
	Style string
	// CellType is the raw "t" attribute Excel recorded (s/str/b/e/etc,
	// empty for a plain number).
	CellType string
	// RawValue is the raw string found in the cell's <v> element.
	RawValue string
}

// Coordinates returns the cell's 1-based (column, row) position.
func (c Cell) Coordinates() (col, row int, err error) {
	colLetters, rowNum, err := splitCellRef(c.Reference)
	if err != nil {
		return 0, 0, err
	}
	colNum, err := ColumnLetterToNumber(colLetters)
	if err != nil {
		return 0, 0, err
	}
	return colNum, rowNum, nil
}

func newCell() Cell {
	return Cell{Value: value.NewNull()}
}

// decodeCellValue resolves a cell's raw <v> text into a typed value.Value
// given the cell's declared type attribute and resolved style, mirroring
// the original reader's type-tag dispatch (s/str/b/bl/e, falling back to
// date detection via style, falling back to a bare number).
func decodeCellValue(cellType, style, raw string, strings []string, dateSystem DateSystem) (value.Value, error) {
	switch cellType {
	case "s":
		if pos, err := strconv.Atoi(raw); err == nil && pos >= 0 && pos < len(strings) {
			return value.NewString(strings[pos]), nil
		}
		return value.NewString(raw), nil
	case "str":
		return value.NewString(raw), nil
	case "b":
		return value.NewBool(raw != "0"), nil
	case "bl":
		return value.NewNull(), nil
	case "e":
		return value.NewString(raw), nil
	default:
		if raw == "" {
			return value.NewNull(), nil
		}
		num, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return value.NewString(raw), nil
		}
		if !isDateStyle(style) {
			return value.NewF64(num), nil
		}
		dv, err := excelNumberToDate(num, dateSystem)
		if err != nil {
			return value.Value{}, err
		}
		switch dv.kind {
		case excelDate:
			return value.NewDate(dv.t), nil
		case excelTime:
			return value.NewTime(dv.t), nil
		case excelDateTime:
			return value.NewDateTime(dv.t), nil
		default:
			return value.NewF64(dv.num), nil
		}
	}
}
