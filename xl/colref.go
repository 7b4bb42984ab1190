package xl

import (
	"fmt"
	"strconv"
	"strings"
)

// MinColumn and MaxColumn bound Excel's legal column range (A through
// XFD), per the OOXML spreadsheetML column limit.
const (
	MinColumn = 1
	MaxColumn = 16384
)

// ColumnNumberToLetter converts a 1-based column number into its Excel
// letter form (1 -> "A", 27 -> "AA", 16384 -> "XFD").
func ColumnNumberToLetter(n int) (string, error) {
	if n < MinColumn || n > MaxColumn {
		return "", fmt.Errorf("xl: column %d out of range [%d, %d]", n, MinColumn, MaxColumn)
	}
	var b strings.Builder
	for n > 0 {
		n--
		b.WriteByte(byte('A' + n%26))
		n /= 26
	}
	letters := []byte(b.String())
	for i, j := 0, len(letters)-1; i < j; i, j = i+1, j-1 {
		letters[i], letters[j] = letters[j], letters[i]
	}
	return string(letters), nil
}

// ColumnLetterToNumber converts an Excel column letter (e.g. "A", "AA",
// "XFD") into its 1-based column number.
func ColumnLetterToNumber(letters string) (int, error) {
	if letters == "" {
		return 0, fmt.Errorf("xl: empty column reference")
	}
	n := 0
	for _, c := range letters {
		if c < 'A' || c > 'Z' {
			return 0, fmt.Errorf("xl: invalid column letter %q", letters)
		}
		n = n*26 + int(c-'A'+1)
	}
	if n < MinColumn || n > MaxColumn {
		return 0, fmt.Errorf("xl: column %q out of range", letters)
	}
	return n, nil
}

// splitCellRef splits a cell reference like "B3" into its column letters
// and row number.
func splitCellRef(ref string) (col string, row int, err error) {
	end := len(ref)
	for i, c := range ref {
		if c < 'A' || c > 'Z' {
			end = i
			break
		}
	}
	col = ref[:end]
	rowNum, err := strconv.Atoi(ref[end:])
	if err != nil {
		return "", 0, fmt.Errorf("xl: invalid cell reference %q: %w", ref, err)
	}
	return col, rowNum, nil
}
