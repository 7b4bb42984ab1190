package xlexec_test

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jacobbishopxy/fabrix/value"
	"github.com/jacobbishopxy/fabrix/xl"
	"github.com/jacobbishopxy/fabrix/xlexec"
)

const workbookXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<workbook xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main">
  <sheets>
    <sheet name="data" sheetId="1" r:id="rId1" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships"/>
  </sheets>
</workbook>`

const relsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="worksheet" Target="worksheets/sheet1.xml"/>
</Relationships>`

const sheetXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<worksheet xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main">
  <sheetData>
    <row r="1">
      <c r="A1"><v>1</v></c>
      <c r="B1"><v>2</v></c>
    </row>
    <row r="2">
      <c r="A2"><v>3</v></c>
      <c r="B2"><v>4</v></c>
    </row>
    <row r="3">
      <c r="A3"><v>5</v></c>
      <c r="B3"><v>6</v></c>
    </row>
  </sheetData>
</worksheet>`

func buildWorkbook(t *testing.T) *xl.Workbook {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	files := map[string]string{
		"xl/workbook.xml":            workbookXML,
		"xl/_rels/workbook.xml.rels": relsXML,
		"xl/worksheets/sheet1.xml":   sheetXML,
	}
	for name, content := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())

	data := buf.Bytes()
	wb, err := xl.Open(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	return wb
}

func transformToFloat(cell xl.Cell) float64 {
	if cell.Value.Type() != value.F64 {
		return 0
	}
	return cell.Value.AsF64()
}

func intPtr(i int) *int { return &i }

func TestSheetIterBatchesRows(t *testing.T) {
	wb := buildWorkbook(t)
	sheet, ok := wb.SheetByName("data")
	require.True(t, ok)
	rows, err := wb.Rows(sheet)
	require.NoError(t, err)
	defer rows.Close()

	it, err := xlexec.NewSheetIter(rows, transformToFloat, intPtr(2))
	require.NoError(t, err)

	batch1, ok := it.Next()
	require.True(t, ok)
	assert.Equal(t, [][]float64{{1, 2}, {3, 4}}, batch1)

	batch2, ok := it.Next()
	require.True(t, ok)
	assert.Equal(t, [][]float64{{5, 6}}, batch2)

	_, ok = it.Next()
	assert.False(t, ok)
	assert.NoError(t, it.Err())
}

type sumResult struct {
	total float64
}

func convertSum(batch [][]float64) (sumResult, error) {
	var total float64
	for _, row := range batch {
		for _, v := range row {
			total += v
		}
	}
	return sumResult{total: total}, nil
}

func TestExecutorConsumeSumsAllBatches(t *testing.T) {
	wb := buildWorkbook(t)
	exec := xlexec.NewExecutor[float64, sumResult](wb, transformToFloat)

	var totals []float64
	err := exec.Consume("data", intPtr(2), convertSum, func(r sumResult) error {
		totals = append(totals, r.total)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []float64{10, 11}, totals)
}

func TestExecutorConsumeAsyncCollectsAllBatches(t *testing.T) {
	wb := buildWorkbook(t)
	exec := xlexec.NewExecutor[float64, sumResult](wb, transformToFloat)

	var totals []float64
	err := exec.ConsumeAsync("data", nil, convertSum, func(r sumResult) <-chan error {
		ch := make(chan error, 1)
		totals = append(totals, r.total)
		ch <- nil
		return ch
	})
	require.NoError(t, err)
	assert.Equal(t, []float64{21}, totals)
}

func TestExecutorIterSheetMissingSheetErrors(t *testing.T) {
	wb := buildWorkbook(t)
	exec := xlexec.NewExecutor[float64, sumResult](wb, transformToFloat)

	_, err := exec.IterSheet("nope", nil)
	assert.Error(t, err)
}

func TestNewSheetIterZeroBatchSizeIsInvalidArgument(t *testing.T) {
	wb := buildWorkbook(t)
	sheet, ok := wb.SheetByName("data")
	require.True(t, ok)
	rows, err := wb.Rows(sheet)
	require.NoError(t, err)
	defer rows.Close()

	_, err = xlexec.NewSheetIter(rows, transformToFloat, intPtr(0))
	assert.Error(t, err)
}
