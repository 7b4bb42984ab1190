package xl

import (
	"archive/zip"
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jacobbishopxy/fabrix/value"
)

const testWorkbookXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<workbook xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main">
  <sheets>
    <sheet name="Sheet1" sheetId="1" r:id="rId1" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships"/>
  </sheets>
</workbook>`

const testRelsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="worksheet" Target="worksheets/sheet1.xml"/>
</Relationships>`

const testSharedStringsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<sst xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main" count="2" uniqueCount="2">
  <si><t>hello</t></si>
  <si><t xml:space="preserve"> padded </t></si>
</sst>`

const testStylesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<styleSheet xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main">
  <numFmts count="1">
    <numFmt numFmtId="200" formatCode="yyyy-mm-dd"/>
  </numFmts>
  <cellXfs count="2">
    <xf numFmtId="0"/>
    <xf numFmtId="200"/>
  </cellXfs>
</styleSheet>`

const testSheetXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<worksheet xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main">
  <dimension ref="A1:C2"/>
  <sheetData>
    <row r="1">
      <c r="A1" t="s"><v>0</v></c>
      <c r="B1"><v>42</v></c>
      <c r="C1" s="1"><v>44562</v></c>
    </row>
    <row r="2">
      <c r="A2" t="s"><v>1</v></c>
    </row>
  </sheetData>
</worksheet>`

func buildTestWorkbook(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	files := map[string]string{
		"xl/workbook.xml":            testWorkbookXML,
		"xl/_rels/workbook.xml.rels": testRelsXML,
		"xl/sharedStrings.xml":       testSharedStringsXML,
		"xl/styles.xml":              testStylesXML,
		"xl/worksheets/sheet1.xml":   testSheetXML,
	}
	for name, content := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestOpenWorkbookResolvesSheetsAndStrings(t *testing.T) {
	data := buildTestWorkbook(t)
	wb, err := Open(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	sheets := wb.Sheets()
	require.Len(t, sheets, 1)
	assert.Equal(t, "Sheet1", sheets[0].Name)
	assert.Equal(t, 1, sheets[0].Position)

	assert.Equal(t, []string{"hello", " padded "}, wb.strings)
	assert.Equal(t, DateSystem1900, wb.dateSystem)
}

func TestRowIterDecodesSharedStringsNumbersAndDates(t *testing.T) {
	data := buildTestWorkbook(t)
	wb, err := Open(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	sheet, ok := wb.SheetByName("Sheet1")
	require.True(t, ok)

	it, err := wb.Rows(sheet)
	require.NoError(t, err)
	defer it.Close()

	row1, ok := it.Next()
	require.True(t, ok)
	assert.Equal(t, 1, row1.Num)
	require.Len(t, row1.Data, 3)
	assert.Equal(t, value.NewString("hello"), row1.Data[0].Value)
	assert.Equal(t, value.NewF64(42), row1.Data[1].Value)
	assert.Equal(t, value.Date, row1.Data[2].Value.Type())

	row2, ok := it.Next()
	require.True(t, ok)
	assert.Equal(t, 2, row2.Num)
	assert.Equal(t, value.NewString(" padded "), row2.Data[0].Value)

	_, ok = it.Next()
	assert.False(t, ok)
	assert.NoError(t, it.Err)
}

func TestColumnLetterRoundTrip(t *testing.T) {
	cases := map[int]string{1: "A", 26: "Z", 27: "AA", 16384: "XFD"}
	for n, letters := range cases {
		got, err := ColumnNumberToLetter(n)
		require.NoError(t, err)
		assert.Equal(t, letters, got)

		back, err := ColumnLetterToNumber(letters)
		require.NoError(t, err)
		assert.Equal(t, n, back)
	}
}

func TestColumnNumberOutOfRange(t *testing.T) {
	_, err := ColumnNumberToLetter(0)
	assert.Error(t, err)
	_, err = ColumnNumberToLetter(16385)
	assert.Error(t, err)
}

func TestExcelNumberToDate1900LeapBugRejected(t *testing.T) {
	_, err := excelNumberToDate(60.0, DateSystem1900)
	assert.Error(t, err)
}

func TestExcelNumberToDateKinds(t *testing.T) {
	// 44562 = 2022-01-01 under the 1900 system.
	dv, err := excelNumberToDate(44562, DateSystem1900)
	require.NoError(t, err)
	assert.Equal(t, excelDate, dv.kind)
	assert.Equal(t, 2022, dv.t.Year())
	assert.Equal(t, time.January, dv.t.Month())
	assert.Equal(t, 1, dv.t.Day())

	// a pure time-of-day serial (< 1 day) decodes as Time.
	dv2, err := excelNumberToDate(0.5, DateSystem1900)
	require.NoError(t, err)
	assert.Equal(t, excelTime, dv2.kind)
	assert.Equal(t, 12, dv2.t.Hour())
}
