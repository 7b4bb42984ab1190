package xl

import (
	"encoding/xml"
	"fmt"
	"strings"
)

// standardNumFmts lists the built-in numFmtId -> formatCode pairs defined
// by ISO/IEC 29500-1:2011 section 18.8.30. A workbook may also declare
// custom <numFmt> entries in styles.xml with ids above 163; those are
// merged on top of this table when resolving cellXfs.
var standardNumFmts = map[string]string{
	"0":  "General",
	"1":  "0",
	"2":  "0.00",
	"3":  "#,##0",
	"4":  "#,##0.00",
	"9":  "0%",
	"10": "0.00%",
	"11": "0.00E+00",
	"12": "# ?/?",
	"13": "# ??/??",
	"14": "mm-dd-yy",
	"15": "d-mmm-yy",
	"16": "d-mmm",
	"17": "mmm-yy",
	"18": "h:mm AM/PM",
	"19": "h:mm:ss AM/PM",
	"20": "h:mm",
	"21": "h:mm:ss",
	"22": "m/d/yy h:mm",
	"37": "#,##0 ;(#,##0)",
	"38": "#,##0 ;[Red](#,##0)",
	"39": "#,##0.00;(#,##0.00)",
	"40": "#,##0.00;[Red](#,##0.00)",
	"45": "mm:ss",
	"46": "[h]:mm:ss",
	"47": "mmss.0",
	"48": "##0.0E+0",
	"49": "@",
}

// stylesXML is a hand-rolled walk over styles.xml rather than a fully
// typed struct: numFmt entries live as siblings of cellXfs, and cellXfs's
// xf children are what cell "s" attributes actually index into, so the
// two need to be correlated by numFmtId during a single pass.
type stylesXML struct {
	XMLName  xml.Name `xml:"styleSheet"`
	NumFmts  struct {
		NumFmt []struct {
			NumFmtID   string `xml:"numFmtId,attr"`
			FormatCode string `xml:"formatCode,attr"`
		} `xml:"numFmt"`
	} `xml:"numFmts"`
	CellXfs struct {
		Xf []struct {
			NumFmtID string `xml:"numFmtId,attr"`
		} `xml:"xf"`
	} `xml:"cellXfs"`
}

// readStyles resolves each cellXfs entry (indexed by a cell's "s"
// attribute) to its number format code, merging custom numFmt
// declarations on top of the ISO standard table.
func (wb *Workbook) readStyles() ([]string, error) {
	f, err := wb.zr.Open("xl/styles.xml")
	if err != nil {
		// styles.xml is optional for minimal workbooks with no
		// explicit cell formatting.
		return nil, nil
	}
	defer f.Close()

	var doc stylesXML
	if err := xml.NewDecoder(f).Decode(&doc); err != nil {
		return nil, fmt.Errorf("xl: parse styles.xml: %w", err)
	}

	formats := make(map[string]string, len(standardNumFmts)+len(doc.NumFmts.NumFmt))
	for id, code := range standardNumFmts {
		formats[id] = code
	}
	for _, nf := range doc.NumFmts.NumFmt {
		formats[nf.NumFmtID] = nf.FormatCode
	}

	styles := make([]string, 0, len(doc.CellXfs.Xf))
	for _, xf := range doc.CellXfs.Xf {
		if code, ok := formats[xf.NumFmtID]; ok {
			styles = append(styles, code)
		} else {
			styles = append(styles, "")
		}
	}
	return styles, nil
}

// isDateStyle reports whether a resolved number format code looks like a
// date/time format, mirroring the original reader's heuristic: a format
// containing 'd' (but not the "Red" negative-color marker), 'm', or 'y'
// is treated as date-like, since OOXML has no separate "this is a date"
// flag on a cell - only the format string to go by.
func isDateStyle(style string) bool {
	if style == "d" {
		return true
	}
	hasD := strings.ContainsRune(style, 'd') && !strings.Contains(style, "Red")
	hasM := strings.ContainsRune(style, 'm')
	if hasD || hasM {
		return true
	}
	return strings.ContainsRune(style, 'y')
}
