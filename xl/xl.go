// Package xl reads OOXML (.xlsx) spreadsheets with a streaming, SAX-style
// row reader. It never loads an entire sheet into memory: Workbook opens
// the zip container and eagerly resolves the small shared lookup tables
// (shared strings, cell styles, the 1900/1904 date system), and RowIter
// walks a single worksheet's XML a row at a time.
//
// Grounded on original_source/fabrix-xl (a Rust implementation over
// quick_xml + zip); this package is the Go equivalent over the standard
// library's archive/zip and encoding/xml, which is the idiomatic Go
// primitive for the same streaming-XML-over-zip shape.
package xl

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
)

// DateSystem identifies which epoch a workbook's serial date numbers are
// relative to.
type DateSystem uint8

const (
	// DateSystem1900 is Excel's default epoch, based at 1899-12-31 with
	// the historical (intentional) leap-year bug for 1900-02-29.
	DateSystem1900 DateSystem = iota
	// DateSystem1904 is the epoch Excel for Mac workbooks may opt into,
	// based at 1904-01-01 with no leap-year bug to correct for.
	DateSystem1904
)

// Workbook is an opened .xlsx file. It holds the zip archive plus the
// small lookup tables every worksheet needs to decode its cells: the
// shared string table, the resolved per-style number format codes, and
// the date system.
type Workbook struct {
	zr         *zip.Reader
	rc         io.Closer
	dateSystem DateSystem
	strings    []string
	styles     []string
	sheets     []SheetInfo
	relTargets map[string]string
}

// SheetInfo describes one worksheet as declared in workbook.xml, before
// its rows are read.
type SheetInfo struct {
	Name string
	// Position is the sheet's 1-based position in the workbook, "for
	// consistency with VBA" (the convention the original Rust reader
	// documents and this package preserves).
	Position int
	RelID    string
	SheetID  int
	target   string
}

// Open reads the zip directory and resolves sharedStrings.xml,
// styles.xml, and workbook.xml's date system. The returned Workbook keeps
// the zip.Reader open for subsequent per-sheet streaming reads; callers
// must call Close when done.
func Open(r io.ReaderAt, size int64) (*Workbook, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("xl: open zip: %w", err)
	}
	wb := &Workbook{zr: zr}

	wb.relTargets, err = wb.readRelationships()
	if err != nil {
		return nil, err
	}
	wb.sheets, err = wb.readSheets()
	if err != nil {
		return nil, err
	}
	wb.strings, err = wb.readSharedStrings()
	if err != nil {
		return nil, err
	}
	wb.styles, err = wb.readStyles()
	if err != nil {
		return nil, err
	}
	wb.dateSystem, err = wb.readDateSystem()
	if err != nil {
		return nil, err
	}
	return wb, nil
}

// OpenFile opens path as an xlsx file on disk.
func OpenFile(path string) (*Workbook, error) {
	rc, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("xl: open file: %w", err)
	}
	wb := &Workbook{zr: &rc.Reader, rc: rc}

	wb.relTargets, err = wb.readRelationships()
	if err != nil {
		rc.Close()
		return nil, err
	}
	wb.sheets, err = wb.readSheets()
	if err != nil {
		rc.Close()
		return nil, err
	}
	wb.strings, err = wb.readSharedStrings()
	if err != nil {
		rc.Close()
		return nil, err
	}
	wb.styles, err = wb.readStyles()
	if err != nil {
		rc.Close()
		return nil, err
	}
	wb.dateSystem, err = wb.readDateSystem()
	if err != nil {
		rc.Close()
		return nil, err
	}
	return wb, nil
}

// Close releases the underlying zip reader, when one was opened from a
// file path.
func (wb *Workbook) Close() error {
	if wb.rc != nil {
		return wb.rc.Close()
	}
	return nil
}

// Sheets returns every worksheet declared in the workbook, in declared
// order.
func (wb *Workbook) Sheets() []SheetInfo {
	out := make([]SheetInfo, len(wb.sheets))
	copy(out, wb.sheets)
	return out
}

// SheetByName returns the worksheet with the given name, or false if no
// such sheet exists.
func (wb *Workbook) SheetByName(name string) (SheetInfo, bool) {
	for _, s := range wb.sheets {
		if s.Name == name {
			return s, true
		}
	}
	return SheetInfo{}, false
}

// SheetByPosition returns the worksheet at the given 1-based position
// ("consistent with VBA"), or false if out of range.
func (wb *Workbook) SheetByPosition(pos int) (SheetInfo, bool) {
	for _, s := range wb.sheets {
		if s.Position == pos {
			return s, true
		}
	}
	return SheetInfo{}, false
}

func (wb *Workbook) openZipMember(name string) (io.ReadCloser, error) {
	f, err := wb.zr.Open(name)
	if err != nil {
		return nil, fmt.Errorf("xl: %s not found: %w", name, err)
	}
	return f, nil
}

type relationshipsXML struct {
	XMLName       xml.Name `xml:"Relationships"`
	Relationships []struct {
		ID     string `xml:"Id,attr"`
		Target string `xml:"Target,attr"`
	} `xml:"Relationship"`
}

func (wb *Workbook) readRelationships() (map[string]string, error) {
	f, err := wb.openZipMember("xl/_rels/workbook.xml.rels")
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var rels relationshipsXML
	if err := xml.NewDecoder(f).Decode(&rels); err != nil {
		return nil, fmt.Errorf("xl: parse workbook.xml.rels: %w", err)
	}
	out := make(map[string]string, len(rels.Relationships))
	for _, r := range rels.Relationships {
		out[r.ID] = r.Target
	}
	return out, nil
}

type workbookXML struct {
	XMLName    xml.Name `xml:"workbook"`
	WorkbookPr struct {
		Date1904 string `xml:"date1904,attr"`
	} `xml:"workbookPr"`
	Sheets struct {
		Sheet []struct {
			Name    string `xml:"name,attr"`
			SheetID int    `xml:"sheetId,attr"`
			RelID   string `xml:"id,attr"`
		} `xml:"sheet"`
	} `xml:"sheets"`
}

func (wb *Workbook) readSheets() ([]SheetInfo, error) {
	f, err := wb.openZipMember("xl/workbook.xml")
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var doc workbookXML
	if err := xml.NewDecoder(f).Decode(&doc); err != nil {
		return nil, fmt.Errorf("xl: parse workbook.xml: %w", err)
	}

	out := make([]SheetInfo, 0, len(doc.Sheets.Sheet))
	for i, s := range doc.Sheets.Sheet {
		target := wb.relTargets[s.RelID]
		target = resolveTarget(target)
		out = append(out, SheetInfo{
			Name:     s.Name,
			Position: i + 1,
			RelID:    s.RelID,
			SheetID:  s.SheetID,
			target:   target,
		})
	}
	return out, nil
}

// resolveTarget turns a relationship's Target attribute into a full zip
// member path: relative targets get the "xl/" prefix, absolute targets
// (starting with "/") lose their leading slash.
func resolveTarget(target string) string {
	if target == "" {
		return ""
	}
	if target[0] == '/' {
		return target[1:]
	}
	return "xl/" + target
}

func (wb *Workbook) readDateSystem() (DateSystem, error) {
	f, err := wb.openZipMember("xl/workbook.xml")
	if err != nil {
		return DateSystem1900, err
	}
	defer f.Close()

	var doc workbookXML
	if err := xml.NewDecoder(f).Decode(&doc); err != nil {
		return DateSystem1900, fmt.Errorf("xl: parse workbook.xml: %w", err)
	}
	if doc.WorkbookPr.Date1904 == "1" || doc.WorkbookPr.Date1904 == "true" {
		return DateSystem1904, nil
	}
	return DateSystem1900, nil
}
