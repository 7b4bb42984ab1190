package xl

import (
	"encoding/xml"
	"fmt"
	"strings"
)

// sharedStringsXML mirrors xl/sharedStrings.xml's <si> entries. A shared
// string can be a plain <t>, or (for rich text) a sequence of <r><t>...
// runs; this reader concatenates whichever text nodes it finds, which
// covers both shapes.
type sharedStringsXML struct {
	XMLName xml.Name `xml:"sst"`
	SI      []struct {
		T *preservedText `xml:"t"`
		R []struct {
			T preservedText `xml:"t"`
		} `xml:"r"`
	} `xml:"si"`
}

// preservedText captures xml:space="preserve" so leading/trailing
// whitespace in a shared string is kept verbatim instead of being
// trimmed by naive text handling.
type preservedText struct {
	Space string `xml:"space,attr"`
	Value string `xml:",chardata"`
}

func (wb *Workbook) readSharedStrings() ([]string, error) {
	f, err := wb.zr.Open("xl/sharedStrings.xml")
	if err != nil {
		// sharedStrings.xml is optional: a workbook with no string
		// cells at all may omit it.
		return nil, nil
	}
	defer f.Close()

	var doc sharedStringsXML
	if err := xml.NewDecoder(f).Decode(&doc); err != nil {
		return nil, fmt.Errorf("xl: parse sharedStrings.xml: %w", err)
	}

	out := make([]string, len(doc.SI))
	for i, si := range doc.SI {
		switch {
		case si.T != nil:
			out[i] = preserveOrTrim(*si.T)
		case len(si.R) > 0:
			var b strings.Builder
			for _, r := range si.R {
				b.WriteString(preserveOrTrim(r.T))
			}
			out[i] = b.String()
		default:
			out[i] = ""
		}
	}
	return out, nil
}

func preserveOrTrim(t preservedText) string {
	if t.Space == "preserve" {
		return t.Value
	}
	return strings.TrimSpace(t.Value)
}
