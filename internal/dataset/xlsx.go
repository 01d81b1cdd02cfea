package dataset

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
)

// ReadXLSX loads one sheet of a workbook. Sheet selection follows the
// options: by name when SheetName is set, else by 1-based SheetIndex,
// defaulting to the first sheet. The first row is the header.
func ReadXLSX(path string, opt ReadOptions) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read xlsx: %w", err)
	}
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}

	sheets := readWorkbookSheets(zipEntry(zr, "xl/workbook.xml"))
	rels := readRelTargets(zipEntry(zr, "xl/_rels/workbook.xml.rels"))
	target, err := resolveSheet(sheets, rels, opt.SheetName, opt.SheetIndex, path)
	if err != nil {
		return nil, err
	}

	shared := readSharedStrings(zipEntry(zr, "xl/sharedStrings.xml"))
	rows := newSheetScanner(zipEntry(zr, target), shared)

	t := newTable(path, data, opt)
	header, ok := rows.Next()
	if !ok || len(header) == 0 {
		return t, nil
	}
	t.setHeader(header)

	maxRows := opt.MaxRows
	if maxRows <= 0 {
		maxRows = math.MaxInt
	}
	for {
		rec, ok := rows.Next()
		if !ok {
			break
		}
		t.TotalRows++
		if len(t.Rows) >= maxRows {
			continue
		}
		row := make([]string, len(t.Header))
		for i := range row {
			if i < len(rec) {
				row[i] = strings.TrimSpace(rec[i])
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

// resolveSheet maps the requested sheet to its zip path inside the
// workbook.
func resolveSheet(sheets []sheetEntry, rels map[string]string, name string, index int, path string) (string, error) {
	if name != "" {
		for _, s := range sheets {
			if strings.EqualFold(s.Name, name) {
				if rel, ok := rels[s.RID]; ok {
					return normalizeRelPath(rel), nil
				}
				break
			}
		}
		available := make([]string, len(sheets))
		for i, s := range sheets {
			available[i] = s.Name
		}
		return "", fmt.Errorf("sheet %q not found in workbook %q; available sheets: %s",
			name, filepath.Base(path), strings.Join(available, ", "))
	}
	if index <= 0 {
		index = 1
	}
	for _, s := range sheets {
		if s.SheetID == index {
			if rel, ok := rels[s.RID]; ok {
				return normalizeRelPath(rel), nil
			}
		}
	}
	return filepath.Join("xl", "worksheets", fmt.Sprintf("sheet%d.xml", index)), nil
}

type sheetEntry struct {
	Name    string
	SheetID int
	RID     string
}

func readWorkbookSheets(data []byte) []sheetEntry {
	var sheets []sheetEntry
	dec := xml.NewDecoder(bytes.NewReader(data))
	for {
		tok, err := dec.Token()
		if err != nil {
			return sheets
		}
		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != "sheet" {
			continue
		}
		var s sheetEntry
		for _, a := range se.Attr {
			switch a.Name.Local {
			case "name":
				s.Name = a.Value
			case "sheetId":
				s.SheetID = atoiSafe(a.Value)
			case "id":
				s.RID = a.Value
			}
		}
		sheets = append(sheets, s)
	}
}

func readRelTargets(data []byte) map[string]string {
	out := map[string]string{}
	dec := xml.NewDecoder(bytes.NewReader(data))
	for {
		tok, err := dec.Token()
		if err != nil {
			return out
		}
		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != "Relationship" {
			continue
		}
		var id, target string
		for _, a := range se.Attr {
			switch a.Name.Local {
			case "Id":
				id = a.Value
			case "Target":
				target = a.Value
			}
		}
		if id != "" && target != "" {
			out[id] = target
		}
	}
}

func readSharedStrings(data []byte) []string {
	var out []string
	var buf strings.Builder
	inT := false
	dec := xml.NewDecoder(bytes.NewReader(data))
	for {
		tok, err := dec.Token()
		if err != nil {
			return out
		}
		switch se := tok.(type) {
		case xml.StartElement:
			switch se.Name.Local {
			case "si":
				buf.Reset()
			case "t":
				inT = true
			}
		case xml.EndElement:
			switch se.Name.Local {
			case "t":
				inT = false
			case "si":
				out = append(out, buf.String())
				buf.Reset()
			}
		case xml.CharData:
			if inT {
				buf.Write([]byte(se))
			}
		}
	}
}

func zipEntry(zr *zip.Reader, name string) []byte {
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil
		}
		defer rc.Close()
		b, _ := io.ReadAll(rc)
		return b
	}
	return nil
}

// sheetScanner walks <row> elements of one worksheet, resolving shared
// strings and sparse cell references into dense string rows.
type sheetScanner struct {
	dec    *xml.Decoder
	shared []string
	row    []string
	width  int
}

func newSheetScanner(data []byte, shared []string) *sheetScanner {
	return &sheetScanner{dec: xml.NewDecoder(bytes.NewReader(data)), shared: shared}
}

func (s *sheetScanner) Next() ([]string, bool) {
	inRow := false
	for {
		tok, err := s.dec.Token()
		if err != nil {
			return nil, false
		}
		switch se := tok.(type) {
		case xml.StartElement:
			switch se.Name.Local {
			case "row":
				inRow = true
				s.row = nil
				s.width = 0
			case "c":
				if !inRow {
					continue
				}
				var ref, kind string
				for _, a := range se.Attr {
					switch a.Name.Local {
					case "r":
						ref = a.Value
					case "t":
						kind = a.Value
					}
				}
				col := colIndexFromRef(ref)
				if col < 0 {
					// no cell reference: next position
					col = len(s.row)
				}
				if col+1 > s.width {
					s.width = col + 1
				}
				val := s.cellValue(kind)
				if len(s.row) <= col {
					grown := make([]string, col+1)
					copy(grown, s.row)
					s.row = grown
				}
				s.row[col] = val
			}
		case xml.EndElement:
			if se.Name.Local == "row" {
				if len(s.row) < s.width {
					grown := make([]string, s.width)
					copy(grown, s.row)
					s.row = grown
				}
				return s.row, true
			}
		}
	}
}

// cellValue reads to the end of the current <c> element, capturing the <v>
// or inline <is><t> payload and resolving shared-string cells.
func (s *sheetScanner) cellValue(kind string) string {
	var val string
	for {
		tok, err := s.dec.Token()
		if err != nil {
			return val
		}
		switch se := tok.(type) {
		case xml.StartElement:
			if se.Name.Local == "v" || se.Name.Local == "t" {
				var sb strings.Builder
				for {
					inner, err := s.dec.Token()
					if err != nil {
						break
					}
					if end, ok := inner.(xml.EndElement); ok && (end.Name.Local == "v" || end.Name.Local == "t") {
						break
					}
					if ch, ok := inner.(xml.CharData); ok {
						sb.Write([]byte(ch))
					}
				}
				val = sb.String()
			}
		case xml.EndElement:
			if se.Name.Local == "c" {
				if kind == "s" {
					idx := atoiSafe(val)
					if idx >= 0 && idx < len(s.shared) {
						return s.shared[idx]
					}
					return ""
				}
				return val
			}
		}
	}
}

// colIndexFromRef turns a cell reference like "C12" into the 0-based
// column index.
func colIndexFromRef(ref string) int {
	idx := 0
	for i := 0; i < len(ref); i++ {
		c := ref[i]
		switch {
		case c >= 'A' && c <= 'Z':
			idx = idx*26 + int(c-'A'+1)
		case c >= 'a' && c <= 'z':
			idx = idx*26 + int(c-'a'+1)
		default:
			return idx - 1
		}
	}
	return idx - 1
}

func atoiSafe(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			break
		}
		n = n*10 + int(s[i]-'0')
	}
	return n
}

// normalizeRelPath maps relationship targets, which may carry a leading
// slash, onto zip entry names.
func normalizeRelPath(rel string) string {
	rel = strings.TrimPrefix(rel, "/")
	if strings.HasPrefix(rel, "xl/") {
		return rel
	}
	return filepath.Join("xl", rel)
}
