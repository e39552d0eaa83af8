package dataset

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
)

type xlsxReader struct{}

func (xlsxReader) CanRead(p string) bool {
	return strings.HasSuffix(strings.ToLower(p), ".xlsx")
}

// Read extracts the selected sheet. The first non-empty row is the header.
func (xlsxReader) Read(p string, opt Options) (*Table, error) {
	b, err := os.ReadFile(p)
	if err != nil {
		return nil, fmt.Errorf("read xlsx: %w", err)
	}
	zr, err := zip.NewReader(bytes.NewReader(b), int64(len(b)))
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	wb := workbook{
		sheets: parseWorkbookSheets(readZipEntry(zr, "xl/workbook.xml")),
		rels:   parseWorkbookRels(readZipEntry(zr, "xl/_rels/workbook.xml.rels")),
	}
	target, err := wb.resolve(opt.SheetName, opt.SheetIndex)
	if err != nil {
		return nil, err
	}
	sheetXML := readZipEntry(zr, target)
	if sheetXML == nil {
		return nil, fmt.Errorf("worksheet %s missing from workbook", target)
	}
	rows := newSheetRows(sheetXML, parseSharedStrings(readZipEntry(zr, "xl/sharedStrings.xml")))
	return readSheet(rows, filepath.Base(p), opt)
}

// readSheet builds a table from worksheet rows. Errors carry the sheet row
// number of the offending row.
func readSheet(rows *sheetRows, name string, opt Options) (*Table, error) {
	var header []string
	for len(header) == 0 {
		row, ok := rows.next()
		if !ok {
			if rows.err != nil {
				return nil, fmt.Errorf("read worksheet: %w", rows.err)
			}
			return nil, errors.New("worksheet has no header row")
		}
		header = row
	}
	rt, err := newRawTable(header)
	if err != nil {
		return nil, &ParseError{Path: name, Line: rows.line, Err: err}
	}
	for {
		row, ok := rows.next()
		if !ok {
			break
		}
		if err := rt.addRow(row); err != nil {
			return nil, &ParseError{Path: name, Line: rows.line, Err: err}
		}
	}
	if rows.err != nil {
		return nil, fmt.Errorf("read worksheet: %w", rows.err)
	}
	return rt.build(name, opt.allocator())
}

type wbSheet struct {
	Name    string
	SheetID int
	RID     string
}

type workbook struct {
	sheets []wbSheet
	rels   map[string]string // r:id -> Target
}

// resolve maps a sheet name or 1-based index to its ZIP entry path.
func (wb workbook) resolve(name string, index int) (string, error) {
	if name != "" {
		for _, s := range wb.sheets {
			if strings.EqualFold(s.Name, name) {
				if rel, ok := wb.rels[s.RID]; ok {
					return normalizeRelPath(rel), nil
				}
			}
		}
		avail := make([]string, len(wb.sheets))
		for i, s := range wb.sheets {
			avail[i] = s.Name
		}
		return "", fmt.Errorf("sheet %q not found; available sheets: %s", name, strings.Join(avail, ", "))
	}
	if index <= 0 {
		index = 1
	}
	for _, s := range wb.sheets {
		if s.SheetID == index {
			if rel, ok := wb.rels[s.RID]; ok {
				return normalizeRelPath(rel), nil
			}
		}
	}
	return fmt.Sprintf("xl/worksheets/sheet%d.xml", index), nil
}

func parseWorkbookSheets(data []byte) []wbSheet {
	var sheets []wbSheet
	forEachStart(data, func(se xml.StartElement) {
		if se.Name.Local != "sheet" {
			return
		}
		var s wbSheet
		for _, a := range se.Attr {
			switch a.Name.Local {
			case "name":
				s.Name = a.Value
			case "sheetId":
				s.SheetID, _ = strconv.Atoi(a.Value)
			case "id":
				s.RID = a.Value
			}
		}
		sheets = append(sheets, s)
	})
	return sheets
}

func parseWorkbookRels(data []byte) map[string]string {
	out := map[string]string{}
	forEachStart(data, func(se xml.StartElement) {
		if se.Name.Local != "Relationship" {
			return
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
	})
	return out
}

func forEachStart(data []byte, fn func(xml.StartElement)) {
	if len(data) == 0 {
		return
	}
	dec := xml.NewDecoder(bytes.NewReader(data))
	for {
		tok, err := dec.Token()
		if err != nil {
			return
		}
		if se, ok := tok.(xml.StartElement); ok {
			fn(se)
		}
	}
}

func readZipEntry(zr *zip.Reader, name string) []byte {
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil
		}
		defer rc.Close()
		b, err := io.ReadAll(rc)
		if err != nil {
			return nil
		}
		return b
	}
	return nil
}

func parseSharedStrings(data []byte) []string {
	if len(data) == 0 {
		return nil
	}
	dec := xml.NewDecoder(bytes.NewReader(data))
	var out []string
	var buf strings.Builder
	var inT bool
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
				buf.Write(se)
			}
		}
	}
}

// sheetRows streams rows of a worksheet as text cells.
type sheetRows struct {
	dec    *xml.Decoder
	shared []string
	err    error
	line   int // 1-based sheet row of the last row returned
}

func newSheetRows(data []byte, shared []string) *sheetRows {
	return &sheetRows{dec: xml.NewDecoder(bytes.NewReader(data)), shared: shared}
}

func (r *sheetRows) next() ([]string, bool) {
	var row []string
	inRow := false
	for {
		tok, err := r.dec.Token()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				r.err = err
			}
			return nil, false
		}
		switch se := tok.(type) {
		case xml.StartElement:
			switch {
			case se.Name.Local == "row":
				inRow = true
				row = nil
				r.line++
				for _, a := range se.Attr {
					if a.Name.Local == "r" {
						if n, err := strconv.Atoi(a.Value); err == nil && n > 0 {
							r.line = n
						}
					}
				}
			case inRow && se.Name.Local == "c":
				var ref, typ string
				for _, a := range se.Attr {
					switch a.Name.Local {
					case "r":
						ref = a.Value
					case "t":
						typ = a.Value
					}
				}
				idx := len(row)
				if ci := colIndexFromRef(ref); ref != "" && ci >= 0 {
					idx = ci
				}
				for len(row) <= idx {
					row = append(row, "")
				}
				row[idx] = r.cellValue(typ)
			}
		case xml.EndElement:
			if se.Name.Local == "row" && inRow {
				return row, true
			}
		}
	}
}

// cellValue consumes tokens up to </c>, resolving shared strings.
func (r *sheetRows) cellValue(typ string) string {
	var val string
	for {
		tok, err := r.dec.Token()
		if err != nil {
			return val
		}
		switch se := tok.(type) {
		case xml.StartElement:
			if se.Name.Local == "v" || se.Name.Local == "t" {
				var sb strings.Builder
				for {
					tk, err := r.dec.Token()
					if err != nil {
						break
					}
					if ed, ok := tk.(xml.EndElement); ok && (ed.Name.Local == "v" || ed.Name.Local == "t") {
						break
					}
					if ch, ok := tk.(xml.CharData); ok {
						sb.Write(ch)
					}
				}
				val = sb.String()
			}
		case xml.EndElement:
			if se.Name.Local != "c" {
				continue
			}
			if typ == "s" {
				idx, err := strconv.Atoi(val)
				if err == nil && idx >= 0 && idx < len(r.shared) {
					return r.shared[idx]
				}
				return ""
			}
			return val
		}
	}
}

// colIndexFromRef turns a cell reference like "C12" into a 0-based column.
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

// normalizeRelPath converts relationship targets to ZIP entry names.
// Targets may be absolute ("/xl/worksheets/sheet1.xml") or relative to xl/.
func normalizeRelPath(rel string) string {
	rel = strings.TrimPrefix(rel, "/")
	if strings.HasPrefix(rel, "xl/") {
		return rel
	}
	return path.Join("xl", rel)
}
