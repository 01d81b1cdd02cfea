// Package dataset reads the CSV and XLSX files M&V work starts from and
// turns them into numeric series: whole-column extraction for the
// calculators, paired x/y extraction for regression, and a one-pass summary
// for the first look at an unfamiliar file.
package dataset

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/greenmetrics/mvstat/internal/regress"
)

// ReadOptions controls file reading and numeric interpretation.
type ReadOptions struct {
	// Delimiter for CSV; 0 sniffs among ',', ';', '\t'.
	Delimiter rune
	// MaxRows caps the rows kept in memory; 0 means unlimited. Rows past
	// the cap are still counted so summaries can say the file was cut.
	MaxRows int
	// SheetName selects an XLSX sheet by name; SheetIndex (1-based) is the
	// fallback, defaulting to the first sheet.
	SheetName  string
	SheetIndex int
	// Numeric locale. Zero values auto-detect per cell.
	DecimalSeparator   rune
	ThousandsSeparator rune
	// NormalizeUnits converts declared units to the ones the energy
	// calculations expect (°F to °C, MWh and Wh to kWh).
	NormalizeUnits bool
}

// DefaultReadOptions returns the defaults the commands start from.
func DefaultReadOptions() ReadOptions {
	return ReadOptions{
		MaxRows:        100000,
		NormalizeUnits: true,
	}
}

// Table is an in-memory tabular dataset with the bookkeeping needed to
// audit where the numbers came from.
type Table struct {
	Name   string
	Path   string
	Header []string // cleaned column names, units stripped
	Units  []string // unit declared in each header, "" when none
	Rows   [][]string
	// TotalRows counts data rows present in the file; greater than
	// len(Rows) when MaxRows cut the read short.
	TotalRows int

	opt         ReadOptions
	fingerprint uint64
}

// Series is one numeric column pulled out of a table.
type Series struct {
	Name   string
	Unit   string
	Values []float64
}

// Read loads a tabular file, dispatching on the extension: .xlsx goes
// through the workbook reader, everything else is treated as CSV.
func Read(path string, opt ReadOptions) (*Table, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return ReadXLSX(path, opt)
	}
	return ReadCSV(path, opt)
}

// ReadCSV loads a delimited text file. The first record is the header.
func ReadCSV(path string, opt ReadOptions) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	delim := opt.Delimiter
	if delim == 0 {
		delim = sniffDelimiter(path, data)
	}
	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = delim
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	t := newTable(path, data, opt)
	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return t, nil
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	t.setHeader(header)

	maxRows := opt.MaxRows
	if maxRows <= 0 {
		maxRows = math.MaxInt
	}
	for {
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read row %d: %w", t.TotalRows+1, err)
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

func newTable(path string, raw []byte, opt ReadOptions) *Table {
	return &Table{
		Name:        filepath.Base(path),
		Path:        path,
		opt:         opt,
		fingerprint: xxhash.Sum64(raw),
	}
}

func (t *Table) setHeader(header []string) {
	t.Header = make([]string, len(header))
	t.Units = make([]string, len(header))
	for i, h := range header {
		t.Header[i], t.Units[i] = splitUnits(h)
	}
}

// Fingerprint is the 64-bit content hash of the raw file, the provenance
// stamp summaries and plans record.
func (t *Table) Fingerprint() uint64 { return t.fingerprint }

// FingerprintHex renders the fingerprint the way reports print it.
func (t *Table) FingerprintHex() string { return fmt.Sprintf("%016x", t.fingerprint) }

// ColumnIndex resolves a column by its cleaned name, case-insensitively.
func (t *Table) ColumnIndex(name string) (int, bool) {
	want := strings.ToLower(strings.TrimSpace(name))
	for i, h := range t.Header {
		if strings.ToLower(h) == want {
			return i, true
		}
	}
	return 0, false
}

// Column extracts one numeric series. Blank cells are skipped; anything
// else that fails to parse is an error naming the offending row.
func (t *Table) Column(name string) (*Series, error) {
	idx, ok := t.ColumnIndex(name)
	if !ok {
		return nil, &ColumnNotFoundError{Name: name, Available: t.Header}
	}
	s := &Series{Name: t.Header[idx], Unit: t.Units[idx]}
	for rowNum, row := range t.Rows {
		cell := row[idx]
		if cell == "" {
			continue
		}
		x, err := t.parseCell(cell, idx)
		if err != nil {
			return nil, fmt.Errorf("column %q row %d: %w", t.Header[idx], rowNum+2, err)
		}
		s.Values = append(s.Values, x)
	}
	if t.opt.NormalizeUnits {
		if _, unit, ok := normalizeUnit(0, t.Units[idx]); ok {
			s.Unit = unit
		}
	}
	return s, nil
}

// XYColumns extracts paired observations for regression. Rows where either
// cell is blank are dropped; unparsable cells are an error.
func (t *Table) XYColumns(xName, yName string) ([]regress.Observation, error) {
	xi, ok := t.ColumnIndex(xName)
	if !ok {
		return nil, &ColumnNotFoundError{Name: xName, Available: t.Header}
	}
	yi, ok := t.ColumnIndex(yName)
	if !ok {
		return nil, &ColumnNotFoundError{Name: yName, Available: t.Header}
	}
	var obs []regress.Observation
	for rowNum, row := range t.Rows {
		xCell, yCell := row[xi], row[yi]
		if xCell == "" || yCell == "" {
			continue
		}
		x, err := t.parseCell(xCell, xi)
		if err != nil {
			return nil, fmt.Errorf("column %q row %d: %w", t.Header[xi], rowNum+2, err)
		}
		y, err := t.parseCell(yCell, yi)
		if err != nil {
			return nil, fmt.Errorf("column %q row %d: %w", t.Header[yi], rowNum+2, err)
		}
		obs = append(obs, regress.Observation{X: x, Y: y})
	}
	return obs, nil
}

// parseCell parses one cell of the given column, applying unit
// normalization when the column declares a convertible unit.
func (t *Table) parseCell(cell string, col int) (float64, error) {
	x, ok := parseNumeric(cell, t.opt)
	if !ok {
		return 0, fmt.Errorf("cannot parse %q as a number", cell)
	}
	if t.opt.NormalizeUnits && t.Units[col] != "" {
		if nx, _, ok := normalizeUnit(x, t.Units[col]); ok {
			x = nx
		}
	}
	return x, nil
}

// ColumnNotFoundError names the missing column and what the table has.
type ColumnNotFoundError struct {
	Name      string
	Available []string
}

func (e *ColumnNotFoundError) Error() string {
	return fmt.Sprintf("column %q not found; available: %s", e.Name, strings.Join(e.Available, ", "))
}

// sniffDelimiter inspects the extension and the first line to pick among
// comma, semicolon, and tab.
func sniffDelimiter(path string, data []byte) rune {
	if strings.EqualFold(filepath.Ext(path), ".tsv") {
		return '\t'
	}
	line := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		line = data[:i]
	}
	best, bestCount := ',', bytes.Count(line, []byte(","))
	for _, cand := range []struct {
		r rune
		b byte
	}{{';', ';'}, {'\t', '\t'}} {
		if c := bytes.Count(line, []byte{cand.b}); c > bestCount {
			best, bestCount = cand.r, c
		}
	}
	return best
}
