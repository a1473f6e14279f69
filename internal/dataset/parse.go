package dataset

import (
	"fmt"
	"strings"
)

// Options controls ingestion.
type Options struct {
	// Delimiter between fields. If 0, comma (or tab for .tsv files in Load).
	Delimiter rune
	// Strict rejects data lines whose field count differs from the header.
	// Ingestion is tolerant by default: short lines leave trailing columns null.
	Strict bool
	// XLSX sheet selection. SheetName wins; SheetIndex is 1-based.
	SheetName  string
	SheetIndex int
}

// DefaultOptions returns tolerant, comma-delimited ingestion.
func DefaultOptions() Options {
	return Options{Delimiter: ',', SheetIndex: 1}
}

// FieldCountError is returned in strict mode for a malformed data line.
type FieldCountError struct {
	Line int // 1-based line number in the input, header is line 1
	Got  int
	Want int
}

func (e *FieldCountError) Error() string {
	return fmt.Sprintf("line %d: got %d fields, want %d", e.Line, e.Got, e.Want)
}

// Parse reads header-first delimited text tolerantly. It never fails.
func Parse(text string) *Dataset {
	ds, _ := ParseWithOptions(text, DefaultOptions())
	return ds
}

// ParseWithOptions reads header-first delimited text. Quoted fields are not
// supported: every delimiter splits. An error is only possible with opt.Strict.
func ParseWithOptions(text string, opt Options) (*Dataset, error) {
	delim := opt.Delimiter
	if delim == 0 {
		delim = ','
	}
	lines := strings.Split(strings.TrimSpace(text), "\n")
	header := strings.Split(lines[0], string(delim))
	var rows [][]string
	for _, line := range lines[1:] {
		rows = append(rows, strings.Split(line, string(delim)))
	}
	return build(header, rows, opt.Strict)
}

// build turns raw header and row cells into a Dataset. Shared by CSV and XLSX ingestion.
func build(header []string, rows [][]string, strict bool) (*Dataset, error) {
	names := make([]string, len(header))
	for i, h := range header {
		names[i] = strings.TrimSpace(h)
	}
	ds := &Dataset{Header: names, Rows: make([]Record, 0, len(rows))}
	for i, fields := range rows {
		if strict && len(fields) != len(names) {
			return nil, &FieldCountError{Line: i + 2, Got: len(fields), Want: len(names)}
		}
		rec := newRecord()
		for j, name := range names {
			if j < len(fields) {
				rec.set(name, ParseField(fields[j]))
			} else {
				rec.set(name, Null())
			}
		}
		ds.Rows = append(ds.Rows, rec)
	}
	return ds, nil
}
