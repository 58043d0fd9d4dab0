// Package table keeps segment metadata in memory: a header and rows of
// string fields that share the header's arity.
package table

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrArity means a row has more fields than the header.
	ErrArity = errors.New("row arity does not match header")
	// ErrNoHeader means no header row could be found.
	ErrNoHeader = errors.New("table header not found")
	// ErrNoColumn means a required column is absent.
	ErrNoColumn = errors.New("required column is missing")
	// ErrMalformedLabels means a label field is not a valid list.
	ErrMalformedLabels = errors.New("malformed label list")
)

// Column names written by evset. Readers also accept the aliases below.
const (
	ColID         = "yt_id"
	ColStart      = "start_seconds"
	ColEnd        = "end_seconds"
	ColLabels     = "positive_labels"
	ColDownloaded = "downloaded"
)

var aliases = map[string][]string{
	ColID:         {"yt_id", "ytid", "video_id", "fname", "filename"},
	ColStart:      {"start_seconds", "start"},
	ColEnd:        {"end_seconds", "end"},
	ColLabels:     {"positive_labels", "labels"},
	ColDownloaded: {"downloaded"},
}

// Row is an ordered tuple of fields.
type Row []string

// Clone returns a copy of the row.
func (r Row) Clone() Row {
	res := make(Row, len(r))
	copy(res, r)
	return res
}

// Key returns the identity of the row: two rows are equal exactly when
// their keys are equal.
func (r Row) Key() string {
	return strings.Join(r, "\x1f")
}

// Table is an ordered sequence of rows sharing one header.
type Table struct {
	Header []string
	Rows   []Row
}

// New creates a table and enforces the arity invariant. Rows shorter than
// the header are padded with empty fields, longer rows are an error.
func New(header []string, records [][]string) (*Table, error) {
	res := &Table{
		Header: cleanHeader(header),
		Rows:   make([]Row, 0, len(records)),
	}
	for i, rec := range records {
		row, err := res.fit(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		res.Rows = append(res.Rows, row)
	}
	return res, nil
}

// Empty returns a table with the header of t and no rows.
func (t *Table) Empty() *Table {
	header := make([]string, len(t.Header))
	copy(header, t.Header)
	return &Table{Header: header}
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// Col returns the index of a column by one of its known names,
// or -1 when the table has no such column.
func (t *Table) Col(name string) int {
	names, ok := aliases[name]
	if !ok {
		names = []string{name}
	}
	for _, n := range names {
		for i, h := range t.Header {
			if strings.EqualFold(h, n) {
				return i
			}
		}
	}
	return -1
}

// Field returns the value of a named column in a row, or "" when the
// column is absent.
func (t *Table) Field(row Row, name string) string {
	idx := t.Col(name)
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

func (t *Table) fit(rec []string) (Row, error) {
	if len(rec) > len(t.Header) {
		return nil, fmt.Errorf("%w: %d fields, header has %d",
			ErrArity, len(rec), len(t.Header))
	}
	row := make(Row, len(t.Header))
	copy(row, rec)
	return row, nil
}

func cleanHeader(header []string) []string {
	res := make([]string, len(header))
	for i, h := range header {
		h = strings.TrimSpace(h)
		if i == 0 {
			h = strings.TrimSpace(strings.TrimPrefix(h, "#"))
		}
		res[i] = h
	}
	return res
}
