package table

import (
	"fmt"
	"strings"
)

// FromRecords builds a normalized table from raw CSV records.
//
// Leading records starting with '#' are comments. Raw AudioSet segment
// files keep their header in the last comment line
// ("# YTID, start_seconds, end_seconds, positive_labels"), so when the first
// regular record is not a header, that comment is used instead.
func FromRecords(records [][]string) (*Table, error) {
	var lastComment []string
	i := 0
	for ; i < len(records); i++ {
		rec := records[i]
		if len(rec) == 0 || !strings.HasPrefix(strings.TrimSpace(rec[0]), "#") {
			break
		}
		lastComment = rec
	}
	records = records[i:]

	switch {
	case len(records) > 0 && isHeader(records[0]):
		return Normalize(records[0], records[1:])
	case lastComment != nil && isHeader(cleanHeader(lastComment)):
		return Normalize(lastComment, records)
	default:
		return nil, ErrNoHeader
	}
}

// Normalize creates a table where every label field is a list literal.
//
// Raw label fields are flat strings that, due to `, "a,b"` quoting, may be
// spilled over several trailing fields. Such fields are joined, split and
// cleaned. Fields that already are list literals are kept verbatim, so a
// malformed list stays detectable later. Tables without a label column are
// only checked for arity. Known columns get their canonical names, so
// "# YTID" becomes "yt_id".
func Normalize(header []string, records [][]string) (*Table, error) {
	res := &Table{Header: cleanHeader(header)}
	for _, c := range []string{ColID, ColStart, ColEnd, ColLabels, ColDownloaded} {
		if idx := res.Col(c); idx >= 0 {
			res.Header[idx] = c
		}
	}
	lc := res.Col(ColLabels)
	if lc < 0 {
		return New(res.Header, records)
	}
	last := len(res.Header) - 1

	res.Rows = make([]Row, 0, len(records))
	for i, rec := range records {
		rec = append([]string(nil), rec...)
		if len(rec) > len(res.Header) {
			if lc != last {
				return nil, fmt.Errorf("row %d: %w: %d fields, header has %d",
					i, ErrArity, len(rec), len(res.Header))
			}
			rec[lc] = strings.Join(rec[lc:], ",")
			rec = rec[:lc+1]
		}
		row, err := res.fit(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		if !IsLabelList(row[lc]) {
			row[lc] = FormatLabels(SplitLabels(row[lc]))
		}
		res.Rows = append(res.Rows, row)
	}
	return res, nil
}

func isHeader(rec []string) bool {
	t := &Table{Header: cleanHeader(rec)}
	return t.Col(ColID) >= 0 || t.Col(ColLabels) >= 0
}
