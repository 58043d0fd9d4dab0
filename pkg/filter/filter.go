// Package filter selects rows of segment tables by label membership,
// position or id.
package filter

import (
	"strings"

	"github.com/evsiren/evset/pkg/labelmap"
	"github.com/evsiren/evset/pkg/table"
)

// SelectByAnyLabel keeps rows whose labels intersect the codes of the
// given names. The label field of every kept row is rewritten to its
// cleaned list form.
//
// The boolean result is false when none of the names is known to the label
// map. In that case the returned table has no rows, and callers are
// expected to warn rather than fail.
func SelectByAnyLabel(
	lm *labelmap.LabelMap,
	t *table.Table,
	names []string,
) (*table.Table, bool) {
	return byAnyLabel(lm, t, names, true)
}

// ExcludeByAnyLabel keeps rows whose labels do not intersect the codes of
// the given names. Together with SelectByAnyLabel it partitions the table.
// When no name is known, the boolean result is false and every row is kept.
func ExcludeByAnyLabel(
	lm *labelmap.LabelMap,
	t *table.Table,
	names []string,
) (*table.Table, bool) {
	return byAnyLabel(lm, t, names, false)
}

func byAnyLabel(
	lm *labelmap.LabelMap,
	t *table.Table,
	names []string,
	keepMatches bool,
) (*table.Table, bool) {
	res := t.Empty()
	codes := lm.Resolve(names)
	targets := make(map[string]struct{}, len(codes))
	for _, c := range codes {
		targets[c] = struct{}{}
	}
	lc := t.Col(table.ColLabels)

	for _, row := range t.Rows {
		var labels []string
		var err error
		if lc >= 0 {
			// malformed field counts as an empty label set
			if labels, err = table.ParseLabels(row[lc]); err != nil {
				labels = nil
			}
		}
		var match bool
		for _, l := range labels {
			if _, ok := targets[l]; ok {
				match = true
				break
			}
		}
		if match != keepMatches {
			continue
		}
		out := row.Clone()
		if lc >= 0 && err == nil {
			out[lc] = table.FormatLabels(labels)
		}
		res.Rows = append(res.Rows, out)
	}
	return res, len(codes) > 0 && lc >= 0
}

// SelectByRowRange keeps rows with 0-based position in [start, end).
// Bounds are clamped to the table size, end before start gives no rows.
func SelectByRowRange(t *table.Table, start, end int) *table.Table {
	res := t.Empty()
	start = clamp(start, 0, t.Len())
	end = clamp(end, 0, t.Len())
	for i := start; i < end; i++ {
		res.Rows = append(res.Rows, t.Rows[i].Clone())
	}
	return res
}

func clamp(i, lo, hi int) int {
	return max(lo, min(i, hi))
}

// Match is a row of a data table found by id.
type Match struct {
	Index int
	ID    string
}

// MatchIDs returns rows of data whose id occurs among the ids of
// targets. Matches follow the row order of data.
func MatchIDs(targets, data *table.Table) []Match {
	tc := targets.Col(table.ColID)
	dc := data.Col(table.ColID)
	if tc < 0 || dc < 0 {
		return nil
	}

	ids := make(map[string]struct{}, targets.Len())
	for _, row := range targets.Rows {
		ids[strings.TrimSpace(row[tc])] = struct{}{}
	}

	var res []Match
	for i, row := range data.Rows {
		id := strings.TrimSpace(row[dc])
		if _, ok := ids[id]; ok {
			res = append(res, Match{Index: i, ID: id})
		}
	}
	return res
}

// SplitByNames partitions rows by the comma-separated class names of a
// column. A row is positive when any of its names is positive, negative
// when any name is negative and none is positive, and dropped otherwise.
func SplitByNames(
	t *table.Table,
	column string,
	positives, negatives []string,
) (pos, neg *table.Table) {
	pos, neg = t.Empty(), t.Empty()
	idx := t.Col(column)
	if idx < 0 {
		return pos, neg
	}

	ps := toSet(positives)
	ns := toSet(negatives)
	for _, row := range t.Rows {
		var isPos, isNeg bool
		for _, name := range table.SplitLabels(row[idx]) {
			if _, ok := ps[name]; ok {
				isPos = true
				break
			}
			if _, ok := ns[name]; ok {
				isNeg = true
			}
		}
		switch {
		case isPos:
			pos.Rows = append(pos.Rows, row.Clone())
		case isNeg:
			neg.Rows = append(neg.Rows, row.Clone())
		}
	}
	return pos, neg
}

func toSet(ss []string) map[string]struct{} {
	res := make(map[string]struct{}, len(ss))
	for _, s := range ss {
		res[strings.TrimSpace(s)] = struct{}{}
	}
	return res
}
