package filter_test

import (
	"testing"

	"github.com/evsiren/evset/pkg/filter"
	"github.com/evsiren/evset/pkg/labelmap"
	"github.com/evsiren/evset/pkg/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var header = []string{"yt_id", "start_seconds", "end_seconds", "positive_labels"}

func petsMap() *labelmap.LabelMap {
	return labelmap.New([]labelmap.Entry{
		{Code: "A", Name: "cat"},
		{Code: "B", Name: "dog"},
		{Code: "C", Name: "cow"},
	})
}

func petsTable(t *testing.T) *table.Table {
	tbl, err := table.New(header, [][]string{
		{"r1", "0", "10", "[A]"},
		{"r2", "0", "10", "[B]"},
		{"r3", "0", "10", `["A", 'B']`},
		{"r4", "0", "10", "[A"},
		{"r5", "0", "10", "[]"},
	})
	require.Nil(t, err)
	return tbl
}

func ids(t *table.Table) []string {
	res := make([]string, t.Len())
	for i, r := range t.Rows {
		res[i] = r[0]
	}
	return res
}

func TestSelectExclude(t *testing.T) {
	lm := petsMap()
	tbl := petsTable(t)

	sel, ok := filter.SelectByAnyLabel(lm, tbl, []string{"cat"})
	assert.True(t, ok)
	assert.Equal(t, []string{"r1", "r3"}, ids(sel))
	assert.Equal(t, "['A', 'B']", sel.Rows[1][3])
	// source stays untouched
	assert.Equal(t, `["A", 'B']`, tbl.Rows[2][3])

	exc, ok := filter.ExcludeByAnyLabel(lm, tbl, []string{"cat"})
	assert.True(t, ok)
	assert.Equal(t, []string{"r2", "r4", "r5"}, ids(exc))
	assert.Equal(t, "['B']", exc.Rows[0][3])
	assert.Equal(t, "[A", exc.Rows[1][3])
}

func TestPartition(t *testing.T) {
	lm := petsMap()
	tbl := petsTable(t)

	for _, names := range [][]string{
		{"cat"}, {"dog"}, {"cow"}, {"cat", "dog"}, {"cat", "unknown"},
		{"horse"}, nil,
	} {
		sel, _ := filter.SelectByAnyLabel(lm, tbl, names)
		exc, _ := filter.ExcludeByAnyLabel(lm, tbl, names)

		assert.Equal(t, tbl.Len(), sel.Len()+exc.Len(), names)
		got := make(map[string]int)
		for _, id := range append(ids(sel), ids(exc)...) {
			got[id]++
		}
		for _, id := range ids(tbl) {
			assert.Equal(t, 1, got[id], id)
		}
	}
}

func TestNoMatches(t *testing.T) {
	lm := petsMap()
	tbl := petsTable(t)

	sel, ok := filter.SelectByAnyLabel(lm, tbl, []string{"horse"})
	assert.False(t, ok)
	assert.Equal(t, 0, sel.Len())
	assert.Equal(t, header, sel.Header)

	exc, ok := filter.ExcludeByAnyLabel(lm, tbl, []string{"horse"})
	assert.False(t, ok)
	assert.Equal(t, ids(tbl), ids(exc))

	exc, ok = filter.ExcludeByAnyLabel(lm, tbl, nil)
	assert.False(t, ok)
	assert.Equal(t, tbl.Len(), exc.Len())
}

func TestSelectByRowRange(t *testing.T) {
	tbl := petsTable(t)

	tests := []struct {
		msg        string
		start, end int
		res        []string
	}{
		{"middle", 1, 3, []string{"r2", "r3"}},
		{"all", 0, 5, []string{"r1", "r2", "r3", "r4", "r5"}},
		{"clamp end", 3, 100, []string{"r4", "r5"}},
		{"clamp start", -2, 1, []string{"r1"}},
		{"inverted", 4, 2, []string{}},
		{"past end", 7, 9, []string{}},
		{"empty", 2, 2, []string{}},
	}

	for _, v := range tests {
		res := filter.SelectByRowRange(tbl, v.start, v.end)
		assert.Equal(t, v.res, ids(res), v.msg)
	}
}

func TestMatchIDs(t *testing.T) {
	targets, err := table.New([]string{"YTID"}, [][]string{{"r3"}, {" r1 "}, {"zz"}})
	require.Nil(t, err)

	res := filter.MatchIDs(targets, petsTable(t))
	assert.Equal(t, []filter.Match{{Index: 0, ID: "r1"}, {Index: 2, ID: "r3"}}, res)

	noID, err := table.New([]string{"x"}, nil)
	require.Nil(t, err)
	assert.Nil(t, filter.MatchIDs(noID, targets))
}

func TestSplitByNames(t *testing.T) {
	tbl, err := table.New(
		[]string{"fname", "labels", "mids", "split"},
		[][]string{
			{"1", "Siren,Vehicle", "/m/a,/m/b", "train"},
			{"2", "Bus,Engine", "/m/c,/m/d", "train"},
			{"3", "Bird,Animal", "/m/e", "val"},
			{"4", "Engine,Siren", "/m/d,/m/a", "val"},
		},
	)
	require.Nil(t, err)

	pos, neg := filter.SplitByNames(tbl, "labels",
		[]string{"Siren"}, []string{"Bus", "Engine"})
	assert.Equal(t, []string{"1", "4"}, ids(pos))
	assert.Equal(t, []string{"2"}, ids(neg))
	assert.Equal(t, tbl.Header, pos.Header)
}
