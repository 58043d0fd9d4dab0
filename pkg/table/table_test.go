package table_test

import (
	"testing"

	"github.com/evsiren/evset/pkg/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var header = []string{"yt_id", "start_seconds", "end_seconds", "positive_labels"}

func TestNew(t *testing.T) {
	tbl, err := table.New(header, [][]string{
		{"a", "0.0", "10.0", "['/m/a']"},
		{"b", "1.0"},
	})
	require.Nil(t, err)
	assert.Equal(t, 2, tbl.Len())
	assert.Len(t, tbl.Rows[1], 4)
	assert.Equal(t, "", tbl.Rows[1][3])

	_, err = table.New(header, [][]string{{"a", "0", "1", "x", "extra"}})
	assert.ErrorIs(t, err, table.ErrArity)
}

func TestCol(t *testing.T) {
	tbl, err := table.New([]string{"# YTID", " start_seconds", "Labels"}, nil)
	require.Nil(t, err)

	assert.Equal(t, 0, tbl.Col(table.ColID))
	assert.Equal(t, 1, tbl.Col(table.ColStart))
	assert.Equal(t, 2, tbl.Col(table.ColLabels))
	assert.Equal(t, -1, tbl.Col(table.ColDownloaded))
	assert.Equal(t, -1, tbl.Col("nope"))
}

func TestParseLabels(t *testing.T) {
	tests := []struct {
		msg    string
		field  string
		res    []string
		hasErr bool
	}{
		{"single", "['/m/a']", []string{"/m/a"}, false},
		{"several", "['/m/a', '/m/b']", []string{"/m/a", "/m/b"}, false},
		{"double quotes", `["/m/a", " /m/b"]`, []string{"/m/a", "/m/b"}, false},
		{"bare", "[A,B]", []string{"A", "B"}, false},
		{"empty", "[]", []string{}, false},
		{"no brackets", "/m/a", nil, true},
		{"open", "['/m/a'", nil, true},
		{"empty token", "['/m/a',,'/m/b']", nil, true},
		{"blank", "", nil, true},
	}

	for _, v := range tests {
		res, err := table.ParseLabels(v.field)
		if v.hasErr {
			assert.ErrorIs(t, err, table.ErrMalformedLabels, v.msg)
			continue
		}
		require.Nil(t, err, v.msg)
		assert.Equal(t, v.res, res, v.msg)
	}
}

func TestSplitFormatLabels(t *testing.T) {
	res := table.SplitLabels(` "/m/a, /m/b",,'/m/c' `)
	assert.Equal(t, []string{"/m/a", "/m/b", "/m/c"}, res)
	assert.Equal(t, "['/m/a', '/m/b', '/m/c']", table.FormatLabels(res))
	assert.Equal(t, "[]", table.FormatLabels(nil))
}

func TestFromRecords(t *testing.T) {
	t.Run("raw segments", func(t *testing.T) {
		records := [][]string{
			{"# Segments csv created Sun Mar  5 10:54:31 2017"},
			{"# num_ytids=2", "num_segs=2"},
			{"# YTID", "start_seconds", "end_seconds", "positive_labels"},
			{"--PJHxphWEs", "30.000", "40.000", `/m/09x0r,/t/dd00088`},
			{"--ZhevVpy1s", "50.000", "60.000", `/m/012xff`},
			{"--aE2O5G5WE", "0.000", "10.000", `"/m/03fwl`, `/m/04rlf`, `/m/09x0r"`},
		}
		tbl, err := table.FromRecords(records)
		require.Nil(t, err)
		assert.Equal(t, header, tbl.Header)
		require.Equal(t, 3, tbl.Len())
		assert.Equal(t, "['/m/09x0r', '/t/dd00088']", tbl.Rows[0][3])
		assert.Equal(t, "['/m/012xff']", tbl.Rows[1][3])
		assert.Equal(t, "['/m/03fwl', '/m/04rlf', '/m/09x0r']", tbl.Rows[2][3])
	})

	t.Run("processed", func(t *testing.T) {
		records := [][]string{
			header,
			{"a", "0", "10", "['/m/a', '/m/b']"},
			{"b", "0", "10", "['/m/a'"},
		}
		tbl, err := table.FromRecords(records)
		require.Nil(t, err)
		assert.Equal(t, "['/m/a', '/m/b']", tbl.Rows[0][3])
		// malformed lists are kept verbatim
		assert.Equal(t, "['/m/a'", tbl.Rows[1][3])
	})

	t.Run("no header", func(t *testing.T) {
		_, err := table.FromRecords([][]string{{"a", "b"}})
		assert.ErrorIs(t, err, table.ErrNoHeader)
	})

	t.Run("spill in the middle", func(t *testing.T) {
		h := []string{"yt_id", "positive_labels", "downloaded"}
		_, err := table.Normalize(h, [][]string{{"a", "x", "y", "True"}})
		assert.ErrorIs(t, err, table.ErrArity)
	})
}

func TestMerge(t *testing.T) {
	t1, err := table.New(header, [][]string{
		{"a", "0", "10", "['A']"},
		{"b", "0", "10", "['B']"},
		{"a", "0", "10", "['A']"},
	})
	require.Nil(t, err)
	t2, err := table.New([]string{"other", "header", "is", "ignored"}, [][]string{
		{"c", "0", "10", "['A']"},
		{"b", "0", "10", "['B']"},
		{"a", "5", "10", "['A']"},
	})
	require.Nil(t, err)

	t.Run("single table collapses duplicates", func(t *testing.T) {
		res := table.Merge(t1)
		assert.Equal(t, t1.Header, res.Header)
		assert.Equal(t, []table.Row{t1.Rows[0], t1.Rows[1]}, res.Rows)
	})

	t.Run("two tables", func(t *testing.T) {
		res := table.Merge(t1, t2)
		assert.Equal(t, header, res.Header)
		ids := make([]string, res.Len())
		for i, r := range res.Rows {
			ids[i] = r[0] + "@" + r[1]
		}
		assert.Equal(t, []string{"a@0", "b@0", "c@0", "a@5"}, ids)

		seen := make(map[string]bool)
		src := make(map[string]bool)
		for _, r := range append(t1.Rows, t2.Rows...) {
			src[r.Key()] = true
		}
		for _, r := range res.Rows {
			assert.False(t, seen[r.Key()])
			assert.True(t, src[r.Key()])
			seen[r.Key()] = true
		}
	})

	t.Run("rows are copies", func(t *testing.T) {
		res := table.Merge(t1)
		res.Rows[0][0] = "changed"
		assert.Equal(t, "a", t1.Rows[0][0])
	})

	t.Run("nothing", func(t *testing.T) {
		res := table.Merge()
		assert.Equal(t, 0, res.Len())
	})
}

func TestDownloaded(t *testing.T) {
	tbl, err := table.New(header, [][]string{
		{"a", "0", "10", "['A']"},
		{"b", "0", "10", "['B']"},
	})
	require.Nil(t, err)
	assert.False(t, tbl.HasDownloaded())
	assert.False(t, tbl.Downloaded(0))

	assert.True(t, tbl.EnsureDownloaded())
	assert.False(t, tbl.EnsureDownloaded())
	assert.Equal(t, table.FlagFalse, tbl.Rows[1][4])

	tbl.SetDownloaded(1, true)
	assert.True(t, tbl.Downloaded(1))
	assert.Equal(t, "True", tbl.Rows[1][4])

	for _, v := range []string{"true", "TRUE", "1", " True "} {
		assert.True(t, table.IsTrue(v), v)
	}
	for _, v := range []string{"false", "0", "", "yes"} {
		assert.False(t, table.IsTrue(v), v)
	}
}
