package iotable

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/evsiren/evset/pkg/errcode"
	"github.com/evsiren/evset/pkg/table"
	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rawSegments = `# Segments csv created Sun Mar  5 10:54:31 2017
# num_ytids=3, num_segs=3, num_unique_labels=5, num_positive_labels=6
# YTID, start_seconds, end_seconds, positive_labels
--PJHxphWEs, 30.000, 40.000, "/m/09x0r,/t/dd00088"
--ZhevVpy1s, 50.000, 60.000, "/m/012xff"
--aE2O5G5WE, 0.000, 10.000, "/m/03fwl,/m/04rlf,/m/09x0r"
`

func writeFile(t *testing.T, dir, name, content string) string {
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadRaw(t *testing.T) {
	path := writeFile(t, t.TempDir(), "eval_segments.csv", rawSegments)

	tbl, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"yt_id", "start_seconds", "end_seconds",
		"positive_labels"}, tbl.Header)
	require.Equal(t, 3, tbl.Len())
	assert.Equal(t, table.Row{"--PJHxphWEs", "30.000", "40.000",
		"['/m/09x0r', '/t/dd00088']"}, tbl.Rows[0])
	assert.Equal(t, "['/m/03fwl', '/m/04rlf', '/m/09x0r']", tbl.Rows[2][3])
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "eval_segments.csv", rawSegments)
	tbl, err := Load(src)
	require.NoError(t, err)
	tbl.EnsureDownloaded()
	tbl.SetDownloaded(1, true)

	out := filepath.Join(dir, "EV.csv")
	require.NoError(t, Save(out, tbl))

	res, err := Load(out)
	require.NoError(t, err)
	assert.Equal(t, tbl.Header, res.Header)
	assert.Equal(t, tbl.Rows, res.Rows)
	assert.True(t, res.Downloaded(1))

	// no temporary files left behind
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestLoadPlain(t *testing.T) {
	path := writeFile(t, t.TempDir(), "dev.csv",
		"fname,labels,mids,split\n64760,\"Electric_guitar,Guitar\",\"/m/02sgy,/m/0342h\",train\n")
	tbl, err := LoadPlain(path)
	require.NoError(t, err)
	assert.Equal(t, "Electric_guitar,Guitar", tbl.Rows[0][1])
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		msg  string
		path string
		code gn.ErrorCode
	}{
		{"missing", filepath.Join(dir, "nope.csv"), errcode.FileNotFoundError},
		{"no header", writeFile(t, dir, "bad.csv", "a,b\nc,d\n"),
			errcode.TableParseError},
		{"long row", writeFile(t, dir, "long.csv",
			"yt_id,positive_labels,downloaded\na,x,y,False\n"),
			errcode.TableParseError},
	}

	for _, v := range tests {
		_, err := Load(v.path)
		require.Error(t, err, v.msg)
		gnErr, ok := err.(*gn.Error)
		require.True(t, ok, v.msg)
		assert.Equal(t, v.code, gnErr.Code, v.msg)
	}
}

func TestLoadAll(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeFile(t, dir, "a.csv", "yt_id,positive_labels\na,['A']\n"),
		writeFile(t, dir, "b.csv", "yt_id,positive_labels\nb,['B']\nc,['C']\n"),
		writeFile(t, dir, "c.csv", "yt_id,positive_labels\n"),
	}

	res, err := LoadAll(context.Background(), paths, 2)
	require.NoError(t, err)
	require.Len(t, res, 3)
	assert.Equal(t, 1, res[0].Len())
	assert.Equal(t, 2, res[1].Len())
	assert.Equal(t, 0, res[2].Len())

	_, err = LoadAll(context.Background(),
		append(paths, filepath.Join(dir, "missing.csv")), 2)
	assert.Error(t, err)
}
