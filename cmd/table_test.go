package cmd

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/evsiren/evset/internal/iotable"
	"github.com/evsiren/evset/internal/iotesting"
	"github.com/evsiren/evset/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const labelsCSV = `index,mid,display_name
0,/m/03j1ly,Emergency vehicle
1,/m/012n7d,Ambulance (siren)
2,/m/0k4j,Car
`

const dataCSV = `yt_id,start_seconds,end_seconds,positive_labels
aaa,0.0,10.0,['/m/03j1ly']
bbb,0.0,10.0,"['/m/0k4j', '/m/012n7d']"
ccc,0.0,10.0,['/m/0k4j']
`

// setupFiles writes a labels file and a data table and points the global
// config to them.
func setupFiles(t *testing.T) (dir, data string) {
	dir = t.TempDir()
	labels := iotesting.WriteFile(t, dir, "class_labels_indices.csv", labelsCSV)
	data = iotesting.WriteFile(t, dir, "data.csv", dataCSV)

	cfg = iotesting.Config(t, config.OptLabelsFile(labels))
	return dir, data
}

func loadIDs(t *testing.T, path string) []string {
	tbl, err := iotable.Load(path)
	require.NoError(t, err)
	var res []string
	for _, row := range tbl.Rows {
		res = append(res, row[0])
	}
	return res
}

func TestRunLabelFilter(t *testing.T) {
	dir, data := setupFiles(t)
	out := filepath.Join(dir, "out.csv")

	require.NoError(t, runLabelFilter(data, out, []string{"Car"}, false))
	assert.Equal(t, []string{"bbb", "ccc"}, loadIDs(t, out))

	require.NoError(t, runLabelFilter(data, out, []string{"Car"}, true))
	assert.Equal(t, []string{"aaa"}, loadIDs(t, out))

	// unknown labels select nothing and exclude nothing
	require.NoError(t, runLabelFilter(data, out, []string{"Owl"}, false))
	assert.Empty(t, loadIDs(t, out))

	require.NoError(t, runLabelFilter(data, out, []string{"Owl"}, true))
	assert.Equal(t, []string{"aaa", "bbb", "ccc"}, loadIDs(t, out))
}

func TestRunRange(t *testing.T) {
	dir, data := setupFiles(t)
	out := filepath.Join(dir, "out.csv")

	require.NoError(t, runRange(data, out, 1, 100))
	assert.Equal(t, []string{"bbb", "ccc"}, loadIDs(t, out))
}

func TestRunMerge(t *testing.T) {
	dir, data := setupFiles(t)
	other := iotesting.WriteFile(t, dir, "other.csv",
		"yt_id,start_seconds,end_seconds,positive_labels\n"+
			"ddd,0.0,10.0,['/m/0k4j']\n"+
			"aaa,0.0,10.0,['/m/03j1ly']\n")
	out := filepath.Join(dir, "out.csv")

	require.NoError(t, runMerge(out, []string{data, other}))
	assert.Equal(t, []string{"aaa", "bbb", "ccc", "ddd"}, loadIDs(t, out))
}

func TestRunRebalance(t *testing.T) {
	dir, data := setupFiles(t)
	out := filepath.Join(dir, "out.csv")

	require.NoError(t, runRebalance(data, out, []string{"Emergency vehicle", "Car"}))
	ids := loadIDs(t, out)
	assert.Len(t, ids, 2)
	assert.Contains(t, ids, "aaa")

	cfg.Update([]config.Option{config.OptRebalanceStrict(true)})
	err := runRebalance(data, out, []string{"Emergency vehicle", "Car"})
	assert.NoError(t, err)
}

func TestRunStats(t *testing.T) {
	_, data := setupFiles(t)
	buf := new(bytes.Buffer)

	require.NoError(t, runStats(buf, []string{data}, true))
	out := buf.String()
	assert.Contains(t, out, "Total samples: 3")
	assert.Contains(t, out, "  Car: 2\n")
	assert.FileExists(t, filepath.Join(filepath.Dir(data), "data_stats.json"))
}

func TestRunLookup(t *testing.T) {
	dir, data := setupFiles(t)
	targets := iotesting.WriteFile(t, dir, "targets.csv",
		"yt_id,start_seconds,end_seconds,positive_labels\n"+
			"ccc,0.0,10.0,['/m/0k4j']\n")
	buf := new(bytes.Buffer)

	require.NoError(t, runLookup(buf, targets, data))
	assert.Equal(t, "2\tccc\n", buf.String())
}

func TestRunFSD50K(t *testing.T) {
	dir := t.TempDir()
	input := iotesting.WriteFile(t, dir, "eval.csv", `fname,labels,mids
1,"Siren,Vehicle",/m/03kmc9
2,"Car,Vehicle",/m/0k4j
3,"Bark,Dog",/m/05tny_
4,"Siren,Car",/m/03kmc9
`)
	pos := filepath.Join(dir, "pos.csv")
	neg := filepath.Join(dir, "neg.csv")

	err := runFSD50K(input, pos, neg, []string{"Siren"}, []string{"Car"})
	require.NoError(t, err)

	p, err := iotable.LoadPlain(pos)
	require.NoError(t, err)
	n, err := iotable.LoadPlain(neg)
	require.NoError(t, err)
	assert.Equal(t, []string{"fname", "labels", "mids"}, p.Header)
	assert.Equal(t, 2, p.Len())
	require.Equal(t, 1, n.Len())
	assert.Equal(t, "2", n.Rows[0][0])
}

func TestByCount(t *testing.T) {
	m := map[string]int{"b": 2, "a": 2, "c": 5}
	assert.Equal(t, []string{"c", "a", "b"}, byCount(m))
}
