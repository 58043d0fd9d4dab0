package iocurate_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/evsiren/evset/internal/iocurate"
	"github.com/evsiren/evset/internal/iotable"
	"github.com/evsiren/evset/internal/iotesting"
	"github.com/evsiren/evset/pkg/config"
	"github.com/evsiren/evset/pkg/errcode"
	"github.com/evsiren/evset/pkg/labelmap"
	"github.com/evsiren/evset/pkg/recipe"
	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const header = `# Segments csv created Sun Mar  5 10:54:31 2017
# num_ytids=5, num_segs=5, num_unique_labels=5, num_positive_labels=7
# YTID, start_seconds, end_seconds, positive_labels
`

const balanced = header + `a1, 0.000, 10.000, "/m/ev"
a2, 0.000, 10.000, "/m/ev,/m/cds"
a3, 0.000, 10.000, "/m/car"
a4, 0.000, 10.000, "/m/car,/m/ev"
a5, 0.000, 10.000, "/m/bus"
`

const eval = header + `b1, 0.000, 10.000, "/m/amb"
b2, 0.000, 10.000, "/m/car"
b3, 0.000, 10.000, "/m/car"
b4, 0.000, 10.000, "/m/speech"
`

const testRecipe = `
segment_suffix: segments.csv
positives:
  name: EV_Positives
  labels: [Emergency vehicle, Ambulance (siren)]
  blacklist: [Civil defense siren]
negatives:
  name: EV_Negatives
  labels: [Car, Bus]
`

func labels() *labelmap.LabelMap {
	return labelmap.New([]labelmap.Entry{
		{Code: "/m/ev", Name: "Emergency vehicle"},
		{Code: "/m/amb", Name: "Ambulance (siren)"},
		{Code: "/m/cds", Name: "Civil defense siren"},
		{Code: "/m/car", Name: "Car"},
		{Code: "/m/bus", Name: "Bus"},
		{Code: "/m/speech", Name: "Speech"},
	})
}

func setup(t *testing.T) (string, *config.Config) {
	segDir := t.TempDir()
	iotesting.WriteFile(t, segDir, "balanced_train_segments.csv", balanced)
	iotesting.WriteFile(t, segDir, "eval_segments.csv", eval)
	iotesting.WriteFile(t, segDir, "class_labels_indices.csv",
		"index,mid,display_name\n")

	cfg := iotesting.Config(t, config.OptJobsNumber(2))
	cfg.Update([]config.Option{
		config.OptOutputDir(filepath.Join(cfg.OutputDir, "out")),
	})
	return segDir, cfg
}

func ids(t *testing.T, path string) []string {
	tbl, err := iotable.Load(path)
	require.NoError(t, err)
	var res []string
	for _, row := range tbl.Rows {
		res = append(res, row[0])
	}
	return res
}

func TestRun(t *testing.T) {
	segDir, cfg := setup(t)
	rcp, err := recipe.Parse([]byte(testRecipe))
	require.NoError(t, err)

	res, err := iocurate.New(cfg, labels(), rcp).Run(context.Background(), segDir)
	require.NoError(t, err)

	assert.Equal(t, []iocurate.SegmentCount{
		{Segment: "balanced_train", Positives: 3, Negatives: 3},
		{Segment: "eval", Positives: 1, Negatives: 2},
	}, res.Segments)

	assert.Equal(t, 4, res.Positives.Merged)
	assert.Equal(t, 3, res.Positives.Blacklisted)
	assert.Equal(t, 3, res.Positives.Final)
	assert.Equal(t, []string{"a1", "a4", "b1"}, ids(t, res.Positives.Path))

	// negatives lose a4 to the positive labels, then Car is cut to the
	// size of the Bus bucket
	assert.Equal(t, 5, res.Negatives.Merged)
	assert.Equal(t, 4, res.Negatives.Blacklisted)
	assert.Equal(t, 2, res.Negatives.Final)
	assert.Equal(t, 1, res.Rebalance.TargetCount)
	assert.Equal(t, map[string]int{"Car": 1, "Bus": 1},
		res.Rebalance.FinalCounts)
	assert.Contains(t, ids(t, res.Negatives.Path), "a5")

	assert.Equal(t, filepath.Join(cfg.OutputDir, "EV_Positives.csv"),
		res.Positives.Path)
	assert.FileExists(t, res.Positives.StatsPath)
	assert.FileExists(t, res.Negatives.StatsPath)
	assert.Equal(t, 2, res.Positives.Stats.LabelOccurrences["Emergency vehicle"])
}

func TestRunDeterministic(t *testing.T) {
	segDir, cfg := setup(t)
	rcp, err := recipe.Parse([]byte(testRecipe))
	require.NoError(t, err)
	c := iocurate.New(cfg, labels(), rcp)

	res, err := c.Run(context.Background(), segDir)
	require.NoError(t, err)
	first, err := os.ReadFile(res.Negatives.Path)
	require.NoError(t, err)

	res, err = c.Run(context.Background(), segDir)
	require.NoError(t, err)
	second, err := os.ReadFile(res.Negatives.Path)
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))
}

func TestRunNoSegments(t *testing.T) {
	cfg := config.New()
	_, err := iocurate.New(cfg, labels(), recipe.Default()).
		Run(context.Background(), t.TempDir())
	require.Error(t, err)
	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, errcode.FileNotFoundError, gnErr.Code)
}

func TestRunStrict(t *testing.T) {
	segDir, cfg := setup(t)
	cfg.Update([]config.Option{config.OptRebalanceStrict(true)})
	rcp, err := recipe.Parse([]byte(`
segment_suffix: segments.csv
positives: {name: P, labels: [Emergency vehicle]}
negatives: {name: N, labels: [Car, Civil defense siren]}
`))
	require.NoError(t, err)

	// the only Civil defense siren row is also a positive
	_, err = iocurate.New(cfg, labels(), rcp).Run(context.Background(), segDir)
	require.Error(t, err)
	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, errcode.RebalanceEmptyBucketError, gnErr.Code)
}
