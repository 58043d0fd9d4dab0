package recipe_test

import (
	"testing"

	"github.com/evsiren/evset/pkg/recipe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	r := recipe.Default()
	require.NotNil(t, r)
	require.Nil(t, r.Validate())

	assert.Equal(t, "EV_Positives", r.Positives.Name)
	assert.Len(t, r.Positives.Labels, 4)
	assert.Equal(t, []string{"Civil defense siren"}, r.Positives.Blacklist)

	assert.Equal(t, "EV_Negatives", r.Negatives.Name)
	assert.Len(t, r.Negatives.Labels, 39)
	assert.Contains(t, r.Negatives.Labels, "Vehicle horn, car horn, honking")
	assert.Equal(t, r.Positives.Labels, r.NegativeBlacklist())
}

func TestParse(t *testing.T) {
	tests := []struct {
		msg    string
		data   string
		hasErr bool
	}{
		{"ok", `
segment_suffix: segments.csv
positives: {name: P, labels: [Siren]}
negatives: {name: N, labels: [Bus], blacklist: [Siren, Ambulance]}
`, false},
		{"no suffix", `
positives: {name: P, labels: [Siren]}
negatives: {name: N, labels: [Bus]}
`, true},
		{"no labels", `
segment_suffix: segments.csv
positives: {name: P, labels: []}
negatives: {name: N, labels: [Bus]}
`, true},
		{"same names", `
segment_suffix: segments.csv
positives: {name: P, labels: [Siren]}
negatives: {name: P, labels: [Bus]}
`, true},
		{"bad yaml", "positives: [", true},
	}

	for _, v := range tests {
		r, err := recipe.Parse([]byte(v.data))
		if v.hasErr {
			assert.ErrorIs(t, err, recipe.ErrInvalid, v.msg)
			continue
		}
		require.Nil(t, err, v.msg)
		assert.Equal(t, []string{"Siren", "Ambulance"}, r.NegativeBlacklist())
	}
}

func TestSegmentName(t *testing.T) {
	r := recipe.Default()
	assert.Equal(t, "balanced_train", r.SegmentName("balanced_train_segments.csv"))
	assert.Equal(t, "eval", r.SegmentName("eval_segments.csv"))
	assert.Equal(t, "segments.csv", r.SegmentName("segments.csv"))
}

func TestFSD50K(t *testing.T) {
	r := recipe.FSD50K()
	require.NoError(t, r.Validate())
	assert.Equal(t, []string{"Siren"}, r.Positives.Labels)
	assert.Len(t, r.Negatives.Labels, 25)
	assert.Equal(t, []string{"Siren"}, r.NegativeBlacklist())
	assert.Equal(t, "eval", r.SegmentName("eval.csv"))
}
