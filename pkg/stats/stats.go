// Package stats counts label occurrences and download progress of a
// segment table.
package stats

import (
	"github.com/evsiren/evset/pkg/labelmap"
	"github.com/evsiren/evset/pkg/table"
)

// Stats summarizes a table.
type Stats struct {
	// TotalSamples is the number of rows, malformed ones included.
	TotalSamples int `json:"total_samples"`
	// LabelOccurrences maps display names to the number of rows
	// carrying them.
	LabelOccurrences map[string]int `json:"label_occurrences"`
	// Downloaded is present only for tables with a downloaded column.
	Downloaded *DownloadedStats `json:"downloaded_stats,omitempty"`
	// MalformedRows counts rows whose label field could not be parsed.
	MalformedRows int `json:"-"`
}

// DownloadedStats splits label counts by the downloaded flag.
type DownloadedStats struct {
	Downloaded            int            `json:"downloaded"`
	NotDownloaded         int            `json:"not_downloaded"`
	PerLabelDownloaded    map[string]int `json:"per_label_downloaded"`
	PerLabelNotDownloaded map[string]int `json:"per_label_not_downloaded"`
}

// Compute collects statistics of a table. A row with a malformed label
// field is counted in TotalSamples and in the downloaded totals, but
// contributes no labels.
func Compute(t *table.Table, lm *labelmap.LabelMap) Stats {
	res := Stats{
		TotalSamples:     t.Len(),
		LabelOccurrences: make(map[string]int),
	}
	hasFlag := t.HasDownloaded()
	if hasFlag {
		res.Downloaded = &DownloadedStats{
			PerLabelDownloaded:    make(map[string]int),
			PerLabelNotDownloaded: make(map[string]int),
		}
	}

	for i := range t.Rows {
		var done bool
		if hasFlag {
			done = t.Downloaded(i)
			if done {
				res.Downloaded.Downloaded++
			} else {
				res.Downloaded.NotDownloaded++
			}
		}

		codes, err := t.Labels(t.Rows[i])
		if err != nil {
			res.MalformedRows++
			continue
		}
		for _, name := range lm.Names(codes) {
			res.LabelOccurrences[name]++
			if !hasFlag {
				continue
			}
			if done {
				res.Downloaded.PerLabelDownloaded[name]++
			} else {
				res.Downloaded.PerLabelNotDownloaded[name]++
			}
		}
	}
	return res
}
