/*
Copyright © 2025 The evset Authors

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"cmp"
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/evsiren/evset/internal/iostats"
	"github.com/evsiren/evset/internal/iotable"
	"github.com/evsiren/evset/pkg/filter"
	"github.com/evsiren/evset/pkg/stats"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

// getStatsCmd returns the stats command.
func getStatsCmd() *cobra.Command {
	var saveJSON bool

	cmd := &cobra.Command{
		Use:   "stats FILE...",
		Short: "Show label counts and download progress of tables",
		Long: `Show how many rows carry each label. For tables with a downloaded
column the counts are also split by the download flag. With --json the
statistics are saved as <table>_stats.json next to each table.

Examples:
  evset stats EV_Positives.csv EV_Negatives.csv
  evset stats --json EV_Positives.csv`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runStats(cmd.OutOrStdout(), args, saveJSON)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	cmd.Flags().BoolVar(&saveJSON, "json", false, "save statistics as JSON")
	return cmd
}

func runStats(w io.Writer, files []string, saveJSON bool) error {
	lm, err := loadLabels()
	if err != nil {
		return err
	}

	for _, file := range files {
		tbl, err := iotable.Load(file)
		if err != nil {
			return err
		}
		st := stats.Compute(tbl, lm)
		printStats(w, file, st)
		if st.MalformedRows > 0 {
			gn.Warn("%s rows of <em>%s</em> have malformed labels",
				comma(st.MalformedRows), file)
		}

		if !saveJSON {
			continue
		}
		path, err := iostats.Write(file, st)
		if err != nil {
			return err
		}
		gn.Info("Statistics saved to <em>%s</em>", path)
	}
	return nil
}

func printStats(w io.Writer, file string, st stats.Stats) {
	fmt.Fprintf(w, "\n%s\n", file)
	fmt.Fprintf(w, "Total samples: %s\n", comma(st.TotalSamples))
	if d := st.Downloaded; d != nil {
		fmt.Fprintf(w, "Downloaded: %s, not downloaded: %s\n",
			comma(d.Downloaded), comma(d.NotDownloaded))
	}
	for _, name := range byCount(st.LabelOccurrences) {
		fmt.Fprintf(w, "  %s: %s", name, comma(st.LabelOccurrences[name]))
		if d := st.Downloaded; d != nil {
			fmt.Fprintf(w, " (downloaded %s)", comma(d.PerLabelDownloaded[name]))
		}
		fmt.Fprintln(w)
	}
}

// byCount sorts names by descending count, ties by name.
func byCount(m map[string]int) []string {
	return slices.SortedFunc(maps.Keys(m), func(a, b string) int {
		if c := cmp.Compare(m[b], m[a]); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})
}

// getLookupCmd returns the lookup command.
func getLookupCmd() *cobra.Command {
	var targets, data string

	cmd := &cobra.Command{
		Use:   "lookup",
		Short: "Find ids of one table among the rows of another",
		Long: `Print the index and id of every row of the data table whose id occurs
in the targets table. Rows follow the order of the data table.

Examples:
  evset lookup --targets missing.csv -d EV_Positives.csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runLookup(cmd.OutOrStdout(), targets, data)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	cmd.Flags().StringVar(&targets, "targets", "", "table with ids to find")
	cmd.Flags().StringVarP(&data, "data", "d", "", "table to search")
	cmd.MarkFlagRequired("targets")
	cmd.MarkFlagRequired("data")
	return cmd
}

func runLookup(w io.Writer, targets, data string) error {
	tt, err := iotable.Load(targets)
	if err != nil {
		return err
	}
	dt, err := iotable.Load(data)
	if err != nil {
		return err
	}

	matches := filter.MatchIDs(tt, dt)
	for _, m := range matches {
		fmt.Fprintf(w, "%d\t%s\n", m.Index, m.ID)
	}
	gn.Info("Found <em>%s</em> matches", comma(len(matches)))
	return nil
}
