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
	"context"
	"maps"
	"math/rand"
	"slices"
	"strings"

	"github.com/evsiren/evset/internal/iocurate"
	"github.com/evsiren/evset/internal/iotable"
	"github.com/evsiren/evset/pkg/filter"
	"github.com/evsiren/evset/pkg/rebalance"
	"github.com/evsiren/evset/pkg/table"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

// getSelectCmd returns the select command.
func getSelectCmd() *cobra.Command {
	return labelFilterCmd("select", false)
}

// getExcludeCmd returns the exclude command.
func getExcludeCmd() *cobra.Command {
	return labelFilterCmd("exclude", true)
}

func labelFilterCmd(use string, exclude bool) *cobra.Command {
	var data, out string
	short := "Keep rows with any of the given labels"
	if exclude {
		short = "Drop rows with any of the given labels"
	}

	cmd := &cobra.Command{
		Use:   use + " LABEL...",
		Short: short,
		Long: short + `.

Labels are display names from the labels file. Label fields of kept rows
are rewritten in the list form, for example ['/m/012n7d', '/m/03j1ly'].

Examples:
  evset ` + use + ` -d eval_segments.csv --out eval_EV.csv "Emergency vehicle"
  evset ` + use + ` -d EV.csv --out EV_clean.csv "Civil defense siren"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runLabelFilter(data, out, args, exclude)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	cmd.Flags().StringVarP(&data, "data", "d", "", "input table")
	cmd.Flags().StringVar(&out, "out", "", "output table")
	cmd.MarkFlagRequired("data")
	cmd.MarkFlagRequired("out")
	return cmd
}

func runLabelFilter(data, out string, names []string, exclude bool) error {
	lm, err := loadLabels()
	if err != nil {
		return err
	}
	tbl, err := iotable.Load(data)
	if err != nil {
		return err
	}

	var res *table.Table
	var ok bool
	if exclude {
		res, ok = filter.ExcludeByAnyLabel(lm, tbl, names)
	} else {
		res, ok = filter.SelectByAnyLabel(lm, tbl, names)
	}
	if !ok {
		gn.Warn("None of <warn>%s</warn> is a known label",
			strings.Join(names, ", "))
	}

	if err = iotable.Save(out, res); err != nil {
		return err
	}
	gn.Info("Kept <em>%s</em> of %s rows in <em>%s</em>",
		comma(res.Len()), comma(tbl.Len()), out)
	return nil
}

// getRangeCmd returns the range command.
func getRangeCmd() *cobra.Command {
	var data, out string
	var start, end int

	cmd := &cobra.Command{
		Use:   "range",
		Short: "Keep rows with index in [start, end)",
		Long: `Keep rows with index in [start, end). Bounds are clamped to the table,
so a range may be used to cut a table into chunks for separate downloads.

Examples:
  evset range -d EV_Negatives.csv --out part1.csv --start 0 --end 1000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runRange(data, out, start, end)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	cmd.Flags().StringVarP(&data, "data", "d", "", "input table")
	cmd.Flags().StringVar(&out, "out", "", "output table")
	cmd.Flags().IntVar(&start, "start", 0, "first row index")
	cmd.Flags().IntVar(&end, "end", 0, "row index after the last kept row")
	cmd.MarkFlagRequired("data")
	cmd.MarkFlagRequired("out")
	return cmd
}

func runRange(data, out string, start, end int) error {
	tbl, err := iotable.Load(data)
	if err != nil {
		return err
	}
	res := filter.SelectByRowRange(tbl, start, end)
	if err = iotable.Save(out, res); err != nil {
		return err
	}
	gn.Info("Kept <em>%s</em> of %s rows in <em>%s</em>",
		comma(res.Len()), comma(tbl.Len()), out)
	return nil
}

// getMergeCmd returns the merge command.
func getMergeCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "merge FILE...",
		Short: "Concatenate tables dropping duplicate rows",
		Long: `Concatenate tables in the given order. A row identical to an earlier
one is dropped. The header of the first table is used.

Examples:
  evset merge --out EV.csv eval_EV.csv balanced_train_EV.csv`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runMerge(out, args)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "output table")
	cmd.MarkFlagRequired("out")
	return cmd
}

func runMerge(out string, files []string) error {
	tables, err := iotable.LoadAll(context.Background(), files, cfg.JobsNumber)
	if err != nil {
		return err
	}
	var total int
	for _, t := range tables {
		total += t.Len()
	}

	res := table.Merge(tables...)
	if err = iotable.Save(out, res); err != nil {
		return err
	}
	gn.Info("Merged %s tables: <em>%s</em> unique of %s rows in <em>%s</em>",
		comma(len(tables)), comma(res.Len()), comma(total), out)
	return nil
}

// getRebalanceCmd returns the rebalance command.
func getRebalanceCmd() *cobra.Command {
	var data, out string

	cmd := &cobra.Command{
		Use:   "rebalance [LABEL...]",
		Short: "Subsample a table so focus labels are equally represented",
		Long: `Group rows by the focus labels they carry and cut every group to the
size of the smallest non-empty one. Without labels every known label is a
focus label. A row goes to the output at most once, so overlapping groups
may end up smaller than the target.

Examples:
  evset rebalance -d EV_Negatives_all.csv --out EV_Negatives.csv
  evset rebalance -d N.csv --out N_bal.csv --seed 7 Car Bus Train`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.Update(rebalanceFlags(cmd))
			err := runRebalance(data, out, args)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	cmd.Flags().StringVarP(&data, "data", "d", "", "input table")
	cmd.Flags().StringVar(&out, "out", "", "output table")
	cmd.MarkFlagRequired("data")
	cmd.MarkFlagRequired("out")
	seedFlags(cmd)
	return cmd
}

func runRebalance(data, out string, focus []string) error {
	lm, err := loadLabels()
	if err != nil {
		return err
	}
	tbl, err := iotable.Load(data)
	if err != nil {
		return err
	}

	opts := rebalance.Options{
		Rand:   rand.New(rand.NewSource(cfg.Rebalance.Seed)),
		Strict: cfg.Rebalance.Strict,
	}
	res, err := rebalance.Rebalance(tbl, lm, focus, opts)
	if err != nil {
		return iocurate.RebalanceError(data, err)
	}
	if len(res.UnknownLabels) > 0 {
		gn.Warn("Unknown labels: <warn>%s</warn>",
			strings.Join(res.UnknownLabels, ", "))
	}
	if len(res.EmptyLabels) > 0 {
		gn.Warn("Labels without rows: <warn>%s</warn>",
			strings.Join(res.EmptyLabels, ", "))
	}

	if err = iotable.Save(out, res.Table); err != nil {
		return err
	}
	gn.Info("Target count per label: <em>%s</em>", comma(res.TargetCount))
	for _, name := range slices.Sorted(maps.Keys(res.FinalCounts)) {
		gn.Message("%s: %s", name, comma(res.FinalCounts[name]))
	}
	gn.Info("Kept <em>%s</em> of %s rows in <em>%s</em>",
		comma(res.Table.Len()), comma(tbl.Len()), out)
	return nil
}
