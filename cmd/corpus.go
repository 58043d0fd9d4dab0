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
	"path/filepath"

	"github.com/evsiren/evset/internal/ioesc50"
	"github.com/evsiren/evset/internal/iotable"
	"github.com/evsiren/evset/pkg/filter"
	"github.com/evsiren/evset/pkg/recipe"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

// getESC50Cmd returns the esc50 command.
func getESC50Cmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "esc50",
		Short: "Arrange ESC-50 clips into cross-validation folds",
		Long: `Read esc50.csv from the ESC-50 directory and copy every clip from
original_audio to cross_val_folds/fold_<n>.

Examples:
  evset esc50 --dir ./EV-benchmark/ESC-50`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runESC50(dir)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "ESC-50 directory")
	return cmd
}

func runESC50(dir string) error {
	counts, err := ioesc50.BuildFolds(dir)
	if err != nil {
		return err
	}
	for i := 1; i < len(counts); i++ {
		gn.Message("fold_%d: %s clips", i, comma(counts[i]))
	}
	gn.Info("Folds are in <em>%s</em>", filepath.Join(dir, ioesc50.FoldsDir))
	return nil
}

// getFSD50KCmd returns the fsd50k command.
func getFSD50KCmd() *cobra.Command {
	var pos, neg string
	var positives, negatives []string

	cmd := &cobra.Command{
		Use:   "fsd50k INPUT",
		Short: "Split an FSD50K ground-truth file into sirens and urban sounds",
		Long: `Split an FSD50K ground-truth CSV (dev.csv or eval.csv) by its labels
column. A row with a positive class goes to the positives file, a row with
a negative class and no positive one goes to the negatives file, other rows
are dropped.

Examples:
  evset fsd50k FSD50K.ground_truth/eval.csv \
    --pos FSD-eval_positives.csv --neg FSD-eval_negatives.csv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runFSD50K(args[0], pos, neg, positives, negatives)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	rcp := recipe.FSD50K()
	cmd.Flags().StringVar(&pos, "pos", "", "output table of positives")
	cmd.Flags().StringVar(&neg, "neg", "", "output table of negatives")
	cmd.Flags().StringSliceVar(&positives, "positives",
		rcp.Positives.Labels, "positive class names")
	cmd.Flags().StringSliceVar(&negatives, "negatives",
		rcp.Negatives.Labels, "negative class names")
	cmd.MarkFlagRequired("pos")
	cmd.MarkFlagRequired("neg")
	return cmd
}

func runFSD50K(input, pos, neg string, positives, negatives []string) error {
	tbl, err := iotable.LoadPlain(input)
	if err != nil {
		return err
	}

	p, n := filter.SplitByNames(tbl, "labels", positives, negatives)
	if err = iotable.Save(pos, p); err != nil {
		return err
	}
	if err = iotable.Save(neg, n); err != nil {
		return err
	}
	gn.Info("Number of positive samples: <em>%s</em>", comma(p.Len()))
	gn.Info("Number of negative samples: <em>%s</em>", comma(n.Len()))
	return nil
}
