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
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/evsiren/evset/internal/iocurate"
	"github.com/evsiren/evset/internal/iolabels"
	"github.com/evsiren/evset/internal/iorecipe"
	"github.com/evsiren/evset/pkg/config"
	"github.com/evsiren/evset/pkg/labelmap"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/spf13/cobra"
)

// getCurateCmd returns the curate command.
func getCurateCmd() *cobra.Command {
	var segments, recipePath string

	cmd := &cobra.Command{
		Use:   "curate",
		Short: "Build positive and negative tables from AudioSet segments",
		Long: `Build the emergency-vehicle dataset from AudioSet segment files.

This command:
  1. Reads every *segments.csv file in the segments directory
  2. Selects positives and negatives from each of them
  3. Merges each group and removes blacklisted rows
     (negatives lose every row with a positive label)
  4. Rebalances negatives over their labels
  5. Writes <group>.csv and <group>_stats.json to the output directory

Groups are described in ~/.config/evset/recipe.yaml. When the labels file
is not found, class_labels_indices.csv from the segments directory is used.

Examples:
  evset curate -s ./original_csv
  evset curate -s ./original_csv -o ./AudioSet_EV --seed 7
  evset curate -s ./original_csv -r my_recipe.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.Update(rebalanceFlags(cmd))
			err := runCurate(cmd, segments, recipePath)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	cmd.Flags().StringVarP(&segments, "segments", "s", ".",
		"directory with AudioSet segment files")
	cmd.Flags().StringVarP(&recipePath, "recipe", "r", "",
		"recipe file (default ~/.config/evset/recipe.yaml)")
	seedFlags(cmd)

	return cmd
}

func runCurate(cmd *cobra.Command, segments, recipePath string) error {
	start := time.Now()

	if !cmd.Flags().Changed("labels") {
		useSegmentsLabels(segments)
	}
	lm, err := loadLabels()
	if err != nil {
		return err
	}

	if recipePath == "" {
		recipePath = config.RecipeFilePath(cfg.HomeDir)
	}
	rcp, err := iorecipe.Load(recipePath)
	if err != nil {
		return err
	}

	gn.Info("Curating <em>%s</em> with recipe <em>%s</em>", segments, recipePath)
	res, err := iocurate.New(cfg, lm, rcp).Run(context.Background(), segments)
	if err != nil {
		return err
	}

	for _, s := range res.Segments {
		gn.Info("%s: <em>%s</em> positive, <em>%s</em> negative samples",
			s.Segment, comma(s.Positives), comma(s.Negatives))
	}
	gn.Info("Negative samples post-blacklisting: <em>%s</em>",
		comma(res.Negatives.Blacklisted))
	if unknown := res.Rebalance.UnknownLabels; len(unknown) > 0 {
		gn.Warn("Unknown negative labels: <warn>%v</warn>", unknown)
	}
	if empty := res.Rebalance.EmptyLabels; len(empty) > 0 {
		gn.Warn("Labels without negative samples: <warn>%v</warn>", empty)
	}

	for _, g := range []iocurate.Group{res.Positives, res.Negatives} {
		gn.Info("%s: <em>%s</em> samples written to <em>%s</em>",
			g.Name, comma(g.Final), g.Path)
	}
	gn.Info("Curation finished in %s",
		gnfmt.TimeString(time.Since(start).Seconds()))
	return nil
}

// useSegmentsLabels points to the labels file shipped with segment files
// when the configured one is missing.
func useSegmentsLabels(segments string) {
	if _, err := os.Stat(cfg.LabelsFile); err == nil {
		return
	}
	alt := filepath.Join(segments, filepath.Base(cfg.LabelsFile))
	if _, err := os.Stat(alt); err == nil {
		cfg.Update([]config.Option{config.OptLabelsFile(alt)})
	}
}

func loadLabels() (*labelmap.LabelMap, error) {
	return iolabels.Load(cfg.LabelsFile)
}

func comma(i int) string {
	return humanize.Comma(int64(i))
}
