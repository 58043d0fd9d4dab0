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
	"os/signal"

	"github.com/evsiren/evset/internal/iodownload"
	"github.com/evsiren/evset/pkg/config"
	"github.com/evsiren/evset/pkg/download"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/spf13/cobra"
)

// getDownloadCmd returns the download command.
func getDownloadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "download FILE...",
		Short: "Download and process the audio of tables",
		Long: `Download the audio of every row that is not downloaded yet, cut it to
its segment, resample it and write WAV files to
<output dir>/AudioSet_<table name>_downloads.

The downloaded column of the table is updated as rows complete, so an
interrupted run continues where it stopped. When YouTube asks to sign in,
the refresh command from the config (a browser by default) is started;
export fresh cookies to the cookies file and close it to continue. When
YouTube stops serving content the run halts and reports are written.

Reports in the download folder:
  Missing_samples_report.txt   failed rows with the reason
  Success_samples_report.txt   processed rows with their labels
  Success_labels_report.txt    processed rows per label

Examples:
  evset download EV_Positives.csv
  evset download --rate 16000 --channels mono_reduce EV_Negatives.csv
  evset download --cookies cookies.txt --journal EV_Positives.csv`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.Update(downloadFlags(cmd))
			err := runDownload(args)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	cmd.Flags().Int("rate", 0, "sampling rate of written audio, Hz")
	cmd.Flags().String("channels", "",
		"stereo, mono_split or mono_reduce")
	cmd.Flags().Bool("normalize", false, "scale clips to peak amplitude 1.0")
	cmd.Flags().String("cookies", "", "Netscape cookies file for yt-dlp")
	cmd.Flags().Bool("journal", false,
		"keep progress in a SQLite journal, rewrite the table at the end")
	return cmd
}

func downloadFlags(cmd *cobra.Command) []config.Option {
	var res []config.Option
	f := cmd.Flags()
	if f.Changed("rate") {
		i, _ := f.GetInt("rate")
		res = append(res, config.OptDownloadSampleRate(i))
	}
	if f.Changed("channels") {
		s, _ := f.GetString("channels")
		res = append(res, config.OptDownloadChannels(s))
	}
	if f.Changed("normalize") {
		b, _ := f.GetBool("normalize")
		res = append(res, config.OptDownloadNormalize(b))
	}
	if f.Changed("cookies") {
		s, _ := f.GetString("cookies")
		res = append(res, config.OptDownloadCookiesFile(s))
	}
	if f.Changed("journal") {
		mode := "table"
		if b, _ := f.GetBool("journal"); b {
			mode = "journal"
		}
		res = append(res, config.OptDownloadPersistMode(mode))
	}
	return res
}

func runDownload(files []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	lm, err := loadLabels()
	if err != nil {
		return err
	}
	fetcher, err := iodownload.NewYtdlpFetcher(ctx, cfg.Download)
	if err != nil {
		return err
	}
	d := iodownload.New(cfg, lm, iodownload.OptFetcher(fetcher))

	for _, file := range files {
		gn.Info("Downloading <em>%s</em>", file)
		rep, err := d.Run(ctx, file)
		if rep != nil {
			printReport(rep)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func printReport(rep *download.Report) {
	gn.Message(
		"<em>Processed %s, failed %s, skipped %s, pending %s</em>",
		comma(rep.States[download.Processed]),
		comma(rep.States[download.Failed]),
		comma(rep.States[download.SkippedAlreadyDone]),
		comma(rep.States[download.Pending]),
	)
	for _, lc := range rep.LabelCounts() {
		gn.Message("%s: %s", lc.Label, comma(lc.Count))
	}
	if rep.Aborted {
		gn.Warn("Run <warn>%s</warn> halted after %s", rep.RunID,
			gnfmt.TimeString(rep.Elapsed.Seconds()))
		return
	}
	gn.Info("Run <em>%s</em> finished in %s", rep.RunID,
		gnfmt.TimeString(rep.Elapsed.Seconds()))
}
