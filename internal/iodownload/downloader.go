// Package iodownload fetches, processes and stores the audio of segment
// table rows, keeping the downloaded flag of every row up to date so
// interrupted runs can be resumed.
package iodownload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/evsiren/evset/internal/iofs"
	"github.com/evsiren/evset/internal/iotable"
	"github.com/evsiren/evset/pkg/audio"
	"github.com/evsiren/evset/pkg/config"
	"github.com/evsiren/evset/pkg/download"
	"github.com/evsiren/evset/pkg/labelmap"
	"github.com/evsiren/evset/pkg/table"
	"github.com/gnames/gnsys"
	"github.com/google/uuid"
)

// Downloader runs the download state machine over segment tables.
type Downloader struct {
	cfg        config.DownloadConfig
	outputDir  string
	fetchDir   string
	labels     *labelmap.LabelMap
	fetcher    download.Fetcher
	refresher  download.CredentialRefresher
	classifier download.Classifier
	sleep      download.Sleeper
	rng        *rand.Rand
	progress   io.Writer
}

// Option configures a Downloader.
type Option func(*Downloader)

// OptFetcher replaces the yt-dlp fetcher.
func OptFetcher(f download.Fetcher) Option {
	return func(d *Downloader) {
		d.fetcher = f
	}
}

// OptRefresher replaces the command-based credential refresher.
func OptRefresher(r download.CredentialRefresher) Option {
	return func(d *Downloader) {
		d.refresher = r
	}
}

// OptSleeper replaces the pause between rows.
func OptSleeper(s download.Sleeper) Option {
	return func(d *Downloader) {
		d.sleep = s
	}
}

// OptRand sets the random source of delays.
func OptRand(r *rand.Rand) Option {
	return func(d *Downloader) {
		d.rng = r
	}
}

// OptFetchDir sets where fetched files wait for processing.
func OptFetchDir(dir string) Option {
	return func(d *Downloader) {
		d.fetchDir = dir
	}
}

// OptProgress sets the output of the progress bar.
func OptProgress(w io.Writer) Option {
	return func(d *Downloader) {
		d.progress = w
	}
}

// New creates a Downloader. Without OptFetcher the caller must provide a
// fetcher before Run, see NewYtdlpFetcher.
func New(cfg *config.Config, lm *labelmap.LabelMap, opts ...Option) *Downloader {
	res := &Downloader{
		cfg:       cfg.Download,
		outputDir: cfg.OutputDir,
		fetchDir:  config.FetchDir(cfg.HomeDir),
		labels:    lm,
		refresher: &CommandRefresher{
			Command:     cfg.Download.RefreshCommand,
			CookiesFile: cfg.Download.CookiesFile,
		},
		classifier: download.Classifier{
			AuthMarkers: cfg.Download.AuthMarkers,
			BanMarkers:  cfg.Download.BanMarkers,
		},
		sleep:    download.Sleep,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		progress: os.Stderr,
	}
	for _, opt := range opts {
		opt(res)
	}
	return res
}

// run holds the state of one table.
type run struct {
	*Downloader
	tbl       *table.Table
	dir       string
	persister download.Persister
	report    *download.Report
	states    []download.State
	proc      processor
	attempted int
}

// Run downloads every pending row of the table at tablePath into
// <output dir>/AudioSet_<table stem>_downloads. Reports are written even
// when the run is halted by a provider ban, a failed credential refresh or
// a canceled context; the error tells which.
func (d *Downloader) Run(ctx context.Context, tablePath string) (*download.Report, error) {
	if d.fetcher == nil {
		return nil, SetupError(tablePath, errors.New("no fetcher"))
	}
	mode, err := audio.NewMode(d.cfg.Channels)
	if err != nil {
		return nil, SetupError(tablePath, err)
	}

	tbl, err := iotable.Load(tablePath)
	if err != nil {
		return nil, err
	}
	for _, col := range []string{table.ColID, table.ColStart, table.ColEnd, table.ColLabels} {
		if tbl.Col(col) < 0 {
			return nil, SetupError(tablePath,
				fmt.Errorf("%w: %s", table.ErrNoColumn, col))
		}
	}
	if tbl.EnsureDownloaded() {
		slog.Info("Added downloaded column", "table", tablePath)
		if err = iotable.Save(tablePath, tbl); err != nil {
			return nil, err
		}
	}

	dir := config.DownloadDir(d.outputDir, tablePath)
	for _, v := range []string{dir, d.fetchDir} {
		if err = iofs.EnsureDir(v); err != nil {
			return nil, err
		}
	}
	// leftovers of an interrupted run
	if err = gnsys.CleanDir(d.fetchDir); err != nil {
		return nil, SetupError(d.fetchDir, err)
	}

	r := &run{
		Downloader: d,
		tbl:        tbl,
		dir:        dir,
		report:     download.NewReport(uuid.NewString()),
		states:     make([]download.State, tbl.Len()),
		proc: processor{
			rate:      d.cfg.SampleRate,
			mode:      mode,
			normalize: d.cfg.Normalize,
		},
	}
	for i := range r.states {
		r.states[i] = download.Pending
	}

	if d.cfg.PersistMode == "journal" {
		r.persister, err = NewJournalPersister(dir, tablePath, r.report.RunID)
		if err != nil {
			return nil, err
		}
	} else {
		r.persister = &TablePersister{Path: tablePath}
	}
	restored, err := r.persister.Restore(tbl)
	if err != nil {
		r.persister.Close(tbl)
		return nil, err
	}
	if restored > 0 {
		slog.Info("Restored rows from journal", "count", restored)
	}

	slog.Info("Download started",
		"table", tablePath, "rows", tbl.Len(), "dir", dir,
		"run", r.report.RunID)

	start := time.Now()
	runErr := r.loop(ctx, filepath.Base(tablePath))
	r.report.Elapsed = time.Since(start)
	for _, s := range r.states {
		r.report.States[s]++
	}

	err = r.persister.Close(tbl)
	if rerr := WriteReports(dir, r.report); err == nil {
		err = rerr
	}
	if runErr != nil {
		return r.report, runErr
	}
	return r.report, err
}

func (r *run) loop(ctx context.Context, name string) error {
	bar := newProgressBar(r.tbl.Len(), name+" ", r.progress)
	defer bar.Finish()

	for i := range r.tbl.Rows {
		if err := ctx.Err(); err != nil {
			r.report.Aborted = true
			return err
		}
		err := r.row(ctx, i)
		bar.Increment()
		if err != nil {
			r.report.Aborted = true
			return err
		}
	}
	return nil
}

// row walks one row through its states. A returned error halts the run.
func (r *run) row(ctx context.Context, i int) error {
	tbl := r.tbl
	row := tbl.Rows[i]
	id := strings.TrimSpace(tbl.Field(row, table.ColID))

	if tbl.Downloaded(i) && hasArtifact(r.dir, id) {
		slog.Info("Skipping already downloaded row", "id", id)
		r.states[i] = download.SkippedAlreadyDone
		return nil
	}

	codes, err := tbl.Labels(row)
	if err != nil || len(codes) == 0 || id == "" {
		r.fail(i, id, nil, "missing id or labels")
		return nil
	}
	names := r.labels.Names(codes)
	start, errS := strconv.ParseFloat(strings.TrimSpace(tbl.Field(row, table.ColStart)), 64)
	end, errE := strconv.ParseFloat(strings.TrimSpace(tbl.Field(row, table.ColEnd)), 64)
	if errS != nil || errE != nil {
		r.fail(i, id, names, "bad segment bounds")
		return nil
	}

	if r.attempted > 0 {
		if err = r.pause(ctx); err != nil {
			return err
		}
	}
	r.attempted++

	r.states[i] = download.Downloading
	slog.Info("Processing row", "id", id, "labels", names)
	for refreshes := 0; ; refreshes++ {
		err = r.classifier.Classify(r.fetchAndProcess(ctx, id, start, end))
		switch {
		case err == nil:
			r.states[i] = download.Processed
			r.report.AddSuccess(id, names)
			tbl.SetDownloaded(i, true)
			return r.persister.Save(tbl, i)

		case ctx.Err() != nil:
			r.states[i] = download.Pending
			return ctx.Err()

		case errors.Is(err, download.ErrProviderBan):
			slog.Error("Provider ban, halting run", "id", id, "error", err)
			r.states[i] = download.Pending
			return ProviderBanError(id, err)

		case errors.Is(err, download.ErrAuthRequired):
			tbl.SetDownloaded(i, false)
			if serr := r.persister.Save(tbl, i); serr != nil {
				return serr
			}
			if refreshes >= r.cfg.AuthRetries {
				r.fail(i, id, names, "authentication required")
				return nil
			}
			slog.Warn("Authentication required", "id", id, "refresh", refreshes+1)
			if rerr := r.refresher.Refresh(ctx); rerr != nil {
				r.states[i] = download.Pending
				return AuthRefreshError(id, rerr)
			}

		default:
			slog.Warn("Row failed", "id", id, "error", err)
			r.fail(i, id, names, firstLine(err.Error()))
			return r.persister.Save(tbl, i)
		}
	}
}

func (r *run) fail(i int, id string, names []string, reason string) {
	r.states[i] = download.Failed
	r.report.AddFailure(id, names, reason)
}

func (r *run) fetchAndProcess(ctx context.Context, id string, start, end float64) error {
	path, err := r.fetcher.Fetch(ctx, id, r.fetchDir)
	if err != nil {
		return err
	}
	defer os.Remove(path)

	files, err := r.proc.process(path, id, start, end, r.dir)
	if err != nil {
		return err
	}
	slog.Debug("Written", "id", id, "files", files)
	return nil
}

// pause waits a random delay from [MinDelay, MaxDelay].
func (r *run) pause(ctx context.Context) error {
	lo, hi := r.cfg.MinDelay, r.cfg.MaxDelay
	if hi <= 0 {
		return nil
	}
	d := lo
	if hi > lo {
		d += time.Duration(r.rng.Int63n(int64(hi-lo) + 1))
	}
	slog.Debug("Sleeping between rows", "delay", d)
	return r.sleep(ctx, d)
}

// hasArtifact tells if dir holds <id>_<suffix>.wav for any channel suffix.
func hasArtifact(dir, id string) bool {
	if id == "" {
		return false
	}
	for _, suffix := range audio.Suffixes() {
		path := filepath.Join(dir, id+"_"+suffix+".wav")
		if _, err := os.Stat(path); err == nil {
			return true
		}
	}
	return false
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
