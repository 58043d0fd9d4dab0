// Package iotable reads and writes segment tables as CSV files.
package iotable

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/evsiren/evset/pkg/table"
	"golang.org/x/sync/errgroup"
)

// Load reads an AudioSet segment table. Raw segment files (comment lines,
// flat label strings) and processed tables (list literal labels) are both
// accepted and normalized to the processed form.
func Load(path string) (*table.Table, error) {
	records, err := readRecords(path)
	if err != nil {
		return nil, err
	}
	res, err := table.FromRecords(records)
	if err != nil {
		return nil, TableParseError(path, err)
	}
	slog.Debug("Loaded table", "path", path, "rows", res.Len())
	return res, nil
}

// LoadPlain reads a CSV file with a header row as is, without label
// normalization. It is used for auxiliary corpora such as FSD50K and ESC-50.
func LoadPlain(path string) (*table.Table, error) {
	records, err := readRecords(path)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, TableParseError(path, table.ErrNoHeader)
	}
	res, err := table.New(records[0], records[1:])
	if err != nil {
		return nil, TableParseError(path, err)
	}
	return res, nil
}

// LoadAll reads several segment tables concurrently, at most jobs at a
// time. Results keep the order of paths.
func LoadAll(
	ctx context.Context,
	paths []string,
	jobs int,
) ([]*table.Table, error) {
	res := make([]*table.Table, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(jobs, 1))
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			t, err := Load(path)
			if err != nil {
				return err
			}
			res[i] = t
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return res, nil
}

// Save writes a table as CSV. The file is written next to its destination
// and renamed into place, so an interrupted save leaves the old file intact.
func Save(path string, t *table.Table) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return TableWriteError(path, err)
	}
	defer os.Remove(tmp.Name())

	if err = write(tmp, t); err != nil {
		tmp.Close()
		return TableWriteError(path, err)
	}
	if err = tmp.Close(); err != nil {
		return TableWriteError(path, err)
	}
	if err = os.Chmod(tmp.Name(), 0644); err != nil {
		return TableWriteError(path, err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return TableWriteError(path, err)
	}
	return nil
}

func write(w io.Writer, t *table.Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Header); err != nil {
		return err
	}
	for _, row := range t.Rows {
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func readRecords(path string) ([][]string, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, FileNotFoundError(path, err)
	}
	if err != nil {
		return nil, TableParseError(path, err)
	}
	defer f.Close()

	rd := csv.NewReader(f)
	rd.FieldsPerRecord = -1
	rd.LazyQuotes = true
	rd.TrimLeadingSpace = true
	res, err := rd.ReadAll()
	if err != nil {
		return nil, TableParseError(path, err)
	}
	return res, nil
}
