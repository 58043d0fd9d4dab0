// Package ioesc50 arranges the ESC-50 corpus into cross-validation folds.
package ioesc50

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gnames/gnsys"
)

const (
	// MetaFile lists every clip with its fold.
	MetaFile = "esc50.csv"
	// AudioDir holds the clips as shipped.
	AudioDir = "original_audio"
	// FoldsDir receives fold_1 ... fold_<Folds>.
	FoldsDir = "cross_val_folds"
	// Folds is the number of ESC-50 folds.
	Folds = 5
)

// FoldDir returns the directory of fold n.
func FoldDir(dir string, n int) string {
	return filepath.Join(dir, FoldsDir, fmt.Sprintf("fold_%d", n))
}

// BuildFolds reads dir/esc50.csv and copies every clip from
// dir/original_audio to dir/cross_val_folds/fold_<fold>. It returns how
// many clips each fold received, indexed by fold number.
func BuildFolds(dir string) ([]int, error) {
	meta := filepath.Join(dir, MetaFile)
	clips, err := readMeta(meta)
	if err != nil {
		return nil, ESC50FoldError(meta, err)
	}

	for i := 1; i <= Folds; i++ {
		if err = gnsys.MakeDir(FoldDir(dir, i)); err != nil {
			return nil, ESC50FoldError(FoldDir(dir, i), err)
		}
	}

	res := make([]int, Folds+1)
	for _, c := range clips {
		src := filepath.Join(dir, AudioDir, c.file)
		dst := filepath.Join(FoldDir(dir, c.fold), c.file)
		if err = copyFile(src, dst); err != nil {
			return nil, ESC50FoldError(src, err)
		}
		res[c.fold]++
	}
	slog.Info("ESC-50 folds created", "dir", dir, "clips", len(clips))
	return res, nil
}

type clip struct {
	file string
	fold int
}

func readMeta(path string) ([]clip, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("header: %w", err)
	}
	fileCol, foldCol := -1, -1
	for i, h := range header {
		switch strings.TrimSpace(h) {
		case "filename":
			fileCol = i
		case "fold":
			foldCol = i
		}
	}
	if fileCol < 0 || foldCol < 0 {
		return nil, fmt.Errorf("%s needs filename and fold columns", MetaFile)
	}

	var res []clip
	for line := 2; ; line++ {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(rec) <= max(fileCol, foldCol) {
			return nil, fmt.Errorf("line %d: too few fields", line)
		}
		fold, err := strconv.Atoi(strings.TrimSpace(rec[foldCol]))
		if err != nil || fold < 1 || fold > Folds {
			return nil, fmt.Errorf("line %d: bad fold %q", line, rec[foldCol])
		}
		file := filepath.Base(strings.TrimSpace(rec[fileCol]))
		res = append(res, clip{file: file, fold: fold})
	}
	return res, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err = io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
