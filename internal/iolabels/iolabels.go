// Package iolabels reads AudioSet class label tables.
package iolabels

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/evsiren/evset/pkg/labelmap"
)

var (
	codeColumns = []string{"mid", "code"}
	nameColumns = []string{"display_name"}
)

// Load reads a label table with a code column ("mid" or "code") and a
// "display_name" column.
func Load(path string) (*labelmap.LabelMap, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, FileNotFoundError(path, err)
	}
	if err != nil {
		return nil, LabelsParseError(path, err)
	}
	defer f.Close()

	entries, err := read(f)
	if err != nil {
		return nil, LabelsParseError(path, err)
	}
	res := labelmap.New(entries)
	slog.Info("Loaded labels", "path", path, "count", res.Len())
	return res, nil
}

func read(r io.Reader) ([]labelmap.Entry, error) {
	rd := csv.NewReader(r)
	rd.FieldsPerRecord = -1
	rd.TrimLeadingSpace = true

	header, err := rd.Read()
	if err == io.EOF {
		return nil, errors.New("empty labels table")
	}
	if err != nil {
		return nil, err
	}
	codeIdx := column(header, codeColumns)
	nameIdx := column(header, nameColumns)
	if codeIdx < 0 || nameIdx < 0 {
		return nil, fmt.Errorf("required columns %s and %s are missing in %v",
			strings.Join(codeColumns, "/"), strings.Join(nameColumns, "/"), header)
	}

	var res []labelmap.Entry
	for {
		rec, err := rd.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(rec) <= max(codeIdx, nameIdx) {
			continue
		}
		res = append(res, labelmap.Entry{
			Code: strings.TrimSpace(rec[codeIdx]),
			Name: strings.TrimSpace(rec[nameIdx]),
		})
	}
	return res, nil
}

func column(header []string, names []string) int {
	for _, n := range names {
		for i, h := range header {
			if strings.EqualFold(strings.TrimSpace(h), n) {
				return i
			}
		}
	}
	return -1
}
