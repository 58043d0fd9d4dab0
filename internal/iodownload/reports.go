package iodownload

import (
	"io"
	"os"
	"path/filepath"

	"github.com/evsiren/evset/pkg/download"
)

// Report file names written to the download folder.
const (
	MissingReport      = "Missing_samples_report.txt"
	SuccessReport      = "Success_samples_report.txt"
	SuccessLabelReport = "Success_labels_report.txt"
)

// WriteReports writes failures, successes and label counts to dir.
func WriteReports(dir string, r *download.Report) error {
	files := []struct {
		name  string
		write func(io.Writer) error
	}{
		{MissingReport, r.WriteFailures},
		{SuccessReport, r.WriteSuccesses},
		{SuccessLabelReport, r.WriteLabelCounts},
	}
	for _, v := range files {
		path := filepath.Join(dir, v.name)
		if err := writeReport(path, v.write); err != nil {
			return ReportError(path, err)
		}
	}
	return nil
}

func writeReport(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err = write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
