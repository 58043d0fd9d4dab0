package download

import (
	"fmt"
	"io"
	"time"

	"github.com/evsiren/evset/pkg/table"
)

// Entry is a row mentioned in a report.
type Entry struct {
	ID     string
	Labels []string
	Reason string
}

// Report accumulates outcomes of one run.
type Report struct {
	RunID     string
	Successes []Entry
	Failures  []Entry
	States    map[State]int
	Aborted   bool
	Elapsed   time.Duration

	labelCounts map[string]int
	labelOrder  []string
}

// NewReport creates an empty report.
func NewReport(runID string) *Report {
	return &Report{
		RunID:       runID,
		States:      make(map[State]int),
		labelCounts: make(map[string]int),
	}
}

// AddSuccess records a processed row and counts its labels.
func (r *Report) AddSuccess(id string, labels []string) {
	r.Successes = append(r.Successes, Entry{ID: id, Labels: labels})
	for _, l := range labels {
		if _, ok := r.labelCounts[l]; !ok {
			r.labelOrder = append(r.labelOrder, l)
		}
		r.labelCounts[l]++
	}
}

// AddFailure records a failed row with the reason.
func (r *Report) AddFailure(id string, labels []string, reason string) {
	r.Failures = append(r.Failures, Entry{ID: id, Labels: labels, Reason: reason})
}

// LabelCount is a label with the number of processed rows carrying it.
type LabelCount struct {
	Label string
	Count int
}

// LabelCounts returns counts in the order labels were first seen.
func (r *Report) LabelCounts() []LabelCount {
	res := make([]LabelCount, len(r.labelOrder))
	for i, l := range r.labelOrder {
		res[i] = LabelCount{Label: l, Count: r.labelCounts[l]}
	}
	return res
}

// WriteSuccesses writes one "<id>: ['label', ...]" line per success.
func (r *Report) WriteSuccesses(w io.Writer) error {
	for _, e := range r.Successes {
		_, err := fmt.Fprintf(w, "%s: %s\n", e.ID, table.FormatLabels(e.Labels))
		if err != nil {
			return err
		}
	}
	return nil
}

// WriteFailures writes one "<id>: ['label', ...] (<reason>)" line
// per failure.
func (r *Report) WriteFailures(w io.Writer) error {
	for _, e := range r.Failures {
		_, err := fmt.Fprintf(w, "%s: %s (%s)\n",
			e.ID, table.FormatLabels(e.Labels), e.Reason)
		if err != nil {
			return err
		}
	}
	return nil
}

// WriteLabelCounts writes one "<label>: <count>" line per label.
func (r *Report) WriteLabelCounts(w io.Writer) error {
	for _, lc := range r.LabelCounts() {
		if _, err := fmt.Fprintf(w, "%s: %d\n", lc.Label, lc.Count); err != nil {
			return err
		}
	}
	return nil
}
