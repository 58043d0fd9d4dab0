// Package rebalance subsamples a table so that rows carrying each focus
// label are about equally represented.
package rebalance

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"

	"github.com/evsiren/evset/pkg/labelmap"
	"github.com/evsiren/evset/pkg/table"
)

// DefaultSeed seeds the random source when Options carry none.
const DefaultSeed = 42

var (
	// ErrNoBuckets means no focus label is carried by any row.
	ErrNoBuckets = errors.New("no non-empty bucket to balance")
	// ErrEmptyBucket means a focus label is carried by no row or is
	// unknown, and strict mode is on.
	ErrEmptyBucket = errors.New("focus label has an empty bucket")
)

// Options control a rebalancing call.
type Options struct {
	// Rand shuffles buckets. If nil, a source seeded with DefaultSeed
	// is used.
	Rand *rand.Rand
	// Strict fails the call when any focus label is unknown or has no rows.
	Strict bool
}

// Result is the balanced table with bookkeeping about the buckets.
type Result struct {
	Table *table.Table
	// TargetCount is the size of the smallest non-empty bucket.
	TargetCount int
	// EmptyLabels are display names of focus labels without rows.
	EmptyLabels []string
	// UnknownLabels are focus names missing from the label map.
	UnknownLabels []string
	// FinalCounts maps display names to the number of admitted rows
	// carrying that label.
	FinalCounts map[string]int
}

type bucket struct {
	code string
	rows []int
}

// Rebalance groups rows into buckets by the focus codes they carry, finds
// the size of the smallest non-empty bucket, and admits from every shuffled
// bucket up to that many rows not admitted by an earlier bucket.
//
// Empty focus means every code of the label map. Buckets are visited in
// the order their code is first met while scanning the rows. A row already
// admitted by an earlier bucket is not counted again, so heavily
// overlapping buckets may end up below TargetCount.
func Rebalance(
	t *table.Table,
	lm *labelmap.LabelMap,
	focus []string,
	opts Options,
) (*Result, error) {
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(DefaultSeed))
	}

	codes := lm.Codes()
	if len(focus) > 0 {
		codes = lm.Resolve(focus)
	}
	if len(codes) == 0 {
		return nil, fmt.Errorf("%w: none of focus labels %s is known",
			ErrNoBuckets, strings.Join(focus, ", "))
	}
	inFocus := make(map[string]struct{}, len(codes))
	for _, c := range codes {
		inFocus[c] = struct{}{}
	}

	lc := t.Col(table.ColLabels)
	if lc < 0 {
		return nil, fmt.Errorf("%w: %s", table.ErrNoColumn, table.ColLabels)
	}

	rowLabels := make([][]string, t.Len())
	index := make(map[string]*bucket)
	var buckets []*bucket
	for i, row := range t.Rows {
		labels, err := table.ParseLabels(row[lc])
		if err != nil {
			slog.Warn("Skipping row with malformed labels",
				"row", i, "labels", row[lc])
			continue
		}
		rowLabels[i] = unique(labels)
		for _, l := range rowLabels[i] {
			if _, ok := inFocus[l]; !ok {
				continue
			}
			b, ok := index[l]
			if !ok {
				b = &bucket{code: l}
				index[l] = b
				buckets = append(buckets, b)
			}
			b.rows = append(b.rows, i)
		}
	}

	res := &Result{FinalCounts: make(map[string]int)}
	for _, name := range focus {
		if _, ok := lm.ToCode(name); !ok {
			res.UnknownLabels = append(res.UnknownLabels, name)
		}
	}
	for _, c := range codes {
		if _, ok := index[c]; !ok {
			res.EmptyLabels = append(res.EmptyLabels, lm.ToName(c))
		}
	}
	if len(buckets) == 0 {
		return nil, ErrNoBuckets
	}
	if opts.Strict && len(res.UnknownLabels) > 0 {
		return nil, fmt.Errorf("%w: unknown %s",
			ErrEmptyBucket, strings.Join(res.UnknownLabels, ", "))
	}
	if opts.Strict && len(res.EmptyLabels) > 0 {
		return nil, fmt.Errorf("%w: %s",
			ErrEmptyBucket, strings.Join(res.EmptyLabels, ", "))
	}
	if len(res.UnknownLabels) > 0 {
		slog.Warn("Unknown focus labels",
			"count", len(res.UnknownLabels), "labels", res.UnknownLabels)
	}
	if len(res.EmptyLabels) > 0 {
		slog.Warn("Focus labels without rows",
			"count", len(res.EmptyLabels), "labels", res.EmptyLabels)
	}

	res.TargetCount = len(buckets[0].rows)
	for _, b := range buckets[1:] {
		res.TargetCount = min(res.TargetCount, len(b.rows))
	}

	admitted := make(map[int]struct{})
	var order []int
	for _, b := range buckets {
		rows := append([]int(nil), b.rows...)
		rng.Shuffle(len(rows), func(i, j int) {
			rows[i], rows[j] = rows[j], rows[i]
		})
		var count int
		for _, i := range rows {
			if count >= res.TargetCount {
				break
			}
			if _, ok := admitted[i]; ok {
				continue
			}
			admitted[i] = struct{}{}
			order = append(order, i)
			count++
		}
		slog.Debug("Bucket balanced",
			"label", lm.ToName(b.code), "size", len(b.rows), "admitted", count)
	}

	res.Table = t.Empty()
	for _, i := range order {
		res.Table.Rows = append(res.Table.Rows, t.Rows[i].Clone())
		for _, l := range rowLabels[i] {
			if _, ok := inFocus[l]; ok {
				res.FinalCounts[lm.ToName(l)]++
			}
		}
	}
	return res, nil
}

func unique(ss []string) []string {
	seen := make(map[string]struct{}, len(ss))
	res := ss[:0]
	for _, s := range ss {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		res = append(res, s)
	}
	return res
}
