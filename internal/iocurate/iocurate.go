// Package iocurate runs the curation pipeline over a directory of AudioSet
// segment files: positives and negatives are selected from every segment,
// merged, cleaned by their blacklists, negatives are rebalanced, and both
// groups are saved with their statistics.
package iocurate

import (
	"context"
	"log/slog"
	"math/rand"
	"path/filepath"
	"slices"

	"github.com/evsiren/evset/internal/iofs"
	"github.com/evsiren/evset/internal/iostats"
	"github.com/evsiren/evset/internal/iotable"
	"github.com/evsiren/evset/pkg/config"
	"github.com/evsiren/evset/pkg/filter"
	"github.com/evsiren/evset/pkg/labelmap"
	"github.com/evsiren/evset/pkg/rebalance"
	"github.com/evsiren/evset/pkg/recipe"
	"github.com/evsiren/evset/pkg/stats"
	"github.com/evsiren/evset/pkg/table"
)

// SegmentCount is the number of rows a segment file gave to each group.
type SegmentCount struct {
	Segment   string
	Positives int
	Negatives int
}

// Group is the outcome for one recipe group.
type Group struct {
	Name string
	// Path of the saved table.
	Path string
	// StatsPath is the JSON statistics file of the table.
	StatsPath string
	// Merged counts rows after merging, before the blacklist.
	Merged int
	// Blacklisted counts rows left after the blacklist.
	Blacklisted int
	// Final counts saved rows.
	Final int
	Stats stats.Stats
}

// Result summarizes a curation run.
type Result struct {
	Segments  []SegmentCount
	Positives Group
	Negatives Group
	// Rebalance describes how negatives were balanced.
	Rebalance *rebalance.Result
}

// Curator runs a recipe against segment files.
type Curator struct {
	cfg    *config.Config
	labels *labelmap.LabelMap
	recipe *recipe.Recipe
}

// New creates a Curator.
func New(
	cfg *config.Config,
	lm *labelmap.LabelMap,
	rcp *recipe.Recipe,
) *Curator {
	return &Curator{cfg: cfg, labels: lm, recipe: rcp}
}

// SegmentFiles lists files of dir that end with the recipe suffix,
// sorted by name.
func (c *Curator) SegmentFiles(dir string) ([]string, error) {
	res, err := filepath.Glob(filepath.Join(dir, "*"+c.recipe.SegmentSuffix))
	if err != nil || len(res) == 0 {
		return nil, SegmentsNotFoundError(dir, c.recipe.SegmentSuffix)
	}
	slices.Sort(res)
	return res, nil
}

// Run curates segment files found in dir and writes <name>.csv and
// <name>_stats.json of both groups to the output directory.
func (c *Curator) Run(ctx context.Context, dir string) (*Result, error) {
	files, err := c.SegmentFiles(dir)
	if err != nil {
		return nil, err
	}
	slog.Info("Curating segments", "dir", dir, "files", len(files))

	tables, err := iotable.LoadAll(ctx, files, c.cfg.JobsNumber)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Segments:  make([]SegmentCount, len(files)),
		Positives: Group{Name: c.recipe.Positives.Name},
		Negatives: Group{Name: c.recipe.Negatives.Name},
	}
	pos := make([]*table.Table, len(tables))
	neg := make([]*table.Table, len(tables))
	for i, tbl := range tables {
		pos[i] = c.selectGroup(tbl, c.recipe.Positives)
		neg[i] = c.selectGroup(tbl, c.recipe.Negatives)
		res.Segments[i] = SegmentCount{
			Segment:   c.recipe.SegmentName(filepath.Base(files[i])),
			Positives: pos[i].Len(),
			Negatives: neg[i].Len(),
		}
		slog.Info("Segment selected", "segment", res.Segments[i].Segment,
			"positives", pos[i].Len(), "negatives", neg[i].Len())
	}

	posTbl := c.merge(&res.Positives, pos, c.recipe.Positives.Blacklist)
	negTbl := c.merge(&res.Negatives, neg, c.recipe.NegativeBlacklist())

	rng := rand.New(rand.NewSource(c.cfg.Rebalance.Seed))
	res.Rebalance, err = rebalance.Rebalance(negTbl, c.labels,
		c.recipe.Negatives.Labels,
		rebalance.Options{Rand: rng, Strict: c.cfg.Rebalance.Strict})
	if err != nil {
		return nil, RebalanceError(c.recipe.Negatives.Name, err)
	}
	if len(res.Rebalance.EmptyLabels) > 0 {
		slog.Warn("Focus labels without rows",
			"labels", res.Rebalance.EmptyLabels)
	}
	negTbl = res.Rebalance.Table

	if err = iofs.EnsureDir(c.cfg.OutputDir); err != nil {
		return nil, err
	}
	if err = c.save(&res.Positives, posTbl); err != nil {
		return nil, err
	}
	if err = c.save(&res.Negatives, negTbl); err != nil {
		return nil, err
	}
	return res, nil
}

func (c *Curator) selectGroup(tbl *table.Table, g recipe.Group) *table.Table {
	res, ok := filter.SelectByAnyLabel(c.labels, tbl, g.Labels)
	if !ok {
		slog.Warn("No known labels in group", "group", g.Name)
	}
	return res
}

func (c *Curator) merge(
	g *Group,
	parts []*table.Table,
	blacklist []string,
) *table.Table {
	res := table.Merge(parts...)
	g.Merged = res.Len()
	if len(blacklist) > 0 {
		var ok bool
		if res, ok = filter.ExcludeByAnyLabel(c.labels, res, blacklist); !ok {
			slog.Warn("Blacklist has no known labels", "group", g.Name)
		}
	}
	g.Blacklisted = res.Len()
	slog.Info("Group merged", "group", g.Name,
		"merged", g.Merged, "blacklisted", g.Blacklisted)
	return res
}

func (c *Curator) save(g *Group, tbl *table.Table) error {
	g.Path = filepath.Join(c.cfg.OutputDir, g.Name+".csv")
	if err := iotable.Save(g.Path, tbl); err != nil {
		return err
	}
	g.Final = tbl.Len()
	g.Stats = stats.Compute(tbl, c.labels)
	var err error
	g.StatsPath, err = iostats.Write(g.Path, g.Stats)
	return err
}
