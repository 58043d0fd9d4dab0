// Package recipe describes the label groups of a curation run.
package recipe

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultYAML is the emergency-vehicle recipe.
//
//go:embed recipe.yaml
var DefaultYAML string

// ErrInvalid means a recipe cannot drive a curation run.
var ErrInvalid = errors.New("invalid recipe")

// Group is a named list of display names. Rows of the group are written
// to <Name>.csv.
type Group struct {
	Name   string   `yaml:"name"`
	Labels []string `yaml:"labels"`
	// Blacklist removes rows carrying any of these labels.
	// For negatives an empty blacklist means the positive labels.
	Blacklist []string `yaml:"blacklist"`
}

// Recipe holds the positive and negative groups.
type Recipe struct {
	SegmentSuffix string `yaml:"segment_suffix"`
	Positives     Group  `yaml:"positives"`
	Negatives     Group  `yaml:"negatives"`
}

// Parse reads and validates a YAML recipe.
func Parse(data []byte) (*Recipe, error) {
	var res Recipe
	if err := yaml.Unmarshal(data, &res); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if err := res.Validate(); err != nil {
		return nil, err
	}
	return &res, nil
}

// Default returns the embedded recipe.
func Default() *Recipe {
	res, err := Parse([]byte(DefaultYAML))
	if err != nil {
		panic(err)
	}
	return res
}

// Validate checks that both groups have names and labels.
func (r *Recipe) Validate() error {
	if strings.TrimSpace(r.SegmentSuffix) == "" {
		return fmt.Errorf("%w: segment_suffix is empty", ErrInvalid)
	}
	for _, g := range []struct {
		kind  string
		group Group
	}{{"positives", r.Positives}, {"negatives", r.Negatives}} {
		if strings.TrimSpace(g.group.Name) == "" {
			return fmt.Errorf("%w: %s name is empty", ErrInvalid, g.kind)
		}
		if len(g.group.Labels) == 0 {
			return fmt.Errorf("%w: %s have no labels", ErrInvalid, g.kind)
		}
	}
	if r.Positives.Name == r.Negatives.Name {
		return fmt.Errorf("%w: groups share name %q", ErrInvalid, r.Positives.Name)
	}
	return nil
}

// NegativeBlacklist returns labels removed from negatives.
func (r *Recipe) NegativeBlacklist() []string {
	if len(r.Negatives.Blacklist) > 0 {
		return r.Negatives.Blacklist
	}
	return r.Positives.Labels
}

// SegmentName derives a short name from a segment file name:
// "balanced_train_segments.csv" gives "balanced_train".
func (r *Recipe) SegmentName(file string) string {
	name := strings.TrimSuffix(file, r.SegmentSuffix)
	name = strings.TrimRight(name, "_-.")
	if name == "" {
		return file
	}
	return name
}
