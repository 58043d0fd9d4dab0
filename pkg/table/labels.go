package table

import (
	"fmt"
	"strings"
)

const labelCutset = " \t\r\n\"'"

// ParseLabels reads a label list literal such as "['/m/a', '/m/b']".
// Tokens are trimmed of whitespace and stray quote characters, which
// upstream CSV quoting tends to leak into values.
func ParseLabels(field string) ([]string, error) {
	s := strings.TrimSpace(field)
	if !strings.HasPrefix(s, "[") || !strings.HasSuffix(s, "]") {
		return nil, fmt.Errorf("%w: %q", ErrMalformedLabels, field)
	}
	s = strings.TrimSpace(s[1 : len(s)-1])
	if s == "" {
		return []string{}, nil
	}
	parts := strings.Split(s, ",")
	res := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.Trim(p, labelCutset)
		if p == "" {
			return nil, fmt.Errorf("%w: empty token in %q",
				ErrMalformedLabels, field)
		}
		res = append(res, p)
	}
	return res, nil
}

// SplitLabels reads a flat comma-separated label string, as found in raw
// AudioSet segment files. Empty tokens are dropped.
func SplitLabels(field string) []string {
	parts := strings.Split(field, ",")
	res := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.Trim(p, labelCutset)
		if p != "" {
			res = append(res, p)
		}
	}
	return res
}

// FormatLabels writes labels as a list literal: ['/m/a', '/m/b'].
func FormatLabels(labels []string) string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, l := range labels {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteByte('\'')
		sb.WriteString(l)
		sb.WriteByte('\'')
	}
	sb.WriteByte(']')
	return sb.String()
}

// IsLabelList reports whether a field looks like a list literal rather
// than a flat label string.
func IsLabelList(field string) bool {
	return strings.HasPrefix(strings.TrimSpace(field), "[")
}

// Labels parses the label field of a row.
func (t *Table) Labels(row Row) ([]string, error) {
	idx := t.Col(ColLabels)
	if idx < 0 {
		return nil, ErrNoColumn
	}
	return ParseLabels(row[idx])
}
