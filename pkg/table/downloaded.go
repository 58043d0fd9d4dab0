package table

import "strings"

// Values of the downloaded flag as written to CSV.
const (
	FlagTrue  = "True"
	FlagFalse = "False"
)

// IsTrue reads a downloaded flag: "true" and "1" in any case are true.
func IsTrue(value string) bool {
	v := strings.ToLower(strings.TrimSpace(value))
	return v == "true" || v == "1"
}

// Flag formats a downloaded flag.
func Flag(b bool) string {
	if b {
		return FlagTrue
	}
	return FlagFalse
}

// HasDownloaded reports whether the table tracks download state.
func (t *Table) HasDownloaded() bool {
	return t.Col(ColDownloaded) >= 0
}

// EnsureDownloaded adds a downloaded column set to False for every row.
// It returns true when the column had to be added.
func (t *Table) EnsureDownloaded() bool {
	if t.HasDownloaded() {
		return false
	}
	t.Header = append(t.Header, ColDownloaded)
	for i := range t.Rows {
		t.Rows[i] = append(t.Rows[i], FlagFalse)
	}
	return true
}

// Downloaded returns the flag of row i.
func (t *Table) Downloaded(i int) bool {
	idx := t.Col(ColDownloaded)
	if idx < 0 {
		return false
	}
	return IsTrue(t.Rows[i][idx])
}

// SetDownloaded sets the flag of row i. The table must have a downloaded
// column.
func (t *Table) SetDownloaded(i int, b bool) {
	idx := t.Col(ColDownloaded)
	if idx < 0 {
		return
	}
	t.Rows[i][idx] = Flag(b)
}
