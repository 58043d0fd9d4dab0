// Package labelmap translates between opaque AudioSet label codes
// (for example "/m/03j1ly") and their display names.
package labelmap

// LabelMap is a bidirectional code/name lookup. It is immutable after
// creation and safe for concurrent reads.
type LabelMap struct {
	codeToName map[string]string
	nameToCode map[string]string
	codes      []string
}

// Entry is one line of a label table.
type Entry struct {
	Code string
	Name string
}

// New creates a LabelMap from entries. Entries with an empty code are
// skipped. When a code or a name repeats, the last entry wins, the code
// keeps its first position in Codes().
func New(entries []Entry) *LabelMap {
	res := &LabelMap{
		codeToName: make(map[string]string, len(entries)),
		nameToCode: make(map[string]string, len(entries)),
		codes:      make([]string, 0, len(entries)),
	}
	for _, e := range entries {
		if e.Code == "" {
			continue
		}
		if _, ok := res.codeToName[e.Code]; !ok {
			res.codes = append(res.codes, e.Code)
		}
		res.codeToName[e.Code] = e.Name
		res.nameToCode[e.Name] = e.Code
	}
	return res
}

// ToCode returns the code of a display name.
func (lm *LabelMap) ToCode(name string) (string, bool) {
	code, ok := lm.nameToCode[name]
	return code, ok
}

// ToName returns the display name of a code, or the code itself when it is
// unknown.
func (lm *LabelMap) ToName(code string) string {
	if name, ok := lm.codeToName[code]; ok {
		return name
	}
	return code
}

// Names converts codes to display names with the same fallback as ToName.
func (lm *LabelMap) Names(codes []string) []string {
	res := make([]string, len(codes))
	for i := range codes {
		res[i] = lm.ToName(codes[i])
	}
	return res
}

// Resolve returns codes of the known names in input order, without
// duplicates. Unknown names are ignored.
func (lm *LabelMap) Resolve(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	var res []string
	for _, name := range names {
		code, ok := lm.nameToCode[name]
		if !ok {
			continue
		}
		if _, ok = seen[code]; ok {
			continue
		}
		seen[code] = struct{}{}
		res = append(res, code)
	}
	return res
}

// Codes returns all codes in load order.
func (lm *LabelMap) Codes() []string {
	res := make([]string, len(lm.codes))
	copy(res, lm.codes)
	return res
}

// Len is the number of distinct codes.
func (lm *LabelMap) Len() int {
	return len(lm.codes)
}
