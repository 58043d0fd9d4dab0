package table

// Merge concatenates tables, keeping the header of the first one and the
// first occurrence of every distinct row. Row order follows the order of
// first occurrence across the inputs.
func Merge(tables ...*Table) *Table {
	res := &Table{}
	seen := make(map[string]struct{})
	for _, t := range tables {
		if t == nil {
			continue
		}
		if res.Header == nil {
			res.Header = append([]string{}, t.Header...)
		}
		for _, row := range t.Rows {
			key := row.Key()
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			res.Rows = append(res.Rows, row.Clone())
		}
	}
	return res
}
