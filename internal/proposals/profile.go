package proposals

import (
	"sort"
	"strings"
)

// ColumnSummary captures fill and cardinality for one column.
type ColumnSummary struct {
	Name     string
	NonNull  int
	Missing  int
	Unique   int
	Top      string
	TopCount int
}

// Profile summarizes every column in table order. Values are compared after
// trimming; blank cells count as missing. Ties for the top value go to the
// lexicographically smallest.
func (t *Table) Profile() []ColumnSummary {
	cols := t.Columns()
	out := make([]ColumnSummary, 0, len(cols))
	for _, name := range cols {
		values, err := t.Column(name)
		if err != nil {
			continue
		}
		s := ColumnSummary{Name: name}
		counts := map[string]int{}
		for _, v := range values {
			v = strings.TrimSpace(v)
			if v == "" {
				s.Missing++
				continue
			}
			s.NonNull++
			counts[v]++
		}
		s.Unique = len(counts)
		keys := make([]string, 0, len(counts))
		for k := range counts {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if counts[k] > s.TopCount {
				s.Top, s.TopCount = k, counts[k]
			}
		}
		out = append(out, s)
	}
	return out
}
