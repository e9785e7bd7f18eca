package proposals

import (
	"fmt"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// Table is the in-memory proposal export. Every column is kept as text; typed
// values are derived into new columns rather than converted in place.
type Table struct {
	Name string
	df   dataframe.DataFrame
	cols map[string]bool
}

// FromRecords builds a table from a header row followed by data rows. Header
// names must already be unique (see dedupeHeader). Short rows are padded with
// blanks and long rows are truncated to the header width.
func FromRecords(name string, records [][]string) (*Table, error) {
	t := &Table{Name: name, cols: map[string]bool{}}
	if len(records) == 0 || len(records[0]) == 0 {
		return t, nil
	}
	header := records[0]
	rows := records[1:]
	cols := make([]series.Series, len(header))
	for j, h := range header {
		vals := make([]string, len(rows))
		for i, rec := range rows {
			if j < len(rec) {
				vals[i] = rec[j]
			}
		}
		cols[j] = series.New(vals, series.String, h)
		t.cols[h] = true
	}
	t.df = dataframe.New(cols...)
	if t.df.Err != nil {
		return nil, inputError("build table", t.df.Err)
	}
	return t, nil
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	if len(t.cols) == 0 {
		return 0
	}
	return t.df.Nrow()
}

// Columns returns the column names in order.
func (t *Table) Columns() []string {
	if len(t.cols) == 0 {
		return nil
	}
	return t.df.Names()
}

// Has reports whether the table has a column named name.
func (t *Table) Has(name string) bool { return t.cols[name] }

// Column returns the values of the named column.
func (t *Table) Column(name string) ([]string, error) {
	if !t.Has(name) {
		return nil, &MissingColumnsError{Columns: []string{name}}
	}
	return t.df.Col(name).Records(), nil
}

// Require fails with a MissingColumnsError naming every absent column.
func (t *Table) Require(names ...string) error {
	var missing []string
	for _, n := range names {
		if !t.Has(n) {
			missing = append(missing, n)
		}
	}
	if len(missing) > 0 {
		return &MissingColumnsError{Columns: missing}
	}
	return nil
}

// Rename applies the mapping. All sources must exist; nothing is renamed when
// any is missing.
func (t *Table) Rename(renames []Rename) error {
	from := make([]string, len(renames))
	for i, r := range renames {
		from[i] = r.From
	}
	if err := t.Require(from...); err != nil {
		return err
	}
	for _, r := range renames {
		if t.Has(r.To) {
			return inputError("rename", fmt.Errorf("column %q already exists", r.To))
		}
		t.df = t.df.Rename(r.To, r.From)
		if t.df.Err != nil {
			return inputError("rename", t.df.Err)
		}
		delete(t.cols, r.From)
		t.cols[r.To] = true
	}
	return nil
}

// Head returns up to n data rows, each aligned with Columns.
func (t *Table) Head(n int) [][]string {
	if n > t.Len() {
		n = t.Len()
	}
	if n <= 0 {
		return nil
	}
	names := t.Columns()
	out := make([][]string, n)
	for i := range out {
		out[i] = make([]string, len(names))
	}
	for j, name := range names {
		vals := t.df.Col(name).Records()
		for i := 0; i < n; i++ {
			out[i][j] = vals[i]
		}
	}
	return out
}

func (t *Table) set(name string, values []string) error {
	if len(t.cols) == 0 {
		return inputError("set column", fmt.Errorf("table has no columns"))
	}
	t.df = t.df.Mutate(series.New(values, series.String, name))
	if t.df.Err != nil {
		return inputError("set column", t.df.Err)
	}
	t.cols[name] = true
	return nil
}
