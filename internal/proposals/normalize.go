package proposals

// Normalize applies Renames and checks that every Required column exists. The
// error for missing columns names all of them at once, renamed sources and
// report columns alike.
func (t *Table) Normalize() error {
	var missing []string
	for _, r := range Renames {
		if !t.Has(r.From) {
			missing = append(missing, r.From)
		}
	}
	renamed := make(map[string]bool, len(Renames))
	for _, r := range Renames {
		renamed[r.To] = true
	}
	for _, name := range Required {
		if !renamed[name] && !t.Has(name) {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return &MissingColumnsError{Columns: missing}
	}
	if err := t.Rename(Renames); err != nil {
		return err
	}
	return t.Require(Required...)
}
