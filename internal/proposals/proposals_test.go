package proposals

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/xuri/excelize/v2"
)

var exportHeader = []string{
	"Entry Id", "Date Created", "Speaker Name", "Speaker Email", "Speaker Pronouns", "Company",
	"Talk Title", "Level",
	"HashiCorp Products", "HashiCorp Products", "HashiCorp Products", "HashiCorp Products",
	"HashiCorp Products", "HashiCorp Products", "HashiCorp Products",
	"Are you a member of any groups underrepresented in the tech industry?",
	"Which group(s)?",
	"Travel assistance needed?",
}

var exportRows = [][]string{
	{"1", "2020-01-01 09:15:00", "Ana", "ana@example.com", "She/Her", "HashiCorp", "Vault at scale", "Advanced",
		"", "", "", "", "", "Vault", "", "Yes", "Women", "No"},
	{"2", "2020-01-01 17:40:12", "Bo", "bo@example.com", "he/him", "Acme", "Terraform 101", "Beginner",
		"", "", "", "Terraform", "", "", "", "No", "", "Yes"},
	{"3", "2020-01-02 08:00:00", "Cy", "BO@example.com", "They/Them", "hashicorp inc.", "Service mesh", "Intermediate",
		"Consul", "", "", "Terraform", "", "", "", "Yes", "LGBTQ+", "No"},
}

func writeExport(t *testing.T, dir string, header []string, rows [][]string) string {
	t.Helper()
	lines := []string{csvLine(header)}
	for _, r := range rows {
		lines = append(lines, csvLine(r))
	}
	p := filepath.Join(dir, "proposals.csv")
	if err := os.WriteFile(p, []byte(strings.Join(lines, "\n")+"\n"), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	return p
}

func csvLine(fields []string) string {
	out := make([]string, len(fields))
	for i, f := range fields {
		if strings.ContainsAny(f, ",\"?") {
			f = `"` + strings.ReplaceAll(f, `"`, `""`) + `"`
		}
		out[i] = f
	}
	return strings.Join(out, ",")
}

func TestDedupeHeader(t *testing.T) {
	got := dedupeHeader([]string{"A", " A ", "B", "", "A", "A_2"})
	want := []string{"A", "A_3", "B", "Column 4", "A_4", "A_2"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("dedupeHeader mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadNormalizeDerive(t *testing.T) {
	p := writeExport(t, t.TempDir(), exportHeader, exportRows)
	tbl, err := Load(p, LoadOptions{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if tbl.Name != "proposals.csv" {
		t.Fatalf("name = %q", tbl.Name)
	}
	if tbl.Len() != 3 {
		t.Fatalf("rows = %d, want 3", tbl.Len())
	}
	if err := tbl.Normalize(); err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	for _, prod := range Products {
		if !tbl.Has(prod) {
			t.Fatalf("missing product column %q after rename; have %v", prod, tbl.Columns())
		}
	}
	if tbl.Has("HashiCorp Products") {
		t.Fatalf("source column still present after rename")
	}
	if err := tbl.Derive(DefaultEmployer(), DefaultCompanyColumn); err != nil {
		t.Fatalf("Derive: %v", err)
	}

	days, _ := tbl.Column(ColDayCreated)
	if diff := cmp.Diff([]string{"2020-01-01", "2020-01-01", "2020-01-02"}, days); diff != "" {
		t.Fatalf("days (-want +got):\n%s", diff)
	}
	pronouns, _ := tbl.Column(ColPronouns)
	if diff := cmp.Diff([]string{"she/her", "he/him", "they/them"}, pronouns); diff != "" {
		t.Fatalf("pronouns (-want +got):\n%s", diff)
	}
	emp, _ := tbl.Column(ColEmployee)
	if diff := cmp.Diff([]string{"true", "false", "true"}, emp); diff != "" {
		t.Fatalf("employee (-want +got):\n%s", diff)
	}
	comp, _ := tbl.Column(ColCompanyNormalized)
	if diff := cmp.Diff([]string{"HashiCorp", "Acme", "HashiCorp"}, comp); diff != "" {
		t.Fatalf("company (-want +got):\n%s", diff)
	}
	terraform, _ := tbl.Column("Terraform")
	if terraform[1] != "Terraform" || terraform[0] != "" {
		t.Fatalf("terraform column = %#v", terraform)
	}
	if n, ok := tbl.DistinctSpeakers(); !ok || n != 2 {
		t.Fatalf("distinct speakers = %d (%v), want 2", n, ok)
	}
}

func TestNormalizeReportsAllMissingColumns(t *testing.T) {
	header := []string{"Date Created", "Speaker Pronouns", "HashiCorp Products"}
	p := writeExport(t, t.TempDir(), header, [][]string{{"2020-01-01 10:00:00", "she/her", ""}})
	tbl, err := Load(p, LoadOptions{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	err = tbl.Normalize()
	if !errors.Is(err, ErrMissingColumn) || !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected missing column error, got %v", err)
	}
	var mc *MissingColumnsError
	if !errors.As(err, &mc) {
		t.Fatalf("expected *MissingColumnsError, got %T", err)
	}
	if !strings.Contains(err.Error(), `"HashiCorp Products_7"`) || !strings.Contains(err.Error(), `"Level"`) {
		t.Fatalf("error should name every missing column: %v", err)
	}
	if len(mc.Columns) != 10 {
		t.Fatalf("missing = %v", mc.Columns)
	}
	if !tbl.Has("HashiCorp Products") {
		t.Fatalf("table must be untouched when normalization fails")
	}
}

func TestDeriveMalformedDate(t *testing.T) {
	rows := [][]string{exportRows[0], append([]string{}, exportRows[1]...)}
	rows[1][1] = "yesterday"
	p := writeExport(t, t.TempDir(), exportHeader, rows)
	tbl, err := Load(p, LoadOptions{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := tbl.Normalize(); err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	err = tbl.Derive(DefaultEmployer(), DefaultCompanyColumn)
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *ParseError, got %v", err)
	}
	if pe.Row != 2 || pe.Column != ColDateCreated || pe.Value != "yesterday" {
		t.Fatalf("parse error = %+v", pe)
	}
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("parse error should be an input error")
	}
}

func TestDeriveWithoutCompanyColumn(t *testing.T) {
	header := append([]string{}, exportHeader...)
	header[5] = "Employer"
	p := writeExport(t, t.TempDir(), header, exportRows)
	tbl, err := Load(p, LoadOptions{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := tbl.Normalize(); err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if err := tbl.Derive(DefaultEmployer(), DefaultCompanyColumn); err != nil {
		t.Fatalf("Derive: %v", err)
	}
	if tbl.Has(ColEmployee) || tbl.Has(ColCompanyNormalized) {
		t.Fatalf("company columns derived without a company column")
	}
	if !tbl.Has(ColDayCreated) {
		t.Fatalf("day column missing")
	}
}

func TestLoadHeaderOnlyAndEmpty(t *testing.T) {
	dir := t.TempDir()
	p := writeExport(t, dir, exportHeader, nil)
	tbl, err := Load(p, LoadOptions{})
	if err != nil {
		t.Fatalf("Load header-only: %v", err)
	}
	if tbl.Len() != 0 {
		t.Fatalf("rows = %d", tbl.Len())
	}
	if err := tbl.Normalize(); err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if err := tbl.Derive(DefaultEmployer(), DefaultCompanyColumn); err != nil {
		t.Fatalf("Derive: %v", err)
	}

	empty := filepath.Join(dir, "empty.csv")
	if err := os.WriteFile(empty, nil, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	tbl, err = Load(empty, LoadOptions{})
	if err != nil {
		t.Fatalf("Load empty: %v", err)
	}
	if len(tbl.Columns()) != 0 {
		t.Fatalf("columns = %v", tbl.Columns())
	}
	if err := tbl.Normalize(); !errors.Is(err, ErrMissingColumn) {
		t.Fatalf("expected missing columns on empty file, got %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.csv"), LoadOptions{})
	if !errors.Is(err, ErrInvalidInput) || !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected wrapped not-exist input error, got %v", err)
	}
}

func TestLoadBOMAndShortRows(t *testing.T) {
	p := filepath.Join(t.TempDir(), "bom.csv")
	body := "\ufeffDate Created,Level\n2020-01-01 10:00:00\n\n2020-01-02 10:00:00,Advanced,extra\n"
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	tbl, err := Load(p, LoadOptions{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff([]string{"Date Created", "Level"}, tbl.Columns()); diff != "" {
		t.Fatalf("columns (-want +got):\n%s", diff)
	}
	lv, _ := tbl.Column("Level")
	if diff := cmp.Diff([]string{"", "Advanced"}, lv); diff != "" {
		t.Fatalf("level (-want +got):\n%s", diff)
	}
	head := tbl.Head(5)
	if len(head) != 2 || head[1][0] != "2020-01-02 10:00:00" {
		t.Fatalf("head = %#v", head)
	}
}

func TestLoadXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "proposals.xlsx")
	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), "Entries"); err != nil {
		t.Fatalf("rename sheet: %v", err)
	}
	all := append([][]string{exportHeader}, exportRows...)
	for i, rec := range all {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		row := make([]interface{}, len(rec))
		for j, v := range rec {
			row[j] = v
		}
		if err := f.SetSheetRow("Entries", cell, &row); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save: %v", err)
	}

	tbl, err := Load(path, LoadOptions{SheetName: "entries"})
	if err != nil {
		t.Fatalf("Load xlsx: %v", err)
	}
	if tbl.Len() != 3 {
		t.Fatalf("rows = %d", tbl.Len())
	}
	if err := tbl.Normalize(); err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if _, err := Load(path, LoadOptions{SheetName: "Missing"}); err == nil || !strings.Contains(err.Error(), "available sheets: Entries") {
		t.Fatalf("expected sheet not found error, got %v", err)
	}
	if _, err := Load(path, LoadOptions{SheetIndex: 3}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected out of range error, got %v", err)
	}
}
