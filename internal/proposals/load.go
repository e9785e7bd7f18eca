package proposals

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// LoadOptions controls how an export file is read.
type LoadOptions struct {
	// Delimiter for CSV. If 0, chosen from the file extension (',' or '\t').
	Delimiter rune
	// XLSX sheet selection: SheetName wins; otherwise 1-based SheetIndex (default 1).
	SheetName  string
	SheetIndex int
}

// Load reads a CSV, TSV or XLSX export into a Table.
func Load(path string, opt LoadOptions) (*Table, error) {
	var (
		records [][]string
		err     error
	)
	if strings.HasSuffix(strings.ToLower(path), ".xlsx") {
		records, err = readXLSX(path, opt)
	} else {
		records, err = readCSV(path, opt)
	}
	if err != nil {
		return nil, err
	}
	if len(records) > 0 {
		records[0] = dedupeHeader(records[0])
	}
	return FromRecords(filepath.Base(path), records)
}

func readCSV(path string, opt LoadOptions) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, inputError("open csv", err)
	}
	defer f.Close()
	delim := opt.Delimiter
	if delim == 0 {
		delim = sniffDelimiter(path)
	}
	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	r.LazyQuotes = true
	r.Comma = delim

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, inputError("read header", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	records := [][]string{header}
	for {
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, inputError(fmt.Sprintf("read row %d", len(records)), err)
		}
		if isBlankRecord(rec) {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

func readXLSX(path string, opt LoadOptions) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, inputError("open xlsx", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	sheet := ""
	if opt.SheetName != "" {
		for _, s := range sheets {
			if strings.EqualFold(s, opt.SheetName) {
				sheet = s
				break
			}
		}
		if sheet == "" {
			return nil, inputError("open xlsx", fmt.Errorf("sheet '%s' not found in workbook '%s'; available sheets: %s",
				opt.SheetName, filepath.Base(path), strings.Join(sheets, ", ")))
		}
	} else {
		idx := opt.SheetIndex
		if idx <= 0 {
			idx = 1
		}
		if idx > len(sheets) {
			return nil, inputError("open xlsx", fmt.Errorf("sheet index %d out of range; workbook '%s' has %d sheet(s)",
				idx, filepath.Base(path), len(sheets)))
		}
		sheet = sheets[idx-1]
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, inputError("read xlsx", err)
	}
	records := make([][]string, 0, len(rows))
	for i, row := range rows {
		if i > 0 && isBlankRecord(row) {
			continue
		}
		records = append(records, row)
	}
	return records, nil
}

func sniffDelimiter(path string) rune {
	if strings.HasSuffix(strings.ToLower(path), ".tsv") {
		return '\t'
	}
	return ','
}

func isBlankRecord(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// dedupeHeader trims names, names blank columns by position, and suffixes
// repeated names _2, _3, ... leaving the first occurrence unchanged.
func dedupeHeader(header []string) []string {
	out := make([]string, len(header))
	seen := make(map[string]int, len(header))
	taken := make(map[string]bool, len(header))
	for _, h := range header {
		taken[strings.TrimSpace(h)] = true
	}
	for i, h := range header {
		name := strings.TrimSpace(h)
		if name == "" {
			name = fmt.Sprintf("Column %d", i+1)
		}
		seen[name]++
		if n := seen[name]; n > 1 {
			cand := fmt.Sprintf("%s_%d", name, n)
			for taken[cand] {
				n++
				cand = fmt.Sprintf("%s_%d", name, n)
			}
			seen[name] = n
			name = cand
		}
		taken[name] = true
		out[i] = name
	}
	return out
}
