package report

import (
	"fmt"

	"github.com/KaramelBytes/cfpstats/internal/utils"
	"github.com/xuri/excelize/v2"
)

// maxSheetName is the Excel limit on sheet name length.
const maxSheetName = 31

// Workbook collects report tables into one spreadsheet, one sheet per report.
type Workbook struct {
	f      *excelize.File
	sheets int
}

func NewWorkbook() *Workbook {
	return &Workbook{f: excelize.NewFile()}
}

// Add writes r as a new sheet named after the report. Counts and running
// totals are stored as numbers, percents as numbers rounded to two places.
func (wb *Workbook) Add(r Report) error {
	sheet := r.Name()
	if len(sheet) > maxSheetName {
		sheet = sheet[:maxSheetName]
	}
	if wb.sheets == 0 {
		if err := wb.f.SetSheetName(wb.f.GetSheetName(0), sheet); err != nil {
			return fmt.Errorf("rename sheet: %w", err)
		}
	} else if _, err := wb.f.NewSheet(sheet); err != nil {
		return fmt.Errorf("new sheet %s: %w", sheet, err)
	}
	wb.sheets++

	header := r.Header()
	hdr := make([]interface{}, len(header))
	for i, h := range header {
		hdr[i] = h
	}
	if err := wb.f.SetSheetRow(sheet, "A1", &hdr); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, b := range r.Result.Buckets {
		row := []interface{}{b.Key, b.Count}
		if r.Result.Percent != nil {
			row = append(row, r.Result.Percent[i].Round(2).InexactFloat64())
		}
		if r.Result.Running != nil {
			row = append(row, r.Result.Running[i].IntPart())
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := wb.f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	return wb.f.SetColWidth(sheet, "A", "A", 28)
}

// Save writes the workbook to path.
func (wb *Workbook) Save(path string) error {
	buf, err := wb.f.WriteToBuffer()
	if err != nil {
		return fmt.Errorf("encode workbook: %w", err)
	}
	if err := utils.SafeWriteFile(path, buf.Bytes()); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	return nil
}

func (wb *Workbook) Close() error { return wb.f.Close() }
