// Package cfp runs the proposal analytics: load an export, derive the report
// columns, then print and write every report.
package cfp

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/KaramelBytes/cfpstats/internal/proposals"
	"github.com/KaramelBytes/cfpstats/internal/report"
	"go.uber.org/zap"
)

// Options configures one run.
type Options struct {
	Input string
	Load  proposals.LoadOptions

	OutDir   string
	Formats  []report.Format
	Chart    report.ChartOptions
	BarWidth int

	// CompanyColumn names the optional employer column.
	CompanyColumn string
	Employer      proposals.Employer

	Workbook bool
	Manifest bool
	// Quiet suppresses the console bar charts and the summary table.
	Quiet bool

	Out  io.Writer
	Warn io.Writer
	Log  *zap.Logger
}

// Summary describes a finished run.
type Summary struct {
	Proposals int
	Speakers  int
	Reports   []report.Report
	Outputs   []report.Output
}

// Run loads opt.Input and emits every report. It stops at the first failure;
// files already written are left in place.
func Run(opt Options) (*Summary, error) {
	log := opt.Log
	if log == nil {
		log = zap.NewNop()
	}
	out := opt.Out
	if out == nil {
		out = io.Discard
	}
	warn := opt.Warn
	if warn == nil {
		warn = io.Discard
	}
	companyColumn := opt.CompanyColumn
	if companyColumn == "" {
		companyColumn = proposals.DefaultCompanyColumn
	}
	emp := opt.Employer
	if emp.Pattern == nil {
		emp = proposals.DefaultEmployer()
	}

	start := time.Now()
	t, err := proposals.Load(opt.Input, opt.Load)
	if err != nil {
		return nil, err
	}
	log.Debug("loaded export",
		zap.String("input", opt.Input),
		zap.Int("rows", t.Len()),
		zap.Strings("columns", t.Columns()),
		zap.Duration("elapsed", time.Since(start)))

	if err := t.Normalize(); err != nil {
		return nil, err
	}
	if !t.Has(companyColumn) {
		fmt.Fprintf(warn, "⚠ Warning: no %q column; skipping employee and company reports\n", companyColumn)
	}
	if err := t.Derive(emp, companyColumn); err != nil {
		return nil, err
	}

	sum := &Summary{Proposals: t.Len()}
	fmt.Fprintf(out, "Proposals submitted: %d\n", sum.Proposals)
	if n, ok := t.DistinctSpeakers(); ok {
		sum.Speakers = n
		fmt.Fprintf(out, "Distinct speakers: %d\n", n)
	}
	fmt.Fprintln(out)

	reports, err := Reports(t)
	if err != nil {
		return nil, err
	}
	sum.Reports = reports

	em := &report.Emitter{
		Input:   opt.Input,
		OutDir:  opt.OutDir,
		Formats: opt.Formats,
		Chart:   opt.Chart,
		Bars:    report.Bars{Out: out, Width: opt.BarWidth},
		Warn:    warn,
		Log:     log,
		Quiet:   opt.Quiet,
	}
	for _, r := range reports {
		if err := em.Emit(r); err != nil {
			return nil, err
		}
	}

	if opt.Workbook {
		if err := writeWorkbook(em, reports); err != nil {
			return nil, err
		}
	}
	sum.Outputs = em.Outputs()

	if !opt.Quiet {
		report.PrintSummary(out, reports, sum.Outputs)
	}
	fmt.Fprintf(out, "✓ Wrote %d file(s) for %s\n", len(sum.Outputs), filepath.Base(opt.Input))

	if opt.Manifest {
		m := report.NewManifest(opt.Input, sum.Proposals, sum.Outputs)
		m.Speakers = sum.Speakers
		path := em.Path("-manifest", report.FormatYAML)
		if err := m.Write(path); err != nil {
			return nil, err
		}
		fmt.Fprintf(out, "✓ Manifest: %s (run %s)\n", path, m.RunID)
	}
	return sum, nil
}

func writeWorkbook(em *report.Emitter, reports []report.Report) error {
	wb := report.NewWorkbook()
	defer wb.Close()
	for _, r := range reports {
		if err := wb.Add(r); err != nil {
			return fmt.Errorf("workbook sheet %s: %w", r.Name(), err)
		}
	}
	path := em.Path("-report", report.FormatXLSX)
	if err := wb.Save(path); err != nil {
		return err
	}
	em.Record(report.Output{Report: "report", Format: report.FormatXLSX, Path: path})
	return nil
}
