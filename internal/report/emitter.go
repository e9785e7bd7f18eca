package report

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/KaramelBytes/cfpstats/internal/utils"
	"go.uber.org/zap"
)

// Output is one file written by the emitter.
type Output struct {
	Report string `yaml:"report"`
	Format Format `yaml:"format"`
	Path   string `yaml:"path"`
}

// Emitter writes every output of a report: text bars to Out, then one file per
// format. Files are named <input file name><suffix>.<format>, beside the input
// unless OutDir is set.
type Emitter struct {
	Input   string
	OutDir  string
	Formats []Format
	Chart   ChartOptions
	Bars    Bars
	// Warn receives non-fatal notices; nil discards them.
	Warn  io.Writer
	Log   *zap.Logger
	Quiet bool

	outputs []Output
}

// Path returns the file an output of the given suffix and format is written to.
func (e *Emitter) Path(suffix string, f Format) string {
	base := e.Input
	if e.OutDir != "" {
		base = filepath.Join(e.OutDir, filepath.Base(e.Input))
	}
	return base + suffix + "." + string(f)
}

// Outputs lists the files written so far, in write order.
func (e *Emitter) Outputs() []Output { return e.outputs }

// Emit prints and writes one report. Empty reports still get a CSV but no chart.
func (e *Emitter) Emit(r Report) error {
	log := e.logger()
	if !e.Quiet && e.Bars.Out != nil {
		if err := e.Bars.Print(r); err != nil {
			return fmt.Errorf("print %s: %w", r.Name(), err)
		}
	}
	if e.OutDir != "" {
		if err := utils.EnsureDir(e.OutDir); err != nil {
			return &WriteError{Path: e.OutDir, Err: err}
		}
	}
	for _, f := range e.Formats {
		var buf bytes.Buffer
		start := time.Now()
		switch {
		case f == FormatCSV:
			if err := WriteCSV(&buf, r); err != nil {
				return fmt.Errorf("encode %s csv: %w", r.Name(), err)
			}
		case f.IsImage():
			if len(r.Result.Buckets) == 0 {
				e.warnf("⚠ Warning: %s has no rows; skipping %s chart\n", r.Name(), f)
				continue
			}
			if err := RenderChart(&buf, r, f, e.Chart); err != nil {
				return &RenderError{Report: r.Name(), Format: f, Err: err}
			}
		default:
			return fmt.Errorf("unsupported output format %q", f)
		}
		path := e.Path(r.Suffix, f)
		if err := utils.SafeWriteFile(path, buf.Bytes()); err != nil {
			return &WriteError{Path: path, Err: err}
		}
		log.Debug("wrote report output",
			zap.String("report", r.Name()),
			zap.String("format", string(f)),
			zap.String("path", path),
			zap.Int("bytes", buf.Len()),
			zap.Duration("elapsed", time.Since(start)))
		e.outputs = append(e.outputs, Output{Report: r.Name(), Format: f, Path: path})
	}
	return nil
}

// Record adds a file written outside Emit, such as the workbook.
func (e *Emitter) Record(o Output) { e.outputs = append(e.outputs, o) }

func (e *Emitter) logger() *zap.Logger {
	if e.Log == nil {
		return zap.NewNop()
	}
	return e.Log
}

func (e *Emitter) warnf(format string, args ...any) {
	if e.Warn == nil {
		return
	}
	fmt.Fprintf(e.Warn, format, args...)
}

// ParseFormats converts names such as "csv" or "PNG" to Formats, dropping duplicates.
func ParseFormats(names []string) ([]Format, error) {
	seen := map[Format]bool{}
	var out []Format
	for _, n := range names {
		f := Format(strings.ToLower(strings.TrimSpace(n)))
		switch f {
		case FormatCSV, FormatSVG, FormatPNG:
		default:
			return nil, fmt.Errorf("unsupported format %q (use csv, svg, png)", n)
		}
		if !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	return out, nil
}
