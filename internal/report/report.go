package report

import (
	"strconv"

	"github.com/KaramelBytes/cfpstats/internal/aggregate"
)

// ChartKind selects the image chart drawn for a report.
type ChartKind string

const (
	ChartLine   ChartKind = "line"
	ChartColumn ChartKind = "column"
	ChartBar    ChartKind = "bar"
)

// Measure selects which figure of a result is charted.
type Measure string

const (
	MeasureCount   Measure = "count"
	MeasurePercent Measure = "percent"
	MeasureRunning Measure = "running"
)

// BlankLabel stands in for an empty key in bars and charts. CSV output keeps
// the empty key.
const BlankLabel = "(blank)"

// Spec describes one report dimension.
type Spec struct {
	// Suffix is appended to the input file name, e.g. "-by-level".
	Suffix     string
	Title      string
	KeyLabel   string
	ValueLabel string
	Measure    Measure
	Chart      ChartKind
}

// Report is a Spec with its computed result.
type Report struct {
	Spec
	Result aggregate.Result
}

// Name is the suffix without its leading dash.
func (r Report) Name() string {
	if len(r.Suffix) > 0 && r.Suffix[0] == '-' {
		return r.Suffix[1:]
	}
	return r.Suffix
}

func (r Report) countLabel() string {
	if r.Measure == MeasureCount && r.ValueLabel != "" {
		return r.ValueLabel
	}
	return "Count"
}

// Header returns the column names of the result table.
func (r Report) Header() []string {
	h := []string{r.KeyLabel, r.countLabel()}
	if r.Result.Percent != nil {
		h = append(h, "Percent")
	}
	if r.Result.Running != nil {
		h = append(h, "Running Total")
	}
	return h
}

// Rows returns the result table as text, aligned with Header.
func (r Report) Rows() [][]string {
	out := make([][]string, len(r.Result.Buckets))
	for i, b := range r.Result.Buckets {
		row := []string{b.Key, strconv.Itoa(b.Count)}
		if r.Result.Percent != nil {
			row = append(row, r.Result.Percent[i].StringFixed(2))
		}
		if r.Result.Running != nil {
			row = append(row, r.Result.Running[i].String())
		}
		out[i] = row
	}
	return out
}

// Labels returns display keys, with BlankLabel for empty keys.
func (r Report) Labels() []string {
	out := make([]string, len(r.Result.Buckets))
	for i, b := range r.Result.Buckets {
		out[i] = displayKey(b.Key)
	}
	return out
}

// Values returns the charted measure per bucket.
func (r Report) Values() []float64 {
	out := make([]float64, len(r.Result.Buckets))
	for i, b := range r.Result.Buckets {
		switch {
		case r.Measure == MeasurePercent && r.Result.Percent != nil:
			out[i] = r.Result.Percent[i].InexactFloat64()
		case r.Measure == MeasureRunning && r.Result.Running != nil:
			out[i] = r.Result.Running[i].InexactFloat64()
		default:
			out[i] = float64(b.Count)
		}
	}
	return out
}

// FormattedValues returns the charted measure per bucket as text.
func (r Report) FormattedValues() []string {
	out := make([]string, len(r.Result.Buckets))
	for i, b := range r.Result.Buckets {
		switch {
		case r.Measure == MeasurePercent && r.Result.Percent != nil:
			out[i] = r.Result.Percent[i].StringFixed(2)
		case r.Measure == MeasureRunning && r.Result.Running != nil:
			out[i] = r.Result.Running[i].String()
		default:
			out[i] = strconv.Itoa(b.Count)
		}
	}
	return out
}

func displayKey(k string) string {
	if k == "" {
		return BlankLabel
	}
	return k
}
