package report

import (
	"fmt"
	"image/color"
	"io"
	"time"

	chart "github.com/wcharczuk/go-chart/v2"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Format is an output file type.
type Format string

const (
	FormatCSV Format = "csv"
	FormatSVG Format = "svg"
	FormatPNG Format = "png"

	// Per-run outputs, not selectable per report.
	FormatXLSX Format = "xlsx"
	FormatYAML Format = "yaml"
)

// IsImage reports whether f is a chart format.
func (f Format) IsImage() bool { return f == FormatSVG || f == FormatPNG }

// ChartOptions sizes rendered charts in pixels. Bar and column charts grow
// past these to fit every bucket.
type ChartOptions struct {
	Width  int
	Height int
}

// DefaultChartOptions matches the size of the charts in the published CFP recaps.
func DefaultChartOptions() ChartOptions {
	return ChartOptions{Width: 960, Height: 540}
}

const screenDPI = 96

var barFill = color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff}

// RenderChart draws r as its configured chart kind in format f. The SVG and
// PNG outputs of a report come from the same chart model.
func RenderChart(w io.Writer, r Report, f Format, opt ChartOptions) error {
	if !f.IsImage() {
		return fmt.Errorf("unsupported chart format %q", f)
	}
	if len(r.Result.Buckets) == 0 {
		return fmt.Errorf("no data")
	}
	if opt.Width <= 0 || opt.Height <= 0 {
		opt = DefaultChartOptions()
	}
	switch r.Chart {
	case ChartLine:
		return renderLine(w, r, f, opt)
	case ChartColumn:
		return renderColumn(w, r, f, opt)
	case ChartBar:
		return renderBar(w, r, f, opt)
	default:
		return fmt.Errorf("unknown chart kind %q", r.Chart)
	}
}

func provider(f Format) chart.RendererProvider {
	if f == FormatSVG {
		return chart.SVG
	}
	return chart.PNG
}

// yRange pins the value axis at zero with some headroom; go-chart rejects a
// zero-height range, which a single bucket or equal values would produce.
func yRange(vals []float64) *chart.ContinuousRange {
	top := 0.0
	for _, v := range vals {
		top = max(top, v)
	}
	if top <= 0 {
		top = 1
	}
	return &chart.ContinuousRange{Min: 0, Max: top * 1.1}
}

func renderLine(w io.Writer, r Report, f Format, opt ChartOptions) error {
	vals := r.Values()
	xs := make([]time.Time, 0, len(vals)+1)
	ys := make([]float64, 0, len(vals)+1)
	for i, b := range r.Result.Buckets {
		t, err := time.Parse("2006-01-02", b.Key)
		if err != nil {
			return fmt.Errorf("line chart key %q: %w", b.Key, err)
		}
		xs = append(xs, t)
		ys = append(ys, vals[i])
	}
	// A single day has no x extent; hold the value flat across the next day.
	if len(xs) == 1 {
		xs = append(xs, xs[0].Add(24*time.Hour))
		ys = append(ys, ys[0])
	}
	graph := chart.Chart{
		Title:      r.Title,
		Width:      opt.Width,
		Height:     opt.Height,
		Background: chart.Style{Padding: chart.Box{Top: 48, Left: 16, Right: 24, Bottom: 16}},
		XAxis: chart.XAxis{
			Name:           r.KeyLabel,
			ValueFormatter: chart.TimeDateValueFormatter,
		},
		YAxis: chart.YAxis{
			Name:  r.ValueLabel,
			Range: yRange(ys),
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    r.ValueLabel,
				XValues: xs,
				YValues: ys,
				Style: chart.Style{
					StrokeColor: chart.ColorBlue,
					StrokeWidth: 2,
				},
			},
		},
	}
	return graph.Render(provider(f), w)
}

func renderColumn(w io.Writer, r Report, f Format, opt ChartOptions) error {
	vals := r.Values()
	labels := r.Labels()
	bars := make([]chart.Value, len(vals))
	for i := range vals {
		bars[i] = chart.Value{Label: labels[i], Value: vals[i]}
	}
	const barWidth, barSpacing = 48, 24
	bc := chart.BarChart{
		Title:      r.Title,
		Width:      max(opt.Width, len(bars)*(barWidth+barSpacing)+160),
		Height:     opt.Height,
		BarWidth:   barWidth,
		BarSpacing: barSpacing,
		Background: chart.Style{Padding: chart.Box{Top: 48, Left: 16, Right: 16, Bottom: 16}},
		YAxis: chart.YAxis{
			Name:  r.ValueLabel,
			Range: yRange(vals),
		},
		Bars: bars,
	}
	return bc.Render(provider(f), w)
}

// renderBar draws horizontal bars with gonum/plot; go-chart only draws
// vertical ones.
func renderBar(w io.Writer, r Report, f Format, opt ChartOptions) error {
	vals := r.Values()
	p := plot.New()
	p.Title.Text = r.Title
	p.X.Label.Text = r.ValueLabel
	p.X.Min = 0
	p.Add(plotter.NewGrid())

	bars, err := plotter.NewBarChart(plotter.Values(vals), vg.Points(14))
	if err != nil {
		return fmt.Errorf("bar chart: %w", err)
	}
	bars.Horizontal = true
	bars.Color = barFill
	bars.LineStyle.Width = vg.Length(0)
	p.Add(bars)
	p.NominalY(r.Labels()...)

	height := max(opt.Height, len(vals)*28+120)
	wt, err := p.WriterTo(pixels(opt.Width), pixels(height), string(f))
	if err != nil {
		return fmt.Errorf("bar chart canvas: %w", err)
	}
	_, err = wt.WriteTo(w)
	return err
}

func pixels(n int) vg.Length {
	return vg.Length(n) * vg.Inch / screenDPI
}
