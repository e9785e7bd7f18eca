package report

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/fatih/color"
)

const (
	barGlyph        = "▓"
	defaultBarWidth = 40
)

var (
	titleColor = color.New(color.Bold)
	barColor   = color.New(color.FgCyan)
)

// Bars prints reports as horizontal text bar charts:
//
//	Level         Count
//	Advanced          4 ▓▓▓▓▓▓▓▓▓▓
//	Beginner          2 ▓▓▓▓▓
//	                    +--------+
//	                    0        4
type Bars struct {
	Out io.Writer
	// Width is the number of glyphs drawn for the largest value.
	Width int
}

func (b Bars) Print(r Report) error {
	width := b.Width
	if width <= 0 {
		width = defaultBarWidth
	}
	valueLabel := r.ValueLabel
	if valueLabel == "" {
		valueLabel = r.countLabel()
	}
	labels := r.Labels()
	vals := r.Values()
	texts := r.FormattedValues()

	labelW := len([]rune(r.KeyLabel))
	for _, l := range labels {
		labelW = max(labelW, len([]rune(l)))
	}
	valueW := len([]rune(valueLabel))
	maxIdx := -1
	for i, t := range texts {
		valueW = max(valueW, len(t))
		if maxIdx < 0 || vals[i] > vals[maxIdx] {
			maxIdx = i
		}
	}

	var sb strings.Builder
	sb.WriteString(titleColor.Sprint(r.Title))
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "%-*s %*s\n", labelW, r.KeyLabel, valueW, valueLabel)
	if maxIdx < 0 {
		sb.WriteString("(no rows)\n\n")
		_, err := io.WriteString(b.Out, sb.String())
		return err
	}
	maxV := vals[maxIdx]
	for i := range labels {
		n := 0
		if maxV > 0 {
			n = int(math.Round(vals[i] / maxV * float64(width)))
		}
		fmt.Fprintf(&sb, "%-*s %*s %s\n", labelW, labels[i], valueW, texts[i], barColor.Sprint(strings.Repeat(barGlyph, n)))
	}
	pad := strings.Repeat(" ", labelW+valueW+2)
	fmt.Fprintf(&sb, "%s+%s+\n", pad, strings.Repeat("-", max(width-2, 0)))
	fmt.Fprintf(&sb, "%s0%*s\n\n", pad, max(width-1, len(texts[maxIdx])), texts[maxIdx])
	_, err := io.WriteString(b.Out, sb.String())
	return err
}
