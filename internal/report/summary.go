package report

import (
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
)

// PrintSummary renders one line per report: bucket count, row total and the
// formats written.
func PrintSummary(w io.Writer, reports []Report, outputs []Output) {
	formats := map[string][]string{}
	for _, o := range outputs {
		formats[o.Report] = append(formats[o.Report], string(o.Format))
	}
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Report", "Buckets", "Total", "Files"})
	table.SetAutoFormatHeaders(false)
	for _, r := range reports {
		fs := formats[r.Name()]
		sort.Strings(fs)
		table.Append([]string{
			r.Name(),
			strconv.Itoa(len(r.Result.Buckets)),
			strconv.Itoa(r.Result.Total()),
			strings.Join(fs, ", "),
		})
	}
	table.Render()
}

// PrintTable renders column names and rows as a bordered table.
func PrintTable(w io.Writer, header []string, rows [][]string) {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.AppendBulk(rows)
	table.Render()
}
