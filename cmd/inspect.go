package cmd

import (
	"fmt"
	"strconv"

	"github.com/KaramelBytes/cfpstats/internal/proposals"
	"github.com/KaramelBytes/cfpstats/internal/report"
	"github.com/spf13/cobra"
)

var inspectRows int

var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Show the columns of an export and whether every report column is present",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		load, err := loadOptions()
		if err != nil {
			return err
		}
		t, err := proposals.Load(args[0], load)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s: %d row(s), %d column(s)\n\n", t.Name, t.Len(), len(t.Columns()))

		profile := t.Profile()
		cols := make([][]string, 0, len(profile))
		for i, c := range profile {
			top := ""
			if c.TopCount > 0 {
				top = fmt.Sprintf("%s (%d)", truncate(c.Top, 32), c.TopCount)
			}
			cols = append(cols, []string{
				strconv.Itoa(i + 1), c.Name,
				strconv.Itoa(c.NonNull), strconv.Itoa(c.Missing), strconv.Itoa(c.Unique), top,
			})
		}
		report.PrintTable(out, []string{"#", "Column", "Filled", "Blank", "Unique", "Most common"}, cols)

		status := make([][]string, 0, len(proposals.Renames)+len(proposals.Required))
		missing := 0
		for _, r := range proposals.Renames {
			state := "ok"
			if !t.Has(r.From) {
				state = "missing"
				missing++
			}
			status = append(status, []string{r.From, r.To, state})
		}
		for _, name := range []string{proposals.ColDateCreated, proposals.ColSpeakerPronouns, proposals.ColLevel} {
			state := "ok"
			if !t.Has(name) {
				state = "missing"
				missing++
			}
			status = append(status, []string{name, name, state})
		}
		company := cfg.CompanyColumn
		state := "ok"
		if !t.Has(company) {
			state = "absent (company reports skipped)"
		}
		status = append(status, []string{company, proposals.ColCompanyNormalized, state})
		fmt.Fprintln(out)
		report.PrintTable(out, []string{"Export column", "Report column", "Status"}, status)

		if inspectRows > 0 && t.Len() > 0 {
			fmt.Fprintln(out)
			report.PrintTable(out, t.Columns(), t.Head(inspectRows))
		}
		if missing > 0 {
			fmt.Fprintf(out, "\n⚠ Warning: %d required column(s) missing\n", missing)
		} else {
			fmt.Fprintln(out, "\n✓ All report columns present")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().IntVarP(&inspectRows, "rows", "n", 0, "print the first N rows")
	addLoadFlags(inspectCmd.Flags())
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
