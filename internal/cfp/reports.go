package cfp

import (
	"github.com/KaramelBytes/cfpstats/internal/aggregate"
	"github.com/KaramelBytes/cfpstats/internal/proposals"
	"github.com/KaramelBytes/cfpstats/internal/report"
)

// breakdown is a report over one categorical column.
type breakdown struct {
	spec    report.Spec
	column  string
	percent bool
}

var breakdowns = []breakdown{
	{column: proposals.ColLevel, spec: report.Spec{
		Suffix: "-by-level", Title: "Proposals by Level",
		KeyLabel: "Level", ValueLabel: "Count",
		Measure: report.MeasureCount, Chart: report.ChartColumn,
	}},
	{column: proposals.ColPronouns, spec: report.Spec{
		Suffix: "-by-pronoun", Title: "Proposals by Speaker Pronouns",
		KeyLabel: "Speaker Pronouns", ValueLabel: "Count",
		Measure: report.MeasureCount, Chart: report.ChartBar,
	}},
	{column: proposals.ColUnderrepresented, spec: report.Spec{
		Suffix: "-by-underrep", Title: "Underrepresented in Tech",
		KeyLabel: "Underrepresented", ValueLabel: "Count",
		Measure: report.MeasureCount, Chart: report.ChartBar,
	}},
	{column: proposals.ColUnderrepresented, percent: true, spec: report.Spec{
		Suffix: "-by-underrep-percent", Title: "Underrepresented in Tech (%)",
		KeyLabel: "Underrepresented", ValueLabel: "Percent",
		Measure: report.MeasurePercent, Chart: report.ChartBar,
	}},
	{column: proposals.ColUnderrepGroups, spec: report.Spec{
		Suffix: "-by-underrep-groups", Title: "Underrepresented Groups",
		KeyLabel: "Underrep Groups", ValueLabel: "Count",
		Measure: report.MeasureCount, Chart: report.ChartBar,
	}},
	{column: proposals.ColTravelAssist, spec: report.Spec{
		Suffix: "-by-travel", Title: "Travel Assistance Needed",
		KeyLabel: "Travel Assist", ValueLabel: "Count",
		Measure: report.MeasureCount, Chart: report.ChartColumn,
	}},
}

// companyBreakdowns need the derived employer columns.
var companyBreakdowns = []breakdown{
	{column: proposals.ColEmployee, spec: report.Spec{
		Suffix: "-by-employee", Title: "Proposals from Employees",
		KeyLabel: "Employee", ValueLabel: "Count",
		Measure: report.MeasureCount, Chart: report.ChartColumn,
	}},
	{column: proposals.ColCompanyNormalized, spec: report.Spec{
		Suffix: "-by-company", Title: "Proposals by Company",
		KeyLabel: "Company", ValueLabel: "Count",
		Measure: report.MeasureCount, Chart: report.ChartBar,
	}},
}

// Reports computes every report for a normalized, derived table, in output
// order. Company reports are included only when the table has the employer
// columns.
func Reports(t *proposals.Table) ([]report.Report, error) {
	days, err := t.Column(proposals.ColDayCreated)
	if err != nil {
		return nil, err
	}
	out := []report.Report{{
		Spec: report.Spec{
			Suffix: "-total-by-day", Title: "Proposals Submitted Over Time",
			KeyLabel: "Day Created", ValueLabel: "Running Total",
			Measure: report.MeasureRunning, Chart: report.ChartLine,
		},
		Result: aggregate.CountBy(proposals.ColDayCreated, aggregate.OrderDate, days).WithRunningTotal(),
	}}

	products, err := productCounts(t)
	if err != nil {
		return nil, err
	}
	out = append(out, report.Report{
		Spec: report.Spec{
			Suffix: "-by-product", Title: "Proposals by Product",
			KeyLabel: "Product", ValueLabel: "Proposal Count",
			Measure: report.MeasureCount, Chart: report.ChartBar,
		},
		Result: products,
	})

	list := breakdowns
	if t.Has(proposals.ColEmployee) && t.Has(proposals.ColCompanyNormalized) {
		list = append(append([]breakdown{}, breakdowns...), companyBreakdowns...)
	}
	for _, b := range list {
		values, err := t.Column(b.column)
		if err != nil {
			return nil, err
		}
		res := aggregate.CountBy(b.spec.KeyLabel, aggregate.OrderKey, values)
		if b.percent {
			res = res.WithPercent()
		}
		out = append(out, report.Report{Spec: b.spec, Result: res})
	}
	return out, nil
}

// productCounts counts, per product tag column, the rows ticked with that
// product's name. Products keep their fixed order.
func productCounts(t *proposals.Table) (aggregate.Result, error) {
	res := aggregate.Result{KeyName: "Product"}
	for _, p := range proposals.Products {
		values, err := t.Column(p)
		if err != nil {
			return res, err
		}
		res.Buckets = append(res.Buckets, aggregate.Bucket{Key: p, Count: aggregate.CountWhere(values, p)})
	}
	return res, nil
}
