package proposals

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DayLayout is the format of the Day Created column.
const DayLayout = "2006-01-02"

var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02 15:04",
	"1/2/2006 15:04:05",
	"1/2/2006 15:04",
	"2006-01-02",
	"01/02/2006",
}

// TruncateDate drops the time of day from a submission timestamp.
func TruncateDate(ts string) (string, error) {
	s := strings.TrimSpace(ts)
	for _, l := range timestampLayouts {
		if t, err := time.Parse(l, s); err == nil {
			return t.Format(DayLayout), nil
		}
	}
	return "", fmt.Errorf("unrecognized timestamp")
}

// LowerPronoun folds a self-reported pronoun string to lower case.
func LowerPronoun(s string) string {
	return cases.Lower(language.Und).String(strings.TrimSpace(s))
}

// Employer flags speakers whose company matches Pattern and rewrites their
// company to Name.
type Employer struct {
	Pattern *regexp.Regexp
	Name    string
}

// NewEmployer compiles pattern case-insensitively.
func NewEmployer(pattern, name string) (Employer, error) {
	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		return Employer{}, fmt.Errorf("employer pattern: %w", err)
	}
	return Employer{Pattern: re, Name: name}, nil
}

// DefaultEmployer matches any spelling of HashiCorp.
func DefaultEmployer() Employer {
	return Employer{Pattern: regexp.MustCompile(`(?i)hashicorp`), Name: "HashiCorp"}
}

func (e Employer) Matches(company string) bool {
	return e.Pattern != nil && e.Pattern.MatchString(company)
}

// Normalize returns the canonical name for matching companies and company
// unchanged otherwise.
func (e Employer) Normalize(company string) string {
	if e.Matches(company) {
		return e.Name
	}
	return company
}

// Derive adds Day Created and Pronouns, plus Employee and Company Normalized
// when companyColumn is present. A timestamp that does not parse aborts with a
// *ParseError.
func (t *Table) Derive(emp Employer, companyColumn string) error {
	created, err := t.Column(ColDateCreated)
	if err != nil {
		return err
	}
	days := make([]string, len(created))
	for i, v := range created {
		d, err := TruncateDate(v)
		if err != nil {
			return &ParseError{Row: i + 1, Column: ColDateCreated, Value: v, Err: err}
		}
		days[i] = d
	}
	if err := t.set(ColDayCreated, days); err != nil {
		return err
	}

	pronouns, err := t.Column(ColSpeakerPronouns)
	if err != nil {
		return err
	}
	lowered := make([]string, len(pronouns))
	for i, v := range pronouns {
		lowered[i] = LowerPronoun(v)
	}
	if err := t.set(ColPronouns, lowered); err != nil {
		return err
	}

	if companyColumn == "" || !t.Has(companyColumn) {
		return nil
	}
	companies, err := t.Column(companyColumn)
	if err != nil {
		return err
	}
	flags := make([]string, len(companies))
	normalized := make([]string, len(companies))
	for i, c := range companies {
		flags[i] = strconv.FormatBool(emp.Matches(c))
		normalized[i] = strings.TrimSpace(emp.Normalize(c))
	}
	if err := t.set(ColEmployee, flags); err != nil {
		return err
	}
	return t.set(ColCompanyNormalized, normalized)
}

// DistinctSpeakers counts unique non-blank speaker emails, ignoring case. ok is
// false when the table has no Speaker Email column.
func (t *Table) DistinctSpeakers() (n int, ok bool) {
	emails, err := t.Column(ColSpeakerEmail)
	if err != nil {
		return 0, false
	}
	seen := make(map[string]struct{}, len(emails))
	for _, e := range emails {
		k := strings.ToLower(strings.TrimSpace(e))
		if k == "" {
			continue
		}
		seen[k] = struct{}{}
	}
	return len(seen), true
}
