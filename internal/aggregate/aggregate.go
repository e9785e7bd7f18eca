package aggregate

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Order selects how buckets are sorted.
type Order int

const (
	// OrderKey sorts keys ascending, blank key last.
	OrderKey Order = iota
	// OrderDate sorts YYYY-MM-DD keys chronologically, blank or unparsable keys last.
	OrderDate
	// OrderFirstSeen keeps keys in the order they first appear.
	OrderFirstSeen
)

const dateLayout = "2006-01-02"

// KeySeparator joins the values of a multi-column key.
const KeySeparator = " | "

// Bucket is one distinct key and the number of rows that carry it.
type Bucket struct {
	Key   string
	Count int
}

// Result is an ordered count table. Percent and Running are either nil or
// aligned with Buckets.
type Result struct {
	KeyName string
	Buckets []Bucket
	Percent []decimal.Decimal
	Running []decimal.Decimal
}

// Total returns the sum of all bucket counts.
func (r Result) Total() int {
	n := 0
	for _, b := range r.Buckets {
		n += b.Count
	}
	return n
}

// Counts returns bucket counts in bucket order.
func (r Result) Counts() []int {
	out := make([]int, len(r.Buckets))
	for i, b := range r.Buckets {
		out[i] = b.Count
	}
	return out
}

// CountBy groups rows by the values of one or more equally long columns and
// counts rows per key. Values are trimmed; a blank value is its own key.
func CountBy(keyName string, order Order, columns ...[]string) Result {
	res := Result{KeyName: keyName}
	if len(columns) == 0 {
		return res
	}
	counts := map[string]int{}
	var seen []string
	parts := make([]string, len(columns))
	for i := range columns[0] {
		for j, col := range columns {
			v := ""
			if i < len(col) {
				v = strings.TrimSpace(col[i])
			}
			parts[j] = v
		}
		key := parts[0]
		if len(parts) > 1 {
			key = strings.Join(parts, KeySeparator)
		}
		if _, ok := counts[key]; !ok {
			seen = append(seen, key)
		}
		counts[key]++
	}
	res.Buckets = make([]Bucket, len(seen))
	for i, k := range seen {
		res.Buckets[i] = Bucket{Key: k, Count: counts[k]}
	}
	sortBuckets(res.Buckets, order)
	return res
}

// CountWhere counts values equal to literal after trimming.
func CountWhere(values []string, literal string) int {
	n := 0
	for _, v := range values {
		if strings.TrimSpace(v) == literal {
			n++
		}
	}
	return n
}

// WithPercent attaches each bucket's share of the total, in percent. A zero
// total yields zero percents.
func (r Result) WithPercent() Result {
	total := decimal.NewFromInt(int64(r.Total()))
	hundred := decimal.NewFromInt(100)
	r.Percent = make([]decimal.Decimal, len(r.Buckets))
	for i, b := range r.Buckets {
		if total.IsZero() {
			r.Percent[i] = decimal.Zero
			continue
		}
		r.Percent[i] = decimal.NewFromInt(int64(b.Count)).Mul(hundred).Div(total)
	}
	return r
}

// WithRunningTotal attaches cumulative counts in bucket order.
func (r Result) WithRunningTotal() Result {
	r.Running = RunningTotal(r.Counts())
	return r
}

// RunningTotal returns the inclusive prefix sums of counts, in input order.
func RunningTotal(counts []int) []decimal.Decimal {
	sums := make([]decimal.Decimal, 0, len(counts))
	soFar := decimal.Zero
	for _, c := range counts {
		soFar = soFar.Add(decimal.NewFromInt(int64(c)))
		sums = append(sums, soFar)
	}
	return sums
}

func sortBuckets(b []Bucket, order Order) {
	switch order {
	case OrderKey:
		sort.SliceStable(b, func(i, j int) bool {
			ki, kj := b[i].Key, b[j].Key
			if (ki == "") != (kj == "") {
				return kj == ""
			}
			return ki < kj
		})
	case OrderDate:
		sort.SliceStable(b, func(i, j int) bool {
			ti, ei := time.Parse(dateLayout, b[i].Key)
			tj, ej := time.Parse(dateLayout, b[j].Key)
			if (ei == nil) != (ej == nil) {
				return ei == nil
			}
			if ei != nil {
				return b[i].Key < b[j].Key
			}
			return ti.Before(tj)
		})
	}
}
