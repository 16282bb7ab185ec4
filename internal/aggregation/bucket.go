package aggregation

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

const DayLayout = "2006-01-02"

// Bucket is one calendar day of a time series.
type Bucket struct {
	Label string
	Day   time.Time
	Count int
	Sum   decimal.Decimal
}

// BucketByDate groups items by the calendar day of date (in the time's own
// location). Only days present in items are emitted, in chronological order.
// Items with a zero date are skipped; value may be nil to count only.
func BucketByDate[T any](items []T, date func(T) time.Time, value func(T) decimal.Decimal) []Bucket {
	byLabel := make(map[string]*Bucket)
	for _, it := range items {
		t := date(it)
		if t.IsZero() {
			continue
		}
		y, m, d := t.Date()
		label := t.Format(DayLayout)
		b, ok := byLabel[label]
		if !ok {
			b = &Bucket{Label: label, Day: time.Date(y, m, d, 0, 0, 0, 0, time.UTC), Sum: decimal.Zero}
			byLabel[label] = b
		}
		b.Count++
		if value != nil {
			b.Sum = b.Sum.Add(amountOf(value(it)))
		}
	}
	out := make([]Bucket, 0, len(byLabel))
	for _, b := range byLabel {
		out = append(out, *b)
	}
	slices.SortFunc(out, func(a, b Bucket) int { return a.Day.Compare(b.Day) })
	return out
}

// FillGaps inserts zero buckets for the missing days between the first and
// last bucket. Input must be sorted as returned by BucketByDate.
func FillGaps(in []Bucket) []Bucket {
	if len(in) < 2 {
		return slices.Clone(in)
	}
	out := make([]Bucket, 0, len(in))
	next := in[0].Day
	for _, b := range in {
		for next.Before(b.Day) {
			out = append(out, Bucket{Label: next.Format(DayLayout), Day: next, Sum: decimal.Zero})
			next = next.AddDate(0, 0, 1)
		}
		out = append(out, b)
		next = b.Day.AddDate(0, 0, 1)
	}
	return out
}

// Cumulative turns per-day counts and sums into running totals.
func Cumulative(in []Bucket) []Bucket {
	out := make([]Bucket, len(in))
	count, sum := 0, decimal.Zero
	for i, b := range in {
		count += b.Count
		sum = sum.Add(b.Sum)
		out[i] = Bucket{Label: b.Label, Day: b.Day, Count: count, Sum: sum}
	}
	return out
}
