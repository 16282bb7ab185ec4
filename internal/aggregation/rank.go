package aggregation

import (
	"slices"

	"github.com/shopspring/decimal"
)

// Ranked is one labelled total.
type Ranked struct {
	Label string
	Value decimal.Decimal
}

// SumBy totals value per group label in first-encounter order.
func SumBy[T any](items []T, group func(T) string, value func(T) decimal.Decimal) []Ranked {
	idx := make(map[string]int)
	var out []Ranked
	for _, it := range items {
		label := group(it)
		i, ok := idx[label]
		if !ok {
			i = len(out)
			idx[label] = i
			out = append(out, Ranked{Label: label, Value: decimal.Zero})
		}
		out[i].Value = out[i].Value.Add(amountOf(value(it)))
	}
	return out
}

// TopN returns the n groups with the largest summed value, descending. Ties
// keep first-encounter order. n <= 0 ranks every group.
func TopN[T any](items []T, group func(T) string, value func(T) decimal.Decimal, n int) []Ranked {
	out := SumBy(items, group, value)
	slices.SortStableFunc(out, func(a, b Ranked) int {
		return b.Value.Cmp(a.Value)
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
