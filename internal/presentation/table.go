package presentation

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tpremraj1312/ledger-admin/internal/aggregation"
	"github.com/tpremraj1312/ledger-admin/internal/domain/entity"
)

// Row is one line of a summary table. Records is only set on the expanded row.
type Row[R aggregation.Record] struct {
	Name      string          `json:"name"`
	Email     string          `json:"email"`
	CreatedAt time.Time       `json:"created_at"`
	Total     decimal.Decimal `json:"total"`
	Count     int             `json:"count"`
	Expanded  bool            `json:"expanded"`
	Records   []R             `json:"records,omitempty"`
}

// DetailCompare orders two records of an expanded row by key.
type DetailCompare[R aggregation.Record] func(a, b R, key DetailKey) int

// SummaryTable filters and sorts summaries according to s.
func SummaryTable[R aggregation.Record](summaries []aggregation.UserSummary[R], s ViewState, detail DetailCompare[R]) []Row[R] {
	visible := aggregation.FilterBySearch(summaries, s.Search)
	visible = aggregation.SortSummaries(visible, s.Sort.Key, s.Sort.Dir)

	rows := make([]Row[R], 0, len(visible))
	for _, sum := range visible {
		row := Row[R]{
			Name:      sum.Name,
			Email:     sum.Email,
			CreatedAt: sum.CreatedAt,
			Total:     sum.Total,
			Count:     len(sum.Records),
		}
		if s.Expanded != "" && sum.Email == s.Expanded {
			row.Expanded = true
			row.Records = sortRecords(sum.Records, s.DetailSort, detail)
		}
		rows = append(rows, row)
	}
	return rows
}

func sortRecords[R aggregation.Record](in []R, ds DetailSortState, detail DetailCompare[R]) []R {
	out := slices.Clone(in)
	if detail == nil {
		return out
	}
	slices.SortStableFunc(out, func(a, b R) int {
		c := detail(a, b, ds.Key)
		if ds.Dir == aggregation.Desc {
			return -c
		}
		return c
	})
	return out
}

// CompareTransactions supports the category, amount, date and createdAt keys.
func CompareTransactions(a, b entity.Transaction, key DetailKey) int {
	switch key {
	case DetailAmount:
		return a.Amount.Cmp(b.Amount)
	case DetailDate:
		return a.Date.Compare(b.Date)
	case DetailCreatedAt:
		return a.CreatedAt.Compare(b.CreatedAt)
	default:
		return cmp.Compare(strings.ToLower(string(a.Category)), strings.ToLower(string(b.Category)))
	}
}

// CompareBudgets supports the category, period, amount and createdAt keys.
func CompareBudgets(a, b entity.Budget, key DetailKey) int {
	switch key {
	case DetailAmount:
		return a.Amount.Cmp(b.Amount)
	case DetailPeriod:
		return cmp.Compare(periodRank(a.Period), periodRank(b.Period))
	case DetailCreatedAt, DetailDate:
		return a.CreatedAt.Compare(b.CreatedAt)
	default:
		return cmp.Compare(strings.ToLower(a.Category), strings.ToLower(b.Category))
	}
}

func periodRank(p entity.Period) int {
	switch p {
	case entity.Weekly:
		return 0
	case entity.Monthly:
		return 1
	case entity.Quarterly:
		return 2
	case entity.Yearly:
		return 3
	}
	return 4
}
