package aggregation

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tpremraj1312/ledger-admin/internal/domain/entity"
)

// ActiveWindow is the trailing window in which a new user counts as active.
const ActiveWindow = 30 * 24 * time.Hour

// Basis selects the distribution the high spending threshold is taken from.
type Basis string

const (
	// BasisTransaction takes the threshold from raw per-transaction amounts and
	// compares per-user totals against it. This reproduces the numbers the
	// dashboard has always shown.
	BasisTransaction Basis = "transaction"
	// BasisUser takes the threshold from the per-user totals themselves.
	BasisUser Basis = "user"
)

func ParseBasis(s string) Basis {
	if Basis(s) == BasisUser {
		return BasisUser
	}
	return BasisTransaction
}

type HomeMetrics struct {
	TotalUsers               int             `json:"total_users"`
	ActiveUsers              int             `json:"active_users"`
	TotalTransactions        int             `json:"total_transactions"`
	TotalTransactionAmount   decimal.Decimal `json:"total_transaction_amount"`
	AverageTransactionAmount decimal.Decimal `json:"average_transaction_amount"`
	TotalBudgets             int             `json:"total_budgets"`
	TotalBudgetAmount        decimal.Decimal `json:"total_budget_amount"`
	AverageBudgetAmount      decimal.Decimal `json:"average_budget_amount"`
	HighSpendingThreshold    decimal.Decimal `json:"high_spending_threshold"`
	HighSpendingUsers        int             `json:"high_spending_users"`
	HighSpendingBasis        Basis           `json:"high_spending_basis"`
}

// ComputeHomeMetrics builds the fixed-shape overview shown on the home page.
func ComputeHomeMetrics(users []entity.User, txns []entity.Transaction, budgets []entity.Budget, now time.Time, basis Basis) HomeMetrics {
	m := HomeMetrics{
		TotalUsers:        len(users),
		TotalTransactions: len(txns),
		TotalBudgets:      len(budgets),
		HighSpendingBasis: basis,
	}

	since := now.Add(-ActiveWindow)
	for _, u := range users {
		if !u.CreatedAt.IsZero() && !u.CreatedAt.Before(since) {
			m.ActiveUsers++
		}
	}

	amounts := make([]decimal.Decimal, 0, len(txns))
	perUser := make(map[string]decimal.Decimal, len(users))
	m.TotalTransactionAmount = decimal.Zero
	for _, t := range txns {
		a := amountOf(t.Amount)
		amounts = append(amounts, a)
		m.TotalTransactionAmount = m.TotalTransactionAmount.Add(a)
		perUser[t.UserID] = perUser[t.UserID].Add(a)
	}
	m.AverageTransactionAmount = average(m.TotalTransactionAmount, len(txns))

	m.TotalBudgetAmount = decimal.Zero
	for _, b := range budgets {
		m.TotalBudgetAmount = m.TotalBudgetAmount.Add(amountOf(b.Amount))
	}
	m.AverageBudgetAmount = average(m.TotalBudgetAmount, len(budgets))

	if len(amounts) == 0 {
		m.HighSpendingThreshold = decimal.Zero
		return m
	}

	userTotals := make([]decimal.Decimal, 0, len(users))
	for _, u := range users {
		userTotals = append(userTotals, perUser[u.ID])
	}
	dist := amounts
	if basis == BasisUser {
		dist = userTotals
	}
	threshold, ok := UpperQuartile(dist)
	m.HighSpendingThreshold = threshold
	if !ok {
		return m
	}
	for _, total := range userTotals {
		if total.GreaterThanOrEqual(threshold) {
			m.HighSpendingUsers++
		}
	}
	return m
}

// UpperQuartile returns the value at index floor(n/4) of values sorted in
// descending order.
func UpperQuartile(values []decimal.Decimal) (decimal.Decimal, bool) {
	if len(values) == 0 {
		return decimal.Zero, false
	}
	sorted := slices.Clone(values)
	slices.SortFunc(sorted, func(a, b decimal.Decimal) int { return b.Cmp(a) })
	return sorted[len(sorted)/4], true
}

func average(total decimal.Decimal, n int) decimal.Decimal {
	if n == 0 {
		return decimal.Zero
	}
	return total.Div(decimal.NewFromInt(int64(n))).Round(2)
}
