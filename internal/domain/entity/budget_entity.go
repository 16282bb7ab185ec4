package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

type BudgetType string

const (
	BudgetExpense BudgetType = "expense"
	BudgetIncome  BudgetType = "income"
)

func (t BudgetType) Valid() bool { return t == BudgetExpense || t == BudgetIncome }

type Period string

const (
	Weekly    Period = "Weekly"
	Monthly   Period = "Monthly"
	Quarterly Period = "Quarterly"
	Yearly    Period = "Yearly"
)

func (p Period) Valid() bool {
	switch p {
	case Weekly, Monthly, Quarterly, Yearly:
		return true
	}
	return false
}

// Budget is an expense limit or income goal. The store keeps at most one
// budget per (user, category, period, type).
type Budget struct {
	ID        string          `json:"id"`
	UserID    string          `json:"user_id"`
	User      *UserRef        `json:"user,omitempty"`
	Category  string          `json:"category"`
	Type      BudgetType      `json:"type"`
	Amount    decimal.Decimal `json:"amount"`
	Period    Period          `json:"period"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func (b Budget) OwnerID() string { return b.UserID }
func (b Budget) Owner() *UserRef { return b.User }
func (b Budget) Value() decimal.Decimal { return b.Amount }
func (b Budget) CreatedTime() time.Time { return b.CreatedAt }
func (b Budget) RecordID() string { return b.ID }

// Key is the uniqueness tuple enforced by the store.
func (b Budget) Key() string {
	return b.UserID + "|" + b.Category + "|" + string(b.Period) + "|" + string(b.Type)
}
