package entity

import "time"

// DeletionKind names what an admin removed.
type DeletionKind string

const (
	DeletedUser             DeletionKind = "user"
	DeletedTransaction      DeletionKind = "transaction"
	DeletedBudget           DeletionKind = "budget"
	DeletedUserTransactions DeletionKind = "user_transactions"
	DeletedUserBudgets      DeletionKind = "user_budgets"
)

// DeletionEvent is published after every successful or partially successful
// admin delete.
type DeletionEvent struct {
	Kind                DeletionKind `json:"kind"`
	RecordID            string       `json:"record_id,omitempty"`
	UserEmail           string       `json:"user_email,omitempty"`
	Actor               string       `json:"actor"`
	RequestID           string       `json:"request_id,omitempty"`
	Deleted             int64        `json:"deleted"`
	BudgetsDeleted      int64        `json:"budgets_deleted,omitempty"`
	TransactionsDeleted int64        `json:"transactions_deleted,omitempty"`
	FailedIDs           []string     `json:"failed_ids,omitempty"`
	At                  time.Time    `json:"at"`
}

func (e DeletionEvent) Partial() bool { return len(e.FailedIDs) > 0 }
