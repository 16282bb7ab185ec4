package memory

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tpremraj1312/ledger-admin/internal/domain/apperr"
	"github.com/tpremraj1312/ledger-admin/internal/domain/entity"
	"github.com/tpremraj1312/ledger-admin/internal/domain/repository"
)

type record interface {
	CreatedTime() time.Time
	RecordID() string
}

func newestFirst[R record](a, b R) int {
	if c := b.CreatedTime().Compare(a.CreatedTime()); c != 0 {
		return c
	}
	return strings.Compare(a.RecordID(), b.RecordID())
}

type transactionRepo struct{ s *Store }

func (r transactionRepo) Create(ctx context.Context, t *entity.Transaction) error {
	if err := checkCtx(ctx); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if _, ok := r.s.transactions[t.ID]; ok {
		return apperr.Conflict("Transaction already exists")
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = r.s.now()
	}
	if t.Date.IsZero() {
		t.Date = t.CreatedAt
	}
	stored := *t
	stored.User = nil
	stored.Categories = slices.Clone(t.Categories)
	r.s.transactions[t.ID] = stored
	return nil
}

func (r transactionRepo) List(ctx context.Context) ([]entity.Transaction, error) {
	return r.list(ctx, func(entity.Transaction) bool { return true })
}

func (r transactionRepo) ListByUser(ctx context.Context, userID string) ([]entity.Transaction, error) {
	return r.list(ctx, func(t entity.Transaction) bool { return t.UserID == userID })
}

func (r transactionRepo) list(ctx context.Context, keep func(entity.Transaction) bool) ([]entity.Transaction, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]entity.Transaction, 0, len(r.s.transactions))
	for _, t := range r.s.transactions {
		if !keep(t) {
			continue
		}
		t.User = r.s.ref(t.UserID)
		out = append(out, t)
	}
	slices.SortFunc(out, newestFirst[entity.Transaction])
	return out, nil
}

func (r transactionRepo) Delete(ctx context.Context, id string) error {
	if err := checkCtx(ctx); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.transactions[id]; !ok {
		return apperr.NotFound("Transaction not found")
	}
	delete(r.s.transactions, id)
	return nil
}

func (r transactionRepo) DeleteByUser(ctx context.Context, userID string) (int64, error) {
	if err := checkCtx(ctx); err != nil {
		return 0, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for id, t := range r.s.transactions {
		if t.UserID == userID {
			delete(r.s.transactions, id)
			n++
		}
	}
	return n, nil
}

type budgetRepo struct{ s *Store }

func (r budgetRepo) Create(ctx context.Context, b *entity.Budget) error {
	if err := checkCtx(ctx); err != nil {
		return err
	}
	if b.Period == "" {
		b.Period = entity.Monthly
	}
	if b.Type == "" {
		b.Type = entity.BudgetExpense
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := b.Key()
	for _, existing := range r.s.budgets {
		if existing.Key() == key {
			return apperr.Conflict("Budget already exists for this category and period")
		}
	}
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = r.s.now()
	}
	if b.UpdatedAt.IsZero() {
		b.UpdatedAt = b.CreatedAt
	}
	stored := *b
	stored.User = nil
	r.s.budgets[b.ID] = stored
	return nil
}

func (r budgetRepo) List(ctx context.Context) ([]entity.Budget, error) {
	return r.list(ctx, func(entity.Budget) bool { return true })
}

func (r budgetRepo) ListByUser(ctx context.Context, userID string) ([]entity.Budget, error) {
	return r.list(ctx, func(b entity.Budget) bool { return b.UserID == userID })
}

func (r budgetRepo) list(ctx context.Context, keep func(entity.Budget) bool) ([]entity.Budget, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]entity.Budget, 0, len(r.s.budgets))
	for _, b := range r.s.budgets {
		if !keep(b) {
			continue
		}
		b.User = r.s.ref(b.UserID)
		out = append(out, b)
	}
	slices.SortFunc(out, newestFirst[entity.Budget])
	return out, nil
}

func (r budgetRepo) Delete(ctx context.Context, id string) error {
	if err := checkCtx(ctx); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.budgets[id]; !ok {
		return apperr.NotFound("Budget not found")
	}
	delete(r.s.budgets, id)
	return nil
}

func (r budgetRepo) DeleteByUser(ctx context.Context, userID string) (int64, error) {
	if err := checkCtx(ctx); err != nil {
		return 0, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for id, b := range r.s.budgets {
		if b.UserID == userID {
			delete(r.s.budgets, id)
			n++
		}
	}
	return n, nil
}

var (
	_ repository.TransactionRepository = transactionRepo{}
	_ repository.BudgetRepository      = budgetRepo{}
)
