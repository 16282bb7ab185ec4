package repository

import (
	"context"

	"github.com/tpremraj1312/ledger-admin/internal/domain/entity"
)

// UserRepository defines the record store operations on application users.
// Deletes return an apperr NotFound when the id does not exist.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	List(ctx context.Context) ([]entity.User, error)
	GetByID(ctx context.Context, id string) (*entity.User, error)
	Delete(ctx context.Context, id string) error
}

// TransactionRepository lists transactions with their owner populated.
type TransactionRepository interface {
	Create(ctx context.Context, t *entity.Transaction) error
	List(ctx context.Context) ([]entity.Transaction, error)
	ListByUser(ctx context.Context, userID string) ([]entity.Transaction, error)
	Delete(ctx context.Context, id string) error
	DeleteByUser(ctx context.Context, userID string) (int64, error)
}

// BudgetRepository lists budgets with their owner populated. Create fails with
// apperr Conflict when the (user, category, period, type) tuple already exists.
type BudgetRepository interface {
	Create(ctx context.Context, b *entity.Budget) error
	List(ctx context.Context) ([]entity.Budget, error)
	ListByUser(ctx context.Context, userID string) ([]entity.Budget, error)
	Delete(ctx context.Context, id string) error
	DeleteByUser(ctx context.Context, userID string) (int64, error)
}

// AdminRepository backs the authentication gate.
type AdminRepository interface {
	Create(ctx context.Context, a *entity.Admin) error
	GetByEmail(ctx context.Context, email string) (*entity.Admin, error)
}

// Store bundles the collections exposed by one driver.
type Store struct {
	Users        UserRepository
	Transactions TransactionRepository
	Budgets      BudgetRepository
	Admins       AdminRepository
	// Ping reports whether the backing store is reachable. Nil means always.
	Ping func(ctx context.Context) error
}
