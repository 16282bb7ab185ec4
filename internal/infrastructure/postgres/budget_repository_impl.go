package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tpremraj1312/ledger-admin/internal/domain/apperr"
	"github.com/tpremraj1312/ledger-admin/internal/domain/entity"
	"github.com/tpremraj1312/ledger-admin/internal/domain/repository"
)

const (
	msgBudgetNotFound = "Budget not found"
	msgBudgetExists   = "Budget already exists for this category and period"
)

const selectBudgets = `
	SELECT b.id, b.user_id, b.category, b.type, b.amount::text, b.period,
	       b.created_at, b.updated_at,
	       u.id, u.name, u.email
	FROM budgets b
	LEFT JOIN users u ON u.id = b.user_id
`

type BudgetRepository struct {
	pool *pgxpool.Pool
}

func NewBudgetRepository(pool *pgxpool.Pool) *BudgetRepository {
	return &BudgetRepository{pool: pool}
}

func (r *BudgetRepository) Create(ctx context.Context, b *entity.Budget) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	if b.Period == "" {
		b.Period = entity.Monthly
	}
	if b.Type == "" {
		b.Type = entity.BudgetExpense
	}
	now := time.Now().UTC()
	if b.CreatedAt.IsZero() {
		b.CreatedAt = now
	}
	if b.UpdatedAt.IsZero() {
		b.UpdatedAt = b.CreatedAt
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO budgets (id, user_id, category, type, amount, period, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5::numeric, $6, $7, $8)
	`, b.ID, b.UserID, b.Category, b.Type, b.Amount.String(), b.Period, b.CreatedAt, b.UpdatedAt)
	return mapErr(err, "insert budget", msgBudgetNotFound, msgBudgetExists)
}

func (r *BudgetRepository) List(ctx context.Context) ([]entity.Budget, error) {
	return r.query(ctx, "list budgets", selectBudgets+` ORDER BY b.created_at DESC`)
}

func (r *BudgetRepository) ListByUser(ctx context.Context, userID string) ([]entity.Budget, error) {
	return r.query(ctx, "list user budgets", selectBudgets+` WHERE b.user_id = $1 ORDER BY b.created_at DESC`, userID)
}

func (r *BudgetRepository) query(ctx context.Context, op, sql string, args ...any) ([]entity.Budget, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, mapErr(err, op, msgBudgetNotFound, msgBudgetExists)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.Budget, error) {
		var (
			b                          entity.Budget
			amount                     string
			ownerID, ownerName, ownerE *string
		)
		err := row.Scan(&b.ID, &b.UserID, &b.Category, &b.Type, &amount, &b.Period,
			&b.CreatedAt, &b.UpdatedAt, &ownerID, &ownerName, &ownerE)
		if err != nil {
			return b, err
		}
		b.Amount, _ = entity.ParseAmount(amount)
		b.User = ownerRef(ownerID, ownerName, ownerE)
		return b, nil
	})
	if err != nil {
		return nil, mapErr(err, op, msgBudgetNotFound, msgBudgetExists)
	}
	return out, nil
}

func (r *BudgetRepository) Delete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM budgets WHERE id = $1`, id)
	if err != nil {
		return mapErr(err, "delete budget", msgBudgetNotFound, msgBudgetExists)
	}
	if res.RowsAffected() == 0 {
		return apperr.NotFound(msgBudgetNotFound)
	}
	return nil
}

func (r *BudgetRepository) DeleteByUser(ctx context.Context, userID string) (int64, error) {
	res, err := r.pool.Exec(ctx, `DELETE FROM budgets WHERE user_id = $1`, userID)
	if err != nil {
		return 0, mapErr(err, "delete user budgets", msgBudgetNotFound, msgBudgetExists)
	}
	return res.RowsAffected(), nil
}

var _ repository.BudgetRepository = (*BudgetRepository)(nil)
