package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tpremraj1312/ledger-admin/internal/domain/apperr"
	"github.com/tpremraj1312/ledger-admin/internal/domain/entity"
	"github.com/tpremraj1312/ledger-admin/internal/domain/repository"
)

const (
	msgTransactionNotFound = "Transaction not found"
	msgTransactionExists   = "Transaction already exists"
)

const selectTransactions = `
	SELECT t.id, t.user_id, t.type, t.category, t.amount::text, t.description,
	       t.date, t.source, t.categories, t.status, t.created_at,
	       u.id, u.name, u.email
	FROM transactions t
	LEFT JOIN users u ON u.id = t.user_id
`

type TransactionRepository struct {
	pool *pgxpool.Pool
}

func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

func (r *TransactionRepository) Create(ctx context.Context, t *entity.Transaction) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}
	if t.Date.IsZero() {
		t.Date = t.CreatedAt
	}
	var breakdown []byte
	if len(t.Categories) > 0 {
		b, err := json.Marshal(t.Categories)
		if err != nil {
			return fmt.Errorf("encode line items: %w", err)
		}
		breakdown = b
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO transactions (id, user_id, type, category, amount, description, date, source, categories, status, created_at)
		VALUES ($1, $2, $3, $4, $5::numeric, $6, $7, $8, $9, $10, $11)
	`, t.ID, t.UserID, t.Type, t.Category, t.Amount.String(), t.Description,
		t.Date, t.Source, breakdown, t.Status, t.CreatedAt)
	return mapErr(err, "insert transaction", msgTransactionNotFound, msgTransactionExists)
}

// List returns every transaction newest first with its owner populated.
func (r *TransactionRepository) List(ctx context.Context) ([]entity.Transaction, error) {
	return r.query(ctx, "list transactions", selectTransactions+` ORDER BY t.created_at DESC`)
}

func (r *TransactionRepository) ListByUser(ctx context.Context, userID string) ([]entity.Transaction, error) {
	return r.query(ctx, "list user transactions", selectTransactions+` WHERE t.user_id = $1 ORDER BY t.created_at DESC`, userID)
}

func (r *TransactionRepository) query(ctx context.Context, op, sql string, args ...any) ([]entity.Transaction, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, mapErr(err, op, msgTransactionNotFound, msgTransactionExists)
	}
	out, err := pgx.CollectRows(rows, scanTransaction)
	if err != nil {
		return nil, mapErr(err, op, msgTransactionNotFound, msgTransactionExists)
	}
	return out, nil
}

func scanTransaction(row pgx.CollectableRow) (entity.Transaction, error) {
	var (
		t                          entity.Transaction
		amount                     string
		breakdown                  []byte
		ownerID, ownerName, ownerE *string
	)
	err := row.Scan(&t.ID, &t.UserID, &t.Type, &t.Category, &amount, &t.Description,
		&t.Date, &t.Source, &breakdown, &t.Status, &t.CreatedAt,
		&ownerID, &ownerName, &ownerE)
	if err != nil {
		return t, err
	}
	t.Amount, _ = entity.ParseAmount(amount)
	if len(breakdown) > 0 {
		// a malformed breakdown is dropped rather than failing the listing
		_ = json.Unmarshal(breakdown, &t.Categories)
	}
	t.User = ownerRef(ownerID, ownerName, ownerE)
	return t, nil
}

func ownerRef(id, name, email *string) *entity.UserRef {
	if id == nil {
		return nil
	}
	ref := &entity.UserRef{ID: *id}
	if name != nil {
		ref.Name = *name
	}
	if email != nil {
		ref.Email = *email
	}
	return ref
}

func (r *TransactionRepository) Delete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return mapErr(err, "delete transaction", msgTransactionNotFound, msgTransactionExists)
	}
	if res.RowsAffected() == 0 {
		return apperr.NotFound(msgTransactionNotFound)
	}
	return nil
}

func (r *TransactionRepository) DeleteByUser(ctx context.Context, userID string) (int64, error) {
	res, err := r.pool.Exec(ctx, `DELETE FROM transactions WHERE user_id = $1`, userID)
	if err != nil {
		return 0, mapErr(err, "delete user transactions", msgTransactionNotFound, msgTransactionExists)
	}
	return res.RowsAffected(), nil
}

var _ repository.TransactionRepository = (*TransactionRepository)(nil)
