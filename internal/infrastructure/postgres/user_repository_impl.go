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
	msgUserNotFound  = "User not found"
	msgUserExists    = "User already exists"
	msgAdminNotFound = "Admin not found"
	msgAdminExists   = "Admin already exists"
)

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO users (id, email, name, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, u.ID, u.Email, u.Name, u.Password, u.CreatedAt)
	return mapErr(err, "insert user", msgUserNotFound, msgUserExists)
}

// List never selects the password hash.
func (r *UserRepository) List(ctx context.Context) ([]entity.User, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, email, name, created_at
		FROM users
		ORDER BY created_at
	`)
	if err != nil {
		return nil, mapErr(err, "list users", msgUserNotFound, msgUserExists)
	}
	users, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.User, error) {
		var u entity.User
		err := row.Scan(&u.ID, &u.Email, &u.Name, &u.CreatedAt)
		return u, err
	})
	if err != nil {
		return nil, mapErr(err, "scan users", msgUserNotFound, msgUserExists)
	}
	return users, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	u := &entity.User{}
	row := r.pool.QueryRow(ctx, `
		SELECT id, email, name, created_at
		FROM users
		WHERE id = $1
	`, id)
	if err := row.Scan(&u.ID, &u.Email, &u.Name, &u.CreatedAt); err != nil {
		return nil, mapErr(err, "get user", msgUserNotFound, msgUserExists)
	}
	return u, nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return mapErr(err, "delete user", msgUserNotFound, msgUserExists)
	}
	if res.RowsAffected() == 0 {
		return apperr.NotFound(msgUserNotFound)
	}
	return nil
}

type AdminRepository struct {
	pool *pgxpool.Pool
}

func NewAdminRepository(pool *pgxpool.Pool) *AdminRepository {
	return &AdminRepository{pool: pool}
}

func (r *AdminRepository) Create(ctx context.Context, a *entity.Admin) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO admins (id, email, password_hash, created_at)
		VALUES ($1, $2, $3, $4)
	`, a.ID, a.Email, a.Password, a.CreatedAt)
	return mapErr(err, "insert admin", msgAdminNotFound, msgAdminExists)
}

func (r *AdminRepository) GetByEmail(ctx context.Context, email string) (*entity.Admin, error) {
	a := &entity.Admin{}
	row := r.pool.QueryRow(ctx, `
		SELECT id, email, password_hash, created_at
		FROM admins
		WHERE email = $1
	`, email)
	if err := row.Scan(&a.ID, &a.Email, &a.Password, &a.CreatedAt); err != nil {
		return nil, mapErr(err, "get admin", msgAdminNotFound, msgAdminExists)
	}
	return a, nil
}

var (
	_ repository.UserRepository  = (*UserRepository)(nil)
	_ repository.AdminRepository = (*AdminRepository)(nil)
)
