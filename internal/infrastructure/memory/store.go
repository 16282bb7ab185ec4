// Package memory is a thread-safe in-process record store. It enforces the
// same uniqueness rules as the Postgres driver and is used for local runs and
// handler tests.
package memory

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tpremraj1312/ledger-admin/internal/domain/apperr"
	"github.com/tpremraj1312/ledger-admin/internal/domain/entity"
	"github.com/tpremraj1312/ledger-admin/internal/domain/repository"
)

type Store struct {
	mu           sync.RWMutex
	users        map[string]entity.User
	admins       map[string]entity.Admin // keyed by lower-cased email
	transactions map[string]entity.Transaction
	budgets      map[string]entity.Budget
	now          func() time.Time
}

func New() *Store {
	return &Store{
		users:        make(map[string]entity.User),
		admins:       make(map[string]entity.Admin),
		transactions: make(map[string]entity.Transaction),
		budgets:      make(map[string]entity.Budget),
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// Repositories exposes the store through the gateway ports.
func (s *Store) Repositories() repository.Store {
	return repository.Store{
		Users:        userRepo{s},
		Transactions: transactionRepo{s},
		Budgets:      budgetRepo{s},
		Admins:       adminRepo{s},
	}
}

func checkCtx(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return apperr.Transient("store unavailable", err)
	}
	return nil
}

func (s *Store) ref(userID string) *entity.UserRef {
	u, ok := s.users[userID]
	if !ok {
		return nil
	}
	return u.Ref()
}

type userRepo struct{ s *Store }

func (r userRepo) Create(ctx context.Context, u *entity.User) error {
	if err := checkCtx(ctx); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return apperr.Conflict("User already exists")
		}
	}
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = r.s.now()
	}
	r.s.users[u.ID] = *u
	return nil
}

func (r userRepo) List(ctx context.Context) ([]entity.User, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]entity.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		u.Password = ""
		out = append(out, u)
	}
	slices.SortFunc(out, func(a, b entity.User) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return out, nil
}

func (r userRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, apperr.NotFound("User not found")
	}
	u.Password = ""
	return &u, nil
}

func (r userRepo) Delete(ctx context.Context, id string) error {
	if err := checkCtx(ctx); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[id]; !ok {
		return apperr.NotFound("User not found")
	}
	delete(r.s.users, id)
	return nil
}

type adminRepo struct{ s *Store }

func (r adminRepo) Create(ctx context.Context, a *entity.Admin) error {
	if err := checkCtx(ctx); err != nil {
		return err
	}
	key := strings.ToLower(a.Email)
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.admins[key]; ok {
		return apperr.Conflict("Admin already exists")
	}
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = r.s.now()
	}
	r.s.admins[key] = *a
	return nil
}

func (r adminRepo) GetByEmail(ctx context.Context, email string) (*entity.Admin, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	a, ok := r.s.admins[strings.ToLower(email)]
	if !ok {
		return nil, apperr.NotFound("Admin not found")
	}
	return &a, nil
}

var (
	_ repository.UserRepository  = userRepo{}
	_ repository.AdminRepository = adminRepo{}
)
