package main

import (
	"context"
	_ "embed"
	"encoding/json"
	"log"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/tpremraj1312/ledger-admin/config"
	"github.com/tpremraj1312/ledger-admin/internal/domain/apperr"
	"github.com/tpremraj1312/ledger-admin/internal/domain/entity"
	repo "github.com/tpremraj1312/ledger-admin/internal/domain/repository"
	pginfra "github.com/tpremraj1312/ledger-admin/internal/infrastructure/postgres"
	"github.com/tpremraj1312/ledger-admin/internal/infrastructure/search"
	"github.com/tpremraj1312/ledger-admin/pkg/helpers"
	"github.com/tpremraj1312/ledger-admin/pkg/validation"
)

//go:embed fixtures/sample.json
var sampleJSON []byte

type fixture struct {
	Users        []userFixture        `json:"users" validate:"dive"`
	Transactions []transactionFixture `json:"transactions" validate:"dive"`
	Budgets      []budgetFixture      `json:"budgets" validate:"dive"`
}

type userFixture struct {
	Name     string `json:"name"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,pwd"`
}

type transactionFixture struct {
	UserEmail   string                     `json:"user_email" validate:"required,email"`
	Type        string                     `json:"type" validate:"required,oneof=debit credit"`
	Category    string                     `json:"category" validate:"required,category"`
	Amount      string                     `json:"amount" validate:"required,amount"`
	Description string                     `json:"description"`
	Date        time.Time                  `json:"date" validate:"required"`
	Source      string                     `json:"source" validate:"omitempty,oneof=manual billscan"`
	Categories  []entity.CategoryBreakdown `json:"categories"`
}

type budgetFixture struct {
	UserEmail string `json:"user_email" validate:"required,email"`
	Category  string `json:"category" validate:"required"`
	Type      string `json:"type" validate:"omitempty,oneof=expense income"`
	Amount    string `json:"amount" validate:"required,amount"`
	Period    string `json:"period" validate:"omitempty,period"`
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env, cfg.LogLevel)
	ctx := context.Background()

	var fx fixture
	if err := json.Unmarshal(sampleJSON, &fx); err != nil {
		log.Fatalf("failed to parse fixture: %v", err)
	}
	v := validator.New()
	validation.Register(v)
	if err := v.Struct(fx); err != nil {
		log.Fatalf("invalid fixture: %v", validation.ToDetails(err))
	}

	pool, err := pginfra.NewPool(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()
	if err := pginfra.RunMigrations(cfg.PostgresDSN(), logger); err != nil {
		log.Fatalf("migration failed: %v", err)
	}
	store := pginfra.NewStore(pool)

	adminEmail := getenv("SEED_ADMIN_EMAIL", "admin@ledger.local")
	adminPassword := getenv("SEED_ADMIN_PASSWORD", "admin12345")
	seedAdmin(ctx, store, adminEmail, adminPassword, logger)

	users := seedUsers(ctx, store, fx.Users, logger)
	seedTransactions(ctx, store, users, fx.Transactions, logger)
	seedBudgets(ctx, store, users, fx.Budgets, logger)

	if addrs := cfg.ESAddrs(); len(addrs) > 0 {
		es, err := helpers.NewESClient(addrs, cfg.ElasticsearchUser, cfg.ElasticsearchPass)
		if err != nil {
			helpers.LogError(logger, "elasticsearch client init failed", err, nil)
			return
		}
		all, err := store.Users.List(ctx)
		if err != nil {
			log.Fatalf("list users: %v", err)
		}
		n, err := search.NewUserIndex(es, cfg.ESUsersIndex, logger).Reindex(ctx, all)
		if err != nil {
			helpers.LogError(logger, "user index rebuild failed", err, nil)
			return
		}
		helpers.LogInfo(logger, "user index rebuilt", logrus.Fields{"indexed": n})
	}
}

func seedAdmin(ctx context.Context, store repo.Store, email, password string, logger logrus.FieldLogger) {
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}
	err = store.Admins.Create(ctx, &entity.Admin{Email: email, Password: hash})
	switch {
	case apperr.Is(err, apperr.KindConflict):
		logger.WithField("email", email).Info("admin already seeded")
	case err != nil:
		log.Fatalf("failed to seed admin: %v", err)
	default:
		logger.WithField("email", email).Info("seeded admin")
	}
}

// seedUsers creates the fixture users and returns every known user by email.
func seedUsers(ctx context.Context, store repo.Store, in []userFixture, logger logrus.FieldLogger) map[string]entity.User {
	for _, f := range in {
		hash, err := helpers.HashPassword(f.Password)
		if err != nil {
			log.Fatalf("failed to hash password: %v", err)
		}
		u := &entity.User{Email: f.Email, Name: f.Name, Password: hash}
		if err := store.Users.Create(ctx, u); err != nil && !apperr.Is(err, apperr.KindConflict) {
			log.Fatalf("failed to seed user %s: %v", f.Email, err)
		}
	}
	all, err := store.Users.List(ctx)
	if err != nil {
		log.Fatalf("list users: %v", err)
	}
	byEmail := make(map[string]entity.User, len(all))
	for _, u := range all {
		byEmail[u.Email] = u
	}
	logger.WithField("users", len(byEmail)).Info("users ready")
	return byEmail
}

func seedTransactions(ctx context.Context, store repo.Store, users map[string]entity.User, in []transactionFixture, logger logrus.FieldLogger) {
	existing, err := store.Transactions.List(ctx)
	if err != nil {
		log.Fatalf("list transactions: %v", err)
	}
	seeded := make(map[string]bool, len(existing))
	for _, t := range existing {
		seeded[t.UserID] = true
	}

	created := 0
	for _, f := range in {
		u, ok := users[f.UserEmail]
		if !ok {
			logger.WithField("email", f.UserEmail).Warn("skipping transaction for unknown user")
			continue
		}
		// Re-running the seed must not duplicate a user's history.
		if seeded[u.ID] {
			continue
		}
		src := entity.Source(f.Source)
		if src == "" {
			src = entity.SourceManual
		}
		t := &entity.Transaction{
			UserID:      u.ID,
			Type:        entity.TransactionType(f.Type),
			Category:    entity.Category(f.Category),
			Amount:      decimal.RequireFromString(f.Amount),
			Description: f.Description,
			Date:        f.Date,
			Source:      src,
			Categories:  f.Categories,
			Status:      entity.StatusCompleted,
		}
		if err := store.Transactions.Create(ctx, t); err != nil {
			log.Fatalf("failed to seed transaction: %v", err)
		}
		created++
	}
	logger.WithField("transactions", created).Info("seeded transactions")
}

func seedBudgets(ctx context.Context, store repo.Store, users map[string]entity.User, in []budgetFixture, logger logrus.FieldLogger) {
	created := 0
	for _, f := range in {
		u, ok := users[f.UserEmail]
		if !ok {
			logger.WithField("email", f.UserEmail).Warn("skipping budget for unknown user")
			continue
		}
		b := &entity.Budget{
			UserID:   u.ID,
			Category: f.Category,
			Type:     entity.BudgetType(f.Type),
			Amount:   decimal.RequireFromString(f.Amount),
			Period:   entity.Period(f.Period),
		}
		err := store.Budgets.Create(ctx, b)
		if apperr.Is(err, apperr.KindConflict) {
			continue
		}
		if err != nil {
			log.Fatalf("failed to seed budget: %v", err)
		}
		created++
	}
	logger.WithField("budgets", created).Info("seeded budgets")
}
