package memory

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tpremraj1312/ledger-admin/internal/domain/apperr"
	"github.com/tpremraj1312/ledger-admin/internal/domain/entity"
)

func TestUsersUniqueEmailAndNoPassword(t *testing.T) {
	ctx := context.Background()
	repos := New().Repositories()

	u := &entity.User{Email: "a@x.com", Name: "Alice", Password: "hash"}
	if err := repos.Users.Create(ctx, u); err != nil {
		t.Fatalf("create: %v", err)
	}
	if u.ID == "" || u.CreatedAt.IsZero() {
		t.Fatalf("create should assign id and timestamp: %+v", u)
	}
	err := repos.Users.Create(ctx, &entity.User{Email: "A@X.com"})
	if !apperr.Is(err, apperr.KindConflict) {
		t.Fatalf("duplicate email err = %v", err)
	}
	list, err := repos.Users.List(ctx)
	if err != nil || len(list) != 1 {
		t.Fatalf("list = %v, %v", list, err)
	}
	if list[0].Password != "" {
		t.Fatalf("password leaked from List")
	}
	got, err := repos.Users.GetByID(ctx, u.ID)
	if err != nil || got.Password != "" {
		t.Fatalf("get = %+v, %v", got, err)
	}
}

func TestDeleteMissingIsNotFound(t *testing.T) {
	ctx := context.Background()
	repos := New().Repositories()
	if err := repos.Users.Delete(ctx, "nope"); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("user delete err = %v", err)
	}
	if err := repos.Transactions.Delete(ctx, "nope"); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("transaction delete err = %v", err)
	}
	if err := repos.Budgets.Delete(ctx, "nope"); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("budget delete err = %v", err)
	}
	if _, err := repos.Admins.GetByEmail(ctx, "nope@x.com"); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("admin lookup err = %v", err)
	}
}

func TestBudgetUniquenessTuple(t *testing.T) {
	ctx := context.Background()
	repos := New().Repositories()
	b := &entity.Budget{UserID: "u1", Category: "Food", Amount: decimal.NewFromInt(10)}
	if err := repos.Budgets.Create(ctx, b); err != nil {
		t.Fatalf("create: %v", err)
	}
	if b.Period != entity.Monthly || b.Type != entity.BudgetExpense {
		t.Fatalf("defaults not applied: %+v", b)
	}
	dup := &entity.Budget{UserID: "u1", Category: "Food", Period: entity.Monthly, Type: entity.BudgetExpense}
	if err := repos.Budgets.Create(ctx, dup); !apperr.Is(err, apperr.KindConflict) {
		t.Fatalf("duplicate tuple err = %v", err)
	}
	weekly := &entity.Budget{UserID: "u1", Category: "Food", Period: entity.Weekly}
	if err := repos.Budgets.Create(ctx, weekly); err != nil {
		t.Fatalf("different period should be allowed: %v", err)
	}
}

func TestListsPopulateOwnerNewestFirst(t *testing.T) {
	ctx := context.Background()
	repos := New().Repositories()
	u := &entity.User{Email: "a@x.com", Name: "Alice"}
	_ = repos.Users.Create(ctx, u)

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	_ = repos.Transactions.Create(ctx, &entity.Transaction{ID: "old", UserID: u.ID, Amount: decimal.NewFromInt(1), CreatedAt: base})
	_ = repos.Transactions.Create(ctx, &entity.Transaction{ID: "new", UserID: u.ID, Amount: decimal.NewFromInt(2), CreatedAt: base.Add(time.Hour)})
	_ = repos.Transactions.Create(ctx, &entity.Transaction{ID: "orphan", UserID: "gone", Amount: decimal.NewFromInt(3), CreatedAt: base.Add(-time.Hour)})

	list, err := repos.Transactions.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 3 || list[0].ID != "new" || list[2].ID != "orphan" {
		t.Fatalf("order = %v", list)
	}
	if list[0].User == nil || list[0].User.Email != "a@x.com" {
		t.Fatalf("owner not populated: %+v", list[0].User)
	}
	if list[2].User != nil {
		t.Fatalf("orphan should have no owner")
	}

	mine, _ := repos.Transactions.ListByUser(ctx, u.ID)
	if len(mine) != 2 {
		t.Fatalf("by user = %d", len(mine))
	}
}

func TestDeleteByUser(t *testing.T) {
	ctx := context.Background()
	repos := New().Repositories()
	for _, id := range []string{"t1", "t2", "t3"} {
		_ = repos.Transactions.Create(ctx, &entity.Transaction{ID: id, UserID: "u1", Amount: decimal.NewFromInt(1)})
	}
	_ = repos.Transactions.Create(ctx, &entity.Transaction{ID: "t4", UserID: "u2", Amount: decimal.NewFromInt(1)})

	n, err := repos.Transactions.DeleteByUser(ctx, "u1")
	if err != nil || n != 3 {
		t.Fatalf("deleted = %d, %v", n, err)
	}
	rest, _ := repos.Transactions.List(ctx)
	if len(rest) != 1 || rest[0].ID != "t4" {
		t.Fatalf("remaining = %v", rest)
	}
}

func TestCancelledContextIsTransient(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := New().Repositories().Users.List(ctx); !apperr.Is(err, apperr.KindTransient) {
		t.Fatalf("err = %v", err)
	}
}
