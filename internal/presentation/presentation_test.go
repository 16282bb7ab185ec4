package presentation

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tpremraj1312/ledger-admin/internal/aggregation"
	"github.com/tpremraj1312/ledger-admin/internal/domain/entity"
)

func TestReduceToggleSort(t *testing.T) {
	s := DefaultState()
	s = Reduce(s, Action{Kind: ActionToggleSort, Value: "total"})
	if s.Sort.Key != aggregation.SortByTotal || s.Sort.Dir != aggregation.Asc {
		t.Fatalf("new key should reset to asc, got %+v", s.Sort)
	}
	s = Reduce(s, Action{Kind: ActionToggleSort, Value: "total"})
	if s.Sort.Dir != aggregation.Desc {
		t.Fatalf("same key should flip, got %+v", s.Sort)
	}
	s = Reduce(s, Action{Kind: ActionToggleSort, Value: "email"})
	if s.Sort.Key != aggregation.SortByEmail || s.Sort.Dir != aggregation.Asc {
		t.Fatalf("switching key should reset to asc, got %+v", s.Sort)
	}
	same := Reduce(s, Action{Kind: ActionToggleSort, Value: "bogus"})
	if same != s {
		t.Fatalf("unknown key should be ignored")
	}
}

func TestReduceDoesNotMutate(t *testing.T) {
	s := DefaultState()
	_ = Reduce(s, Action{Kind: ActionSetSearch, Value: "alice"})
	if s.Search != "" {
		t.Fatalf("Reduce modified its input")
	}
}

func TestReduceExpandAndGroupDeleted(t *testing.T) {
	s := Reduce(DefaultState(), Action{Kind: ActionToggleExpand, Value: "a@x.com"})
	if s.Expanded != "a@x.com" {
		t.Fatalf("expanded = %q", s.Expanded)
	}
	if got := Reduce(s, Action{Kind: ActionGroupDeleted, Value: "b@x.com"}); got.Expanded != "a@x.com" {
		t.Fatalf("deleting another group collapsed the row")
	}
	if got := Reduce(s, Action{Kind: ActionGroupDeleted, Value: "a@x.com"}); got.Expanded != "" {
		t.Fatalf("deleting the expanded group should collapse it")
	}
	if got := Reduce(s, Action{Kind: ActionToggleExpand, Value: "a@x.com"}); got.Expanded != "" {
		t.Fatalf("toggling the expanded row should collapse it")
	}
}

func TestReduceDetailSort(t *testing.T) {
	s := Reduce(DefaultState(), Action{Kind: ActionToggleDetailSort, Value: "amount"})
	s = Reduce(s, Action{Kind: ActionToggleDetailSort, Value: "amount"})
	if s.DetailSort.Key != DetailAmount || s.DetailSort.Dir != aggregation.Desc {
		t.Fatalf("detail sort = %+v", s.DetailSort)
	}
}

func ts(d int) time.Time { return time.Date(2024, 5, d, 9, 0, 0, 0, time.UTC) }

func fixture() ([]entity.User, []entity.Transaction, []entity.Budget) {
	users := []entity.User{
		{ID: "u1", Name: "Alice", Email: "a@x.com", CreatedAt: ts(1)},
		{ID: "u2", Name: "Bob", Email: "b@x.com", CreatedAt: ts(3)},
	}
	txns := []entity.Transaction{
		{ID: "t1", UserID: "u1", Amount: decimal.NewFromInt(10), Category: entity.CategoryGroceries, Date: ts(2), CreatedAt: ts(2)},
		{ID: "t2", UserID: "u1", Amount: decimal.NewFromInt(30), Category: entity.CategoryClothing, Date: ts(4), CreatedAt: ts(4)},
		{ID: "t3", UserID: "u2", Amount: decimal.NewFromInt(5), Category: entity.CategoryGroceries, Date: ts(4), CreatedAt: ts(4)},
		{ID: "t4", UserID: "gone", Amount: decimal.NewFromInt(1), Category: entity.CategoryOther, Date: ts(5), CreatedAt: ts(5)},
	}
	budgets := []entity.Budget{
		{ID: "b1", UserID: "u1", Category: "Food", Amount: decimal.NewFromInt(100), Period: entity.Monthly, CreatedAt: ts(1)},
		{ID: "b2", UserID: "u2", Category: "Rent", Amount: decimal.NewFromInt(500), Period: entity.Monthly, CreatedAt: ts(3)},
		{ID: "b3", UserID: "u1", Category: "Food", Amount: decimal.NewFromInt(20), Period: entity.Weekly, CreatedAt: ts(3)},
	}
	return users, txns, budgets
}

func TestSummaryTableExpandedRowSortsRecords(t *testing.T) {
	users, txns, _ := fixture()
	groups := aggregation.GroupByUser(txns, aggregation.IndexUsers(users))

	s := DefaultState()
	s = Reduce(s, Action{Kind: ActionToggleExpand, Value: "a@x.com"})
	s = Reduce(s, Action{Kind: ActionToggleDetailSort, Value: "amount"})
	s = Reduce(s, Action{Kind: ActionToggleDetailSort, Value: "amount"})

	rows := SummaryTable(groups.Summaries(), s, CompareTransactions)
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(rows))
	}
	// name asc: Alice, Bob, Unknown
	if rows[0].Email != "a@x.com" || rows[2].Email != entity.UnknownOwner {
		t.Fatalf("row order = %s, %s, %s", rows[0].Email, rows[1].Email, rows[2].Email)
	}
	if !rows[0].Expanded || len(rows[0].Records) != 2 || rows[0].Records[0].ID != "t2" {
		t.Fatalf("expanded row = %+v", rows[0])
	}
	if rows[1].Expanded || rows[1].Records != nil {
		t.Fatalf("collapsed row carries records")
	}
}

func TestSummaryTableSearch(t *testing.T) {
	users, txns, _ := fixture()
	groups := aggregation.GroupByUser(txns, aggregation.IndexUsers(users))
	s := Reduce(DefaultState(), Action{Kind: ActionSetSearch, Value: "BOB"})
	rows := SummaryTable(groups.Summaries(), s, CompareTransactions)
	if len(rows) != 1 || rows[0].Email != "b@x.com" {
		t.Fatalf("rows = %+v", rows)
	}
}

func TestCompareBudgetsPeriodOrder(t *testing.T) {
	a := entity.Budget{Period: entity.Weekly}
	b := entity.Budget{Period: entity.Yearly}
	if CompareBudgets(a, b, DetailPeriod) >= 0 {
		t.Fatalf("Weekly should sort before Yearly")
	}
}

func chartByID(t *testing.T, charts []Chart, id string) Chart {
	t.Helper()
	for _, c := range charts {
		if c.ID == id {
			return c
		}
	}
	t.Fatalf("chart %q missing", id)
	return Chart{}
}

func checkShape(t *testing.T, charts []Chart) {
	t.Helper()
	for _, c := range charts {
		for _, ds := range c.Datasets {
			if len(ds.Data) != len(c.Labels) {
				t.Fatalf("chart %s dataset %s: %d values for %d labels", c.ID, ds.Label, len(ds.Data), len(c.Labels))
			}
		}
	}
}

func TestHomeCharts(t *testing.T) {
	users, txns, budgets := fixture()
	charts := HomeCharts(users, txns, budgets)
	checkShape(t, charts)

	dist := chartByID(t, charts, "data_distribution")
	if !dist.Datasets[0].Data[1].Equal(decimal.NewFromInt(4)) {
		t.Fatalf("distribution = %v", dist.Datasets[0].Data)
	}
	top := chartByID(t, charts, "top_users")
	if top.Labels[0] != "a@x.com" || !top.Datasets[0].Data[0].Equal(decimal.NewFromInt(40)) {
		t.Fatalf("top users = %v %v", top.Labels, top.Datasets[0].Data)
	}
	growth := chartByID(t, charts, "user_growth")
	if len(growth.Labels) != 3 || !growth.Datasets[0].Data[2].Equal(decimal.NewFromInt(2)) {
		t.Fatalf("growth = %v %v", growth.Labels, growth.Datasets[0].Data)
	}
	daily := chartByID(t, charts, "daily_activity")
	if daily.Labels[1] != "2024-05-04" || !daily.Datasets[0].Data[1].Equal(decimal.NewFromInt(2)) {
		t.Fatalf("daily = %v %v", daily.Labels, daily.Datasets[0].Data)
	}
}

func TestBudgetChartsTrendPerCategory(t *testing.T) {
	users, _, budgets := fixture()
	groups := aggregation.GroupByUser(budgets, aggregation.IndexUsers(users))
	charts := BudgetCharts(budgets, groups.Summaries())
	checkShape(t, charts)

	trend := chartByID(t, charts, "budget_trend")
	if len(trend.Datasets) != 2 || trend.Datasets[0].Label != "Food" {
		t.Fatalf("trend datasets = %+v", trend.Datasets)
	}
	food := trend.Datasets[0].Data
	if !food[0].Equal(decimal.NewFromInt(100)) || !food[1].Equal(decimal.NewFromInt(20)) {
		t.Fatalf("food trend = %v", food)
	}
}

func TestTransactionCharts(t *testing.T) {
	users, txns, _ := fixture()
	groups := aggregation.GroupByUser(txns, aggregation.IndexUsers(users))
	charts := TransactionCharts(txns, groups.Summaries())
	checkShape(t, charts)

	cats := chartByID(t, charts, "transaction_categories")
	if cats.Labels[0] != string(entity.CategoryGroceries) || !cats.Datasets[0].Data[0].Equal(decimal.NewFromInt(15)) {
		t.Fatalf("categories = %v %v", cats.Labels, cats.Datasets[0].Data)
	}
}
