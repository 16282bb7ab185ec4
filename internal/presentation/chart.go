package presentation

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tpremraj1312/ledger-admin/internal/aggregation"
	"github.com/tpremraj1312/ledger-admin/internal/domain/entity"
)

type ChartType string

const (
	ChartPie      ChartType = "pie"
	ChartDoughnut ChartType = "doughnut"
	ChartBar      ChartType = "bar"
	ChartLine     ChartType = "line"
)

type Dataset struct {
	Label string            `json:"label"`
	Data  []decimal.Decimal `json:"data"`
}

// Chart is a precomputed series. Every dataset has one value per label.
type Chart struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Type     ChartType `json:"type"`
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`
}

const topUsers = 5

func count(n int) decimal.Decimal { return decimal.NewFromInt(int64(n)) }

func rankedChart(id, title string, typ ChartType, label string, in []aggregation.Ranked) Chart {
	c := Chart{ID: id, Title: title, Type: typ, Labels: make([]string, 0, len(in))}
	data := make([]decimal.Decimal, 0, len(in))
	for _, r := range in {
		c.Labels = append(c.Labels, r.Label)
		data = append(data, r.Value)
	}
	c.Datasets = []Dataset{{Label: label, Data: data}}
	return c
}

func labelsOf(in []aggregation.Bucket) []string {
	out := make([]string, len(in))
	for i, b := range in {
		out[i] = b.Label
	}
	return out
}

func countsOf(in []aggregation.Bucket) []decimal.Decimal {
	out := make([]decimal.Decimal, len(in))
	for i, b := range in {
		out[i] = count(b.Count)
	}
	return out
}

func sumsOf(in []aggregation.Bucket) []decimal.Decimal {
	out := make([]decimal.Decimal, len(in))
	for i, b := range in {
		out[i] = b.Sum
	}
	return out
}

func categoryLabel(c string) string {
	if c == "" {
		return entity.UnknownOwner
	}
	return c
}

// HomeCharts builds the overview charts from the three raw collections.
func HomeCharts(users []entity.User, txns []entity.Transaction, budgets []entity.Budget) []Chart {
	index := aggregation.IndexUsers(users)
	email := func(r aggregation.Record) string {
		_, e := index.Resolve(r)
		return e
	}

	distribution := Chart{
		ID: "data_distribution", Title: "Data Distribution", Type: ChartPie,
		Labels: []string{"Users", "Transactions", "Budgets"},
		Datasets: []Dataset{{
			Label: "Records",
			Data:  []decimal.Decimal{count(len(users)), count(len(txns)), count(len(budgets))},
		}},
	}

	perUser := make(map[string]int, len(users))
	for _, t := range txns {
		perUser[t.UserID]++
	}
	activity := Chart{ID: "transactions_per_user", Title: "User Activity", Type: ChartBar}
	activityData := make([]decimal.Decimal, 0, len(users))
	for _, u := range users {
		label := u.Email
		if label == "" {
			label = entity.UnknownOwner
		}
		activity.Labels = append(activity.Labels, label)
		activityData = append(activityData, count(perUser[u.ID]))
	}
	activity.Datasets = []Dataset{{Label: "Transactions per User", Data: activityData}}

	top := aggregation.TopN(txns, func(t entity.Transaction) string { return email(t) }, entity.Transaction.Value, topUsers)

	days := aggregation.BucketByDate(txns, func(t entity.Transaction) time.Time { return t.Date }, entity.Transaction.Value)
	daily := Chart{
		ID: "daily_activity", Title: "Daily Activity", Type: ChartLine,
		Labels: labelsOf(days),
		Datasets: []Dataset{
			{Label: "Transactions", Data: countsOf(days)},
			{Label: "Amount", Data: sumsOf(days)},
		},
	}

	budgetCats := aggregation.TopN(budgets, func(b entity.Budget) string { return categoryLabel(b.Category) }, entity.Budget.Value, topUsers)

	signups := aggregation.FillGaps(aggregation.BucketByDate(users, func(u entity.User) time.Time { return u.CreatedAt }, nil))
	growth := aggregation.Cumulative(signups)

	return []Chart{
		distribution,
		activity,
		rankedChart("top_users", "Top Users by Amount", ChartBar, "Amount", top),
		daily,
		rankedChart("top_budget_categories", "Top Budget Categories", ChartBar, "Budgeted", budgetCats),
		{
			ID: "user_growth", Title: "User Growth", Type: ChartLine,
			Labels:   labelsOf(growth),
			Datasets: []Dataset{{Label: "Users", Data: countsOf(growth)}},
		},
		{
			ID: "signups_per_day", Title: "Sign-ups per Day", Type: ChartBar,
			Labels:   labelsOf(signups),
			Datasets: []Dataset{{Label: "Sign-ups", Data: countsOf(signups)}},
		},
	}
}

func totalsChart[R aggregation.Record](id, title, label string, summaries []aggregation.UserSummary[R]) Chart {
	ranked := make([]aggregation.Ranked, 0, len(summaries))
	for _, s := range summaries {
		ranked = append(ranked, aggregation.Ranked{Label: s.Email, Value: s.Total})
	}
	return rankedChart(id, title, ChartBar, label, ranked)
}

// TransactionCharts builds the charts of the transactions page.
func TransactionCharts(txns []entity.Transaction, summaries []aggregation.UserSummary[entity.Transaction]) []Chart {
	cats := aggregation.SumBy(txns, func(t entity.Transaction) string { return categoryLabel(string(t.Category)) }, entity.Transaction.Value)
	trend := aggregation.BucketByDate(txns, func(t entity.Transaction) time.Time { return t.Date }, entity.Transaction.Value)
	return []Chart{
		rankedChart("transaction_categories", "Category Breakdown", ChartPie, "Amount", cats),
		{
			ID: "transaction_trend", Title: "Transaction Amounts Over Time", Type: ChartLine,
			Labels:   labelsOf(trend),
			Datasets: []Dataset{{Label: "Amount", Data: sumsOf(trend)}},
		},
		totalsChart("transaction_totals", "Total Expenses per User", "Total Expenses", summaries),
	}
}

// BudgetCharts builds the charts of the budgets page. The trend chart has one
// dataset per category over the days budgets were created.
func BudgetCharts(budgets []entity.Budget, summaries []aggregation.UserSummary[entity.Budget]) []Chart {
	cats := aggregation.SumBy(budgets, func(b entity.Budget) string { return categoryLabel(b.Category) }, entity.Budget.Value)
	created := func(b entity.Budget) time.Time { return b.CreatedAt }
	days := aggregation.BucketByDate(budgets, created, nil)

	pos := make(map[string]int, len(days))
	for i, d := range days {
		pos[d.Label] = i
	}
	trend := Chart{ID: "budget_trend", Title: "Budgets Over Time", Type: ChartLine, Labels: labelsOf(days)}
	for _, cat := range cats {
		data := make([]decimal.Decimal, len(days))
		for i := range data {
			data[i] = decimal.Zero
		}
		for _, b := range budgets {
			if categoryLabel(b.Category) != cat.Label || b.CreatedAt.IsZero() {
				continue
			}
			i := pos[b.CreatedAt.Format(aggregation.DayLayout)]
			if b.Amount.IsPositive() {
				data[i] = data[i].Add(b.Amount)
			}
		}
		trend.Datasets = append(trend.Datasets, Dataset{Label: cat.Label, Data: data})
	}

	return []Chart{
		rankedChart("budget_categories", "Category Breakdown", ChartDoughnut, "Amount", cats),
		trend,
		totalsChart("budget_totals", "Total Budget per User", "Total Budget", summaries),
	}
}
