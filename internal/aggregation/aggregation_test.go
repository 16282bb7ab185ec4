package aggregation

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tpremraj1312/ledger-admin/internal/domain/entity"
)

func day(d int) time.Time { return time.Date(2024, 3, d, 10, 0, 0, 0, time.UTC) }

func amt(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func txn(id, userID, amount string, created time.Time) entity.Transaction {
	return entity.Transaction{
		ID:        id,
		UserID:    userID,
		Amount:    amt(amount),
		Category:  entity.CategoryGroceries,
		Date:      created,
		CreatedAt: created,
	}
}

var sampleUsers = []entity.User{
	{ID: "u1", Name: "Alice", Email: "a@x.com", CreatedAt: day(1)},
	{ID: "u2", Name: "bob", Email: "B@x.com", CreatedAt: day(2)},
	{ID: "u3", Name: "Carol", Email: "c@x.com", CreatedAt: day(3)},
}

func TestGroupByUserScenario(t *testing.T) {
	txns := []entity.Transaction{
		txn("t1", "u1", "10", day(1)),
		txn("t2", "u1", "20", day(2)),
		txn("t3", "u1", "30", day(3)),
	}
	g := GroupByUser(txns, IndexUsers(sampleUsers))
	if g.Len() != 1 {
		t.Fatalf("groups = %d, want 1", g.Len())
	}
	s, ok := g.Get("a@x.com")
	if !ok {
		t.Fatalf("missing group for a@x.com")
	}
	if !s.Total.Equal(amt("60")) {
		t.Fatalf("total = %s, want 60", s.Total)
	}
	if len(s.Records) != 3 {
		t.Fatalf("records = %d, want 3", len(s.Records))
	}
	if !s.CreatedAt.Equal(day(1)) {
		t.Fatalf("created = %v, want earliest", s.CreatedAt)
	}
}

func TestGroupByUserConservesGrandTotal(t *testing.T) {
	txns := []entity.Transaction{
		txn("t1", "u1", "10.25", day(4)),
		txn("t2", "u2", "3.10", day(2)),
		txn("t3", "gone", "7", day(1)),
		txn("t4", "u3", "0.65", day(5)),
		txn("t5", "u2", "100", day(3)),
	}
	want := decimal.Zero
	for _, tx := range txns {
		want = want.Add(tx.Amount)
	}
	g := GroupByUser(txns, IndexUsers(sampleUsers))
	if !g.Total().Equal(want) {
		t.Fatalf("grouped total %s != raw total %s", g.Total(), want)
	}
	sum := decimal.Zero
	for _, s := range g.Summaries() {
		sum = sum.Add(s.Total)
	}
	if !sum.Equal(want) {
		t.Fatalf("summary totals %s != raw total %s", sum, want)
	}
}

func TestGroupByUserUnknownAndPopulatedFallback(t *testing.T) {
	orphan := txn("t1", "deleted", "5", day(1))
	populated := txn("t2", "u9", "7", day(2))
	populated.User = &entity.UserRef{ID: "u9", Name: "Dora", Email: "d@x.com"}

	g := GroupByUser([]entity.Transaction{orphan, populated}, IndexUsers(sampleUsers))
	unknown, ok := g.Get(entity.UnknownOwner)
	if !ok || unknown.Name != entity.UnknownOwner {
		t.Fatalf("orphaned record should land in Unknown, got %+v", unknown)
	}
	if _, ok := g.Get("d@x.com"); !ok {
		t.Fatalf("populated owner should be used when index misses")
	}

	order := g.Summaries()
	if order[0].Email != entity.UnknownOwner || order[1].Email != "d@x.com" {
		t.Fatalf("summaries must keep first-encounter order, got %s, %s", order[0].Email, order[1].Email)
	}
}

func TestGroupByUserMalformedAmountCountsAsZero(t *testing.T) {
	bad := txn("t1", "u1", "-15", day(1))
	good := txn("t2", "u1", "4", day(2))
	g := GroupByUser([]entity.Transaction{bad, good}, nil)
	s, _ := g.Get(entity.UnknownOwner)
	if !s.Total.Equal(amt("4")) {
		t.Fatalf("negative amount must degrade to zero, total = %s", s.Total)
	}
}

func summariesWithTotals(totals ...string) []UserSummary[entity.Transaction] {
	out := make([]UserSummary[entity.Transaction], 0, len(totals))
	for i, tot := range totals {
		out = append(out, UserSummary[entity.Transaction]{
			Name:      []string{"zed", "Amy", "mike"}[i%3],
			Email:     string(rune('a'+i)) + "@x.com",
			CreatedAt: day(10 - i),
			Total:     amt(tot),
		})
	}
	return out
}

func totalsOf(in []UserSummary[entity.Transaction]) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = s.Total.String()
	}
	return out
}

func TestSortSummariesByTotalScenario(t *testing.T) {
	in := summariesWithTotals("30", "10", "20")
	asc := SortSummaries(in, SortByTotal, Asc)
	if got := totalsOf(asc); got[0] != "10" || got[1] != "20" || got[2] != "30" {
		t.Fatalf("asc = %v", got)
	}
	desc := SortSummaries(in, SortByTotal, Asc.Toggle())
	if got := totalsOf(desc); got[0] != "30" || got[1] != "20" || got[2] != "10" {
		t.Fatalf("desc = %v", got)
	}
	if totalsOf(in)[0] != "30" {
		t.Fatalf("input was mutated")
	}
}

func TestSortSummariesNumericNotLexicographic(t *testing.T) {
	in := summariesWithTotals("9", "100", "25")
	got := totalsOf(SortSummaries(in, SortByTotal, Asc))
	if got[0] != "9" || got[1] != "25" || got[2] != "100" {
		t.Fatalf("numeric sort broken: %v", got)
	}
}

func TestSortSummariesToggleIsExactReverse(t *testing.T) {
	in := summariesWithTotals("5", "5", "1", "5", "3", "1")
	in[1].CreatedAt = in[0].CreatedAt
	for _, key := range []SortKey{SortByName, SortByEmail, SortByCreatedAt, SortByTotal} {
		asc := SortSummaries(in, key, Asc)
		desc := SortSummaries(in, key, Desc)
		for i := range asc {
			if asc[i].Email != desc[len(desc)-1-i].Email {
				t.Fatalf("key %s: desc is not the reverse of asc at %d", key, i)
			}
		}
	}
}

func TestSortSummariesCaseInsensitiveAndChronological(t *testing.T) {
	in := []UserSummary[entity.Transaction]{
		{Name: "bob", Email: "b@x.com", CreatedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
		{Name: "Alice", Email: "a@x.com", CreatedAt: time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)},
		{Name: "Carl", Email: "C@x.com", CreatedAt: time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)},
	}
	byName := SortSummaries(in, SortByName, Asc)
	if byName[0].Name != "Alice" || byName[1].Name != "bob" || byName[2].Name != "Carl" {
		t.Fatalf("name sort = %s,%s,%s", byName[0].Name, byName[1].Name, byName[2].Name)
	}
	byDate := SortSummaries(in, SortByCreatedAt, Asc)
	if byDate[0].Name != "Carl" || byDate[2].Name != "bob" {
		t.Fatalf("cross-year chronological sort broken")
	}
}

func TestFilterBySearch(t *testing.T) {
	in := summariesWithTotals("60", "12.5", "7")
	if got := FilterBySearch(in, ""); len(got) != len(in) || &got[0] != &in[0] {
		t.Fatalf("empty query must return the input unchanged")
	}
	if got := FilterBySearch(in, "AMY"); len(got) != 1 || got[0].Name != "Amy" {
		t.Fatalf("name match failed: %+v", got)
	}
	if got := FilterBySearch(in, "C@X"); len(got) != 1 || got[0].Email != "c@x.com" {
		t.Fatalf("email match failed: %+v", got)
	}
	if got := FilterBySearch(in, "12.5"); len(got) != 1 {
		t.Fatalf("total match failed: %+v", got)
	}
	if got := FilterBySearch(in, "nothing"); len(got) != 0 {
		t.Fatalf("expected no matches")
	}
}

func TestTopN(t *testing.T) {
	txns := []entity.Transaction{
		txn("1", "a", "5", day(1)),
		txn("2", "b", "9", day(1)),
		txn("3", "c", "9", day(1)),
		txn("4", "a", "4", day(1)),
		txn("5", "d", "1", day(1)),
	}
	got := TopN(txns, func(t entity.Transaction) string { return t.UserID }, entity.Transaction.Value, 3)
	if len(got) != 3 {
		t.Fatalf("len = %d", len(got))
	}
	// a=9, b=9, c=9: ties keep first-encountered order
	if got[0].Label != "a" || got[1].Label != "b" || got[2].Label != "c" {
		t.Fatalf("order = %v", got)
	}
	if all := TopN(txns, func(t entity.Transaction) string { return t.UserID }, entity.Transaction.Value, 0); len(all) != 4 {
		t.Fatalf("n<=0 should rank all groups, got %d", len(all))
	}
}

func TestBucketByDate(t *testing.T) {
	txns := []entity.Transaction{
		txn("1", "a", "5", day(3)),
		txn("2", "a", "1", day(1)),
		txn("3", "a", "2", day(3).Add(5*time.Hour)),
		txn("4", "a", "7", time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC)),
		txn("5", "a", "7", time.Time{}),
	}
	got := BucketByDate(txns, func(t entity.Transaction) time.Time { return t.Date }, entity.Transaction.Value)
	if len(got) != 3 {
		t.Fatalf("buckets = %d, want 3 (empty days omitted, zero dates skipped)", len(got))
	}
	seen := map[string]bool{}
	for i, b := range got {
		if seen[b.Label] {
			t.Fatalf("duplicate label %s", b.Label)
		}
		seen[b.Label] = true
		if i > 0 && got[i-1].Day.After(b.Day) {
			t.Fatalf("labels not chronological: %s before %s", got[i-1].Label, b.Label)
		}
	}
	if got[0].Label != "2023-12-31" || got[2].Label != "2024-03-03" {
		t.Fatalf("labels = %s..%s", got[0].Label, got[2].Label)
	}
	if got[2].Count != 2 || !got[2].Sum.Equal(amt("7")) {
		t.Fatalf("2024-03-03 = %d/%s", got[2].Count, got[2].Sum)
	}
}

func TestFillGapsAndCumulative(t *testing.T) {
	in := BucketByDate([]entity.Transaction{txn("1", "a", "1", day(1)), txn("2", "a", "2", day(4))},
		func(t entity.Transaction) time.Time { return t.Date }, entity.Transaction.Value)
	filled := FillGaps(in)
	if len(filled) != 4 {
		t.Fatalf("filled = %d days, want 4", len(filled))
	}
	if filled[1].Count != 0 || filled[1].Label != "2024-03-02" {
		t.Fatalf("gap bucket = %+v", filled[1])
	}
	cum := Cumulative(filled)
	if cum[3].Count != 2 || !cum[3].Sum.Equal(amt("3")) {
		t.Fatalf("cumulative tail = %+v", cum[3])
	}
}

func TestComputeHomeMetrics(t *testing.T) {
	now := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	users := []entity.User{
		{ID: "u1", Email: "a@x.com", CreatedAt: now.AddDate(0, 0, -5)},
		{ID: "u2", Email: "b@x.com", CreatedAt: now.AddDate(0, 0, -30)},
		{ID: "u3", Email: "c@x.com", CreatedAt: now.AddDate(0, -3, 0)},
	}
	txns := []entity.Transaction{
		txn("1", "u1", "100", now),
		txn("2", "u2", "10", now),
		txn("3", "u2", "10", now),
		txn("4", "u3", "1", now),
	}
	budgets := []entity.Budget{
		{ID: "b1", UserID: "u1", Amount: amt("50")},
		{ID: "b2", UserID: "u2", Amount: amt("25")},
		{ID: "b3", UserID: "u3", Amount: amt("0")},
	}

	m := ComputeHomeMetrics(users, txns, budgets, now, BasisTransaction)
	if m.TotalUsers != 3 || m.ActiveUsers != 2 {
		t.Fatalf("users total/active = %d/%d", m.TotalUsers, m.ActiveUsers)
	}
	if !m.TotalTransactionAmount.Equal(amt("121")) || !m.AverageTransactionAmount.Equal(amt("30.25")) {
		t.Fatalf("txn total/avg = %s/%s", m.TotalTransactionAmount, m.AverageTransactionAmount)
	}
	if !m.AverageBudgetAmount.Equal(amt("25")) {
		t.Fatalf("budget avg = %s", m.AverageBudgetAmount)
	}
	// amounts desc [100,10,10,1], index floor(4*0.25)=1 -> 10; user totals 100,20,1
	if !m.HighSpendingThreshold.Equal(amt("10")) || m.HighSpendingUsers != 2 {
		t.Fatalf("transaction basis threshold/users = %s/%d", m.HighSpendingThreshold, m.HighSpendingUsers)
	}

	m = ComputeHomeMetrics(users, txns, budgets, now, BasisUser)
	// user totals desc [100,20,1], index floor(3*0.25)=0 -> 100
	if !m.HighSpendingThreshold.Equal(amt("100")) || m.HighSpendingUsers != 1 {
		t.Fatalf("user basis threshold/users = %s/%d", m.HighSpendingThreshold, m.HighSpendingUsers)
	}
}

func TestComputeHomeMetricsEmpty(t *testing.T) {
	m := ComputeHomeMetrics(nil, nil, nil, time.Now(), BasisTransaction)
	if m.HighSpendingUsers != 0 || !m.AverageTransactionAmount.IsZero() || !m.AverageBudgetAmount.IsZero() {
		t.Fatalf("empty metrics = %+v", m)
	}
}
