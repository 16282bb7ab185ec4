package aggregation

import (
	"time"

	"github.com/shopspring/decimal"
)

// UserSummary groups the records of one owner.
type UserSummary[R Record] struct {
	Name      string
	Email     string
	CreatedAt time.Time // earliest record creation time
	Records   []R
	Total     decimal.Decimal
}

// Groups is an email keyed mapping that remembers first-encounter order.
type Groups[R Record] struct {
	order   []string
	byEmail map[string]*UserSummary[R]
}

func (g *Groups[R]) Len() int { return len(g.order) }

func (g *Groups[R]) Get(email string) (UserSummary[R], bool) {
	s, ok := g.byEmail[email]
	if !ok {
		return UserSummary[R]{}, false
	}
	return *s, true
}

// Summaries returns the groups in first-encounter order.
func (g *Groups[R]) Summaries() []UserSummary[R] {
	out := make([]UserSummary[R], 0, len(g.order))
	for _, email := range g.order {
		out = append(out, *g.byEmail[email])
	}
	return out
}

// Total is the grand total across all groups.
func (g *Groups[R]) Total() decimal.Decimal {
	total := decimal.Zero
	for _, s := range g.byEmail {
		total = total.Add(s.Total)
	}
	return total
}

// GroupByUser buckets records by owner email.
func GroupByUser[R Record](records []R, index UserIndex) *Groups[R] {
	g := &Groups[R]{byEmail: make(map[string]*UserSummary[R])}
	for _, r := range records {
		name, email := index.Resolve(r)
		s, ok := g.byEmail[email]
		if !ok {
			s = &UserSummary[R]{Name: name, Email: email, Total: decimal.Zero}
			g.byEmail[email] = s
			g.order = append(g.order, email)
		}
		s.Records = append(s.Records, r)
		s.Total = s.Total.Add(amountOf(r.Value()))
		if created := r.CreatedTime(); !created.IsZero() {
			if s.CreatedAt.IsZero() || created.Before(s.CreatedAt) {
				s.CreatedAt = created
			}
		}
	}
	return g
}
