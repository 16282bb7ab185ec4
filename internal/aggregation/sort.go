package aggregation

import (
	"slices"
	"strings"
)

type SortKey string

const (
	SortByName      SortKey = "name"
	SortByEmail     SortKey = "email"
	SortByCreatedAt SortKey = "createdAt"
	SortByTotal     SortKey = "total"
)

func ParseSortKey(s string) (SortKey, bool) {
	switch SortKey(s) {
	case SortByName, SortByEmail, SortByCreatedAt, SortByTotal:
		return SortKey(s), true
	}
	return "", false
}

type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

func (d Direction) Toggle() Direction {
	if d == Asc {
		return Desc
	}
	return Asc
}

func ParseDirection(s string) Direction {
	if strings.EqualFold(s, string(Desc)) {
		return Desc
	}
	return Asc
}

// SortSummaries returns a sorted copy. Equal keys fall back to the email so
// the order is total and the descending order is the exact reverse of the
// ascending one.
func SortSummaries[R Record](in []UserSummary[R], key SortKey, dir Direction) []UserSummary[R] {
	out := slices.Clone(in)
	slices.SortFunc(out, func(a, b UserSummary[R]) int {
		c := compareSummaries(a, b, key)
		if dir == Desc {
			return -c
		}
		return c
	})
	return out
}

func compareSummaries[R Record](a, b UserSummary[R], key SortKey) int {
	var c int
	switch key {
	case SortByEmail:
		c = strings.Compare(strings.ToLower(a.Email), strings.ToLower(b.Email))
	case SortByCreatedAt:
		c = a.CreatedAt.Compare(b.CreatedAt)
	case SortByTotal:
		c = a.Total.Cmp(b.Total)
	default:
		c = strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	}
	if c != 0 {
		return c
	}
	if c = strings.Compare(strings.ToLower(a.Email), strings.ToLower(b.Email)); c != 0 {
		return c
	}
	return strings.Compare(a.Email, b.Email)
}
