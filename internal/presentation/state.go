// Package presentation turns aggregation output into table rows and chart
// series for the dashboard pages.
package presentation

import (
	"github.com/tpremraj1312/ledger-admin/internal/aggregation"
)

// DetailKey orders the records inside an expanded summary row.
type DetailKey string

const (
	DetailCategory  DetailKey = "category"
	DetailAmount    DetailKey = "amount"
	DetailDate      DetailKey = "date"
	DetailPeriod    DetailKey = "period"
	DetailCreatedAt DetailKey = "createdAt"
)

func ParseDetailKey(s string) (DetailKey, bool) {
	switch DetailKey(s) {
	case DetailCategory, DetailAmount, DetailDate, DetailPeriod, DetailCreatedAt:
		return DetailKey(s), true
	}
	return "", false
}

type SortState struct {
	Key aggregation.SortKey   `json:"key"`
	Dir aggregation.Direction `json:"dir"`
}

type DetailSortState struct {
	Key DetailKey             `json:"key"`
	Dir aggregation.Direction `json:"dir"`
}

// ViewState is the caller-held state of a summary page. It is a value: Reduce
// returns a new state and never modifies its argument.
type ViewState struct {
	Search     string          `json:"search"`
	Sort       SortState       `json:"sort"`
	DetailSort DetailSortState `json:"detail_sort"`
	Expanded   string          `json:"expanded,omitempty"`
}

func DefaultState() ViewState {
	return ViewState{
		Sort:       SortState{Key: aggregation.SortByName, Dir: aggregation.Asc},
		DetailSort: DetailSortState{Key: DetailCategory, Dir: aggregation.Asc},
	}
}

type ActionKind string

const (
	ActionSetSearch        ActionKind = "search"
	ActionToggleSort       ActionKind = "sort"
	ActionToggleDetailSort ActionKind = "detail_sort"
	ActionToggleExpand     ActionKind = "expand"
	ActionGroupDeleted     ActionKind = "group_deleted"
)

// Action is one state transition. Value carries the search text, sort key or
// group email depending on Kind.
type Action struct {
	Kind  ActionKind
	Value string
}

// Reduce applies a to s. Unknown actions and unknown sort keys leave the
// state unchanged.
func Reduce(s ViewState, a Action) ViewState {
	switch a.Kind {
	case ActionSetSearch:
		s.Search = a.Value
	case ActionToggleSort:
		key, ok := aggregation.ParseSortKey(a.Value)
		if !ok {
			return s
		}
		if s.Sort.Key == key {
			s.Sort.Dir = s.Sort.Dir.Toggle()
		} else {
			s.Sort = SortState{Key: key, Dir: aggregation.Asc}
		}
	case ActionToggleDetailSort:
		key, ok := ParseDetailKey(a.Value)
		if !ok {
			return s
		}
		if s.DetailSort.Key == key {
			s.DetailSort.Dir = s.DetailSort.Dir.Toggle()
		} else {
			s.DetailSort = DetailSortState{Key: key, Dir: aggregation.Asc}
		}
	case ActionToggleExpand:
		if s.Expanded == a.Value {
			s.Expanded = ""
		} else {
			s.Expanded = a.Value
		}
	case ActionGroupDeleted:
		if s.Expanded == a.Value {
			s.Expanded = ""
		}
	}
	return s
}
