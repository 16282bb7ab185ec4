package aggregation

import "strings"

// FilterBySearch keeps summaries whose name, email or formatted total contains
// query, ignoring case. An empty query returns in unchanged.
func FilterBySearch[R Record](in []UserSummary[R], query string) []UserSummary[R] {
	if query == "" {
		return in
	}
	q := strings.ToLower(query)
	out := make([]UserSummary[R], 0, len(in))
	for _, s := range in {
		if strings.Contains(strings.ToLower(s.Name), q) ||
			strings.Contains(strings.ToLower(s.Email), q) ||
			strings.Contains(s.Total.String(), q) {
			out = append(out, s)
		}
	}
	return out
}
