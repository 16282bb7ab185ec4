package entity

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount parses a stored monetary value. Malformed input yields zero and
// ok=false so a single bad document never blocks a listing.
func ParseAmount(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}
