// Package aggregation derives dashboard summaries from raw record lists.
//
// Every function here is a pure function of its inputs: no I/O, no shared
// state, and inputs are never mutated. Records with malformed amounts or
// dates degrade to zero or are omitted instead of failing the whole call.
package aggregation

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tpremraj1312/ledger-admin/internal/domain/entity"
)

// Record is implemented by entity.Transaction and entity.Budget.
type Record interface {
	OwnerID() string
	Owner() *entity.UserRef
	Value() decimal.Decimal
	CreatedTime() time.Time
}

// UserIndex resolves owner ids to identities. Build it once per call with
// IndexUsers; a nil index falls back to the owner populated on each record.
type UserIndex map[string]entity.UserRef

func IndexUsers(users []entity.User) UserIndex {
	ix := make(UserIndex, len(users))
	for _, u := range users {
		ix[u.ID] = entity.UserRef{ID: u.ID, Name: u.Name, Email: u.Email}
	}
	return ix
}

// Resolve returns the display name and email of the record's owner, or the
// "Unknown" sentinel for both when the owner cannot be found.
func (ix UserIndex) Resolve(r Record) (name, email string) {
	if ref, ok := ix[r.OwnerID()]; ok && ref.Email != "" {
		return displayName(ref.Name), ref.Email
	}
	if ref := r.Owner(); ref != nil && ref.Email != "" {
		return displayName(ref.Name), ref.Email
	}
	return entity.UnknownOwner, entity.UnknownOwner
}

func displayName(n string) string {
	if n == "" {
		return entity.UnknownOwner
	}
	return n
}

// amountOf clamps negative amounts to zero.
func amountOf(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
