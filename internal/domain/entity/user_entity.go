package entity

import (
	"time"
)

// UnknownOwner is the display identity used when a record's owner cannot be
// resolved, e.g. the user row was removed before its records.
const UnknownOwner = "Unknown"

// User is an application end user. Records reference users by ID only.
// Password holds the bcrypt hash and is never serialised.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Password  string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// Ref returns the populated identity of the user as embedded in records.
func (u User) Ref() *UserRef {
	return &UserRef{ID: u.ID, Name: u.Name, Email: u.Email}
}

// UserRef is the owner identity populated onto a Transaction or Budget.
type UserRef struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
