package entity

import "time"

// Admin is a back office operator. Password is stored as a bcrypt hash.
type Admin struct {
	ID        string
	Email     string
	Password  string
	CreatedAt time.Time
}
