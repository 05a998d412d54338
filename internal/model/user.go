// Package model defines the data structures used throughout the application.
// In Go, we use structs to represent our data — plain values with no behaviour
// hidden inside them. Every entity here maps 1:1 to a database table.
package model

import "time"

// User represents a registered account.
//
// WHY PasswordHash `json:"-"`?
// The `-` tag tells encoding/json to NEVER serialize this field. A user
// record is returned by several endpoints (register, login, /api/me) and
// the bcrypt hash must not leak into any of those responses. Excluding it
// at the type level is safer than remembering to strip it per handler.
//
// Username and Email carry UNIQUE constraints in the database — the
// repository translates violations into field errors rather than faults.
type User struct {
	ID           string    `json:"id"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
