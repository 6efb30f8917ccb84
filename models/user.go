package models

import "time"

// User is an account known to the task service. Users are registered lazily
// on their first successful login.
type User struct {
	// UserID is the internal identifier embedded as the subject of session
	// tokens. It is never exposed via JSON.
	UserID int64 `json:"-"`

	// Login is the account name the client authenticates with.
	Login string `json:"user"`

	// CreatedAt is the moment the account was first seen.
	CreatedAt time.Time `json:"created_at"`
}
