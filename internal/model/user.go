// Package model defines domain entities for the application.
package model

// User represents a registered user. The ID is assigned by the database
// on insert and is immutable afterwards; usernames are unique across all
// users, enforced by a unique constraint on the users table.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}
