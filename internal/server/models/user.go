// Package models defines the server-side persistence entities of the
// research portfolio.
package models

import "time"

// User is an authenticated account. The portfolio owner is the user whose
// username matches the configured owner username; it is created with the
// admin role.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
}

// UserProfile is the per-caller personal record, distinct from the portfolio
// Profile. Any authenticated user may hold exactly one.
type UserProfile struct {
	UserID string
	Name   string
}
