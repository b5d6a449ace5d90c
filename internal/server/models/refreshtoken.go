package models

import "time"

type RefreshToken struct {
	ID        string
	UserID    string
	ExpiresAt time.Time
}
