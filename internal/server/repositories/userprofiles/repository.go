// Package userprofiles provides persistence for per-caller personal records.
package userprofiles

import (
	"context"

	"github.com/mswiatek/scholarfolio/internal/server/models"
)

// Repository stores one profile per user. Get returns (nil, nil) when the
// user has no profile yet; absence is a valid state, not an error.
type Repository interface {
	Get(ctx context.Context, userID string) (*models.UserProfile, error)
	Save(ctx context.Context, p *models.UserProfile) error
}
