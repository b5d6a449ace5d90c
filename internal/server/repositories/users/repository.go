// Package users provides persistence for user accounts.
package users

import (
	"context"

	"github.com/mswiatek/scholarfolio/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) error
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	UpdateRole(ctx context.Context, id string, role string) error
}
