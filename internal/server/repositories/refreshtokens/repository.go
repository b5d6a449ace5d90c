// Package refreshtokens provides persistence for refresh-token rotation.
package refreshtokens

import (
	"context"

	"github.com/mswiatek/scholarfolio/internal/server/models"
)

type Repository interface {
	Add(ctx context.Context, token *models.RefreshToken) error
	Get(ctx context.Context, id string) (*models.RefreshToken, error)
	Delete(ctx context.Context, id string) error
}
