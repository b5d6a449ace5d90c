// Package portfolio provides persistence for the owner-authored portfolio
// content: the profile and contact-info singletons, research interests, and
// publications.
package portfolio

import (
	"context"

	"github.com/mswiatek/scholarfolio/internal/server/models"
)

// Repository is the storage surface for portfolio content. Singleton reads
// return (nil, nil) when the row does not exist; absence is a valid state.
type Repository interface {
	GetProfile(ctx context.Context) (*models.Profile, error)
	SetProfile(ctx context.Context, p *models.Profile) error

	GetContactInfo(ctx context.Context) (*models.ContactInfo, error)
	SetContactInfo(ctx context.Context, c *models.ContactInfo) error

	ListInterests(ctx context.Context) ([]models.ResearchInterest, error)
	AddInterest(ctx context.Context, i *models.ResearchInterest) error
	// DeleteInterest of an unknown id is a no-op.
	DeleteInterest(ctx context.Context, id string) error

	ListPublications(ctx context.Context) ([]models.Publication, error)
	GetPublication(ctx context.Context, id string) (*models.Publication, error)
	AddPublication(ctx context.Context, p *models.Publication) error
	UpdatePublication(ctx context.Context, p *models.Publication) error
	DeletePublication(ctx context.Context, id string) error

	// Clear wipes all portfolio content (administrative reset).
	Clear(ctx context.Context) error
}
