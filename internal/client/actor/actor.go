// Package actor is the client's gateway to the portfolio backend. The
// Actor interface is the full remote surface; the HTTP implementation
// binds one actor to one identity, so switching identities means building
// a fresh actor rather than mutating a shared one.
package actor

import (
	"context"

	"github.com/mswiatek/scholarfolio/internal/client/blob"
	"github.com/mswiatek/scholarfolio/internal/client/models"
)

// Actor executes portfolio operations against the backend on behalf of a
// fixed identity (or anonymously). Implementations must be safe for
// concurrent use.
type Actor interface {
	// Portfolio content reads. Open to anonymous actors.
	GetProfile(ctx context.Context) (*models.Profile, error)
	GetResearchInterests(ctx context.Context) ([]models.ResearchInterest, error)
	GetPublications(ctx context.Context) ([]models.Publication, error)
	GetPublication(ctx context.Context, id string) (*models.Publication, error)
	GetContactInfo(ctx context.Context) (*models.ContactInfo, error)

	// Portfolio content writes. Owner only.
	SetProfile(ctx context.Context, name, biography string, photo blob.Patch) error
	SetContactInfo(ctx context.Context, email, affiliation string) error
	AddResearchInterest(ctx context.Context, name string) (string, error)
	DeleteResearchInterest(ctx context.Context, id string) error
	AddPublication(ctx context.Context, title, description string, link *string, pdf blob.Patch) (string, error)
	UpdatePublication(ctx context.Context, id, title, description string, link *string, pdf blob.Patch) error
	DeletePublication(ctx context.Context, id string) error

	// Caller account operations. Authenticated callers only.
	GetCallerUserProfile(ctx context.Context) (*models.UserProfile, error)
	SaveCallerUserProfile(ctx context.Context, profile models.UserProfile) error
	GetUserProfile(ctx context.Context, userID string) (*models.UserProfile, error)
	IsOwner(ctx context.Context) (bool, error)
	IsCallerAdmin(ctx context.Context) (bool, error)
	GetCallerUserRole(ctx context.Context) (string, error)

	// Administrative operations.
	AssignUserRole(ctx context.Context, userID, role string) error
	ClearData(ctx context.Context) error

	Close() error
}
