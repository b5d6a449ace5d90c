package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/mswiatek/scholarfolio/internal/common"
	"github.com/mswiatek/scholarfolio/internal/server/models"
	"github.com/mswiatek/scholarfolio/internal/server/repositories/portfolio"
)

// BlobPatch expresses the three-way semantics of an optional attachment
// field on a write: keep the current object, remove it, or replace it with
// a freshly uploaded storage key. Exactly one of the fields is set.
type BlobPatch struct {
	Keep   bool
	Remove bool
	Key    string
}

// Apply resolves the patch against the currently stored key.
func (p BlobPatch) Apply(current *string) *string {
	switch {
	case p.Keep:
		return current
	case p.Remove:
		return nil
	case p.Key != "":
		k := p.Key
		return &k
	default:
		return nil
	}
}

// Presigner resolves storage keys into short-lived download locators.
type Presigner interface {
	PresignGet(ctx context.Context, key string) (string, error)
}

// ProfileView is the read model of the portfolio profile, with the photo
// key already resolved into a download locator.
type ProfileView struct {
	Name      string
	Biography string
	PhotoURL  *string
}

// PublicationView mirrors models.Publication with the pdf key resolved.
type PublicationView struct {
	ID          string
	Title       string
	Description string
	Link        *string
	PDFURL      *string
	Timestamp   int64
}

// PortfolioService manages owner-authored portfolio content.
type PortfolioService struct {
	repo      portfolio.Repository
	presigner Presigner
}

func NewPortfolioService(repo portfolio.Repository, presigner Presigner) *PortfolioService {
	return &PortfolioService{repo: repo, presigner: presigner}
}

func (s *PortfolioService) resolve(ctx context.Context, key *string) (*string, error) {
	if key == nil {
		return nil, nil
	}
	url, err := s.presigner.PresignGet(ctx, *key)
	if err != nil {
		return nil, err
	}
	return &url, nil
}

// GetProfile returns the profile, or nil when none has been authored yet.
func (s *PortfolioService) GetProfile(ctx context.Context) (*ProfileView, error) {
	p, err := s.repo.GetProfile(ctx)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, nil
	}

	url, err := s.resolve(ctx, p.PhotoKey)
	if err != nil {
		return nil, err
	}

	return &ProfileView{Name: p.Name, Biography: p.Biography, PhotoURL: url}, nil
}

// SetProfile creates or replaces the profile singleton.
func (s *PortfolioService) SetProfile(ctx context.Context, name, biography string, photo BlobPatch) error {
	if name == "" {
		return common.ErrValidation
	}

	current, err := s.repo.GetProfile(ctx)
	if err != nil {
		return err
	}

	var currentKey *string
	if current != nil {
		currentKey = current.PhotoKey
	}

	return s.repo.SetProfile(ctx, &models.Profile{
		Name:      name,
		Biography: biography,
		PhotoKey:  photo.Apply(currentKey),
	})
}

func (s *PortfolioService) GetContactInfo(ctx context.Context) (*models.ContactInfo, error) {
	return s.repo.GetContactInfo(ctx)
}

func (s *PortfolioService) SetContactInfo(ctx context.Context, email, affiliation string) error {
	if email == "" {
		return common.ErrValidation
	}
	return s.repo.SetContactInfo(ctx, &models.ContactInfo{Email: email, Affiliation: affiliation})
}

func (s *PortfolioService) ListInterests(ctx context.Context) ([]models.ResearchInterest, error) {
	return s.repo.ListInterests(ctx)
}

// AddInterest creates an interest and returns its server-assigned id.
func (s *PortfolioService) AddInterest(ctx context.Context, name string) (string, error) {
	if name == "" {
		return "", common.ErrValidation
	}

	i := &models.ResearchInterest{ID: uuid.NewString(), Name: name}
	if err := s.repo.AddInterest(ctx, i); err != nil {
		return "", err
	}
	return i.ID, nil
}

// DeleteInterest removes an interest. Deleting an unknown id is a no-op.
func (s *PortfolioService) DeleteInterest(ctx context.Context, id string) error {
	return s.repo.DeleteInterest(ctx, id)
}

func (s *PortfolioService) ListPublications(ctx context.Context) ([]PublicationView, error) {
	rows, err := s.repo.ListPublications(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]PublicationView, 0, len(rows))
	for _, p := range rows {
		v, err := s.toView(ctx, &p)
		if err != nil {
			return nil, err
		}
		result = append(result, *v)
	}
	return result, nil
}

// GetPublication returns a single publication; common.ErrNotFound if absent.
func (s *PortfolioService) GetPublication(ctx context.Context, id string) (*PublicationView, error) {
	p, err := s.repo.GetPublication(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.toView(ctx, p)
}

func (s *PortfolioService) toView(ctx context.Context, p *models.Publication) (*PublicationView, error) {
	url, err := s.resolve(ctx, p.PDFKey)
	if err != nil {
		return nil, err
	}
	return &PublicationView{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Link:        p.Link,
		PDFURL:      url,
		Timestamp:   p.CreatedAtUnix,
	}, nil
}

// AddPublication creates a publication and returns its server-assigned id.
// The creation timestamp is server-assigned and stable for the entity's
// lifetime.
func (s *PortfolioService) AddPublication(ctx context.Context, title, description string, link *string, pdf BlobPatch) (string, error) {
	if title == "" {
		return "", common.ErrValidation
	}

	p := &models.Publication{
		ID:            uuid.NewString(),
		Title:         title,
		Description:   description,
		Link:          link,
		PDFKey:        pdf.Apply(nil),
		CreatedAtUnix: time.Now().UnixNano(),
	}
	if err := s.repo.AddPublication(ctx, p); err != nil {
		return "", err
	}
	return p.ID, nil
}

// UpdatePublication rewrites a publication's authored fields; the creation
// timestamp is preserved.
func (s *PortfolioService) UpdatePublication(ctx context.Context, id, title, description string, link *string, pdf BlobPatch) error {
	if title == "" {
		return common.ErrValidation
	}

	current, err := s.repo.GetPublication(ctx, id)
	if err != nil {
		return err
	}

	return s.repo.UpdatePublication(ctx, &models.Publication{
		ID:          id,
		Title:       title,
		Description: description,
		Link:        link,
		PDFKey:      pdf.Apply(current.PDFKey),
	})
}

func (s *PortfolioService) DeletePublication(ctx context.Context, id string) error {
	return s.repo.DeletePublication(ctx, id)
}

// Clear wipes all portfolio content. Administrative reset only.
func (s *PortfolioService) Clear(ctx context.Context) error {
	return s.repo.Clear(ctx)
}
