package services

import (
	"context"
	"fmt"

	"github.com/mswiatek/scholarfolio/internal/common"
	"github.com/mswiatek/scholarfolio/internal/server/models"
)

type fakeUserRepo struct {
	byID map[string]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: make(map[string]*models.User)}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	for _, u := range r.byID {
		if u.Username == user.Username {
			return common.ErrAlreadyExists
		}
	}
	clone := *user
	r.byID[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	for _, u := range r.byID {
		if u.Username == username {
			clone := *u
			return &clone, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *fakeUserRepo) UpdateRole(ctx context.Context, id string, role string) error {
	u, ok := r.byID[id]
	if !ok {
		return common.ErrNotFound
	}
	u.Role = role
	return nil
}

type fakeTokenRepo struct {
	byID map[string]*models.RefreshToken
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{byID: make(map[string]*models.RefreshToken)}
}

func (r *fakeTokenRepo) Add(ctx context.Context, token *models.RefreshToken) error {
	clone := *token
	r.byID[token.ID] = &clone
	return nil
}

func (r *fakeTokenRepo) Get(ctx context.Context, id string) (*models.RefreshToken, error) {
	t, ok := r.byID[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	clone := *t
	return &clone, nil
}

func (r *fakeTokenRepo) Delete(ctx context.Context, id string) error {
	delete(r.byID, id)
	return nil
}

type fakeProfileRepo struct {
	byUser map[string]*models.UserProfile
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{byUser: make(map[string]*models.UserProfile)}
}

func (r *fakeProfileRepo) Get(ctx context.Context, userID string) (*models.UserProfile, error) {
	p, ok := r.byUser[userID]
	if !ok {
		return nil, nil
	}
	clone := *p
	return &clone, nil
}

func (r *fakeProfileRepo) Save(ctx context.Context, p *models.UserProfile) error {
	clone := *p
	r.byUser[p.UserID] = &clone
	return nil
}

type fakePortfolioRepo struct {
	profile      *models.Profile
	contact      *models.ContactInfo
	interests    []models.ResearchInterest
	publications []models.Publication
}

func (r *fakePortfolioRepo) GetProfile(ctx context.Context) (*models.Profile, error) {
	if r.profile == nil {
		return nil, nil
	}
	clone := *r.profile
	return &clone, nil
}

func (r *fakePortfolioRepo) SetProfile(ctx context.Context, p *models.Profile) error {
	clone := *p
	r.profile = &clone
	return nil
}

func (r *fakePortfolioRepo) GetContactInfo(ctx context.Context) (*models.ContactInfo, error) {
	if r.contact == nil {
		return nil, nil
	}
	clone := *r.contact
	return &clone, nil
}

func (r *fakePortfolioRepo) SetContactInfo(ctx context.Context, c *models.ContactInfo) error {
	clone := *c
	r.contact = &clone
	return nil
}

func (r *fakePortfolioRepo) ListInterests(ctx context.Context) ([]models.ResearchInterest, error) {
	return append([]models.ResearchInterest(nil), r.interests...), nil
}

func (r *fakePortfolioRepo) AddInterest(ctx context.Context, i *models.ResearchInterest) error {
	r.interests = append(r.interests, *i)
	return nil
}

func (r *fakePortfolioRepo) DeleteInterest(ctx context.Context, id string) error {
	for n, i := range r.interests {
		if i.ID == id {
			r.interests = append(r.interests[:n], r.interests[n+1:]...)
			return nil
		}
	}
	return nil
}

func (r *fakePortfolioRepo) ListPublications(ctx context.Context) ([]models.Publication, error) {
	return append([]models.Publication(nil), r.publications...), nil
}

func (r *fakePortfolioRepo) GetPublication(ctx context.Context, id string) (*models.Publication, error) {
	for _, p := range r.publications {
		if p.ID == id {
			clone := p
			return &clone, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *fakePortfolioRepo) AddPublication(ctx context.Context, p *models.Publication) error {
	r.publications = append(r.publications, *p)
	return nil
}

func (r *fakePortfolioRepo) UpdatePublication(ctx context.Context, p *models.Publication) error {
	for n, existing := range r.publications {
		if existing.ID == p.ID {
			updated := *p
			updated.CreatedAtUnix = existing.CreatedAtUnix
			r.publications[n] = updated
			return nil
		}
	}
	return common.ErrNotFound
}

func (r *fakePortfolioRepo) DeletePublication(ctx context.Context, id string) error {
	for n, p := range r.publications {
		if p.ID == id {
			r.publications = append(r.publications[:n], r.publications[n+1:]...)
			return nil
		}
	}
	return common.ErrNotFound
}

func (r *fakePortfolioRepo) Clear(ctx context.Context) error {
	r.profile = nil
	r.contact = nil
	r.interests = nil
	r.publications = nil
	return nil
}

type fakePresigner struct{}

func (fakePresigner) PresignGet(ctx context.Context, key string) (string, error) {
	return fmt.Sprintf("https://storage.example/%s?signed", key), nil
}
