// Package services contains the application services of the portfolio
// server: account/token management and portfolio content management.
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mswiatek/scholarfolio/internal/common"
	"github.com/mswiatek/scholarfolio/internal/server/auth"
	sc "github.com/mswiatek/scholarfolio/internal/server/config"
	"github.com/mswiatek/scholarfolio/internal/server/models"
	"github.com/mswiatek/scholarfolio/internal/server/repositories/refreshtokens"
	"github.com/mswiatek/scholarfolio/internal/server/repositories/userprofiles"
	"github.com/mswiatek/scholarfolio/internal/server/repositories/users"
)

// TokenPair is what login/register/refresh hand back to the transport.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// UserService manages accounts, tokens, roles, and per-caller profiles.
type UserService struct {
	users    users.Repository
	tokens   refreshtokens.Repository
	profiles userprofiles.Repository
	config   *sc.Config
}

func NewUserService(users users.Repository, tokens refreshtokens.Repository, profiles userprofiles.Repository, config *sc.Config) *UserService {
	return &UserService{users: users, tokens: tokens, profiles: profiles, config: config}
}

// Register creates an account and returns a token pair. The configured owner
// username is granted the admin role; everyone else registers as a regular
// user.
func (s *UserService) Register(ctx context.Context, username string, password []byte) (*TokenPair, error) {
	if username == "" || len(password) == 0 {
		return nil, common.ErrValidation
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash error: %w", err)
	}

	role := common.RoleUser
	if username == s.config.OwnerUsername {
		role = common.RoleAdmin
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: hash,
		Role:         role,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	return s.issueTokens(ctx, user)
}

// Login verifies credentials and returns a token pair.
func (s *UserService) Login(ctx context.Context, username string, password []byte) (*TokenPair, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, common.ErrUnauthorized
	}

	if !auth.VerifyPassword(password, user.PasswordHash) {
		return nil, common.ErrUnauthorized
	}

	return s.issueTokens(ctx, user)
}

// Refresh rotates a refresh token: the presented token is invalidated and a
// fresh pair is issued.
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	stored, err := s.tokens.Get(ctx, refreshToken)
	if err != nil {
		return nil, common.ErrInvalidToken
	}

	if err := s.tokens.Delete(ctx, stored.ID); err != nil {
		return nil, err
	}

	if time.Now().After(stored.ExpiresAt) {
		return nil, common.ErrRefreshTokenExpired
	}

	user, err := s.users.GetByID(ctx, stored.UserID)
	if err != nil {
		return nil, common.ErrInvalidToken
	}

	return s.issueTokens(ctx, user)
}

func (s *UserService) issueTokens(ctx context.Context, user *models.User) (*TokenPair, error) {
	access, err := auth.GenerateToken(user.ID, user.Role, []byte(s.config.SecretKey), s.config.AccessTokenValidityDuration)
	if err != nil {
		return nil, fmt.Errorf("token error: %w", err)
	}

	refresh := &models.RefreshToken{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(s.config.RefreshTokenValidityDuration),
	}
	if err := s.tokens.Add(ctx, refresh); err != nil {
		return nil, err
	}

	return &TokenPair{AccessToken: access, RefreshToken: refresh.ID}, nil
}

// IsOwner reports whether the given user is the portfolio owner.
func (s *UserService) IsOwner(ctx context.Context, userID string) (bool, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return false, err
	}
	return user.Username == s.config.OwnerUsername, nil
}

// IsAdmin reports whether the given user holds the admin role.
func (s *UserService) IsAdmin(ctx context.Context, userID string) (bool, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return false, err
	}
	return user.Role == common.RoleAdmin, nil
}

// Role returns the given user's role.
func (s *UserService) Role(ctx context.Context, userID string) (string, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}
	return user.Role, nil
}

// AssignRole sets the role of the target user.
func (s *UserService) AssignRole(ctx context.Context, targetUserID, role string) error {
	switch role {
	case common.RoleAdmin, common.RoleUser, common.RoleGuest:
	default:
		return common.ErrValidation
	}
	return s.users.UpdateRole(ctx, targetUserID, role)
}

// GetUserProfile returns the personal record of the given user, or nil when
// none exists yet.
func (s *UserService) GetUserProfile(ctx context.Context, userID string) (*models.UserProfile, error) {
	return s.profiles.Get(ctx, userID)
}

// SaveUserProfile creates or replaces the caller's personal record.
func (s *UserService) SaveUserProfile(ctx context.Context, userID, name string) error {
	if name == "" {
		return common.ErrValidation
	}
	return s.profiles.Save(ctx, &models.UserProfile{UserID: userID, Name: name})
}
