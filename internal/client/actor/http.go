package actor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/mswiatek/scholarfolio/internal/client/blob"
	"github.com/mswiatek/scholarfolio/internal/client/models"
	"github.com/mswiatek/scholarfolio/internal/common"
)

// HTTPActor talks JSON over HTTP to the backend. One actor is bound to one
// identity: its token pair is fixed at construction and only changes through
// the transparent refresh-and-retry on an expired access token.
type HTTPActor struct {
	baseURL string
	client  *http.Client

	mu           sync.Mutex
	accessToken  string
	refreshToken string
	onTokens     func(accessToken, refreshToken string)
}

// Option configures an HTTPActor.
type Option func(*HTTPActor)

// WithTokens binds the actor to an authenticated session.
func WithTokens(accessToken, refreshToken string) Option {
	return func(a *HTTPActor) {
		a.accessToken = accessToken
		a.refreshToken = refreshToken
	}
}

// WithTokenListener registers a callback invoked whenever the actor rotates
// its token pair, so the session store can stay in sync.
func WithTokenListener(fn func(accessToken, refreshToken string)) Option {
	return func(a *HTTPActor) {
		a.onTokens = fn
	}
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(a *HTTPActor) {
		a.client = c
	}
}

func NewHTTPActor(baseURL string, opts ...Option) *HTTPActor {
	a := &HTTPActor{baseURL: baseURL, client: http.DefaultClient}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *HTTPActor) Close() error {
	a.client.CloseIdleConnections()
	return nil
}

// errorBody is the JSON error envelope produced by the backend.
type errorBody struct {
	Message string `json:"message"`
}

// mapError converts an HTTP status into the shared sentinel errors, keeping
// the server's message for display.
func mapError(status int, message string) error {
	var sentinel error
	switch status {
	case http.StatusBadRequest:
		sentinel = common.ErrValidation
	case http.StatusUnauthorized:
		sentinel = common.ErrUnauthorized
	case http.StatusForbidden:
		sentinel = common.ErrForbidden
	case http.StatusNotFound:
		sentinel = common.ErrNotFound
	case http.StatusConflict:
		sentinel = common.ErrAlreadyExists
	default:
		sentinel = common.ErrInternal
	}
	if message == "" {
		return sentinel
	}
	return fmt.Errorf("%w: %s", sentinel, message)
}

// do executes one JSON request. On 401 with a refresh token at hand it
// rotates the token pair and retries once; a second 401 is returned as is.
func (a *HTTPActor) do(ctx context.Context, method, path string, in any) ([]byte, error) {
	body, err := a.attempt(ctx, method, path, in)
	if err == nil {
		return body, nil
	}

	a.mu.Lock()
	canRefresh := a.refreshToken != ""
	a.mu.Unlock()

	if !canRefresh || !errors.Is(err, common.ErrUnauthorized) {
		return nil, err
	}

	if err := a.refresh(ctx); err != nil {
		return nil, err
	}
	return a.attempt(ctx, method, path, in)
}

func (a *HTTPActor) attempt(ctx context.Context, method, path string, in any) ([]byte, error) {
	var reqBody io.Reader
	if in != nil {
		encoded, err := json.Marshal(in)
		if err != nil {
			return nil, err
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, reqBody)
	if err != nil {
		return nil, err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	a.mu.Lock()
	token := a.accessToken
	a.mu.Unlock()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", common.ErrUnavailable, err.Error())
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", common.ErrUnavailable, err.Error())
	}

	if resp.StatusCode >= 400 {
		var eb errorBody
		_ = json.Unmarshal(body, &eb)
		return nil, mapError(resp.StatusCode, eb.Message)
	}
	return body, nil
}

// refresh rotates the token pair using the refresh endpoint. The refresh
// token is single use; a failure here invalidates the session.
func (a *HTTPActor) refresh(ctx context.Context) error {
	a.mu.Lock()
	rt := a.refreshToken
	a.mu.Unlock()

	encoded, err := json.Marshal(refreshRequest{RefreshToken: rt})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/api/auth/refresh", bytes.NewReader(encoded))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s", common.ErrUnavailable, err.Error())
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %s", common.ErrUnavailable, err.Error())
	}
	if resp.StatusCode >= 400 {
		var eb errorBody
		_ = json.Unmarshal(body, &eb)
		return mapError(resp.StatusCode, eb.Message)
	}

	var pair tokenPairResponse
	if err := json.Unmarshal(body, &pair); err != nil {
		return err
	}

	a.mu.Lock()
	a.accessToken = pair.AccessToken
	a.refreshToken = pair.RefreshToken
	fn := a.onTokens
	a.mu.Unlock()

	if fn != nil {
		fn(pair.AccessToken, pair.RefreshToken)
	}
	return nil
}

// resolvePatch turns a blob patch into its wire form, uploading byte-backed
// replacements through a presigned URL first. A locator-backed replacement
// points at an already-persisted object, so it travels as keep.
func (a *HTTPActor) resolvePatch(ctx context.Context, p blob.Patch) (blobPatchJSON, error) {
	if p.IsRemove() {
		return blobPatchJSON{Remove: true}, nil
	}
	ref, ok := p.Ref()
	if !ok || ref.Kind() == blob.KindLocator {
		return blobPatchJSON{Keep: true}, nil
	}

	body, err := a.do(ctx, http.MethodPost, "/api/blobs/upload-url", nil)
	if err != nil {
		return blobPatchJSON{}, err
	}
	var grant uploadURLResponse
	if err := json.Unmarshal(body, &grant); err != nil {
		return blobPatchJSON{}, err
	}

	if err := ref.Upload(ctx, grant.URL); err != nil {
		return blobPatchJSON{}, fmt.Errorf("%w: %s", common.ErrUnavailable, err.Error())
	}
	return blobPatchJSON{Key: grant.Key}, nil
}

func (a *HTTPActor) GetProfile(ctx context.Context) (*models.Profile, error) {
	body, err := a.do(ctx, http.MethodGet, "/api/profile", nil)
	if err != nil {
		return nil, err
	}

	var resp *profileResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, nil
	}

	p := &models.Profile{Name: resp.Name, Biography: resp.Biography}
	if resp.PhotoURL != nil {
		p.Photo = blob.FromLocator(*resp.PhotoURL)
	}
	return p, nil
}

func (a *HTTPActor) SetProfile(ctx context.Context, name, biography string, photo blob.Patch) error {
	patch, err := a.resolvePatch(ctx, photo)
	if err != nil {
		return err
	}
	_, err = a.do(ctx, http.MethodPut, "/api/profile", setProfileRequest{Name: name, Biography: biography, Photo: patch})
	return err
}

func (a *HTTPActor) GetResearchInterests(ctx context.Context) ([]models.ResearchInterest, error) {
	body, err := a.do(ctx, http.MethodGet, "/api/interests", nil)
	if err != nil {
		return nil, err
	}

	var resp []interestResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, err
	}

	interests := make([]models.ResearchInterest, 0, len(resp))
	for _, item := range resp {
		interests = append(interests, models.ResearchInterest{ID: item.ID, Name: item.Name})
	}
	return interests, nil
}

func (a *HTTPActor) AddResearchInterest(ctx context.Context, name string) (string, error) {
	body, err := a.do(ctx, http.MethodPost, "/api/interests", addInterestRequest{Name: name})
	if err != nil {
		return "", err
	}
	var resp idResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", err
	}
	return resp.ID, nil
}

func (a *HTTPActor) DeleteResearchInterest(ctx context.Context, id string) error {
	_, err := a.do(ctx, http.MethodDelete, "/api/interests/"+id, nil)
	return err
}

func (a *HTTPActor) GetPublications(ctx context.Context) ([]models.Publication, error) {
	body, err := a.do(ctx, http.MethodGet, "/api/publications", nil)
	if err != nil {
		return nil, err
	}

	var resp []publicationResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, err
	}

	pubs := make([]models.Publication, 0, len(resp))
	for _, item := range resp {
		pubs = append(pubs, publicationFromResponse(item))
	}
	return pubs, nil
}

func (a *HTTPActor) GetPublication(ctx context.Context, id string) (*models.Publication, error) {
	body, err := a.do(ctx, http.MethodGet, "/api/publications/"+id, nil)
	if err != nil {
		return nil, err
	}
	var resp publicationResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, err
	}
	pub := publicationFromResponse(resp)
	return &pub, nil
}

func publicationFromResponse(resp publicationResponse) models.Publication {
	pub := models.Publication{
		ID:          resp.ID,
		Title:       resp.Title,
		Description: resp.Description,
		Link:        resp.Link,
		Timestamp:   resp.Timestamp,
	}
	if resp.PDFURL != nil {
		pub.PDF = blob.FromLocator(*resp.PDFURL)
	}
	return pub
}

func (a *HTTPActor) AddPublication(ctx context.Context, title, description string, link *string, pdf blob.Patch) (string, error) {
	patch, err := a.resolvePatch(ctx, pdf)
	if err != nil {
		return "", err
	}

	body, err := a.do(ctx, http.MethodPost, "/api/publications", publicationRequest{
		Title:       title,
		Description: description,
		Link:        link,
		PDF:         patch,
	})
	if err != nil {
		return "", err
	}

	var resp idResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", err
	}
	return resp.ID, nil
}

func (a *HTTPActor) UpdatePublication(ctx context.Context, id, title, description string, link *string, pdf blob.Patch) error {
	patch, err := a.resolvePatch(ctx, pdf)
	if err != nil {
		return err
	}
	_, err = a.do(ctx, http.MethodPut, "/api/publications/"+id, publicationRequest{
		Title:       title,
		Description: description,
		Link:        link,
		PDF:         patch,
	})
	return err
}

func (a *HTTPActor) DeletePublication(ctx context.Context, id string) error {
	_, err := a.do(ctx, http.MethodDelete, "/api/publications/"+id, nil)
	return err
}

func (a *HTTPActor) GetContactInfo(ctx context.Context) (*models.ContactInfo, error) {
	body, err := a.do(ctx, http.MethodGet, "/api/contact", nil)
	if err != nil {
		return nil, err
	}

	var resp *contactInfoResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, nil
	}
	return &models.ContactInfo{Email: resp.Email, Affiliation: resp.Affiliation}, nil
}

func (a *HTTPActor) SetContactInfo(ctx context.Context, email, affiliation string) error {
	_, err := a.do(ctx, http.MethodPut, "/api/contact", contactInfoRequest{Email: email, Affiliation: affiliation})
	return err
}

func (a *HTTPActor) GetCallerUserProfile(ctx context.Context) (*models.UserProfile, error) {
	body, err := a.do(ctx, http.MethodGet, "/api/me/profile", nil)
	if err != nil {
		return nil, err
	}

	var resp *userProfileResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, nil
	}
	return &models.UserProfile{Name: resp.Name}, nil
}

func (a *HTTPActor) SaveCallerUserProfile(ctx context.Context, profile models.UserProfile) error {
	_, err := a.do(ctx, http.MethodPut, "/api/me/profile", userProfileRequest{Name: profile.Name})
	return err
}

func (a *HTTPActor) GetUserProfile(ctx context.Context, userID string) (*models.UserProfile, error) {
	body, err := a.do(ctx, http.MethodGet, "/api/users/"+userID+"/profile", nil)
	if err != nil {
		return nil, err
	}

	var resp *userProfileResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, nil
	}
	return &models.UserProfile{Name: resp.Name}, nil
}

func (a *HTTPActor) IsOwner(ctx context.Context) (bool, error) {
	body, err := a.do(ctx, http.MethodGet, "/api/me/owner", nil)
	if err != nil {
		return false, err
	}
	var resp ownerResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return false, err
	}
	return resp.IsOwner, nil
}

func (a *HTTPActor) IsCallerAdmin(ctx context.Context) (bool, error) {
	body, err := a.do(ctx, http.MethodGet, "/api/me/admin", nil)
	if err != nil {
		return false, err
	}
	var resp adminResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return false, err
	}
	return resp.IsAdmin, nil
}

func (a *HTTPActor) GetCallerUserRole(ctx context.Context) (string, error) {
	body, err := a.do(ctx, http.MethodGet, "/api/me/role", nil)
	if err != nil {
		return "", err
	}
	var resp roleResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", err
	}
	return resp.Role, nil
}

func (a *HTTPActor) AssignUserRole(ctx context.Context, userID, role string) error {
	_, err := a.do(ctx, http.MethodPut, "/api/users/"+userID+"/role", assignRoleRequest{Role: role})
	return err
}

func (a *HTTPActor) ClearData(ctx context.Context) error {
	_, err := a.do(ctx, http.MethodPost, "/api/admin/clear", nil)
	return err
}
