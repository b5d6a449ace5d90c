package actor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/mswiatek/scholarfolio/internal/client/identity"
	"github.com/mswiatek/scholarfolio/internal/common"
)

// AuthClient performs the credential exchange that precedes an actor: it
// has no identity of its own and only talks to the public auth endpoints.
type AuthClient struct {
	baseURL string
	client  *http.Client
}

func NewAuthClient(baseURL string) *AuthClient {
	return &AuthClient{baseURL: baseURL, client: http.DefaultClient}
}

func (c *AuthClient) Register(ctx context.Context, username, password string) (*identity.Identity, error) {
	return c.exchange(ctx, "/api/auth/register", username, password)
}

func (c *AuthClient) Login(ctx context.Context, username, password string) (*identity.Identity, error) {
	return c.exchange(ctx, "/api/auth/login", username, password)
}

func (c *AuthClient) exchange(ctx context.Context, path, username, password string) (*identity.Identity, error) {
	encoded, err := json.Marshal(credentialsRequest{Username: username, Password: password})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(encoded))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
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

	var pair tokenPairResponse
	if err := json.Unmarshal(body, &pair); err != nil {
		return nil, err
	}

	return &identity.Identity{
		Principal:    username,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, nil
}
