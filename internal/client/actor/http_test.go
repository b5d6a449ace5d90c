package actor

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mswiatek/scholarfolio/internal/client/blob"
	"github.com/mswiatek/scholarfolio/internal/common"
)

func TestGetProfile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/profile", r.URL.Path)
		json.NewEncoder(w).Encode(profileResponse{
			Name:      "Dr. A",
			Biography: "researcher",
			PhotoURL:  ptr("https://storage.example/photo.jpg"),
		})
	}))
	defer srv.Close()

	a := NewHTTPActor(srv.URL)
	p, err := a.GetProfile(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Dr. A", p.Name)
	require.NotNil(t, p.Photo)
	require.Equal(t, "https://storage.example/photo.jpg", p.Photo.Locator())
}

func TestGetProfileAbsent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte("null"))
	}))
	defer srv.Close()

	a := NewHTTPActor(srv.URL)
	p, err := a.GetProfile(context.Background())
	require.NoError(t, err)
	require.Nil(t, p)
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		status   int
		expected error
	}{
		{http.StatusBadRequest, common.ErrValidation},
		{http.StatusUnauthorized, common.ErrUnauthorized},
		{http.StatusForbidden, common.ErrForbidden},
		{http.StatusNotFound, common.ErrNotFound},
		{http.StatusConflict, common.ErrAlreadyExists},
		{http.StatusInternalServerError, common.ErrInternal},
	}

	for _, tt := range tests {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tt.status)
			json.NewEncoder(w).Encode(errorBody{Message: "details"})
		}))

		a := NewHTTPActor(srv.URL)
		_, err := a.GetPublication(context.Background(), "p1")
		require.ErrorIs(t, err, tt.expected, "status %d", tt.status)
		require.Contains(t, err.Error(), "details")
		srv.Close()
	}
}

func TestBearerTokenSent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer access-token", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(ownerResponse{IsOwner: true})
	}))
	defer srv.Close()

	a := NewHTTPActor(srv.URL, WithTokens("access-token", "refresh-token"))
	isOwner, err := a.IsOwner(context.Background())
	require.NoError(t, err)
	require.True(t, isOwner)
}

func TestExpiredTokenIsRefreshedAndRetriedOnce(t *testing.T) {
	refreshCalls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/refresh":
			refreshCalls++
			var req refreshRequest
			json.NewDecoder(r.Body).Decode(&req)
			require.Equal(t, "old-refresh", req.RefreshToken)
			json.NewEncoder(w).Encode(tokenPairResponse{AccessToken: "new-access", RefreshToken: "new-refresh"})
		case "/api/me/owner":
			if r.Header.Get("Authorization") != "Bearer new-access" {
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(errorBody{Message: "token expired"})
				return
			}
			json.NewEncoder(w).Encode(ownerResponse{IsOwner: true})
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	var gotAccess, gotRefresh string
	a := NewHTTPActor(srv.URL,
		WithTokens("old-access", "old-refresh"),
		WithTokenListener(func(accessToken, refreshToken string) {
			gotAccess, gotRefresh = accessToken, refreshToken
		}),
	)

	isOwner, err := a.IsOwner(context.Background())
	require.NoError(t, err)
	require.True(t, isOwner)
	require.Equal(t, 1, refreshCalls)
	require.Equal(t, "new-access", gotAccess)
	require.Equal(t, "new-refresh", gotRefresh)
}

func TestAnonymousActorDoesNotRefresh(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NotEqual(t, "/api/auth/refresh", r.URL.Path)
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(errorBody{Message: "unauthorized"})
	}))
	defer srv.Close()

	a := NewHTTPActor(srv.URL)
	_, err := a.IsOwner(context.Background())
	require.ErrorIs(t, err, common.ErrUnauthorized)
}

func TestSetProfileUploadsByteBackedPhoto(t *testing.T) {
	var uploaded []byte
	var patch blobPatchJSON

	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	defer srv.Close()

	mux.HandleFunc("/api/blobs/upload-url", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(uploadURLResponse{Key: "attachments/k1", URL: srv.URL + "/upload"})
	})
	mux.HandleFunc("/upload", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		uploaded, _ = io.ReadAll(r.Body)
	})
	mux.HandleFunc("/api/profile", func(w http.ResponseWriter, r *http.Request) {
		var req setProfileRequest
		json.NewDecoder(r.Body).Decode(&req)
		patch = req.Photo
		w.WriteHeader(http.StatusNoContent)
	})

	a := NewHTTPActor(srv.URL, WithTokens("at", "rt"))
	photo := blob.Replace(blob.FromBytes([]byte("jpeg-bytes")))

	require.NoError(t, a.SetProfile(context.Background(), "Dr. A", "bio", photo))
	require.Equal(t, []byte("jpeg-bytes"), uploaded)
	require.Equal(t, blobPatchJSON{Key: "attachments/k1"}, patch)
}

func TestSetProfilePatchVariants(t *testing.T) {
	var patch blobPatchJSON
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/profile", r.URL.Path)
		var req setProfileRequest
		json.NewDecoder(r.Body).Decode(&req)
		patch = req.Photo
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	a := NewHTTPActor(srv.URL)

	require.NoError(t, a.SetProfile(context.Background(), "Dr. A", "bio", blob.Unchanged()))
	require.Equal(t, blobPatchJSON{Keep: true}, patch)

	require.NoError(t, a.SetProfile(context.Background(), "Dr. A", "bio", blob.Remove()))
	require.Equal(t, blobPatchJSON{Remove: true}, patch)

	// Locator-backed references point at the already-persisted object.
	keep := blob.Replace(blob.FromLocator("https://storage.example/photo.jpg"))
	require.NoError(t, a.SetProfile(context.Background(), "Dr. A", "bio", keep))
	require.Equal(t, blobPatchJSON{Keep: true}, patch)
}

func TestAddPublicationReturnsID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/publications", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)
		json.NewEncoder(w).Encode(idResponse{ID: "pub-1"})
	}))
	defer srv.Close()

	a := NewHTTPActor(srv.URL)
	id, err := a.AddPublication(context.Background(), "Title", "Desc", nil, blob.Unchanged())
	require.NoError(t, err)
	require.Equal(t, "pub-1", id)
}

func TestAuthClientLogin(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/auth/login", r.URL.Path)
		var req credentialsRequest
		json.NewDecoder(r.Body).Decode(&req)
		require.Equal(t, "alice", req.Username)
		require.Equal(t, "secret", req.Password)
		json.NewEncoder(w).Encode(tokenPairResponse{AccessToken: "at", RefreshToken: "rt"})
	}))
	defer srv.Close()

	c := NewAuthClient(srv.URL)
	id, err := c.Login(context.Background(), "alice", "secret")
	require.NoError(t, err)
	require.Equal(t, "alice", id.Principal)
	require.Equal(t, "at", id.AccessToken)
	require.Equal(t, "rt", id.RefreshToken)
}

func TestAuthClientLoginRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(errorBody{Message: "invalid credentials"})
	}))
	defer srv.Close()

	c := NewAuthClient(srv.URL)
	_, err := c.Login(context.Background(), "alice", "wrong")
	require.ErrorIs(t, err, common.ErrUnauthorized)
}

func ptr(s string) *string { return &s }
