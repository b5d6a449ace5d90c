package httpapi

import (
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/mswiatek/scholarfolio/internal/common"
)

func TestBlobPatchValid(t *testing.T) {
	require.True(t, blobPatch{Keep: true}.valid())
	require.True(t, blobPatch{Remove: true}.valid())
	require.True(t, blobPatch{Key: "attachments/k"}.valid())

	require.False(t, blobPatch{}.valid())
	require.False(t, blobPatch{Keep: true, Remove: true}.valid())
	require.False(t, blobPatch{Remove: true, Key: "attachments/k"}.valid())
}

func TestHTTPErrorMapping(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{common.ErrValidation, http.StatusBadRequest},
		{common.ErrNotFound, http.StatusNotFound},
		{common.ErrAlreadyExists, http.StatusConflict},
		{common.ErrUnauthorized, http.StatusUnauthorized},
		{common.ErrInvalidToken, http.StatusUnauthorized},
		{common.ErrRefreshTokenExpired, http.StatusUnauthorized},
		{common.ErrForbidden, http.StatusForbidden},
		{errors.New("surprise"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		var httpErr *echo.HTTPError
		require.ErrorAs(t, httpError(tt.err), &httpErr)
		require.Equal(t, tt.status, httpErr.Code, "error %v", tt.err)
	}
}
