package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blogem/clients-api/userctx"
)

func TestAuthenticatePrefersPrincipalHeader(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/clients", nil)
	r.Header.Set(HeaderPrincipalID, "principal-1")
	r.Header.Set(HeaderUserID, "user-1")
	r.Header.Set(HeaderPrincipalName, "jane@contoso.test")

	user, err := Authenticate(r)

	require.NoError(t, err)
	assert.Equal(t, "principal-1", user.UserID)
	assert.Equal(t, "jane@contoso.test", user.UserName)
}

func TestAuthenticateFallsBackToUserIDHeader(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/clients", nil)
	r.Header.Set(HeaderPrincipalID, "")
	r.Header.Set(HeaderUserID, "user-1")

	user, err := Authenticate(r)

	require.NoError(t, err)
	assert.Equal(t, "user-1", user.UserID)
	assert.Empty(t, user.UserName)
}

func TestAuthenticateMissingIdentity(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/clients", nil)
	r.Header.Set(HeaderPrincipalName, "jane@contoso.test")

	_, err := Authenticate(r)

	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestRequireAuthRejects(t *testing.T) {
	called := false
	handler := RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/clients", nil))

	assert.False(t, called)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, UnauthorizedMessage, strings.TrimSpace(rec.Body.String()))
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/plain")
}

func TestRequireAuthStoresUser(t *testing.T) {
	var gotID string
	handler := RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, _ := userctx.GetUser(r.Context())
		gotID = user.UserID
		w.WriteHeader(http.StatusNoContent)
	}))

	r := httptest.NewRequest(http.MethodGet, "/clients", nil)
	r.Header.Set(HeaderUserID, "user-1")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, r)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "user-1", gotID)
}
