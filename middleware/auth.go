package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/blogem/clients-api/models"
	"github.com/blogem/clients-api/userctx"
)

// Identity headers injected by App Service authentication (Easy Auth) or an
// equivalent reverse proxy. They are trusted as-is: this service performs no
// signature, token or expiry validation and must only be reachable through
// that platform layer, which strips any client-supplied copies.
const (
	HeaderPrincipalID   = "X-MS-CLIENT-PRINCIPAL-ID"
	HeaderUserID        = "X-User-ID"
	HeaderPrincipalName = "X-MS-CLIENT-PRINCIPAL-NAME"
)

// UnauthorizedMessage is the plain-text body of a 401 response
const UnauthorizedMessage = "Unauthorized: No user identity found"

// ErrUnauthorized is returned when no caller identity is present
var ErrUnauthorized = errors.New(UnauthorizedMessage)

// Authenticate extracts the caller identity from request headers. The
// principal ID header wins over X-User-ID when both are non-empty.
func Authenticate(r *http.Request) (models.AuthenticatedUser, error) {
	userID := strings.TrimSpace(r.Header.Get(HeaderPrincipalID))
	if userID == "" {
		userID = strings.TrimSpace(r.Header.Get(HeaderUserID))
	}
	if userID == "" {
		return models.AuthenticatedUser{}, ErrUnauthorized
	}

	return models.AuthenticatedUser{
		UserID:   userID,
		UserName: strings.TrimSpace(r.Header.Get(HeaderPrincipalName)),
	}, nil
}

// RequireAuth ensures the caller is identified.
// If not, responds 401 without calling the next handler.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := Authenticate(r)
		if err != nil {
			http.Error(w, UnauthorizedMessage, http.StatusUnauthorized)
			return
		}

		// Add user to request context for use in handlers
		ctx := userctx.SetUser(r.Context(), user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
