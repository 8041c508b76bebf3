package http

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/zoneboy/zilcycler/internal/repository"
	"github.com/zoneboy/zilcycler/internal/security"
	"github.com/zoneboy/zilcycler/internal/service"
)

type contextKey string

const sessionKey contextKey = "session"

// SessionFromContext returns the verified session claims injected by the
// auth middleware.
func SessionFromContext(ctx context.Context) (*security.SessionClaims, bool) {
	claims, ok := ctx.Value(sessionKey).(*security.SessionClaims)
	return claims, ok
}

type AuthMiddleware struct {
	tokens      security.TokenManager
	accountRepo repository.AccountRepository
}

func NewAuthMiddleware(tokens security.TokenManager, accountRepo repository.AccountRepository) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, accountRepo: accountRepo}
}

// Require verifies the session token AND the live account state. A valid
// signature alone is not enough: a suspended account's outstanding token
// must stop working on the next request, and a role change must take effect
// without waiting for re-login.
func (m *AuthMiddleware) Require(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, err := m.verify(r)
		if err != nil {
			respondError(w, r, err)
			return
		}
		next(w, r.WithContext(context.WithValue(r.Context(), sessionKey, claims)))
	}
}

func (m *AuthMiddleware) verify(r *http.Request) (*security.SessionClaims, error) {
	token := extractBearer(r)
	if token == "" {
		return nil, security.ErrInvalidToken
	}

	claims, err := m.tokens.Verify(token)
	if err != nil {
		return nil, err
	}

	account, err := m.accountRepo.GetByID(r.Context(), claims.AccountID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, security.ErrInvalidToken
		}
		return nil, err
	}
	if !account.Active {
		return nil, security.ErrInvalidToken
	}

	// Authorization decisions use the stored role, not whatever the token
	// said when it was minted.
	claims.Role = account.Role
	claims.Email = account.Email
	return claims, nil
}

// RequirePrivileged restricts a route to staff and admin accounts.
func (m *AuthMiddleware) RequirePrivileged(next http.HandlerFunc) http.HandlerFunc {
	return m.Require(func(w http.ResponseWriter, r *http.Request) {
		claims, _ := SessionFromContext(r.Context())
		if !claims.Role.Privileged() {
			respondError(w, r, service.ErrForbidden)
			return
		}
		next(w, r)
	})
}

func extractBearer(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	if len(header) > 7 && strings.EqualFold(header[:7], "Bearer ") {
		return header[7:]
	}
	return header
}
