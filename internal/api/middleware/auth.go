package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/trouze/movienight/internal/api/apierr"
	"github.com/trouze/movienight/internal/model"
	"github.com/trouze/movienight/internal/services/auth"
)

type contextKey string

const (
	memberContextKey  contextKey = "member"
	sessionContextKey contextKey = "session"
)

// Auth creates authentication middleware
func Auth(authService *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r)
			if token == "" {
				apierr.WriteError(w, apierr.NewUnauthorizedError())
				return
			}

			session, err := authService.ValidateSession(token)
			if err != nil {
				apierr.WriteError(w, err)
				return
			}

			ctx := r.Context()
			ctx = context.WithValue(ctx, sessionContextKey, session)
			ctx = context.WithValue(ctx, memberContextKey, &session.Member)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractToken extracts the session token from the request
func extractToken(r *http.Request) string {
	// Check Authorization header first
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}

	// Fall back to cookie
	cookie, err := r.Cookie("session")
	if err == nil {
		return cookie.Value
	}

	return ""
}

// GetMember returns the authenticated member from the request context
func GetMember(ctx context.Context) *model.Member {
	member, _ := ctx.Value(memberContextKey).(*model.Member)
	return member
}

// GetSession returns the session from the request context
func GetSession(ctx context.Context) *auth.Session {
	session, _ := ctx.Value(sessionContextKey).(*auth.Session)
	return session
}

// MustGetMember returns the authenticated member or panics
func MustGetMember(ctx context.Context) *model.Member {
	member := GetMember(ctx)
	if member == nil {
		panic("no member in context - auth middleware not applied?")
	}
	return member
}
