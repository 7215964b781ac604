package middleware

import (
	"net/http"
	"net/url"

	"bizdash-be/internal/auth"
	"bizdash-be/internal/logger"
	"bizdash-be/internal/utils"

	"go.uber.org/zap"
)

// TokenParser verifies a session token.
type TokenParser interface {
	Parse(tokenStr string) (*auth.Claims, error)
}

// AuthMiddleware fills the user context from a valid session token. Requests
// without one pass through untouched; RequireAuth decides what to reject.
func AuthMiddleware(tokens TokenParser) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := auth.ExtractAccessToken(r)
			if tokenStr == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := tokens.Parse(tokenStr)
			if err != nil {
				logger.FromCtx(r.Context()).Debug("ignoring invalid session token", zap.Error(err))
				next.ServeHTTP(w, r)
				return
			}

			ctx := utils.SetUserContext(r.Context(), claims.UserID, claims.Email, claims.Name)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth rejects requests that carry no authenticated user.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := utils.GetUserIDFromContext(r.Context()); !ok {
			utils.WriteJSONError(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireDashboardSession sends visitors without a session to the sign-in
// page, remembering where they were headed.
func RequireDashboardSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := utils.GetUserIDFromContext(r.Context()); !ok {
			target := "/signin?redirect=" + url.QueryEscape(r.URL.Path)
			http.Redirect(w, r, target, http.StatusTemporaryRedirect)
			return
		}
		next.ServeHTTP(w, r)
	})
}
