package auth

import (
	"net/http"
	"strings"
)

const (
	TokenCookie = "auth_token"
	NameCookie  = "auth_name"
)

// ExtractAccessToken reads the session token from the auth cookie, falling
// back to an Authorization bearer header for API clients.
func ExtractAccessToken(r *http.Request) string {
	if cookie, err := r.Cookie(TokenCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}

	return ""
}
