package transport

import (
	"net/http"
	"net/url"
	"time"

	"bizdash-be/internal/auth"
)

// SetSession writes the signed-in user's session. The token cookie is
// httpOnly; the name cookie is readable by the dashboard for its greeting and
// is percent-encoded, since cookie values cannot carry arbitrary UTF-8.
func SetSession(w http.ResponseWriter, token, name string, ttl time.Duration, secure bool) {
	maxAge := int(ttl.Seconds())

	http.SetCookie(w, &http.Cookie{
		Name:     auth.TokenCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     auth.NameCookie,
		Value:    url.PathEscape(name),
		Path:     "/",
		MaxAge:   maxAge,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func ClearSession(w http.ResponseWriter) {
	for _, name := range []string{auth.TokenCookie, auth.NameCookie} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			Expires:  time.Unix(0, 0),
			HttpOnly: name == auth.TokenCookie,
			SameSite: http.SameSiteLaxMode,
		})
	}
}
