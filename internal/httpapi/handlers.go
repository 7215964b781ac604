package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"bizdash-be/internal/dashboard"
	"bizdash-be/internal/order"
	"bizdash-be/internal/product"
	"bizdash-be/internal/user"
)

type Handlers struct {
	users     user.Service
	products  product.Service
	orders    order.Service
	dashboard dashboard.Service

	sessionTTL    time.Duration
	secureCookies bool
	now           func() time.Time
}

type Deps struct {
	Users     user.Service
	Products  product.Service
	Orders    order.Service
	Dashboard dashboard.Service

	// SessionTTL bounds the lifetime of the session cookies.
	SessionTTL    time.Duration
	SecureCookies bool
	Now           func() time.Time
}

func NewHandlers(d Deps) *Handlers {
	h := &Handlers{
		users:         d.Users,
		products:      d.Products,
		orders:        d.Orders,
		dashboard:     d.Dashboard,
		sessionTTL:    d.SessionTTL,
		secureCookies: d.SecureCookies,
		now:           d.Now,
	}
	if h.now == nil {
		h.now = time.Now
	}
	if h.sessionTTL <= 0 {
		h.sessionTTL = 24 * time.Hour
	}
	return h
}

func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errBadBody
	}
	return nil
}

func queryID(r *http.Request) (string, bool) {
	id := strings.TrimSpace(r.URL.Query().Get("id"))
	return id, id != ""
}

func queryParam(r *http.Request, key string) (string, bool) {
	v := strings.TrimSpace(r.URL.Query().Get(key))
	return v, v != ""
}
