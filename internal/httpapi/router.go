package httpapi

import (
	"net/http"

	"bizdash-be/internal/logger"
	"bizdash-be/internal/metrics"
	"bizdash-be/internal/middleware"
	"bizdash-be/internal/utils"
)

type Options struct {
	Tokens     middleware.TokenParser
	Limiter    *middleware.Limiter
	Metrics    *metrics.Metrics
	CORSOrigin string
	// WebDir, when set, is served under /dashboard/ for signed-in users.
	WebDir string
}

type methods map[string]http.HandlerFunc

func (m methods) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h, ok := m[r.Method]
	if !ok {
		methodNotAllowed(w)
		return
	}
	h(w, r)
}

func NewRouter(h *Handlers, opts Options) http.Handler {
	mux := http.NewServeMux()

	route := func(pattern string, next http.Handler) {
		if opts.Metrics != nil {
			next = opts.Metrics.Instrument(pattern, next)
		}
		mux.Handle(pattern, next)
	}
	protected := func(pattern string, next http.Handler) {
		route(pattern, middleware.RequireAuth(next))
	}

	// Auth
	route("/api/auth/signup", methods{http.MethodPost: h.Signup})
	route("/api/auth/signin", methods{
		http.MethodPost:   h.Signin,
		http.MethodDelete: h.Signout,
	})

	// Products
	protected("/api/products", methods{
		http.MethodGet:    h.GetProducts,
		http.MethodPost:   h.CreateProduct,
		http.MethodPut:    h.UpdateProduct,
		http.MethodDelete: h.DeleteProduct,
	})

	// Orders
	protected("/api/orders", methods{
		http.MethodGet:    h.GetOrders,
		http.MethodPost:   h.CreateOrder,
		http.MethodPut:    h.UpdateOrder,
		http.MethodDelete: h.DeleteOrder,
	})
	protected("/api/orders/quote", methods{http.MethodPost: h.QuoteOrder})
	protected("/api/orders/export", methods{http.MethodGet: h.ExportOrders})

	// Dashboard
	protected("/api/dashboard/stats", methods{http.MethodGet: h.DashboardStats})

	var pages http.Handler = methods{http.MethodGet: h.Session}
	if opts.WebDir != "" {
		pages = http.FileServer(http.Dir(opts.WebDir))
	}
	route("/dashboard", middleware.RequireDashboardSession(pages))
	route("/dashboard/", middleware.RequireDashboardSession(pages))

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if opts.Metrics != nil {
		mux.Handle("/metrics", opts.Metrics.Handler())
	}

	var handler http.Handler = mux
	if opts.Limiter != nil {
		handler = opts.Limiter.Middleware(handler)
	}
	if opts.Tokens != nil {
		handler = middleware.AuthMiddleware(opts.Tokens)(handler)
	}
	handler = middleware.CORS(opts.CORSOrigin)(handler)
	handler = logger.LoggingMiddleware(handler)
	handler = logger.RequestIDMiddleware(handler)

	return handler
}
