package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bizdash-be/internal/auth"
	"bizdash-be/internal/config"
	"bizdash-be/internal/dashboard"
	"bizdash-be/internal/db"
	"bizdash-be/internal/events"
	"bizdash-be/internal/httpapi"
	"bizdash-be/internal/logger"
	"bizdash-be/internal/metrics"
	"bizdash-be/internal/middleware"
	"bizdash-be/internal/order"
	"bizdash-be/internal/product"
	"bizdash-be/internal/user"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	sessionTTL      = 24 * time.Hour
	shutdownTimeout = 10 * time.Second
)

var (
	initDBFunc      = db.NewDatabase
	startServerFunc = func(srv *http.Server) error { return srv.ListenAndServe() }
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "server: %v\n", err)
		os.Exit(1)
	}
}

type server struct {
	handler   http.Handler
	limiter   *middleware.Limiter
	publisher events.Publisher
}

func newServer(cfg *config.Config, database *sql.DB) *server {
	publisher := events.New(cfg.KafkaBrokers, cfg.KafkaTopic)
	m := metrics.New()
	tokens := auth.NewTokenService(cfg.JWTSecret, sessionTTL)
	limiter := middleware.NewLimiter()

	productSvc := product.NewService(product.NewRepository(database))
	userSvc := user.NewService(user.NewRepository(database), tokens)
	orderSvc := order.NewService(order.NewRepository(database), productSvc, publisher, m, order.Options{
		StrictTransitions: cfg.StrictStatusTransitions,
	})
	dashboardSvc := dashboard.NewService(productSvc, orderSvc)

	handlers := httpapi.NewHandlers(httpapi.Deps{
		Users:         userSvc,
		Products:      productSvc,
		Orders:        orderSvc,
		Dashboard:     dashboardSvc,
		SessionTTL:    tokens.TTL(),
		SecureCookies: cfg.AppEnv == "production",
	})

	return &server{
		handler: httpapi.NewRouter(handlers, httpapi.Options{
			Tokens:     tokens,
			Limiter:    limiter,
			Metrics:    m,
			CORSOrigin: cfg.CORSOrigin,
			WebDir:     cfg.WebDir,
		}),
		limiter:   limiter,
		publisher: publisher,
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	if err := logger.Init(cfg.AppEnv); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync()
	log := logger.L()

	// Money goes over the wire as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true

	database, err := initDBFunc(cfg)
	if err != nil {
		return err
	}
	defer database.Close()
	log.Info("database connection established", zap.String("host", cfg.DBHost))

	srv := newServer(cfg, database)
	defer func() {
		if err := srv.publisher.Close(); err != nil {
			log.Warn("failed to close event publisher", zap.Error(err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go srv.limiter.Run(ctx)

	httpSrv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           srv.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("http server listening", zap.String("addr", httpSrv.Addr))
		errCh <- startServerFunc(httpSrv)
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return httpSrv.Shutdown(shutdownCtx)
}
