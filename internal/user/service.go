package user

import (
	"context"
	"errors"
	"strings"

	"bizdash-be/internal/logger"

	"go.uber.org/zap"
)

// TokenIssuer signs the session token handed out on sign-in.
type TokenIssuer interface {
	Generate(userID, email, name string) (string, error)
}

type Service interface {
	Register(ctx context.Context, name, email, password string) (*User, error)
	Login(ctx context.Context, email, password string) (string, *User, error)
}

type service struct {
	repo   Repository
	tokens TokenIssuer
}

func NewService(repo Repository, tokens TokenIssuer) Service {
	return &service{repo: repo, tokens: tokens}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *service) Register(ctx context.Context, name, email, password string) (*User, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Register"),
	)

	name = strings.TrimSpace(name)
	email = normalizeEmail(email)
	if name == "" || email == "" || password == "" {
		return nil, ErrMissingFields
	}

	hashed, err := HashPassword(password)
	if err != nil {
		log.Error("failed to hash password", zap.Error(err))
		return nil, err
	}

	u, err := s.repo.Create(ctx, name, email, hashed)
	if err != nil {
		if errors.Is(err, ErrEmailExists) {
			log.Warn("email already registered", zap.String("email", email))
		}
		return nil, err
	}

	log.Info("register service completed",
		zap.String("user_id", u.ID),
		zap.String("email", email),
	)
	return u, nil
}

func (s *service) Login(ctx context.Context, email, password string) (string, *User, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Login"),
	)

	email = normalizeEmail(email)
	if email == "" || password == "" {
		return "", nil, ErrInvalidCredentials
	}

	u, err := s.repo.FindByEmail(ctx, email)
	if errors.Is(err, ErrUserNotFound) {
		log.Info("email not found")
		return "", nil, ErrInvalidCredentials
	}
	if err != nil {
		log.Error("failed to find user", zap.Error(err))
		return "", nil, err
	}

	if !CheckPasswordHash(password, u.Password) {
		log.Info("password not match", zap.String("user_id", u.ID))
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(u.ID, u.Email, u.Name)
	if err != nil {
		log.Error("failed to generate jwt", zap.String("user_id", u.ID), zap.Error(err))
		return "", nil, err
	}

	return token, u, nil
}
