package product

import (
	"context"
	"errors"
	"strings"

	"bizdash-be/internal/logger"
	"bizdash-be/internal/pricing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Service interface {
	Create(ctx context.Context, input CreateInput) (*Product, error)
	Get(ctx context.Context, id string) (*Product, error)
	List(ctx context.Context, f Filter) ([]*Product, error)
	Update(ctx context.Context, id string, input UpdateInput) (*Product, []string, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
	PriceTable(ctx context.Context) (pricing.PriceTable, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func validate(p *Product) error {
	if p.Name == "" {
		return ErrNameRequired
	}
	if p.SKU == "" {
		return ErrSKURequired
	}
	if !p.Category.Valid() {
		return ErrInvalidCategory
	}
	if !p.Price.IsPositive() {
		return ErrInvalidPrice
	}
	if p.Stock < 0 || p.Stock > MaxStock {
		return ErrInvalidStock
	}
	return nil
}

// validID rejects ids that could never match a row, so the database is
// not asked to cast garbage to uuid.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Create"),
	)

	p := &Product{
		Name:        strings.TrimSpace(input.Name),
		SKU:         strings.ToUpper(strings.TrimSpace(input.SKU)),
		Category:    input.Category,
		Price:       input.Price,
		Stock:       input.Stock,
		Active:      true,
		Description: input.Description,
		Image:       input.Image,
	}
	if input.Active != nil {
		p.Active = *input.Active
	}

	if err := validate(p); err != nil {
		log.Warn("invalid product input", zap.Error(err))
		return nil, err
	}

	if err := s.repo.Create(ctx, p); err != nil {
		if errors.Is(err, ErrNameExists) {
			log.Warn("duplicate product name", zap.String("name", p.Name))
		}
		return nil, err
	}

	log.Info("product created",
		zap.String("product_id", p.ID),
		zap.String("sku", p.SKU),
	)
	return p, nil
}

func (s *service) Get(ctx context.Context, id string) (*Product, error) {
	if !validID(id) {
		return nil, ErrProductNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, f Filter) ([]*Product, error) {
	if f.MinPrice != nil && f.MaxPrice != nil && f.MinPrice.GreaterThan(*f.MaxPrice) {
		return nil, ErrInvalidPriceRange
	}
	return s.repo.List(ctx, f)
}

// Update applies the non-nil fields of input and reports which field groups
// actually changed value.
func (s *service) Update(ctx context.Context, id string, input UpdateInput) (*Product, []string, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Update"),
		zap.String("product_id", id),
	)

	if !validID(id) {
		return nil, nil, ErrProductNotFound
	}

	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	changes := []string{}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name != p.Name {
			p.Name = name
			changes = append(changes, ChangeName)
		}
	}
	if input.SKU != nil {
		p.SKU = strings.ToUpper(strings.TrimSpace(*input.SKU))
	}
	if input.Category != nil && *input.Category != p.Category {
		p.Category = *input.Category
		changes = append(changes, ChangeCategory)
	}
	if input.Price != nil && !input.Price.Equal(p.Price) {
		p.Price = *input.Price
		changes = append(changes, ChangePrice)
	}
	if input.Stock != nil && *input.Stock != p.Stock {
		p.Stock = *input.Stock
		changes = append(changes, ChangeStock)
	}
	if input.Active != nil && *input.Active != p.Active {
		p.Active = *input.Active
		changes = append(changes, ChangeStatus)
	}
	if input.Description != nil {
		p.Description = input.Description
	}
	if input.Image != nil {
		p.Image = input.Image
	}

	if err := validate(p); err != nil {
		log.Warn("invalid product update", zap.Error(err))
		return nil, nil, err
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, nil, err
	}

	log.Info("product updated", zap.Strings("changes", changes))
	return p, changes, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return ErrProductNotFound
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	logger.FromCtx(ctx).Info("product deleted",
		zap.String("layer", "service"),
		zap.String("product_id", id),
	)
	return nil
}

func (s *service) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

// PriceTable snapshots the current price of every product, active or not.
func (s *service) PriceTable(ctx context.Context) (pricing.PriceTable, error) {
	products, err := s.repo.List(ctx, Filter{})
	if err != nil {
		return nil, err
	}
	return NewPriceTable(products), nil
}

// NewPriceTable indexes product prices by id.
func NewPriceTable(products []*Product) pricing.PriceTable {
	table := make(pricing.PriceTable, len(products))
	for _, p := range products {
		table[p.ID] = p.Price
	}
	return table
}

// ParseCategory normalizes a category coming from a query string.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.TrimSpace(s))
	if !c.Valid() {
		return "", ErrInvalidCategory
	}
	return c, nil
}

// ParsePrice parses a bound coming from a query string.
func ParsePrice(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.TrimSpace(s))
}
