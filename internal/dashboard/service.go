package dashboard

import (
	"context"
	"fmt"

	"bizdash-be/internal/logger"
	"bizdash-be/internal/order"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type ProductCounter interface {
	Count(ctx context.Context) (int64, error)
}

type OrderSummarizer interface {
	Summary(ctx context.Context) (order.Summary, error)
}

// Stats feeds the overview cards.
type Stats struct {
	TotalProducts   int64           `json:"totalProducts"`
	TotalOrders     int64           `json:"totalOrders"`
	DeliveredOrders int64           `json:"deliveredOrders"`
	TotalSales      decimal.Decimal `json:"totalSales"`
}

type Service interface {
	Stats(ctx context.Context) (*Stats, error)
}

type service struct {
	products ProductCounter
	orders   OrderSummarizer
}

func NewService(products ProductCounter, orders OrderSummarizer) Service {
	return &service{products: products, orders: orders}
}

func (s *service) Stats(ctx context.Context) (*Stats, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Stats"),
	)

	productCount, err := s.products.Count(ctx)
	if err != nil {
		log.Error("failed to count products", zap.Error(err))
		return nil, fmt.Errorf("count products: %w", err)
	}

	summary, err := s.orders.Summary(ctx)
	if err != nil {
		log.Error("failed to summarize orders", zap.Error(err))
		return nil, err
	}

	return &Stats{
		TotalProducts:   productCount,
		TotalOrders:     summary.TotalOrders,
		DeliveredOrders: summary.DeliveredOrders,
		TotalSales:      summary.TotalSales,
	}, nil
}
