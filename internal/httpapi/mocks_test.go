package httpapi

import (
	"context"

	"bizdash-be/internal/dashboard"
	"bizdash-be/internal/order"
	"bizdash-be/internal/pricing"
	"bizdash-be/internal/product"
	"bizdash-be/internal/user"

	"github.com/stretchr/testify/mock"
)

type MockUsers struct{ mock.Mock }

func (m *MockUsers) Register(ctx context.Context, name, email, password string) (*user.User, error) {
	args := m.Called(ctx, name, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUsers) Login(ctx context.Context, email, password string) (string, *user.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(1) == nil {
		return "", nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(*user.User), args.Error(2)
}

type MockProducts struct{ mock.Mock }

func (m *MockProducts) Create(ctx context.Context, in product.CreateInput) (*product.Product, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

func (m *MockProducts) Get(ctx context.Context, id string) (*product.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

func (m *MockProducts) List(ctx context.Context, f product.Filter) ([]*product.Product, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*product.Product), args.Error(1)
}

func (m *MockProducts) Update(ctx context.Context, id string, in product.UpdateInput) (*product.Product, []string, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*product.Product), args.Get(1).([]string), args.Error(2)
}

func (m *MockProducts) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockProducts) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProducts) PriceTable(ctx context.Context) (pricing.PriceTable, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pricing.PriceTable), args.Error(1)
}

type MockOrders struct{ mock.Mock }

func (m *MockOrders) Create(ctx context.Context, in order.Input) (*order.Order, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrders) Get(ctx context.Context, id string) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrders) List(ctx context.Context, f order.Filter) ([]*order.Order, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrders) Update(ctx context.Context, id string, in order.Input) (*order.Order, []string, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*order.Order), args.Get(1).([]string), args.Error(2)
}

func (m *MockOrders) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockOrders) Quote(ctx context.Context, in order.QuoteInput) (*order.QuoteResult, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.QuoteResult), args.Error(1)
}

func (m *MockOrders) Summary(ctx context.Context) (order.Summary, error) {
	args := m.Called(ctx)
	return args.Get(0).(order.Summary), args.Error(1)
}

type MockDashboard struct{ mock.Mock }

func (m *MockDashboard) Stats(ctx context.Context) (*dashboard.Stats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dashboard.Stats), args.Error(1)
}
