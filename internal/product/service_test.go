package product

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Mocks ---

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, p *Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockRepository) GetByID(ctx context.Context, id string) (*Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Product), args.Error(1)
}

func (m *MockRepository) List(ctx context.Context, f Filter) ([]*Product, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Product), args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, p *Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// --- Helpers ---

const testID = "5f0c2a57-3f1e-4c2b-8f0a-2a7c9d6b1e11"

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }
func boolPtr(b bool) *bool    { return &b }

func existingProduct() *Product {
	return &Product{
		ID:       testID,
		Name:     "Office Chair",
		SKU:      "CHAIR-01",
		Category: CategoryFurniture,
		Price:    decimal.NewFromInt(120),
		Stock:    8,
		Active:   true,
	}
}

// --- Tests ---

func TestService_Create(t *testing.T) {
	ctx := context.Background()
	valid := CreateInput{
		Name:     "  Gaming Mouse ",
		SKU:      "gm-100",
		Category: CategoryElectronics,
		Price:    decimal.RequireFromString("49.90"),
		Stock:    30,
	}

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		mockRepo.On("Create", ctx, mock.MatchedBy(func(p *Product) bool {
			return p.Name == "Gaming Mouse" && p.SKU == "GM-100" && p.Active
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*Product).ID = testID
		}).Return(nil)

		p, err := svc.Create(ctx, valid)
		require.NoError(t, err)
		assert.Equal(t, testID, p.ID)
		mockRepo.AssertExpectations(t)
	})

	t.Run("InactiveOnCreate", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)
		in := valid
		in.Active = boolPtr(false)

		mockRepo.On("Create", ctx, mock.MatchedBy(func(p *Product) bool { return !p.Active })).Return(nil)

		p, err := svc.Create(ctx, in)
		require.NoError(t, err)
		assert.False(t, p.Active)
	})

	t.Run("Validation", func(t *testing.T) {
		tests := []struct {
			name   string
			mutate func(*CreateInput)
			want   error
		}{
			{"BlankName", func(in *CreateInput) { in.Name = "   " }, ErrNameRequired},
			{"MissingSKU", func(in *CreateInput) { in.SKU = "" }, ErrSKURequired},
			{"BadCategory", func(in *CreateInput) { in.Category = "Toys" }, ErrInvalidCategory},
			{"ZeroPrice", func(in *CreateInput) { in.Price = decimal.Zero }, ErrInvalidPrice},
			{"NegativeStock", func(in *CreateInput) { in.Stock = -1 }, ErrInvalidStock},
			{"StockPastColumn", func(in *CreateInput) { in.Stock = MaxStock + 1 }, ErrInvalidStock},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				mockRepo := new(MockRepository)
				svc := NewService(mockRepo)
				in := valid
				tt.mutate(&in)

				_, err := svc.Create(ctx, in)
				assert.ErrorIs(t, err, tt.want)
				assert.True(t, IsValidationError(err))
				mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			})
		}
	})

	t.Run("DuplicateName", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)
		mockRepo.On("Create", ctx, mock.Anything).Return(ErrNameExists)

		_, err := svc.Create(ctx, valid)
		assert.ErrorIs(t, err, ErrNameExists)
		assert.False(t, IsValidationError(err))
	})
}

func TestService_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("InvalidID", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		_, err := svc.Get(ctx, "not-a-uuid")
		assert.ErrorIs(t, err, ErrProductNotFound)
		mockRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("Found", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)
		mockRepo.On("GetByID", ctx, testID).Return(existingProduct(), nil)

		p, err := svc.Get(ctx, testID)
		require.NoError(t, err)
		assert.Equal(t, "Office Chair", p.Name)
	})
}

func TestService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("InvalidPriceRange", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)
		min := decimal.NewFromInt(100)
		max := decimal.NewFromInt(50)

		_, err := svc.List(ctx, Filter{MinPrice: &min, MaxPrice: &max})
		assert.ErrorIs(t, err, ErrInvalidPriceRange)
	})

	t.Run("PassesFilter", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)
		cat := CategoryClothing
		f := Filter{Category: &cat}
		mockRepo.On("List", ctx, f).Return([]*Product{existingProduct()}, nil)

		res, err := svc.List(ctx, f)
		require.NoError(t, err)
		assert.Len(t, res, 1)
	})
}

func TestService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("ReportsChangedFields", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)
		mockRepo.On("GetByID", ctx, testID).Return(existingProduct(), nil)
		mockRepo.On("Update", ctx, mock.Anything).Return(nil)

		price := decimal.NewFromInt(99)
		p, changes, err := svc.Update(ctx, testID, UpdateInput{
			Name:   strPtr("Office Chair"),
			Price:  &price,
			Stock:  intPtr(60),
			Active: boolPtr(false),
		})
		require.NoError(t, err)
		assert.Equal(t, []string{ChangePrice, ChangeStock, ChangeStatus}, changes)
		assert.True(t, price.Equal(p.Price))
		assert.Equal(t, StockHigh, LevelOf(p.Stock))
	})

	t.Run("NoChanges", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)
		mockRepo.On("GetByID", ctx, testID).Return(existingProduct(), nil)
		mockRepo.On("Update", ctx, mock.Anything).Return(nil)

		_, changes, err := svc.Update(ctx, testID, UpdateInput{})
		require.NoError(t, err)
		assert.Empty(t, changes)
	})

	t.Run("CategoryAndNameChange", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)
		mockRepo.On("GetByID", ctx, testID).Return(existingProduct(), nil)
		mockRepo.On("Update", ctx, mock.Anything).Return(nil)

		cat := CategoryElectronics
		_, changes, err := svc.Update(ctx, testID, UpdateInput{Name: strPtr("Smart Chair"), Category: &cat})
		require.NoError(t, err)
		assert.Equal(t, []string{ChangeName, ChangeCategory}, changes)
	})

	t.Run("InvalidResult", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)
		mockRepo.On("GetByID", ctx, testID).Return(existingProduct(), nil)

		_, _, err := svc.Update(ctx, testID, UpdateInput{Stock: intPtr(-5)})
		assert.ErrorIs(t, err, ErrInvalidStock)
		mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("NotFound", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)
		mockRepo.On("GetByID", ctx, testID).Return(nil, ErrProductNotFound)

		_, _, err := svc.Update(ctx, testID, UpdateInput{})
		assert.ErrorIs(t, err, ErrProductNotFound)
	})
}

func TestService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)
		mockRepo.On("Delete", ctx, testID).Return(nil)

		assert.NoError(t, svc.Delete(ctx, testID))
	})

	t.Run("InvalidID", func(t *testing.T) {
		svc := NewService(new(MockRepository))
		assert.ErrorIs(t, svc.Delete(ctx, "123"), ErrProductNotFound)
	})
}

func TestService_PriceTable(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)
		inactive := &Product{ID: "b", Price: decimal.RequireFromString("2.50"), Active: false}
		mockRepo.On("List", ctx, Filter{}).Return([]*Product{existingProduct(), inactive}, nil)

		table, err := svc.PriceTable(ctx)
		require.NoError(t, err)
		assert.Len(t, table, 2)

		price, ok := table.Price("b")
		assert.True(t, ok)
		assert.Equal(t, "2.5", price.String())
	})

	t.Run("RepoError", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)
		mockRepo.On("List", ctx, Filter{}).Return(nil, errors.New("db error"))

		_, err := svc.PriceTable(ctx)
		assert.Error(t, err)
	})
}

func TestLevelOf(t *testing.T) {
	assert.Equal(t, StockHigh, LevelOf(51))
	assert.Equal(t, StockMedium, LevelOf(50))
	assert.Equal(t, StockMedium, LevelOf(10))
	assert.Equal(t, StockLow, LevelOf(9))
	assert.Equal(t, StockLow, LevelOf(0))
}

func TestParseCategory(t *testing.T) {
	c, err := ParseCategory(" Clothing ")
	require.NoError(t, err)
	assert.Equal(t, CategoryClothing, c)

	_, err = ParseCategory("clothing")
	assert.ErrorIs(t, err, ErrInvalidCategory)
}
