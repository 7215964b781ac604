package product

import (
	"encoding/json"
	"math"
	"time"

	"github.com/shopspring/decimal"
)

type Category string

const (
	CategoryElectronics Category = "Electronics"
	CategoryFurniture   Category = "Furniture"
	CategoryClothing    Category = "Clothing"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryElectronics, CategoryFurniture, CategoryClothing:
		return true
	}
	return false
}

type Product struct {
	ID          string          `json:"_id"`
	Name        string          `json:"name"`
	SKU         string          `json:"sku"`
	Category    Category        `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Active      bool            `json:"active"`
	Description *string         `json:"description,omitempty"`
	Image       *string         `json:"image,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// MarshalJSON adds the derived stockLevel next to the stored fields.
func (p Product) MarshalJSON() ([]byte, error) {
	type plain Product
	return json.Marshal(struct {
		plain
		StockLevel StockLevel `json:"stockLevel"`
	}{plain(p), LevelOf(p.Stock)})
}

type CreateInput struct {
	Name        string
	SKU         string
	Category    Category
	Price       decimal.Decimal
	Stock       int
	Description *string
	Image       *string
	Active      *bool
}

// UpdateInput carries only the fields the caller wants to change.
type UpdateInput struct {
	Name        *string
	SKU         *string
	Category    *Category
	Price       *decimal.Decimal
	Stock       *int
	Description *string
	Image       *string
	Active      *bool
}

type Filter struct {
	Category *Category
	Active   *bool
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
	Search   *string
}

// Change keys reported back after an update, one per edited field group.
const (
	ChangeName     = "name"
	ChangeCategory = "category"
	ChangePrice    = "price"
	ChangeStock    = "stock"
	ChangeStatus   = "status"
)

// MaxStock is the largest stock count the stock column holds.
const MaxStock = math.MaxInt32

type StockLevel string

const (
	StockHigh   StockLevel = "high"
	StockMedium StockLevel = "medium"
	StockLow    StockLevel = "low"
)

// LevelOf buckets a stock count the way the product table colors it.
func LevelOf(stock int) StockLevel {
	switch {
	case stock > 50:
		return StockHigh
	case stock < 10:
		return StockLow
	default:
		return StockMedium
	}
}
