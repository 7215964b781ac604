package pricing

import (
	"github.com/shopspring/decimal"
)

// LineItem is a (product reference, quantity) pair inside an order.
type LineItem struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// MaxAmount is the largest money value the store can hold (NUMERIC(12,2)).
var MaxAmount = decimal.RequireFromString("9999999999.99")

// PriceLookup resolves a product id to its unit price.
type PriceLookup interface {
	Price(productID string) (decimal.Decimal, bool)
}

// PriceTable is a PriceLookup backed by a map, usually built from the full product list.
type PriceTable map[string]decimal.Decimal

func (t PriceTable) Price(productID string) (decimal.Decimal, bool) {
	p, ok := t[productID]
	return p, ok
}

// Result is what callers persist alongside an order.
type Result struct {
	Subtotal         decimal.Decimal `json:"subtotal"`
	Total            decimal.Decimal `json:"total"`
	DeliveryProgress int             `json:"deliveryProgress"`
}

// LineTotal sums unit price * quantity over the items. Items whose product
// does not resolve contribute zero.
func LineTotal(items []LineItem, prices PriceLookup) decimal.Decimal {
	subtotal := decimal.Zero
	if prices == nil {
		return subtotal
	}

	for _, item := range items {
		price, ok := prices.Price(item.ProductID)
		if !ok {
			continue
		}
		qty := item.Quantity
		if qty < 1 {
			qty = 1
		}
		subtotal = subtotal.Add(price.Mul(decimal.NewFromInt(int64(qty))))
	}

	return subtotal
}

// OrderTotal adds shipping to the subtotal. Negative shipping is passed through.
func OrderTotal(subtotal, shipping decimal.Decimal) decimal.Decimal {
	return subtotal.Add(shipping)
}

// Quote derives subtotal, total and progress in one call.
func Quote(items []LineItem, prices PriceLookup, shipping decimal.Decimal, status DeliveryStatus) (Result, error) {
	progress, err := DeliveryProgress(status)
	if err != nil {
		return Result{}, err
	}

	subtotal := LineTotal(items, prices)
	return Result{
		Subtotal:         subtotal,
		Total:            OrderTotal(subtotal, shipping),
		DeliveryProgress: progress,
	}, nil
}
