package order

import (
	"time"

	"bizdash-be/internal/pricing"
	"bizdash-be/internal/product"

	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentPaid     PaymentStatus = "Paid"
	PaymentPending  PaymentStatus = "Pending"
	PaymentRefunded PaymentStatus = "Refunded"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPaid, PaymentPending, PaymentRefunded:
		return true
	}
	return false
}

// Item is a stored line item. Product is filled in on read and stays nil
// when the referenced product no longer exists.
type Item struct {
	ProductID string           `json:"productId"`
	Quantity  int              `json:"quantity"`
	Product   *product.Product `json:"product,omitempty"`
}

type Order struct {
	ID                   string                 `json:"_id"`
	Code                 string                 `json:"orderCode"`
	ClientName           string                 `json:"clientName"`
	DeliveryAddress      string                 `json:"deliveryAddress"`
	PaymentStatus        PaymentStatus          `json:"paymentStatus"`
	DeliveryStatus       pricing.DeliveryStatus `json:"deliveryStatus"`
	ExpectedDeliveryDate time.Time              `json:"expectedDeliveryDate"`
	Items                []Item                 `json:"products"`
	ShippingCost         decimal.Decimal        `json:"shippingCost"`
	TotalAmount          decimal.Decimal        `json:"totalAmount"`
	DeliveryProgress     int                    `json:"deliveryProgress"`
	CustomerSatisfaction *int                   `json:"customerSatisfaction,omitempty"`
	CreatedAt            time.Time              `json:"createdAt"`
	UpdatedAt            time.Time              `json:"updatedAt"`
}

// LineItems strips the populated products for pricing and storage.
func (o *Order) LineItems() []pricing.LineItem {
	items := make([]pricing.LineItem, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, pricing.LineItem{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	return items
}

type Filter struct {
	DeliveryStatus *pricing.DeliveryStatus
	PaymentStatus  *PaymentStatus
}

// Summary aggregates the order table for the dashboard cards.
type Summary struct {
	TotalOrders     int64
	DeliveredOrders int64
	TotalSales      decimal.Decimal
}

// Change keys reported after an update.
const (
	ChangeAddress  = "address_updated"
	ChangeFeedback = "feedback_updated"
	ChangePayment  = "payment_updated"
	ChangeOrder    = "order_updated"
)

// Lifecycle names used for events and metrics.
const (
	EventCreated = "created"
	EventUpdated = "updated"
	EventDeleted = "deleted"
)
