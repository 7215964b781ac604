package order

import (
	"strings"
	"time"

	"bizdash-be/internal/pricing"
)

// Input is the order form as posted by the dashboard. Numeric fields are
// loose so that strings and partially typed values decode.
type Input struct {
	ClientName           string              `json:"clientName"`
	DeliveryAddress      string              `json:"deliveryAddress"`
	PaymentStatus        string              `json:"paymentStatus"`
	DeliveryStatus       string              `json:"deliveryStatus"`
	ExpectedDeliveryDate string              `json:"expectedDeliveryDate"`
	Products             []ItemInput         `json:"products"`
	ShippingCost         pricing.LooseNumber `json:"shippingCost"`
	CustomerSatisfaction pricing.LooseNumber `json:"customerSatisfaction"`
}

type ItemInput struct {
	ProductID string              `json:"productId"`
	Quantity  pricing.LooseNumber `json:"quantity"`
}

var dateLayouts = []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrDeliveryDateRequired
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, ErrInvalidDeliveryDate
}

// coerceItems applies quantity coercion. Items are kept in input order.
func coerceItems(in []ItemInput) ([]Item, error) {
	if len(in) == 0 {
		return nil, ErrNoItems
	}

	items := make([]Item, 0, len(in))
	for _, it := range in {
		id := strings.TrimSpace(it.ProductID)
		if id == "" {
			return nil, ErrItemProductRequired
		}
		items = append(items, Item{ProductID: id, Quantity: pricing.CoerceQuantity(it.Quantity)})
	}
	return items, nil
}

func coerceSatisfaction(n pricing.LooseNumber) (*int, error) {
	d, ok := n.Decimal()
	if !ok {
		return nil, nil
	}
	if !d.IsInteger() {
		return nil, ErrInvalidSatisfaction
	}
	v, ok := pricing.WholeNumber(d, 1, 3)
	if !ok {
		return nil, ErrInvalidSatisfaction
	}
	return &v, nil
}

// toOrder validates the form and builds an unpriced order. Blank statuses
// default to Pending. Satisfaction only survives on delivered orders.
func (in Input) toOrder() (*Order, error) {
	o := &Order{
		ClientName:      strings.TrimSpace(in.ClientName),
		DeliveryAddress: strings.TrimSpace(in.DeliveryAddress),
		PaymentStatus:   PaymentStatus(strings.TrimSpace(in.PaymentStatus)),
		DeliveryStatus:  pricing.DeliveryStatus(strings.TrimSpace(in.DeliveryStatus)),
	}

	if o.ClientName == "" {
		return nil, ErrClientNameRequired
	}
	if o.DeliveryAddress == "" {
		return nil, ErrAddressRequired
	}

	date, err := parseDate(in.ExpectedDeliveryDate)
	if err != nil {
		return nil, err
	}
	o.ExpectedDeliveryDate = date

	if o.Items, err = coerceItems(in.Products); err != nil {
		return nil, err
	}

	if o.PaymentStatus == "" {
		o.PaymentStatus = PaymentPending
	}
	if !o.PaymentStatus.Valid() {
		return nil, ErrInvalidPaymentStatus
	}

	if o.DeliveryStatus == "" {
		o.DeliveryStatus = pricing.DeliveryPending
	}
	if !o.DeliveryStatus.Valid() {
		return nil, pricing.ErrInvalidStatus
	}

	o.ShippingCost = pricing.CoerceShipping(in.ShippingCost)
	if o.ShippingCost.IsNegative() {
		return nil, ErrNegativeShipping
	}

	if o.CustomerSatisfaction, err = coerceSatisfaction(in.CustomerSatisfaction); err != nil {
		return nil, err
	}
	if o.DeliveryStatus != pricing.DeliveryDelivered {
		o.CustomerSatisfaction = nil
	}

	return o, nil
}

// QuoteInput drives the cost preview shown while an order is being edited.
// Unlike Input it never fails on incomplete data.
type QuoteInput struct {
	DeliveryStatus       string              `json:"deliveryStatus"`
	Products             []ItemInput         `json:"products"`
	ShippingCost         pricing.LooseNumber `json:"shippingCost"`
	CustomerSatisfaction pricing.LooseNumber `json:"customerSatisfaction"`
}

func (in QuoteInput) lineItems() []pricing.LineItem {
	items := make([]pricing.LineItem, 0, len(in.Products))
	for _, it := range in.Products {
		if strings.TrimSpace(it.ProductID) == "" {
			continue
		}
		items = append(items, pricing.LineItem{
			ProductID: strings.TrimSpace(it.ProductID),
			Quantity:  pricing.CoerceQuantity(it.Quantity),
		})
	}
	return items
}

type QuoteResult struct {
	pricing.Result
	Badge        pricing.Badge `json:"badge"`
	Satisfaction pricing.Glyph `json:"satisfaction"`
}
