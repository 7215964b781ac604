package events

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type Type string

const (
	OrderCreated Type = "order.created"
	OrderUpdated Type = "order.updated"
	OrderDeleted Type = "order.deleted"
)

// OrderEvent is the payload published for every order lifecycle change.
type OrderEvent struct {
	Type           Type            `json:"type"`
	OrderID        string          `json:"orderId"`
	OrderCode      string          `json:"orderCode"`
	DeliveryStatus string          `json:"deliveryStatus,omitempty"`
	TotalAmount    decimal.Decimal `json:"totalAmount"`
	Changes        []string        `json:"changes,omitempty"`
	OccurredAt     time.Time       `json:"occurredAt"`
}

type Publisher interface {
	Publish(ctx context.Context, key string, event any) error
	Close() error
}

// NopPublisher drops every event. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, any) error { return nil }
func (NopPublisher) Close() error                               { return nil }
