package order

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"bizdash-be/internal/events"
	"bizdash-be/internal/logger"
	"bizdash-be/internal/pricing"
	"bizdash-be/internal/product"
	"bizdash-be/internal/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const maxCodeAttempts = 3

// Catalog is the product source used to price and populate orders.
type Catalog interface {
	List(ctx context.Context, f product.Filter) ([]*product.Product, error)
	PriceTable(ctx context.Context) (pricing.PriceTable, error)
}

// Recorder receives order lifecycle counts.
type Recorder interface {
	RecordOrder(event string)
	RecordPublishFailure()
	RecordQuote()
}

type nopRecorder struct{}

func (nopRecorder) RecordOrder(string)    {}
func (nopRecorder) RecordPublishFailure() {}
func (nopRecorder) RecordQuote()          {}

type Options struct {
	// StrictTransitions rejects delivery status changes the state machine
	// does not allow. Off by default: any status may overwrite any other.
	StrictTransitions bool
	Now               func() time.Time
}

type Service interface {
	Create(ctx context.Context, in Input) (*Order, error)
	Get(ctx context.Context, id string) (*Order, error)
	List(ctx context.Context, f Filter) ([]*Order, error)
	Update(ctx context.Context, id string, in Input) (*Order, []string, error)
	Delete(ctx context.Context, id string) error
	Quote(ctx context.Context, in QuoteInput) (*QuoteResult, error)
	Summary(ctx context.Context) (Summary, error)
}

type service struct {
	repo      Repository
	catalog   Catalog
	publisher events.Publisher
	recorder  Recorder
	strict    bool
	now       func() time.Time
}

func NewService(repo Repository, catalog Catalog, publisher events.Publisher, recorder Recorder, opts Options) Service {
	s := &service{
		repo:      repo,
		catalog:   catalog,
		publisher: publisher,
		recorder:  recorder,
		strict:    opts.StrictTransitions,
		now:       opts.Now,
	}
	if s.publisher == nil {
		s.publisher = events.NopPublisher{}
	}
	if s.recorder == nil {
		s.recorder = nopRecorder{}
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

type catalogSnapshot struct {
	prices pricing.PriceTable
	byID   map[string]*product.Product
}

func (s *service) loadCatalog(ctx context.Context) (*catalogSnapshot, error) {
	products, err := s.catalog.List(ctx, product.Filter{})
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	snap := &catalogSnapshot{
		prices: product.NewPriceTable(products),
		byID:   make(map[string]*product.Product, len(products)),
	}
	for _, p := range products {
		snap.byID[p.ID] = p
	}
	return snap, nil
}

func (c *catalogSnapshot) populate(o *Order) {
	for i := range o.Items {
		o.Items[i].Product = c.byID[o.Items[i].ProductID]
	}
}

// price stores the computed total and progress on o.
func price(o *Order, prices pricing.PriceLookup) error {
	res, err := pricing.Quote(o.LineItems(), prices, o.ShippingCost, o.DeliveryStatus)
	if err != nil {
		return err
	}
	if res.Total.GreaterThan(pricing.MaxAmount) {
		return ErrTotalTooLarge
	}
	o.TotalAmount = res.Total
	o.DeliveryProgress = res.DeliveryProgress
	return nil
}

func (s *service) publish(ctx context.Context, t events.Type, o *Order, changes []string) {
	ev := events.OrderEvent{
		Type:           t,
		OrderID:        o.ID,
		OrderCode:      o.Code,
		DeliveryStatus: string(o.DeliveryStatus),
		TotalAmount:    o.TotalAmount,
		Changes:        changes,
		OccurredAt:     s.now().UTC(),
	}

	if err := s.publisher.Publish(ctx, o.ID, ev); err != nil {
		s.recorder.RecordPublishFailure()
		logger.FromCtx(ctx).Warn("failed to publish order event",
			zap.String("layer", "service"),
			zap.String("event", string(t)),
			zap.String("order_id", o.ID),
			zap.Error(err),
		)
	}
}

func (s *service) Create(ctx context.Context, in Input) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Create"),
	)

	o, err := in.toOrder()
	if err != nil {
		log.Warn("invalid order input", zap.Error(err))
		return nil, err
	}

	snap, err := s.loadCatalog(ctx)
	if err != nil {
		log.Error("failed to load catalog", zap.Error(err))
		return nil, err
	}
	if err := price(o, snap.prices); err != nil {
		return nil, err
	}

	now := s.now()
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		o.Code = utils.GenerateOrderCode(now.Add(time.Duration(attempt) * time.Millisecond))
		err = s.repo.Create(ctx, o)
		if !errors.Is(err, errDuplicateCode) {
			break
		}
		log.Info("order code collision, retrying", zap.String("order_code", o.Code))
	}
	if err != nil {
		return nil, err
	}

	snap.populate(o)
	s.publish(ctx, events.OrderCreated, o, nil)
	s.recorder.RecordOrder(EventCreated)

	log.Info("order created",
		zap.String("order_id", o.ID),
		zap.String("order_code", o.Code),
		zap.String("total", o.TotalAmount.String()),
	)
	return o, nil
}

func (s *service) Get(ctx context.Context, id string) (*Order, error) {
	if !validID(id) {
		return nil, ErrOrderNotFound
	}

	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	snap, err := s.loadCatalog(ctx)
	if err != nil {
		return nil, err
	}
	snap.populate(o)
	return o, nil
}

func (s *service) List(ctx context.Context, f Filter) ([]*Order, error) {
	if f.DeliveryStatus != nil && !f.DeliveryStatus.Valid() {
		return nil, fmt.Errorf("%w: %q", pricing.ErrInvalidStatus, string(*f.DeliveryStatus))
	}
	if f.PaymentStatus != nil && !f.PaymentStatus.Valid() {
		return nil, ErrInvalidPaymentStatus
	}

	orders, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return orders, nil
	}

	snap, err := s.loadCatalog(ctx)
	if err != nil {
		return nil, err
	}
	for _, o := range orders {
		snap.populate(o)
	}
	return orders, nil
}

func sameRating(a, b *int) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// diff names the field groups whose value changed between prev and next.
func diff(prev, next *Order) []string {
	changes := []string{}
	if prev.DeliveryAddress != next.DeliveryAddress {
		changes = append(changes, ChangeAddress)
	}
	if !sameRating(prev.CustomerSatisfaction, next.CustomerSatisfaction) {
		changes = append(changes, ChangeFeedback)
	}
	if prev.PaymentStatus != next.PaymentStatus {
		changes = append(changes, ChangePayment)
	}
	if len(changes) == 0 {
		changes = append(changes, ChangeOrder)
	}
	return changes
}

// Update replaces the whole order with in and recomputes its total.
func (s *service) Update(ctx context.Context, id string, in Input) (*Order, []string, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Update"),
		zap.String("order_id", id),
	)

	if !validID(id) {
		return nil, nil, ErrOrderNotFound
	}

	prev, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	next, err := in.toOrder()
	if err != nil {
		log.Warn("invalid order input", zap.Error(err))
		return nil, nil, err
	}

	if s.strict && !pricing.CanTransition(prev.DeliveryStatus, next.DeliveryStatus) {
		log.Warn("rejected delivery status transition",
			zap.String("from", string(prev.DeliveryStatus)),
			zap.String("to", string(next.DeliveryStatus)),
		)
		return nil, nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, prev.DeliveryStatus, next.DeliveryStatus)
	}

	snap, err := s.loadCatalog(ctx)
	if err != nil {
		return nil, nil, err
	}
	if err := price(next, snap.prices); err != nil {
		return nil, nil, err
	}

	next.ID = prev.ID
	next.Code = prev.Code
	changes := diff(prev, next)

	if err := s.repo.Update(ctx, next); err != nil {
		return nil, nil, err
	}

	snap.populate(next)
	s.publish(ctx, events.OrderUpdated, next, changes)
	s.recorder.RecordOrder(EventUpdated)

	log.Info("order updated", zap.Strings("changes", changes))
	return next, changes, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return ErrOrderNotFound
	}

	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.publish(ctx, events.OrderDeleted, o, nil)
	s.recorder.RecordOrder(EventDeleted)

	logger.FromCtx(ctx).Info("order deleted",
		zap.String("layer", "service"),
		zap.String("order_id", id),
		zap.String("order_code", o.Code),
	)
	return nil
}

// Quote prices a draft without validating or persisting it.
func (s *service) Quote(ctx context.Context, in QuoteInput) (*QuoteResult, error) {
	status := pricing.DeliveryStatus(strings.TrimSpace(in.DeliveryStatus))
	if status == "" {
		status = pricing.DeliveryPending
	}

	prices, err := s.catalog.PriceTable(ctx)
	if err != nil {
		return nil, fmt.Errorf("load prices: %w", err)
	}

	res, err := pricing.Quote(in.lineItems(), prices, pricing.CoerceShipping(in.ShippingCost), status)
	if err != nil {
		return nil, err
	}
	badge, err := pricing.StatusBadge(status)
	if err != nil {
		return nil, err
	}

	// An out-of-range rating would be rejected on save, so it displays as unrated.
	rating, _ := coerceSatisfaction(in.CustomerSatisfaction)

	s.recorder.RecordQuote()
	return &QuoteResult{
		Result:       res,
		Badge:        badge,
		Satisfaction: pricing.SatisfactionDisplay(status, rating),
	}, nil
}

func (s *service) Summary(ctx context.Context) (Summary, error) {
	return s.repo.Summary(ctx)
}
