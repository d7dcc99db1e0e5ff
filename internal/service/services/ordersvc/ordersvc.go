package ordersvc

import (
	"context"
	"log/slog"
	"time"

	"github.com/corray333/backend-labs/cam2cart/internal/dal/interfaces/iorderrepo"
	"github.com/corray333/backend-labs/cam2cart/internal/service/models/order"
	"github.com/corray333/backend-labs/cam2cart/internal/service/models/orderevent"
)

type eventPublisher interface {
	Publish(ctx context.Context, event orderevent.Event) error
}

// OrderService is a service for managing orders.
type OrderService struct {
	orderRepo iorderrepo.IOrderRepository
	publisher eventPublisher
	now       func() time.Time
}

// Option is a function that configures the OrderService.
type Option func(*OrderService)

// MustNewOrderService creates a new OrderService.
// It panics if no order repository is supplied.
func MustNewOrderService(opts ...Option) *OrderService {
	s := &OrderService{
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.orderRepo == nil {
		panic("ordersvc: order repository is required")
	}

	return s
}

// WithOrderRepository sets the order store for the OrderService.
func WithOrderRepository(repo iorderrepo.IOrderRepository) Option {
	return func(s *OrderService) {
		s.orderRepo = repo
	}
}

// WithEventPublisher makes the OrderService publish lifecycle events after
// successful mutations.
func WithEventPublisher(publisher eventPublisher) Option {
	return func(s *OrderService) {
		s.publisher = publisher
	}
}

// WithClock overrides the time source used for createdAt and event timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *OrderService) {
		s.now = now
	}
}

// GetLatest returns the most recently created order.
func (s *OrderService) GetLatest(ctx context.Context) (*order.Order, error) {
	return s.orderRepo.Latest(ctx)
}

// GetByOrderID returns the order with the given order id.
func (s *OrderService) GetByOrderID(ctx context.Context, orderID string) (*order.Order, error) {
	return s.orderRepo.GetByOrderID(ctx, orderID)
}

// Create fills in defaults for missing fields and stores a new order.
func (s *OrderService) Create(ctx context.Context, req order.CreateOrder) (*order.Order, error) {
	// Stores keep millisecond precision at best.
	now := s.now().UTC().Truncate(time.Millisecond)

	o := order.Order{
		OrderID:   req.OrderID,
		Username:  req.Username,
		Items:     req.Items,
		CreatedAt: now,
	}
	if o.OrderID == "" {
		o.OrderID = order.GenerateOrderID(now)
	}
	if o.Username == "" {
		o.Username = order.DefaultUsername
	}
	if o.Items == nil {
		o.Items = []order.Item{}
	}

	created, err := s.orderRepo.Insert(ctx, o)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, orderevent.TypeCreated, created)

	return created, nil
}

// Update overwrites the supplied username and items of an existing order.
// The order id and creation time never change.
func (s *OrderService) Update(
	ctx context.Context,
	orderID string,
	upd order.UpdateOrder,
) (*order.Order, error) {
	updated, err := s.orderRepo.Update(ctx, orderID, upd)
	if err != nil {
		return nil, err
	}

	if !upd.IsEmpty() {
		s.publish(ctx, orderevent.TypeUpdated, updated)
	}

	return updated, nil
}

// Delete removes the order with the given order id and returns it.
func (s *OrderService) Delete(ctx context.Context, orderID string) (*order.Order, error) {
	deleted, err := s.orderRepo.Delete(ctx, orderID)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, orderevent.TypeDeleted, deleted)

	return deleted, nil
}

func (s *OrderService) publish(ctx context.Context, t orderevent.Type, o *order.Order) {
	if s.publisher == nil {
		return
	}

	event := orderevent.New(t, *o, s.now())
	if err := s.publisher.Publish(ctx, event); err != nil {
		slog.Error("Error publishing order event", "type", t, "order_id", o.OrderID, "error", err)
	}
}
