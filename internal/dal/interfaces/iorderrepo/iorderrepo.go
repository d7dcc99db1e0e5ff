package iorderrepo

import (
	"context"

	"github.com/corray333/backend-labs/cam2cart/internal/service/models/order"
)

// IOrderRepository is an interface for the order store.
// Lookups that match nothing return order.ErrNotFound.
type IOrderRepository interface {
	Latest(ctx context.Context) (*order.Order, error)
	GetByOrderID(ctx context.Context, orderID string) (*order.Order, error)
	Insert(ctx context.Context, o order.Order) (*order.Order, error)
	Update(ctx context.Context, orderID string, upd order.UpdateOrder) (*order.Order, error)
	Delete(ctx context.Context, orderID string) (*order.Order, error)
}
