package orderevent

import (
	"time"

	"github.com/corray333/backend-labs/cam2cart/internal/service/models/order"
)

// Type is the kind of lifecycle change an event describes.
// It doubles as the AMQP routing key.
type Type string

const (
	TypeCreated Type = "order.created"
	TypeUpdated Type = "order.updated"
	TypeDeleted Type = "order.deleted"
)

// Event is published after an order mutation succeeds.
type Event struct {
	Type       Type        `json:"type"`
	OrderID    string      `json:"orderId"`
	OccurredAt time.Time   `json:"occurredAt"`
	Order      order.Order `json:"order"`
}

// New builds an event for o.
func New(t Type, o order.Order, at time.Time) Event {
	return Event{
		Type:       t,
		OrderID:    o.OrderID,
		OccurredAt: at.UTC(),
		Order:      o,
	}
}
