package order

import (
	"fmt"
	"time"
)

const (
	// DefaultUsername is stored when a create request carries no username.
	DefaultUsername    = "saikrishna"
	// PlaceholderOrderID is returned by the latest-order lookup on an empty store.
	PlaceholderOrderID = "ORD-2024-001"
)

// Item represents a line item within an order. Values are stored verbatim.
type Item struct {
	ID       float64 `json:"id"`
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Price    float64 `json:"price"`
}

// Order represents an order document.
type Order struct {
	ID        string    `json:"_id"`
	OrderID   string    `json:"orderId"`
	Username  string    `json:"username"`
	Items     []Item    `json:"items"`
	CreatedAt time.Time `json:"createdAt"`
}

// GenerateOrderID returns the default order id for an order created at now.
func GenerateOrderID(now time.Time) string {
	return fmt.Sprintf("ORD-%d", now.UnixMilli())
}

// Placeholder is the synthetic order handed out when no order has been stored yet.
type Placeholder struct {
	Message  string `json:"message"`
	OrderID  string `json:"orderId"`
	Username string `json:"username"`
	Items    []Item `json:"items"`
}

// NewPlaceholder returns the empty-store placeholder.
func NewPlaceholder() Placeholder {
	return Placeholder{
		Message:  "No orders found",
		OrderID:  PlaceholderOrderID,
		Username: DefaultUsername,
		Items:    []Item{},
	}
}
