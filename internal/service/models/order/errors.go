package order

import "errors"

var (
	// ErrNotFound is returned when no order matches the lookup.
	ErrNotFound         = errors.New("order not found")
	// ErrDuplicateOrderID is returned when an insert violates orderId uniqueness.
	ErrDuplicateOrderID = errors.New("duplicate orderId")
	// ErrStoreUnavailable is returned when the store client could not be created.
	ErrStoreUnavailable = errors.New("order store unavailable")
)
