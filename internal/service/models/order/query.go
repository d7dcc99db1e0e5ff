package order

// CreateOrder carries the optional fields of a create request.
// Empty values are replaced with defaults by the service.
type CreateOrder struct {
	OrderID  string
	Username string
	Items    []Item
}

// UpdateOrder carries the fields of an update request.
// A nil field leaves the stored value untouched; a non-nil field overwrites it.
type UpdateOrder struct {
	Username *string
	Items    *[]Item
}

// IsEmpty reports whether the update changes nothing.
func (u UpdateOrder) IsEmpty() bool {
	return u.Username == nil && u.Items == nil
}
