// Package request decodes order request bodies. JSON scalars are cast to the
// field type instead of being rejected.
package request

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/corray333/backend-labs/cam2cart/internal/service/models/order"
)

// CastError reports a JSON value that cannot be cast to the field type.
type CastError struct {
	Kind  string
	Value string
}

func (e *CastError) Error() string {
	return fmt.Sprintf("cast to %s failed for value %s", e.Kind, e.Value)
}

// String is a JSON string, number or boolean kept as text.
// Absent and null leave Valid false.
type String struct {
	Value string
	Valid bool

	falsy bool
}

func (s *String) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*s = String{}

		return nil
	}

	var scalar any
	if err := json.Unmarshal(data, &scalar); err != nil {
		return err
	}

	switch v := scalar.(type) {
	case string:
		*s = String{Value: v, Valid: true, falsy: v == ""}
	case float64:
		*s = String{Value: strconv.FormatFloat(v, 'f', -1, 64), Valid: true, falsy: v == 0}
	case bool:
		*s = String{Value: strconv.FormatBool(v), Valid: true, falsy: !v}
	default:
		return &CastError{Kind: "string", Value: string(data)}
	}

	return nil
}

// OrEmpty returns the text, or "" when the value was absent, null, "", 0 or false.
func (s String) OrEmpty() string {
	if !s.Valid || s.falsy {
		return ""
	}

	return s.Value
}

// Ptr returns nil when the value was absent or null.
func (s String) Ptr() *string {
	if !s.Valid {
		return nil
	}
	v := s.Value

	return &v
}

// Number is a JSON number, numeric string or boolean.
// null and blank strings decode to 0.
type Number float64

func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*n = 0

		return nil
	}

	var scalar any
	if err := json.Unmarshal(data, &scalar); err != nil {
		return err
	}

	switch v := scalar.(type) {
	case float64:
		*n = Number(v)
	case bool:
		if v {
			*n = 1
		} else {
			*n = 0
		}
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			*n = 0

			return nil
		}
		f, err := strconv.ParseFloat(trimmed, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return &CastError{Kind: "number", Value: string(data)}
		}
		*n = Number(f)
	default:
		return &CastError{Kind: "number", Value: string(data)}
	}

	return nil
}

// Item is an order item as sent by clients.
type Item struct {
	ID       Number `json:"id"`
	Name     String `json:"name" swaggertype:"string"`
	Quantity Number `json:"quantity"`
	Price    Number `json:"price"`
}

// ToModel converts Item to service layer Item model.
func (i Item) ToModel() order.Item {
	return order.Item{
		ID:       float64(i.ID),
		Name:     i.Name.Value,
		Quantity: float64(i.Quantity),
		Price:    float64(i.Price),
	}
}

// ItemsToModel converts request items to service layer items.
// nil stays nil so that callers can tell an absent list from an empty one.
func ItemsToModel(items []Item) []order.Item {
	if items == nil {
		return nil
	}

	result := make([]order.Item, len(items))
	for i, item := range items {
		result[i] = item.ToModel()
	}

	return result
}
