// Package response writes the JSON bodies shared by the HTTP handlers.
package response

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/corray333/backend-labs/cam2cart/internal/service/models/order"
	"github.com/corray333/backend-labs/cam2cart/internal/transport/http/request"
)

// Message is a body carrying only a human readable message.
type Message struct {
	Message string `json:"message"`
}

// Error is the body returned for store and request failures.
type Error struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// JSON writes v with the given status code.
func JSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.ErrorContext(r.Context(), "Error writing response", "error", err)
	}
}

// OrderNotFound writes the 404 body for an unknown order id.
func OrderNotFound(w http.ResponseWriter, r *http.Request) {
	JSON(w, r, http.StatusNotFound, Message{Message: "Order not found"})
}

// StoreError maps err to a response: order.ErrNotFound becomes 404, anything
// else is logged and echoed back with 500.
func StoreError(w http.ResponseWriter, r *http.Request, err error, action string) {
	if errors.Is(err, order.ErrNotFound) {
		OrderNotFound(w, r)

		return
	}

	slog.ErrorContext(r.Context(), "Error "+action, "error", err)
	JSON(w, r, http.StatusInternalServerError, Error{Message: "Server error", Error: err.Error()})
}

// DecodeBody decodes a JSON request body into dst and reports whether the
// handler should go on. An empty body leaves dst untouched.
// Invalid JSON is answered with 400. Values that cannot be cast to their
// field type fail with 500 like a rejected store write.
func DecodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return true
	}

	var (
		castErr *request.CastError
		typeErr *json.UnmarshalTypeError
	)
	if errors.As(err, &castErr) || errors.As(err, &typeErr) {
		StoreError(w, r, err, "casting request body")

		return false
	}

	slog.ErrorContext(r.Context(), "Error decoding request body", "error", err)
	JSON(w, r, http.StatusBadRequest, Error{Message: "Invalid request body", Error: err.Error()})

	return false
}
