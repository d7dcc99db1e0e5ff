package deleteorder

import (
	"context"
	"net/http"

	"github.com/corray333/backend-labs/cam2cart/internal/service/models/order"
	"github.com/corray333/backend-labs/cam2cart/internal/transport/http/response"
	"github.com/go-chi/chi/v5"
)

// service is an interface for the service layer.
type service interface {
	Delete(ctx context.Context, orderID string) (*order.Order, error)
}

type deleteOrderResponse struct {
	Message string       `json:"message"`
	Order   *order.Order `json:"order"`
}

// DeleteOrder handles the delete order request.
//
//	@Summary	Delete an order
//	@Tags		orders
//	@Produce	json
//	@Param		orderId	path		string	true	"Order id"
//	@Success	200		{object}	deleteOrderResponse
//	@Failure	404		{object}	response.Message
//	@Failure	500		{object}	response.Error
//	@Router		/api/orders/{orderId} [delete]
func DeleteOrder(w http.ResponseWriter, r *http.Request, service service) {
	deleted, err := service.Delete(r.Context(), chi.URLParam(r, "orderId"))
	if err != nil {
		response.StoreError(w, r, err, "deleting order")

		return
	}

	response.JSON(w, r, http.StatusOK, deleteOrderResponse{
		Message: "Order deleted successfully",
		Order:   deleted,
	})
}
