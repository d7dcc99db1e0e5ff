package getorder

import (
	"context"
	"net/http"

	"github.com/corray333/backend-labs/cam2cart/internal/service/models/order"
	"github.com/corray333/backend-labs/cam2cart/internal/transport/http/response"
	"github.com/go-chi/chi/v5"
)

// service is an interface for the service layer.
type service interface {
	GetByOrderID(ctx context.Context, orderID string) (*order.Order, error)
}

// GetOrder handles the get order by id request.
//
//	@Summary	Fetch an order by its orderId
//	@Tags		orders
//	@Produce	json
//	@Param		orderId	path		string	true	"Order id"
//	@Success	200		{object}	order.Order
//	@Failure	404		{object}	response.Message
//	@Failure	500		{object}	response.Error
//	@Router		/api/orders/{orderId} [get]
func GetOrder(w http.ResponseWriter, r *http.Request, service service) {
	found, err := service.GetByOrderID(r.Context(), chi.URLParam(r, "orderId"))
	if err != nil {
		response.StoreError(w, r, err, "fetching order")

		return
	}

	response.JSON(w, r, http.StatusOK, found)
}
