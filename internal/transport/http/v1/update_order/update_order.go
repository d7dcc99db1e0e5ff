package updateorder

import (
	"context"
	"net/http"

	"github.com/corray333/backend-labs/cam2cart/internal/service/models/order"
	"github.com/corray333/backend-labs/cam2cart/internal/transport/http/request"
	"github.com/corray333/backend-labs/cam2cart/internal/transport/http/response"
	"github.com/go-chi/chi/v5"
)

// service is an interface for the service layer.
type service interface {
	Update(ctx context.Context, orderID string, upd order.UpdateOrder) (*order.Order, error)
}

// updateOrderRequest represents an update order request.
// Absent or null fields keep their stored values.
type updateOrderRequest struct {
	Username request.String  `json:"username" swaggertype:"string"`
	Items    *[]request.Item `json:"items"`
}

// toModel converts updateOrderRequest to order.UpdateOrder.
func (r *updateOrderRequest) toModel() order.UpdateOrder {
	upd := order.UpdateOrder{
		Username: r.Username.Ptr(),
	}
	if r.Items != nil {
		items := request.ItemsToModel(*r.Items)
		upd.Items = &items
	}

	return upd
}

// UpdateOrder handles the update order request.
//
//	@Summary	Replace the username and/or items of an order
//	@Tags		orders
//	@Accept		json
//	@Produce	json
//	@Param		orderId	path		string				true	"Order id"
//	@Param		order	body		updateOrderRequest	false	"Fields to overwrite"
//	@Success	200		{object}	order.Order
//	@Failure	400		{object}	response.Error
//	@Failure	404		{object}	response.Message
//	@Failure	500		{object}	response.Error
//	@Router		/api/orders/{orderId} [put]
func UpdateOrder(w http.ResponseWriter, r *http.Request, service service) {
	req := updateOrderRequest{}
	if !response.DecodeBody(w, r, &req) {
		return
	}

	updated, err := service.Update(r.Context(), chi.URLParam(r, "orderId"), req.toModel())
	if err != nil {
		response.StoreError(w, r, err, "updating order")

		return
	}

	response.JSON(w, r, http.StatusOK, updated)
}
