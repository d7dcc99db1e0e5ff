package createorder

import (
	"context"
	"net/http"

	"github.com/corray333/backend-labs/cam2cart/internal/service/models/order"
	"github.com/corray333/backend-labs/cam2cart/internal/transport/http/request"
	"github.com/corray333/backend-labs/cam2cart/internal/transport/http/response"
)

// service is an interface for the service layer.
type service interface {
	Create(ctx context.Context, req order.CreateOrder) (*order.Order, error)
}

// createOrderRequest represents a create order request. Every field is optional.
type createOrderRequest struct {
	OrderID  request.String `json:"orderId"  swaggertype:"string"`
	Username request.String `json:"username" swaggertype:"string"`
	Items    []request.Item `json:"items"`
}

// toModel converts createOrderRequest to order.CreateOrder.
// Falsy ids and usernames are dropped so that the defaults apply.
func (r *createOrderRequest) toModel() order.CreateOrder {
	return order.CreateOrder{
		OrderID:  r.OrderID.OrEmpty(),
		Username: r.Username.OrEmpty(),
		Items:    request.ItemsToModel(r.Items),
	}
}

// CreateOrder handles the create order request.
//
//	@Summary	Create an order
//	@Tags		orders
//	@Accept		json
//	@Produce	json
//	@Param		order	body		createOrderRequest	false	"Order fields"
//	@Success	201		{object}	order.Order
//	@Failure	400		{object}	response.Error
//	@Failure	500		{object}	response.Error
//	@Router		/api/orders [post]
func CreateOrder(w http.ResponseWriter, r *http.Request, service service) {
	req := createOrderRequest{}
	if !response.DecodeBody(w, r, &req) {
		return
	}

	created, err := service.Create(r.Context(), req.toModel())
	if err != nil {
		response.StoreError(w, r, err, "creating order")

		return
	}

	response.JSON(w, r, http.StatusCreated, created)
}
