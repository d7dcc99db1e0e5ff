package getlatestorder

import (
	"context"
	"errors"
	"net/http"

	"github.com/corray333/backend-labs/cam2cart/internal/service/models/order"
	"github.com/corray333/backend-labs/cam2cart/internal/transport/http/response"
)

// service is an interface for the service layer.
type service interface {
	GetLatest(ctx context.Context) (*order.Order, error)
}

// GetLatestOrder handles the latest order request.
// An empty store is answered with 404 and the placeholder order.
//
//	@Summary	Fetch the most recently created order
//	@Tags		orders
//	@Produce	json
//	@Success	200	{object}	order.Order
//	@Failure	404	{object}	order.Placeholder
//	@Failure	500	{object}	response.Error
//	@Router		/api/orders [get]
func GetLatestOrder(w http.ResponseWriter, r *http.Request, service service) {
	latest, err := service.GetLatest(r.Context())
	if errors.Is(err, order.ErrNotFound) {
		response.JSON(w, r, http.StatusNotFound, order.NewPlaceholder())

		return
	}
	if err != nil {
		response.StoreError(w, r, err, "fetching latest order")

		return
	}

	response.JSON(w, r, http.StatusOK, latest)
}
