package health

import (
	"net/http"
	"time"

	"github.com/corray333/backend-labs/cam2cart/internal/transport/http/response"
)

// jsTimeLayout matches the ISO-8601 form with millisecond precision.
const jsTimeLayout = "2006-01-02T15:04:05.000Z07:00"

type healthResponse struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// Health reports that the process is up. It does not touch the store.
//
//	@Summary	Liveness check
//	@Tags		health
//	@Produce	json
//	@Success	200	{object}	healthResponse
//	@Router		/health [get]
func Health(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, r, http.StatusOK, healthResponse{
		Status:    "OK",
		Message:   "Cam2Cart Backend is running!",
		Timestamp: time.Now().UTC().Format(jsTimeLayout),
	})
}
