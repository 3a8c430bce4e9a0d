// Package api adapts HTTP requests to orchestrator calls. Handlers stay
// thin: decode, call the service, serialize.
package api

import (
	"log/slog"
	"net/http"

	"github.com/migishaone/xenovaPay/internal/api/httpx"
	"github.com/migishaone/xenovaPay/internal/service"
)

type Handlers struct {
	svc           *service.PaymentService
	publicBaseURL string
	logger        *slog.Logger
}

func NewHandlers(svc *service.PaymentService, publicBaseURL string, logger *slog.Logger) *Handlers {
	return &Handlers{svc: svc, publicBaseURL: publicBaseURL, logger: logger}
}

// writeServiceError maps orchestrator errors onto the wire shapes: an
// initiation failure keeps the local transaction id in the envelope, a
// ServiceError carries its own status, anything else is a generic 500.
func (h *Handlers) writeServiceError(w http.ResponseWriter, err error) {
	if initErr, ok := service.IsInitiationError(err); ok {
		httpx.WriteJSON(w, http.StatusInternalServerError, map[string]string{
			"transactionId": initErr.TransactionID,
			"error":         initErr.Err.Error(),
		})
		return
	}
	if svcErr, ok := service.IsServiceError(err); ok {
		httpx.WriteError(w, svcErr.HTTPStatus, svcErr.Message)
		return
	}
	h.logger.Error("unexpected handler error", "error", err)
	httpx.WriteError(w, http.StatusInternalServerError, "internal error")
}
