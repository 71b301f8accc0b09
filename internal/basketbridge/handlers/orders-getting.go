package handlers

import (
	"context"
	"net/http"

	"basket-bridge/internal/common/clientprotocol"
	"basket-bridge/pkg/logging"
	"go.uber.org/zap"
)

type OrdersGettingHandler struct {
	service OrdersGettingService
	logger  *logging.ZapLogger
}

type OrdersGettingService interface {
	GetPendingOrders(ctx context.Context) ([]clientprotocol.Order, error)
}

func NewOrdersGettingHandler(service OrdersGettingService, logger *logging.ZapLogger) *OrdersGettingHandler {
	return &OrdersGettingHandler{
		service: service,
		logger:  logger,
	}
}

func (h *OrdersGettingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.GetPendingOrders(r.Context())
	if err != nil {
		h.logger.ErrorCtx(r.Context(), "Error getting orders", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	if len(orders) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if err := tryWriteResponseJSON(w, orders); err != nil {
		h.logger.ErrorCtx(r.Context(), "Error writing response", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
}
