package handlers

import (
	"context"
	"errors"
	"net/http"

	"basket-bridge/internal/basketbridge/data"
	"basket-bridge/internal/common/clientprotocol"
	"basket-bridge/pkg/logging"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type OrderGettingHandler struct {
	service OrderGettingService
	logger  *logging.ZapLogger
}

type OrderGettingService interface {
	GetOrder(ctx context.Context, orderID string) (clientprotocol.Order, error)
}

func NewOrderGettingHandler(service OrderGettingService, logger *logging.ZapLogger) *OrderGettingHandler {
	return &OrderGettingHandler{
		service: service,
		logger:  logger,
	}
}

func (h *OrderGettingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderID")

	order, err := h.service.GetOrder(r.Context(), orderID)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrOrderNotFound):
			w.WriteHeader(http.StatusNotFound)
			return
		default:
			h.logger.ErrorCtx(r.Context(), "Error getting order", zap.Error(err))
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
	}
	if err := tryWriteResponseJSON(w, order); err != nil {
		h.logger.ErrorCtx(r.Context(), "Error writing response", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
}
