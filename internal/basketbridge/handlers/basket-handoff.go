package handlers

import (
	"context"
	"errors"
	"net/http"

	"basket-bridge/internal/basketbridge/data"
	"basket-bridge/internal/basketbridge/retail"
	"basket-bridge/internal/basketbridge/service"
	"basket-bridge/pkg/logging"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type BasketHandoffHandler struct {
	service BasketHandoffService
	logger  *logging.ZapLogger
}

type BasketHandoffService interface {
	HandOff(ctx context.Context, orderID string) (retail.SubmissionResult, error)
}

type HandoffResponse struct {
	BasketID    string `json:"basket_id"`
	RedirectURL string `json:"redirect_url"`
}

func NewBasketHandoffHandler(service BasketHandoffService, logger *logging.ZapLogger) *BasketHandoffHandler {
	return &BasketHandoffHandler{
		service: service,
		logger:  logger,
	}
}

func (h *BasketHandoffHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderID")

	operatorID, err := operatorIDFromCtx(r.Context())
	if err != nil {
		h.logger.ErrorCtx(r.Context(), failedToRecoverOperatorIDErrorMessage, zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	h.logger.InfoCtx(r.Context(), "basket handoff requested",
		zap.String("orderID", orderID),
		zap.Int("operatorID", operatorID),
	)

	result, err := h.service.HandOff(r.Context(), orderID)
	if err != nil {
		h.writeFailure(w, r, orderID, err)
		return
	}

	if err := tryWriteResponseJSON(w, HandoffResponse{
		BasketID:    result.BasketID,
		RedirectURL: result.RedirectURL,
	}); err != nil {
		h.logger.ErrorCtx(r.Context(), "Error writing response", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
	}
}

// writeFailure maps the submission error taxonomy onto HTTP statuses:
// configuration problems are the operator's to fix (422), everything
// upstream surfaces as a gateway failure with the classification and
// upstream detail preserved.
func (h *BasketHandoffHandler) writeFailure(w http.ResponseWriter, r *http.Request, orderID string, err error) {
	var (
		configErr    *retail.ConfigError
		authErr      *retail.AuthError
		apiErr       *retail.APIError
		transportErr *retail.TransportError
	)
	switch {
	case errors.Is(err, data.ErrOrderNotFound):
		w.WriteHeader(http.StatusNotFound)
	case errors.Is(err, service.ErrOrderAlreadyHandedOff):
		writeError(w, http.StatusConflict, "already_handed_off", err.Error())
	case errors.As(err, &configErr):
		h.logger.DebugCtx(r.Context(), "handoff rejected", zap.Error(err))
		writeError(w, http.StatusUnprocessableEntity, "configuration_error", configErr.Error())
	case errors.As(err, &authErr):
		h.logger.ErrorCtx(r.Context(), "handoff authentication failed", zap.String("orderID", orderID), zap.Error(err))
		writeError(w, http.StatusBadGateway, "authentication_failure", authErr.Error())
	case errors.As(err, &apiErr):
		h.logger.ErrorCtx(r.Context(), "handoff rejected by basket API", zap.String("orderID", orderID), zap.Error(err))
		writeError(w, http.StatusBadGateway, "api_error", apiErr.Message)
	case errors.Is(err, retail.ErrMalformedResponse):
		h.logger.ErrorCtx(r.Context(), "handoff response malformed", zap.String("orderID", orderID), zap.Error(err))
		writeError(w, http.StatusBadGateway, "malformed_response", err.Error())
	case errors.As(err, &transportErr):
		h.logger.ErrorCtx(r.Context(), "handoff transport failure", zap.String("orderID", orderID), zap.Error(err))
		writeError(w, http.StatusBadGateway, "transport_error", transportErr.Error())
	default:
		h.logger.ErrorCtx(r.Context(), "handoff handler error", zap.String("orderID", orderID), zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
	}
}
