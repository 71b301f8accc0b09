package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"basket-bridge/internal/basketbridge/service"
	"basket-bridge/pkg/logging"
	"go.uber.org/zap"
)

type RegisterHandler struct {
	service RegistrationService
	logger  *logging.ZapLogger
}

type RegistrationInput struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type RegistrationService interface {
	Register(ctx context.Context, login string, password string) (string, error)
}

func NewRegisterHandler(service RegistrationService, logger *logging.ZapLogger) *RegisterHandler {
	return &RegisterHandler{
		service: service,
		logger:  logger,
	}
}

func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	defer closeBody(r.Context(), r.Body, h.logger)

	input, err := decodeJSON[RegistrationInput](r.Body)
	if err != nil {
		h.logger.DebugCtx(r.Context(), "error decoding input", zap.Error(err))
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	tkn, err := h.service.Register(r.Context(), input.Login, input.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrLoginTaken):
			h.logger.DebugCtx(r.Context(), "login is already taken", zap.String("login", input.Login))
			w.WriteHeader(http.StatusConflict)
			return
		default:
			h.logger.ErrorCtx(r.Context(), "registration handler error", zap.Error(err))
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
	}

	w.Header().Set("Authorization", fmt.Sprintf("Bearer %s", tkn))
}
