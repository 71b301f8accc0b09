package handlers

import (
	"errors"
	"net/http"

	"basket-bridge/internal/basketbridge/retail"
	"basket-bridge/pkg/logging"
	"go.uber.org/zap"
)

type ConfigUpdateHandler struct {
	settings SettingsStore
	logger   *logging.ZapLogger
}

type SettingsStore interface {
	Snapshot() retail.Config
	Update(cfg retail.Config)
}

type ConfigInput struct {
	TokenURL       string `json:"token_url"`
	ClientID       string `json:"client_id"`
	Username       string `json:"username"`
	Password       string `json:"password"`
	APIBaseURL     string `json:"api_base_url"`
	ProxyURL       string `json:"proxy_url"`
	StoreID        string `json:"store_id"`
	WarehouseID    string `json:"warehouse_id"`
	Currency       string `json:"currency"`
	POSRedirectURL string `json:"pos_redirect_url"`
}

func NewConfigUpdateHandler(settings SettingsStore, logger *logging.ZapLogger) *ConfigUpdateHandler {
	return &ConfigUpdateHandler{
		settings: settings,
		logger:   logger,
	}
}

// ServeHTTP replaces the vendor configuration snapshot. An incomplete
// configuration is rejected before it is stored, and a successful
// update invalidates the cached access token (handled by the store).
func (h *ConfigUpdateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	defer closeBody(r.Context(), r.Body, h.logger)

	input, err := decodeJSON[ConfigInput](r.Body)
	if err != nil {
		h.logger.DebugCtx(r.Context(), "error decoding input", zap.Error(err))
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	cfg := retail.Config{
		TokenURL:       input.TokenURL,
		ClientID:       input.ClientID,
		Username:       input.Username,
		Password:       input.Password,
		APIBaseURL:     input.APIBaseURL,
		ProxyURL:       input.ProxyURL,
		StoreID:        input.StoreID,
		WarehouseID:    input.WarehouseID,
		Currency:       input.Currency,
		POSRedirectURL: input.POSRedirectURL,
	}
	if err := cfg.Validate(); err != nil {
		var configErr *retail.ConfigError
		if errors.As(err, &configErr) {
			writeError(w, http.StatusBadRequest, "configuration_error", configErr.Error())
			return
		}
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	h.settings.Update(cfg)
	h.logger.InfoCtx(r.Context(), "vendor configuration updated", zap.String("storeID", cfg.StoreID))
	w.WriteHeader(http.StatusOK)
}
