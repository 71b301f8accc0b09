package handlers

import (
	"context"
	"io"
	"net/http"

	"basket-bridge/pkg/logging"
	"go.uber.org/zap"
)

type FeedIngestHandler struct {
	service FeedIngestService
	logger  *logging.ZapLogger
}

type FeedIngestService interface {
	Ingest(ctx context.Context, raw []byte) (int, error)
}

type FeedIngestResponse struct {
	Ingested int `json:"ingested"`
}

func NewFeedIngestHandler(service FeedIngestService, logger *logging.ZapLogger) *FeedIngestHandler {
	return &FeedIngestHandler{
		service: service,
		logger:  logger,
	}
}

func (h *FeedIngestHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	defer closeBody(r.Context(), r.Body, h.logger)

	raw, err := io.ReadAll(r.Body)
	if err != nil {
		h.logger.DebugCtx(r.Context(), "error reading feed body", zap.Error(err))
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	ingested, err := h.service.Ingest(r.Context(), raw)
	if err != nil {
		h.logger.ErrorCtx(r.Context(), "feed ingest failed", zap.Error(err), zap.Int("ingested", ingested))
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	if err := tryWriteResponseJSON(w, FeedIngestResponse{Ingested: ingested}); err != nil {
		h.logger.ErrorCtx(r.Context(), "Error writing response", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
	}
}
