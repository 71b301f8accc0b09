package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"basket-bridge/internal/basketbridge/service"
	"basket-bridge/pkg/logging"
	"github.com/go-chi/jwtauth/v5"
	"go.uber.org/zap"
)

const (
	failedToRecoverOperatorIDErrorMessage = "failed to recover operator id"
)

func closeBody(ctx context.Context, body io.ReadCloser, logger *logging.ZapLogger) {
	err := body.Close()
	if err != nil {
		logger.ErrorCtx(ctx, "failed to close body", zap.Error(err))
	}
}

func decodeJSON[T any](r io.Reader) (T, error) {
	var out T
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()
	err := decoder.Decode(&out)
	return out, err
}

func operatorIDFromCtx(ctx context.Context) (operatorID int, err error) {
	_, claims, _ := jwtauth.FromContext(ctx)
	return strconv.Atoi(claims[service.OperatorIDClaimName].(string))
}

func tryWriteResponseJSON(w http.ResponseWriter, responseItem any) error {
	res, err := json.Marshal(responseItem)
	if err != nil {
		return err
	}
	w.Header().Add("Content-Type", "application/json")
	_, err = w.Write(res)
	if err != nil {
		return err
	}
	return nil
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func writeError(w http.ResponseWriter, statusCode int, classification, message string) {
	res, err := json.Marshal(errorResponse{
		Error:   classification,
		Message: message,
	})
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Add("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_, _ = w.Write(res)
}
