package service

import (
	"context"
	"errors"
	"fmt"

	"basket-bridge/internal/basketbridge/data"
	"basket-bridge/internal/basketbridge/retail"
	"basket-bridge/pkg/logging"
	"go.uber.org/zap"
)

var (
	ErrOrderAlreadyHandedOff = errors.New("order is already handed off")
)

type BasketSubmitter interface {
	Submit(ctx context.Context, order *data.Order, cfg retail.Config) (retail.SubmissionResult, error)
}

type ConfigProvider interface {
	Snapshot() retail.Config
}

// Handoff drives one basket submission for a stored order and records
// the outcome on the order itself. The submission is single-attempt;
// nothing about the created basket is persisted beyond the order's own
// handoff mark.
type Handoff struct {
	orderRepository OrderRepository
	submitter       BasketSubmitter
	settings        ConfigProvider
	logger          *logging.ZapLogger
}

func NewHandoff(
	orderRepository OrderRepository,
	submitter BasketSubmitter,
	settings ConfigProvider,
	logger *logging.ZapLogger,
) *Handoff {
	return &Handoff{
		orderRepository: orderRepository,
		submitter:       submitter,
		settings:        settings,
		logger:          logger,
	}
}

func (h *Handoff) HandOff(ctx context.Context, orderID string) (retail.SubmissionResult, error) {
	order, err := h.orderRepository.GetOrder(ctx, orderID)
	if err != nil {
		return retail.SubmissionResult{}, fmt.Errorf("error getting order: %w", err)
	}
	if order.Status == data.HandedOffStatus {
		return retail.SubmissionResult{}, ErrOrderAlreadyHandedOff
	}

	cfg := h.settings.Snapshot()
	result, err := h.submitter.Submit(ctx, order, cfg)
	if err != nil {
		return retail.SubmissionResult{}, err
	}

	// The basket already exists upstream at this point; a failure to
	// record that locally must not hide the redirect from the operator.
	if err := h.orderRepository.SetOrderHandedOff(ctx, orderID, result.BasketID); err != nil {
		h.logger.ErrorCtx(ctx, "failed to mark order handed off",
			zap.String("orderID", orderID),
			zap.String("basketID", result.BasketID),
			zap.Error(err),
		)
	}
	return result, nil
}
