package ordersfeed

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"basket-bridge/internal/basketbridge/data"
	"basket-bridge/internal/basketbridge/feed"
	"basket-bridge/pkg/logging"
	"basket-bridge/pkg/timeutils"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

var (
	ErrFeedUnavailable = errors.New("order feed unavailable")
)

type Config struct {
	FeedURL     string
	RetryDelays []time.Duration
}

// OrdersFeed pulls the vendor's pending-order document. Transient
// failures are retried here; this is upstream of the submission
// pipeline, which stays single-attempt.
type OrdersFeed struct {
	logger *logging.ZapLogger
	cfg    Config
}

func NewOrdersFeed(cfg Config, logger *logging.ZapLogger) *OrdersFeed {
	return &OrdersFeed{
		cfg:    cfg,
		logger: logger,
	}
}

func (of *OrdersFeed) FetchOrders(ctx context.Context) ([]data.Order, error) {
	return timeutils.Retry(
		ctx,
		of.cfg.RetryDelays,
		func(ctx context.Context) ([]data.Order, error) {
			return of.fetch(ctx)
		},
		func(_ []data.Order, err error) bool {
			if err != nil {
				of.logger.DebugCtx(ctx, "feed fetch attempt failed", zap.Error(err))
				return true
			}
			return false
		},
	)
}

func (of *OrdersFeed) fetch(ctx context.Context) ([]data.Order, error) {
	resp, err := resty.
		New().
		R().
		SetContext(ctx).
		Get(of.cfg.FeedURL)
	if err != nil {
		return nil, fmt.Errorf("get request failed: %w", err)
	}
	statusCode := resp.StatusCode()
	switch statusCode {
	case http.StatusNoContent:
		of.logger.DebugCtx(ctx, "no pending orders in feed")
		return nil, nil
	case http.StatusOK:
		orders, err := feed.Normalize(resp.Body())
		if err != nil {
			of.logger.ErrorCtx(ctx, "error normalizing feed", zap.Error(err))
			return nil, fmt.Errorf("error normalizing feed: %w", err)
		}
		of.logger.DebugCtx(ctx, "feed fetched", zap.Int("orders", len(orders)))
		return orders, nil
	default:
		return nil, fmt.Errorf("%w: unexpected status code %v", ErrFeedUnavailable, statusCode)
	}
}
