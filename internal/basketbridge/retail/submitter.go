package retail

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"basket-bridge/internal/basketbridge/data"
	"basket-bridge/internal/common/retailprotocol"
	"basket-bridge/pkg/logging"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const basketPath = "/external-basket"

type TokenSource interface {
	GetAccessToken(ctx context.Context, cfg Config) (string, error)
}

// SubmissionResult is the sole success output of the pipeline: where to
// send the operator's browser and which basket was created.
type SubmissionResult struct {
	BasketID    string
	RedirectURL string
}

// Submitter runs the order-to-basket pipeline: validate, acquire token,
// build payload, POST once, interpret. Steps run strictly sequentially
// and a failure at any step aborts the whole submission. No retry, no
// partial-success handling.
type Submitter struct {
	tokens TokenSource
	logger *logging.ZapLogger
}

func NewSubmitter(tokens TokenSource, logger *logging.ZapLogger) *Submitter {
	return &Submitter{
		tokens: tokens,
		logger: logger,
	}
}

func (s *Submitter) Submit(ctx context.Context, order *data.Order, cfg Config) (SubmissionResult, error) {
	if order == nil {
		return SubmissionResult{}, &ConfigError{Missing: []string{"selected order"}}
	}
	if err := cfg.Validate(); err != nil {
		return SubmissionResult{}, err
	}

	token, err := s.tokens.GetAccessToken(ctx, cfg)
	if err != nil {
		return SubmissionResult{}, err
	}

	payload := BuildPayload(order, cfg)

	s.logger.DebugCtx(ctx, "submitting basket",
		zap.String("orderID", order.ID),
		zap.String("fulfillment", string(order.Fulfillment)),
		zap.Int("itemLines", len(payload.ItemLines)),
	)

	resp, err := s.postBasket(ctx, cfg, token, payload)
	if err != nil {
		return SubmissionResult{}, &TransportError{Op: "basket submission", Err: err}
	}

	result, err := interpretBasketResponse(resp.StatusCode(), resp.Body(), cfg)
	if err != nil {
		return SubmissionResult{}, err
	}
	s.logger.InfoCtx(ctx, "basket created",
		zap.String("orderID", order.ID),
		zap.String("basketID", result.BasketID),
	)
	return result, nil
}

func (s *Submitter) postBasket(
	ctx context.Context,
	cfg Config,
	token string,
	payload retailprotocol.BasketPayload,
) (*resty.Response, error) {
	request := resty.New().R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json")
	if cfg.ProxyMode() {
		body := retailprotocol.ProxyBasketRequest{
			URL:     cfg.APIBaseURL + basketPath,
			Token:   token,
			Payload: payload,
		}
		return request.SetBody(body).Post(cfg.ProxyURL + basketPath)
	}
	return request.
		SetAuthToken(token).
		SetBody(payload).
		Post(cfg.APIBaseURL + basketPath)
}

// The basket API has two coexisting response generations. Matchers are
// tried in order, first extraction wins; retiring a generation means
// removing one entry here.
var basketShapeMatchers = []func(retailprotocol.BasketResponse, Config) (SubmissionResult, bool){
	matchBareIdentifier,
	matchExplicitRedirect,
}

func interpretBasketResponse(statusCode int, body []byte, cfg Config) (SubmissionResult, error) {
	if statusCode < 200 || statusCode > 299 {
		basketResponse := retailprotocol.BasketResponse{}
		_ = json.Unmarshal(body, &basketResponse)
		message := basketResponse.Message
		if message == "" {
			message = fmt.Sprintf("request failed with status %d", statusCode)
		}
		return SubmissionResult{}, &APIError{Status: statusCode, Message: message}
	}

	basketResponse := retailprotocol.BasketResponse{}
	if err := json.Unmarshal(body, &basketResponse); err != nil {
		return SubmissionResult{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	for _, match := range basketShapeMatchers {
		if result, ok := match(basketResponse, cfg); ok {
			return result, nil
		}
	}
	return SubmissionResult{}, ErrMalformedResponse
}

// matchBareIdentifier covers the generation that returns only a basket
// identifier, under one of several field names; the redirect target is
// derived from the configured POS base URL.
func matchBareIdentifier(resp retailprotocol.BasketResponse, cfg Config) (SubmissionResult, bool) {
	basketID := firstNonEmpty(resp.BasketUUID, resp.ID, resp.UUID, resp.BasketID)
	if basketID == "" {
		return SubmissionResult{}, false
	}
	return SubmissionResult{
		BasketID:    basketID,
		RedirectURL: cfg.POSRedirectURL + "?basketId=" + url.QueryEscape(basketID),
	}, true
}

// matchExplicitRedirect covers the generation that returns the basket
// identifier together with a fully-formed redirect URL, used as-is.
func matchExplicitRedirect(resp retailprotocol.BasketResponse, _ Config) (SubmissionResult, bool) {
	if resp.ExternalBasketID == "" || resp.ExternalBasketURL == "" {
		return SubmissionResult{}, false
	}
	return SubmissionResult{
		BasketID:    resp.ExternalBasketID,
		RedirectURL: resp.ExternalBasketURL,
	}, true
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}
