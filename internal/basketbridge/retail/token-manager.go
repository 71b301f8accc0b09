package retail

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"basket-bridge/internal/common/retailprotocol"
	"basket-bridge/pkg/logging"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const (
	// tokenExpiryMargin keeps a token from expiring mid-flight of a
	// subsequent call: the cached expiry runs 300 seconds ahead of the
	// server-declared one.
	tokenExpiryMargin = 300

	// fallbackTokenLifetime applies when the server omits expires_in.
	fallbackTokenLifetime = 3600
)

// TokenManager acquires OAuth2 bearer tokens with the resource-owner
// password credentials grant and caches them in a single slot.
type TokenManager struct {
	cache  *TokenCache
	logger *logging.ZapLogger
	now    func() time.Time
}

func NewTokenManager(cache *TokenCache, logger *logging.ZapLogger) *TokenManager {
	return &TokenManager{
		cache:  cache,
		logger: logger,
		now:    time.Now,
	}
}

// GetAccessToken returns the cached token when it is still inside its
// validity window, otherwise performs one credential exchange. No retry.
func (tm *TokenManager) GetAccessToken(ctx context.Context, cfg Config) (string, error) {
	if token, ok := tm.cache.Get(tm.now()); ok {
		tm.logger.DebugCtx(ctx, "using cached access token")
		return token, nil
	}

	resp, err := tm.requestToken(ctx, cfg)
	if err != nil {
		tm.cache.Invalidate()
		return "", &TransportError{Op: "token request", Err: err}
	}

	statusCode := resp.StatusCode()
	if statusCode != http.StatusOK {
		tm.cache.Invalidate()
		tokenResponse := retailprotocol.TokenResponse{}
		_ = json.Unmarshal(resp.Body(), &tokenResponse)
		message := tokenResponse.ErrorDescription
		if message == "" {
			message = tokenResponse.Error
		}
		tm.logger.DebugCtx(ctx, "token request rejected", zap.Int("status", statusCode))
		return "", &AuthError{Status: statusCode, Message: message}
	}

	tokenResponse := retailprotocol.TokenResponse{}
	if err := json.Unmarshal(resp.Body(), &tokenResponse); err != nil || tokenResponse.AccessToken == "" {
		tm.cache.Invalidate()
		return "", &AuthError{Status: statusCode, Message: "malformed token response"}
	}

	lifetime := tokenResponse.ExpiresIn
	if lifetime == 0 {
		lifetime = fallbackTokenLifetime
	}
	expiry := tm.now().Add(time.Duration(lifetime-tokenExpiryMargin) * time.Second)
	tm.cache.Set(tokenResponse.AccessToken, expiry)

	tm.logger.DebugCtx(ctx, "access token acquired", zap.Int64("expires_in", lifetime))
	return tokenResponse.AccessToken, nil
}

func (tm *TokenManager) requestToken(ctx context.Context, cfg Config) (*resty.Response, error) {
	request := resty.New().R().SetContext(ctx)
	if cfg.ProxyMode() {
		body := retailprotocol.TokenRequest{
			GrantType: retailprotocol.GrantType,
			ClientID:  cfg.ClientID,
			Username:  cfg.Username,
			Password:  cfg.Password,
			Scope:     retailprotocol.Scope,
		}
		return request.
			SetHeader("Content-Type", "application/json").
			SetBody(body).
			Post(cfg.ProxyURL + "/token")
	}
	return request.
		SetFormData(map[string]string{
			"grant_type": retailprotocol.GrantType,
			"client_id":  cfg.ClientID,
			"username":   cfg.Username,
			"password":   cfg.Password,
			"scope":      retailprotocol.Scope,
		}).
		Post(cfg.TokenURL)
}
