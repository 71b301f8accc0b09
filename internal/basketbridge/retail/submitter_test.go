package retail

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"basket-bridge/internal/common/retailprotocol"
	"basket-bridge/pkg/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTokens struct {
	token string
	err   error
	calls int
}

func (f *fakeTokens) GetAccessToken(_ context.Context, _ Config) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.token, nil
}

type basketEndpoint struct {
	calls       int
	lastAuth    string
	lastPayload retailprotocol.BasketPayload
	status      int
	body        string
}

func (be *basketEndpoint) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		be.calls++
		be.lastAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&be.lastPayload)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(be.status)
		_, _ = w.Write([]byte(be.body))
	}
}

func newTestSubmitter(token string) (*Submitter, *fakeTokens) {
	tokens := &fakeTokens{token: token}
	return NewSubmitter(tokens, logging.NewNop()), tokens
}

func TestSubmitBareIdentifierResponse(t *testing.T) {
	endpoint := &basketEndpoint{status: http.StatusCreated, body: `{"basketUUID": "b-42"}`}
	server := httptest.NewServer(endpoint.handler())
	defer server.Close()

	cfg := testConfig()
	cfg.APIBaseURL = server.URL
	submitter, _ := newTestSubmitter("tok-1")

	result, err := submitter.Submit(context.Background(), inStoreOrder(), cfg)
	require.NoError(t, err)

	assert.Equal(t, "b-42", result.BasketID)
	assert.Equal(t, cfg.POSRedirectURL+"?basketId=b-42", result.RedirectURL)

	require.Equal(t, 1, endpoint.calls)
	assert.Equal(t, "Bearer tok-1", endpoint.lastAuth)
	assert.Equal(t, "3901234567", endpoint.lastPayload.ExternalReference)
	assert.Equal(t, retailprotocol.BasketTypeReceipt, endpoint.lastPayload.BasketType)
}

func TestSubmitIdentifierFieldVariants(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"id", `{"id": "b-42"}`},
		{"uuid", `{"uuid": "b-42"}`},
		{"basketId", `{"basketId": "b-42"}`},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			endpoint := &basketEndpoint{status: http.StatusOK, body: test.body}
			server := httptest.NewServer(endpoint.handler())
			defer server.Close()

			cfg := testConfig()
			cfg.APIBaseURL = server.URL
			submitter, _ := newTestSubmitter("tok-1")

			result, err := submitter.Submit(context.Background(), inStoreOrder(), cfg)
			require.NoError(t, err)
			assert.Equal(t, "b-42", result.BasketID)
		})
	}
}

func TestSubmitExplicitRedirectResponse(t *testing.T) {
	endpoint := &basketEndpoint{
		status: http.StatusOK,
		body:   `{"externalBasketId": "b-77", "externalBasketUrl": "https://pos.example/baskets/b-77"}`,
	}
	server := httptest.NewServer(endpoint.handler())
	defer server.Close()

	cfg := testConfig()
	cfg.APIBaseURL = server.URL
	submitter, _ := newTestSubmitter("tok-1")

	result, err := submitter.Submit(context.Background(), inStoreOrder(), cfg)
	require.NoError(t, err)

	assert.Equal(t, "b-77", result.BasketID)
	assert.Equal(t, "https://pos.example/baskets/b-77", result.RedirectURL)
}

func TestSubmitEscapesDerivedRedirect(t *testing.T) {
	endpoint := &basketEndpoint{status: http.StatusOK, body: `{"basketUUID": "b 42&x"}`}
	server := httptest.NewServer(endpoint.handler())
	defer server.Close()

	cfg := testConfig()
	cfg.APIBaseURL = server.URL
	submitter, _ := newTestSubmitter("tok-1")

	result, err := submitter.Submit(context.Background(), inStoreOrder(), cfg)
	require.NoError(t, err)
	assert.Equal(t, cfg.POSRedirectURL+"?basketId=b+42%26x", result.RedirectURL)
}

func TestSubmitUpstreamRejection(t *testing.T) {
	endpoint := &basketEndpoint{status: http.StatusConflict, body: `{"message": "basket already exists"}`}
	server := httptest.NewServer(endpoint.handler())
	defer server.Close()

	cfg := testConfig()
	cfg.APIBaseURL = server.URL
	submitter, _ := newTestSubmitter("tok-1")

	_, err := submitter.Submit(context.Background(), inStoreOrder(), cfg)

	apiErr := &APIError{}
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.Status)
	assert.Equal(t, "basket already exists", apiErr.Message)
}

func TestSubmitUpstreamRejectionWithoutMessage(t *testing.T) {
	endpoint := &basketEndpoint{status: http.StatusInternalServerError, body: `<html>oops</html>`}
	server := httptest.NewServer(endpoint.handler())
	defer server.Close()

	cfg := testConfig()
	cfg.APIBaseURL = server.URL
	submitter, _ := newTestSubmitter("tok-1")

	_, err := submitter.Submit(context.Background(), inStoreOrder(), cfg)

	apiErr := &APIError{}
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "request failed with status 500", apiErr.Message)
}

func TestSubmitUnrecognizedSuccessBody(t *testing.T) {
	endpoint := &basketEndpoint{status: http.StatusOK, body: `{"status": "created"}`}
	server := httptest.NewServer(endpoint.handler())
	defer server.Close()

	cfg := testConfig()
	cfg.APIBaseURL = server.URL
	submitter, _ := newTestSubmitter("tok-1")

	_, err := submitter.Submit(context.Background(), inStoreOrder(), cfg)
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestSubmitAbortsOnAuthFailure(t *testing.T) {
	endpoint := &basketEndpoint{status: http.StatusOK, body: `{"basketUUID": "b-42"}`}
	server := httptest.NewServer(endpoint.handler())
	defer server.Close()

	cfg := testConfig()
	cfg.APIBaseURL = server.URL
	tokens := &fakeTokens{err: &AuthError{Status: http.StatusBadRequest, Message: "invalid_grant"}}
	submitter := NewSubmitter(tokens, logging.NewNop())

	_, err := submitter.Submit(context.Background(), inStoreOrder(), cfg)

	authErr := &AuthError{}
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, 0, endpoint.calls, "no basket request after a failed token exchange")
}

func TestSubmitValidatesConfigBeforeIO(t *testing.T) {
	cfg := testConfig()
	cfg.StoreID = ""
	cfg.Currency = ""
	submitter, tokens := newTestSubmitter("tok-1")

	_, err := submitter.Submit(context.Background(), inStoreOrder(), cfg)

	configErr := &ConfigError{}
	require.ErrorAs(t, err, &configErr)
	assert.Contains(t, configErr.Missing, "store ID")
	assert.Contains(t, configErr.Missing, "currency")
	assert.Equal(t, 0, tokens.calls, "validation failures must precede any I/O")
}

func TestSubmitNilOrder(t *testing.T) {
	submitter, tokens := newTestSubmitter("tok-1")

	_, err := submitter.Submit(context.Background(), nil, testConfig())

	configErr := &ConfigError{}
	require.ErrorAs(t, err, &configErr)
	assert.Equal(t, 0, tokens.calls)
}

func TestSubmitTransportFailure(t *testing.T) {
	cfg := testConfig()
	cfg.APIBaseURL = "http://127.0.0.1:1"
	submitter, _ := newTestSubmitter("tok-1")

	_, err := submitter.Submit(context.Background(), inStoreOrder(), cfg)

	transportErr := &TransportError{}
	require.ErrorAs(t, err, &transportErr)
}

func TestSubmitProxyMode(t *testing.T) {
	var proxied retailprotocol.ProxyBasketRequest
	var path, auth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		auth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&proxied))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"basketUUID": "b-90"}`))
	}))
	defer server.Close()

	cfg := testConfig()
	cfg.ProxyURL = server.URL
	submitter, _ := newTestSubmitter("tok-proxy")

	result, err := submitter.Submit(context.Background(), inStoreOrder(), cfg)
	require.NoError(t, err)
	assert.Equal(t, "b-90", result.BasketID)

	assert.Equal(t, "/external-basket", path)
	assert.Empty(t, auth, "the relay receives the token in the body, not as a header")
	assert.Equal(t, cfg.APIBaseURL+"/external-basket", proxied.URL)
	assert.Equal(t, "tok-proxy", proxied.Token)
	assert.Equal(t, "3901234567", proxied.Payload.ExternalReference)
}
