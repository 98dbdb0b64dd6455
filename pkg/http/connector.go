package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// maxResponseBytes caps how much of a response body is read.
const maxResponseBytes = 4 << 20

// Connector sends JSON requests to one base URL.
type Connector struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

type ConnectorConfig struct {
	BaseURL string
	Logger  *zap.Logger
}

func NewConnector(config *ConnectorConfig, options ...HttpOpts) *Connector {
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Connector{
		baseURL:    strings.TrimRight(config.BaseURL, "/"),
		httpClient: newClient(options...),
		logger:     logger,
	}
}

type RequestOpt func(*requestConfig)

type requestConfig struct {
	headers http.Header
}

// WithHeader sets one request header.
func WithHeader(key, value string) RequestOpt {
	return func(c *requestConfig) {
		c.headers.Set(key, value)
	}
}

// Post is DoRequest with the POST method.
func (c *Connector) Post(ctx context.Context, endpoint string, reqBody, respBody any, opts ...RequestOpt) error {
	return c.DoRequest(ctx, http.MethodPost, endpoint, reqBody, respBody, opts...)
}

// DoRequest marshals reqBody as JSON, sends it and decodes a 2xx response
// into respBody. Non-2xx responses become *HTTPError, transport failures
// become *NetworkError. A cancelled or expired ctx is returned as is.
func (c *Connector) DoRequest(ctx context.Context, method, endpoint string, reqBody, respBody any, opts ...RequestOpt) error {
	cfg := &requestConfig{headers: make(http.Header)}
	for _, opt := range opts {
		opt(cfg)
	}

	req, err := c.newRequest(ctx, method, c.resolveURL(endpoint), reqBody)
	if err != nil {
		return err
	}
	for key, values := range cfg.headers {
		req.Header[key] = values
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
			return ctxErr
		}
		return &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	return c.decodeResponse(resp, respBody)
}

func (c *Connector) decodeResponse(resp *http.Response, respBody any) error {
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		c.logger.Debug("upstream returned an error status",
			zap.Int("status", resp.StatusCode),
			zap.String("url", resp.Request.URL.String()),
		)
		return &HTTPError{StatusCode: resp.StatusCode, Message: string(body)}
	}

	if respBody == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, respBody); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Connector) resolveURL(endpoint string) string {
	if endpoint != "" && !strings.HasPrefix(endpoint, "/") {
		endpoint = "/" + endpoint
	}
	return c.baseURL + endpoint
}

func (c *Connector) newRequest(ctx context.Context, method, url string, reqBody any) (*http.Request, error) {
	var body io.Reader
	if reqBody != nil {
		payload, err := json.Marshal(reqBody)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		body = bytes.NewReader(payload)
		// the logging transport reads the payload back from the context
		ctx = context.WithValue(ctx, payloadContextKey{}, payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	return req, nil
}
