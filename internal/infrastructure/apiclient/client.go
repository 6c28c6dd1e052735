package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/notaspace/notaspace-client/internal/api/metrics"
	"github.com/notaspace/notaspace-client/internal/core/domain"
)

const (
	// RequestTimeout bounds the wait for response headers.
	RequestTimeout = 30 * time.Second
	// ResourceTimeout bounds the whole exchange including the body.
	ResourceTimeout = 60 * time.Second

	maxResponseBytes = 8 << 20
)

// Client is the authenticated JSON request pipeline to the NotaSpace backend.
// It holds no state besides the current bearer token.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        zerolog.Logger

	mu    sync.RWMutex
	token string
}

// New builds a Client for baseURL. A nil httpClient gets the fixed
// 30s request / 60s resource timeouts.
func New(baseURL string, httpClient *http.Client, log zerolog.Logger) *Client {
	if httpClient == nil {
		httpClient = newHTTPClient()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		log:        log,
	}
}

func newHTTPClient() *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.ResponseHeaderTimeout = RequestTimeout
	return &http.Client{Transport: transport, Timeout: ResourceTimeout}
}

// SetAuthToken replaces the bearer token attached to subsequent requests.
func (c *Client) SetAuthToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *Client) AuthToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// errorBody is the structured error envelope some endpoints return.
type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// Request sends one request and decodes a 2xx body into out when out is non-nil.
func (c *Client) Request(ctx context.Context, method, endpoint string, body, out any) error {
	start := time.Now()
	requestID := uuid.NewString()

	status, err := c.do(ctx, method, endpoint, requestID, body, out)

	metrics.APIRequestDuration.WithLabelValues(method).Observe(time.Since(start).Seconds())
	outcome := "ok"
	if ae := domain.AsAPIError(err); ae != nil {
		outcome = ae.Kind.String()
	}
	metrics.APIRequestsTotal.WithLabelValues(method, outcome).Inc()

	if err != nil {
		c.log.Warn().
			Err(err).
			Str("method", method).
			Str("endpoint", endpoint).
			Int("status", status).
			Str("request_id", requestID).
			Msg("api request failed")
		return err
	}

	c.log.Debug().
		Str("method", method).
		Str("endpoint", endpoint).
		Int("status", status).
		Dur("elapsed", time.Since(start)).
		Str("request_id", requestID).
		Msg("api request")
	return nil
}

func (c *Client) do(ctx context.Context, method, endpoint, requestID string, body, out any) (int, error) {
	u, err := url.Parse(c.baseURL + endpoint)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return 0, &domain.APIError{Kind: domain.KindInvalidURL, Err: err}
	}

	var payload io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return 0, &domain.APIError{Kind: domain.KindEncoding, Err: err}
		}
		payload = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), payload)
	if err != nil {
		return 0, &domain.APIError{Kind: domain.KindInvalidURL, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if token := c.AuthToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, domain.NewNetworkError(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return resp.StatusCode, domain.NewNetworkError(fmt.Errorf("read response: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp.StatusCode, statusError(resp.StatusCode, data)
	}

	if out == nil {
		return resp.StatusCode, nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return resp.StatusCode, &domain.APIError{Kind: domain.KindDecoding, StatusCode: resp.StatusCode, Err: err}
	}
	return resp.StatusCode, nil
}

// statusError prefers the server's own message and falls back to the bare code.
func statusError(status int, data []byte) error {
	var eb errorBody
	if err := json.Unmarshal(data, &eb); err == nil {
		switch {
		case eb.Message != "":
			return domain.NewServerError(status, eb.Message)
		case eb.Error != "":
			return domain.NewServerError(status, eb.Error)
		}
	}
	return domain.NewHTTPError(status)
}

// IsCanceled reports whether err stems from the caller cancelling ctx.
func IsCanceled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
