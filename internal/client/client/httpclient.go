package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/lynq-cli/internal/logging"
	"github.com/google/uuid"
)

const (
	PathSignup     = "/api/auth/signup"
	PathLogin      = "/api/auth/login"
	PathVerifyCode = "/api/auth/verify-code"
	PathResendCode = "/api/auth/resend-code"

	RequestIDHeader = "X-Request-ID"

	maxBodySize = 1 << 20
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type verifyCodeRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

type resendCodeRequest struct {
	Email string `json:"email"`
}

type verifyCodeResponse struct {
	Token   string `json:"token"`
	Message string `json:"message"`
}

// HTTPClient implements Client over JSON/HTTP.
type HTTPClient struct {
	baseURL      string
	http         *http.Client
	log          logging.Logger
	newRequestID func() string
}

// Option customizes an HTTPClient.
type Option func(*HTTPClient)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(c *http.Client) Option {
	return func(h *HTTPClient) { h.http = c }
}

// WithLogger sets the logger used for per-request debug lines.
func WithLogger(l logging.Logger) Option {
	return func(h *HTTPClient) { h.log = l }
}

// NewHTTPClient returns a client for the API at baseURL. A zero timeout
// leaves the transport default in place.
func NewHTTPClient(baseURL string, timeout time.Duration, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		baseURL:      strings.TrimRight(baseURL, "/"),
		http:         &http.Client{Timeout: timeout},
		log:          logging.Discard(),
		newRequestID: uuid.NewString,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *HTTPClient) Signup(ctx context.Context, email, password string) error {
	return c.post(ctx, PathSignup, credentialsRequest{Email: email, Password: password}, nil)
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) error {
	return c.post(ctx, PathLogin, credentialsRequest{Email: email, Password: password}, nil)
}

func (c *HTTPClient) VerifyCode(ctx context.Context, email, code string) (string, error) {
	var resp verifyCodeResponse
	if err := c.post(ctx, PathVerifyCode, verifyCodeRequest{Email: email, Code: code}, &resp); err != nil {
		return "", err
	}
	if resp.Token == "" {
		return "", fmt.Errorf("%w: empty token", ErrMalformedResponse)
	}
	return resp.Token, nil
}

func (c *HTTPClient) ResendCode(ctx context.Context, email string) error {
	return c.post(ctx, PathResendCode, resendCodeRequest{Email: email}, nil)
}

// post sends body as JSON and decodes a 2xx response into out when out is
// not nil.
func (c *HTTPClient) post(ctx context.Context, path string, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	requestID := c.newRequestID()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)

	log := c.log.With("path", path, "request_id", requestID)
	started := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		log.Debug(ctx, "request failed", "error", err)
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return fmt.Errorf("%w: read body: %v", ErrUnavailable, err)
	}
	log.Debug(ctx, "request done", "status", resp.StatusCode, "elapsed", time.Since(started))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e ErrorResponse
		// A non-JSON error body still yields an APIError, just without a message.
		_ = json.Unmarshal(raw, &e)
		return &APIError{Status: resp.StatusCode, Message: e.Message, RequestID: requestID}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return nil
}
