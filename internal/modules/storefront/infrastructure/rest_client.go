package infrastructure

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	authdomain "deliveryClient/internal/modules/auth/domain"
	"deliveryClient/internal/modules/storefront/application/port"
	"deliveryClient/internal/shared/auth"
	"deliveryClient/internal/shared/normalization"
)

// SessionHeader attributes cart calls to the anonymous visitor.
const SessionHeader = "X-Session-Id"

const errorBodyLimit = 2048

// TokenProvider supplies the bearer token for outbound calls and forgets it when the backend
// rejects it.
type TokenProvider interface {
	Valid() (string, error)
	Role() string
	Remove() error
}

// RESTClient wraps http.Client with base URL handling, request decoration and status mapping
// shared by every gateway.
type RESTClient struct {
	baseURL string
	client  *http.Client
	tokens  TokenProvider

	hookMu         sync.RWMutex
	onUnauthorized func(redirect string)
}

func NewRESTClient(baseURL string, timeout time.Duration, client *http.Client) *RESTClient {
	trimmed := strings.TrimSpace(baseURL)
	if trimmed == "" {
		trimmed = "http://localhost:3000"
	}
	trimmed = strings.TrimRight(trimmed, "/")
	if client == nil {
		client = &http.Client{Timeout: timeoutOrDefault(timeout)}
	} else if timeout > 0 {
		client.Timeout = timeout
	}
	return &RESTClient{baseURL: trimmed, client: client}
}

// WithTokens attaches the token provider consulted on every request.
func (c *RESTClient) WithTokens(tokens TokenProvider) *RESTClient {
	c.tokens = tokens
	return c
}

// OnUnauthorized registers fn to run with the login route whenever the backend answers 401.
func (c *RESTClient) OnUnauthorized(fn func(redirect string)) {
	c.hookMu.Lock()
	c.onUnauthorized = fn
	c.hookMu.Unlock()
}

func (c *RESTClient) NewRequest(ctx context.Context, method, endpoint string, body io.Reader) (*http.Request, error) {
	url := c.baseURL + "/" + strings.TrimLeft(endpoint, "/")
	return http.NewRequestWithContext(ctx, method, url, body)
}

func (c *RESTClient) Do(req *http.Request) (*http.Response, error) {
	return c.client.Do(req)
}

type callOptions struct {
	operation string
	method    string
	path      string
	query     url.Values
	body      any
	sessionID string
}

// call performs a JSON request and decodes a successful response into out, unwrapping
// {"data": ...} envelopes. out may be nil.
func (c *RESTClient) call(ctx context.Context, opts callOptions, out any) error {
	var body io.Reader
	if opts.body != nil {
		encoded, err := json.Marshal(opts.body)
		if err != nil {
			return fmt.Errorf("%s encode: %w", opts.operation, err)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := c.NewRequest(ctx, opts.method, opts.path, body)
	if err != nil {
		slog.Error("rest request build failed", slog.String("operation", opts.operation), slog.String("path", opts.path), slog.Any("error", err))
		return err
	}
	if len(opts.query) > 0 {
		req.URL.RawQuery = opts.query.Encode()
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if err := c.decorate(req, opts.sessionID); err != nil {
		return err
	}

	slog.Debug("rest request", slog.String("operation", opts.operation), slog.String("method", opts.method), slog.String("url", req.URL.String()))
	res, err := c.Do(req)
	if err != nil {
		slog.Error("rest request error", slog.String("operation", opts.operation), slog.String("path", opts.path), slog.Any("error", err))
		return fmt.Errorf("%s request failed: %w: %w", opts.operation, port.ErrRemote, err)
	}
	defer res.Body.Close()
	slog.Debug("rest response", slog.String("operation", opts.operation), slog.Int("status", res.StatusCode), slog.String("url", req.URL.String()))

	if err := c.checkStatus(res, opts); err != nil {
		return err
	}
	if out == nil || res.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := decodeEnvelope(res.Body, out); err != nil {
		return fmt.Errorf("%s decode: %w", opts.operation, err)
	}
	return nil
}

// decorate attaches the bearer token when a non-expired one is held, and the session header
// for cart calls.
func (c *RESTClient) decorate(req *http.Request, sessionID string) error {
	if c.tokens != nil {
		token, err := c.tokens.Valid()
		if err != nil {
			return fmt.Errorf("read token: %w", err)
		}
		if token != "" {
			req.Header.Set("Authorization", auth.BearerHeader(token))
		}
	}
	if trimmed := strings.TrimSpace(sessionID); trimmed != "" {
		req.Header.Set(SessionHeader, trimmed)
	}
	return nil
}

func (c *RESTClient) checkStatus(res *http.Response, opts callOptions) error {
	if res.StatusCode >= 200 && res.StatusCode < 300 {
		return nil
	}
	raw, _ := io.ReadAll(io.LimitReader(res.Body, errorBodyLimit))
	excerpt := strings.TrimSpace(string(raw))

	switch res.StatusCode {
	case http.StatusUnauthorized:
		slog.Warn("rest unauthorized", slog.String("operation", opts.operation), slog.String("path", opts.path))
		return c.handleUnauthorized()
	case http.StatusForbidden:
		if isPendingApproval(raw) {
			slog.Info("rest pending approval", slog.String("operation", opts.operation))
			return port.ErrPendingApproval
		}
		slog.Warn("rest forbidden", slog.String("operation", opts.operation), slog.String("path", opts.path), slog.String("body", excerpt))
		return port.ErrForbidden
	case http.StatusNotFound:
		return port.ErrNotFound
	default:
		slog.Error("rest unexpected status", slog.String("operation", opts.operation), slog.Int("status", res.StatusCode), slog.String("path", opts.path), slog.String("body", excerpt))
		return &port.RemoteError{Status: res.StatusCode, Message: errorMessage(raw)}
	}
}

// handleUnauthorized discards the rejected token and reports where its owner logs in again.
func (c *RESTClient) handleUnauthorized() error {
	role := authdomain.RoleCustomer
	if c.tokens != nil {
		role = authdomain.NormalizeRole(c.tokens.Role())
		if err := c.tokens.Remove(); err != nil {
			slog.Error("token removal failed", slog.Any("error", err))
		}
	}
	redirect := authdomain.LoginRoute(role)

	c.hookMu.RLock()
	hook := c.onUnauthorized
	c.hookMu.RUnlock()
	if hook != nil {
		hook(redirect)
	}
	return &port.UnauthorizedError{Redirect: redirect}
}

// isPendingApproval recognises the backend's "account awaiting approval" refusals.
func isPendingApproval(body []byte) bool {
	lowered := strings.ToLower(string(body))
	if strings.Contains(lowered, "pending") && strings.Contains(lowered, "approv") {
		return true
	}
	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		return false
	}
	return strings.EqualFold(normalization.AsString(payload["status"]), "pending")
}

func errorMessage(body []byte) string {
	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		return strings.TrimSpace(string(body))
	}
	for _, key := range []string{"message", "error", "detail"} {
		switch typed := payload[key].(type) {
		case string:
			return strings.TrimSpace(typed)
		case []any:
			parts := make([]string, 0, len(typed))
			for _, part := range typed {
				if text := normalization.AsString(part); text != "" {
					parts = append(parts, text)
				}
			}
			if len(parts) > 0 {
				return strings.Join(parts, "; ")
			}
		}
	}
	return ""
}

// decodeEnvelope decodes body into out, unwrapping a top-level {"data": ...} wrapper.
func decodeEnvelope(body io.Reader, out any) error {
	decoder := json.NewDecoder(body)
	decoder.UseNumber()
	var payload any
	if err := decoder.Decode(&payload); err != nil {
		return err
	}
	unwrapped, err := json.Marshal(normalization.UnwrapData(payload))
	if err != nil {
		return err
	}
	return json.Unmarshal(unwrapped, out)
}

func timeoutOrDefault(value time.Duration) time.Duration {
	if value <= 0 {
		return 10 * time.Second
	}
	return value
}
