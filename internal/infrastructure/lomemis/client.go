// Package lomemis is the typed HTTP client for the LoMEMIS core API. It
// implements the upstream ports, forwarding the viewer's bearer token so
// every call carries exactly the caller's identity.
package lomemis

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/med-integems/lomemis-dashboard/internal/domain"
	"github.com/med-integems/lomemis-dashboard/internal/domain/upstream"
	"github.com/med-integems/lomemis-dashboard/pkg/logger"
)

// Compile-time check that Client covers the full core-API surface.
var _ upstream.API = (*Client)(nil)

// maxResponseBytes bounds how much of a response is read. Sized for a
// 5000-record export fetch with headroom.
const maxResponseBytes = 8 << 20

// Client talks to the core API over plain net/http.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *logger.Logger
}

// NewClient builds the client. baseURL includes the API prefix, e.g.
// "http://localhost:3001/api".
func NewClient(baseURL string, timeout time.Duration, log *logger.Logger) *Client {
	if log == nil {
		log = logger.Nop()
	}
	if timeout <= 0 {
		timeout = 25 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		log:        log.Component("lomemis"),
	}
}

// envelope is the core API's standard response wrapper. Endpoints that send
// the payload bare still decode; Data just stays empty.
type envelope struct {
	Success *bool           `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *apiError       `json:"error"`
	Message string          `json:"message"`
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// get performs a GET against the core API and decodes the payload into out.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("lomemis: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if tok, ok := upstream.Bearer(ctx); ok {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("%w: %s: %v", domain.ErrUpstreamUnavailable, path, ctx.Err())
		}
		return fmt.Errorf("%w: %s: %v", domain.ErrUpstreamUnavailable, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("%w: %s: read response: %v", domain.ErrUpstreamUnavailable, path, err)
	}

	if resp.StatusCode != http.StatusOK {
		return c.statusError(path, resp.StatusCode, raw)
	}

	if err := json.Unmarshal(unwrap(raw), out); err != nil {
		return fmt.Errorf("%w: %s: decode response: %v", domain.ErrUpstreamUnavailable, path, err)
	}
	return nil
}

// statusError maps a non-200 core-API response onto the domain error
// taxonomy, carrying the upstream message when one is present.
func (c *Client) statusError(path string, status int, body []byte) error {
	var base error
	switch {
	case status == http.StatusUnauthorized:
		base = domain.ErrUnauthorized
	case status == http.StatusForbidden:
		base = domain.ErrAccessDenied
	case status == http.StatusNotFound:
		base = domain.ErrNotFound
	case status >= http.StatusInternalServerError:
		base = domain.ErrUpstreamUnavailable
	default:
		base = domain.ErrUpstreamRejected
	}

	msg := errorMessage(body)
	if msg == "" {
		msg = http.StatusText(status)
	}
	c.log.Debug().Str("path", path).Int("status", status).Str("message", msg).Msg("core api error")
	return fmt.Errorf("%w: %s: http %d: %s", base, path, status, msg)
}

// unwrap peels the {success, data} wrapper when present.
func unwrap(raw []byte) []byte {
	var env envelope
	if err := json.Unmarshal(raw, &env); err == nil && len(env.Data) > 0 {
		return env.Data
	}
	return raw
}

func errorMessage(body []byte) string {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return ""
	}
	if env.Error != nil && env.Error.Message != "" {
		return env.Error.Message
	}
	return env.Message
}
