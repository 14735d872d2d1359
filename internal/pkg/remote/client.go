// Package remote is the JSON-over-HTTP client shared by every outbound
// service call. It turns the collaborators' error envelopes into the
// apperr taxonomy. An envelope "error" code from the taxonomy wins;
// otherwise the status decides:
//
//	404 -> apperr.ErrNotFound
//	422 -> apperr.ErrInvalidInput
//
// Any other non-2xx answer is returned as a *StatusError and is treated by
// callers as unexpected.
package remote

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
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/jcmexdev/footballstore-orders/internal/pkg/apperr"
	"github.com/jcmexdev/footballstore-orders/internal/pkg/interceptors"
)

const maxErrorBody = 64 << 10

// StatusError is a non-2xx response that could not be classified.
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
	Body       []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("remote: %s %s: unexpected status %d", e.Method, e.URL, e.StatusCode)
}

// errorEnvelope is the subset of the services' error body we rely on.
type errorEnvelope struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Client issues JSON requests against a single base URL.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewHTTPClient returns an *http.Client that traces every call and forwards
// the request id and idempotency key carried by the context.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout:   timeout,
		Transport: otelhttp.NewTransport(interceptors.NewTransport(http.DefaultTransport)),
	}
}

func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = NewHTTPClient(5 * time.Second)
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

// Get decodes the JSON body of GET path into out.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.Do(ctx, http.MethodGet, path, nil, nil, out)
}

// Do sends body (JSON-encoded when non-nil) and decodes a 2xx response into
// out when out is non-nil.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("remote: encode %s %s: %w", method, target, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("remote: build %s %s: %w", method, target, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("remote: %s %s: %w", method, target, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return classify(method, target, resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("remote: decode %s %s: %w", method, target, err)
	}
	return nil
}

func classify(method, target string, resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	env := extractEnvelope(raw)
	msg := env.Message
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}
	if err := apperr.FromCode(env.Error, msg); err != nil {
		return err
	}

	switch resp.StatusCode {
	case http.StatusNotFound:
		return apperr.NotFound("%s", msg)
	case http.StatusUnprocessableEntity:
		return apperr.InvalidInput("%s", msg)
	default:
		return &StatusError{Method: method, URL: target, StatusCode: resp.StatusCode, Body: raw}
	}
}

func extractEnvelope(raw []byte) errorEnvelope {
	var env errorEnvelope
	_ = json.Unmarshal(raw, &env)
	return env
}

// AsStatusError reports whether err wraps an unclassified remote status.
func AsStatusError(err error) (*StatusError, bool) {
	var se *StatusError
	ok := errors.As(err, &se)
	return se, ok
}
