// Package modeladapter provides the shared HTTP plumbing for provider
// adapters: auth handling, JSON request helpers, bounded timeouts, and the
// normalized status error every adapter surfaces on a non-2xx response.
package modeladapter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"
)

const (
	// DefaultTimeout bounds normal generation calls.
	DefaultTimeout = 30 * time.Second
	// ListTimeout bounds lightweight model-listing calls.
	ListTimeout = 5 * time.Second
)

// StatusError is returned when the API responds with a non-2xx status. The
// response body is never parsed; only the numeric status is surfaced.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("Request failed, status %d", e.Code)
}

// TimedOutMessage is the generic message shown for any timed-out call. The
// underlying cancellation error text never reaches a human-visible surface.
const TimedOutMessage = "Request timed out"

// IsTimeout reports whether err represents a deadline expiry anywhere in its
// chain, including net-level timeout errors wrapped by the HTTP client.
func IsTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var t interface{ Timeout() bool }
	return errors.As(err, &t) && t.Timeout()
}

// Auth holds authentication settings for a provider API.
type Auth struct {
	Key    string // API key value.
	Header string // Header name (default: "Authorization").
	Scheme string // Scheme prefix (default: "Bearer" when Header is "Authorization").
}

// Adapter holds shared state for provider adapter implementations. Embed it
// in concrete adapter structs to get HTTP helpers, auth, and custom headers.
type Adapter struct {
	Auth    Auth              // Authentication settings.
	BaseURL string            // API base URL (no trailing slash).
	Client  *http.Client      // HTTP client; falls back to a cached default.
	Headers map[string]string // Extra headers applied to every request.

	clientOnce    sync.Once
	defaultClient *http.Client
}

// New creates an Adapter with the given settings.
// A nil client falls back to a cached default client at call time.
func New(baseURL string, auth Auth, client *http.Client) Adapter {
	return Adapter{
		Auth:    auth,
		BaseURL: baseURL,
		Client:  client,
	}
}

// httpClient returns the configured client or a cached default. Per-call
// deadlines come from the request context, so the default client carries no
// timeout of its own.
func (a *Adapter) httpClient() *http.Client {
	if a.Client != nil {
		return a.Client
	}

	a.clientOnce.Do(func() {
		a.defaultClient = &http.Client{}
	})

	return a.defaultClient
}

// NewRequest builds an *http.Request with the base URL, auth, and custom
// headers already applied.
func (a *Adapter) NewRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	url := a.BaseURL + path

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, err
	}

	// Apply auth.
	if a.Auth.Key != "" {
		header := a.Auth.Header
		if header == "" {
			header = "Authorization"
		}

		value := a.Auth.Key
		if header == "Authorization" {
			scheme := a.Auth.Scheme
			if scheme == "" {
				scheme = "Bearer"
			}

			value = scheme + " " + value
		} else if a.Auth.Scheme != "" {
			value = a.Auth.Scheme + " " + value
		}

		req.Header.Set(header, value)
	}

	// Apply custom headers.
	for k, v := range a.Headers {
		req.Header.Set(k, v)
	}

	return req, nil
}

// Do sends the request using the configured HTTP client.
func (a *Adapter) Do(req *http.Request) (*http.Response, error) {
	return a.httpClient().Do(req) //nolint:gosec // URL is built from trusted BaseURL config, not user input.
}

// PostJSON marshals payload as JSON, sends a POST to the given path, checks
// for a 2xx status, and unmarshals the response body into dest. A non-2xx
// status yields a *StatusError carrying only the status code.
// If dest is nil the response body is discarded after the status check.
func (a *Adapter) PostJSON(ctx context.Context, path string, payload any, dest any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	req, err := a.NewRequest(ctx, http.MethodPost, path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	return a.doJSON(req, dest)
}

// GetJSON sends a GET to the given path and unmarshals the response body into
// dest, with the same status handling as PostJSON.
func (a *Adapter) GetJSON(ctx context.Context, path string, dest any) error {
	req, err := a.NewRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	return a.doJSON(req, dest)
}

func (a *Adapter) doJSON(req *http.Request, dest any) error {
	resp, err := a.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{Code: resp.StatusCode}
	}

	if dest == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}
