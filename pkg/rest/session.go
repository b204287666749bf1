// Package rest provides the session-based HTTP core shared by all service
// clients. A Session holds a pooled http.Client, the environment host, and
// the token provider; every call is synchronous and context-aware.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/realitycloud/realitycloud/internal/version"
	"github.com/realitycloud/realitycloud/pkg/apierr"
	"github.com/realitycloud/realitycloud/pkg/config"
	"github.com/realitycloud/realitycloud/pkg/telemetry"
)

// APIVersion selects the iTwin platform media type version.
type APIVersion int

const (
	// V1 is used by the reality-management API.
	V1 APIVersion = 1

	// V2 is used by the reality-modeling and reality-analysis APIs.
	V2 APIVersion = 2
)

// TokenProvider supplies a ready-to-send Authorization header value.
// Token acquisition and refresh are owned by the caller.
type TokenProvider func() (string, error)

// StaticToken wraps a fixed token string into a TokenProvider.
func StaticToken(token string) TokenProvider {
	return func() (string, error) { return token, nil }
}

// Session is a long-lived, connection-pooled HTTP session against one
// environment. A Session is safe to share across the clients built on top
// of it, but calls from multiple goroutines should each hold their own.
type Session struct {
	client   *http.Client
	baseURL  string
	getToken TokenProvider
}

// NewSession creates a session for the configured environment.
func NewSession(cfg *config.Config, token TokenProvider) *Session {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Session{
		client:   &http.Client{Timeout: cfg.HTTP.Timeout},
		baseURL:  "https://" + cfg.Environment.Host(),
		getToken: token,
	}
}

// WithBaseURL overrides the service base URL. Intended for tests and
// self-hosted gateways.
func (s *Session) WithBaseURL(base string) *Session {
	s.baseURL = base
	return s
}

// WithTimeout overrides the per-request timeout.
func (s *Session) WithTimeout(d time.Duration) *Session {
	s.client.Timeout = d
	return s
}

// BaseURL returns the service base URL.
func (s *Session) BaseURL() string {
	return s.baseURL
}

// Request describes one service call.
type Request struct {
	Method  string
	Path    string // absolute path, e.g. "/reality-management/reality-data/"
	Version APIVersion
	Prefer  string // optional Prefer header (list endpoints)
	Query   url.Values
	Body    interface{} // marshalled to JSON when non-nil
	Out     interface{} // decoded from a 2xx body when non-nil
}

// Do executes the request. Non-2xx responses are decoded into an
// *apierr.Error; a 2xx body that does not match Out becomes a SchemaError
// with the raw body attached.
func (s *Session) Do(ctx context.Context, req Request) (status int, err error) {
	ctx, span := telemetry.StartCall(ctx, req.Method, req.Path)
	defer func() { telemetry.EndCall(span, status, err) }()

	var body io.Reader
	if req.Body != nil {
		data, err := json.Marshal(req.Body)
		if err != nil {
			return 0, apierr.Wrap(apierr.CodeSchema, "encode request body", err)
		}
		body = bytes.NewReader(data)
	}

	u := s.baseURL + req.Path
	if len(req.Query) > 0 {
		u += "?" + req.Query.Encode()
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, u, body)
	if err != nil {
		return 0, apierr.Wrap(apierr.CodeTransport, "build request", err)
	}

	token, err := s.getToken()
	if err != nil {
		return 0, apierr.Wrap(apierr.CodeTransport, "acquire token", err)
	}

	httpReq.Header.Set("Authorization", token)
	httpReq.Header.Set("User-Agent", version.UserAgent)
	httpReq.Header.Set("Content-type", "application/json")
	httpReq.Header.Set("Accept", acceptHeader(req.Version))
	if req.Prefer != "" {
		httpReq.Header.Set("Prefer", req.Prefer)
	}

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return 0, apierr.Wrap(apierr.CodeTransport, "request failed", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, apierr.Wrap(apierr.CodeTransport, "read response body", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp.StatusCode, apierr.FromService(resp.StatusCode, raw)
	}

	if req.Out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, req.Out); err != nil {
			schemaErr := apierr.Wrap(apierr.CodeSchema, "decode response body", err).
				WithContext("body", string(raw))
			return resp.StatusCode, schemaErr
		}
	}

	return resp.StatusCode, nil
}

// Get issues a GET request.
func (s *Session) Get(ctx context.Context, path string, v APIVersion, query url.Values, out interface{}) (int, error) {
	return s.Do(ctx, Request{Method: http.MethodGet, Path: path, Version: v, Query: query, Out: out})
}

// Post issues a POST request.
func (s *Session) Post(ctx context.Context, path string, v APIVersion, body, out interface{}) (int, error) {
	return s.Do(ctx, Request{Method: http.MethodPost, Path: path, Version: v, Body: body, Out: out})
}

// Patch issues a PATCH request.
func (s *Session) Patch(ctx context.Context, path string, v APIVersion, body, out interface{}) (int, error) {
	return s.Do(ctx, Request{Method: http.MethodPatch, Path: path, Version: v, Body: body, Out: out})
}

// Delete issues a DELETE request.
func (s *Session) Delete(ctx context.Context, path string, v APIVersion) (int, error) {
	return s.Do(ctx, Request{Method: http.MethodDelete, Path: path, Version: v})
}

func acceptHeader(v APIVersion) string {
	if v == 0 {
		v = V1
	}
	return fmt.Sprintf("application/vnd.bentley.itwin-platform.v%d+json", v)
}
