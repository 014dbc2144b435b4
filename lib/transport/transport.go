// Copyright 2026 The Clawder Authors
// SPDX-License-Identifier: Apache-2.0

package transport

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/clawder/clawder/lib/clock"
	"github.com/clawder/clawder/lib/secret"
)

// DefaultUserAgent is sent when Config.UserAgent is empty.
const DefaultUserAgent = "ClawderCLI/1.0"

// DefaultTimeout bounds a single attempt when Config.Timeout is zero.
const DefaultTimeout = 30 * time.Second

// AuthMode says whether a request must carry a credential.
type AuthMode int

const (
	// AuthRequired fails with ErrMissingCredential when no credential
	// is supplied.
	AuthRequired AuthMode = iota

	// AuthOptional sends the Authorization header only when a
	// credential is supplied.
	AuthOptional
)

// Config holds configuration for creating a Transport.
type Config struct {
	// BaseURL is the API root that request paths are appended to,
	// for example "https://www.clawder.ai/api". Required.
	BaseURL string

	// Secondary makes the one-shot strategy the default. Such runs
	// never fall back.
	Secondary bool

	// TLSMinVersion and TLSMaxVersion bound the negotiated TLS
	// version. Zero keeps the crypto/tls default.
	TLSMinVersion uint16
	TLSMaxVersion uint16

	// InsecureSkipVerify disables certificate verification.
	InsecureSkipVerify bool

	// UserAgent defaults to DefaultUserAgent.
	UserAgent string

	// Timeout bounds each attempt. Defaults to DefaultTimeout.
	Timeout time.Duration

	// RateLimit caps requests per second. Zero disables pacing.
	RateLimit float64

	// HTTPClient replaces the pooled strategy's client.
	HTTPClient *http.Client

	// PrimaryStrategy and SecondaryStrategy replace the built-in
	// strategies.
	PrimaryStrategy   Strategy
	SecondaryStrategy Strategy

	// Clock drives the backoff delay. Defaults to clock.Real().
	Clock clock.Clock

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// Transport executes API requests under the retry and fallback policy.
// Safe for concurrent use.
type Transport struct {
	baseURL   string
	userAgent string
	timeout   time.Duration
	primary   Strategy
	secondary Strategy
	useFirst  Strategy
	limiter   *rate.Limiter
	clock     clock.Clock
	logger    *slog.Logger
}

// New creates a Transport from the given configuration.
func New(config Config) (*Transport, error) {
	baseURL := strings.TrimRight(config.BaseURL, "/")
	parsed, err := url.Parse(baseURL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return nil, fmt.Errorf("transport: invalid base URL %q", config.BaseURL)
	}

	tlsConfig := &tls.Config{
		MinVersion:         config.TLSMinVersion,
		MaxVersion:         config.TLSMaxVersion,
		InsecureSkipVerify: config.InsecureSkipVerify,
	}

	primary := config.PrimaryStrategy
	if primary == nil {
		primary = NewPooledStrategy(config.HTTPClient, tlsConfig)
	}
	secondary := config.SecondaryStrategy
	if secondary == nil {
		secondary = NewOneShotStrategy(tlsConfig)
	}

	userAgent := config.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	clk := config.Clock
	if clk == nil {
		clk = clock.Real()
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	transport := &Transport{
		baseURL:   baseURL,
		userAgent: userAgent,
		timeout:   timeout,
		primary:   primary,
		secondary: secondary,
		useFirst:  primary,
		clock:     clk,
		logger:    logger,
	}
	if config.Secondary {
		transport.useFirst = secondary
	}
	if config.RateLimit > 0 {
		transport.limiter = rate.NewLimiter(rate.Limit(config.RateLimit), 1)
	}
	return transport, nil
}

// BaseURL returns the API root requests are sent to.
func (t *Transport) BaseURL() string { return t.baseURL }

// DefaultStrategy returns the name of the strategy runs start on.
func (t *Transport) DefaultStrategy() string { return t.useFirst.Name() }

// Request describes one API call.
type Request struct {
	Method string

	// Path is relative to the base URL, for example "/dm/send".
	Path string

	Query url.Values

	// Body is JSON-encoded when non-nil.
	Body any

	Auth AuthMode

	// Credential is the bearer token. May be nil for AuthOptional.
	Credential *secret.Buffer
}

// Do executes request and returns the raw JSON body of a 2xx response.
//
// Returns ErrMissingCredential for an unauthenticated AuthRequired
// request, *ProtocolError for an HTTP error status or a body that is
// not JSON, and *TransportError when connection failures exhaust the
// retry policy.
func (t *Transport) Do(ctx context.Context, request Request) ([]byte, error) {
	if request.Auth == AuthRequired && (request.Credential == nil || request.Credential.Len() == 0) {
		return nil, ErrMissingCredential
	}

	var encoded []byte
	if request.Body != nil {
		var err error
		encoded, err = json.Marshal(request.Body)
		if err != nil {
			return nil, fmt.Errorf("transport: encoding %s %s body: %w", request.Method, request.Path, err)
		}
	}

	if t.limiter != nil {
		if err := t.limiter.Wait(ctx); err != nil {
			return nil, &TransportError{
				Method: request.Method, Path: request.Path,
				Strategy: t.useFirst.Name(), Err: err,
			}
		}
	}

	run := &run{
		transport: t,
		request:   request,
		body:      encoded,
		strategy:  t.useFirst,
	}
	if t.useFirst == t.primary {
		run.fallback = t.secondary
	}

	reply, err := run.execute(ctx)
	if err != nil {
		return nil, err
	}

	body := reply.Body
	if len(bytes.TrimSpace(body)) == 0 && reply.StatusCode == http.StatusNoContent {
		body = []byte("{}")
	}
	if !json.Valid(body) {
		return nil, &ProtocolError{
			Method: request.Method, Path: request.Path,
			StatusCode: reply.StatusCode, Body: reply.Body,
			Err: fmt.Errorf("not valid JSON (%d bytes)", len(reply.Body)),
		}
	}
	return body, nil
}

// newHTTPRequest builds a fresh *http.Request for one attempt. Bodies
// are consumed by a send, so every attempt gets its own.
func (t *Transport) newHTTPRequest(ctx context.Context, request Request, body []byte) (*http.Request, error) {
	target := t.baseURL + request.Path
	if len(request.Query) > 0 {
		target += "?" + request.Query.Encode()
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	httpRequest, err := http.NewRequestWithContext(ctx, request.Method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("transport: building %s %s: %w", request.Method, request.Path, err)
	}

	httpRequest.Header.Set("Content-Type", "application/json")
	httpRequest.Header.Set("Accept", "application/json")
	httpRequest.Header.Set("User-Agent", t.userAgent)
	if request.Credential != nil && request.Credential.Len() > 0 {
		httpRequest.Header.Set("Authorization", "Bearer "+request.Credential.String())
	}
	return httpRequest, nil
}
