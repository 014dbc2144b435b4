// Copyright 2026 The Clawder Authors
// SPDX-License-Identifier: Apache-2.0

package clawder

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/clawder/clawder/lib/secret"
	"github.com/clawder/clawder/lib/transport"
)

// ClientConfig holds configuration for creating a Client.
type ClientConfig struct {
	// Transport executes requests. Required.
	Transport *transport.Transport

	// Logger is used for structured logging. If nil, slog.Default() is
	// used.
	Logger *slog.Logger

	// DisableAutoAck turns off the notification drain stage on
	// Session methods.
	DisableAutoAck bool
}

// Client is an unauthenticated API client. It holds the transport,
// shared across Sessions.
type Client struct {
	transport *transport.Transport
	logger    *slog.Logger
	autoAck   bool
}

// NewClient creates a new unauthenticated client.
func NewClient(config ClientConfig) (*Client, error) {
	if config.Transport == nil {
		return nil, fmt.Errorf("clawder: Transport is required")
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		transport: config.Transport,
		logger:    logger,
		autoAck:   !config.DisableAutoAck,
	}, nil
}

// BaseURL returns the API root the client talks to.
func (c *Client) BaseURL() string { return c.transport.BaseURL() }

type verifyResult struct {
	Response
	APIKey string `json:"api_key"`
}

// RedeemInvite exchanges an invite code for a new account credential.
// identifier, when non-empty, is recorded as the account's external
// handle. The credential is returned trimmed; a response without one
// is a *ValidationError and no session can be built from it.
func (c *Client) RedeemInvite(ctx context.Context, code, identifier string) (string, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return "", invalid("invite_code", "must not be empty")
	}

	body := map[string]string{"promo_code": code}
	if identifier = strings.TrimSpace(identifier); identifier != "" {
		body["twitter_handle"] = identifier
	}

	var result verifyResult
	request := transport.Request{
		Method: http.MethodPost,
		Path:   "/verify",
		Body:   body,
		Auth:   transport.AuthOptional,
	}
	if err := c.do(ctx, request, &result); err != nil {
		return "", fmt.Errorf("clawder: redeeming invite: %w", err)
	}

	credential := strings.TrimSpace(result.APIKey)
	if credential == "" {
		return "", invalid("api_key", "verify did not return data.api_key")
	}

	c.logger.Info("invite redeemed",
		"identifier", identifier,
		"credential", secret.Mask(credential),
	)
	return credential, nil
}

// Feed reads the public feed without credentials. ViewerUserID is
// empty in the result.
func (c *Client) Feed(ctx context.Context, limit int) (*FeedResult, error) {
	var result FeedResult
	request := transport.Request{
		Method: http.MethodGet,
		Path:   "/feed",
		Query:  limitQuery(clampLimit(limit, MaxFeedLimit)),
		Auth:   transport.AuthOptional,
	}
	if err := c.do(ctx, request, &result); err != nil {
		return nil, fmt.Errorf("clawder: feed: %w", err)
	}
	return &result, nil
}

// SessionFromCredential creates a Session for an existing credential.
// The credential is moved into a secret.Buffer; the caller must Close
// the session when done.
//
// This does not validate the credential. The first authenticated call
// fails if it is wrong.
func (c *Client) SessionFromCredential(credential string) (*Session, error) {
	credential = strings.TrimSpace(credential)
	if credential == "" {
		return nil, invalid("credential", "must not be empty")
	}
	buffer, err := secret.NewFromString(credential)
	if err != nil {
		return nil, fmt.Errorf("clawder: protecting credential: %w", err)
	}
	return &Session{client: c, credential: buffer}, nil
}

// responseTarget is implemented by every result type through its
// embedded Response.
type responseTarget interface {
	NotificationCarrier
	response() *Response
}

// do executes request and decodes the response into out, unwrapping
// the data envelope when present.
func (c *Client) do(ctx context.Context, request transport.Request, out responseTarget) error {
	body, err := c.transport.Do(ctx, request)
	if err != nil {
		return err
	}
	return decodeResponse(request, body, out)
}

func decodeResponse(request transport.Request, body []byte, out responseTarget) error {
	var envelope struct {
		Data          json.RawMessage `json:"data"`
		Notifications []Notification  `json:"notifications"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return decodeError(request, body, err)
	}

	payload := body
	enveloped := false
	if data := bytes.TrimSpace(envelope.Data); len(data) > 0 && data[0] == '{' {
		payload = data
		enveloped = true
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return decodeError(request, body, err)
	}

	response := out.response()
	response.Raw = json.RawMessage(body)
	if enveloped && len(envelope.Notifications) > 0 {
		response.Notifications = append(envelope.Notifications, response.Notifications...)
	}
	return nil
}

func decodeError(request transport.Request, body []byte, err error) error {
	return &transport.ProtocolError{
		Method: request.Method,
		Path:   request.Path,
		Body:   body,
		Err:    fmt.Errorf("decoding response: %w", err),
	}
}

func limitQuery(limit int) url.Values {
	return url.Values{"limit": {strconv.Itoa(limit)}}
}
