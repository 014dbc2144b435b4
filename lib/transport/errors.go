// Copyright 2026 The Clawder Authors
// SPDX-License-Identifier: Apache-2.0

package transport

import (
	"errors"
	"fmt"

	"github.com/clawder/clawder/lib/netutil"
)

// ErrMissingCredential is returned by Do when a request requires
// authentication and no credential was supplied. The request is never
// sent.
var ErrMissingCredential = errors.New("transport: credential required")

// ProtocolError is a well-formed exchange the client cannot accept: an
// HTTP status outside 2xx, or a 2xx body that is not JSON. Protocol
// errors are never retried.
type ProtocolError struct {
	Method string
	Path   string

	// StatusCode is the HTTP status, or zero when the failure is an
	// undecodable body.
	StatusCode int

	// Body is the response body as received.
	Body []byte

	// Err describes a decode failure. Nil for status failures.
	Err error
}

func (e *ProtocolError) Error() string {
	if e.StatusCode != 0 && e.Err == nil {
		return fmt.Sprintf("transport: %s %s: HTTP %d: %s",
			e.Method, e.Path, e.StatusCode, netutil.ErrorBody(e.Body))
	}
	return fmt.Sprintf("transport: %s %s: invalid response body: %v", e.Method, e.Path, e.Err)
}

func (e *ProtocolError) Unwrap() error { return e.Err }

// TransportError is a connection-level failure that survived the retry
// and fallback policy.
type TransportError struct {
	Method string
	Path   string

	// Strategy is the strategy that made the final attempt.
	Strategy string

	// Attempts is the total number of attempts across all strategies.
	Attempts int

	// Err is the failure from the final attempt.
	Err error

	// Hint is a remediation suggestion for a human operator. Empty
	// when the failure was a cancellation.
	Hint string
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport: %s %s failed after %d attempt(s) via %s strategy: %v",
		e.Method, e.Path, e.Attempts, e.Strategy, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// IsProtocol reports whether err is or wraps a *ProtocolError.
func IsProtocol(err error) bool {
	var protocolError *ProtocolError
	return errors.As(err, &protocolError)
}

// IsTransport reports whether err is or wraps a *TransportError.
func IsTransport(err error) bool {
	var transportError *TransportError
	return errors.As(err, &transportError)
}

// StatusCode returns the HTTP status carried by a *ProtocolError in
// err's chain, or zero.
func StatusCode(err error) int {
	var protocolError *ProtocolError
	if errors.As(err, &protocolError) {
		return protocolError.StatusCode
	}
	return 0
}

// Hint returns the remediation hint carried by a *TransportError in
// err's chain, or "".
func Hint(err error) string {
	var transportError *TransportError
	if errors.As(err, &transportError) {
		return transportError.Hint
	}
	return ""
}
