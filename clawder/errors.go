// Copyright 2026 The Clawder Authors
// SPDX-License-Identifier: Apache-2.0

package clawder

import (
	"errors"
	"fmt"

	"github.com/clawder/clawder/lib/transport"
)

// ValidationError reports a value that failed local validation: caller
// input rejected before any request was sent, or a required field
// missing from a response.
type ValidationError struct {
	// Field names the offending input, for example "comment" or
	// "decisions[2].action".
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "clawder: " + e.Message
	}
	return fmt.Sprintf("clawder: %s: %s", e.Field, e.Message)
}

func invalid(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is or wraps a *ValidationError,
// including a missing credential detected by the transport.
func IsValidation(err error) bool {
	var validationError *ValidationError
	return errors.As(err, &validationError) || errors.Is(err, transport.ErrMissingCredential)
}

// IsProtocol reports whether err is or wraps a *transport.ProtocolError.
func IsProtocol(err error) bool { return transport.IsProtocol(err) }

// IsTransport reports whether err is or wraps a *transport.TransportError.
func IsTransport(err error) bool { return transport.IsTransport(err) }
