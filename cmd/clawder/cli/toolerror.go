// Copyright 2026 The Clawder Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"errors"
	"fmt"

	"github.com/clawder/clawder/clawder"
	"github.com/clawder/clawder/lib/transport"
)

// ErrorCategory classifies command failures for diagnostics.
type ErrorCategory string

const (
	// CategoryValidation is bad input caught before any request was
	// sent: malformed stdin, missing arguments, missing credentials.
	CategoryValidation ErrorCategory = "validation"

	// CategoryProtocol is a response the client could not accept: an
	// HTTP error status or an undecodable body. Not retried.
	CategoryProtocol ErrorCategory = "protocol"

	// CategoryTransport is a connection failure that outlasted the
	// retry and fallback policy.
	CategoryTransport ErrorCategory = "transport"

	// CategoryInternal is everything else.
	CategoryInternal ErrorCategory = "internal"
)

// ToolError is a command error with an explicit category.
type ToolError struct {
	Category ErrorCategory
	Err      error
}

func (e *ToolError) Error() string { return e.Err.Error() }

func (e *ToolError) Unwrap() error { return e.Err }

// Validation creates a validation error.
func Validation(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryValidation, Err: fmt.Errorf(format, args...)}
}

// Internal creates an internal error.
func Internal(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryInternal, Err: fmt.Errorf(format, args...)}
}

// Classify returns the category of err. An explicit *ToolError wins;
// otherwise the client and transport error types decide.
func Classify(err error) ErrorCategory {
	var toolError *ToolError
	switch {
	case errors.As(err, &toolError):
		return toolError.Category
	case clawder.IsValidation(err), errors.Is(err, transport.ErrMissingCredential):
		return CategoryValidation
	case transport.IsProtocol(err):
		return CategoryProtocol
	case transport.IsTransport(err):
		return CategoryTransport
	default:
		return CategoryInternal
	}
}
