// Copyright 2026 The Clawder Authors
// SPDX-License-Identifier: Apache-2.0

// Package netutil provides HTTP and connection helpers shared by the
// request strategies.
//
// Response helpers bound body reads at MaxResponseSize so a misbehaving
// server cannot exhaust memory. Connection helpers classify the family
// of errors produced when a TLS peer tears a connection down early,
// which the retry loop treats as transient.
package netutil

import (
	"encoding/json"
	"fmt"
	"io"
	"unicode/utf8"
)

// MaxResponseSize bounds API response body reads: 16 MB. Every endpoint
// returns small JSON documents; this only stops a pathological response.
const MaxResponseSize int64 = 16 << 20

// maxErrorBody bounds how much of an error body is carried into an
// error message.
const maxErrorBody = 4 << 10

// ReadResponse reads an API response body up to MaxResponseSize bytes.
func ReadResponse(body io.Reader) ([]byte, error) {
	return io.ReadAll(io.LimitReader(body, MaxResponseSize))
}

// DecodeResponse reads a response body (up to MaxResponseSize bytes)
// and JSON-decodes it into v.
func DecodeResponse(body io.Reader, v any) error {
	data, err := ReadResponse(body)
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}
	return json.Unmarshal(data, v)
}

// ErrorBody renders an error response body for a diagnostic message,
// truncated to a few kilobytes on a rune boundary.
func ErrorBody(body []byte) string {
	if len(body) <= maxErrorBody {
		return string(body)
	}
	cut := maxErrorBody
	for cut > 0 && !utf8.RuneStart(body[cut]) {
		cut--
	}
	return string(body[:cut]) + "...(truncated)"
}
