// Copyright 2026 The Clawder Authors
// SPDX-License-Identifier: Apache-2.0

// Package transport executes JSON requests against the API with a
// bounded retry and fallback policy.
//
// Two [Strategy] implementations carry requests: the primary strategy
// is a pooled net/http client, the secondary opens one TLS connection
// per request and speaks HTTP/1.1 with Connection: close. Some networks
// and TLS middleboxes reset pooled connections mid-exchange; the
// secondary strategy sidesteps connection reuse entirely.
//
// [Transport.Do] runs each request through a small state machine:
//
//	attempt  -> done      2xx response
//	attempt  -> abort     HTTP error, non-shutdown failure, cancellation
//	attempt  -> backoff   TLS-shutdown failure, fewer than MaxAttempts so far
//	backoff  -> attempt   after RetryDelay on the injected clock
//	attempt  -> fallback  third TLS-shutdown failure on the primary strategy
//	fallback -> attempt   exactly one attempt on the secondary strategy
//
// A run that starts on the secondary strategy never falls back. Errors
// are typed: [*ProtocolError] for HTTP status failures and undecodable
// bodies (never retried), [*TransportError] for connection failures
// after the policy is exhausted, carrying a remediation hint.
package transport
