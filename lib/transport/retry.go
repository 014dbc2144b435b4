// Copyright 2026 The Clawder Authors
// SPDX-License-Identifier: Apache-2.0

package transport

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/clawder/clawder/lib/netutil"
)

// MaxAttempts is the number of attempts made on the strategy a run
// starts on before it falls back or gives up.
const MaxAttempts = 3

// RetryDelay is the pause between attempts on the same strategy.
const RetryDelay = 2 * time.Second

type state int

const (
	stateAttempt state = iota
	stateBackoff
	stateFallback
	stateDone
	stateAbort
)

func (s state) String() string {
	switch s {
	case stateAttempt:
		return "attempt"
	case stateBackoff:
		return "backoff"
	case stateFallback:
		return "fallback"
	case stateDone:
		return "done"
	case stateAbort:
		return "abort"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// run is the state of one Do call.
type run struct {
	transport *Transport
	request   Request
	body      []byte

	strategy Strategy

	// fallback is the strategy to switch to after MaxAttempts
	// TLS-shutdown failures. Nil when the run started on secondary
	// or has already switched.
	fallback Strategy
	fellBack bool

	// attempts counts attempts on the current strategy; total counts
	// all attempts.
	attempts int
	total    int

	reply *Reply
	err   error
}

func (r *run) execute(ctx context.Context) (*Reply, error) {
	current := stateAttempt
	for {
		switch current {
		case stateAttempt:
			current = r.attempt(ctx)
		case stateBackoff:
			current = r.backoff(ctx)
		case stateFallback:
			current = r.switchStrategy()
		case stateDone:
			return r.reply, nil
		case stateAbort:
			return nil, r.err
		}
	}
}

func (r *run) attempt(ctx context.Context) state {
	attemptContext, cancel := context.WithTimeout(ctx, r.transport.timeout)
	defer cancel()

	httpRequest, err := r.transport.newHTTPRequest(attemptContext, r.request, r.body)
	if err != nil {
		r.err = err
		return stateAbort
	}

	r.attempts++
	r.total++
	reply, err := r.strategy.RoundTrip(httpRequest)
	if err == nil {
		r.transport.logger.Debug("request completed",
			"method", r.request.Method,
			"path", r.request.Path,
			"status", reply.StatusCode,
			"strategy", r.strategy.Name(),
			"attempt", r.total,
		)
		if reply.StatusCode < http.StatusOK || reply.StatusCode >= http.StatusMultipleChoices {
			r.err = &ProtocolError{
				Method: r.request.Method, Path: r.request.Path,
				StatusCode: reply.StatusCode, Body: reply.Body,
			}
			return stateAbort
		}
		r.reply = reply
		return stateDone
	}

	if ctx.Err() != nil {
		r.err = r.failure(ctx.Err(), "")
		return stateAbort
	}
	if !netutil.IsTLSShutdown(err) {
		r.err = r.failure(err, r.hint())
		return stateAbort
	}
	if r.fellBack {
		r.err = r.failure(err, r.hint())
		return stateAbort
	}
	if r.attempts < MaxAttempts {
		r.transport.logger.Warn("connection closed during request, retrying",
			"method", r.request.Method,
			"path", r.request.Path,
			"strategy", r.strategy.Name(),
			"attempt", r.attempts,
			"max_attempts", MaxAttempts,
			"error", err,
		)
		return stateBackoff
	}
	if r.fallback != nil {
		r.transport.logger.Warn("retries exhausted, falling back",
			"method", r.request.Method,
			"path", r.request.Path,
			"from", r.strategy.Name(),
			"to", r.fallback.Name(),
			"error", err,
		)
		return stateFallback
	}
	r.err = r.failure(err, r.hint())
	return stateAbort
}

func (r *run) backoff(ctx context.Context) state {
	select {
	case <-r.transport.clock.After(RetryDelay):
		return stateAttempt
	case <-ctx.Done():
		r.err = r.failure(ctx.Err(), "")
		return stateAbort
	}
}

func (r *run) switchStrategy() state {
	r.strategy = r.fallback
	r.fallback = nil
	r.fellBack = true
	r.attempts = 0
	return stateAttempt
}

func (r *run) failure(err error, hint string) *TransportError {
	return &TransportError{
		Method:   r.request.Method,
		Path:     r.request.Path,
		Strategy: r.strategy.Name(),
		Attempts: r.total,
		Err:      err,
		Hint:     hint,
	}
}

// hint suggests the next thing a human should try given where the run
// ended.
func (r *run) hint() string {
	probe := fmt.Sprintf("curl -v %s/feed?limit=1 to test connectivity", r.transport.baseURL)
	switch {
	case r.fellBack:
		return "the secondary strategy also failed; try CLAWDER_SKIP_VERIFY=1 or a different network; " + probe
	case r.strategy.Name() == StrategySecondary:
		return "try CLAWDER_USE_HTTP_CLIENT=0 (pooled client) or a different network; " + probe
	default:
		return "try CLAWDER_USE_HTTP_CLIENT=1 (one connection per request) or CLAWDER_SKIP_VERIFY=1; " + probe
	}
}
