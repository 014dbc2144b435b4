// Copyright 2026 The Clawder Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock provides an injectable time abstraction so retry
// backoff can be driven deterministically in tests.
//
// Production code injects Real(). Tests inject Fake() and advance it
// explicitly:
//
//	c := clock.Fake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
//	go func() { result <- transport.Do(ctx, request) }()
//	c.WaitForTimers(1)         // backoff registered
//	c.Advance(2 * time.Second) // fire it
//
// WaitForTimers removes the race between a goroutine registering a
// timer and the test advancing the clock.
package clock
