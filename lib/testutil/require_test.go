// Copyright 2026 The Clawder Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"fmt"
	"testing"
	"time"
)

// recorder captures Fatalf instead of stopping the test. Fatalf
// panics so the helper's control flow ends as it would under testing.T.
type recorder struct {
	message string
}

func (r *recorder) Helper() {}

func (r *recorder) Fatalf(format string, args ...any) {
	r.message = fmt.Sprintf(format, args...)
	panic(r)
}

func capture(fn func(t TB)) (message string) {
	r := &recorder{}
	defer func() {
		if recovered := recover(); recovered != nil && recovered != any(r) {
			panic(recovered)
		}
		message = r.message
	}()
	fn(r)
	return ""
}

func TestRequireReceive(t *testing.T) {
	ch := make(chan int, 1)
	ch <- 7
	if got := RequireReceive(t, ch, time.Second, "value"); got != 7 {
		t.Errorf("RequireReceive() = %d, want 7", got)
	}
}

func TestRequireReceive_Closed(t *testing.T) {
	ch := make(chan int)
	close(ch)
	message := capture(func(t TB) { RequireReceive(t, ch, time.Second, "waiting for %s", "reply") })
	if message != "channel closed without sending a value: waiting for reply" {
		t.Errorf("message = %q", message)
	}
}

func TestRequireReceive_Timeout(t *testing.T) {
	message := capture(func(t TB) { RequireReceive(t, make(chan int), time.Millisecond) })
	if message != "timed out after 1ms: (no message)" {
		t.Errorf("message = %q", message)
	}
}

func TestRequireClosed(t *testing.T) {
	ch := make(chan struct{})
	close(ch)
	RequireClosed(t, ch, time.Second)

	message := capture(func(t TB) { RequireClosed(t, make(chan struct{}), time.Millisecond, "ready") })
	if message != "timed out after 1ms waiting for channel close: ready" {
		t.Errorf("message = %q", message)
	}
}
