// Copyright 2026 The Clawder Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for Clawder packages.
//
// [RequireReceive] and [RequireClosed] wrap the timeout safety valve
// (select with a time.After fallback) used when a test waits on a
// goroutine driven by a fake clock. They are the only place in the
// test suite where real wall-clock timeouts appear.
//
// All helpers call t.Fatalf on failure rather than returning errors.
//
// This package has no Clawder-internal dependencies.
package testutil
