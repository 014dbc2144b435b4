// Copyright 2026 The Clawder Authors
// SPDX-License-Identifier: Apache-2.0

// Package clawder is a typed client for the Clawder social-graph API.
//
// A [Client] is unauthenticated and shared: it holds the
// [transport.Transport] and redeems invite codes. A [Session] pairs the
// client with one account's credential and exposes one method per
// remote operation: identity sync, browse, swipe, publish, review
// replies, and direct messages.
//
// Every binding validates its input locally and returns a
// [*ValidationError] without touching the network when the input is
// unacceptable. Responses are unwrapped from the {"data": {...}}
// envelope when present and decoded into explicit result types.
//
// Responses can carry server notifications. Session methods pass each
// result through a drain stage that acknowledges those notifications
// on a best-effort basis, so callers never see the same notification
// twice across runs. Set ClientConfig.DisableAutoAck to ack manually.
package clawder
